package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reqlock/internal/app"
)

type outdatedOptions struct {
	Manifest string
	Type     string
	Index    string
}

func newOutdatedCommand() *cobra.Command {
	opts := outdatedOptions{}
	cmd := &cobra.Command{
		Use:   "outdated",
		Short: "Report pins with newer versions in the index snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOutdated(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "Manifest path")
	cmd.Flags().StringVar(&opts.Type, "type", "pip", "Manifest type (pip or apt)")
	cmd.Flags().StringVar(&opts.Index, "index", "", "Index snapshot file")
	_ = viper.BindPFlag("manifest", cmd.Flags().Lookup("manifest"))
	_ = viper.BindPFlag("index", cmd.Flags().Lookup("index"))
	return cmd
}

func runOutdated(ctx context.Context, cmd *cobra.Command, opts outdatedOptions) error {
	service := app.NewService()
	result, err := service.Outdated(ctx, app.OutdatedRequest{
		ManifestPath: resolveString(cmd, opts.Manifest, "manifest", "manifest"),
		Type:         parseDependencyType(opts.Type),
		IndexPath:    resolveString(cmd, opts.Index, "index", "index"),
	})
	if err != nil {
		return err
	}
	if len(result.Entries) == 0 {
		fmt.Println("all pins are current")
		return nil
	}
	for _, entry := range result.Entries {
		fmt.Printf("%s %s -> %s\n", entry.Name, entry.Current, entry.Latest)
	}
	return nil
}
