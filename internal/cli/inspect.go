package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reqlock/internal/app"
)

type inspectOptions struct {
	Manifest string
	Type     string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize a manifest",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "Manifest path")
	cmd.Flags().StringVar(&opts.Type, "type", "pip", "Manifest type (pip or apt)")
	_ = viper.BindPFlag("manifest", cmd.Flags().Lookup("manifest"))
	return cmd
}

func runInspect(cmd *cobra.Command, opts inspectOptions) error {
	service := app.NewService()
	result, err := service.Inspect(app.InspectRequest{
		ManifestPath: resolveString(cmd, opts.Manifest, "manifest", "manifest"),
		Type:         parseDependencyType(opts.Type),
	})
	if err != nil {
		return err
	}
	fmt.Printf("manifest: %s\n", result.Path)
	fmt.Printf("requirements: %d\n", result.Total)
	fmt.Printf("  pinned:   %d\n", result.Pinned)
	fmt.Printf("  ranged:   %d\n", result.Ranged)
	fmt.Printf("  bare:     %d\n", result.Bare)
	fmt.Printf("  editable: %d\n", result.Editable)
	fmt.Printf("  url:      %d\n", result.URL)
	if len(result.Duplicates) > 0 {
		fmt.Printf("duplicates: %s\n", strings.Join(result.Duplicates, ", "))
	}
	return nil
}
