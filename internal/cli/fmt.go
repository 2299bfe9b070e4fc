package cli

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reqlock/internal/app"
)

type fmtOptions struct {
	Manifest string
	Type     string
	Write    bool
	Check    bool
}

func newFmtCommand() *cobra.Command {
	opts := fmtOptions{}
	cmd := &cobra.Command{
		Use:   "fmt",
		Short: "Render a manifest in canonical form",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFmt(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "Manifest path")
	cmd.Flags().StringVar(&opts.Type, "type", "pip", "Manifest type (pip or apt)")
	cmd.Flags().BoolVar(&opts.Write, "write", false, "Rewrite the file in place")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "Exit non-zero when the file is not canonical")
	_ = viper.BindPFlag("manifest", cmd.Flags().Lookup("manifest"))
	return cmd
}

func runFmt(cmd *cobra.Command, opts fmtOptions) error {
	service := app.NewService()
	result, err := service.Format(app.FormatRequest{
		ManifestPath: resolveString(cmd, opts.Manifest, "manifest", "manifest"),
		Type:         parseDependencyType(opts.Type),
		Write:        opts.Write,
	})
	if err != nil {
		return err
	}
	if opts.Check && result.Changed {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("manifest is not formatted; run fmt --write")
	}
	if !opts.Write && !opts.Check {
		fmt.Print(result.Formatted)
	}
	return nil
}
