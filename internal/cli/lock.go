package cli

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reqlock/internal/app"
)

type lockOptions struct {
	Manifest string
	Type     string
	Index    string
	Output   string
	Check    bool
}

func newLockCommand() *cobra.Command {
	opts := lockOptions{}
	cmd := &cobra.Command{
		Use:   "lock",
		Short: "Pin a manifest to exact versions against an index snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLock(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "Manifest path")
	cmd.Flags().StringVar(&opts.Type, "type", "pip", "Manifest type (pip or apt)")
	cmd.Flags().StringVar(&opts.Index, "index", "", "Index snapshot file")
	cmd.Flags().StringVar(&opts.Output, "output", "requirements.lock", "Lock output path")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "Verify the existing lock is current instead of writing")
	_ = viper.BindPFlag("manifest", cmd.Flags().Lookup("manifest"))
	_ = viper.BindPFlag("index", cmd.Flags().Lookup("index"))
	return cmd
}

func runLock(ctx context.Context, cmd *cobra.Command, opts lockOptions) error {
	service := app.NewService()
	result, err := service.Lock(ctx, app.LockRequest{
		ManifestPath: resolveString(cmd, opts.Manifest, "manifest", "manifest"),
		Type:         parseDependencyType(opts.Type),
		IndexPath:    resolveString(cmd, opts.Index, "index", "index"),
		OutputPath:   opts.Output,
		Check:        opts.Check,
	})
	if err != nil {
		return err
	}
	if opts.Check {
		if result.Stale {
			return errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg("lock manifest is stale; rerun lock")
		}
		fmt.Printf("lock is current: %s (%d entries)\n", result.OutputPath, result.Entries)
		return nil
	}
	fmt.Printf("locked: %s (%d entries)\n", result.OutputPath, result.Entries)
	return nil
}
