package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reqlock/internal/app"
)

type indexSnapshotOptions struct {
	Output           string
	PipIndexURL      string
	Packages         []string
	Manifest         string
	AptPackagesFile  string
	Workers          int
	HTTPTimeoutSec   int
	HTTPRetries      int
	HTTPRetryDelayMs int
}

func newIndexSnapshotCommand() *cobra.Command {
	opts := indexSnapshotOptions{}
	cmd := &cobra.Command{
		Use:   "index-snapshot",
		Short: "Capture package versions from an index into a snapshot file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runIndexSnapshot(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Output, "output", "index-snapshot.yaml", "Snapshot output path")
	cmd.Flags().StringVar(&opts.PipIndexURL, "pip-index-url", "https://pypi.org", "PyPI-compatible JSON API base URL")
	cmd.Flags().StringSliceVar(&opts.Packages, "package", nil, "Package name(s) to snapshot")
	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "Take the package set from this manifest")
	cmd.Flags().StringVar(&opts.AptPackagesFile, "apt-packages-file", "", "Debian Packages control file to include")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "Concurrent fetch workers")
	cmd.Flags().IntVar(&opts.HTTPTimeoutSec, "http-timeout-sec", 0, "HTTP timeout in seconds")
	cmd.Flags().IntVar(&opts.HTTPRetries, "http-retries", 0, "HTTP retry attempts")
	cmd.Flags().IntVar(&opts.HTTPRetryDelayMs, "http-retry-delay-ms", 0, "HTTP retry base delay in milliseconds")
	_ = viper.BindPFlag("pip_index_url", cmd.Flags().Lookup("pip-index-url"))
	return cmd
}

func runIndexSnapshot(ctx context.Context, cmd *cobra.Command, opts indexSnapshotOptions) error {
	service := app.NewService()
	result, err := service.IndexSnapshot(ctx, app.IndexSnapshotRequest{
		OutputPath:       opts.Output,
		PipIndexURL:      resolveString(cmd, opts.PipIndexURL, "pip_index_url", "pip-index-url"),
		PipPackages:      opts.Packages,
		ManifestPath:     opts.Manifest,
		AptPackagesFile:  opts.AptPackagesFile,
		Workers:          opts.Workers,
		HTTPTimeoutSec:   opts.HTTPTimeoutSec,
		HTTPRetries:      opts.HTTPRetries,
		HTTPRetryDelayMs: opts.HTTPRetryDelayMs,
	})
	if err != nil {
		return err
	}
	fmt.Printf("snapshot written: %s (%d pip, %d apt packages)\n",
		result.OutputPath, result.PipCount, result.AptCount)
	return nil
}
