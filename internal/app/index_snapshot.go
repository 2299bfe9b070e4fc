package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"reqlock/internal/ports"
	"reqlock/internal/types"
)

// IndexSnapshot captures the known versions of a package set into a
// snapshot file. The package set comes from explicit names, a manifest,
// or both.
func (s Service) IndexSnapshot(ctx context.Context, req IndexSnapshotRequest) (IndexSnapshotResult, error) {
	outputPath := strings.TrimSpace(req.OutputPath)
	if outputPath == "" {
		return IndexSnapshotResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output path is required")
	}

	packages := append([]string(nil), req.PipPackages...)
	if manifestPath := strings.TrimSpace(req.ManifestPath); manifestPath != "" {
		manifest, err := s.Manifests.Load(manifestPath, types.DependencyTypePip)
		if err != nil {
			return IndexSnapshotResult{}, err
		}
		for _, requirement := range manifest.Requirements() {
			if requirement.Kind == types.RequirementKindEditable || requirement.Kind == types.RequirementKindURL {
				continue
			}
			packages = append(packages, requirement.NormalizedName)
		}
	}
	if len(packages) == 0 && strings.TrimSpace(req.AptPackagesFile) == "" {
		return IndexSnapshotResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("no packages to snapshot; provide --package, --manifest, or --apt-packages-file")
	}

	index, err := s.IndexBuild.Build(ctx, ports.IndexBuildRequest{
		PipIndexURL:      req.PipIndexURL,
		PipPackages:      packages,
		AptPackagesFile:  req.AptPackagesFile,
		Workers:          req.Workers,
		HTTPTimeoutSec:   req.HTTPTimeoutSec,
		HTTPRetries:      req.HTTPRetries,
		HTTPRetryDelayMs: req.HTTPRetryDelayMs,
	})
	if err != nil {
		return IndexSnapshotResult{}, err
	}
	if err := s.IndexWriter.Write(outputPath, index); err != nil {
		return IndexSnapshotResult{}, err
	}
	log.Ctx(ctx).Info().
		Str("output", outputPath).
		Int("pip", len(index.Pip)).
		Int("apt", len(index.Apt)).
		Msg("index snapshot written")
	return IndexSnapshotResult{
		OutputPath: outputPath,
		PipCount:   len(index.Pip),
		AptCount:   len(index.Apt),
	}, nil
}
