package ports

import (
	"context"

	"reqlock/internal/types"
)

type IndexPort interface {
	AvailableVersions(depType types.DependencyType, name string) ([]string, error)
}

// IndexBuildRequest describes which packages to capture in a snapshot
// and where to fetch them from.
type IndexBuildRequest struct {
	PipIndexURL      string
	PipPackages      []string
	AptPackagesFile  string
	Workers          int
	HTTPTimeoutSec   int
	HTTPRetries      int
	HTTPRetryDelayMs int
}

type IndexBuilderPort interface {
	Build(ctx context.Context, request IndexBuildRequest) (types.IndexSnapshotFile, error)
}

type IndexWriterPort interface {
	Write(path string, index types.IndexSnapshotFile) error
}
