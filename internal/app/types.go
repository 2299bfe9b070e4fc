package app

import (
	"reqlock/internal/core"
	"reqlock/internal/types"
)

type ValidateRequest struct {
	ManifestPaths []string
	Type          types.DependencyType
	PolicyPath    string
	Strict        bool
}

type ValidateResult struct {
	Report    types.Report
	Manifests int
}

type InspectRequest struct {
	ManifestPath string
	Type         types.DependencyType
}

type InspectResult struct {
	Path       string
	Total      int
	Pinned     int
	Ranged     int
	Bare       int
	Editable   int
	URL        int
	Duplicates []string
}

type LockRequest struct {
	ManifestPath string
	Type         types.DependencyType
	IndexPath    string
	OutputPath   string
	Check        bool
}

type LockResult struct {
	OutputPath string
	Entries    int
	Stale      bool
}

type DiffRequest struct {
	BeforePath string
	AfterPath  string
	Type       types.DependencyType
}

type DiffResult struct {
	Result core.DiffResult
}

type OutdatedEntry struct {
	Name    string
	Current string
	Latest  string
}

type OutdatedRequest struct {
	ManifestPath string
	Type         types.DependencyType
	IndexPath    string
}

type OutdatedResult struct {
	Entries []OutdatedEntry
}

type FormatRequest struct {
	ManifestPath string
	Type         types.DependencyType
	Write        bool
}

type FormatResult struct {
	Formatted string
	Changed   bool
}

type IndexSnapshotRequest struct {
	OutputPath       string
	PipIndexURL      string
	PipPackages      []string
	ManifestPath     string
	AptPackagesFile  string
	Workers          int
	HTTPTimeoutSec   int
	HTTPRetries      int
	HTTPRetryDelayMs int
}

type IndexSnapshotResult struct {
	OutputPath string
	PipCount   int
	AptCount   int
}

type ConvertRequest struct {
	PyProjectPath string
	OutputPath    string
}

type ConvertResult struct {
	Rendered     string
	Requirements int
}
