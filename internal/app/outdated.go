package app

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"golang.org/x/sync/errgroup"

	"reqlock/internal/adapters"
	"reqlock/internal/core"
	"reqlock/internal/types"
)

const outdatedWorkers = 8

// Outdated reports pinned requirements whose index snapshot carries a
// newer version. Unpinned requirements are skipped; validate and lock
// handle those.
func (s Service) Outdated(ctx context.Context, req OutdatedRequest) (OutdatedResult, error) {
	manifestPath := strings.TrimSpace(req.ManifestPath)
	if manifestPath == "" {
		return OutdatedResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is required")
	}
	indexPath := strings.TrimSpace(req.IndexPath)
	if indexPath == "" {
		return OutdatedResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("index snapshot path is required")
	}
	manifest, err := s.Manifests.Load(manifestPath, manifestType(req.Type))
	if err != nil {
		return OutdatedResult{}, err
	}
	index := adapters.NewIndexSnapshotFileAdapter(indexPath)

	var mu sync.Mutex
	var entries []OutdatedEntry
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(outdatedWorkers)
	for _, requirement := range manifest.Requirements() {
		current := requirement.PinnedVersion()
		if current == "" {
			continue
		}
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			available, err := index.AvailableVersions(requirement.Type, requirement.NormalizedName)
			if err != nil {
				return err
			}
			latest := latestVersion(requirement.Type, available)
			if latest == "" {
				return nil
			}
			if core.CompareVersions(requirement.Type, latest, current) > 0 {
				mu.Lock()
				entries = append(entries, OutdatedEntry{
					Name:    requirement.NormalizedName,
					Current: current,
					Latest:  latest,
				})
				mu.Unlock()
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return OutdatedResult{}, err
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return OutdatedResult{Entries: entries}, nil
}

func latestVersion(depType types.DependencyType, available []string) string {
	if len(available) == 0 {
		return ""
	}
	ordered := core.SortVersions(depType, available)
	return ordered[len(ordered)-1]
}
