package app

import (
	"context"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"reqlock/internal/adapters"
	"reqlock/internal/core"
	"reqlock/internal/types"
)

// Lock pins every requirement of a manifest against an index snapshot
// and writes a fully pinned lock manifest. With Check set it instead
// verifies that the existing lock was generated from the current
// manifest content.
//
// The recorded digest covers the canonical rendering of the manifest,
// so reformatting alone never marks a lock stale.
func (s Service) Lock(ctx context.Context, req LockRequest) (LockResult, error) {
	manifestPath := strings.TrimSpace(req.ManifestPath)
	if manifestPath == "" {
		return LockResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is required")
	}
	outputPath := strings.TrimSpace(req.OutputPath)
	if outputPath == "" {
		return LockResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("lock output path is required")
	}

	manifest, err := s.Manifests.Load(manifestPath, manifestType(req.Type))
	if err != nil {
		return LockResult{}, err
	}
	if err := rejectInvalidLines(manifest); err != nil {
		return LockResult{}, err
	}
	digest := adapters.Digest([]byte(core.Format(manifest)))

	if req.Check {
		lock, err := s.LockReader.Read(outputPath)
		if err != nil {
			return LockResult{}, err
		}
		stale := lock.Header.SourceDigest != digest
		return LockResult{
			OutputPath: outputPath,
			Entries:    len(lock.Entries),
			Stale:      stale,
		}, nil
	}

	indexPath := strings.TrimSpace(req.IndexPath)
	if indexPath == "" {
		return LockResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("index snapshot path is required")
	}
	pinner := core.NewPinner(adapters.NewIndexSnapshotFileAdapter(indexPath))
	entries, err := pinner.Pin(ctx, manifest)
	if err != nil {
		return LockResult{}, err
	}

	now := time.Now().UTC()
	if s.Clock != nil {
		now = s.Clock().UTC()
	}
	lock := types.LockManifest{
		Header: types.LockHeader{
			SourcePath:   manifestPath,
			SourceDigest: digest,
			GeneratedAt:  now.Format(time.RFC3339),
		},
		Entries: entries,
	}
	if err := s.LockWriter.Write(outputPath, lock); err != nil {
		return LockResult{}, err
	}
	log.Ctx(ctx).Info().
		Str("manifest", manifestPath).
		Str("lock", outputPath).
		Int("entries", len(entries)).
		Msg("lock written")
	return LockResult{
		OutputPath: outputPath,
		Entries:    len(entries),
	}, nil
}

// rejectInvalidLines refuses to operate on a manifest with syntax
// problems. Validate reports them; mutating operations stop on them.
func rejectInvalidLines(manifest types.Manifest) error {
	for _, line := range manifest.Lines {
		if line.Kind == types.LineKindInvalid {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("manifest has syntax errors; run validate first")
		}
	}
	return nil
}
