package core

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"reqlock/internal/ports"
	"reqlock/internal/types"
)

// Pinner resolves every requirement of a manifest to an exact version
// using an index snapshot.
type Pinner struct {
	Index ports.IndexPort
}

func NewPinner(index ports.IndexPort) Pinner {
	return Pinner{Index: index}
}

// Pin produces one lock entry per requirement, in manifest order.
// Editable and URL requirements cannot be pinned to an index version
// and are rejected: a lock manifest must be fully reproducible.
func (p Pinner) Pin(ctx context.Context, manifest types.Manifest) ([]types.LockEntry, error) {
	if p.Index == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("pinner requires an index port")
	}
	seen := map[string]struct{}{}
	var entries []types.LockEntry
	for _, req := range manifest.Requirements() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		switch req.Kind {
		case types.RequirementKindEditable, types.RequirementKindURL:
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(fmt.Sprintf("cannot pin %s requirement %s (line %d)", req.Kind, req.Name, req.Line))
		}
		if _, dup := seen[req.NormalizedName]; dup {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("duplicate package %s (line %d)", req.NormalizedName, req.Line))
		}
		seen[req.NormalizedName] = struct{}{}

		available, err := p.Index.AvailableVersions(req.Type, req.NormalizedName)
		if err != nil {
			return nil, err
		}
		version, err := BestCompatibleVersion(req, available)
		if err != nil {
			return nil, err
		}
		log.Debug().
			Str("package", req.NormalizedName).
			Str("version", version).
			Msg("pinned")
		entries = append(entries, types.LockEntry{
			Name:    req.NormalizedName,
			Version: version,
			Type:    req.Type,
		})
	}
	return entries, nil
}
