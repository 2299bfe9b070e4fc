package app

import (
	"context"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"reqlock/internal/core"
	"reqlock/internal/policies"
	"reqlock/internal/types"
)

// Validate lints one or more manifests. Findings are reported in the
// result, not as an error: a manifest full of problems is still a
// successful validation run.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	if len(req.ManifestPaths) == 0 {
		return ValidateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one manifest path is required")
	}
	policy, err := s.loadPolicy(ctx, req.PolicyPath, req.Strict)
	if err != nil {
		return ValidateResult{}, err
	}
	linter := core.NewLinter(policy)

	result := ValidateResult{}
	for _, path := range req.ManifestPaths {
		if err := ctx.Err(); err != nil {
			return ValidateResult{}, err
		}
		manifest, err := s.Manifests.Load(path, manifestType(req.Type))
		if err != nil {
			return ValidateResult{}, err
		}
		result.Report.Findings = append(result.Report.Findings, linter.Run(manifest)...)
		result.Manifests++
	}
	log.Ctx(ctx).Debug().
		Int("manifests", result.Manifests).
		Int("findings", len(result.Report.Findings)).
		Msg("validate completed")
	return result, nil
}

func (s Service) loadPolicy(ctx context.Context, path string, strict bool) (policies.PinPolicy, error) {
	if strings.TrimSpace(path) == "" {
		if strict {
			return policies.StrictPolicy(), nil
		}
		return policies.PinPolicy{}, nil
	}
	assert.NotEmpty(ctx, path, "policy path must be set when provided")
	file, err := s.PolicySource.Load(path)
	if err != nil {
		return policies.PinPolicy{}, err
	}
	if strict {
		file.RequirePins = true
		file.ForbidEditable = true
		file.ForbidURL = true
	}
	return policies.NewPinPolicy(file), nil
}

// manifestType defaults the dependency type to pip, the common case.
func manifestType(depType types.DependencyType) types.DependencyType {
	if depType == "" {
		return types.DependencyTypePip
	}
	return depType
}
