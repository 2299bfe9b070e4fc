package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"reqlock/internal/policies"
	"reqlock/internal/types"
)

// Linter checks a parsed manifest for structural problems: malformed
// lines, duplicate package names, and invalid version strings. A policy
// adds stricter, configurable rules on top.
type Linter struct {
	Policy policies.PinPolicy
}

func NewLinter(policy policies.PinPolicy) Linter {
	return Linter{Policy: policy}
}

// Run lints one manifest and returns every finding, in line order.
func (l Linter) Run(manifest types.Manifest) []types.Finding {
	var findings []types.Finding
	firstSeen := map[string]int{}

	for _, line := range manifest.Lines {
		if line.Kind == types.LineKindInvalid {
			findings = append(findings, types.Finding{
				Rule:     types.RuleSyntax,
				Severity: types.SeverityError,
				Message:  line.ParseError,
				Source:   manifest.Path,
				Line:     line.Number,
			})
			continue
		}
		if line.Kind != types.LineKindRequirement || line.Requirement == nil {
			continue
		}
		req := *line.Requirement

		if prev, seen := firstSeen[req.NormalizedName]; seen {
			findings = append(findings, types.Finding{
				Rule:     types.RuleDuplicate,
				Severity: types.SeverityError,
				Message:  fmt.Sprintf("duplicate package %s (first seen on line %d)", req.NormalizedName, prev),
				Source:   manifest.Path,
				Line:     req.Line,
			})
		} else if req.Kind != types.RequirementKindEditable {
			firstSeen[req.NormalizedName] = req.Line
		}

		findings = append(findings, lintVersions(manifest.Path, req)...)
		findings = append(findings, l.Policy.Check(req)...)
	}

	log.Debug().
		Str("manifest", manifest.Path).
		Int("findings", len(findings)).
		Msg("lint completed")
	return findings
}

// errorText prefers the errbuilder message over the full error chain so
// finding messages stay one line.
func errorText(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}

func lintVersions(path string, req types.Requirement) []types.Finding {
	var findings []types.Finding
	for _, spec := range req.Specifiers {
		if spec.Op == types.SpecifierOpNone {
			continue
		}
		if req.Type == types.DependencyTypePip && strings.HasSuffix(spec.Version, ".*") &&
			spec.Op != types.SpecifierOpEq2 && spec.Op != types.SpecifierOpNe {
			findings = append(findings, types.Finding{
				Rule:     types.RuleVersion,
				Severity: types.SeverityError,
				Message:  fmt.Sprintf("%s: wildcard version %q is only valid with \"==\" or \"!=\"", req.Name, spec.Version),
				Source:   path,
				Line:     req.Line,
			})
			continue
		}
		if err := ValidateVersionString(req.Type, spec.Version); err != nil {
			findings = append(findings, types.Finding{
				Rule:     types.RuleVersion,
				Severity: types.SeverityError,
				Message:  fmt.Sprintf("%s: %s", req.Name, errorText(err)),
				Source:   path,
				Line:     req.Line,
			})
		}
	}
	return findings
}
