package policies

import (
	"fmt"

	"reqlock/internal/shared"
	"reqlock/internal/types"
)

// PinPolicy is a compiled lint policy. The zero value enforces nothing,
// so manifests lint cleanly on grammar alone when no policy is given.
type PinPolicy struct {
	RequirePins    bool
	ForbidEditable bool
	ForbidURL      bool
	WarnUnpinned   bool

	denied     map[string]struct{}
	allowedOps map[types.SpecifierOp]struct{}
}

// NewPinPolicy compiles a policy file. Denied names are normalized once
// here so every later check is a map lookup.
func NewPinPolicy(file types.PolicyFile) PinPolicy {
	policy := PinPolicy{
		RequirePins:    file.RequirePins,
		ForbidEditable: file.ForbidEditable,
		ForbidURL:      file.ForbidURL,
		WarnUnpinned:   file.WarnUnpinned,
	}
	if len(file.Denied) > 0 {
		policy.denied = map[string]struct{}{}
		for _, name := range file.Denied {
			policy.denied[shared.NormalizeName(name)] = struct{}{}
		}
	}
	if len(file.AllowedOperators) > 0 {
		policy.allowedOps = map[types.SpecifierOp]struct{}{}
		for _, op := range file.AllowedOperators {
			policy.allowedOps[types.SpecifierOp(op)] = struct{}{}
		}
	}
	return policy
}

// StrictPolicy is the pinning policy implied by a reproducible-install
// manifest: every entry is an exact pin, nothing points outside the
// index.
func StrictPolicy() PinPolicy {
	return NewPinPolicy(types.PolicyFile{
		RequirePins:    true,
		ForbidEditable: true,
		ForbidURL:      true,
	})
}

// Check evaluates one requirement against the policy.
func (p PinPolicy) Check(req types.Requirement) []types.Finding {
	var findings []types.Finding

	if _, blocked := p.denied[req.NormalizedName]; blocked {
		findings = append(findings, finding(req, types.RuleDenied, types.SeverityError,
			fmt.Sprintf("package %s is denied by policy", req.NormalizedName)))
	}
	if p.ForbidEditable && req.Kind == types.RequirementKindEditable {
		findings = append(findings, finding(req, types.RuleEditable, types.SeverityError,
			fmt.Sprintf("editable requirement %s is forbidden by policy", req.Name)))
	}
	if p.ForbidURL && req.Kind == types.RequirementKindURL {
		findings = append(findings, finding(req, types.RuleURL, types.SeverityError,
			fmt.Sprintf("direct URL requirement %s is forbidden by policy", req.Name)))
	}
	if p.RequirePins && !req.Pinned() &&
		req.Kind != types.RequirementKindEditable && req.Kind != types.RequirementKindURL {
		severity := types.SeverityError
		if p.WarnUnpinned {
			severity = types.SeverityWarning
		}
		findings = append(findings, finding(req, types.RuleUnpinned, severity,
			fmt.Sprintf("package %s is not pinned to an exact version", req.NormalizedName)))
	}
	if p.allowedOps != nil {
		for _, spec := range req.Specifiers {
			if spec.Op == types.SpecifierOpNone {
				continue
			}
			if _, ok := p.allowedOps[spec.Op]; !ok {
				findings = append(findings, finding(req, types.RuleOperator, types.SeverityError,
					fmt.Sprintf("operator %q is not allowed by policy (package %s)", spec.Op, req.NormalizedName)))
			}
		}
	}
	return findings
}

func finding(req types.Requirement, rule string, severity types.Severity, message string) types.Finding {
	return types.Finding{
		Rule:     rule,
		Severity: severity,
		Message:  message,
		Source:   req.Source,
		Line:     req.Line,
	}
}
