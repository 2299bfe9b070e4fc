package policies

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"reqlock/internal/types"
)

func req(name string, kind types.RequirementKind, specs ...types.Specifier) types.Requirement {
	return types.Requirement{
		Name:           name,
		NormalizedName: name,
		Type:           types.DependencyTypePip,
		Kind:           kind,
		Specifiers:     specs,
		Source:         "requirements.txt",
		Line:           1,
	}
}

func rules(findings []types.Finding) []string {
	var out []string
	for _, f := range findings {
		out = append(out, f.Rule)
	}
	return out
}

func TestZeroPolicyEnforcesNothing(t *testing.T) {
	var policy PinPolicy
	assert.Empty(t, policy.Check(req("gunicorn", types.RequirementKindBare)))
	assert.Empty(t, policy.Check(req("pkg", types.RequirementKindEditable)))
}

func TestStrictPolicy(t *testing.T) {
	policy := StrictPolicy()

	tests := []struct {
		name string
		req  types.Requirement
		want []string
	}{
		{
			name: "pinned requirement passes",
			req:  req("flask", types.RequirementKindPinned, types.Specifier{Op: types.SpecifierOpEq2, Version: "1.1.2"}),
			want: nil,
		},
		{
			name: "bare requirement is unpinned",
			req:  req("gunicorn", types.RequirementKindBare),
			want: []string{types.RuleUnpinned},
		},
		{
			name: "ranged requirement is unpinned",
			req:  req("requests", types.RequirementKindRanged, types.Specifier{Op: types.SpecifierOpGte, Version: "2.20"}),
			want: []string{types.RuleUnpinned},
		},
		{
			name: "editable is forbidden but not double reported as unpinned",
			req:  req("pkg", types.RequirementKindEditable),
			want: []string{types.RuleEditable},
		},
		{
			name: "direct URL is forbidden",
			req:  req("mypkg", types.RequirementKindURL),
			want: []string{types.RuleURL},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, rules(policy.Check(tc.req)))
		})
	}
}

func TestDeniedNamesAreNormalized(t *testing.T) {
	policy := NewPinPolicy(types.PolicyFile{Denied: []string{"Distribute"}})
	target := req("distribute", types.RequirementKindPinned, types.Specifier{Op: types.SpecifierOpEq2, Version: "0.7.3"})
	findings := policy.Check(target)
	assert.Equal(t, []string{types.RuleDenied}, rules(findings))
	assert.Equal(t, types.SeverityError, findings[0].Severity)
}

func TestAllowedOperators(t *testing.T) {
	policy := NewPinPolicy(types.PolicyFile{AllowedOperators: []string{"=="}})

	pinned := req("flask", types.RequirementKindPinned, types.Specifier{Op: types.SpecifierOpEq2, Version: "1.1.2"})
	assert.Empty(t, policy.Check(pinned))

	ranged := req("sqlalchemy", types.RequirementKindRanged,
		types.Specifier{Op: types.SpecifierOpGte, Version: "1.4"},
		types.Specifier{Op: types.SpecifierOpLt, Version: "2.0"})
	assert.Equal(t, []string{types.RuleOperator, types.RuleOperator}, rules(policy.Check(ranged)))

	bare := req("gunicorn", types.RequirementKindBare, types.Specifier{Op: types.SpecifierOpNone})
	assert.Empty(t, policy.Check(bare))
}

func TestWarnUnpinnedDowngradesSeverity(t *testing.T) {
	policy := NewPinPolicy(types.PolicyFile{RequirePins: true, WarnUnpinned: true})
	findings := policy.Check(req("gunicorn", types.RequirementKindBare))
	assert.Equal(t, []string{types.RuleUnpinned}, rules(findings))
	assert.Equal(t, types.SeverityWarning, findings[0].Severity)
}
