package types

import "fmt"

// Lint rule identifiers. Stable: they appear in reports and policy files.
const (
	RuleSyntax    = "syntax"
	RuleDuplicate = "duplicate"
	RuleVersion   = "version"
	RuleUnpinned  = "unpinned"
	RuleEditable  = "editable"
	RuleURL       = "url"
	RuleDenied    = "denied"
	RuleOperator  = "operator"
)

// Finding is a single lint result against a manifest line.
type Finding struct {
	Rule     string
	Severity Severity
	Message  string
	Source   string
	Line     int
}

func (f Finding) String() string {
	return fmt.Sprintf("%s:%d: %s: %s [%s]", f.Source, f.Line, f.Severity, f.Message, f.Rule)
}

// Report aggregates findings for one or more manifests.
type Report struct {
	Findings []Finding
}

func (r Report) Errors() int {
	count := 0
	for _, finding := range r.Findings {
		if finding.Severity == SeverityError {
			count++
		}
	}
	return count
}

func (r Report) Warnings() int {
	return len(r.Findings) - r.Errors()
}

func (r Report) Clean() bool {
	return len(r.Findings) == 0
}
