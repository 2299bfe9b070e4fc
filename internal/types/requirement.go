package types

import "strings"

// Specifier is a single version clause such as "==1.2.3" or ">=1.0".
// A requirement may carry several, joined by commas in the manifest.
type Specifier struct {
	Op      SpecifierOp
	Version string
}

func (s Specifier) String() string {
	if s.Op == SpecifierOpNone {
		return ""
	}
	return string(s.Op) + s.Version
}

// Requirement is one dependency record parsed from a manifest line.
//
// Name preserves the spelling used in the file; NormalizedName is the
// PEP 503 form used for identity checks (pip names are case-insensitive
// and treat "-", "_", and "." as equivalent). For apt manifests the two
// are identical.
type Requirement struct {
	Name           string
	NormalizedName string
	Type           DependencyType
	Kind           RequirementKind
	Extras         []string
	Specifiers     []Specifier
	Marker         string
	Hashes         []string
	URL            string

	// Source and Line locate the requirement in its manifest for
	// finding messages.
	Source string
	Line   int
}

// Pinned reports whether the requirement fixes exactly one version.
func (r Requirement) Pinned() bool {
	if r.Kind != RequirementKindPinned {
		return false
	}
	return r.PinnedVersion() != ""
}

// PinnedVersion returns the exact version when the requirement carries a
// single "==" or "===" clause (or "=" for apt), or "" otherwise.
func (r Requirement) PinnedVersion() string {
	if len(r.Specifiers) != 1 {
		return ""
	}
	switch r.Specifiers[0].Op {
	case SpecifierOpEq2, SpecifierOpEq3:
		return r.Specifiers[0].Version
	case SpecifierOpEq:
		if r.Type == DependencyTypeApt {
			return r.Specifiers[0].Version
		}
		return ""
	default:
		return ""
	}
}

// SpecifierString renders the full specifier set, e.g. ">=1.0,<2.0".
func (r Requirement) SpecifierString() string {
	parts := make([]string, 0, len(r.Specifiers))
	for _, spec := range r.Specifiers {
		if spec.Op == SpecifierOpNone {
			continue
		}
		parts = append(parts, spec.String())
	}
	return strings.Join(parts, ",")
}

// ManifestLine is one physical line of a manifest. Raw keeps the exact
// text so formatting can round-trip comments, blanks, and options.
// Requirement is set only for LineKindRequirement.
type ManifestLine struct {
	Number      int
	Raw         string
	Kind        LineKind
	Requirement *Requirement

	// ParseError holds the syntax problem for LineKindInvalid lines.
	ParseError string
}

// Manifest is a parsed dependency-pinning manifest: the ordered lines of
// a requirements.txt (pip) or packages.txt (apt) file.
type Manifest struct {
	Path  string
	Type  DependencyType
	Lines []ManifestLine
}

// Requirements returns the requirement records in file order.
func (m Manifest) Requirements() []Requirement {
	var out []Requirement
	for _, line := range m.Lines {
		if line.Kind == LineKindRequirement && line.Requirement != nil {
			out = append(out, *line.Requirement)
		}
	}
	return out
}
