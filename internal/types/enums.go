package types

type DependencyType string

const (
	DependencyTypePip DependencyType = "pip"
	DependencyTypeApt DependencyType = "apt"
)

// RequirementKind classifies how a manifest line references a package.
type RequirementKind string

const (
	RequirementKindPinned   RequirementKind = "pinned"
	RequirementKindRanged   RequirementKind = "ranged"
	RequirementKindBare     RequirementKind = "bare"
	RequirementKindURL      RequirementKind = "url"
	RequirementKindEditable RequirementKind = "editable"
)

// LineKind classifies a raw manifest line.
type LineKind string

const (
	LineKindBlank       LineKind = "blank"
	LineKindComment     LineKind = "comment"
	LineKindOption      LineKind = "option"
	LineKindRequirement LineKind = "requirement"
	LineKindInvalid     LineKind = "invalid"
)

type SpecifierOp string

const (
	SpecifierOpNone   SpecifierOp = ""
	SpecifierOpEq     SpecifierOp = "="
	SpecifierOpEq2    SpecifierOp = "=="
	SpecifierOpEq3    SpecifierOp = "==="
	SpecifierOpNe     SpecifierOp = "!="
	SpecifierOpCompat SpecifierOp = "~="
	SpecifierOpGte    SpecifierOp = ">="
	SpecifierOpLte    SpecifierOp = "<="
	SpecifierOpGt     SpecifierOp = ">"
	SpecifierOpLt     SpecifierOp = "<"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)
