package types

// PolicyFile is the YAML form of a lint policy. All fields are optional;
// the zero value disables every policy rule so plain grammar validation
// still runs without a policy file.
type PolicyFile struct {
	// RequirePins demands that every requirement carries exactly one
	// "==" clause with a full version.
	RequirePins bool `yaml:"require_pins"`

	// ForbidEditable rejects "-e" editable installs.
	ForbidEditable bool `yaml:"forbid_editable"`

	// ForbidURL rejects "name @ url" direct references.
	ForbidURL bool `yaml:"forbid_url"`

	// Denied lists package names that must not appear. Names are
	// matched after normalization.
	Denied []string `yaml:"denied,omitempty"`

	// AllowedOperators restricts which specifier operators may be
	// used. Empty means all operators are allowed.
	AllowedOperators []string `yaml:"allowed_operators,omitempty"`

	// WarnUnpinned downgrades the unpinned rule from error to warning.
	// Only meaningful together with RequirePins.
	WarnUnpinned bool `yaml:"warn_unpinned"`
}
