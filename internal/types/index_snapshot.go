package types

// IndexSnapshotFile is the on-disk YAML form of a package index snapshot:
// the known versions per package, per ecosystem, at a point in time.
// Pinning and outdated checks run against a snapshot so results are
// reproducible and do not depend on live index state.
type IndexSnapshotFile struct {
	Pip map[string][]string `yaml:"pip"`
	Apt map[string][]string `yaml:"apt,omitempty"`
}
