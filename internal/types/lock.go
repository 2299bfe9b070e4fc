package types

// LockEntry is one fully pinned package in a lock manifest.
type LockEntry struct {
	Name    string
	Version string
	Type    DependencyType
}

// LockHeader carries the provenance comments written at the top of a
// lock manifest: the digest of the source manifest it was generated
// from and the generation timestamp.
type LockHeader struct {
	SourcePath   string
	SourceDigest string
	GeneratedAt  string
}

// LockManifest is a generated, fully pinned manifest.
type LockManifest struct {
	Header  LockHeader
	Entries []LockEntry
}
