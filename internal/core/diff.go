package core

import (
	"sort"

	"reqlock/internal/types"
)

// DiffEntry records one difference between two manifests for a package.
type DiffEntry struct {
	Name string
	Old  string
	New  string
}

// DiffResult groups manifest differences by change class. Within each
// class entries are sorted by package name.
type DiffResult struct {
	Added   []DiffEntry
	Removed []DiffEntry
	Changed []DiffEntry
}

// Empty reports whether the two manifests pin the same package set.
func (d DiffResult) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// Diff compares two manifests by normalized package name. The recorded
// Old/New values are the rendered specifier sets, so a repin from
// "==2.1.0" to "==2.3.3" and a loosening from "==1.0" to ">=1.0" both
// show up as changes.
func Diff(before types.Manifest, after types.Manifest) DiffResult {
	beforeSpecs := specsByName(before)
	afterSpecs := specsByName(after)

	var result DiffResult
	for name, oldSpec := range beforeSpecs {
		newSpec, exists := afterSpecs[name]
		switch {
		case !exists:
			result.Removed = append(result.Removed, DiffEntry{Name: name, Old: oldSpec})
		case oldSpec != newSpec:
			result.Changed = append(result.Changed, DiffEntry{Name: name, Old: oldSpec, New: newSpec})
		}
	}
	for name, newSpec := range afterSpecs {
		if _, exists := beforeSpecs[name]; !exists {
			result.Added = append(result.Added, DiffEntry{Name: name, New: newSpec})
		}
	}

	sortEntries(result.Added)
	sortEntries(result.Removed)
	sortEntries(result.Changed)
	return result
}

func specsByName(manifest types.Manifest) map[string]string {
	specs := map[string]string{}
	for _, req := range manifest.Requirements() {
		if _, seen := specs[req.NormalizedName]; seen {
			continue
		}
		specs[req.NormalizedName] = req.SpecifierString()
	}
	return specs
}

func sortEntries(entries []DiffEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
}
