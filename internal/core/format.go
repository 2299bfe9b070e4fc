package core

import (
	"sort"
	"strings"

	"reqlock/internal/types"
)

// Format renders a manifest in canonical form: requirement lines use
// normalized names and tight specifier spelling, and contiguous runs of
// requirement lines are sorted by name. Comments, blank lines, and
// option lines stay where the author put them, so section headers keep
// framing the packages below them.
func Format(manifest types.Manifest) string {
	var out []string
	var run []types.ManifestLine
	flush := func() {
		sort.SliceStable(run, func(i, j int) bool {
			return run[i].Requirement.NormalizedName < run[j].Requirement.NormalizedName
		})
		for _, line := range run {
			out = append(out, renderRequirement(*line.Requirement))
		}
		run = run[:0]
	}
	for _, line := range manifest.Lines {
		if line.Kind == types.LineKindRequirement && line.Requirement != nil {
			run = append(run, line)
			continue
		}
		flush()
		out = append(out, strings.TrimRight(line.Raw, " \t"))
	}
	flush()
	return strings.Join(out, "\n") + "\n"
}

func renderRequirement(req types.Requirement) string {
	switch req.Kind {
	case types.RequirementKindEditable:
		return "-e " + req.URL
	case types.RequirementKindURL:
		return req.NormalizedName + " @ " + req.URL
	}
	if req.Type == types.DependencyTypeApt {
		// Apt manifests keep the "name=version" spelling.
		return req.Name + req.SpecifierString()
	}
	var b strings.Builder
	b.WriteString(req.NormalizedName)
	if len(req.Extras) > 0 {
		extras := append([]string(nil), req.Extras...)
		for i := range extras {
			extras[i] = strings.ToLower(extras[i])
		}
		sort.Strings(extras)
		b.WriteString("[")
		b.WriteString(strings.Join(extras, ","))
		b.WriteString("]")
	}
	b.WriteString(req.SpecifierString())
	if req.Marker != "" {
		b.WriteString(" ; ")
		b.WriteString(req.Marker)
	}
	for _, hash := range req.Hashes {
		b.WriteString(" --hash=")
		b.WriteString(hash)
	}
	return b.String()
}
