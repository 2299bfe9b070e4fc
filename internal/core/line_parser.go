package core

import (
	"fmt"
	"regexp"
	"strings"

	"reqlock/internal/shared"
	"reqlock/internal/types"
)

// pipNameRE is the PEP 508 package name grammar.
var pipNameRE = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?$`)

// aptNameRE is the Debian source/binary package name grammar.
var aptNameRE = regexp.MustCompile(`^[a-z0-9][a-z0-9+.-]+$`)

// globalOptions are the pip requirements-file options accepted on their
// own line. Values map to whether the option takes an argument.
var globalOptions = map[string]bool{
	"-r": true, "--requirement": true,
	"-c": true, "--constraint": true,
	"-i": true, "--index-url": true,
	"-f": true, "--find-links": true,
	"--extra-index-url": true,
	"--trusted-host":    true,
	"--no-binary":       true,
	"--only-binary":     true,
	"--no-index":        false,
	"--pre":             false,
	"--require-hashes":  false,
}

// ParseManifest parses raw manifest bytes into ordered lines. Syntax
// problems never abort the parse: offending lines are recorded as
// LineKindInvalid with the reason, so the linter can report all of them
// in one pass.
func ParseManifest(data []byte, path string, depType types.DependencyType) types.Manifest {
	manifest := types.Manifest{
		Path: path,
		Type: depType,
	}
	physical := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	for i := 0; i < len(physical); i++ {
		start := i
		logical := physical[i]
		for strings.HasSuffix(logical, "\\") && i+1 < len(physical) {
			i++
			logical = strings.TrimSuffix(logical, "\\") + " " + strings.TrimSpace(physical[i])
		}
		// Drop a phantom trailing line from a final newline.
		if i == len(physical)-1 && logical == "" && len(physical) > 1 {
			break
		}
		manifest.Lines = append(manifest.Lines, parseLine(logical, start+1, path, depType))
	}
	return manifest
}

func parseLine(raw string, number int, path string, depType types.DependencyType) types.ManifestLine {
	line := types.ManifestLine{Number: number, Raw: raw}
	trimmed := strings.TrimSpace(raw)
	switch {
	case trimmed == "":
		line.Kind = types.LineKindBlank
		return line
	case strings.HasPrefix(trimmed, "#"):
		line.Kind = types.LineKindComment
		return line
	}
	trimmed = stripInlineComment(trimmed)
	if depType == types.DependencyTypeApt {
		return parseAptLine(line, trimmed, path)
	}
	if strings.HasPrefix(trimmed, "-") {
		return parsePipOption(line, trimmed, path)
	}
	return parsePipRequirement(line, trimmed, path)
}

// stripInlineComment removes a trailing comment. Pip requires whitespace
// before the hash so version epochs like "1.0#beta" are left alone.
func stripInlineComment(value string) string {
	if idx := strings.Index(value, " #"); idx >= 0 {
		return strings.TrimSpace(value[:idx])
	}
	if idx := strings.Index(value, "\t#"); idx >= 0 {
		return strings.TrimSpace(value[:idx])
	}
	return value
}

func parseAptLine(line types.ManifestLine, body string, path string) types.ManifestLine {
	parts := strings.SplitN(body, "=", 2)
	name := strings.TrimSpace(parts[0])
	if !aptNameRE.MatchString(name) {
		return invalidLine(line, fmt.Sprintf("invalid apt package name %q", name))
	}
	req := types.Requirement{
		Name:           name,
		NormalizedName: name,
		Type:           types.DependencyTypeApt,
		Kind:           types.RequirementKindBare,
		Source:         path,
		Line:           line.Number,
	}
	if len(parts) == 2 {
		version := strings.TrimSpace(parts[1])
		if version == "" {
			return invalidLine(line, fmt.Sprintf("missing version after %q=", name))
		}
		req.Kind = types.RequirementKindPinned
		req.Specifiers = []types.Specifier{{Op: types.SpecifierOpEq, Version: version}}
	}
	line.Kind = types.LineKindRequirement
	line.Requirement = &req
	return line
}

func parsePipOption(line types.ManifestLine, body string, path string) types.ManifestLine {
	fields := strings.Fields(body)
	option := fields[0]
	if idx := strings.Index(option, "="); idx > 0 {
		option = option[:idx]
	}
	if option == "-e" || option == "--editable" {
		if len(fields) < 2 {
			return invalidLine(line, "editable requirement is missing a target")
		}
		line.Kind = types.LineKindRequirement
		line.Requirement = &types.Requirement{
			Name:           fields[1],
			NormalizedName: shared.NormalizeName(fields[1]),
			Type:           types.DependencyTypePip,
			Kind:           types.RequirementKindEditable,
			URL:            fields[1],
			Source:         path,
			Line:           line.Number,
		}
		return line
	}
	takesArg, known := globalOptions[option]
	if !known {
		return invalidLine(line, fmt.Sprintf("unknown option %q", option))
	}
	if takesArg && len(fields) < 2 && !strings.Contains(fields[0], "=") {
		return invalidLine(line, fmt.Sprintf("option %q is missing its argument", option))
	}
	line.Kind = types.LineKindOption
	return line
}

func parsePipRequirement(line types.ManifestLine, body string, path string) types.ManifestLine {
	req := types.Requirement{
		Type:   types.DependencyTypePip,
		Source: path,
		Line:   line.Number,
	}

	// Per-requirement hash options trail the specifier.
	for {
		idx := strings.Index(body, "--hash=")
		if idx < 0 {
			break
		}
		rest := body[idx+len("--hash="):]
		end := strings.IndexAny(rest, " \t")
		if end < 0 {
			end = len(rest)
		}
		req.Hashes = append(req.Hashes, rest[:end])
		body = strings.TrimSpace(body[:idx] + rest[end:])
	}

	// Environment marker.
	if idx := strings.Index(body, ";"); idx >= 0 {
		req.Marker = strings.TrimSpace(body[idx+1:])
		body = strings.TrimSpace(body[:idx])
		if req.Marker == "" {
			return invalidLine(line, "empty environment marker")
		}
	}

	// Direct reference: "name @ url".
	if idx := strings.Index(body, "@"); idx >= 0 {
		name := strings.TrimSpace(body[:idx])
		url := strings.TrimSpace(body[idx+1:])
		name, extras, err := splitExtras(name)
		if err != nil {
			return invalidLine(line, err.Error())
		}
		if !pipNameRE.MatchString(name) {
			return invalidLine(line, fmt.Sprintf("invalid package name %q", name))
		}
		if url == "" {
			return invalidLine(line, fmt.Sprintf("direct reference for %q is missing a URL", name))
		}
		req.Name = name
		req.NormalizedName = shared.NormalizeName(name)
		req.Extras = extras
		req.Kind = types.RequirementKindURL
		req.URL = url
		line.Kind = types.LineKindRequirement
		line.Requirement = &req
		return line
	}

	namePart, specPart := SplitNameAndSpecifiers(body)
	name, extras, err := splitExtras(namePart)
	if err != nil {
		return invalidLine(line, err.Error())
	}
	if !pipNameRE.MatchString(name) {
		return invalidLine(line, fmt.Sprintf("invalid package name %q", name))
	}
	specs, err := ParseSpecifierSet(specPart)
	if err != nil {
		return invalidLine(line, err.Error())
	}
	// A single "=" is apt syntax; PEP 508 requires "==".
	for _, spec := range specs {
		if spec.Op == types.SpecifierOpEq {
			return invalidLine(line, fmt.Sprintf("invalid operator \"=\" for %s; use \"==\"", name))
		}
	}

	req.Name = name
	req.NormalizedName = shared.NormalizeName(name)
	req.Extras = extras
	req.Specifiers = specs
	req.Kind = classifyKind(req)
	line.Kind = types.LineKindRequirement
	line.Requirement = &req
	return line
}

func splitExtras(name string) (string, []string, error) {
	open := strings.Index(name, "[")
	if open < 0 {
		return strings.TrimSpace(name), nil, nil
	}
	end := strings.Index(name, "]")
	if end < open {
		return "", nil, fmt.Errorf("unbalanced extras bracket in %q", name)
	}
	var extras []string
	for _, extra := range strings.Split(name[open+1:end], ",") {
		extra = strings.TrimSpace(extra)
		if extra != "" {
			extras = append(extras, extra)
		}
	}
	return strings.TrimSpace(name[:open]), extras, nil
}

func classifyKind(req types.Requirement) types.RequirementKind {
	if len(req.Specifiers) == 0 {
		return types.RequirementKindBare
	}
	if req.PinnedVersion() != "" {
		return types.RequirementKindPinned
	}
	return types.RequirementKindRanged
}

func invalidLine(line types.ManifestLine, reason string) types.ManifestLine {
	line.Kind = types.LineKindInvalid
	line.ParseError = reason
	return line
}
