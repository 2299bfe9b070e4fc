package app

import (
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqlock/internal/types"
)

// Convert extracts the dependency tables of a pyproject.toml into
// requirements manifest form, sorted by name.
func (s Service) Convert(req ConvertRequest) (ConvertResult, error) {
	path := strings.TrimSpace(req.PyProjectPath)
	if path == "" {
		return ConvertResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("pyproject path is required")
	}
	requirements, err := s.PyProject.Load(path)
	if err != nil {
		return ConvertResult{}, err
	}

	byName := map[string]types.Requirement{}
	for _, requirement := range requirements {
		if _, seen := byName[requirement.NormalizedName]; seen {
			continue
		}
		byName[requirement.NormalizedName] = requirement
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		requirement := byName[name]
		b.WriteString(requirement.NormalizedName)
		b.WriteString(requirement.SpecifierString())
		if requirement.Marker != "" {
			b.WriteString(" ; ")
			b.WriteString(requirement.Marker)
		}
		b.WriteString("\n")
	}
	rendered := b.String()

	if outputPath := strings.TrimSpace(req.OutputPath); outputPath != "" {
		if err := s.Manifests.Write(outputPath, rendered); err != nil {
			return ConvertResult{}, err
		}
	}
	return ConvertResult{
		Rendered:     rendered,
		Requirements: len(names),
	}, nil
}
