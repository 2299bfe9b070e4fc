package app

import (
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqlock/internal/types"
)

func (s Service) Inspect(req InspectRequest) (InspectResult, error) {
	path := strings.TrimSpace(req.ManifestPath)
	if path == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is required")
	}
	manifest, err := s.Manifests.Load(path, manifestType(req.Type))
	if err != nil {
		return InspectResult{}, err
	}

	result := InspectResult{Path: path}
	counts := map[string]int{}
	for _, requirement := range manifest.Requirements() {
		result.Total++
		switch requirement.Kind {
		case types.RequirementKindPinned:
			result.Pinned++
		case types.RequirementKindRanged:
			result.Ranged++
		case types.RequirementKindBare:
			result.Bare++
		case types.RequirementKindEditable:
			result.Editable++
		case types.RequirementKindURL:
			result.URL++
		}
		counts[requirement.NormalizedName]++
	}
	for name, count := range counts {
		if count > 1 {
			result.Duplicates = append(result.Duplicates, name)
		}
	}
	sort.Strings(result.Duplicates)
	return result, nil
}
