package app

import (
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqlock/internal/core"
)

// Format renders the canonical form of a manifest. With Write set the
// file is rewritten in place when it differs.
func (s Service) Format(req FormatRequest) (FormatResult, error) {
	path := strings.TrimSpace(req.ManifestPath)
	if path == "" {
		return FormatResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is required")
	}
	manifest, err := s.Manifests.Load(path, manifestType(req.Type))
	if err != nil {
		return FormatResult{}, err
	}
	if err := rejectInvalidLines(manifest); err != nil {
		return FormatResult{}, err
	}

	formatted := core.Format(manifest)
	original, err := os.ReadFile(path)
	if err != nil {
		return FormatResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("manifest file not found").
			WithCause(err)
	}
	changed := string(original) != formatted
	if req.Write && changed {
		if err := s.Manifests.Write(path, formatted); err != nil {
			return FormatResult{}, err
		}
	}
	return FormatResult{Formatted: formatted, Changed: changed}, nil
}
