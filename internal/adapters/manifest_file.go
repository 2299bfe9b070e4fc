package adapters

import (
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqlock/internal/core"
	"reqlock/internal/ports"
	"reqlock/internal/types"
)

type ManifestFileAdapter struct{}

func NewManifestFileAdapter() ManifestFileAdapter {
	return ManifestFileAdapter{}
}

func (a ManifestFileAdapter) Load(path string, depType types.DependencyType) (types.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Manifest{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("manifest file not found").
			WithCause(err)
	}
	return core.ParseManifest(data, path, depType), nil
}

func (a ManifestFileAdapter) Write(path string, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create manifest directory").
				WithCause(err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write manifest").
			WithCause(err)
	}
	return nil
}

var _ ports.ManifestPort = ManifestFileAdapter{}
