package ports

import "reqlock/internal/types"

type ManifestPort interface {
	Load(path string, depType types.DependencyType) (types.Manifest, error)
	Write(path string, content string) error
}
