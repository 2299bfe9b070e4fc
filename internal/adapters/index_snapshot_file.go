package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"reqlock/internal/ports"
	"reqlock/internal/shared"
	"reqlock/internal/types"
)

// IndexSnapshotFileAdapter serves package versions from an on-disk
// snapshot. The file is loaded once and cached for the process.
type IndexSnapshotFileAdapter struct {
	Path   string
	cached types.IndexSnapshotFile
	loaded bool
}

func NewIndexSnapshotFileAdapter(path string) *IndexSnapshotFileAdapter {
	return &IndexSnapshotFileAdapter{Path: path}
}

func (a *IndexSnapshotFileAdapter) AvailableVersions(depType types.DependencyType, name string) ([]string, error) {
	index, err := a.load()
	if err != nil {
		return nil, err
	}
	switch depType {
	case types.DependencyTypeApt:
		return index.Apt[name], nil
	case types.DependencyTypePip:
		if versions, ok := index.Pip[name]; ok && len(versions) > 0 {
			return versions, nil
		}
		normalized := shared.NormalizeName(name)
		if normalized != name {
			return index.Pip[normalized], nil
		}
		return index.Pip[name], nil
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unknown dependency type")
	}
}

func (a *IndexSnapshotFileAdapter) load() (types.IndexSnapshotFile, error) {
	if a.loaded {
		return a.cached, nil
	}
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return types.IndexSnapshotFile{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("index snapshot file not found").
			WithCause(err)
	}
	var idx types.IndexSnapshotFile
	if err := yaml.Unmarshal(data, &idx); err != nil {
		return types.IndexSnapshotFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid index snapshot format").
			WithCause(err)
	}
	if idx.Pip == nil {
		idx.Pip = map[string][]string{}
	}
	if idx.Apt == nil {
		idx.Apt = map[string][]string{}
	}
	a.cached = idx
	a.loaded = true
	return idx, nil
}

var _ ports.IndexPort = (*IndexSnapshotFileAdapter)(nil)
