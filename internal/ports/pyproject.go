package ports

import "reqlock/internal/types"

// PyProjectPort extracts requirement records from a pyproject.toml
// (PEP 621 project.dependencies plus Poetry tables).
type PyProjectPort interface {
	Load(path string) ([]types.Requirement, error)
}
