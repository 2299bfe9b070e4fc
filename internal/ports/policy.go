package ports

import "reqlock/internal/types"

type PolicySourcePort interface {
	Load(path string) (types.PolicyFile, error)
}
