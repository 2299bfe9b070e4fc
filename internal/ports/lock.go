package ports

import "reqlock/internal/types"

type LockWriterPort interface {
	Write(path string, lock types.LockManifest) error
}

type LockReaderPort interface {
	Read(path string) (types.LockManifest, error)
}
