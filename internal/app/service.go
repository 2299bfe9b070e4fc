package app

import (
	"time"

	"reqlock/internal/adapters"
	"reqlock/internal/ports"
)

type Service struct {
	Manifests    ports.ManifestPort
	PolicySource ports.PolicySourcePort
	PyProject    ports.PyProjectPort
	LockWriter   ports.LockWriterPort
	LockReader   ports.LockReaderPort
	IndexBuild   ports.IndexBuilderPort
	IndexWriter  ports.IndexWriterPort
	Clock        func() time.Time
}

func NewService() Service {
	lock := adapters.NewLockFileAdapter()
	return Service{
		Manifests:    adapters.NewManifestFileAdapter(),
		PolicySource: adapters.NewPolicyFileAdapter(),
		PyProject:    adapters.NewPyProjectFileAdapter(),
		LockWriter:   lock,
		LockReader:   lock,
		IndexBuild:   adapters.NewIndexBuilderAdapter(),
		IndexWriter:  adapters.NewIndexWriterAdapter(),
		Clock:        time.Now,
	}
}
