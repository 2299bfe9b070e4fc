package app

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqlock/internal/core"
)

func (s Service) Diff(req DiffRequest) (DiffResult, error) {
	beforePath := strings.TrimSpace(req.BeforePath)
	afterPath := strings.TrimSpace(req.AfterPath)
	if beforePath == "" || afterPath == "" {
		return DiffResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("diff requires two manifest paths")
	}
	before, err := s.Manifests.Load(beforePath, manifestType(req.Type))
	if err != nil {
		return DiffResult{}, err
	}
	after, err := s.Manifests.Load(afterPath, manifestType(req.Type))
	if err != nil {
		return DiffResult{}, err
	}
	return DiffResult{Result: core.Diff(before, after)}, nil
}
