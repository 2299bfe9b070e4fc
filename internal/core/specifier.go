package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqlock/internal/types"
)

// opTokens is the ordered list of specifier operators tried during
// parsing. Longer tokens must precede shorter ones to avoid false matches
// (e.g. "===" before "==" before "=").
var opTokens = []types.SpecifierOp{
	types.SpecifierOpEq3,
	types.SpecifierOpGte,
	types.SpecifierOpLte,
	types.SpecifierOpCompat,
	types.SpecifierOpNe,
	types.SpecifierOpEq2,
	types.SpecifierOpEq,
	types.SpecifierOpGt,
	types.SpecifierOpLt,
}

// ParseSpecifierSet splits a comma-joined specifier string such as
// ">=1.0,<2.0" into individual clauses. An empty input yields no
// specifiers, which is a bare requirement.
func ParseSpecifierSet(raw string) ([]types.Specifier, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var out []types.Specifier
	for _, clause := range strings.Split(raw, ",") {
		spec, err := parseSpecifier(clause)
		if err != nil {
			return nil, err
		}
		out = append(out, spec)
	}
	return out, nil
}

func parseSpecifier(clause string) (types.Specifier, error) {
	clause = strings.TrimSpace(clause)
	if clause == "" {
		return types.Specifier{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("empty specifier clause")
	}
	for _, op := range opTokens {
		if strings.HasPrefix(clause, string(op)) {
			version := strings.TrimSpace(clause[len(op):])
			if version == "" {
				return types.Specifier{}, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("specifier %q is missing a version", clause))
			}
			return types.Specifier{Op: op, Version: version}, nil
		}
	}
	return types.Specifier{}, errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("specifier %q has no recognized operator", clause))
}

// SplitNameAndSpecifiers locates the first operator occurrence in a
// requirement body and splits it into the name part and the raw
// specifier set. A body without operators is returned whole with an
// empty specifier string.
func SplitNameAndSpecifiers(body string) (string, string) {
	best := -1
	for _, op := range opTokens {
		idx := strings.Index(body, string(op))
		if idx < 0 {
			continue
		}
		if best < 0 || idx < best {
			best = idx
		}
	}
	if best < 0 {
		return strings.TrimSpace(body), ""
	}
	return strings.TrimSpace(body[:best]), strings.TrimSpace(body[best:])
}
