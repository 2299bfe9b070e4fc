package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"
	debversion "github.com/knqyf263/go-deb-version"

	"reqlock/internal/types"
)

// versionCache memoizes parsed version objects to avoid repeated parsing
// during specifier evaluation and sorting.
type versionCache struct {
	depType types.DependencyType
	deb     map[string]debversion.Version
	pep     map[string]pep440.Version
	spec    map[string]pep440.Specifiers
}

// newVersionCache creates an empty cache for the given dependency type.
func newVersionCache(depType types.DependencyType) *versionCache {
	return &versionCache{
		depType: depType,
		deb:     map[string]debversion.Version{},
		pep:     map[string]pep440.Version{},
		spec:    map[string]pep440.Specifiers{},
	}
}

// debVersion returns a parsed Debian version, caching the result.
func (c *versionCache) debVersion(value string) (debversion.Version, error) {
	if parsed, ok := c.deb[value]; ok {
		return parsed, nil
	}
	parsed, err := debversion.NewVersion(value)
	if err != nil {
		return debversion.Version{}, err
	}
	c.deb[value] = parsed
	return parsed, nil
}

// pepVersion returns a parsed PEP 440 version, caching the result.
func (c *versionCache) pepVersion(value string) (pep440.Version, error) {
	if parsed, ok := c.pep[value]; ok {
		return parsed, nil
	}
	parsed, err := pep440.Parse(value)
	if err != nil {
		return pep440.Version{}, err
	}
	c.pep[value] = parsed
	return parsed, nil
}

// pepSpec returns parsed PEP 440 specifiers, caching the result.
func (c *versionCache) pepSpec(value string) (pep440.Specifiers, error) {
	if parsed, ok := c.spec[value]; ok {
		return parsed, nil
	}
	parsed, err := pep440.NewSpecifiers(value)
	if err != nil {
		return pep440.Specifiers{}, err
	}
	c.spec[value] = parsed
	return parsed, nil
}

// compare returns -1, 0, or 1 comparing two version strings using the
// cache's dependency type semantics. Returns 0 on parse errors.
func (c *versionCache) compare(a string, b string) int {
	switch c.depType {
	case types.DependencyTypeApt:
		v1, err := c.debVersion(a)
		if err != nil {
			return 0
		}
		v2, err := c.debVersion(b)
		if err != nil {
			return 0
		}
		return v1.Compare(v2)
	case types.DependencyTypePip:
		v1, err := c.pepVersion(a)
		if err != nil {
			return 0
		}
		v2, err := c.pepVersion(b)
		if err != nil {
			return 0
		}
		return v1.Compare(v2)
	default:
		return 0
	}
}

// ValidateVersionString checks a version string against the ecosystem's
// version grammar: PEP 440 for pip, Debian policy for apt.
func ValidateVersionString(depType types.DependencyType, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("empty version string")
	}
	switch depType {
	case types.DependencyTypePip:
		// Wildcard suffixes ("1.4.*") are legal inside == and != clauses
		// even though they are not standalone versions.
		trimmed := strings.TrimSuffix(value, ".*")
		if _, err := pep440.Parse(trimmed); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid PEP 440 version %q", value)).
				WithCause(err)
		}
		return nil
	case types.DependencyTypeApt:
		if _, err := debversion.NewVersion(value); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid Debian version %q", value)).
				WithCause(err)
		}
		return nil
	default:
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unsupported dependency type")
	}
}

// BestCompatibleVersion selects the highest version from available that
// satisfies all of the requirement's specifiers. Returns an error when
// no compatible version exists.
func BestCompatibleVersion(req types.Requirement, available []string) (string, error) {
	if len(available) == 0 {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("no available versions for %s", req.Name))
	}
	cache := newVersionCache(req.Type)
	var candidates []string
	for _, version := range available {
		ok, err := satisfiesAll(req, version, cache)
		if err != nil {
			return "", err
		}
		if ok {
			candidates = append(candidates, version)
		}
	}
	if len(candidates) == 0 {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("no compatible version for %s%s", req.Name, req.SpecifierString()))
	}
	sort.Slice(candidates, func(i, j int) bool {
		return cache.compare(candidates[i], candidates[j]) > 0
	})
	return candidates[0], nil
}

// satisfiesAll dispatches to the type-specific specifier checker.
func satisfiesAll(req types.Requirement, version string, cache *versionCache) (bool, error) {
	if len(req.Specifiers) == 0 {
		return true, nil
	}
	switch req.Type {
	case types.DependencyTypeApt:
		return satisfiesDeb(version, req.Specifiers, cache)
	case types.DependencyTypePip:
		spec, err := cache.pepSpec(req.SpecifierString())
		if err != nil {
			return false, err
		}
		parsed, err := cache.pepVersion(version)
		if err != nil {
			return false, err
		}
		return spec.Check(parsed), nil
	default:
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unsupported dependency type")
	}
}

// satisfiesDeb checks a Debian version against all specifiers. Apt
// manifests only carry "=" pins but comparisons keep the full operator
// set so index snapshots can be filtered the same way as pip.
func satisfiesDeb(version string, specs []types.Specifier, cache *versionCache) (bool, error) {
	v, err := cache.debVersion(version)
	if err != nil {
		return false, err
	}
	for _, spec := range specs {
		c, err := cache.debVersion(spec.Version)
		if err != nil {
			return false, err
		}
		switch spec.Op {
		case types.SpecifierOpEq, types.SpecifierOpEq2, types.SpecifierOpEq3:
			if !v.Equal(c) {
				return false, nil
			}
		case types.SpecifierOpNe:
			if v.Equal(c) {
				return false, nil
			}
		case types.SpecifierOpGte:
			if v.LessThan(c) && !v.Equal(c) {
				return false, nil
			}
		case types.SpecifierOpLte:
			if v.GreaterThan(c) && !v.Equal(c) {
				return false, nil
			}
		case types.SpecifierOpGt:
			if !v.GreaterThan(c) {
				return false, nil
			}
		case types.SpecifierOpLt:
			if !v.LessThan(c) {
				return false, nil
			}
		default:
			return false, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("unsupported specifier operator")
		}
	}
	return true, nil
}

// CompareVersions returns -1, 0, or 1 using ecosystem semantics, or 0
// when either side fails to parse.
func CompareVersions(depType types.DependencyType, a string, b string) int {
	return newVersionCache(depType).compare(a, b)
}

// SortVersions orders version strings ascending using ecosystem
// semantics. Unparseable entries keep their relative position.
func SortVersions(depType types.DependencyType, versions []string) []string {
	cache := newVersionCache(depType)
	ordered := append([]string(nil), versions...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return cache.compare(ordered[i], ordered[j]) < 0
	})
	return ordered
}
