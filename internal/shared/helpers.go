// Package shared provides common utility functions used across multiple
// packages in the reqlock codebase.
package shared

import (
	"fmt"
	"regexp"
	"strings"
)

var nameSeparatorRE = regexp.MustCompile(`[-_.]+`)

// NormalizeName lowercases a Python package name and collapses each run
// of hyphens, underscores, and dots to a single hyphen, following
// PEP 503 normalization. Apt names are already canonical and pass
// through unchanged except for whitespace trimming.
func NormalizeName(value string) string {
	lower := strings.ToLower(strings.TrimSpace(value))
	return nameSeparatorRE.ReplaceAllString(lower, "-")
}

// HTTPStatusError creates a formatted error for non-2xx HTTP responses.
func HTTPStatusError(status int, url string) error {
	return fmt.Errorf("status=%d url=%s", status, url)
}

// UniqueStrings returns values with duplicates removed, preserving the
// first occurrence order.
func UniqueStrings(values []string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
