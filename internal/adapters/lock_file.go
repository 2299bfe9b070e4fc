package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/cespare/xxhash/v2"

	"reqlock/internal/ports"
	"reqlock/internal/types"
)

// Header comment keys written at the top of a lock manifest.
const (
	lockHeaderSource    = "# source: "
	lockHeaderDigest    = "# source-digest: "
	lockHeaderGenerated = "# generated: "
)

type LockFileAdapter struct{}

func NewLockFileAdapter() LockFileAdapter {
	return LockFileAdapter{}
}

// Digest computes the content digest recorded in lock headers. The
// prefix names the algorithm so the format can evolve.
func Digest(data []byte) string {
	return fmt.Sprintf("xxh64:%016x", xxhash.Sum64(data))
}

func (a LockFileAdapter) Write(path string, lock types.LockManifest) error {
	entries := append([]types.LockEntry(nil), lock.Entries...)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	var b strings.Builder
	b.WriteString("# Generated by reqlock. DO NOT EDIT.\n")
	b.WriteString(lockHeaderSource + lock.Header.SourcePath + "\n")
	b.WriteString(lockHeaderDigest + lock.Header.SourceDigest + "\n")
	b.WriteString(lockHeaderGenerated + lock.Header.GeneratedAt + "\n")
	for _, entry := range entries {
		if entry.Type == types.DependencyTypeApt {
			fmt.Fprintf(&b, "%s=%s\n", entry.Name, entry.Version)
			continue
		}
		fmt.Fprintf(&b, "%s==%s\n", entry.Name, entry.Version)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create lock directory").
				WithCause(err)
		}
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write lock manifest").
			WithCause(err)
	}
	return nil
}

func (a LockFileAdapter) Read(path string) (types.LockManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.LockManifest{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("lock manifest not found").
			WithCause(err)
	}
	var lock types.LockManifest
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			continue
		case strings.HasPrefix(trimmed, lockHeaderSource):
			lock.Header.SourcePath = strings.TrimPrefix(trimmed, lockHeaderSource)
		case strings.HasPrefix(trimmed, lockHeaderDigest):
			lock.Header.SourceDigest = strings.TrimPrefix(trimmed, lockHeaderDigest)
		case strings.HasPrefix(trimmed, lockHeaderGenerated):
			lock.Header.GeneratedAt = strings.TrimPrefix(trimmed, lockHeaderGenerated)
		case strings.HasPrefix(trimmed, "#"):
			continue
		case strings.Contains(trimmed, "=="):
			parts := strings.SplitN(trimmed, "==", 2)
			lock.Entries = append(lock.Entries, types.LockEntry{
				Name:    strings.TrimSpace(parts[0]),
				Version: strings.TrimSpace(parts[1]),
				Type:    types.DependencyTypePip,
			})
		case strings.Contains(trimmed, "="):
			parts := strings.SplitN(trimmed, "=", 2)
			lock.Entries = append(lock.Entries, types.LockEntry{
				Name:    strings.TrimSpace(parts[0]),
				Version: strings.TrimSpace(parts[1]),
				Type:    types.DependencyTypeApt,
			})
		default:
			return types.LockManifest{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("malformed lock line: %s", trimmed))
		}
	}
	return lock, nil
}

var _ ports.LockWriterPort = LockFileAdapter{}
var _ ports.LockReaderPort = LockFileAdapter{}
