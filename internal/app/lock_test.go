package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockWritesPinnedManifest(t *testing.T) {
	dir := t.TempDir()
	manifest := writeFile(t, dir, "requirements.txt", "Flask>=1.1,<2.0\ngunicorn==20.1.0\nSQLAlchemy~=1.4.0\n")
	index := writeFile(t, dir, "index-snapshot.yaml", testIndexSnapshot)
	lockPath := filepath.Join(dir, "requirements.lock")

	result, err := newTestService().Lock(context.Background(), LockRequest{
		ManifestPath: manifest,
		IndexPath:    index,
		OutputPath:   lockPath,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Entries)
	assert.False(t, result.Stale)

	data, err := os.ReadFile(lockPath)
	require.NoError(t, err)
	content := string(data)
	// Highest compatible versions from the snapshot.
	assert.Contains(t, content, "flask==1.1.4\n")
	assert.Contains(t, content, "gunicorn==20.1.0\n")
	assert.Contains(t, content, "sqlalchemy==1.4.23\n")
	assert.Contains(t, content, "# generated: 2026-08-28T10:00:00Z\n")
}

func TestLockCheckDetectsStaleness(t *testing.T) {
	dir := t.TempDir()
	manifest := writeFile(t, dir, "requirements.txt", "flask==1.1.2\n")
	index := writeFile(t, dir, "index-snapshot.yaml", testIndexSnapshot)
	lockPath := filepath.Join(dir, "requirements.lock")
	service := newTestService()

	_, err := service.Lock(context.Background(), LockRequest{
		ManifestPath: manifest,
		IndexPath:    index,
		OutputPath:   lockPath,
	})
	require.NoError(t, err)

	result, err := service.Lock(context.Background(), LockRequest{
		ManifestPath: manifest,
		OutputPath:   lockPath,
		Check:        true,
	})
	require.NoError(t, err)
	assert.False(t, result.Stale)

	// Reformatting alone must not mark the lock stale.
	require.NoError(t, os.WriteFile(manifest, []byte("Flask == 1.1.2\n"), 0644))
	result, err = service.Lock(context.Background(), LockRequest{
		ManifestPath: manifest,
		OutputPath:   lockPath,
		Check:        true,
	})
	require.NoError(t, err)
	assert.False(t, result.Stale)

	require.NoError(t, os.WriteFile(manifest, []byte("flask==2.0.3\n"), 0644))
	result, err = service.Lock(context.Background(), LockRequest{
		ManifestPath: manifest,
		OutputPath:   lockPath,
		Check:        true,
	})
	require.NoError(t, err)
	assert.True(t, result.Stale)
}

func TestLockRejectsManifestWithSyntaxErrors(t *testing.T) {
	dir := t.TempDir()
	manifest := writeFile(t, dir, "requirements.txt", "==2.0\n")
	index := writeFile(t, dir, "index-snapshot.yaml", testIndexSnapshot)

	_, err := newTestService().Lock(context.Background(), LockRequest{
		ManifestPath: manifest,
		IndexPath:    index,
		OutputPath:   filepath.Join(dir, "requirements.lock"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "syntax errors")
}

func TestLockFailsWhenNoCompatibleVersion(t *testing.T) {
	dir := t.TempDir()
	manifest := writeFile(t, dir, "requirements.txt", "flask>=3.0\n")
	index := writeFile(t, dir, "index-snapshot.yaml", testIndexSnapshot)

	_, err := newTestService().Lock(context.Background(), LockRequest{
		ManifestPath: manifest,
		IndexPath:    index,
		OutputPath:   filepath.Join(dir, "requirements.lock"),
	})
	require.Error(t, err)
}

func TestLockRequiresPaths(t *testing.T) {
	service := newTestService()
	_, err := service.Lock(context.Background(), LockRequest{OutputPath: "out.lock"})
	require.Error(t, err)
	_, err = service.Lock(context.Background(), LockRequest{ManifestPath: "requirements.txt"})
	require.Error(t, err)
}
