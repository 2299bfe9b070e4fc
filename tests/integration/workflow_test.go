package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reqlock/internal/app"
	"reqlock/internal/types"
)

// TestConvertValidateLockFlow exercises the workflow a project adopting
// pinned manifests would follow:
//
//	convert pyproject.toml -> validate -> lock -> lock --check
func TestConvertValidateLockFlow(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	service := app.NewService()
	service.Clock = fixedClock

	pyprojectPath := filepath.Join(dir, "pyproject.toml")
	require.NoError(t, os.WriteFile(pyprojectPath, []byte(`[project]
name = "contacts"
dependencies = [
  "Flask>=1.1,<2.0",
  "SQLAlchemy~=1.4.0",
  "gunicorn",
]
`), 0644))

	manifestPath := filepath.Join(dir, "requirements.txt")
	convertResult, err := service.Convert(app.ConvertRequest{
		PyProjectPath: pyprojectPath,
		OutputPath:    manifestPath,
	})
	require.NoError(t, err)
	require.Equal(t, 3, convertResult.Requirements)

	// The converted manifest is grammatical but not pinned.
	validateResult, err := service.Validate(ctx, app.ValidateRequest{
		ManifestPaths: []string{manifestPath},
	})
	require.NoError(t, err)
	assert.True(t, validateResult.Report.Clean())

	strictResult, err := service.Validate(ctx, app.ValidateRequest{
		ManifestPaths: []string{manifestPath},
		Strict:        true,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, strictResult.Report.Errors())

	indexPath := filepath.Join(dir, "index-snapshot.yaml")
	require.NoError(t, os.WriteFile(indexPath, []byte(`pip:
  flask:
    - "1.1.2"
    - "1.1.4"
    - "2.0.3"
  sqlalchemy:
    - "1.4.11"
    - "1.4.23"
  gunicorn:
    - "20.1.0"
`), 0644))

	lockPath := filepath.Join(dir, "requirements.lock")
	lockResult, err := service.Lock(ctx, app.LockRequest{
		ManifestPath: manifestPath,
		IndexPath:    indexPath,
		OutputPath:   lockPath,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, lockResult.Entries)

	// The locked manifest itself validates cleanly under strict policy.
	lockValidate, err := service.Validate(ctx, app.ValidateRequest{
		ManifestPaths: []string{lockPath},
		Strict:        true,
	})
	require.NoError(t, err)
	assert.True(t, lockValidate.Report.Clean())

	checkResult, err := service.Lock(ctx, app.LockRequest{
		ManifestPath: manifestPath,
		OutputPath:   lockPath,
		Check:        true,
	})
	require.NoError(t, err)
	assert.False(t, checkResult.Stale)

	// Reformatting must not invalidate the lock; a real edit must.
	formatResult, err := service.Format(app.FormatRequest{ManifestPath: manifestPath, Write: true})
	require.NoError(t, err)
	if formatResult.Changed {
		checkResult, err = service.Lock(ctx, app.LockRequest{
			ManifestPath: manifestPath,
			OutputPath:   lockPath,
			Check:        true,
		})
		require.NoError(t, err)
		assert.False(t, checkResult.Stale)
	}

	require.NoError(t, os.WriteFile(manifestPath, []byte("flask>=1.1,<2.0\ngunicorn\nsqlalchemy~=1.4.0\nrequests>=2.20\n"), 0644))
	checkResult, err = service.Lock(ctx, app.LockRequest{
		ManifestPath: manifestPath,
		OutputPath:   lockPath,
		Check:        true,
	})
	require.NoError(t, err)
	assert.True(t, checkResult.Stale)
}

// TestAptManifestFlow validates and locks a companion apt manifest with
// Debian version semantics.
func TestAptManifestFlow(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	service := app.NewService()
	service.Clock = fixedClock

	manifestPath := filepath.Join(dir, "packages.txt")
	require.NoError(t, os.WriteFile(manifestPath, []byte("libpq5=14.5-0ubuntu0.22.04.1\nca-certificates=20230311ubuntu0.22.04.1\n"), 0644))

	validateResult, err := service.Validate(ctx, app.ValidateRequest{
		ManifestPaths: []string{manifestPath},
		Type:          types.DependencyTypeApt,
	})
	require.NoError(t, err)
	assert.True(t, validateResult.Report.Clean())

	indexPath := filepath.Join(dir, "index-snapshot.yaml")
	require.NoError(t, os.WriteFile(indexPath, []byte(`apt:
  libpq5:
    - "12.9-0ubuntu0.20.04.1"
    - "14.5-0ubuntu0.22.04.1"
  ca-certificates:
    - "20211016"
    - "20230311ubuntu0.22.04.1"
`), 0644))

	lockPath := filepath.Join(dir, "packages.lock")
	lockResult, err := service.Lock(ctx, app.LockRequest{
		ManifestPath: manifestPath,
		Type:         types.DependencyTypeApt,
		IndexPath:    indexPath,
		OutputPath:   lockPath,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, lockResult.Entries)

	lock, err := service.LockReader.Read(lockPath)
	require.NoError(t, err)
	for _, entry := range lock.Entries {
		assert.Equal(t, types.DependencyTypeApt, entry.Type)
	}
}
