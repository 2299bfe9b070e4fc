package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectCountsRequirementKinds(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "requirements.txt", `# app deps
flask==1.1.2
Flask==2.0.3
requests>=2.20
gunicorn
-e ./local/pkg
mypkg @ https://example.com/mypkg-1.0.tar.gz
`)

	result, err := newTestService().Inspect(InspectRequest{ManifestPath: path})
	require.NoError(t, err)
	assert.Equal(t, 6, result.Total)
	assert.Equal(t, 2, result.Pinned)
	assert.Equal(t, 1, result.Ranged)
	assert.Equal(t, 1, result.Bare)
	assert.Equal(t, 1, result.Editable)
	assert.Equal(t, 1, result.URL)
	assert.Equal(t, []string{"flask"}, result.Duplicates)
}

func TestInspectRequiresManifestPath(t *testing.T) {
	_, err := newTestService().Inspect(InspectRequest{})
	require.Error(t, err)
}
