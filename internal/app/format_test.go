package app

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatReportsChangedWithoutWriting(t *testing.T) {
	dir := t.TempDir()
	original := "Flask == 1.1.2\ngunicorn==20.1.0\n"
	path := writeFile(t, dir, "requirements.txt", original)

	result, err := newTestService().Format(FormatRequest{ManifestPath: path})
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, "flask==1.1.2\ngunicorn==20.1.0\n", result.Formatted)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}

func TestFormatWriteRewritesInPlace(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "requirements.txt", "gunicorn==20.1.0\nFlask==1.1.2\n")

	result, err := newTestService().Format(FormatRequest{ManifestPath: path, Write: true})
	require.NoError(t, err)
	assert.True(t, result.Changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "flask==1.1.2\ngunicorn==20.1.0\n", string(data))

	// A second run sees the canonical form and leaves the file alone.
	result, err = newTestService().Format(FormatRequest{ManifestPath: path, Write: true})
	require.NoError(t, err)
	assert.False(t, result.Changed)
}

func TestFormatRejectsInvalidManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "requirements.txt", "--frobnicate\n")

	_, err := newTestService().Format(FormatRequest{ManifestPath: path})
	require.Error(t, err)
}
