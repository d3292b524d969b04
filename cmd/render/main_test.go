package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scanline-renderer/internal/batch"
)

func TestWriteManifest(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	path, err := writeManifest(dir, []batch.Result{{Name: "a", Image: "a.webp", Success: true}})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "manifest.json"), path)
	assert.FileExists(t, path)
}

func TestWriteManifestCreateFails(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	_, err := writeManifest(filepath.Join(blocker, "out"), nil)
	assert.ErrorContains(t, err, "manifest: create")
}
