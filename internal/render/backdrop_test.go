package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindBackdrop_FirstExistingFile(t *testing.T) {
	dir := t.TempDir()
	png := filepath.Join(dir, "panorama.png")
	require.NoError(t, os.WriteFile(png, []byte("png"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "panorama.jpg"), 0755))

	paths := []string{filepath.Join(dir, "missing.jpg"), filepath.Join(dir, "panorama.jpg"), png}
	assert.Equal(t, png, findBackdrop(paths))
	assert.Empty(t, findBackdrop(paths[:2]))
}

func TestIsPanorama(t *testing.T) {
	assert.True(t, isPanorama(4096, 2048))
	assert.True(t, isPanorama(3800, 2000))
	assert.False(t, isPanorama(1024, 1024), "square photo")
	assert.False(t, isPanorama(4096, 1024))
	assert.False(t, isPanorama(0, 0))
}
