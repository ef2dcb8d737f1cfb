package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefault(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestLoad_InvalidJSONReturnsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ar.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestSaveLoad_RoundTripKeepsDefaultsForMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "ar.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(`{"show_fps": true, "catalog_path": "cat.yaml", "window_width": -3}`), 0644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.True(t, p.ShowFPS)
	assert.Equal(t, "cat.yaml", p.CatalogPath)
	assert.Equal(t, Default().AssetRoot, p.AssetRoot)
	assert.Equal(t, Default().WindowWidth, p.WindowWidth)
	assert.Equal(t, Default().HitRange, p.HitRange)
	assert.True(t, p.GridVisible, "absent grid_visible keeps the default")

	p.SimulateUnsupported = true
	require.NoError(t, Save(path, p))
	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, p, again)
}

func TestLoadEnv_AndApplyEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("AR_CATALOG=\"custom.yaml\"\n# comment\nAR_ASSET_ROOT=/srv/assets\n"), 0644))
	t.Setenv(EnvCatalog, "")
	t.Setenv(EnvAssetRoot, "")
	os.Unsetenv(EnvCatalog)
	os.Unsetenv(EnvAssetRoot)

	require.NoError(t, LoadEnv(filepath.Join(dir, "missing.env"), envFile))

	p := Default()
	p.ApplyEnv()
	assert.Equal(t, "custom.yaml", p.CatalogPath)
	assert.Equal(t, "/srv/assets", p.AssetRoot)
	assert.Equal(t, Default().LogPath, p.LogPath)
}

func TestPath_EnvOverride(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	assert.Equal(t, DefaultPath, Path())
	t.Setenv(EnvConfigPath, "other.json")
	assert.Equal(t, "other.json", Path())
}
