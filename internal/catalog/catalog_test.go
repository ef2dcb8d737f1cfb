package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_HasOriginalFurniture(t *testing.T) {
	c := Default()
	assert.Equal(t, []string{"chair", "sofa", "table", "bookshelf"}, c.IDs())

	chair, ok := c.Lookup("chair")
	require.True(t, ok)
	assert.Equal(t, Definition{ID: "chair", DisplayName: "Modern Chair", AssetRef: "assets/chair.glb", Scale: 0.5}, chair)

	sofa, err := c.Get("sofa")
	require.NoError(t, err)
	assert.Equal(t, "assets/sofa1.glb", sofa.AssetRef)
	assert.InDelta(t, 0.4, sofa.Scale, 1e-6)
}

func TestGet_UnknownType(t *testing.T) {
	_, err := Default().Get("lamp")
	assert.True(t, errors.Is(err, ErrUnknownType))
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", "furniture: []"},
		{"missing id", "furniture:\n  - model: a.glb\n    scale: 1"},
		{"missing model", "furniture:\n  - id: a\n    scale: 1"},
		{"zero scale", "furniture:\n  - id: a\n    model: a.glb"},
		{"duplicate", "furniture:\n  - {id: a, model: a.glb, scale: 1}\n  - {id: a, model: b.glb, scale: 1}"},
		{"bad yaml", "furniture: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestParse_DisplayNameDefaultsToID(t *testing.T) {
	c, err := Parse([]byte("furniture:\n  - {id: lamp, model: lamp.glb, scale: 2}"))
	require.NoError(t, err)
	d, _ := c.Lookup("lamp")
	assert.Equal(t, "lamp", d.DisplayName)
	assert.Equal(t, 1, c.Len())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("furniture:\n  - {id: stool, name: Bar Stool, model: stool.glb, scale: 0.3}"), 0644))
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"stool"}, c.IDs())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefinitions_AreCopies(t *testing.T) {
	c := Default()
	defs := c.Definitions()
	require.Len(t, defs, 4)
	defs[0].Scale = 99
	defs[1].AssetRef = "elsewhere.glb"
	d, _ := c.Lookup(defs[0].ID)
	assert.InDelta(t, 0.5, d.Scale, 1e-6)

	again := c.Definitions()
	assert.InDelta(t, 0.5, again[0].Scale, 1e-6)
	assert.NotEqual(t, "elsewhere.glb", again[1].AssetRef)
}
