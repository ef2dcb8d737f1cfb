package asset

import (
	"context"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ar-furniture/internal/scene"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chairJSON is a two-part chair: a seat at the origin and a back translated up and behind it.
const chairJSON = `{
  "asset": {"version": "2.0"},
  "scene": 0,
  "scenes": [{"nodes": [0]}],
  "nodes": [
    {"name": "Chair", "children": [1, 2]},
    {"name": "Seat", "mesh": 0},
    {"name": "Back", "mesh": 1, "translation": [0, 1, -0.5]}
  ],
  "meshes": [
    {"name": "SeatMesh", "primitives": [{"attributes": {"POSITION": 0}}]},
    {"primitives": [{"attributes": {"POSITION": 1, "NORMAL": 2}}]}
  ],
  "accessors": [
    {"min": [-0.5, 0, -0.5], "max": [0.5, 0.5, 0.5]},
    {"min": [-0.5, -0.5, -0.1], "max": [0.5, 0.5, 0.1]},
    {}
  ]
}`

const chunkJSON = 0x4E4F534A // "JSON"

func glb(t *testing.T, js string) []byte {
	t.Helper()
	body := []byte(js)
	for len(body)%4 != 0 {
		body = append(body, ' ')
	}
	out := make([]byte, 20, 20+len(body))
	binary.LittleEndian.PutUint32(out[0:], glbMagic)
	binary.LittleEndian.PutUint32(out[4:], glbVersion)
	binary.LittleEndian.PutUint32(out[8:], uint32(20+len(body)))
	binary.LittleEndian.PutUint32(out[12:], uint32(len(body)))
	binary.LittleEndian.PutUint32(out[16:], chunkJSON)
	return append(out, body...)
}

func names(nodes []*scene.Node) []string {
	var out []string
	for _, n := range nodes {
		out = append(out, n.Name)
	}
	return out
}

func TestDecode_GLBHierarchyAndBounds(t *testing.T) {
	root, err := Decode(glb(t, chairJSON), "assets/chair.glb")
	require.NoError(t, err)
	assert.Equal(t, scene.KindModel, root.Kind)
	assert.Equal(t, "assets/chair.glb", root.AssetRef)

	require.Len(t, root.Children(), 1)
	chair := root.Children()[0]
	assert.Equal(t, "Chair", chair.Name)
	assert.Equal(t, []string{"Seat", "Back"}, names(chair.Children()))

	seat := chair.Children()[0]
	require.Len(t, seat.Children(), 1)
	seatPart := seat.Children()[0]
	assert.Equal(t, scene.KindPart, seatPart.Kind)
	assert.Equal(t, "SeatMesh", seatPart.Name)
	require.NotNil(t, seatPart.Bounds)

	backPart := chair.Children()[1].Children()[0]
	assert.Equal(t, "mesh1", backPart.Name)

	box, ok := root.WorldBounds()
	require.True(t, ok)
	assert.InDelta(t, -0.6, box.Min.Z(), 1e-5)
	assert.InDelta(t, 1.5, box.Max.Y(), 1e-5)
}

func TestDecode_PlainJSONWithoutScenes(t *testing.T) {
	js := `{"nodes":[{"mesh":0,"scale":[2,2,2],"rotation":[0,0,0,1]}],
		"meshes":[{"primitives":[{"attributes":{"POSITION":0}}]}],
		"accessors":[{"min":[0,0,0],"max":[1,1,1]}]}`
	root, err := Decode([]byte(js), "box.gltf")
	require.NoError(t, err)
	box, ok := root.WorldBounds()
	require.True(t, ok)
	assert.InDelta(t, 2, box.Max.X(), 1e-5)
	assert.Equal(t, []string{"node0"}, names(root.Children()))
}

func TestDecode_MatrixNode(t *testing.T) {
	js := `{"nodes":[{"mesh":0,"matrix":[1,0,0,0, 0,1,0,0, 0,0,1,0, 3,0,0,1]}],
		"meshes":[{"primitives":[{"attributes":{"POSITION":0}}]}],
		"accessors":[{"min":[0,0,0],"max":[1,1,1]}]}`
	root, err := Decode([]byte(js), "m.gltf")
	require.NoError(t, err)
	box, _ := root.WorldBounds()
	assert.InDelta(t, 3, box.Min.X(), 1e-5)
	assert.InDelta(t, 4, box.Max.X(), 1e-5)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"not json", []byte("hello")},
		{"no geometry", []byte(`{"nodes":[{"name":"empty"}]}`)},
		{"mesh out of range", []byte(`{"nodes":[{"mesh":4}]}`)},
		{"cycle", []byte(`{"scenes":[{"nodes":[0]}],"nodes":[{"children":[1]},{"children":[0]}]}`)},
		{"missing min max", []byte(`{"nodes":[{"mesh":0}],"meshes":[{"primitives":[{"attributes":{"POSITION":0}}]}],"accessors":[{}]}`)},
		{"bad matrix", []byte(`{"nodes":[{"matrix":[1,2]}]}`)},
		{"truncated glb", glb(t, chairJSON)[:16]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data, "x.glb")
			assert.True(t, errors.Is(err, ErrFormat), "got %v", err)
		})
	}
}

func TestDecode_WrongGLBVersion(t *testing.T) {
	data := glb(t, chairJSON)
	binary.LittleEndian.PutUint32(data[4:], 1)
	_, err := Decode(data, "old.glb")
	assert.True(t, errors.Is(err, ErrFormat))
}

func TestLoader_LoadResolvesUnderRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "assets"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "assets", "chair.glb"), glb(t, chairJSON), 0644))

	l := NewLoader(root)
	assert.Equal(t, filepath.Join(root, "assets", "chair.glb"), l.Resolve("assets/chair.glb"))

	n, err := l.Load(context.Background(), "assets/chair.glb")
	require.NoError(t, err)
	assert.Equal(t, "assets/chair.glb", n.AssetRef)

	_, err = l.Load(context.Background(), "assets/sofa1.glb")
	assert.True(t, errors.Is(err, os.ErrNotExist))

	require.NoError(t, os.WriteFile(filepath.Join(root, "assets", "broken.glb"), []byte("not a model"), 0644))
	_, err = l.Load(context.Background(), "assets/broken.glb")
	assert.True(t, errors.Is(err, ErrFormat), "got %v", err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = l.Load(ctx, "assets/chair.glb")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoader_ExternalBufferNextToModel(t *testing.T) {
	root := t.TempDir()
	js := `{"buffers":[{"uri":"table.bin","byteLength":4}],
		"nodes":[{"name":"Table","mesh":0}],
		"meshes":[{"primitives":[{"attributes":{"POSITION":0}}]}],
		"accessors":[{"min":[-1,0,-0.5],"max":[1,0.8,0.5]}]}`
	require.NoError(t, os.WriteFile(filepath.Join(root, "table.gltf"), []byte(js), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "table.bin"), []byte{0, 0, 0, 0}, 0644))

	n, err := NewLoader(root).Load(context.Background(), "table.gltf")
	require.NoError(t, err)
	box, ok := n.WorldBounds()
	require.True(t, ok)
	assert.InDelta(t, 0.8, box.Max.Y(), 1e-5)
	assert.Equal(t, []string{"Table"}, names(n.Children()))
}

func TestLoader_PartsHaveDistinctIDs(t *testing.T) {
	a, err := Decode(glb(t, chairJSON), "a")
	require.NoError(t, err)
	b, err := Decode(glb(t, chairJSON), "b")
	require.NoError(t, err)
	seen := map[scene.NodeID]bool{}
	for _, r := range []*scene.Node{a, b} {
		r.Walk(func(n *scene.Node) bool {
			assert.False(t, seen[n.ID()])
			seen[n.ID()] = true
			return true
		})
	}
}
