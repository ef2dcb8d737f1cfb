package asset

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"ar-furniture/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
)

// ErrFormat is returned for data that is not a usable glTF model.
var ErrFormat = errors.New("asset: invalid model")

const (
	glbMagic   = 0x46546C67 // "glTF"
	glbVersion = 2
)

var identity = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// Decode builds a model node from binary (.glb) or JSON (.gltf) glTF data. The returned root is a
// KindModel node tagged with ref; glTF nodes become KindGroup children and every mesh becomes a
// KindPart carrying the local bounds from its POSITION accessors.
func Decode(data []byte, ref string) (*scene.Node, error) {
	if len(data) >= 8 && binary.LittleEndian.Uint32(data) == glbMagic {
		if v := binary.LittleEndian.Uint32(data[4:]); v != glbVersion {
			return nil, fmt.Errorf("%w: %s: glb version %d", ErrFormat, ref, v)
		}
	}
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(bytes.NewReader(data)).Decode(doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFormat, ref, err)
	}
	return build(doc, ref)
}

// build keeps only what placement needs: the node hierarchy and per-mesh bounds. Vertex data
// stays with the document; the renderer loads the file separately.
func build(doc *gltf.Document, ref string) (*scene.Node, error) {
	root := scene.NewNode(ref, scene.KindModel)
	root.AssetRef = ref

	b := builder{doc: doc, visiting: make(map[int]bool)}
	roots, err := b.rootNodes()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFormat, ref, err)
	}
	for _, idx := range roots {
		n, err := b.node(idx)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrFormat, ref, err)
		}
		root.Add(n)
	}
	if _, ok := root.WorldBounds(); !ok {
		return nil, fmt.Errorf("%w: %s: no mesh geometry", ErrFormat, ref)
	}
	return root, nil
}

type builder struct {
	doc      *gltf.Document
	visiting map[int]bool
}

// rootNodes returns the default scene's nodes, or every node no other node lists as a child.
func (b *builder) rootNodes() ([]int, error) {
	d := b.doc
	if len(d.Scenes) > 0 {
		i := 0
		if d.Scene != nil {
			i = int(*d.Scene)
		}
		if i < 0 || i >= len(d.Scenes) || d.Scenes[i] == nil {
			return nil, fmt.Errorf("scene %d out of range", i)
		}
		out := make([]int, 0, len(d.Scenes[i].Nodes))
		for _, n := range d.Scenes[i].Nodes {
			out = append(out, int(n))
		}
		return out, nil
	}
	child := make(map[int]bool)
	for _, n := range d.Nodes {
		if n == nil {
			continue
		}
		for _, c := range n.Children {
			child[int(c)] = true
		}
	}
	var out []int
	for i := range d.Nodes {
		if !child[i] {
			out = append(out, i)
		}
	}
	return out, nil
}

func (b *builder) node(idx int) (*scene.Node, error) {
	if idx < 0 || idx >= len(b.doc.Nodes) || b.doc.Nodes[idx] == nil {
		return nil, fmt.Errorf("node %d out of range", idx)
	}
	if b.visiting[idx] {
		return nil, fmt.Errorf("node %d is its own ancestor", idx)
	}
	b.visiting[idx] = true
	defer delete(b.visiting, idx)

	src := b.doc.Nodes[idx]
	name := src.Name
	if name == "" {
		name = fmt.Sprintf("node%d", idx)
	}
	n := scene.NewNode(name, scene.KindGroup)
	if err := applyTransform(n, src); err != nil {
		return nil, fmt.Errorf("node %d: %v", idx, err)
	}
	if src.Mesh != nil {
		part, err := b.mesh(int(*src.Mesh))
		if err != nil {
			return nil, err
		}
		n.Add(part)
	}
	for _, c := range src.Children {
		child, err := b.node(int(c))
		if err != nil {
			return nil, err
		}
		n.Add(child)
	}
	return n, nil
}

func (b *builder) mesh(idx int) (*scene.Node, error) {
	d := b.doc
	if idx < 0 || idx >= len(d.Meshes) || d.Meshes[idx] == nil {
		return nil, fmt.Errorf("mesh %d out of range", idx)
	}
	m := d.Meshes[idx]
	name := m.Name
	if name == "" {
		name = fmt.Sprintf("mesh%d", idx)
	}
	box := scene.EmptyAABB()
	for _, p := range m.Primitives {
		if p == nil {
			continue
		}
		pos, ok := p.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		ai := int(pos)
		if ai < 0 || ai >= len(d.Accessors) || d.Accessors[ai] == nil {
			return nil, fmt.Errorf("mesh %d: accessor %d out of range", idx, ai)
		}
		a := d.Accessors[ai]
		if len(a.Min) != 3 || len(a.Max) != 3 {
			return nil, fmt.Errorf("mesh %d: POSITION accessor %d has no min/max", idx, ai)
		}
		box = box.Union(scene.NewAABB(vec3(a.Min), vec3(a.Max)))
	}
	part := scene.NewNode(name, scene.KindPart)
	if !box.IsEmpty() {
		part.Bounds = &box
	}
	return part, nil
}

// applyTransform prefers an explicit matrix and falls back to TRS. Zero-valued TRS fields mean
// the glTF defaults.
func applyTransform(n *scene.Node, src *gltf.Node) error {
	if src.Matrix != identity && src.Matrix != ([16]float64{}) {
		var m mgl32.Mat4
		for i, v := range src.Matrix {
			m[i] = float32(v)
		}
		if m.Det() == 0 {
			return errors.New("singular matrix")
		}
		n.SetMatrix(m)
		return nil
	}
	n.Position = vec3(src.Translation[:])
	if r := src.Rotation; r != ([4]float64{}) {
		n.Rotation = mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}.Normalize()
	}
	if s := src.Scale; s != ([3]float64{}) {
		n.Scale = vec3(s[:])
	}
	return nil
}

func vec3(v []float64) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}
