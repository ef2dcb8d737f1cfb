package scene

import (
	"image/color"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
)

// NodeID is a stable identifier assigned to every node at creation. Unique within the process.
type NodeID uint64

var lastID atomic.Uint64

// Kind tells the renderer how to draw a node.
type Kind int

const (
	KindGroup   Kind = iota // transform only
	KindPart                // mesh sub-part of a model; carries local bounds, drawn as part of its model
	KindModel               // root of a loaded asset; drawn from AssetRef
	KindReticle             // placement cursor
	KindOutline             // selection box; Bounds are world-space
)

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindPart:
		return "part"
	case KindModel:
		return "model"
	case KindReticle:
		return "reticle"
	case KindOutline:
		return "outline"
	default:
		return "unknown"
	}
}

// Node is an element of the scene graph. Its local transform is Position/Rotation/Scale unless a
// manual matrix was set with SetMatrix (the reticle follows hit-test poses that way).
type Node struct {
	Name     string
	Kind     Kind
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
	Visible  bool
	// Bounds is the local-space box of the node's own geometry; nil for pure transforms.
	Bounds *AABB
	// AssetRef is the model reference for KindModel nodes.
	AssetRef string
	// Tag carries application data, e.g. the furniture type of a placed model.
	Tag   string
	Color color.RGBA

	id       NodeID
	matrix   *mgl32.Mat4
	parent   *Node
	children []*Node
}

// NewNode returns a visible node with identity transform and a fresh id.
func NewNode(name string, kind Kind) *Node {
	return &Node{
		Name:     name,
		Kind:     kind,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
		Visible:  true,
		id:       NodeID(lastID.Add(1)),
	}
}

// ID returns the node's stable identifier.
func (n *Node) ID() NodeID {
	return n.id
}

// Parent returns the parent node, or nil for a root or detached node.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Add attaches child to n, detaching it from any previous parent.
func (n *Node) Add(child *Node) {
	if child == nil || child == n {
		return
	}
	child.RemoveFromParent()
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child from n. Returns false if child was not a direct child.
func (n *Node) Remove(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// RemoveFromParent detaches n from its parent, if any.
func (n *Node) RemoveFromParent() {
	if n.parent != nil {
		n.parent.Remove(n)
	}
}

// SetUniformScale sets the same scale on all three axes.
func (n *Node) SetUniformScale(s float32) {
	n.Scale = mgl32.Vec3{s, s, s}
}

// SetMatrix overrides the local transform with m until ClearMatrix is called.
func (n *Node) SetMatrix(m mgl32.Mat4) {
	n.matrix = &m
}

// ClearMatrix returns the node to Position/Rotation/Scale.
func (n *Node) ClearMatrix() {
	n.matrix = nil
}

// LocalMatrix returns the transform relative to the parent.
func (n *Node) LocalMatrix() mgl32.Mat4 {
	if n.matrix != nil {
		return *n.matrix
	}
	t := mgl32.Translate3D(n.Position[0], n.Position[1], n.Position[2])
	s := mgl32.Scale3D(n.Scale[0], n.Scale[1], n.Scale[2])
	return t.Mul4(n.Rotation.Mat4()).Mul4(s)
}

// WorldMatrix returns the transform from the node's space to world space.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// WorldPosition returns the node's origin in world space.
func (n *Node) WorldPosition() mgl32.Vec3 {
	return n.WorldMatrix().Col(3).Vec3()
}

// Walk calls fn for n and its descendants, depth first. Returning false skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// WorldBounds returns the world-space box around every node in the subtree that has Bounds.
// The second result is false when the subtree has no geometry.
func (n *Node) WorldBounds() (AABB, bool) {
	box := EmptyAABB()
	n.Walk(func(c *Node) bool {
		if c.Bounds != nil {
			box = box.Union(c.Bounds.Transform(c.WorldMatrix()))
		}
		return true
	})
	return box, !box.IsEmpty()
}
