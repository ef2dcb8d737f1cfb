package scene

import "image/color"

// OutlineColor is the selection highlight color (yellow).
var OutlineColor = color.RGBA{R: 255, G: 255, B: 0, A: 255}

// Scene is a rooted node graph. Nodes added to the scene are children of the root.
type Scene struct {
	root *Node
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{root: NewNode("root", KindGroup)}
}

// Root returns the root node.
func (s *Scene) Root() *Node {
	return s.root
}

// Add parents n at the scene root.
func (s *Scene) Add(n *Node) {
	s.root.Add(n)
}

// Remove detaches n from the scene wherever it is parented. Returns false if n is not in the scene.
func (s *Scene) Remove(n *Node) bool {
	if n == nil || !s.Contains(n) {
		return false
	}
	n.RemoveFromParent()
	return true
}

// Contains reports whether n is attached under the root.
func (s *Scene) Contains(n *Node) bool {
	for p := n; p != nil; p = p.parent {
		if p == s.root {
			return true
		}
	}
	return false
}

// Find returns the node with id, or nil.
func (s *Scene) Find(id NodeID) *Node {
	var found *Node
	s.root.Walk(func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.id == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// Len returns the number of nodes parented directly at the root.
func (s *Scene) Len() int {
	return len(s.root.children)
}

// NewOutline returns a box-helper node bounding target's world geometry. The outline is meant
// to be parented at the scene root; its Bounds are world-space and its transform is identity.
func NewOutline(target *Node) *Node {
	o := NewNode("selection-outline", KindOutline)
	o.Color = OutlineColor
	o.Fit(target)
	return o
}

// Fit recomputes an outline's bounds around target.
func (n *Node) Fit(target *Node) {
	box, ok := target.WorldBounds()
	if !ok {
		p := target.WorldPosition()
		box = NewAABB(p, p)
	}
	n.Bounds = &box
}
