package ui

import (
	"slices"
	"strings"
)

// Rect is a screen rectangle in pixels (origin top-left).
type Rect struct {
	X, Y, W, H float32
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Node is a single UI element: panel, label, button or card. Class and ID drive CSS matching,
// Inline holds per-node declarations applied after the stylesheet (like a style attribute).
// A node with a Parent is positioned relative to the parent's bounds and hidden with it.
type Node struct {
	Type     string // "panel", "label", "button", "card"
	Classes  []string
	ID       string
	Text     string
	Parent   *Node
	Hidden   bool
	Disabled bool
	Opaque   bool // swallows pointer presses without acting on them
	Data     map[string]string
	Inline   map[string]string
	Bounds   Rect
}

// NewNode creates a node with type, space-separated classes, id, and text.
func NewNode(typ, classes, id, text string) *Node {
	n := &Node{Type: typ, ID: id, Text: text}
	for _, c := range strings.Fields(classes) {
		n.AddClass(c)
	}
	return n
}

// HasClass reports whether the node carries class c.
func (n *Node) HasClass(c string) bool {
	return slices.Contains(n.Classes, c)
}

// AddClass adds class c once.
func (n *Node) AddClass(c string) {
	if !n.HasClass(c) {
		n.Classes = append(n.Classes, c)
	}
}

// RemoveClass removes class c if present.
func (n *Node) RemoveClass(c string) {
	n.Classes = slices.DeleteFunc(n.Classes, func(s string) bool { return s == c })
}

// SetClass adds or removes class c.
func (n *Node) SetClass(c string, on bool) {
	if on {
		n.AddClass(c)
	} else {
		n.RemoveClass(c)
	}
}

// Visible reports whether the node and all its ancestors are shown.
func (n *Node) Visible() bool {
	for p := n; p != nil; p = p.Parent {
		if p.Hidden {
			return false
		}
	}
	return true
}

// Interactive reports whether the node takes pointer input (covers the AR view).
func (n *Node) Interactive() bool {
	if n.Opaque {
		return true
	}
	switch n.Type {
	case "button", "card", "panel":
		return true
	}
	return false
}
