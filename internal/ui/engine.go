package ui

import (
	"os"
)

// Engine holds the current stylesheet and nodes and lays them out for a screen size.
// Draw order is node order (first node drawn first, then on top the next); a parent must come
// before its children. Resolved styles are cached and only recomputed after Invalidate or Resize.
// Drawing is left to the renderer: Each yields visible nodes with their computed style.
type Engine struct {
	sheet  *Stylesheet
	nodes  []*Node
	styles []ComputedStyle
	dirty  bool
	width  float32
	height float32
}

// New creates an empty UI engine (no stylesheet, no nodes).
func New() *Engine {
	return &Engine{dirty: true}
}

// LoadCSS loads and parses a CSS file from path. Replaces the current stylesheet.
func (e *Engine) LoadCSS(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	sheet, err := ParseCSS(string(data))
	if err != nil {
		return err
	}
	e.SetStylesheet(sheet)
	return nil
}

// SetStylesheet sets the stylesheet directly (e.g. from embedded CSS).
func (e *Engine) SetStylesheet(sheet *Stylesheet) {
	e.sheet = sheet
	e.dirty = true
}

// AddNode appends a node. Nodes are drawn in order.
func (e *Engine) AddNode(n *Node) {
	e.nodes = append(e.nodes, n)
	e.dirty = true
}

// SetNodes replaces all nodes.
func (e *Engine) SetNodes(nodes []*Node) {
	e.nodes = nodes
	e.dirty = true
}

// Nodes returns the nodes in draw order.
func (e *Engine) Nodes() []*Node {
	return e.nodes
}

// Invalidate marks styles stale, e.g. after classes, inline styles, or visibility changed.
func (e *Engine) Invalidate() {
	e.dirty = true
}

// Resize sets the screen size nodes are laid out against.
func (e *Engine) Resize(width, height float32) {
	if width != e.width || height != e.height {
		e.width, e.height = width, height
		e.dirty = true
	}
}

// Update recomputes styles and bounds when stale.
func (e *Engine) Update() {
	if !e.dirty {
		return
	}
	e.styles = make([]ComputedStyle, len(e.nodes))
	for i, n := range e.nodes {
		e.styles[i] = ResolveProps(e.resolveProps(n))
		e.resolveBounds(n, e.styles[i])
	}
	e.dirty = false
}

// Style returns the computed style of n.
func (e *Engine) Style(n *Node) ComputedStyle {
	e.Update()
	for i, m := range e.nodes {
		if m == n {
			return e.styles[i]
		}
	}
	return DefaultComputedStyle()
}

// Each calls fn for every visible node in draw order.
func (e *Engine) Each(fn func(n *Node, style ComputedStyle)) {
	e.Update()
	for i, n := range e.nodes {
		if n.Visible() {
			fn(n, e.styles[i])
		}
	}
}

// HitTest returns the topmost visible interactive node containing (x, y), or nil.
func (e *Engine) HitTest(x, y float32) *Node {
	e.Update()
	for i := len(e.nodes) - 1; i >= 0; i-- {
		n := e.nodes[i]
		if n.Interactive() && n.Visible() && n.Bounds.Contains(x, y) {
			return n
		}
	}
	return nil
}

// resolveProps returns merged properties for a node: matching rules in order, then inline.
func (e *Engine) resolveProps(n *Node) map[string]string {
	merged := make(map[string]string)
	if e.sheet != nil {
		for _, rule := range e.sheet.Rules {
			if rule.Selector.Matches(n) {
				for k, v := range rule.Props {
					merged[k] = v
				}
			}
		}
	}
	for k, v := range n.Inline {
		merged[k] = v
	}
	return merged
}

// resolveBounds sets n.Bounds from style within the parent's bounds (or the screen).
func (e *Engine) resolveBounds(n *Node, style ComputedStyle) {
	box := Rect{W: e.width, H: e.height}
	if n.Parent != nil {
		box = n.Parent.Bounds
	}
	w := float32(style.Width)
	if style.WidthPct >= 0 {
		w = box.W * float32(style.WidthPct) / 100
	}
	h := float32(style.Height)
	if style.HeightPct >= 0 {
		h = box.H * float32(style.HeightPct) / 100
	}
	x := float32(style.Left)
	if style.LeftPct >= 0 {
		x = (box.W - w) * float32(style.LeftPct) / 100
	}
	y := float32(style.Top)
	if style.TopPct >= 0 {
		y = (box.H - h) * float32(style.TopPct) / 100
	}
	n.Bounds = Rect{X: box.X + x, Y: box.Y + y, W: w, H: h}
}

// HasStylesheet returns whether a stylesheet with rules is set.
func (e *Engine) HasStylesheet() bool {
	return e.sheet != nil && len(e.sheet.Rules) > 0
}

// Stylesheet returns the current stylesheet (may be nil).
func (e *Engine) Stylesheet() *Stylesheet {
	return e.sheet
}
