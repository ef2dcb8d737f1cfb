package ui

import (
	_ "embed"
	"fmt"

	"ar-furniture/internal/catalog"
)

//go:embed default.css
var defaultCSS string

// DefaultStylesheet returns the built-in stylesheet.
func DefaultStylesheet() *Stylesheet {
	sheet, _ := ParseCSS(defaultCSS)
	return sheet
}

// Action is what a click on the overlay asks the application to do.
type Action int

const (
	ActionNone Action = iota
	ActionStart
	ActionExit
	ActionDelete
	ActionSelectType
)

func (a Action) String() string {
	switch a {
	case ActionStart:
		return "start"
	case ActionExit:
		return "exit"
	case ActionDelete:
		return "delete"
	case ActionSelectType:
		return "select"
	}
	return "none"
}

// Click is the outcome of a pointer press on the overlay. Handled is true when the point landed
// on an interactive element, even one with no action (a disabled button, the panel background).
type Click struct {
	Action  Action
	Type    string
	Handled bool
}

// Layout is the application overlay: a browsing view (title, start control, notice) and an AR
// view (exit and delete controls, instruction line, furniture panel with one card per type).
type Layout struct {
	engine *Engine

	hero     *Node
	start    *Node
	notice   *Node
	ar       *Node
	exit     *Node
	del      *Node
	status   *Node
	panel    *Node
	cards    []*Node
	selected string

	inspector *Inspector
}

// NewLayout builds the overlay with a card for each definition, in order. Starts in browsing
// view with the start control disabled.
func NewLayout(defs []catalog.Definition) *Layout {
	e := New()
	e.SetStylesheet(DefaultStylesheet())
	l := &Layout{engine: e}

	l.hero = l.add(NewNode("panel", "hero-section", "hero", ""), nil)
	l.add(NewNode("label", "hero-title", "", "AR Furniture"), l.hero)
	l.add(NewNode("label", "hero-subtitle", "", "Place virtual furniture in your room"), l.hero)
	l.start = l.add(NewNode("button", "", "startAR", "Start AR"), l.hero)
	l.notice = l.add(NewNode("label", "notice", "notice", ""), l.hero)
	l.notice.Hidden = true

	l.ar = l.add(NewNode("group", "ar-interface", "arInterface", ""), nil)
	l.exit = l.add(NewNode("button", "", "exitAR", "Exit AR"), l.ar)
	l.del = l.add(NewNode("button", "", "deleteBtn", "DELETE"), l.ar)
	l.status = l.add(NewNode("label", "instructions", "instructionText", ""), l.ar)
	l.status.Opaque = true
	l.panel = l.add(NewNode("panel", "furniture-panel", "furniturePanel", ""), l.ar)
	row := l.add(NewNode("group", "card-row", "", ""), l.panel)
	for i, d := range defs {
		card := l.add(NewNode("card", "furniture-card-mini", "", d.DisplayName), row)
		card.Data = map[string]string{"type": d.ID}
		card.Inline = map[string]string{"left": cardLeft(i, len(defs))}
		l.cards = append(l.cards, card)
	}
	l.inspector = NewInspector(e)

	l.SetStartEnabled(false)
	l.ShowBrowsing()
	l.ShowCatalog(false)
	return l
}

// cardLeft spreads n cards evenly across the row.
func cardLeft(i, n int) string {
	if n <= 1 {
		return "50%"
	}
	return fmt.Sprintf("%d%%", i*100/(n-1))
}

func (l *Layout) add(n, parent *Node) *Node {
	n.Parent = parent
	l.engine.AddNode(n)
	return n
}

// Engine returns the engine holding the overlay nodes.
func (l *Layout) Engine() *Engine {
	return l.engine
}

// Inspector returns the developer inspector panel.
func (l *Layout) Inspector() *Inspector {
	return l.inspector
}

// Resize lays the overlay out for a new screen size.
func (l *Layout) Resize(width, height float32) {
	l.engine.Resize(width, height)
	l.engine.Update()
}

// ShowBrowsing shows the title screen and hides the AR controls.
func (l *Layout) ShowBrowsing() {
	l.hero.Hidden = false
	l.ar.Hidden = true
	l.engine.Invalidate()
}

// ShowAR hides the title screen and shows the AR controls.
func (l *Layout) ShowAR() {
	l.hero.Hidden = true
	l.ar.Hidden = false
	l.engine.Invalidate()
}

// ShowCatalog shows or hides the furniture panel.
func (l *Layout) ShowCatalog(visible bool) {
	l.panel.Hidden = !visible
	l.engine.Invalidate()
}

// SetStartEnabled enables or disables the start control.
func (l *Layout) SetStartEnabled(enabled bool) {
	l.start.Disabled = !enabled
	l.start.SetClass("disabled", !enabled)
	l.engine.Invalidate()
}

// Notice shows a persistent message on the title screen.
func (l *Layout) Notice(text string) {
	l.notice.Text = text
	l.notice.Hidden = text == ""
}

// SetStatus replaces the instruction line.
func (l *Layout) SetStatus(text string) {
	l.status.Text = text
}

// Status returns the instruction line.
func (l *Layout) Status() string {
	return l.status.Text
}

// Highlight marks the card for typeID as selected and clears the others.
func (l *Layout) Highlight(typeID string) {
	l.selected = typeID
	for _, c := range l.cards {
		c.SetClass("selected", c.Data["type"] == typeID)
	}
	l.engine.Invalidate()
}

// Highlighted returns the highlighted furniture type ("" when none).
func (l *Layout) Highlighted() string {
	return l.selected
}

// Reserved reports whether (x, y) is covered by a visible interactive element.
func (l *Layout) Reserved(x, y float32) bool {
	return l.engine.HitTest(x, y) != nil
}

// Click resolves a pointer press at (x, y) to an action.
func (l *Layout) Click(x, y float32) Click {
	n := l.engine.HitTest(x, y)
	if n == nil {
		return Click{}
	}
	c := Click{Handled: true}
	if n.Disabled {
		return c
	}
	switch {
	case n == l.start:
		c.Action = ActionStart
	case n == l.exit:
		c.Action = ActionExit
	case n == l.del:
		c.Action = ActionDelete
	case n.Type == "card":
		c.Action = ActionSelectType
		c.Type = n.Data["type"]
	}
	return c
}

// InAR reports whether the AR controls are showing.
func (l *Layout) InAR() bool {
	return !l.ar.Hidden
}

// CatalogVisible reports whether the furniture panel is showing.
func (l *Layout) CatalogVisible() bool {
	return l.panel.Visible()
}

// StartEnabled reports whether the start control accepts clicks.
func (l *Layout) StartEnabled() bool {
	return !l.start.Disabled
}

// NoticeText returns the title-screen notice.
func (l *Layout) NoticeText() string {
	return l.notice.Text
}

// Card returns the card node for typeID, or nil.
func (l *Layout) Card(typeID string) *Node {
	for _, c := range l.cards {
		if c.Data["type"] == typeID {
			return c
		}
	}
	return nil
}

// Button returns the node with id ("startAR", "exitAR", "deleteBtn"), or nil.
func (l *Layout) Button(id string) *Node {
	for _, n := range l.engine.Nodes() {
		if n.ID == id {
			return n
		}
	}
	return nil
}
