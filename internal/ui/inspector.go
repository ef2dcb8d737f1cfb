package ui

import "fmt"

// Inspector is a right-side panel that shows the selected furniture item: type, position, scale,
// and how many mesh parts it has. Shown only while the developer console is open and an item is
// selected.
type Inspector struct {
	panel    *Node
	title    *Node
	name     *Node
	position *Node
	scale    *Node
	parts    *Node
}

// Selection holds the data shown in the inspector.
// Pass this from the application layer; ui does not depend on scene.
type Selection struct {
	Name     string
	Type     string
	Position [3]float32
	Scale    [3]float32
	Parts    int
}

// NewInspector adds the inspector nodes (styled by .inspector, .inspector-row) to e, hidden.
func NewInspector(e *Engine) *Inspector {
	in := &Inspector{panel: NewNode("panel", "inspector", "inspector", "")}
	in.panel.Hidden = true
	e.AddNode(in.panel)
	row := func(top int, text string) *Node {
		n := NewNode("label", "inspector-row", "", text)
		n.Parent = in.panel
		n.Inline = map[string]string{"top": fmt.Sprint(top)}
		e.AddNode(n)
		return n
	}
	in.title = row(8, "Inspector")
	in.name = row(36, "")
	in.position = row(60, "")
	in.scale = row(84, "")
	in.parts = row(108, "")
	return in
}

// Show updates the labels from sel and shows the panel.
func (in *Inspector) Show(sel Selection) {
	in.name.Text = fmt.Sprintf("Name: %s (%s)", sel.Name, sel.Type)
	in.position.Text = fmt.Sprintf("Position: %.2f, %.2f, %.2f", sel.Position[0], sel.Position[1], sel.Position[2])
	in.scale.Text = fmt.Sprintf("Scale: %.2f, %.2f, %.2f", sel.Scale[0], sel.Scale[1], sel.Scale[2])
	in.parts.Text = fmt.Sprintf("Parts: %d", sel.Parts)
	in.panel.Hidden = false
}

// Hide hides the panel.
func (in *Inspector) Hide() {
	in.panel.Hidden = true
}

// Visible reports whether the panel is shown.
func (in *Inspector) Visible() bool {
	return !in.panel.Hidden
}

// Lines returns the label texts, title first.
func (in *Inspector) Lines() []string {
	return []string{in.title.Text, in.name.Text, in.position.Text, in.scale.Text, in.parts.Text}
}
