package placement

import (
	"context"
	"errors"
	"fmt"

	"ar-furniture/internal/async"
	"ar-furniture/internal/catalog"
	"ar-furniture/internal/logger"
	"ar-furniture/internal/scene"
	"ar-furniture/internal/xr"
)

var (
	// ErrAssetLoad wraps any failure to load a furniture model.
	ErrAssetLoad = errors.New("placement: asset load failed")
	// ErrNoSelection is returned by DeleteSelected when nothing is selected.
	ErrNoSelection = errors.New("placement: nothing selected")
)

// Status messages shown on the instruction line.
const (
	MsgTapToSelect = "Tap on furniture to select it, then click DELETE to remove."
	MsgDeleted     = "Item deleted! Select furniture type to place more."
	MsgSelectFirst = "Select furniture first by tapping on it."
)

// Loader loads a model by asset reference. Called off the frame loop.
type Loader interface {
	Load(ctx context.Context, ref string) (*scene.Node, error)
}

// StatusSink receives instruction text.
type StatusSink interface {
	SetStatus(text string)
}

// Picker highlights the catalog entry for the pending furniture type.
type Picker interface {
	Highlight(typeID string)
}

// Regions reports screen points covered by interactive UI (panels, buttons).
type Regions interface {
	Reserved(x, y float32) bool
}

// Item is a placed furniture model.
type Item struct {
	Node *scene.Node
	Type string
}

// ID returns the item's root node id.
func (i *Item) ID() scene.NodeID {
	return i.Node.ID()
}

// Deps are the collaborators of a Manager. Active reports whether an AR session is running.
type Deps struct {
	Scene   *scene.Scene
	Catalog *catalog.Catalog
	Loader  Loader
	Queue   *async.Queue
	Log     *logger.Logger
	Status  StatusSink
	Picker  Picker
	Regions Regions
	Active  func() bool
}

// Manager owns placed items, the pending furniture type, and the single selection.
// All methods must be called from the frame-loop goroutine.
type Manager struct {
	Deps

	items    []*Item
	owners   map[scene.NodeID]*Item
	selected *Item
	outline  *scene.Node
	pending  string
	loading  int
	// gen invalidates loads in flight when Clear runs.
	gen uint64
}

// New returns a manager with no items and no pending type.
func New(d Deps) *Manager {
	return &Manager{Deps: d, owners: make(map[scene.NodeID]*Item)}
}

// SelectFurnitureType sets the type placed by the next confirm gesture, clears the current
// selection, and highlights the type in the picker. Works with or without a session.
func (m *Manager) SelectFurnitureType(id string) error {
	def, err := m.Catalog.Get(id)
	if err != nil {
		m.Log.Logf("placement: %v", err)
		return err
	}
	m.pending = id
	m.Deselect()
	if m.Picker != nil {
		m.Picker.Highlight(id)
	}
	m.Status.SetStatus(fmt.Sprintf("%s selected. Tap to place.", def.DisplayName))
	return nil
}

// PendingType returns the furniture type the next placement uses ("" when none).
func (m *Manager) PendingType() string {
	return m.pending
}

// ConfirmPlacement handles the confirm gesture. When the reticle is visible and a type is
// pending, the model loads in the background and is placed at pose once it arrives. Returns
// whether a load was started.
func (m *Manager) ConfirmPlacement(ctx context.Context, pose xr.Pose, reticleVisible bool) bool {
	if !reticleVisible || m.pending == "" {
		return false
	}
	def, ok := m.Catalog.Lookup(m.pending)
	if !ok {
		return false
	}
	gen := m.gen
	m.loading++
	async.Go(ctx, m.Queue, func(ctx context.Context) (*scene.Node, error) {
		return m.Loader.Load(ctx, def.AssetRef)
	}, func(node *scene.Node, err error) {
		if gen != m.gen {
			return
		}
		m.loading--
		if err != nil {
			m.Log.Logf("%v", fmt.Errorf("%w: %s (%s): %v", ErrAssetLoad, def.ID, def.AssetRef, err))
			m.Status.SetStatus(fmt.Sprintf("Error loading %s. Check console.", def.DisplayName))
			return
		}
		m.place(def, node, pose)
	})
	return true
}

func (m *Manager) place(def catalog.Definition, node *scene.Node, pose xr.Pose) {
	node.Kind = scene.KindModel
	node.Tag = def.ID
	node.SetUniformScale(def.Scale)
	node.Position = pose.Position()
	m.Scene.Add(node)

	item := &Item{Node: node, Type: def.ID}
	m.items = append(m.items, item)
	node.Walk(func(n *scene.Node) bool {
		m.owners[n.ID()] = item
		return true
	})
	m.Select(item)
	m.Status.SetStatus(fmt.Sprintf("%s placed and selected! Tap DELETE to remove.", def.DisplayName))
	m.Log.Logf("placement: placed %s at %.2f, %.2f, %.2f", def.ID, node.Position[0], node.Position[1], node.Position[2])
}

// HandleTap selects the placed item under screen point (x, y), or clears the selection when
// nothing is hit. Ignored inside reserved UI regions and when no session is active.
func (m *Manager) HandleTap(cam scene.Camera, x, y float32) {
	if m.Regions != nil && m.Regions.Reserved(x, y) {
		return
	}
	if m.Active != nil && !m.Active() {
		return
	}
	roots := make([]*scene.Node, len(m.items))
	for i, it := range m.items {
		roots[i] = it.Node
	}
	hits := scene.IntersectNodes(cam.RayFromScreen(x, y), roots, true)
	if len(hits) > 0 {
		if item, ok := m.owners[hits[0].Node.ID()]; ok {
			m.Select(item)
		}
		return
	}
	m.Deselect()
	m.Status.SetStatus(MsgTapToSelect)
}

// Select makes item the single selection and moves the outline onto it.
func (m *Manager) Select(item *Item) {
	m.Deselect()
	m.selected = item
	m.outline = scene.NewOutline(item.Node)
	m.Scene.Add(m.outline)
	m.Status.SetStatus(fmt.Sprintf("%s selected. Click DELETE to remove.", item.Type))
}

// Deselect clears the selection and removes the outline.
func (m *Manager) Deselect() {
	m.selected = nil
	if m.outline != nil {
		m.Scene.Remove(m.outline)
		m.outline = nil
	}
}

// DeleteSelected removes the selected item. With nothing selected it only updates the status
// and returns ErrNoSelection.
func (m *Manager) DeleteSelected() error {
	if m.selected == nil {
		m.Status.SetStatus(MsgSelectFirst)
		return ErrNoSelection
	}
	m.remove(m.selected)
	m.Deselect()
	m.Status.SetStatus(MsgDeleted)
	return nil
}

func (m *Manager) remove(item *Item) {
	m.Scene.Remove(item.Node)
	for i, it := range m.items {
		if it == item {
			m.items = append(m.items[:i], m.items[i+1:]...)
			break
		}
	}
	item.Node.Walk(func(n *scene.Node) bool {
		delete(m.owners, n.ID())
		return true
	})
}

// Clear removes every item, clears the selection, and discards loads still in flight.
func (m *Manager) Clear() {
	m.gen++
	m.loading = 0
	for _, it := range m.items {
		m.Scene.Remove(it.Node)
	}
	m.items = nil
	m.owners = make(map[scene.NodeID]*Item)
	m.Deselect()
}

// Items returns placed items in placement order.
func (m *Manager) Items() []*Item {
	out := make([]*Item, len(m.items))
	copy(out, m.items)
	return out
}

// Selected returns the selected item, or nil.
func (m *Manager) Selected() *Item {
	return m.selected
}

// Outline returns the selection outline node, or nil.
func (m *Manager) Outline() *scene.Node {
	return m.outline
}

// Owner returns the placed item that node id belongs to.
func (m *Manager) Owner(id scene.NodeID) (*Item, bool) {
	it, ok := m.owners[id]
	return it, ok
}

// Loading returns the number of model loads in flight.
func (m *Manager) Loading() int {
	return m.loading
}
