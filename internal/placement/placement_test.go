package placement

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"ar-furniture/internal/async"
	"ar-furniture/internal/catalog"
	"ar-furniture/internal/logger"
	"ar-furniture/internal/scene"
	"ar-furniture/internal/xr"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLoader builds a model with one unit-cube part. refs listed in fail return an error.
type fakeLoader struct {
	fail  map[string]bool
	calls atomic.Int32
	gate  chan struct{}
}

func (l *fakeLoader) Load(ctx context.Context, ref string) (*scene.Node, error) {
	l.calls.Add(1)
	if l.gate != nil {
		<-l.gate
	}
	if l.fail[ref] {
		return nil, errors.New("404 not found")
	}
	root := scene.NewNode(ref, scene.KindModel)
	part := scene.NewNode("mesh", scene.KindPart)
	box := scene.NewAABB(mgl32.Vec3{-0.5, 0, -0.5}, mgl32.Vec3{0.5, 1, 0.5})
	part.Bounds = &box
	root.Add(part)
	return root, nil
}

type statusRecorder struct{ lines []string }

func (s *statusRecorder) SetStatus(text string) { s.lines = append(s.lines, text) }

func (s *statusRecorder) last() string {
	if len(s.lines) == 0 {
		return ""
	}
	return s.lines[len(s.lines)-1]
}

type pickerRecorder struct{ highlighted string }

func (p *pickerRecorder) Highlight(id string) { p.highlighted = id }

// topBand reserves the strip y < 50 (the toolbar).
type topBand struct{}

func (topBand) Reserved(_, y float32) bool { return y < 50 }

type fixture struct {
	ctx    context.Context
	mgr    *Manager
	scene  *scene.Scene
	queue  *async.Queue
	loader *fakeLoader
	status *statusRecorder
	picker *pickerRecorder
	log    *logger.Logger
	active bool
}

func newFixture() *fixture {
	f := &fixture{
		ctx:    context.Background(),
		scene:  scene.New(),
		queue:  async.NewQueue(),
		loader: &fakeLoader{fail: map[string]bool{}},
		status: &statusRecorder{},
		picker: &pickerRecorder{},
		log:    logger.New(""),
		active: true,
	}
	f.mgr = New(Deps{
		Scene:   f.scene,
		Catalog: catalog.Default(),
		Loader:  f.loader,
		Queue:   f.queue,
		Log:     f.log,
		Status:  f.status,
		Picker:  f.picker,
		Regions: topBand{},
		Active:  func() bool { return f.active },
	})
	return f
}

func (f *fixture) placeAt(t *testing.T, typ string, pos mgl32.Vec3) *Item {
	t.Helper()
	require.NoError(t, f.mgr.SelectFurnitureType(typ))
	require.True(t, f.mgr.ConfirmPlacement(f.ctx, xr.NewPose(pos), true))
	f.queue.Settle()
	items := f.mgr.Items()
	require.NotEmpty(t, items)
	return items[len(items)-1]
}

// cameraAt returns a 800x600 camera at eye height looking at p.
func cameraAt(p mgl32.Vec3) scene.Camera {
	cam := scene.NewCamera(800, 600)
	cam.Target = p
	return cam
}

func TestSelectFurnitureType(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.mgr.SelectFurnitureType("sofa"))
	assert.Equal(t, "sofa", f.mgr.PendingType())
	assert.Equal(t, "sofa", f.picker.highlighted)
	assert.Equal(t, "Comfortable Sofa selected. Tap to place.", f.status.last())

	err := f.mgr.SelectFurnitureType("lamp")
	assert.True(t, errors.Is(err, catalog.ErrUnknownType))
	assert.Equal(t, "sofa", f.mgr.PendingType(), "unknown type changes nothing")
}

func TestSelectFurnitureType_ClearsSelection(t *testing.T) {
	f := newFixture()
	f.placeAt(t, "chair", mgl32.Vec3{0, 0, -2})
	require.NotNil(t, f.mgr.Selected())

	require.NoError(t, f.mgr.SelectFurnitureType("table"))
	assert.Nil(t, f.mgr.Selected())
	assert.Nil(t, f.mgr.Outline())
}

func TestConfirmPlacement_PlacesScaledModelAtPose(t *testing.T) {
	f := newFixture()
	item := f.placeAt(t, "chair", mgl32.Vec3{1, 0, -2})

	assert.Equal(t, "chair", item.Type)
	assert.True(t, f.scene.Contains(item.Node))
	assert.Equal(t, mgl32.Vec3{1, 0, -2}, item.Node.Position)
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, item.Node.Scale)
	assert.Same(t, item, f.mgr.Selected())
	require.NotNil(t, f.mgr.Outline())
	assert.True(t, f.scene.Contains(f.mgr.Outline()))
	assert.Equal(t, "Modern Chair placed and selected! Tap DELETE to remove.", f.status.last())
	assert.Equal(t, 0, f.mgr.Loading())
}

func TestConfirmPlacement_Preconditions(t *testing.T) {
	f := newFixture()
	assert.False(t, f.mgr.ConfirmPlacement(f.ctx, xr.NewPose(mgl32.Vec3{}), true), "no pending type")

	require.NoError(t, f.mgr.SelectFurnitureType("chair"))
	assert.False(t, f.mgr.ConfirmPlacement(f.ctx, xr.NewPose(mgl32.Vec3{}), false), "reticle hidden")
	f.queue.Settle()
	assert.Empty(t, f.mgr.Items())
	assert.Equal(t, int32(0), f.loader.calls.Load())
}

func TestConfirmPlacement_PendingTypePersists(t *testing.T) {
	f := newFixture()
	f.placeAt(t, "table", mgl32.Vec3{0, 0, -1})
	assert.Equal(t, "table", f.mgr.PendingType())
	require.True(t, f.mgr.ConfirmPlacement(f.ctx, xr.NewPose(mgl32.Vec3{1, 0, -1}), true))
	f.queue.Settle()
	assert.Len(t, f.mgr.Items(), 2)
}

func TestConfirmPlacement_LoadFailure(t *testing.T) {
	f := newFixture()
	f.loader.fail["assets/sofa1.glb"] = true
	require.NoError(t, f.mgr.SelectFurnitureType("sofa"))
	require.True(t, f.mgr.ConfirmPlacement(f.ctx, xr.NewPose(mgl32.Vec3{}), true))
	f.queue.Settle()

	assert.Empty(t, f.mgr.Items())
	assert.Equal(t, 0, f.scene.Len())
	assert.Equal(t, "Error loading Comfortable Sofa. Check console.", f.status.last())
	assert.Contains(t, f.log.Last(), ErrAssetLoad.Error())
	assert.Contains(t, f.log.Last(), "404 not found")
	assert.Equal(t, "sofa", f.mgr.PendingType())
}

func TestConfirmPlacement_UsesPoseAtConfirmTime(t *testing.T) {
	f := newFixture()
	f.loader.gate = make(chan struct{})
	require.NoError(t, f.mgr.SelectFurnitureType("chair"))
	pose := xr.NewPose(mgl32.Vec3{2, 0, -3})
	require.True(t, f.mgr.ConfirmPlacement(f.ctx, pose, true))
	assert.Equal(t, 1, f.mgr.Loading())
	close(f.loader.gate)
	f.queue.Settle()

	require.Len(t, f.mgr.Items(), 1)
	assert.Equal(t, mgl32.Vec3{2, 0, -3}, f.mgr.Items()[0].Node.Position)
}

func TestClear_DropsLoadInFlight(t *testing.T) {
	f := newFixture()
	f.loader.gate = make(chan struct{})
	require.NoError(t, f.mgr.SelectFurnitureType("chair"))
	require.True(t, f.mgr.ConfirmPlacement(f.ctx, xr.NewPose(mgl32.Vec3{}), true))
	f.mgr.Clear()
	close(f.loader.gate)
	f.queue.Settle()

	assert.Empty(t, f.mgr.Items())
	assert.Equal(t, 0, f.scene.Len())
	assert.Nil(t, f.mgr.Selected())
}

func TestHandleTap_SelectsItemUnderPoint(t *testing.T) {
	f := newFixture()
	near := f.placeAt(t, "chair", mgl32.Vec3{0, 0, -2})
	far := f.placeAt(t, "table", mgl32.Vec3{3, 0, -2})
	assert.Same(t, far, f.mgr.Selected())

	f.mgr.HandleTap(cameraAt(mgl32.Vec3{0, 0.25, -2}), 400, 300)
	assert.Same(t, near, f.mgr.Selected())
	assert.Equal(t, "chair selected. Click DELETE to remove.", f.status.last())

	outline := f.mgr.Outline()
	require.NotNil(t, outline)
	box, ok := near.Node.WorldBounds()
	require.True(t, ok)
	assert.Equal(t, box, *outline.Bounds)
}

func TestHandleTap_ChildPartResolvesToRoot(t *testing.T) {
	f := newFixture()
	item := f.placeAt(t, "chair", mgl32.Vec3{0, 0, -2})
	part := item.Node.Children()[0]
	owner, ok := f.mgr.Owner(part.ID())
	require.True(t, ok)
	assert.Same(t, item, owner)

	f.mgr.Deselect()
	f.mgr.HandleTap(cameraAt(mgl32.Vec3{0, 0.25, -2}), 400, 300)
	require.NotNil(t, f.mgr.Selected())
	assert.Same(t, item.Node, f.mgr.Selected().Node)
}

func TestHandleTap_EmptySpaceDeselects(t *testing.T) {
	f := newFixture()
	f.placeAt(t, "chair", mgl32.Vec3{0, 0, -2})
	f.mgr.HandleTap(cameraAt(mgl32.Vec3{0, 0.25, -2}), 10, 590)

	assert.Nil(t, f.mgr.Selected())
	assert.Nil(t, f.mgr.Outline())
	assert.Equal(t, 1, f.scene.Len(), "only the item remains")
	assert.Equal(t, MsgTapToSelect, f.status.last())
}

func TestHandleTap_IgnoredInReservedRegionOrWithoutSession(t *testing.T) {
	f := newFixture()
	item := f.placeAt(t, "chair", mgl32.Vec3{0, 0, -2})
	cam := cameraAt(mgl32.Vec3{0, 0.25, -2})

	f.mgr.HandleTap(cam, 400, 10)
	assert.Same(t, item, f.mgr.Selected(), "toolbar tap leaves selection alone")

	f.active = false
	f.mgr.HandleTap(cam, 10, 590)
	assert.Same(t, item, f.mgr.Selected())
}

func TestDeleteSelected(t *testing.T) {
	f := newFixture()
	first := f.placeAt(t, "chair", mgl32.Vec3{0, 0, -2})
	second := f.placeAt(t, "sofa", mgl32.Vec3{2, 0, -2})

	require.NoError(t, f.mgr.DeleteSelected())
	assert.False(t, f.scene.Contains(second.Node))
	assert.Equal(t, []*Item{first}, f.mgr.Items())
	assert.Nil(t, f.mgr.Selected())
	assert.Nil(t, f.mgr.Outline())
	assert.Equal(t, MsgDeleted, f.status.last())
	_, ok := f.mgr.Owner(second.Node.Children()[0].ID())
	assert.False(t, ok)

	err := f.mgr.DeleteSelected()
	assert.True(t, errors.Is(err, ErrNoSelection))
	assert.Equal(t, MsgSelectFirst, f.status.last())
	assert.Equal(t, []*Item{first}, f.mgr.Items())
}

func TestSingleOutline(t *testing.T) {
	f := newFixture()
	a := f.placeAt(t, "chair", mgl32.Vec3{0, 0, -2})
	b := f.placeAt(t, "table", mgl32.Vec3{2, 0, -2})
	f.mgr.Select(a)
	f.mgr.Select(b)
	f.mgr.Select(a)

	outlines := 0
	f.scene.Root().Walk(func(n *scene.Node) bool {
		if n.Kind == scene.KindOutline {
			outlines++
		}
		return true
	})
	assert.Equal(t, 1, outlines)
}

func TestClear_RemovesEverything(t *testing.T) {
	f := newFixture()
	f.placeAt(t, "chair", mgl32.Vec3{0, 0, -2})
	f.placeAt(t, "bookshelf", mgl32.Vec3{1, 0, -2})
	f.mgr.Clear()

	assert.Empty(t, f.mgr.Items())
	assert.Nil(t, f.mgr.Selected())
	assert.Equal(t, 0, f.scene.Len())
	assert.Equal(t, "bookshelf", f.mgr.PendingType())
}
