// Package app owns the application state and routes input to the session, tracker, placement
// and UI components. Everything here runs on the frame-loop goroutine; background work lands
// through the async queue drained at the start of each Tick.
package app

import (
	"context"

	"ar-furniture/internal/async"
	"ar-furniture/internal/catalog"
	"ar-furniture/internal/commands"
	"ar-furniture/internal/logger"
	"ar-furniture/internal/placement"
	"ar-furniture/internal/scene"
	"ar-furniture/internal/session"
	"ar-furniture/internal/tracker"
	"ar-furniture/internal/ui"
	"ar-furniture/internal/xr"

	"github.com/go-gl/mathgl/mgl32"
)

// Deps are the external pieces an App is built from.
type Deps struct {
	Catalog  *catalog.Catalog
	Platform xr.Platform
	Loader   placement.Loader
	Log      *logger.Logger
	Width    float32
	Height   float32
}

// App is the whole application state.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	Log       *logger.Logger
	Catalog   *catalog.Catalog
	Queue     *async.Queue
	Scene     *scene.Scene
	Layout    *ui.Layout
	Session   *session.Controller
	Tracker   *tracker.Tracker
	Placement *placement.Manager
	Commands  *commands.Registry
	Console   *commands.Console

	camera       scene.Camera
	ShowFPS      bool
	ShowMemAlloc bool
	ShowGrid     bool
}

// New wires the components. Call Init to check platform support.
func New(d Deps) *App {
	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		ctx:      ctx,
		cancel:   cancel,
		Log:      d.Log,
		Catalog:  d.Catalog,
		Queue:    async.NewQueue(),
		Scene:    scene.New(),
		Layout:   ui.NewLayout(d.Catalog.Definitions()),
		camera:   scene.NewCamera(d.Width, d.Height),
		ShowGrid: true,
	}
	a.Layout.Resize(d.Width, d.Height)

	a.Session = session.NewController(d.Platform, a.Queue, a.Log, a.Layout, a.Layout)
	reticle := scene.NewNode("reticle", scene.KindReticle)
	a.Scene.Add(reticle)
	a.Tracker = tracker.New(a.Queue, a.Log, reticle)
	a.Placement = placement.New(placement.Deps{
		Scene:   a.Scene,
		Catalog: a.Catalog,
		Loader:  d.Loader,
		Queue:   a.Queue,
		Log:     a.Log,
		Status:  a.Layout,
		Picker:  a.Layout,
		Regions: a.Layout,
		Active:  a.Session.Active,
	})
	a.Session.OnExit(a.Placement.Clear)
	a.Session.OnExit(a.Tracker.Reset)

	a.Commands = commands.NewRegistry()
	a.registerCommands()
	a.Console = commands.NewConsole(a.Log, a.Commands)
	return a
}

// Init runs the capability check.
func (a *App) Init() {
	a.Session.CheckSupport(a.ctx)
}

// Close exits any session and cancels background work.
func (a *App) Close() {
	a.Exit()
	a.cancel()
}

// Resize updates the viewport of the camera and the overlay.
func (a *App) Resize(width, height float32) {
	a.camera.Width, a.camera.Height = width, height
	a.Layout.Resize(width, height)
}

// SetCamera sets the view the scene is drawn and tapped from. The viewport size is kept.
func (a *App) SetCamera(cam scene.Camera) {
	cam.Width, cam.Height = a.camera.Width, a.camera.Height
	a.camera = cam
}

// Camera returns the current view.
func (a *App) Camera() scene.Camera {
	return a.camera
}

// Viewer returns the device pose source for the simulated platform: the camera position and
// viewing direction.
func (a *App) Viewer() func() (mgl32.Vec3, mgl32.Vec3) {
	return func() (mgl32.Vec3, mgl32.Vec3) {
		return a.camera.Position, a.camera.Forward()
	}
}

// Click routes a pointer press: overlay controls first, then a tap into the AR view.
func (a *App) Click(x, y float32) {
	c := a.Layout.Click(x, y)
	switch c.Action {
	case ui.ActionStart:
		if err := a.Session.Start(a.ctx); err != nil {
			a.Log.Logf("app: %v", err)
		}
	case ui.ActionExit:
		a.Exit()
	case ui.ActionDelete:
		_ = a.Placement.DeleteSelected()
	case ui.ActionSelectType:
		_ = a.Placement.SelectFurnitureType(c.Type)
	}
	if !c.Handled {
		a.Placement.HandleTap(a.camera, x, y)
	}
}

// ControllerSelect is the confirm gesture of the AR session (screen tap on a phone).
// Returns whether a placement started.
func (a *App) ControllerSelect() bool {
	if !a.Session.Active() {
		return false
	}
	pose, visible := a.Tracker.Pose()
	return a.Placement.ConfirmPlacement(a.ctx, pose, visible)
}

// Tick applies finished background work, then updates tracking for this frame. Call once per
// frame before drawing.
func (a *App) Tick() {
	a.Queue.Drain()
	if s := a.Session.Session(); s != nil {
		a.Tracker.Update(a.ctx, s, s.Frame())
	}
	a.updateInspector()
}

// Exit ends the AR session and returns to browsing.
func (a *App) Exit() {
	a.Session.Exit()
}

func (a *App) updateInspector() {
	in := a.Layout.Inspector()
	sel := a.Placement.Selected()
	if !a.Console.IsOpen() || sel == nil {
		in.Hide()
		return
	}
	name := sel.Type
	if def, ok := a.Catalog.Lookup(sel.Type); ok {
		name = def.DisplayName
	}
	parts := 0
	sel.Node.Walk(func(n *scene.Node) bool {
		if n.Kind == scene.KindPart {
			parts++
		}
		return true
	})
	p, s := sel.Node.Position, sel.Node.Scale
	in.Show(ui.Selection{
		Name:     name,
		Type:     sel.Type,
		Position: [3]float32{p[0], p[1], p[2]},
		Scale:    [3]float32{s[0], s[1], s[2]},
		Parts:    parts,
	})
}
