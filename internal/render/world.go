package render

import (
	"ar-furniture/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	gridExtent     = 10
	gridMinorStep  = 1
	gridMajorStep  = 5
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	reticleRadius  = 0.15
	reticleInner   = 0.1
)

var reticleColor = rl.NewColor(255, 255, 255, 230)

// World draws the scene graph from a raylib camera. The camera stands in for the headset: it
// is the viewer pose of the simulated AR session.
type World struct {
	Camera      rl.Camera3D
	GridVisible bool
	models      *models
	room        backdrop
}

// NewWorld returns a world with the camera at standing eye height looking at the floor ahead.
func NewWorld(r Resolver) *World {
	w := &World{models: newModels(r), GridVisible: true}
	w.Camera.Position = rl.NewVector3(0, 1.6, 1.5)
	w.Camera.Target = rl.NewVector3(0, 0, -1.5)
	w.Camera.Up = rl.NewVector3(0, 1, 0)
	w.Camera.Fovy = 60
	w.Camera.Projection = rl.CameraPerspective
	w.room.path = findBackdrop(backdropPaths)
	return w
}

// Draw renders the room backdrop, the floor grid and every visible node of s. The grid and
// backdrop are drawn only while ar is true; outside a session the page shows no 3D content.
func (w *World) Draw(s *scene.Scene, ar bool) {
	w.room.load()
	w.models.setView(w.Camera.Position)
	rl.BeginMode3D(w.Camera)
	if ar {
		w.room.draw(w.Camera.Position)
		if w.GridVisible {
			drawFloorGrid()
		}
	}
	s.Root().Walk(func(n *scene.Node) bool {
		if !n.Visible {
			return false
		}
		switch n.Kind {
		case scene.KindModel:
			w.models.draw(n)
			return false
		case scene.KindReticle:
			drawReticle(n)
		case scene.KindOutline:
			if n.Bounds != nil {
				rl.DrawBoundingBox(box(*n.Bounds), rgba(n.Color))
			}
		}
		return true
	})
	rl.EndMode3D()
}

// Close releases GPU resources.
func (w *World) Close() {
	w.models.unload()
	w.room.unload()
}

// drawReticle draws a flat ring lying on the hit surface. The node carries the full hit pose,
// so the ring is drawn in its local XZ plane.
func drawReticle(n *scene.Node) {
	rl.PushMatrix()
	rl.MultMatrix(matrix(n.WorldMatrix()))
	rl.DrawCircle3D(rl.Vector3{}, reticleRadius, rl.NewVector3(1, 0, 0), 90, reticleColor)
	rl.DrawCircle3D(rl.Vector3{}, reticleInner, rl.NewVector3(1, 0, 0), 90, reticleColor)
	rl.PopMatrix()
}

// drawFloorGrid draws the tracked floor (Y=0) as major/minor lines. Reuses start/end vectors to
// avoid per-frame allocations in the hot loop.
func drawFloorGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)

	var start, end rl.Vector3
	for x := -gridExtent; x <= gridExtent; x += gridMinorStep {
		c := major
		if x%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(x), 0, float32(-gridExtent)
		end.X, end.Y, end.Z = float32(x), 0, float32(gridExtent)
		rl.DrawLine3D(start, end, c)
	}
	for z := -gridExtent; z <= gridExtent; z += gridMinorStep {
		c := major
		if z%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(-gridExtent), 0, float32(z)
		end.X, end.Y, end.Z = float32(gridExtent), 0, float32(z)
		rl.DrawLine3D(start, end, c)
	}
}
