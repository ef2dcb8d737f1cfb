package scene

import "github.com/go-gl/mathgl/mgl32"

// Camera is a perspective camera with a viewport in screen pixels (origin top-left).
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
	Fovy     float32 // degrees
	Near     float32
	Far      float32
	Width    float32
	Height   float32
}

// NewCamera returns a camera matching a handheld AR view: 70° vertical field of view,
// near 0.01, far 20, at eye height looking along -Z.
func NewCamera(width, height float32) Camera {
	return Camera{
		Position: mgl32.Vec3{0, 1.6, 0},
		Target:   mgl32.Vec3{0, 1.6, -1},
		Up:       mgl32.Vec3{0, 1, 0},
		Fovy:     70,
		Near:     0.01,
		Far:      20,
		Width:    width,
		Height:   height,
	}
}

// View returns the world-to-camera matrix.
func (c Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// Projection returns the perspective projection matrix.
func (c Camera) Projection() mgl32.Mat4 {
	aspect := float32(1)
	if c.Height > 0 {
		aspect = c.Width / c.Height
	}
	return mgl32.Perspective(mgl32.DegToRad(c.Fovy), aspect, c.Near, c.Far)
}

// Forward returns the normalized viewing direction.
func (c Camera) Forward() mgl32.Vec3 {
	return c.Target.Sub(c.Position).Normalize()
}

// RayFromScreen returns the world-space ray from the near plane through screen point (x, y).
func (c Camera) RayFromScreen(x, y float32) Ray {
	ndcX := 2*x/c.Width - 1
	ndcY := 1 - 2*y/c.Height
	inv := c.Projection().Mul4(c.View()).Inv()
	near := unproject(inv, mgl32.Vec4{ndcX, ndcY, -1, 1})
	far := unproject(inv, mgl32.Vec4{ndcX, ndcY, 1, 1})
	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

// ScreenPoint projects a world point to screen pixels. ok is false behind the camera.
func (c Camera) ScreenPoint(p mgl32.Vec3) (x, y float32, ok bool) {
	clip := c.Projection().Mul4(c.View()).Mul4x1(p.Vec4(1))
	if clip[3] <= 0 {
		return 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip[3])
	return (ndc[0] + 1) * 0.5 * c.Width, (1 - ndc[1]) * 0.5 * c.Height, true
}

func unproject(inv mgl32.Mat4, ndc mgl32.Vec4) mgl32.Vec3 {
	v := inv.Mul4x1(ndc)
	return v.Vec3().Mul(1 / v[3])
}
