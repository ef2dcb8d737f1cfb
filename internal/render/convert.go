package render

import (
	"image/color"

	"ar-furniture/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

func vec3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v[0], v[1], v[2])
}

func fromVec3(v rl.Vector3) mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

// matrix converts a column-major mgl32 matrix; raylib stores the same layout under named fields.
func matrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

func box(b scene.AABB) rl.BoundingBox {
	return rl.NewBoundingBox(vec3(b.Min), vec3(b.Max))
}

func rgba(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

// sceneCamera converts the raylib camera to the scene camera used for taps and the simulated
// device pose.
func sceneCamera(c rl.Camera3D) scene.Camera {
	cam := scene.NewCamera(0, 0)
	cam.Position = fromVec3(c.Position)
	cam.Target = fromVec3(c.Target)
	cam.Up = fromVec3(c.Up)
	cam.Fovy = c.Fovy
	return cam
}
