package render

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestMatrix_TranslationLandsInLastColumn(t *testing.T) {
	m := matrix(mgl32.Translate3D(1, 2, 3).Mul4(mgl32.Scale3D(4, 5, 6)))
	assert.Equal(t, float32(4), m.M0)
	assert.Equal(t, float32(5), m.M5)
	assert.Equal(t, float32(6), m.M10)
	assert.Equal(t, []float32{1, 2, 3, 1}, []float32{m.M12, m.M13, m.M14, m.M15})
}

func TestSceneCamera(t *testing.T) {
	c := rl.Camera3D{
		Position: rl.NewVector3(0, 1.6, 2),
		Target:   rl.NewVector3(0, 0, -1),
		Up:       rl.NewVector3(0, 1, 0),
		Fovy:     60,
	}
	cam := sceneCamera(c)
	assert.Equal(t, mgl32.Vec3{0, 1.6, 2}, cam.Position)
	assert.Equal(t, mgl32.Vec3{0, 0, -1}, cam.Target)
	assert.Equal(t, float32(60), cam.Fovy)
	assert.Greater(t, cam.Far, cam.Near)
}
