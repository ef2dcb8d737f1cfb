package render

import (
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// backdropPaths are tried in order so the room panorama is found whether run from the repo root
// or cmd/arfurniture.
var backdropPaths = []string{
	"assets/room/panorama.jpg",
	"assets/room/panorama.png",
	"../../assets/room/panorama.jpg",
	"../../assets/room/panorama.png",
}

const (
	// Radius of the sphere-ish cube the panorama is painted on, centered on the viewer.
	backdropRadius = 1000
	// A 360x180 panorama is 2:1; anything far off is not a panorama.
	panoramaAspectMin = 1.8
	panoramaAspectMax = 2.2
)

// backdrop paints a room panorama around the viewer, standing in for the passthrough camera of
// a real device. The texture is uploaded on first use since the GL context must exist.
type backdrop struct {
	path   string
	ready  bool
	tex    rl.Texture2D
	mesh   rl.Mesh
	mtl    rl.Material
	eyeLoc int32
	texLoc int32
}

// findBackdrop returns the first existing path, or "".
func findBackdrop(paths []string) string {
	for _, p := range paths {
		p = filepath.Clean(p)
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p
		}
	}
	return ""
}

func isPanorama(width, height int32) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	aspect := float32(width) / float32(height)
	return aspect >= panoramaAspectMin && aspect <= panoramaAspectMax
}

// load uploads the panorama once. A missing file, a non-panorama image or a failed shader
// leave the backdrop off.
func (b *backdrop) load() {
	path := b.path
	if path == "" {
		return
	}
	b.path = ""

	img := rl.LoadImage(path)
	if img == nil {
		return
	}
	ok := isPanorama(img.Width, img.Height)
	if ok {
		b.tex = rl.LoadTextureFromImage(img)
	}
	rl.UnloadImage(img)
	if !ok || !rl.IsTextureValid(b.tex) {
		return
	}
	shader := rl.LoadShaderFromMemory(panoramaVS, panoramaFS)
	if !rl.IsShaderValid(shader) {
		rl.UnloadTexture(b.tex)
		return
	}
	b.mesh = rl.GenMeshCube(1, 1, 1)
	b.mtl = rl.LoadMaterialDefault()
	b.mtl.Shader = shader
	b.eyeLoc = rl.GetShaderLocation(shader, "eye")
	b.texLoc = rl.GetShaderLocation(shader, "panorama")
	b.ready = true
}

// draw paints the panorama behind everything else, centered on eye.
func (b *backdrop) draw(eye rl.Vector3) {
	if !b.ready {
		return
	}
	rl.DisableDepthMask()
	rl.DisableBackfaceCulling()
	defer func() {
		rl.EnableBackfaceCulling()
		rl.EnableDepthMask()
	}()
	if b.eyeLoc >= 0 {
		rl.SetShaderValueV(b.mtl.Shader, b.eyeLoc, []float32{eye.X, eye.Y, eye.Z}, rl.ShaderUniformVec3, 1)
	}
	if b.texLoc >= 0 {
		rl.SetShaderValueTexture(b.mtl.Shader, b.texLoc, b.tex)
	}
	transform := rl.MatrixMultiply(
		rl.MatrixScale(backdropRadius, backdropRadius, backdropRadius),
		rl.MatrixTranslate(eye.X, eye.Y, eye.Z),
	)
	rl.DrawMesh(b.mesh, b.mtl, transform)
}

func (b *backdrop) unload() {
	if !b.ready {
		return
	}
	rl.UnloadShader(b.mtl.Shader)
	rl.UnloadTexture(b.tex)
	rl.UnloadMesh(&b.mesh)
	b.ready = false
}

// Samples the panorama by view direction (longitude/latitude).
const (
	panoramaVS = `#version 330
in vec3 vertexPosition;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 worldPos;
void main() {
  vec4 p = matModel * vec4(vertexPosition, 1.0);
  worldPos = p.xyz;
  gl_Position = matProjection * matView * p;
}
`
	panoramaFS = `#version 330
in vec3 worldPos;
out vec4 finalColor;
uniform sampler2D panorama;
uniform vec3 eye;
void main() {
  vec3 dir = normalize(worldPos - eye);
  float lon = atan(dir.z, dir.x);
  float lat = asin(clamp(dir.y, -1.0, 1.0));
  finalColor = texture(panorama, vec2(lon / 6.28318530718 + 0.5, 0.5 - lat / 3.14159265359));
}
`
)
