package render

import (
	"ar-furniture/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// Resolver maps an asset reference to a file path raylib can load.
type Resolver interface {
	Resolve(ref string) string
}

type model struct {
	m  rl.Model
	ok bool
}

// models draws furniture. GPU models are loaded on first draw so that resources are allocated
// after the window/OpenGL context exists. A model raylib cannot load falls back to lit boxes
// around its decoded parts.
type models struct {
	resolver Resolver
	cache    map[string]model
	shader   rl.Shader
	box      rl.Mesh
	boxMtl   rl.Material
	ready    bool
	viewPos  [3]float32
	lightDir [3]float32
}

func newModels(r Resolver) *models {
	return &models{
		resolver: r,
		cache:    make(map[string]model),
		lightDir: [3]float32{0.5, 1, 0.5},
	}
}

// partColor is the albedo tint of fallback boxes.
var partColor = rl.NewColor(186, 160, 128, 255)

func (m *models) ensure() {
	if m.ready {
		return
	}
	m.ready = true
	m.shader = rl.LoadShaderFromMemory(litVS, litFS)
	m.box = rl.GenMeshCube(1, 1, 1)
	m.boxMtl = rl.LoadMaterialDefault()
	if albedo := m.boxMtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = partColor
	}
	if rl.IsShaderValid(m.shader) {
		m.boxMtl.Shader = m.shader
	}
}

func (m *models) load(ref string) model {
	if c, ok := m.cache[ref]; ok {
		return c
	}
	c := model{m: rl.LoadModel(m.resolver.Resolve(ref))}
	c.ok = rl.IsModelValid(c.m) && c.m.MeshCount > 0
	if c.ok && rl.IsShaderValid(m.shader) {
		mats := c.m.GetMaterials()
		for i := range mats {
			mats[i].Shader = m.shader
		}
	}
	m.cache[ref] = c
	return c
}

// setView sets camera position for specular lighting. Call once per frame before drawing.
func (m *models) setView(pos rl.Vector3) {
	m.viewPos = [3]float32{pos.X, pos.Y, pos.Z}
}

// draw renders a KindModel node and its parts.
func (m *models) draw(n *scene.Node) {
	m.ensure()
	m.setUniforms()
	world := n.WorldMatrix()
	if c := m.load(n.AssetRef); c.ok {
		c.m.Transform = matrix(world)
		rl.DrawModel(c.m, rl.Vector3{}, 1, rl.White)
		return
	}
	n.Walk(func(p *scene.Node) bool {
		if p.Kind != scene.KindPart || p.Bounds == nil || !p.Visible {
			return p.Visible
		}
		size, center := p.Bounds.Size(), p.Bounds.Center()
		t := p.WorldMatrix().Mul4(mgl32.Translate3D(center[0], center[1], center[2])).
			Mul4(mgl32.Scale3D(nonZero(size[0]), nonZero(size[1]), nonZero(size[2])))
		rl.DrawMesh(m.box, m.boxMtl, matrix(t))
		return true
	})
}

func nonZero(v float32) float32 {
	if v < 1e-3 {
		return 1e-3
	}
	return v
}

func (m *models) unload() {
	for _, c := range m.cache {
		if c.ok {
			rl.UnloadModel(c.m)
		}
	}
	m.cache = make(map[string]model)
	if m.ready {
		rl.UnloadMesh(&m.box)
		if rl.IsShaderValid(m.shader) {
			rl.UnloadShader(m.shader)
		}
		m.ready = false
	}
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	// litFS samples the albedo map (raylib binds a white texture when a material has none).
	litFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform sampler2D texture0;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
out vec4 finalColor;
void main() {
  vec4 tint = texture(texture0, fragTexCoord) * colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = tint.rgb * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * tint.rgb;
  vec3 H = normalize(L + V);
  float NdotH = max(dot(N, H), 0.0);
  float spec = pow(NdotH, specularPower) * specularStrength;
  vec3 specular = lightColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(amb + diffuse + specular, tint.a);
}
`
)

// Matches the soft hemisphere light of a furnished room.
var (
	defaultAmbient    = [4]float32{0.35, 0.35, 0.38, 1.0}
	defaultLightColor = [3]float32{1.0, 0.98, 0.95}
)

const (
	defaultLightIntensity   = float32(0.8)
	defaultSpecularPower    = float32(32.0)
	defaultSpecularStrength = float32(0.2)
)

// setUniforms uses local arrays so no Go pointer escapes into cgo.
func (m *models) setUniforms() {
	shader := m.shader
	if !rl.IsShaderValid(shader) {
		return
	}
	viewPos := m.viewPos
	lightDir := m.lightDir
	amb := defaultAmbient
	lightColor := defaultLightColor
	if loc := rl.GetShaderLocation(shader, "viewPos"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, viewPos[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightDir"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightDir[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightColor"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightColor[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightIntensity"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultLightIntensity}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularPower"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultSpecularPower}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularStrength"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultSpecularStrength}, rl.ShaderUniformFloat)
	}
}
