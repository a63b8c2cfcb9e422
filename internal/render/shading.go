package render

import rl "github.com/gen2brain/raylib-go/raylib"

// Lighting constants for the furniture shader.
var (
	// ambient keeps shadowed faces from going pure black.
	ambient    = [4]float32{0.25, 0.26, 0.3, 1.0}
	lightColor = [3]float32{1.0, 0.98, 0.95}
	// lightDir points from the surface towards the light.
	lightDir = [3]float32{0.4, 1, 0.6}
)

const (
	lightIntensity   = float32(0.8)
	specularPower    = float32(32.0)
	specularStrength = float32(0.2)
)

// shading is the lit shader every furniture material is drawn with. It adds a per-draw emissive
// term on top of the albedo so colliding items can glow. GPU resources are created by ensure,
// which must run after the window exists.
type shading struct {
	shader      rl.Shader
	ready       bool
	emissiveLoc int32
	viewPosLoc  int32
}

func (s *shading) ensure() {
	if s.ready {
		return
	}
	s.ready = true
	s.shader = rl.LoadShaderFromMemory(litVS, litFS)
	if !rl.IsShaderValid(s.shader) {
		return
	}
	s.emissiveLoc = rl.GetShaderLocation(s.shader, "emissive")
	s.viewPosLoc = rl.GetShaderLocation(s.shader, "viewPos")

	amb := ambient
	col := lightColor
	dir := lightDir
	setVec(s.shader, "ambient", amb[:], rl.ShaderUniformVec4)
	setVec(s.shader, "lightColor", col[:], rl.ShaderUniformVec3)
	setVec(s.shader, "lightDir", dir[:], rl.ShaderUniformVec3)
	setVec(s.shader, "lightIntensity", []float32{lightIntensity}, rl.ShaderUniformFloat)
	setVec(s.shader, "specularPower", []float32{specularPower}, rl.ShaderUniformFloat)
	setVec(s.shader, "specularStrength", []float32{specularStrength}, rl.ShaderUniformFloat)
}

// valid reports whether the shader compiled. Without it materials keep raylib's default shader.
func (s *shading) valid() bool {
	return s.ready && rl.IsShaderValid(s.shader)
}

// setView updates the camera position once per frame for the specular term.
func (s *shading) setView(pos rl.Vector3) {
	if !s.valid() || s.viewPosLoc < 0 {
		return
	}
	rl.SetShaderValueV(s.shader, s.viewPosLoc, []float32{pos.X, pos.Y, pos.Z}, rl.ShaderUniformVec3, 1)
}

// setEmissive sets the glow added to the next draw calls.
func (s *shading) setEmissive(c [3]float32) {
	if !s.valid() || s.emissiveLoc < 0 {
		return
	}
	rl.SetShaderValueV(s.shader, s.emissiveLoc, []float32{c[0], c[1], c[2]}, rl.ShaderUniformVec3, 1)
}

func (s *shading) unload() {
	if s.valid() {
		rl.UnloadShader(s.shader)
	}
	s.ready = false
}

func setVec(shader rl.Shader, name string, v []float32, kind rl.ShaderUniformDataType) {
	if loc := rl.GetShaderLocation(shader, name); loc >= 0 {
		rl.SetShaderValueV(shader, loc, v, kind, 1)
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
	// litFS multiplies the albedo texture (raylib binds a white one when the model has none)
	// by colDiffuse, shades it with one directional light and adds emissive.
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
uniform vec3 emissive;
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
  float spec = pow(max(dot(N, H), 0.0), specularPower) * specularStrength;
  vec3 specular = lightColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(amb + diffuse + specular + emissive, tint.a);
}
`
)
