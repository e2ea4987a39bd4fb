package renderer

// Attribute locations shared by the generator and the resource manager.
const (
	LocationPosition      uint32 = 0
	LocationUV            uint32 = 1
	LocationNormal        uint32 = 2
	LocationTangent       uint32 = 3
	LocationBitangent     uint32 = 4
	LocationColor         uint32 = 5
	LocationInstanceModel uint32 = 6 // Rows occupy 6..9
	LocationInstanceColor uint32 = 10
	LocationInstanceTex   uint32 = 13
)

const (
	mat4Rows   = 4
	mat4Stride = 16 * 4 // bytes
	vec4Size   = 4 * 4  // bytes
)

// Uniform indexes the fixed set of uniform locations a generated program
// caches.
type Uniform int

const (
	UniformTime Uniform = iota
	UniformDeltaTime
	UniformResolution
	UniformCameraPosition
	UniformProjectionView
	UniformColor
	UniformTextureIndex
	UniformModel
	UniformLightSpaceMatrix
	UniformShadowMap
	UniformLightDirection
	UniformLightAmbient
	UniformLightDiffuse
	UniformLightSpecular

	uniformCount
)

var uniformNames = [uniformCount]string{
	"time",
	"delta_time",
	"resolution",
	"camera_position",
	"pv",
	"color",
	"texture_index",
	"model",
	"light_space_matrix",
	"shadow_map",
	"dir_light.direction",
	"dir_light.ambient",
	"dir_light.diffuse",
	"dir_light.specular",
}

// String returns the GLSL name of the uniform.
func (u Uniform) String() string {
	if u < 0 || u >= uniformCount {
		return "unknown"
	}
	return uniformNames[u]
}

// Texture units used by the passes.
const (
	unitScreenColor  uint32 = 0
	unitShadowMap    uint32 = 1
	unitScreenDepth  uint32 = 1
	unitVolumeShadow uint32 = 2
)
