package renderer

// RenderConfig holds the renderer limits and pass constants. The zero value
// is not usable; start from DefaultRenderConfig.
type RenderConfig struct {
	// Table sizes
	MaxShaders           int `yaml:"max_shaders" toml:"max_shaders" json:"maxShaders"`
	MaxMeshes            int `yaml:"max_meshes" toml:"max_meshes" json:"maxMeshes"`
	ShaderSourceCapacity int `yaml:"shader_source_capacity" toml:"shader_source_capacity" json:"shaderSourceCapacity"`

	// Shadow map
	ShadowSize    int32   `yaml:"shadow_size" toml:"shadow_size" json:"shadowSize"`
	ShadowExtent  float32 `yaml:"shadow_extent" toml:"shadow_extent" json:"shadowExtent"`
	ShadowNear    float32 `yaml:"shadow_near" toml:"shadow_near" json:"shadowNear"`
	ShadowFar     float32 `yaml:"shadow_far" toml:"shadow_far" json:"shadowFar"`
	LightDistance float32 `yaml:"light_distance" toml:"light_distance" json:"lightDistance"`

	// Pixelation renders the scene to this fixed size target
	PixelWidth  int32 `yaml:"pixel_width" toml:"pixel_width" json:"pixelWidth"`
	PixelHeight int32 `yaml:"pixel_height" toml:"pixel_height" json:"pixelHeight"`

	// Volumetric
	VolumetricCameraFar float32 `yaml:"volumetric_camera_far" toml:"volumetric_camera_far" json:"volumetricCameraFar"`
	ConeAngle           float32 `yaml:"cone_angle" toml:"cone_angle" json:"coneAngle"`
	ShadowBias          float32 `yaml:"shadow_bias" toml:"shadow_bias" json:"shadowBias"`
}

// DefaultRenderConfig returns the stock limits and pass constants.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		MaxShaders:           DefaultMaxShaders,
		MaxMeshes:            DefaultMaxMeshes,
		ShaderSourceCapacity: DefaultShaderSourceCapacity,

		ShadowSize:    1024,
		ShadowExtent:  10,
		ShadowNear:    1,
		ShadowFar:     50,
		LightDistance: 10,

		PixelWidth:  300,
		PixelHeight: 200,

		VolumetricCameraFar: 100,
		ConeAngle:           20,
		ShadowBias:          0.001,
	}
}

// PixelArtRenderConfig drops the pixel target to a chunkier 160x100.
func PixelArtRenderConfig() RenderConfig {
	config := DefaultRenderConfig()
	config.PixelWidth = 160
	config.PixelHeight = 100
	return config
}

// CinematicRenderConfig trades speed for a sharper shadow map and longer
// light shafts.
func CinematicRenderConfig() RenderConfig {
	config := DefaultRenderConfig()
	config.ShadowSize = 2048
	config.ShadowExtent = 20
	config.ShadowFar = 100
	config.LightDistance = 20
	config.VolumetricCameraFar = 200
	config.ConeAngle = 30
	return config
}

// withDefaults fills every non-positive field from DefaultRenderConfig.
func (c RenderConfig) withDefaults() RenderConfig {
	d := DefaultRenderConfig()
	if c.MaxShaders <= 0 {
		c.MaxShaders = d.MaxShaders
	}
	if c.MaxMeshes <= 0 {
		c.MaxMeshes = d.MaxMeshes
	}
	if c.ShaderSourceCapacity <= 0 {
		c.ShaderSourceCapacity = d.ShaderSourceCapacity
	}
	if c.ShadowSize <= 0 {
		c.ShadowSize = d.ShadowSize
	}
	if c.ShadowExtent <= 0 {
		c.ShadowExtent = d.ShadowExtent
	}
	if c.ShadowNear <= 0 {
		c.ShadowNear = d.ShadowNear
	}
	if c.ShadowFar <= c.ShadowNear {
		c.ShadowFar = d.ShadowFar
	}
	if c.LightDistance <= 0 {
		c.LightDistance = d.LightDistance
	}
	if c.PixelWidth <= 0 || c.PixelHeight <= 0 {
		c.PixelWidth, c.PixelHeight = d.PixelWidth, d.PixelHeight
	}
	if c.VolumetricCameraFar <= 0 {
		c.VolumetricCameraFar = d.VolumetricCameraFar
	}
	if c.ConeAngle <= 0 {
		c.ConeAngle = d.ConeAngle
	}
	if c.ShadowBias <= 0 {
		c.ShadowBias = d.ShadowBias
	}
	return c
}
