package renderer

import "github.com/go-gl/mathgl/mgl32"

// UniformCache caches uniform locations of a fixed program so lookups by
// name hit the driver once. Used by the auxiliary pass programs.
type UniformCache struct {
	device    Device
	locations map[string]int32
	program   uint32
}

// NewUniformCache creates a new uniform cache for a shader program
func NewUniformCache(device Device, program uint32) *UniformCache {
	return &UniformCache{
		device:    device,
		locations: make(map[string]int32),
		program:   program,
	}
}

func (uc *UniformCache) Program() uint32 {
	return uc.program
}

// GetLocation returns the cached uniform location or fetches and caches it
func (uc *UniformCache) GetLocation(name string) int32 {
	if loc, exists := uc.locations[name]; exists {
		return loc
	}

	loc := uc.device.UniformLocation(uc.program, name)
	uc.locations[name] = loc
	return loc
}

// Preload resolves names up front so the first frame does no lookups.
func (uc *UniformCache) Preload(names ...string) {
	for _, name := range names {
		uc.GetLocation(name)
	}
}

func (uc *UniformCache) SetInt(name string, value int32) {
	if loc := uc.GetLocation(name); loc != -1 {
		uc.device.SetUniformInt(loc, value)
	}
}

func (uc *UniformCache) SetFloat(name string, value float32) {
	if loc := uc.GetLocation(name); loc != -1 {
		uc.device.SetUniformFloat(loc, value)
	}
}

func (uc *UniformCache) SetVec2(name string, value mgl32.Vec2) {
	if loc := uc.GetLocation(name); loc != -1 {
		uc.device.SetUniformVec2(loc, value)
	}
}

func (uc *UniformCache) SetVec3(name string, value mgl32.Vec3) {
	if loc := uc.GetLocation(name); loc != -1 {
		uc.device.SetUniformVec3(loc, value)
	}
}

func (uc *UniformCache) SetMat4(name string, value mgl32.Mat4) {
	if loc := uc.GetLocation(name); loc != -1 {
		uc.device.SetUniformMat4(loc, value)
	}
}
