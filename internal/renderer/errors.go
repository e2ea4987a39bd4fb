package renderer

import "errors"

// Capacity errors
var (
	ErrDrawCallFull         = errors.New("renderer: draw call is at data capacity")
	ErrShaderCacheFull      = errors.New("renderer: shader cache is full")
	ErrMeshIDOutOfRange     = errors.New("renderer: mesh id out of range")
	ErrShaderSourceTooLarge = errors.New("renderer: generated shader source exceeds capacity")
)

// GPU errors
var (
	ErrShaderCompile         = errors.New("renderer: shader compilation failed")
	ErrProgramLink           = errors.New("renderer: program link failed")
	ErrFramebufferIncomplete = errors.New("renderer: framebuffer incomplete")
	ErrShaderFailedBefore    = errors.New("renderer: shader variant failed to build earlier")
)

// Shape errors
var (
	ErrNoMesh        = errors.New("renderer: draw call has no mesh")
	ErrNoInstances   = errors.New("renderer: draw call has no model matrices")
	ErrShapeMismatch = errors.New("renderer: instance stream length does not match model count")
	ErrMissingLight  = errors.New("renderer: shadow or volumetric requested without a light")
	ErrEmptyMesh     = errors.New("renderer: mesh has no vertices or indices")
	ErrMeshStream    = errors.New("renderer: mesh stream length does not match vertex count")
	ErrIndexRange    = errors.New("renderer: mesh index past the last vertex")
)

var ErrCorruptMesh = errors.New("renderer: corrupt mesh data")
