package renderer

import "github.com/go-gl/mathgl/mgl32"

// ShaderStage selects the pipeline stage a source compiles for.
type ShaderStage int

const (
	StageVertex ShaderStage = iota
	StageFragment
)

func (s ShaderStage) String() string {
	if s == StageFragment {
		return "fragment"
	}
	return "vertex"
}

type BufferTarget int

const (
	ArrayBuffer BufferTarget = iota
	ElementArrayBuffer
)

type TextureFormat int

const (
	TextureRGB TextureFormat = iota
	TextureDepth
	TextureDepth24
)

type TextureWrap int

const (
	WrapClampToEdge TextureWrap = iota
	WrapClampToBorder
)

// TextureDesc describes an empty 2D render target texture. Filtering is
// always nearest.
type TextureDesc struct {
	Width, Height int32
	Format        TextureFormat
	Wrap          TextureWrap
	Border        [4]float32
}

type ClearMask int

const (
	ClearColor ClearMask = 1 << iota
	ClearDepth
)

type CullFace int

const (
	CullBack CullFace = iota
	CullFront
)

// Device is the slice of OpenGL the renderer drives. It keeps the GL call
// sequence observable so passes can be tested without a context.
type Device interface {
	// Programs
	CompileShader(stage ShaderStage, source string) (uint32, error)
	DeleteShader(shader uint32)
	LinkProgram(vertex, fragment uint32) (uint32, error)
	DeleteProgram(program uint32)
	UseProgram(program uint32)
	UniformLocation(program uint32, name string) int32

	SetUniformInt(location int32, v int32)
	SetUniformFloat(location int32, v float32)
	SetUniformVec2(location int32, v mgl32.Vec2)
	SetUniformVec3(location int32, v mgl32.Vec3)
	SetUniformMat4(location int32, m mgl32.Mat4)

	// Geometry. BufferData accepts []float32, []uint32, []int32,
	// []mgl32.Vec3 and []mgl32.Mat4.
	GenVertexArrays(n int) []uint32
	GenBuffers(n int) []uint32
	DeleteVertexArrays(vaos ...uint32)
	DeleteBuffers(buffers ...uint32)
	BindVertexArray(vao uint32)
	BufferData(target BufferTarget, buffer uint32, data any)
	EnableVertexAttrib(location uint32)
	VertexAttribPointer(location uint32, size, stride int32, offset int)
	VertexAttribIPointer(location uint32, size, stride int32, offset int)
	VertexAttribDivisor(location, divisor uint32)

	// Render targets
	CreateTexture(desc TextureDesc) uint32
	DeleteTextures(textures ...uint32)
	BindTexture(unit, texture uint32)
	CreateFramebuffer(color, depth uint32) (uint32, error)
	DeleteFramebuffers(framebuffers ...uint32)
	BindFramebuffer(framebuffer uint32)

	// State and draws
	Viewport(x, y, width, height int32)
	Clear(mask ClearMask)
	SetCullFace(face CullFace)
	SetDepthTest(enabled bool)
	DrawElementsInstanced(count, instances int32)
	DrawTriangleStrip(first, count int32)
}
