package renderer

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// OpenGLDevice issues calls against the current GL context. gl.Init must
// have run on the calling thread.
type OpenGLDevice struct {
	log *zap.Logger
}

func NewOpenGLDevice(log *zap.Logger) *OpenGLDevice {
	if log == nil {
		log = zap.NewNop()
	}
	return &OpenGLDevice{log: log}
}

func (d *OpenGLDevice) CompileShader(stage ShaderStage, source string) (uint32, error) {
	shaderType := uint32(gl.VERTEX_SHADER)
	if stage == StageFragment {
		shaderType = gl.FRAGMENT_SHADER
	}

	shader := gl.CreateShader(shaderType)
	cSources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, cSources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		log = strings.TrimRight(log, "\x00")
		d.log.Error("Failed to compile", zap.Stringer("stage", stage), zap.String("log", log))
		return 0, fmt.Errorf("%s stage: %s: %w", stage, log, ErrShaderCompile)
	}

	return shader, nil
}

func (d *OpenGLDevice) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

// LinkProgram links and always releases both stage objects.
func (d *OpenGLDevice) LinkProgram(vertex, fragment uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertex)
	gl.AttachShader(program, fragment)
	gl.LinkProgram(program)

	gl.DetachShader(program, vertex)
	gl.DeleteShader(vertex)
	gl.DetachShader(program, fragment)
	gl.DeleteShader(fragment)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		log = strings.TrimRight(log, "\x00")
		d.log.Error("Failed to link program", zap.String("log", log))
		return 0, fmt.Errorf("%s: %w", log, ErrProgramLink)
	}

	return program, nil
}

func (d *OpenGLDevice) DeleteProgram(program uint32) { gl.DeleteProgram(program) }
func (d *OpenGLDevice) UseProgram(program uint32)    { gl.UseProgram(program) }

func (d *OpenGLDevice) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *OpenGLDevice) SetUniformInt(location int32, v int32) {
	if location != -1 {
		gl.Uniform1i(location, v)
	}
}

func (d *OpenGLDevice) SetUniformFloat(location int32, v float32) {
	if location != -1 {
		gl.Uniform1f(location, v)
	}
}

func (d *OpenGLDevice) SetUniformVec2(location int32, v mgl32.Vec2) {
	if location != -1 {
		gl.Uniform2f(location, v.X(), v.Y())
	}
}

func (d *OpenGLDevice) SetUniformVec3(location int32, v mgl32.Vec3) {
	if location != -1 {
		gl.Uniform3f(location, v.X(), v.Y(), v.Z())
	}
}

func (d *OpenGLDevice) SetUniformMat4(location int32, m mgl32.Mat4) {
	if location != -1 {
		gl.UniformMatrix4fv(location, 1, false, &m[0])
	}
}

func (d *OpenGLDevice) GenVertexArrays(n int) []uint32 {
	vaos := make([]uint32, n)
	if n > 0 {
		gl.GenVertexArrays(int32(n), &vaos[0])
	}
	return vaos
}

func (d *OpenGLDevice) GenBuffers(n int) []uint32 {
	buffers := make([]uint32, n)
	if n > 0 {
		gl.GenBuffers(int32(n), &buffers[0])
	}
	return buffers
}

func (d *OpenGLDevice) DeleteVertexArrays(vaos ...uint32) {
	if len(vaos) > 0 {
		gl.DeleteVertexArrays(int32(len(vaos)), &vaos[0])
	}
}

func (d *OpenGLDevice) DeleteBuffers(buffers ...uint32) {
	if len(buffers) > 0 {
		gl.DeleteBuffers(int32(len(buffers)), &buffers[0])
	}
}

func (d *OpenGLDevice) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

func (d *OpenGLDevice) BufferData(target BufferTarget, buffer uint32, data any) {
	glTarget := uint32(gl.ARRAY_BUFFER)
	if target == ElementArrayBuffer {
		glTarget = gl.ELEMENT_ARRAY_BUFFER
	}
	size, ptr := bufferBytes(data)

	gl.BindBuffer(glTarget, buffer)
	gl.BufferData(glTarget, size, ptr, gl.DYNAMIC_DRAW)
}

// bufferBytes returns the byte size and address of a supported slice.
func bufferBytes(data any) (int, unsafe.Pointer) {
	switch v := data.(type) {
	case []float32:
		if len(v) > 0 {
			return len(v) * 4, gl.Ptr(v)
		}
	case []uint32:
		if len(v) > 0 {
			return len(v) * 4, gl.Ptr(v)
		}
	case []int32:
		if len(v) > 0 {
			return len(v) * 4, gl.Ptr(v)
		}
	case []mgl32.Vec3:
		if len(v) > 0 {
			return len(v) * 3 * 4, gl.Ptr(&v[0][0])
		}
	case []mgl32.Mat4:
		if len(v) > 0 {
			return len(v) * mat4Stride, gl.Ptr(&v[0][0])
		}
	}
	return 0, nil
}

func (d *OpenGLDevice) EnableVertexAttrib(location uint32) { gl.EnableVertexAttribArray(location) }

func (d *OpenGLDevice) VertexAttribPointer(location uint32, size, stride int32, offset int) {
	gl.VertexAttribPointer(location, size, gl.FLOAT, false, stride, gl.PtrOffset(offset))
}

func (d *OpenGLDevice) VertexAttribIPointer(location uint32, size, stride int32, offset int) {
	gl.VertexAttribIPointer(location, size, gl.INT, stride, gl.PtrOffset(offset))
}

func (d *OpenGLDevice) VertexAttribDivisor(location, divisor uint32) {
	gl.VertexAttribDivisor(location, divisor)
}

func (d *OpenGLDevice) CreateTexture(desc TextureDesc) uint32 {
	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)

	switch desc.Format {
	case TextureRGB:
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB, desc.Width, desc.Height, 0, gl.RGB, gl.UNSIGNED_BYTE, nil)
	case TextureDepth24:
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT24, desc.Width, desc.Height, 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	default:
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT, desc.Width, desc.Height, 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	wrap := int32(gl.CLAMP_TO_EDGE)
	if desc.Wrap == WrapClampToBorder {
		wrap = gl.CLAMP_TO_BORDER
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)
	if desc.Wrap == WrapClampToBorder {
		border := desc.Border
		gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &border[0])
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return texture
}

func (d *OpenGLDevice) DeleteTextures(textures ...uint32) {
	if len(textures) > 0 {
		gl.DeleteTextures(int32(len(textures)), &textures[0])
	}
}

func (d *OpenGLDevice) BindTexture(unit, texture uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, texture)
}

// CreateFramebuffer attaches color (optional, 0 for none) and depth. A depth
// only target disables draw and read buffers.
func (d *OpenGLDevice) CreateFramebuffer(color, depth uint32) (uint32, error) {
	var fbo uint32
	gl.GenFramebuffers(1, &fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)

	if color != 0 {
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, color, 0)
	} else {
		gl.DrawBuffer(gl.NONE)
		gl.ReadBuffer(gl.NONE)
	}
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, depth, 0)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		gl.DeleteFramebuffers(1, &fbo)
		d.log.Error("Framebuffer incomplete", zap.Uint32("status", status))
		return 0, fmt.Errorf("status=0x%X: %w", status, ErrFramebufferIncomplete)
	}
	return fbo, nil
}

func (d *OpenGLDevice) DeleteFramebuffers(framebuffers ...uint32) {
	if len(framebuffers) > 0 {
		gl.DeleteFramebuffers(int32(len(framebuffers)), &framebuffers[0])
	}
}

func (d *OpenGLDevice) BindFramebuffer(framebuffer uint32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, framebuffer)
}

func (d *OpenGLDevice) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (d *OpenGLDevice) Clear(mask ClearMask) {
	var bits uint32
	if mask&ClearColor != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&ClearDepth != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(bits)
}

func (d *OpenGLDevice) SetCullFace(face CullFace) {
	if face == CullFront {
		gl.CullFace(gl.FRONT)
		return
	}
	gl.CullFace(gl.BACK)
}

func (d *OpenGLDevice) SetDepthTest(enabled bool) {
	if enabled {
		gl.Enable(gl.DEPTH_TEST)
		return
	}
	gl.Disable(gl.DEPTH_TEST)
}

func (d *OpenGLDevice) DrawElementsInstanced(count, instances int32) {
	gl.DrawElementsInstanced(gl.TRIANGLES, count, gl.UNSIGNED_INT, nil, instances)
}

func (d *OpenGLDevice) DrawTriangleStrip(first, count int32) {
	gl.DrawArrays(gl.TRIANGLE_STRIP, first, count)
}
