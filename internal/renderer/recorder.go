package renderer

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Call is one recorded Device invocation.
type Call struct {
	Op   string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Op, c.Args)
}

// Recorder is a Device that keeps every call in order instead of talking to
// a GPU. Object names are handed out from a single counter so they never
// collide. Uniform locations resolve only for names a linked program
// declares, mirroring how a driver drops unknown uniforms.
type Recorder struct {
	Calls []Call

	// FailCompile, when set, decides which compiles fail.
	FailCompile func(stage ShaderStage, source string) bool
	// FailFramebuffer makes every CreateFramebuffer report incomplete.
	FailFramebuffer bool

	next      uint32
	shaders   map[uint32]string
	programs  map[uint32]string
	locations map[uint32]map[string]int32
}

func NewRecorder() *Recorder {
	return &Recorder{
		shaders:   make(map[uint32]string),
		programs:  make(map[uint32]string),
		locations: make(map[uint32]map[string]int32),
	}
}

func (r *Recorder) record(op string, args ...any) {
	r.Calls = append(r.Calls, Call{Op: op, Args: args})
}

func (r *Recorder) name() uint32 {
	r.next++
	return r.next
}

// Count returns how many calls of op were recorded.
func (r *Recorder) Count(op string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Index returns the position of the first op call at or after from, or -1.
func (r *Recorder) Index(op string, from int) int {
	for i := from; i < len(r.Calls); i++ {
		if r.Calls[i].Op == op {
			return i
		}
	}
	return -1
}

// Find returns every recorded call of op.
func (r *Recorder) Find(op string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Reset forgets recorded calls but keeps GPU objects alive.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}

// ProgramSource returns the vertex and fragment text linked into program.
func (r *Recorder) ProgramSource(program uint32) string {
	return r.programs[program]
}

func (r *Recorder) CompileShader(stage ShaderStage, source string) (uint32, error) {
	r.record("CompileShader", stage)
	if r.FailCompile != nil && r.FailCompile(stage, source) {
		return 0, fmt.Errorf("%s stage: recorder rejected source: %w", stage, ErrShaderCompile)
	}
	id := r.name()
	r.shaders[id] = source
	return id, nil
}

func (r *Recorder) DeleteShader(shader uint32) {
	r.record("DeleteShader", shader)
	delete(r.shaders, shader)
}

func (r *Recorder) LinkProgram(vertex, fragment uint32) (uint32, error) {
	r.record("LinkProgram", vertex, fragment)
	vs, okV := r.shaders[vertex]
	fs, okF := r.shaders[fragment]
	delete(r.shaders, vertex)
	delete(r.shaders, fragment)
	if !okV || !okF {
		return 0, fmt.Errorf("unknown shader object: %w", ErrProgramLink)
	}
	id := r.name()
	r.programs[id] = vs + "\n" + fs
	r.locations[id] = make(map[string]int32)
	return id, nil
}

func (r *Recorder) DeleteProgram(program uint32) {
	r.record("DeleteProgram", program)
	delete(r.programs, program)
	delete(r.locations, program)
}

func (r *Recorder) UseProgram(program uint32) { r.record("UseProgram", program) }

func (r *Recorder) UniformLocation(program uint32, name string) int32 {
	r.record("UniformLocation", program, name)
	locs, ok := r.locations[program]
	if !ok || !declaresUniform(r.programs[program], name) {
		return -1
	}
	if loc, ok := locs[name]; ok {
		return loc
	}
	loc := int32(len(locs))
	locs[name] = loc
	return loc
}

// declaresUniform looks for "uniform <type> <root>;" where root is name up to
// the first struct member access.
func declaresUniform(source, name string) bool {
	root := name
	if i := strings.IndexByte(root, '.'); i >= 0 {
		root = root[:i]
	}
	for _, line := range strings.Split(source, "\n") {
		f := strings.Fields(line)
		if len(f) >= 3 && f[0] == "uniform" && strings.TrimSuffix(f[2], ";") == root {
			return true
		}
	}
	return false
}

func (r *Recorder) SetUniformInt(location int32, v int32)       { r.record("SetUniformInt", location, v) }
func (r *Recorder) SetUniformFloat(location int32, v float32)   { r.record("SetUniformFloat", location, v) }
func (r *Recorder) SetUniformVec2(location int32, v mgl32.Vec2) { r.record("SetUniformVec2", location, v) }
func (r *Recorder) SetUniformVec3(location int32, v mgl32.Vec3) { r.record("SetUniformVec3", location, v) }
func (r *Recorder) SetUniformMat4(location int32, m mgl32.Mat4) { r.record("SetUniformMat4", location, m) }

func (r *Recorder) GenVertexArrays(n int) []uint32 {
	r.record("GenVertexArrays", n)
	return r.names(n)
}

func (r *Recorder) GenBuffers(n int) []uint32 {
	r.record("GenBuffers", n)
	return r.names(n)
}

func (r *Recorder) names(n int) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = r.name()
	}
	return out
}

func (r *Recorder) DeleteVertexArrays(vaos ...uint32) { r.record("DeleteVertexArrays", len(vaos)) }
func (r *Recorder) DeleteBuffers(buffers ...uint32)   { r.record("DeleteBuffers", len(buffers)) }
func (r *Recorder) BindVertexArray(vao uint32)        { r.record("BindVertexArray", vao) }

// BufferData records the target, buffer and element count.
func (r *Recorder) BufferData(target BufferTarget, buffer uint32, data any) {
	n := 0
	switch v := data.(type) {
	case []float32:
		n = len(v)
	case []uint32:
		n = len(v)
	case []int32:
		n = len(v)
	case []mgl32.Vec3:
		n = len(v)
	case []mgl32.Mat4:
		n = len(v)
	}
	r.record("BufferData", target, buffer, n)
}

func (r *Recorder) EnableVertexAttrib(location uint32) { r.record("EnableVertexAttrib", location) }

func (r *Recorder) VertexAttribPointer(location uint32, size, stride int32, offset int) {
	r.record("VertexAttribPointer", location, size, stride, offset)
}

func (r *Recorder) VertexAttribIPointer(location uint32, size, stride int32, offset int) {
	r.record("VertexAttribIPointer", location, size, stride, offset)
}

func (r *Recorder) VertexAttribDivisor(location, divisor uint32) {
	r.record("VertexAttribDivisor", location, divisor)
}

func (r *Recorder) CreateTexture(desc TextureDesc) uint32 {
	r.record("CreateTexture", desc)
	return r.name()
}

func (r *Recorder) DeleteTextures(textures ...uint32) { r.record("DeleteTextures", len(textures)) }
func (r *Recorder) BindTexture(unit, texture uint32) { r.record("BindTexture", unit, texture) }

func (r *Recorder) CreateFramebuffer(color, depth uint32) (uint32, error) {
	r.record("CreateFramebuffer", color, depth)
	if r.FailFramebuffer {
		return 0, fmt.Errorf("recorder: %w", ErrFramebufferIncomplete)
	}
	return r.name(), nil
}

func (r *Recorder) DeleteFramebuffers(framebuffers ...uint32) {
	r.record("DeleteFramebuffers", len(framebuffers))
}

func (r *Recorder) BindFramebuffer(framebuffer uint32) { r.record("BindFramebuffer", framebuffer) }

func (r *Recorder) Viewport(x, y, width, height int32) { r.record("Viewport", x, y, width, height) }
func (r *Recorder) Clear(mask ClearMask)              { r.record("Clear", mask) }
func (r *Recorder) SetCullFace(face CullFace)         { r.record("SetCullFace", face) }
func (r *Recorder) SetDepthTest(enabled bool)         { r.record("SetDepthTest", enabled) }

func (r *Recorder) DrawElementsInstanced(count, instances int32) {
	r.record("DrawElementsInstanced", count, instances)
}

func (r *Recorder) DrawTriangleStrip(first, count int32) {
	r.record("DrawTriangleStrip", first, count)
}
