package renderer

import "fmt"

// DefaultShaderSourceCapacity bounds each generated stage in bytes.
const DefaultShaderSourceCapacity = 8192

// ShaderSource is a generated vertex/fragment pair.
type ShaderSource struct {
	Vertex   string
	Fragment string
}

// ShaderGenerator turns a draw call shape into GLSL. Output depends only on
// the shape, so equal fingerprints always produce identical text.
type ShaderGenerator struct {
	capacity int
}

// NewShaderGenerator returns a generator bounding each stage to capacity
// bytes. A non-positive capacity selects DefaultShaderSourceCapacity.
func NewShaderGenerator(capacity int) *ShaderGenerator {
	if capacity <= 0 {
		capacity = DefaultShaderSourceCapacity
	}
	return &ShaderGenerator{capacity: capacity}
}

// Generate produces the sources for dc.
func (g *ShaderGenerator) Generate(dc *DrawCall) (ShaderSource, error) {
	return g.GenerateShape(ShapeOf(dc))
}

// GenerateShape produces the sources for s. Nothing is returned when either
// stage exceeds the capacity.
func (g *ShaderGenerator) GenerateShape(s Shape) (ShaderSource, error) {
	hash := s.Fingerprint()

	vertex := vertexStage(s, hash).String()
	if len(vertex) > g.capacity {
		return ShaderSource{}, fmt.Errorf("vertex stage %08x is %d bytes, capacity %d: %w", hash, len(vertex), g.capacity, ErrShaderSourceTooLarge)
	}

	fragment := fragmentStage(s, hash).String()
	if len(fragment) > g.capacity {
		return ShaderSource{}, fmt.Errorf("fragment stage %08x is %d bytes, capacity %d: %w", hash, len(fragment), g.capacity, ErrShaderSourceTooLarge)
	}

	return ShaderSource{Vertex: vertex, Fragment: fragment}, nil
}

// shadowed reports whether shadow code is emitted. The shadow factor feeds
// the lighting equation, so it needs a light.
func (s Shape) shadowed() bool {
	return s.Shadow && s.Lighting
}

// colorUniform reports whether the instance color is a shared uniform.
func (s Shape) colorUniform() bool {
	return !s.UseMeshColor && s.Colors == CardinalityUniform
}

func (s Shape) textureIndexUniform() bool {
	return !s.UseMeshColor && s.TextureIndices == CardinalityUniform
}

// sharedUniforms declares what both stages see: the globals and the
// instance values that collapsed to a uniform.
func sharedUniforms(st *stageSource, s Shape) {
	for _, u := range globalUniforms {
		st.uniform(u.typ, u.name)
	}
	if s.colorUniform() {
		st.uniform("vec3", "color")
	}
	if s.textureIndexUniform() {
		st.uniform("int", "texture_index")
	}
}

func vertexStage(s Shape, hash uint32) *stageSource {
	st := &stageSource{
		header: []string{fmt.Sprintf("/* Beneath Vertex Shader (hash=%08x) */", hash), glslVersion},
	}

	st.layout(LocationPosition, "vec3", "position")
	if s.UVs {
		st.layout(LocationUV, "vec2", "uv")
	}
	if s.Normals {
		st.layout(LocationNormal, "vec3", "normal")
	}
	if s.Tangents {
		st.layout(LocationTangent, "vec3", "tangent")
	}
	if s.Bitangents {
		st.layout(LocationBitangent, "vec3", "bitangent")
	}
	if s.UseMeshColor {
		st.layout(LocationColor, "vec3", "color")
	}
	if s.Models == CardinalityLayout {
		st.layout(LocationInstanceModel, "mat4", "model")
	}
	if s.Colors == CardinalityLayout {
		st.layout(LocationInstanceColor, "vec3", "color")
	}
	if s.TextureIndices == CardinalityLayout {
		st.layout(LocationInstanceTex, "int", "texture_index")
	}

	sharedUniforms(st, s)
	if s.Models != CardinalityLayout {
		st.uniform("mat4", "model")
	}
	if s.shadowed() {
		st.uniform("mat4", "light_space_matrix")
	}

	for _, v := range stageVaryings(s) {
		st.varyings = append(st.varyings, fmt.Sprintf("out %s %s;", v.typ, v.name))
	}

	color := "vec3(1.0)"
	if s.UseMeshColor || s.Colors != CardinalityNone {
		color = "color"
	}

	if s.Lighting {
		normal := "vec3(0.0, 1.0, 0.0)"
		if s.Normals {
			normal = "mat3(transpose(inverse(model))) * normal"
		}
		st.statement("vec4 world_pos = model * vec4(position, 1.0);")
		st.statement("v_frag_pos = world_pos.xyz;")
		st.statement("v_normal = %s;", normal)
		st.statement("v_color = %s;", color)
		if s.shadowed() {
			st.statement("v_frag_pos_light_space = light_space_matrix * world_pos;")
		}
		st.statement("gl_Position = pv * world_pos;")
	} else {
		st.statement("v_color = %s;", color)
		st.statement("gl_Position = pv * model * vec4(position, 1.0);")
	}
	return st
}

func fragmentStage(s Shape, hash uint32) *stageSource {
	st := &stageSource{
		header: []string{fmt.Sprintf("/* Beneath Fragment Shader (hash=%08x) */", hash), glslVersion},
	}

	sharedUniforms(st, s)
	if s.shadowed() {
		st.uniform("sampler2D", "shadow_map")
	}

	for _, v := range stageVaryings(s) {
		st.varyings = append(st.varyings, fmt.Sprintf("in %s %s;", v.typ, v.name))
	}
	st.varyings = append(st.varyings, "out vec4 FragColor;")

	if s.shadowed() {
		st.function(shadowFunctions)
	}
	if s.Lighting {
		st.function(lightingStruct)
		st.function(lightingFunctions)

		st.statement("vec3 norm = normalize(v_normal);")
		st.statement("vec3 view_dir = normalize(camera_position - v_frag_pos);")
		if s.shadowed() {
			st.statement("float shadow = ShadowCalculation(v_frag_pos_light_space, norm, dir_light.direction);")
		} else {
			st.statement("float shadow = 0.0;")
		}
		st.statement("vec3 result = CalcDirectionalLight(dir_light, norm, view_dir, shadow);")
		st.statement("FragColor = vec4(result, 1.0);")
	} else {
		st.statement("FragColor = vec4(v_color, 1.0);")
	}
	return st
}
