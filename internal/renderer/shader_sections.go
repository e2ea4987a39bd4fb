package renderer

import (
	"fmt"
	"strings"
)

// glslVersion is the first directive of every generated stage.
const glslVersion = "#version 330 core"

// stageSource collects one shader stage section by section. Sections are
// emitted in declaration order, empty ones are skipped.
type stageSource struct {
	header    []string
	layouts   []string
	uniforms  []string
	varyings  []string
	functions []string
	main      []string
}

func (s *stageSource) layout(location uint32, typ, name string) {
	s.layouts = append(s.layouts, fmt.Sprintf("layout (location = %d) in %s %s;", location, typ, name))
}

func (s *stageSource) uniform(typ, name string) {
	s.uniforms = append(s.uniforms, fmt.Sprintf("uniform %s %s;", typ, name))
}

func (s *stageSource) function(body string) {
	s.functions = append(s.functions, strings.TrimRight(body, "\n"))
}

func (s *stageSource) statement(format string, args ...any) {
	s.main = append(s.main, "    "+fmt.Sprintf(format, args...))
}

func (s *stageSource) String() string {
	var b strings.Builder

	for _, l := range s.header {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	writeSection(&b, "Layouts", s.layouts)
	writeSection(&b, "Uniforms", s.uniforms)
	writeSection(&b, "Interface", s.varyings)
	for _, f := range s.functions {
		b.WriteByte('\n')
		b.WriteString(f)
		b.WriteByte('\n')
	}

	b.WriteString("\nvoid main()\n{\n")
	for _, l := range s.main {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	b.WriteString("}\n")
	return b.String()
}

func writeSection(b *strings.Builder, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(b, "\n/* %s */\n", title)
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
}

// varying is a value passed from the vertex to the fragment stage.
type varying struct {
	typ  string
	name string
}

// stageVaryings is the single source of the vertex/fragment interface so
// both stages always declare the same set.
func stageVaryings(s Shape) []varying {
	v := []varying{{"vec3", "v_color"}}
	if s.Lighting {
		v = append(v, varying{"vec3", "v_normal"}, varying{"vec3", "v_frag_pos"})
	}
	if s.shadowed() {
		v = append(v, varying{"vec4", "v_frag_pos_light_space"})
	}
	return v
}

// globalUniforms are declared by every generated stage.
var globalUniforms = [...]struct{ typ, name string }{
	{"float", "time"},
	{"float", "delta_time"},
	{"vec2", "resolution"},
	{"vec3", "camera_position"},
	{"mat4", "pv"},
}

const shadowFunctions = `float rand(vec2 co)
{
    return fract(sin(dot(co.xy, vec2(12.9898, 78.233))) * 43758.5453);
}

float ShadowCalculation(vec4 frag_pos_light_space, vec3 normal, vec3 light_dir)
{
    vec3 proj_coords = frag_pos_light_space.xyz / frag_pos_light_space.w;
    proj_coords = proj_coords * 0.5 + 0.5;

    if (proj_coords.z > 1.0)
        return 0.0;

    float bias = max(0.005 * (1.0 - dot(normalize(normal), normalize(-light_dir))), 0.001);

    float shadow = 0.0;
    vec2 texel_size = 1.0 / textureSize(shadow_map, 0);

    /* Rotate the 3x3 kernel per fragment to break up banding */
    float angle = rand(proj_coords.xy) * 6.2831853;
    mat2 rot = mat2(cos(angle), -sin(angle), sin(angle), cos(angle));

    for (int x = -1; x <= 1; ++x)
    {
        for (int y = -1; y <= 1; ++y)
        {
            vec2 offset = rot * vec2(x, y) * texel_size;
            float pcf_depth = texture(shadow_map, proj_coords.xy + offset).r;
            shadow += (proj_coords.z - bias > pcf_depth ? 1.0 : 0.0);
        }
    }

    return shadow / 9.0;
}`

const lightingStruct = `struct DirectionalLight {
    vec3 direction;
    vec3 ambient;
    vec3 diffuse;
    vec3 specular;
};

uniform DirectionalLight dir_light;`

const lightingFunctions = `vec3 CalcDirectionalLight(DirectionalLight light, vec3 normal, vec3 view_dir, float shadow)
{
    vec3 light_dir = normalize(-light.direction);

    float diff = max(dot(normal, light_dir), 0.0);

    vec3 halfway_dir = normalize(light_dir + view_dir);
    float spec = pow(max(dot(normal, halfway_dir), 0.0), 32.0);

    vec3 ambient  = light.ambient * v_color;
    vec3 diffuse  = light.diffuse * diff * v_color;
    vec3 specular = light.specular * spec;

    return ambient + (1.0 - shadow) * (diffuse + specular);
}`
