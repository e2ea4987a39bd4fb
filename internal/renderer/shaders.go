package renderer

// =============================================================
//
//	Shaders
//
// =============================================================

// Shader is a linked program generated for one draw call shape.
type Shader struct {
	Program     uint32
	Fingerprint uint32
	Source      ShaderSource

	locations [uniformCount]int32
}

// Location returns the cached location of u, -1 if the program lacks it.
func (s *Shader) Location(u Uniform) int32 {
	if u < 0 || u >= uniformCount {
		return -1
	}
	return s.locations[u]
}

func (s *Shader) resolveLocations(device Device) {
	for u := Uniform(0); u < uniformCount; u++ {
		s.locations[u] = device.UniformLocation(s.Program, u.String())
	}
}

// buildProgram compiles and links a vertex/fragment pair, releasing the
// vertex stage if the fragment stage fails.
func buildProgram(device Device, vertex, fragment string) (uint32, error) {
	vs, err := device.CompileShader(StageVertex, vertex)
	if err != nil {
		return 0, err
	}
	fs, err := device.CompileShader(StageFragment, fragment)
	if err != nil {
		device.DeleteShader(vs)
		return 0, err
	}
	return device.LinkProgram(vs, fs)
}

var shadowVertexSource = `/* Beneath ShadowMap Vertex Shader */
#version 330 core

layout (location = 0) in vec3 position;
layout (location = 6) in mat4 model;

uniform mat4 pv;

void main()
{
    gl_Position = pv * model * vec4(position, 1.0);
}
`

var shadowFragmentSource = `/* Beneath ShadowMap Fragment Shader */
#version 330 core

void main()
{
    /* depth only */
}
`

var postProcessVertexSource = `#version 330 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aUV;
out vec2 vUV;

void main()
{
    vUV = aUV;
    gl_Position = vec4(aPos, 0.0, 1.0);
}
`

var postProcessFragmentSource = `#version 330 core
in vec2 vUV;
out vec4 FragColor;
uniform sampler2D screen_texture;

void main()
{
    FragColor = vec4(texture(screen_texture, vUV).rgb, 1.0);
}
`

var pixelFragmentSource = `#version 330 core
const float colors_per_channel = 16.0;
const float gamma = 2.2;
in vec2 vUV;
out vec4 FragColor;
uniform sampler2D screen_texture;
uniform vec2 texel_size;

void main()
{
    vec3 color = texture(screen_texture, vUV).rgb;
    color = pow(color, vec3(1.0 / gamma));
    vec3 quantized = (floor(color * colors_per_channel) + 0.5) / colors_per_channel;
    quantized = pow(quantized, vec3(gamma));

    vec3 north = texture(screen_texture, vUV + vec2(0.0, texel_size.y)).rgb;
    vec3 south = texture(screen_texture, vUV - vec2(0.0, texel_size.y)).rgb;
    vec3 east  = texture(screen_texture, vUV + vec2(texel_size.x, 0.0)).rgb;
    vec3 west  = texture(screen_texture, vUV - vec2(texel_size.x, 0.0)).rgb;

    float edge = length(north - south) + length(east - west);
    edge = clamp(edge * 0.5, 0.0, 1.0);

    vec3 edge_color = vec3(0.2);
    FragColor = vec4(mix(quantized, edge_color, edge), 1.0);
}
`

var volumetricFragmentSource = `#version 330 core
in vec2 vUV;
out vec4 FragColor;

uniform sampler2D screen_texture;
uniform sampler2D depth_texture;
uniform sampler2D shadow_map;

uniform vec3 light_position;
uniform vec3 light_direction;
uniform mat4 light_projection;
uniform mat4 light_view;
uniform vec3 camera_position;
uniform mat4 camera_projection_inverse;
uniform mat4 camera_view_inverse;

uniform float camera_far;
uniform float cone_angle;
uniform float shadow_bias;

const float SCATTERING_ANISO = 0.3;
const float STEP_SIZE = 0.2;
const int NUM_STEPS = 64;
const vec3 LIGHT_COLOR = vec3(1.0, 0.98, 0.9);
const float LIGHT_INTENSITY = 6.0;
const float FOG_INTENSITY = 0.6;

vec3 worldPosition(vec2 uv, float depth)
{
    vec4 clip = vec4(uv * 2.0 - 1.0, depth * 2.0 - 1.0, 1.0);
    vec4 world = camera_view_inverse * (camera_projection_inverse * clip);
    return world.xyz / world.w;
}

float lit(vec3 p)
{
    vec4 clip = light_projection * light_view * vec4(p, 1.0);
    vec3 ndc = clip.xyz / clip.w;
    vec2 coord = ndc.xy * 0.5 + 0.5;
    float depth = ndc.z * 0.5 + 0.5;

    if (coord.x < 0.0 || coord.x > 1.0 || coord.y < 0.0 || coord.y > 1.0 || depth > 1.0)
        return 1.0;

    return (depth > texture(shadow_map, coord).x + shadow_bias) ? 0.0 : 1.0;
}

float sdCone(vec3 p, vec3 origin, vec3 axis, float angle)
{
    vec3 d = p - origin;
    float h = dot(d, axis);
    float r = length(d - axis * h);
    float side = r * cos(angle) - h * sin(angle);
    if (h < 0.0 && side > 0.0)
        return length(d);
    vec2 b = vec2(side, -h);
    return length(max(b, 0.0)) + min(max(b.x, b.y), 0.0);
}

float phaseHG(float mu)
{
    float gg = SCATTERING_ANISO * SCATTERING_ANISO;
    float denom = max(1.0 + gg - 2.0 * SCATTERING_ANISO * mu, 0.0001);
    return (1.0 - gg) / pow(denom, 1.5);
}

void main()
{
    vec3 color = texture(screen_texture, vUV).rgb;
    vec3 world = worldPosition(vUV, texture(depth_texture, vUV).x);

    vec3 ray = normalize(world - camera_position);
    float scene_depth = length(world - camera_position);
    float half_cone = radians(cone_angle) * 0.5;
    float jitter = fract(sin(dot(vUV, vec2(12.9898, 78.233))) * 43758.5453);

    float t = STEP_SIZE;
    float transmittance = 1.0;
    vec3 light = vec3(0.0);

    for (int i = 0; i < NUM_STEPS; i++)
    {
        if (t > scene_depth || t > camera_far)
            break;

        vec3 p = camera_position + ray * t;
        float density = max(-sdCone(p, light_position, normalize(light_direction), half_cone), 0.0);

        if (lit(p) > 0.0 && density >= 0.001)
        {
            vec3 to_sample = normalize(p - light_position);
            float attenuation = exp(-0.3 * length(p - light_position));
            vec3 luminance = LIGHT_COLOR * LIGHT_INTENSITY * attenuation * phaseHG(dot(ray, -to_sample));
            float step_density = FOG_INTENSITY * density;

            transmittance *= exp(-step_density * STEP_SIZE);
            light += luminance * transmittance * step_density * STEP_SIZE;
        }

        t += STEP_SIZE * (0.9 + 0.2 * jitter);
    }

    FragColor = vec4(color + light, 1.0);
}
`
