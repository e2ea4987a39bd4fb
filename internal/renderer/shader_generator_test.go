package renderer

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func generate(t *testing.T, dc *DrawCall) ShaderSource {
	t.Helper()
	src, err := NewShaderGenerator(0).Generate(dc)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return src
}

var interfaceLine = regexp.MustCompile(`^(in|out) (\w+) (v_\w+);$`)

// stageInterface returns the varyings a stage declares, keyed by name.
func stageInterface(source, direction string) map[string]string {
	out := make(map[string]string)
	for _, line := range strings.Split(source, "\n") {
		m := interfaceLine.FindStringSubmatch(strings.TrimSpace(line))
		if m != nil && m[1] == direction {
			out[m[3]] = m[2]
		}
	}
	return out
}

func TestGeneratedHeader(t *testing.T) {
	dc := &DrawCall{Mesh: testCube(0), Models: identities(1)}
	src := generate(t, dc)

	header := fmt.Sprintf("/* Beneath Vertex Shader (hash=%08x) */\n#version 330 core\n", Fingerprint(dc))
	if !strings.HasPrefix(src.Vertex, header) {
		t.Errorf("vertex stage should start with\n%s\ngot\n%s", header, src.Vertex[:len(header)])
	}
	if !strings.Contains(src.Fragment, "#version 330 core") {
		t.Error("fragment stage missing version")
	}
	if !strings.Contains(src.Fragment, "out vec4 FragColor;") {
		t.Error("fragment stage missing FragColor output")
	}
}

func TestGeneratorIsDeterministic(t *testing.T) {
	a := generate(t, &DrawCall{Mesh: withNormals(testCube(0)), Models: identities(3), Lighting: Sun()})
	b := generate(t, &DrawCall{Mesh: withNormals(testCube(9)), Models: identities(7), Lighting: Sun()})

	if a != b {
		t.Error("equal shapes generated different sources")
	}
}

func TestUniformVersusLayout(t *testing.T) {
	tests := []struct {
		name      string
		dc        *DrawCall
		contains  []string
		forbidden []string
	}{
		{
			name:      "single model",
			dc:        &DrawCall{Mesh: testCube(0), Models: identities(1)},
			contains:  []string{"uniform mat4 model;"},
			forbidden: []string{"layout (location = 6)"},
		},
		{
			name:      "instanced models",
			dc:        &DrawCall{Mesh: testCube(0), Models: identities(4)},
			contains:  []string{"layout (location = 6) in mat4 model;"},
			forbidden: []string{"uniform mat4 model;"},
		},
		{
			name:      "shared color",
			dc:        &DrawCall{Mesh: testCube(0), Models: identities(4), Colors: []mgl32.Vec3{{1, 0, 0}}},
			contains:  []string{"uniform vec3 color;", "v_color = color;"},
			forbidden: []string{"layout (location = 10)"},
		},
		{
			name:      "per instance color",
			dc:        &DrawCall{Mesh: testCube(0), Models: identities(4), Colors: make([]mgl32.Vec3, 4)},
			contains:  []string{"layout (location = 10) in vec3 color;"},
			forbidden: []string{"uniform vec3 color;"},
		},
		{
			name:      "per instance texture index",
			dc:        &DrawCall{Mesh: testCube(0), Models: identities(2), TextureIndices: []int32{0, 1}},
			contains:  []string{"layout (location = 13) in int texture_index;"},
			forbidden: []string{"uniform int texture_index;"},
		},
		{
			name:      "shared texture index",
			dc:        &DrawCall{Mesh: testCube(0), Models: identities(2), TextureIndices: []int32{5}},
			contains:  []string{"uniform int texture_index;"},
			forbidden: []string{"layout (location = 13)"},
		},
		{
			name:      "mesh color",
			dc:        &DrawCall{Mesh: withColors(testCube(0)), Models: identities(1)},
			contains:  []string{"layout (location = 5) in vec3 color;", "v_color = color;"},
			forbidden: []string{"uniform vec3 color;"},
		},
		{
			name:      "no color at all",
			dc:        &DrawCall{Mesh: testCube(0), Models: identities(1)},
			contains:  []string{"v_color = vec3(1.0);"},
			forbidden: []string{"vec3 color;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := generate(t, tt.dc)
			for _, want := range tt.contains {
				if !strings.Contains(src.Vertex, want) {
					t.Errorf("vertex stage missing %q\n%s", want, src.Vertex)
				}
			}
			for _, bad := range tt.forbidden {
				if strings.Contains(src.Vertex, bad) {
					t.Errorf("vertex stage should not contain %q\n%s", bad, src.Vertex)
				}
			}
		})
	}
}

func TestSharedUniformsInBothStages(t *testing.T) {
	dc := &DrawCall{Mesh: testCube(0), Models: identities(2), Colors: []mgl32.Vec3{{1, 1, 1}}, TextureIndices: []int32{2}}
	src := generate(t, dc)

	for _, u := range []string{"uniform float time;", "uniform float delta_time;", "uniform vec2 resolution;", "uniform vec3 camera_position;", "uniform mat4 pv;", "uniform vec3 color;", "uniform int texture_index;"} {
		if !strings.Contains(src.Vertex, u) {
			t.Errorf("vertex stage missing %q", u)
		}
		if !strings.Contains(src.Fragment, u) {
			t.Errorf("fragment stage missing %q", u)
		}
	}
}

func TestStageInterfacesMatch(t *testing.T) {
	shapes := map[string]*DrawCall{
		"unlit":  {Mesh: testCube(0), Models: identities(1)},
		"lit":    {Mesh: withNormals(testCube(0)), Models: identities(2), Lighting: Sun()},
		"shadow": {Mesh: withNormals(testCube(0)), Models: identities(2), Lighting: Sun(), Shadow: true},
	}

	for name, dc := range shapes {
		t.Run(name, func(t *testing.T) {
			src := generate(t, dc)
			outs := stageInterface(src.Vertex, "out")
			ins := stageInterface(src.Fragment, "in")

			if len(outs) == 0 {
				t.Fatal("vertex stage declares no varyings")
			}
			if len(outs) != len(ins) {
				t.Fatalf("vertex outputs %v, fragment inputs %v", outs, ins)
			}
			for name, typ := range outs {
				if ins[name] != typ {
					t.Errorf("varying %s: vertex %s, fragment %q", name, typ, ins[name])
				}
			}
		})
	}
}

func TestLightingAndShadowSections(t *testing.T) {
	lit := generate(t, &DrawCall{Mesh: withNormals(testCube(0)), Models: identities(1), Lighting: Sun()})
	if !strings.Contains(lit.Fragment, "CalcDirectionalLight") {
		t.Error("lit shape should include the directional light function")
	}
	if !strings.Contains(lit.Fragment, "float shadow = 0.0;") {
		t.Error("unshadowed lit shape should use a zero shadow factor")
	}
	if strings.Contains(lit.Fragment, "ShadowCalculation") {
		t.Error("unshadowed shape should not include the PCF function")
	}
	if !strings.Contains(lit.Vertex, "mat3(transpose(inverse(model))) * normal") {
		t.Error("normals should be transformed by the normal matrix")
	}

	shadowed := generate(t, &DrawCall{Mesh: withNormals(testCube(0)), Models: identities(1), Lighting: Sun(), Shadow: true})
	if !strings.Contains(shadowed.Fragment, "uniform sampler2D shadow_map;") {
		t.Error("shadowed shape should sample the shadow map")
	}
	if !strings.Contains(shadowed.Vertex, "uniform mat4 light_space_matrix;") {
		t.Error("shadowed shape should declare the light space matrix")
	}
	if !strings.Contains(shadowed.Fragment, "ShadowCalculation(v_frag_pos_light_space") {
		t.Error("shadowed shape should call the PCF function")
	}
}

func TestLightingWithoutNormalsFallsBack(t *testing.T) {
	src := generate(t, &DrawCall{Mesh: testCube(0), Models: identities(1), Lighting: Sun()})

	if !strings.Contains(src.Vertex, "v_normal = vec3(0.0, 1.0, 0.0);") {
		t.Errorf("expected the up vector as fallback normal\n%s", src.Vertex)
	}
	if strings.Contains(src.Vertex, "in vec3 normal;") {
		t.Error("no normal attribute expected without mesh normals")
	}
}

func TestGeneratorCapacity(t *testing.T) {
	dc := &DrawCall{Mesh: withNormals(testCube(0)), Models: identities(2), Lighting: Sun(), Shadow: true}

	_, err := NewShaderGenerator(256).Generate(dc)
	if !errors.Is(err, ErrShaderSourceTooLarge) {
		t.Fatalf("expected ErrShaderSourceTooLarge, got %v", err)
	}

	src, err := NewShaderGenerator(DefaultShaderSourceCapacity).Generate(dc)
	if err != nil {
		t.Fatalf("default capacity should fit the largest shape: %v", err)
	}
	if len(src.Vertex) > DefaultShaderSourceCapacity || len(src.Fragment) > DefaultShaderSourceCapacity {
		t.Error("generated stage exceeds capacity")
	}
}
