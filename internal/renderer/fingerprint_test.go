package renderer

import (
	"hash/fnv"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestFingerprintIsStable(t *testing.T) {
	a := &DrawCall{Mesh: testCube(0), Models: identities(1), Colors: []mgl32.Vec3{{1, 0, 0}}}
	b := &DrawCall{Mesh: testCube(5), Models: identities(1), Colors: []mgl32.Vec3{{0, 1, 0}}}

	if Fingerprint(a) != Fingerprint(a) {
		t.Fatal("fingerprint changed between calls")
	}
	if Fingerprint(a) != Fingerprint(b) {
		t.Error("values and mesh id should not affect the fingerprint")
	}
}

func TestFingerprintIgnoresInstanceCountWithinLayout(t *testing.T) {
	a := &DrawCall{Mesh: testCube(0), Models: identities(2)}
	b := &DrawCall{Mesh: testCube(0), Models: identities(500)}

	if Fingerprint(a) != Fingerprint(b) {
		t.Error("2 and 500 instances share the layout category")
	}
}

func TestFingerprintDiscriminates(t *testing.T) {
	base := func() *DrawCall {
		return &DrawCall{Mesh: testCube(0), Models: identities(1)}
	}
	light := NewDirectionalLighting(mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 1, 1}, 0.1)

	variants := map[string]*DrawCall{
		"base":       base(),
		"layout":     func() *DrawCall { dc := base(); dc.Models = identities(3); return dc }(),
		"color":      func() *DrawCall { dc := base(); dc.Colors = make([]mgl32.Vec3, 1); return dc }(),
		"texture":    func() *DrawCall { dc := base(); dc.TextureIndices = []int32{1}; return dc }(),
		"normals":    func() *DrawCall { dc := base(); withNormals(dc.Mesh); return dc }(),
		"uvs":        func() *DrawCall { dc := base(); dc.Mesh.UVs = []float32{0, 0}; return dc }(),
		"tangents":   func() *DrawCall { dc := base(); dc.Mesh.Tangents = []float32{1, 0, 0}; return dc }(),
		"bitangents": func() *DrawCall { dc := base(); dc.Mesh.Bitangents = []float32{0, 0, 1}; return dc }(),
		"meshcolor":  func() *DrawCall { dc := base(); withColors(dc.Mesh); return dc }(),
		"lighting":   func() *DrawCall { dc := base(); dc.Lighting = light; return dc }(),
		"shadow":     func() *DrawCall { dc := base(); dc.Lighting = light; dc.Shadow = true; return dc }(),
	}

	seen := make(map[uint32]string)
	for name, dc := range variants {
		h := Fingerprint(dc)
		if other, ok := seen[h]; ok {
			t.Errorf("%s and %s share fingerprint %08x", name, other, h)
		}
		seen[h] = name
	}
}

func TestFingerprintMatchesFNV1a(t *testing.T) {
	s := Shape{Models: CardinalityLayout, Colors: CardinalityUniform, Normals: true, Lighting: true}

	h := fnv.New32a()
	h.Write([]byte{2, 1, 0, 0, 1, 0, 0, 0, 0, 1, 0})

	if got, want := s.Fingerprint(), h.Sum32(); got != want {
		t.Errorf("fingerprint = %08x, want %08x", got, want)
	}
}

func TestShapeOfNilMesh(t *testing.T) {
	s := ShapeOf(&DrawCall{Models: identities(1)})

	if s.UVs || s.Normals || s.MeshColors || s.UseMeshColor {
		t.Errorf("nil mesh should have no attributes, got %+v", s)
	}
	if s.Models != CardinalityUniform {
		t.Errorf("models = %s, want uniform", s.Models)
	}
}
