package renderer

import "fmt"

// Mesh is geometry in structure-of-arrays form. The renderer only reads the
// slices during an upload; it never keeps or modifies them.
type Mesh struct {
	// ID is the mesh's slot in the GPU resource table and must stay below
	// RenderConfig.MaxMeshes.
	ID int

	// Changed asks the renderer to re-upload every buffer on the next draw.
	Changed bool
	Dynamic bool

	Vertices   []float32 // xyz, required
	UVs        []float32 // uv
	Normals    []float32 // xyz
	Tangents   []float32 // xyz
	Bitangents []float32 // xyz
	Colors     []float32 // rgb
	Indices    []uint32
}

func (m *Mesh) HasUVs() bool        { return len(m.UVs) > 0 }
func (m *Mesh) HasNormals() bool    { return len(m.Normals) > 0 }
func (m *Mesh) HasTangents() bool   { return len(m.Tangents) > 0 }
func (m *Mesh) HasBitangents() bool { return len(m.Bitangents) > 0 }
func (m *Mesh) HasColors() bool     { return len(m.Colors) > 0 }

// VertexCount is the number of xyz positions.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// Validate checks every present stream carries one element per vertex and
// every index names an existing vertex.
func (m *Mesh) Validate() error {
	if len(m.Vertices) == 0 || len(m.Indices) == 0 {
		return fmt.Errorf("mesh %d: %w", m.ID, ErrEmptyMesh)
	}
	if len(m.Vertices)%3 != 0 {
		return fmt.Errorf("mesh %d: %d position floats: %w", m.ID, len(m.Vertices), ErrMeshStream)
	}
	n := m.VertexCount()
	streams := []struct {
		name  string
		data  []float32
		width int
	}{
		{"uvs", m.UVs, 2},
		{"normals", m.Normals, 3},
		{"tangents", m.Tangents, 3},
		{"bitangents", m.Bitangents, 3},
		{"colors", m.Colors, 3},
	}
	for _, s := range streams {
		if len(s.data) > 0 && len(s.data) != n*s.width {
			return fmt.Errorf("mesh %d: %d %s floats for %d vertices: %w", m.ID, len(s.data), s.name, n, ErrMeshStream)
		}
	}
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("mesh %d: index %d is %d of %d vertices: %w", m.ID, i, idx, n, ErrIndexRange)
		}
	}
	return nil
}
