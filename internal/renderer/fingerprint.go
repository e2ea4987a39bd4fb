package renderer

import "hash/fnv"

// Shape is everything about a draw call that changes the generated shader
// text. Two draw calls with the same Shape share one program.
type Shape struct {
	Models         Cardinality
	Colors         Cardinality
	TextureIndices Cardinality

	UVs        bool
	Normals    bool
	Tangents   bool
	Bitangents bool
	MeshColors bool

	UseMeshColor bool

	Lighting bool
	Shadow   bool
}

// ShapeOf extracts the shape of dc. A nil mesh reads as a mesh with no
// optional attributes.
func ShapeOf(dc *DrawCall) Shape {
	s := Shape{
		Models:         CardinalityOf(len(dc.Models)),
		Colors:         CardinalityOf(len(dc.Colors)),
		TextureIndices: CardinalityOf(len(dc.TextureIndices)),
		UseMeshColor:   dc.UseMeshColor(),
		Lighting:       dc.Lighting != nil,
		Shadow:         dc.Shadow,
	}
	if m := dc.Mesh; m != nil {
		s.UVs = m.HasUVs()
		s.Normals = m.HasNormals()
		s.Tangents = m.HasTangents()
		s.Bitangents = m.HasBitangents()
		s.MeshColors = m.HasColors()
	}
	return s
}

// Fingerprint folds the shape categories with 32 bit FNV-1a
// (offset basis 2166136261, prime 16777619).
func (s Shape) Fingerprint() uint32 {
	h := fnv.New32a()
	h.Write([]byte{
		byte(s.Models),
		byte(s.Colors),
		byte(s.TextureIndices),
		bit(s.UVs),
		bit(s.Normals),
		bit(s.Tangents),
		bit(s.Bitangents),
		bit(s.MeshColors),
		bit(s.UseMeshColor),
		bit(s.Lighting),
		bit(s.Shadow),
	})
	return h.Sum32()
}

// Fingerprint is ShapeOf(dc).Fingerprint().
func Fingerprint(dc *DrawCall) uint32 {
	return ShapeOf(dc).Fingerprint()
}

func bit(b bool) byte {
	if b {
		return 1
	}
	return 0
}
