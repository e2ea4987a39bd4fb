package loader

import (
	"Beneath/internal/logger"
	"Beneath/internal/renderer"
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

var ErrNoGeometry = errors.New("loader: no faces found")

// LoadOBJ reads a Wavefront OBJ file into a mesh with the given id.
func LoadOBJ(path string, id int, recalculateNormals bool) (*renderer.Mesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	mesh, err := ParseOBJ(file, id, recalculateNormals)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logger.Log.Info("OBJ loaded",
		zap.String("path", path),
		zap.Int("mesh", id),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", len(mesh.Indices)/3))
	return mesh, nil
}

// ParseOBJ reads v, vt, vn and f records. Materials and groups are ignored.
// Faces referencing separate position/uv/normal indices are unified into one
// vertex per distinct triplet.
func ParseOBJ(r io.Reader, id int, recalculateNormals bool) (*renderer.Mesh, error) {
	var positions, texCoords, normals []float32
	var faces []FaceVertex

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		switch parts[0] {
		case "v":
			v, err := parseVertex(parts[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			positions = append(positions, v...)
		case "vn":
			n, err := parseVertex(parts[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			normals = append(normals, n...)
		case "vt":
			t, err := parseVertex(parts[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			texCoords = append(texCoords, t...)
		case "f":
			face, err := parseFace(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			faces = append(faces, face...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(faces) == 0 {
		return nil, ErrNoGeometry
	}

	mesh := unify(id, positions, texCoords, normals, faces)
	if recalculateNormals || !mesh.HasNormals() {
		mesh.Normals = RecalculateNormals(mesh.Vertices, mesh.Indices)
	}
	mesh.Changed = true
	return mesh, nil
}

type vertexKey struct {
	v, vt, vn int32
}

func unify(id int, positions, texCoords, normals []float32, faces []FaceVertex) *renderer.Mesh {
	mesh := &renderer.Mesh{ID: id}
	seen := make(map[vertexKey]uint32)

	hasUV, hasNormal := false, false
	for _, f := range faces {
		hasUV = hasUV || f.TexCoordIdx >= 0
		hasNormal = hasNormal || f.NormalIdx >= 0
	}

	for _, f := range faces {
		key := vertexKey{f.VertexIdx, f.TexCoordIdx, f.NormalIdx}
		if idx, ok := seen[key]; ok {
			mesh.Indices = append(mesh.Indices, idx)
			continue
		}
		idx := uint32(len(mesh.Vertices) / 3)
		seen[key] = idx
		mesh.Indices = append(mesh.Indices, idx)

		mesh.Vertices = append(mesh.Vertices, fetch(positions, f.VertexIdx, 3, 0, 0, 0)...)
		if hasUV {
			mesh.UVs = append(mesh.UVs, fetch(texCoords, f.TexCoordIdx, 2, 0, 0)...)
		}
		if hasNormal {
			mesh.Normals = append(mesh.Normals, fetch(normals, f.NormalIdx, 3, 0, 1, 0)...)
		}
	}
	return mesh
}

// fetch returns element i of a flat stream, or fallback when out of range.
func fetch(data []float32, i int32, width int, fallback ...float32) []float32 {
	start := int(i) * width
	if i < 0 || start+width > len(data) {
		return fallback
	}
	return data[start : start+width]
}

func parseVertex(parts []string, width int) ([]float32, error) {
	if len(parts) < width {
		return nil, fmt.Errorf("expected %d values, got %d", width, len(parts))
	}
	vertex := make([]float32, 0, width)
	for _, part := range parts[:width] {
		val, err := strconv.ParseFloat(part, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid vertex value %v: %v", part, err)
		}
		vertex = append(vertex, float32(val))
	}
	return vertex, nil
}

// FaceVertex is one corner of an OBJ face, zero based, -1 when absent.
type FaceVertex struct {
	VertexIdx   int32
	TexCoordIdx int32
	NormalIdx   int32
}

func parseIndex(s string) (int32, error) {
	if s == "" {
		return -1, nil
	}
	idx, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return -1, fmt.Errorf("invalid index %v: %v", s, err)
	}
	return int32(idx - 1), nil // .obj indices start at 1
}

// parseFace returns the corners of a face as triangles, fanning polygons
// from the first corner.
func parseFace(parts []string) ([]FaceVertex, error) {
	if len(parts) < 3 {
		return nil, fmt.Errorf("face with %d corners", len(parts))
	}

	face := make([]FaceVertex, 0, len(parts))
	for _, part := range parts {
		vals := strings.Split(part, "/")
		fv := FaceVertex{TexCoordIdx: -1, NormalIdx: -1}

		var err error
		if fv.VertexIdx, err = parseIndex(vals[0]); err != nil {
			return nil, err
		}
		if fv.VertexIdx < 0 {
			return nil, fmt.Errorf("face corner %q has no vertex index", part)
		}
		if len(vals) > 1 {
			if fv.TexCoordIdx, err = parseIndex(vals[1]); err != nil {
				return nil, err
			}
		}
		if len(vals) > 2 {
			if fv.NormalIdx, err = parseIndex(vals[2]); err != nil {
				return nil, err
			}
		}
		face = append(face, fv)
	}

	if len(face) == 3 {
		return face, nil
	}
	if len(face) > 4 {
		logger.Log.Debug("Face with more than 4 vertices detected, using fan triangulation", zap.Int("vertexCount", len(face)))
	}
	triangulated := make([]FaceVertex, 0, (len(face)-2)*3)
	for i := 1; i < len(face)-1; i++ {
		triangulated = append(triangulated, face[0], face[i], face[i+1])
	}
	return triangulated, nil
}

// RecalculateNormals averages face normals into smooth per vertex normals.
func RecalculateNormals(vertices []float32, indices []uint32) []float32 {
	if len(vertices) == 0 || len(indices) == 0 {
		return nil
	}

	normals := make([]float32, len(vertices))
	n := uint32(len(vertices) / 3)

	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		if i0 >= n || i1 >= n || i2 >= n {
			logger.Log.Warn("Index out of bounds while recalculating normals",
				zap.Uint32("i0", i0), zap.Uint32("i1", i1), zap.Uint32("i2", i2), zap.Uint32("vertices", n))
			continue
		}

		v0 := vec3At(vertices, i0)
		v1 := vec3At(vertices, i1)
		v2 := vec3At(vertices, i2)
		normal := v1.Sub(v0).Cross(v2.Sub(v0))

		for _, idx := range [3]uint32{i0, i1, i2} {
			normals[idx*3] += normal[0]
			normals[idx*3+1] += normal[1]
			normals[idx*3+2] += normal[2]
		}
	}

	for i := 0; i+2 < len(normals); i += 3 {
		normal := mgl32.Vec3{normals[i], normals[i+1], normals[i+2]}
		if normal.Len() == 0 {
			normal = mgl32.Vec3{0, 1, 0}
		}
		normal = normal.Normalize()
		normals[i], normals[i+1], normals[i+2] = normal[0], normal[1], normal[2]
	}
	return normals
}

func vec3At(data []float32, i uint32) mgl32.Vec3 {
	return mgl32.Vec3{data[i*3], data[i*3+1], data[i*3+2]}
}
