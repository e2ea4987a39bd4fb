package loader

import (
	"Beneath/internal/renderer"
	"errors"
	"math"

	perlin "github.com/aquilax/go-perlin"
)

// Cube returns a cube with per face normals and uvs, 24 vertices and 36
// indices.
func Cube(id int, size float32) *renderer.Mesh {
	h := size * 0.5

	// position xyz, uv, normal xyz
	interleaved := []float32{
		-h, -h, h, 0, 0, 0, 0, 1,
		h, -h, h, 1, 0, 0, 0, 1,
		h, h, h, 1, 1, 0, 0, 1,
		-h, h, h, 0, 1, 0, 0, 1,

		-h, -h, -h, 1, 0, 0, 0, -1,
		-h, h, -h, 1, 1, 0, 0, -1,
		h, h, -h, 0, 1, 0, 0, -1,
		h, -h, -h, 0, 0, 0, 0, -1,

		-h, -h, -h, 0, 0, -1, 0, 0,
		-h, -h, h, 1, 0, -1, 0, 0,
		-h, h, h, 1, 1, -1, 0, 0,
		-h, h, -h, 0, 1, -1, 0, 0,

		h, -h, -h, 1, 0, 1, 0, 0,
		h, h, -h, 1, 1, 1, 0, 0,
		h, h, h, 0, 1, 1, 0, 0,
		h, -h, h, 0, 0, 1, 0, 0,

		-h, h, -h, 0, 1, 0, 1, 0,
		-h, h, h, 0, 0, 0, 1, 0,
		h, h, h, 1, 0, 0, 1, 0,
		h, h, -h, 1, 1, 0, 1, 0,

		-h, -h, -h, 1, 1, 0, -1, 0,
		h, -h, -h, 0, 1, 0, -1, 0,
		h, -h, h, 0, 0, 0, -1, 0,
		-h, -h, h, 1, 0, 0, -1, 0,
	}

	mesh := &renderer.Mesh{ID: id, Changed: true}
	for i := 0; i < len(interleaved); i += 8 {
		mesh.Vertices = append(mesh.Vertices, interleaved[i:i+3]...)
		mesh.UVs = append(mesh.UVs, interleaved[i+3:i+5]...)
		mesh.Normals = append(mesh.Normals, interleaved[i+5:i+8]...)
	}
	for face := uint32(0); face < 6; face++ {
		b := face * 4
		mesh.Indices = append(mesh.Indices, b, b+1, b+2, b+2, b+3, b)
	}
	return mesh
}

// ColorCube returns a unit cube of 8 shared corners, each carrying its own
// rgb color. It has no normals.
func ColorCube(id int) *renderer.Mesh {
	return &renderer.Mesh{
		ID:      id,
		Changed: true,
		Vertices: []float32{
			-0.5, -0.5, 0.5,
			0.5, -0.5, 0.5,
			0.5, 0.5, 0.5,
			-0.5, 0.5, 0.5,
			-0.5, -0.5, -0.5,
			0.5, -0.5, -0.5,
			0.5, 0.5, -0.5,
			-0.5, 0.5, -0.5,
		},
		Colors: []float32{
			1, 0, 0,
			0, 1, 0,
			0, 0, 1,
			1, 1, 0,
			1, 0, 1,
			0, 1, 1,
			1, 1, 1,
			0.2, 0.2, 0.2,
		},
		Indices: []uint32{
			0, 1, 2, 2, 3, 0,
			1, 5, 6, 6, 2, 1,
			5, 4, 7, 7, 6, 5,
			4, 0, 3, 3, 7, 4,
			3, 2, 6, 6, 7, 3,
			4, 5, 1, 1, 0, 4,
		},
	}
}

// Sphere returns a uv sphere with smooth normals.
func Sphere(id int, radius float32, segments int) *renderer.Mesh {
	if segments < 3 {
		segments = 3
	}
	mesh := &renderer.Mesh{ID: id, Changed: true}

	for i := 0; i <= segments; i++ {
		lat := float64(i) * math.Pi / float64(segments)
		for j := 0; j <= segments; j++ {
			lon := float64(j) * 2 * math.Pi / float64(segments)

			nx := float32(math.Sin(lat) * math.Cos(lon))
			ny := float32(math.Cos(lat))
			nz := float32(math.Sin(lat) * math.Sin(lon))

			mesh.Vertices = append(mesh.Vertices, nx*radius, ny*radius, nz*radius)
			mesh.Normals = append(mesh.Normals, nx, ny, nz)
			mesh.UVs = append(mesh.UVs, float32(j)/float32(segments), float32(i)/float32(segments))
		}
	}

	for i := 0; i < segments; i++ {
		for j := 0; j < segments; j++ {
			first := uint32(i*(segments+1) + j)
			second := first + uint32(segments+1)
			mesh.Indices = append(mesh.Indices,
				first, second, first+1,
				second, second+1, first+1,
			)
		}
	}
	return mesh
}

// Terrain returns a grid whose heights come from height(x, z). A nil height
// makes a flat plane.
func Terrain(id int, gridSize int, spacing float32, height func(x, z float32) float32) (*renderer.Mesh, error) {
	if gridSize < 2 {
		return nil, errors.New("gridSize must be at least 2")
	}

	mesh := &renderer.Mesh{ID: id, Changed: true}
	offset := float32(gridSize-1) * spacing * 0.5

	for x := 0; x < gridSize; x++ {
		for z := 0; z < gridSize; z++ {
			px := float32(x)*spacing - offset
			pz := float32(z)*spacing - offset
			py := float32(0)
			if height != nil {
				py = height(px, pz)
			}
			mesh.Vertices = append(mesh.Vertices, px, py, pz)
			mesh.UVs = append(mesh.UVs, float32(x)/float32(gridSize-1), float32(z)/float32(gridSize-1))
		}
	}

	for x := 0; x < gridSize-1; x++ {
		for z := 0; z < gridSize-1; z++ {
			topLeft := uint32(x*gridSize + z)
			topRight := topLeft + 1
			bottomLeft := uint32((x+1)*gridSize + z)
			bottomRight := bottomLeft + 1

			mesh.Indices = append(mesh.Indices, topLeft, topRight, bottomRight, topLeft, bottomRight, bottomLeft)
		}
	}

	mesh.Normals = RecalculateNormals(mesh.Vertices, mesh.Indices)
	return mesh, nil
}

// Noise is a seeded 2D Perlin height field.
type Noise struct {
	p         *perlin.Perlin
	Scale     float64
	Amplitude float32
}

// NewNoise returns a height field with the usual alpha 2, beta 2 and three
// octaves.
func NewNoise(seed int64, scale float64, amplitude float32) *Noise {
	return &Noise{
		p:         perlin.NewPerlin(2, 2, 3, seed),
		Scale:     scale,
		Amplitude: amplitude,
	}
}

// Height samples the field at x, z.
func (n *Noise) Height(x, z float32) float32 {
	return float32(n.p.Noise2D(float64(x)*n.Scale, float64(z)*n.Scale)) * n.Amplitude
}
