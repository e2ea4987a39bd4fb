package demo

import (
	"errors"
	"math"

	"Beneath/internal/loader"
	"Beneath/internal/platform"
	"Beneath/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

// Mesh slots
const (
	meshVoxel = iota
	meshTerrain
	meshSpinner
	meshSphere
	meshModel
)

const (
	voxelGrid     = 32
	terrainGrid   = 64
	terrainCache  = "terrain.mesh"
	spinnerCount  = 3 // per axis
	spinnerRadius = 3
	sphereCount   = 12
	sphereOrbit   = 8
	// Bounding radius of a unit cube.
	voxelRadius = 0.87
)

type voxel struct {
	position mgl32.Vec3
	color    mgl32.Vec3
}

// voxelField stacks cube instances on a noise height field, colored by
// height. Only the voxels inside the view frustum are kept in the draw call.
type voxelField struct {
	dc     *renderer.DrawCall
	voxels []voxel
	culled mgl32.Mat4
}

func voxelScene(noise *loader.Noise, lighting *renderer.Lighting) *voxelField {
	v := &voxelField{
		dc: &renderer.DrawCall{
			ID:           meshVoxel,
			Mesh:         loader.Cube(meshVoxel, 1),
			DataCapacity: voxelGrid * voxelGrid,
			Lighting:     lighting,
			Shadow:       true,
		},
		voxels: make([]voxel, 0, voxelGrid*voxelGrid),
	}

	low := mgl32.Vec3{0.2, 0.45, 0.2}
	high := mgl32.Vec3{0.9, 0.9, 0.85}
	half := float32(voxelGrid) / 2
	for x := 0; x < voxelGrid; x++ {
		for z := 0; z < voxelGrid; z++ {
			wx, wz := float32(x)-half, float32(z)-half
			h := float32(int(noise.Height(wx, wz)))

			t := mgl32.Clamp((h+noise.Amplitude)/(2*noise.Amplitude), 0, 1)
			v.voxels = append(v.voxels, voxel{
				position: mgl32.Vec3{wx, h, wz},
				color:    low.Mul(1 - t).Add(high.Mul(t)),
			})
		}
	}
	return v
}

// cull refills the draw call with the voxels the camera can see. Nothing is
// rebuilt while the view stays the same.
func (v *voxelField) cull(api platform.API, camera *renderer.Camera) {
	pv := camera.GetViewProjection()
	if pv == v.culled {
		return
	}
	v.culled = pv

	frustum := camera.Frustum()
	v.dc.Reset()
	for i := range v.voxels {
		vx := &v.voxels[i]
		if !frustum.ContainsSphere(vx.position, voxelRadius) {
			continue
		}
		err := v.dc.Append(renderer.Instance{
			Model: mgl32.Translate3D(vx.position.X(), vx.position.Y(), vx.position.Z()),
			Color: &vx.color,
		})
		if err != nil {
			platform.Printf(api, "Voxel %d dropped: %v", i, err)
			return
		}
	}
}

// terrainScene is a single smooth terrain mesh. The mesh is cached on disk
// through api so later runs skip generation.
func terrainScene(api platform.API, noise *loader.Noise, lighting *renderer.Lighting) (*renderer.DrawCall, error) {
	mesh, err := loadCachedMesh(api, terrainCache, meshTerrain)
	if err != nil {
		mesh, err = loader.Terrain(meshTerrain, terrainGrid, 0.5, noise.Height)
		if err != nil {
			return nil, err
		}
		if data, err := renderer.EncodeMesh(mesh); err == nil {
			if err := api.FileWrite(terrainCache, data); err != nil {
				platform.Printf(api, "Could not cache terrain: %v", err)
			}
		}
	}

	return &renderer.DrawCall{
		ID:       meshTerrain,
		Mesh:     mesh,
		Models:   []mgl32.Mat4{mgl32.Translate3D(0, -2, 0)},
		Colors:   []mgl32.Vec3{{0.35, 0.5, 0.3}},
		Lighting: lighting,
		Shadow:   true,
		Changed:  true,
	}, nil
}

func loadCachedMesh(api platform.API, name string, id int) (*renderer.Mesh, error) {
	size, err := api.FileSize(name)
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return nil, errors.New("empty mesh cache")
	}
	buf := make([]byte, size)
	n, err := api.FileRead(name, buf)
	if err != nil {
		return nil, err
	}
	return renderer.DecodeMesh(buf[:n], id)
}

// spinnerScene is a cube of vertex colored cubes whose models are
// rewritten every frame by animateSpinners.
func spinnerScene(lighting *renderer.Lighting) *renderer.DrawCall {
	dc := &renderer.DrawCall{
		ID:       meshSpinner,
		Mesh:     loader.ColorCube(meshSpinner),
		Models:   make([]mgl32.Mat4, spinnerCount*spinnerCount*spinnerCount),
		Lighting: lighting,
	}
	animateSpinners(dc, 0)
	return dc
}

func animateSpinners(dc *renderer.DrawCall, time float64) {
	i := 0
	offset := float32(spinnerCount-1) / 2
	for x := 0; x < spinnerCount; x++ {
		for y := 0; y < spinnerCount; y++ {
			for z := 0; z < spinnerCount; z++ {
				angle := float32(time) * (1 + float32(i)*0.1)
				position := mgl32.Vec3{float32(x) - offset, float32(y) - offset, float32(z) - offset}.Mul(spinnerRadius)
				dc.Models[i] = mgl32.Translate3D(position.X(), position.Y()+4, position.Z()).
					Mul4(mgl32.HomogRotate3D(angle, mgl32.Vec3{1, 1, 0}.Normalize())).
					Mul4(mgl32.Scale3D(0.5, 0.5, 0.5))
				i++
			}
		}
	}
	dc.Changed = true
}

// sphereScene is a ring of colored spheres moved by orbitSpheres.
func sphereScene(lighting *renderer.Lighting) *renderer.DrawCall {
	dc := &renderer.DrawCall{
		ID:       meshSphere,
		Mesh:     loader.Sphere(meshSphere, 0.8, 16),
		Models:   make([]mgl32.Mat4, sphereCount),
		Colors:   make([]mgl32.Vec3, sphereCount),
		Lighting: lighting,
		Shadow:   true,
	}
	for i := range dc.Colors {
		a := 2 * math.Pi * float64(i) / sphereCount
		dc.Colors[i] = mgl32.Vec3{
			float32(0.5 + 0.5*math.Cos(a)),
			float32(0.5 + 0.5*math.Cos(a+2*math.Pi/3)),
			float32(0.5 + 0.5*math.Cos(a+4*math.Pi/3)),
		}
	}
	orbitSpheres(dc, 0)
	return dc
}

func orbitSpheres(dc *renderer.DrawCall, time float64) {
	for i := range dc.Models {
		a := 2*math.Pi*float64(i)/sphereCount + time*0.5
		y := 2 + math.Sin(time*2+float64(i))
		dc.Models[i] = mgl32.Translate3D(
			float32(math.Cos(a))*sphereOrbit,
			float32(y),
			float32(math.Sin(a))*sphereOrbit,
		)
	}
	dc.Changed = true
}

// modelScene draws an OBJ file once at the origin.
func modelScene(path string, lighting *renderer.Lighting) (*renderer.DrawCall, error) {
	mesh, err := loader.LoadOBJ(path, meshModel, false)
	if err != nil {
		return nil, err
	}
	return &renderer.DrawCall{
		ID:       meshModel,
		Mesh:     mesh,
		Models:   []mgl32.Mat4{mgl32.Ident4()},
		Colors:   []mgl32.Vec3{{0.8, 0.8, 0.8}},
		Lighting: lighting,
		Shadow:   true,
		Changed:  true,
	}, nil
}
