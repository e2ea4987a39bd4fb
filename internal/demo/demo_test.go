package demo

import (
	"os"
	"strings"
	"testing"

	"Beneath/internal/loader"
	"Beneath/internal/platform"
	"Beneath/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

// memoryAPI keeps files in a map and records draws.
type memoryAPI struct {
	files  map[string][]byte
	prints []string
	draws  []*renderer.DrawCall
	fail   bool
}

func newMemoryAPI() *memoryAPI {
	return &memoryAPI{files: map[string][]byte{}}
}

func (m *memoryAPI) Print(file string, line int, msg string) { m.prints = append(m.prints, msg) }

func (m *memoryAPI) FileSize(name string) (int64, error) {
	data, ok := m.files[name]
	if !ok {
		return 0, os.ErrNotExist
	}
	return int64(len(data)), nil
}

func (m *memoryAPI) FileRead(name string, buf []byte) (int, error) {
	data, ok := m.files[name]
	if !ok {
		return 0, os.ErrNotExist
	}
	if len(buf) < len(data) {
		return 0, platform.ErrBufferTooSmall
	}
	return copy(buf, data), nil
}

func (m *memoryAPI) FileWrite(name string, data []byte) error {
	m.files[name] = append([]byte(nil), data...)
	return nil
}

func (m *memoryAPI) Sleep(milliseconds uint32) {}
func (m *memoryAPI) CycleCount() uint64        { return 0 }
func (m *memoryAPI) Nanoseconds() float64      { return 0 }

func (m *memoryAPI) GraphicsDraw(state *platform.State, dc *renderer.DrawCall, pv, pInv, vInv mgl32.Mat4, camera mgl32.Vec3) bool {
	m.draws = append(m.draws, dc)
	return !m.fail
}

func (m *memoryAPI) printed(substr string) bool {
	for _, p := range m.prints {
		if strings.Contains(p, substr) {
			return true
		}
	}
	return false
}

func press(in *platform.Input, k platform.Key) {
	in.BeginFrame()
	in.Process(k, true)
}

func release(in *platform.Input, k platform.Key) {
	in.BeginFrame()
	in.Process(k, false)
}

func TestFirstFrame(t *testing.T) {
	api := newMemoryAPI()
	mem := platform.NewMemory(platform.DefaultState())
	var in platform.Input
	update := New(Options{Seed: 1})

	update(mem, &in, api)

	if !mem.Initialized {
		t.Fatal("First frame should latch Initialized")
	}
	if !api.printed("Hello from application") {
		t.Error("First frame should greet")
	}
	if mem.State.WindowTitle != "Beneath" || !mem.State.Changed(platform.ChangedWindow) {
		t.Error("First frame should set the title")
	}
	if len(api.draws) != 1 || api.draws[0].ID != meshVoxel {
		t.Fatalf("Expected one voxel draw, got %d", len(api.draws))
	}
	if n := api.draws[0].InstanceCount(); n == 0 || n > voxelGrid*voxelGrid {
		t.Errorf("Expected up to %d visible voxels, got %d", voxelGrid*voxelGrid, n)
	}
	if _, ok := api.files[terrainCache]; !ok {
		t.Error("Terrain mesh should be cached")
	}
}

func TestTerrainCacheIsReused(t *testing.T) {
	api := newMemoryAPI()
	noise := loader.NewNoise(1, 0.08, 4)

	first, err := terrainScene(api, noise, renderer.Sun())
	if err != nil {
		t.Fatalf("terrainScene failed: %v", err)
	}
	second, err := terrainScene(api, noise, renderer.Sun())
	if err != nil {
		t.Fatalf("terrainScene failed: %v", err)
	}
	if len(second.Mesh.Vertices) != len(first.Mesh.Vertices) || len(second.Mesh.Indices) != len(first.Mesh.Indices) {
		t.Error("Cached terrain should match the generated one")
	}
	if second.Mesh.ID != meshTerrain || !second.Mesh.Changed {
		t.Error("Cached terrain should keep its slot and be marked for upload")
	}
}

func TestReturnEndsApplication(t *testing.T) {
	api := newMemoryAPI()
	mem := platform.NewMemory(platform.DefaultState())
	var in platform.Input
	update := New(Options{})

	update(mem, &in, api)
	press(&in, platform.KeyReturn)
	update(mem, &in, api)

	if mem.State.Running {
		t.Error("Return should stop the application")
	}
}

func TestF6TogglesBorderless(t *testing.T) {
	api := newMemoryAPI()
	mem := platform.NewMemory(platform.DefaultState())
	var in platform.Input
	update := New(Options{})

	update(mem, &in, api)
	mem.State.ClearChanged(platform.ChangedWindow)

	press(&in, platform.KeyF6)
	update(mem, &in, api)
	if mem.State.WindowMode != platform.WindowModeBorderless || !mem.State.Changed(platform.ChangedWindow) {
		t.Fatal("F6 should switch to borderless")
	}

	mem.State.ClearChanged(platform.ChangedWindow)
	release(&in, platform.KeyF6)
	update(mem, &in, api)
	if mem.State.Changed(platform.ChangedWindow) {
		t.Error("Releasing F6 should not change the window")
	}

	press(&in, platform.KeyF6)
	update(mem, &in, api)
	if mem.State.WindowMode != platform.WindowModeWindowed {
		t.Error("Second F6 press should go back to windowed")
	}
}

func TestToggles(t *testing.T) {
	api := newMemoryAPI()
	mem := platform.NewMemory(platform.DefaultState())
	var in platform.Input
	update := New(Options{})

	update(mem, &in, api)

	press(&in, platform.KeyP)
	update(mem, &in, api)
	if dc := api.draws[len(api.draws)-1]; !dc.Pixelize || !dc.Changed {
		t.Error("P should enable pixelize and mark the draw call changed")
	}

	press(&in, platform.KeyL)
	update(mem, &in, api)
	press(&in, platform.KeyV)
	update(mem, &in, api)
	dc := api.draws[len(api.draws)-1]
	if dc.Lighting != nil || dc.Shadow {
		t.Error("L should turn lighting and shadows off")
	}
	if dc.Volumetric {
		t.Error("Volumetric must stay off without a light")
	}
	if err := dc.Validate(renderer.DefaultMaxMeshes); err != nil {
		t.Errorf("Toggled draw call should stay valid: %v", err)
	}
}

func TestTabCyclesScenes(t *testing.T) {
	api := newMemoryAPI()
	mem := platform.NewMemory(platform.DefaultState())
	var in platform.Input
	update := New(Options{})

	update(mem, &in, api)
	seen := map[int]bool{api.draws[0].ID: true}
	for i := 0; i < 3; i++ {
		press(&in, platform.KeyTab)
		update(mem, &in, api)
		release(&in, platform.KeyTab)
		update(mem, &in, api)
		seen[api.draws[len(api.draws)-1].ID] = true
	}
	for _, id := range []int{meshVoxel, meshTerrain, meshSpinner, meshSphere} {
		if !seen[id] {
			t.Errorf("Scene %d never drawn", id)
		}
	}
}

func TestSpinnersAnimate(t *testing.T) {
	dc := spinnerScene(renderer.Sun())
	before := dc.Models[0]
	dc.Changed = false

	animateSpinners(dc, 1)

	if dc.Models[0] == before {
		t.Error("Spinner models should change over time")
	}
	if !dc.Changed {
		t.Error("Animated draw call should be marked changed")
	}
	if err := dc.Validate(renderer.DefaultMaxMeshes); err != nil {
		t.Errorf("Spinner draw call invalid: %v", err)
	}
}

func TestVoxelsAreCulled(t *testing.T) {
	api := newMemoryAPI()
	v := voxelScene(loader.NewNoise(1, 0.08, 4), renderer.Sun())
	camera := renderer.NewDefaultCamera(800, 600)

	camera.Position = mgl32.Vec3{0, 80, 0.01}
	camera.LookAt(mgl32.Vec3{})
	v.cull(api, camera)
	if n := v.dc.InstanceCount(); n != voxelGrid*voxelGrid {
		t.Errorf("Whole field in view, expected %d voxels, got %d", voxelGrid*voxelGrid, n)
	}
	if len(v.dc.Colors) != v.dc.InstanceCount() {
		t.Error("Every voxel should keep its color")
	}

	camera.Position = mgl32.Vec3{0, 4, 30}
	camera.LookAt(mgl32.Vec3{0, 4, 60})
	v.cull(api, camera)
	if n := v.dc.InstanceCount(); n != 0 {
		t.Errorf("Camera facing away, expected no voxels, got %d", n)
	}

	camera.LookAt(mgl32.Vec3{})
	v.cull(api, camera)
	visible := v.dc.InstanceCount()
	if visible == 0 || visible == voxelGrid*voxelGrid {
		t.Errorf("Close view should keep part of the field, got %d", visible)
	}
	if err := v.dc.Validate(renderer.DefaultMaxMeshes); err != nil {
		t.Errorf("Culled draw call invalid: %v", err)
	}

	v.dc.Changed = false
	v.cull(api, camera)
	if v.dc.Changed || v.dc.InstanceCount() != visible {
		t.Error("Unchanged view should not rebuild the instances")
	}
}

func TestVoxelOverflowIsReported(t *testing.T) {
	api := newMemoryAPI()
	v := voxelScene(loader.NewNoise(1, 0.08, 4), renderer.Sun())
	v.dc.DataCapacity = 4
	camera := renderer.NewDefaultCamera(800, 600)
	camera.Position = mgl32.Vec3{0, 80, 0.01}
	camera.LookAt(mgl32.Vec3{})

	v.cull(api, camera)

	if v.dc.InstanceCount() != 4 {
		t.Errorf("Expected the draw call to stop at capacity, got %d", v.dc.InstanceCount())
	}
	if !api.printed("dropped") {
		t.Error("Overflow should be reported")
	}
}

func TestSpheresOrbit(t *testing.T) {
	dc := sphereScene(renderer.Sun())
	before := dc.Models[0]
	dc.Changed = false

	orbitSpheres(dc, 2)

	if dc.Models[0] == before || !dc.Changed {
		t.Error("Spheres should move and mark the draw call changed")
	}
	if renderer.ShapeOf(dc).Colors != renderer.CardinalityLayout {
		t.Error("Each sphere should carry its own color")
	}
	if err := dc.Validate(renderer.DefaultMaxMeshes); err != nil {
		t.Errorf("Sphere draw call invalid: %v", err)
	}
}

func TestDrawFailureIsReportedOnce(t *testing.T) {
	api := newMemoryAPI()
	api.fail = true
	mem := platform.NewMemory(platform.DefaultState())
	var in platform.Input
	update := New(Options{})

	update(mem, &in, api)
	update(mem, &in, api)

	count := 0
	for _, p := range api.prints {
		if strings.Contains(p, "could not be drawn") {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Expected a single failure report, got %d", count)
	}
}
