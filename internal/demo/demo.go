// Package demo is the sample application driven by the engine. It only talks
// to the platform through platform.API.
package demo

import (
	"Beneath/internal/loader"
	"Beneath/internal/platform"
	"Beneath/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

type Options struct {
	Seed    int64
	OBJPath string // Optional model shown as the last scene
}

type app struct {
	camera   *renderer.Camera
	lighting *renderer.Lighting
	voxels   *voxelField
	scenes   []*renderer.DrawCall
	active   int

	borderless bool
	pixelize   bool
	volumetric bool
	unlit      bool
	failed     bool
}

// New returns the update function for the engine loop.
func New(opts Options) platform.UpdateFunc {
	return func(mem *platform.Memory, in *platform.Input, api platform.API) {
		update(opts, mem, in, api)
	}
}

func update(opts Options, mem *platform.Memory, in *platform.Input, api platform.API) {
	state := &mem.State
	a := platform.AppState[app](mem)

	if !mem.Initialized {
		mem.Initialized = true
		platform.Printf(api, "Hello from application :)")
		state.SetTitle("Beneath")
		a.setup(opts, api, state)
	}

	api.Sleep(1)

	if in.Down(platform.KeyReturn) {
		platform.Printf(api, "Application requested ending")
		state.Running = false
		return
	}

	if in.Active(platform.KeyF6) != a.borderless {
		a.borderless = !a.borderless
		if a.borderless {
			state.SetWindowMode(platform.WindowModeBorderless)
		} else {
			state.SetWindowMode(platform.WindowModeWindowed)
		}
	}

	a.handleToggles(in, api)
	a.moveCamera(in, state)

	if len(a.scenes) == 0 {
		return
	}
	dc := a.scenes[a.active]
	switch dc.ID {
	case meshVoxel:
		a.voxels.cull(api, a.camera)
		if dc.InstanceCount() == 0 {
			return
		}
	case meshSpinner:
		animateSpinners(dc, state.Time)
	case meshSphere:
		orbitSpheres(dc, state.Time)
	}

	f := a.camera.Frame(state.Time, state.DeltaTime, int32(state.WindowWidth), int32(state.WindowHeight))
	ok := api.GraphicsDraw(state, dc, f.ProjectionView, f.ProjectionInverse, f.ViewInverse, f.CameraPosition)
	if !ok && !a.failed {
		platform.Printf(api, "Scene %d could not be drawn", a.active)
	}
	a.failed = !ok
}

func (a *app) setup(opts Options, api platform.API, state *platform.State) {
	a.camera = renderer.NewDefaultCamera(int32(state.WindowWidth), int32(state.WindowHeight))
	a.camera.Position = mgl32.Vec3{0, 12, 28}
	a.camera.LookAt(mgl32.Vec3{})
	a.lighting = renderer.Sun()

	noise := loader.NewNoise(opts.Seed, 0.08, 4)
	a.voxels = voxelScene(noise, a.lighting)
	a.scenes = append(a.scenes, a.voxels.dc)

	if terrain, err := terrainScene(api, noise, a.lighting); err != nil {
		platform.Printf(api, "Terrain unavailable: %v", err)
	} else {
		a.scenes = append(a.scenes, terrain)
	}

	a.scenes = append(a.scenes, spinnerScene(a.lighting), sphereScene(a.lighting))

	if opts.OBJPath != "" {
		if model, err := modelScene(opts.OBJPath, a.lighting); err != nil {
			platform.Printf(api, "Could not load %s: %v", opts.OBJPath, err)
		} else {
			a.scenes = append(a.scenes, model)
		}
	}
}

// handleToggles switches scenes with Tab and flips the pixelize, volumetric
// and lighting options on every scene.
func (a *app) handleToggles(in *platform.Input, api platform.API) {
	if in.Pressed(platform.KeyTab) && len(a.scenes) > 0 {
		a.active = (a.active + 1) % len(a.scenes)
		a.scenes[a.active].Changed = true
		platform.Printf(api, "Scene %d", a.active)
	}

	changed := false
	if in.Pressed(platform.KeyP) {
		a.pixelize = !a.pixelize
		changed = true
	}
	if in.Pressed(platform.KeyV) {
		a.volumetric = !a.volumetric
		changed = true
	}
	if in.Pressed(platform.KeyL) {
		a.unlit = !a.unlit
		changed = true
	}
	if !changed {
		return
	}

	for _, dc := range a.scenes {
		dc.Pixelize = a.pixelize
		dc.Volumetric = a.volumetric
		if a.unlit {
			dc.Lighting = nil
			dc.Shadow = false
		} else {
			dc.Lighting = a.lighting
			dc.Shadow = dc.ID != meshSpinner
		}
		// Volumetric light needs a light to march along.
		if dc.Lighting == nil {
			dc.Volumetric = false
		}
		dc.Changed = true
	}
	platform.Printf(api, "pixelize=%t volumetric=%t lighting=%t", a.pixelize, a.volumetric, !a.unlit)
}

func (a *app) moveCamera(in *platform.Input, state *platform.State) {
	a.camera.Resize(int32(state.WindowWidth), int32(state.WindowHeight))

	a.camera.ProcessKeyboard(renderer.Movement{
		Forward:  in.Down(platform.KeyW),
		Backward: in.Down(platform.KeyS),
		Left:     in.Down(platform.KeyA),
		Right:    in.Down(platform.KeyD),
		Up:       in.Down(platform.KeyE),
		Down:     in.Down(platform.KeyQ),
		Boost:    in.Down(platform.KeyShift),
	}, float32(state.DeltaTime))

	if in.Down(platform.KeyMouseRight) {
		// Screen y grows downwards.
		a.camera.ProcessMouseMovement(in.MouseOffsetX, -in.MouseOffsetY, true)
	}
	if in.MouseOffsetScroll != 0 {
		a.camera.ProcessScroll(in.MouseOffsetScroll)
	}
}
