package engine

import (
	"fmt"
	"runtime"
	"time"

	"Beneath/internal/config"
	"Beneath/internal/logger"
	"Beneath/internal/platform"
	"Beneath/internal/renderer"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

// Engine owns the window, the GL context and the frame loop. Everything the
// application needs goes through platform.API.
type Engine struct {
	Config     config.Config
	ConfigPath string        // Watched for changes when set
	Base       config.Config // Reloads overlay the file on this, Default when zero
	Update     platform.UpdateFunc

	window  *glfw.Window
	memory  *platform.Memory
	input   platform.Input
	api     *platform.NativeAPI
	render  *renderer.Context
	watcher *config.Watcher

	// Windowed placement restored when leaving fullscreen or borderless
	windowedX, windowedY int
	swapInterval         int
}

func New(cfg config.Config, update platform.UpdateFunc) *Engine {
	return &Engine{
		Config:       cfg,
		Update:       update,
		swapInterval: -1,
	}
}

// Run opens the window and loops until the application clears
// State.Running or the window is closed. It must be called from the main
// goroutine.
func (e *Engine) Run() error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := e.Config.Validate(); err != nil {
		return err
	}
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("could not initialize glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	w := e.Config.Window
	window, err := glfw.CreateWindow(int(w.Width), int(w.Height), w.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("could not create glfw window: %w", err)
	}
	e.window = window
	defer window.Destroy()

	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return fmt.Errorf("could not initialize OpenGL: %w", err)
	}
	logger.Log.Info("OpenGL ready", zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)

	e.render = renderer.NewContext(renderer.NewOpenGLDevice(logger.Log), e.Config.Render, logger.Log)
	defer func() { e.render.Release() }()
	e.api = platform.NewNativeAPI(e.render, logger.Log)

	state := platform.DefaultState()
	e.Config.Apply(&state)
	state.MarkChanged(platform.ChangedWindow | platform.ChangedFPSTarget)
	e.memory = platform.NewMemory(state)
	e.windowedX, e.windowedY = window.GetPos()

	e.installCallbacks()

	if e.ConfigPath != "" {
		base := e.Base
		if base == (config.Config{}) {
			base = config.Default()
		}
		if e.watcher, err = config.Watch(e.ConfigPath, base, logger.Log); err != nil {
			logger.Log.Warn("Config hot reload disabled", zap.String("path", e.ConfigPath), zap.Error(err))
		} else {
			defer e.watcher.Close()
		}
	}

	e.loop()
	logger.Log.Info("Engine stopped")
	return nil
}

func (e *Engine) loop() {
	state := &e.memory.State
	last := glfw.GetTime()

	for state.Running {
		frameStart := time.Now()

		now := glfw.GetTime()
		state.Advance(now - last)
		last = now

		e.pollConfig()

		if state.ChangedFlags != platform.ChangedNothing {
			e.applyState(state)
		}

		e.input.BeginFrame()
		glfw.PollEvents()
		if e.window.ShouldClose() {
			state.Running = false
		}

		if state.Wireframe {
			gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		} else {
			gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
		}
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		if e.Update != nil {
			e.Update(e.memory, &e.input, e.api)
		}

		e.window.SwapBuffers()

		if state.FPSTarget > 0 {
			target := time.Second / time.Duration(state.FPSTarget)
			if elapsed := time.Since(frameStart); elapsed < target {
				time.Sleep(target - elapsed)
			}
		}
	}
}

// pollConfig applies a reloaded config file. A changed render section
// rebuilds the renderer since its tables are sized at creation.
func (e *Engine) pollConfig() {
	if e.watcher == nil {
		return
	}
	select {
	case cfg := <-e.watcher.Changes():
		cfg.Apply(&e.memory.State)
		if cfg.Render != e.Config.Render {
			e.render.Release()
			e.render = renderer.NewContext(renderer.NewOpenGLDevice(logger.Log), cfg.Render, logger.Log)
			e.api.SetRender(e.render)
			logger.Log.Info("Renderer rebuilt from config")
		}
		e.Config = cfg
	default:
	}
}

func (e *Engine) applyState(state *platform.State) {
	if state.Changed(platform.ChangedWindow) {
		e.applyWindowMode(state)

		if state.WindowMode == platform.WindowModeWindowed {
			e.window.SetSize(int(state.WindowWidth), int(state.WindowHeight))
		}
		width, height := e.window.GetFramebufferSize()
		state.WindowWidth, state.WindowHeight = uint32(width), uint32(height)
		gl.Viewport(0, 0, int32(width), int32(height))

		// glfw has no confine mode, capturing is the closest match.
		if state.WindowClipCursor && e.window.GetAttrib(glfw.Focused) == glfw.True {
			e.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		} else {
			e.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
		}

		e.window.SetTitle(state.WindowTitle)
		c := state.ClearColor
		gl.ClearColor(c[0], c[1], c[2], c[3])
		styleWindow(e.window, c)

		state.ClearChanged(platform.ChangedWindow)
		logger.Log.Debug("Window state applied",
			zap.Stringer("mode", state.WindowMode),
			zap.Uint32("width", state.WindowWidth),
			zap.Uint32("height", state.WindowHeight))
	}

	if state.Changed(platform.ChangedFPSTarget) {
		interval := 0
		if state.FPSTarget < 0 {
			interval = 1
		}
		if interval != e.swapInterval {
			glfw.SwapInterval(interval)
			e.swapInterval = interval
		}
		state.ClearChanged(platform.ChangedFPSTarget)
	}
}

func (e *Engine) applyWindowMode(state *platform.State) {
	monitor := glfw.GetPrimaryMonitor()
	current := e.window.GetMonitor()
	decorated := e.window.GetAttrib(glfw.Decorated) == glfw.True

	if state.WindowMode != platform.WindowModeWindowed && current == nil && decorated {
		e.windowedX, e.windowedY = e.window.GetPos()
	}

	switch state.WindowMode {
	case platform.WindowModeFullscreen:
		if monitor == nil {
			return
		}
		mode := monitor.GetVideoMode()
		e.window.SetMonitor(monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)

	case platform.WindowModeBorderless:
		if monitor == nil {
			return
		}
		mode := monitor.GetVideoMode()
		x, y := monitor.GetPos()
		e.window.SetAttrib(glfw.Decorated, glfw.False)
		e.window.SetMonitor(nil, x, y, mode.Width, mode.Height, 0)

	default:
		if current != nil || !decorated {
			e.window.SetAttrib(glfw.Decorated, glfw.True)
			e.window.SetMonitor(nil, e.windowedX, e.windowedY, int(state.WindowWidth), int(state.WindowHeight), 0)
		}
	}
}

func (e *Engine) installCallbacks() {
	e.window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Repeat {
			return
		}
		e.input.Process(translateKey(key), action == glfw.Press)
	})
	e.window.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		e.input.Process(translateMouseButton(button), action == glfw.Press)
	})
	e.window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		e.input.MoveMouse(int32(x), int32(y))
	})
	e.window.SetScrollCallback(func(_ *glfw.Window, _, y float64) {
		e.input.Scroll(float32(y))
	})
	e.window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		e.memory.State.WindowWidth = uint32(width)
		e.memory.State.WindowHeight = uint32(height)
		gl.Viewport(0, 0, int32(width), int32(height))
	})
	e.window.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		if e.memory.State.WindowClipCursor {
			e.memory.State.MarkChanged(platform.ChangedWindow)
		}
	})
}
