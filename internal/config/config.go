package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"Beneath/internal/platform"
	"Beneath/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the engine looks for a config when none is given.
const DefaultPath = "beneath.yml"

// Prevent a runaway file from being parsed on every save.
const maxConfigSize = 1 << 20

var ErrInvalidConfig = errors.New("config: invalid")

type WindowConfig struct {
	Title      string     `yaml:"title" toml:"title"`
	Width      uint32     `yaml:"width" toml:"width"`
	Height     uint32     `yaml:"height" toml:"height"`
	Mode       string     `yaml:"mode" toml:"mode"` // windowed, fullscreen or borderless
	ClearColor [4]float32 `yaml:"clear_color" toml:"clear_color"`
	// FPSTarget < 0 is vsync, 0 is unlimited.
	FPSTarget int `yaml:"fps_target" toml:"fps_target"`
}

type Config struct {
	Window WindowConfig          `yaml:"window" toml:"window"`
	Render renderer.RenderConfig `yaml:"render" toml:"render"`
}

func Default() Config {
	state := platform.DefaultState()
	c := state.ClearColor
	return Config{
		Window: WindowConfig{
			Title:      state.WindowTitle,
			Width:      state.WindowWidth,
			Height:     state.WindowHeight,
			Mode:       state.WindowMode.String(),
			ClearColor: [4]float32{c[0], c[1], c[2], c[3]},
			FPSTarget:  state.FPSTarget,
		},
		Render: renderer.DefaultRenderConfig(),
	}
}

// PixelArt is Default with a low resolution pixel target.
func PixelArt() Config {
	c := Default()
	c.Render = renderer.PixelArtRenderConfig()
	return c
}

// Cinematic is Default with a large shadow map, at 1280x720.
func Cinematic() Config {
	c := Default()
	c.Window.Width = 1280
	c.Window.Height = 720
	c.Render = renderer.CinematicRenderConfig()
	return c
}

// Preset returns a named preset. Unknown names return false.
func Preset(name string) (Config, bool) {
	switch name {
	case "", "default":
		return Default(), true
	case "pixelart":
		return PixelArt(), true
	case "cinematic":
		return Cinematic(), true
	}
	return Config{}, false
}

// Load overlays the file at path on base. Files ending in .toml are read as
// TOML, anything else as YAML. A missing file yields base.
func Load(path string, base Config) (Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return base, nil
		}
		return base, err
	}
	if info.Size() > maxConfigSize {
		return base, fmt.Errorf("%w: %s is %d bytes", ErrInvalidConfig, path, info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return base, err
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return ParseTOML(data, base)
	}
	return Parse(data, base)
}

// Parse overlays YAML data on base and validates the result.
func Parse(data []byte, base Config) (Config, error) {
	return parse(data, yaml.Unmarshal, base)
}

func ParseTOML(data []byte, base Config) (Config, error) {
	return parse(data, toml.Unmarshal, base)
}

func parse(data []byte, unmarshal func([]byte, any) error, base Config) (Config, error) {
	config := base
	if err := unmarshal(data, &config); err != nil {
		return base, fmt.Errorf("parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return base, err
	}
	return config, nil
}

func (c Config) Validate() error {
	if c.Window.Width == 0 || c.Window.Height == 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if len(c.Window.Title) > platform.MaxTitleLength {
		return fmt.Errorf("%w: title longer than %d bytes", ErrInvalidConfig, platform.MaxTitleLength)
	}
	if _, err := ParseWindowMode(c.Window.Mode); err != nil {
		return err
	}

	r := c.Render
	switch {
	case r.MaxShaders <= 0:
		return fmt.Errorf("%w: max_shaders must be positive", ErrInvalidConfig)
	case r.MaxMeshes <= 0:
		return fmt.Errorf("%w: max_meshes must be positive", ErrInvalidConfig)
	case r.ShaderSourceCapacity <= 0:
		return fmt.Errorf("%w: shader_source_capacity must be positive", ErrInvalidConfig)
	case r.ShadowSize <= 0:
		return fmt.Errorf("%w: shadow_size must be positive", ErrInvalidConfig)
	case r.ShadowNear <= 0 || r.ShadowFar <= r.ShadowNear:
		return fmt.Errorf("%w: shadow planes %g..%g", ErrInvalidConfig, r.ShadowNear, r.ShadowFar)
	case r.PixelWidth <= 0 || r.PixelHeight <= 0:
		return fmt.Errorf("%w: pixel target %dx%d", ErrInvalidConfig, r.PixelWidth, r.PixelHeight)
	}
	return nil
}

func ParseWindowMode(s string) (platform.WindowMode, error) {
	switch s {
	case "", "windowed":
		return platform.WindowModeWindowed, nil
	case "fullscreen":
		return platform.WindowModeFullscreen, nil
	case "borderless":
		return platform.WindowModeBorderless, nil
	}
	return platform.WindowModeWindowed, fmt.Errorf("%w: window mode %q", ErrInvalidConfig, s)
}

// Apply copies the window section into state and flags what changed.
func (c Config) Apply(state *platform.State) {
	w := c.Window
	if w.Title != state.WindowTitle {
		state.SetTitle(w.Title)
	}
	if w.Width != state.WindowWidth || w.Height != state.WindowHeight {
		state.SetWindowSize(w.Width, w.Height)
	}
	if mode, err := ParseWindowMode(w.Mode); err == nil && mode != state.WindowMode {
		state.SetWindowMode(mode)
	}
	if color := mgl32.Vec4(w.ClearColor); color != state.ClearColor {
		state.SetClearColor(color)
	}
	if w.FPSTarget != state.FPSTarget {
		state.SetFPSTarget(w.FPSTarget)
	}
}
