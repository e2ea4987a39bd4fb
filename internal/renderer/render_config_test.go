package renderer

import (
	"testing"
)

func TestDefaultRenderConfig(t *testing.T) {
	config := DefaultRenderConfig()

	if config.MaxShaders != 16 {
		t.Errorf("MaxShaders = %d, want 16", config.MaxShaders)
	}
	if config.MaxMeshes != 64 {
		t.Errorf("MaxMeshes = %d, want 64", config.MaxMeshes)
	}
	if config.ShadowSize != 1024 {
		t.Errorf("ShadowSize = %d, want 1024", config.ShadowSize)
	}
	if config.PixelWidth != 300 || config.PixelHeight != 200 {
		t.Errorf("pixel target = %dx%d, want 300x200", config.PixelWidth, config.PixelHeight)
	}
	if config.ShadowBias != 0.001 {
		t.Errorf("ShadowBias = %f, want 0.001", config.ShadowBias)
	}
}

func TestRenderConfigPresets(t *testing.T) {
	pixel := PixelArtRenderConfig()
	if pixel.PixelWidth >= DefaultRenderConfig().PixelWidth {
		t.Error("pixel art preset should use a smaller pixel target")
	}

	cinematic := CinematicRenderConfig()
	if cinematic.ShadowSize <= DefaultRenderConfig().ShadowSize {
		t.Error("cinematic preset should use a larger shadow map")
	}
}

func TestRenderConfigWithDefaults(t *testing.T) {
	config := RenderConfig{MaxShaders: 4}.withDefaults()

	if config.MaxShaders != 4 {
		t.Errorf("explicit MaxShaders overwritten: %d", config.MaxShaders)
	}
	if config.MaxMeshes != DefaultMaxMeshes {
		t.Errorf("MaxMeshes = %d, want default", config.MaxMeshes)
	}
	if config.ShadowFar <= config.ShadowNear {
		t.Error("shadow far plane should lie beyond the near plane")
	}
}
