package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func newCacheForSource(t *testing.T, fragment string) (*Recorder, *UniformCache) {
	t.Helper()
	rec := NewRecorder()
	program, err := buildProgram(rec, postProcessVertexSource, fragment)
	if err != nil {
		t.Fatalf("buildProgram: %v", err)
	}
	return rec, NewUniformCache(rec, program)
}

func TestNewUniformCache(t *testing.T) {
	cache := NewUniformCache(NewRecorder(), 0)

	if cache == nil {
		t.Fatal("NewUniformCache returned nil")
	}

	if cache.locations == nil {
		t.Error("locations map should be initialized")
	}
}

func TestUniformCacheLooksUpOnce(t *testing.T) {
	rec, cache := newCacheForSource(t, pixelFragmentSource)

	first := cache.GetLocation("texel_size")
	second := cache.GetLocation("texel_size")

	if first == -1 {
		t.Fatal("texel_size should resolve in the pixel program")
	}
	if first != second {
		t.Errorf("cached location changed: %d then %d", first, second)
	}
	if n := rec.Count("UniformLocation"); n != 1 {
		t.Errorf("expected one driver lookup, got %d", n)
	}
}

func TestUniformCacheSkipsMissingUniform(t *testing.T) {
	rec, cache := newCacheForSource(t, postProcessFragmentSource)

	cache.SetVec2("texel_size", mgl32.Vec2{1, 1})

	if rec.Count("SetUniformVec2") != 0 {
		t.Error("setting a uniform the program lacks should not reach the device")
	}
}
