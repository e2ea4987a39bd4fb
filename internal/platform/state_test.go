package platform

import (
	"strings"
	"testing"
)

func TestDefaultState(t *testing.T) {
	s := DefaultState()

	if !s.Running {
		t.Error("default state should be running")
	}
	if s.WindowWidth != 800 || s.WindowHeight != 600 {
		t.Errorf("unexpected default size %dx%d", s.WindowWidth, s.WindowHeight)
	}
	if s.FPSTarget != FPSTargetVSync {
		t.Errorf("default fps target should be vsync, got %d", s.FPSTarget)
	}
	if s.ChangedFlags != ChangedNothing {
		t.Error("default state should carry no pending changes")
	}
}

func TestStateChangedFlags(t *testing.T) {
	s := DefaultState()

	s.SetWindowMode(WindowModeBorderless)
	if !s.Changed(ChangedWindow) {
		t.Error("window mode change should mark the window flag")
	}
	if s.Changed(ChangedFPSTarget) {
		t.Error("window mode change should not mark the fps flag")
	}

	s.SetFPSTarget(60)
	s.ClearChanged(ChangedWindow)
	if s.Changed(ChangedWindow) {
		t.Error("window flag should be cleared")
	}
	if !s.Changed(ChangedFPSTarget) {
		t.Error("fps flag should survive clearing the window flag")
	}
}

func TestStateSetTitleTruncates(t *testing.T) {
	s := DefaultState()
	s.SetTitle(strings.Repeat("x", 100))

	if len(s.WindowTitle) != MaxTitleLength {
		t.Errorf("title length = %d, want %d", len(s.WindowTitle), MaxTitleLength)
	}
}

func TestStateAdvance(t *testing.T) {
	s := DefaultState()
	s.Advance(0.5)
	s.Advance(0.25)

	if s.Time != 0.75 {
		t.Errorf("time = %v, want 0.75", s.Time)
	}
	if s.DeltaTime != 0.25 {
		t.Errorf("delta = %v, want 0.25", s.DeltaTime)
	}
	if s.FPS != 4 {
		t.Errorf("fps = %d, want 4", s.FPS)
	}
}

type appData struct {
	counter int
}

func TestAppStateAllocatesOnce(t *testing.T) {
	mem := NewMemory(DefaultState())

	a := AppState[appData](mem)
	a.counter = 3

	b := AppState[appData](mem)
	if b.counter != 3 {
		t.Error("AppState should return the same allocation")
	}
}
