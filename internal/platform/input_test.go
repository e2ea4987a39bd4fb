package platform

import "testing"

func TestControllerStateProcess(t *testing.T) {
	var c ControllerState

	c.Process(true)
	if !c.EndedDown || !c.Pressed || !c.Active || c.HalfTransitionCount != 1 {
		t.Fatalf("after press got %+v", c)
	}

	// Key repeat must not count as a transition
	c.Process(true)
	if c.HalfTransitionCount != 1 {
		t.Errorf("repeat counted as transition: %d", c.HalfTransitionCount)
	}

	c.Process(false)
	if c.EndedDown || c.Pressed {
		t.Errorf("release should clear down and pressed, got %+v", c)
	}
	if !c.Active {
		t.Error("release must not flip the toggle")
	}
	if c.HalfTransitionCount != 2 {
		t.Errorf("expected 2 half transitions, got %d", c.HalfTransitionCount)
	}

	c.Process(true)
	if c.Active {
		t.Error("second press should flip the toggle off")
	}
}

func TestInputBeginFrame(t *testing.T) {
	var in Input
	in.Process(KeyReturn, true)
	in.MoveMouse(10, 10)
	in.MoveMouse(15, 7)
	in.Scroll(2)

	if in.MouseOffsetX != 5 || in.MouseOffsetY != -3 {
		t.Errorf("unexpected mouse offset %v,%v", in.MouseOffsetX, in.MouseOffsetY)
	}

	in.BeginFrame()

	if in.Pressed(KeyReturn) {
		t.Error("pressed should reset every frame")
	}
	if !in.Down(KeyReturn) {
		t.Error("held state should survive BeginFrame")
	}
	if !in.Active(KeyReturn) {
		t.Error("toggle state should survive BeginFrame")
	}
	if in.MouseOffsetX != 0 || in.MouseOffsetY != 0 || in.MouseOffsetScroll != 0 {
		t.Error("mouse offsets should reset every frame")
	}
	if in.MouseX != 15 || in.MouseY != 7 {
		t.Error("absolute mouse position should survive BeginFrame")
	}
}

func TestInputIgnoresUnknownKeys(t *testing.T) {
	var in Input
	in.Process(KeyCount, true)
	in.Process(Key(-1), true)

	if in.Down(KeyCount) {
		t.Error("KeyCount should never report down")
	}
}

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyMouseLeft, "MouseLeft"},
		{KeyF6, "F6"},
		{KeyReturn, "Return"},
		{Key9, "9"},
		{KeyZ, "Z"},
		{KeyCount, "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("Key(%d).String() = %q, want %q", tt.key, got, tt.want)
		}
	}

	if len(keyNames) != int(KeyCount) {
		t.Errorf("keyNames has %d entries, want %d", len(keyNames), KeyCount)
	}
}
