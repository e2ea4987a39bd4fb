package platform

// ControllerState is the per frame record of a single key or button.
type ControllerState struct {
	HalfTransitionCount uint32 // Up/down flips since the last frame
	EndedDown           bool   // Held at the end of the frame
	Active              bool   // Flips on every press, usable as a toggle
	Pressed             bool   // Went down during this frame
}

// Process applies a raw up/down event. Repeated events in the same
// direction (key repeat) are ignored.
func (c *ControllerState) Process(down bool) {
	if c.EndedDown == down {
		return
	}
	c.HalfTransitionCount++
	c.EndedDown = down
	c.Pressed = down
	if down {
		c.Active = !c.Active
	}
}

// Input is the normalized keyboard and mouse state handed to the
// application every frame.
type Input struct {
	Keys [KeyCount]ControllerState

	MouseAttached     bool
	MouseOffsetScroll float32
	MouseOffsetX      float32
	MouseOffsetY      float32
	MouseX            int32
	MouseY            int32
}

// BeginFrame clears everything that is accumulated per frame. Held and
// toggle state survive.
func (in *Input) BeginFrame() {
	for i := range in.Keys {
		in.Keys[i].HalfTransitionCount = 0
		in.Keys[i].Pressed = false
	}
	in.MouseOffsetScroll = 0
	in.MouseOffsetX = 0
	in.MouseOffsetY = 0
}

// Process records an event for k. Unknown keys are dropped.
func (in *Input) Process(k Key, down bool) {
	if !k.Valid() {
		return
	}
	in.Keys[k].Process(down)
}

// MoveMouse records an absolute cursor position and accumulates the offset
// from the previous one.
func (in *Input) MoveMouse(x, y int32) {
	if in.MouseAttached {
		in.MouseOffsetX += float32(x - in.MouseX)
		in.MouseOffsetY += float32(y - in.MouseY)
	}
	in.MouseX = x
	in.MouseY = y
	in.MouseAttached = true
}

// Scroll accumulates wheel movement in notches.
func (in *Input) Scroll(notches float32) {
	in.MouseOffsetScroll += notches
}

func (in *Input) Down(k Key) bool {
	return k.Valid() && in.Keys[k].EndedDown
}

func (in *Input) Pressed(k Key) bool {
	return k.Valid() && in.Keys[k].Pressed
}

func (in *Input) Active(k Key) bool {
	return k.Valid() && in.Keys[k].Active
}
