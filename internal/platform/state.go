package platform

import "github.com/go-gl/mathgl/mgl32"

// ChangedFlags tell the platform layer which parts of State the application
// modified and must be applied before the next frame.
type ChangedFlags uint32

const (
	ChangedNothing   ChangedFlags = 0
	ChangedWindow    ChangedFlags = 1 << 0
	ChangedFPSTarget ChangedFlags = 1 << 1
)

type WindowMode int

const (
	WindowModeWindowed WindowMode = iota
	WindowModeFullscreen
	WindowModeBorderless
)

func (m WindowMode) String() string {
	switch m {
	case WindowModeFullscreen:
		return "fullscreen"
	case WindowModeBorderless:
		return "borderless"
	default:
		return "windowed"
	}
}

const (
	FPSTargetVSync     = -1
	FPSTargetUnlimited = 0
)

// MaxTitleLength bounds State.WindowTitle in bytes.
const MaxTitleLength = 63

// State is exchanged between the platform and the application layer.
type State struct {
	ChangedFlags ChangedFlags
	Running      bool
	Wireframe    bool

	WindowMode       WindowMode
	WindowClipCursor bool
	WindowTitle      string
	WindowWidth      uint32
	WindowHeight     uint32
	ClearColor       mgl32.Vec4

	// FPSTarget < 0 is vsync, 0 is unlimited, > 0 caps the loop.
	FPSTarget int
	FPS       uint32

	Time      float64 // Seconds since start
	DeltaTime float64 // Seconds since the previous frame
}

// DefaultState is the platform state before the application runs for the
// first time.
func DefaultState() State {
	return State{
		Running:      true,
		WindowTitle:  "Beneath",
		WindowWidth:  800,
		WindowHeight: 600,
		ClearColor:   mgl32.Vec4{0.157, 0.157, 0.157, 1.0},
		FPSTarget:    FPSTargetVSync,
	}
}

func (s *State) Changed(f ChangedFlags) bool {
	return s.ChangedFlags&f != 0
}

func (s *State) MarkChanged(f ChangedFlags) {
	s.ChangedFlags |= f
}

func (s *State) ClearChanged(f ChangedFlags) {
	s.ChangedFlags &^= f
}

// SetTitle updates the window title, truncating to MaxTitleLength bytes.
func (s *State) SetTitle(title string) {
	if len(title) > MaxTitleLength {
		title = title[:MaxTitleLength]
	}
	s.WindowTitle = title
	s.MarkChanged(ChangedWindow)
}

func (s *State) SetWindowSize(width, height uint32) {
	s.WindowWidth = width
	s.WindowHeight = height
	s.MarkChanged(ChangedWindow)
}

func (s *State) SetWindowMode(mode WindowMode) {
	s.WindowMode = mode
	s.MarkChanged(ChangedWindow)
}

func (s *State) SetClearColor(c mgl32.Vec4) {
	s.ClearColor = c
	s.MarkChanged(ChangedWindow)
}

func (s *State) SetFPSTarget(target int) {
	s.FPSTarget = target
	s.MarkChanged(ChangedFPSTarget)
}

// Advance records a new frame that took delta seconds.
func (s *State) Advance(delta float64) {
	s.DeltaTime = delta
	s.Time += delta
	if delta > 0 {
		s.FPS = uint32(1.0 / delta)
	}
}
