package renderer

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewDefaultCamera(t *testing.T) {
	cam := NewDefaultCamera(800, 600)

	if cam == nil {
		t.Fatal("NewDefaultCamera returned nil")
	}

	if cam.Position == (mgl32.Vec3{0, 0, 0}) {
		t.Error("Camera position should not be at origin")
	}

	if cam.Speed <= 0 {
		t.Error("Camera speed should be positive")
	}

	if math.Abs(float64(cam.AspectRatio)-800.0/600.0) > 1e-5 {
		t.Errorf("Expected aspect 4:3, got %f", cam.AspectRatio)
	}
}

func TestCameraGetViewMatrix(t *testing.T) {
	cam := NewDefaultCamera(800, 600)
	cam.Position = mgl32.Vec3{0, 0, 5}
	cam.Front = mgl32.Vec3{0, 0, -1}
	cam.Up = mgl32.Vec3{0, 1, 0}

	view := cam.GetViewMatrix()

	if view.At(3, 3) != 1.0 {
		t.Error("View matrix should be valid (w component = 1)")
	}
}

func TestCameraGetProjectionMatrix(t *testing.T) {
	cam := NewDefaultCamera(800, 600)

	proj := cam.GetProjectionMatrix()

	if proj.At(3, 3) != 0.0 {
		t.Error("Perspective projection should have w=0 at (3,3)")
	}
}

func TestCameraFrameInverses(t *testing.T) {
	cam := NewDefaultCamera(800, 600)
	frame := cam.Frame(2, 0.5, 800, 600)

	if frame.Width != 800 || frame.Height != 600 || frame.Time != 2 {
		t.Errorf("Unexpected frame header %+v", frame)
	}
	if !frame.ViewInverse.Mul4(cam.GetViewMatrix()).ApproxEqualThreshold(mgl32.Ident4(), 1e-4) {
		t.Error("ViewInverse should invert the view matrix")
	}
	if !frame.ProjectionInverse.Mul4(cam.Projection).ApproxEqualThreshold(mgl32.Ident4(), 1e-3) {
		t.Error("ProjectionInverse should invert the projection")
	}
	if frame.CameraPosition != cam.Position {
		t.Error("Frame should carry the camera position")
	}
}

func TestCameraUpdateVectors(t *testing.T) {
	cam := NewDefaultCamera(800, 600)
	cam.Yaw = -90
	cam.Pitch = 0

	cam.updateCameraVectors()

	frontLen := cam.Front.Len()
	if math.Abs(float64(frontLen)-1.0) > 0.01 {
		t.Errorf("Front vector should be normalized, length=%f", frontLen)
	}
	if !cam.Front.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 1e-5) {
		t.Errorf("Yaw -90 should look down -Z, got %v", cam.Front)
	}
	if !cam.Right.ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, 1e-5) {
		t.Errorf("Right should be +X, got %v", cam.Right)
	}
}

func TestCameraProcessKeyboard(t *testing.T) {
	cam := NewDefaultCamera(800, 600)
	cam.Pitch = 0
	cam.updateCameraVectors()
	start := cam.Position

	cam.ProcessKeyboard(Movement{Forward: true}, 1)

	moved := cam.Position.Sub(start)
	if math.Abs(float64(moved.Len()-cam.Speed)) > 1e-4 {
		t.Errorf("Expected to move %f units, moved %f", cam.Speed, moved.Len())
	}

	start = cam.Position
	cam.ProcessKeyboard(Movement{Right: true, Boost: true}, 1)
	if d := cam.Position.Sub(start).Len(); math.Abs(float64(d-cam.Speed*2.5)) > 1e-4 {
		t.Errorf("Boost should multiply speed by 2.5, moved %f", d)
	}
}

func TestCameraInvertMouse(t *testing.T) {
	cam := NewDefaultCamera(800, 600)
	cam.Pitch = 0

	cam.InvertMouse = false
	cam.ProcessMouseMovement(0, 10, true)
	if cam.Pitch <= 0 {
		t.Error("Moving the mouse up should pitch up")
	}

	cam.Pitch = 0
	cam.InvertMouse = true
	cam.ProcessMouseMovement(0, 10, true)
	if cam.Pitch >= 0 {
		t.Error("Inverted mouse should pitch down")
	}

	cam.ProcessMouseMovement(0, -100000, true)
	if cam.Pitch > 89 {
		t.Errorf("Pitch should be clamped, got %f", cam.Pitch)
	}
}

func TestCameraLookAt(t *testing.T) {
	cam := NewDefaultCamera(800, 600)
	cam.Position = mgl32.Vec3{0, 0, 10}

	cam.LookAt(mgl32.Vec3{})

	if !cam.Front.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 1e-4) {
		t.Errorf("Expected to face -Z, got %v", cam.Front)
	}
}

func TestFrustumContainsSphere(t *testing.T) {
	cam := NewDefaultCamera(800, 600)
	cam.Position = mgl32.Vec3{0, 0, 10}
	cam.LookAt(mgl32.Vec3{})

	f := cam.Frustum()

	tests := []struct {
		name   string
		center mgl32.Vec3
		radius float32
		want   bool
	}{
		{"in front", mgl32.Vec3{}, 1, true},
		{"behind", mgl32.Vec3{0, 0, 30}, 1, false},
		{"past far plane", mgl32.Vec3{0, 0, -200}, 1, false},
		{"far to the side", mgl32.Vec3{50, 0, 0}, 1, false},
		{"straddling the left plane", mgl32.Vec3{-6, 0, 0}, 1, true},
		{"just outside the left plane", mgl32.Vec3{-7, 0, 0}, 0.5, false},
	}
	for _, tt := range tests {
		if got := f.ContainsSphere(tt.center, tt.radius); got != tt.want {
			t.Errorf("%s: expected %t, got %t", tt.name, tt.want, got)
		}
	}
}

func TestFrustumPlanesFaceInwards(t *testing.T) {
	pv := mgl32.Perspective(mgl32.DegToRad(90), 1, 1, 10)
	f := FrustumOf(pv)

	// Camera looks down -Z, so the center of the volume is at z=-5.
	for i, pl := range f {
		if d := pl.Distance(mgl32.Vec3{0, 0, -5}); d <= 0 {
			t.Errorf("plane %d: center should be inside, distance %g", i, d)
		}
		if l := pl.Normal.Len(); l < 0.999 || l > 1.001 {
			t.Errorf("plane %d: normal not unit length (%g)", i, l)
		}
	}
	if d := f[4].Distance(mgl32.Vec3{0, 0, -1}); d > 1e-4 || d < -1e-4 {
		t.Errorf("near plane should pass through z=-1, distance %g", d)
	}
}
