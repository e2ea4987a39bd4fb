// camera.go
package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type Camera struct {
	// HOT DATA - Accessed every frame for view/projection calculations
	Position   mgl32.Vec3 // Camera position in world space
	Front      mgl32.Vec3 // Forward direction vector
	Up         mgl32.Vec3 // Up direction vector
	Right      mgl32.Vec3 // Right direction vector
	Projection mgl32.Mat4 // Projection matrix
	Pitch      float32    // Pitch angle (vertical rotation)
	Yaw        float32    // Yaw angle (horizontal rotation)

	// COLD DATA - Configuration and input handling, accessed less frequently
	WorldUp     mgl32.Vec3 // World up vector (usually (0,1,0))
	Speed       float32    // Movement speed
	Sensitivity float32    // Mouse sensitivity
	Fov         float32    // Field of view
	Near        float32    // Near clipping plane
	Far         float32    // Far clipping plane
	AspectRatio float32    // Screen aspect ratio
	InvertMouse bool       // Invert mouse Y axis
}

// Movement is a direction for ProcessKeyboard.
type Movement struct {
	Forward, Backward, Left, Right, Up, Down bool
	Boost                                    bool
}

func NewDefaultCamera(width, height int32) *Camera {
	camera := Camera{
		Position:    mgl32.Vec3{0, 3, 12},
		Front:       mgl32.Vec3{0, 0, -1},
		Up:          mgl32.Vec3{0, 1, 0},
		WorldUp:     mgl32.Vec3{0, 1, 0},
		Pitch:       -10.0,
		Yaw:         -90.0,
		Speed:       8,
		Sensitivity: 0.1,
		Fov:         45.0,
		Near:        0.1,
		Far:         100.0,
		AspectRatio: aspect(width, height),
	}
	camera.updateCameraVectors()
	camera.UpdateProjection()
	return &camera
}

func aspect(width, height int32) float32 {
	if width <= 0 || height <= 0 {
		return 4.0 / 3.0
	}
	return float32(width) / float32(height)
}

func (c *Camera) UpdateProjection() {
	c.Projection = mgl32.Perspective(mgl32.DegToRad(c.Fov), c.AspectRatio, c.Near, c.Far)
}

// Setter methods that automatically update projection
func (c *Camera) SetNear(near float32) {
	c.Near = near
	c.UpdateProjection()
}

func (c *Camera) SetFar(far float32) {
	c.Far = far
	c.UpdateProjection()
}

func (c *Camera) SetFov(fov float32) {
	c.Fov = fov
	c.UpdateProjection()
}

// Resize follows a window size change.
func (c *Camera) Resize(width, height int32) {
	if a := aspect(width, height); a != c.AspectRatio {
		c.AspectRatio = a
		c.UpdateProjection()
	}
}

func (c *Camera) GetViewProjection() mgl32.Mat4 {
	return c.Projection.Mul4(c.GetViewMatrix())
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return c.Projection
}

// Frame builds the per frame camera block for Context.Draw.
func (c *Camera) Frame(time, deltaTime float64, width, height int32) Frame {
	view := c.GetViewMatrix()
	return Frame{
		Time:              time,
		DeltaTime:         deltaTime,
		Width:             width,
		Height:            height,
		ProjectionView:    c.Projection.Mul4(view),
		ProjectionInverse: c.Projection.Inv(),
		ViewInverse:       view.Inv(),
		CameraPosition:    c.Position,
	}
}

func (c *Camera) ProcessKeyboard(move Movement, deltaTime float32) {
	velocity := c.Speed * deltaTime
	if move.Boost {
		velocity *= 2.5
	}

	if move.Forward {
		c.Position = c.Position.Add(c.Front.Mul(velocity))
	}
	if move.Backward {
		c.Position = c.Position.Sub(c.Front.Mul(velocity))
	}
	if move.Left {
		c.Position = c.Position.Sub(c.Right.Mul(velocity))
	}
	if move.Right {
		c.Position = c.Position.Add(c.Right.Mul(velocity))
	}
	if move.Up {
		c.Position = c.Position.Add(c.WorldUp.Mul(velocity))
	}
	if move.Down {
		c.Position = c.Position.Sub(c.WorldUp.Mul(velocity))
	}
}

func (c *Camera) ProcessMouseMovement(xoffset, yoffset float32, constrainPitch bool) {
	xoffset *= c.Sensitivity
	yoffset *= c.Sensitivity

	c.Yaw += xoffset

	if c.InvertMouse {
		c.Pitch -= yoffset
	} else {
		c.Pitch += yoffset
	}
	if constrainPitch {
		c.Pitch = mgl32.Clamp(c.Pitch, -89.0, 89.0) // Prevent extreme pitch values
	}
	c.updateCameraVectors()
}

// ProcessScroll zooms by narrowing the field of view.
func (c *Camera) ProcessScroll(offset float32) {
	c.SetFov(mgl32.Clamp(c.Fov-offset, 1, 90))
}

func (c *Camera) LookAt(target mgl32.Vec3) {
	direction := target.Sub(c.Position)
	if direction.Len() == 0 {
		return
	}
	direction = direction.Normalize()
	c.Yaw = mgl32.RadToDeg(float32(math.Atan2(float64(direction.Z()), float64(direction.X()))))
	c.Pitch = mgl32.RadToDeg(float32(math.Asin(float64(mgl32.Clamp(direction.Y(), -1, 1)))))
	c.updateCameraVectors()
}

func (c *Camera) updateCameraVectors() {
	yawRad := mgl32.DegToRad(c.Yaw)
	pitchRad := mgl32.DegToRad(c.Pitch)

	front := mgl32.Vec3{
		float32(math.Cos(float64(yawRad)) * math.Cos(float64(pitchRad))),
		float32(math.Sin(float64(pitchRad))),
		float32(math.Sin(float64(yawRad)) * math.Cos(float64(pitchRad))),
	}

	c.Front = front.Normalize()
	c.Right = c.Front.Cross(c.WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}

// Frustum returns the clip planes of the current view.
func (c *Camera) Frustum() Frustum {
	return FrustumOf(c.GetViewProjection())
}
