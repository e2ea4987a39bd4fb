package renderer

import "github.com/go-gl/mathgl/mgl32"

// DirectionalLight is a light infinitely far away, like the sun. Direction
// points from the light into the scene.
type DirectionalLight struct {
	Direction mgl32.Vec3
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
}

// Lighting is the light setup of a draw call. A nil *Lighting renders
// unlit.
type Lighting struct {
	Directional DirectionalLight
}

// NewDirectionalLighting creates a sun-like light. Ambient is color scaled
// by ambientStrength, specular is a white highlight.
func NewDirectionalLighting(direction, color mgl32.Vec3, ambientStrength float32) *Lighting {
	return &Lighting{
		Directional: DirectionalLight{
			Direction: direction.Normalize(),
			Ambient:   color.Mul(ambientStrength),
			Diffuse:   color,
			Specular:  mgl32.Vec3{0.5, 0.5, 0.5},
		},
	}
}

// Sun returns the default outdoor light used by the demo.
func Sun() *Lighting {
	return NewDirectionalLighting(mgl32.Vec3{-0.3, -1.0, -0.5}, mgl32.Vec3{1.0, 0.95, 0.8}, 0.2)
}

// Frame carries the per frame camera and timing values every pass reads.
type Frame struct {
	Time      float64
	DeltaTime float64

	Width, Height int32

	ProjectionView    mgl32.Mat4
	ProjectionInverse mgl32.Mat4
	ViewInverse       mgl32.Mat4
	CameraPosition    mgl32.Vec3
}

// Render is what the engine drives each frame.
type Render interface {
	Draw(frame Frame, dc *DrawCall) error
	Release()
}

var _ Render = (*Context)(nil)
