package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// PostProcess holds the full screen programs that composite the offscreen
// target onto the default framebuffer.
type PostProcess struct {
	blit       *UniformCache
	pixel      *UniformCache
	volumetric *UniformCache
}

func newPostProcess(device Device) (*PostProcess, error) {
	var undo Unwind
	defer undo.Unwind()

	build := func(name, fragment string) (*UniformCache, error) {
		program, err := buildProgram(device, postProcessVertexSource, fragment)
		if err != nil {
			return nil, fmt.Errorf("%s program: %w", name, err)
		}
		undo.Add(func() { device.DeleteProgram(program) })
		return NewUniformCache(device, program), nil
	}

	blit, err := build("post process", postProcessFragmentSource)
	if err != nil {
		return nil, err
	}
	pixel, err := build("pixel", pixelFragmentSource)
	if err != nil {
		return nil, err
	}
	volumetric, err := build("volumetric", volumetricFragmentSource)
	if err != nil {
		return nil, err
	}

	blit.Preload("screen_texture")
	pixel.Preload("screen_texture", "texel_size")
	volumetric.Preload(
		"screen_texture", "depth_texture", "shadow_map",
		"light_position", "light_direction", "light_projection", "light_view",
		"camera_position", "camera_projection_inverse", "camera_view_inverse",
		"camera_far", "cone_angle", "shadow_bias",
	)

	undo.Discard()
	return &PostProcess{blit: blit, pixel: pixel, volumetric: volumetric}, nil
}

// Pixelate draws screen quantized with edge darkening.
func (p *PostProcess) Pixelate(device Device, quad *Quad, screen *ScreenTarget) {
	device.UseProgram(p.pixel.Program())
	device.BindTexture(unitScreenColor, screen.Color)
	p.pixel.SetInt("screen_texture", int32(unitScreenColor))
	p.pixel.SetVec2("texel_size", mgl32.Vec2{1 / float32(screen.Width), 1 / float32(screen.Height)})
	quad.draw(device)
}

// Volumetric composites ray marched light shafts over screen.
func (p *PostProcess) Volumetric(device Device, quad *Quad, screen *ScreenTarget, shadow *ShadowMap, light lightSpace, frame Frame, config RenderConfig) {
	u := p.volumetric
	device.UseProgram(u.Program())

	device.BindTexture(unitScreenColor, screen.Color)
	u.SetInt("screen_texture", int32(unitScreenColor))
	device.BindTexture(unitScreenDepth, screen.Depth)
	u.SetInt("depth_texture", int32(unitScreenDepth))
	device.BindTexture(unitVolumeShadow, shadow.Depth)
	u.SetInt("shadow_map", int32(unitVolumeShadow))

	u.SetVec3("light_position", light.Position)
	u.SetVec3("light_direction", light.Direction)
	u.SetMat4("light_projection", light.Projection)
	u.SetMat4("light_view", light.View)
	u.SetVec3("camera_position", frame.CameraPosition)
	u.SetMat4("camera_projection_inverse", frame.ProjectionInverse)
	u.SetMat4("camera_view_inverse", frame.ViewInverse)

	u.SetFloat("camera_far", config.VolumetricCameraFar)
	u.SetFloat("cone_angle", config.ConeAngle)
	u.SetFloat("shadow_bias", config.ShadowBias)

	quad.draw(device)
}

// Blit copies screen unchanged.
func (p *PostProcess) Blit(device Device, quad *Quad, screen *ScreenTarget) {
	device.UseProgram(p.blit.Program())
	device.BindTexture(unitScreenColor, screen.Color)
	p.blit.SetInt("screen_texture", int32(unitScreenColor))
	quad.draw(device)
}

func (p *PostProcess) release(device Device) {
	device.DeleteProgram(p.blit.Program())
	device.DeleteProgram(p.pixel.Program())
	device.DeleteProgram(p.volumetric.Program())
}

// lightSpace is the view of the scene from a directional light.
type lightSpace struct {
	Position   mgl32.Vec3
	Direction  mgl32.Vec3
	Projection mgl32.Mat4
	View       mgl32.Mat4
	PV         mgl32.Mat4
}

// newLightSpace places the light LightDistance units against its direction
// from the origin, looking at the origin with an orthographic box.
func newLightSpace(light DirectionalLight, config RenderConfig) lightSpace {
	dir := light.Direction
	if dir.Len() == 0 {
		dir = mgl32.Vec3{0, -1, 0}
	}
	dir = dir.Normalize()

	up := mgl32.Vec3{0, 1, 0}
	if abs32(dir.Dot(up)) > 0.999 {
		up = mgl32.Vec3{0, 0, 1}
	}

	e := config.ShadowExtent
	ls := lightSpace{
		Position:   dir.Mul(-config.LightDistance),
		Direction:  light.Direction,
		Projection: mgl32.Ortho(-e, e, -e, e, config.ShadowNear, config.ShadowFar),
	}
	ls.View = mgl32.LookAtV(ls.Position, mgl32.Vec3{}, up)
	ls.PV = ls.Projection.Mul4(ls.View)
	return ls
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
