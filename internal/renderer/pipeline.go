package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Context owns every GPU object the renderer creates. It must only be used
// from the thread that owns the GL context.
type Context struct {
	device Device
	config RenderConfig
	log    *zap.Logger

	shaders *ShaderCache
	meshes  *MeshResources
	screen  *ScreenTarget
	quad    *Quad
	post    *PostProcess

	shadow        *ShadowMap
	shadowProgram *UniformCache
	light         lightSpace

	// served maps a cached shader index to the draw call whose uniforms it
	// currently holds.
	served map[int]*DrawCall

	initialized bool
}

// NewContext creates an empty context. GPU objects are created on the first
// Draw. A nil log discards output.
func NewContext(device Device, config RenderConfig, log *zap.Logger) *Context {
	if log == nil {
		log = zap.NewNop()
	}
	config = config.withDefaults()
	return &Context{
		device:  device,
		config:  config,
		log:     log,
		shaders: NewShaderCache(device, NewShaderGenerator(config.ShaderSourceCapacity), config.MaxShaders, log),
		served:  make(map[int]*DrawCall),
	}
}

func (c *Context) Config() RenderConfig { return c.config }

func (c *Context) Shaders() *ShaderCache { return c.shaders }

// Draw renders dc for one frame: shadow pass, main pass and post process as
// the draw call requests. Any failure aborts the frame before the failing
// pass and leaves dc's changed flags set.
func (c *Context) Draw(frame Frame, dc *DrawCall) error {
	if dc == nil {
		return ErrNoMesh
	}
	if err := dc.Validate(c.config.MaxMeshes); err != nil {
		return fmt.Errorf("draw call %d: %w", dc.ID, err)
	}

	if err := c.init(frame, dc); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	if dc.Shadow || dc.Volumetric {
		if err := c.initShadow(); err != nil {
			return fmt.Errorf("shadow map: %w", err)
		}
		c.light = newLightSpace(dc.Lighting.Directional, c.config)
	}

	index, err := c.shaders.LoadOrCreate(dc)
	if err != nil {
		return fmt.Errorf("draw call %d: %w", dc.ID, err)
	}
	shader := c.shaders.Get(index)

	full := dc.Mesh.Changed
	uploaded, err := c.meshes.Upload(dc)
	if err != nil {
		return fmt.Errorf("draw call %d: %w", dc.ID, err)
	}
	if uploaded && full && c.log.Core().Enabled(zap.DebugLevel) {
		c.log.Debug("Draw call uploaded\n" + dc.Describe(shader))
	}
	vao, err := c.meshes.VAO(dc.Mesh.ID)
	if err != nil {
		return err
	}

	if dc.PostProcessed() {
		if err := c.ensureScreen(frame, dc); err != nil {
			return fmt.Errorf("screen target: %w", err)
		}
	}

	if dc.Shadow {
		c.shadowPass(frame, dc, vao)
	}
	c.mainPass(frame, dc, index, shader, vao)
	if dc.PostProcessed() {
		c.postPass(frame, dc)
	}

	dc.Changed = false
	dc.Mesh.Changed = false
	return nil
}

// init creates the context wide objects once. A failed init releases what
// it created and is retried on the next Draw.
func (c *Context) init(frame Frame, dc *DrawCall) error {
	if c.initialized {
		return nil
	}

	var undo Unwind
	defer undo.Unwind()

	meshes := NewMeshResources(c.device, c.config.MaxMeshes, c.log)
	undo.Add(meshes.Release)

	width, height := c.screenSize(frame, dc)
	screen, err := newScreenTarget(c.device, width, height)
	if err != nil {
		return err
	}
	undo.Add(func() { screen.release(c.device) })

	quad := newQuad(c.device)
	undo.Add(func() { quad.release(c.device) })

	post, err := newPostProcess(c.device)
	if err != nil {
		return err
	}

	undo.Discard()
	c.meshes, c.screen, c.quad, c.post = meshes, screen, quad, post
	c.initialized = true

	c.log.Info("Renderer initialized",
		zap.Int("maxMeshes", c.config.MaxMeshes),
		zap.Int("maxShaders", c.config.MaxShaders),
		zap.Int32("screenWidth", width),
		zap.Int32("screenHeight", height))
	return nil
}

func (c *Context) initShadow() error {
	if c.shadow != nil {
		return nil
	}

	program, err := buildProgram(c.device, shadowVertexSource, shadowFragmentSource)
	if err != nil {
		return err
	}
	shadow, err := newShadowMap(c.device, c.config.ShadowSize)
	if err != nil {
		c.device.DeleteProgram(program)
		return err
	}

	c.shadow = shadow
	c.shadowProgram = NewUniformCache(c.device, program)
	c.shadowProgram.Preload("pv")

	c.log.Info("Shadow map created", zap.Int32("size", shadow.Size))
	return nil
}

// screenSize is the pixel target when pixelating, the window otherwise.
func (c *Context) screenSize(frame Frame, dc *DrawCall) (int32, int32) {
	if dc.Pixelize {
		return c.config.PixelWidth, c.config.PixelHeight
	}
	width, height := frame.Width, frame.Height
	if width <= 0 || height <= 0 {
		width, height = c.config.PixelWidth, c.config.PixelHeight
	}
	return width, height
}

// ensureScreen rebuilds the offscreen target when the window was resized
// or pixelation was toggled.
func (c *Context) ensureScreen(frame Frame, dc *DrawCall) error {
	width, height := c.screenSize(frame, dc)
	if c.screen.matches(width, height) {
		return nil
	}

	screen, err := newScreenTarget(c.device, width, height)
	if err != nil {
		return err
	}
	c.screen.release(c.device)
	c.screen = screen

	c.log.Debug("Screen target resized", zap.Int32("width", width), zap.Int32("height", height))
	return nil
}

func (c *Context) shadowPass(frame Frame, dc *DrawCall, vao uint32) {
	d := c.device

	d.SetCullFace(CullFront)
	d.BindFramebuffer(c.shadow.Framebuffer)
	d.Viewport(0, 0, c.shadow.Size, c.shadow.Size)
	d.Clear(ClearDepth)

	d.UseProgram(c.shadowProgram.Program())
	c.shadowProgram.SetMat4("pv", c.light.PV)
	d.BindVertexArray(vao)
	d.DrawElementsInstanced(int32(len(dc.Mesh.Indices)), int32(len(dc.Models)))
	d.BindVertexArray(0)

	d.BindFramebuffer(0)
	d.Viewport(0, 0, frame.Width, frame.Height)
	d.SetCullFace(CullBack)
}

func (c *Context) mainPass(frame Frame, dc *DrawCall, index int, shader *Shader, vao uint32) {
	d := c.device

	if dc.PostProcessed() {
		d.BindFramebuffer(c.screen.Framebuffer)
		d.Viewport(0, 0, c.screen.Width, c.screen.Height)
		d.Clear(ClearColor | ClearDepth)
	}

	d.UseProgram(shader.Program)
	d.BindVertexArray(vao)

	var shadowTexture uint32
	if c.shadow != nil {
		shadowTexture = c.shadow.Depth
	}
	d.BindTexture(unitShadowMap, shadowTexture)
	c.setInt(shader, UniformShadowMap, int32(unitShadowMap))
	c.setMat4(shader, UniformProjectionView, frame.ProjectionView)
	c.setMat4(shader, UniformLightSpaceMatrix, c.light.PV)
	c.setVec3(shader, UniformCameraPosition, frame.CameraPosition)

	if last, ok := c.served[index]; dc.Changed || !ok || last != dc {
		c.setFloat(shader, UniformTime, float32(frame.Time))
		c.setFloat(shader, UniformDeltaTime, float32(frame.DeltaTime))
		c.setVec2(shader, UniformResolution, mgl32.Vec2{float32(frame.Width), float32(frame.Height)})

		if len(dc.Models) == 1 {
			c.setMat4(shader, UniformModel, dc.Models[0])
		}
		if len(dc.Colors) == 1 {
			c.setVec3(shader, UniformColor, dc.Colors[0])
		}
		if len(dc.TextureIndices) == 1 {
			c.setInt(shader, UniformTextureIndex, dc.TextureIndices[0])
		}
		if dc.Lighting != nil {
			l := dc.Lighting.Directional
			c.setVec3(shader, UniformLightDirection, l.Direction)
			c.setVec3(shader, UniformLightAmbient, l.Ambient)
			c.setVec3(shader, UniformLightDiffuse, l.Diffuse)
			c.setVec3(shader, UniformLightSpecular, l.Specular)
		}
		c.served[index] = dc
	}

	d.DrawElementsInstanced(int32(len(dc.Mesh.Indices)), int32(len(dc.Models)))
	d.BindVertexArray(0)
}

func (c *Context) postPass(frame Frame, dc *DrawCall) {
	d := c.device

	d.BindFramebuffer(0)
	d.Viewport(0, 0, frame.Width, frame.Height)
	d.Clear(ClearColor | ClearDepth)
	d.SetDepthTest(false)

	switch {
	case dc.Pixelize:
		c.post.Pixelate(d, c.quad, c.screen)
	case dc.Volumetric:
		c.post.Volumetric(d, c.quad, c.screen, c.shadow, c.light, frame, c.config)
	default:
		c.post.Blit(d, c.quad, c.screen)
	}

	d.SetDepthTest(true)
}

func (c *Context) setInt(s *Shader, u Uniform, v int32) {
	if loc := s.Location(u); loc != -1 {
		c.device.SetUniformInt(loc, v)
	}
}

func (c *Context) setFloat(s *Shader, u Uniform, v float32) {
	if loc := s.Location(u); loc != -1 {
		c.device.SetUniformFloat(loc, v)
	}
}

func (c *Context) setVec2(s *Shader, u Uniform, v mgl32.Vec2) {
	if loc := s.Location(u); loc != -1 {
		c.device.SetUniformVec2(loc, v)
	}
}

func (c *Context) setVec3(s *Shader, u Uniform, v mgl32.Vec3) {
	if loc := s.Location(u); loc != -1 {
		c.device.SetUniformVec3(loc, v)
	}
}

func (c *Context) setMat4(s *Shader, u Uniform, m mgl32.Mat4) {
	if loc := s.Location(u); loc != -1 {
		c.device.SetUniformMat4(loc, m)
	}
}

// Release deletes every GPU object the context created. The context can be
// drawn with again afterwards and recreates them.
func (c *Context) Release() {
	c.shaders.Release()
	if c.initialized {
		c.meshes.Release()
		c.screen.release(c.device)
		c.quad.release(c.device)
		c.post.release(c.device)
		c.initialized = false
	}
	if c.shadow != nil {
		c.shadow.release(c.device)
		c.device.DeleteProgram(c.shadowProgram.Program())
		c.shadow, c.shadowProgram = nil, nil
	}
	c.served = make(map[int]*DrawCall)
}
