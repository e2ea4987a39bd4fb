package renderer

// quadVertices is a full screen triangle strip, interleaved xy and uv.
var quadVertices = []float32{
	-1, -1, 0, 0,
	1, -1, 1, 0,
	-1, 1, 0, 1,
	1, 1, 1, 1,
}

// ScreenTarget is the offscreen color+depth framebuffer the main pass
// renders into when a post effect is active.
type ScreenTarget struct {
	Framebuffer uint32
	Color       uint32
	Depth       uint32
	Width       int32
	Height      int32
}

func newScreenTarget(device Device, width, height int32) (*ScreenTarget, error) {
	var undo Unwind
	defer undo.Unwind()

	color := device.CreateTexture(TextureDesc{Width: width, Height: height, Format: TextureRGB, Wrap: WrapClampToEdge})
	undo.Add(func() { device.DeleteTextures(color) })

	depth := device.CreateTexture(TextureDesc{Width: width, Height: height, Format: TextureDepth24, Wrap: WrapClampToEdge})
	undo.Add(func() { device.DeleteTextures(depth) })

	fbo, err := device.CreateFramebuffer(color, depth)
	if err != nil {
		return nil, err
	}

	undo.Discard()
	return &ScreenTarget{Framebuffer: fbo, Color: color, Depth: depth, Width: width, Height: height}, nil
}

func (s *ScreenTarget) matches(width, height int32) bool {
	return s != nil && s.Width == width && s.Height == height
}

func (s *ScreenTarget) release(device Device) {
	device.DeleteFramebuffers(s.Framebuffer)
	device.DeleteTextures(s.Color, s.Depth)
}

// ShadowMap is a depth only framebuffer rendered from the light. Samples
// outside it read as fully lit.
type ShadowMap struct {
	Framebuffer uint32
	Depth       uint32
	Size        int32
}

func newShadowMap(device Device, size int32) (*ShadowMap, error) {
	var undo Unwind
	defer undo.Unwind()

	depth := device.CreateTexture(TextureDesc{
		Width:  size,
		Height: size,
		Format: TextureDepth,
		Wrap:   WrapClampToBorder,
		Border: [4]float32{1, 1, 1, 1},
	})
	undo.Add(func() { device.DeleteTextures(depth) })

	fbo, err := device.CreateFramebuffer(0, depth)
	if err != nil {
		return nil, err
	}

	undo.Discard()
	return &ShadowMap{Framebuffer: fbo, Depth: depth, Size: size}, nil
}

func (s *ShadowMap) release(device Device) {
	device.DeleteFramebuffers(s.Framebuffer)
	device.DeleteTextures(s.Depth)
}

// Quad is the geometry of the post process passes.
type Quad struct {
	VAO uint32
	VBO uint32
}

func newQuad(device Device) *Quad {
	q := &Quad{
		VAO: device.GenVertexArrays(1)[0],
		VBO: device.GenBuffers(1)[0],
	}
	device.BindVertexArray(q.VAO)
	device.BufferData(ArrayBuffer, q.VBO, quadVertices)
	device.VertexAttribPointer(0, 2, 4*4, 0)
	device.EnableVertexAttrib(0)
	device.VertexAttribPointer(1, 2, 4*4, 2*4)
	device.EnableVertexAttrib(1)
	device.BindVertexArray(0)
	return q
}

func (q *Quad) draw(device Device) {
	device.BindVertexArray(q.VAO)
	device.DrawTriangleStrip(0, 4)
	device.BindVertexArray(0)
}

func (q *Quad) release(device Device) {
	device.DeleteVertexArrays(q.VAO)
	device.DeleteBuffers(q.VBO)
}
