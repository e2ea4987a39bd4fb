package renderer

import (
	"fmt"

	"go.uber.org/zap"
)

// DefaultMaxMeshes is the number of mesh slots preallocated per context.
const DefaultMaxMeshes = 64

// Buffer slots of one mesh, in table order.
const (
	slotPosition = iota
	slotIndex
	slotUV
	slotNormal
	slotTangent
	slotBitangent
	slotColor
	slotInstanceModel
	slotInstanceColor
	slotInstanceTex

	bufferSlotCount
)

// MeshResources is the preallocated VAO and buffer table indexed directly by
// Mesh.ID. Nothing is allocated after construction.
type MeshResources struct {
	device Device
	log    *zap.Logger

	vaos    []uint32
	buffers []uint32

	uploaded []bool
	// lastDrawCall is the draw call whose instance streams a slot holds.
	lastDrawCall []*DrawCall
}

func NewMeshResources(device Device, maxMeshes int, log *zap.Logger) *MeshResources {
	if maxMeshes <= 0 {
		maxMeshes = DefaultMaxMeshes
	}
	if log == nil {
		log = zap.NewNop()
	}
	r := &MeshResources{
		device:       device,
		log:          log,
		vaos:         device.GenVertexArrays(maxMeshes),
		buffers:      device.GenBuffers(maxMeshes * bufferSlotCount),
		uploaded:     make([]bool, maxMeshes),
		lastDrawCall: make([]*DrawCall, maxMeshes),
	}
	return r
}

func (r *MeshResources) Len() int { return len(r.vaos) }

// VAO returns the vertex array of mesh id.
func (r *MeshResources) VAO(id int) (uint32, error) {
	if id < 0 || id >= len(r.vaos) {
		return 0, fmt.Errorf("mesh %d (max %d): %w", id, len(r.vaos), ErrMeshIDOutOfRange)
	}
	return r.vaos[id], nil
}

func (r *MeshResources) buffer(id, slot int) uint32 {
	return r.buffers[id*bufferSlotCount+slot]
}

// Upload sends dc's mesh and instance streams to the mesh's slot. Every
// attribute is re-sent when the mesh changed or was never uploaded; only the
// instance streams when the draw call changed or a different draw call last
// used the slot. It reports whether anything was uploaded.
func (r *MeshResources) Upload(dc *DrawCall) (bool, error) {
	mesh := dc.Mesh
	vao, err := r.VAO(mesh.ID)
	if err != nil {
		return false, err
	}

	full := mesh.Changed || !r.uploaded[mesh.ID]
	instances := full || dc.Changed || r.lastDrawCall[mesh.ID] != dc
	if !instances {
		return false, nil
	}

	r.device.BindVertexArray(vao)
	if full {
		r.uploadMesh(mesh)
		r.uploaded[mesh.ID] = true
	}
	r.uploadInstances(dc)
	r.lastDrawCall[mesh.ID] = dc
	r.device.BindVertexArray(0)

	r.log.Debug("Mesh uploaded",
		zap.Int("mesh", mesh.ID),
		zap.Int("drawCall", dc.ID),
		zap.Bool("full", full),
		zap.Int("instances", len(dc.Models)))
	return true, nil
}

func (r *MeshResources) uploadMesh(mesh *Mesh) {
	id := mesh.ID

	r.attribute(r.buffer(id, slotPosition), LocationPosition, 3, mesh.Vertices)
	r.device.BufferData(ElementArrayBuffer, r.buffer(id, slotIndex), mesh.Indices)

	if mesh.HasUVs() {
		r.attribute(r.buffer(id, slotUV), LocationUV, 2, mesh.UVs)
	}
	if mesh.HasNormals() {
		r.attribute(r.buffer(id, slotNormal), LocationNormal, 3, mesh.Normals)
	}
	if mesh.HasTangents() {
		r.attribute(r.buffer(id, slotTangent), LocationTangent, 3, mesh.Tangents)
	}
	if mesh.HasBitangents() {
		r.attribute(r.buffer(id, slotBitangent), LocationBitangent, 3, mesh.Bitangents)
	}
	if mesh.HasColors() {
		r.attribute(r.buffer(id, slotColor), LocationColor, 3, mesh.Colors)
	}
}

func (r *MeshResources) attribute(buffer, location uint32, size int32, data []float32) {
	r.device.BufferData(ArrayBuffer, buffer, data)
	r.device.VertexAttribPointer(location, size, size*4, 0)
	r.device.EnableVertexAttrib(location)
}

// uploadInstances sends the per instance streams. The model stream is always
// buffered so the depth only shadow program, which reads location 6, works
// for single instance draw calls too.
func (r *MeshResources) uploadInstances(dc *DrawCall) {
	id := dc.Mesh.ID

	r.device.BufferData(ArrayBuffer, r.buffer(id, slotInstanceModel), dc.Models)
	for i := uint32(0); i < mat4Rows; i++ {
		loc := LocationInstanceModel + i
		r.device.EnableVertexAttrib(loc)
		r.device.VertexAttribPointer(loc, 4, mat4Stride, int(i)*vec4Size)
		r.device.VertexAttribDivisor(loc, 1)
	}

	if CardinalityOf(len(dc.Colors)) == CardinalityLayout {
		r.device.BufferData(ArrayBuffer, r.buffer(id, slotInstanceColor), dc.Colors)
		r.device.EnableVertexAttrib(LocationInstanceColor)
		r.device.VertexAttribPointer(LocationInstanceColor, 3, 3*4, 0)
		r.device.VertexAttribDivisor(LocationInstanceColor, 1)
	}

	if CardinalityOf(len(dc.TextureIndices)) == CardinalityLayout {
		r.device.BufferData(ArrayBuffer, r.buffer(id, slotInstanceTex), dc.TextureIndices)
		r.device.EnableVertexAttrib(LocationInstanceTex)
		r.device.VertexAttribIPointer(LocationInstanceTex, 1, 4, 0)
		r.device.VertexAttribDivisor(LocationInstanceTex, 1)
	}
}

// Release deletes every VAO and buffer of the table.
func (r *MeshResources) Release() {
	r.device.DeleteVertexArrays(r.vaos...)
	r.device.DeleteBuffers(r.buffers...)
	r.vaos = nil
	r.buffers = nil
	r.uploaded = nil
	r.lastDrawCall = nil
}
