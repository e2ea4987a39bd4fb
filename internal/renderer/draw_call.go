package renderer

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Cardinality classifies an instance stream by how it reaches the shader.
type Cardinality uint8

const (
	CardinalityNone    Cardinality = iota // Stream unused
	CardinalityUniform                    // One value shared by every instance
	CardinalityLayout                     // One value per instance, divisor 1 attribute
)

// CardinalityOf classifies a stream of n elements.
func CardinalityOf(n int) Cardinality {
	switch {
	case n <= 0:
		return CardinalityNone
	case n == 1:
		return CardinalityUniform
	default:
		return CardinalityLayout
	}
}

func (c Cardinality) String() string {
	switch c {
	case CardinalityUniform:
		return "uniform"
	case CardinalityLayout:
		return "layout"
	default:
		return "none"
	}
}

// DrawCall renders one mesh any number of times. Models is the authoritative
// instance count; Colors and TextureIndices are either empty, a single shared
// value, or one value per model.
type DrawCall struct {
	ID   int
	Mesh *Mesh

	// DataCapacity bounds Append. Zero means the streams were filled directly.
	DataCapacity int

	Models         []mgl32.Mat4
	Colors         []mgl32.Vec3
	TextureIndices []int32

	Lighting *Lighting

	Shadow     bool
	Volumetric bool
	Pixelize   bool

	// Changed asks the renderer to resend per draw call uniforms and instance
	// data on the next frame.
	Changed bool
}

// Instance is a single entry for Append. Color and TextureIndex are only
// stored when non-nil.
type Instance struct {
	Model        mgl32.Mat4
	Color        *mgl32.Vec3
	TextureIndex *int32
}

// Append adds one instance. It fails with ErrDrawCallFull without touching
// any stream when DataCapacity instances are already stored.
func (dc *DrawCall) Append(inst Instance) error {
	if len(dc.Models) >= dc.DataCapacity {
		return fmt.Errorf("append instance %d of %d: %w", len(dc.Models)+1, dc.DataCapacity, ErrDrawCallFull)
	}
	if inst.Color != nil && len(dc.Colors) >= dc.DataCapacity {
		return fmt.Errorf("append color %d of %d: %w", len(dc.Colors)+1, dc.DataCapacity, ErrDrawCallFull)
	}
	if inst.TextureIndex != nil && len(dc.TextureIndices) >= dc.DataCapacity {
		return fmt.Errorf("append texture index %d of %d: %w", len(dc.TextureIndices)+1, dc.DataCapacity, ErrDrawCallFull)
	}

	dc.Models = append(dc.Models, inst.Model)
	if inst.Color != nil {
		dc.Colors = append(dc.Colors, *inst.Color)
	}
	if inst.TextureIndex != nil {
		dc.TextureIndices = append(dc.TextureIndices, *inst.TextureIndex)
	}
	dc.Changed = true
	return nil
}

// Reset drops every instance but keeps the backing arrays.
func (dc *DrawCall) Reset() {
	dc.Models = dc.Models[:0]
	dc.Colors = dc.Colors[:0]
	dc.TextureIndices = dc.TextureIndices[:0]
	dc.Changed = true
}

func (dc *DrawCall) InstanceCount() int {
	return len(dc.Models)
}

// UseMeshColor reports whether the per vertex mesh color feeds the shader.
// It does only when no per instance color or texture override exists.
func (dc *DrawCall) UseMeshColor() bool {
	return dc.Mesh != nil && dc.Mesh.HasColors() && len(dc.Colors) == 0 && len(dc.TextureIndices) == 0
}

// PostProcessed reports whether the main pass renders offscreen.
func (dc *DrawCall) PostProcessed() bool {
	return dc.Pixelize || dc.Volumetric
}

// Validate checks the draw call can be rendered without overrunning any GPU
// buffer.
func (dc *DrawCall) Validate(maxMeshes int) error {
	if dc.Mesh == nil {
		return ErrNoMesh
	}
	if dc.Mesh.ID < 0 || dc.Mesh.ID >= maxMeshes {
		return fmt.Errorf("mesh %d (max %d): %w", dc.Mesh.ID, maxMeshes, ErrMeshIDOutOfRange)
	}
	if err := dc.Mesh.Validate(); err != nil {
		return err
	}

	n := len(dc.Models)
	if n == 0 {
		return ErrNoInstances
	}
	if c := len(dc.Colors); c > 1 && c != n {
		return fmt.Errorf("%d colors for %d models: %w", c, n, ErrShapeMismatch)
	}
	if c := len(dc.TextureIndices); c > 1 && c != n {
		return fmt.Errorf("%d texture indices for %d models: %w", c, n, ErrShapeMismatch)
	}
	if (dc.Shadow || dc.Volumetric) && dc.Lighting == nil {
		return ErrMissingLight
	}
	return nil
}

// Describe renders a table of the draw call and, when shader is non-nil, the
// uniform locations it resolved. Used for upload diagnostics.
func (dc *DrawCall) Describe(shader *Shader) string {
	var b strings.Builder

	b.WriteString("+-----------------------------------------------\n")
	fmt.Fprintf(&b, "| draw_call->id                 : %d\n", dc.ID)
	fmt.Fprintf(&b, "| draw_call->models            : %d (%s)\n", len(dc.Models), CardinalityOf(len(dc.Models)))
	fmt.Fprintf(&b, "| draw_call->colors            : %d (%s)\n", len(dc.Colors), CardinalityOf(len(dc.Colors)))
	fmt.Fprintf(&b, "| draw_call->texture_indices   : %d (%s)\n", len(dc.TextureIndices), CardinalityOf(len(dc.TextureIndices)))
	fmt.Fprintf(&b, "| draw_call->lighting          : %t\n", dc.Lighting != nil)
	fmt.Fprintf(&b, "| draw_call->shadow/vol/pixel  : %t/%t/%t\n", dc.Shadow, dc.Volumetric, dc.Pixelize)

	if m := dc.Mesh; m != nil {
		fmt.Fprintf(&b, "| mesh->id                      : %d\n", m.ID)
		fmt.Fprintf(&b, "| mesh->vertices                : %d\n", len(m.Vertices))
		fmt.Fprintf(&b, "| mesh->indices                 : %d\n", len(m.Indices))
		fmt.Fprintf(&b, "| mesh->uvs                     : %d\n", len(m.UVs))
		fmt.Fprintf(&b, "| mesh->normals                 : %d\n", len(m.Normals))
		fmt.Fprintf(&b, "| mesh->tangents                : %d\n", len(m.Tangents))
		fmt.Fprintf(&b, "| mesh->bitangents              : %d\n", len(m.Bitangents))
		fmt.Fprintf(&b, "| mesh->colors                  : %d\n", len(m.Colors))
	}

	if shader != nil {
		fmt.Fprintf(&b, "| shader->program               : %d\n", shader.Program)
		fmt.Fprintf(&b, "| shader->hash                  : %08x\n", shader.Fingerprint)
		for u := Uniform(0); u < uniformCount; u++ {
			fmt.Fprintf(&b, "| shader->uniform->%18s: %d\n", u, shader.Location(u))
		}
	}
	b.WriteString("+-----------------------------------------------\n")
	return b.String()
}
