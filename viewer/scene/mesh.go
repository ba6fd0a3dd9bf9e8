package scene

import (
	"github.com/quillon/prism/viewer/math"
)

// Mesh is a renderable node with geometry extents and a material.
type Mesh struct {
	Node

	// LocalExtents bound the mesh geometry in model space.
	LocalExtents math.Extents3D

	Material *Material

	// EdgeOverlay marks an active outline/edge render-pass
	// registration. It must be disabled before the mesh is released so
	// no dangling pass registration survives the owning container.
	EdgeOverlay bool

	// InstanceCount > 1 marks the mesh as instanced.
	InstanceCount int

	// Backend bookkeeping: generation of the GPU upload, zero when the
	// mesh has never been uploaded.
	UploadGeneration uint32
}

func NewMesh(alloc *IDAllocator, name string, extents math.Extents3D) *Mesh {
	m := &Mesh{
		LocalExtents:  extents,
		InstanceCount: 1,
	}
	m.ID = alloc.Next()
	m.Name = name
	m.Kind = KindMesh
	m.Transform = math.TransformCreate()
	m.Visible = true
	m.Enabled = true
	return m
}

// WorldExtents recomputes the world matrix and returns the axis-aligned
// bounds of the mesh in world space.
func (m *Mesh) WorldExtents() math.Extents3D {
	return m.LocalExtents.Transformed(m.WorldMatrix())
}
