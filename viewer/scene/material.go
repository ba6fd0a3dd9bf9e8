package scene

// MaterialKind is the coarse material classification surfaced in the
// material inventory.
type MaterialKind string

const (
	MaterialStandard MaterialKind = "StandardMaterial"
	MaterialPBR      MaterialKind = "PBRMaterial"
	MaterialMulti    MaterialKind = "MultiMaterial"
)

// Material represents the shading state of a surface. Sub is populated
// for composite materials, whose own flags are ignored by the renderer.
type Material struct {
	ID   uint32
	Name string
	Kind MaterialKind

	Wireframe bool
	Unlit     bool
	Alpha     float32
	// AlphaFromTexture marks materials whose transparency is driven by
	// a texture's alpha channel; the style applier preserves their
	// alpha mode instead of resetting it to opaque.
	AlphaFromTexture bool

	Sub []*Material

	// Generation is bumped by MarkDirty so the renderer knows to
	// recompile shading state.
	Generation uint32
}

func NewMaterial(alloc *IDAllocator, name string, kind MaterialKind) *Material {
	return &Material{
		ID:    alloc.Next(),
		Name:  name,
		Kind:  kind,
		Alpha: 1.0,
	}
}

func NewMultiMaterial(alloc *IDAllocator, name string, sub []*Material) *Material {
	m := NewMaterial(alloc, name, MaterialMulti)
	m.Sub = sub
	return m
}

// MarkDirty signals the renderer that shading state must be recompiled.
func (m *Material) MarkDirty() {
	m.Generation++
}
