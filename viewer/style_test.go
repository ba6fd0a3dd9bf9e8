package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillon/prism/viewer/scene"
)

func styleContainer(alloc *scene.IDAllocator) *scene.Container {
	container := scene.NewContainer(scene.NewNode(alloc, "__root__", scene.KindTransform))
	opaque := scene.NewMaterial(alloc, "paint", scene.MaterialPBR)
	glass := scene.NewMaterial(alloc, "glass", scene.MaterialPBR)
	glass.Alpha = 0.4
	glass.AlphaFromTexture = true
	multi := scene.NewMultiMaterial(alloc, "trim", []*scene.Material{
		scene.NewMaterial(alloc, "trim.0", scene.MaterialStandard),
		scene.NewMaterial(alloc, "trim.1", scene.MaterialStandard),
	})
	container.Materials = []*scene.Material{opaque, glass, multi}
	return container
}

type materialFlags struct {
	wireframe bool
	unlit     bool
	alpha     float32
}

func flagsOf(m *scene.Material) []materialFlags {
	out := []materialFlags{{m.Wireframe, m.Unlit, m.Alpha}}
	for _, sub := range m.Sub {
		out = append(out, flagsOf(sub)...)
	}
	return out
}

func TestApplyStyleShaded(t *testing.T) {
	alloc := scene.NewIDAllocator()
	container := styleContainer(alloc)

	ApplyStyle(StyleShaded, container)
	for _, m := range container.Materials {
		assert.False(t, m.Wireframe)
		assert.False(t, m.Unlit)
	}
	assert.Equal(t, float32(1.0), container.Materials[0].Alpha)
}

func TestApplyStyleWireframeIsFlat(t *testing.T) {
	alloc := scene.NewIDAllocator()
	container := styleContainer(alloc)

	ApplyStyle(StyleWireframe, container)
	for _, m := range container.Materials {
		assert.True(t, m.Wireframe)
		assert.True(t, m.Unlit)
	}
}

func TestApplyStyleNonShaded(t *testing.T) {
	alloc := scene.NewIDAllocator()
	container := styleContainer(alloc)

	ApplyStyle(StyleNonShaded, container)
	for _, m := range container.Materials {
		assert.False(t, m.Wireframe)
		assert.True(t, m.Unlit)
	}
}

func TestApplyStylePreservesTextureAlpha(t *testing.T) {
	alloc := scene.NewIDAllocator()
	container := styleContainer(alloc)

	ApplyStyle(StyleShaded, container)
	assert.Equal(t, float32(0.4), container.Materials[1].Alpha)
	ApplyStyle(StyleWireframe, container)
	assert.Equal(t, float32(0.4), container.Materials[1].Alpha)
}

func TestApplyStyleRoundTripRestoresFlags(t *testing.T) {
	alloc := scene.NewIDAllocator()
	container := styleContainer(alloc)

	ApplyStyle(StyleShaded, container)
	var before [][]materialFlags
	for _, m := range container.Materials {
		before = append(before, flagsOf(m))
	}

	ApplyStyle(StyleWireframe, container)
	ApplyStyle(StyleNonShaded, container)
	ApplyStyle(StyleShaded, container)

	for i, m := range container.Materials {
		assert.Equal(t, before[i], flagsOf(m), "material %s", m.Name)
	}
}

func TestApplyStyleRecursesIntoSubMaterials(t *testing.T) {
	alloc := scene.NewIDAllocator()
	container := styleContainer(alloc)
	multi := container.Materials[2]
	require.Len(t, multi.Sub, 2)

	ApplyStyle(StyleWireframe, container)
	for _, sub := range multi.Sub {
		assert.True(t, sub.Wireframe)
		assert.True(t, sub.Unlit)
	}
}

func TestApplyStyleMarksMaterialsDirty(t *testing.T) {
	alloc := scene.NewIDAllocator()
	container := styleContainer(alloc)
	gen := container.Materials[0].Generation

	ApplyStyle(StyleWireframe, container)
	assert.Greater(t, container.Materials[0].Generation, gen)
}

func TestParseStyleRoundTrip(t *testing.T) {
	for _, style := range []Style{StyleShaded, StyleNonShaded, StyleWireframe} {
		parsed, err := ParseStyle(style.String())
		require.NoError(t, err)
		assert.Equal(t, style, parsed)
	}

	_, err := ParseStyle("sketchy")
	assert.Error(t, err)
}
