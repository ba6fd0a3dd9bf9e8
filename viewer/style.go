package viewer

import (
	"fmt"
	"strings"

	"github.com/quillon/prism/viewer/scene"
)

// Style selects how the loaded model's materials are rendered. It is
// global to the current container and re-applied in full whenever it
// changes or a new container loads.
type Style int

const (
	StyleShaded Style = iota
	StyleNonShaded
	StyleWireframe
)

func (s Style) String() string {
	switch s {
	case StyleNonShaded:
		return "non-shaded"
	case StyleWireframe:
		return "wireframe"
	default:
		return "shaded"
	}
}

func ParseStyle(value string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "shaded":
		return StyleShaded, nil
	case "non-shaded", "nonshaded", "unlit":
		return StyleNonShaded, nil
	case "wireframe":
		return StyleWireframe, nil
	}
	return StyleShaded, fmt.Errorf("unknown rendering style %q", value)
}

// ApplyStyle restyles every material of the container, recursing into
// the sub-materials of composites. It is a total function of (style,
// material) with no memory of the previous style: each material is
// reset to its baseline before the style is applied, so any two
// applications of the same style produce identical flags.
//
// The session's reference grid is not part of the container and is
// never restyled.
func ApplyStyle(style Style, container *scene.Container) {
	if container == nil {
		return
	}
	for _, material := range container.Materials {
		applyToMaterial(style, material)
	}
}

func applyToMaterial(style Style, material *scene.Material) {
	if material == nil {
		return
	}

	// Baseline: lit, solid fill, opaque. Texture-driven transparency
	// keeps its alpha mode.
	material.Wireframe = false
	material.Unlit = false
	if !material.AlphaFromTexture {
		material.Alpha = 1.0
	}

	switch style {
	case StyleNonShaded:
		material.Unlit = true
	case StyleWireframe:
		// Wireframe renders flat for legibility.
		material.Wireframe = true
		material.Unlit = true
	}

	material.MarkDirty()

	for _, sub := range material.Sub {
		applyToMaterial(style, sub)
	}
}
