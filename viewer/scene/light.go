package scene

import (
	"github.com/quillon/prism/viewer/math"
)

// The session light rig is fixed: one key light and one fill light.
// Their names identify them as helper nodes during hierarchy extraction.
const (
	KeyLightName  = "prism.light.key"
	FillLightName = "prism.light.fill"
)

type LightKind int

const (
	LightDirectional LightKind = iota
	LightHemispheric
)

// Light is a scene light. The rig lights are mutated in place across
// loads, never recreated.
type Light struct {
	Name      string
	Kind      LightKind
	Direction math.Vec3
	Intensity float32
}

// NewLightRig returns the fixed two-light rig used by every session.
func NewLightRig() [2]*Light {
	return [2]*Light{
		{
			Name:      KeyLightName,
			Kind:      LightDirectional,
			Direction: math.Vec3{X: -0.5, Y: -1, Z: -0.3}.Normalized(),
			Intensity: 1.0,
		},
		{
			Name:      FillLightName,
			Kind:      LightHemispheric,
			Direction: math.NewVec3Up(),
			Intensity: 0.6,
		},
	}
}
