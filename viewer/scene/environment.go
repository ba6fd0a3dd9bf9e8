package scene

// Environment naming used by helper-node filtering.
const (
	EnvironmentName = "prism.environment"
	SkyboxName      = "prism.skybox"
)

// DefaultEnvironmentRadius sizes the ambient proxy when no model is
// loaded or framing finds no geometry.
const DefaultEnvironmentRadius float32 = 20.0

// Environment is the ambient/environment lighting proxy. Unlike the
// camera and the light rig it is disposed and recreated per load or
// focus action, because its radius must match the current model scale.
type Environment struct {
	Radius   float32
	disposed bool
}

func NewEnvironment(radius float32) *Environment {
	if radius <= 0 {
		radius = DefaultEnvironmentRadius
	}
	return &Environment{Radius: radius}
}

func (e *Environment) Dispose() {
	e.disposed = true
}

func (e *Environment) Disposed() bool {
	return e.disposed
}
