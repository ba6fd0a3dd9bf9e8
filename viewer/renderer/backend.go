package renderer

import (
	"github.com/quillon/prism/viewer/platform"
	"github.com/quillon/prism/viewer/scene"
)

// Backend abstracts the rendering surface. The session drives exactly
// one backend through a single continuous frame loop; all calls happen
// on that loop and must be non-blocking.
type Backend interface {
	Initialize(surface *platform.Surface, appName string, width, height uint32) error
	Shutdown() error
	Resized(width, height uint32) error

	BeginFrame(deltaTime float64) error
	EndFrame(deltaTime float64) error

	SetClearColor(r, g, b, a float32)

	// UploadMesh stages mesh geometry on the device; ReleaseMesh frees
	// it. ReleaseMesh on a never-uploaded mesh is a no-op.
	UploadMesh(mesh *scene.Mesh) error
	ReleaseMesh(mesh *scene.Mesh)
}
