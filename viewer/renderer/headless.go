package renderer

import (
	"fmt"

	"github.com/quillon/prism/viewer/platform"
	"github.com/quillon/prism/viewer/scene"
)

// Headless is a backend without a device: it tracks uploads and frame
// counts but draws nothing. Used by tests and for running the session
// on machines without a GPU.
type Headless struct {
	initialized bool
	frames      uint64
	uploads     map[uint32]bool
	nextUpload  uint32
}

func NewHeadless() *Headless {
	return &Headless{uploads: make(map[uint32]bool)}
}

func (h *Headless) Initialize(surface *platform.Surface, appName string, width, height uint32) error {
	h.initialized = true
	return nil
}

func (h *Headless) Shutdown() error {
	h.initialized = false
	return nil
}

func (h *Headless) Resized(width, height uint32) error {
	return nil
}

func (h *Headless) BeginFrame(deltaTime float64) error {
	if !h.initialized {
		return fmt.Errorf("headless backend not initialized")
	}
	return nil
}

func (h *Headless) EndFrame(deltaTime float64) error {
	h.frames++
	return nil
}

func (h *Headless) SetClearColor(r, g, b, a float32) {}

func (h *Headless) UploadMesh(mesh *scene.Mesh) error {
	h.nextUpload++
	mesh.UploadGeneration = h.nextUpload
	h.uploads[mesh.ID] = true
	return nil
}

func (h *Headless) ReleaseMesh(mesh *scene.Mesh) {
	delete(h.uploads, mesh.ID)
	mesh.UploadGeneration = 0
}

// Frames reports how many frames have completed.
func (h *Headless) Frames() uint64 {
	return h.frames
}

// UploadedCount reports how many meshes are currently resident.
func (h *Headless) UploadedCount() int {
	return len(h.uploads)
}
