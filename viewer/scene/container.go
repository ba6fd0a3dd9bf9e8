package scene

import (
	"github.com/google/uuid"
)

// Container is the set of meshes, materials, animation groups and nodes
// produced by one successful load. A container is exclusively owned by
// the session once attached; it is disposed in full before the next
// container is created or on teardown, and never partially shared.
type Container struct {
	ID uuid.UUID

	// Root is the loader's internal root node; its children are the
	// user-visible roots of the loaded model.
	Root *Node

	Meshes    []*Mesh
	Materials []*Material
	Groups    []*AnimationGroup

	disposed     bool
	disposeCalls int
}

func NewContainer(root *Node) *Container {
	return &Container{
		ID:   uuid.New(),
		Root: root,
	}
}

// Roots returns the user-visible root nodes of the model.
func (c *Container) Roots() []*Node {
	if c.Root == nil {
		return nil
	}
	return c.Root.Children
}

// Dispose releases the container: edge overlays are disabled first so
// no render-pass registration dangles, then all contents are dropped.
// Disposing twice is a no-op beyond the call counter.
func (c *Container) Dispose() {
	c.disposeCalls++
	if c.disposed {
		return
	}
	for _, m := range c.Meshes {
		m.EdgeOverlay = false
		m.UploadGeneration = 0
	}
	c.Meshes = nil
	c.Materials = nil
	c.Groups = nil
	c.Root = nil
	c.disposed = true
}

func (c *Container) Disposed() bool {
	return c.disposed
}

// DisposeCalls reports how many times Dispose has been invoked.
func (c *Container) DisposeCalls() int {
	return c.disposeCalls
}

// MeshByID finds a mesh by its node identifier.
func (c *Container) MeshByID(id uint32) *Mesh {
	for _, m := range c.Meshes {
		if m.ID == id {
			return m
		}
	}
	return nil
}
