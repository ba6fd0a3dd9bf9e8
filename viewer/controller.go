package viewer

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/quillon/prism/viewer/assets"
	"github.com/quillon/prism/viewer/core"
	"github.com/quillon/prism/viewer/scene"
)

// Controller orchestrates the asset load/swap lifecycle: it supersedes
// in-flight loads, disposes the previous container before a new load
// is issued, and wires the framer, style applier, extractor and
// animation synchronizer over each container that survives to
// attachment.
//
// The load token is a generation counter, not a boolean, so any number
// of rapid supersessions resolve correctly: a finished load is only
// attached when its generation still matches the counter, otherwise
// its container is disposed and no callback fires.
type Controller struct {
	session    *Session
	generation atomic.Uint64
}

func newController(session *Session) *Controller {
	return &Controller{session: session}
}

// Load issues a new load request, superseding any in-flight one. It
// must be called from the session frame loop.
func (c *Controller) Load(src assets.Source) {
	generation := c.generation.Add(1)
	s := c.session

	// Stale geometry must never render alongside the new model, so the
	// previous container goes before the load is even issued.
	s.disposeContainer()
	if s.environment != nil {
		s.environment.Dispose()
	}
	s.environment = scene.NewEnvironment(scene.DefaultEnvironmentRadius)

	// Derived state empties out immediately so no stale hierarchy or
	// timeline lingers while the load is in flight.
	s.visibility.Clear()
	s.callbacks.emitHierarchy(nil)
	s.callbacks.emitMaterials(nil)
	s.synchronizer.Init(nil)

	if src.IsEmpty() {
		// "No model" is a valid terminal state, not an error.
		s.camera.Reset()
		s.grid.OffsetY = 0
		s.watchPath("")
		return
	}

	loader, err := s.registry.Resolve(src)
	if err != nil {
		c.fail(src, err)
		return
	}

	core.LogInfo("loading model %q (format %q)", src.Identifier, src.Format())
	go func() {
		// A panicking loader must resolve like any other failure so the
		// session survives malformed input.
		defer func() {
			if r := recover(); r != nil {
				s.post(func() {
					if generation != c.generation.Load() {
						return
					}
					c.fail(src, fmt.Errorf("loader panic: %v", r))
				})
			}
		}()
		container, loadErr := loader.Load(context.Background(), src, s.alloc)
		s.post(func() {
			if generation != c.generation.Load() {
				// Superseded while in flight: dispose, no callbacks.
				if container != nil {
					container.Dispose()
				}
				core.LogDebug("discarding stale load result for %q", src.Identifier)
				return
			}
			if loadErr != nil {
				c.fail(src, loadErr)
				return
			}
			c.attach(src, container)
		})
	}()
}

// attach adds a surviving container to the scene and derives all view
// state from it: framing first (style and visibility depend on final
// transforms), then style, extraction and animation wiring.
func (c *Controller) attach(src assets.Source, container *scene.Container) {
	s := c.session
	s.container = container

	for _, mesh := range container.Meshes {
		if err := s.backend.UploadMesh(mesh); err != nil {
			core.LogWarn("mesh upload failed for %q: %v", mesh.Name, err)
		}
	}

	s.environment = FrameScene(s.camera, s.grid, s.environment, container.Meshes)
	ApplyStyle(s.style, container)
	s.visibility.Apply(container)
	s.callbacks.emitHierarchy(ExtractHierarchy(container.Roots()))
	s.callbacks.emitMaterials(ExtractMaterials(container))
	s.synchronizer.Init(container.Groups)

	if !src.IsEmbedded() && !src.IsRemote() {
		s.watchPath(src.Identifier)
	} else {
		s.watchPath("")
	}

	core.LogInfo("model %q attached: %d meshes, %d materials, %d animation groups",
		src.Identifier, len(container.Meshes), len(container.Materials), len(container.Groups))
	s.callbacks.emitLoaded(true, "")
}

// fail reports a terminal load failure. The session stays usable and a
// new request may follow; there is no automatic retry.
func (c *Controller) fail(src assets.Source, err error) {
	s := c.session
	message := err.Error()
	if src.IsEmbedded() && assets.SiblingDependentFormat(src.Format()) {
		message = fmt.Sprintf("%s (sibling resource files such as material libraries cannot be resolved for in-memory sources)", message)
	}
	core.LogError("model load failed: %s", message)

	s.camera.Reset()
	s.grid.OffsetY = 0
	if s.environment != nil {
		s.environment.Dispose()
	}
	s.environment = scene.NewEnvironment(scene.DefaultEnvironmentRadius)
	s.watchPath("")

	s.callbacks.emitLoaded(false, message)
}
