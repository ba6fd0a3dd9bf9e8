package viewer

import (
	"fmt"

	"github.com/quillon/prism/viewer/assets"
	"github.com/quillon/prism/viewer/core"
	"github.com/quillon/prism/viewer/platform"
	"github.com/quillon/prism/viewer/renderer"
	"github.com/quillon/prism/viewer/scene"
)

// taskQueueDepth bounds how many async completions can wait for the
// next frame.
const taskQueueDepth = 64

// Session is the top-level owner of the viewer: one rendering surface,
// one camera, one light rig, one reference grid and the load/swap
// controller. Exactly one Session exists per viewer instance; its
// lifetime runs from Startup to Shutdown.
//
// All state mutation happens on the frame loop. Work finishing on
// other goroutines re-enters through the task queue, drained once per
// frame by Step.
type Session struct {
	config    *Config
	callbacks *Callbacks

	bus     *core.EventBus
	surface *platform.Surface
	backend renderer.Backend

	camera      *scene.Camera
	lights      [2]*scene.Light
	grid        *scene.Grid
	environment *scene.Environment
	container   *scene.Container

	controller   *Controller
	synchronizer *Synchronizer
	visibility   *Visibility
	style        Style

	registry *assets.Registry
	alloc    *scene.IDAllocator
	watcher  *assets.Watcher

	clock   *core.Clock
	metrics *core.Metrics
	tasks   chan func()

	fpsAccum    float64
	lastElapsed float64
	quit        bool
}

// NewSession builds a session around the given backend. The backend is
// not initialized until Startup.
func NewSession(config *Config, backend renderer.Backend, callbacks *Callbacks) *Session {
	if config == nil {
		config = DefaultConfig()
	}
	s := &Session{
		config:     config,
		callbacks:  callbacks,
		bus:        core.NewEventBus(),
		backend:    backend,
		camera:     scene.NewCamera(),
		lights:     scene.NewLightRig(),
		grid:       scene.NewGrid(),
		registry:   assets.DefaultRegistry(),
		alloc:      scene.NewIDAllocator(),
		clock:      core.NewClock(),
		metrics:    core.NewMetrics(),
		visibility: NewVisibility(),
		tasks:      make(chan func(), taskQueueDepth),
	}
	s.environment = scene.NewEnvironment(scene.DefaultEnvironmentRadius)
	s.controller = newController(s)
	s.synchronizer = NewSynchronizer(callbacks)

	s.camera.AutoRotate = config.AutoRotate
	s.camera.SetClipPlanes(config.NearClip, config.FarClip)
	s.grid.Visible = config.GridVisible
	if style, err := ParseStyle(config.Style); err == nil {
		s.style = style
	} else {
		core.LogWarn("%v, using %s", err, StyleShaded)
	}
	return s
}

// Startup initializes the backend, optionally behind a real window.
// Headless sessions pass withWindow=false and get no surface.
func (s *Session) Startup(withWindow bool) error {
	if withWindow {
		s.surface = platform.NewSurface(s.bus)
		if err := s.surface.Startup(s.config.Title, uint32(s.config.X), uint32(s.config.Y),
			uint32(s.config.Width), uint32(s.config.Height)); err != nil {
			return err
		}
	}

	if err := s.backend.Initialize(s.surface, s.config.Title,
		uint32(s.config.Width), uint32(s.config.Height)); err != nil {
		return fmt.Errorf("backend initialization failed: %w", err)
	}

	if s.config.Watch {
		watcher, err := assets.NewWatcher(func(path string) {
			s.post(func() {
				core.LogInfo("reloading changed model %q", path)
				s.controller.Load(assets.Source{Identifier: path})
			})
		})
		if err != nil {
			core.LogWarn("file watching unavailable: %v", err)
		} else {
			s.watcher = watcher
		}
	}

	s.registerInputHandlers()
	s.clock.Start()
	s.lastElapsed = 0
	core.LogInfo("session started")
	return nil
}

func (s *Session) registerInputHandlers() {
	s.bus.Register(core.EventQuit, s, func(code core.EventCode, data core.EventContext) bool {
		s.quit = true
		return true
	})
	s.bus.Register(core.EventResized, s, func(code core.EventCode, data core.EventContext) bool {
		if err := s.backend.Resized(data.U32[0], data.U32[1]); err != nil {
			core.LogWarn("backend resize failed: %v", err)
		}
		return false
	})
	s.bus.Register(core.EventMouseDragged, s, func(code core.EventCode, data core.EventContext) bool {
		s.camera.Orbit(data.F32[0]*0.005, data.F32[1]*0.005)
		return false
	})
	s.bus.Register(core.EventMouseWheel, s, func(code core.EventCode, data core.EventContext) bool {
		s.camera.Zoom(data.F32[0] * s.camera.Radius * 0.1)
		return false
	})
	s.bus.Register(core.EventKeyPressed, s, func(code core.EventCode, data core.EventContext) bool {
		switch data.U32[0] {
		case ' ':
			s.RequestPlay(!s.synchronizer.IsPlaying())
		case 'F':
			s.RequestFocus()
		case 'G':
			s.SetGridVisible(!s.grid.Visible)
		case 'R':
			s.camera.AutoRotate = !s.camera.AutoRotate
		}
		return false
	})
}

// Run drives the frame loop until the window closes or quit is
// requested.
func (s *Session) Run() error {
	for !s.quit {
		if s.surface != nil {
			s.surface.PumpMessages()
			if s.surface.ShouldClose() {
				break
			}
		}

		s.clock.Update()
		elapsed := s.clock.Elapsed()
		delta := elapsed - s.lastElapsed
		s.lastElapsed = elapsed

		s.Step(delta)
	}
	return nil
}

// Step runs one frame: drain completed async work, advance the camera
// and animations, then render. Everything here must be non-blocking.
func (s *Session) Step(deltaTime float64) {
	s.drainTasks()

	s.camera.Advance(deltaTime)
	s.synchronizer.Tick(deltaTime)

	if err := s.backend.BeginFrame(deltaTime); err != nil {
		// Skipped frames (swapchain recreation) land here too; the
		// next frame retries.
		core.LogDebug("frame not rendered: %v", err)
	} else if err := s.backend.EndFrame(deltaTime); err != nil {
		core.LogWarn("frame submission failed: %v", err)
	}

	s.metrics.Update(deltaTime)
	s.fpsAccum += deltaTime
	if s.fpsAccum >= 1.0 {
		s.fpsAccum -= 1.0
		s.callbacks.emitFpsSample(s.metrics.FPS())
	}
}

// post schedules fn on the frame loop.
// post never blocks the caller. Completions beyond the queue depth are
// dropped with a warning rather than wedging loader goroutines.
func (s *Session) post(fn func()) {
	select {
	case s.tasks <- fn:
	default:
		core.LogWarn("task queue full, dropping completion")
	}
}

func (s *Session) drainTasks() {
	for {
		select {
		case fn := <-s.tasks:
			fn()
		default:
			return
		}
	}
}

// LoadRequest loads a model from a path or URL, superseding any load
// in flight.
func (s *Session) LoadRequest(identifier, formatHint string) {
	s.controller.Load(assets.Source{Identifier: identifier, FormatHint: formatHint})
}

// LoadData loads a model from an in-memory payload. The format hint is
// required, since there is no extension-bearing identifier to infer
// from.
func (s *Session) LoadData(name string, data []byte, formatHint string) {
	s.controller.Load(assets.Source{Identifier: name, Data: data, FormatHint: formatHint})
}

// ClearModel unloads the current model and resets the session to its
// default state.
func (s *Session) ClearModel() {
	s.controller.Load(assets.Source{})
}

// SetRenderingStyle changes the global style and restyles the current
// container in full.
func (s *Session) SetRenderingStyle(style Style) {
	s.style = style
	ApplyStyle(style, s.container)
}

// SetVisibility hides or shows a single mesh of the current container.
func (s *Session) SetVisibility(meshID uint32, hidden bool) {
	s.visibility.SetHidden(meshID, hidden)
	s.visibility.Apply(s.container)
}

// SetSolo shows exactly the given mesh, hiding all others.
func (s *Session) SetSolo(meshID uint32) {
	s.visibility.Solo(meshID)
	s.visibility.Apply(s.container)
}

// ClearSolo restores the visibility state recorded before the solo.
func (s *Session) ClearSolo() {
	s.visibility.ClearSolo()
	s.visibility.Apply(s.container)
}

// RequestFocus reframes the camera on the current model, exactly as on
// load.
func (s *Session) RequestFocus() {
	var meshes []*scene.Mesh
	if s.container != nil {
		meshes = s.container.Meshes
	}
	s.environment = FrameScene(s.camera, s.grid, s.environment, meshes)
}

func (s *Session) RequestPlay(play bool) {
	s.synchronizer.Play(play)
}

func (s *Session) RequestSeek(percent float64) {
	s.synchronizer.Seek(percent, false)
}

func (s *Session) SetClippingPlanes(near, far float32) {
	s.camera.SetClipPlanes(near, far)
}

func (s *Session) SetGridVisible(visible bool) {
	s.grid.Visible = visible
}

func (s *Session) Camera() *scene.Camera {
	return s.camera
}

func (s *Session) Grid() *scene.Grid {
	return s.grid
}

// Container returns the currently attached container, nil when no
// model is loaded.
func (s *Session) Container() *scene.Container {
	return s.container
}

func (s *Session) watchPath(path string) {
	if s.watcher == nil {
		return
	}
	if err := s.watcher.Watch(path); err != nil {
		core.LogWarn("cannot watch %q: %v", path, err)
	}
}

// disposeContainer detaches and releases the current container,
// releasing its GPU uploads first.
func (s *Session) disposeContainer() {
	if s.container == nil {
		return
	}
	for _, mesh := range s.container.Meshes {
		s.backend.ReleaseMesh(mesh)
	}
	s.container.Dispose()
	s.container = nil
}

// Shutdown tears the session down: container, environment, watcher,
// backend, surface, in that order.
func (s *Session) Shutdown() {
	s.disposeContainer()
	if s.environment != nil {
		s.environment.Dispose()
		s.environment = nil
	}
	if s.watcher != nil {
		_ = s.watcher.Close()
		s.watcher = nil
	}
	if err := s.backend.Shutdown(); err != nil {
		core.LogWarn("backend shutdown: %v", err)
	}
	if s.surface != nil {
		_ = s.surface.Shutdown()
		s.surface = nil
	}
	core.LogInfo("session shut down")
}
