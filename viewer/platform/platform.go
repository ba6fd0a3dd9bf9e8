package platform

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/quillon/prism/viewer/core"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

// Surface owns the application window and translates raw input into
// bus events. It never talks to the session directly.
type Surface struct {
	Window *glfw.Window

	bus *core.EventBus

	lastCursorX   float64
	lastCursorY   float64
	dragButton    int
	dragging      bool
	width, height uint32
}

func NewSurface(bus *core.EventBus) *Surface {
	return &Surface{bus: bus, dragButton: -1}
}

func (s *Surface) Startup(applicationName string, x, y, width, height uint32) error {
	if err := glfw.Init(); err != nil {
		core.LogError("failed to initialize glfw: %s", err)
		return err
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // Required for Vulkan.

	window, err := glfw.CreateWindow(int(width), int(height), applicationName, nil, nil)
	if err != nil {
		core.LogError("failed to create window: %s", err)
		return err
	}
	s.Window = window
	s.width = width
	s.height = height

	s.Window.SetKeyCallback(s.keyCallback)
	s.Window.SetMouseButtonCallback(s.mouseButtonCallback)
	s.Window.SetCursorPosCallback(s.cursorPosCallback)
	s.Window.SetScrollCallback(s.scrollCallback)
	s.Window.SetFramebufferSizeCallback(s.framebufferSizeCallback)
	s.Window.SetPos(int(x), int(y))
	s.Window.Show()

	return nil
}

func (s *Surface) Shutdown() error {
	glfw.Terminate()
	return nil
}

func (s *Surface) PumpMessages() {
	glfw.PollEvents()
}

func (s *Surface) ShouldClose() bool {
	return s.Window != nil && s.Window.ShouldClose()
}

// GetRequiredExtensionNames returns the Vulkan instance extensions the
// windowing system needs.
func (s *Surface) GetRequiredExtensionNames() []string {
	return s.Window.GetRequiredInstanceExtensions()
}

func (s *Surface) FramebufferSize() (uint32, uint32) {
	return s.width, s.height
}

func (s *Surface) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	if key == glfw.KeyEscape {
		s.bus.Fire(core.EventQuit, core.EventContext{})
		return
	}
	ctx := core.EventContext{}
	ctx.U32[0] = uint32(key)
	s.bus.Fire(core.EventKeyPressed, ctx)
}

func (s *Surface) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	switch action {
	case glfw.Press:
		s.dragging = true
		s.dragButton = int(button)
		s.lastCursorX, s.lastCursorY = w.GetCursorPos()
	case glfw.Release:
		s.dragging = false
		s.dragButton = -1
	}
}

func (s *Surface) cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	if !s.dragging {
		return
	}
	ctx := core.EventContext{}
	ctx.F32[0] = float32(xpos - s.lastCursorX)
	ctx.F32[1] = float32(ypos - s.lastCursorY)
	ctx.U32[0] = uint32(s.dragButton)
	s.lastCursorX = xpos
	s.lastCursorY = ypos
	s.bus.Fire(core.EventMouseDragged, ctx)
}

func (s *Surface) scrollCallback(w *glfw.Window, xoff, yoff float64) {
	ctx := core.EventContext{}
	ctx.F32[0] = float32(yoff)
	s.bus.Fire(core.EventMouseWheel, ctx)
}

func (s *Surface) framebufferSizeCallback(w *glfw.Window, width, height int) {
	s.width = uint32(width)
	s.height = uint32(height)
	ctx := core.EventContext{}
	ctx.U32[0] = uint32(width)
	ctx.U32[1] = uint32(height)
	s.bus.Fire(core.EventResized, ctx)
}
