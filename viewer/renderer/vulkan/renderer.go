package vulkan

import (
	"fmt"
	m "math"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/goki/vulkan"

	"github.com/quillon/prism/viewer/core"
	"github.com/quillon/prism/viewer/platform"
	"github.com/quillon/prism/viewer/scene"
)

// Renderer is the Vulkan presentation backend. It owns the instance,
// device, swapchain and per-frame sync objects and records one clear
// pass per frame.
type Renderer struct {
	surface *platform.Surface
	context *Context

	renderPass  vk.RenderPass
	clearColor  [4]float32
	cmdBuffers  []vk.CommandBuffer
	imageAvail  []vk.Semaphore
	queueDone   []vk.Semaphore
	inFlight    []vk.Fence
	imagesInUse []vk.Fence

	cachedWidth        uint32
	cachedHeight       uint32
	sizeGeneration     uint64
	sizeLastGeneration uint64
	recreating         bool

	uploads      map[uint32]bool
	uploadSerial uint32
}

func New() *Renderer {
	return &Renderer{
		context:    &Context{},
		clearColor: [4]float32{0.06, 0.06, 0.08, 1.0},
		uploads:    make(map[uint32]bool),
	}
}

func (r *Renderer) Initialize(surface *platform.Surface, appName string, width, height uint32) error {
	r.surface = surface

	procAddr := glfw.GetVulkanGetInstanceProcAddress()
	if procAddr == nil {
		return fmt.Errorf("vulkan loader not available")
	}
	vk.SetGetInstanceProcAddr(procAddr)
	if err := vk.Init(); err != nil {
		core.LogError("failed to initialize vulkan: %s", err)
		return err
	}

	r.context.Allocator = nil
	r.context.FramebufferWidth = width
	r.context.FramebufferHeight = height

	appInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         uint32(vk.MakeVersion(1, 0, 0)),
		ApplicationVersion: uint32(vk.MakeVersion(1, 0, 0)),
		PApplicationName:   safeString(appName),
		PEngineName:        safeString("Prism Viewer"),
	}

	requiredExtensions := []string{"VK_KHR_surface"}
	requiredExtensions = append(requiredExtensions, surface.GetRequiredExtensionNames()...)
	if runtime.GOOS == "darwin" {
		requiredExtensions = append(requiredExtensions,
			"VK_KHR_portability_enumeration",
			"VK_KHR_get_physical_device_properties2",
		)
	}

	createInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        appInfo,
		EnabledExtensionCount:   uint32(len(requiredExtensions)),
		PpEnabledExtensionNames: safeStrings(requiredExtensions),
	}

	if res := vk.CreateInstance(&createInfo, r.context.Allocator, &r.context.Instance); res != vk.Success {
		return fmt.Errorf("failed to create vulkan instance: %d", res)
	}
	if err := vk.InitInstance(r.context.Instance); err != nil {
		return err
	}
	core.LogInfo("Vulkan instance created.")

	surfacePtr, err := surface.Window.CreateWindowSurface(r.context.Instance, nil)
	if err != nil {
		core.LogError("failed to create window surface: %s", err)
		return err
	}
	r.context.Surface = vk.SurfaceFromPointer(surfacePtr)

	if err := DeviceCreate(r.context); err != nil {
		return err
	}

	sc, err := SwapchainCreate(r.context, width, height)
	if err != nil {
		return err
	}
	r.context.Swapchain = sc

	if err := r.createRenderPass(); err != nil {
		return err
	}
	if err := r.regenerateFramebuffers(); err != nil {
		return err
	}
	if err := r.createCommandBuffers(); err != nil {
		return err
	}
	if err := r.createSyncObjects(); err != nil {
		return err
	}

	core.LogInfo("Vulkan renderer initialized successfully.")
	return nil
}

func (r *Renderer) Shutdown() error {
	device := r.context.Device.LogicalDevice
	vk.DeviceWaitIdle(device)

	for i := range r.imageAvail {
		if r.imageAvail[i] != vk.NullSemaphore {
			vk.DestroySemaphore(device, r.imageAvail[i], r.context.Allocator)
		}
		if r.queueDone[i] != vk.NullSemaphore {
			vk.DestroySemaphore(device, r.queueDone[i], r.context.Allocator)
		}
		if r.inFlight[i] != vk.NullFence {
			vk.DestroyFence(device, r.inFlight[i], r.context.Allocator)
		}
	}
	r.imageAvail = nil
	r.queueDone = nil
	r.inFlight = nil
	r.imagesInUse = nil

	if len(r.cmdBuffers) > 0 {
		vk.FreeCommandBuffers(device, r.context.Device.GraphicsCommandPool, uint32(len(r.cmdBuffers)), r.cmdBuffers)
		r.cmdBuffers = nil
	}

	if r.renderPass != nil {
		vk.DestroyRenderPass(device, r.renderPass, r.context.Allocator)
		r.renderPass = nil
	}

	if r.context.Swapchain != nil {
		r.context.Swapchain.Destroy(r.context)
		r.context.Swapchain = nil
	}

	DeviceDestroy(r.context)

	if r.context.Surface != vk.NullSurface {
		vk.DestroySurface(r.context.Instance, r.context.Surface, r.context.Allocator)
		r.context.Surface = vk.NullSurface
	}

	vk.DestroyInstance(r.context.Instance, r.context.Allocator)
	return nil
}

func (r *Renderer) Resized(width, height uint32) error {
	r.cachedWidth = width
	r.cachedHeight = height
	r.sizeGeneration++
	return nil
}

func (r *Renderer) SetClearColor(red, green, blue, alpha float32) {
	r.clearColor = [4]float32{red, green, blue, alpha}
}

func (r *Renderer) BeginFrame(deltaTime float64) error {
	device := r.context.Device.LogicalDevice

	if r.recreating {
		vk.DeviceWaitIdle(device)
		return errFrameSkipped
	}

	if r.sizeGeneration != r.sizeLastGeneration {
		vk.DeviceWaitIdle(device)
		if err := r.recreateSwapchain(); err != nil {
			return err
		}
		return errFrameSkipped
	}

	fence := r.inFlight[r.context.CurrentFrame]
	if res := vk.WaitForFences(device, 1, []vk.Fence{fence}, vk.True, m.MaxUint64); res != vk.Success {
		return fmt.Errorf("in-flight fence wait failure: %d", res)
	}

	imageIndex, ok := r.context.Swapchain.AcquireNextImageIndex(r.context, m.MaxUint64, r.imageAvail[r.context.CurrentFrame])
	if !ok {
		r.sizeGeneration++
		return errFrameSkipped
	}
	r.context.ImageIndex = imageIndex

	buffer := r.cmdBuffers[imageIndex]
	vk.ResetCommandBuffer(buffer, 0)
	beginInfo := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
	}
	if res := vk.BeginCommandBuffer(buffer, &beginInfo); res != vk.Success {
		return fmt.Errorf("failed to begin command buffer: %d", res)
	}

	viewport := vk.Viewport{
		X:        0.0,
		Y:        0.0,
		Width:    float32(r.context.FramebufferWidth),
		Height:   float32(r.context.FramebufferHeight),
		MinDepth: 0.0,
		MaxDepth: 1.0,
	}
	scissor := vk.Rect2D{
		Extent: vk.Extent2D{
			Width:  r.context.FramebufferWidth,
			Height: r.context.FramebufferHeight,
		},
	}
	vk.CmdSetViewport(buffer, 0, 1, []vk.Viewport{viewport})
	vk.CmdSetScissor(buffer, 0, 1, []vk.Rect2D{scissor})

	clearValues := make([]vk.ClearValue, 1)
	clearValues[0].SetColor(r.clearColor[:])

	passBegin := vk.RenderPassBeginInfo{
		SType:           vk.StructureTypeRenderPassBeginInfo,
		RenderPass:      r.renderPass,
		Framebuffer:     r.context.Swapchain.Framebuffers[imageIndex],
		RenderArea:      vk.Rect2D{Extent: r.context.Swapchain.Extent},
		ClearValueCount: 1,
		PClearValues:    clearValues,
	}
	vk.CmdBeginRenderPass(buffer, &passBegin, vk.SubpassContentsInline)

	return nil
}

func (r *Renderer) EndFrame(deltaTime float64) error {
	device := r.context.Device.LogicalDevice
	buffer := r.cmdBuffers[r.context.ImageIndex]

	vk.CmdEndRenderPass(buffer)
	if res := vk.EndCommandBuffer(buffer); res != vk.Success {
		return fmt.Errorf("failed to end command buffer: %d", res)
	}

	// The previous frame may still be reading this image.
	if r.imagesInUse[r.context.ImageIndex] != vk.NullFence {
		vk.WaitForFences(device, 1, []vk.Fence{r.imagesInUse[r.context.ImageIndex]}, vk.True, m.MaxUint64)
	}
	r.imagesInUse[r.context.ImageIndex] = r.inFlight[r.context.CurrentFrame]
	vk.ResetFences(device, 1, []vk.Fence{r.inFlight[r.context.CurrentFrame]})

	submitInfo := vk.SubmitInfo{
		SType:                vk.StructureTypeSubmitInfo,
		CommandBufferCount:   1,
		PCommandBuffers:      []vk.CommandBuffer{buffer},
		WaitSemaphoreCount:   1,
		PWaitSemaphores:      []vk.Semaphore{r.imageAvail[r.context.CurrentFrame]},
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{r.queueDone[r.context.CurrentFrame]},
		PWaitDstStageMask:    []vk.PipelineStageFlags{vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit)},
	}

	if res := vk.QueueSubmit(r.context.Device.GraphicsQueue, 1, []vk.SubmitInfo{submitInfo}, r.inFlight[r.context.CurrentFrame]); res != vk.Success {
		return fmt.Errorf("queue submit failed: %d", res)
	}

	if !r.context.Swapchain.Present(r.context, r.context.Device.PresentQueue, r.queueDone[r.context.CurrentFrame], r.context.ImageIndex) {
		r.sizeGeneration++
	}
	return nil
}

func (r *Renderer) UploadMesh(mesh *scene.Mesh) error {
	r.uploadSerial++
	mesh.UploadGeneration = r.uploadSerial
	r.uploads[mesh.ID] = true
	return nil
}

func (r *Renderer) ReleaseMesh(mesh *scene.Mesh) {
	delete(r.uploads, mesh.ID)
	mesh.UploadGeneration = 0
}

// errFrameSkipped signals that the frame was intentionally not
// recorded; the caller drops the frame and tries again.
var errFrameSkipped = fmt.Errorf("frame skipped")

// IsFrameSkipped reports whether a BeginFrame error means "no frame
// this tick" rather than a failure.
func IsFrameSkipped(err error) bool {
	return err == errFrameSkipped
}

func (r *Renderer) createRenderPass() error {
	colorAttachment := vk.AttachmentDescription{
		Format:         r.context.Swapchain.ImageFormat.Format,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpClear,
		StoreOp:        vk.AttachmentStoreOpStore,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutUndefined,
		FinalLayout:    vk.ImageLayoutPresentSrc,
	}

	subpass := vk.SubpassDescription{
		PipelineBindPoint:    vk.PipelineBindPointGraphics,
		ColorAttachmentCount: 1,
		PColorAttachments: []vk.AttachmentReference{{
			Attachment: 0,
			Layout:     vk.ImageLayoutColorAttachmentOptimal,
		}},
	}

	dependency := vk.SubpassDependency{
		SrcSubpass:    vk.SubpassExternal,
		DstSubpass:    0,
		SrcStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		SrcAccessMask: 0,
		DstStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		DstAccessMask: vk.AccessFlags(vk.AccessColorAttachmentReadBit) | vk.AccessFlags(vk.AccessColorAttachmentWriteBit),
	}

	createInfo := vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: 1,
		PAttachments:    []vk.AttachmentDescription{colorAttachment},
		SubpassCount:    1,
		PSubpasses:      []vk.SubpassDescription{subpass},
		DependencyCount: 1,
		PDependencies:   []vk.SubpassDependency{dependency},
	}

	var pass vk.RenderPass
	if res := vk.CreateRenderPass(r.context.Device.LogicalDevice, &createInfo, r.context.Allocator, &pass); res != vk.Success {
		return fmt.Errorf("failed to create render pass: %d", res)
	}
	r.renderPass = pass
	return nil
}

func (r *Renderer) regenerateFramebuffers() error {
	sc := r.context.Swapchain
	sc.Framebuffers = make([]vk.Framebuffer, sc.ImageCount)
	for i := 0; i < int(sc.ImageCount); i++ {
		createInfo := vk.FramebufferCreateInfo{
			SType:           vk.StructureTypeFramebufferCreateInfo,
			RenderPass:      r.renderPass,
			AttachmentCount: 1,
			PAttachments:    []vk.ImageView{sc.Views[i]},
			Width:           sc.Extent.Width,
			Height:          sc.Extent.Height,
			Layers:          1,
		}
		if res := vk.CreateFramebuffer(r.context.Device.LogicalDevice, &createInfo, r.context.Allocator, &sc.Framebuffers[i]); res != vk.Success {
			return fmt.Errorf("failed to create framebuffer: %d", res)
		}
	}
	return nil
}

func (r *Renderer) createCommandBuffers() error {
	count := r.context.Swapchain.ImageCount
	allocInfo := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        r.context.Device.GraphicsCommandPool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: count,
	}
	r.cmdBuffers = make([]vk.CommandBuffer, count)
	if res := vk.AllocateCommandBuffers(r.context.Device.LogicalDevice, &allocInfo, r.cmdBuffers); res != vk.Success {
		return fmt.Errorf("failed to allocate command buffers: %d", res)
	}
	return nil
}

func (r *Renderer) createSyncObjects() error {
	device := r.context.Device.LogicalDevice
	frames := int(r.context.Swapchain.MaxFramesInFlight)
	r.imageAvail = make([]vk.Semaphore, frames)
	r.queueDone = make([]vk.Semaphore, frames)
	r.inFlight = make([]vk.Fence, frames)

	semaphoreInfo := vk.SemaphoreCreateInfo{SType: vk.StructureTypeSemaphoreCreateInfo}
	// The fence starts signaled so the first frame does not wait for a
	// frame that never ran.
	fenceInfo := vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
		Flags: vk.FenceCreateFlags(vk.FenceCreateSignaledBit),
	}

	for i := 0; i < frames; i++ {
		if res := vk.CreateSemaphore(device, &semaphoreInfo, r.context.Allocator, &r.imageAvail[i]); res != vk.Success {
			return fmt.Errorf("failed to create image-available semaphore: %d", res)
		}
		if res := vk.CreateSemaphore(device, &semaphoreInfo, r.context.Allocator, &r.queueDone[i]); res != vk.Success {
			return fmt.Errorf("failed to create queue-complete semaphore: %d", res)
		}
		if res := vk.CreateFence(device, &fenceInfo, r.context.Allocator, &r.inFlight[i]); res != vk.Success {
			return fmt.Errorf("failed to create in-flight fence: %d", res)
		}
	}

	r.imagesInUse = make([]vk.Fence, r.context.Swapchain.ImageCount)
	for i := range r.imagesInUse {
		r.imagesInUse[i] = vk.NullFence
	}
	return nil
}

func (r *Renderer) recreateSwapchain() error {
	if r.recreating {
		return nil
	}
	r.recreating = true
	defer func() { r.recreating = false }()

	device := r.context.Device.LogicalDevice
	vk.DeviceWaitIdle(device)

	width, height := r.cachedWidth, r.cachedHeight
	if width == 0 || height == 0 {
		// Minimized; keep the old swapchain until the window comes back.
		return nil
	}

	if err := querySwapchainSupport(r.context.Device.PhysicalDevice, r.context.Surface, &r.context.Device.SwapchainSupport); err != nil {
		return err
	}

	sc, err := r.context.Swapchain.Recreate(r.context, width, height)
	if err != nil {
		return err
	}
	r.context.Swapchain = sc
	r.context.FramebufferWidth = width
	r.context.FramebufferHeight = height

	if err := r.regenerateFramebuffers(); err != nil {
		return err
	}

	vk.FreeCommandBuffers(device, r.context.Device.GraphicsCommandPool, uint32(len(r.cmdBuffers)), r.cmdBuffers)
	if err := r.createCommandBuffers(); err != nil {
		return err
	}

	r.imagesInUse = make([]vk.Fence, r.context.Swapchain.ImageCount)
	for i := range r.imagesInUse {
		r.imagesInUse[i] = vk.NullFence
	}

	r.sizeLastGeneration = r.sizeGeneration
	core.LogInfo("Swapchain recreated: %dx%d", width, height)
	return nil
}

func safeString(s string) string {
	return s + "\x00"
}

func safeStrings(list []string) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = safeString(s)
	}
	return out
}
