package vulkan

import (
	"fmt"
	m "math"

	vk "github.com/goki/vulkan"

	"github.com/quillon/prism/viewer/core"
)

// Swapchain wraps the presentation chain plus its image views and
// framebuffers.
type Swapchain struct {
	ImageFormat       vk.SurfaceFormat
	MaxFramesInFlight uint8
	Handle            vk.Swapchain
	ImageCount        uint32
	Images            []vk.Image
	Views             []vk.ImageView
	Framebuffers      []vk.Framebuffer

	Extent vk.Extent2D
}

type SwapchainSupportInfo struct {
	Capabilities vk.SurfaceCapabilities
	Formats      []vk.SurfaceFormat
	PresentModes []vk.PresentMode
}

func SwapchainCreate(context *Context, width, height uint32) (*Swapchain, error) {
	return createSwapchain(context, width, height)
}

func (s *Swapchain) Recreate(context *Context, width, height uint32) (*Swapchain, error) {
	s.Destroy(context)
	return createSwapchain(context, width, height)
}

func (s *Swapchain) Destroy(context *Context) {
	vk.DeviceWaitIdle(context.Device.LogicalDevice)
	for _, fb := range s.Framebuffers {
		vk.DestroyFramebuffer(context.Device.LogicalDevice, fb, context.Allocator)
	}
	s.Framebuffers = nil
	// Only the views are destroyed; the images belong to the swapchain
	// and go down with it.
	for i := 0; i < int(s.ImageCount); i++ {
		vk.DestroyImageView(context.Device.LogicalDevice, s.Views[i], context.Allocator)
	}
	vk.DestroySwapchain(context.Device.LogicalDevice, s.Handle, context.Allocator)
}

// AcquireNextImageIndex fetches the next presentable image; returns
// false when the swapchain is out of date and must be recreated by the
// caller.
func (s *Swapchain) AcquireNextImageIndex(context *Context, timeoutNS uint64, imageAvailable vk.Semaphore) (uint32, bool) {
	var imageIndex uint32
	result := vk.AcquireNextImage(context.Device.LogicalDevice, s.Handle, timeoutNS, imageAvailable, vk.NullFence, &imageIndex)
	if result == vk.ErrorOutOfDate {
		return 0, false
	} else if result != vk.Success && result != vk.Suboptimal {
		core.LogError("failed to acquire swapchain image: %d", result)
		return 0, false
	}
	return imageIndex, true
}

// Present returns the image to the swapchain for presentation; returns
// false when the swapchain must be recreated.
func (s *Swapchain) Present(context *Context, presentQueue vk.Queue, renderComplete vk.Semaphore, imageIndex uint32) bool {
	presentInfo := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{renderComplete},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{s.Handle},
		PImageIndices:      []uint32{imageIndex},
	}

	result := vk.QueuePresent(presentQueue, &presentInfo)
	ok := true
	if result == vk.ErrorOutOfDate || result == vk.Suboptimal {
		ok = false
	} else if result != vk.Success {
		core.LogError("failed to present swapchain image: %d", result)
		ok = false
	}

	context.CurrentFrame = (context.CurrentFrame + 1) % uint32(s.MaxFramesInFlight)
	return ok
}

func createSwapchain(context *Context, width, height uint32) (*Swapchain, error) {
	swapchain := &Swapchain{MaxFramesInFlight: 2}
	support := &context.Device.SwapchainSupport

	// Preferred format, falling back to whatever the surface offers.
	found := false
	for _, format := range support.Formats {
		if format.Format == vk.FormatB8g8r8a8Unorm && format.ColorSpace == vk.ColorSpaceSrgbNonlinear {
			swapchain.ImageFormat = format
			found = true
			break
		}
	}
	if !found {
		swapchain.ImageFormat = support.Formats[0]
	}

	presentMode := vk.PresentModeFifo
	for _, mode := range support.PresentModes {
		if mode == vk.PresentModeMailbox {
			presentMode = mode
			break
		}
	}

	extent := vk.Extent2D{Width: width, Height: height}
	if support.Capabilities.CurrentExtent.Width != m.MaxUint32 {
		extent = support.Capabilities.CurrentExtent
	}
	min := support.Capabilities.MinImageExtent
	max := support.Capabilities.MaxImageExtent
	extent.Width = clampU32(extent.Width, min.Width, max.Width)
	extent.Height = clampU32(extent.Height, min.Height, max.Height)
	swapchain.Extent = extent

	imageCount := support.Capabilities.MinImageCount + 1
	if support.Capabilities.MaxImageCount > 0 && imageCount > support.Capabilities.MaxImageCount {
		imageCount = support.Capabilities.MaxImageCount
	}

	swapchainCreateInfo := vk.SwapchainCreateInfo{
		SType:            vk.StructureTypeSwapchainCreateInfo,
		Surface:          context.Surface,
		MinImageCount:    imageCount,
		ImageFormat:      swapchain.ImageFormat.Format,
		ImageColorSpace:  swapchain.ImageFormat.ColorSpace,
		ImageExtent:      extent,
		ImageArrayLayers: 1,
		ImageUsage:       vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		PreTransform:     support.Capabilities.CurrentTransform,
		CompositeAlpha:   vk.CompositeAlphaOpaqueBit,
		PresentMode:      presentMode,
		Clipped:          vk.True,
	}

	if context.Device.GraphicsQueueIndex != context.Device.PresentQueueIndex {
		swapchainCreateInfo.ImageSharingMode = vk.SharingModeConcurrent
		swapchainCreateInfo.QueueFamilyIndexCount = 2
		swapchainCreateInfo.PQueueFamilyIndices = []uint32{
			uint32(context.Device.GraphicsQueueIndex),
			uint32(context.Device.PresentQueueIndex),
		}
	} else {
		swapchainCreateInfo.ImageSharingMode = vk.SharingModeExclusive
	}

	var handle vk.Swapchain
	if res := vk.CreateSwapchain(context.Device.LogicalDevice, &swapchainCreateInfo, context.Allocator, &handle); res != vk.Success {
		return nil, fmt.Errorf("failed to create swapchain: %d", res)
	}
	swapchain.Handle = handle
	context.CurrentFrame = 0

	if res := vk.GetSwapchainImages(context.Device.LogicalDevice, swapchain.Handle, &swapchain.ImageCount, nil); res != vk.Success {
		return nil, fmt.Errorf("failed to get swapchain images: %d", res)
	}
	swapchain.Images = make([]vk.Image, swapchain.ImageCount)
	swapchain.Views = make([]vk.ImageView, swapchain.ImageCount)
	if res := vk.GetSwapchainImages(context.Device.LogicalDevice, swapchain.Handle, &swapchain.ImageCount, swapchain.Images); res != vk.Success {
		return nil, fmt.Errorf("failed to get swapchain images: %d", res)
	}

	for i := 0; i < int(swapchain.ImageCount); i++ {
		viewInfo := vk.ImageViewCreateInfo{
			SType:    vk.StructureTypeImageViewCreateInfo,
			Image:    swapchain.Images[i],
			ViewType: vk.ImageViewType2d,
			Format:   swapchain.ImageFormat.Format,
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
				LevelCount: 1,
				LayerCount: 1,
			},
		}
		if res := vk.CreateImageView(context.Device.LogicalDevice, &viewInfo, context.Allocator, &swapchain.Views[i]); res != vk.Success {
			return nil, fmt.Errorf("failed to create image view: %d", res)
		}
	}

	core.LogInfo("Swapchain created successfully.")
	return swapchain, nil
}

func clampU32(value, min, max uint32) uint32 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
