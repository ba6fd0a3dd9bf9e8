package vulkan

import (
	vk "github.com/goki/vulkan"
)

// Context groups the Vulkan objects shared across the backend.
type Context struct {
	Instance  vk.Instance
	Surface   vk.Surface
	Allocator *vk.AllocationCallbacks

	Device    Device
	Swapchain *Swapchain

	FramebufferWidth  uint32
	FramebufferHeight uint32

	CurrentFrame uint32
	ImageIndex   uint32
}
