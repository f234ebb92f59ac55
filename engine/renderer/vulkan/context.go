package vulkan

import (
	"fmt"
	"sync"
	"unsafe"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/ember/engine/core"
	"github.com/spaghettifunk/ember/engine/renderer/metadata"
)

type slotKey struct {
	id   metadata.MeshID
	slot metadata.BufferSlot
}

type deviceBuffer struct {
	buffer vk.Buffer
	memory vk.DeviceMemory
	size   vk.DeviceSize
}

// Context is the Vulkan-backed resource context. It owns the buffers
// it creates and the (mesh identity, slot) handle registry; device and
// instance bring-up belong to the host renderer, which passes an
// already-created logical device here.
type Context struct {
	Device         vk.Device
	PhysicalDevice vk.PhysicalDevice
	Allocator      *vk.AllocationCallbacks

	mu       sync.Mutex
	buffers  map[metadata.BufferHandle]*deviceBuffer
	registry map[slotKey]metadata.BufferHandle
}

func NewContext(device vk.Device, physicalDevice vk.PhysicalDevice, allocator *vk.AllocationCallbacks) *Context {
	return &Context{
		Device:         device,
		PhysicalDevice: physicalDevice,
		Allocator:      allocator,
		buffers:        make(map[metadata.BufferHandle]*deviceBuffer),
		registry:       make(map[slotKey]metadata.BufferHandle),
	}
}

func (c *Context) BufferHandle(id metadata.MeshID, slot metadata.BufferSlot) (metadata.BufferHandle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	handle, ok := c.registry[slotKey{id: id, slot: slot}]
	return handle, ok
}

// CreateBuffer allocates a host-visible device buffer and uploads the
// data into it. Packed mesh buffers are written once and never
// mutated, so no staging buffer is used here.
// TODO: route uploads through a staging buffer once the transfer queue
// is wired up.
func (c *Context) CreateBuffer(usage metadata.BufferUsage, data []byte) (metadata.BufferHandle, error) {
	usageFlags := vk.BufferUsageFlags(vk.BufferUsageVertexBufferBit)
	if usage == metadata.BufferUsageIndex {
		usageFlags = vk.BufferUsageFlags(vk.BufferUsageIndexBufferBit)
	}

	bufferCreateInfo := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        vk.DeviceSize(len(data)),
		Usage:       usageFlags,
		SharingMode: vk.SharingModeExclusive,
	}
	var buffer vk.Buffer
	if res := vk.CreateBuffer(c.Device, &bufferCreateInfo, c.Allocator, &buffer); res != vk.Success {
		return metadata.NilBufferHandle, fmt.Errorf("vkCreateBuffer failed with %d", res)
	}

	var requirements vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(c.Device, buffer, &requirements)
	requirements.Deref()

	memoryIndex := c.findMemoryIndex(
		requirements.MemoryTypeBits,
		uint32(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit),
	)
	if memoryIndex < 0 {
		vk.DestroyBuffer(c.Device, buffer, c.Allocator)
		return metadata.NilBufferHandle, fmt.Errorf("no host-visible memory type for buffer")
	}

	allocateInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  requirements.Size,
		MemoryTypeIndex: uint32(memoryIndex),
	}
	var memory vk.DeviceMemory
	if res := vk.AllocateMemory(c.Device, &allocateInfo, c.Allocator, &memory); res != vk.Success {
		vk.DestroyBuffer(c.Device, buffer, c.Allocator)
		return metadata.NilBufferHandle, fmt.Errorf("vkAllocateMemory failed with %d", res)
	}
	if res := vk.BindBufferMemory(c.Device, buffer, memory, 0); res != vk.Success {
		vk.FreeMemory(c.Device, memory, c.Allocator)
		vk.DestroyBuffer(c.Device, buffer, c.Allocator)
		return metadata.NilBufferHandle, fmt.Errorf("vkBindBufferMemory failed with %d", res)
	}

	var mapped unsafe.Pointer
	if res := vk.MapMemory(c.Device, memory, 0, requirements.Size, 0, &mapped); res != vk.Success {
		vk.FreeMemory(c.Device, memory, c.Allocator)
		vk.DestroyBuffer(c.Device, buffer, c.Allocator)
		return metadata.NilBufferHandle, fmt.Errorf("vkMapMemory failed with %d", res)
	}
	vk.Memcopy(mapped, data)
	vk.UnmapMemory(c.Device, memory)

	handle := metadata.NewBufferHandle()
	c.mu.Lock()
	c.buffers[handle] = &deviceBuffer{
		buffer: buffer,
		memory: memory,
		size:   vk.DeviceSize(len(data)),
	}
	c.mu.Unlock()
	return handle, nil
}

func (c *Context) RegisterBuffer(id metadata.MeshID, slot metadata.BufferSlot, handle metadata.BufferHandle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := slotKey{id: id, slot: slot}
	if _, exists := c.registry[key]; exists {
		// First registration wins; registered buffers are immutable.
		return
	}
	c.registry[key] = handle
}

// Buffer returns the Vulkan buffer behind a handle, for binding at
// draw time.
func (c *Context) Buffer(handle metadata.BufferHandle) (vk.Buffer, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	buffer, ok := c.buffers[handle]
	if !ok {
		return nil, false
	}
	return buffer.buffer, true
}

// Destroy frees every buffer and its memory. The owning renderer must
// guarantee the device is idle first.
func (c *Context) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for handle, buffer := range c.buffers {
		vk.DestroyBuffer(c.Device, buffer.buffer, c.Allocator)
		vk.FreeMemory(c.Device, buffer.memory, c.Allocator)
		delete(c.buffers, handle)
	}
	c.registry = make(map[slotKey]metadata.BufferHandle)
}

func (c *Context) findMemoryIndex(typeFilter, propertyFlags uint32) int32 {
	var memoryProperties vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(c.PhysicalDevice, &memoryProperties)
	memoryProperties.Deref()

	for i := uint32(0); i < memoryProperties.MemoryTypeCount; i++ {
		// Check each memory type to see if its bit is set to 1.
		memoryProperties.MemoryTypes[i].Deref()
		if (typeFilter&(1<<i)) != 0 && (uint32(memoryProperties.MemoryTypes[i].PropertyFlags)&propertyFlags) == propertyFlags {
			return int32(i)
		}
	}
	core.LogWarn("Unable to find suitable memory type!")
	return -1
}
