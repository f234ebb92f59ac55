package resources

import (
	"sync"

	"github.com/spaghettifunk/ember/engine/renderer/metadata"
)

type slotKey struct {
	id   metadata.MeshID
	slot metadata.BufferSlot
}

// LocalContext is an in-memory ResourceContext. It backs headless runs
// and tests, and is the reference for the registration semantics the
// real device contexts must honor: buffers are copied on creation and
// never mutated afterwards.
type LocalContext struct {
	mu       sync.RWMutex
	buffers  map[metadata.BufferHandle]localBuffer
	registry map[slotKey]metadata.BufferHandle
	created  uint64
}

type localBuffer struct {
	usage metadata.BufferUsage
	data  []byte
}

func NewLocalContext() *LocalContext {
	return &LocalContext{
		buffers:  make(map[metadata.BufferHandle]localBuffer),
		registry: make(map[slotKey]metadata.BufferHandle),
	}
}

func (c *LocalContext) BufferHandle(id metadata.MeshID, slot metadata.BufferSlot) (metadata.BufferHandle, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	handle, ok := c.registry[slotKey{id: id, slot: slot}]
	return handle, ok
}

func (c *LocalContext) CreateBuffer(usage metadata.BufferUsage, data []byte) (metadata.BufferHandle, error) {
	stored := make([]byte, len(data))
	copy(stored, data)

	c.mu.Lock()
	defer c.mu.Unlock()

	handle := metadata.NewBufferHandle()
	c.buffers[handle] = localBuffer{usage: usage, data: stored}
	c.created++
	return handle, nil
}

func (c *LocalContext) RegisterBuffer(id metadata.MeshID, slot metadata.BufferSlot, handle metadata.BufferHandle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := slotKey{id: id, slot: slot}
	if _, exists := c.registry[key]; exists {
		// First registration wins; registered buffers are immutable.
		return
	}
	c.registry[key] = handle
}

// BufferData returns the bytes uploaded for a handle. Intended for
// inspection in tests and tooling.
func (c *LocalContext) BufferData(handle metadata.BufferHandle) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	buffer, ok := c.buffers[handle]
	if !ok {
		return nil, false
	}
	return buffer.data, true
}

// CreateCount returns how many buffers have been created so far.
func (c *LocalContext) CreateCount() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.created
}
