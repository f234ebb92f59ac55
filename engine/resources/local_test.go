package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/ember/engine/renderer/metadata"
)

func TestCreateBufferCopiesData(t *testing.T) {
	context := NewLocalContext()

	data := []byte{1, 2, 3, 4}
	handle, err := context.CreateBuffer(metadata.BufferUsageVertex, data)
	require.NoError(t, err)

	data[0] = 99
	stored, ok := context.BufferData(handle)
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3, 4}, stored)
}

func TestBufferHandleLookup(t *testing.T) {
	context := NewLocalContext()
	id := metadata.NewMeshID()

	_, ok := context.BufferHandle(id, metadata.BufferSlotVertex)
	assert.False(t, ok)

	handle, err := context.CreateBuffer(metadata.BufferUsageVertex, []byte{1})
	require.NoError(t, err)
	context.RegisterBuffer(id, metadata.BufferSlotVertex, handle)

	resolved, ok := context.BufferHandle(id, metadata.BufferSlotVertex)
	require.True(t, ok)
	assert.Equal(t, handle, resolved)

	// The index slot of the same identity is independent.
	_, ok = context.BufferHandle(id, metadata.BufferSlotIndex)
	assert.False(t, ok)
}

func TestRegisterBufferFirstWins(t *testing.T) {
	context := NewLocalContext()
	id := metadata.NewMeshID()

	first, _ := context.CreateBuffer(metadata.BufferUsageVertex, []byte{1})
	second, _ := context.CreateBuffer(metadata.BufferUsageVertex, []byte{2})

	context.RegisterBuffer(id, metadata.BufferSlotVertex, first)
	context.RegisterBuffer(id, metadata.BufferSlotVertex, second)

	resolved, ok := context.BufferHandle(id, metadata.BufferSlotVertex)
	require.True(t, ok)
	assert.Equal(t, first, resolved)
}

func TestCreateCount(t *testing.T) {
	context := NewLocalContext()
	assert.Equal(t, uint64(0), context.CreateCount())

	context.CreateBuffer(metadata.BufferUsageVertex, []byte{1})
	context.CreateBuffer(metadata.BufferUsageIndex, []byte{2})
	assert.Equal(t, uint64(2), context.CreateCount())
}
