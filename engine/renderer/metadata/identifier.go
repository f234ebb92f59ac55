package metadata

import "github.com/google/uuid"

// MeshID is the stable identity used to key cached GPU resources for
// a geometry asset.
type MeshID uuid.UUID

// BufferHandle is an opaque reference to a GPU-side buffer owned by a
// resource context.
type BufferHandle uuid.UUID

var (
	NilMeshID       = MeshID(uuid.Nil)
	NilBufferHandle = BufferHandle(uuid.Nil)
)

func NewMeshID() MeshID {
	return MeshID(uuid.New())
}

func NewBufferHandle() BufferHandle {
	return BufferHandle(uuid.New())
}

func (id MeshID) String() string {
	return uuid.UUID(id).String()
}

func (h BufferHandle) String() string {
	return uuid.UUID(h).String()
}
