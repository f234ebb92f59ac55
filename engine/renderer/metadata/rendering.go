package metadata

/** @brief The primitive topology a mesh is drawn with. */
type PrimitiveTopology int

const (
	PrimitiveTopologyPoint PrimitiveTopology = iota
	PrimitiveTopologyLine
	PrimitiveTopologyLineStrip
	PrimitiveTopologyTriangle
	PrimitiveTopologyTriangleStrip
)

func (t PrimitiveTopology) String() string {
	switch t {
	case PrimitiveTopologyPoint:
		return "point"
	case PrimitiveTopologyLine:
		return "line"
	case PrimitiveTopologyLineStrip:
		return "line_strip"
	case PrimitiveTopologyTriangle:
		return "triangle"
	case PrimitiveTopologyTriangleStrip:
		return "triangle_strip"
	}
	return "unknown"
}

/** @brief The integer width of a packed index buffer. */
type IndexFormat int

const (
	IndexFormatUint16 IndexFormat = iota
	IndexFormatUint32
)

// Size returns the byte size of one index of the format.
func (f IndexFormat) Size() uint32 {
	if f == IndexFormatUint16 {
		return 2
	}
	return 4
}

// BufferSlot classifies which cached buffer role a handle fills for a
// mesh identity.
type BufferSlot int

const (
	BufferSlotVertex BufferSlot = iota
	BufferSlotIndex
)

func (s BufferSlot) String() string {
	if s == BufferSlotVertex {
		return "vertex"
	}
	return "index"
}

// BufferUsage is passed to the resource context when a buffer is created.
type BufferUsage int

const (
	BufferUsageVertex BufferUsage = iota
	BufferUsageIndex
)

/** @brief The conventional binding name mesh buffers are attached under. */
const DefaultVertexBindingName string = "Vertex"

/**
 * @brief Associates packed mesh buffers with a named vertex binding
 * in a pipeline.
 */
type VertexBufferBinding struct {
	Name         string
	VertexBuffer BufferHandle
	IndexBuffer  BufferHandle
	/** @brief False for unindexed draws; IndexBuffer is then meaningless. */
	HasIndices bool
}

/**
 * @brief The per-entity render configuration produced by the
 * provisioning systems: the resolved buffer binding plus the pipeline
 * specialization derived from the mesh.
 */
type Renderable struct {
	/** @brief The identity of the mesh this entity draws. */
	MeshID MeshID
	/** @brief Filled in by the topology specializer. */
	Topology PrimitiveTopology
	/** @brief Filled in by the mesh resource provider. */
	Binding *VertexBufferBinding
}
