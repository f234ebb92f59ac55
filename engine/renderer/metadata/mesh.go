package metadata

import (
	"encoding/binary"

	"github.com/spaghettifunk/ember/engine/math"
)

/**
 * @brief The CPU-side description of a geometry: a primitive topology,
 * an ordered set of named per-vertex attribute channels and an
 * optional 32-bit index sequence. Meshes are attribute-major; packing
 * against a VertexLayout turns them vertex-major for the GPU.
 */
type Mesh struct {
	Topology   PrimitiveTopology
	Attributes []VertexAttribute
	/** @brief Nil for unindexed draws. An empty non-nil slice is a valid, empty index buffer. */
	Indices []uint32
}

func NewMesh(topology PrimitiveTopology) *Mesh {
	return &Mesh{
		Topology:   topology,
		Attributes: []VertexAttribute{},
	}
}

// VertexCount returns the element count of the first attribute, which
// is authoritative for the whole mesh. A mesh without attributes has
// zero vertices.
func (m *Mesh) VertexCount() int {
	if len(m.Attributes) == 0 {
		return 0
	}
	return m.Attributes[0].Values.Len()
}

// Attribute returns the first attribute with the given name. Duplicate
// names resolve to the earliest entry.
func (m *Mesh) Attribute(name string) (*VertexAttribute, bool) {
	for i := range m.Attributes {
		if m.Attributes[i].Name == name {
			return &m.Attributes[i], true
		}
	}
	return nil, false
}

// Extents returns the axis-aligned bounds of the standard position
// channel. A mesh without vec3 positions has zero extents.
func (m *Mesh) Extents() math.Extents3D {
	attribute, found := m.Attribute(AttributePosition)
	if !found {
		return math.Extents3D{}
	}
	positions, ok := attribute.Values.(Vec3Values)
	if !ok || len(positions) == 0 {
		return math.Extents3D{}
	}

	extents := math.Extents3D{Min: positions[0], Max: positions[0]}
	for _, p := range positions[1:] {
		extents.Min.X = min(extents.Min.X, p.X)
		extents.Min.Y = min(extents.Min.Y, p.Y)
		extents.Min.Z = min(extents.Min.Z, p.Z)
		extents.Max.X = max(extents.Max.X, p.X)
		extents.Max.Y = max(extents.Max.Y, p.Y)
		extents.Max.Z = max(extents.Max.Z, p.Z)
	}
	return extents
}

// VertexBufferBytes interleaves the mesh's attributes into a single
// buffer laid out exactly as the layout specifies: for vertex i, each
// layout entry's element lands at stride*i+offset. Every layout entry
// is validated against the mesh (presence, intrinsic format, element
// count) before any bytes are copied, so a failed pack returns no
// partial buffer.
func (m *Mesh) VertexBufferBytes(layout *VertexLayout) ([]byte, error) {
	vertexCount := m.VertexCount()

	for _, entry := range layout.Attributes {
		attribute, found := m.Attribute(entry.Name)
		if !found {
			return nil, &MissingAttributeError{Name: entry.Name}
		}
		if format := attribute.Values.Format(); format != entry.Format {
			return nil, &IncompatibleFormatError{
				Name:     entry.Name,
				Expected: entry.Format,
				Actual:   format,
			}
		}
		if length := attribute.Values.Len(); length != vertexCount {
			return nil, &AttributeLengthError{
				Name: entry.Name,
				Want: vertexCount,
				Got:  length,
			}
		}
	}

	stride := int(layout.Stride)
	bytes := make([]byte, stride*vertexCount)
	for _, entry := range layout.Attributes {
		attribute, _ := m.Attribute(entry.Name)
		attributeBytes := attribute.Values.Bytes()
		elementSize := int(entry.Format.Size())
		for i := 0; i < vertexCount; i++ {
			src := attributeBytes[i*elementSize : (i+1)*elementSize]
			dst := stride*i + int(entry.Offset)
			copy(bytes[dst:dst+elementSize], src)
		}
	}

	return bytes, nil
}

// IndexBufferBytes packs the mesh's indices at the requested width,
// byte-ordered like the vertex packer's output. Nil is returned for an
// unindexed mesh. Narrowing to 16 bits follows Go conversion
// semantics: values of 65536 and above wrap silently.
func (m *Mesh) IndexBufferBytes(format IndexFormat) []byte {
	if m.Indices == nil {
		return nil
	}

	switch format {
	case IndexFormatUint16:
		bytes := make([]byte, len(m.Indices)*2)
		for i, index := range m.Indices {
			binary.NativeEndian.PutUint16(bytes[i*2:], uint16(index))
		}
		return bytes
	default:
		bytes := make([]byte, len(m.Indices)*4)
		for i, index := range m.Indices {
			binary.NativeEndian.PutUint32(bytes[i*4:], index)
		}
		return bytes
	}
}
