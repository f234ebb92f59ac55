package metadata

import (
	"unsafe"

	"github.com/spaghettifunk/ember/engine/math"
)

/** @brief The name of the standard position attribute. */
const AttributePosition string = "Vertex_Position"

/** @brief The name of the standard normal attribute. */
const AttributeNormal string = "Vertex_Normal"

/** @brief The name of the standard texture coordinate attribute. */
const AttributeUv string = "Vertex_Uv"

// VertexAttributeValues is a homogeneous, ordered sequence of vertex
// elements. The variant set is closed: scalar float32 and 2-, 3- and
// 4-component float32 vectors. Bytes returns a native-endian view of
// the backing storage without copying.
type VertexAttributeValues interface {
	Len() int
	Bytes() []byte
	Format() VertexFormat
}

type Float32Values []float32

func (v Float32Values) Len() int { return len(v) }

func (v Float32Values) Format() VertexFormat { return VertexFormatFloat32 }

func (v Float32Values) Bytes() []byte {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*4)
}

type Vec2Values []math.Vec2

func (v Vec2Values) Len() int { return len(v) }

func (v Vec2Values) Format() VertexFormat { return VertexFormatFloat32x2 }

func (v Vec2Values) Bytes() []byte {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*8)
}

type Vec3Values []math.Vec3

func (v Vec3Values) Len() int { return len(v) }

func (v Vec3Values) Format() VertexFormat { return VertexFormatFloat32x3 }

func (v Vec3Values) Bytes() []byte {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*12)
}

type Vec4Values []math.Vec4

func (v Vec4Values) Len() int { return len(v) }

func (v Vec4Values) Format() VertexFormat { return VertexFormatFloat32x4 }

func (v Vec4Values) Bytes() []byte {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*16)
}

/**
 * @brief A named per-vertex data channel of a mesh. Names are compared
 * by value; the standard channels use the Attribute* constants and
 * custom names are permitted.
 */
type VertexAttribute struct {
	Name   string
	Values VertexAttributeValues
}

// NewPositionAttribute wraps positions in the standard position channel.
func NewPositionAttribute(positions []math.Vec3) VertexAttribute {
	return VertexAttribute{Name: AttributePosition, Values: Vec3Values(positions)}
}

// NewNormalAttribute wraps normals in the standard normal channel.
func NewNormalAttribute(normals []math.Vec3) VertexAttribute {
	return VertexAttribute{Name: AttributeNormal, Values: Vec3Values(normals)}
}

// NewUvAttribute wraps texture coordinates in the standard uv channel.
func NewUvAttribute(uvs []math.Vec2) VertexAttribute {
	return VertexAttribute{Name: AttributeUv, Values: Vec2Values(uvs)}
}
