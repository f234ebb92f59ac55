package metadata

import "fmt"

// VertexFormat describes the numeric shape of one vertex element in a
// buffer layout.
type VertexFormat int

const (
	VertexFormatFloat32 VertexFormat = iota
	VertexFormatFloat32x2
	VertexFormatFloat32x3
	VertexFormatFloat32x4
)

// Size returns the byte size of one element of the format.
func (f VertexFormat) Size() uint32 {
	switch f {
	case VertexFormatFloat32:
		return 4
	case VertexFormatFloat32x2:
		return 8
	case VertexFormatFloat32x3:
		return 12
	case VertexFormatFloat32x4:
		return 16
	}
	return 0
}

func (f VertexFormat) String() string {
	switch f {
	case VertexFormatFloat32:
		return "float32"
	case VertexFormatFloat32x2:
		return "float32x2"
	case VertexFormatFloat32x3:
		return "float32x3"
	case VertexFormatFloat32x4:
		return "float32x4"
	}
	return "unknown"
}

// ParseVertexFormat maps a configuration string to a VertexFormat.
func ParseVertexFormat(s string) (VertexFormat, error) {
	switch s {
	case "float32":
		return VertexFormatFloat32, nil
	case "float32x2":
		return VertexFormatFloat32x2, nil
	case "float32x3":
		return VertexFormatFloat32x3, nil
	case "float32x4":
		return VertexFormatFloat32x4, nil
	}
	return 0, fmt.Errorf("unknown vertex format %q", s)
}

/**
 * @brief One entry of a vertex buffer layout: the mesh attribute it is
 * fed from, its numeric format and its byte offset inside a vertex
 * record.
 */
type VertexLayoutAttribute struct {
	Name   string
	Format VertexFormat
	Offset uint32
}

/**
 * @brief The interleaved byte layout a pipeline expects for its vertex
 * buffer. The layout, not the mesh, owns the final byte geometry: one
 * mesh can feed any number of pipelines with different interleavings.
 */
type VertexLayout struct {
	/** @brief The byte size of one complete vertex record. */
	Stride uint32
	/** @brief The entries in buffer order. */
	Attributes []VertexLayoutAttribute
}

// NewVertexLayout builds a tightly packed layout from (name, format)
// pairs, assigning sequential offsets and the resulting stride.
func NewVertexLayout(attributes ...VertexLayoutAttribute) *VertexLayout {
	layout := &VertexLayout{
		Attributes: make([]VertexLayoutAttribute, 0, len(attributes)),
	}
	offset := uint32(0)
	for _, a := range attributes {
		a.Offset = offset
		layout.Attributes = append(layout.Attributes, a)
		offset += a.Format.Size()
	}
	layout.Stride = offset
	return layout
}
