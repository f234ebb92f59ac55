package metadata

import "fmt"

// MissingAttributeError reports a layout entry with no matching
// attribute in the mesh being packed.
type MissingAttributeError struct {
	Name string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("vertex layout requires attribute %q which the mesh does not contain", e.Name)
}

// IncompatibleFormatError reports a mismatch between a layout entry's
// declared format and the mesh attribute's intrinsic format.
type IncompatibleFormatError struct {
	Name     string
	Expected VertexFormat
	Actual   VertexFormat
}

func (e *IncompatibleFormatError) Error() string {
	return fmt.Sprintf("attribute %q has format %s, vertex layout expects %s", e.Name, e.Actual, e.Expected)
}

// AttributeLengthError reports an attribute whose element count
// disagrees with the mesh's vertex count.
type AttributeLengthError struct {
	Name string
	Want int
	Got  int
}

func (e *AttributeLengthError) Error() string {
	return fmt.Sprintf("attribute %q has %d elements, mesh has %d vertices", e.Name, e.Got, e.Want)
}
