package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/ember/engine/math"
	"github.com/spaghettifunk/ember/engine/renderer/metadata"
)

func testLayout() *metadata.VertexLayout {
	return metadata.NewVertexLayout(
		metadata.VertexLayoutAttribute{Name: metadata.AttributePosition, Format: metadata.VertexFormatFloat32x3},
		metadata.VertexLayoutAttribute{Name: metadata.AttributeNormal, Format: metadata.VertexFormatFloat32x3},
		metadata.VertexLayoutAttribute{Name: metadata.AttributeUv, Format: metadata.VertexFormatFloat32x2},
	)
}

func TestGenerateQuad(t *testing.T) {
	gs, err := NewGeometrySystem()
	require.NoError(t, err)

	quad := gs.GenerateQuad(2.0, 2.0)
	assert.Equal(t, metadata.PrimitiveTopologyTriangle, quad.Topology)
	assert.Equal(t, 4, quad.VertexCount())
	assert.Equal(t, []uint32{0, 2, 1, 0, 3, 2}, quad.Indices)

	positions, found := quad.Attribute(metadata.AttributePosition)
	require.True(t, found)
	assert.Equal(t, metadata.Vec3Values{
		{X: -1, Y: -1, Z: 0},
		{X: -1, Y: 1, Z: 0},
		{X: 1, Y: 1, Z: 0},
		{X: 1, Y: -1, Z: 0},
	}, positions.Values)

	normals, found := quad.Attribute(metadata.AttributeNormal)
	require.True(t, found)
	for _, normal := range normals.Values.(metadata.Vec3Values) {
		assert.Equal(t, math.Vec3{X: 0, Y: 0, Z: 1}, normal)
	}
}

func TestGenerateQuadWindingIsCounterClockwise(t *testing.T) {
	gs, _ := NewGeometrySystem()
	quad := gs.GenerateQuad(2.0, 2.0)

	positions, _ := quad.Attribute(metadata.AttributePosition)
	values := positions.Values.(metadata.Vec3Values)

	// Each triangle's cross product must face +Z.
	for i := 0; i < len(quad.Indices); i += 3 {
		a := values[quad.Indices[i]]
		b := values[quad.Indices[i+1]]
		c := values[quad.Indices[i+2]]
		normal := b.Sub(a).Cross(c.Sub(a))
		assert.Greater(t, normal.Z, float32(0))
	}
}

func TestGeneratePlane(t *testing.T) {
	gs, _ := NewGeometrySystem()

	plane := gs.GeneratePlane(3.0)
	quad := gs.GenerateQuad(3.0, 3.0)
	assert.Equal(t, quad, plane)
}

func TestGenerateCube(t *testing.T) {
	gs, _ := NewGeometrySystem()

	cube := gs.GenerateCube(1.0, 1.0, 1.0)
	assert.Equal(t, metadata.PrimitiveTopologyTriangle, cube.Topology)
	assert.Equal(t, 24, cube.VertexCount())
	assert.Len(t, cube.Indices, 36)

	// Per-face normals are unit axis vectors.
	normals, _ := cube.Attribute(metadata.AttributeNormal)
	for _, normal := range normals.Values.(metadata.Vec3Values) {
		assert.InDelta(t, 1.0, normal.Length(), 1e-6)
	}

	for _, index := range cube.Indices {
		assert.Less(t, index, uint32(24))
	}
}

func TestGenerateSphere(t *testing.T) {
	gs, _ := NewGeometrySystem()

	sphere := gs.GenerateSphere(2.0, 16, 8)
	assert.Equal(t, int((8+1)*(16+1)), sphere.VertexCount())
	assert.Len(t, sphere.Indices, 16*8*6)

	positions, _ := sphere.Attribute(metadata.AttributePosition)
	for _, position := range positions.Values.(metadata.Vec3Values) {
		assert.InDelta(t, 2.0, position.Length(), 1e-5)
	}

	normals, _ := sphere.Attribute(metadata.AttributeNormal)
	for _, normal := range normals.Values.(metadata.Vec3Values) {
		assert.InDelta(t, 1.0, normal.Length(), 1e-6)
	}
}

func TestGenerateSphereClampsParameters(t *testing.T) {
	gs, _ := NewGeometrySystem()

	sphere := gs.GenerateSphere(1.0, 1, 1)
	// Clamped to 3 segments, 2 rings.
	assert.Equal(t, int((2+1)*(3+1)), sphere.VertexCount())
}

func TestGenerationIsDeterministic(t *testing.T) {
	gs, _ := NewGeometrySystem()
	layout := testLayout()

	first, err := gs.GenerateCube(1.0, 2.0, 3.0).VertexBufferBytes(layout)
	require.NoError(t, err)
	second, err := gs.GenerateCube(1.0, 2.0, 3.0).VertexBufferBytes(layout)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
