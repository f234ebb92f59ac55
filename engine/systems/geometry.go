package systems

import (
	"github.com/chewxy/math32"
	"github.com/spaghettifunk/ember/engine/math"
	"github.com/spaghettifunk/ember/engine/renderer/metadata"
)

// GeometrySystem generates primitive meshes. Generation is
// deterministic: the same parameters always produce byte-identical
// attribute data, which keeps resource caching keyed purely by mesh
// identity.
type GeometrySystem struct{}

func NewGeometrySystem() (*GeometrySystem, error) {
	return &GeometrySystem{}, nil
}

// GenerateQuad builds a single quad in the XY plane, centered on the
// origin, facing +Z, with counter-clockwise winding.
func (gs *GeometrySystem) GenerateQuad(width, height float32) *metadata.Mesh {
	extentX := width / 2.0
	extentY := height / 2.0

	positions := []math.Vec3{
		{X: -extentX, Y: -extentY, Z: 0.0}, // south west
		{X: -extentX, Y: extentY, Z: 0.0},  // north west
		{X: extentX, Y: extentY, Z: 0.0},   // north east
		{X: extentX, Y: -extentY, Z: 0.0},  // south east
	}
	normals := []math.Vec3{
		{X: 0.0, Y: 0.0, Z: 1.0},
		{X: 0.0, Y: 0.0, Z: 1.0},
		{X: 0.0, Y: 0.0, Z: 1.0},
		{X: 0.0, Y: 0.0, Z: 1.0},
	}
	uvs := []math.Vec2{
		{X: 0.0, Y: 1.0},
		{X: 0.0, Y: 0.0},
		{X: 1.0, Y: 0.0},
		{X: 1.0, Y: 1.0},
	}

	mesh := metadata.NewMesh(metadata.PrimitiveTopologyTriangle)
	mesh.Attributes = []metadata.VertexAttribute{
		metadata.NewPositionAttribute(positions),
		metadata.NewNormalAttribute(normals),
		metadata.NewUvAttribute(uvs),
	}
	mesh.Indices = []uint32{0, 2, 1, 0, 3, 2}
	return mesh
}

// GeneratePlane builds a square quad of the given size.
func (gs *GeometrySystem) GeneratePlane(size float32) *metadata.Mesh {
	return gs.GenerateQuad(size, size)
}

// GenerateCube builds an axis-aligned box centered on the origin with
// per-face normals and uvs: 24 vertices, 36 indices.
func (gs *GeometrySystem) GenerateCube(width, height, depth float32) *metadata.Mesh {
	x := width / 2.0
	y := height / 2.0
	z := depth / 2.0

	type corner struct {
		position math.Vec3
		normal   math.Vec3
		uv       math.Vec2
	}
	corners := []corner{
		// top (+z)
		{math.NewVec3(-x, -y, z), math.NewVec3(0, 0, 1), math.NewVec2(0, 0)},
		{math.NewVec3(x, -y, z), math.NewVec3(0, 0, 1), math.NewVec2(1, 0)},
		{math.NewVec3(x, y, z), math.NewVec3(0, 0, 1), math.NewVec2(1, 1)},
		{math.NewVec3(-x, y, z), math.NewVec3(0, 0, 1), math.NewVec2(0, 1)},
		// bottom (-z)
		{math.NewVec3(-x, y, -z), math.NewVec3(0, 0, -1), math.NewVec2(1, 0)},
		{math.NewVec3(x, y, -z), math.NewVec3(0, 0, -1), math.NewVec2(0, 0)},
		{math.NewVec3(x, -y, -z), math.NewVec3(0, 0, -1), math.NewVec2(0, 1)},
		{math.NewVec3(-x, -y, -z), math.NewVec3(0, 0, -1), math.NewVec2(1, 1)},
		// right (+x)
		{math.NewVec3(x, -y, -z), math.NewVec3(1, 0, 0), math.NewVec2(0, 0)},
		{math.NewVec3(x, y, -z), math.NewVec3(1, 0, 0), math.NewVec2(1, 0)},
		{math.NewVec3(x, y, z), math.NewVec3(1, 0, 0), math.NewVec2(1, 1)},
		{math.NewVec3(x, -y, z), math.NewVec3(1, 0, 0), math.NewVec2(0, 1)},
		// left (-x)
		{math.NewVec3(-x, -y, z), math.NewVec3(-1, 0, 0), math.NewVec2(1, 0)},
		{math.NewVec3(-x, y, z), math.NewVec3(-1, 0, 0), math.NewVec2(0, 0)},
		{math.NewVec3(-x, y, -z), math.NewVec3(-1, 0, 0), math.NewVec2(0, 1)},
		{math.NewVec3(-x, -y, -z), math.NewVec3(-1, 0, 0), math.NewVec2(1, 1)},
		// front (+y)
		{math.NewVec3(x, y, -z), math.NewVec3(0, 1, 0), math.NewVec2(1, 0)},
		{math.NewVec3(-x, y, -z), math.NewVec3(0, 1, 0), math.NewVec2(0, 0)},
		{math.NewVec3(-x, y, z), math.NewVec3(0, 1, 0), math.NewVec2(0, 1)},
		{math.NewVec3(x, y, z), math.NewVec3(0, 1, 0), math.NewVec2(1, 1)},
		// back (-y)
		{math.NewVec3(x, -y, z), math.NewVec3(0, -1, 0), math.NewVec2(0, 0)},
		{math.NewVec3(-x, -y, z), math.NewVec3(0, -1, 0), math.NewVec2(1, 0)},
		{math.NewVec3(-x, -y, -z), math.NewVec3(0, -1, 0), math.NewVec2(1, 1)},
		{math.NewVec3(x, -y, -z), math.NewVec3(0, -1, 0), math.NewVec2(0, 1)},
	}

	positions := make([]math.Vec3, len(corners))
	normals := make([]math.Vec3, len(corners))
	uvs := make([]math.Vec2, len(corners))
	for i, c := range corners {
		positions[i] = c.position
		normals[i] = c.normal
		uvs[i] = c.uv
	}

	indices := make([]uint32, 0, 36)
	for face := uint32(0); face < 6; face++ {
		offset := face * 4
		indices = append(indices,
			offset, offset+1, offset+2,
			offset+2, offset+3, offset,
		)
	}

	mesh := metadata.NewMesh(metadata.PrimitiveTopologyTriangle)
	mesh.Attributes = []metadata.VertexAttribute{
		metadata.NewPositionAttribute(positions),
		metadata.NewNormalAttribute(normals),
		metadata.NewUvAttribute(uvs),
	}
	mesh.Indices = indices
	return mesh
}

// GenerateSphere builds a UV sphere centered on the origin. Segment
// and ring counts below the minimum are clamped rather than rejected.
func (gs *GeometrySystem) GenerateSphere(radius float32, segments, rings uint32) *metadata.Mesh {
	segments = math.Clamp(segments, 3, 512)
	rings = math.Clamp(rings, 2, 512)

	vertexCount := (rings + 1) * (segments + 1)
	positions := make([]math.Vec3, 0, vertexCount)
	normals := make([]math.Vec3, 0, vertexCount)
	uvs := make([]math.Vec2, 0, vertexCount)

	for ring := uint32(0); ring <= rings; ring++ {
		phi := math32.Pi * float32(ring) / float32(rings)
		for segment := uint32(0); segment <= segments; segment++ {
			theta := 2.0 * math32.Pi * float32(segment) / float32(segments)

			normal := math.NewVec3(
				math32.Sin(phi)*math32.Cos(theta),
				math32.Cos(phi),
				math32.Sin(phi)*math32.Sin(theta),
			)
			positions = append(positions, normal.Scale(radius))
			normals = append(normals, normal)
			uvs = append(uvs, math.NewVec2(
				float32(segment)/float32(segments),
				float32(ring)/float32(rings),
			))
		}
	}

	indices := make([]uint32, 0, rings*segments*6)
	for ring := uint32(0); ring < rings; ring++ {
		for segment := uint32(0); segment < segments; segment++ {
			a := ring*(segments+1) + segment
			b := a + segments + 1
			indices = append(indices,
				a, b, a+1,
				a+1, b, b+1,
			)
		}
	}

	mesh := metadata.NewMesh(metadata.PrimitiveTopologyTriangle)
	mesh.Attributes = []metadata.VertexAttribute{
		metadata.NewPositionAttribute(positions),
		metadata.NewNormalAttribute(normals),
		metadata.NewUvAttribute(uvs),
	}
	mesh.Indices = indices
	return mesh
}
