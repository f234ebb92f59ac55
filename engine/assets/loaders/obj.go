package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spaghettifunk/ember/engine/math"
	"github.com/spaghettifunk/ember/engine/renderer/metadata"
)

// ObjLoader reads Wavefront OBJ geometry (v/vt/vn/f statements,
// polygonal faces triangulated by fanning). Attributes are expanded
// per face corner; no deduplication is attempted.
type ObjLoader struct{}

func (l *ObjLoader) Load(path string) (*metadata.Mesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ParseObj(file)
}

type objCorner struct {
	position int
	uv       int
	normal   int
}

// ParseObj builds a triangle mesh from OBJ text. Normal and uv
// channels are emitted only when the source declares them.
func ParseObj(r io.Reader) (*metadata.Mesh, error) {
	var sourcePositions []math.Vec3
	var sourceUvs []math.Vec2
	var sourceNormals []math.Vec3
	var corners []objCorner

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNumber, err)
			}
			sourcePositions = append(sourcePositions, math.NewVec3(v[0], v[1], v[2]))
		case "vt":
			v, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNumber, err)
			}
			sourceUvs = append(sourceUvs, math.NewVec2(v[0], v[1]))
		case "vn":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNumber, err)
			}
			sourceNormals = append(sourceNormals, math.NewVec3(v[0], v[1], v[2]))
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 corners", lineNumber)
			}
			face := make([]objCorner, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				corner, err := parseCorner(ref, len(sourcePositions), len(sourceUvs), len(sourceNormals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNumber, err)
				}
				face = append(face, corner)
			}
			// Fan triangulation keeps the source winding.
			for i := 1; i < len(face)-1; i++ {
				corners = append(corners, face[0], face[i], face[i+1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	positions := make([]math.Vec3, len(corners))
	uvs := make([]math.Vec2, len(corners))
	normals := make([]math.Vec3, len(corners))
	indices := make([]uint32, len(corners))
	for i, corner := range corners {
		positions[i] = sourcePositions[corner.position]
		if corner.uv >= 0 {
			uvs[i] = sourceUvs[corner.uv]
		}
		if corner.normal >= 0 {
			normals[i] = sourceNormals[corner.normal]
		}
		indices[i] = uint32(i)
	}

	mesh := metadata.NewMesh(metadata.PrimitiveTopologyTriangle)
	mesh.Attributes = append(mesh.Attributes, metadata.NewPositionAttribute(positions))
	if len(sourceNormals) > 0 {
		mesh.Attributes = append(mesh.Attributes, metadata.NewNormalAttribute(normals))
	}
	if len(sourceUvs) > 0 {
		mesh.Attributes = append(mesh.Attributes, metadata.NewUvAttribute(uvs))
	}
	mesh.Indices = indices
	return mesh, nil
}

func parseFloats(fields []string, count int) ([]float32, error) {
	if len(fields) < count {
		return nil, fmt.Errorf("expected %d components, got %d", count, len(fields))
	}
	out := make([]float32, count)
	for i := 0; i < count; i++ {
		v, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(v)
	}
	return out, nil
}

// parseCorner resolves one "v", "v/vt", "v//vn" or "v/vt/vn" face
// reference to zero-based indices. OBJ indices are one-based; negative
// values count back from the end of the respective list. Missing
// components resolve to -1.
func parseCorner(ref string, positionCount, uvCount, normalCount int) (objCorner, error) {
	corner := objCorner{position: -1, uv: -1, normal: -1}
	parts := strings.Split(ref, "/")

	var err error
	corner.position, err = resolveIndex(parts[0], positionCount)
	if err != nil {
		return corner, fmt.Errorf("bad position reference %q: %w", ref, err)
	}
	if len(parts) > 1 && parts[1] != "" {
		corner.uv, err = resolveIndex(parts[1], uvCount)
		if err != nil {
			return corner, fmt.Errorf("bad uv reference %q: %w", ref, err)
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		corner.normal, err = resolveIndex(parts[2], normalCount)
		if err != nil {
			return corner, fmt.Errorf("bad normal reference %q: %w", ref, err)
		}
	}
	return corner, nil
}

func resolveIndex(field string, count int) (int, error) {
	value, err := strconv.Atoi(field)
	if err != nil {
		return -1, err
	}
	index := value - 1
	if value < 0 {
		index = count + value
	}
	if index < 0 || index >= count {
		return -1, fmt.Errorf("index %d out of range (%d entries)", value, count)
	}
	return index, nil
}
