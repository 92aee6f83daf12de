// Package geometry converts closed 2D outlines into extruded, optionally
// beveled 3D polygon meshes.
package geometry

import (
	"errors"
	"fmt"

	"github.com/Faultbox/text3d/pkg/math"
)

// Geometry errors.
var (
	ErrGeometry       = errors.New("invalid geometry")
	ErrMeshValidation = errors.New("mesh validation failed")
)

// defaultNormal is used for faces whose own normal is degenerate.
var defaultNormal = math.Vec3{X: 0, Y: 0, Z: 1}

// Mesh is a polygon mesh: vertices in insertion order, faces as vertex
// index lists, and one normal per face (parallel to Faces).
type Mesh struct {
	Vertices []math.Vec3
	Faces    [][]int
	Normals  []math.Vec3
}

// Info summarizes a mesh.
type Info struct {
	VertexCount   int
	FaceCount     int
	TriangleCount int
	QuadCount     int
	Bounds        math.Bounds
	Center        math.Vec3
}

// Validate checks the structural invariants of the mesh: non-empty vertex
// and face lists, at least 3 indices per face, in-range indices, and
// finite coordinates. The returned error names the offending face or
// vertex.
func (m *Mesh) Validate() error {
	if len(m.Vertices) == 0 {
		return fmt.Errorf("%w: mesh has no vertices", ErrMeshValidation)
	}
	if len(m.Faces) == 0 {
		return fmt.Errorf("%w: mesh has no faces", ErrMeshValidation)
	}
	for i, v := range m.Vertices {
		if !v.IsFinite() {
			return fmt.Errorf("%w: vertex %d has non-finite coordinates", ErrMeshValidation, i)
		}
	}
	maxIndex := len(m.Vertices) - 1
	for i, face := range m.Faces {
		if len(face) < 3 {
			return fmt.Errorf("%w: face %d has less than 3 vertices", ErrMeshValidation, i)
		}
		for _, idx := range face {
			if idx < 0 || idx > maxIndex {
				return fmt.Errorf("%w: face %d references invalid vertex index %d", ErrMeshValidation, i, idx)
			}
		}
	}
	return nil
}

// Bounds returns the axis-aligned bounding box of the mesh.
func (m *Mesh) Bounds() math.Bounds {
	return math.BoundsOf(m.Vertices)
}

// Info returns counts and bounds for the mesh.
func (m *Mesh) Info() Info {
	info := Info{
		VertexCount: len(m.Vertices),
		FaceCount:   len(m.Faces),
	}
	for _, face := range m.Faces {
		switch len(face) {
		case 3:
			info.TriangleCount++
		case 4:
			info.QuadCount++
		}
	}
	if len(m.Vertices) > 0 {
		info.Bounds = m.Bounds()
		var sum math.Vec3
		for _, v := range m.Vertices {
			sum = sum.Add(v)
		}
		info.Center = sum.Scale(1.0 / float64(len(m.Vertices)))
	}
	return info
}

// CalculateNormals computes one normal per face from the cross product of
// two edge vectors of its first three vertices. Degenerate faces get the
// default (0, 0, 1) normal.
func CalculateNormals(vertices []math.Vec3, faces [][]int) []math.Vec3 {
	if len(vertices) == 0 || len(faces) == 0 {
		return nil
	}
	normals := make([]math.Vec3, 0, len(faces))
	for _, face := range faces {
		normals = append(normals, faceNormal(vertices, face))
	}
	return normals
}

// faceNormal computes the normal of a single face, falling back to the
// default normal for short faces, out-of-range indices, or zero-area
// triangles.
func faceNormal(vertices []math.Vec3, face []int) math.Vec3 {
	if len(face) < 3 {
		return defaultNormal
	}
	for _, idx := range face[:3] {
		if idx < 0 || idx >= len(vertices) {
			return defaultNormal
		}
	}
	v1 := vertices[face[0]]
	v2 := vertices[face[1]]
	v3 := vertices[face[2]]
	n := v2.Sub(v1).Cross(v3.Sub(v1))
	if n.Length() == 0 {
		return defaultNormal
	}
	return n.Normalize()
}
