package geometry

import (
	stdmath "math"

	"fmt"

	"github.com/Faultbox/text3d/pkg/math"
)

// vertexMergeTolerance is the per-coordinate distance under which two
// vertices are considered the same.
const vertexMergeTolerance = 1e-6

// OptimizeMesh merges near-duplicate vertices, remaps faces through the
// merge map, drops faces left with fewer than 3 distinct indices, and
// recomputes normals. The result is structurally validated before being
// returned.
func (g *Generator) OptimizeMesh(mesh *Mesh) (*Mesh, error) {
	if mesh == nil || len(mesh.Vertices) == 0 || len(mesh.Faces) == 0 {
		return nil, fmt.Errorf("%w: empty mesh provided", ErrMeshValidation)
	}

	unique, vertexMap := removeDuplicateVertices(mesh.Vertices, vertexMergeTolerance)

	var faces [][]int
	for _, face := range mesh.Faces {
		remapped := make([]int, len(face))
		for i, idx := range face {
			remapped[i] = vertexMap[idx]
		}
		if distinctCount(remapped) >= 3 {
			faces = append(faces, remapped)
		}
	}

	if len(faces) == 0 {
		return nil, fmt.Errorf("%w: no valid faces after optimization", ErrMeshValidation)
	}

	optimized := &Mesh{
		Vertices: unique,
		Faces:    faces,
		Normals:  CalculateNormals(unique, faces),
	}
	if err := optimized.Validate(); err != nil {
		return nil, err
	}
	return optimized, nil
}

// removeDuplicateVertices deduplicates vertices within the tolerance and
// returns the unique set plus an old-index to new-index map. The first
// occurrence of a duplicate group wins as the canonical vertex, which
// keeps exported output deterministic.
//
// TODO: replace the pairwise scan with coordinate-rounded bucketing
// (scan only neighboring buckets) while preserving first-occurrence-wins
// order; the quadratic scan dominates generation time for large text.
func removeDuplicateVertices(vertices []math.Vec3, tolerance float64) ([]math.Vec3, []int) {
	unique := make([]math.Vec3, 0, len(vertices))
	vertexMap := make([]int, len(vertices))

	for i, v := range vertices {
		found := false
		for j, u := range unique {
			if closeVec3(v, u, tolerance) {
				vertexMap[i] = j
				found = true
				break
			}
		}
		if !found {
			vertexMap[i] = len(unique)
			unique = append(unique, v)
		}
	}

	return unique, vertexMap
}

// closeVec3 reports whether two points coincide within the per-coordinate
// tolerance.
func closeVec3(a, b math.Vec3, tolerance float64) bool {
	return stdmath.Abs(a.X-b.X) <= tolerance &&
		stdmath.Abs(a.Y-b.Y) <= tolerance &&
		stdmath.Abs(a.Z-b.Z) <= tolerance
}

// distinctCount returns the number of distinct indices in a face.
func distinctCount(face []int) int {
	seen := make(map[int]struct{}, len(face))
	for _, idx := range face {
		seen[idx] = struct{}{}
	}
	return len(seen)
}
