package geometry

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/text3d/pkg/math"
)

// GenerateMesh builds one combined mesh from multiple outlines, extruded
// to the given depth with an optional bevel. Outlines with fewer than 3
// points are skipped with a warning; if nothing usable remains the call
// fails. The result is optimized (vertices deduplicated, degenerate faces
// dropped) and validated before being returned.
func (g *Generator) GenerateMesh(outlines [][]math.Vec2, depth, bevelDepth float64) (*Mesh, error) {
	if len(outlines) == 0 {
		return nil, fmt.Errorf("%w: no outlines provided", ErrGeometry)
	}
	if !isFinite(depth) || depth <= 0 {
		return nil, fmt.Errorf("%w: depth must be a positive number", ErrGeometry)
	}
	if !isFinite(bevelDepth) || bevelDepth < 0 {
		return nil, fmt.Errorf("%w: bevel depth must be non-negative", ErrGeometry)
	}

	var (
		allVertices  []math.Vec3
		allFaces     [][]int
		vertexOffset int
	)

	for _, outline := range outlines {
		if len(outline) < 3 {
			g.log.Warn("skipping outline with too few points",
				zap.Int("points", len(outline)))
			continue
		}

		var (
			mesh *Mesh
			err  error
		)
		if bevelDepth > 0 {
			mesh, err = g.generateBeveledMesh(outline, depth, bevelDepth)
		} else {
			mesh, err = g.ExtrudeOutline(outline, depth)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrGeometry, err)
		}

		allVertices = append(allVertices, mesh.Vertices...)
		for _, face := range mesh.Faces {
			offset := make([]int, len(face))
			for i, idx := range face {
				offset[i] = idx + vertexOffset
			}
			allFaces = append(allFaces, offset)
		}
		vertexOffset += len(mesh.Vertices)
	}

	if len(allVertices) == 0 {
		return nil, fmt.Errorf("%w: no valid geometry generated", ErrGeometry)
	}

	combined := &Mesh{
		Vertices: allVertices,
		Faces:    allFaces,
		Normals:  CalculateNormals(allVertices, allFaces),
	}

	optimized, err := g.OptimizeMesh(combined)
	if err != nil {
		return nil, err
	}

	if g.cfg.MaxVertices > 0 && len(optimized.Vertices) > g.cfg.MaxVertices {
		g.log.Warn("mesh exceeds advisory vertex limit",
			zap.Int("vertices", len(optimized.Vertices)),
			zap.Int("limit", g.cfg.MaxVertices))
	}

	return optimized, nil
}
