package geometry

import (
	"go.uber.org/zap"

	"github.com/Faultbox/text3d/pkg/math"
)

// generateBeveledMesh extrudes an outline with intermediate bevel rings
// near the bottom face. The bevel is a uniform inward scale of the
// outline, not a constant-width offset, so non-circular outlines distort
// slightly. If the bevel depth covers the whole extrusion the mesh
// degrades to a plain extrusion.
func (g *Generator) generateBeveledMesh(outline []math.Vec2, depth, bevelDepth float64) (*Mesh, error) {
	if bevelDepth >= depth {
		g.log.Warn("bevel depth >= extrusion depth, using simple extrusion",
			zap.Float64("depth", depth),
			zap.Float64("bevel_depth", bevelDepth))
		return g.ExtrudeOutline(outline, depth)
	}

	steps := g.cfg.BevelResolution
	stepHeight := bevelDepth / float64(steps)
	n := len(outline)

	var vertices []math.Vec3

	// Bevel rings from Z=0 up to Z=bevelDepth, shrinking linearly.
	for step := 0; step <= steps; step++ {
		z := float64(step) * stepHeight
		scale := 1.0 - float64(step)*0.1/float64(steps)
		for _, p := range outline {
			vertices = append(vertices, math.Vec3{X: p.X * scale, Y: p.Y * scale, Z: z})
		}
	}

	// Unscaled top ring.
	for _, p := range outline {
		vertices = append(vertices, math.Vec3{X: p.X, Y: p.Y, Z: depth})
	}

	totalLevels := steps + 2
	var faces [][]int

	// Walls between every pair of adjacent rings.
	for level := 0; level < totalLevels-1; level++ {
		currBase := level * n
		nextBase := (level + 1) * n
		for i := 0; i < n; i++ {
			next := (i + 1) % n
			faces = append(faces, []int{currBase + i, nextBase + i, currBase + next})
			faces = append(faces, []int{currBase + next, nextBase + i, nextBase + next})
		}
	}

	// Bottom cap.
	bottom := make([]int, n)
	for i := range bottom {
		bottom[i] = i
	}
	faces = append(faces, triangulatePolygon(bottom)...)

	// Top cap, winding reversed.
	topBase := (totalLevels - 1) * n
	top := make([]int, n)
	for i := range top {
		top[i] = topBase + i
	}
	for _, tri := range triangulatePolygon(top) {
		faces = append(faces, reverseFace(tri))
	}

	return &Mesh{
		Vertices: vertices,
		Faces:    faces,
		Normals:  CalculateNormals(vertices, faces),
	}, nil
}
