package geometry

import (
	"fmt"
	stdmath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/text3d/pkg/math"
)

// Config holds generator defaults. A Generator never mutates its config
// after construction.
type Config struct {
	DefaultDepth      float64
	DefaultBevelDepth float64
	BevelResolution   int
	// MaxVertices is an advisory threshold: meshes exceeding it are
	// logged, never rejected.
	MaxVertices int
}

// DefaultConfig returns the standard generator settings.
func DefaultConfig() Config {
	return Config{
		DefaultDepth:      5.0,
		DefaultBevelDepth: 0.5,
		BevelResolution:   4,
		MaxVertices:       100000,
	}
}

// Generator converts 2D outlines into 3D meshes. It holds only immutable
// configuration, so a single Generator is safe for concurrent use.
type Generator struct {
	cfg Config
	log *zap.Logger
}

// NewGenerator creates a Generator with the given config. A nil logger
// disables logging.
func NewGenerator(cfg Config, log *zap.Logger) *Generator {
	if cfg.BevelResolution < 2 {
		cfg.BevelResolution = 2
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{cfg: cfg, log: log}
}

// ExtrudeOutline extrudes a closed 2D outline along the Z axis into a
// prism: a bottom ring at Z=0, a top ring at Z=depth, fan-triangulated
// caps, and two side triangles per outline edge.
//
// Caps use fan triangulation from the first vertex, which is only correct
// for convex or star-shaped outlines; concave outlines produce
// overlapping cap triangles.
func (g *Generator) ExtrudeOutline(outline []math.Vec2, depth float64) (*Mesh, error) {
	if len(outline) < 3 {
		return nil, fmt.Errorf("%w: outline must contain at least 3 points", ErrGeometry)
	}
	if !isFinite(depth) || depth <= 0 {
		return nil, fmt.Errorf("%w: depth must be a positive number", ErrGeometry)
	}

	// Closure is implied; drop an explicitly repeated closing point.
	if outline[0] == outline[len(outline)-1] {
		outline = outline[:len(outline)-1]
	}

	n := len(outline)
	vertices := make([]math.Vec3, 0, 2*n)
	for _, p := range outline {
		vertices = append(vertices, math.Vec3{X: p.X, Y: p.Y, Z: 0})
	}
	for _, p := range outline {
		vertices = append(vertices, math.Vec3{X: p.X, Y: p.Y, Z: depth})
	}

	faces := extrusionFaces(n)

	return &Mesh{
		Vertices: vertices,
		Faces:    faces,
		Normals:  CalculateNormals(vertices, faces),
	}, nil
}

// extrusionFaces builds caps and side walls for a prism with n vertices
// per ring.
func extrusionFaces(n int) [][]int {
	var faces [][]int

	// Bottom cap.
	bottom := make([]int, n)
	for i := range bottom {
		bottom[i] = i
	}
	faces = append(faces, triangulatePolygon(bottom)...)

	// Top cap, winding reversed so it faces outward.
	top := make([]int, n)
	for i := range top {
		top[i] = n + i
	}
	for _, tri := range triangulatePolygon(top) {
		faces = append(faces, reverseFace(tri))
	}

	// Side walls: one quad per edge, split into two triangles.
	for i := 0; i < n; i++ {
		next := (i + 1) % n
		faces = append(faces, []int{i, i + n, next})
		faces = append(faces, []int{next, i + n, next + n})
	}

	return faces
}

// triangulatePolygon fans an n-gon into n-2 triangles sharing the first
// vertex.
func triangulatePolygon(indices []int) [][]int {
	if len(indices) < 3 {
		return nil
	}
	if len(indices) == 3 {
		return [][]int{{indices[0], indices[1], indices[2]}}
	}
	triangles := make([][]int, 0, len(indices)-2)
	for i := 1; i < len(indices)-1; i++ {
		triangles = append(triangles, []int{indices[0], indices[i], indices[i+1]})
	}
	return triangles
}

// reverseFace returns the face with its winding inverted.
func reverseFace(face []int) []int {
	reversed := make([]int, len(face))
	for i, idx := range face {
		reversed[len(face)-1-i] = idx
	}
	return reversed
}

func isFinite(f float64) bool {
	return !stdmath.IsNaN(f) && !stdmath.IsInf(f, 0)
}
