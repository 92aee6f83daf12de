package geometry

import (
	"errors"
	stdmath "math"
	"testing"

	"github.com/Faultbox/text3d/pkg/math"
)

func TestMeshValidate(t *testing.T) {
	valid := &Mesh{
		Vertices: []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}},
		Faces:    [][]int{{0, 1, 2}},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid mesh rejected: %v", err)
	}

	tests := []struct {
		name string
		mesh *Mesh
	}{
		{"no vertices", &Mesh{Faces: [][]int{{0, 1, 2}}}},
		{"no faces", &Mesh{Vertices: valid.Vertices}},
		{"short face", &Mesh{Vertices: valid.Vertices, Faces: [][]int{{0, 1}}}},
		{"index out of range", &Mesh{Vertices: valid.Vertices, Faces: [][]int{{0, 1, 7}}}},
		{"negative index", &Mesh{Vertices: valid.Vertices, Faces: [][]int{{0, 1, -1}}}},
		{"non-finite vertex", &Mesh{
			Vertices: []math.Vec3{{X: stdmath.NaN()}, {X: 1}, {X: 2}},
			Faces:    [][]int{{0, 1, 2}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mesh.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrMeshValidation) {
				t.Errorf("expected ErrMeshValidation, got %v", err)
			}
		})
	}
}

func TestMeshInfo(t *testing.T) {
	mesh := &Mesh{
		Vertices: []math.Vec3{
			{X: 0, Y: 0, Z: 0},
			{X: 2, Y: 0, Z: 0},
			{X: 2, Y: 2, Z: 0},
			{X: 0, Y: 2, Z: 0},
		},
		Faces: [][]int{
			{0, 1, 2},
			{0, 1, 2, 3},
		},
	}

	info := mesh.Info()
	if info.VertexCount != 4 || info.FaceCount != 2 {
		t.Errorf("got %d vertices / %d faces, want 4 / 2", info.VertexCount, info.FaceCount)
	}
	if info.TriangleCount != 1 || info.QuadCount != 1 {
		t.Errorf("got %d triangles / %d quads, want 1 / 1", info.TriangleCount, info.QuadCount)
	}
	if info.Center.X != 1 || info.Center.Y != 1 || info.Center.Z != 0 {
		t.Errorf("unexpected center %+v", info.Center)
	}
	if info.Bounds.Max.X != 2 || info.Bounds.Max.Y != 2 {
		t.Errorf("unexpected bounds %+v", info.Bounds)
	}
}

func TestCalculateNormals(t *testing.T) {
	vertices := []math.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
	}

	normals := CalculateNormals(vertices, [][]int{{0, 1, 2}})
	if len(normals) != 1 {
		t.Fatalf("expected 1 normal, got %d", len(normals))
	}
	n := normals[0]
	if stdmath.Abs(n.Z-1) > 1e-9 || stdmath.Abs(n.X) > 1e-9 || stdmath.Abs(n.Y) > 1e-9 {
		t.Errorf("expected normal (0,0,1), got %+v", n)
	}
}

func TestCalculateNormalsDegenerate(t *testing.T) {
	// Colinear points have no cross product; the default normal applies.
	vertices := []math.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 2, Y: 0, Z: 0},
	}

	normals := CalculateNormals(vertices, [][]int{{0, 1, 2}})
	if normals[0] != (math.Vec3{X: 0, Y: 0, Z: 1}) {
		t.Errorf("expected default normal (0,0,1), got %+v", normals[0])
	}
}

func TestOutlineArea(t *testing.T) {
	ccw := squareOutline(10)
	if area := OutlineArea(ccw); area != 100 {
		t.Errorf("expected area 100, got %g", area)
	}

	cw := []math.Vec2{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}}
	if area := OutlineArea(cw); area != -100 {
		t.Errorf("expected area -100, got %g", area)
	}
	if !OutlineClockwise(cw) {
		t.Error("expected clockwise outline")
	}
	if OutlineClockwise(ccw) {
		t.Error("expected counter-clockwise outline")
	}

	if area := OutlineArea(nil); area != 0 {
		t.Errorf("expected zero area for empty outline, got %g", area)
	}
}

func TestValidateOutline(t *testing.T) {
	if !ValidateOutline(squareOutline(10)) {
		t.Error("expected square to validate")
	}
	if ValidateOutline([]math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}}) {
		t.Error("expected short outline to fail")
	}
	if ValidateOutline([]math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: stdmath.Inf(1), Y: 0}}) {
		t.Error("expected non-finite outline to fail")
	}
}
