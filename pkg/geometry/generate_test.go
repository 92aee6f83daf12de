package geometry

import (
	"errors"
	stdmath "math"
	"testing"

	"github.com/Faultbox/text3d/pkg/math"
)

func TestGenerateMeshSquare(t *testing.T) {
	g := newTestGenerator()

	mesh, err := g.GenerateMesh([][]math.Vec2{squareOutline(10)}, 5.0, 0)
	if err != nil {
		t.Fatalf("GenerateMesh failed: %v", err)
	}

	// A prism has no duplicate vertices or degenerate faces, so
	// optimization must not change the counts.
	if len(mesh.Vertices) != 8 {
		t.Errorf("expected 8 vertices, got %d", len(mesh.Vertices))
	}
	if len(mesh.Faces) != 12 {
		t.Errorf("expected 12 faces, got %d", len(mesh.Faces))
	}
	if err := mesh.Validate(); err != nil {
		t.Errorf("generated mesh failed validation: %v", err)
	}
}

func TestGenerateMeshMultipleOutlines(t *testing.T) {
	g := newTestGenerator()

	second := make([]math.Vec2, 4)
	for i, p := range squareOutline(10) {
		second[i] = math.Vec2{X: p.X + 20, Y: p.Y}
	}

	mesh, err := g.GenerateMesh([][]math.Vec2{squareOutline(10), second}, 5.0, 0)
	if err != nil {
		t.Fatalf("GenerateMesh failed: %v", err)
	}

	if len(mesh.Vertices) != 16 {
		t.Errorf("expected 16 vertices, got %d", len(mesh.Vertices))
	}
	if len(mesh.Faces) != 24 {
		t.Errorf("expected 24 faces, got %d", len(mesh.Faces))
	}

	// Face indices of the second outline must land in its vertex range.
	maxIdx := 0
	for _, face := range mesh.Faces {
		for _, idx := range face {
			if idx > maxIdx {
				maxIdx = idx
			}
		}
	}
	if maxIdx != 15 {
		t.Errorf("expected max face index 15, got %d", maxIdx)
	}
}

func TestGenerateMeshSkipsShortOutlines(t *testing.T) {
	g := newTestGenerator()

	outlines := [][]math.Vec2{
		{{X: 0, Y: 0}, {X: 1, Y: 1}}, // skipped
		squareOutline(10),
	}

	mesh, err := g.GenerateMesh(outlines, 5.0, 0)
	if err != nil {
		t.Fatalf("GenerateMesh failed: %v", err)
	}
	if len(mesh.Vertices) != 8 {
		t.Errorf("expected 8 vertices from the one valid outline, got %d", len(mesh.Vertices))
	}
}

func TestGenerateMeshBeveled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BevelResolution = 4
	g := NewGenerator(cfg, nil)

	mesh, err := g.GenerateMesh([][]math.Vec2{squareOutline(10)}, 5.0, 1.0)
	if err != nil {
		t.Fatalf("GenerateMesh failed: %v", err)
	}

	levels := cfg.BevelResolution + 2
	if got, want := len(mesh.Vertices), 4*levels; got != want {
		t.Errorf("expected %d vertices, got %d", want, got)
	}

	bounds := mesh.Bounds()
	if bounds.Min.Z != 0 || bounds.Max.Z != 5.0 {
		t.Errorf("expected Z range [0, 5], got [%g, %g]", bounds.Min.Z, bounds.Max.Z)
	}
}

func TestGenerateMeshErrors(t *testing.T) {
	g := newTestGenerator()

	tests := []struct {
		name     string
		outlines [][]math.Vec2
		depth    float64
		bevel    float64
	}{
		{"no outlines", nil, 5.0, 0},
		{"zero depth", [][]math.Vec2{squareOutline(10)}, 0, 0},
		{"negative depth", [][]math.Vec2{squareOutline(10)}, -2, 0},
		{"nan depth", [][]math.Vec2{squareOutline(10)}, stdmath.NaN(), 0},
		{"negative bevel", [][]math.Vec2{squareOutline(10)}, 5.0, -1},
		{"all outlines too short", [][]math.Vec2{{{X: 0, Y: 0}}}, 5.0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.GenerateMesh(tt.outlines, tt.depth, tt.bevel)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrGeometry) {
				t.Errorf("expected ErrGeometry, got %v", err)
			}
		})
	}
}
