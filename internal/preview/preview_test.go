package preview

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/text3d/pkg/geometry"
	"github.com/Faultbox/text3d/pkg/math"
)

func prismMesh(t *testing.T) *geometry.Mesh {
	t.Helper()
	outline := []math.Vec2{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 10, Y: 10},
		{X: 0, Y: 10},
	}
	mesh, err := geometry.NewGenerator(geometry.DefaultConfig(), nil).ExtrudeOutline(outline, 5.0)
	if err != nil {
		t.Fatalf("building test mesh: %v", err)
	}
	return mesh
}

func TestRender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preview.png")

	opts := DefaultOptions()
	opts.Width = 200
	opts.Height = 150

	if err := Render(prismMesh(t), path, opts); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("output is not a valid PNG: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 200 || b.Dy() != 150 {
		t.Errorf("image size = %dx%d, want 200x150", b.Dx(), b.Dy())
	}
}

func TestRenderWireframe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wire.png")

	opts := DefaultOptions()
	opts.Width = 100
	opts.Height = 100
	opts.Wireframe = true

	if err := Render(prismMesh(t), path, opts); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("wireframe render missing: %v", err)
	}
}

func TestRenderErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")

	if err := Render(nil, path, DefaultOptions()); !errors.Is(err, ErrRender) {
		t.Errorf("nil mesh: expected ErrRender, got %v", err)
	}
	if err := Render(&geometry.Mesh{}, path, DefaultOptions()); !errors.Is(err, ErrRender) {
		t.Errorf("empty mesh: expected ErrRender, got %v", err)
	}

	opts := DefaultOptions()
	opts.Width = 0
	if err := Render(prismMesh(t), path, opts); !errors.Is(err, ErrRender) {
		t.Errorf("zero width: expected ErrRender, got %v", err)
	}
}
