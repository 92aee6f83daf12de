// Package preview renders an offline shaded image of a mesh, for quick
// inspection without a 3D viewer.
package preview

import (
	"errors"
	"fmt"
	"image/color"
	stdmath "math"
	"sort"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/Faultbox/text3d/pkg/geometry"
	"github.com/Faultbox/text3d/pkg/math"
)

// ErrRender is returned when a preview cannot be produced.
var ErrRender = errors.New("render failed")

// supersample is the oversampling factor; the frame is rendered large
// and downsampled with a Lanczos filter for smoother edges.
const supersample = 2

// Options controls the preview render.
type Options struct {
	Width      int
	Height     int
	Background color.Color
	FaceColor  color.Color
	Wireframe  bool
	// AzimuthDeg/ElevationDeg orient the orthographic camera.
	AzimuthDeg   float64
	ElevationDeg float64
}

// DefaultOptions returns the standard preview settings.
func DefaultOptions() Options {
	return Options{
		Width:        800,
		Height:       600,
		Background:   color.RGBA{R: 24, G: 24, B: 28, A: 255},
		FaceColor:    color.RGBA{R: 130, G: 170, B: 255, A: 255},
		Wireframe:    false,
		AzimuthDeg:   -60,
		ElevationDeg: 25,
	}
}

// projected is one face after projection, ready for depth sorting.
type projected struct {
	points []math.Vec2
	depth  float64
	shade  float64
}

// Render draws the mesh with a painter's-algorithm orthographic
// projection and writes a PNG to path.
func Render(mesh *geometry.Mesh, path string, opts Options) error {
	if mesh == nil || len(mesh.Vertices) == 0 || len(mesh.Faces) == 0 {
		return fmt.Errorf("%w: empty mesh", ErrRender)
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("%w: invalid image size %dx%d", ErrRender, opts.Width, opts.Height)
	}

	az := opts.AzimuthDeg * stdmath.Pi / 180
	el := opts.ElevationDeg * stdmath.Pi / 180
	lightDir := math.Vec3{X: 1, Y: 1, Z: 1}.Normalize()

	// Rotate every vertex into view space: X/Y become screen axes,
	// Z becomes depth toward the camera.
	view := make([]math.Vec3, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		view[i] = rotateView(v, az, el)
	}

	faces := make([]projected, 0, len(mesh.Faces))
	for fi, face := range mesh.Faces {
		pts := make([]math.Vec2, len(face))
		depth := 0.0
		for i, idx := range face {
			pts[i] = math.Vec2{X: view[idx].X, Y: view[idx].Y}
			depth += view[idx].Z
		}
		depth /= float64(len(face))

		shade := 0.3
		if fi < len(mesh.Normals) {
			if d := mesh.Normals[fi].Dot(lightDir); d > 0 {
				shade += 0.7 * d
			}
		}

		faces = append(faces, projected{points: pts, depth: depth, shade: shade})
	}

	// Painter's algorithm: far faces first.
	sort.SliceStable(faces, func(i, j int) bool {
		return faces[i].depth < faces[j].depth
	})

	w := opts.Width * supersample
	h := opts.Height * supersample
	scale, offset := fitView(view, w, h)

	dc := gg.NewContext(w, h)
	dc.SetColor(opts.Background)
	dc.Clear()

	fr, fg, fb, _ := opts.FaceColor.RGBA()
	for _, f := range faces {
		dc.NewSubPath()
		for i, p := range f.points {
			// Flip Y: image space grows downward.
			x := p.X*scale + offset.X
			y := float64(h) - (p.Y*scale + offset.Y)
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.ClosePath()

		dc.SetRGB(
			float64(fr)/0xffff*f.shade,
			float64(fg)/0xffff*f.shade,
			float64(fb)/0xffff*f.shade,
		)
		if opts.Wireframe {
			dc.FillPreserve()
			dc.SetRGB(0.9, 0.9, 0.9)
			dc.SetLineWidth(float64(supersample))
			dc.Stroke()
		} else {
			dc.Fill()
		}
	}

	img := imaging.Resize(dc.Image(), opts.Width, opts.Height, imaging.Lanczos)
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	return nil
}

// rotateView rotates a point by azimuth around Z, then elevation around
// X, yielding view-space coordinates.
func rotateView(v math.Vec3, az, el float64) math.Vec3 {
	sa, ca := stdmath.Sin(az), stdmath.Cos(az)
	se, ce := stdmath.Sin(el), stdmath.Cos(el)

	x := v.X*ca - v.Y*sa
	y := v.X*sa + v.Y*ca
	z := v.Z

	return math.Vec3{
		X: x,
		Y: y*se + z*ce,
		Z: y*ce - z*se,
	}
}

// fitView computes a uniform scale and offset that centers the projected
// mesh in the image with a 10% margin.
func fitView(view []math.Vec3, w, h int) (float64, math.Vec2) {
	bounds := math.BoundsOf(view)
	size := bounds.Size()
	if size.X == 0 && size.Y == 0 {
		return 1, math.Vec2{X: float64(w) / 2, Y: float64(h) / 2}
	}

	margin := 0.9
	scale := stdmath.Inf(1)
	if size.X > 0 {
		scale = float64(w) * margin / size.X
	}
	if size.Y > 0 {
		if s := float64(h) * margin / size.Y; s < scale {
			scale = s
		}
	}

	center := bounds.Center()
	return scale, math.Vec2{
		X: float64(w)/2 - center.X*scale,
		Y: float64(h)/2 - center.Y*scale,
	}
}
