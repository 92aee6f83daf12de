// Package text loads fonts, extracts glyph outlines as closed 2D
// contours, and lays out text for mesh generation.
package text

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"honnef.co/go/curve"

	"github.com/Faultbox/text3d/pkg/math"
)

// Text errors.
var (
	ErrFontLoad       = errors.New("font load failed")
	ErrTextProcessing = errors.New("text processing failed")
)

// flattenTolerance is the maximum distance between a glyph's Bézier
// curves and their polyline approximation, in text units.
const flattenTolerance = 0.1

// FontMetrics holds scaled font metrics in text units.
type FontMetrics struct {
	Ascent     float64
	Descent    float64
	LineHeight float64
	UnitsPerEm int
}

// FontLoader parses a TTF/OTF font and extracts glyph outlines at a
// fixed size. The internal sfnt buffer is reused between calls, so a
// FontLoader must not be shared between goroutines.
type FontLoader struct {
	font *sfnt.Font
	size float64
	buf  sfnt.Buffer
}

// NewFontLoader creates an empty FontLoader; call LoadFont before use.
func NewFontLoader() *FontLoader {
	return &FontLoader{}
}

// LoadFont parses the font file at path and fixes the glyph size in
// points.
func (l *FontLoader) LoadFont(path string, size float64) error {
	if size <= 0 {
		return fmt.Errorf("%w: font size must be positive", ErrFontLoad)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", ErrFontLoad, path, err)
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return fmt.Errorf("%w: parsing %s: %v", ErrFontLoad, path, err)
	}
	l.font = f
	l.size = size
	return nil
}

// Loaded reports whether a font has been loaded.
func (l *FontLoader) Loaded() bool {
	return l.font != nil
}

// Size returns the configured glyph size.
func (l *FontLoader) Size() float64 {
	return l.size
}

// Metrics returns the font's vertical metrics scaled to the configured
// size.
func (l *FontLoader) Metrics() (FontMetrics, error) {
	if l.font == nil {
		return FontMetrics{}, fmt.Errorf("%w: no font loaded", ErrFontLoad)
	}
	ppem := fixed.Int26_6(l.size * 64)
	m, err := l.font.Metrics(&l.buf, ppem, 0)
	if err != nil {
		return FontMetrics{}, fmt.Errorf("%w: reading metrics: %v", ErrFontLoad, err)
	}
	return FontMetrics{
		Ascent:     float64(m.Ascent) / 64.0,
		Descent:    float64(m.Descent) / 64.0,
		LineHeight: float64(m.Height) / 64.0,
		UnitsPerEm: int(l.font.UnitsPerEm()),
	}, nil
}

// CharacterOutline returns the closed contours of a character's glyph as
// 2D point sequences in text units, Y up. Characters without an outline
// (such as space) yield no contours. Contours that flatten to fewer than
// 3 points are dropped.
func (l *FontLoader) CharacterOutline(r rune) ([][]math.Vec2, error) {
	if l.font == nil {
		return nil, fmt.Errorf("%w: no font loaded", ErrFontLoad)
	}

	gid, err := l.font.GlyphIndex(&l.buf, r)
	if err != nil {
		return nil, fmt.Errorf("%w: glyph index for %q: %v", ErrFontLoad, r, err)
	}
	if gid == 0 {
		return nil, fmt.Errorf("%w: no glyph for %q", ErrFontLoad, r)
	}

	ppem := fixed.Int26_6(l.size * 64)
	segments, err := l.font.LoadGlyph(&l.buf, gid, ppem, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: loading glyph for %q: %v", ErrFontLoad, r, err)
	}
	if len(segments) == 0 {
		return nil, nil
	}

	return flattenSegments(segments), nil
}

// Advance returns the horizontal advance of a character in text units,
// or an error if the font cannot provide it.
func (l *FontLoader) Advance(r rune) (float64, error) {
	if l.font == nil {
		return 0, fmt.Errorf("%w: no font loaded", ErrFontLoad)
	}
	gid, err := l.font.GlyphIndex(&l.buf, r)
	if err != nil || gid == 0 {
		return 0, fmt.Errorf("%w: no glyph for %q", ErrFontLoad, r)
	}
	ppem := fixed.Int26_6(l.size * 64)
	adv, err := l.font.GlyphAdvance(&l.buf, gid, ppem, 0)
	if err != nil {
		return 0, fmt.Errorf("%w: advance for %q: %v", ErrFontLoad, r, err)
	}
	return float64(adv) / 64.0, nil
}

// flattenSegments converts sfnt glyph segments into closed polyline
// contours. Curves are flattened within flattenTolerance. The font's
// Y-down axis is flipped so contours live in Y-up geometry space.
func flattenSegments(segments []sfnt.Segment) [][]math.Vec2 {
	var path curve.BezPath
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			path.MoveTo(segPoint(seg.Args[0]))
		case sfnt.SegmentOpLineTo:
			path.LineTo(segPoint(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			path.QuadTo(segPoint(seg.Args[0]), segPoint(seg.Args[1]))
		case sfnt.SegmentOpCubeTo:
			path.CubicTo(segPoint(seg.Args[0]), segPoint(seg.Args[1]), segPoint(seg.Args[2]))
		}
	}

	var contours [][]math.Vec2
	var current []math.Vec2

	flush := func() {
		if len(current) >= 3 {
			contours = append(contours, current)
		}
		current = nil
	}

	for el := range path.Flatten(flattenTolerance) {
		switch el.Kind {
		case curve.MoveToKind:
			flush()
			current = append(current, math.Vec2{X: el.P0.X, Y: -el.P0.Y})
		case curve.LineToKind:
			current = append(current, math.Vec2{X: el.P0.X, Y: -el.P0.Y})
		case curve.ClosePathKind:
			flush()
		}
	}
	flush()

	return contours
}

// segPoint converts a 26.6 fixed-point font coordinate to a curve point.
func segPoint(p fixed.Point26_6) curve.Point {
	return curve.Point{X: float64(p.X) / 64.0, Y: float64(p.Y) / 64.0}
}
