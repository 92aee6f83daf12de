package geometry

import "github.com/Faultbox/text3d/pkg/math"

// ValidateOutline reports whether an outline is usable for extrusion:
// at least 3 points, all of them finite.
func ValidateOutline(outline []math.Vec2) bool {
	if len(outline) < 3 {
		return false
	}
	for _, p := range outline {
		if !p.IsFinite() {
			return false
		}
	}
	return true
}

// OutlineArea returns the signed area of an outline via the shoelace
// formula: positive for counter-clockwise winding, negative for
// clockwise.
func OutlineArea(outline []math.Vec2) float64 {
	if len(outline) < 3 {
		return 0
	}
	area := 0.0
	n := len(outline)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += outline[i].X * outline[j].Y
		area -= outline[j].X * outline[i].Y
	}
	return area / 2.0
}

// OutlineClockwise reports whether the outline winds clockwise.
func OutlineClockwise(outline []math.Vec2) bool {
	return OutlineArea(outline) < 0
}
