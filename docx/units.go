// Package docx builds WordprocessingML table structures from the annotated
// table model and writes minimal document packages. Lengths follow OOXML
// conventions: twentieths of a point for widths and margins, eighths of a
// point for border sizes, half-points for font sizes.
package docx

import "math"

// PxToTwips converts CSS pixels to twentieths of a point.
// 1px = 0.75pt = 15 twentieths.
func PxToTwips(px float64) int {
	if px <= 0 {
		return 0
	}
	return int(math.Round(px * 15))
}

// PxToEighths converts a border width in pixels to eighths of a point,
// floored at 1 so a nonzero border never rounds to invisible.
func PxToEighths(px float64) int {
	e := int(math.Round(px * 0.75 * 8))
	if e < 1 {
		e = 1
	}
	return e
}

// PxToHalfPoints converts a font size in pixels to half-points.
func PxToHalfPoints(px float64) int {
	return int(math.Round(px * 1.5))
}
