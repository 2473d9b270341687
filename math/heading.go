// math/heading.go
// Copyright(c) 2024-2026 latgen contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

// NormalizeHeading reduces a heading to [0,360).
func NormalizeHeading(h float32) float32 {
	if h < 0 {
		return 360 - NormalizeHeading(-h)
	}
	return Mod(h, 360)
}

func OppositeHeading(h float32) float32 {
	return NormalizeHeading(h + 180)
}

// HeadingDifference returns the minimum difference between two headings.
// (i.e., the result is always in the range [0,180].)
func HeadingDifference(a float32, b float32) float32 {
	var d float32
	if a > b {
		d = a - b
	} else {
		d = b - a
	}
	if d > 180 {
		d = 360 - d
	}
	return d
}

// HeadingSignedTurn returns the signed turn from the heading cur to the
// heading target, in (-180,180]: positive for a right turn, negative for
// a left turn. First find the angle to rotate the target heading by so
// that it's aligned with 180 degrees; this lets us not worry about the
// complexities of the wrap around at 0/360.
func HeadingSignedTurn(cur, target float32) float32 {
	rot := NormalizeHeading(180 - target)
	return 180 - NormalizeHeading(cur+rot) // w.r.t. 180 target
}
