// math/core.go
// Copyright(c) 2024-2026 latgen contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"

	"golang.org/x/exp/constraints"
)

// Radians converts an angle expressed in degrees to radians
func Radians(d float32) float32 {
	return d / 180 * gomath.Pi
}

// We mostly work with float32, so it's handy to have wrappers around the
// math package transcendentals that save all of the casting.

func Sin(a float32) float32 {
	return float32(gomath.Sin(float64(a)))
}

func Cos(a float32) float32 {
	return float32(gomath.Cos(float64(a)))
}

func Tan(a float32) float32 {
	return float32(gomath.Tan(float64(a)))
}

func Mod(a, b float32) float32 {
	return float32(gomath.Mod(float64(a), float64(b)))
}

func Ceil(v float32) float32 {
	return float32(gomath.Ceil(float64(v)))
}

func Abs[V constraints.Integer | constraints.Float](x V) V {
	if x < 0 {
		return -x
	}
	return x
}

func Sqr[V constraints.Integer | constraints.Float](v V) V { return v * v }

func Clamp[T constraints.Ordered](x T, low T, high T) T {
	if x < low {
		return low
	} else if x > high {
		return high
	}
	return x
}
