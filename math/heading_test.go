// math/heading_test.go
// Copyright(c) 2024-2026 latgen contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import "testing"

func TestNormalizeHeading(t *testing.T) {
	tests := [][2]float32{
		{0, 0},
		{360, 0},
		{365, 5},
		{-5, 355},
		{-365, 355},
		{725, 5},
	}
	for _, tc := range tests {
		if got := NormalizeHeading(tc[0]); got != tc[1] {
			t.Errorf("NormalizeHeading(%v) = %v, expected %v", tc[0], got, tc[1])
		}
	}
}

func TestHeadingDifference(t *testing.T) {
	tests := [][3]float32{
		{0, 0, 0},
		{10, 350, 20},
		{350, 10, 20},
		{90, 270, 180},
		{45, 50, 5},
	}
	for _, tc := range tests {
		if got := HeadingDifference(tc[0], tc[1]); got != tc[2] {
			t.Errorf("HeadingDifference(%v, %v) = %v, expected %v", tc[0], tc[1], got, tc[2])
		}
	}
}

func TestHeadingSignedTurn(t *testing.T) {
	tests := [][3]float32{
		{0, 90, 90},    // right turn
		{90, 0, -90},   // left turn
		{350, 10, 20},  // right across north
		{10, 350, -20}, // left across north
		{0, 180, 180},  // reversal reported as a right turn
		{45, 45, 0},
	}
	for _, tc := range tests {
		if got := HeadingSignedTurn(tc[0], tc[1]); got != tc[2] {
			t.Errorf("HeadingSignedTurn(%v, %v) = %v, expected %v", tc[0], tc[1], got, tc[2])
		}
	}
}

func TestOppositeHeading(t *testing.T) {
	tests := [][2]float32{{90, 270}, {270, 90}, {0, 180}, {359, 179}}
	for _, tc := range tests {
		if got := OppositeHeading(tc[0]); got != tc[1] {
			t.Errorf("OppositeHeading(%v) = %v, expected %v", tc[0], got, tc[1])
		}
	}
}
