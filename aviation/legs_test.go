// aviation/legs_test.go
// Copyright(c) 2024-2026 latgen contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"errors"
	"testing"

	"github.com/avnav/latgen/math"
)

func mkfix(id string, lon, lat float32) Fix {
	return Fix{Id: id, Location: math.Point2LL{lon, lat}}
}

func TestBuildTFLeg(t *testing.T) {
	// Departure runway at Frankfurt, direct to ANEK northeast of the
	// field.
	entry := FlightState{Position: math.Point2LL{8.5622, 50.0379}, Course: 69.8}
	anek := mkfix("ANEK", 8.90, 50.20)

	samp := DefaultSampling()
	leg := Leg{Type: LegTF, Fix: anek}
	pts, exit, err := leg.Build(entry, samp)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(pts) < 2 {
		t.Fatalf("expected multiple points, got %d", len(pts))
	}
	if pts[0] != entry.Position {
		t.Errorf("first point %v, expected entry position %v", pts[0], entry.Position)
	}
	if pts[len(pts)-1] != anek.Location {
		t.Errorf("last point %v, expected fix %v", pts[len(pts)-1], anek.Location)
	}

	for i := 1; i < len(pts); i++ {
		if d := math.NMDistance2LL(pts[i-1], pts[i]); d > samp.SegmentSpacingNM+0.01 {
			t.Errorf("points %d-%d are %v nm apart, expected <= %v", i-1, i, d, samp.SegmentSpacingNM)
		}
	}

	if exit.Position != anek.Location {
		t.Errorf("exit position %v, expected %v", exit.Position, anek.Location)
	}
	want := math.GreatCircleFinalHeading2LL(entry.Position, anek.Location)
	if math.HeadingDifference(exit.Course, want) > 0.1 {
		t.Errorf("exit course %v, expected %v", exit.Course, want)
	}
}

func TestBuildTFLegDegenerate(t *testing.T) {
	// Zero-length leg: entry already at the fix.
	fix := mkfix("HERE", 8.5, 50.0)
	entry := FlightState{Position: fix.Location, Course: 123}

	pts, exit, err := (Leg{Type: LegTF, Fix: fix}).Build(entry, DefaultSampling())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(pts) != 1 || pts[0] != fix.Location {
		t.Errorf("expected single point at fix, got %v", pts)
	}
	if exit.Course != 123 {
		t.Errorf("expected course carried through unchanged, got %v", exit.Course)
	}
}

func TestBuildDFLegIgnoresEntryCourse(t *testing.T) {
	entry := FlightState{Position: math.Point2LL{8.0, 50.0}, Course: 350}
	fix := mkfix("DST", 9.0, 50.5)

	pts, _, err := (Leg{Type: LegDF, Fix: fix}).Build(entry, DefaultSampling())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// The path is the direct great circle regardless of the entry
	// course, so its length matches the point-to-point distance.
	direct := math.NMDistance2LL(entry.Position, fix.Location)
	if d := PolylineDistanceNM(pts); math.Abs(d-direct) > 0.05 {
		t.Errorf("path length %v nm, expected direct distance %v nm", d, direct)
	}
}

func TestBuildCFLegIntercept(t *testing.T) {
	// Entry displaced well left of the course line; the path should end
	// arriving at the fix on the published course.
	fix := mkfix("CRS", 9.0, 50.0)
	crs := float32(90)
	entry := FlightState{Position: math.Point2LL{8.0, 50.3}, Course: 90}

	pts, exit, err := (Leg{Type: LegCF, Fix: fix, Course: crs}).Build(entry, DefaultSampling())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if pts[len(pts)-1] != fix.Location {
		t.Errorf("last point %v, expected fix %v", pts[len(pts)-1], fix.Location)
	}
	if exit.Course != crs {
		t.Errorf("exit course %v, expected %v", exit.Course, crs)
	}

	// The final segment should be flown on the leg course.
	arrival := math.GreatCircleFinalHeading2LL(pts[len(pts)-2], pts[len(pts)-1])
	if math.HeadingDifference(arrival, crs) > 1 {
		t.Errorf("arrival course %v, expected within 1 degree of %v", arrival, crs)
	}
}

func TestBuildCFLegOnCourse(t *testing.T) {
	// Entry already on the course line reduces to the direct path.
	fix := mkfix("CRS", 9.0, 50.0)
	entry := FlightState{Position: math.GreatCircleOffset2LL(fix.Location, 270, 20), Course: 90}

	pts, _, err := (Leg{Type: LegCF, Fix: fix, Course: 90}).Build(entry, DefaultSampling())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	direct := math.NMDistance2LL(entry.Position, fix.Location)
	if d := PolylineDistanceNM(pts); math.Abs(d-direct) > 0.05 {
		t.Errorf("path length %v nm, expected direct distance %v nm", d, direct)
	}
}

func TestBuildRFLeg(t *testing.T) {
	center := mkfix("CTR", 8.5, 50.0)
	const radius = 5

	entryPos := math.GreatCircleOffset2LL(center.Location, 0, radius)
	fixPos := math.GreatCircleOffset2LL(center.Location, 90, radius)

	for _, dir := range []TurnDirection{TurnRight, TurnLeft} {
		leg := Leg{
			Type: LegRF,
			Fix:  Fix{Id: "END", Location: fixPos},
			Arc:  &RFArc{Center: center, RadiusNM: radius, Direction: dir},
		}
		pts, exit, err := leg.Build(FlightState{Position: entryPos}, DefaultSampling())
		if err != nil {
			t.Fatalf("%s: Build: %v", dir, err)
		}

		if pts[0] != entryPos {
			t.Errorf("%s: first point %v, expected entry %v", dir, pts[0], entryPos)
		}
		if pts[len(pts)-1] != fixPos {
			t.Errorf("%s: last point %v, expected fix %v", dir, pts[len(pts)-1], fixPos)
		}

		// Every sampled point stays on the arc.
		for i, p := range pts {
			if d := math.NMDistance2LL(center.Location, p); math.Abs(d-radius) > 0.05 {
				t.Errorf("%s: point %d is %v nm from center, expected %v", dir, i, d, radius)
			}
		}

		// The right turn takes the short way around (90 degrees of
		// arc), the left turn the long way (270).
		arcLen := PolylineDistanceNM(pts)
		quarter := float32(radius * 2 * 3.14159 / 4)
		want := quarter
		if dir == TurnLeft {
			want = 3 * quarter
		}
		if math.Abs(arcLen-want) > 0.25 {
			t.Errorf("%s: arc length %v nm, expected ~%v", dir, arcLen, want)
		}

		// Exit course is tangent to the arc at the fix.
		wantCourse := float32(180) // clockwise tangent at the 090 radial
		if dir == TurnLeft {
			wantCourse = 0
		}
		if math.HeadingDifference(exit.Course, wantCourse) > 0.5 {
			t.Errorf("%s: exit course %v, expected %v", dir, exit.Course, wantCourse)
		}
	}
}

func TestBuildRFLegErrors(t *testing.T) {
	center := mkfix("CTR", 8.5, 50.0)
	fix := mkfix("END", 8.6, 50.0)
	entry := FlightState{Position: math.Point2LL{8.4, 50.0}}

	_, _, err := (Leg{Type: LegRF, Fix: fix}).Build(entry, DefaultSampling())
	if !errors.Is(err, ErrMissingLegParameter) {
		t.Errorf("missing arc: got %v, expected ErrMissingLegParameter", err)
	}

	leg := Leg{Type: LegRF, Fix: center, Arc: &RFArc{Center: center, RadiusNM: 5}}
	_, _, err = leg.Build(entry, DefaultSampling())
	if !errors.Is(err, ErrDegenerateLegGeometry) {
		t.Errorf("coincident center: got %v, expected ErrDegenerateLegGeometry", err)
	}
}

func TestBuildRFLegRadiusFromEntry(t *testing.T) {
	// No published radius: it is inferred from the entry position.
	center := mkfix("CTR", 8.5, 50.0)
	entryPos := math.GreatCircleOffset2LL(center.Location, 180, 7)
	fixPos := math.GreatCircleOffset2LL(center.Location, 270, 7)

	leg := Leg{
		Type: LegRF,
		Fix:  Fix{Id: "END", Location: fixPos},
		Arc:  &RFArc{Center: center, Direction: TurnRight},
	}
	pts, _, err := leg.Build(FlightState{Position: entryPos}, DefaultSampling())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for i, p := range pts {
		if d := math.NMDistance2LL(center.Location, p); math.Abs(d-7) > 0.05 {
			t.Errorf("point %d is %v nm from center, expected 7", i, d)
		}
	}
}

func TestComputeFlyby(t *testing.T) {
	// Northbound to the vertex, then eastbound: a 90 degree right turn.
	vertex := math.Point2LL{8.5, 50.0}
	prev := math.GreatCircleOffset2LL(vertex, 180, 20)
	next := math.GreatCircleOffset2LL(vertex, 90, 20)
	const radius = 2

	fb := computeFlyby(prev, vertex, next, radius)
	if fb == nil {
		t.Fatal("expected a fly-by arc for a 90 degree turn")
	}
	if !fb.clockwise {
		t.Error("expected a clockwise arc for a right turn")
	}

	// Tangent points are radius*tan(45) = radius back from and past the
	// vertex.
	if d := math.NMDistance2LL(fb.start, vertex); math.Abs(d-radius) > 0.05 {
		t.Errorf("start is %v nm from vertex, expected %v", d, radius)
	}
	if d := math.NMDistance2LL(fb.end, vertex); math.Abs(d-radius) > 0.05 {
		t.Errorf("end is %v nm from vertex, expected %v", d, radius)
	}

	// The center is equidistant from both tangent points.
	if d := math.NMDistance2LL(fb.center, fb.start); math.Abs(d-radius) > 0.05 {
		t.Errorf("center-start distance %v, expected %v", d, radius)
	}
	if d := math.NMDistance2LL(fb.center, fb.end); math.Abs(d-radius) > 0.1 {
		t.Errorf("center-end distance %v, expected %v", d, radius)
	}

	if math.HeadingDifference(fb.exitCourse, 90) > 0.5 {
		t.Errorf("exit course %v, expected 90", fb.exitCourse)
	}
}

func TestComputeFlybySkipped(t *testing.T) {
	vertex := math.Point2LL{8.5, 50.0}
	prev := math.GreatCircleOffset2LL(vertex, 180, 20)

	tests := []struct {
		name string
		next math.Point2LL
		r    float32
	}{
		{"shallow turn", math.GreatCircleOffset2LL(vertex, 1, 20), 2},
		{"sharp turn", math.GreatCircleOffset2LL(vertex, 170, 20), 2},
		{"arc too large", math.GreatCircleOffset2LL(vertex, 90, 1), 10},
		{"zero radius", math.GreatCircleOffset2LL(vertex, 90, 20), 0},
	}
	for _, tc := range tests {
		if fb := computeFlyby(prev, vertex, tc.next, tc.r); fb != nil {
			t.Errorf("%s: expected nil fly-by arc", tc.name)
		}
	}
}

func TestParseLegType(t *testing.T) {
	for _, s := range []string{"CF", "DF", "RF", "TF"} {
		ty, err := ParseLegType(s)
		if err != nil {
			t.Errorf("%s: %v", s, err)
		}
		if ty.String() != s {
			t.Errorf("%s: round-tripped to %s", s, ty)
		}
	}
	if _, err := ParseLegType("VA"); !errors.Is(err, ErrUnknownLegType) {
		t.Errorf("VA: got %v, expected ErrUnknownLegType", err)
	}
}
