// aviation/legs.go
// Copyright(c) 2024-2026 latgen contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"fmt"

	"github.com/avnav/latgen/math"
	"github.com/avnav/latgen/util"
)

// LegType is the ARINC 424 path-and-termination code for a procedure
// leg. Only the four leg types needed for lateral SID/STAR geometry are
// supported.
type LegType int

const (
	LegCF LegType = iota // course to fix
	LegDF                // direct to fix
	LegRF                // constant radius arc to fix
	LegTF                // track to fix
)

func (t LegType) String() string {
	if t < LegCF || t > LegTF {
		return "invalid"
	}
	return []string{"CF", "DF", "RF", "TF"}[int(t)]
}

func ParseLegType(s string) (LegType, error) {
	switch s {
	case "CF":
		return LegCF, nil
	case "DF":
		return LegDF, nil
	case "RF":
		return LegRF, nil
	case "TF":
		return LegTF, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownLegType)
	}
}

// RFArc carries the parameters specific to an RF leg: the arc center,
// the radius, and which way around the aircraft flies it.
type RFArc struct {
	Center    Fix
	RadiusNM  float32
	Direction TurnDirection
}

// Leg is one segment of a published procedure: the leg type, the fix it
// terminates at, and the parameters that type requires. Parameters a
// type doesn't use are left zero; Arc is nil except for RF legs.
type Leg struct {
	Type   LegType
	Fix    Fix
	Course float32 // CF only: inbound course at the fix, degrees true
	Arc    *RFArc  // RF only
	// FlyOver suppresses turn anticipation at this leg's fix; by default
	// waypoints are treated as fly-by and the transition to the next leg
	// is smoothed with a tangent arc.
	FlyOver bool
}

// Sampling controls how densely leg geometry is approximated by
// polyline points.
type Sampling struct {
	SegmentSpacingNM float32 // spacing of points along straight segments
	ArcStepDegrees   float32 // angular step between points along arcs
}

func DefaultSampling() Sampling {
	return Sampling{SegmentSpacingNM: 2, ArcStepDegrees: 2}
}

// Two points closer than this are considered coincident.
const coincidentNM = 1e-3

// Build generates the polyline for the leg starting from the given
// entry state and returns it along with the exit state the next leg
// continues from. The first polyline point is the entry position and the
// last is the leg's terminating fix.
func (leg Leg) Build(entry FlightState, samp Sampling) ([]math.Point2LL, FlightState, error) {
	return leg.build(entry, samp, nil)
}

func (leg Leg) build(entry FlightState, samp Sampling, fb *flybyArc) ([]math.Point2LL, FlightState, error) {
	switch leg.Type {
	case LegTF, LegDF:
		// TF tracks the great circle between the previous fix and this
		// one; DF proceeds direct from wherever the aircraft is,
		// ignoring any course continuity at the start. Both reduce to
		// the same construction once the entry state is fixed.
		pts := buildDirect(entry, leg.Fix.Location, samp, fb)
		return pts, directExitState(entry, leg.Fix.Location, fb), nil

	case LegCF:
		return buildCF(entry, leg, samp, fb)

	case LegRF:
		return buildRF(entry, leg, samp)

	default:
		return nil, FlightState{}, fmt.Errorf("%d: %w", int(leg.Type), ErrUnknownLegType)
	}
}

// buildDirect returns the great-circle path from the entry position to
// target, with the fly-by arc appended if one was computed.
func buildDirect(entry FlightState, target math.Point2LL, samp Sampling, fb *flybyArc) []math.Point2LL {
	end := target
	if fb != nil {
		end = fb.start
	}

	var pts []math.Point2LL
	if math.NMDistance2LL(entry.Position, end) < coincidentNM {
		pts = []math.Point2LL{end}
	} else {
		pts = math.SampleGreatCircle2LL(entry.Position, end, samp.SegmentSpacingNM)
	}

	if fb != nil {
		pts = append(pts, fb.sample(samp)[1:]...)
	}
	return pts
}

func directExitState(entry FlightState, target math.Point2LL, fb *flybyArc) FlightState {
	if fb != nil {
		return FlightState{Position: fb.end, Course: fb.exitCourse}
	}
	if math.NMDistance2LL(entry.Position, target) < coincidentNM {
		// Zero-length leg: the course is unchanged.
		return FlightState{Position: target, Course: entry.Course}
	}
	return FlightState{Position: target, Course: math.GreatCircleFinalHeading2LL(entry.Position, target)}
}

func buildCF(entry FlightState, leg Leg, samp Sampling, fb *flybyArc) ([]math.Point2LL, FlightState, error) {
	fix := leg.Fix.Location
	crs := leg.Course
	back := math.OppositeHeading(crs)

	d := math.NMDistance2LL(entry.Position, fix)
	if d < coincidentNM {
		return []math.Point2LL{fix}, FlightState{Position: fix, Course: crs}, nil
	}

	// Project the entry position onto the course line through the fix:
	// the line's points lie along the reciprocal course back from the
	// fix.
	radial := math.GreatCircleHeading2LL(fix, entry.Position)
	dev := math.Radians(math.HeadingDifference(radial, back))
	along := d * math.Cos(dev)
	cross := d * math.Sin(dev)

	end := fix
	if fb != nil {
		end = fb.start
	}

	var pts []math.Point2LL
	if cross < 0.1 || along <= 0.1 {
		// Already on course, or abeam/past the fix; go direct and let
		// the course constraint hold only at arrival.
		pts = math.SampleGreatCircle2LL(entry.Position, end, samp.SegmentSpacingNM)
	} else {
		intercept := math.GreatCircleOffset2LL(fix, back, along)
		pts = math.SampleGreatCircle2LL(entry.Position, intercept, samp.SegmentSpacingNM)
		pts = append(pts, math.SampleGreatCircle2LL(intercept, end, samp.SegmentSpacingNM)[1:]...)
	}

	if fb != nil {
		pts = append(pts, fb.sample(samp)[1:]...)
		return pts, FlightState{Position: fb.end, Course: fb.exitCourse}, nil
	}
	return pts, FlightState{Position: fix, Course: crs}, nil
}

func buildRF(entry FlightState, leg Leg, samp Sampling) ([]math.Point2LL, FlightState, error) {
	if leg.Arc == nil {
		return nil, FlightState{}, fmt.Errorf("RF leg at %s has no arc: %w", leg.Fix.Id, ErrMissingLegParameter)
	}

	center := leg.Arc.Center.Location
	fix := leg.Fix.Location

	if math.NMDistance2LL(center, fix) < coincidentNM {
		return nil, FlightState{}, fmt.Errorf("arc center %s coincident with fix %s: %w",
			leg.Arc.Center.Id, leg.Fix.Id, ErrDegenerateLegGeometry)
	}

	radius := leg.Arc.RadiusNM
	if radius <= 0 {
		// No published radius; take it from the entry position, as the
		// previous leg is required to end on the arc.
		radius = math.NMDistance2LL(center, entry.Position)
	}
	if radius < coincidentNM {
		return nil, FlightState{}, fmt.Errorf("arc at %s has zero radius: %w", leg.Fix.Id, ErrDegenerateLegGeometry)
	}

	clockwise := leg.Arc.Direction == TurnRight
	startHdg := math.GreatCircleHeading2LL(center, entry.Position)
	endHdg := math.GreatCircleHeading2LL(center, fix)

	if math.NMDistance2LL(entry.Position, fix) < coincidentNM {
		exit := FlightState{Position: fix, Course: arcExitCourse(endHdg, clockwise)}
		return []math.Point2LL{fix}, exit, nil
	}

	pts := math.SampleArc2LL(center, radius, startHdg, endHdg, clockwise, samp.ArcStepDegrees)
	// Pin the endpoints so the leg joins its neighbors exactly even if
	// the entry position is slightly off the published radius.
	pts[0] = entry.Position
	pts[len(pts)-1] = fix

	exit := FlightState{Position: fix, Course: arcExitCourse(endHdg, clockwise)}
	return pts, exit, nil
}

// arcExitCourse returns the arc's tangent course at the radial endHdg
// from the center; for a clockwise (right) turn the tangent leads the
// radial by 90 degrees, for counter-clockwise it trails by 90.
func arcExitCourse(endHdg float32, clockwise bool) float32 {
	return math.NormalizeHeading(endHdg + util.Select(clockwise, float32(90), float32(-90)))
}

// flybyArc is a tangent constant-radius turn inserted at a fly-by
// waypoint: the aircraft leaves the inbound course at start, arcs about
// center, and joins the outbound course at end.
type flybyArc struct {
	start, end, center math.Point2LL
	radius             float32
	clockwise          bool
	exitCourse         float32
}

func (fb *flybyArc) sample(samp Sampling) []math.Point2LL {
	pts := math.SampleArc2LL(fb.center, fb.radius,
		math.GreatCircleHeading2LL(fb.center, fb.start),
		math.GreatCircleHeading2LL(fb.center, fb.end),
		fb.clockwise, samp.ArcStepDegrees)
	pts[0] = fb.start
	pts[len(pts)-1] = fb.end
	return pts
}

// computeFlyby returns the tangent fixed-radius turn at the vertex for
// the course change from (prev -> vertex) to (vertex -> next), or nil if
// the turn is too shallow, too sharp, or too large to fit between the
// surrounding fixes, in which case the waypoint degrades to fly-over.
func computeFlyby(prev, vertex, next math.Point2LL, radiusNM float32) *flybyArc {
	d1 := math.NMDistance2LL(prev, vertex)
	d2 := math.NMDistance2LL(vertex, next)
	if d1 < coincidentNM || d2 < coincidentNM || radiusNM <= 0 {
		return nil
	}

	inbound := math.GreatCircleFinalHeading2LL(prev, vertex)
	outbound := math.GreatCircleHeading2LL(vertex, next)
	turn := math.HeadingSignedTurn(inbound, outbound) // positive: right turn

	a := math.Abs(turn)
	if a < 3 || a > 135 {
		return nil
	}

	// Distance from the vertex back to the tangent points.
	t := radiusNM * math.Tan(math.Radians(a/2))
	if t > 0.7*d1 || t > 0.7*d2 {
		return nil
	}

	start := math.GreatCircleOffset2LL(vertex, math.OppositeHeading(inbound), t)
	end := math.GreatCircleOffset2LL(vertex, outbound, t)
	side := util.Select(turn > 0, float32(90), float32(-90))
	center := math.GreatCircleOffset2LL(start, math.NormalizeHeading(inbound+side), radiusNM)

	return &flybyArc{
		start:      start,
		end:        end,
		center:     center,
		radius:     radiusNM,
		clockwise:  turn > 0,
		exitCourse: outbound,
	}
}
