// aviation/procedure.go
// Copyright(c) 2024-2026 latgen contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"fmt"

	"github.com/avnav/latgen/math"
)

// Procedure is a published SID or STAR: an ordered sequence of legs
// flown in order. Runway is the runway the procedure is published for,
// or "ALL" if it applies to any runway at the airport.
type Procedure struct {
	Name   string
	Runway string
	Legs   []Leg
}

func (p *Procedure) AppliesToRunway(rwy string) bool {
	return p.Runway == "ALL" || p.Runway == TidyRunway(rwy)
}

// EntryFix returns the fix the procedure's first leg terminates at.
func (p *Procedure) EntryFix() (Fix, bool) {
	if len(p.Legs) == 0 {
		return Fix{}, false
	}
	return p.Legs[0].Fix, true
}

// Assemble chains the procedure's legs into a single continuous
// polyline, threading each leg's exit state into the next leg's entry
// state. turnRadiusNM is used for fly-by turn smoothing at waypoint
// transitions; pass 0 to disable smoothing. The duplicated boundary
// point where one leg ends and the next begins is dropped so the
// polyline has no doubled vertices.
func (p *Procedure) Assemble(entry FlightState, turnRadiusNM float32, samp Sampling) ([]math.Point2LL, FlightState, error) {
	if len(p.Legs) == 0 {
		return nil, FlightState{}, fmt.Errorf("%s: %w", p.Name, ErrEmptyProcedure)
	}

	var polyline []math.Point2LL
	state := entry

	for i, leg := range p.Legs {
		var fb *flybyArc
		if turnRadiusNM > 0 && !leg.FlyOver && leg.Type != LegRF && i+1 < len(p.Legs) && p.Legs[i+1].Type != LegRF {
			// ARINC 424 requires the legs surrounding an RF to be
			// tangent to it, so no anticipation turn is added there.
			fb = computeFlyby(state.Position, leg.Fix.Location, p.Legs[i+1].Fix.Location, turnRadiusNM)
		}

		pts, next, err := leg.build(state, samp, fb)
		if err != nil {
			return nil, FlightState{}, fmt.Errorf("%s: leg %d (%s): %w", p.Name, i, leg.Type, err)
		}

		if len(polyline) > 0 && len(pts) > 0 && polyline[len(polyline)-1] == pts[0] {
			pts = pts[1:]
		}
		polyline = append(polyline, pts...)
		state = next
	}

	return polyline, state, nil
}

// PolylineDistanceNM returns the cumulative great-circle length of a
// polyline in nautical miles.
func PolylineDistanceNM(pts []math.Point2LL) float32 {
	var d float32
	for i := 1; i < len(pts); i++ {
		d += math.NMDistance2LL(pts[i-1], pts[i])
	}
	return d
}
