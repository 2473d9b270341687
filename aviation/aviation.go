// aviation/aviation.go
// Copyright(c) 2024-2026 latgen contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"slices"
	"strings"

	"github.com/avnav/latgen/math"
)

// Fix is a named geographic point used to define procedure and route
// geometry. Fixes are immutable once loaded from the database.
type Fix struct {
	Id       string
	Location math.Point2LL
}

type Runway struct {
	Id        string
	Heading   float32 // true course of the runway, degrees
	Threshold math.Point2LL
	Elevation int
}

type Airport struct {
	Icao     string
	Name     string
	Location math.Point2LL
	Runways  []Runway
	SIDs     map[string]Procedure
	STARs    map[string]Procedure
}

// TidyRunway strips any approach suffix ("22L.ILS" -> "22L") and
// whitespace from a runway identifier.
func TidyRunway(r string) string {
	r, _, _ = strings.Cut(r, ".")
	return strings.TrimSpace(r)
}

func (ap *Airport) LookupRunway(rwy string) (Runway, bool) {
	rwy = TidyRunway(rwy)
	idx := slices.IndexFunc(ap.Runways, func(r Runway) bool { return r.Id == rwy })
	if idx == -1 {
		return Runway{}, false
	}
	return ap.Runways[idx], true
}

// TurnDirection specifies the direction of a turn.
type TurnDirection int

const (
	TurnLeft TurnDirection = iota
	TurnRight
)

func (t TurnDirection) String() string {
	return []string{"left", "right"}[int(t)]
}

// FlightState is the lateral state threaded through leg construction:
// where the aircraft is and the course it is currently tracking. Every
// leg's geometry begins at the previous leg's ending FlightState (or at
// the runway for the first leg of a SID).
type FlightState struct {
	Position math.Point2LL
	Course   float32 // degrees, true
}

// StateAtRunway returns the initial FlightState for a departure from the
// given runway: at the threshold, tracking the runway course.
func StateAtRunway(rwy Runway) FlightState {
	return FlightState{Position: rwy.Threshold, Course: rwy.Heading}
}
