// aviation/db.go
// Copyright(c) 2024-2026 latgen contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"encoding/json"
	"os"

	"github.com/avnav/latgen/log"
	"github.com/avnav/latgen/math"
	"github.com/avnav/latgen/util"
)

// StaticDatabase is the loaded navigation database: the global fix set
// plus airports with their runways and published procedures. It is
// read-only once loaded and safe to share across concurrent trajectory
// generations.
type StaticDatabase struct {
	Airports map[string]*Airport
	Fixes    map[string]Fix
}

func (db *StaticDatabase) LookupAirport(icao string) (*Airport, bool) {
	ap, ok := db.Airports[icao]
	return ap, ok
}

func (db *StaticDatabase) LookupFix(id string) (Fix, bool) {
	f, ok := db.Fixes[id]
	return f, ok
}

// AllFixes returns the fix set as a slice, ordered by identifier so the
// result is deterministic.
func (db *StaticDatabase) AllFixes() []Fix {
	return util.MapSlice(util.SortedMapKeys(db.Fixes), func(id string) Fix { return db.Fixes[id] })
}

// LoadDatabase reads the navigation database from the resources
// directory. Validation problems are reported and are fatal; a
// malformed database can't be partially used.
func LoadDatabase(lg *log.Logger) *StaticDatabase {
	var e util.ErrorLogger
	db := ParseDatabase(util.LoadResource("fixes.json.zst"), util.LoadResource("airports.json.zst"), &e)
	if e.HaveErrors() {
		e.PrintErrors(lg)
		os.Exit(1)
	}

	lg.Info("loaded navigation database", "airports", len(db.Airports), "fixes", len(db.Fixes))
	return db
}

// JSON wire formats for the database resources. Locations are stored
// as [longitude, latitude] pairs, matching the in-memory Point2LL
// layout.
type dbAirport struct {
	Name     string                 `json:"name"`
	Location math.Point2LL          `json:"location"`
	Runways  []dbRunway             `json:"runways"`
	SIDs     map[string]dbProcedure `json:"sids"`
	STARs    map[string]dbProcedure `json:"stars"`
}

type dbRunway struct {
	Id        string        `json:"id"`
	Heading   float32       `json:"heading"`
	Threshold math.Point2LL `json:"threshold"`
	Elevation int           `json:"elevation"`
}

type dbProcedure struct {
	Runway string  `json:"runway"`
	Legs   []dbLeg `json:"legs"`
}

type dbLeg struct {
	Type    string  `json:"type"`
	Fix     string  `json:"fix"`
	Course  float32 `json:"course,omitempty"`
	FlyOver bool    `json:"flyover,omitempty"`
	Arc     *dbArc  `json:"arc,omitempty"`
}

type dbArc struct {
	Center    string  `json:"center"`
	RadiusNM  float32 `json:"radius"`
	Direction string  `json:"direction"` // "left" or "right"
}

// ParseDatabase decodes and validates the fix and airport JSON,
// resolving each procedure leg's fix references against the fix set.
// Problems are accumulated in the provided ErrorLogger rather than
// aborting at the first, so a bad database is diagnosed in one pass.
func ParseDatabase(fixesJSON, airportsJSON []byte, e *util.ErrorLogger) *StaticDatabase {
	db := &StaticDatabase{
		Airports: make(map[string]*Airport),
		Fixes:    make(map[string]Fix),
	}

	e.Push("fixes")
	var rawFixes map[string]math.Point2LL
	if err := json.Unmarshal(fixesJSON, &rawFixes); err != nil {
		e.Error(err)
	}
	for id, loc := range rawFixes {
		if loc.Latitude() < -90 || loc.Latitude() > 90 || loc.Longitude() <= -180 || loc.Longitude() > 180 {
			e.ErrorString("%s: location %s out of range", id, loc.DDString())
			continue
		}
		db.Fixes[id] = Fix{Id: id, Location: loc}
	}
	e.Pop()

	var rawAirports map[string]dbAirport
	if err := json.Unmarshal(airportsJSON, &rawAirports); err != nil {
		e.Push("airports")
		e.Error(err)
		e.Pop()
		return db
	}

	for icao, raw := range rawAirports {
		e.Push(icao)
		ap := &Airport{
			Icao:     icao,
			Name:     raw.Name,
			Location: raw.Location,
			SIDs:     make(map[string]Procedure),
			STARs:    make(map[string]Procedure),
		}

		for _, r := range raw.Runways {
			if r.Heading < 0 || r.Heading >= 360 {
				e.ErrorString("runway %s: heading %v out of range", r.Id, r.Heading)
			}
			ap.Runways = append(ap.Runways, Runway{
				Id:        TidyRunway(r.Id),
				Heading:   r.Heading,
				Threshold: r.Threshold,
				Elevation: r.Elevation,
			})
		}

		for name, rp := range raw.SIDs {
			e.Push("SID " + name)
			if proc, ok := db.parseProcedure(name, rp, ap, e); ok {
				ap.SIDs[name] = proc
			}
			e.Pop()
		}
		for name, rp := range raw.STARs {
			e.Push("STAR " + name)
			if proc, ok := db.parseProcedure(name, rp, ap, e); ok {
				ap.STARs[name] = proc
			}
			e.Pop()
		}

		db.Airports[icao] = ap
		e.Pop()
	}

	return db
}

func (db *StaticDatabase) parseProcedure(name string, raw dbProcedure, ap *Airport, e *util.ErrorLogger) (Procedure, bool) {
	proc := Procedure{Name: name, Runway: raw.Runway}

	if raw.Runway != "ALL" {
		if _, ok := ap.LookupRunway(raw.Runway); !ok {
			e.ErrorString("runway %q unknown at %s", raw.Runway, ap.Icao)
		}
	}
	if len(raw.Legs) == 0 {
		e.ErrorString("no legs")
		return Procedure{}, false
	}

	ok := true
	for i, rl := range raw.Legs {
		ty, err := ParseLegType(rl.Type)
		if err != nil {
			e.Error(err)
			ok = false
			continue
		}

		fix, found := db.Fixes[rl.Fix]
		if !found {
			e.ErrorString("leg %d: fix %q not in database", i, rl.Fix)
			ok = false
			continue
		}

		leg := Leg{Type: ty, Fix: fix, Course: rl.Course, FlyOver: rl.FlyOver}

		if ty == LegRF {
			if rl.Arc == nil {
				e.ErrorString("leg %d: RF leg has no arc", i)
				ok = false
				continue
			}
			center, found := db.Fixes[rl.Arc.Center]
			if !found {
				e.ErrorString("leg %d: arc center %q not in database", i, rl.Arc.Center)
				ok = false
				continue
			}
			dir := TurnLeft
			switch rl.Arc.Direction {
			case "left":
			case "right":
				dir = TurnRight
			default:
				e.ErrorString("leg %d: arc direction %q is neither \"left\" nor \"right\"", i, rl.Arc.Direction)
				ok = false
			}
			leg.Arc = &RFArc{Center: center, RadiusNM: rl.Arc.RadiusNM, Direction: dir}
		} else if rl.Arc != nil {
			e.ErrorString("leg %d: %s leg can't have an arc", i, ty)
			ok = false
		}

		proc.Legs = append(proc.Legs, leg)
	}

	return proc, ok
}
