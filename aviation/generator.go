// aviation/generator.go
// Copyright(c) 2024-2026 latgen contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"context"
	"fmt"

	"github.com/avnav/latgen/log"
	"github.com/avnav/latgen/math"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
)

// Request identifies one departure-to-arrival trajectory: the airports
// and runways at either end and the published procedures connecting
// them. It is comparable so it can key the generator's cache.
type Request struct {
	DepartureAirport string
	DepartureRunway  string
	SID              string
	ArrivalAirport   string
	ArrivalRunway    string
	STAR             string
}

func (r Request) String() string {
	return fmt.Sprintf("%s/%s %s -> %s %s/%s", r.DepartureAirport, r.DepartureRunway, r.SID,
		r.STAR, r.ArrivalAirport, r.ArrivalRunway)
}

// Generator builds lateral trajectories against a loaded navigation
// database. It is safe for concurrent use; generated trajectories are
// cached by request.
type Generator struct {
	DB           *StaticDatabase
	Enroute      EnrouteSpec
	Sampling     Sampling
	TurnRadiusNM float32

	lg    *log.Logger
	index *FixIndex
	cache *lru.Cache[Request, *Trajectory]
}

const trajectoryCacheSize = 256

func NewGenerator(db *StaticDatabase, lg *log.Logger) *Generator {
	cache, err := lru.New[Request, *Trajectory](trajectoryCacheSize)
	if err != nil {
		// Only possible with a non-positive size.
		panic(err)
	}
	return &Generator{
		DB:           db,
		Enroute:      DefaultEnrouteSpec(),
		Sampling:     DefaultSampling(),
		TurnRadiusNM: NominalTurnRadiusNM(),
		lg:           lg,
		index:        NewFixIndex(db.AllFixes()),
		cache:        cache,
	}
}

// Generate builds the complete lateral trajectory for the request:
// departure runway through the SID, en-route corridor waypoints, then
// the STAR to the arrival runway.
func (g *Generator) Generate(req Request) (*Trajectory, error) {
	if traj, ok := g.cache.Get(req); ok {
		g.lg.Debug("trajectory cache hit", "request", req.String())
		return traj, nil
	}

	dep, ok := g.DB.LookupAirport(req.DepartureAirport)
	if !ok {
		return nil, fmt.Errorf("%q: %w", req.DepartureAirport, ErrUnknownAirport)
	}
	arr, ok := g.DB.LookupAirport(req.ArrivalAirport)
	if !ok {
		return nil, fmt.Errorf("%q: %w", req.ArrivalAirport, ErrUnknownAirport)
	}

	rwy, ok := dep.LookupRunway(req.DepartureRunway)
	if !ok {
		return nil, fmt.Errorf("%s %q: %w", dep.Icao, req.DepartureRunway, ErrUnknownRunway)
	}
	if _, ok := arr.LookupRunway(req.ArrivalRunway); !ok {
		return nil, fmt.Errorf("%s %q: %w", arr.Icao, req.ArrivalRunway, ErrUnknownRunway)
	}

	sid, ok := dep.SIDs[req.SID]
	if !ok {
		return nil, fmt.Errorf("%s %q: %w", dep.Icao, req.SID, ErrUnknownSID)
	}
	if !sid.AppliesToRunway(req.DepartureRunway) {
		return nil, fmt.Errorf("%s %s: not published for runway %s", dep.Icao, req.SID, req.DepartureRunway)
	}
	star, ok := arr.STARs[req.STAR]
	if !ok {
		return nil, fmt.Errorf("%s %q: %w", arr.Icao, req.STAR, ErrUnknownSTAR)
	}
	if !star.AppliesToRunway(req.ArrivalRunway) {
		return nil, fmt.Errorf("%s %s: not published for runway %s", arr.Icao, req.STAR, req.ArrivalRunway)
	}

	sidPts, sidExit, err := sid.Assemble(StateAtRunway(rwy), g.TurnRadiusNM, g.Sampling)
	if err != nil {
		return nil, fmt.Errorf("SID %s: %w", req.SID, err)
	}

	starEntry, ok := star.EntryFix()
	if !ok {
		return nil, fmt.Errorf("STAR %s: %w", req.STAR, ErrEmptyProcedure)
	}

	enroutePts, waypoints := BuildEnroute(sidExit.Position, starEntry.Location, g.index, g.Enroute)

	// The STAR is entered on the course flown into its entry fix.
	entryState := FlightState{Position: starEntry.Location}
	if n := len(enroutePts); n >= 2 {
		entryState.Course = math.GreatCircleFinalHeading2LL(enroutePts[n-2], enroutePts[n-1])
	} else {
		entryState.Course = sidExit.Course
	}

	starPts, _, err := star.Assemble(entryState, g.TurnRadiusNM, g.Sampling)
	if err != nil {
		return nil, fmt.Errorf("STAR %s: %w", req.STAR, err)
	}

	traj := BuildTrajectory(sidPts, enroutePts, starPts)
	g.lg.Info("generated trajectory", "request", req.String(), "points", len(traj.Points),
		"waypoints", len(waypoints), "distance_nm", traj.DistanceNM())

	g.cache.Add(req, &traj)
	return &traj, nil
}

// GenerateBatch generates trajectories for all requests concurrently,
// at most workers at a time. Results are returned in request order.
// The first error cancels the remaining work.
func (g *Generator) GenerateBatch(ctx context.Context, reqs []Request, workers int) ([]*Trajectory, error) {
	if workers <= 0 {
		workers = 1
	}

	trajs := make([]*Trajectory, len(reqs))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for i, req := range reqs {
		i, req := i, req
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			traj, err := g.Generate(req)
			if err != nil {
				return fmt.Errorf("%s: %w", req.String(), err)
			}
			trajs[i] = traj
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return trajs, nil
}
