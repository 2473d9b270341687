// aviation/trajectory.go
// Copyright(c) 2024-2026 latgen contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/avnav/latgen/math"

	"github.com/vmihailenco/msgpack/v5"
)

// SegmentPhase tags a trajectory point with the flight phase it belongs
// to.
type SegmentPhase int

const (
	PhaseSID SegmentPhase = iota
	PhaseEnroute
	PhaseSTAR
)

func (p SegmentPhase) String() string {
	if p < PhaseSID || p > PhaseSTAR {
		return "invalid"
	}
	return []string{"SID", "Enroute", "STAR"}[int(p)]
}

type TrajectoryPoint struct {
	Location math.Point2LL
	Phase    SegmentPhase
}

// Trajectory is the engine's sole output artifact: the lateral path in
// flight-progress order, each point tagged with its phase. It is never
// reordered after construction.
type Trajectory struct {
	Points []TrajectoryPoint
}

// BuildTrajectory concatenates the SID, en-route, and STAR polylines
// into a single tagged sequence. The duplicated boundary points at the
// two joins (the SID's last point is the en-route's first; the
// en-route's last is the STAR's first) are dropped so each boundary
// appears once, tagged with the earlier phase.
func BuildTrajectory(sid, enroute, star []math.Point2LL) Trajectory {
	var t Trajectory
	t.Points = make([]TrajectoryPoint, 0, len(sid)+len(enroute)+len(star))

	appendPhase := func(pts []math.Point2LL, phase SegmentPhase) {
		for _, p := range pts {
			if n := len(t.Points); n > 0 && t.Points[n-1].Location == p {
				continue
			}
			t.Points = append(t.Points, TrajectoryPoint{Location: p, Phase: phase})
		}
	}

	appendPhase(sid, PhaseSID)
	appendPhase(enroute, PhaseEnroute)
	appendPhase(star, PhaseSTAR)
	return t
}

// DistanceNM returns the cumulative great-circle length of the
// trajectory in nautical miles.
func (t *Trajectory) DistanceNM() float32 {
	var d float32
	for i := 1; i < len(t.Points); i++ {
		d += math.NMDistance2LL(t.Points[i-1].Location, t.Points[i].Location)
	}
	return d
}

// WriteCSV writes the trajectory as rows of latitude, longitude, and
// segment tag, in flight-progress order.
func (t *Trajectory) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"latitude", "longitude", "segment"}); err != nil {
		return err
	}

	for _, p := range t.Points {
		rec := []string{
			strconv.FormatFloat(float64(p.Location.Latitude()), 'f', 6, 32),
			strconv.FormatFloat(float64(p.Location.Longitude()), 'f', 6, 32),
			p.Phase.String(),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteMsgpack encodes the trajectory in msgpack for consumers that
// want a compact binary form rather than CSV.
func (t *Trajectory) WriteMsgpack(w io.Writer) error {
	return msgpack.NewEncoder(w).Encode(t)
}

func ReadTrajectoryMsgpack(r io.Reader) (Trajectory, error) {
	var t Trajectory
	if err := msgpack.NewDecoder(r).Decode(&t); err != nil {
		return Trajectory{}, fmt.Errorf("decoding trajectory: %w", err)
	}
	return t, nil
}
