// aviation/enroute.go
// Copyright(c) 2024-2026 latgen contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"slices"

	"github.com/avnav/latgen/math"
	"github.com/avnav/latgen/util"
)

// EnrouteSpec holds the policy constants for en-route waypoint
// selection. No formal standard prescribes these, so they are
// configuration rather than hard-coded values.
type EnrouteSpec struct {
	// CorridorWidthNM is the maximum cross-track distance of a fix from
	// the great circle between the SID exit and STAR entry for it to be
	// considered.
	CorridorWidthNM float32
	// MergeToleranceNM drops a candidate whose along-track position is
	// within this distance of the previously selected one, avoiding
	// oscillating doglegs between nearly-abeam fixes.
	MergeToleranceNM float32
	// EndpointExclusionNM excludes fixes this close to the SID exit or
	// STAR entry, which would otherwise duplicate the procedure
	// endpoints.
	EndpointExclusionNM float32
	// SegmentSpacingNM is the point spacing of the sampled great-circle
	// segments in the output polyline.
	SegmentSpacingNM float32
}

func DefaultEnrouteSpec() EnrouteSpec {
	return EnrouteSpec{
		CorridorWidthNM:     40,
		MergeToleranceNM:    5,
		EndpointExclusionNM: 10,
		SegmentSpacingNM:    5,
	}
}

// BuildEnroute selects fixes near the great circle from the SID exit
// point to the STAR entry point and strings them into an en-route
// polyline of successive great-circle segments. The selected fixes are
// returned in flight order. If no fix lies within the corridor the
// result is the direct two-point segment from sidExit to starEntry;
// that is the defined fallback, not an error.
func BuildEnroute(sidExit, starEntry math.Point2LL, idx *FixIndex, spec EnrouteSpec) ([]math.Point2LL, []Fix) {
	type candidate struct {
		fix   Fix
		along float32
	}

	total := math.NMDistance2LL(sidExit, starEntry)

	cands := util.MapSlice(idx.Corridor(sidExit, starEntry, spec.CorridorWidthNM), func(f Fix) candidate {
		return candidate{fix: f, along: math.AlongTrackDistanceNM(f.Location, sidExit, starEntry)}
	})
	// Fixes too close to either end would just duplicate the procedure
	// endpoints.
	cands = util.FilterSlice(cands, func(c candidate) bool {
		return c.along >= spec.EndpointExclusionNM && c.along <= total-spec.EndpointExclusionNM
	})

	// Order by along-track projection: flight-progress order, not
	// spatial proximity order.
	slices.SortFunc(cands, func(a, b candidate) int {
		if a.along < b.along {
			return -1
		} else if a.along > b.along {
			return 1
		}
		return 0
	})

	var selected []Fix
	lastAlong := float32(-1)
	seen := make(map[string]bool)
	for _, c := range cands {
		if seen[c.fix.Id] {
			continue
		}
		if lastAlong >= 0 && c.along-lastAlong < spec.MergeToleranceNM {
			continue
		}
		selected = append(selected, c.fix)
		seen[c.fix.Id] = true
		lastAlong = c.along
	}

	if len(selected) == 0 {
		return []math.Point2LL{sidExit, starEntry}, nil
	}

	polyline := []math.Point2LL{sidExit}
	prev := sidExit
	for _, f := range selected {
		polyline = append(polyline, math.SampleGreatCircle2LL(prev, f.Location, spec.SegmentSpacingNM)[1:]...)
		prev = f.Location
	}
	polyline = append(polyline, math.SampleGreatCircle2LL(prev, starEntry, spec.SegmentSpacingNM)[1:]...)

	return polyline, selected
}
