// aviation/index.go
// Copyright(c) 2024-2026 latgen contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"github.com/avnav/latgen/math"
	"github.com/avnav/latgen/util"
)

// FixIndex answers spatial queries over a fixed set of fixes using a
// k-d tree over their locations projected to planar nautical-mile
// coordinates. The index is immutable once built and safe for
// concurrent queries; rebuild it if the fix set changes.
type FixIndex struct {
	fixes          []Fix
	tree           *math.KDTree
	nmPerLongitude float32
}

// NewFixIndex builds an index over the given fixes. The planar
// projection is scaled by the mean latitude of the set.
func NewFixIndex(fixes []Fix) *FixIndex {
	idx := &FixIndex{fixes: fixes, nmPerLongitude: math.NMPerLatitude}

	if len(fixes) == 0 {
		return idx
	}

	var latSum float64
	for _, f := range fixes {
		latSum += float64(f.Location.Latitude())
	}
	meanLat := float32(latSum / float64(len(fixes)))
	idx.nmPerLongitude = math.NMPerLatitude * math.Cos(math.Radians(meanLat))

	pts := util.MapSlice(fixes, func(f Fix) [2]float32 {
		return math.LL2NM(f.Location, idx.nmPerLongitude)
	})
	idx.tree = math.BuildKDTree(pts)

	return idx
}

// Nearest returns up to k fixes closest to p, nearest first.
func (idx *FixIndex) Nearest(p math.Point2LL, k int) []Fix {
	if idx == nil || idx.tree == nil {
		return nil
	}

	items := idx.tree.Nearest(math.LL2NM(p, idx.nmPerLongitude), k)
	return util.MapSlice(items, func(i int) Fix { return idx.fixes[i] })
}

// Corridor returns the fixes whose cross-track distance to the great
// circle from a to b is at most widthNM and whose along-track projection
// falls between the two endpoints. The result is unordered; callers
// sort by along-track distance as needed.
func (idx *FixIndex) Corridor(a, b math.Point2LL, widthNM float32) []Fix {
	if idx == nil || idx.tree == nil {
		return nil
	}

	// Prune with an axis-aligned box around the two endpoints, padded
	// by the corridor width, then test candidates exactly.
	pa := math.LL2NM(a, idx.nmPerLongitude)
	pb := math.LL2NM(b, idx.nmPerLongitude)
	lo := [2]float32{min(pa[0], pb[0]) - widthNM, min(pa[1], pb[1]) - widthNM}
	hi := [2]float32{max(pa[0], pb[0]) + widthNM, max(pa[1], pb[1]) + widthNM}

	total := math.NMDistance2LL(a, b)

	var result []Fix
	idx.tree.VisitRange(lo, hi, func(item int, _ [2]float32) {
		f := idx.fixes[item]
		if math.Abs(math.CrossTrackDistanceNM(f.Location, a, b)) > widthNM {
			return
		}
		along := math.AlongTrackDistanceNM(f.Location, a, b)
		if along < 0 || along > total {
			return
		}
		result = append(result, f)
	})
	return result
}
