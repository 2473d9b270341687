// math/latlong.go
// Copyright(c) 2024-2026 latgen contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"fmt"
	gomath "math"
)

const NMPerLatitude = 60

// Mean Earth radius, expressed in nautical miles (6371 km).
const EarthRadiusNM = 6371000.0 / 1852.0

// Point2LL represents a 2D point on the Earth in latitude-longitude.
// Important: 0 (x) is longitude, 1 (y) is latitude
type Point2LL [2]float32

func (p Point2LL) Longitude() float32 {
	return p[0]
}

func (p Point2LL) Latitude() float32 {
	return p[1]
}

// DDString returns the position in decimal degrees, e.g.:
// (50.037900, 8.562200)
func (p Point2LL) DDString() string {
	return fmt.Sprintf("(%f, %f)", p[1], p[0]) // latitude, longitude
}

func (p Point2LL) IsZero() bool {
	return p[0] == 0 && p[1] == 0
}

// radians returns the point's longitude and latitude in radians, in
// float64 for the benefit of the spherical trigonometry below; float32
// precision is fine for storing coordinates but not for computing with
// them over hundreds of miles.
func (p Point2LL) radians() (lon, lat float64) {
	rad := func(d float32) float64 { return float64(d) / 180 * gomath.Pi }
	return rad(p[0]), rad(p[1])
}

func ll(lonRad, latRad float64) Point2LL {
	deg := func(r float64) float32 { return float32(r * 180 / gomath.Pi) }
	lon := deg(lonRad)
	// Wrap longitude to (-180,180].
	if lon > 180 {
		lon -= 360
	} else if lon <= -180 {
		lon += 360
	}
	return Point2LL{lon, deg(latRad)}
}

// NMDistance2LL returns the great-circle distance in nautical miles
// between two provided lat-long coordinates.
func NMDistance2LL(a Point2LL, b Point2LL) float32 {
	// https://www.movable-type.co.uk/scripts/latlong.html
	lon1, lat1 := a.radians()
	lon2, lat2 := b.radians()
	dlat, dlon := lat2-lat1, lon2-lon1

	x := Sqr(gomath.Sin(dlat/2)) + gomath.Cos(lat1)*gomath.Cos(lat2)*Sqr(gomath.Sin(dlon/2))
	c := 2 * gomath.Atan2(gomath.Sqrt(x), gomath.Sqrt(1-x))

	return float32(EarthRadiusNM * c)
}

// GreatCircleHeading2LL returns the initial heading in degrees [0,360)
// of the great circle from one point to the second. Coincident points
// give heading 0 rather than a NaN.
func GreatCircleHeading2LL(from, to Point2LL) float32 {
	lon1, lat1 := from.radians()
	lon2, lat2 := to.radians()
	dlon := lon2 - lon1

	y := gomath.Sin(dlon) * gomath.Cos(lat2)
	x := gomath.Cos(lat1)*gomath.Sin(lat2) - gomath.Sin(lat1)*gomath.Cos(lat2)*gomath.Cos(dlon)
	if y == 0 && x == 0 {
		return 0
	}
	return NormalizeHeading(float32(gomath.Atan2(y, x) * 180 / gomath.Pi))
}

// GreatCircleFinalHeading2LL returns the heading in degrees [0,360) at
// arrival when following the great circle from one point to the second.
func GreatCircleFinalHeading2LL(from, to Point2LL) float32 {
	return OppositeHeading(GreatCircleHeading2LL(to, from))
}

// GreatCircleIntermediate2LL returns the point at the given fraction
// t of the great-circle distance from a to b. Coincident (and
// numerically antipodal) endpoints return a.
func GreatCircleIntermediate2LL(a, b Point2LL, t float32) Point2LL {
	lon1, lat1 := a.radians()
	lon2, lat2 := b.radians()

	// Angular distance between the points
	dlat, dlon := lat2-lat1, lon2-lon1
	x := Sqr(gomath.Sin(dlat/2)) + gomath.Cos(lat1)*gomath.Cos(lat2)*Sqr(gomath.Sin(dlon/2))
	d := 2 * gomath.Atan2(gomath.Sqrt(x), gomath.Sqrt(1-x))

	sd := gomath.Sin(d)
	if sd < 1e-9 {
		return a
	}

	fa := gomath.Sin((1-float64(t))*d) / sd
	fb := gomath.Sin(float64(t)*d) / sd

	px := fa*gomath.Cos(lat1)*gomath.Cos(lon1) + fb*gomath.Cos(lat2)*gomath.Cos(lon2)
	py := fa*gomath.Cos(lat1)*gomath.Sin(lon1) + fb*gomath.Cos(lat2)*gomath.Sin(lon2)
	pz := fa*gomath.Sin(lat1) + fb*gomath.Sin(lat2)

	lat := gomath.Atan2(pz, gomath.Sqrt(px*px+py*py))
	lon := gomath.Atan2(py, px)
	return ll(lon, lat)
}

// GreatCircleOffset2LL returns the point reached by traveling the given
// heading for the given distance in nautical miles from the starting
// point.
func GreatCircleOffset2LL(p Point2LL, hdg float32, distNM float32) Point2LL {
	lon1, lat1 := p.radians()
	theta := float64(Radians(hdg))
	d := float64(distNM) / EarthRadiusNM // angular distance

	lat2 := gomath.Asin(gomath.Sin(lat1)*gomath.Cos(d) + gomath.Cos(lat1)*gomath.Sin(d)*gomath.Cos(theta))
	lon2 := lon1 + gomath.Atan2(gomath.Sin(theta)*gomath.Sin(d)*gomath.Cos(lat1),
		gomath.Cos(d)-gomath.Sin(lat1)*gomath.Sin(lat2))
	return ll(lon2, lat2)
}

// SampleGreatCircle2LL returns a polyline along the great circle from a
// to b with approximately the given point spacing in nautical miles.
// Both endpoints are always included; coincident endpoints give a
// single-point result.
func SampleGreatCircle2LL(a, b Point2LL, spacingNM float32) []Point2LL {
	d := NMDistance2LL(a, b)
	if d == 0 {
		return []Point2LL{a}
	}

	n := 1
	if spacingNM > 0 {
		n = max(1, int(Ceil(d/spacingNM)))
	}

	pts := make([]Point2LL, 0, n+1)
	pts = append(pts, a)
	for i := 1; i < n; i++ {
		pts = append(pts, GreatCircleIntermediate2LL(a, b, float32(i)/float32(n)))
	}
	return append(pts, b)
}

// SampleArc2LL returns a polyline along the circle of the given radius
// about center, from the radial startHdg to the radial endHdg, turning
// clockwise or counter-clockwise. The arc is sampled approximately every
// stepDeg degrees of sweep; the points at both end radials are always
// included.
func SampleArc2LL(center Point2LL, radiusNM, startHdg, endHdg float32, clockwise bool, stepDeg float32) []Point2LL {
	var sweep float32
	if clockwise {
		sweep = NormalizeHeading(endHdg - startHdg)
	} else {
		sweep = NormalizeHeading(startHdg - endHdg)
	}

	n := 1
	if stepDeg > 0 {
		n = max(1, int(Ceil(sweep/stepDeg)))
	}

	pts := make([]Point2LL, 0, n+1)
	for i := 0; i <= n; i++ {
		a := sweep * float32(i) / float32(n)
		if !clockwise {
			a = -a
		}
		pts = append(pts, GreatCircleOffset2LL(center, NormalizeHeading(startHdg+a), radiusNM))
	}
	return pts
}

// CrossTrackDistanceNM returns the signed perpendicular distance in
// nautical miles from p to the great circle through a and b: positive if
// p is to the right of the course from a to b, negative to the left.
func CrossTrackDistanceNM(p, a, b Point2LL) float32 {
	d13 := float64(NMDistance2LL(a, p)) / EarthRadiusNM
	t13 := float64(Radians(GreatCircleHeading2LL(a, p)))
	t12 := float64(Radians(GreatCircleHeading2LL(a, b)))

	return float32(EarthRadiusNM * gomath.Asin(gomath.Sin(d13)*gomath.Sin(t13-t12)))
}

// AlongTrackDistanceNM returns the signed distance in nautical miles
// from a to the projection of p onto the great circle from a to b;
// negative if the projection falls behind a.
func AlongTrackDistanceNM(p, a, b Point2LL) float32 {
	d13 := float64(NMDistance2LL(a, p)) / EarthRadiusNM
	dxt := float64(CrossTrackDistanceNM(p, a, b)) / EarthRadiusNM

	cd := gomath.Cos(dxt)
	if cd == 0 {
		return 0
	}
	dat := gomath.Acos(Clamp(gomath.Cos(d13)/cd, -1, 1))

	t13 := float64(Radians(GreatCircleHeading2LL(a, p)))
	t12 := float64(Radians(GreatCircleHeading2LL(a, b)))
	if gomath.Cos(t13-t12) < 0 {
		dat = -dat
	}
	return float32(EarthRadiusNM * dat)
}

// NM2LL converts a point expressed in nautical mile coordinates to
// lat-long.
func NM2LL(p [2]float32, nmPerLongitude float32) Point2LL {
	return Point2LL{p[0] / nmPerLongitude, p[1] / NMPerLatitude}
}

// LL2NM converts a point expressed in latitude-longitude coordinates to
// nautical mile coordinates; this is useful for example for reasoning
// about distances, since both axes then have the same measure.
func LL2NM(p Point2LL, nmPerLongitude float32) [2]float32 {
	return [2]float32{p[0] * nmPerLongitude, p[1] * NMPerLatitude}
}
