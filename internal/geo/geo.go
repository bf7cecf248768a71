// Package geo holds the planar route geometry used to place trains on the
// track: nearest-segment projection, along-route advancement and a few
// spherical helpers (haversine, bearing) for distances shown to the user.
//
// Latitude/longitude are treated as Cartesian coordinates for projection
// and advancement. Over the extent of the Dutch rail network the error of
// that approximation is far below what is visible on a terminal map.
package geo

import (
	"math"

	"github.com/paulmach/orb"
)

const earthRadiusMeters = 6371000

// kmPerDegreeLat is the length of one degree of latitude.
const kmPerDegreeLat = 111.32

// Position is a latitude/longitude pair in degrees.
type Position struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Route is an ordered polyline approximating a stretch of track.
type Route []Position

// Projection is the nearest point on a route to a query position.
type Projection struct {
	Segment  int      // index of the segment start point
	Point    Position // projected point on the segment
	Progress float64  // fraction along the segment, 0..1
	Distance float64  // planar distance from query to Point, in degrees
}

// Cursor is a place on a route expressed as segment and progress.
type Cursor struct {
	Segment  int
	Progress float64
	Point    Position
}

// FromOrb converts an orb point ([lon, lat]) to a Position.
func FromOrb(p orb.Point) Position {
	return Position{Lat: p.Lat(), Lon: p.Lon()}
}

// Orb returns the position as an orb point.
func (p Position) Orb() orb.Point {
	return orb.Point{p.Lon, p.Lat}
}

// RouteFromLineString converts an orb line string to a Route.
func RouteFromLineString(ls orb.LineString) Route {
	r := make(Route, 0, len(ls))
	for _, pt := range ls {
		r = append(r, FromOrb(pt))
	}
	return r
}

// LineString returns the route as an orb line string.
func (r Route) LineString() orb.LineString {
	ls := make(orb.LineString, 0, len(r))
	for _, p := range r {
		ls = append(ls, p.Orb())
	}
	return ls
}

// Bound returns the bounding box of the route.
func (r Route) Bound() orb.Bound {
	return r.LineString().Bound()
}

// Reverse returns a copy of the route in the opposite direction.
func (r Route) Reverse() Route {
	out := make(Route, len(r))
	for i, p := range r {
		out[len(r)-1-i] = p
	}
	return out
}

// Length returns the planar length of the route in degrees.
func (r Route) Length() float64 {
	var total float64
	for i := 1; i < len(r); i++ {
		total += planarDistance(r[i-1], r[i])
	}
	return total
}

// DistanceAlong returns the planar distance from the route start to the
// given segment and progress.
func (r Route) DistanceAlong(segment int, progress float64) float64 {
	if len(r) < 2 {
		return 0
	}
	segment, progress = clampCursor(r, segment, progress)
	var total float64
	for i := 0; i < segment; i++ {
		total += planarDistance(r[i], r[i+1])
	}
	return total + planarDistance(r[segment], r[segment+1])*progress
}

// Project finds the point on the route closest to p.
func Project(p Position, r Route) Projection {
	if len(r) < 2 {
		return Projection{Point: p}
	}

	best := Projection{Distance: math.Inf(1)}
	for i := 0; i < len(r)-1; i++ {
		pt, t := projectOnSegment(p, r[i], r[i+1])
		d := planarDistance(p, pt)
		if d < best.Distance {
			best = Projection{Segment: i, Point: pt, Progress: t, Distance: d}
		}
	}
	return best
}

// Advance moves a cursor forward along the route by a planar distance in
// degrees. It stops at the final point; there is no extrapolation.
func Advance(r Route, segment int, progress, distance float64) Cursor {
	if len(r) < 2 {
		c := Cursor{}
		if len(r) == 1 {
			c.Point = r[0]
		}
		return c
	}

	segment, progress = clampCursor(r, segment, progress)
	if distance <= 0 {
		return Cursor{Segment: segment, Progress: progress, Point: pointAt(r, segment, progress)}
	}

	remaining := distance
	last := len(r) - 2
	for {
		segLen := planarDistance(r[segment], r[segment+1])
		left := segLen * (1 - progress)
		if remaining < left {
			progress += remaining / segLen
			break
		}
		remaining -= left
		if segment == last {
			progress = 1
			break
		}
		segment++
		progress = 0
	}

	progress = Clamp(progress, 0, 1)
	return Cursor{Segment: segment, Progress: progress, Point: pointAt(r, segment, progress)}
}

// Interpolate linearly interpolates between two positions.
func Interpolate(a, b Position, fraction float64) Position {
	return Position{
		Lat: a.Lat + (b.Lat-a.Lat)*fraction,
		Lon: a.Lon + (b.Lon-a.Lon)*fraction,
	}
}

// Clamp constrains a value between min and max.
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Haversine calculates the distance between two positions in meters.
func Haversine(a, b Position) float64 {
	phi1 := a.Lat * math.Pi / 180
	phi2 := b.Lat * math.Pi / 180
	deltaPhi := (b.Lat - a.Lat) * math.Pi / 180
	deltaLambda := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// Bearing calculates the bearing from a to b in degrees (0-360, 0 = north).
func Bearing(a, b Position) float64 {
	phi1 := a.Lat * math.Pi / 180
	phi2 := b.Lat * math.Pi / 180
	deltaLambda := (b.Lon - a.Lon) * math.Pi / 180

	x := math.Sin(deltaLambda) * math.Cos(phi2)
	y := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(deltaLambda)

	bearing := math.Atan2(x, y) * 180 / math.Pi
	return math.Mod(bearing+360, 360)
}

// DegreesPerKmAlong returns the planar scale used to turn a travelled
// distance into route units on the segment from a to b. Longitude degrees
// shrink with the cosine of the segment's mean latitude.
func DegreesPerKmAlong(a, b Position) float64 {
	dLat := b.Lat - a.Lat
	dLon := b.Lon - a.Lon
	cos := math.Cos((a.Lat + b.Lat) / 2 * math.Pi / 180)
	km := kmPerDegreeLat * math.Hypot(dLat, dLon*cos)
	if km == 0 {
		return 1 / kmPerDegreeLat
	}
	return math.Hypot(dLat, dLon) / km
}

// Offset displaces a position by distanceKm along heading (0 = north,
// clockwise) using an equirectangular approximation.
func Offset(p Position, headingDeg, distanceKm float64) Position {
	rad := headingDeg * math.Pi / 180
	dLat := distanceKm * math.Cos(rad) / kmPerDegreeLat
	cos := math.Cos(p.Lat * math.Pi / 180)
	if cos < 1e-9 {
		return Position{Lat: p.Lat + dLat, Lon: p.Lon}
	}
	dLon := distanceKm * math.Sin(rad) / (kmPerDegreeLat * cos)
	return Position{Lat: p.Lat + dLat, Lon: p.Lon + dLon}
}

func projectOnSegment(p, a, b Position) (Position, float64) {
	dx := b.Lon - a.Lon
	dy := b.Lat - a.Lat
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return a, 0
	}
	t := ((p.Lon-a.Lon)*dx + (p.Lat-a.Lat)*dy) / lenSq
	t = Clamp(t, 0, 1)
	return Interpolate(a, b, t), t
}

func planarDistance(a, b Position) float64 {
	return math.Hypot(b.Lat-a.Lat, b.Lon-a.Lon)
}

func pointAt(r Route, segment int, progress float64) Position {
	return Interpolate(r[segment], r[segment+1], progress)
}

// clampCursor forces segment into [0, len(r)-2] and progress into [0, 1].
func clampCursor(r Route, segment int, progress float64) (int, float64) {
	if segment < 0 {
		segment, progress = 0, 0
	}
	if segment > len(r)-2 {
		segment, progress = len(r)-2, 1
	}
	if math.IsNaN(progress) {
		progress = 0
	}
	return segment, Clamp(progress, 0, 1)
}
