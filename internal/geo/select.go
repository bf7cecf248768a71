package geo

import "math"

// DefaultSnapDistance is how far (in degrees, roughly 500 m) a vehicle may
// be from a track before that track is no longer considered its route.
const DefaultSnapDistance = 0.005

// SelectRoute picks the route nearest to pos and orients it so that
// advancing along it follows heading. Routes further than maxDistance
// degrees are ignored; ok is false when none qualify.
func SelectRoute(routes []Route, pos Position, heading, maxDistance float64) (Route, bool) {
	var best Route
	var bestProj Projection
	bestDist := math.Inf(1)

	for _, r := range routes {
		if len(r) < 2 {
			continue
		}
		proj := Project(pos, r)
		if proj.Distance > maxDistance || proj.Distance >= bestDist {
			continue
		}
		best = r
		bestProj = proj
		bestDist = proj.Distance
	}
	if best == nil {
		return nil, false
	}

	segBearing := Bearing(best[bestProj.Segment], best[bestProj.Segment+1])
	if angleBetween(segBearing, heading) > 90 {
		best = best.Reverse()
	}
	return best, true
}

// angleBetween returns the absolute difference of two bearings (0-180).
func angleBetween(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}
