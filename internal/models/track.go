package models

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/spoorzoeker/spoor-cli/internal/geo"
)

// TrackSection is one stretch of track between two stations.
type TrackSection struct {
	From  string    `json:"from,omitempty"`
	To    string    `json:"to,omitempty"`
	Route geo.Route `json:"route"`
}

// TrackGeometry is the track layout returned by the map API.
type TrackGeometry struct {
	Sections []TrackSection `json:"sections"`
}

// Routes returns the polyline of every section.
func (g *TrackGeometry) Routes() []geo.Route {
	routes := make([]geo.Route, 0, len(g.Sections))
	for _, s := range g.Sections {
		routes = append(routes, s.Route)
	}
	return routes
}

// Bound returns the bounding box of all sections.
func (g *TrackGeometry) Bound() orb.Bound {
	var b orb.Bound
	first := true
	for _, s := range g.Sections {
		if len(s.Route) == 0 {
			continue
		}
		sb := s.Route.Bound()
		if first {
			b = sb
			first = false
			continue
		}
		b = b.Union(sb)
	}
	return b
}

// Joined concatenates consecutive sections into a single route. Sections
// are assumed to be ordered along the journey, as returned for a station
// list; duplicated joint points are dropped.
func (g *TrackGeometry) Joined() geo.Route {
	var r geo.Route
	for _, s := range g.Sections {
		for i, p := range s.Route {
			if i == 0 && len(r) > 0 && r[len(r)-1] == p {
				continue
			}
			r = append(r, p)
		}
	}
	return r
}

// TrackResponse wraps the GeoJSON payload of the map API.
type TrackResponse struct {
	Payload geojson.FeatureCollection `json:"payload"`
}

// ToTrackGeometry converts the feature collection. Line strings become one
// section each; multi line strings become one section per part. Other
// geometries are ignored.
func (r *TrackResponse) ToTrackGeometry() *TrackGeometry {
	g := &TrackGeometry{}
	for _, f := range r.Payload.Features {
		if f == nil || f.Geometry == nil {
			continue
		}
		from := f.Properties.MustString("from", "")
		to := f.Properties.MustString("to", "")

		switch geom := f.Geometry.(type) {
		case orb.LineString:
			g.Sections = append(g.Sections, TrackSection{From: from, To: to, Route: geo.RouteFromLineString(geom)})
		case orb.MultiLineString:
			for _, ls := range geom {
				g.Sections = append(g.Sections, TrackSection{From: from, To: to, Route: geo.RouteFromLineString(ls)})
			}
		}
	}
	return g
}

// FeatureCollection renders the sections back to GeoJSON, one line string
// feature per section.
func (g *TrackGeometry) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, s := range g.Sections {
		f := geojson.NewFeature(s.Route.LineString())
		if s.From != "" {
			f.Properties["from"] = s.From
		}
		if s.To != "" {
			f.Properties["to"] = s.To
		}
		fc.Append(f)
	}
	return fc
}
