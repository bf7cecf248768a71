package models

import (
	"strings"

	"github.com/spoorzoeker/spoor-cli/internal/geo"
)

// Station is an NS station as used by search, nearby and the boards.
type Station struct {
	Code       string   `json:"code"`
	UICCode    string   `json:"uicCode"`
	Name       string   `json:"name"`
	MediumName string   `json:"mediumName,omitempty"`
	ShortName  string   `json:"shortName,omitempty"`
	Lat        float64  `json:"lat"`
	Lon        float64  `json:"lon"`
	Country    string   `json:"country"`
	Type       string   `json:"type,omitempty"`
	Tracks     []string `json:"tracks,omitempty"`
}

// Position returns the station coordinates.
func (s *Station) Position() geo.Position {
	return geo.Position{Lat: s.Lat, Lon: s.Lon}
}

// Matches reports whether q names this station by code or any of its names.
func (s *Station) Matches(q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return false
	}
	if strings.EqualFold(s.Code, q) || s.UICCode == q {
		return true
	}
	for _, n := range []string{s.Name, s.MediumName, s.ShortName} {
		if strings.Contains(strings.ToLower(n), q) {
			return true
		}
	}
	return false
}

// StationResponse is one entry of the NS stations list.
type StationResponse struct {
	Code        string  `json:"code"`
	UICCode     string  `json:"UICCode"`
	StationType string  `json:"stationType"`
	Land        string  `json:"land"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Namen       struct {
		Lang   string `json:"lang"`
		Middel string `json:"middel"`
		Kort   string `json:"kort"`
	} `json:"namen"`
	Sporen []struct {
		SpoorNummer string `json:"spoorNummer"`
	} `json:"sporen"`
}

// StationsResponse wraps the stations list.
type StationsResponse struct {
	Payload []StationResponse `json:"payload"`
}

// ToStation converts the raw entry to a Station.
func (r *StationResponse) ToStation() *Station {
	s := &Station{
		Code:       r.Code,
		UICCode:    r.UICCode,
		Name:       r.Namen.Lang,
		MediumName: r.Namen.Middel,
		ShortName:  r.Namen.Kort,
		Lat:        r.Lat,
		Lon:        r.Lng,
		Country:    r.Land,
		Type:       r.StationType,
	}
	if s.Name == "" {
		s.Name = s.MediumName
	}
	for _, sp := range r.Sporen {
		s.Tracks = append(s.Tracks, sp.SpoorNummer)
	}
	return s
}

// NearbyStation is a station with its distance from a query point.
type NearbyStation struct {
	Station
	DistanceMeters float64 `json:"distanceMeters"`
}
