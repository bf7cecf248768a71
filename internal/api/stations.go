package api

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spoorzoeker/spoor-cli/internal/geo"
	"github.com/spoorzoeker/spoor-cli/internal/models"
)

const (
	stationsKey        = "stations"
	defaultSearchLimit = 10
	defaultNearbyLimit = 5
)

// AllStations returns the full station list. The list changes rarely, so
// it is fetched once per station TTL and shared by search and nearby.
func (c *Client) AllStations(ctx context.Context) ([]models.Station, error) {
	return c.stations.GetOrRefresh(ctx, stationsKey, c.stationTTL, c.fetchStations)
}

func (c *Client) fetchStations(ctx context.Context) ([]models.Station, error) {
	body, err := c.doRequest(ctx, c.baseURL+EndpointStations, false)
	if err != nil {
		return nil, err
	}

	var resp models.StationsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse stations response: %w", err)
	}

	stations := make([]models.Station, 0, len(resp.Payload))
	for _, s := range resp.Payload {
		stations = append(stations, *s.ToStation())
	}
	c.log.WithField("count", len(stations)).Debug("station list refreshed")
	return stations, nil
}

// SearchStations finds stations by code, UIC code or (part of) a name.
// Exact code matches rank first, then name prefixes, then substrings.
func (c *Client) SearchStations(ctx context.Context, query string, limit int) ([]models.Station, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrMissingField("query")
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	all, err := c.AllStations(ctx)
	if err != nil {
		return nil, err
	}

	type hit struct {
		station models.Station
		rank    int
	}
	var hits []hit
	for _, s := range all {
		if !s.Matches(query) {
			continue
		}
		hits = append(hits, hit{station: s, rank: searchRank(&s, query)})
	}
	if len(hits) == 0 {
		return nil, fmt.Errorf("%q: %w", query, ErrNoResults)
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].rank != hits[j].rank {
			return hits[i].rank < hits[j].rank
		}
		return hits[i].station.Name < hits[j].station.Name
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}
	stations := make([]models.Station, len(hits))
	for i, h := range hits {
		stations[i] = h.station
	}
	return stations, nil
}

func searchRank(s *models.Station, q string) int {
	if strings.EqualFold(s.Code, q) || s.UICCode == q {
		return 0
	}
	lq := strings.ToLower(q)
	for _, n := range []string{s.Name, s.MediumName, s.ShortName} {
		if strings.HasPrefix(strings.ToLower(n), lq) {
			return 1
		}
	}
	return 2
}

// NearbyStations returns the stations closest to the given coordinates.
func (c *Client) NearbyStations(ctx context.Context, lat, lon float64, limit int) ([]models.NearbyStation, error) {
	if lat < -90 || lat > 90 {
		return nil, ErrInvalidValue("lat", fmt.Sprint(lat))
	}
	if lon < -180 || lon > 180 {
		return nil, ErrInvalidValue("lon", fmt.Sprint(lon))
	}
	if limit <= 0 {
		limit = defaultNearbyLimit
	}

	all, err := c.AllStations(ctx)
	if err != nil {
		return nil, err
	}

	here := geo.Position{Lat: lat, Lon: lon}
	nearby := make([]models.NearbyStation, 0, len(all))
	for _, s := range all {
		nearby = append(nearby, models.NearbyStation{
			Station:        s,
			DistanceMeters: geo.Haversine(here, s.Position()),
		})
	}
	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceMeters < nearby[j].DistanceMeters
	})

	if len(nearby) > limit {
		nearby = nearby[:limit]
	}
	return nearby, nil
}

// ResolveStation turns user input into a single station: an exact code
// match wins, otherwise the best search hit.
func (c *Client) ResolveStation(ctx context.Context, query string) (*models.Station, error) {
	stations, err := c.SearchStations(ctx, query, 1)
	if err != nil {
		return nil, err
	}
	s := stations[0]
	return &s, nil
}
