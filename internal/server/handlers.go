package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/spoorzoeker/spoor-cli/internal/api"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ListResponse wraps list results with a count and fetch time.
type ListResponse struct {
	Items     interface{} `json:"items"`
	Count     int         `json:"count"`
	FetchedAt time.Time   `json:"fetchedAt"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeList[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, ListResponse{
		Items:     items,
		Count:     len(items),
		FetchedAt: time.Now().UTC(),
	})
}

func writeBadRequest(w http.ResponseWriter, msg string, details map[string]interface{}) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msg, Details: details})
}

// statusFor maps client errors to the status returned to browsers. Upstream
// auth failures are the server's problem, not the caller's, so they become
// 502 like other upstream errors.
func statusFor(err error) int {
	var verr *api.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, api.ErrNotFound), errors.Is(err, api.ErrNoResults):
		return http.StatusNotFound
	case errors.Is(err, api.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, api.ErrInvalidRequest):
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := ErrorResponse{Error: http.StatusText(status)}

	var verr *api.ValidationError
	var apiErr *api.APIError
	switch {
	case errors.As(err, &verr):
		resp.Error = verr.Message
		resp.Details = map[string]interface{}{"field": verr.Field}
	case errors.As(err, &apiErr):
		resp.Details = map[string]interface{}{
			"upstreamStatus": apiErr.StatusCode,
			"endpoint":       apiErr.Endpoint,
		}
		if apiErr.Message != "" {
			resp.Details["message"] = apiErr.Message
		}
	default:
		resp.Details = map[string]interface{}{"internal": err.Error()}
	}

	if status >= 500 {
		s.log.WithError(err).WithField("path", r.URL.Path).Warn("upstream request failed")
	}
	writeJSON(w, status, resp)
}

func queryInt(r *http.Request, key string, def int) (int, bool) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	return n, err == nil
}

func queryTime(r *http.Request, key string) (time.Time, bool) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(time.RFC3339, v)
	return t, err == nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"uptime":    time.Since(s.started).Round(time.Second).String(),
		"timestamp": time.Now().UTC(),
	})
}

// searchStations handles GET /api/stations?q=&limit=
func (s *Server) searchStations(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(r, "limit", 10)
	if !ok {
		writeBadRequest(w, "limit must be a number", nil)
		return
	}
	stations, err := s.backend.SearchStations(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeList(w, stations)
}

// nearbyStations handles GET /api/stations/nearby?lat=&lng=&limit=
func (s *Server) nearbyStations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(q.Get("lng"), 64)
	if errLat != nil || errLng != nil {
		writeBadRequest(w, "lat and lng are required numbers", map[string]interface{}{
			"lat": q.Get("lat"),
			"lng": q.Get("lng"),
		})
		return
	}
	limit, ok := queryInt(r, "limit", 5)
	if !ok {
		writeBadRequest(w, "limit must be a number", nil)
		return
	}

	stations, err := s.backend.NearbyStations(r.Context(), lat, lng, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeList(w, stations)
}

func (s *Server) boardRequest(w http.ResponseWriter, r *http.Request) (api.StationBoardRequest, bool) {
	dt, ok := queryTime(r, "dateTime")
	if !ok {
		writeBadRequest(w, "dateTime must be RFC 3339", nil)
		return api.StationBoardRequest{}, false
	}
	max, ok := queryInt(r, "max", 0)
	if !ok {
		writeBadRequest(w, "max must be a number", nil)
		return api.StationBoardRequest{}, false
	}
	return api.StationBoardRequest{
		Station:     chi.URLParam(r, "station"),
		DateTime:    dt,
		MaxJourneys: max,
	}, true
}

// departures handles GET /api/departures/{station}
func (s *Server) departures(w http.ResponseWriter, r *http.Request) {
	req, ok := s.boardRequest(w, r)
	if !ok {
		return
	}
	board, err := s.backend.GetDepartures(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=30")
	writeList(w, board)
}

// arrivals handles GET /api/arrivals/{station}
func (s *Server) arrivals(w http.ResponseWriter, r *http.Request) {
	req, ok := s.boardRequest(w, r)
	if !ok {
		return
	}
	board, err := s.backend.GetArrivals(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=30")
	writeList(w, board)
}

// trips handles GET /api/trips?from=&to=&via=&dateTime=&arrival=
func (s *Server) trips(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	dt, ok := queryTime(r, "dateTime")
	if !ok {
		writeBadRequest(w, "dateTime must be RFC 3339", nil)
		return
	}

	trips, err := s.backend.PlanTrips(r.Context(), api.TripRequest{
		From:             q.Get("from"),
		To:               q.Get("to"),
		Via:              q.Get("via"),
		DateTime:         dt,
		SearchForArrival: q.Get("arrival") == "true",
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeList(w, trips)
}

// journey handles GET /api/journey/{train}
func (s *Server) journey(w http.ResponseWriter, r *http.Request) {
	dt, ok := queryTime(r, "dateTime")
	if !ok {
		writeBadRequest(w, "dateTime must be RFC 3339", nil)
		return
	}
	j, err := s.backend.GetJourney(r.Context(), chi.URLParam(r, "train"), dt)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, j)
}

// material handles GET /api/material/{train}
func (s *Server) material(w http.ResponseWriter, r *http.Request) {
	m, err := s.backend.GetMaterial(r.Context(), chi.URLParam(r, "train"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// disruptions handles GET /api/disruptions?active=&type=&station=
func (s *Server) disruptions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := s.backend.GetDisruptions(r.Context(), api.DisruptionRequest{
		ActiveOnly: q.Get("active") == "true",
		Type:       q.Get("type"),
		Station:    q.Get("station"),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeList(w, list)
}

// vehicles handles GET /api/vehicles
func (s *Server) vehicles(w http.ResponseWriter, r *http.Request) {
	list, err := s.backend.GetVehicles(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeList(w, list)
}

// vehicle handles GET /api/vehicles/{train}
func (s *Server) vehicle(w http.ResponseWriter, r *http.Request) {
	v, err := s.backend.GetVehicle(r.Context(), chi.URLParam(r, "train"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, v)
}

// tracks handles GET /api/tracks?stations=ut,asd and returns GeoJSON
func (s *Server) tracks(w http.ResponseWriter, r *http.Request) {
	var stations []string
	if v := r.URL.Query().Get("stations"); v != "" {
		stations = strings.Split(v, ",")
	}

	g, err := s.backend.GetTrackGeometry(r.Context(), stations...)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=3600")
	writeJSON(w, http.StatusOK, g.FeatureCollection())
}
