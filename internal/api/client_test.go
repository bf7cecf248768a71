package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/bluele/gcache"

	"github.com/spoorzoeker/spoor-cli/internal/cache"
	"github.com/spoorzoeker/spoor-cli/internal/models"
	"github.com/spoorzoeker/spoor-cli/internal/testutil"
)

func TestNewClient(t *testing.T) {
	client, err := NewClient()
	testutil.AssertNil(t, err)
	testutil.AssertTrue(t, client != nil)
	testutil.AssertTrue(t, client.httpClient != nil)
	testutil.AssertEqual(t, client.baseURL, BaseURL)
	testutil.AssertTrue(t, client.timezone != nil)
	testutil.AssertTrue(t, client.cache == nil)
}

func TestNewClient_WithTimeout(t *testing.T) {
	customTimeout := 30 * time.Second
	client, err := NewClient(WithTimeout(customTimeout))
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, client.httpClient.Timeout, customTimeout)
}

func TestNewClient_WithHTTPClient(t *testing.T) {
	customClient := &http.Client{Timeout: 5 * time.Second}
	client, err := NewClient(WithHTTPClient(customClient))
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, client.httpClient, customClient)
}

func TestNewClient_WithBaseURLTrimsSlash(t *testing.T) {
	client, err := NewClient(WithBaseURL("http://localhost:9999/"))
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, client.baseURL, "http://localhost:9999")
}

func TestClient_Timezone(t *testing.T) {
	client, err := NewClient()
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, client.Timezone().String(), "Europe/Amsterdam")
}

func TestClient_SendsHeaders(t *testing.T) {
	ms := testutil.NewRouteServer(map[string]string{
		EndpointDepartures: testutil.SampleDeparturesResponse,
	})
	defer ms.Close()

	client := newTestClient(t, ms.URL, WithAPIKey("secret"))
	_, err := client.GetDepartures(context.Background(), StationBoardRequest{Station: "ut"})
	testutil.AssertNil(t, err)

	req := ms.LastRequest()
	testutil.AssertEqual(t, req.Method, http.MethodGet)
	testutil.AssertEqual(t, req.Header.Get(SubscriptionKeyHeader), "secret")
	testutil.AssertEqual(t, len(req.Header.Get(RequestIDHeader)), 36)
	testutil.AssertEqual(t, req.URL.Query().Get("station"), "UT")
	testutil.AssertEqual(t, req.URL.Query().Get("maxJourneys"), "40")
}

func TestGetDepartures_Success(t *testing.T) {
	ms := testutil.NewRouteServer(map[string]string{
		EndpointDepartures: testutil.SampleDeparturesResponse,
	})
	defer ms.Close()

	client := newTestClient(t, ms.URL)
	departures, err := client.GetDepartures(context.Background(), StationBoardRequest{
		Station:     "UT",
		DateTime:    time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC),
		MaxJourneys: 10,
	})
	testutil.AssertNil(t, err)
	testutil.AssertLen(t, departures, 2)
	testutil.AssertEqual(t, departures[0].TrainNumber, "3034")
	testutil.AssertEqual(t, departures[0].Delay, 2)
	testutil.AssertTrue(t, departures[1].IsCancelled)

	q := ms.LastRequest().URL.Query()
	testutil.AssertEqual(t, q.Get("maxJourneys"), "10")
	testutil.AssertEqual(t, q.Get("dateTime"), "2024-03-01T15:00:00+01:00")
}

func TestGetDepartures_MissingStation(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1")
	_, err := client.GetDepartures(context.Background(), StationBoardRequest{Station: "  "})
	testutil.AssertErrorIs(t, err, ErrInvalidRequest)
}

func TestGetDepartures_InvalidJSON(t *testing.T) {
	ms := testutil.NewMockServer(func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteJSON(w, http.StatusOK, `invalid json`)
	})
	defer ms.Close()

	client := newTestClient(t, ms.URL)
	_, err := client.GetDepartures(context.Background(), StationBoardRequest{Station: "UT"})
	testutil.AssertError(t, err)
	testutil.AssertContains(t, err.Error(), "departures")
}

func TestGetDepartures_HTTPError(t *testing.T) {
	ms := testutil.NewMockServer(func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteJSON(w, http.StatusInternalServerError, `{"message":"backend unavailable"}`)
	})
	defer ms.Close()

	client := newTestClient(t, ms.URL)
	_, err := client.GetDepartures(context.Background(), StationBoardRequest{Station: "UT"})
	testutil.AssertErrorIs(t, err, ErrServerError)

	var apiErr *APIError
	testutil.AssertTrue(t, errors.As(err, &apiErr))
	testutil.AssertEqual(t, apiErr.Message, "backend unavailable")
	testutil.AssertEqual(t, apiErr.Endpoint, EndpointDepartures)
}

func TestClient_Unauthorized(t *testing.T) {
	ms := testutil.NewMockServer(func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteJSON(w, http.StatusUnauthorized, `{"statusCode":401,"message":"Access denied due to missing subscription key."}`)
	})
	defer ms.Close()

	client := newTestClient(t, ms.URL)
	_, err := client.GetDisruptions(context.Background(), DisruptionRequest{})
	testutil.AssertErrorIs(t, err, ErrUnauthorized)
	testutil.AssertContains(t, err.Error(), "subscription key")
}

func TestGetDeparturesRaw_Success(t *testing.T) {
	ms := testutil.NewRouteServer(map[string]string{
		EndpointDepartures: testutil.SampleDeparturesResponse,
	})
	defer ms.Close()

	client := newTestClient(t, ms.URL)
	rawJSON, err := client.GetDeparturesRaw(context.Background(), StationBoardRequest{Station: "UT"})
	testutil.AssertNil(t, err)
	testutil.AssertContains(t, string(rawJSON), `"departures"`)
}

func TestGetArrivals_Success(t *testing.T) {
	ms := testutil.NewRouteServer(map[string]string{
		EndpointArrivals: testutil.SampleArrivalsResponse,
	})
	defer ms.Close()

	client := newTestClient(t, ms.URL)
	arrivals, err := client.GetArrivals(context.Background(), StationBoardRequest{Station: "UT"})
	testutil.AssertNil(t, err)
	testutil.AssertLen(t, arrivals, 1)
	testutil.AssertEqual(t, arrivals[0].Direction, "Den Helder")
}

func TestClient_WithCache(t *testing.T) {
	mc := &mockCache{data: make(map[string][]byte)}
	ms := testutil.NewRouteServer(map[string]string{
		EndpointDepartures: testutil.SampleDeparturesResponse,
	})
	defer ms.Close()

	client := newTestClient(t, ms.URL, WithCache(mc))
	req := StationBoardRequest{Station: "UT"}

	_, err := client.GetDepartures(context.Background(), req)
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, ms.RequestCount(), 1)

	_, err = client.GetDepartures(context.Background(), req)
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, ms.RequestCount(), 1)
	testutil.AssertEqual(t, len(mc.data), 1)
}

func TestClient_VehiclesBypassCache(t *testing.T) {
	mc := &mockCache{data: make(map[string][]byte)}
	ms := testutil.NewRouteServer(map[string]string{
		EndpointVehicles: testutil.SampleVehiclesResponse,
	})
	defer ms.Close()

	client := newTestClient(t, ms.URL, WithCache(mc))
	for i := 0; i < 3; i++ {
		_, err := client.GetVehicles(context.Background())
		testutil.AssertNil(t, err)
	}
	testutil.AssertEqual(t, ms.RequestCount(), 3)
	testutil.AssertEqual(t, len(mc.data), 0)
}

func TestClient_ContextCancellation(t *testing.T) {
	ms := testutil.NewMockServer(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		testutil.WriteJSON(w, http.StatusOK, testutil.SampleDeparturesResponse)
	})
	defer ms.Close()

	client := newTestClient(t, ms.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetDepartures(ctx, StationBoardRequest{Station: "UT"})
	testutil.AssertErrorIs(t, err, ErrTimeout)
}

func TestPlanTrips_Success(t *testing.T) {
	ms := testutil.NewRouteServer(map[string]string{
		EndpointTrips: testutil.SampleTripsResponse,
	})
	defer ms.Close()

	client := newTestClient(t, ms.URL)
	trips, err := client.PlanTrips(context.Background(), TripRequest{
		From:             "ut",
		To:               "asd",
		Via:              "asa",
		SearchForArrival: true,
	})
	testutil.AssertNil(t, err)
	testutil.AssertLen(t, trips, 2)
	testutil.AssertEqual(t, trips[0].UID, "trip-1")
	testutil.AssertEqual(t, trips[1].Transfers, 1)

	q := ms.LastRequest().URL.Query()
	testutil.AssertEqual(t, q.Get("fromStation"), "UT")
	testutil.AssertEqual(t, q.Get("toStation"), "ASD")
	testutil.AssertEqual(t, q.Get("viaStation"), "ASA")
	testutil.AssertEqual(t, q.Get("searchForArrival"), "true")
}

func TestPlanTrips_Validation(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1")
	ctx := context.Background()

	tests := []struct {
		name string
		req  TripRequest
	}{
		{"missing from", TripRequest{To: "ASD"}},
		{"missing to", TripRequest{From: "UT"}},
		{"same station", TripRequest{From: "UT", To: "ut"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.PlanTrips(ctx, tt.req)
			testutil.AssertErrorIs(t, err, ErrInvalidRequest)
		})
	}
}

func TestPlanTrips_NoResults(t *testing.T) {
	ms := testutil.NewRouteServer(map[string]string{
		EndpointTrips: `{"trips": []}`,
	})
	defer ms.Close()

	client := newTestClient(t, ms.URL)
	_, err := client.PlanTrips(context.Background(), TripRequest{From: "UT", To: "ASD"})
	testutil.AssertErrorIs(t, err, ErrNoResults)
}

func TestGetJourney_Success(t *testing.T) {
	ms := testutil.NewRouteServer(map[string]string{
		EndpointJourney: testutil.SampleJourneyResponse,
	})
	defer ms.Close()

	client := newTestClient(t, ms.URL)
	journey, err := client.GetJourney(context.Background(), " 3034 ", time.Time{})
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, journey.TrainNumber, "3034")
	testutil.AssertLen(t, journey.Stops, 3)
	testutil.AssertEqual(t, ms.LastRequest().URL.Query().Get("train"), "3034")
}

func TestGetJourney_InvalidTrain(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1")
	_, err := client.GetJourney(context.Background(), "IC3034", time.Time{})
	testutil.AssertErrorIs(t, err, ErrInvalidRequest)

	_, err = client.GetJourney(context.Background(), "", time.Time{})
	testutil.AssertErrorIs(t, err, ErrInvalidRequest)
}

func TestGetMaterial_Success(t *testing.T) {
	ms := testutil.NewRouteServer(map[string]string{
		EndpointMaterial + "3034": testutil.SampleMaterialResponse,
	})
	defer ms.Close()

	client := newTestClient(t, ms.URL)
	m, err := client.GetMaterial(context.Background(), "3034")
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, m.TrainNumber, "3034")
	testutil.AssertLen(t, m.Parts, 2)
}

func TestGetMaterial_NotFound(t *testing.T) {
	ms := testutil.NewRouteServer(map[string]string{})
	defer ms.Close()

	client := newTestClient(t, ms.URL)
	_, err := client.GetMaterial(context.Background(), "99999")
	testutil.AssertErrorIs(t, err, ErrNotFound)
	testutil.AssertContains(t, err.Error(), "Resource not found")
}

func TestGetDisruptions(t *testing.T) {
	ms := testutil.NewRouteServer(map[string]string{
		EndpointDisruptions: testutil.SampleDisruptionsResponse,
	})
	defer ms.Close()

	client := newTestClient(t, ms.URL)
	ctx := context.Background()

	all, err := client.GetDisruptions(ctx, DisruptionRequest{})
	testutil.AssertNil(t, err)
	testutil.AssertLen(t, all, 2)
	testutil.AssertEqual(t, ms.LastRequest().URL.RawQuery, "")

	atUtrecht, err := client.GetDisruptions(ctx, DisruptionRequest{ActiveOnly: true, Type: "disruption", Station: "ut"})
	testutil.AssertNil(t, err)
	testutil.AssertLen(t, atUtrecht, 1)
	testutil.AssertEqual(t, atUtrecht[0].ID, "7001234")

	q := ms.LastRequest().URL.Query()
	testutil.AssertEqual(t, q.Get("isActive"), "true")
	testutil.AssertEqual(t, q.Get("type"), models.DisruptionTypeDisruption)

	_, err = client.GetDisruptions(ctx, DisruptionRequest{Type: "strike"})
	testutil.AssertErrorIs(t, err, ErrInvalidRequest)
}

func TestGetVehicle(t *testing.T) {
	ms := testutil.NewRouteServer(map[string]string{
		EndpointVehicles: testutil.SampleVehiclesResponse,
	})
	defer ms.Close()

	client := newTestClient(t, ms.URL)
	ctx := context.Background()

	v, err := client.GetVehicle(ctx, "3034")
	testutil.AssertNil(t, err)
	testutil.AssertFloatEqual(t, v.SpeedKmh, 120.5, 1e-9)
	testutil.AssertEqual(t, ms.LastRequest().URL.Query().Get("treinNummer"), "3034")

	_, err = client.GetVehicle(ctx, "1234")
	testutil.AssertErrorIs(t, err, ErrNotFound)
	testutil.AssertContains(t, err.Error(), "not running")
}

func TestGetTrackGeometry(t *testing.T) {
	ms := testutil.NewRouteServer(map[string]string{
		EndpointTrackRoute: testutil.SampleTrackResponse,
		EndpointTrackMap:   testutil.SampleTrackResponse,
	})
	defer ms.Close()

	client := newTestClient(t, ms.URL)
	ctx := context.Background()

	g, err := client.GetTrackGeometry(ctx, "UT", "ASA", "ASD")
	testutil.AssertNil(t, err)
	testutil.AssertLen(t, g.Sections, 2)
	testutil.AssertEqual(t, ms.LastRequest().URL.Query().Get("stations"), "ut,asa,asd")

	_, err = client.GetTrackGeometry(ctx)
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, ms.RequestsTo(EndpointTrackMap), 1)

	_, err = client.GetTrackGeometry(ctx, "UT")
	testutil.AssertErrorIs(t, err, ErrInvalidRequest)
}

func TestGetJourneyTrack(t *testing.T) {
	ms := testutil.NewRouteServer(map[string]string{
		EndpointStations:   testutil.SampleStationsResponse,
		EndpointTrackRoute: testutil.SampleTrackResponse,
	})
	defer ms.Close()

	client := newTestClient(t, ms.URL)
	ctx := context.Background()

	j := &models.Journey{Stops: []models.Stop{
		{UICCode: "8400621"},
		{UICCode: "8000105"}, // Frankfurt, unknown to NS
		{UICCode: "8400057"},
		{UICCode: "8400058"},
	}}
	g, err := client.GetJourneyTrack(ctx, j)
	testutil.AssertNil(t, err)
	testutil.AssertLen(t, g.Sections, 2)
	testutil.AssertEqual(t, ms.LastRequest().URL.Query().Get("stations"), "ut,asa,asd")

	_, err = client.GetJourneyTrack(ctx, &models.Journey{Stops: j.Stops[:2]})
	testutil.AssertErrorIs(t, err, ErrNoResults)
}

func TestExtractEndpoint(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://gateway.apiportal.ns.nl/reisinformatie-api/api/v2/departures?station=UT", EndpointDepartures},
		{"http://127.0.0.1:8080/virtual-train-api/api/vehicle", EndpointVehicles},
		{"://bad", "://bad"},
	}
	for _, tt := range tests {
		testutil.AssertEqual(t, extractEndpoint(tt.in), tt.want)
	}
}

func TestErrorMessage(t *testing.T) {
	testutil.AssertEqual(t, errorMessage(strings.NewReader(`{"message":"a"}`)), "a")
	testutil.AssertEqual(t, errorMessage(strings.NewReader(`{"errors":[{"message":"b"}]}`)), "b")
	testutil.AssertEqual(t, errorMessage(strings.NewReader(`<html>`)), "")
	testutil.AssertEqual(t, errorMessage(strings.NewReader(``)), "")
}

// Mock cache implementation for testing
type mockCache struct {
	data map[string][]byte
}

func (m *mockCache) Get(key string) ([]byte, bool) {
	val, ok := m.data[key]
	return val, ok
}

func (m *mockCache) Set(key string, value []byte) error {
	m.data[key] = value
	return nil
}

// newTestClient creates a client against a mock server with an isolated
// station memo.
func newTestClient(t *testing.T, baseURL string, opts ...ClientOption) *Client {
	t.Helper()
	opts = append([]ClientOption{
		WithBaseURL(baseURL),
		WithStationCache(cache.NewMemo[[]models.Station](1, gcache.NewFakeClock()), time.Hour),
	}, opts...)
	client, err := NewClient(opts...)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}
