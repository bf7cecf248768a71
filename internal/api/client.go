package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/spoorzoeker/spoor-cli/internal/cache"
	"github.com/spoorzoeker/spoor-cli/internal/models"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultCacheTTL   = 90 * time.Second
	defaultStationTTL = 24 * time.Hour
	defaultMaxJourney = 40
)

// Cache interface for caching HTTP responses
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
}

// StationStore keeps the decoded station list between calls.
type StationStore interface {
	GetOrRefresh(ctx context.Context, key string, ttl time.Duration, load cache.LoadFunc[[]models.Station]) ([]models.Station, error)
}

// Client is the API client for the NS gateway
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	timezone   *time.Location
	cache      Cache
	stations   StationStore
	stationTTL time.Duration
	log        logrus.FieldLogger
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithCache enables response caching with the provided cache implementation
func WithCache(cache Cache) ClientOption {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithDefaultCache enables response caching in the default cache dir
func WithDefaultCache(ttl time.Duration) ClientOption {
	return func(c *Client) {
		if ttl <= 0 {
			ttl = defaultCacheTTL
		}
		fc, err := cache.NewFileCache(cache.DefaultCacheDir(), ttl)
		if err != nil {
			c.log.WithError(err).Warn("response cache disabled")
			return
		}
		c.cache = fc
	}
}

// WithAPIKey sets the NS API portal subscription key
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithBaseURL points the client at another gateway, e.g. a test server
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithStationCache replaces the station list store and its TTL
func WithStationCache(store StationStore, ttl time.Duration) ClientOption {
	return func(c *Client) {
		c.stations = store
		if ttl > 0 {
			c.stationTTL = ttl
		}
	}
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(log logrus.FieldLogger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates a new API client
func NewClient(opts ...ClientOption) (*Client, error) {
	tz, err := time.LoadLocation("Europe/Amsterdam")
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone: %w", err)
	}

	silent := logrus.New()
	silent.SetOutput(io.Discard)

	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    BaseURL,
		timezone:   tz,
		stations:   cache.NewMemo[[]models.Station](1, nil),
		stationTTL: defaultStationTTL,
		log:        silent,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Timezone returns the client's timezone
func (c *Client) Timezone() *time.Location {
	return c.timezone
}

// StationBoardRequest contains parameters for a departure/arrival query
type StationBoardRequest struct {
	Station     string    // Station code or UIC code (required)
	DateTime    time.Time // Query time (defaults to now)
	MaxJourneys int       // Number of rows (default: 40)
}

// GetDepartures fetches departures for a station
func (c *Client) GetDepartures(ctx context.Context, req StationBoardRequest) ([]models.Departure, error) {
	body, err := c.GetDeparturesRaw(ctx, req)
	if err != nil {
		return nil, err
	}
	return c.parseBoard(body, "departures")
}

// GetDeparturesRaw fetches departures and returns raw JSON
func (c *Client) GetDeparturesRaw(ctx context.Context, req StationBoardRequest) (json.RawMessage, error) {
	return c.getStationBoardRaw(ctx, req, EndpointDepartures)
}

// GetArrivals fetches arrivals for a station
func (c *Client) GetArrivals(ctx context.Context, req StationBoardRequest) ([]models.Departure, error) {
	body, err := c.GetArrivalsRaw(ctx, req)
	if err != nil {
		return nil, err
	}
	return c.parseBoard(body, "arrivals")
}

// GetArrivalsRaw fetches arrivals and returns raw JSON
func (c *Client) GetArrivalsRaw(ctx context.Context, req StationBoardRequest) (json.RawMessage, error) {
	return c.getStationBoardRaw(ctx, req, EndpointArrivals)
}

func (c *Client) parseBoard(body []byte, what string) ([]models.Departure, error) {
	var resp models.DeparturesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse %s response: %w", what, err)
	}

	entries := resp.Entries()
	board := make([]models.Departure, 0, len(entries))
	for _, entry := range entries {
		board = append(board, *entry.ToDeparture(c.timezone))
	}
	return board, nil
}

// getStationBoardRaw is a helper for fetching departures/arrivals
func (c *Client) getStationBoardRaw(ctx context.Context, req StationBoardRequest, endpoint string) (json.RawMessage, error) {
	if strings.TrimSpace(req.Station) == "" {
		return nil, ErrMissingField("station")
	}

	params := url.Values{}
	params.Set("station", strings.ToUpper(strings.TrimSpace(req.Station)))
	if !req.DateTime.IsZero() {
		params.Set("dateTime", req.DateTime.In(c.timezone).Format(time.RFC3339))
	}

	max := req.MaxJourneys
	if max <= 0 {
		max = defaultMaxJourney
	}
	params.Set("maxJourneys", strconv.Itoa(max))

	return c.doRequest(ctx, c.baseURL+endpoint+"?"+params.Encode(), true)
}

// TripRequest contains parameters for the journey planner
type TripRequest struct {
	From             string    // Station code or UIC code (required)
	To               string    // Station code or UIC code (required)
	Via              string    // Optional via station
	DateTime         time.Time // Departure (or arrival) time, defaults to now
	SearchForArrival bool      // Interpret DateTime as the desired arrival
}

// PlanTrips fetches travel options between two stations
func (c *Client) PlanTrips(ctx context.Context, req TripRequest) ([]models.Trip, error) {
	body, err := c.PlanTripsRaw(ctx, req)
	if err != nil {
		return nil, err
	}

	var resp models.TripsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse trips response: %w", err)
	}
	if len(resp.Trips) == 0 {
		return nil, fmt.Errorf("%s to %s: %w", req.From, req.To, ErrNoResults)
	}

	trips := make([]models.Trip, 0, len(resp.Trips))
	for _, t := range resp.Trips {
		trips = append(trips, *t.ToTrip(c.timezone))
	}
	return trips, nil
}

// PlanTripsRaw fetches travel options and returns raw JSON
func (c *Client) PlanTripsRaw(ctx context.Context, req TripRequest) (json.RawMessage, error) {
	from := strings.ToUpper(strings.TrimSpace(req.From))
	to := strings.ToUpper(strings.TrimSpace(req.To))
	if from == "" {
		return nil, ErrMissingField("from")
	}
	if to == "" {
		return nil, ErrMissingField("to")
	}
	if from == to {
		return nil, ErrInvalidValue("to", req.To)
	}

	params := url.Values{}
	params.Set("fromStation", from)
	params.Set("toStation", to)
	if req.Via != "" {
		params.Set("viaStation", strings.ToUpper(req.Via))
	}
	if !req.DateTime.IsZero() {
		params.Set("dateTime", req.DateTime.In(c.timezone).Format(time.RFC3339))
	}
	if req.SearchForArrival {
		params.Set("searchForArrival", "true")
	}

	return c.doRequest(ctx, c.baseURL+EndpointTrips+"?"+params.Encode(), true)
}

// GetJourney fetches the stops of one train
func (c *Client) GetJourney(ctx context.Context, train string, dateTime time.Time) (*models.Journey, error) {
	body, err := c.GetJourneyRaw(ctx, train, dateTime)
	if err != nil {
		return nil, err
	}

	var resp models.JourneyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse journey response: %w", err)
	}

	return resp.ToJourney(strings.TrimSpace(train), c.timezone), nil
}

// GetJourneyRaw fetches journey details and returns raw JSON
func (c *Client) GetJourneyRaw(ctx context.Context, train string, dateTime time.Time) (json.RawMessage, error) {
	train = strings.TrimSpace(train)
	if err := validateTrainNumber(train); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("train", train)
	if !dateTime.IsZero() {
		params.Set("dateTime", dateTime.In(c.timezone).Format(time.RFC3339))
	}

	return c.doRequest(ctx, c.baseURL+EndpointJourney+"?"+params.Encode(), true)
}

// GetMaterial fetches the rolling stock composition of a train
func (c *Client) GetMaterial(ctx context.Context, train string) (*models.Material, error) {
	train = strings.TrimSpace(train)
	if err := validateTrainNumber(train); err != nil {
		return nil, err
	}

	body, err := c.doRequest(ctx, c.baseURL+EndpointMaterial+url.PathEscape(train), true)
	if err != nil {
		return nil, err
	}

	var resp models.MaterialResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse material response: %w", err)
	}

	m := resp.ToMaterial()
	if m.TrainNumber == "" {
		m.TrainNumber = train
	}
	return m, nil
}

// DisruptionRequest filters the disruption list
type DisruptionRequest struct {
	ActiveOnly bool   // Only disruptions currently in effect
	Type       string // DISRUPTION, MAINTENANCE or CALAMITY; empty for all
	Station    string // Only disruptions affecting this station code or name
}

// GetDisruptions fetches current and planned disruptions
func (c *Client) GetDisruptions(ctx context.Context, req DisruptionRequest) ([]models.Disruption, error) {
	params := url.Values{}
	if req.ActiveOnly {
		params.Set("isActive", "true")
	}
	if req.Type != "" {
		typ := strings.ToUpper(req.Type)
		switch typ {
		case models.DisruptionTypeDisruption, models.DisruptionTypeMaintenance, models.DisruptionTypeCalamity:
		default:
			return nil, ErrInvalidValue("type", req.Type)
		}
		params.Set("type", typ)
	}

	reqURL := c.baseURL + EndpointDisruptions
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}
	body, err := c.doRequest(ctx, reqURL, true)
	if err != nil {
		return nil, err
	}

	var resp []models.DisruptionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse disruptions response: %w", err)
	}

	disruptions := make([]models.Disruption, 0, len(resp))
	for _, r := range resp {
		d := r.ToDisruption(c.timezone)
		if req.Station != "" && !d.AffectsStation(strings.TrimSpace(req.Station)) {
			continue
		}
		disruptions = append(disruptions, *d)
	}
	return disruptions, nil
}

func validateTrainNumber(train string) error {
	if train == "" {
		return ErrMissingField("train")
	}
	if _, err := strconv.Atoi(train); err != nil {
		return ErrInvalidFormat("train", "a numeric train number")
	}
	return nil
}

// doRequest performs an HTTP GET request, consulting the response cache
// first when cacheable is set
func (c *Client) doRequest(ctx context.Context, reqURL string, cacheable bool) ([]byte, error) {
	endpoint := extractEndpoint(reqURL)
	log := c.log.WithField("endpoint", endpoint)

	if cacheable && c.cache != nil {
		if data, ok := c.cache.Get(reqURL); ok {
			log.Debug("cache hit")
			return data, nil
		}
		log.Debug("cache miss")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set(RequestIDHeader, requestID)
	if c.apiKey != "" {
		req.Header.Set(SubscriptionKeyHeader, c.apiKey)
	}
	log = log.WithField("request_id", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Debug("request failed")
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", ErrTimeout, ctx.Err())
		}
		var ue *url.Error
		if errors.As(err, &ue) && ue.Timeout() {
			return nil, fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	log = log.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start).Round(time.Millisecond),
	})

	if resp.StatusCode != http.StatusOK {
		apiErr := NewAPIError(resp.StatusCode, resp.Status, endpoint)
		apiErr.Message = errorMessage(resp.Body)
		log.Debug("request rejected")
		return nil, apiErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	log.Debug("request done")

	if cacheable && c.cache != nil {
		if err := c.cache.Set(reqURL, body); err != nil {
			log.WithError(err).Debug("cache write failed")
		}
	}

	return body, nil
}

// errorMessage extracts the message from an NS error body, if any.
func errorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil || len(data) == 0 {
		return ""
	}
	var body struct {
		Message string `json:"message"`
		Errors  []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	if len(body.Errors) > 0 {
		return body.Errors[0].Message
	}
	return ""
}

// extractEndpoint extracts the endpoint path from a full URL
func extractEndpoint(fullURL string) string {
	u, err := url.Parse(fullURL)
	if err != nil {
		return fullURL
	}
	return u.Path
}
