package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spoorzoeker/spoor-cli/internal/api"
	"github.com/spoorzoeker/spoor-cli/internal/config"
	"github.com/spoorzoeker/spoor-cli/internal/models"
)

// Backend is the part of the API client the TUI talks to.
type Backend interface {
	SearchStations(ctx context.Context, query string, limit int) ([]models.Station, error)
	GetDepartures(ctx context.Context, req api.StationBoardRequest) ([]models.Departure, error)
	GetArrivals(ctx context.Context, req api.StationBoardRequest) ([]models.Departure, error)
	GetJourney(ctx context.Context, train string, dateTime time.Time) (*models.Journey, error)
	GetVehicle(ctx context.Context, train string) (*models.Vehicle, error)
	GetJourneyTrack(ctx context.Context, j *models.Journey) (*models.TrackGeometry, error)
}

type focusPanel int

const (
	focusSearch focusPanel = iota
	focusFilters
	focusBoard
	focusAutoRefresh
	focusStations
	focusDepartures
	focusJourney
	focusLive
)

type boardMode int

const (
	boardDeparture boardMode = iota
	boardArrival
)

// Option configures the model.
type Option func(*Model)

// WithLiveConfig sets the live map timing and animation parameters.
func WithLiveConfig(cfg config.LiveConfig) Option {
	return func(m *Model) {
		m.liveCfg = cfg
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		m.now = now
	}
}

// Model is the root Bubble Tea model for the TUI.
type Model struct {
	client  Backend
	liveCfg config.LiveConfig
	now     func() time.Time
	width   int
	height  int

	searchInput textinput.Model
	focus       focusPanel

	// Filter bar - category groups, filtered locally
	categoryFilters []bool
	filterCursor    int

	// Board mode - departure/arrival
	boardMode   boardMode
	boardCursor int

	// Auto-refresh
	autoRefresh bool
	lastUpdate  time.Time

	// Left panel - stations
	stations        []models.Station
	stationCursor   int
	stationsLoading bool
	stationsErr     error
	searchSeq       int

	// Right panel - departures
	selectedStation   *models.Station
	departures        []models.Departure
	departureCursor   int
	departuresLoading bool
	departuresErr     error

	// Right panel - journey detail
	selectedTrain       string
	journey             *models.Journey
	journeyLoading      bool
	journeyErr          error
	showJourney         bool
	journeyScroll       int
	journeyManualScroll bool

	// Live map, replaces the right panel while open
	live    *liveView
	liveGen int
}

// New creates a new TUI model.
func New(client Backend, opts ...Option) Model {
	ti := textinput.New()
	ti.Placeholder = "Search station..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 40

	filters := make([]bool, len(models.CategoryGroups))
	for i := range filters {
		filters[i] = true
	}

	m := Model{
		client:          client,
		liveCfg:         config.Default().Live,
		now:             time.Now,
		searchInput:     ti,
		focus:           focusSearch,
		categoryFilters: filters,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// categoryEnabled reports whether rows of the given NS category are shown.
func (m Model) categoryEnabled(category string) bool {
	group := models.CategoryGroup(category)
	for i, g := range models.CategoryGroups {
		if g == group {
			return m.categoryFilters[i]
		}
	}
	return true
}

// visibleDepartures returns the board rows that pass the category filter.
func (m Model) visibleDepartures() []models.Departure {
	out := make([]models.Departure, 0, len(m.departures))
	for _, d := range m.departures {
		if m.categoryEnabled(d.Category) {
			out = append(out, d)
		}
	}
	return out
}

// Init returns the initial command (textinput blink).
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}
