package tui

import (
	"time"

	"github.com/spoorzoeker/spoor-cli/internal/models"
)

// autoRefreshTickMsg is sent every 30 seconds when auto-refresh is enabled.
type autoRefreshTickMsg time.Time

// countdownTickMsg is sent every second when auto-refresh is enabled to update countdown display.
type countdownTickMsg time.Time

// searchResultMsg carries station search results back to the model.
// seq is used for stale-result detection.
type searchResultMsg struct {
	seq      int
	stations []models.Station
	err      error
}

// departuresResultMsg carries the board of a specific station.
type departuresResultMsg struct {
	stationCode string
	departures  []models.Departure
	err         error
}

// journeyResultMsg carries journey detail results.
type journeyResultMsg struct {
	train   string
	journey *models.Journey
	err     error
}

// Live map messages carry the generation of the live view that scheduled
// them. A message from an older generation belongs to a closed view and is
// dropped, which also ends its tick chain.

// frameTickMsg advances the animation by one frame.
type frameTickMsg struct {
	gen int
	at  time.Time
}

// telemetryTickMsg triggers the next vehicle poll.
type telemetryTickMsg struct {
	gen int
}

// telemetryMsg carries one vehicle poll result.
type telemetryMsg struct {
	gen        int
	vehicle    *models.Vehicle
	receivedAt time.Time
	err        error
}

// trackMsg carries the track geometry along the followed journey.
type trackMsg struct {
	gen      int
	geometry *models.TrackGeometry
	err      error
}
