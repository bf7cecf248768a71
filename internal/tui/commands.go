package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spoorzoeker/spoor-cli/internal/api"
	"github.com/spoorzoeker/spoor-cli/internal/models"
)

const (
	apiTimeout          = 5 * time.Second
	autoRefreshInterval = 30 * time.Second
	searchLimit         = 25
)

// autoRefreshTick returns a tea.Cmd that sends a tick after the refresh interval.
func autoRefreshTick() tea.Cmd {
	return tea.Tick(autoRefreshInterval, func(t time.Time) tea.Msg {
		return autoRefreshTickMsg(t)
	})
}

// countdownTick returns a tea.Cmd that sends a tick every second for countdown display.
func countdownTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return countdownTickMsg(t)
	})
}

// searchStations returns a tea.Cmd that searches for stations.
func searchStations(client Backend, query string, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
		defer cancel()

		stations, err := client.SearchStations(ctx, query, searchLimit)
		return searchResultMsg{
			seq:      seq,
			stations: stations,
			err:      err,
		}
	}
}

// fetchBoard returns a tea.Cmd that fetches departures or arrivals for a station.
func fetchBoard(client Backend, station models.Station, mode boardMode) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
		defer cancel()

		req := api.StationBoardRequest{Station: station.Code}
		var departures []models.Departure
		var err error
		if mode == boardArrival {
			departures, err = client.GetArrivals(ctx, req)
		} else {
			departures, err = client.GetDepartures(ctx, req)
		}
		return departuresResultMsg{
			stationCode: station.Code,
			departures:  departures,
			err:         err,
		}
	}
}

// fetchJourney returns a tea.Cmd that fetches the run of a train.
func fetchJourney(client Backend, train string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
		defer cancel()

		journey, err := client.GetJourney(ctx, train, time.Time{})
		return journeyResultMsg{
			train:   train,
			journey: journey,
			err:     err,
		}
	}
}

// frameTick schedules the next animation frame.
func frameTick(gen int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return frameTickMsg{gen: gen, at: t}
	})
}

// telemetryTick schedules the next vehicle poll.
func telemetryTick(gen int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return telemetryTickMsg{gen: gen}
	})
}

// fetchTelemetry polls the live position of a train.
func fetchTelemetry(client Backend, gen int, train string, now func() time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
		defer cancel()

		v, err := client.GetVehicle(ctx, train)
		return telemetryMsg{
			gen:        gen,
			vehicle:    v,
			receivedAt: now(),
			err:        err,
		}
	}
}

// fetchTrack fetches the track geometry along a journey.
func fetchTrack(client Backend, gen int, journey *models.Journey) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
		defer cancel()

		g, err := client.GetJourneyTrack(ctx, journey)
		return trackMsg{gen: gen, geometry: g, err: err}
	}
}
