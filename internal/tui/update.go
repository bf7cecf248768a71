package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and key events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case searchResultMsg:
		return m.handleSearchResult(msg)

	case departuresResultMsg:
		return m.handleDeparturesResult(msg)

	case journeyResultMsg:
		return m.handleJourneyResult(msg)

	case autoRefreshTickMsg:
		return m.handleAutoRefreshTick()

	case countdownTickMsg:
		return m.handleCountdownTick()

	case telemetryMsg:
		return m.handleTelemetry(msg)

	case telemetryTickMsg:
		return m.handleTelemetryTick(msg)

	case frameTickMsg:
		return m.handleFrameTick(msg)

	case trackMsg:
		return m.handleTrack(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Pass remaining messages to textinput when focused
	if m.focus == focusSearch {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleSearchResult(msg searchResultMsg) (tea.Model, tea.Cmd) {
	// Ignore stale results
	if msg.seq != m.searchSeq {
		return m, nil
	}
	m.stationsLoading = false
	m.stationsErr = msg.err
	if msg.err != nil {
		return m, nil
	}

	m.stations = msg.stations
	m.stationCursor = 0

	// Auto-select first station and fetch departures
	if len(m.stations) > 0 {
		m.focus = focusStations
		m.searchInput.Blur()
		station := m.stations[0]
		m.selectedStation = &station
		m.departuresLoading = true
		m.departuresErr = nil
		m.departures = nil
		m.departureCursor = 0
		m.showJourney = false
		return m, fetchBoard(m.client, station, m.boardMode)
	}

	return m, nil
}

func (m Model) handleDeparturesResult(msg departuresResultMsg) (tea.Model, tea.Cmd) {
	// Ignore if station changed
	if m.selectedStation == nil || msg.stationCode != m.selectedStation.Code {
		return m, nil
	}
	m.departuresLoading = false
	m.departuresErr = msg.err
	if msg.err == nil {
		hadData := len(m.departures) > 0
		m.departures = msg.departures
		visible := m.visibleDepartures()
		if hadData && m.selectedTrain != "" {
			// Re-locate the selected train in the refreshed list
			found := false
			for i, dep := range visible {
				if dep.TrainNumber == m.selectedTrain {
					m.departureCursor = i
					found = true
					break
				}
			}
			if !found {
				// Train left the board, close the journey view
				m.showJourney = false
				m.journey = nil
				m.selectedTrain = ""
			}
		} else if !hadData {
			m.departureCursor = 0
		}
		m.clampDepartureCursor()
		m.lastUpdate = m.now()
	}
	return m, nil
}

func (m *Model) clampDepartureCursor() {
	n := len(m.visibleDepartures())
	if m.departureCursor >= n {
		m.departureCursor = n - 1
	}
	if m.departureCursor < 0 {
		m.departureCursor = 0
	}
}

func (m Model) handleJourneyResult(msg journeyResultMsg) (tea.Model, tea.Cmd) {
	var liveCmd tea.Cmd
	if msg.err == nil {
		m, liveCmd = m.liveJourney(msg.journey)
	}
	if msg.train != m.selectedTrain {
		return m, liveCmd
	}
	return m.applyJourney(msg), liveCmd
}

func (m Model) applyJourney(msg journeyResultMsg) Model {
	m.journeyLoading = false
	m.journeyErr = msg.err
	if msg.err == nil {
		wasShowing := m.showJourney && m.journey != nil
		m.journey = msg.journey
		m.showJourney = true

		if len(m.journey.Stops) > 0 {
			if m.journeyScroll >= len(m.journey.Stops) {
				m.journeyScroll = len(m.journey.Stops) - 1
			}
			if m.journeyScroll < 0 {
				m.journeyScroll = 0
			}
		}

		if !wasShowing || !m.journeyManualScroll {
			// New journey or no manual scroll, follow the current stop
			m.journeyManualScroll = false
			m.journeyScroll = 0
			if idx := m.journey.CurrentStop(m.now()); idx >= 0 {
				m.journeyScroll = idx
			}
		}
	}
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	}

	switch m.focus {
	case focusSearch:
		return m.handleSearchKeys(msg)
	case focusFilters:
		return m.handleFilterKeys(msg)
	case focusBoard:
		return m.handleBoardKeys(msg)
	case focusAutoRefresh:
		return m.handleAutoRefreshKeys(msg)
	case focusStations:
		return m.handleStationKeys(msg)
	case focusDepartures:
		return m.handleDepartureKeys(msg)
	case focusJourney:
		return m.handleJourneyKeys(msg)
	case focusLive:
		return m.handleLiveKeys(msg)
	}

	return m, nil
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		query := strings.TrimSpace(m.searchInput.Value())
		if query == "" {
			return m, nil
		}
		m.searchSeq++
		m.stationsLoading = true
		m.stationsErr = nil
		return m, searchStations(m.client, query, m.searchSeq)

	case "esc":
		m.searchInput.SetValue("")
		return m, nil

	case "tab":
		m.focus = focusFilters
		m.searchInput.Blur()
		return m, nil

	case "shift+tab":
		// Navigate backward to last available panel
		if m.showJourney {
			m.focus = focusJourney
		} else if len(m.departures) > 0 {
			m.focus = focusDepartures
		} else if len(m.stations) > 0 {
			m.focus = focusStations
		} else {
			m.focus = focusAutoRefresh
		}
		m.searchInput.Blur()
		return m, nil
	}

	// Forward to textinput
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) handleStationKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A refresh may have shortened the journey
	if len(m.stations) > 0 {
		if m.stationCursor < 0 {
			m.stationCursor = 0
		}
		if m.stationCursor >= len(m.stations) {
			m.stationCursor = len(m.stations) - 1
		}
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "tab":
		if len(m.departures) > 0 {
			m.focus = focusDepartures
			return m, nil
		}
		m.focus = focusSearch
		m.searchInput.Focus()
		return m, nil

	case "shift+tab":
		m.focus = focusAutoRefresh
		return m, nil

	case "esc", "/":
		m.focus = focusSearch
		m.searchInput.Focus()
		return m, nil

	case "j", "down":
		if m.stationCursor < len(m.stations)-1 {
			m.stationCursor++
		}
		return m, nil

	case "k", "up":
		if m.stationCursor > 0 {
			m.stationCursor--
		}
		return m, nil

	case "pgdown":
		if len(m.stations) > 0 {
			m.stationCursor += m.pageSize(1)
			if m.stationCursor >= len(m.stations) {
				m.stationCursor = len(m.stations) - 1
			}
		}
		return m, nil

	case "pgup":
		if len(m.stations) > 0 {
			m.stationCursor -= m.pageSize(1)
			if m.stationCursor < 0 {
				m.stationCursor = 0
			}
		}
		return m, nil

	case "home":
		m.stationCursor = 0
		return m, nil

	case "end":
		if len(m.stations) > 0 {
			m.stationCursor = len(m.stations) - 1
		}
		return m, nil

	case "enter":
		if len(m.stations) > 0 {
			station := m.stations[m.stationCursor]
			m.selectedStation = &station
			m.departuresLoading = true
			m.departuresErr = nil
			m.departures = nil
			m.departureCursor = 0
			m.showJourney = false
			m.journey = nil
			return m, fetchBoard(m.client, station, m.boardMode)
		}
	}

	return m, nil
}

func (m Model) handleDepartureKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.visibleDepartures()
	m.clampDepartureCursor()

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "tab":
		if m.showJourney {
			m.focus = focusJourney
		} else {
			m.focus = focusSearch
			m.searchInput.Focus()
		}
		return m, nil

	case "shift+tab":
		m.focus = focusStations
		return m, nil

	case "esc":
		if m.showJourney {
			m.showJourney = false
			m.journey = nil
			m.selectedTrain = ""
			return m, nil
		}
		m.focus = focusStations
		return m, nil

	case "/":
		m.focus = focusSearch
		m.searchInput.Focus()
		return m, nil

	case "j", "down":
		if m.departureCursor < len(visible)-1 {
			m.departureCursor++
		}
		return m, nil

	case "k", "up":
		if m.departureCursor > 0 {
			m.departureCursor--
		}
		return m, nil

	case "pgdown":
		m.departureCursor += m.pageSize(1)
		m.clampDepartureCursor()
		return m, nil

	case "pgup":
		m.departureCursor -= m.pageSize(1)
		m.clampDepartureCursor()
		return m, nil

	case "home":
		m.departureCursor = 0
		return m, nil

	case "end":
		m.departureCursor = len(visible) - 1
		m.clampDepartureCursor()
		return m, nil

	case "enter":
		if len(visible) > 0 {
			dep := visible[m.departureCursor]
			if dep.TrainNumber != "" {
				m.selectedTrain = dep.TrainNumber
				m.journeyLoading = true
				m.journeyErr = nil
				m.journey = nil
				return m, fetchJourney(m.client, dep.TrainNumber)
			}
		}

	case "m":
		if len(visible) > 0 && visible[m.departureCursor].TrainNumber != "" {
			train := visible[m.departureCursor].TrainNumber
			journey := m.journey
			if journey != nil && journey.TrainNumber != train {
				journey = nil
			}
			return m.openLive(train, journey)
		}
	}

	return m, nil
}

// pageSize is the number of list rows per page for rows of the given height.
func (m Model) pageSize(rowHeight int) int {
	size := (m.height - 10) / rowHeight
	if size < 1 {
		return 5
	}
	return size
}

func (m Model) handleAutoRefreshKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ", "enter":
		m.autoRefresh = !m.autoRefresh
		if m.autoRefresh {
			// Do immediate update when enabling auto-refresh
			var cmds []tea.Cmd
			cmds = append(cmds, autoRefreshTick(), countdownTick())

			// Immediately refresh board if a station is selected
			if m.selectedStation != nil {
				cmds = append(cmds, fetchBoard(m.client, *m.selectedStation, m.boardMode))
			}

			// Immediately refresh journey if one is displayed
			if m.showJourney && m.selectedTrain != "" {
				cmds = append(cmds, fetchJourney(m.client, m.selectedTrain))
			}

			return m, tea.Batch(cmds...)
		}
		return m, nil

	case "tab":
		if len(m.stations) > 0 {
			m.focus = focusStations
			return m, nil
		}
		m.focus = focusSearch
		m.searchInput.Focus()
		return m, nil

	case "shift+tab":
		m.focus = focusBoard
		return m, nil

	case "esc", "/":
		m.focus = focusSearch
		m.searchInput.Focus()
		return m, nil

	case "q":
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleAutoRefreshTick() (tea.Model, tea.Cmd) {
	if !m.autoRefresh {
		return m, nil
	}

	var cmds []tea.Cmd

	// Schedule next tick
	cmds = append(cmds, autoRefreshTick())

	// Silently refresh board, keeping existing data visible until new data arrives
	if m.selectedStation != nil {
		cmds = append(cmds, fetchBoard(m.client, *m.selectedStation, m.boardMode))
	}

	// Silently refresh journey if one is displayed
	if m.showJourney && m.selectedTrain != "" {
		cmds = append(cmds, fetchJourney(m.client, m.selectedTrain))
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleCountdownTick() (tea.Model, tea.Cmd) {
	if !m.autoRefresh {
		return m, nil
	}
	// Schedule next countdown tick
	return m, countdownTick()
}

func (m Model) handleJourneyKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A refresh may have shortened the journey
	if m.journey != nil && len(m.journey.Stops) > 0 {
		if m.journeyScroll < 0 {
			m.journeyScroll = 0
		}
		if m.journeyScroll >= len(m.journey.Stops) {
			m.journeyScroll = len(m.journey.Stops) - 1
		}
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "tab", "/":
		m.focus = focusSearch
		m.searchInput.Focus()
		return m, nil

	case "shift+tab":
		m.focus = focusDepartures
		return m, nil

	case "esc":
		m.focus = focusDepartures
		return m, nil

	case "j", "down":
		if m.journey != nil && m.journeyScroll < len(m.journey.Stops)-1 {
			m.journeyScroll++
			m.journeyManualScroll = true
		}
		return m, nil

	case "k", "up":
		if m.journeyScroll > 0 {
			m.journeyScroll--
			m.journeyManualScroll = true
		}
		return m, nil

	case "pgdown":
		if m.journey != nil && len(m.journey.Stops) > 0 {
			m.journeyScroll += m.pageSize(3)
			if m.journeyScroll >= len(m.journey.Stops) {
				m.journeyScroll = len(m.journey.Stops) - 1
			}
			m.journeyManualScroll = true
		}
		return m, nil

	case "pgup":
		if m.journey != nil && len(m.journey.Stops) > 0 {
			m.journeyScroll -= m.pageSize(3)
			if m.journeyScroll < 0 {
				m.journeyScroll = 0
			}
			m.journeyManualScroll = true
		}
		return m, nil

	case "home":
		m.journeyScroll = 0
		m.journeyManualScroll = true
		return m, nil

	case "end":
		if m.journey != nil && len(m.journey.Stops) > 0 {
			m.journeyScroll = len(m.journey.Stops) - 1
			m.journeyManualScroll = true
		}
		return m, nil

	case "m":
		if m.journey != nil {
			return m.openLive(m.journey.TrainNumber, m.journey)
		}
	}

	return m, nil
}
