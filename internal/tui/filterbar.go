package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spoorzoeker/spoor-cli/internal/models"
)

// renderFilterBar renders three bordered boxes side by side: category
// chips, departure/arrival and auto-refresh.
func (m Model) renderFilterBar() string {
	// --- Category box ---
	var modes strings.Builder
	for i, group := range models.CategoryGroups {
		focused := m.focus == focusFilters && m.filterCursor == i
		modes.WriteString(m.renderChip(group, m.categoryFilters[i], focused))
		if i < len(models.CategoryGroups)-1 {
			modes.WriteString(" ")
		}
	}

	modesBorder := stylePanelNormal
	if m.focus == focusFilters {
		modesBorder = stylePanelFocused
	}
	modesBox := modesBorder.Render(modes.String())

	// --- Departure/Arrival box ---
	var board strings.Builder

	depActive := m.boardMode == boardDeparture
	depFocused := m.focus == focusBoard && m.boardCursor == 0
	board.WriteString(m.renderChip("Departure", depActive, depFocused))
	board.WriteString(" ")

	arrActive := m.boardMode == boardArrival
	arrFocused := m.focus == focusBoard && m.boardCursor == 1
	board.WriteString(m.renderChip("Arrival", arrActive, arrFocused))

	boardBorder := stylePanelNormal
	if m.focus == focusBoard {
		boardBorder = stylePanelFocused
	}
	boardBox := boardBorder.Render(board.String())

	// --- Auto-refresh box ---
	refreshFocused := m.focus == focusAutoRefresh
	refreshChip := m.renderChip("Auto-refresh 30s", m.autoRefresh, refreshFocused)

	refreshBorder := stylePanelNormal
	if refreshFocused {
		refreshBorder = stylePanelFocused
	}
	refreshBox := refreshBorder.Render(refreshChip)

	boxes := lipgloss.JoinHorizontal(lipgloss.Top, modesBox, boardBox, refreshBox)

	// Last update line above the boxes
	if !m.lastUpdate.IsZero() {
		updateText := "  Last update:\t" + m.lastUpdate.Format("15:04:05")

		// Add countdown if auto-refresh is enabled
		if m.autoRefresh {
			elapsed := m.now().Sub(m.lastUpdate)
			remaining := autoRefreshInterval - elapsed
			if remaining < 0 {
				remaining = 0
			}
			seconds := int(remaining.Seconds())
			updateText += fmt.Sprintf("\t(refresh in %ds)", seconds)
		}

		updateLine := styleMuted.Render(updateText)
		return updateLine + "\n" + boxes
	}

	return boxes
}

// renderChip renders a single chip with cursor highlighting.
func (m Model) renderChip(label string, active bool, focused bool) string {
	if focused {
		if active {
			return styleChipCursor.Render("[" + label + "]")
		}
		return styleChipCursor.Render(" " + label + " ")
	}
	if active {
		return styleLine.Render("[" + label + "]")
	}
	return styleMuted.Render(" " + label + " ")
}

// handleFilterKeys handles key events when the category box is focused.
func (m Model) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h", "left":
		if m.filterCursor > 0 {
			m.filterCursor--
		}
		return m, nil

	case "l", "right":
		if m.filterCursor < len(models.CategoryGroups)-1 {
			m.filterCursor++
		}
		return m, nil

	case " ", "enter":
		m.categoryFilters = toggled(m.categoryFilters, m.filterCursor)
		return m.applyFilter()

	case "a":
		return m.toggleAllCategories()

	case "tab":
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

// handleBoardKeys handles key events when the departure/arrival box is focused.
func (m Model) handleBoardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h", "left":
		if m.boardCursor > 0 {
			m.boardCursor--
		}
		return m, nil

	case "l", "right":
		if m.boardCursor < 1 {
			m.boardCursor++
		}
		return m, nil

	case " ", "enter":
		if m.boardCursor == 0 {
			m.boardMode = boardDeparture
		} else {
			m.boardMode = boardArrival
		}
		return m.refetchBoard()

	case "tab":
		m.focus = focusAutoRefresh
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

// toggled returns a copy of filters with index i flipped. Models are
// values, so the slice must not be shared with earlier copies.
func toggled(filters []bool, i int) []bool {
	out := append([]bool(nil), filters...)
	out[i] = !out[i]
	return out
}

// toggleAllCategories turns every category on, or all off when all are on.
func (m Model) toggleAllCategories() (tea.Model, tea.Cmd) {
	anyOff := false
	for _, active := range m.categoryFilters {
		if !active {
			anyOff = true
			break
		}
	}
	filters := make([]bool, len(m.categoryFilters))
	for i := range filters {
		filters[i] = anyOff
	}
	m.categoryFilters = filters

	return m.applyFilter()
}

// applyFilter re-applies the category filter to the loaded board. The NS
// board has no category parameter, so nothing is refetched.
func (m Model) applyFilter() (tea.Model, tea.Cmd) {
	m.departureCursor = 0
	m.clampDepartureCursor()
	return m, nil
}

// refetchBoard re-fetches departures/arrivals if a station is selected.
func (m Model) refetchBoard() (tea.Model, tea.Cmd) {
	if m.selectedStation != nil {
		m.departuresLoading = true
		m.departuresErr = nil
		m.departures = nil
		m.departureCursor = 0
		m.showJourney = false
		m.journey = nil
		return m, fetchBoard(m.client, *m.selectedStation, m.boardMode)
	}
	return m, nil
}
