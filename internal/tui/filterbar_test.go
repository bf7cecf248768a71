package tui

import (
	"testing"
	"time"

	"github.com/spoorzoeker/spoor-cli/internal/models"
	"github.com/spoorzoeker/spoor-cli/internal/testutil"
)

func TestRenderFilterBar_AllEnabled(t *testing.T) {
	m := New(&fakeBackend{})
	m.width = 120

	output := m.renderFilterBar()
	for _, group := range models.CategoryGroups {
		testutil.AssertContains(t, output, "["+group+"]")
	}
}

func TestRenderFilterBar_SomeDisabled(t *testing.T) {
	m := New(&fakeBackend{})
	m.width = 120
	m.categoryFilters[0] = false // IC
	m.categoryFilters[3] = false // SPR

	output := m.renderFilterBar()
	testutil.AssertNotContains(t, output, "[SPR]")
	testutil.AssertContains(t, output, " SPR ")
	testutil.AssertContains(t, output, "[INT]")
}

func TestRenderFilterBar_BoardMode(t *testing.T) {
	m := New(&fakeBackend{})
	m.width = 120

	m.boardMode = boardDeparture
	testutil.AssertContains(t, m.renderFilterBar(), "[Departure]")

	m.boardMode = boardArrival
	output := m.renderFilterBar()
	testutil.AssertContains(t, output, "[Arrival]")
	testutil.AssertNotContains(t, output, "[Departure]")
}

func TestRenderFilterBar_AutoRefresh(t *testing.T) {
	m := New(&fakeBackend{})
	m.width = 120

	testutil.AssertNotContains(t, m.renderFilterBar(), "[Auto-refresh 30s]")

	m.autoRefresh = true
	testutil.AssertContains(t, m.renderFilterBar(), "[Auto-refresh 30s]")
}

func TestRenderFilterBar_LastUpdateCountdown(t *testing.T) {
	now := time.Date(2024, 3, 1, 14, 30, 10, 0, time.UTC)
	m := New(&fakeBackend{}, WithClock(func() time.Time { return now }))
	m.width = 120
	m.lastUpdate = now.Add(-10 * time.Second)

	output := m.renderFilterBar()
	testutil.AssertContains(t, output, "Last update:")
	testutil.AssertNotContains(t, output, "refresh in")

	m.autoRefresh = true
	testutil.AssertContains(t, m.renderFilterBar(), "(refresh in 20s)")
}

func TestFilterKeys_ToggleAll(t *testing.T) {
	m := New(&fakeBackend{})
	m.focus = focusFilters

	m, _ = update(t, m, key("a"))
	for _, on := range m.categoryFilters {
		testutil.AssertFalse(t, on)
	}

	m, _ = update(t, m, key("a"))
	for _, on := range m.categoryFilters {
		testutil.AssertTrue(t, on)
	}
}

func TestFilterKeys_CursorBounds(t *testing.T) {
	m := New(&fakeBackend{})
	m.focus = focusFilters

	m, _ = update(t, m, key("h"))
	testutil.AssertEqual(t, m.filterCursor, 0)

	for range models.CategoryGroups {
		m, _ = update(t, m, key("l"))
	}
	testutil.AssertEqual(t, m.filterCursor, len(models.CategoryGroups)-1)
}

func TestToggled(t *testing.T) {
	in := []bool{true, true, true}
	out := toggled(in, 1)

	testutil.AssertEqual(t, out[1], false)
	testutil.AssertEqual(t, in[1], true)
}
