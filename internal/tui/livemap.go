package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/paulmach/orb"
	"github.com/spoorzoeker/spoor-cli/internal/animate"
	"github.com/spoorzoeker/spoor-cli/internal/geo"
	"github.com/spoorzoeker/spoor-cli/internal/models"
	"github.com/spoorzoeker/spoor-cli/internal/output"
)

// liveView follows one train on a map. Telemetry is polled on its own
// cadence and the animator fills the frames in between.
type liveView struct {
	gen      int
	train    string
	journey  *models.Journey
	geometry *models.TrackGeometry

	animator  *animate.Animator
	routeFrom routeSource
	// Newest sample, which the animator only picks up on its next frame.
	latest animate.Telemetry

	telemetryErr error
	trackErr     error
}

type routeSource int

const (
	routeNone routeSource = iota
	routeStops
	routeTrack
)

// openLive starts following train. The journey may be nil; the map then
// waits for the journey fetch to supply stops and track.
func (m Model) openLive(train string, journey *models.Journey) (tea.Model, tea.Cmd) {
	m.liveGen++
	m.live = &liveView{gen: m.liveGen, train: train, journey: journey}
	m.focus = focusLive

	cmds := []tea.Cmd{fetchTelemetry(m.client, m.liveGen, train, m.now)}
	if journey != nil {
		cmds = append(cmds, fetchTrack(m.client, m.liveGen, journey))
	} else {
		cmds = append(cmds, fetchJourney(m.client, train))
	}
	return m, tea.Batch(cmds...)
}

// closeLive leaves the live map. Pending ticks of the closed view are
// dropped when they arrive.
func (m Model) closeLive() (tea.Model, tea.Cmd) {
	m.live = nil
	if m.showJourney {
		m.focus = focusJourney
	} else {
		m.focus = focusDepartures
	}
	return m, nil
}

func (m Model) isLiveMsg(gen int) bool {
	return m.live != nil && m.live.gen == gen
}

func (m Model) animatorOptions() []animate.Option {
	return []animate.Option{
		animate.WithSpeedThreshold(m.liveCfg.SpeedThreshold),
		animate.WithBlendFactor(m.liveCfg.BlendFactor),
	}
}

func (m Model) handleTelemetry(msg telemetryMsg) (tea.Model, tea.Cmd) {
	if !m.isLiveMsg(msg.gen) {
		return m, nil
	}
	lv := *m.live
	m.live = &lv

	next := telemetryTick(lv.gen, m.liveCfg.TelemetryInterval)
	lv.telemetryErr = msg.err
	if msg.err != nil || msg.vehicle == nil {
		// Keep polling; the stale badge shows the gap meanwhile.
		return m, next
	}

	t := msg.vehicle.ToTelemetry(msg.receivedAt)
	lv.latest = t
	if lv.animator == nil {
		lv.animator = animate.New(t, m.now(), m.animatorOptions()...)
		lv.applyRoute()
		return m, tea.Batch(next, frameTick(lv.gen, m.liveCfg.FrameInterval()))
	}

	lv.animator.Push(t)
	lv.applyRoute()
	return m, next
}

func (m Model) handleTelemetryTick(msg telemetryTickMsg) (tea.Model, tea.Cmd) {
	if !m.isLiveMsg(msg.gen) {
		return m, nil
	}
	return m, fetchTelemetry(m.client, msg.gen, m.live.train, m.now)
}

func (m Model) handleFrameTick(msg frameTickMsg) (tea.Model, tea.Cmd) {
	if !m.isLiveMsg(msg.gen) || m.live.animator == nil {
		return m, nil
	}
	m.live.animator.Tick(m.now())
	return m, frameTick(msg.gen, m.liveCfg.FrameInterval())
}

func (m Model) handleTrack(msg trackMsg) (tea.Model, tea.Cmd) {
	if !m.isLiveMsg(msg.gen) {
		return m, nil
	}
	lv := *m.live
	m.live = &lv

	lv.trackErr = msg.err
	if msg.err == nil {
		lv.geometry = msg.geometry
	}
	lv.applyRoute()
	return m, nil
}

// liveJourney hands a freshly fetched journey to the live view when it was
// opened without one.
func (m Model) liveJourney(journey *models.Journey) (Model, tea.Cmd) {
	if m.live == nil || m.live.journey != nil || journey == nil || journey.TrainNumber != m.live.train {
		return m, nil
	}
	lv := *m.live
	lv.journey = journey
	m.live = &lv
	lv.applyRoute()
	return m, fetchTrack(m.client, lv.gen, journey)
}

// applyRoute picks the route to track: the real track geometry when it
// passes near the train, else the straight lines between the stops. A
// route is only replaced by one from a better source.
func (lv *liveView) applyRoute() {
	if lv.animator == nil || lv.routeFrom == routeTrack {
		return
	}
	pos, heading := lv.latest.Position, lv.latest.Heading

	if lv.geometry != nil {
		if r, ok := geo.SelectRoute([]geo.Route{lv.geometry.Joined()}, pos, heading, geo.DefaultSnapDistance); ok {
			lv.animator.SetRoute(r)
			lv.routeFrom = routeTrack
			return
		}
	}
	if lv.routeFrom == routeNone && lv.journey != nil {
		if r, ok := geo.SelectRoute([]geo.Route{lv.journey.Route()}, pos, heading, geo.DefaultSnapDistance); ok {
			lv.animator.SetRoute(r)
			lv.routeFrom = routeStops
		}
	}
}

func (m Model) handleLiveKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "m":
		return m.closeLive()
	case "/":
		m.live = nil
		m.focus = focusSearch
		m.searchInput.Focus()
		return m, nil
	}
	return m, nil
}

// liveStatus builds the status line of the followed train.
func (m Model) liveStatus() output.FollowStatus {
	now := m.now()
	lv := m.live
	age := lv.animator.TelemetryAge(now)
	s := output.FollowStatus{
		TrainNumber: lv.train,
		State:       lv.animator.State(),
		Age:         age,
		Stale:       age > m.liveCfg.StaleAfter,
	}
	if lv.journey != nil {
		if next := lv.journey.NextStop(now); next != nil {
			s.NextStop = next.Name
		}
	}
	return s
}

// renderLiveMap renders the followed train on its route.
func (m Model) renderLiveMap(width, height int) string {
	lv := m.live
	title := "LIVE: " + lv.train
	if lv.journey != nil {
		title = fmt.Sprintf("LIVE: %s %s", lv.journey.Category, lv.train)
		if lv.journey.Destination != "" {
			title += " to " + lv.journey.Destination
		}
	}
	titleStr := styleHeader.Render(truncate(title, width))

	if lv.animator == nil {
		if lv.telemetryErr != nil {
			return titleStr + "\n" + styleError.Render(" Error: "+lv.telemetryErr.Error())
		}
		return titleStr + "\n" + styleLoading.Render(" Waiting for position...")
	}

	s := m.liveStatus()
	status := truncate(output.FormatFollowStatus(s, nil), width)
	statusStr := styleMuted.Render(status)
	if s.Stale {
		statusStr = styleDelay.Render(status)
	}

	mapHeight := height - 3
	if mapHeight < 3 || width < 3 {
		return titleStr + "\n" + statusStr
	}

	state := lv.animator.State()
	route := lv.animator.Route()
	if len(route) < 2 && lv.journey != nil {
		route = lv.journey.Route()
	}

	bound := orb.Bound{Min: state.Position.Orb(), Max: state.Position.Orb()}
	if len(route) > 0 {
		bound = route.Bound().Extend(state.Position.Orb())
	}

	g := newMapGrid(bound, width, mapHeight)
	g.drawPath(route)
	if lv.journey != nil {
		g.placeStops(lv.journey.Stops, lv.journey.CurrentStop(m.now()))
	}
	g.set(g.project(state.Position), '■', mapCellVehicle)

	var b strings.Builder
	b.WriteString(titleStr)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Render(g.String()))
	b.WriteString("\n")
	b.WriteString(statusStr)
	return b.String()
}
