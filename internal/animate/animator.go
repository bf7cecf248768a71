// Package animate moves a train marker smoothly between sparse telemetry
// samples. An Animator owns the state of one vehicle and is advanced once
// per display frame by its host; telemetry and track geometry arrive on a
// much slower cadence and are merged at the start of the next frame.
//
// An Animator is not safe for concurrent use. Hosts that receive telemetry
// on another goroutine must hand it over to the frame loop first (the TUI
// does this through bubbletea messages).
package animate

import (
	"time"

	"github.com/spoorzoeker/spoor-cli/internal/geo"
)

const (
	// DefaultSpeedThreshold is the speed (km/h) below which a vehicle is
	// considered standing and blends toward its last fix.
	DefaultSpeedThreshold = 3.0

	// DefaultBlendFactor is the fraction of the remaining gap closed per frame
	// when coasting toward a fix or correcting toward a new one.
	DefaultBlendFactor = 0.1
)

// Mode is the animation state of a vehicle.
type Mode int

const (
	// Coasting blends toward the last raw fix.
	Coasting Mode = iota
	// Tracking advances along a known route.
	Tracking
	// Free advances along the heading without a route.
	Free
)

func (m Mode) String() string {
	switch m {
	case Coasting:
		return "coasting"
	case Tracking:
		return "tracking"
	case Free:
		return "free"
	}
	return "unknown"
}

// Telemetry is one raw sample from the vehicle position feed.
type Telemetry struct {
	VehicleID  string
	Position   geo.Position
	SpeedKmh   float64
	Heading    float64 // degrees, 0 = north, clockwise
	ReceivedAt time.Time
}

// VehicleState is the mutable animation state of one vehicle marker.
type VehicleState struct {
	Position  geo.Position
	Segment   int
	Progress  float64
	Telemetry Telemetry
	LastFrame time.Time
	Mode      Mode
}

// Option configures an Animator.
type Option func(*Animator)

// WithSpeedThreshold sets the standing/moving threshold in km/h.
func WithSpeedThreshold(kmh float64) Option {
	return func(a *Animator) {
		a.speedThreshold = kmh
	}
}

// WithBlendFactor sets the per-frame blend fraction (0 < f <= 1).
func WithBlendFactor(f float64) Option {
	return func(a *Animator) {
		if f > 0 && f <= 1 {
			a.blend = f
		}
	}
}

// Animator computes where to draw one vehicle on every frame.
type Animator struct {
	state VehicleState
	route geo.Route

	pending        *Telemetry
	pendingRoute   geo.Route
	hasRouteUpdate bool

	// Along-route gap to the latest fix (Tracking), in degrees.
	correction float64
	// Planar gap to the latest fix (Free).
	offset geo.Position

	speedThreshold float64
	blend          float64
}

// New creates an animator for a vehicle first seen at t.
func New(t Telemetry, now time.Time, opts ...Option) *Animator {
	a := &Animator{
		speedThreshold: DefaultSpeedThreshold,
		blend:          DefaultBlendFactor,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.state = VehicleState{
		Position:  t.Position,
		Telemetry: t,
		LastFrame: now,
	}
	a.state.Mode = a.selectMode()
	return a
}

// Push hands over a new telemetry sample. It takes effect on the next
// Tick; if several arrive in between, only the last one is kept.
func (a *Animator) Push(t Telemetry) {
	a.pending = &t
}

// SetRoute hands over the track the vehicle runs on. A nil or single-point
// route drops tracking. Like Push, it takes effect on the next Tick.
func (a *Animator) SetRoute(r geo.Route) {
	a.pendingRoute = append(geo.Route(nil), r...)
	a.hasRouteUpdate = true
}

// Route returns the route currently in use.
func (a *Animator) Route() geo.Route {
	return a.route
}

// State returns a snapshot of the vehicle state.
func (a *Animator) State() VehicleState {
	return a.state
}

// TelemetryAge reports how old the newest known sample is. The animator
// keeps moving on old data regardless; hosts decide whether to flag it.
func (a *Animator) TelemetryAge(now time.Time) time.Duration {
	received := a.state.Telemetry.ReceivedAt
	if a.pending != nil {
		received = a.pending.ReceivedAt
	}
	if received.IsZero() {
		return 0
	}
	return now.Sub(received)
}

// Tick advances the animation to now and returns the position to draw.
func (a *Animator) Tick(now time.Time) geo.Position {
	elapsed := now.Sub(a.state.LastFrame)
	if elapsed < 0 {
		elapsed = 0
	}
	a.state.LastFrame = now

	prev := a.state.Mode
	routeChanged := a.mergeRoute()
	fresh := a.mergeTelemetry()
	a.state.Mode = a.selectMode()

	switch a.state.Mode {
	case Tracking:
		if prev != Tracking || routeChanged {
			a.snapToRoute()
			a.correction = 0
		}
		if fresh {
			a.correction = a.gapToFix()
		}
	case Free:
		if fresh {
			a.offset = geo.Position{
				Lat: a.state.Telemetry.Position.Lat - a.state.Position.Lat,
				Lon: a.state.Telemetry.Position.Lon - a.state.Position.Lon,
			}
		} else if prev != Free {
			a.offset = geo.Position{}
		}
	}

	travelKm := a.state.Telemetry.SpeedKmh * elapsed.Hours()

	switch a.state.Mode {
	case Tracking:
		a.track(travelKm)
	case Free:
		a.free(travelKm)
	default:
		a.coast()
	}
	return a.state.Position
}

func (a *Animator) selectMode() Mode {
	if a.state.Telemetry.SpeedKmh < a.speedThreshold {
		return Coasting
	}
	if len(a.route) >= 2 {
		return Tracking
	}
	return Free
}

func (a *Animator) mergeRoute() bool {
	if !a.hasRouteUpdate {
		return false
	}
	a.route = a.pendingRoute
	a.pendingRoute = nil
	a.hasRouteUpdate = false

	if len(a.route) < 2 {
		a.route = nil
		a.state.Segment, a.state.Progress = 0, 0
		return true
	}
	// The old cursor may point past the end of a shorter route.
	proj := geo.Project(a.state.Position, a.route)
	a.state.Segment, a.state.Progress = proj.Segment, proj.Progress
	return true
}

func (a *Animator) mergeTelemetry() bool {
	if a.pending == nil {
		return false
	}
	a.state.Telemetry = *a.pending
	a.pending = nil
	return true
}

// gapToFix is the along-route distance from the current cursor to the
// projection of the latest fix; negative when the vehicle is ahead of it.
func (a *Animator) gapToFix() float64 {
	fix := geo.Project(a.state.Telemetry.Position, a.route)
	here := a.route.DistanceAlong(a.state.Segment, a.state.Progress)
	return a.route.DistanceAlong(fix.Segment, fix.Progress) - here
}

// snapToRoute re-projects the current position onto the route.
func (a *Animator) snapToRoute() {
	proj := geo.Project(a.state.Position, a.route)
	a.state.Segment = proj.Segment
	a.state.Progress = proj.Progress
	a.state.Position = proj.Point
}

func (a *Animator) track(travelKm float64) {
	step := a.correction * a.blend
	a.correction -= step

	seg := a.state.Segment
	dist := travelKm*geo.DegreesPerKmAlong(a.route[seg], a.route[seg+1]) + step
	if dist < 0 {
		dist = 0
	}
	c := geo.Advance(a.route, a.state.Segment, a.state.Progress, dist)
	a.state.Segment = c.Segment
	a.state.Progress = c.Progress
	a.state.Position = c.Point
}

func (a *Animator) free(travelKm float64) {
	pos := geo.Offset(a.state.Position, a.state.Telemetry.Heading, travelKm)
	step := geo.Position{Lat: a.offset.Lat * a.blend, Lon: a.offset.Lon * a.blend}
	a.offset.Lat -= step.Lat
	a.offset.Lon -= step.Lon
	a.state.Position = geo.Position{Lat: pos.Lat + step.Lat, Lon: pos.Lon + step.Lon}
}

func (a *Animator) coast() {
	a.state.Position = geo.Interpolate(a.state.Position, a.state.Telemetry.Position, a.blend)
}
