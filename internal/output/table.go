package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spoorzoeker/spoor-cli/internal/models"
)

// TableOptions configures the table output
type TableOptions struct {
	Colors    *Colors
	ShowVia   bool
	ShowRoute bool
	Now       time.Time // reference time for the current-stop marker; zero means time.Now
}

func (o TableOptions) colors() *Colors {
	if o.Colors == nil {
		return NewColors(ColorNever)
	}
	return o.Colors
}

func (o TableOptions) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

func clock(t *time.Time) string {
	if t == nil {
		return "??:??"
	}
	return t.Format("15:04")
}

// RenderDepartures renders a departure or arrival board as a formatted table
func RenderDepartures(w io.Writer, departures []models.Departure, opts TableOptions) {
	if len(departures) == 0 {
		_, _ = fmt.Fprintln(w, "No departures found.")
		return
	}

	c := opts.colors()

	for _, dep := range departures {
		timeStr := clock(dep.SchedTime)
		if dep.SchedTime == nil {
			timeStr = clock(dep.Time)
		}

		delayStr := c.FormatDelay(dep.Delay)

		// Category + number, truncated/padded to 10 chars
		line := strings.TrimSpace(dep.Category + " " + dep.TrainNumber)
		if len(line) > 10 {
			line = line[:10]
		}
		lineStr := c.FormatCategory(dep.Category, "%-10s", line)

		// Platform (fixed 7-char width: "Sp.XXX" or spaces)
		platform := dep.EffectivePlatform()
		platformStr := "       "
		if platform != "" {
			if len(platform) > 3 {
				platform = platform[:3]
			}
			platformStr = c.FormatPlatform("Sp.%-3s ", platform, dep.PlatformChanged())
		}

		dest := dep.Direction
		if dep.IsCancelled {
			dest = c.Canceled("%s [CANCELLED]", dest)
		}

		_, _ = fmt.Fprintf(w, "%s %s  %s  %s %s\n",
			c.Time(timeStr),
			delayStr,
			lineStr,
			platformStr,
			dest,
		)

		if opts.ShowVia && len(dep.RouteStations) > 0 {
			_, _ = fmt.Fprintf(w, "                              %s\n", c.Via("via %s", dep.Via()))
		}

		if opts.ShowRoute {
			for _, m := range dep.Messages {
				_, _ = fmt.Fprintf(w, "                              %s\n", c.Warning("! %s", m.Text))
			}
		}
	}
}

// RenderStations renders search results as a formatted list
func RenderStations(w io.Writer, stations []models.Station, opts TableOptions) {
	if len(stations) == 0 {
		_, _ = fmt.Fprintln(w, "No stations found.")
		return
	}

	c := opts.colors()

	_, _ = fmt.Fprintln(w, c.Header("Found stations:"))
	_, _ = fmt.Fprintln(w)

	for _, s := range stations {
		_, _ = fmt.Fprintf(w, "  %s %s\n", c.Line("%-4s", s.Code), s.Name)
		_, _ = fmt.Fprintf(w, "       %s %s  %s %s\n", c.Muted("UIC:"), s.UICCode, c.Muted("Country:"), s.Country)
		if len(s.Tracks) > 0 {
			_, _ = fmt.Fprintf(w, "       %s %s\n", c.Muted("Tracks:"), strings.Join(s.Tracks, " "))
		}
		_, _ = fmt.Fprintf(w, "       %s spoor departures %s\n", c.Muted("Use:"), s.Code)
		_, _ = fmt.Fprintln(w)
	}
}

// RenderNearby renders stations ordered by distance
func RenderNearby(w io.Writer, stations []models.NearbyStation, opts TableOptions) {
	if len(stations) == 0 {
		_, _ = fmt.Fprintln(w, "No stations found.")
		return
	}

	c := opts.colors()

	for _, s := range stations {
		_, _ = fmt.Fprintf(w, "%s  %s  %s\n",
			c.Time("%8s", FormatDistance(s.DistanceMeters)),
			c.Line("%-4s", s.Code),
			s.Name,
		)
	}
}

// FormatDistance renders meters as "850 m" or "12.4 km"
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%.0f m", meters)
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}

// RenderTrips renders planner results, one block per trip
func RenderTrips(w io.Writer, trips []models.Trip, opts TableOptions) {
	if len(trips) == 0 {
		_, _ = fmt.Fprintln(w, "No trips found.")
		return
	}

	c := opts.colors()

	for i, trip := range trips {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}

		delay := 0
		if len(trip.Legs) > 0 {
			delay = trip.Legs[0].Origin.Delay
		}

		transfers := "direct"
		if trip.Transfers == 1 {
			transfers = "1 transfer"
		} else if trip.Transfers > 1 {
			transfers = fmt.Sprintf("%d transfers", trip.Transfers)
		}

		header := fmt.Sprintf("%s -> %s  %s  %s",
			c.Time(clock(trip.Departure())),
			c.Time(clock(trip.Arrival())),
			formatDuration(trip.Duration()),
			c.Muted(transfers),
		)
		if d := c.FormatDelay(delay); strings.TrimSpace(d) != "" {
			header += " " + d
		}
		if trip.IsCancelled() {
			header += " " + c.Canceled("[CANCELLED]")
		}
		if trip.Crowd != "" && trip.Crowd != "UNKNOWN" {
			header += " " + c.Muted("crowd: %s", strings.ToLower(trip.Crowd))
		}
		_, _ = fmt.Fprintln(w, header)

		for _, leg := range trip.Legs {
			renderLeg(w, &leg, c)
		}
	}
}

func renderLeg(w io.Writer, leg *models.Leg, c *Colors) {
	train := strings.TrimSpace(leg.Category + " " + leg.TrainNumber)
	if train == "" {
		train = leg.Name
	}

	name := leg.Origin.Name
	if leg.IsCancelled {
		name = c.Canceled("%s [CANCELLED]", name)
	}

	_, _ = fmt.Fprintf(w, "  %s  %s  %s  %s\n",
		c.Time(clock(leg.Origin.Time)),
		c.FormatPlatform("Sp.%-3s", leg.Origin.EffectivePlatform(), leg.Origin.RTPlatform != "" && leg.Origin.RTPlatform != leg.Origin.Platform),
		name,
		c.Muted("%s -> %s", train, leg.Direction),
	)
	_, _ = fmt.Fprintf(w, "  %s  %s  %s\n",
		c.Time(clock(leg.Destination.Time)),
		c.FormatPlatform("Sp.%-3s", leg.Destination.EffectivePlatform(), leg.Destination.RTPlatform != "" && leg.Destination.RTPlatform != leg.Destination.Platform),
		leg.Destination.Name,
	)
}

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h == 0 {
		return fmt.Sprintf("%d min", m)
	}
	return fmt.Sprintf("%d:%02d", h, m)
}

// RenderJourney renders a journey with all stops and marks the stop the
// train has most recently reached
func RenderJourney(w io.Writer, journey *models.Journey, opts TableOptions) {
	if journey == nil {
		_, _ = fmt.Fprintln(w, "No journey data found.")
		return
	}

	c := opts.colors()

	title := strings.TrimSpace(journey.Category + " " + journey.TrainNumber)
	if journey.Destination != "" {
		title += " -> " + journey.Destination
	}
	_, _ = fmt.Fprintf(w, "%s %s\n", c.Header("Journey:"), c.Line(title))

	if journey.Operator != "" {
		_, _ = fmt.Fprintf(w, "%s %s\n", c.Muted("Operator:"), journey.Operator)
	}
	if journey.IsCancelled {
		_, _ = fmt.Fprintln(w, c.Canceled("This train is cancelled."))
	}
	for _, m := range journey.Messages {
		_, _ = fmt.Fprintln(w, c.Warning("! %s", m.Text))
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, c.Header("Route:"))
	_, _ = fmt.Fprintln(w)

	currentIdx := journey.CurrentStop(opts.now())

	for i, stop := range journey.Stops {
		if stop.IsPassing() && !opts.ShowRoute {
			continue
		}

		isFirst := i == 0
		isLast := i == len(journey.Stops)-1
		isCurrent := i == currentIdx

		arrStr := "     "
		if stop.SchedArr != nil && !isFirst {
			arrStr = stop.SchedArr.Format("15:04")
		}

		depStr := "     "
		if stop.SchedDep != nil && !isLast {
			depStr = stop.SchedDep.Format("15:04")
		}

		delayStr := "    "
		if stop.Delay != 0 {
			delayStr = c.FormatDelay(stop.Delay)
		}

		platformStr := "       "
		if p := stop.EffectivePlatform(); p != "" {
			platformStr = fmt.Sprintf("Sp.%-4s", p)
			if !isCurrent {
				platformStr = c.FormatPlatform("%s", platformStr, stop.RTPlatform != "" && stop.RTPlatform != stop.Platform)
			}
		}

		name := stop.Name
		if stop.IsPassing() {
			name = c.Muted("%s (passing)", name)
		}
		if stop.IsCancelled {
			name = c.Canceled("%s [CANCELLED]", stop.Name)
		}

		symbol := "├"
		if isFirst {
			symbol = "┌"
		} else if isLast {
			symbol = "└"
		}

		indicator := " "
		if isCurrent {
			indicator = ">"
		}

		if isCurrent && !stop.IsCancelled {
			_, _ = fmt.Fprintf(w, "%s %s %s  %s %-4s  %-7s  %s\n",
				c.Canceled(indicator),
				c.Muted(symbol),
				c.Canceled(arrStr),
				c.Canceled(depStr),
				delayStr,
				c.Canceled(platformStr),
				c.Canceled(name),
			)
		} else {
			_, _ = fmt.Fprintf(w, "%s %s %s  %s %-4s  %-7s  %s\n",
				indicator,
				c.Muted(symbol),
				c.Time(arrStr),
				c.Time(depStr),
				delayStr,
				platformStr,
				name,
			)
		}
	}
}

// RenderDisruptions renders disruptions and planned maintenance
func RenderDisruptions(w io.Writer, disruptions []models.Disruption, opts TableOptions) {
	if len(disruptions) == 0 {
		_, _ = fmt.Fprintln(w, "No disruptions.")
		return
	}

	c := opts.colors()

	for i, d := range disruptions {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}

		label := d.Type
		switch d.Type {
		case models.DisruptionTypeCalamity:
			label = c.Canceled("%s", d.Type)
		case models.DisruptionTypeDisruption:
			label = c.Warning("%s", d.Type)
		default:
			label = c.Muted("%s", d.Type)
		}

		state := c.Muted("planned")
		if d.IsActive {
			state = c.DelayHigh("active")
		}

		_, _ = fmt.Fprintf(w, "%s %s %s\n", label, state, c.Header(d.Title))

		if d.Start != nil || d.End != nil {
			_, _ = fmt.Fprintf(w, "  %s %s - %s\n", c.Muted("When:"), formatMoment(d.Start), formatMoment(d.End))
		}
		if d.Cause != "" {
			_, _ = fmt.Fprintf(w, "  %s %s\n", c.Muted("Cause:"), d.Cause)
		}
		if d.Situation != "" {
			_, _ = fmt.Fprintf(w, "  %s %s\n", c.Muted("Impact:"), d.Situation)
		}
		if d.ExpectedDuration != "" {
			_, _ = fmt.Fprintf(w, "  %s %s\n", c.Muted("Expected:"), d.ExpectedDuration)
		}
		if opts.ShowVia && len(d.Stations) > 0 {
			_, _ = fmt.Fprintf(w, "  %s\n", c.Via("stations: %s", strings.Join(d.Stations, ", ")))
		}
	}
}

func formatMoment(t *time.Time) string {
	if t == nil {
		return "?"
	}
	return t.Format("02-01 15:04")
}
