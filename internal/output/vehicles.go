package output

import (
	"fmt"
	"io"
	"time"

	"github.com/spoorzoeker/spoor-cli/internal/animate"
	"github.com/spoorzoeker/spoor-cli/internal/models"
)

// RenderVehicles renders live train positions
func RenderVehicles(w io.Writer, vehicles []models.Vehicle, opts TableOptions) {
	if len(vehicles) == 0 {
		_, _ = fmt.Fprintln(w, "No trains running.")
		return
	}

	c := opts.colors()

	for _, v := range vehicles {
		speed := c.Muted("%5s", "stop")
		if v.SpeedKmh >= animate.DefaultSpeedThreshold {
			speed = c.Time("%5.0f", v.SpeedKmh)
		}
		_, _ = fmt.Fprintf(w, "%s %s  %9.5f %9.5f  %s km/h  %3.0f°\n",
			c.FormatCategory(v.Type, "%-4s", v.Type),
			c.Line("%-6s", v.TrainNumber),
			v.Lat, v.Lon,
			speed,
			v.Heading,
		)
	}
}

// FollowStatus is one frame of the follow command's status line
type FollowStatus struct {
	TrainNumber string
	State       animate.VehicleState
	Age         time.Duration // age of the newest telemetry
	Stale       bool
	NextStop    string
}

// FormatFollowStatus renders a single status line for a followed train
func FormatFollowStatus(s FollowStatus, c *Colors) string {
	if c == nil {
		c = NewColors(ColorNever)
	}

	line := fmt.Sprintf("%s  %9.5f %9.5f  %3.0f km/h  %s",
		c.Line("%s", s.TrainNumber),
		s.State.Position.Lat, s.State.Position.Lon,
		s.State.Telemetry.SpeedKmh,
		c.Muted("%-8s", s.State.Mode),
	)
	if s.NextStop != "" {
		line += "  " + c.Dest("next: %s", s.NextStop)
	}
	if s.Stale {
		line += "  " + c.Warning("[stale %s]", s.Age.Round(time.Second))
	}
	return line
}
