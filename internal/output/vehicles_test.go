package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spoorzoeker/spoor-cli/internal/animate"
	"github.com/spoorzoeker/spoor-cli/internal/geo"
	"github.com/spoorzoeker/spoor-cli/internal/models"
	"github.com/spoorzoeker/spoor-cli/internal/testutil"
)

func TestRenderVehicles(t *testing.T) {
	vehicles := []models.Vehicle{
		{TrainNumber: "3034", Type: "IC", Lat: 52.2, Lon: 5.05, SpeedKmh: 120.4, Heading: 330},
		{TrainNumber: "7436", Type: "SPR", Lat: 52.0894, Lon: 5.11, SpeedKmh: 1},
	}

	var buf bytes.Buffer
	RenderVehicles(&buf, vehicles, TableOptions{Colors: plain(t)})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	testutil.AssertLen(t, lines, 2)
	testutil.AssertEqual(t, lines[0], "IC   3034     52.20000   5.05000    120 km/h  330°")
	testutil.AssertContains(t, lines[1], " stop km/h")

	buf.Reset()
	RenderVehicles(&buf, nil, TableOptions{Colors: plain(t)})
	testutil.AssertContains(t, buf.String(), "No trains running")
}

func TestFormatFollowStatus(t *testing.T) {
	s := FollowStatus{
		TrainNumber: "3034",
		State: animate.VehicleState{
			Position:  geo.Position{Lat: 52.2, Lon: 5.05},
			Telemetry: animate.Telemetry{SpeedKmh: 120},
			Mode:      animate.Tracking,
		},
		NextStop: "Amsterdam Amstel",
	}

	got := FormatFollowStatus(s, plain(t))
	testutil.AssertEqual(t, got, "3034   52.20000   5.05000  120 km/h  tracking  next: Amsterdam Amstel")

	s.Stale = true
	s.Age = 42*time.Second + 300*time.Millisecond
	got = FormatFollowStatus(s, nil)
	testutil.AssertContains(t, got, "[stale 42s]")
}
