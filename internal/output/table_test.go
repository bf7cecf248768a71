package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spoorzoeker/spoor-cli/internal/models"
	"github.com/spoorzoeker/spoor-cli/internal/testutil"
)

func at(h, m int) *time.Time {
	t := time.Date(2024, 3, 1, h, m, 0, 0, time.UTC)
	return &t
}

func TestRenderDepartures_Empty(t *testing.T) {
	var buf bytes.Buffer
	RenderDepartures(&buf, nil, TableOptions{Colors: plain(t)})
	testutil.AssertContains(t, buf.String(), "No departures found")
}

func TestRenderDepartures_Row(t *testing.T) {
	dep := models.Departure{
		Direction:   "Amsterdam Centraal",
		TrainNumber: "3034",
		Category:    "IC",
		SchedTime:   at(14, 30),
		Time:        at(14, 32),
		Platform:    "5",
		RTPlatform:  "7",
		Delay:       2,
	}

	var buf bytes.Buffer
	RenderDepartures(&buf, []models.Departure{dep}, TableOptions{Colors: plain(t)})

	out := buf.String()
	testutil.AssertEqual(t, out, "14:30   +2  IC 3034     Sp.7    Amsterdam Centraal\n")
}

func TestRenderDepartures_FallsBackToEffectiveTime(t *testing.T) {
	dep := models.Departure{Direction: "Utrecht", Time: at(9, 5)}

	var buf bytes.Buffer
	RenderDepartures(&buf, []models.Departure{dep}, TableOptions{Colors: plain(t)})
	testutil.AssertContains(t, buf.String(), "09:05")
}

func TestRenderDepartures_CancelledViaAndMessages(t *testing.T) {
	dep := models.Departure{
		Direction:     "Rotterdam Centraal",
		TrainNumber:   "7436",
		Category:      "SPR",
		SchedTime:     at(14, 41),
		IsCancelled:   true,
		RouteStations: []string{"Gouda", "R'dam Alexander"},
		Messages:      []models.Message{{Style: "WARNING", Text: "Rijdt niet"}},
	}

	var buf bytes.Buffer
	RenderDepartures(&buf, []models.Departure{dep}, TableOptions{Colors: plain(t), ShowVia: true, ShowRoute: true})

	out := buf.String()
	testutil.AssertContains(t, out, "Rotterdam Centraal [CANCELLED]")
	testutil.AssertContains(t, out, "via Gouda, R'dam Alexander")
	testutil.AssertContains(t, out, "! Rijdt niet")

	buf.Reset()
	RenderDepartures(&buf, []models.Departure{dep}, TableOptions{Colors: plain(t)})
	testutil.AssertNotContains(t, buf.String(), "via")
	testutil.AssertNotContains(t, buf.String(), "Rijdt niet")
}

func TestRenderDepartures_TruncatesLongValues(t *testing.T) {
	dep := models.Departure{
		Direction:   "Berlin Ostbahnhof",
		TrainNumber: "1234567",
		Category:    "ICE",
		SchedTime:   at(8, 0),
		Platform:    "14a-b",
	}

	var buf bytes.Buffer
	RenderDepartures(&buf, []models.Departure{dep}, TableOptions{Colors: plain(t)})

	out := buf.String()
	testutil.AssertContains(t, out, "ICE 123456 ")
	testutil.AssertContains(t, out, "Sp.14a ")
}

func TestRenderDepartures_NilColors(t *testing.T) {
	var buf bytes.Buffer
	RenderDepartures(&buf, []models.Departure{{Direction: "Utrecht", SchedTime: at(7, 0)}}, TableOptions{})
	testutil.AssertContains(t, buf.String(), "Utrecht")
}

func TestRenderStations(t *testing.T) {
	stations := []models.Station{
		{Code: "UT", UICCode: "8400621", Name: "Utrecht Centraal", Country: "NL", Tracks: []string{"5", "7"}},
		{Code: "UTO", UICCode: "8400623", Name: "Utrecht Overvecht", Country: "NL"},
	}

	var buf bytes.Buffer
	RenderStations(&buf, stations, TableOptions{Colors: plain(t)})

	out := buf.String()
	testutil.AssertContains(t, out, "Found stations:")
	testutil.AssertContains(t, out, "UT   Utrecht Centraal")
	testutil.AssertContains(t, out, "UIC: 8400621")
	testutil.AssertContains(t, out, "Tracks: 5 7")
	testutil.AssertContains(t, out, "spoor departures UTO")
	testutil.AssertEqual(t, strings.Count(out, "Tracks:"), 1)

	buf.Reset()
	RenderStations(&buf, nil, TableOptions{Colors: plain(t)})
	testutil.AssertContains(t, buf.String(), "No stations found")
}

func TestRenderNearby(t *testing.T) {
	nearby := []models.NearbyStation{
		{Station: models.Station{Code: "ASA", Name: "Amsterdam Amstel"}, DistanceMeters: 412.4},
		{Station: models.Station{Code: "ASD", Name: "Amsterdam Centraal"}, DistanceMeters: 3421},
	}

	var buf bytes.Buffer
	RenderNearby(&buf, nearby, TableOptions{Colors: plain(t)})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	testutil.AssertLen(t, lines, 2)
	testutil.AssertEqual(t, lines[0], "   412 m  ASA   Amsterdam Amstel")
	testutil.AssertEqual(t, lines[1], "  3.4 km  ASD   Amsterdam Centraal")
}

func TestFormatDistance(t *testing.T) {
	testutil.AssertEqual(t, FormatDistance(0), "0 m")
	testutil.AssertEqual(t, FormatDistance(999.4), "999 m")
	testutil.AssertEqual(t, FormatDistance(1000), "1.0 km")
	testutil.AssertEqual(t, FormatDistance(12449), "12.4 km")
}

func sampleTrips() []models.Trip {
	return []models.Trip{
		{
			UID:             "trip-1",
			PlannedDuration: 27,
			ActualDuration:  29,
			Crowd:           "MEDIUM",
			Legs: []models.Leg{{
				Category:    "IC",
				TrainNumber: "3034",
				Direction:   "Amsterdam Centraal",
				Origin:      models.LegStop{Name: "Utrecht Centraal", Time: at(14, 32), Platform: "5", RTPlatform: "7", Delay: 2},
				Destination: models.LegStop{Name: "Amsterdam Centraal", Time: at(14, 59), Platform: "4"},
			}},
		},
		{
			UID:             "trip-2",
			Transfers:       1,
			PlannedDuration: 64,
			Legs: []models.Leg{
				{
					Category:    "SPR",
					TrainNumber: "7436",
					Direction:   "Breukelen",
					IsCancelled: true,
					Origin:      models.LegStop{Name: "Utrecht Centraal", Time: at(14, 41), Platform: "18"},
					Destination: models.LegStop{Name: "Breukelen", Time: at(14, 49), Platform: "1"},
				},
				{
					Category:    "SPR",
					TrainNumber: "5736",
					Direction:   "Amsterdam Centraal",
					Origin:      models.LegStop{Name: "Breukelen", Time: at(14, 55), Platform: "2"},
					Destination: models.LegStop{Name: "Amsterdam Centraal", Time: at(15, 45), Platform: "10"},
				},
			},
		},
	}
}

func TestRenderTrips(t *testing.T) {
	var buf bytes.Buffer
	RenderTrips(&buf, sampleTrips(), TableOptions{Colors: plain(t)})

	out := buf.String()
	testutil.AssertContains(t, out, "14:32 -> 14:59  29 min  direct   +2 crowd: medium")
	testutil.AssertContains(t, out, "14:41 -> 15:45  1:04  1 transfer [CANCELLED]")
	testutil.AssertContains(t, out, "  14:32  Sp.7    Utrecht Centraal  IC 3034 -> Amsterdam Centraal")
	testutil.AssertContains(t, out, "Utrecht Centraal [CANCELLED]")
	testutil.AssertContains(t, out, "  15:45  Sp.10   Amsterdam Centraal")

	buf.Reset()
	RenderTrips(&buf, nil, TableOptions{Colors: plain(t)})
	testutil.AssertContains(t, buf.String(), "No trips found")
}

func TestFormatDuration(t *testing.T) {
	testutil.AssertEqual(t, formatDuration(45*time.Minute), "45 min")
	testutil.AssertEqual(t, formatDuration(60*time.Minute), "1:00")
	testutil.AssertEqual(t, formatDuration(125*time.Minute), "2:05")
}

func sampleJourney() *models.Journey {
	return &models.Journey{
		TrainNumber: "3034",
		Category:    "IC",
		Operator:    "NS",
		Destination: "Amsterdam Centraal",
		Messages:    []models.Message{{Text: "Stiltecoupé aanwezig"}},
		Stops: []models.Stop{
			{Name: "Utrecht Centraal", Status: models.StopOrigin, SchedDep: at(14, 30), Dep: at(14, 32), Platform: "5", RTPlatform: "7", Delay: 2},
			{Name: "Breukelen", Status: models.StopPassing},
			{Name: "Amsterdam Amstel", Status: models.StopStop, SchedArr: at(14, 49), Arr: at(14, 51), SchedDep: at(14, 50), Dep: at(14, 52), Platform: "2", Delay: 2},
			{Name: "Amsterdam Centraal", Status: models.StopDestination, SchedArr: at(14, 57), Arr: at(14, 59), Platform: "4", Delay: 2},
		},
	}
}

func TestRenderJourney(t *testing.T) {
	var buf bytes.Buffer
	RenderJourney(&buf, sampleJourney(), TableOptions{Colors: plain(t), Now: *at(14, 55)})

	out := buf.String()
	testutil.AssertContains(t, out, "Journey: IC 3034 -> Amsterdam Centraal")
	testutil.AssertContains(t, out, "Operator: NS")
	testutil.AssertContains(t, out, "! Stiltecoupé aanwezig")
	testutil.AssertNotContains(t, out, "Breukelen")

	lines := strings.Split(out, "\n")
	var marked []string
	for _, l := range lines {
		if strings.HasPrefix(l, ">") {
			marked = append(marked, l)
		}
	}
	testutil.AssertLen(t, marked, 1)
	testutil.AssertContains(t, marked[0], "Amsterdam Amstel")
	testutil.AssertContains(t, out, "┌        14:30   +2  Sp.7     Utrecht Centraal")
	testutil.AssertContains(t, out, "└ 14:57")
}

func TestRenderJourney_ShowsPassingWithRoute(t *testing.T) {
	var buf bytes.Buffer
	RenderJourney(&buf, sampleJourney(), TableOptions{Colors: plain(t), ShowRoute: true, Now: *at(12, 0)})

	out := buf.String()
	testutil.AssertContains(t, out, "Breukelen (passing)")
	// before departure nothing is marked
	testutil.AssertFalse(t, strings.Contains(out, "\n>"))
}

func TestRenderJourney_Nil(t *testing.T) {
	var buf bytes.Buffer
	RenderJourney(&buf, nil, TableOptions{Colors: plain(t)})
	testutil.AssertContains(t, buf.String(), "No journey data found")
}

func TestRenderDisruptions(t *testing.T) {
	disruptions := []models.Disruption{
		{
			Type:             models.DisruptionTypeDisruption,
			Title:            "Utrecht Centraal - Amsterdam Centraal",
			IsActive:         true,
			Start:            at(13, 0),
			End:              at(17, 0),
			Cause:            "seinstoring",
			Situation:        "er rijden minder treinen",
			ExpectedDuration: "Tot 17:00",
			Stations:         []string{"Utrecht Centraal", "Amsterdam Centraal"},
		},
		{
			Type:  models.DisruptionTypeMaintenance,
			Title: "Rotterdam - Dordrecht",
		},
	}

	var buf bytes.Buffer
	RenderDisruptions(&buf, disruptions, TableOptions{Colors: plain(t), ShowVia: true})

	out := buf.String()
	testutil.AssertContains(t, out, "DISRUPTION active Utrecht Centraal - Amsterdam Centraal")
	testutil.AssertContains(t, out, "When: 01-03 13:00 - 01-03 17:00")
	testutil.AssertContains(t, out, "Cause: seinstoring")
	testutil.AssertContains(t, out, "Impact: er rijden minder treinen")
	testutil.AssertContains(t, out, "Expected: Tot 17:00")
	testutil.AssertContains(t, out, "stations: Utrecht Centraal, Amsterdam Centraal")
	testutil.AssertContains(t, out, "MAINTENANCE planned Rotterdam - Dordrecht")

	buf.Reset()
	RenderDisruptions(&buf, nil, TableOptions{Colors: plain(t)})
	testutil.AssertContains(t, buf.String(), "No disruptions.")
}
