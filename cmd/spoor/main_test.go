package main

import (
	"testing"
	"time"

	"github.com/spoorzoeker/spoor-cli/internal/models"
	"github.com/spoorzoeker/spoor-cli/internal/testutil"
)

func TestParseDateTime(t *testing.T) {
	loc := models.Amsterdam()
	now := time.Date(2024, 3, 1, 14, 30, 0, 0, loc)

	tests := []struct {
		name       string
		date, time string
		want       time.Time
	}{
		{"nothing", "", "", time.Date(2024, 3, 1, 14, 30, 0, 0, loc)},
		{"iso date", "2024-12-31", "", time.Date(2024, 12, 31, 14, 30, 0, 0, loc)},
		{"dutch date", "31-12-2025", "", time.Date(2025, 12, 31, 14, 30, 0, 0, loc)},
		{"short year", "05-01-25", "", time.Date(2025, 1, 5, 14, 30, 0, 0, loc)},
		{"day and month", "24-12", "", time.Date(2024, 12, 24, 14, 30, 0, 0, loc)},
		{"time only", "", "08:05", time.Date(2024, 3, 1, 8, 5, 0, 0, loc)},
		{"both", "2024-03-02", "23:59", time.Date(2024, 3, 2, 23, 59, 0, 0, loc)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseDateTime(tt.date, tt.time, loc, now)
			testutil.AssertTimeEqual(t, got, tt.want, 0)
		})
	}
}

func TestParseCoordinates(t *testing.T) {
	lat, lon, err := parseCoordinates("52.089:5.110")
	testutil.AssertNil(t, err)
	testutil.AssertFloatEqual(t, lat, 52.089, 1e-9)
	testutil.AssertFloatEqual(t, lon, 5.110, 1e-9)

	for _, bad := range []string{"52.089", "north:5.1", "52.1:east", "91:5", "52:181"} {
		_, _, err := parseCoordinates(bad)
		testutil.AssertError(t, err)
	}
}

func TestFilterDepartures(t *testing.T) {
	deps := []models.Departure{
		{TrainNumber: "3034", Category: "IC", Direction: "Amsterdam Centraal"},
		{TrainNumber: "7436", Category: "SPR", Direction: "Zwolle"},
		{TrainNumber: "140", Category: "ICE", Direction: "Frankfurt (Main) Hbf"},
		{TrainNumber: "1034", Category: "ICD", Direction: "Amsterdam Centraal"},
	}

	testutil.AssertLen(t, filterDepartures(deps, nil, ""), 4)

	got := filterDepartures(deps, []string{"int", " spr "}, "")
	testutil.AssertLen(t, got, 2)
	testutil.AssertEqual(t, got[0].TrainNumber, "7436")
	testutil.AssertEqual(t, got[1].TrainNumber, "140")

	got = filterDepartures(deps, nil, "amsterdam")
	testutil.AssertLen(t, got, 2)

	got = filterDepartures(deps, []string{"IC"}, "amsterdam")
	testutil.AssertLen(t, got, 1)
	testutil.AssertEqual(t, got[0].TrainNumber, "3034")
}
