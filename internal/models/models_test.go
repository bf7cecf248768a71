package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/spoorzoeker/spoor-cli/internal/testutil"
)

var ams = Amsterdam()

func at(hour, minute int) time.Time {
	return time.Date(2024, 3, 1, hour, minute, 0, 0, ams)
}

func decode[T any](t *testing.T, body string) T {
	t.Helper()
	var v T
	if err := json.Unmarshal([]byte(body), &v); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return v
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"ns offset", "2024-03-01T14:30:00+0100", at(14, 30)},
		{"utc offset converts", "2024-03-01T13:30:00+0000", at(14, 30)},
		{"rfc3339", "2024-03-01T14:30:00+01:00", at(14, 30)},
		{"no offset is local", "2024-03-01T14:30:00", at(14, 30)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTime(tt.in, ams)
			testutil.AssertNil(t, err)
			testutil.AssertTrue(t, got.Equal(tt.want))
			testutil.AssertEqual(t, got.Location().String(), ams.String())
		})
	}

	_, err := parseTime("yesterday", ams)
	testutil.AssertError(t, err)
	testutil.AssertTrue(t, timePtr("", ams) == nil)
	testutil.AssertTrue(t, timePtr("garbage", ams) == nil)
}

func TestDelayMinutes(t *testing.T) {
	planned, actual := at(14, 30), at(14, 33)
	testutil.AssertEqual(t, delayMinutes(&planned, &actual), 3)
	testutil.AssertEqual(t, delayMinutes(&actual, &planned), -3)
	testutil.AssertEqual(t, delayMinutes(nil, &actual), 0)
	testutil.AssertTrue(t, effective(&planned, nil) == &planned)
	testutil.AssertTrue(t, effective(&planned, &actual) == &actual)
}

func TestMostCommon(t *testing.T) {
	testutil.AssertEqual(t, mostCommon(map[string]int{"IC": 3, "SPR": 1}), "IC")
	testutil.AssertEqual(t, mostCommon(map[string]int{"b": 2, "a": 2}), "a")
	testutil.AssertEqual(t, mostCommon(nil), "")
}

func TestStationResponse_ToStation(t *testing.T) {
	resp := decode[StationsResponse](t, testutil.SampleStationsResponse)
	testutil.AssertLen(t, resp.Payload, 5)

	ut := resp.Payload[0].ToStation()
	testutil.AssertEqual(t, ut.Code, "UT")
	testutil.AssertEqual(t, ut.UICCode, "8400621")
	testutil.AssertEqual(t, ut.Name, "Utrecht Centraal")
	testutil.AssertEqual(t, ut.MediumName, "Utrecht C.")
	testutil.AssertEqual(t, ut.Country, "NL")
	testutil.AssertFloatEqual(t, ut.Position().Lon, 5.11, 1e-9)
	testutil.AssertLen(t, ut.Tracks, 3)

	uto := resp.Payload[3].ToStation()
	testutil.AssertLen(t, uto.Tracks, 0)
}

func TestStation_Matches(t *testing.T) {
	s := Station{Code: "ASA", UICCode: "8400057", Name: "Amsterdam Amstel", MediumName: "Amstel"}
	testutil.AssertTrue(t, s.Matches("asa"))
	testutil.AssertTrue(t, s.Matches("8400057"))
	testutil.AssertTrue(t, s.Matches("amstel"))
	testutil.AssertTrue(t, s.Matches("  Amsterdam "))
	testutil.AssertFalse(t, s.Matches("utrecht"))
	testutil.AssertFalse(t, s.Matches(" "))
}

func TestDeparturesResponse_ToDeparture(t *testing.T) {
	resp := decode[DeparturesResponse](t, testutil.SampleDeparturesResponse)
	entries := resp.Entries()
	testutil.AssertLen(t, entries, 2)

	ic := entries[0].ToDeparture(ams)
	testutil.AssertEqual(t, ic.Direction, "Amsterdam Centraal")
	testutil.AssertEqual(t, ic.Name, "NS  3034")
	testutil.AssertEqual(t, ic.TrainNumber, "3034")
	testutil.AssertEqual(t, ic.Category, "IC")
	testutil.AssertEqual(t, ic.CategoryName, "Intercity")
	testutil.AssertEqual(t, ic.Operator, "NS")
	testutil.AssertEqual(t, ic.Delay, 2)
	testutil.AssertTrue(t, ic.SchedTime.Equal(at(14, 30)))
	testutil.AssertTrue(t, ic.Time.Equal(at(14, 32)))
	testutil.AssertEqual(t, ic.EffectivePlatform(), "7")
	testutil.AssertTrue(t, ic.PlatformChanged())
	testutil.AssertEqual(t, ic.Via(), "Amstel")
	testutil.AssertFalse(t, ic.IsCancelled)

	spr := entries[1].ToDeparture(ams)
	testutil.AssertTrue(t, spr.IsCancelled)
	testutil.AssertTrue(t, spr.RTTime == nil)
	testutil.AssertTrue(t, spr.Time.Equal(at(14, 41)))
	testutil.AssertEqual(t, spr.Delay, 0)
	testutil.AssertEqual(t, spr.EffectivePlatform(), "18")
	testutil.AssertFalse(t, spr.PlatformChanged())
	testutil.AssertEqual(t, spr.Via(), "Gouda, R'dam Alexander")
	testutil.AssertLen(t, spr.Messages, 1)
	testutil.AssertEqual(t, spr.Messages[0].Style, "WARNING")
}

func TestDeparturesResponse_Arrivals(t *testing.T) {
	resp := decode[DeparturesResponse](t, testutil.SampleArrivalsResponse)
	entries := resp.Entries()
	testutil.AssertLen(t, entries, 1)

	arr := entries[0].ToDeparture(ams)
	testutil.AssertEqual(t, arr.Direction, "Den Helder")
	testutil.AssertEqual(t, arr.Status, "ON_STATION")
	testutil.AssertEqual(t, arr.Delay, 0)
}

func TestCategoryGroup(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"IC", GroupIntercity},
		{"icd", GroupIntercityDir},
		{"ICE", GroupInternational},
		{"EST", GroupInternational},
		{"SPR", GroupSprinter},
		{"ST", GroupSprinter},
		{"RS", GroupRegional},
		{"BUS", GroupOther},
		{"", GroupOther},
	}
	for _, tt := range tests {
		testutil.AssertEqual(t, CategoryGroup(tt.code), tt.want)
	}
	testutil.AssertLen(t, CategoryGroups, 6)
}
