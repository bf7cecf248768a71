package models

import (
	"time"
)

// NS timestamps carry a numeric offset without a colon.
const nsTimeLayout = "2006-01-02T15:04:05-0700"

var timeLayouts = []string{
	nsTimeLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// Amsterdam returns the Europe/Amsterdam location, falling back to a fixed
// CET zone when the tz database is not available.
func Amsterdam() *time.Location {
	loc, err := time.LoadLocation("Europe/Amsterdam")
	if err != nil {
		return time.FixedZone("CET", 3600)
	}
	return loc
}

// parseTime parses an NS timestamp and converts it to loc. Timestamps
// without an offset are taken to be in loc already.
func parseTime(s string, loc *time.Location) (time.Time, error) {
	var err error
	for _, layout := range timeLayouts {
		var t time.Time
		t, err = time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, err
}

// timePtr parses s and returns nil for empty or malformed values.
func timePtr(s string, loc *time.Location) *time.Time {
	if s == "" {
		return nil
	}
	t, err := parseTime(s, loc)
	if err != nil {
		return nil
	}
	return &t
}

// effective returns the realtime value when known, else the planned one.
func effective(planned, actual *time.Time) *time.Time {
	if actual != nil {
		return actual
	}
	return planned
}

// delayMinutes is the whole-minute difference between actual and planned.
func delayMinutes(planned, actual *time.Time) int {
	if planned == nil || actual == nil {
		return 0
	}
	return int(actual.Sub(*planned).Minutes())
}

// mostCommon returns the key with the highest count; ties go to the
// lexically smallest key so results are stable.
func mostCommon(m map[string]int) string {
	var maxKey string
	var maxCount int
	for k, v := range m {
		if v > maxCount || (v == maxCount && k < maxKey) {
			maxKey = k
			maxCount = v
		}
	}
	return maxKey
}
