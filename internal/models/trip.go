package models

import (
	"time"

	"github.com/spoorzoeker/spoor-cli/internal/operators"
)

// Trip is one travel option returned by the journey planner.
type Trip struct {
	UID             string `json:"uid"`
	Transfers       int    `json:"transfers"`
	PlannedDuration int    `json:"plannedDuration"` // minutes
	ActualDuration  int    `json:"actualDuration"`  // minutes
	Status          string `json:"status"`
	Crowd           string `json:"crowd,omitempty"`
	Legs            []Leg  `json:"legs"`
}

// Leg is one train ride within a trip.
type Leg struct {
	Name             string  `json:"name"`
	Direction        string  `json:"direction"`
	Category         string  `json:"category"`
	TrainNumber      string  `json:"trainNumber"`
	Operator         string  `json:"operator"`
	IsCancelled      bool    `json:"isCancelled"`
	Origin           LegStop `json:"origin"`
	Destination      LegStop `json:"destination"`
	JourneyDetailRef string  `json:"journeyDetailRef,omitempty"`
	Stops            int     `json:"stops"`
}

// LegStop is the boarding or alighting point of a leg.
type LegStop struct {
	Name       string     `json:"name"`
	UICCode    string     `json:"uicCode"`
	SchedTime  *time.Time `json:"schedTime,omitempty"`
	RTTime     *time.Time `json:"rtTime,omitempty"`
	Time       *time.Time `json:"time,omitempty"`
	Platform   string     `json:"platform"`
	RTPlatform string     `json:"rtPlatform,omitempty"`
	Delay      int        `json:"delay"`
}

// EffectivePlatform returns the realtime platform if known, else the planned one.
func (s *LegStop) EffectivePlatform() string {
	if s.RTPlatform != "" {
		return s.RTPlatform
	}
	return s.Platform
}

// Departure returns the effective departure time of the first leg.
func (t *Trip) Departure() *time.Time {
	if len(t.Legs) == 0 {
		return nil
	}
	return t.Legs[0].Origin.Time
}

// Arrival returns the effective arrival time of the last leg.
func (t *Trip) Arrival() *time.Time {
	if len(t.Legs) == 0 {
		return nil
	}
	return t.Legs[len(t.Legs)-1].Destination.Time
}

// Duration returns the realtime duration when known, else the planned one.
func (t *Trip) Duration() time.Duration {
	mins := t.ActualDuration
	if mins == 0 {
		mins = t.PlannedDuration
	}
	return time.Duration(mins) * time.Minute
}

// IsCancelled reports whether any leg of the trip is cancelled.
func (t *Trip) IsCancelled() bool {
	if t.Status == "CANCELLED" {
		return true
	}
	for _, l := range t.Legs {
		if l.IsCancelled {
			return true
		}
	}
	return false
}

// LegStopResponse is the raw origin or destination of a leg.
type LegStopResponse struct {
	Name            string `json:"name"`
	UICCode         string `json:"uicCode"`
	PlannedDateTime string `json:"plannedDateTime"`
	ActualDateTime  string `json:"actualDateTime"`
	PlannedTrack    string `json:"plannedTrack"`
	ActualTrack     string `json:"actualTrack"`
}

// LegResponse is a raw trip leg.
type LegResponse struct {
	Name             string          `json:"name"`
	Direction        string          `json:"direction"`
	Cancelled        bool            `json:"cancelled"`
	Product          ProductResponse `json:"product"`
	Origin           LegStopResponse `json:"origin"`
	Destination      LegStopResponse `json:"destination"`
	JourneyDetailRef string          `json:"journeyDetailRef"`
	Stops            []legStopRef    `json:"stops"`
}

// legStopRef is only decoded to count intermediate stops.
type legStopRef struct {
	UICCode string `json:"uicCode"`
}

// TripResponse is a raw planner option.
type TripResponse struct {
	UID                      string        `json:"uid"`
	PlannedDurationInMinutes int           `json:"plannedDurationInMinutes"`
	ActualDurationInMinutes  int           `json:"actualDurationInMinutes"`
	Transfers                int           `json:"transfers"`
	Status                   string        `json:"status"`
	CrowdForecast            string        `json:"crowdForecast"`
	Legs                     []LegResponse `json:"legs"`
}

// TripsResponse is the planner response.
type TripsResponse struct {
	Trips []TripResponse `json:"trips"`
}

// ToTrip converts the raw option to a Trip.
func (r *TripResponse) ToTrip(loc *time.Location) *Trip {
	t := &Trip{
		UID:             r.UID,
		Transfers:       r.Transfers,
		PlannedDuration: r.PlannedDurationInMinutes,
		ActualDuration:  r.ActualDurationInMinutes,
		Status:          r.Status,
		Crowd:           r.CrowdForecast,
		Legs:            make([]Leg, 0, len(r.Legs)),
	}
	for _, l := range r.Legs {
		leg := Leg{
			Name:             l.Name,
			Direction:        l.Direction,
			Category:         l.Product.CategoryCode,
			TrainNumber:      l.Product.Number,
			Operator:         l.Product.OperatorName,
			IsCancelled:      l.Cancelled,
			Origin:           l.Origin.toLegStop(loc),
			Destination:      l.Destination.toLegStop(loc),
			JourneyDetailRef: l.JourneyDetailRef,
		}
		if leg.Operator == "" {
			leg.Operator = operators.GetOperatorName(l.Product.OperatorCode)
		}
		// origin and destination are included in the stop list
		if n := len(l.Stops) - 2; n > 0 {
			leg.Stops = n
		}
		t.Legs = append(t.Legs, leg)
	}
	return t
}

func (r *LegStopResponse) toLegStop(loc *time.Location) LegStop {
	s := LegStop{
		Name:       r.Name,
		UICCode:    r.UICCode,
		Platform:   r.PlannedTrack,
		RTPlatform: r.ActualTrack,
		SchedTime:  timePtr(r.PlannedDateTime, loc),
		RTTime:     timePtr(r.ActualDateTime, loc),
	}
	s.Time = effective(s.SchedTime, s.RTTime)
	s.Delay = delayMinutes(s.SchedTime, s.RTTime)
	return s
}
