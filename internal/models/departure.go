package models

import (
	"strings"
	"time"
)

// Departure is one row of a station board. Arrival boards reuse it with
// Direction holding the origin instead of the destination.
type Departure struct {
	Direction     string     `json:"direction"`
	Name          string     `json:"name"`
	TrainNumber   string     `json:"trainNumber"`
	Category      string     `json:"category"`
	CategoryName  string     `json:"categoryName"`
	Operator      string     `json:"operator"`
	SchedTime     *time.Time `json:"schedTime,omitempty"`
	RTTime        *time.Time `json:"rtTime,omitempty"`
	Time          *time.Time `json:"time,omitempty"`
	Platform      string     `json:"platform"`
	RTPlatform    string     `json:"rtPlatform,omitempty"`
	Delay         int        `json:"delay"`
	IsCancelled   bool       `json:"isCancelled"`
	Status        string     `json:"status,omitempty"`
	RouteStations []string   `json:"routeStations,omitempty"`
	Messages      []Message  `json:"messages,omitempty"`
}

// Message is a notice attached to a board row or journey.
type Message struct {
	Style string `json:"style"`
	Text  string `json:"text"`
}

// ProductResponse describes the train service in several NS responses.
type ProductResponse struct {
	Number            string `json:"number"`
	CategoryCode      string `json:"categoryCode"`
	ShortCategoryName string `json:"shortCategoryName"`
	LongCategoryName  string `json:"longCategoryName"`
	OperatorCode      string `json:"operatorCode"`
	OperatorName      string `json:"operatorName"`
	Type              string `json:"type"`
}

// DepartureResponse is the raw board entry for both departures and arrivals.
type DepartureResponse struct {
	Direction       string          `json:"direction"`
	Origin          string          `json:"origin"`
	Name            string          `json:"name"`
	PlannedDateTime string          `json:"plannedDateTime"`
	ActualDateTime  string          `json:"actualDateTime"`
	PlannedTrack    string          `json:"plannedTrack"`
	ActualTrack     string          `json:"actualTrack"`
	Product         ProductResponse `json:"product"`
	TrainCategory   string          `json:"trainCategory"`
	Cancelled       bool            `json:"cancelled"`
	RouteStations   []struct {
		UICCode    string `json:"uicCode"`
		MediumName string `json:"mediumName"`
	} `json:"routeStations"`
	Messages []struct {
		Message string `json:"message"`
		Style   string `json:"style"`
	} `json:"messages"`
	DepartureStatus string `json:"departureStatus"`
	ArrivalStatus   string `json:"arrivalStatus"`
}

// DeparturesResponse is the board response. The departures endpoint fills
// Departures, the arrivals endpoint fills Arrivals.
type DeparturesResponse struct {
	Payload struct {
		Source     string              `json:"source"`
		Departures []DepartureResponse `json:"departures"`
		Arrivals   []DepartureResponse `json:"arrivals"`
	} `json:"payload"`
}

// Entries returns whichever board list the response carries.
func (r *DeparturesResponse) Entries() []DepartureResponse {
	if len(r.Payload.Departures) > 0 {
		return r.Payload.Departures
	}
	return r.Payload.Arrivals
}

// ToDeparture converts the raw entry to a Departure.
func (r *DepartureResponse) ToDeparture(loc *time.Location) *Departure {
	dep := &Departure{
		Direction:    r.Direction,
		Name:         strings.TrimSpace(r.Name),
		TrainNumber:  r.Product.Number,
		Category:     r.Product.CategoryCode,
		CategoryName: r.Product.LongCategoryName,
		Operator:     r.Product.OperatorName,
		Platform:     r.PlannedTrack,
		RTPlatform:   r.ActualTrack,
		IsCancelled:  r.Cancelled,
		Status:       r.DepartureStatus,
	}
	if dep.Direction == "" {
		dep.Direction = r.Origin
	}
	if dep.Status == "" {
		dep.Status = r.ArrivalStatus
	}
	if dep.Category == "" {
		dep.Category = r.TrainCategory
	}

	dep.SchedTime = timePtr(r.PlannedDateTime, loc)
	dep.RTTime = timePtr(r.ActualDateTime, loc)
	dep.Time = effective(dep.SchedTime, dep.RTTime)
	dep.Delay = delayMinutes(dep.SchedTime, dep.RTTime)

	for _, rs := range r.RouteStations {
		dep.RouteStations = append(dep.RouteStations, rs.MediumName)
	}
	for _, msg := range r.Messages {
		dep.Messages = append(dep.Messages, Message{Style: msg.Style, Text: msg.Message})
	}
	if r.DepartureStatus == "CANCELLED" {
		dep.IsCancelled = true
	}

	return dep
}

// EffectivePlatform returns the realtime platform if known, else the planned one.
func (d *Departure) EffectivePlatform() string {
	if d.RTPlatform != "" {
		return d.RTPlatform
	}
	return d.Platform
}

// PlatformChanged reports a realtime platform differing from the planned one.
func (d *Departure) PlatformChanged() bool {
	return d.RTPlatform != "" && d.RTPlatform != d.Platform
}

// Via returns the route stations joined for display.
func (d *Departure) Via() string {
	return strings.Join(d.RouteStations, ", ")
}
