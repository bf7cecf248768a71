package models

import (
	"time"

	"github.com/spoorzoeker/spoor-cli/internal/geo"
	"github.com/spoorzoeker/spoor-cli/internal/operators"
)

// Stop status values reported by the journey endpoint.
const (
	StopOrigin      = "ORIGIN"
	StopStop        = "STOP"
	StopPassing     = "PASSING"
	StopDestination = "DESTINATION"
)

// Journey is the full run of one train.
type Journey struct {
	TrainNumber string    `json:"trainNumber"`
	Category    string    `json:"category"`
	Operator    string    `json:"operator,omitempty"`
	Destination string    `json:"destination,omitempty"`
	IsCancelled bool      `json:"isCancelled"`
	Stops       []Stop    `json:"stops"`
	Messages    []Message `json:"messages,omitempty"`
}

// Stop is a call (or pass) of a journey at a station.
type Stop struct {
	Name        string     `json:"name"`
	UICCode     string     `json:"uicCode"`
	Lat         float64    `json:"lat,omitempty"`
	Lon         float64    `json:"lon,omitempty"`
	Status      string     `json:"status"`
	Platform    string     `json:"platform,omitempty"`
	RTPlatform  string     `json:"rtPlatform,omitempty"`
	SchedArr    *time.Time `json:"schedArr,omitempty"`
	RTArr       *time.Time `json:"rtArr,omitempty"`
	Arr         *time.Time `json:"arr,omitempty"`
	SchedDep    *time.Time `json:"schedDep,omitempty"`
	RTDep       *time.Time `json:"rtDep,omitempty"`
	Dep         *time.Time `json:"dep,omitempty"`
	ArrDelay    int        `json:"arrDelay,omitempty"`
	DepDelay    int        `json:"depDelay,omitempty"`
	Delay       int        `json:"delay,omitempty"`
	IsCancelled bool       `json:"isCancelled"`
	StockType   string     `json:"stockType,omitempty"`
	Seats       int        `json:"seats,omitempty"`
	Parts       int        `json:"parts,omitempty"`
}

// IsPassing reports whether the train runs through without stopping.
func (s *Stop) IsPassing() bool {
	return s.Status == StopPassing
}

// EffectivePlatform returns the realtime platform if known, else the planned one.
func (s *Stop) EffectivePlatform() string {
	if s.RTPlatform != "" {
		return s.RTPlatform
	}
	return s.Platform
}

// Position returns the stop coordinates.
func (s *Stop) Position() geo.Position {
	return geo.Position{Lat: s.Lat, Lon: s.Lon}
}

// Route returns the polyline through all stop coordinates. It is a coarse
// stand-in for track geometry when the map API has none.
func (j *Journey) Route() geo.Route {
	r := make(geo.Route, 0, len(j.Stops))
	for i := range j.Stops {
		if j.Stops[i].Lat == 0 && j.Stops[i].Lon == 0 {
			continue
		}
		r = append(r, j.Stops[i].Position())
	}
	return r
}

// StationCodes returns the UIC codes of all stops, in order.
func (j *Journey) StationCodes() []string {
	codes := make([]string, 0, len(j.Stops))
	for _, s := range j.Stops {
		if s.UICCode != "" {
			codes = append(codes, s.UICCode)
		}
	}
	return codes
}

// CurrentStop returns the index of the last stop the train has left (or
// is standing at) at now, or -1 before it departs the first stop.
func (j *Journey) CurrentStop(now time.Time) int {
	current := -1
	for i, s := range j.Stops {
		t := s.Arr
		if t == nil {
			t = s.Dep
		}
		if t == nil {
			continue
		}
		if t.After(now) {
			break
		}
		current = i
	}
	return current
}

// NextStop returns the first calling stop after CurrentStop(now), or nil
// once the train has reached its last stop.
func (j *Journey) NextStop(now time.Time) *Stop {
	for i := j.CurrentStop(now) + 1; i < len(j.Stops); i++ {
		if !j.Stops[i].IsPassing() && !j.Stops[i].IsCancelled {
			return &j.Stops[i]
		}
	}
	return nil
}

// JourneyEventResponse is a raw arrival or departure at a journey stop.
type JourneyEventResponse struct {
	Product     ProductResponse `json:"product"`
	Destination struct {
		Name string `json:"name"`
	} `json:"destination"`
	PlannedTime    string `json:"plannedTime"`
	ActualTime     string `json:"actualTime"`
	PlannedTrack   string `json:"plannedTrack"`
	ActualTrack    string `json:"actualTrack"`
	Cancelled      bool   `json:"cancelled"`
	DelayInSeconds int    `json:"delayInSeconds"`
}

// StockResponse is the rolling stock reported at a stop.
type StockResponse struct {
	TrainType     string `json:"trainType"`
	NumberOfSeats int    `json:"numberOfSeats"`
	NumberOfParts int    `json:"numberOfParts"`
	TrainParts    []struct {
		StockIdentifier string   `json:"stockIdentifier"`
		Facilities      []string `json:"facilities"`
		Image           struct {
			URI string `json:"uri"`
		} `json:"image"`
	} `json:"trainParts"`
}

// JourneyStopResponse is one raw stop of a journey.
type JourneyStopResponse struct {
	ID   string `json:"id"`
	Stop struct {
		Name        string  `json:"name"`
		Lat         float64 `json:"lat"`
		Lng         float64 `json:"lng"`
		UICCode     string  `json:"uicCode"`
		CountryCode string  `json:"countryCode"`
	} `json:"stop"`
	Status       string                 `json:"status"`
	Arrivals     []JourneyEventResponse `json:"arrivals"`
	Departures   []JourneyEventResponse `json:"departures"`
	ActualStock  *StockResponse         `json:"actualStock"`
	PlannedStock *StockResponse         `json:"plannedStock"`
}

// JourneyResponse is the raw journey detail response.
type JourneyResponse struct {
	Payload struct {
		ProductNumbers []string              `json:"productNumbers"`
		Stops          []JourneyStopResponse `json:"stops"`
		Notes          []struct {
			Text     string `json:"text"`
			NoteType string `json:"noteType"`
		} `json:"notes"`
	} `json:"payload"`
}

// ToJourney converts the raw response to a Journey.
func (r *JourneyResponse) ToJourney(train string, loc *time.Location) *Journey {
	j := &Journey{
		TrainNumber: train,
		Stops:       make([]Stop, 0, len(r.Payload.Stops)),
	}
	if j.TrainNumber == "" && len(r.Payload.ProductNumbers) > 0 {
		j.TrainNumber = r.Payload.ProductNumbers[0]
	}

	categoryCount := make(map[string]int)
	operatorCount := make(map[string]int)
	cancelled := 0

	for _, raw := range r.Payload.Stops {
		stop := Stop{
			Name:    raw.Stop.Name,
			UICCode: raw.Stop.UICCode,
			Lat:     raw.Stop.Lat,
			Lon:     raw.Stop.Lng,
			Status:  raw.Status,
		}

		if len(raw.Arrivals) > 0 {
			a := raw.Arrivals[0]
			stop.SchedArr = timePtr(a.PlannedTime, loc)
			stop.RTArr = timePtr(a.ActualTime, loc)
			stop.Platform = a.PlannedTrack
			stop.RTPlatform = a.ActualTrack
			stop.IsCancelled = a.Cancelled
		}
		if len(raw.Departures) > 0 {
			d := raw.Departures[0]
			stop.SchedDep = timePtr(d.PlannedTime, loc)
			stop.RTDep = timePtr(d.ActualTime, loc)
			if d.PlannedTrack != "" {
				stop.Platform = d.PlannedTrack
			}
			if d.ActualTrack != "" {
				stop.RTPlatform = d.ActualTrack
			}
			stop.IsCancelled = stop.IsCancelled || d.Cancelled
			if d.Product.CategoryCode != "" {
				categoryCount[d.Product.CategoryCode]++
			}
			if d.Product.OperatorCode != "" {
				operatorCount[d.Product.OperatorCode]++
			}
			if d.Destination.Name != "" {
				j.Destination = d.Destination.Name
			}
		}

		stop.Arr = effective(stop.SchedArr, stop.RTArr)
		stop.Dep = effective(stop.SchedDep, stop.RTDep)
		stop.ArrDelay = delayMinutes(stop.SchedArr, stop.RTArr)
		stop.DepDelay = delayMinutes(stop.SchedDep, stop.RTDep)
		stop.Delay = stop.ArrDelay
		if stop.Delay == 0 {
			stop.Delay = stop.DepDelay
		}

		stock := raw.ActualStock
		if stock == nil {
			stock = raw.PlannedStock
		}
		if stock != nil {
			stop.StockType = stock.TrainType
			stop.Seats = stock.NumberOfSeats
			stop.Parts = stock.NumberOfParts
		}

		if stop.IsCancelled {
			cancelled++
		}
		j.Stops = append(j.Stops, stop)
	}

	j.Category = mostCommon(categoryCount)
	if code := mostCommon(operatorCount); code != "" {
		j.Operator = operators.GetOperatorName(code)
	}
	j.IsCancelled = len(j.Stops) > 0 && cancelled == len(j.Stops)
	if j.Destination == "" && len(j.Stops) > 0 {
		j.Destination = j.Stops[len(j.Stops)-1].Name
	}

	for _, n := range r.Payload.Notes {
		j.Messages = append(j.Messages, Message{Style: n.NoteType, Text: n.Text})
	}

	return j
}
