package models

import (
	"strings"
	"time"
)

// Disruption types reported by NS.
const (
	DisruptionTypeDisruption  = "DISRUPTION"
	DisruptionTypeMaintenance = "MAINTENANCE"
	DisruptionTypeCalamity    = "CALAMITY"
)

// Disruption is a planned or unplanned service interruption.
type Disruption struct {
	ID               string     `json:"id"`
	Type             string     `json:"type"`
	Title            string     `json:"title"`
	IsActive         bool       `json:"isActive"`
	Start            *time.Time `json:"start,omitempty"`
	End              *time.Time `json:"end,omitempty"`
	Phase            string     `json:"phase,omitempty"`
	ExpectedDuration string     `json:"expectedDuration,omitempty"`
	Cause            string     `json:"cause,omitempty"`
	Situation        string     `json:"situation,omitempty"`
	Stations         []string   `json:"stations,omitempty"`
	StationCodes     []string   `json:"stationCodes,omitempty"`
}

// AffectsStation reports whether the disruption lists the station, matched
// by code or name.
func (d *Disruption) AffectsStation(station string) bool {
	for _, c := range d.StationCodes {
		if strings.EqualFold(c, station) {
			return true
		}
	}
	for _, n := range d.Stations {
		if strings.EqualFold(n, station) {
			return true
		}
	}
	return false
}

// DisruptionResponse is one raw entry of the disruptions list.
type DisruptionResponse struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	IsActive bool   `json:"isActive"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Phase    struct {
		Label string `json:"label"`
	} `json:"phase"`
	ExpectedDuration struct {
		Description string `json:"description"`
	} `json:"expectedDuration"`
	Timespans []struct {
		Situation struct {
			Label string `json:"label"`
		} `json:"situation"`
		Cause struct {
			Label string `json:"label"`
		} `json:"cause"`
	} `json:"timespans"`
	PublicationSections []struct {
		Section struct {
			Stations []struct {
				UICCode     string `json:"uicCode"`
				StationCode string `json:"stationCode"`
				Name        string `json:"name"`
			} `json:"stations"`
		} `json:"section"`
	} `json:"publicationSections"`
}

// ToDisruption converts the raw entry to a Disruption.
func (r *DisruptionResponse) ToDisruption(loc *time.Location) *Disruption {
	d := &Disruption{
		ID:               r.ID,
		Type:             r.Type,
		Title:            r.Title,
		IsActive:         r.IsActive,
		Start:            timePtr(r.Start, loc),
		End:              timePtr(r.End, loc),
		Phase:            r.Phase.Label,
		ExpectedDuration: r.ExpectedDuration.Description,
	}
	if len(r.Timespans) > 0 {
		d.Situation = r.Timespans[0].Situation.Label
		d.Cause = r.Timespans[0].Cause.Label
	}

	seen := make(map[string]bool)
	for _, ps := range r.PublicationSections {
		for _, st := range ps.Section.Stations {
			if seen[st.StationCode] {
				continue
			}
			seen[st.StationCode] = true
			d.Stations = append(d.Stations, st.Name)
			d.StationCodes = append(d.StationCodes, st.StationCode)
		}
	}
	return d
}
