package models

import (
	"strconv"
	"strings"
)

// Facility codes used by the material API.
const (
	FacilityToilet     = "TOILET"
	FacilityWifi       = "WIFI"
	FacilityQuiet      = "STILTE"
	FacilityBicycle    = "FIETS"
	FacilityPower      = "STROOM"
	FacilityAccessible = "TOEGANKELIJK"
)

// Material is the rolling stock composition of a train.
type Material struct {
	TrainNumber  string         `json:"trainNumber"`
	Type         string         `json:"type"`
	Operator     string         `json:"operator"`
	Station      string         `json:"station,omitempty"`
	Platform     string         `json:"platform,omitempty"`
	Length       int            `json:"length"` // number of parts
	LengthMeters int            `json:"lengthMeters"`
	Parts        []MaterialPart `json:"parts"`
}

// MaterialPart is one coupled unit (a trainset or a single coach).
type MaterialPart struct {
	Number     string    `json:"number"`
	Type       string    `json:"type"`
	Facilities []string  `json:"facilities,omitempty"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	Carriages  int       `json:"carriages"`
	Seats      SeatCount `json:"seats"`
}

// SeatCount breaks the seats of a part down by class.
type SeatCount struct {
	FirstClass  int `json:"firstClass"`
	SecondClass int `json:"secondClass"`
	Folding     int `json:"folding"`
	Standing    int `json:"standing"`
}

// Total returns all fixed and folding seats.
func (s SeatCount) Total() int {
	return s.FirstClass + s.SecondClass + s.Folding
}

// HasFacility reports whether the part offers the facility.
func (p *MaterialPart) HasFacility(code string) bool {
	for _, f := range p.Facilities {
		if strings.EqualFold(f, code) {
			return true
		}
	}
	return false
}

// TotalSeats sums the seats of all parts.
func (m *Material) TotalSeats() SeatCount {
	var total SeatCount
	for _, p := range m.Parts {
		total.FirstClass += p.Seats.FirstClass
		total.SecondClass += p.Seats.SecondClass
		total.Folding += p.Seats.Folding
		total.Standing += p.Seats.Standing
	}
	return total
}

// Facilities returns the distinct facilities over all parts, in order of
// first appearance.
func (m *Material) Facilities() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range m.Parts {
		for _, f := range p.Facilities {
			key := strings.ToUpper(f)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, key)
		}
	}
	return out
}

// MaterialResponse is the raw composition of a train.
type MaterialResponse struct {
	Ritnummer      int    `json:"ritnummer"`
	Station        string `json:"station"`
	Type           string `json:"type"`
	Vervoerder     string `json:"vervoerder"`
	Spoor          string `json:"spoor"`
	Lengte         int    `json:"lengte"`
	LengteInMeters int    `json:"lengteInMeters"`
	Materieeldelen []struct {
		Materieelnummer int      `json:"materieelnummer"`
		Type            string   `json:"type"`
		Faciliteiten    []string `json:"faciliteiten"`
		Afbeelding      string   `json:"afbeelding"`
		Zitplaatsen     struct {
			StaanplaatsEersteKlas int `json:"staanplaatsEersteKlas"`
			StaanplaatsTweedeKlas int `json:"staanplaatsTweedeKlas"`
			ZitplaatsEersteKlas   int `json:"zitplaatsEersteKlas"`
			ZitplaatsTweedeKlas   int `json:"zitplaatsTweedeKlas"`
			KlapstoelEersteKlas   int `json:"klapstoelEersteKlas"`
			KlapstoelTweedeKlas   int `json:"klapstoelTweedeKlas"`
		} `json:"zitplaatsen"`
		Bakken []struct {
			Afbeelding struct {
				URL string `json:"url"`
			} `json:"afbeelding"`
		} `json:"bakken"`
	} `json:"materieeldelen"`
}

// ToMaterial converts the raw response to a Material.
func (r *MaterialResponse) ToMaterial() *Material {
	m := &Material{
		Type:         r.Type,
		Operator:     r.Vervoerder,
		Station:      r.Station,
		Platform:     r.Spoor,
		Length:       r.Lengte,
		LengthMeters: r.LengteInMeters,
		Parts:        make([]MaterialPart, 0, len(r.Materieeldelen)),
	}
	if r.Ritnummer != 0 {
		m.TrainNumber = strconv.Itoa(r.Ritnummer)
	}

	for _, d := range r.Materieeldelen {
		part := MaterialPart{
			Type:       d.Type,
			Facilities: d.Faciliteiten,
			ImageURL:   d.Afbeelding,
			Carriages:  len(d.Bakken),
			Seats: SeatCount{
				FirstClass:  d.Zitplaatsen.ZitplaatsEersteKlas,
				SecondClass: d.Zitplaatsen.ZitplaatsTweedeKlas,
				Folding:     d.Zitplaatsen.KlapstoelEersteKlas + d.Zitplaatsen.KlapstoelTweedeKlas,
				Standing:    d.Zitplaatsen.StaanplaatsEersteKlas + d.Zitplaatsen.StaanplaatsTweedeKlas,
			},
		}
		if d.Materieelnummer != 0 {
			part.Number = strconv.Itoa(d.Materieelnummer)
		}
		m.Parts = append(m.Parts, part)
	}
	if m.Length == 0 {
		m.Length = len(m.Parts)
	}
	return m
}
