package models

import (
	"strconv"
	"time"

	"github.com/spoorzoeker/spoor-cli/internal/animate"
	"github.com/spoorzoeker/spoor-cli/internal/geo"
)

// Vehicle is one live position sample of a train.
type Vehicle struct {
	TrainNumber string  `json:"trainNumber"`
	RideID      string  `json:"rideId"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	SpeedKmh    float64 `json:"speed"`
	Heading     float64 `json:"heading"`
	Accuracy    float64 `json:"accuracy"` // meters
	Type        string  `json:"type"`
	Source      string  `json:"source,omitempty"`
}

// Position returns the sampled coordinates.
func (v *Vehicle) Position() geo.Position {
	return geo.Position{Lat: v.Lat, Lon: v.Lon}
}

// ToTelemetry turns the sample into animator input received at the given time.
func (v *Vehicle) ToTelemetry(receivedAt time.Time) animate.Telemetry {
	return animate.Telemetry{
		VehicleID:  v.TrainNumber,
		Position:   v.Position(),
		SpeedKmh:   v.SpeedKmh,
		Heading:    v.Heading,
		ReceivedAt: receivedAt,
	}
}

// VehicleResponse is one raw entry of the live vehicle feed.
type VehicleResponse struct {
	TreinNummer               int     `json:"treinNummer"`
	RitID                     string  `json:"ritId"`
	Lat                       float64 `json:"lat"`
	Lng                       float64 `json:"lng"`
	Snelheid                  float64 `json:"snelheid"`
	Richting                  float64 `json:"richting"`
	HorizontaleNauwkeurigheid float64 `json:"horizontaleNauwkeurigheid"`
	Type                      string  `json:"type"`
	Bron                      string  `json:"bron"`
}

// VehiclesResponse wraps the live vehicle feed.
type VehiclesResponse struct {
	Payload struct {
		Treinen []VehicleResponse `json:"treinen"`
	} `json:"payload"`
}

// ToVehicle converts the raw entry to a Vehicle.
func (r *VehicleResponse) ToVehicle() *Vehicle {
	return &Vehicle{
		TrainNumber: strconv.Itoa(r.TreinNummer),
		RideID:      r.RitID,
		Lat:         r.Lat,
		Lon:         r.Lng,
		SpeedKmh:    r.Snelheid,
		Heading:     r.Richting,
		Accuracy:    r.HorizontaleNauwkeurigheid,
		Type:        r.Type,
		Source:      r.Bron,
	}
}
