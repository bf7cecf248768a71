package models

import (
	"testing"

	"github.com/spoorzoeker/spoor-cli/internal/testutil"
)

func TestVehicleResponse_ToVehicle(t *testing.T) {
	resp := decode[VehiclesResponse](t, testutil.SampleVehiclesResponse)
	testutil.AssertLen(t, resp.Payload.Treinen, 2)

	v := resp.Payload.Treinen[0].ToVehicle()
	testutil.AssertEqual(t, v.TrainNumber, "3034")
	testutil.AssertEqual(t, v.RideID, "3034")
	testutil.AssertFloatEqual(t, v.SpeedKmh, 120.5, 1e-9)
	testutil.AssertFloatEqual(t, v.Heading, 330, 1e-9)
	testutil.AssertFloatEqual(t, v.Accuracy, 3.2, 1e-9)
	testutil.AssertEqual(t, v.Type, "IC")
	testutil.AssertEqual(t, v.Source, "KV6")
}

func TestVehicle_ToTelemetry(t *testing.T) {
	v := Vehicle{TrainNumber: "3034", Lat: 52.2, Lon: 5.05, SpeedKmh: 120, Heading: 330}
	received := at(14, 40)

	tel := v.ToTelemetry(received)
	testutil.AssertEqual(t, tel.VehicleID, "3034")
	testutil.AssertEqual(t, tel.Position, v.Position())
	testutil.AssertEqual(t, tel.SpeedKmh, 120.0)
	testutil.AssertEqual(t, tel.Heading, 330.0)
	testutil.AssertTrue(t, tel.ReceivedAt.Equal(received))
}
