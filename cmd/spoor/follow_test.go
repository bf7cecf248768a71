package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spoorzoeker/spoor-cli/internal/animate"
	"github.com/spoorzoeker/spoor-cli/internal/config"
	"github.com/spoorzoeker/spoor-cli/internal/geo"
	"github.com/spoorzoeker/spoor-cli/internal/models"
	"github.com/spoorzoeker/spoor-cli/internal/output"
	"github.com/spoorzoeker/spoor-cli/internal/testutil"
)

var (
	utrecht  = geo.Position{Lat: 52.0894, Lon: 5.1100}
	amstel   = geo.Position{Lat: 52.3467, Lon: 4.9177}
	centraal = geo.Position{Lat: 52.3789, Lon: 4.9003}
	midpoint = geo.Interpolate(utrecht, amstel, 0.5)
)

type fakeFollowBackend struct {
	vehicle    *models.Vehicle
	vehicleErr error
	journey    *models.Journey
	journeyErr error
	track      *models.TrackGeometry
	trackErr   error
}

func (f *fakeFollowBackend) GetVehicle(context.Context, string) (*models.Vehicle, error) {
	return f.vehicle, f.vehicleErr
}

func (f *fakeFollowBackend) GetJourney(context.Context, string, time.Time) (*models.Journey, error) {
	return f.journey, f.journeyErr
}

func (f *fakeFollowBackend) GetJourneyTrack(context.Context, *models.Journey) (*models.TrackGeometry, error) {
	if f.track == nil && f.trackErr == nil {
		return nil, errors.New("no track")
	}
	return f.track, f.trackErr
}

func followJourney(now time.Time) *models.Journey {
	dep := now.Add(-10 * time.Minute)
	arr := now.Add(10 * time.Minute)
	arr2 := now.Add(20 * time.Minute)
	return &models.Journey{
		TrainNumber: "3034",
		Category:    "IC",
		Stops: []models.Stop{
			{Name: "Utrecht Centraal", Lat: utrecht.Lat, Lon: utrecht.Lon, Dep: &dep},
			{Name: "Amsterdam Amstel", Lat: amstel.Lat, Lon: amstel.Lon, Arr: &arr},
			{Name: "Amsterdam Centraal", Lat: centraal.Lat, Lon: centraal.Lon, Arr: &arr2},
		},
	}
}

func movingTrain() *models.Vehicle {
	return &models.Vehicle{
		TrainNumber: "3034",
		Lat:         midpoint.Lat,
		Lon:         midpoint.Lon,
		SpeedKmh:    120,
		Heading:     geo.Bearing(utrecht, amstel),
	}
}

func newFollower(b followBackend) (*follower, *time.Time) {
	now := time.Date(2024, 3, 1, 14, 40, 0, 0, time.UTC)
	log := logrus.New()
	log.SetOutput(io.Discard)
	f := &follower{
		backend: b,
		live:    config.Default().Live,
		train:   "3034",
		log:     log,
	}
	f.now = func() time.Time { return now }
	return f, &now
}

func TestFollower_PrefersTrackNearTrain(t *testing.T) {
	track := geo.Route{utrecht, geo.Interpolate(utrecht, amstel, 0.25), midpoint, amstel, centraal}
	b := &fakeFollowBackend{vehicle: movingTrain(), track: &models.TrackGeometry{
		Sections: []models.TrackSection{{From: "ut", To: "asd", Route: track}},
	}}
	f, now := newFollower(b)
	b.journey = followJourney(*now)

	f.loadRoute(context.Background())
	f.start(f.poll(context.Background()))
	testutil.AssertTrue(t, f.onTrack)

	*now = now.Add(time.Second)
	f.animator.Tick(f.now())
	testutil.AssertLen(t, f.animator.Route(), 5)
	testutil.AssertEqual(t, f.animator.State().Mode, animate.Tracking)
}

func TestFollower_FallsBackToStops(t *testing.T) {
	far := geo.Route{{Lat: 53.2, Lon: 6.5}, {Lat: 53.3, Lon: 6.6}}
	b := &fakeFollowBackend{vehicle: movingTrain(), track: &models.TrackGeometry{
		Sections: []models.TrackSection{{From: "gn", To: "dz", Route: far}},
	}}
	f, now := newFollower(b)
	b.journey = followJourney(*now)

	f.loadRoute(context.Background())
	f.start(f.poll(context.Background()))
	testutil.AssertFalse(t, f.onTrack)

	*now = now.Add(time.Second)
	f.animator.Tick(f.now())
	testutil.AssertLen(t, f.animator.Route(), 3)
}

func TestFollower_RouteFollowsNewestFix(t *testing.T) {
	track := geo.Route{utrecht, geo.Interpolate(utrecht, amstel, 0.25), midpoint, amstel, centraal}
	b := &fakeFollowBackend{
		vehicle: &models.Vehicle{TrainNumber: "3034", Lat: 53.2, Lon: 6.5, SpeedKmh: 120},
		track:   &models.TrackGeometry{Sections: []models.TrackSection{{From: "ut", To: "asd", Route: track}}},
	}
	f, now := newFollower(b)
	b.journey = followJourney(*now)

	f.loadRoute(context.Background())
	f.start(f.poll(context.Background()))
	testutil.AssertFalse(t, f.onTrack)

	b.vehicle = movingTrain()
	*now = now.Add(10 * time.Second)
	f.apply(f.poll(context.Background()))
	testutil.AssertTrue(t, f.onTrack)

	f.animator.Tick(f.now())
	testutil.AssertEqual(t, f.animator.Route()[0], utrecht)
}

func TestFollower_NoJourneyRunsFree(t *testing.T) {
	b := &fakeFollowBackend{vehicle: movingTrain(), journeyErr: errors.New("unknown train")}
	f, now := newFollower(b)

	f.loadRoute(context.Background())
	testutil.AssertTrue(t, f.journey == nil)
	f.start(f.poll(context.Background()))

	*now = now.Add(time.Second)
	f.animator.Tick(f.now())
	testutil.AssertEqual(t, f.animator.State().Mode, animate.Free)
	testutil.AssertEqual(t, f.status().NextStop, "")
}

func TestFollower_FailedPollsTurnStale(t *testing.T) {
	b := &fakeFollowBackend{vehicle: movingTrain()}
	f, now := newFollower(b)
	b.journey = followJourney(*now)
	f.loadRoute(context.Background())
	f.start(f.poll(context.Background()))

	s := f.status()
	testutil.AssertFalse(t, s.Stale)
	testutil.AssertEqual(t, s.NextStop, "Amsterdam Amstel")

	b.vehicle, b.vehicleErr = nil, errors.New("train 3034 is not running")
	*now = now.Add(31 * time.Second)
	f.apply(f.poll(context.Background()))
	f.animator.Tick(f.now())

	s = f.status()
	testutil.AssertTrue(t, s.Stale)
	testutil.AssertEqual(t, s.Age, 31*time.Second)
	testutil.AssertContains(t, output.FormatFollowStatus(s, nil), "[stale 31s]")
}

func TestFollower_RunFailsWithoutFirstFix(t *testing.T) {
	b := &fakeFollowBackend{vehicleErr: errors.New("train 3034 is not running")}
	f, _ := newFollower(b)

	err := f.run(context.Background(), func(output.FollowStatus) {
		t.Fatal("draw called without a position")
	})
	testutil.AssertError(t, err)
}

func TestFollower_RunDrawsUntilCancelled(t *testing.T) {
	b := &fakeFollowBackend{vehicle: movingTrain()}
	f, now := newFollower(b)
	b.journey = followJourney(*now)
	f.live.FrameRate = 50
	f.live.TelemetryInterval = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var buf bytes.Buffer
	frames := 0
	draw := writeStatus(&buf)
	err := f.run(ctx, func(s output.FollowStatus) {
		draw(s)
		frames++
		if frames == 3 {
			cancel()
		}
	})

	testutil.AssertNil(t, err)
	testutil.AssertTrue(t, frames >= 3)
	testutil.AssertContains(t, buf.String(), "3034")
	testutil.AssertContains(t, buf.String(), "next: Amsterdam Amstel")
}
