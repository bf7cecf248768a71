package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spoorzoeker/spoor-cli/internal/animate"
	"github.com/spoorzoeker/spoor-cli/internal/config"
	"github.com/spoorzoeker/spoor-cli/internal/geo"
	"github.com/spoorzoeker/spoor-cli/internal/models"
	"github.com/spoorzoeker/spoor-cli/internal/output"
)

// followBackend is what the follow loop needs from the API client.
type followBackend interface {
	GetVehicle(ctx context.Context, train string) (*models.Vehicle, error)
	GetJourney(ctx context.Context, train string, dateTime time.Time) (*models.Journey, error)
	GetJourneyTrack(ctx context.Context, j *models.Journey) (*models.TrackGeometry, error)
}

// fix is the result of one telemetry poll.
type fix struct {
	vehicle    *models.Vehicle
	receivedAt time.Time
	err        error
}

// follower animates one train between telemetry polls.
type follower struct {
	backend followBackend
	live    config.LiveConfig
	train   string
	log     logrus.FieldLogger
	now     func() time.Time

	journey  *models.Journey
	track    *models.TrackGeometry
	animator *animate.Animator
	onTrack  bool
}

func runFollow(cmd *cobra.Command, args []string) error {
	log := newLogger()

	client, err := createClient(log)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	live := cfg.Live
	if flagFrameRate > 0 {
		live.FrameRate = flagFrameRate
	}
	if flagPollEvery > 0 {
		live.TelemetryInterval = flagPollEvery
	}
	if flagStaleAfter > 0 {
		live.StaleAfter = flagStaleAfter
	}
	if flagSpeedThresh > 0 {
		live.SpeedThreshold = flagSpeedThresh
	}

	ctx, stop := output.InterruptContext(cmd.Context())
	defer stop()

	f := &follower{backend: client, live: live, train: args[0], log: log, now: time.Now}
	colors := output.NewColors(getColorMode())

	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return f.run(ctx, writeStatus(os.Stdout))
	}

	output.HideCursor(os.Stdout)
	defer output.ShowCursor(os.Stdout)

	err = f.run(ctx, func(s output.FollowStatus) {
		output.ClearLine(os.Stdout)
		_, _ = fmt.Fprint(os.Stdout, output.FormatFollowStatus(s, colors))
	})
	_, _ = fmt.Fprintln(os.Stdout)
	return err
}

// run polls telemetry and calls draw once per frame until ctx is done. It
// fails only when the first position cannot be fetched.
func (f *follower) run(ctx context.Context, draw func(output.FollowStatus)) error {
	first := f.poll(ctx)
	if first.err != nil {
		return first.err
	}
	f.loadRoute(ctx)
	f.start(first)

	fixes := make(chan fix)
	go f.pollLoop(ctx, fixes)

	frames := time.NewTicker(f.live.FrameInterval())
	defer frames.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case fx := <-fixes:
			f.apply(fx)
		case <-frames.C:
			f.animator.Tick(f.now())
			draw(f.status())
		}
	}
}

// pollLoop fetches telemetry on the poll interval and hands results to
// the frame loop.
func (f *follower) pollLoop(ctx context.Context, out chan<- fix) {
	ticker := time.NewTicker(f.live.TelemetryInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fx := f.poll(ctx)
			select {
			case out <- fx:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (f *follower) poll(ctx context.Context) fix {
	v, err := f.backend.GetVehicle(ctx, f.train)
	return fix{vehicle: v, receivedAt: f.now(), err: err}
}

// loadRoute fetches the journey and its track. Both are optional; without
// them the train is animated along its heading.
func (f *follower) loadRoute(ctx context.Context) {
	j, err := f.backend.GetJourney(ctx, f.train, time.Time{})
	if err != nil {
		f.log.WithError(err).WithField("train", f.train).Debug("journey unavailable")
		return
	}
	f.journey = j

	track, err := f.backend.GetJourneyTrack(ctx, j)
	if err != nil {
		f.log.WithError(err).WithField("train", f.train).Debug("track unavailable")
		return
	}
	f.track = track
}

func (f *follower) start(first fix) {
	t := first.vehicle.ToTelemetry(first.receivedAt)
	f.animator = animate.New(t, f.now(),
		animate.WithSpeedThreshold(f.live.SpeedThreshold),
		animate.WithBlendFactor(f.live.BlendFactor),
	)
	f.selectRoute(t)
}

func (f *follower) apply(fx fix) {
	if fx.err != nil || fx.vehicle == nil {
		// The animator keeps extrapolating; status() flags the gap.
		f.log.WithError(fx.err).WithField("train", f.train).Debug("telemetry poll failed")
		return
	}
	t := fx.vehicle.ToTelemetry(fx.receivedAt)
	f.animator.Push(t)
	f.selectRoute(t)
}

// selectRoute gives the animator the track near the sample t, falling
// back to straight lines between the stops. Once on the track it stays
// there.
func (f *follower) selectRoute(t animate.Telemetry) {
	if f.onTrack {
		return
	}
	if f.track != nil {
		if r, ok := geo.SelectRoute([]geo.Route{f.track.Joined()}, t.Position, t.Heading, geo.DefaultSnapDistance); ok {
			f.animator.SetRoute(r)
			f.onTrack = true
			return
		}
	}
	if f.journey != nil && len(f.animator.Route()) == 0 {
		if r, ok := geo.SelectRoute([]geo.Route{f.journey.Route()}, t.Position, t.Heading, geo.DefaultSnapDistance); ok {
			f.animator.SetRoute(r)
		}
	}
}

func (f *follower) status() output.FollowStatus {
	now := f.now()
	age := f.animator.TelemetryAge(now)
	s := output.FollowStatus{
		TrainNumber: f.train,
		State:       f.animator.State(),
		Age:         age,
		Stale:       age > f.live.StaleAfter,
	}
	if f.journey != nil {
		if next := f.journey.NextStop(now); next != nil {
			s.NextStop = next.Name
		}
	}
	return s
}

// writeStatus prints one line per frame, for output that is not a terminal.
func writeStatus(w io.Writer) func(output.FollowStatus) {
	return func(s output.FollowStatus) {
		_, _ = fmt.Fprintln(w, output.FormatFollowStatus(s, nil))
	}
}
