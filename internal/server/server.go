// Package server exposes the NS data behind a small JSON API for browser
// clients such as a live map front end.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/spoorzoeker/spoor-cli/internal/api"
	"github.com/spoorzoeker/spoor-cli/internal/models"
)

// Backend is the subset of the API client the server needs.
type Backend interface {
	SearchStations(ctx context.Context, query string, limit int) ([]models.Station, error)
	NearbyStations(ctx context.Context, lat, lon float64, limit int) ([]models.NearbyStation, error)
	GetDepartures(ctx context.Context, req api.StationBoardRequest) ([]models.Departure, error)
	GetArrivals(ctx context.Context, req api.StationBoardRequest) ([]models.Departure, error)
	PlanTrips(ctx context.Context, req api.TripRequest) ([]models.Trip, error)
	GetJourney(ctx context.Context, train string, dateTime time.Time) (*models.Journey, error)
	GetMaterial(ctx context.Context, train string) (*models.Material, error)
	GetDisruptions(ctx context.Context, req api.DisruptionRequest) ([]models.Disruption, error)
	GetVehicles(ctx context.Context) ([]models.Vehicle, error)
	GetVehicle(ctx context.Context, train string) (*models.Vehicle, error)
	GetTrackGeometry(ctx context.Context, stations ...string) (*models.TrackGeometry, error)
}

// Options configures the server.
type Options struct {
	Addr           string
	AllowedOrigins []string
	Logger         logrus.FieldLogger
}

// Server is the HTTP front of spoor.
type Server struct {
	backend Backend
	log     logrus.FieldLogger
	router  chi.Router
	http    *http.Server
	started time.Time
}

// New creates a server answering with data from backend.
func New(backend Backend, opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	s := &Server{
		backend: backend,
		log:     log,
		started: time.Now(),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/stations", s.searchStations)
		r.Get("/stations/nearby", s.nearbyStations)
		r.Get("/departures/{station}", s.departures)
		r.Get("/arrivals/{station}", s.arrivals)
		r.Get("/trips", s.trips)
		r.Get("/journey/{train}", s.journey)
		r.Get("/material/{train}", s.material)
		r.Get("/disruptions", s.disruptions)
		r.Get("/vehicles", s.vehicles)
		r.Get("/vehicles/{train}", s.vehicle)
		r.Get("/tracks", s.tracks)
	})

	s.router = r
	s.http = &http.Server{
		Addr:              opts.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
	return s
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.http.Addr).Info("server listening")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(start).Round(time.Microsecond).String(),
			"request_id": middleware.GetReqID(r.Context()),
		}).Info("request")
	})
}
