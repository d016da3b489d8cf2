// Package server exposes the planner and the trip-seed store over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/gaurav-prasanna/link2itinerary/config"
	"github.com/gaurav-prasanna/link2itinerary/logger"
	"github.com/gaurav-prasanna/link2itinerary/planner"
	"github.com/gaurav-prasanna/link2itinerary/trips"
	"github.com/gaurav-prasanna/link2itinerary/validation"
)

// FallbackHeader is set to "true" when the body is the placeholder itinerary.
const FallbackHeader = "X-Itinerary-Fallback"

// Planner is the slice of *planner.Planner the handlers use.
type Planner interface {
	PlanFromURL(ctx context.Context, url string) planner.Result
	PlanForTrip(ctx context.Context, seed *trips.Seed) planner.Result
}

// Server wires routes, middleware and the http.Server lifecycle.
type Server struct {
	cfg      config.ServerConfig
	planner  Planner
	trips    *trips.Service
	log      logger.Logger
	validate *validation.Validator
	limiter  *RateLimiter
}

func New(cfg config.ServerConfig, p Planner, ts *trips.Service, log logger.Logger) *Server {
	return &Server{
		cfg:      cfg,
		planner:  p,
		trips:    ts,
		log:      log.With(map[string]interface{}{"component": "http"}),
		validate: validation.New(),
		limiter:  NewRateLimiter(cfg.RateLimit, cfg.RateBurst),
	}
}

// Handler returns the full middleware chain: logging, CORS, router.
func (s *Server) Handler() http.Handler {
	router := httprouter.New()

	router.GET("/health", s.route("/health", s.health))
	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())

	router.POST("/api/planner/from-url", s.route("/api/planner/from-url", s.limiter.Limit(s.planFromURL)))
	router.POST("/api/planner/teaser", s.route("/api/planner/teaser", s.limiter.Limit(s.planTeaser)))

	router.POST("/api/trips/seed", s.route("/api/trips/seed", s.createTrip))
	router.GET("/api/trips", s.route("/api/trips", s.listTrips))
	router.GET("/api/trips/:id", s.route("/api/trips/:id", s.getTrip))
	router.PATCH("/api/trips/:id", s.route("/api/trips/:id", s.updateTrip))
	router.DELETE("/api/trips/:id", s.route("/api/trips/:id", s.deleteTrip))

	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "not_found", "route not found", nil)
	})
	router.PanicHandler = func(w http.ResponseWriter, r *http.Request, v interface{}) {
		s.log.Error("handler panic", map[string]interface{}{"panic": fmt.Sprint(v), "path": r.URL.Path})
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error", nil)
	}

	origins := s.cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	withCORS := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		ExposedHeaders: []string{FallbackHeader},
	}).Handler(router)

	return s.logRequests(withCORS)
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.Handler(),
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", map[string]interface{}{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return <-errCh
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
