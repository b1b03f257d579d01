// Package api provides the HTTP server for the Ka Pai Putea daemon.
// It exposes the learning, investing, and hustle endpoints consumed by the
// web client and the CLI.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/benjisbeans/kapaiputea-app/internal/app/gamification"
	"github.com/benjisbeans/kapaiputea-app/internal/app/hustle"
	"github.com/benjisbeans/kapaiputea-app/internal/app/market"
	"github.com/benjisbeans/kapaiputea-app/internal/app/profile"
	"github.com/benjisbeans/kapaiputea-app/internal/domain"
	"github.com/benjisbeans/kapaiputea-app/internal/infra/metrics"
)

// Version is the API version string reported by /api/version.
const Version = "0.1.0"

// Server is the Ka Pai Putea HTTP API server.
type Server struct {
	gam            *gamification.Service
	profiles       *profile.Service
	market         *market.Service
	hustle         *hustle.Service
	metricsEnabled bool

	// now is the clock; tests pin it for deterministic quotes and streaks.
	now func() time.Time
}

// NewServer creates a new API server.
func NewServer(gam *gamification.Service, profiles *profile.Service, mkt *market.Service, h *hustle.Service) *Server {
	return &Server{
		gam:      gam,
		profiles: profiles,
		market:   mkt,
		hustle:   h,
		now:      time.Now,
	}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetClock replaces the server clock.
func (s *Server) SetClock(now func() time.Time) { s.now = now }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsMiddleware)
	r.Use(requestMetrics)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version": Version,
		})
	})

	r.Route("/api", func(r chi.Router) {
		// Learning
		r.Get("/lessons", s.handleListLessons)
		r.Post("/lessons/{id}/complete", s.handleCompleteLesson)
		r.Get("/progress", s.handleProgress)
		r.Get("/badges", s.handleBadges)
		r.Get("/xp/transactions", s.handleXPTransactions)

		// Onboarding
		r.Post("/quiz/submit", s.handleQuizSubmit)
		r.Get("/profile", s.handleProfile)

		// Virtual investing
		r.Get("/invest", s.handleInvestOverview)
		r.Post("/invest", s.handleTrade)
		r.Get("/invest/{symbol}/history", s.handlePriceHistory)

		// Side hustle
		r.Get("/hustle", s.handleHustleStatus)
		r.Post("/hustle", s.handleHustleAction)
	})

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// writeDomainError maps sentinel errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrLessonNotFound),
		errors.Is(err, domain.ErrStockNotFound),
		errors.Is(err, domain.ErrNoBusiness):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrAlreadyCompleted),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrInsufficientShares),
		errors.Is(err, domain.ErrInvalidTrade),
		errors.Is(err, domain.ErrBusinessExists),
		errors.Is(err, domain.ErrUnknownBusinessType),
		errors.Is(err, domain.ErrUnknownUpgrade),
		errors.Is(err, domain.ErrUpgradeMaxed):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestMetrics records per-route counters and latency.
func requestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		metrics.APIRequests.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()
		metrics.APILatency.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
