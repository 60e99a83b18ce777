// Package server wires the chi router and owns the HTTP lifecycle.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ironhorse/railyard/internal/achievement"
	"github.com/ironhorse/railyard/internal/database"
	"github.com/ironhorse/railyard/internal/economy"
	"github.com/ironhorse/railyard/internal/handler"
	"github.com/ironhorse/railyard/internal/logger"
	"github.com/ironhorse/railyard/internal/metrics"
	"github.com/ironhorse/railyard/internal/repository"
	"github.com/ironhorse/railyard/internal/sse"
)

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
}

// NewServer creates a new Server instance. The SSE hub is optional;
// when nil the live event stream route is not mounted.
func NewServer(port int, dbPool database.Pool, store repository.Player, economyService economy.Service, achievementService achievement.Service, hub *sse.Hub) *Server {
	r := chi.NewRouter()

	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1/players/{playerID}", func(r chi.Router) {
		r.Get("/", handler.HandleGetPlayer(economyService))

		if hub != nil {
			r.Get("/events", sse.Handler(hub))
		}

		r.Route("/jobs", func(r chi.Router) {
			r.Post("/assign", handler.HandleAssignJob(economyService))
			r.Post("/auto-assign", handler.HandleAutoAssignJob(economyService))
			r.Post("/claim", handler.HandleClaimJob(economyService))
		})

		r.Route("/market", func(r chi.Router) {
			r.Post("/refresh", handler.HandleRefreshMarket(economyService))
			r.Post("/purchase", handler.HandlePurchaseNew(economyService))
			r.Post("/purchase-used", handler.HandlePurchaseUsed(economyService))
		})

		r.Route("/fleet/{locoID}", func(r chi.Router) {
			r.Post("/sell", handler.HandleSellLocomotive(economyService))
			r.Post("/scrap", handler.HandleScrapLocomotive(economyService))
			r.Post("/rename", handler.HandleRenameLocomotive(economyService))
			r.Post("/repair", handler.HandleRepairLocomotive(economyService))
			r.Post("/paint", handler.HandlePaintLocomotive(economyService))
			r.Post("/store", handler.HandleStoreLocomotive(economyService))
		})

		r.Route("/achievements", func(r chi.Router) {
			r.Get("/", handler.HandleListAchievements(achievementService))
			r.Post("/claim", handler.HandleClaimAchievement(achievementService))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/grant", handler.HandleAdminGrant(store))
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool: dbPool,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Health and metrics endpoints are scraped constantly; logging
		// them drowns the signal.
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info("Request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info("Server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
