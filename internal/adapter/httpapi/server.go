// Package httpapi exposes the dashboard API: heatmap cells, city bubbles,
// detail lookups, and the health/readiness/metrics endpoints.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/climate-atlas/internal/dataset"
	"github.com/couchcryptid/climate-atlas/internal/observability"
)

// Server exposes the dashboard REST API over gorilla/mux with CORS for the
// browser client.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// Deps carries the server's collaborators.
type Deps struct {
	Cache   *dataset.MonthCache
	Cities  *dataset.CityStore
	Metrics *observability.Metrics
	Logger  *slog.Logger

	// WSHandler, if set, is mounted on /ws.
	WSHandler http.Handler

	CORSOrigins []string
}

// NewServer creates the API server.
func NewServer(addr string, deps Deps) *Server {
	h := &handlersImpl{
		cache:   deps.Cache,
		cities:  deps.Cities,
		metrics: deps.Metrics,
		logger:  deps.Logger,
	}

	r := mux.NewRouter()
	r.Use(h.countRequests)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/months/{month}/cells", h.handleCells).Methods(http.MethodGet)
	api.HandleFunc("/months/{month}/point", h.handlePoint).Methods(http.MethodGet)
	api.HandleFunc("/cities", h.handleCities).Methods(http.MethodGet)
	api.HandleFunc("/cities/nearest", h.handleNearestCity).Methods(http.MethodGet)
	api.HandleFunc("/cities/{name}", h.handleCityDetail).Methods(http.MethodGet)

	r.HandleFunc("/healthz", h.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/readyz", h.handleReady).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	if deps.WSHandler != nil {
		r.Handle("/ws", deps.WSHandler)
	}

	cors := handlers.CORS(
		handlers.AllowedOrigins(deps.CORSOrigins),
		handlers.AllowedMethods([]string{http.MethodGet}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      cors(r),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: deps.Logger,
	}
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// countRequests records per-route request counts by status class.
func (h *handlersImpl) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tmpl, err := cur.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}
		h.metrics.APIRequests.WithLabelValues(route, strconv.Itoa(rec.status/100)+"xx").Inc()
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
