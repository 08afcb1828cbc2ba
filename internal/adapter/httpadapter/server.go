package httpadapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/quake-map/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MapService composes map views and their individual overlays.
type MapService interface {
	Frame() *domain.MapView
	Compose(ctx context.Context) *domain.MapView
	Markers(ctx context.Context) ([]domain.Marker, []*domain.MalformedFeatureError, error)
	Boundaries(ctx context.Context) ([]domain.LineString, []*domain.MalformedFeatureError, error)
}

// Server exposes the map page, map data, health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	maps       MapService
	logger     *slog.Logger
}

// NewServer creates an HTTP server with map routes plus /healthz, /readyz, and /metrics.
func NewServer(addr string, maps MapService, ready sharedobs.ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		maps:   maps,
		logger: logger,
	}

	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /api/map", s.handleMap)
	mux.HandleFunc("GET /api/earthquakes", s.handleEarthquakes)
	mux.HandleFunc("GET /api/plates", s.handlePlates)
	mux.HandleFunc("GET /api/legend", s.handleLegend)

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
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

// writeGeoJSON is sharedobs.WriteJSON with the GeoJSON media type.
func writeGeoJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeGeoJSON)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // client may have gone away
}
