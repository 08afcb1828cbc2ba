// Command publish fetches the earthquake feed, styles every feature, and
// publishes the markers to Kafka. With PUBLISH_INTERVAL unset it runs one
// cycle and exits non-zero on failure. With an interval it keeps publishing
// and serves /healthz, /readyz, and /metrics on HTTP_ADDR.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/couchcryptid/quake-map/internal/adapter/feed"
	kafkaadapter "github.com/couchcryptid/quake-map/internal/adapter/kafka"
	"github.com/couchcryptid/quake-map/internal/config"
	"github.com/couchcryptid/quake-map/internal/observability"
	"github.com/couchcryptid/quake-map/internal/pipeline"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err == nil {
		err = cfg.RequireKafka()
	}
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	source := feed.NewClient(cfg.EarthquakeFeedURL, cfg.PlateBoundariesURL, cfg.FetchTimeout, metrics, logger)
	writer := kafkaadapter.NewWriter(cfg, metrics, logger)
	transformer := pipeline.NewTransformer(cfg.MinMarkerRadius, logger)

	p := pipeline.New(source, transformer, writer, logger, metrics, cfg.PublishInterval)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var srv *http.Server
	if cfg.PublishInterval > 0 {
		srv = newHealthServer(cfg.HTTPAddr, p)
		go func() {
			logger.Info("http server starting", "addr", cfg.HTTPAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", "error", err)
			}
		}()
	}

	runErr := p.Run(ctx)
	if runErr != nil {
		logger.Error("publish failed", "error", runErr, "topic", cfg.KafkaTopic)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if srv != nil {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	if runErr != nil {
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}

func newHealthServer(addr string, ready sharedobs.ReadinessChecker) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	return &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
