package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/quake-map/internal/adapter/feed"
	"github.com/couchcryptid/quake-map/internal/adapter/httpadapter"
	"github.com/couchcryptid/quake-map/internal/adapter/mapbox"
	"github.com/couchcryptid/quake-map/internal/composer"
	"github.com/couchcryptid/quake-map/internal/config"
	"github.com/couchcryptid/quake-map/internal/domain"
	"github.com/couchcryptid/quake-map/internal/observability"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	if cfg.MapboxToken == "" {
		logger.Warn("MAPBOX_TOKEN not set, base map tiles will not load")
	}
	tiles := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)

	source := feed.NewClient(cfg.EarthquakeFeedURL, cfg.PlateBoundariesURL, cfg.FetchTimeout, metrics, logger)
	comp := composer.New(source, composer.Options{
		Center:          domain.Geo{Lat: cfg.MapCenterLat, Lon: cfg.MapCenterLon},
		Zoom:            cfg.MapZoom,
		BaseLayers:      mapbox.TileLayers(mapbox.DefaultTileURL, cfg.MapboxToken),
		MinMarkerRadius: cfg.MinMarkerRadius,
	}, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, comp, tiles, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
