package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/quake-map/internal/domain"
	"github.com/couchcryptid/quake-map/internal/observability"
	"github.com/couchcryptid/storm-data-shared/retry"
)

// Extractor fetches the current earthquake feed.
type Extractor interface {
	FetchEarthquakes(ctx context.Context) (domain.EarthquakeFeed, error)
}

// BatchLoader writes styled markers to the destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, markers []domain.Marker) error
}

// Pipeline orchestrates the fetch-style-publish cycle.
type Pipeline struct {
	extractor   Extractor
	transformer *MarkerTransformer
	loader      BatchLoader
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
	interval    time.Duration
}

// New creates a Pipeline. An interval of zero makes Run publish once.
func New(e Extractor, t *MarkerTransformer, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, interval time.Duration) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		interval:    interval,
	}
}

// CheckReadiness returns nil once a cycle has published successfully.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not published any markers yet")
	}
	return nil
}

// RunOnce performs a single fetch-style-publish cycle.
func (p *Pipeline) RunOnce(ctx context.Context) error {
	start := time.Now()

	feed, err := p.extractor.FetchEarthquakes(ctx)
	if err != nil {
		p.metrics.PublishRuns.WithLabelValues("error").Inc()
		return err
	}

	markers := p.transformer.Transform(feed)
	if err := p.loader.LoadBatch(ctx, markers); err != nil {
		p.metrics.PublishRuns.WithLabelValues("error").Inc()
		return err
	}

	p.metrics.PublishRuns.WithLabelValues("success").Inc()
	p.ready.Store(true)
	p.logger.Info("publish cycle complete",
		"markers", len(markers),
		"skipped", len(feed.Skipped),
		"duration", time.Since(start),
	)
	return nil
}

// Run publishes once when the interval is zero. Otherwise it publishes every
// interval until the context is cancelled. A failed cycle is logged and the
// next one runs on schedule.
func (p *Pipeline) Run(ctx context.Context) error {
	if p.interval <= 0 {
		return p.RunOnce(ctx)
	}

	p.logger.Info("pipeline started", "interval", p.interval)
	p.metrics.PublishRunning.Set(1)
	defer p.metrics.PublishRunning.Set(0)

	for {
		if err := p.RunOnce(ctx); err != nil {
			if ctx.Err() != nil {
				p.logger.Info("pipeline stopping", "reason", ctx.Err())
				return nil
			}
			p.logger.Error("publish cycle failed", "error", err, "next_in", p.interval)
		}

		if !retry.SleepWithContext(ctx, p.interval) {
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		}
	}
}
