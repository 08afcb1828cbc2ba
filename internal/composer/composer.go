package composer

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/quake-map/internal/domain"
	"github.com/couchcryptid/quake-map/internal/observability"
)

// Source retrieves the two upstream datasets.
type Source interface {
	FetchEarthquakes(ctx context.Context) (domain.EarthquakeFeed, error)
	FetchPlateBoundaries(ctx context.Context) (domain.PlateFeed, error)
}

// Options fixes the initial view and marker style.
type Options struct {
	Center          domain.Geo
	Zoom            int
	BaseLayers      []domain.TileLayer
	MinMarkerRadius float64
}

// Composer builds map views from a Source.
type Composer struct {
	source  Source
	styler  domain.MarkerStyler
	opts    Options
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Composer.
func New(source Source, opts Options, logger *slog.Logger, metrics *observability.Metrics) *Composer {
	return &Composer{
		source:  source,
		styler:  domain.MarkerStyler{MinRadius: opts.MinMarkerRadius},
		opts:    opts,
		logger:  logger,
		metrics: metrics,
	}
}

type markerResult struct {
	markers []domain.Marker
	skipped []*domain.MalformedFeatureError
	err     error
}

type boundaryResult struct {
	lines   []domain.LineString
	skipped []*domain.MalformedFeatureError
	err     error
}

// Compose fetches both datasets concurrently and attaches each overlay as soon
// as its own fetch finishes, in whichever order they complete. A failed fetch
// leaves its overlay empty and is recorded in the view's degradations.
func (c *Composer) Compose(ctx context.Context) *domain.MapView {
	view := c.Frame()

	quakes := c.loadMarkers(ctx)
	plates := c.loadBoundaries(ctx)

	for quakes != nil || plates != nil {
		select {
		case r := <-quakes:
			c.attachMarkers(view, r)
			quakes = nil
		case r := <-plates:
			c.attachBoundaries(view, r)
			plates = nil
		}
	}

	status := "complete"
	if len(view.Degradations) > 0 {
		status = "degraded"
	}
	c.metrics.ViewsComposed.WithLabelValues(status).Inc()
	return view
}

// Frame returns the view with base layers, control, and legend in place and
// both overlays empty. The page starts from it and fills overlays separately.
func (c *Composer) Frame() *domain.MapView {
	return domain.NewMapView(c.opts.Center, c.opts.Zoom, c.opts.BaseLayers)
}

// Markers fetches the earthquake feed and styles every usable feature.
func (c *Composer) Markers(ctx context.Context) ([]domain.Marker, []*domain.MalformedFeatureError, error) {
	feed, err := c.source.FetchEarthquakes(ctx)
	if err != nil {
		return []domain.Marker{}, nil, err
	}
	markers := c.styler.Markers(feed.Events)
	c.metrics.MarkersRendered.Add(float64(len(markers)))
	return markers, feed.Skipped, nil
}

// Boundaries fetches the plate boundary lines.
func (c *Composer) Boundaries(ctx context.Context) ([]domain.LineString, []*domain.MalformedFeatureError, error) {
	feed, err := c.source.FetchPlateBoundaries(ctx)
	if err != nil {
		return []domain.LineString{}, nil, err
	}
	return feed.Boundaries.Lines, feed.Skipped, nil
}

func (c *Composer) loadMarkers(ctx context.Context) <-chan markerResult {
	ch := make(chan markerResult, 1)
	go func() {
		markers, skipped, err := c.Markers(ctx)
		ch <- markerResult{markers: markers, skipped: skipped, err: err}
	}()
	return ch
}

func (c *Composer) loadBoundaries(ctx context.Context) <-chan boundaryResult {
	ch := make(chan boundaryResult, 1)
	go func() {
		lines, skipped, err := c.Boundaries(ctx)
		ch <- boundaryResult{lines: lines, skipped: skipped, err: err}
	}()
	return ch
}

func (c *Composer) attachMarkers(view *domain.MapView, r markerResult) {
	if r.err != nil {
		c.logger.Warn("earthquake layer unavailable", "error", r.err)
		view.Degrade(domain.OverlayEarthquakes, r.err)
		return
	}
	for _, s := range r.skipped {
		view.Degrade(domain.OverlayEarthquakes, s)
	}
	view.Overlays.Earthquakes.Markers = r.markers
}

func (c *Composer) attachBoundaries(view *domain.MapView, r boundaryResult) {
	if r.err != nil {
		c.logger.Warn("plate boundary layer unavailable", "error", r.err)
		view.Degrade(domain.OverlayPlates, r.err)
		return
	}
	for _, s := range r.skipped {
		view.Degrade(domain.OverlayPlates, s)
	}
	view.Overlays.Plates.Lines = r.lines
}
