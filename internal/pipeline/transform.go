package pipeline

import (
	"log/slog"

	"github.com/couchcryptid/quake-map/internal/domain"
)

// MarkerTransformer styles feed events into markers.
type MarkerTransformer struct {
	styler domain.MarkerStyler
	logger *slog.Logger
}

// NewTransformer creates a MarkerTransformer. minRadius floors marker radii.
func NewTransformer(minRadius float64, logger *slog.Logger) *MarkerTransformer {
	return &MarkerTransformer{
		styler: domain.MarkerStyler{MinRadius: minRadius},
		logger: logger,
	}
}

func (t *MarkerTransformer) Transform(feed domain.EarthquakeFeed) []domain.Marker {
	markers := t.styler.Markers(feed.Events)
	t.logger.Debug("feed styled", "markers", len(markers), "skipped", len(feed.Skipped))
	return markers
}
