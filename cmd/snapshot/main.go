// Command snapshot composes a map view from saved feed files and writes it as a
// JSON fixture. The clock is pinned so output is reproducible.
//
// Usage:
//
//	curl -o testdata/all_day.geojson https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_day.geojson
//	go run ./cmd/snapshot \
//	  -quakes testdata/all_day.geojson \
//	  -plates testdata/PB2002_boundaries.json \
//	  -out testdata/map_view.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/couchcryptid/quake-map/internal/adapter/feed"
	"github.com/couchcryptid/quake-map/internal/adapter/mapbox"
	"github.com/couchcryptid/quake-map/internal/composer"
	"github.com/couchcryptid/quake-map/internal/domain"
	"github.com/couchcryptid/quake-map/internal/observability"
	"github.com/jonboulle/clockwork"
)

var snapshotTime = time.Date(2024, time.April, 27, 6, 0, 0, 0, time.UTC)

// fileSource serves both datasets from local files.
type fileSource struct {
	quakesPath string
	platesPath string
}

func (f fileSource) FetchEarthquakes(_ context.Context) (domain.EarthquakeFeed, error) {
	data, err := os.ReadFile(f.quakesPath)
	if err != nil {
		return domain.EarthquakeFeed{}, &domain.FetchFailedError{Endpoint: f.quakesPath, Err: err}
	}
	result, err := feed.ParseEarthquakes(data)
	if err != nil {
		return domain.EarthquakeFeed{}, &domain.FetchFailedError{Endpoint: f.quakesPath, Err: err}
	}
	return result, nil
}

func (f fileSource) FetchPlateBoundaries(_ context.Context) (domain.PlateFeed, error) {
	data, err := os.ReadFile(f.platesPath)
	if err != nil {
		return domain.PlateFeed{}, &domain.FetchFailedError{Endpoint: f.platesPath, Err: err}
	}
	result, err := feed.ParsePlateBoundaries(data)
	if err != nil {
		return domain.PlateFeed{}, &domain.FetchFailedError{Endpoint: f.platesPath, Err: err}
	}
	return result, nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	quakes := flag.String("quakes", "", "earthquake GeoJSON file")
	plates := flag.String("plates", "", "plate boundary GeoJSON file")
	out := flag.String("out", "", "output path for the map view fixture")
	flag.Parse()

	if *quakes == "" || *plates == "" || *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -quakes, -plates, -out")
	}

	domain.SetClock(clockwork.NewFakeClockAt(snapshotTime))
	defer domain.SetClock(nil)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	comp := composer.New(fileSource{quakesPath: *quakes, platesPath: *plates}, composer.Options{
		Center:     domain.Geo{Lat: 50, Lon: -110},
		Zoom:       3,
		BaseLayers: mapbox.TileLayers(mapbox.DefaultTileURL, "{accessToken}"),
	}, logger, observability.NewMetricsForTesting())

	view := comp.Compose(context.Background())
	for _, d := range view.Degradations {
		log.Printf("degraded %s: %s", d.Layer, d.Error)
	}

	if err := writeJSON(*out, view); err != nil {
		return err
	}
	log.Printf("wrote %s", *out)
	printStats(view)
	return nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(view *domain.MapView) {
	counts := make([]int, len(domain.Thresholds))
	for _, m := range view.Overlays.Earthquakes.Markers {
		counts[m.Bucket]++
	}

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Markers: %d\n", len(view.Overlays.Earthquakes.Markers))
	for i, e := range view.Legend.Entries {
		fmt.Printf("  %-4s %s  %d\n", e.Label, e.Color, counts[i])
	}
	var points int
	for _, l := range view.Overlays.Plates.Lines {
		points += len(l)
	}
	fmt.Printf("Boundary lines: %d (%d points)\n", len(view.Overlays.Plates.Lines), points)
	fmt.Printf("Degradations: %d\n", len(view.Degradations))
}
