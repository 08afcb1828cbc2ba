package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

const (
	defaultEarthquakeFeedURL  = "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_day.geojson"
	defaultPlateBoundariesURL = "https://raw.githubusercontent.com/fraxen/tectonicplates/master/GeoJSON/PB2002_boundaries.json"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Upstream GeoJSON datasets.
	EarthquakeFeedURL  string
	PlateBoundariesURL string
	FetchTimeout       time.Duration

	// Map presentation.
	MapCenterLat    float64
	MapCenterLon    float64
	MapZoom         int
	MinMarkerRadius float64

	// Mapbox tile access.
	MapboxToken   string
	MapboxTimeout time.Duration

	// Marker publishing.
	KafkaBrokers    []string
	KafkaTopic      string
	PublishInterval time.Duration // 0 publishes once and exits
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := parsePositiveDuration("FETCH_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	mapboxTimeout, err := parsePositiveDuration("MAPBOX_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	centerLat, err := parseFloat("MAP_CENTER_LAT", 50)
	if err != nil {
		return nil, err
	}
	centerLon, err := parseFloat("MAP_CENTER_LON", -110)
	if err != nil {
		return nil, err
	}
	minRadius, err := parseFloat("MIN_MARKER_RADIUS", 0)
	if err != nil {
		return nil, err
	}

	publishInterval, err := time.ParseDuration(sharedcfg.EnvOrDefault("PUBLISH_INTERVAL", "0s"))
	if err != nil || publishInterval < 0 {
		return nil, errors.New("PUBLISH_INTERVAL must be a non-negative duration")
	}

	zoom, err := parseZoom()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		EarthquakeFeedURL:  sharedcfg.EnvOrDefault("EARTHQUAKE_FEED_URL", defaultEarthquakeFeedURL),
		PlateBoundariesURL: sharedcfg.EnvOrDefault("PLATE_BOUNDARIES_URL", defaultPlateBoundariesURL),
		FetchTimeout:       fetchTimeout,

		MapCenterLat:    centerLat,
		MapCenterLon:    centerLon,
		MapZoom:         zoom,
		MinMarkerRadius: minRadius,

		MapboxToken:   os.Getenv("MAPBOX_TOKEN"),
		MapboxTimeout: mapboxTimeout,

		KafkaBrokers:    sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:      sharedcfg.EnvOrDefault("KAFKA_TOPIC", "earthquake-markers"),
		PublishInterval: publishInterval,
	}

	if cfg.MapCenterLat < -90 || cfg.MapCenterLat > 90 {
		return nil, errors.New("MAP_CENTER_LAT must be between -90 and 90")
	}
	if cfg.MapCenterLon < -180 || cfg.MapCenterLon > 180 {
		return nil, errors.New("MAP_CENTER_LON must be between -180 and 180")
	}
	if cfg.MinMarkerRadius < 0 {
		return nil, errors.New("MIN_MARKER_RADIUS must not be negative")
	}
	if cfg.EarthquakeFeedURL == "" {
		return nil, errors.New("EARTHQUAKE_FEED_URL is required")
	}
	if cfg.PlateBoundariesURL == "" {
		return nil, errors.New("PLATE_BOUNDARIES_URL is required")
	}

	return cfg, nil
}

// RequireKafka validates the settings used by the marker publisher.
func (c *Config) RequireKafka() error {
	if len(c.KafkaBrokers) == 0 {
		return errors.New("KAFKA_BROKERS is required")
	}
	if c.KafkaTopic == "" {
		return errors.New("KAFKA_TOPIC is required")
	}
	return nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

func parseFloat(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New("invalid " + key)
	}
	return v, nil
}

func parseZoom() (int, error) {
	s := os.Getenv("MAP_ZOOM")
	if s == "" {
		return 3, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 18 {
		return 0, errors.New("MAP_ZOOM must be an integer between 0 and 18")
	}
	return n, nil
}
