package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	defaultBroker   = "localhost:9092"
	testMapboxToken = "pk.test-token"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, defaultEarthquakeFeedURL, cfg.EarthquakeFeedURL)
	assert.Equal(t, defaultPlateBoundariesURL, cfg.PlateBoundariesURL)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.InDelta(t, 50.0, cfg.MapCenterLat, 1e-9)
	assert.InDelta(t, -110.0, cfg.MapCenterLon, 1e-9)
	assert.Equal(t, 3, cfg.MapZoom)
	assert.InDelta(t, 0.0, cfg.MinMarkerRadius, 1e-9)
	assert.Empty(t, cfg.MapboxToken)
	assert.Equal(t, 5*time.Second, cfg.MapboxTimeout)
	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
	assert.Equal(t, "earthquake-markers", cfg.KafkaTopic)
	assert.Zero(t, cfg.PublishInterval)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("EARTHQUAKE_FEED_URL", "https://example.test/quakes.geojson")
	t.Setenv("PLATE_BOUNDARIES_URL", "https://example.test/plates.json")
	t.Setenv("FETCH_TIMEOUT", "3s")
	t.Setenv("MAP_CENTER_LAT", "35.5")
	t.Setenv("MAP_CENTER_LON", "139.7")
	t.Setenv("MAP_ZOOM", "5")
	t.Setenv("MIN_MARKER_RADIUS", "1.5")
	t.Setenv("MAPBOX_TOKEN", testMapboxToken)
	t.Setenv("MAPBOX_TIMEOUT", "10s")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_TOPIC", "custom-markers")
	t.Setenv("PUBLISH_INTERVAL", "5m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "https://example.test/quakes.geojson", cfg.EarthquakeFeedURL)
	assert.Equal(t, "https://example.test/plates.json", cfg.PlateBoundariesURL)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
	assert.InDelta(t, 35.5, cfg.MapCenterLat, 1e-9)
	assert.InDelta(t, 139.7, cfg.MapCenterLon, 1e-9)
	assert.Equal(t, 5, cfg.MapZoom)
	assert.InDelta(t, 1.5, cfg.MinMarkerRadius, 1e-9)
	assert.Equal(t, testMapboxToken, cfg.MapboxToken)
	assert.Equal(t, 10*time.Second, cfg.MapboxTimeout)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-markers", cfg.KafkaTopic)
	assert.Equal(t, 5*time.Minute, cfg.PublishInterval)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidFetchTimeout(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT", "-2s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FETCH_TIMEOUT")
}

func TestLoad_InvalidMapboxTimeout(t *testing.T) {
	t.Setenv("MAPBOX_TIMEOUT", "bad")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAPBOX_TIMEOUT")
}

func TestLoad_InvalidCenter(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"MAP_CENTER_LAT", "91"},
		{"MAP_CENTER_LAT", "north"},
		{"MAP_CENTER_LON", "-181"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoad_InvalidZoom(t *testing.T) {
	t.Setenv("MAP_ZOOM", "19")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAP_ZOOM")
}

func TestLoad_NegativeMinMarkerRadius(t *testing.T) {
	t.Setenv("MIN_MARKER_RADIUS", "-1")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MIN_MARKER_RADIUS")
}

func TestLoad_InvalidPublishInterval(t *testing.T) {
	for _, v := range []string{"soon", "-1m"} {
		t.Setenv("PUBLISH_INTERVAL", v)
		_, err := Load()
		require.Error(t, err, v)
		assert.Contains(t, err.Error(), "PUBLISH_INTERVAL")
	}
}

func TestRequireKafka(t *testing.T) {
	cfg := &Config{KafkaBrokers: []string{defaultBroker}, KafkaTopic: "t"}
	require.NoError(t, cfg.RequireKafka())

	cfg.KafkaTopic = ""
	err := cfg.RequireKafka()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_TOPIC")

	cfg = &Config{KafkaTopic: "t"}
	err = cfg.RequireKafka()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}
