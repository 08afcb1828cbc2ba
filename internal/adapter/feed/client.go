package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/quake-map/internal/domain"
	"github.com/couchcryptid/quake-map/internal/observability"
)

// Dataset labels used in logs and metrics.
const (
	DatasetEarthquakes = "earthquakes"
	DatasetPlates      = "plates"
)

// maxBodyBytes bounds a single dataset download. The daily USGS feed and the
// PB2002 boundaries are each a few megabytes.
const maxBodyBytes = 32 << 20

// Client fetches the earthquake feed and plate boundary datasets.
// It implements composer.Source.
type Client struct {
	httpClient     *http.Client
	earthquakesURL string
	platesURL      string
	maxBody        int64
	metrics        *observability.Metrics
	logger         *slog.Logger
}

// NewClient creates a dataset client. Each request is bounded by timeout.
func NewClient(earthquakesURL, platesURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient:     &http.Client{Timeout: timeout},
		earthquakesURL: earthquakesURL,
		platesURL:      platesURL,
		maxBody:        maxBodyBytes,
		metrics:        metrics,
		logger:         logger,
	}
}

// FetchEarthquakes downloads and decodes the earthquake feed. Malformed features
// are skipped and reported in the result; only transport or document-level
// failures return an error.
func (c *Client) FetchEarthquakes(ctx context.Context) (domain.EarthquakeFeed, error) {
	body, err := c.get(ctx, DatasetEarthquakes, c.earthquakesURL)
	if err != nil {
		return domain.EarthquakeFeed{}, err
	}

	result, err := ParseEarthquakes(body)
	if err != nil {
		c.metrics.FetchRequests.WithLabelValues(DatasetEarthquakes, "error").Inc()
		return domain.EarthquakeFeed{}, &domain.FetchFailedError{Endpoint: c.earthquakesURL, Err: err}
	}
	c.metrics.FetchRequests.WithLabelValues(DatasetEarthquakes, "success").Inc()
	c.reportSkipped(DatasetEarthquakes, result.Skipped)

	c.logger.Debug("earthquake feed fetched", "events", len(result.Events), "skipped", len(result.Skipped))
	return result, nil
}

// FetchPlateBoundaries downloads and decodes the plate boundary dataset.
func (c *Client) FetchPlateBoundaries(ctx context.Context) (domain.PlateFeed, error) {
	body, err := c.get(ctx, DatasetPlates, c.platesURL)
	if err != nil {
		return domain.PlateFeed{}, err
	}

	result, err := ParsePlateBoundaries(body)
	if err != nil {
		c.metrics.FetchRequests.WithLabelValues(DatasetPlates, "error").Inc()
		return domain.PlateFeed{}, &domain.FetchFailedError{Endpoint: c.platesURL, Err: err}
	}
	c.metrics.FetchRequests.WithLabelValues(DatasetPlates, "success").Inc()
	c.metrics.BoundaryLines.Set(float64(len(result.Boundaries.Lines)))
	c.reportSkipped(DatasetPlates, result.Skipped)

	c.logger.Debug("plate boundaries fetched", "lines", len(result.Boundaries.Lines), "skipped", len(result.Skipped))
	return result, nil
}

func (c *Client) reportSkipped(dataset string, skipped []*domain.MalformedFeatureError) {
	for _, s := range skipped {
		c.logger.Warn("skipping malformed feature",
			"dataset", dataset,
			"index", s.Index,
			"reason", s.Reason,
		)
	}
	if len(skipped) > 0 {
		c.metrics.MalformedFeatures.WithLabelValues(dataset).Add(float64(len(skipped)))
	}
}

// get performs a single GET. There is no retry: a failure leaves the layer empty.
func (c *Client) get(ctx context.Context, dataset, url string) ([]byte, error) {
	start := time.Now()
	defer func() {
		c.metrics.FetchDuration.WithLabelValues(dataset).Observe(time.Since(start).Seconds())
	}()

	body, err := c.doRequest(ctx, url)
	if err != nil {
		c.metrics.FetchRequests.WithLabelValues(dataset, "error").Inc()
		return nil, &domain.FetchFailedError{Endpoint: url, Err: err}
	}
	return body, nil
}

func (c *Client) doRequest(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, snippet)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > c.maxBody {
		return nil, fmt.Errorf("body exceeds limit of %d bytes", c.maxBody)
	}
	return body, nil
}
