package mapbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/couchcryptid/quake-map/internal/observability"
	"github.com/jonboulle/clockwork"
)

// tokenCheckTTL is how long a successful token check is trusted.
const tokenCheckTTL = 5 * time.Minute

// ErrNoToken is returned when no access token is configured.
var ErrNoToken = errors.New("mapbox access token not configured")

// Client verifies the Mapbox access token used for tile requests.
// It implements the readiness check for the HTTP server.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
	clock      clockwork.Clock

	mu         sync.Mutex
	validUntil time.Time
}

// NewClient creates a Mapbox token client.
func NewClient(token string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		token: token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://api.mapbox.com/tokens/v2",
		metrics: metrics,
		logger:  logger,
		clock:   clockwork.NewRealClock(),
	}
}

// CheckReadiness returns nil while the token is known to be valid. A successful
// check is reused for tokenCheckTTL.
func (c *Client) CheckReadiness(ctx context.Context) error {
	c.mu.Lock()
	fresh := c.clock.Now().Before(c.validUntil)
	c.mu.Unlock()
	if fresh {
		return nil
	}

	if err := c.CheckToken(ctx); err != nil {
		c.metrics.TileTokenValid.Set(0)
		return err
	}

	c.metrics.TileTokenValid.Set(1)
	c.mu.Lock()
	c.validUntil = c.clock.Now().Add(tokenCheckTTL)
	c.mu.Unlock()
	return nil
}

// CheckToken asks the Mapbox token API whether the configured token is valid.
func (c *Client) CheckToken(ctx context.Context) error {
	if c.token == "" {
		return ErrNoToken
	}

	params := url.Values{"access_token": {c.token}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("token check request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusUnauthorized {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mapbox API error: status %d: %s", resp.StatusCode, body)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if tr.Code != "TokenValid" {
		c.logger.Warn("mapbox token rejected", "code", tr.Code)
		return fmt.Errorf("mapbox token rejected: %s", tr.Code)
	}
	return nil
}

// Mapbox token API response.
type tokenResponse struct {
	Code string `json:"code"` // TokenValid, TokenMalformed, TokenInvalid, TokenExpired, TokenRevoked
}
