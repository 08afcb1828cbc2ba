package mapbox

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/couchcryptid/quake-map/internal/observability"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testToken         = "pk.test-token"
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
)

func testClient(baseURL string, clock clockwork.Clock) *Client {
	return &Client{
		token:      testToken,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		metrics:    observability.NewMetricsForTesting(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:      clock,
	}
}

func tokenServer(t *testing.T, status int, code string, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			calls.Add(1)
		}
		assert.Equal(t, testToken, r.URL.Query().Get("access_token"))
		w.Header().Set(headerContentType, contentTypeJSON)
		w.WriteHeader(status)
		require.NoError(t, json.NewEncoder(w).Encode(tokenResponse{Code: code}))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_CheckToken_Valid(t *testing.T) {
	srv := tokenServer(t, http.StatusOK, "TokenValid", nil)
	c := testClient(srv.URL, clockwork.NewRealClock())

	require.NoError(t, c.CheckToken(context.Background()))
}

func TestClient_CheckToken_Rejected(t *testing.T) {
	srv := tokenServer(t, http.StatusUnauthorized, "TokenExpired", nil)
	c := testClient(srv.URL, clockwork.NewRealClock())

	err := c.CheckToken(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TokenExpired")
}

func TestClient_CheckToken_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"boom"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, clockwork.NewRealClock())

	err := c.CheckToken(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestClient_CheckToken_NoToken(t *testing.T) {
	c := testClient("http://127.0.0.1:0", clockwork.NewRealClock())
	c.token = ""

	assert.ErrorIs(t, c.CheckToken(context.Background()), ErrNoToken)
}

func TestClient_CheckReadiness_CachesSuccess(t *testing.T) {
	var calls atomic.Int32
	srv := tokenServer(t, http.StatusOK, "TokenValid", &calls)
	clock := clockwork.NewFakeClockAt(time.Date(2024, time.April, 26, 12, 0, 0, 0, time.UTC))
	c := testClient(srv.URL, clock)

	require.NoError(t, c.CheckReadiness(context.Background()))
	require.NoError(t, c.CheckReadiness(context.Background()))
	assert.Equal(t, int32(1), calls.Load(), "second check should reuse the cached result")
	assert.InDelta(t, 1.0, testutil.ToFloat64(c.metrics.TileTokenValid), 1e-9)

	clock.Advance(tokenCheckTTL + time.Second)
	require.NoError(t, c.CheckReadiness(context.Background()))
	assert.Equal(t, int32(2), calls.Load(), "expired result should be rechecked")
}

func TestClient_CheckReadiness_Failure(t *testing.T) {
	srv := tokenServer(t, http.StatusUnauthorized, "TokenInvalid", nil)
	c := testClient(srv.URL, clockwork.NewRealClock())

	require.Error(t, c.CheckReadiness(context.Background()))
	assert.InDelta(t, 0.0, testutil.ToFloat64(c.metrics.TileTokenValid), 1e-9)
}

func TestClient_CheckToken_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient(srv.URL, clockwork.NewRealClock())
	c.httpClient = &http.Client{Timeout: 50 * time.Millisecond}

	require.Error(t, c.CheckToken(context.Background()))
}
