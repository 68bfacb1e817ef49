package clients

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/devotional-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/devotional-service/internal/platform/config"
)

func testConfig(baseURL string) config.ClientConfig {
	return config.ClientConfig{
		BaseURL: baseURL,
		Timeout: 2 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     3,
			InitialInterval: time.Millisecond,
			MaxInterval:     5 * time.Millisecond,
			Multiplier:      2,
			JitterFactor:    0.25,
		},
		CircuitBreaker: config.CircuitBreakerConfig{
			MaxFailures:   5,
			Timeout:       time.Minute,
			HalfOpenLimit: 1,
		},
		Transport: config.TransportConfig{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     time.Second,
		},
	}
}

func newTestClient(t *testing.T, cfg config.ClientConfig) *Client {
	t.Helper()

	client, err := New("devotional-api", cfg, nil)
	require.NoError(t, err)

	return client
}

func closeBody(t *testing.T, resp *http.Response) {
	t.Helper()

	if err := resp.Body.Close(); err != nil {
		t.Errorf("closing response body: %v", err)
	}
}

func TestNew_Validation(t *testing.T) {
	_, err := New("", testConfig("http://localhost"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service name is required")

	_, err = New("devotional-api", testConfig(""), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base URL is required")

	client, err := New("devotional-api", testConfig("http://localhost:4000/api/"), nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:4000/api", client.baseURL)
	assert.Equal(t, "devotional-api", client.Name())
}

func TestClient_BuildURL(t *testing.T) {
	client := newTestClient(t, testConfig("http://localhost:4000/api"))

	tests := []struct {
		name  string
		path  string
		query url.Values
		want  string
	}{
		{name: "plain", path: "/items", want: "http://localhost:4000/api/items"},
		{name: "missing slash", path: "deities", want: "http://localhost:4000/api/deities"},
		{name: "empty query", path: "/aarti", query: url.Values{}, want: "http://localhost:4000/api/aarti"},
		{
			name:  "encoded query",
			path:  "/items",
			query: url.Values{"deity": {"shiv"}, "search": {"जय शिव"}},
			want:  "http://localhost:4000/api/items?deity=shiv&search=%E0%A4%9C%E0%A4%AF+%E0%A4%B6%E0%A4%BF%E0%A4%B5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, client.buildURL(tt.path, tt.query))
		})
	}
}

func TestClient_PropagatesIDs(t *testing.T) {
	var requestID, correlationID, accept string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get(middleware.HeaderRequestID)
		correlationID = r.Header.Get(middleware.HeaderCorrelationID)
		accept = r.Header.Get("Accept")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(t, testConfig(server.URL))

	ctx := middleware.ContextWithRequestID(context.Background(), "req-1")
	ctx = middleware.ContextWithCorrelationID(ctx, "corr-1")

	resp, err := client.Get(ctx, "/items", nil)
	require.NoError(t, err)
	defer closeBody(t, resp)

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, "corr-1", correlationID)
	assert.Equal(t, "application/json", accept)
}

func TestClient_Retries(t *testing.T) {
	tests := []struct {
		name         string
		failFirst    int32
		failStatus   int
		maxAttempts  int
		wantStatus   int
		wantAttempts int32
	}{
		{name: "recovers after 5xx", failFirst: 2, failStatus: http.StatusBadGateway, maxAttempts: 3, wantStatus: http.StatusOK, wantAttempts: 3},
		{name: "final 5xx returned", failFirst: 10, failStatus: http.StatusServiceUnavailable, maxAttempts: 3, wantStatus: http.StatusServiceUnavailable, wantAttempts: 3},
		{name: "4xx not retried", failFirst: 10, failStatus: http.StatusNotFound, maxAttempts: 3, wantStatus: http.StatusNotFound, wantAttempts: 1},
		{name: "single attempt", failFirst: 10, failStatus: http.StatusInternalServerError, maxAttempts: 1, wantStatus: http.StatusInternalServerError, wantAttempts: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var attempts int32

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if atomic.AddInt32(&attempts, 1) <= tt.failFirst {
					w.WriteHeader(tt.failStatus)
					return
				}

				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			cfg := testConfig(server.URL)
			cfg.Retry.MaxAttempts = tt.maxAttempts

			resp, err := newTestClient(t, cfg).Get(context.Background(), "/items", nil)
			require.NoError(t, err)
			defer closeBody(t, resp)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantAttempts, atomic.LoadInt32(&attempts))
		})
	}
}

func TestClient_FinalErrorBodyReadable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, `{"error":{"code":"SERVICE_UNAVAILABLE","message":"catalog not loaded"}}`)
	}))
	defer server.Close()

	resp, err := newTestClient(t, testConfig(server.URL)).Get(context.Background(), "/items", nil)
	require.NoError(t, err)
	defer closeBody(t, resp)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "catalog not loaded")
}

func TestClient_ConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	_, err = newTestClient(t, testConfig("http://"+addr)).Get(context.Background(), "/items", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMaxRetriesExceeded)
}

func TestClient_CircuitBreakerOpens(t *testing.T) {
	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.Retry.MaxAttempts = 1
	cfg.CircuitBreaker.MaxFailures = 2

	client := newTestClient(t, cfg)

	for range 2 {
		resp, err := client.Get(context.Background(), "/items", nil)
		require.NoError(t, err)
		closeBody(t, resp)
	}

	assert.Equal(t, StateOpen, client.CircuitState())

	before := atomic.LoadInt32(&calls)

	_, err := client.Get(context.Background(), "/items", nil)

	require.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, before, atomic.LoadInt32(&calls))
}

func TestClient_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := newTestClient(t, testConfig(server.URL)).Get(ctx, "/items", nil)

	require.Error(t, err)
}

func TestClient_Backoff(t *testing.T) {
	cfg := testConfig("http://localhost")
	cfg.Retry.InitialInterval = 100 * time.Millisecond
	cfg.Retry.MaxInterval = time.Second

	client := newTestClient(t, cfg)

	assert.InDelta(t, float64(200*time.Millisecond), float64(client.backoff(1)), float64(50*time.Millisecond))
	assert.InDelta(t, float64(400*time.Millisecond), float64(client.backoff(2)), float64(100*time.Millisecond))
	assert.LessOrEqual(t, client.backoff(10), cfg.Retry.MaxInterval+cfg.Retry.MaxInterval/4)

	cfg.Retry.JitterFactor = 0
	client = newTestClient(t, cfg)
	assert.Equal(t, 800*time.Millisecond, client.backoff(3))
}

type testNetError struct{ timeout bool }

func (e testNetError) Error() string   { return "test net error" }
func (e testNetError) Timeout() bool   { return e.timeout }
func (e testNetError) Temporary() bool { return false }

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"deadline", context.DeadlineExceeded, false},
		{"net timeout", testNetError{timeout: true}, true},
		{"net non-timeout", testNetError{}, false},
		{"connection refused", &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableError(tt.err))
		})
	}
}
