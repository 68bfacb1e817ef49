package acl

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/devotional-service/internal/adapters/clients"
	"github.com/jsamuelsen/devotional-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/devotional-service/internal/domain"
	"github.com/jsamuelsen/devotional-service/internal/platform/config"
)

type recordedRequest struct {
	path          string
	rawQuery      string
	requestID     string
	correlationID string
}

// fakeAPI serves canned bodies by path and records what it received.
type fakeAPI struct {
	status   int
	bodies   map[string]string
	requests chan recordedRequest
}

func newFakeAPI(bodies map[string]string) *fakeAPI {
	return &fakeAPI{status: http.StatusOK, bodies: bodies, requests: make(chan recordedRequest, 8)}
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.requests <- recordedRequest{
		path:          r.URL.Path,
		rawQuery:      r.URL.RawQuery,
		requestID:     r.Header.Get(middleware.HeaderRequestID),
		correlationID: r.Header.Get(middleware.HeaderCorrelationID),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(f.status)
	_, _ = io.WriteString(w, f.bodies[r.URL.Path])
}

func newDevotionalClient(t *testing.T, handler http.Handler) *DevotionalClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := clients.New(ServiceName, config.ClientConfig{
		BaseURL: server.URL + "/api",
		Timeout: 2 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     1,
			InitialInterval: time.Millisecond,
			MaxInterval:     time.Millisecond,
			Multiplier:      2,
		},
		CircuitBreaker: config.CircuitBreakerConfig{
			MaxFailures:   10,
			Timeout:       time.Minute,
			HalfOpenLimit: 1,
		},
		Transport: config.TransportConfig{
			MaxIdleConns:        2,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     time.Second,
		},
	}, nil)
	require.NoError(t, err)

	return NewDevotionalClient(DevotionalClientConfig{Client: client})
}

const itemsBody = `[
	{"id": 1, "title": "ॐ जय शिव ओंकारा", "author": "Traditional", "content": "...", "category": "Aarti"},
	{"id": 2, "title": "श्री शिव चालीसा", "content": "...", "category": "Chalisa"}
]`

func TestDevotionalClient_FetchAllItems(t *testing.T) {
	api := newFakeAPI(map[string]string{"/api/items": itemsBody})
	client := newDevotionalClient(t, api)

	ctx := middleware.ContextWithRequestID(context.Background(), "req-42")
	ctx = middleware.ContextWithCorrelationID(ctx, "corr-42")

	items, err := client.FetchAllItems(ctx, domain.NewQueryFilters("Shiv", "", "", "2"))
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, domain.IntID(1), items[0].ID)
	assert.Equal(t, "Traditional", items[0].Author)
	assert.Equal(t, "श्री शिव चालीसा", items[1].Title)

	got := <-api.requests
	assert.Equal(t, "/api/items", got.path)
	assert.Equal(t, "deity=shiv&limit=2", got.rawQuery)
	assert.Equal(t, "req-42", got.requestID)
	assert.Equal(t, "corr-42", got.correlationID)
}

func TestDevotionalClient_QueryOnlyCarriesSetFilters(t *testing.T) {
	tests := []struct {
		name    string
		filters domain.QueryFilters
		want    string
	}{
		{name: "none", filters: domain.QueryFilters{}, want: ""},
		{name: "all", filters: domain.NewQueryFilters("ganesh", "morning", "jai", "5"), want: "category=morning&deity=ganesh&limit=5&search=jai"},
		{name: "invalid limit dropped", filters: domain.NewQueryFilters("", "", "", "abc"), want: ""},
		{name: "blank values dropped", filters: domain.NewQueryFilters("  ", "", "om", ""), want: "search=om"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI(map[string]string{"/api/aarti": `[]`})

			items, err := newDevotionalClient(t, api).FetchItemsByType(context.Background(), domain.CollectionAarti, tt.filters)
			require.NoError(t, err)
			assert.Empty(t, items)

			got := <-api.requests
			assert.Equal(t, "/api/aarti", got.path)
			assert.Equal(t, tt.want, got.rawQuery)
		})
	}
}

func TestDevotionalClient_FetchItemsByType_UnknownCollection(t *testing.T) {
	api := newFakeAPI(nil)

	_, err := newDevotionalClient(t, api).FetchItemsByType(context.Background(), "bhajan", domain.QueryFilters{})

	assert.True(t, domain.IsNotFound(err))
	assert.Empty(t, api.requests)
}

func TestDevotionalClient_FetchCollections(t *testing.T) {
	api := newFakeAPI(map[string]string{"/api/collections": `{
		"aarti": [{"id": 1, "title": "ॐ जय शिव ओंकारा", "content": "..."}],
		"chalisa": [],
		"strotam": [{"id": "shiv-tandav", "title": "शिव ताण्डव स्तोत्रम्", "content": "..."}]
	}`})

	c, err := newDevotionalClient(t, api).FetchCollections(context.Background(), domain.NewQueryFilters("shiv", "", "", ""))
	require.NoError(t, err)

	assert.Len(t, c.Aarti, 1)
	assert.Empty(t, c.Chalisa)
	require.Len(t, c.Strotam, 1)
	assert.Equal(t, domain.StringID("shiv-tandav"), c.Strotam[0].ID)

	got := <-api.requests
	assert.Equal(t, "deity=shiv", got.rawQuery)
}

func TestDevotionalClient_FetchDeities(t *testing.T) {
	api := newFakeAPI(map[string]string{"/api/deities": `[
		{"deity": "Hanuman", "name": "Hanuman Dev", "hindiName": "हनुमान देव", "count": 2},
		{"deity": "Shiv", "name": "Shiv Bhagwan", "hindiName": "शिव भगवान", "count": 4}
	]`})

	got, err := newDevotionalClient(t, api).FetchDeities(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.DeityCount{
		{Deity: domain.DeityHanuman, Count: 2},
		{Deity: domain.DeityShiv, Count: 4},
	}, got)
}

func TestDevotionalClient_Health(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "ok", body: `{"status":"ok"}`},
		{name: "degraded", body: `{"status":"degraded"}`, wantErr: true},
		{name: "garbage", body: `<html>`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newDevotionalClient(t, newFakeAPI(map[string]string{"/api/health": tt.body}))

			err := client.Check(context.Background())

			if tt.wantErr {
				assert.True(t, domain.IsUnavailable(err))
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, ServiceName, client.Name())
		})
	}
}

func TestDevotionalClient_ErrorResponses(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantKind    error
		wantMessage string
	}{
		{
			name:        "api message surfaced",
			status:      http.StatusServiceUnavailable,
			body:        `{"error":{"code":"SERVICE_UNAVAILABLE","message":"catalog not loaded"}}`,
			wantKind:    domain.ErrUnavailable,
			wantMessage: "catalog not loaded",
		},
		{
			name:        "generic message",
			status:      http.StatusInternalServerError,
			wantKind:    domain.ErrUnavailable,
			wantMessage: DefaultErrorMessage,
		},
		{
			name:        "not found",
			status:      http.StatusNotFound,
			body:        `{"error":{"code":"NOT_FOUND","message":"route not found: /api/items"}}`,
			wantKind:    domain.ErrNotFound,
			wantMessage: "route not found: /api/items",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI(map[string]string{"/api/items": tt.body})
			api.status = tt.status

			_, err := newDevotionalClient(t, api).FetchAllItems(context.Background(), domain.QueryFilters{})

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantKind)
			assert.Equal(t, tt.wantMessage, err.Error())
		})
	}
}

func TestDevotionalClient_MalformedPayload(t *testing.T) {
	api := newFakeAPI(map[string]string{"/api/items": `{"not":"an array"}`})

	_, err := newDevotionalClient(t, api).FetchAllItems(context.Background(), domain.QueryFilters{})

	var unavailable *domain.UnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.Equal(t, ServiceName, unavailable.Service)
}

func TestNewDevotionalClient_RequiresClient(t *testing.T) {
	assert.Panics(t, func() {
		NewDevotionalClient(DevotionalClientConfig{})
	})
}
