package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(m *Metrics) *gin.Engine {
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/:type", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	return r
}

func TestMiddleware_LabelsByRouteTemplate(t *testing.T) {
	m := New("test")
	r := newEngine(m)

	for _, path := range []string{"/api/aarti", "/api/chalisa"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, http.NoBody))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	assert.InDelta(t, 2, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/api/:type", "200")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.requestDuration))
}

func TestMiddleware_StatusAndUnmatched(t *testing.T) {
	m := New("test")
	r := newEngine(m)

	tests := []struct {
		path   string
		label  string
		status string
	}{
		{"/boom", "/boom", "500"},
		{"/nowhere", unmatchedRoute, "404"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, http.NoBody))

			assert.InDelta(t, 1, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", tt.label, tt.status)), 0)
		})
	}
}

func TestObserveItemsAndCollectionSize(t *testing.T) {
	m := New("test")

	m.ObserveItems("items", 3)
	m.ObserveItems("items", 0)
	m.SetCollectionSize("aarti", 6)

	assert.Equal(t, 1, testutil.CollectAndCount(m.itemsReturned))
	assert.InDelta(t, 6, testutil.ToFloat64(m.collectionSize.WithLabelValues("aarti")), 0)
}

func TestHandler_ExposesRegistry(t *testing.T) {
	m := New("devotional")
	m.SetCollectionSize("chalisa", 5)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/-/metrics", http.NoBody))

	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `devotional_catalog_items{collection="chalisa"} 5`))
	assert.Contains(t, string(body), "go_goroutines")
}

func TestNew_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		_ = New("test")
		_ = New("test")
	})
}
