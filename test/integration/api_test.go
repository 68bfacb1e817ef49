//go:build integration

package integration

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/devotional-service/internal/adapters/catalog"
	apihttp "github.com/jsamuelsen/devotional-service/internal/adapters/http"
	"github.com/jsamuelsen/devotional-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/devotional-service/internal/app"
	"github.com/jsamuelsen/devotional-service/internal/platform/config"
	"github.com/jsamuelsen/devotional-service/internal/platform/metrics"
	"github.com/jsamuelsen/devotional-service/internal/ports"
)

// serviceURL returns BASE_URL when set. Otherwise it starts the full router
// over the embedded datasets in-process and returns its URL.
func serviceURL(t *testing.T) string {
	t.Helper()

	if base := strings.TrimSuffix(os.Getenv("BASE_URL"), "/"); base != "" {
		return base
	}

	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := app.NewCatalogService(app.CatalogServiceConfig{Source: catalog.NewEmbeddedSource(), Logger: logger})
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("loading catalog: %v", err)
	}

	registry := ports.NewHealthRegistry()
	if err := registry.Register(svc); err != nil {
		t.Fatalf("registering health check: %v", err)
	}

	m := metrics.New("devotional")

	engine := gin.New()
	apihttp.SetupRouter(engine, apihttp.RouterConfig{
		Logger:      logger,
		ServiceName: "devotional-integration",
		CORS: config.CORSConfig{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "HEAD", "OPTIONS"},
		},
		HealthHandler:     handlers.NewHealthHandler(registry, handlers.NewBuildInfo("test", "test", "test"), m.Handler()),
		DevotionalHandler: handlers.NewDevotionalHandler(svc, m),
		Metrics:           m,
		Timeout:           apihttp.DefaultRequestTimeout,
	})

	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)

	return server.URL
}
