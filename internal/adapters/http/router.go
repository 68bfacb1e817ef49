package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/devotional-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/devotional-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/devotional-service/internal/platform/config"
	"github.com/jsamuelsen/devotional-service/internal/platform/metrics"
	"github.com/jsamuelsen/devotional-service/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default deadline of an /api request.
const DefaultRequestTimeout = 10 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger becomes the request-scoped logger of every request.
	Logger *slog.Logger

	// ServiceName names the service in traces.
	ServiceName string

	// CORS configures cross-origin access to /api.
	CORS config.CORSConfig

	// HealthHandler serves /-/ and /api/health. Optional.
	HealthHandler *handlers.HealthHandler

	// DevotionalHandler serves the devotional API. Optional.
	DevotionalHandler *handlers.DevotionalHandler

	// Metrics records Prometheus request metrics. Optional.
	Metrics *metrics.Metrics

	// Timeout is the deadline of /api requests. Zero disables it.
	Timeout time.Duration
}

// SetupRouter installs the middleware chain and every route on engine.
// Middleware runs in this order:
//  1. Context logger, so everything below logs through it
//  2. Recovery
//  3. Request ID, then correlation ID
//  4. OpenTelemetry tracing and metrics
//  5. Prometheus metrics
//  6. CORS
//  7. Request logging (skips /-/)
//
// Routes:
//   - /-/live, /-/ready, /-/build, /-/metrics
//   - /api/{aarti,chalisa,strotam,collections,items,deities,classify,health}
//
// Unknown paths get a 404 envelope and wrong methods a 405 envelope.
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	engine.Use(
		middleware.ContextLogger(logger),
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)
	engine.Use(telemetry.Middleware(cfg.ServiceName)...)

	if cfg.Metrics != nil {
		engine.Use(cfg.Metrics.Middleware())
	}

	engine.Use(
		middleware.CORS(cfg.CORS),
		middleware.Logging(),
	)

	engine.HandleMethodNotAllowed = true
	engine.NoRoute(routeNotFound)
	engine.NoMethod(methodNotAllowed)

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	api := engine.Group("/api")
	if cfg.Timeout > 0 {
		api.Use(middleware.Timeout(cfg.Timeout))
	}

	if cfg.HealthHandler != nil {
		api.GET("/health", cfg.HealthHandler.Status)
	}

	if cfg.DevotionalHandler != nil {
		cfg.DevotionalHandler.RegisterRoutes(api)
	}
}
