package telemetry

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/devotional-service/internal/platform/logging"
)

const (
	instrumentationName = "github.com/jsamuelsen/devotional-service/telemetry"

	// TraceIDHeader carries the trace id of the request span back to the caller.
	TraceIDHeader = "X-Trace-ID"
)

// Instruments holds the OpenTelemetry HTTP server instruments.
type Instruments struct {
	requestDuration metric.Float64Histogram
	activeRequests  metric.Int64UpDownCounter
}

// NewInstruments creates the HTTP server instruments on the global meter provider.
func NewInstruments() (*Instruments, error) {
	meter := otel.Meter(instrumentationName)

	requestDuration, err := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	activeRequests, err := meter.Int64UpDownCounter(
		"http.server.active_requests",
		metric.WithDescription("Number of active HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	return &Instruments{
		requestDuration: requestDuration,
		activeRequests:  activeRequests,
	}, nil
}

// Middleware returns the otelgin tracing middleware followed by a handler that
// records OpenTelemetry HTTP metrics, echoes the trace id in X-Trace-ID and
// adds it to the context logger.
func Middleware(serviceName string) []gin.HandlerFunc {
	instruments, err := NewInstruments()
	if err != nil {
		otel.Handle(err)
	}

	return []gin.HandlerFunc{
		otelgin.Middleware(serviceName),
		instruments.handler(),
	}
}

func (i *Instruments) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ctx := c.Request.Context()

		if i != nil {
			route := metric.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.route", c.FullPath()),
			)

			i.activeRequests.Add(ctx, 1, route)
			defer i.activeRequests.Add(ctx, -1, route)
		}

		if span := trace.SpanFromContext(ctx); span.SpanContext().HasTraceID() {
			traceID := span.SpanContext().TraceID().String()
			c.Header(TraceIDHeader, traceID)
			c.Request = c.Request.WithContext(logging.WithTraceID(ctx, traceID))
		}

		c.Next()

		if i != nil {
			i.requestDuration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.route", c.FullPath()),
				attribute.Int("http.status_code", c.Writer.Status()),
			))
		}
	}
}
