package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/devotional-service/internal/platform/logging"
)

const (
	// HeaderCorrelationID is the header name for correlation ID. It follows a
	// whole client transaction across services, while the request id names a
	// single hop.
	HeaderCorrelationID = "X-Correlation-ID"

	// ContextKeyCorrelationID is the gin context key for the correlation ID.
	ContextKeyCorrelationID = "correlation_id"
)

// CorrelationID returns middleware that propagates X-Correlation-ID. A
// request without one starts a new transaction whose correlation id is the
// request id, when RequestID ran first, or a fresh UUID.
func CorrelationID() gin.HandlerFunc {
	return createIDMiddleware(idMiddlewareConfig{
		headerName: HeaderCorrelationID,
		contextKey: ContextKeyCorrelationID,
		fallback:   GetRequestID,
		enrichers:  []idEnricher{ContextWithCorrelationID, logging.WithCorrelationID},
	})
}

// GetCorrelationID extracts the correlation ID from the gin.Context.
// Returns empty string if not set.
func GetCorrelationID(c *gin.Context) string {
	return getIDFromContext(c, ContextKeyCorrelationID)
}
