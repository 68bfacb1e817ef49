package middleware

import (
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/devotional-service/internal/platform/config"
	"github.com/jsamuelsen/devotional-service/internal/platform/telemetry"
)

// exposedHeaders lets browser clients read the ids and trace id we echo.
var exposedHeaders = []string{HeaderRequestID, HeaderCorrelationID, telemetry.TraceIDHeader}

// CORS returns the cross-origin middleware for the public API. A "*" origin
// allows every origin without credentials.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	c := cors.Config{
		AllowMethods:  cfg.AllowMethods,
		AllowHeaders:  cfg.AllowHeaders,
		ExposeHeaders: exposedHeaders,
		MaxAge:        cfg.MaxAge,
	}

	if slices.Contains(cfg.AllowOrigins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.AllowOrigins
	}

	return cors.New(c)
}
