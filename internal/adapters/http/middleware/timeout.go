package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/devotional-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/devotional-service/internal/platform/logging"
)

// Timeout sets a deadline on the request context. Catalog queries check it
// before filtering and the handler answers 504 through dto.HandleError. A
// handler that returns after the deadline without writing a response gets
// the same 504 envelope here.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if !errors.Is(ctx.Err(), context.DeadlineExceeded) || c.Writer.Written() {
			return
		}

		logging.FromContext(ctx).WarnContext(ctx, "request timeout",
			slog.String("path", c.Request.URL.Path),
			slog.String("method", c.Request.Method),
			slog.Duration("timeout", timeout),
		)

		dto.AbortWithCode(c, dto.ErrorCodeTimeout, dto.TimeoutMessage)
	}
}
