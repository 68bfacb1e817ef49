package http

import (
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/devotional-service/internal/adapters/http/dto"
)

// routeNotFound answers requests that match no route, including unknown
// collection names such as /api/bhajan.
func routeNotFound(c *gin.Context) {
	dto.AbortWithCode(c, dto.ErrorCodeNotFound, "route not found: "+c.Request.URL.Path)
}

// methodNotAllowed answers requests whose path exists under another method.
// The API is read-only.
func methodNotAllowed(c *gin.Context) {
	dto.AbortWithCode(c, dto.ErrorCodeMethodNotAllowed, "method "+c.Request.Method+" not allowed")
}
