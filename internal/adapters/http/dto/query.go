package dto

import (
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/devotional-service/internal/domain"
)

// Query parameter names shared by every list endpoint.
const (
	ParamDeity    = "deity"
	ParamCategory = "category"
	ParamSearch   = "search"
	ParamLimit    = "limit"
)

// FiltersFromQuery reads the list filters from the query string. Only the
// first occurrence of a repeated parameter counts, unknown parameters are
// ignored, and a malformed limit is dropped rather than rejected.
func FiltersFromQuery(c *gin.Context) domain.QueryFilters {
	return domain.NewQueryFilters(
		c.Query(ParamDeity),
		c.Query(ParamCategory),
		c.Query(ParamSearch),
		c.Query(ParamLimit),
	)
}

// ClassifyRequest is the query of GET /api/classify.
type ClassifyRequest struct {
	Title  string `form:"title"  validate:"required,notblank,max=512"`
	Author string `form:"author" validate:"max=256"`
}
