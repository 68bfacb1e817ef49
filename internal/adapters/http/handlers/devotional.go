package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/devotional-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/devotional-service/internal/domain"
	"github.com/jsamuelsen/devotional-service/internal/platform/telemetry"
	"github.com/jsamuelsen/devotional-service/internal/ports"
)

// ItemsObserver records how many items a query returned.
type ItemsObserver interface {
	ObserveItems(endpoint string, n int)
}

type noopObserver struct{}

func (noopObserver) ObserveItems(string, int) {}

// DevotionalHandler serves the read-only devotional API under /api.
type DevotionalHandler struct {
	catalog  ports.CatalogQuery
	observer ItemsObserver
}

// NewDevotionalHandler creates the handler. observer may be nil.
func NewDevotionalHandler(catalog ports.CatalogQuery, observer ItemsObserver) *DevotionalHandler {
	if observer == nil {
		observer = noopObserver{}
	}

	return &DevotionalHandler{catalog: catalog, observer: observer}
}

// ListCollection returns a handler for GET /api/{name}.
//
// @Summary List one collection
// @Tags devotional
// @Produce json
// @Param deity query string false "Deity tag, case-insensitive"
// @Param category query string false "Category, case-insensitive"
// @Param search query string false "Substring of title, author or content"
// @Param limit query string false "Positive integer; anything else is ignored"
// @Success 200 {array} dto.ItemResponse
// @Failure 500 {object} dto.ErrorResponse
func (h *DevotionalHandler) ListCollection(name domain.CollectionName) gin.HandlerFunc {
	endpoint := string(name)

	return func(c *gin.Context) {
		filters := dto.FiltersFromQuery(c)

		ctx, span := startQuerySpan(c.Request.Context(), "catalog.list", endpoint, filters)
		items, err := h.catalog.List(ctx, name, filters)
		telemetry.EndSpan(span, err)

		if err != nil {
			dto.HandleError(c, err)
			return
		}

		h.observer.ObserveItems(endpoint, len(items))
		c.JSON(http.StatusOK, dto.NewItemsResponse(items))
	}
}

// ListItems handles GET /api/items: the filtered union of aarti, chalisa and
// strotam, in that order.
func (h *DevotionalHandler) ListItems(c *gin.Context) {
	filters := dto.FiltersFromQuery(c)

	ctx, span := startQuerySpan(c.Request.Context(), "catalog.list_all", "items", filters)
	items, err := h.catalog.ListAll(ctx, filters)
	telemetry.EndSpan(span, err)

	if err != nil {
		dto.HandleError(c, err)
		return
	}

	h.observer.ObserveItems("items", len(items))
	c.JSON(http.StatusOK, dto.NewItemsResponse(items))
}

// ListCollections handles GET /api/collections. Filters, limit included,
// apply to each collection on its own.
func (h *DevotionalHandler) ListCollections(c *gin.Context) {
	filters := dto.FiltersFromQuery(c)

	ctx, span := startQuerySpan(c.Request.Context(), "catalog.collections", "collections", filters)
	collections, err := h.catalog.Collections(ctx, filters)
	telemetry.EndSpan(span, err)

	if err != nil {
		dto.HandleError(c, err)
		return
	}

	h.observer.ObserveItems("collections", collections.Len())
	c.JSON(http.StatusOK, dto.NewCollectionsResponse(collections))
}

// ListDeities handles GET /api/deities.
func (h *DevotionalHandler) ListDeities(c *gin.Context) {
	counts, err := h.catalog.Deities(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDeitiesResponse(counts))
}

// Classify handles GET /api/classify?title=...&author=...
func (h *DevotionalHandler) Classify(c *gin.Context) {
	var req dto.ClassifyRequest
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		if fields := dto.ValidationErrors(err); len(fields) > 0 {
			dto.AbortWithValidation(c, fields)
			return
		}

		dto.AbortWithCode(c, dto.ErrorCodeBadRequest, "invalid query")

		return
	}

	c.JSON(http.StatusOK, dto.NewClassifyResponse(domain.Classify(req.Title, req.Author)))
}

// RegisterRoutes registers the devotional routes on rg, which is mounted at /api.
func (h *DevotionalHandler) RegisterRoutes(rg *gin.RouterGroup) {
	for _, name := range domain.CollectionNames() {
		rg.GET("/"+string(name), h.ListCollection(name))
	}

	rg.GET("/collections", h.ListCollections)
	rg.GET("/items", h.ListItems)
	rg.GET("/deities", h.ListDeities)
	rg.GET("/classify", h.Classify)
}

func startQuerySpan(
	ctx context.Context,
	name, endpoint string,
	f domain.QueryFilters,
) (context.Context, trace.Span) {
	return telemetry.StartSpan(ctx, name,
		attribute.String("devotional.endpoint", endpoint),
		attribute.String("devotional.filter.deity", f.Deity),
		attribute.String("devotional.filter.category", f.Category),
		attribute.Bool("devotional.filter.search", f.Search != ""),
		attribute.Int("devotional.filter.limit", f.Limit),
	)
}
