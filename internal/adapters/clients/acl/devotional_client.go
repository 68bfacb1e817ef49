package acl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jsamuelsen/devotional-service/internal/adapters/clients"
	"github.com/jsamuelsen/devotional-service/internal/domain"
	"github.com/jsamuelsen/devotional-service/internal/platform/logging"
	"github.com/jsamuelsen/devotional-service/internal/ports"
)

// ServiceName identifies the devotional API in errors, logs and health checks.
const ServiceName = "devotional-api"

var (
	_ ports.DevotionalAPI = (*DevotionalClient)(nil)
	_ ports.HealthChecker = (*DevotionalClient)(nil)
)

// DevotionalClientConfig contains the dependencies of a DevotionalClient.
type DevotionalClientConfig struct {
	// Client must have its base URL pointing at the API root, e.g.
	// "http://localhost:4000/api".
	Client *clients.Client

	Logger *slog.Logger
}

// DevotionalClient is the typed client of the devotional API.
type DevotionalClient struct {
	client *clients.Client
	logger *slog.Logger
}

// NewDevotionalClient creates a DevotionalClient. It panics without a Client.
func NewDevotionalClient(cfg DevotionalClientConfig) *DevotionalClient {
	if cfg.Client == nil {
		panic("DevotionalClient: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &DevotionalClient{
		client: cfg.Client,
		logger: logger.With(slog.String("component", "acl.DevotionalClient")),
	}
}

// FetchCollections calls GET /collections.
func (c *DevotionalClient) FetchCollections(ctx context.Context, filters domain.QueryFilters) (domain.Collections, error) {
	body, err := c.get(ctx, "/collections", filtersQuery(filters), "fetch collections")
	if err != nil {
		return domain.Collections{}, err
	}

	wire, err := DecodeResponse[collectionsWire](body)
	if err != nil {
		return domain.Collections{}, domain.NewUnavailableError(ServiceName, err.Error())
	}

	return translateCollections(&wire)
}

// FetchItemsByType calls GET /{name}.
func (c *DevotionalClient) FetchItemsByType(
	ctx context.Context,
	name domain.CollectionName,
	filters domain.QueryFilters,
) ([]domain.DevotionalItem, error) {
	if _, err := domain.ParseCollectionName(string(name)); err != nil {
		return nil, err
	}

	return c.fetchItems(ctx, "/"+string(name), filters, "fetch "+string(name))
}

// FetchAllItems calls GET /items.
func (c *DevotionalClient) FetchAllItems(ctx context.Context, filters domain.QueryFilters) ([]domain.DevotionalItem, error) {
	return c.fetchItems(ctx, "/items", filters, "fetch items")
}

// FetchDeities calls GET /deities.
func (c *DevotionalClient) FetchDeities(ctx context.Context) ([]domain.DeityCount, error) {
	body, err := c.get(ctx, "/deities", nil, "fetch deities")
	if err != nil {
		return nil, err
	}

	wire, err := DecodeResponse[[]deityWire](body)
	if err != nil {
		return nil, domain.NewUnavailableError(ServiceName, err.Error())
	}

	return TranslateSlice(wire, translateDeity)
}

// Health calls GET /health and expects {"status":"ok"}.
func (c *DevotionalClient) Health(ctx context.Context) error {
	body, err := c.get(ctx, "/health", nil, "health check")
	if err != nil {
		return err
	}

	wire, err := DecodeResponse[statusWire](body)
	if err != nil {
		return domain.NewUnavailableError(ServiceName, err.Error())
	}

	if wire.Status != "ok" {
		return domain.NewUnavailableError(ServiceName, fmt.Sprintf("reported status %q", wire.Status))
	}

	return nil
}

// Name implements ports.HealthChecker.
func (c *DevotionalClient) Name() string {
	return ServiceName
}

// Check implements ports.HealthChecker.
func (c *DevotionalClient) Check(ctx context.Context) error {
	return c.Health(ctx)
}

func (c *DevotionalClient) fetchItems(
	ctx context.Context,
	path string,
	filters domain.QueryFilters,
	operation string,
) ([]domain.DevotionalItem, error) {
	body, err := c.get(ctx, path, filtersQuery(filters), operation)
	if err != nil {
		return nil, err
	}

	wire, err := DecodeResponse[[]itemWire](body)
	if err != nil {
		return nil, domain.NewUnavailableError(ServiceName, err.Error())
	}

	items, err := translateItems(wire)
	if err != nil {
		return nil, err
	}

	c.logger.Log(ctx, logging.LevelTrace, "translated items",
		slog.String("path", path),
		slog.Int("count", len(items)))

	return items, nil
}

// get performs the request and returns the body of a 2xx response. Every
// failure is already a domain error.
func (c *DevotionalClient) get(ctx context.Context, path string, query url.Values, operation string) (io.ReadCloser, error) {
	c.logger.Log(ctx, logging.LevelTrace, "starting request", slog.String("path", path))

	resp, err := c.client.Get(ctx, path, query)
	if err != nil {
		return nil, MapHTTPError(nil, err, ServiceName, operation)
	}

	c.logger.Log(ctx, logging.LevelTrace, "request complete",
		slog.String("path", path),
		slog.Int("status", resp.StatusCode))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		defer func() { _ = resp.Body.Close() }()

		mapped := MapHTTPError(resp, nil, ServiceName, operation)
		c.logger.WarnContext(ctx, "devotional API error",
			slog.String("operation", operation),
			slog.Int("status", resp.StatusCode),
			slog.Any("error", mapped))

		return nil, mapped
	}

	return resp.Body, nil
}

// filtersQuery encodes only the filters that are set.
func filtersQuery(f domain.QueryFilters) url.Values {
	q := url.Values{}

	if f.Deity != "" {
		q.Set("deity", f.Deity)
	}

	if f.Category != "" {
		q.Set("category", f.Category)
	}

	if f.Search != "" {
		q.Set("search", f.Search)
	}

	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}

	return q
}
