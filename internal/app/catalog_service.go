// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/jsamuelsen/devotional-service/internal/domain"
	"github.com/jsamuelsen/devotional-service/internal/platform/logging"
	"github.com/jsamuelsen/devotional-service/internal/ports"
)

// ErrCatalogLoaded is returned when Load is called more than once.
var ErrCatalogLoaded = errors.New("catalog already loaded")

const catalogCheckName = "catalog"

// CatalogService answers devotional queries against the in-memory collections.
//
// The collections are read once by Load at startup and never change afterwards,
// so queries run without locks. Queries before Load report domain.ErrUnavailable.
type CatalogService struct {
	source      ports.ItemSource
	logger      *slog.Logger
	collections atomic.Pointer[domain.Collections]
}

var (
	_ ports.CatalogQuery  = (*CatalogService)(nil)
	_ ports.HealthChecker = (*CatalogService)(nil)
)

// CatalogServiceConfig contains the dependencies of the catalog service.
type CatalogServiceConfig struct {
	Source ports.ItemSource
	Logger *slog.Logger
}

// NewCatalogService creates a catalog service. It panics without a source.
func NewCatalogService(cfg CatalogServiceConfig) *CatalogService {
	if cfg.Source == nil {
		panic("app: CatalogService requires an item source")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &CatalogService{
		source: cfg.Source,
		logger: logger.With(slog.String("component", "app.CatalogService")),
	}
}

// Load reads the three collections concurrently and publishes them.
// It must be called exactly once, before the service starts answering queries.
func (s *CatalogService) Load(ctx context.Context) error {
	if s.collections.Load() != nil {
		return ErrCatalogLoaded
	}

	loaded, err := loadCollections(ctx, s.source)
	if err != nil {
		return fmt.Errorf("loading catalog from %s: %w", s.source.Describe(), err)
	}

	if !s.collections.CompareAndSwap(nil, loaded) {
		return ErrCatalogLoaded
	}

	s.logger.InfoContext(ctx, "catalog loaded",
		slog.String("source", s.source.Describe()),
		slog.Int("aarti", len(loaded.Aarti)),
		slog.Int("chalisa", len(loaded.Chalisa)),
		slog.Int("strotam", len(loaded.Strotam)),
	)

	return nil
}

// List returns the filtered items of one collection.
func (s *CatalogService) List(
	ctx context.Context,
	name domain.CollectionName,
	filters domain.QueryFilters,
) ([]domain.DevotionalItem, error) {
	c, err := s.query(ctx)
	if err != nil {
		return nil, err
	}

	items := filters.Apply(c.Get(name))

	logging.FromContext(ctx).DebugContext(ctx, "listed collection",
		slog.String("collection", string(name)),
		slog.Int("count", len(items)),
	)

	return items, nil
}

// ListAll returns the filtered union of aarti, chalisa and strotam, in that order.
func (s *CatalogService) ListAll(ctx context.Context, filters domain.QueryFilters) ([]domain.DevotionalItem, error) {
	c, err := s.query(ctx)
	if err != nil {
		return nil, err
	}

	items := filters.Apply(c.All())

	logging.FromContext(ctx).DebugContext(ctx, "listed all items", slog.Int("count", len(items)))

	return items, nil
}

// Collections applies filters to each collection independently.
func (s *CatalogService) Collections(ctx context.Context, filters domain.QueryFilters) (domain.Collections, error) {
	c, err := s.query(ctx)
	if err != nil {
		return domain.Collections{}, err
	}

	return domain.Collections{
		Aarti:   filters.Apply(c.Aarti),
		Chalisa: filters.Apply(c.Chalisa),
		Strotam: filters.Apply(c.Strotam),
	}, nil
}

// Deities returns the item count of every deity tag across all collections.
func (s *CatalogService) Deities(ctx context.Context) ([]domain.DeityCount, error) {
	c, err := s.query(ctx)
	if err != nil {
		return nil, err
	}

	return domain.CountByDeity(c.All()), nil
}

// Name implements ports.HealthChecker.
func (s *CatalogService) Name() string {
	return catalogCheckName
}

// Check implements ports.HealthChecker. The catalog is healthy once loaded.
func (s *CatalogService) Check(_ context.Context) error {
	_, err := s.loaded()
	return err
}

// query returns the loaded collections unless ctx is already done, so a
// request past its deadline fails with context.DeadlineExceeded.
func (s *CatalogService) query(ctx context.Context) (*domain.Collections, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return s.loaded()
}

func (s *CatalogService) loaded() (*domain.Collections, error) {
	c := s.collections.Load()
	if c == nil {
		return nil, domain.NewUnavailableError(catalogCheckName, "not loaded")
	}

	return c, nil
}
