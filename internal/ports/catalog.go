// Package ports defines the contracts the application layer depends on.
// Adapters implement them; the app package never imports an adapter.
package ports

import (
	"context"

	"github.com/jsamuelsen/devotional-service/internal/domain"
)

// ItemSource supplies the raw records of a devotional collection.
//
// Implementations return items in source order. A collection that has no
// dataset yields an empty slice, not an error.
type ItemSource interface {
	// LoadCollection reads every item of the named collection.
	// Returns domain.ErrValidation when a record is malformed.
	LoadCollection(ctx context.Context, name domain.CollectionName) ([]domain.DevotionalItem, error)

	// Describe names the source for logs, e.g. "embedded" or a directory path.
	Describe() string
}

// DevotionalAPI is the consumer-side contract of the devotional HTTP API.
// It is implemented by the outbound client and used by the CLI.
type DevotionalAPI interface {
	// FetchCollections returns the three collections, each filtered independently.
	FetchCollections(ctx context.Context, filters domain.QueryFilters) (domain.Collections, error)

	// FetchItemsByType returns the filtered items of one collection.
	FetchItemsByType(ctx context.Context, name domain.CollectionName, filters domain.QueryFilters) ([]domain.DevotionalItem, error)

	// FetchAllItems returns the filtered union of all collections.
	FetchAllItems(ctx context.Context, filters domain.QueryFilters) ([]domain.DevotionalItem, error)

	// FetchDeities returns item counts per deity tag.
	FetchDeities(ctx context.Context) ([]domain.DeityCount, error)
}

// CatalogQuery answers devotional queries against the loaded collections.
// It is implemented by app.CatalogService and consumed by the HTTP handlers.
type CatalogQuery interface {
	List(ctx context.Context, name domain.CollectionName, filters domain.QueryFilters) ([]domain.DevotionalItem, error)
	ListAll(ctx context.Context, filters domain.QueryFilters) ([]domain.DevotionalItem, error)
	Collections(ctx context.Context, filters domain.QueryFilters) (domain.Collections, error)
	Deities(ctx context.Context) ([]domain.DeityCount, error)
}
