package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen/devotional-service/internal/domain"
	"github.com/jsamuelsen/devotional-service/internal/ports"
)

// loadCollections reads every collection from src concurrently. The first
// failure cancels the reads still in flight. Results are indexed in
// domain.CollectionNames order: aarti, chalisa, strotam.
func loadCollections(ctx context.Context, src ports.ItemSource) (*domain.Collections, error) {
	names := domain.CollectionNames()
	loaded := make([][]domain.DevotionalItem, len(names))

	g, ctx := errgroup.WithContext(ctx)

	for i, name := range names {
		g.Go(func() error {
			items, err := src.LoadCollection(ctx, name)
			if err != nil {
				return fmt.Errorf("loading %s: %w", name, err)
			}

			loaded[i] = items

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.Collections{
		Aarti:   loaded[0],
		Chalisa: loaded[1],
		Strotam: loaded[2],
	}, nil
}
