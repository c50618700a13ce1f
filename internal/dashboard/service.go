package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Stats is the payload served to the dashboard. Field names follow the
// client contract.
type Stats struct {
	TotalProducts int64   `json:"totalProducts"`
	OrdersToday   int64   `json:"ordersToday"`
	LowStockItems int64   `json:"lowStockItems"`
	TotalValue    float64 `json:"totalValue"`
}

// Service coordinates the aggregate queries with the cache layer.
type Service struct {
	repo  Repository
	cache *Cache
}

func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// GetStats returns the dashboard counters, served from cache when warm.
// The four aggregates are independent, so cache misses fan out in parallel.
func (s *Service) GetStats(ctx context.Context) (Stats, error) {
	key, err := s.cache.BuildKey(ctx, keyStats())
	if err != nil {
		return Stats{}, err
	}
	var stats Stats
	err = s.cache.FetchJSON(ctx, key, &stats, func(ctx context.Context) (interface{}, error) {
		return s.loadStats(ctx)
	})
	return stats, err
}

func (s *Service) loadStats(ctx context.Context) (Stats, error) {
	var stats Stats
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.repo.CountActiveProducts(ctx)
		stats.TotalProducts = n
		return err
	})
	g.Go(func() error {
		n, err := s.repo.CountOrdersToday(ctx)
		stats.OrdersToday = n
		return err
	})
	g.Go(func() error {
		n, err := s.repo.CountLowStockItems(ctx)
		stats.LowStockItems = n
		return err
	})
	g.Go(func() error {
		v, err := s.repo.TotalInventoryValue(ctx)
		stats.TotalValue = v
		return err
	})
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

// Invalidate drops cached stats after a write elsewhere in the system.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Bump(ctx)
}
