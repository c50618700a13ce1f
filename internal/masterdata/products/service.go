package products

import (
	"context"
	"fmt"
	"strings"

	"github.com/wareflow/wareflow/internal/platform/httpx"
)

// CacheInvalidator drops derived read-model caches after a write.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

type Service struct {
	repo  Repository
	inval CacheInvalidator
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// WithCacheInvalidator makes catalog writes bump the given cache.
func (s *Service) WithCacheInvalidator(inval CacheInvalidator) *Service {
	s.inval = inval
	return s
}

func (s *Service) ListActive(ctx context.Context) ([]ProductWithStock, error) {
	return s.repo.ListActive(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Product, error) {
	if id <= 0 {
		return Product{}, ErrProductNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, product Product) (Product, error) {
	if err := s.validate(product); err != nil {
		return Product{}, err
	}
	if strings.TrimSpace(product.SKU) == "" {
		return Product{}, fmt.Errorf("%w: sku is required", httpx.ErrValidation)
	}
	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return Product{}, err
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, product Product) (Product, error) {
	if id <= 0 {
		return Product{}, ErrProductNotFound
	}
	if err := s.validate(product); err != nil {
		return Product{}, err
	}
	updated, err := s.repo.Update(ctx, id, product)
	if err != nil {
		return Product{}, err
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrProductNotFound
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.inval != nil {
		_ = s.inval.Invalidate(ctx)
	}
}

func (s *Service) validate(p Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name is required", httpx.ErrValidation)
	}
	if p.UnitPrice < 0 || p.UnitCost < 0 {
		return fmt.Errorf("%w: prices must not be negative", httpx.ErrValidation)
	}
	if p.ReorderLevel < 0 || p.ReorderQuantity < 0 {
		return fmt.Errorf("%w: reorder thresholds must not be negative", httpx.ErrValidation)
	}
	return nil
}
