package warehouses

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListActive(ctx context.Context) ([]Warehouse, error) {
	return s.repo.ListActive(ctx)
}
