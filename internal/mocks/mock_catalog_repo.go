package mocks

import (
	"context"

	"github.com/metinatakli/cinex-booking/internal/domain"
)

type MockCatalogRepo struct {
	domain.CatalogRepository
	GetByIdFunc func(ctx context.Context, id int) (*domain.CatalogItem, error)
}

func (m *MockCatalogRepo) GetById(ctx context.Context, id int) (*domain.CatalogItem, error) {
	return m.GetByIdFunc(ctx, id)
}
