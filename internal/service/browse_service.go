package service

import (
	"context"

	"github.com/ordatech/procost/internal/domain"
	"github.com/ordatech/procost/internal/repository"
)

type BrowseService struct {
	repo repository.BrowseRepository
}

func NewBrowseService(repo repository.BrowseRepository) *BrowseService {
	return &BrowseService{repo: repo}
}

// ListComponents returns a filtered page of components and the total count.
func (s *BrowseService) ListComponents(ctx context.Context, filter domain.ListFilter) ([]*domain.Component, int, error) {
	return s.repo.ListComponents(ctx, filter)
}

// ListSuppliers returns a filtered page of suppliers and the total count.
func (s *BrowseService) ListSuppliers(ctx context.Context, filter domain.ListFilter) ([]*domain.Supplier, int, error) {
	return s.repo.ListSuppliers(ctx, filter)
}

// GetPurchaseOrder returns one purchase order with its lines and cost
// entries, or nil when the id is unknown.
func (s *BrowseService) GetPurchaseOrder(ctx context.Context, poID int64) (*repository.PurchaseOrderDetail, error) {
	return s.repo.GetPurchaseOrder(ctx, poID)
}

// ListQuotesForComponent returns the quotes that mention a component.
func (s *BrowseService) ListQuotesForComponent(ctx context.Context, componentID int64) ([]*domain.PriceQuote, error) {
	return s.repo.ListQuotesForComponent(ctx, componentID)
}
