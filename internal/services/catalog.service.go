package services

import (
	"context"
	"errors"

	"github.com/pkaveh/loyalty-gateway/internal/model"
	"github.com/pkaveh/loyalty-gateway/internal/repository"
)

type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) (*model.Item, error)
	Update(ctx context.Context, item *model.Item) (*model.Item, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, activeOnly bool) ([]*model.Item, error)
}

// CatalogService manages the item catalog. Items feed the accrual engine
// read-only; deactivating one hides it from purchase selection while
// keeping historical transactions resolvable.
type CatalogService struct {
	itemRepo ItemRepository
}

func NewCatalogService(itemRepo ItemRepository) *CatalogService {
	return &CatalogService{
		itemRepo: itemRepo,
	}
}

func (s *CatalogService) Create(ctx context.Context, p model.ItemUpsertRequest) (*model.Item, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	item := &model.Item{
		Name:        p.Name,
		Description: p.Description,
		PointsValue: p.PointsValue,
		Price:       p.Price,
		IsActive:    p.IsActive,
	}

	return s.itemRepo.Create(ctx, item)
}

func (s *CatalogService) Update(ctx context.Context, id int64, p model.ItemUpsertRequest) (*model.Item, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	item := &model.Item{
		ID:          id,
		Name:        p.Name,
		Description: p.Description,
		PointsValue: p.PointsValue,
		Price:       p.Price,
		IsActive:    p.IsActive,
	}

	updated, err := s.itemRepo.Update(ctx, item)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	return updated, nil
}

func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	err := s.itemRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrItemNotFound) {
		return ErrItemNotFound
	}
	return err
}

// ListActive serves the staff purchase selection.
func (s *CatalogService) ListActive(ctx context.Context) ([]*model.Item, error) {
	return s.itemRepo.List(ctx, true)
}

// ListAll serves the admin catalog view, inactive items included.
func (s *CatalogService) ListAll(ctx context.Context) ([]*model.Item, error) {
	return s.itemRepo.List(ctx, false)
}
