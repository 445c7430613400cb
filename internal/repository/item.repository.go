package repository

import (
	"context"
	"errors"

	"github.com/pkaveh/loyalty-gateway/internal/model"
	"github.com/pkaveh/loyalty-gateway/pkg/pg"
	"gorm.io/gorm"
)

var (
	// ErrItemNotFound covers both a missing row and an inactive item when
	// the lookup is restricted to active ones.
	ErrItemNotFound = errors.New("item not found")
)

type ItemRepository struct {
	*pg.DB
}

func NewItemRepository(db *pg.DB) *ItemRepository {
	return &ItemRepository{
		db,
	}
}

func (r *ItemRepository) Create(ctx context.Context, item *model.Item) (*model.Item, error) {
	entity := toItemEntity(item)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toItemModel(entity), nil
}

func (r *ItemRepository) Update(ctx context.Context, item *model.Item) (*model.Item, error) {
	entity := toItemEntity(item)

	result := r.Write(ctx).WithContext(ctx).
		Model(&ItemEntity{}).
		Where("id = ?", entity.ID).
		Select("name", "description", "points_value", "price", "is_active").
		Updates(entity)

	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, ErrItemNotFound
	}

	return toItemModel(entity), nil
}

// Delete removes an item from the catalog. Historical transactions keep
// their item_id; deactivation is the usual path, deletion is for mistakes.
func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	result := r.Write(ctx).WithContext(ctx).
		Where("id = ?", id).
		Delete(&ItemEntity{})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}

	return nil
}

func (r *ItemRepository) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	var entity ItemEntity

	err := r.Read(ctx).WithContext(ctx).
		Where("id = ?", id).
		First(&entity).
		Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	return toItemModel(&entity), nil
}

// GetActive looks an item up for purchase: the row must exist and be
// active, anything else is a not-found to the caller.
func (r *ItemRepository) GetActive(ctx context.Context, id int64) (*model.Item, error) {
	var entity ItemEntity

	err := r.Read(ctx).WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&entity).
		Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	return toItemModel(&entity), nil
}

// List returns catalog items ordered by name. With activeOnly set it
// serves the purchase selection; otherwise the admin catalog view.
func (r *ItemRepository) List(ctx context.Context, activeOnly bool) ([]*model.Item, error) {
	q := r.Read(ctx).WithContext(ctx).Model(&ItemEntity{})

	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var entities []*ItemEntity
	if err := q.Order("name ASC").Find(&entities).Error; err != nil {
		return nil, err
	}

	return toItemModels(entities), nil
}
