package repository

import (
	"context"
	"errors"
	"time"

	"github.com/pkaveh/loyalty-gateway/internal/model"
	"github.com/pkaveh/loyalty-gateway/pkg/pg"
	"gorm.io/gorm"
)

var (
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrDuplicateCustomer = errors.New("customer id already exists")
)

type CustomerRepository struct {
	*pg.DB
}

func NewCustomerRepository(db *pg.DB) *CustomerRepository {
	return &CustomerRepository{
		db,
	}
}

func (r *CustomerRepository) Create(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	entity := toCustomerEntity(c)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateCustomer
		}
		return nil, err
	}

	return toCustomerModel(entity), nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	var entity CustomerEntity

	err := r.Read(ctx).WithContext(ctx).
		Where("id = ?", id).
		First(&entity).
		Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	return toCustomerModel(&entity), nil
}

// List returns all customers, newest first.
func (r *CustomerRepository) List(ctx context.Context) ([]*model.Customer, error) {
	var entities []*CustomerEntity

	err := r.Read(ctx).WithContext(ctx).
		Order("created_at DESC").
		Find(&entities).
		Error

	if err != nil {
		return nil, err
	}

	return toCustomerModels(entities), nil
}

func (r *CustomerRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.Read(ctx).WithContext(ctx).
		Model(&CustomerEntity{}).
		Count(&total).
		Error
	return total, err
}

// IncrementRewards bumps the cumulative reward counter by one. The counter
// only ever moves through this method, so a relative SQL update is enough.
func (r *CustomerRepository) IncrementRewards(ctx context.Context, id string) error {
	result := r.Write(ctx).WithContext(ctx).
		Model(&CustomerEntity{}).
		Where("id = ?", id).
		Update("rewards", gorm.Expr("rewards + ?", 1))

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrCustomerNotFound
	}

	return nil
}

// Delete removes a customer; ledger entries and point transactions go with
// it through the ON DELETE CASCADE constraints.
func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	result := r.Write(ctx).WithContext(ctx).
		Where("id = ?", id).
		Delete(&CustomerEntity{})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrCustomerNotFound
	}

	return nil
}

// BulkDelete removes the given customers and reports how many existed.
func (r *CustomerRepository) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	result := r.Write(ctx).WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&CustomerEntity{})

	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

// CreatedSince returns creation timestamps of customers registered at or
// after the given time, oldest first. Used for the growth chart.
func (r *CustomerRepository) CreatedSince(ctx context.Context, since time.Time) ([]*model.Customer, error) {
	var entities []*CustomerEntity

	err := r.Read(ctx).WithContext(ctx).
		Where("created_at >= ?", since).
		Order("created_at ASC").
		Find(&entities).
		Error

	if err != nil {
		return nil, err
	}

	return toCustomerModels(entities), nil
}
