package repository

import (
	"context"
	"time"

	"github.com/pkaveh/loyalty-gateway/internal/model"
	"github.com/pkaveh/loyalty-gateway/pkg/pg"
)

type TransactionRepository struct {
	*pg.DB
}

func NewTransactionRepository(db *pg.DB) *TransactionRepository {
	return &TransactionRepository{
		db,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, txn *model.PointTransaction) (*model.PointTransaction, error) {
	entity := toTransactionEntity(txn)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toTransactionModel(entity), nil
}

func (r *TransactionRepository) List(ctx context.Context, f model.TransactionFilter) ([]*model.PointTransaction, int64, error) {
	q := r.Read(ctx).WithContext(ctx).Model(&TransactionEntity{})

	if f.CustomerID != nil {
		q = q.Where("customer_id = ?", *f.CustomerID)
	}
	if f.ItemID != nil {
		q = q.Where("item_id = ?", *f.ItemID)
	}
	if f.RewardOnly {
		q = q.Where("reward_earned = ?", true)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}

	// Count before pagination
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at"
	if f.Desc {
		order += " DESC"
	} else {
		order += " ASC"
	}

	limit := f.Limit
	if limit <= 0 || limit > 1000 {
		limit = 50
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	var entities []*TransactionEntity
	if err := q.Order(order).Limit(limit).Offset(offset).Find(&entities).Error; err != nil {
		return nil, 0, err
	}

	return toTransactionModels(entities), total, nil
}

func (r *TransactionRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.Read(ctx).WithContext(ctx).
		Model(&TransactionEntity{}).
		Count(&total).
		Error
	return total, err
}

// TopItems returns item names ranked by how often they were purchased.
func (r *TransactionRepository) TopItems(ctx context.Context, limit int) ([]*model.ItemCount, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows []*model.ItemCount
	err := r.Read(ctx).WithContext(ctx).
		Model(&TransactionEntity{}).
		Select("items.name AS name, COUNT(*) AS count").
		Joins("JOIN items ON items.id = point_transactions.item_id").
		Group("items.name").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).
		Error

	if err != nil {
		return nil, err
	}

	return rows, nil
}

// RecentWithNames returns the latest transactions joined with customer and
// item names for the admin activity feed.
func (r *TransactionRepository) RecentWithNames(ctx context.Context, limit int) ([]*model.TransactionDetail, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows []*model.TransactionDetail
	err := r.Read(ctx).WithContext(ctx).
		Model(&TransactionEntity{}).
		Select(`point_transactions.id,
			customers.name AS customer_name,
			items.name AS item_name,
			point_transactions.points_added,
			point_transactions.reward_earned,
			point_transactions.created_at`).
		Joins("JOIN customers ON customers.id = point_transactions.customer_id").
		Joins("JOIN items ON items.id = point_transactions.item_id").
		Order("point_transactions.created_at DESC").
		Limit(limit).
		Scan(&rows).
		Error

	if err != nil {
		return nil, err
	}

	return rows, nil
}

// RewardsSince returns reward-earning transactions from the given time on,
// oldest first. The analytics service buckets them per day.
func (r *TransactionRepository) RewardsSince(ctx context.Context, since time.Time) ([]*model.PointTransaction, error) {
	var entities []*TransactionEntity

	err := r.Read(ctx).WithContext(ctx).
		Where("reward_earned = ? AND created_at >= ?", true, since).
		Order("created_at ASC").
		Find(&entities).
		Error

	if err != nil {
		return nil, err
	}

	return toTransactionModels(entities), nil
}
