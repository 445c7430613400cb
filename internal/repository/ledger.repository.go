package repository

import (
	"context"
	"errors"

	"github.com/pkaveh/loyalty-gateway/internal/model"
	"github.com/pkaveh/loyalty-gateway/pkg/pg"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrLedgerEntryNotFound = errors.New("ledger entry not found")
)

// LedgerRepository manages customer_item_points, the per-(customer, item)
// counters the accrual engine mutates.
type LedgerRepository struct {
	*pg.DB
}

func NewLedgerRepository(db *pg.DB) *LedgerRepository {
	return &LedgerRepository{
		db,
	}
}

// EnsureExists lazily creates the zero-valued counter for a pair on first
// purchase. ON CONFLICT DO NOTHING collapses the check-then-insert into a
// single round trip.
func (r *LedgerRepository) EnsureExists(ctx context.Context, customerID string, itemID int64) error {
	entity := &ItemPointsEntity{
		CustomerID: customerID,
		ItemID:     itemID,
		Points:     0,
	}

	return r.Write(ctx).WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(entity).
		Error
}

// GetForUpdate loads a counter under a row lock so concurrent accruals for
// the same pair serialize instead of losing updates. Must run inside a
// transaction (pg.DB.WithinTransaction).
func (r *LedgerRepository) GetForUpdate(ctx context.Context, customerID string, itemID int64) (*model.ItemPoints, error) {
	var entity ItemPointsEntity

	q := r.Write(ctx).WithContext(ctx)
	// sqlite has no FOR UPDATE; its single-writer model serializes writes.
	if q.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	err := q.
		Where("customer_id = ? AND item_id = ?", customerID, itemID).
		First(&entity).
		Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLedgerEntryNotFound
		}
		return nil, err
	}

	return toItemPointsModel(&entity), nil
}

func (r *LedgerRepository) SetPoints(ctx context.Context, customerID string, itemID int64, points uint) error {
	result := r.Write(ctx).WithContext(ctx).
		Model(&ItemPointsEntity{}).
		Where("customer_id = ? AND item_id = ?", customerID, itemID).
		Update("points", points)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrLedgerEntryNotFound
	}

	return nil
}

// ListByCustomer returns all counters for one customer's card view.
func (r *LedgerRepository) ListByCustomer(ctx context.Context, customerID string) ([]*model.ItemPoints, error) {
	var entities []*ItemPointsEntity

	err := r.Read(ctx).WithContext(ctx).
		Where("customer_id = ?", customerID).
		Find(&entities).
		Error

	if err != nil {
		return nil, err
	}

	return toItemPointsModels(entities), nil
}

// ListAll returns every counter; the analytics service aggregates them
// per customer.
func (r *LedgerRepository) ListAll(ctx context.Context) ([]*model.ItemPoints, error) {
	var entities []*ItemPointsEntity

	if err := r.Read(ctx).WithContext(ctx).Find(&entities).Error; err != nil {
		return nil, err
	}

	return toItemPointsModels(entities), nil
}

// SumPoints is the total of outstanding (not yet redeemed) points across
// all customers and items.
func (r *LedgerRepository) SumPoints(ctx context.Context) (int64, error) {
	var total int64

	err := r.Read(ctx).WithContext(ctx).
		Model(&ItemPointsEntity{}).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total).
		Error

	return total, err
}
