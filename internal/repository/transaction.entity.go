package repository

import (
	"time"

	"github.com/pkaveh/loyalty-gateway/internal/model"
)

type TransactionEntity struct {
	ID           int64     `db:"id"            gorm:"primaryKey;autoIncrement;column:id"`
	CustomerID   string    `db:"customer_id"   gorm:"column:customer_id;not null;index"`
	ItemID       int64     `db:"item_id"       gorm:"column:item_id;not null;index"`
	PointsAdded  uint      `db:"points_added"  gorm:"column:points_added;not null"`
	RewardEarned bool      `db:"reward_earned" gorm:"column:reward_earned;not null;default:false"`
	CreatedAt    time.Time `db:"created_at"    gorm:"column:created_at;autoCreateTime"`
}

func (TransactionEntity) TableName() string {
	return "point_transactions"
}

func toTransactionEntity(m *model.PointTransaction) *TransactionEntity {
	if m == nil {
		return nil
	}
	return &TransactionEntity{
		ID:           m.ID,
		CustomerID:   m.CustomerID,
		ItemID:       m.ItemID,
		PointsAdded:  m.PointsAdded,
		RewardEarned: m.RewardEarned,
		CreatedAt:    m.CreatedAt,
	}
}

func toTransactionModel(e *TransactionEntity) *model.PointTransaction {
	if e == nil {
		return nil
	}
	return &model.PointTransaction{
		ID:           e.ID,
		CustomerID:   e.CustomerID,
		ItemID:       e.ItemID,
		PointsAdded:  e.PointsAdded,
		RewardEarned: e.RewardEarned,
		CreatedAt:    e.CreatedAt,
	}
}

func toTransactionModels(entities []*TransactionEntity) []*model.PointTransaction {
	if entities == nil {
		return nil
	}
	models := make([]*model.PointTransaction, len(entities))
	for i, e := range entities {
		models[i] = toTransactionModel(e)
	}
	return models
}
