package repository

import (
	"github.com/pkaveh/loyalty-gateway/internal/model"
)

type ItemPointsEntity struct {
	CustomerID string `db:"customer_id" gorm:"primaryKey;column:customer_id"`
	ItemID     int64  `db:"item_id"     gorm:"primaryKey;autoIncrement:false;column:item_id"`
	Points     uint   `db:"points"      gorm:"column:points;not null;default:0"`
}

func (ItemPointsEntity) TableName() string {
	return "customer_item_points"
}

func toItemPointsEntity(m *model.ItemPoints) *ItemPointsEntity {
	if m == nil {
		return nil
	}
	return &ItemPointsEntity{
		CustomerID: m.CustomerID,
		ItemID:     m.ItemID,
		Points:     m.Points,
	}
}

func toItemPointsModel(e *ItemPointsEntity) *model.ItemPoints {
	if e == nil {
		return nil
	}
	return &model.ItemPoints{
		CustomerID: e.CustomerID,
		ItemID:     e.ItemID,
		Points:     e.Points,
	}
}

func toItemPointsModels(entities []*ItemPointsEntity) []*model.ItemPoints {
	if entities == nil {
		return nil
	}
	models := make([]*model.ItemPoints, len(entities))
	for i, e := range entities {
		models[i] = toItemPointsModel(e)
	}
	return models
}
