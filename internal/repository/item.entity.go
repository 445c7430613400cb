package repository

import (
	"github.com/pkaveh/loyalty-gateway/internal/model"
)

type ItemEntity struct {
	ID          int64  `db:"id"           gorm:"primaryKey;autoIncrement;column:id"`
	Name        string `db:"name"         gorm:"column:name;not null"`
	Description string `db:"description"  gorm:"column:description"`
	PointsValue uint   `db:"points_value" gorm:"column:points_value;not null"`
	Price       uint   `db:"price"        gorm:"column:price;not null;default:0"`
	IsActive    bool   `db:"is_active"    gorm:"column:is_active;not null;default:true"`
}

func (ItemEntity) TableName() string {
	return "items"
}

func toItemEntity(m *model.Item) *ItemEntity {
	if m == nil {
		return nil
	}
	return &ItemEntity{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		PointsValue: m.PointsValue,
		Price:       m.Price,
		IsActive:    m.IsActive,
	}
}

func toItemModel(e *ItemEntity) *model.Item {
	if e == nil {
		return nil
	}
	return &model.Item{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		PointsValue: e.PointsValue,
		Price:       e.Price,
		IsActive:    e.IsActive,
	}
}

func toItemModels(entities []*ItemEntity) []*model.Item {
	if entities == nil {
		return nil
	}
	models := make([]*model.Item, len(entities))
	for i, e := range entities {
		models[i] = toItemModel(e)
	}
	return models
}
