package repository

import (
	"time"

	"github.com/pkaveh/loyalty-gateway/internal/model"
)

type CustomerEntity struct {
	ID        string    `db:"id"         gorm:"primaryKey;column:id"`
	Name      string    `db:"name"       gorm:"column:name;not null"`
	PIN       string    `db:"pin"        gorm:"column:pin;not null"`
	Rewards   uint      `db:"rewards"    gorm:"column:rewards;not null;default:0"`
	QRCode    string    `db:"qr_code"    gorm:"column:qr_code"`
	CreatedAt time.Time `db:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (CustomerEntity) TableName() string {
	return "customers"
}

func toCustomerEntity(m *model.Customer) *CustomerEntity {
	if m == nil {
		return nil
	}
	return &CustomerEntity{
		ID:        m.ID,
		Name:      m.Name,
		PIN:       m.PIN,
		Rewards:   m.Rewards,
		QRCode:    m.QRCode,
		CreatedAt: m.CreatedAt,
	}
}

func toCustomerModel(e *CustomerEntity) *model.Customer {
	if e == nil {
		return nil
	}
	return &model.Customer{
		ID:        e.ID,
		Name:      e.Name,
		PIN:       e.PIN,
		Rewards:   e.Rewards,
		QRCode:    e.QRCode,
		CreatedAt: e.CreatedAt,
	}
}

func toCustomerModels(entities []*CustomerEntity) []*model.Customer {
	if entities == nil {
		return nil
	}
	models := make([]*model.Customer, len(entities))
	for i, e := range entities {
		models[i] = toCustomerModel(e)
	}
	return models
}
