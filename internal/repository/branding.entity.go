package repository

import (
	"time"

	"github.com/pkaveh/loyalty-gateway/internal/model"
)

type BrandingEntity struct {
	ID             int64     `db:"id"              gorm:"primaryKey;autoIncrement;column:id"`
	BusinessName   string    `db:"business_name"   gorm:"column:business_name;not null"`
	PrimaryColor   string    `db:"primary_color"   gorm:"column:primary_color;not null"`
	SecondaryColor string    `db:"secondary_color" gorm:"column:secondary_color;not null"`
	LogoURL        string    `db:"logo_url"        gorm:"column:logo_url"`
	WelcomeMessage string    `db:"welcome_message" gorm:"column:welcome_message"`
	UpdatedAt      time.Time `db:"updated_at"      gorm:"column:updated_at;autoUpdateTime"`
}

func (BrandingEntity) TableName() string {
	return "branding"
}

func toBrandingEntity(m *model.Branding) *BrandingEntity {
	if m == nil {
		return nil
	}
	return &BrandingEntity{
		ID:             m.ID,
		BusinessName:   m.BusinessName,
		PrimaryColor:   m.PrimaryColor,
		SecondaryColor: m.SecondaryColor,
		LogoURL:        m.LogoURL,
		WelcomeMessage: m.WelcomeMessage,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toBrandingModel(e *BrandingEntity) *model.Branding {
	if e == nil {
		return nil
	}
	return &model.Branding{
		ID:             e.ID,
		BusinessName:   e.BusinessName,
		PrimaryColor:   e.PrimaryColor,
		SecondaryColor: e.SecondaryColor,
		LogoURL:        e.LogoURL,
		WelcomeMessage: e.WelcomeMessage,
		UpdatedAt:      e.UpdatedAt,
	}
}
