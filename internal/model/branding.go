package model

import (
	"time"
)

type Branding struct {
	ID             int64     `json:"id"              db:"id"              gorm:"primaryKey;autoIncrement;column:id"`
	BusinessName   string    `json:"business_name"   db:"business_name"   gorm:"column:business_name;not null"`
	PrimaryColor   string    `json:"primary_color"   db:"primary_color"   gorm:"column:primary_color;not null"`
	SecondaryColor string    `json:"secondary_color" db:"secondary_color" gorm:"column:secondary_color;not null"`
	LogoURL        string    `json:"logo_url"        db:"logo_url"        gorm:"column:logo_url"`
	WelcomeMessage string    `json:"welcome_message" db:"welcome_message" gorm:"column:welcome_message"`
	UpdatedAt      time.Time `json:"updated_at"      db:"updated_at"      gorm:"column:updated_at;autoUpdateTime"`
}

func (Branding) TableName() string { return "branding" }

func DefaultBranding() *Branding {
	return &Branding{
		BusinessName:   "Loyalty Card App",
		PrimaryColor:   "#3b82f6",
		SecondaryColor: "#10b981",
		LogoURL:        "",
		WelcomeMessage: "Join our loyalty program and earn rewards!",
	}
}

type BrandingUpdateRequest struct {
	BusinessName   string
	PrimaryColor   string
	SecondaryColor string
	LogoURL        string
	WelcomeMessage string
}

func (p BrandingUpdateRequest) Validate() error {
	if p.BusinessName == "" {
		return ValidationError("business_name is required")
	}
	return nil
}
