package model

import (
	"time"
)

type Settings struct {
	ID              int64     `json:"id"                db:"id"                gorm:"primaryKey;autoIncrement;column:id"`
	StorePIN        string    `json:"store_pin"         db:"store_pin"         gorm:"column:store_pin;not null"`
	PointsForReward uint      `json:"points_for_reward" db:"points_for_reward" gorm:"column:points_for_reward;not null"`
	AdminUsername   string    `json:"admin_username"    db:"admin_username"    gorm:"column:admin_username;not null"`
	AdminPassword   string    `json:"admin_password"    db:"admin_password"    gorm:"column:admin_password;not null"`
	UpdatedAt       time.Time `json:"updated_at"        db:"updated_at"        gorm:"column:updated_at;autoUpdateTime"`
}

func (Settings) TableName() string { return "settings" }

// DefaultSettings is the row seeded on first read when no settings exist.
func DefaultSettings() *Settings {
	return &Settings{
		StorePIN:        "1234",
		PointsForReward: 10,
		AdminUsername:   "admin",
		AdminPassword:   "password123",
	}
}

type SettingsUpdateRequest struct {
	StorePIN        string
	PointsForReward uint
	AdminUsername   string
	AdminPassword   string
}

func (p SettingsUpdateRequest) Validate() error {
	if p.PointsForReward < 1 {
		return ValidationError("points_for_reward must be at least 1")
	}
	if p.StorePIN == "" {
		return ValidationError("store_pin is required")
	}
	if p.AdminUsername == "" || p.AdminPassword == "" {
		return ValidationError("admin credentials are required")
	}
	return nil
}
