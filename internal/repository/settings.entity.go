package repository

import (
	"time"

	"github.com/pkaveh/loyalty-gateway/internal/model"
)

type SettingsEntity struct {
	ID              int64     `db:"id"                gorm:"primaryKey;autoIncrement;column:id"`
	StorePIN        string    `db:"store_pin"         gorm:"column:store_pin;not null"`
	PointsForReward uint      `db:"points_for_reward" gorm:"column:points_for_reward;not null"`
	AdminUsername   string    `db:"admin_username"    gorm:"column:admin_username;not null"`
	AdminPassword   string    `db:"admin_password"    gorm:"column:admin_password;not null"`
	UpdatedAt       time.Time `db:"updated_at"        gorm:"column:updated_at;autoUpdateTime"`
}

func (SettingsEntity) TableName() string {
	return "settings"
}

func toSettingsEntity(m *model.Settings) *SettingsEntity {
	if m == nil {
		return nil
	}
	return &SettingsEntity{
		ID:              m.ID,
		StorePIN:        m.StorePIN,
		PointsForReward: m.PointsForReward,
		AdminUsername:   m.AdminUsername,
		AdminPassword:   m.AdminPassword,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toSettingsModel(e *SettingsEntity) *model.Settings {
	if e == nil {
		return nil
	}
	return &model.Settings{
		ID:              e.ID,
		StorePIN:        e.StorePIN,
		PointsForReward: e.PointsForReward,
		AdminUsername:   e.AdminUsername,
		AdminPassword:   e.AdminPassword,
		UpdatedAt:       e.UpdatedAt,
	}
}
