package repository

import (
	"context"
	"errors"

	"github.com/pkaveh/loyalty-gateway/internal/model"
	"github.com/pkaveh/loyalty-gateway/pkg/pg"
	"gorm.io/gorm"
)

var (
	ErrSettingsNotFound = errors.New("settings not found")
)

type SettingsRepository struct {
	*pg.DB
}

func NewSettingsRepository(db *pg.DB) *SettingsRepository {
	return &SettingsRepository{
		db,
	}
}

// Get returns the single settings row, seeding the defaults on first use.
// The accrual engine re-reads this every call so an admin threshold change
// takes effect immediately.
func (r *SettingsRepository) Get(ctx context.Context) (*model.Settings, error) {
	var entity SettingsEntity

	err := r.Read(ctx).WithContext(ctx).First(&entity).Error
	if err == nil {
		return toSettingsModel(&entity), nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	seeded := toSettingsEntity(model.DefaultSettings())
	if err := r.Write(ctx).WithContext(ctx).Create(seeded).Error; err != nil {
		return nil, err
	}

	return toSettingsModel(seeded), nil
}

func (r *SettingsRepository) Update(ctx context.Context, s *model.Settings) (*model.Settings, error) {
	entity := toSettingsEntity(s)

	result := r.Write(ctx).WithContext(ctx).
		Model(&SettingsEntity{}).
		Where("id = ?", entity.ID).
		Select("store_pin", "points_for_reward", "admin_username", "admin_password").
		Updates(entity)

	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, ErrSettingsNotFound
	}

	return r.Get(ctx)
}
