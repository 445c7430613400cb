package repository

import (
	"context"
	"errors"

	"github.com/pkaveh/loyalty-gateway/internal/model"
	"github.com/pkaveh/loyalty-gateway/pkg/pg"
	"gorm.io/gorm"
)

var (
	ErrBrandingNotFound = errors.New("branding not found")
)

type BrandingRepository struct {
	*pg.DB
}

func NewBrandingRepository(db *pg.DB) *BrandingRepository {
	return &BrandingRepository{
		db,
	}
}

// Get returns the single branding row, seeding the defaults on first use.
func (r *BrandingRepository) Get(ctx context.Context) (*model.Branding, error) {
	var entity BrandingEntity

	err := r.Read(ctx).WithContext(ctx).First(&entity).Error
	if err == nil {
		return toBrandingModel(&entity), nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	seeded := toBrandingEntity(model.DefaultBranding())
	if err := r.Write(ctx).WithContext(ctx).Create(seeded).Error; err != nil {
		return nil, err
	}

	return toBrandingModel(seeded), nil
}

func (r *BrandingRepository) Update(ctx context.Context, b *model.Branding) (*model.Branding, error) {
	entity := toBrandingEntity(b)

	result := r.Write(ctx).WithContext(ctx).
		Model(&BrandingEntity{}).
		Where("id = ?", entity.ID).
		Select("business_name", "primary_color", "secondary_color", "logo_url", "welcome_message").
		Updates(entity)

	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, ErrBrandingNotFound
	}

	return r.Get(ctx)
}
