package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrandingRepository_Get(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBrandingRepository(db.DB)
	ctx := context.Background()

	branding, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Loyalty Card App", branding.BusinessName)
	assert.Equal(t, "#3b82f6", branding.PrimaryColor)
	assert.Equal(t, "#10b981", branding.SecondaryColor)

	var count int64
	require.NoError(t, db.rawDB.Model(&BrandingEntity{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestBrandingRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBrandingRepository(db.DB)
	ctx := context.Background()

	branding, err := repo.Get(ctx)
	require.NoError(t, err)

	branding.BusinessName = "Corner Cafe"
	branding.LogoURL = "https://example.com/logo.png"

	updated, err := repo.Update(ctx, branding)
	require.NoError(t, err)
	assert.Equal(t, "Corner Cafe", updated.BusinessName)

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Corner Cafe", got.BusinessName)
	assert.Equal(t, "https://example.com/logo.png", got.LogoURL)
}
