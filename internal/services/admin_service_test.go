package services

import (
	"context"
	"testing"

	"github.com/pkaveh/loyalty-gateway/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context) (*model.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Settings), args.Error(1)
}

func (m *MockSettingsRepository) Update(ctx context.Context, s *model.Settings) (*model.Settings, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Settings), args.Error(1)
}

type MockBrandingRepository struct {
	mock.Mock
}

func (m *MockBrandingRepository) Get(ctx context.Context) (*model.Branding, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Branding), args.Error(1)
}

func (m *MockBrandingRepository) Update(ctx context.Context, b *model.Branding) (*model.Branding, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Branding), args.Error(1)
}

func TestAdminService_Login(t *testing.T) {
	ctx := context.Background()
	settings := &model.Settings{AdminUsername: "admin", AdminPassword: "password123"}

	t.Run("valid credentials", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		svc := NewAdminService(repo, new(MockBrandingRepository))
		repo.On("Get", ctx).Return(settings, nil)

		assert.NoError(t, svc.Login(ctx, "admin", "password123"))
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		svc := NewAdminService(repo, new(MockBrandingRepository))
		repo.On("Get", ctx).Return(settings, nil)

		assert.ErrorIs(t, svc.Login(ctx, "admin", "nope"), ErrInvalidCredentials)
	})

	t.Run("wrong username", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		svc := NewAdminService(repo, new(MockBrandingRepository))
		repo.On("Get", ctx).Return(settings, nil)

		assert.ErrorIs(t, svc.Login(ctx, "root", "password123"), ErrInvalidCredentials)
	})
}

func TestAdminService_UpdateSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("successful update", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		svc := NewAdminService(repo, new(MockBrandingRepository))

		repo.On("Get", ctx).Return(&model.Settings{
			StorePIN:        "1234",
			PointsForReward: 10,
			AdminUsername:   "admin",
			AdminPassword:   "password123",
		}, nil)
		repo.On("Update", ctx, mock.MatchedBy(func(s *model.Settings) bool {
			return s.StorePIN == "4321" && s.PointsForReward == 5
		})).Return(&model.Settings{StorePIN: "4321", PointsForReward: 5}, nil)

		updated, err := svc.UpdateSettings(ctx, model.SettingsUpdateRequest{
			StorePIN:        "4321",
			PointsForReward: 5,
			AdminUsername:   "admin",
			AdminPassword:   "password123",
		})
		require.NoError(t, err)
		assert.Equal(t, uint(5), updated.PointsForReward)
	})

	t.Run("threshold must be positive", func(t *testing.T) {
		svc := NewAdminService(new(MockSettingsRepository), new(MockBrandingRepository))

		_, err := svc.UpdateSettings(ctx, model.SettingsUpdateRequest{
			StorePIN:        "1234",
			PointsForReward: 0,
			AdminUsername:   "admin",
			AdminPassword:   "password123",
		})
		assert.Error(t, err)
	})
}

func TestAdminService_UpdateBranding(t *testing.T) {
	ctx := context.Background()
	repo := new(MockBrandingRepository)
	svc := NewAdminService(new(MockSettingsRepository), repo)

	repo.On("Get", ctx).Return(&model.Branding{
		BusinessName:   "Loyalty Card App",
		PrimaryColor:   "#3b82f6",
		SecondaryColor: "#10b981",
		WelcomeMessage: "Join our loyalty program and earn rewards!",
	}, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(b *model.Branding) bool {
		// Empty colors keep the current values.
		return b.BusinessName == "Corner Cafe" && b.PrimaryColor == "#3b82f6"
	})).Return(&model.Branding{BusinessName: "Corner Cafe", PrimaryColor: "#3b82f6"}, nil)

	updated, err := svc.UpdateBranding(ctx, model.BrandingUpdateRequest{
		BusinessName: "Corner Cafe",
	})
	require.NoError(t, err)
	assert.Equal(t, "Corner Cafe", updated.BusinessName)

	repo.AssertExpectations(t)
}
