package services

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/pkaveh/loyalty-gateway/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type SettingsRepository interface {
	Get(ctx context.Context) (*model.Settings, error)
	Update(ctx context.Context, s *model.Settings) (*model.Settings, error)
}

type BrandingRepository interface {
	Get(ctx context.Context) (*model.Branding, error)
	Update(ctx context.Context, b *model.Branding) (*model.Branding, error)
}

// AdminService backs the admin surface: store settings, branding and the
// dashboard login check.
type AdminService struct {
	settingsRepo SettingsRepository
	brandingRepo BrandingRepository
}

func NewAdminService(settingsRepo SettingsRepository, brandingRepo BrandingRepository) *AdminService {
	return &AdminService{
		settingsRepo: settingsRepo,
		brandingRepo: brandingRepo,
	}
}

// Login checks the dashboard credentials stored in settings.
func (s *AdminService) Login(ctx context.Context, username, password string) error {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return err
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(settings.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(settings.AdminPassword)) == 1
	if !userOK || !passOK {
		return ErrInvalidCredentials
	}

	return nil
}

func (s *AdminService) GetSettings(ctx context.Context) (*model.Settings, error) {
	return s.settingsRepo.Get(ctx)
}

func (s *AdminService) UpdateSettings(ctx context.Context, p model.SettingsUpdateRequest) (*model.Settings, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	current, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	current.StorePIN = p.StorePIN
	current.PointsForReward = p.PointsForReward
	current.AdminUsername = p.AdminUsername
	current.AdminPassword = p.AdminPassword

	return s.settingsRepo.Update(ctx, current)
}

func (s *AdminService) GetBranding(ctx context.Context) (*model.Branding, error) {
	return s.brandingRepo.Get(ctx)
}

func (s *AdminService) UpdateBranding(ctx context.Context, p model.BrandingUpdateRequest) (*model.Branding, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	current, err := s.brandingRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	current.BusinessName = p.BusinessName
	if p.PrimaryColor != "" {
		current.PrimaryColor = p.PrimaryColor
	}
	if p.SecondaryColor != "" {
		current.SecondaryColor = p.SecondaryColor
	}
	current.LogoURL = p.LogoURL
	if p.WelcomeMessage != "" {
		current.WelcomeMessage = p.WelcomeMessage
	}

	return s.brandingRepo.Update(ctx, current)
}
