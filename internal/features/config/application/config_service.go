package application

import (
	"errors"
	"fmt"

	"code-converter/backend/internal/config"
	"code-converter/backend/internal/features/config/domain"
)

// ErrInvalidProfile is returned by SaveProfile when the submitted profile
// cannot be used for generation.
var ErrInvalidProfile = errors.New("invalid generation profile")

// ConfigService defines the interface for generation profile management.
type ConfigService interface {
	// ActiveProfile is the profile the local model runner was started with.
	ActiveProfile() domain.GenerationProfile
	// StoredProfile is what the next start will use.
	StoredProfile() (*domain.GenerationProfile, error)
	// SaveProfile persists profile and reports whether it differs from the
	// active one, in which case a restart is needed to apply it.
	SaveProfile(profile domain.GenerationProfile) (bool, error)
	ProfilePath() string
}

// configService is the implementation of ConfigService.
type configService struct {
	store  config.ProfileService
	active domain.GenerationProfile
}

// NewConfigService creates a new instance of configService.
func NewConfigService(store config.ProfileService, active domain.GenerationProfile) ConfigService {
	return &configService{store: store, active: active.WithDefaults()}
}

func (s *configService) ActiveProfile() domain.GenerationProfile {
	return s.active
}

func (s *configService) StoredProfile() (*domain.GenerationProfile, error) {
	profile, err := s.store.LoadProfile()
	if err != nil {
		return nil, fmt.Errorf("failed to load stored profile: %w", err)
	}
	return profile, nil
}

func (s *configService) SaveProfile(profile domain.GenerationProfile) (bool, error) {
	profile = profile.WithDefaults()
	if err := profile.Validate(); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}

	if err := s.store.SaveProfile(&profile); err != nil {
		return false, fmt.Errorf("failed to save profile: %w", err)
	}
	return profile != s.active, nil
}

func (s *configService) ProfilePath() string {
	return s.store.Path()
}
