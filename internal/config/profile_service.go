package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"code-converter/backend/internal/features/config/domain"
)

// ProfileService defines the interface for generation profile management.
type ProfileService interface {
	LoadProfile() (*domain.GenerationProfile, error)
	SaveProfile(profile *domain.GenerationProfile) error
	Path() string
}

// profileService is the file-backed implementation of ProfileService.
type profileService struct {
	profilePath string
}

// NewProfileService creates a ProfileService for a JSON or YAML file.
func NewProfileService(profilePath string) ProfileService {
	return &profileService{profilePath: profilePath}
}

func (s *profileService) Path() string {
	return s.profilePath
}

// LoadProfile reads the profile file. A missing file yields the defaults.
func (s *profileService) LoadProfile() (*domain.GenerationProfile, error) {
	absPath, err := filepath.Abs(s.profilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for %s: %w", s.profilePath, err)
	}

	data, err := os.ReadFile(absPath)
	if errors.Is(err, fs.ErrNotExist) {
		profile := domain.DefaultGenerationProfile()
		return &profile, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read generation profile %s: %w", absPath, err)
	}

	var profile domain.GenerationProfile
	if isYAML(absPath) {
		err = yaml.Unmarshal(data, &profile)
	} else {
		err = json.Unmarshal(data, &profile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal generation profile from %s: %w", absPath, err)
	}

	profile = profile.WithDefaults()
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generation profile %s: %w", absPath, err)
	}
	return &profile, nil
}

// SaveProfile validates and writes the profile, creating the directory if needed.
func (s *profileService) SaveProfile(profile *domain.GenerationProfile) error {
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("invalid generation profile: %w", err)
	}

	absPath, err := filepath.Abs(s.profilePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for %s: %w", s.profilePath, err)
	}

	var data []byte
	if isYAML(absPath) {
		data, err = yaml.Marshal(profile)
	} else {
		data, err = json.MarshalIndent(profile, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal generation profile: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", absPath, err)
	}
	if err := os.WriteFile(absPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write generation profile to file %s: %w", absPath, err)
	}
	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
