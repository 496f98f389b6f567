package services

import (
	"fmt"

	"github.com/custodia-labs/gradebook/internal/core/domain"
	"github.com/custodia-labs/gradebook/internal/core/ports/driven"
	"github.com/custodia-labs/gradebook/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyStorageBackend = "storage.backend"
	keyStorageDataDir = "storage.data_dir"
	keyStudentsFile   = "storage.students_file"
	keyCoursesFile    = "storage.courses_file"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Missing or invalid values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	if s.configStore == nil {
		return nil, domain.ErrNotImplemented
	}
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Storage: domain.StorageSettings{
			Backend:      s.getBackend(defaults.Storage.Backend),
			DataDir:      s.configStore.GetString(keyStorageDataDir), // No default - empty means working directory
			StudentsFile: s.getString(keyStudentsFile, defaults.Storage.StudentsFile),
			CoursesFile:  s.getString(keyCoursesFile, defaults.Storage.CoursesFile),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if err := validateStorage(settings.Storage); err != nil {
		return err
	}

	if err := s.configStore.Set(keyStorageBackend, settings.Storage.Backend.String()); err != nil {
		return fmt.Errorf("save storage backend: %w", err)
	}
	if err := s.configStore.Set(keyStorageDataDir, settings.Storage.DataDir); err != nil {
		return fmt.Errorf("save storage data_dir: %w", err)
	}
	if err := s.configStore.Set(keyStudentsFile, settings.Storage.StudentsFile); err != nil {
		return fmt.Errorf("save storage students_file: %w", err)
	}
	if err := s.configStore.Set(keyCoursesFile, settings.Storage.CoursesFile); err != nil {
		return fmt.Errorf("save storage courses_file: %w", err)
	}

	return nil
}

// SetStorage updates storage settings. Empty fields keep their current value.
func (s *SettingsService) SetStorage(storage domain.StorageSettings) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if storage.Backend != "" {
		settings.Storage.Backend = storage.Backend
	}
	if storage.DataDir != "" {
		settings.Storage.DataDir = storage.DataDir
	}
	if storage.StudentsFile != "" {
		settings.Storage.StudentsFile = storage.StudentsFile
	}
	if storage.CoursesFile != "" {
		settings.Storage.CoursesFile = storage.CoursesFile
	}

	return s.Save(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ConfigPath returns where settings are stored.
func (s *SettingsService) ConfigPath() string {
	if s.configStore == nil {
		return ""
	}
	return s.configStore.Path()
}

// getString returns a config string or the default when unset.
func (s *SettingsService) getString(key, defaultVal string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return defaultVal
}

// getBackend returns the configured backend or the default when unset or unknown.
func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	b := domain.StorageBackend(s.configStore.GetString(keyStorageBackend))
	if b.IsValid() {
		return b
	}
	return defaultVal
}

// validateStorage rejects settings that cannot be used to open a store.
func validateStorage(storage domain.StorageSettings) error {
	return storage.Validate()
}
