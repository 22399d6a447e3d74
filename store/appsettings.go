package store

import (
	"path/filepath"

	"github.com/aaroniusdersiebte/DBM/models"
)

type AppSettingsRepository struct {
	path string
}

func NewAppSettingsRepository(dataDir string) *AppSettingsRepository {
	return &AppSettingsRepository{
		path: filepath.Join(dataDir, "config", "app-settings.json"),
	}
}

func (r *AppSettingsRepository) Load() *models.AppSettings {
	settings := &models.AppSettings{
		Theme:          "dark",
		Language:       "de",
		MinimizeToTray: true,
		Notifications:  true,
	}
	readJSONFile(r.path, settings)
	return settings
}

func (r *AppSettingsRepository) Save(settings *models.AppSettings) error {
	return writeJSONFile(r.path, settings)
}
