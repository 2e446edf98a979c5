package postgres

import (
	"fmt"

	"github.com/julianstephens/routinely/internal/models"
)

func (s *Store) GetSettings() (models.Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	settings := models.Settings{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		switch key {
		case "timezone":
			settings.Timezone = value
		case "default_year":
			if _, err := fmt.Sscanf(value, "%d", &settings.DefaultYear); err != nil {
				return models.Settings{}, fmt.Errorf("parsing default_year: %w", err)
			}
		}
	}
	return settings, rows.Err()
}

func (s *Store) SaveSettings(settings models.Settings) error {
	pairs := map[string]string{
		"timezone":     settings.Timezone,
		"default_year": fmt.Sprintf("%d", settings.DefaultYear),
	}
	for key, value := range pairs {
		_, err := s.db.Exec(`
			INSERT INTO settings (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
			key, value)
		if err != nil {
			return fmt.Errorf("failed to save setting %s: %w", key, err)
		}
	}
	return nil
}
