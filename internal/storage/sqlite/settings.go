package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/spinday/internal/constants"
	"github.com/julianstephens/spinday/internal/models"
)

func (s *Store) GetSettings() (models.Settings, error) {
	if err := s.ensureOpen(); err != nil {
		return models.Settings{}, err
	}

	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}

	if _, ok := values[constants.SettingTimezone]; !ok {
		return models.Settings{}, fmt.Errorf("settings not found")
	}

	return models.SettingsFromMap(values)
}

func (s *Store) SaveSettings(settings models.Settings) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	return s.putValues(settings.ToMap())
}

func (s *Store) putValues(values map[string]string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for key, value := range values {
		if _, err := stmt.Exec(key, value); err != nil {
			return fmt.Errorf("saving %s: %w", key, err)
		}
	}

	return tx.Commit()
}

func (s *Store) getValue(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

func (s *Store) GetPendingActivity() (models.PendingActivity, error) {
	if err := s.ensureOpen(); err != nil {
		return models.PendingActivity{}, err
	}

	item, err := s.getValue(constants.PendingActivityKey)
	if err != nil {
		return models.PendingActivity{}, err
	}
	pc, err := s.getValue(constants.PendingContextKey)
	if err != nil {
		return models.PendingActivity{}, err
	}
	return models.PendingActivity{Item: item, Context: models.PoolContext(pc)}, nil
}

func (s *Store) SavePendingActivity(p models.PendingActivity) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	return s.putValues(map[string]string{
		constants.PendingActivityKey: p.Item,
		constants.PendingContextKey:  string(p.Context),
	})
}

func (s *Store) ClearPendingActivity() error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	_, err := s.db.Exec("DELETE FROM settings WHERE key IN (?, ?)", constants.PendingActivityKey, constants.PendingContextKey)
	return err
}
