package sqlite

import (
	"fmt"
	"time"

	"github.com/julianstephens/spinday/internal/constants"
	"github.com/julianstephens/spinday/internal/models"
)

func (s *Store) AddSpinDate(day string) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	_, err := s.db.Exec("INSERT OR IGNORE INTO spin_dates (day) VALUES (?)", day)
	return err
}

func (s *Store) GetSpinDates() ([]string, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query("SELECT day FROM spin_dates ORDER BY day")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	days := []string{}
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

func (s *Store) AddSpinEvent(event models.SpinEvent) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	_, err := s.db.Exec(
		"INSERT INTO spin_events (id, day, context, item, created_at) VALUES (?, ?, ?, ?, ?)",
		event.ID, event.Day, string(event.Context), event.Item, event.CreatedAt.UTC().Format(constants.TimestampFormat),
	)
	return err
}

func (s *Store) GetSpinEvents(startDay, endDay string) ([]models.SpinEvent, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT id, day, context, item, created_at
		FROM spin_events
		WHERE day >= ? AND day <= ?
		ORDER BY created_at`, startDay, endDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []models.SpinEvent{}
	for rows.Next() {
		var event models.SpinEvent
		var pc, createdAt string
		if err := rows.Scan(&event.ID, &event.Day, &pc, &event.Item, &createdAt); err != nil {
			return nil, err
		}
		event.Context = models.PoolContext(pc)
		event.CreatedAt, err = time.Parse(constants.TimestampFormat, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for spin event %s: %w", event.ID, err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
