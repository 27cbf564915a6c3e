package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/spinday/internal/constants"
	apperrors "github.com/julianstephens/spinday/internal/errors"
	"github.com/julianstephens/spinday/internal/models"
)

func (s *Store) SaveDiaryEntry(entry models.DiaryEntry) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO diary_entries (photo_uri, text, saved_on, updated_at)
		VALUES (?, ?, ?, ?)`,
		entry.PhotoURI, entry.Text, entry.SavedOn, entry.UpdatedAt.UTC().Format(constants.TimestampFormat),
	)
	return err
}

func (s *Store) GetDiaryEntry(photoURI string) (models.DiaryEntry, error) {
	if err := s.ensureOpen(); err != nil {
		return models.DiaryEntry{}, err
	}

	row := s.db.QueryRow("SELECT photo_uri, text, saved_on, updated_at FROM diary_entries WHERE photo_uri = ?", photoURI)
	entry, err := scanDiaryEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DiaryEntry{}, fmt.Errorf("diary entry %s: %w", photoURI, apperrors.ErrNotFound)
	}
	return entry, err
}

func (s *Store) GetAllDiaryEntries() ([]models.DiaryEntry, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query("SELECT photo_uri, text, saved_on, updated_at FROM diary_entries ORDER BY photo_uri")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.DiaryEntry{}
	for rows.Next() {
		entry, err := scanDiaryEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *Store) DeleteDiaryEntry(photoURI string) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	res, err := s.db.Exec("DELETE FROM diary_entries WHERE photo_uri = ?", photoURI)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("diary entry %s: %w", photoURI, apperrors.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDiaryEntry(row rowScanner) (models.DiaryEntry, error) {
	var entry models.DiaryEntry
	var updatedAt string
	if err := row.Scan(&entry.PhotoURI, &entry.Text, &entry.SavedOn, &updatedAt); err != nil {
		return models.DiaryEntry{}, err
	}
	t, err := time.Parse(constants.TimestampFormat, updatedAt)
	if err != nil {
		return models.DiaryEntry{}, fmt.Errorf("failed to parse updated_at for diary entry %s: %w", entry.PhotoURI, err)
	}
	entry.UpdatedAt = t
	return entry, nil
}
