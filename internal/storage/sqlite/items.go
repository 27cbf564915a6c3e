package sqlite

import (
	"time"

	"github.com/julianstephens/spinday/internal/models"
)

func (s *Store) GetUserItems(pc models.PoolContext) ([]string, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query("SELECT label FROM user_items WHERE context = ? ORDER BY id", string(pc))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []string{}
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, err
		}
		items = append(items, label)
	}
	return items, rows.Err()
}

func (s *Store) AppendUserItem(pc models.PoolContext, label string) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	_, err := s.db.Exec(
		"INSERT INTO user_items (context, label, created_at) VALUES (?, ?, ?)",
		string(pc), label, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

func (s *Store) RemoveUserItem(pc models.PoolContext, label string) (bool, error) {
	if err := s.ensureOpen(); err != nil {
		return false, err
	}
	res, err := s.db.Exec(`
		DELETE FROM user_items WHERE id = (
			SELECT id FROM user_items WHERE context = ? AND label = ? ORDER BY id LIMIT 1
		)`, string(pc), label)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) GetDeletedDefaults() ([]string, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query("SELECT label FROM deleted_defaults ORDER BY label")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	labels := []string{}
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}
	return labels, rows.Err()
}

func (s *Store) AddDeletedDefault(label string) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO deleted_defaults (label, deleted_at) VALUES (?, ?)",
		label, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

func (s *Store) RemoveDeletedDefault(label string) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	_, err := s.db.Exec("DELETE FROM deleted_defaults WHERE label = ?", label)
	return err
}
