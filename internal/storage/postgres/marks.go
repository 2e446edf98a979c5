package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/routinely/internal/models"
)

func (s *Store) ToggleMark(actionID, day string, now time.Time) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, err
	}

	var id string
	err = tx.QueryRow(`SELECT id FROM completion_marks WHERE action_id = $1 AND day = $2`,
		actionID, day).Scan(&id)
	switch {
	case err == nil:
		if _, err := tx.Exec(`DELETE FROM completion_marks WHERE id = $1`, id); err != nil {
			_ = tx.Rollback()
			return false, err
		}
		return false, tx.Commit()
	case errors.Is(err, sql.ErrNoRows):
		_, err := tx.Exec(`
			INSERT INTO completion_marks (id, action_id, day, created_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (action_id, day) DO NOTHING`,
			uuid.New().String(), actionID, day, now.Format(time.RFC3339))
		if err != nil {
			_ = tx.Rollback()
			return false, err
		}
		return true, tx.Commit()
	default:
		_ = tx.Rollback()
		return false, err
	}
}

func (s *Store) EnsureMark(actionID, day string, now time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO completion_marks (id, action_id, day, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (action_id, day) DO NOTHING`,
		uuid.New().String(), actionID, day, now.Format(time.RFC3339))
	return err
}

func (s *Store) GetMarks(actionID, startDay, endDay string) ([]models.CompletionMark, error) {
	rows, err := s.db.Query(`
		SELECT id, action_id, day, created_at
		FROM completion_marks
		WHERE action_id = $1 AND day >= $2 AND day <= $3
		ORDER BY day`, actionID, startDay, endDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMarks(rows)
}

func (s *Store) GetAllMarks() ([]models.CompletionMark, error) {
	rows, err := s.db.Query(`SELECT id, action_id, day, created_at FROM completion_marks ORDER BY day`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMarks(rows)
}

func collectMarks(rows *sql.Rows) ([]models.CompletionMark, error) {
	var marks []models.CompletionMark
	for rows.Next() {
		var m models.CompletionMark
		var createdAt string
		if err := rows.Scan(&m.ID, &m.ActionID, &m.Day, &createdAt); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for mark %s: %w", m.ID, err)
		}
		m.CreatedAt = t
		marks = append(marks, m)
	}
	return marks, rows.Err()
}
