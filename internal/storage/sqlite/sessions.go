package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/routinely/internal/models"
)

const sessionColumns = `id, action_id, started_at, ended_at, duration_min, day, manual, created_at`

// StartSession inserts the session unless the action already has an ongoing
// one. The existence check and insert run in one transaction, which is what
// guarantees at most one ongoing session per action.
func (s *Store) StartSession(sess models.TimeSession) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, err
	}

	var existing string
	err = tx.QueryRow(`
		SELECT id FROM time_sessions
		WHERE action_id = ? AND started_at IS NOT NULL AND ended_at IS NULL`,
		sess.ActionID).Scan(&existing)
	switch {
	case err == nil:
		// Already running; starting again is a no-op
		_ = tx.Rollback()
		return false, nil
	case errors.Is(err, sql.ErrNoRows):
	default:
		_ = tx.Rollback()
		return false, err
	}

	if err := insertSession(tx, sess); err != nil {
		_ = tx.Rollback()
		return false, err
	}
	return true, tx.Commit()
}

// StopSession ends the action's ongoing session as of now, computing its
// duration once from wall-clock elapsed time. The attributed day is left
// untouched even when the stop lands on a later calendar day. Returns nil
// when no session was running.
func (s *Store) StopSession(actionID string, now time.Time) (*models.TimeSession, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}

	row := tx.QueryRow(`
		SELECT `+sessionColumns+` FROM time_sessions
		WHERE action_id = ? AND started_at IS NOT NULL AND ended_at IS NULL`,
		actionID)
	sess, err := scanSession(row)
	if err != nil {
		_ = tx.Rollback()
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	duration := int(now.Sub(*sess.StartedAt).Minutes())
	if duration < 0 {
		duration = 0
	}

	_, err = tx.Exec(`
		UPDATE time_sessions SET ended_at = ?, duration_min = ? WHERE id = ?`,
		now.Format(time.RFC3339), duration, sess.ID)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	ended := now
	sess.EndedAt = &ended
	sess.DurationMin = duration
	return &sess, nil
}

func (s *Store) GetOngoingSession(actionID string) (*models.TimeSession, error) {
	row := s.db.QueryRow(`
		SELECT `+sessionColumns+` FROM time_sessions
		WHERE action_id = ? AND started_at IS NOT NULL AND ended_at IS NULL`,
		actionID)
	sess, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &sess, nil
}

// AddSession records a finished session directly, used for manual entries.
func (s *Store) AddSession(sess models.TimeSession) error {
	return insertSession(s.db, sess)
}

func (s *Store) GetSessions(actionID, startDay, endDay string) ([]models.TimeSession, error) {
	rows, err := s.db.Query(`
		SELECT `+sessionColumns+` FROM time_sessions
		WHERE action_id = ? AND day >= ? AND day <= ?
		ORDER BY day, created_at`, actionID, startDay, endDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSessions(rows)
}

func (s *Store) GetAllSessions() ([]models.TimeSession, error) {
	rows, err := s.db.Query(`SELECT ` + sessionColumns + ` FROM time_sessions ORDER BY day, created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSessions(rows)
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func insertSession(db execer, sess models.TimeSession) error {
	var startedAt, endedAt sql.NullString
	if sess.StartedAt != nil {
		startedAt = sql.NullString{String: sess.StartedAt.Format(time.RFC3339), Valid: true}
	}
	if sess.EndedAt != nil {
		endedAt = sql.NullString{String: sess.EndedAt.Format(time.RFC3339), Valid: true}
	}

	_, err := db.Exec(`
		INSERT INTO time_sessions (`+sessionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.ActionID, startedAt, endedAt, sess.DurationMin,
		sess.Day, boolToInt(sess.Manual), sess.CreatedAt.Format(time.RFC3339))
	return err
}

func collectSessions(rows *sql.Rows) ([]models.TimeSession, error) {
	var sessions []models.TimeSession
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

func scanSession(row rowScanner) (models.TimeSession, error) {
	var sess models.TimeSession
	var startedAt, endedAt sql.NullString
	var manual int
	var createdAt string

	err := row.Scan(&sess.ID, &sess.ActionID, &startedAt, &endedAt,
		&sess.DurationMin, &sess.Day, &manual, &createdAt)
	if err != nil {
		return models.TimeSession{}, err
	}

	if startedAt.Valid {
		t, err := time.Parse(time.RFC3339, startedAt.String)
		if err != nil {
			return models.TimeSession{}, fmt.Errorf("failed to parse started_at for session %s: %w", sess.ID, err)
		}
		sess.StartedAt = &t
	}
	if endedAt.Valid {
		t, err := time.Parse(time.RFC3339, endedAt.String)
		if err != nil {
			return models.TimeSession{}, fmt.Errorf("failed to parse ended_at for session %s: %w", sess.ID, err)
		}
		sess.EndedAt = &t
	}
	sess.Manual = manual != 0

	sess.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.TimeSession{}, fmt.Errorf("failed to parse created_at for session %s: %w", sess.ID, err)
	}
	return sess, nil
}
