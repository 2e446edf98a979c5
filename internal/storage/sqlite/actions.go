package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/routinely/internal/models"
)

const actionColumns = `id, category_id, name, kind, weekly_target, repeat_days,
	daily_minutes, enabled, active_from, active_until, global_order, group_order, created_at`

func (s *Store) AddAction(a models.RoutineAction) error {
	return s.UpdateAction(a)
}

func (s *Store) UpdateAction(a models.RoutineAction) error {
	kind, weeklyTarget, repeatDays, dailyMinutes := models.ScheduleColumns(a.Schedule)
	if kind == "" {
		return fmt.Errorf("action %s has no schedule", a.ID)
	}

	var activeFrom, activeUntil sql.NullString
	if a.ActiveFrom != "" {
		activeFrom = sql.NullString{String: a.ActiveFrom, Valid: true}
	}
	if a.ActiveUntil != "" {
		activeUntil = sql.NullString{String: a.ActiveUntil, Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO actions (`+actionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			category_id = excluded.category_id,
			name = excluded.name,
			kind = excluded.kind,
			weekly_target = excluded.weekly_target,
			repeat_days = excluded.repeat_days,
			daily_minutes = excluded.daily_minutes,
			enabled = excluded.enabled,
			active_from = excluded.active_from,
			active_until = excluded.active_until,
			global_order = excluded.global_order,
			group_order = excluded.group_order`,
		a.ID, a.CategoryID, a.Name, string(kind), weeklyTarget, int(repeatDays),
		dailyMinutes, boolToInt(a.Enabled), activeFrom, activeUntil,
		a.GlobalOrder, a.GroupOrder, a.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetAction(id string) (models.RoutineAction, error) {
	row := s.db.QueryRow(`SELECT `+actionColumns+` FROM actions WHERE id = ?`, id)
	return scanAction(row)
}

func (s *Store) GetActionByName(name string) (models.RoutineAction, error) {
	row := s.db.QueryRow(`SELECT `+actionColumns+` FROM actions WHERE name = ?`, name)
	return scanAction(row)
}

func (s *Store) GetActions(categoryID string) ([]models.RoutineAction, error) {
	rows, err := s.db.Query(`
		SELECT `+actionColumns+` FROM actions
		WHERE category_id = ?
		ORDER BY group_order, created_at`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectActions(rows)
}

func (s *Store) GetAllActions() ([]models.RoutineAction, error) {
	rows, err := s.db.Query(`SELECT ` + actionColumns + ` FROM actions ORDER BY global_order, created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectActions(rows)
}

func (s *Store) DeleteAction(id string) error {
	result, err := s.db.Exec(`DELETE FROM actions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("action not found")
	}
	return nil
}

func collectActions(rows *sql.Rows) ([]models.RoutineAction, error) {
	var actions []models.RoutineAction
	for rows.Next() {
		a, err := scanAction(rows)
		if err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

func scanAction(row rowScanner) (models.RoutineAction, error) {
	var a models.RoutineAction
	var kind string
	var weeklyTarget, repeatDays, dailyMinutes, enabled int
	var activeFrom, activeUntil sql.NullString
	var createdAt string

	err := row.Scan(&a.ID, &a.CategoryID, &a.Name, &kind, &weeklyTarget, &repeatDays,
		&dailyMinutes, &enabled, &activeFrom, &activeUntil, &a.GlobalOrder, &a.GroupOrder, &createdAt)
	if err != nil {
		return models.RoutineAction{}, err
	}

	a.Schedule, err = models.ScheduleFromRow(models.ActionKind(kind), weeklyTarget,
		models.WeekdayMask(repeatDays), dailyMinutes)
	if err != nil {
		return models.RoutineAction{}, fmt.Errorf("action %s: %w", a.ID, err)
	}

	a.Enabled = enabled != 0
	a.ActiveFrom = activeFrom.String
	a.ActiveUntil = activeUntil.String

	a.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.RoutineAction{}, fmt.Errorf("failed to parse created_at for action %s: %w", a.ID, err)
	}
	return a, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
