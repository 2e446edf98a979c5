package storage

import (
	"time"

	"github.com/julianstephens/routinely/internal/models"
)

// Provider is the persistence boundary. The aggregation engine never talks to
// a Provider directly; it consumes the complete in-memory collections a
// Provider materializes.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	GetConfigPath() string

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Years
	AddYear(models.Year) error
	GetYear(year int) (models.Year, error)
	GetAllYears() ([]models.Year, error)
	DeleteYear(id string) error

	// Categories
	AddCategory(models.Category) error
	GetCategory(id string) (models.Category, error)
	GetCategoryByName(yearID, name string) (models.Category, error)
	GetCategories(yearID string) ([]models.Category, error)
	DeleteCategory(id string) error

	// Actions
	AddAction(models.RoutineAction) error
	UpdateAction(models.RoutineAction) error
	GetAction(id string) (models.RoutineAction, error)
	GetActionByName(name string) (models.RoutineAction, error)
	GetActions(categoryID string) ([]models.RoutineAction, error)
	GetAllActions() ([]models.RoutineAction, error)
	DeleteAction(id string) error

	// Completion marks. ToggleMark flips the existence of the (action, day)
	// mark and reports whether the day is now marked. EnsureMark creates the
	// mark only when missing.
	ToggleMark(actionID, day string, now time.Time) (bool, error)
	EnsureMark(actionID, day string, now time.Time) error
	GetMarks(actionID, startDay, endDay string) ([]models.CompletionMark, error)
	GetAllMarks() ([]models.CompletionMark, error)

	// Time sessions. StartSession inserts the session unless the action
	// already has an ongoing one, and reports whether it started. StopSession
	// ends the ongoing session, persisting its duration; it returns nil when
	// no session was running.
	StartSession(models.TimeSession) (bool, error)
	StopSession(actionID string, now time.Time) (*models.TimeSession, error)
	GetOngoingSession(actionID string) (*models.TimeSession, error)
	AddSession(models.TimeSession) error
	GetSessions(actionID, startDay, endDay string) ([]models.TimeSession, error)
	GetAllSessions() ([]models.TimeSession, error)
}
