// Package tracker runs the timer state machine for time-accumulated actions.
package tracker

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/routinely/internal/calendar"
	"github.com/julianstephens/routinely/internal/logger"
	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/storage"
)

// Tracker starts and stops time sessions against the store. Start and Stop
// are deliberately forgiving: starting an already-running timer or stopping
// an idle one is a silent no-op reported through the returned bool, never an
// error.
type Tracker struct {
	store storage.Provider
	clock calendar.Clock
}

func New(store storage.Provider, clock calendar.Clock) *Tracker {
	return &Tracker{store: store, clock: clock}
}

// Start opens a session for the action, attributed to today. It reports false
// without side effects when the action already has an ongoing session.
func (t *Tracker) Start(action models.RoutineAction) (bool, error) {
	now := t.clock.Now()
	session := models.TimeSession{
		ID:        uuid.NewString(),
		ActionID:  action.ID,
		StartedAt: &now,
		Day:       calendar.DayString(now),
		CreatedAt: now,
	}
	started, err := t.store.StartSession(session)
	if err != nil {
		return false, fmt.Errorf("failed to start timer for %q: %w", action.Name, err)
	}
	if !started {
		logger.Debug("timer already running", "action", action.Name)
	}
	return started, nil
}

// Stop ends the action's ongoing session, persisting its duration, and
// returns the stopped session, or nil when none was running. The session
// keeps the day it was attributed at start, even when stopped after
// midnight, so callers report against session.Day rather than today. If the
// stop pushes the attributed day's accumulated minutes past the action's
// daily target, the day is marked complete.
func (t *Tracker) Stop(action models.RoutineAction) (*models.TimeSession, error) {
	now := t.clock.Now()
	session, err := t.store.StopSession(action.ID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to stop timer for %q: %w", action.Name, err)
	}
	if session == nil {
		logger.Debug("no timer running", "action", action.Name)
		return nil, nil
	}
	if err := t.markIfTargetReached(action, session.Day, now); err != nil {
		return session, err
	}
	return session, nil
}

// Log records a finished session of the given whole minutes against a day,
// without going through start/stop. Used for after-the-fact entries.
func (t *Tracker) Log(action models.RoutineAction, day string, minutes int, now time.Time) error {
	if minutes <= 0 {
		return fmt.Errorf("logged minutes must be positive, got %d", minutes)
	}
	session := models.TimeSession{
		ID:          uuid.NewString(),
		ActionID:    action.ID,
		DurationMin: minutes,
		Day:         day,
		Manual:      true,
		CreatedAt:   now,
	}
	if err := t.store.AddSession(session); err != nil {
		return fmt.Errorf("failed to log time for %q: %w", action.Name, err)
	}
	return t.markIfTargetReached(action, day, now)
}

// Status returns the action's ongoing session and its live elapsed minutes,
// or nil when the timer is idle.
func (t *Tracker) Status(action models.RoutineAction) (*models.TimeSession, int, error) {
	session, err := t.store.GetOngoingSession(action.ID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read timer for %q: %w", action.Name, err)
	}
	if session == nil {
		return nil, 0, nil
	}
	return session, session.ElapsedMin(t.clock.Now()), nil
}

// markIfTargetReached creates the day's completion mark when the accumulated
// minutes meet the action's daily target. Mark creation is idempotent, so
// re-crossing the threshold on a later stop is harmless.
func (t *Tracker) markIfTargetReached(action models.RoutineAction, day string, now time.Time) error {
	target, ok := action.Schedule.(models.TimeTarget)
	if !ok || target.DailyMinutes <= 0 {
		return nil
	}
	sessions, err := t.store.GetSessions(action.ID, day, day)
	if err != nil {
		return fmt.Errorf("failed to read sessions for %q: %w", action.Name, err)
	}
	total := 0
	for _, s := range sessions {
		total += s.ElapsedMin(now)
	}
	if total < target.DailyMinutes {
		return nil
	}
	if err := t.store.EnsureMark(action.ID, day, now); err != nil {
		return fmt.Errorf("failed to mark %q complete: %w", action.Name, err)
	}
	logger.Debug("daily time target reached", "action", action.Name, "day", day, "minutes", total)
	return nil
}
