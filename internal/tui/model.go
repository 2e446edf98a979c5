// Package tui is the interactive daily dashboard: today's checklist with
// mark toggling and timer control.
package tui

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/routinely/internal/calendar"
	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/progress"
	"github.com/julianstephens/routinely/internal/storage"
	"github.com/julianstephens/routinely/internal/tracker"
)

type Item struct {
	Action  models.RoutineAction
	Done    bool
	Running bool
	Detail  string
}

func (i Item) Title() string {
	title := i.Action.Name
	if i.Done {
		title = "✓ " + title
	} else {
		title = "○ " + title
	}
	if i.Running {
		title += " ⏱"
	}
	return title
}

func (i Item) Description() string {
	desc := models.DescribeSchedule(i.Action.Schedule)
	if i.Detail != "" {
		desc += "  " + i.Detail
	}
	return desc
}

func (i Item) FilterValue() string { return i.Action.Name }

type KeyMap struct {
	Toggle  key.Binding
	Timer   key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys("m", " "),
			key.WithHelp("m", "toggle done"),
		),
		Timer: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "start/stop timer"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

type Model struct {
	store   storage.Provider
	clock   calendar.Clock
	tracker *tracker.Tracker
	list    list.Model
	keys    KeyMap
	help    help.Model
	score   *progress.DayScore
	status  string
	err     error
	width   int
	height  int
}

func NewModel(store storage.Provider, clock calendar.Clock) Model {
	keys := DefaultKeyMap()

	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Today"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Timer, keys.Refresh}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Timer, keys.Refresh}
	}

	m := Model{
		store:   store,
		clock:   clock,
		tracker: tracker.New(store, clock),
		list:    l,
		keys:    keys,
		help:    help.New(),
	}
	m.reload()
	return m
}

// reload rebuilds the checklist from a fresh snapshot.
func (m *Model) reload() {
	now := m.clock.Now()
	today := calendar.StartOfDay(now)
	ds := calendar.DayString(today)

	actions, err := m.store.GetAllActions()
	if err != nil {
		m.err = err
		return
	}
	marks, err := m.store.GetAllMarks()
	if err != nil {
		m.err = err
		return
	}
	sessions, err := m.store.GetAllSessions()
	if err != nil {
		m.err = err
		return
	}
	snap := progress.NewSnapshot(actions, marks, sessions)

	due := make([]models.RoutineAction, 0, len(actions))
	for _, a := range actions {
		if a.DueOn(today) {
			due = append(due, a)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		return due[i].GlobalOrder < due[j].GlobalOrder
	})

	items := make([]list.Item, len(due))
	for i, a := range due {
		item := Item{Action: a}
		switch sched := a.Schedule.(type) {
		case models.WeeklyCount:
			weekStart := calendar.StartOfWeek(today)
			n := snap.MarksBetween(a.ID, calendar.DayString(weekStart), calendar.DayString(weekStart.AddDate(0, 0, 6)))
			item.Done = snap.HasMark(a.ID, ds)
			item.Detail = fmt.Sprintf("%d/%d this week", n, sched.Target)
		case models.WeekdayRepeat:
			item.Done = snap.HasMark(a.ID, ds)
		case models.TimeTarget:
			minutes := snap.MinutesOn(a.ID, ds, now)
			item.Done = minutes >= sched.DailyMinutes
			item.Detail = fmt.Sprintf("%d/%d min", minutes, sched.DailyMinutes)
			if sess, err := m.store.GetOngoingSession(a.ID); err == nil && sess != nil {
				item.Running = true
			}
		}
		items[i] = item
	}

	m.err = nil
	m.score = progress.Daily(snap, today, now)
	m.list.SetItems(items)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Toggle, m.keys.Timer, m.keys.Refresh, m.keys.Quit}
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Toggle, m.keys.Timer},
		{m.keys.Refresh, m.keys.Quit},
	}
}
