package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/routinely/internal/calendar"
	"github.com/julianstephens/routinely/internal/models"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Refresh):
			m.reload()
			m.status = ""
			return m, nil

		case key.Matches(msg, m.keys.Toggle):
			if item, ok := m.list.SelectedItem().(Item); ok {
				m.toggleMark(item)
			}
			return m, nil

		case key.Matches(msg, m.keys.Timer):
			if item, ok := m.list.SelectedItem().(Item); ok {
				m.toggleTimer(item)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) toggleMark(item Item) {
	now := m.clock.Now()
	day := calendar.DayString(calendar.StartOfDay(now))

	marked, err := m.store.ToggleMark(item.Action.ID, day, now)
	if err != nil {
		m.status = fmt.Sprintf("error: %v", err)
		return
	}
	if marked {
		m.status = fmt.Sprintf("marked %q done", item.Action.Name)
	} else {
		m.status = fmt.Sprintf("unmarked %q", item.Action.Name)
	}
	m.reload()
}

func (m *Model) toggleTimer(item Item) {
	if item.Action.Kind() != models.KindTimeAccumulated {
		m.status = fmt.Sprintf("%q is not time-accumulated", item.Action.Name)
		return
	}

	if item.Running {
		session, err := m.tracker.Stop(item.Action)
		if err != nil {
			m.status = fmt.Sprintf("error: %v", err)
			return
		}
		if session != nil {
			m.status = fmt.Sprintf("stopped timer for %q", item.Action.Name)
		}
	} else {
		started, err := m.tracker.Start(item.Action)
		if err != nil {
			m.status = fmt.Sprintf("error: %v", err)
			return
		}
		if started {
			m.status = fmt.Sprintf("started timer for %q", item.Action.Name)
		}
	}
	m.reload()
}
