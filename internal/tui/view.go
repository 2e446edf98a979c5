package tui

import (
	"fmt"
	"strings"

	"github.com/julianstephens/routinely/internal/calendar"
)

func (m Model) View() string {
	var b strings.Builder

	today := calendar.DayString(m.clock.Now())
	b.WriteString(titleStyle.Render(fmt.Sprintf("routinely · %s", today)))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("error: %v", m.err)))
		b.WriteString("\n")
		return docStyle.Render(b.String())
	}

	if len(m.list.Items()) == 0 {
		b.WriteString("Nothing scheduled today.\n")
	} else {
		b.WriteString(m.list.View())
		b.WriteString("\n")
	}

	if m.score != nil {
		b.WriteString(scoreStyle.Render(
			fmt.Sprintf("Done: %d/%d (%d%%)", m.score.Completed, m.score.Target, m.score.Percent())))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m))

	return docStyle.Render(b.String())
}
