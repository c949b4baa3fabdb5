package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var journalTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("229")).
	MarginBottom(1)

// SessionsTable renders journal rows as a static table.
func SessionsTable(sessions []storage.Session, stats *storage.Stats) string {
	columns := []table.Column{
		{Title: "Started", Width: 16},
		{Title: "Length", Width: 9},
		{Title: "Frames", Width: 8},
		{Title: "Bricks", Width: 6},
		{Title: "End", Width: 10},
		{Title: "ID", Width: 8},
	}

	rows := make([]table.Row, len(sessions))
	for i, s := range sessions {
		rows[i] = table.Row{
			s.StartedAt.Local().Format("Jan 02 15:04:05"),
			s.Duration.Round(time.Second).String(),
			fmt.Sprintf("%d", s.Frames),
			fmt.Sprintf("%d", s.BricksLeft),
			s.EndReason,
			shortID(s.ID),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
	)

	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	st.Selected = lipgloss.NewStyle()
	t.SetStyles(st)

	var b strings.Builder
	title := "SESSIONS"
	if stats != nil && stats.Sessions > 0 {
		title = fmt.Sprintf("SESSIONS - %d played, %s total", stats.Sessions, stats.TotalTime.Round(time.Second))
	}
	b.WriteString(journalTitleStyle.Render(title))
	b.WriteString("\n")
	if len(rows) == 0 {
		b.WriteString("No sessions recorded yet.\n")
		return b.String()
	}
	b.WriteString(t.View())
	b.WriteString("\n")
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
