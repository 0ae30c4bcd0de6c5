package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/hansollee/matzip/internal/query"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateForm:
		content = m.form.View()
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	default:
		content = docStyle.Render(m.recordList.View())
	}

	sections := []string{m.viewHeader(), content}
	if m.errMsg != "" {
		sections = append(sections, errorStyle.Render(m.errMsg))
	}
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewHeader() string {
	sortLabel := "latest"
	if m.sortMode == query.SortRatingHigh {
		sortLabel = "rating"
	}

	stats := fmt.Sprintf("%d records | %d this week | avg %.1f | streak %dd | sort: %s",
		m.summary.Total, m.summary.RecentCount, m.summary.AverageRating,
		m.summary.StreakDays, sortLabel)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render("matzip"),
		statsStyle.Render(stats),
	)
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete record #%d? This cannot be undone.", m.deleteID)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
