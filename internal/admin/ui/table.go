package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Table renders rows under headers with the theme's border colour.
func (s Styles) Table(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.renderer.NewStyle().Foreground(lipgloss.Color(s.palette.Border))).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.Header
			}
			return s.Cell
		})
	return t.Render()
}

// KeyValues renders label/value pairs one per line, labels aligned.
func (s Styles) KeyValues(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		width = max(width, lipgloss.Width(p[0]))
	}

	lines := make([]string, len(pairs))
	for i, p := range pairs {
		label := s.Label.Width(width + 2).Render(p[0])
		lines[i] = lipgloss.JoinHorizontal(lipgloss.Top, label, s.Value.Render(p[1]))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
