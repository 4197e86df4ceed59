package board

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/taskflow/taskflow/internal/ui/styles"
)

// Render renders the full board, one column per group
func Render(
	columns []Column,
	cursor Cursor,
	movingID string,
	s *styles.Styles,
	width int,
	height int,
) string {
	if len(columns) == 0 {
		return ""
	}

	columnWidth := width / len(columns)

	var columnStrings []string
	for i, col := range columns {
		isActive := i == cursor.Column
		cursorTask := 0
		if isActive {
			cursorTask = cursor.Task
		}

		columnStr := renderColumn(
			col.Title,
			col.Tasks,
			cursorTask,
			isActive,
			movingID,
			columnWidth,
			height,
			s,
		)

		sized := lipgloss.NewStyle().Width(columnWidth).Height(height).Render(columnStr)
		columnStrings = append(columnStrings, sized)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, columnStrings...)
}
