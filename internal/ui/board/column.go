package board

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskflow/taskflow/internal/domain"
	"github.com/taskflow/taskflow/internal/ui/styles"
)

// renderColumn renders one lane with its header and task cards
func renderColumn(
	title string,
	tasks []domain.Task,
	cursorTask int,
	isActive bool,
	movingID string,
	width int,
	height int,
	s *styles.Styles,
) string {
	headerStyle := s.ColumnHeader
	if isActive {
		headerStyle = s.ColumnHeaderActive
	}

	// Header reads like "─ In Progress ─────"
	headerText := "─ " + title + " "
	remainingWidth := width - len(headerText) - 2
	if remainingWidth > 0 {
		headerText += strings.Repeat("─", remainingWidth)
	}
	header := headerStyle.Render(headerText)

	var cardStrings []string
	cardWidth := width - 4
	for i, task := range tasks {
		isCursor := isActive && i == cursorTask
		isMoving := movingID != "" && task.ID == movingID
		cardStrings = append(cardStrings, renderCard(task, isCursor, isMoving, cardWidth, s))
	}

	content := ""
	if len(cardStrings) > 0 {
		content = strings.Join(cardStrings, "\n")
	}

	columnStyle := s.Column.Width(width).Height(height)
	columnContent := columnStyle.Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, columnContent)
}
