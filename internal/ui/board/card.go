package board

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskflow/taskflow/internal/domain"
	"github.com/taskflow/taskflow/internal/ui/styles"
)

// renderCard renders one task card
func renderCard(task domain.Task, isCursor bool, isMoving bool, width int, s *styles.Styles) string {
	cardStyle := s.Card
	if isMoving {
		cardStyle = s.CardMoving
	} else if isCursor {
		cardStyle = s.CardActive
	}
	cardStyle = cardStyle.Width(width)

	// Name, truncated to the card width
	maxNameLen := width - 4
	name := task.Name
	if maxNameLen > 1 && len(name) > maxNameLen {
		name = name[:maxNameLen-1] + "…"
	}
	cursor := ""
	if isCursor {
		cursor = "▶"
	}
	nameLine := cursor + s.TaskName.Render(name)

	statusBadge := s.StatusBadge(task.Status.String()).Render(task.Status.Label())
	badges := []string{statusBadge}
	if task.Assignee != nil {
		badges = append(badges, " ", s.AssigneeBadge.Render(task.Assignee.Initials()))
	}
	badgeLine := lipgloss.JoinHorizontal(lipgloss.Left, badges...)

	meta := metaLine(task, s)

	lines := []string{nameLine, badgeLine}
	if meta != "" {
		lines = append(lines, meta)
	}
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// metaLine collects the secondary facts shown under the badges: progress,
// due date and budget health. Tasks with none of them get no meta line.
func metaLine(task domain.Task, s *styles.Styles) string {
	var parts []string
	if task.Progress > 0 {
		parts = append(parts, fmt.Sprintf("%d%%", task.Progress))
	}
	if task.DueDate != nil {
		parts = append(parts, "due "+task.DueDate.Format("Jan 2"))
	}
	if task.Budget > 0 {
		remaining := task.BudgetRemaining()
		if remaining < 0 {
			parts = append(parts, s.OverBudget.Render(fmt.Sprintf("%.0f over", -remaining)))
		} else {
			parts = append(parts, fmt.Sprintf("%.0f left", remaining))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += " · " + p
	}
	return s.TaskMeta.Render(out)
}

// RenderCard is the exported version for testing
func RenderCard(task domain.Task, isCursor bool, isMoving bool, width int, s *styles.Styles) string {
	return renderCard(task, isCursor, isMoving, width, s)
}
