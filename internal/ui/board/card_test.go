package board

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taskflow/taskflow/internal/domain"
	"github.com/taskflow/taskflow/internal/ui/styles"
)

func TestRenderCard_ShowsNameAndStatus(t *testing.T) {
	s := styles.New()
	task := domain.Task{
		ID:     "t1",
		Name:   "Design homepage",
		Status: domain.StatusInProgress,
	}

	out := RenderCard(task, false, false, 40, s)

	assert.Contains(t, out, "Design homepage")
	assert.Contains(t, out, "In Progress")
}

func TestRenderCard_CursorIndicator(t *testing.T) {
	s := styles.New()
	task := domain.Task{ID: "t1", Name: "Audit", Status: domain.StatusTodo}

	withCursor := RenderCard(task, true, false, 40, s)
	withoutCursor := RenderCard(task, false, false, 40, s)

	assert.Contains(t, withCursor, "▶")
	assert.NotContains(t, withoutCursor, "▶")
}

func TestRenderCard_AssigneeInitials(t *testing.T) {
	s := styles.New()
	task := domain.Task{
		ID:       "t1",
		Name:     "Audit",
		Status:   domain.StatusTodo,
		Assignee: &domain.User{ID: "u1", Name: "Alice Moreau"},
	}

	out := RenderCard(task, false, false, 40, s)

	assert.Contains(t, out, "AM")
}

func TestRenderCard_MetaLine(t *testing.T) {
	s := styles.New()
	due := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	task := domain.Task{
		ID:       "t1",
		Name:     "Build",
		Status:   domain.StatusInProgress,
		Progress: 60,
		DueDate:  &due,
		Budget:   3000,
		Spent:    1200,
	}

	out := RenderCard(task, false, false, 60, s)

	assert.Contains(t, out, "60%")
	assert.Contains(t, out, "due Mar 14")
	assert.Contains(t, out, "1800 left")
}

func TestRenderCard_OverBudget(t *testing.T) {
	s := styles.New()
	task := domain.Task{
		ID:     "t1",
		Name:   "Wireframes",
		Status: domain.StatusInProgress,
		Budget: 3000,
		Spent:  3400,
	}

	out := RenderCard(task, false, false, 60, s)

	assert.Contains(t, out, "400 over")
}

func TestRenderCard_TruncatesLongNames(t *testing.T) {
	s := styles.New()
	task := domain.Task{
		ID:     "t1",
		Name:   "An exceedingly long task name that cannot possibly fit on a narrow card",
		Status: domain.StatusTodo,
	}

	out := RenderCard(task, false, false, 24, s)

	assert.Contains(t, out, "…")
	assert.NotContains(t, out, "possibly fit")
}
