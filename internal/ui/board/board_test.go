package board

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskflow/taskflow/internal/domain"
	"github.com/taskflow/taskflow/internal/ui/styles"
)

func twoColumns() []Column {
	return []Column{
		{Title: "To Do", Tasks: []domain.Task{
			{ID: "t1", Name: "Audit", Status: domain.StatusTodo},
			{ID: "t2", Name: "Sitemap", Status: domain.StatusTodo},
		}},
		{Title: "Done", Tasks: []domain.Task{
			{ID: "t3", Name: "Kickoff", Status: domain.StatusDone},
		}},
	}
}

func TestFromGroups(t *testing.T) {
	groups := []domain.Group{
		{Label: "To Do", Tasks: []domain.Task{{ID: "t1"}}},
		{Label: "No Phase", Tasks: []domain.Task{{ID: "t2"}}},
	}

	cols := FromGroups(groups)

	assert.Equal(t, []Column{
		{Title: "To Do", Tasks: []domain.Task{{ID: "t1"}}},
		{Title: "No Phase", Tasks: []domain.Task{{ID: "t2"}}},
	}, cols)
}

func TestRender_ShowsAllColumns(t *testing.T) {
	out := Render(twoColumns(), Cursor{}, "", styles.New(), 120, 30)

	assert.Contains(t, out, "To Do")
	assert.Contains(t, out, "Done")
	assert.Contains(t, out, "Audit")
	assert.Contains(t, out, "Kickoff")
}

func TestRender_EmptyBoard(t *testing.T) {
	assert.Empty(t, Render(nil, Cursor{}, "", styles.New(), 120, 30))
}

func TestCursor_Clamp(t *testing.T) {
	cols := twoColumns()

	tests := []struct {
		name string
		in   Cursor
		want Cursor
	}{
		{"in bounds", Cursor{Column: 1, Task: 0}, Cursor{Column: 1, Task: 0}},
		{"column past end", Cursor{Column: 5, Task: 0}, Cursor{Column: 1, Task: 0}},
		{"task past end", Cursor{Column: 0, Task: 9}, Cursor{Column: 0, Task: 1}},
		{"negative", Cursor{Column: -1, Task: -1}, Cursor{Column: 0, Task: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Clamp(cols))
		})
	}
}

func TestCursor_Clamp_NoColumns(t *testing.T) {
	assert.Equal(t, Cursor{}, Cursor{Column: 2, Task: 3}.Clamp(nil))
}
