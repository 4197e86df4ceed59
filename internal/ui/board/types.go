package board

import "github.com/taskflow/taskflow/internal/domain"

// Column is one rendered lane of the board
type Column struct {
	Title string
	Tasks []domain.Task
}

// Cursor represents the current cursor position
type Cursor struct {
	Column int
	Task   int
}

// FromGroups converts a grouped task list into renderable columns
func FromGroups(groups []domain.Group) []Column {
	cols := make([]Column, 0, len(groups))
	for _, g := range groups {
		cols = append(cols, Column{Title: g.Label, Tasks: g.Tasks})
	}
	return cols
}

// Clamp snaps the cursor back onto the board after the columns change
// underneath it, e.g. when a filter empties a group.
func (c Cursor) Clamp(columns []Column) Cursor {
	if len(columns) == 0 {
		return Cursor{}
	}
	if c.Column >= len(columns) {
		c.Column = len(columns) - 1
	}
	if c.Column < 0 {
		c.Column = 0
	}
	n := len(columns[c.Column].Tasks)
	if n == 0 {
		c.Task = 0
	} else if c.Task >= n {
		c.Task = n - 1
	} else if c.Task < 0 {
		c.Task = 0
	}
	return c
}
