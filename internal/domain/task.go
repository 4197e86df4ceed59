// Package domain contains core business types for TaskFlow and the pure
// engines (grouping, reorder) that back the board views.
package domain

import (
	"strings"
	"time"
)

// Task represents a single work item within a project
type Task struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	Status         Status     `json:"status"`
	Assignee       *User      `json:"assignee,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	Budget         float64    `json:"budget"`
	Spent          float64    `json:"spent"`
	EstimatedHours float64    `json:"estimated_hours"`
	ActualHours    float64    `json:"actual_hours"`
	Progress       int        `json:"progress"`
	PhaseID        *string    `json:"phase_id,omitempty"`
	ProjectID      string     `json:"project_id"`
	Sprint         *string    `json:"sprint,omitempty"`
	Order          int        `json:"order"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// BudgetRemaining returns budget minus spent. Overspent tasks produce a
// negative remainder; the value is never clamped.
func (t Task) BudgetRemaining() float64 {
	return t.Budget - t.Spent
}

// AssigneeName returns the assignee's display name, or "Unassigned"
func (t Task) AssigneeName() string {
	if t.Assignee == nil {
		return "Unassigned"
	}
	return t.Assignee.Name
}

// Status represents task workflow status
type Status string

const (
	StatusNew        Status = "new"
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusInReview   Status = "in_review"
	StatusReady      Status = "ready"
	StatusDone       Status = "done"
)

// Statuses returns every status in workflow order
func Statuses() []Status {
	return []Status{StatusNew, StatusTodo, StatusInProgress, StatusInReview, StatusReady, StatusDone}
}

// statusAliases maps the loose status strings observed from the external
// API onto canonical values. Lookup keys are lowercased with spaces and
// hyphens folded to underscores.
var statusAliases = map[string]Status{
	"new":         StatusNew,
	"open":        StatusNew,
	"todo":        StatusTodo,
	"to_do":       StatusTodo,
	"backlog":     StatusTodo,
	"in_progress": StatusInProgress,
	"inprogress":  StatusInProgress,
	"doing":       StatusInProgress,
	"in_review":   StatusInReview,
	"review":      StatusInReview,
	"ready":       StatusReady,
	"done":        StatusDone,
	"completed":   StatusDone,
	"complete":    StatusDone,
	"closed":      StatusDone,
}

// NormalizeStatus maps an external status string to a canonical Status.
// Unrecognized values resolve to StatusNew; the function never fails.
func NormalizeStatus(raw string) Status {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	if s, ok := statusAliases[key]; ok {
		return s
	}
	return StatusNew
}

// Label returns the human display label for a status
func (s Status) Label() string {
	switch s {
	case StatusNew:
		return "New"
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusInReview:
		return "In Review"
	case StatusReady:
		return "Ready"
	case StatusDone:
		return "Done"
	default:
		return string(s)
	}
}

// String returns the wire string
func (s Status) String() string {
	return string(s)
}

// Next returns the following workflow status, saturating at done
func (s Status) Next() Status {
	all := Statuses()
	for i, st := range all {
		if st == s && i+1 < len(all) {
			return all[i+1]
		}
	}
	return StatusDone
}

// Prev returns the preceding workflow status, saturating at new
func (s Status) Prev() Status {
	all := Statuses()
	for i, st := range all {
		if st == s && i > 0 {
			return all[i-1]
		}
	}
	return StatusNew
}

// User is a lightweight reference to an assignable person
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Initials derives up to two uppercase initials from the user's name.
// Empty names yield "?".
func (u User) Initials() string {
	fields := strings.Fields(u.Name)
	if len(fields) == 0 {
		return "?"
	}
	first := []rune(fields[0])
	if len(fields) == 1 {
		return strings.ToUpper(string(first[0]))
	}
	last := []rune(fields[len(fields)-1])
	return strings.ToUpper(string(first[0]) + string(last[0]))
}
