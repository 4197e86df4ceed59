package domain

import "strings"

// GroupBy selects the field used to partition a task list for display
type GroupBy string

const (
	GroupByNone     GroupBy = "none"
	GroupByStatus   GroupBy = "status"
	GroupByAssignee GroupBy = "assignee"
	GroupByPhase    GroupBy = "phase"
	GroupBySprint   GroupBy = "sprint"
)

// GroupKeys returns the grouping keys in cycle order for the UI
func GroupKeys() []GroupBy {
	return []GroupBy{GroupByNone, GroupByStatus, GroupByAssignee, GroupByPhase, GroupBySprint}
}

// Label returns the display label for a grouping key
func (g GroupBy) Label() string {
	switch g {
	case GroupByStatus:
		return "Status"
	case GroupByAssignee:
		return "Assignee"
	case GroupByPhase:
		return "Phase"
	case GroupBySprint:
		return "Sprint"
	default:
		return "None"
	}
}

// Group is one bucket of the partitioned task list
type Group struct {
	Label string
	Tasks []Task
}

// Labels for tasks that don't resolve to a concrete group value
const (
	UnassignedLabel = "Unassigned"
	AllTasksLabel   = "All Tasks"
	NoSprintLabel   = "No Sprint"
)

// MatchesSearch reports whether the task matches a case-insensitive
// substring search over its name and description. An empty query matches
// everything.
func (t Task) MatchesSearch(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(t.Name), q) ||
		strings.Contains(strings.ToLower(t.Description), q)
}

// GroupTasks partitions tasks into ordered groups by the given key.
//
// Search filtering is applied before grouping, so a task must match the
// query to appear in any group. The partition is stable: tasks keep their
// relative input order within each group. Groups that would be empty after
// filtering are absent from the result, so callers must not assume a fixed
// label set.
//
// Group label resolution:
//   - phase: phase-id lookup against the given phase list; dangling or nil
//     references group under "No Phase"
//   - assignee: nil assignees group under "Unassigned"
//   - sprint: nil sprints group under "No Sprint"
//   - none: a single "All Tasks" group
func GroupTasks(tasks []Task, key GroupBy, query string, phases PhaseList) []Group {
	filtered := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.MatchesSearch(query) {
			filtered = append(filtered, t)
		}
	}

	if key == GroupByNone || key == "" {
		if len(filtered) == 0 {
			return nil
		}
		return []Group{{Label: AllTasksLabel, Tasks: filtered}}
	}

	labelFor := func(t Task) string {
		switch key {
		case GroupByStatus:
			return t.Status.Label()
		case GroupByAssignee:
			if t.Assignee == nil {
				return UnassignedLabel
			}
			return t.Assignee.Name
		case GroupByPhase:
			return phases.LabelFor(t.PhaseID)
		case GroupBySprint:
			if t.Sprint == nil || *t.Sprint == "" {
				return NoSprintLabel
			}
			return *t.Sprint
		default:
			return AllTasksLabel
		}
	}

	byLabel := make(map[string][]Task)
	var seen []string
	for _, t := range filtered {
		label := labelFor(t)
		if _, ok := byLabel[label]; !ok {
			seen = append(seen, label)
		}
		byLabel[label] = append(byLabel[label], t)
	}

	// Status and phase groups follow their domain order; other keys keep
	// first-appearance order.
	order := seen
	switch key {
	case GroupByStatus:
		order = order[:0]
		for _, s := range Statuses() {
			if _, ok := byLabel[s.Label()]; ok {
				order = append(order, s.Label())
			}
		}
	case GroupByPhase:
		order = order[:0]
		for _, p := range phases {
			if _, ok := byLabel[p.Name]; ok {
				order = append(order, p.Name)
			}
		}
		if _, ok := byLabel[NoPhaseLabel]; ok {
			order = append(order, NoPhaseLabel)
		}
	}

	groups := make([]Group, 0, len(order))
	for _, label := range order {
		groups = append(groups, Group{Label: label, Tasks: byLabel[label]})
	}
	return groups
}
