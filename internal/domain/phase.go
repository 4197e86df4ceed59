package domain

// Phase is a project-scoped grouping bucket for tasks. Tasks reference
// phases by ID only; display labels are always resolved through a lookup
// so renamed phases never leave stale names behind.
type Phase struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color,omitempty"`
	ProjectID string `json:"project_id"`
}

// NoPhaseLabel is the group label for tasks whose phase reference does not
// resolve within the current project's phase list.
const NoPhaseLabel = "No Phase"

// PhaseList is an ordered list of a project's phases
type PhaseList []Phase

// LabelFor resolves a task's phase reference to a display label.
// A nil or dangling reference yields NoPhaseLabel.
func (pl PhaseList) LabelFor(phaseID *string) string {
	if phaseID == nil {
		return NoPhaseLabel
	}
	for _, p := range pl {
		if p.ID == *phaseID {
			return p.Name
		}
	}
	return NoPhaseLabel
}

// ByID returns the phase with the given id, if present
func (pl PhaseList) ByID(id string) (Phase, bool) {
	for _, p := range pl {
		if p.ID == id {
			return p, true
		}
	}
	return Phase{}, false
}

// DefaultPhases returns the fallback phase set used when a project's
// phases cannot be fetched, so the board always has columns to show.
func DefaultPhases(projectID string) PhaseList {
	return PhaseList{
		{ID: "planning", Name: "Planning", Color: "#8b5cf6", ProjectID: projectID},
		{ID: "execution", Name: "Execution", Color: "#3b82f6", ProjectID: projectID},
		{ID: "review", Name: "Review", Color: "#f59e0b", ProjectID: projectID},
	}
}
