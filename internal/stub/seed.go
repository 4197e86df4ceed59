package stub

import (
	"time"

	"github.com/taskflow/taskflow/internal/domain"
)

func strptr(s string) *string { return &s }

// SeedDemo loads a small demo dataset: one project with phases, tasks
// across statuses, a handful of pipeline deals and two users.
func (s *Server) SeedDemo() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	due := now.AddDate(0, 0, 14)

	alice := domain.User{ID: "u-alice", Name: "Alice Johnson", Color: "#f38ba8"}
	bob := domain.User{ID: "u-bob", Name: "Bob Reyes", Color: "#89b4fa"}
	s.users[alice.ID] = alice
	s.users[bob.ID] = bob

	s.projects["p-website"] = domain.Project{
		ID: "p-website", Name: "Website Relaunch", Color: "#a6e3a1", CreatedAt: now, UpdatedAt: now,
	}

	phases := []domain.Phase{
		{ID: "ph-discovery", Name: "Discovery", Color: "#cba6f7", ProjectID: "p-website"},
		{ID: "ph-build", Name: "Build", Color: "#89b4fa", ProjectID: "p-website"},
		{ID: "ph-launch", Name: "Launch", Color: "#f9e2af", ProjectID: "p-website"},
	}
	for _, p := range phases {
		s.phases[p.ID] = p
	}

	tasks := []domain.Task{
		{ID: "t-audit", Name: "Content audit", Status: domain.StatusDone, Assignee: &alice, PhaseID: strptr("ph-discovery"), ProjectID: "p-website", Budget: 2000, Spent: 1800, EstimatedHours: 16, ActualHours: 14, Progress: 100, Order: 1},
		{ID: "t-wireframes", Name: "Wireframes", Status: domain.StatusInReview, Assignee: &alice, PhaseID: strptr("ph-discovery"), ProjectID: "p-website", Budget: 3000, Spent: 3400, EstimatedHours: 24, ActualHours: 30, Progress: 90, Order: 2},
		{ID: "t-cms", Name: "CMS migration", Status: domain.StatusInProgress, Assignee: &bob, PhaseID: strptr("ph-build"), ProjectID: "p-website", Budget: 8000, Spent: 2500, EstimatedHours: 60, ActualHours: 22, Progress: 40, DueDate: &due, Order: 3},
		{ID: "t-checkout", Name: "Checkout flow", Status: domain.StatusTodo, PhaseID: strptr("ph-build"), ProjectID: "p-website", Budget: 5000, EstimatedHours: 40, Order: 4},
		{ID: "t-launch-plan", Name: "Launch comms plan", Status: domain.StatusNew, PhaseID: strptr("ph-launch"), ProjectID: "p-website", Order: 5},
	}
	for _, t := range tasks {
		t.CreatedAt, t.UpdatedAt = now, now
		s.tasks[t.ID] = t
	}

	deals := []domain.Deal{
		{ID: "d-acme", Name: "Acme retainer", Value: 48000, Currency: "USD", Stage: domain.StageNegotiation, OrganizationID: "c-acme", Assignee: &bob, Probability: 60},
		{ID: "d-initech", Name: "Initech redesign", Value: 15000, Currency: "USD", Stage: domain.StageQualifying, Probability: 25},
		{ID: "d-globex", Name: "Globex support", Value: 9000, Currency: "EUR", Stage: domain.StageClosedWon, Probability: 100},
	}
	for _, d := range deals {
		d.CreatedAt, d.UpdatedAt = now, now
		s.deals[d.ID] = d
	}
}
