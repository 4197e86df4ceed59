// Package stub implements enough of the TaskFlow backend REST surface in
// memory to run the TUI offline and to integration-test the API clients.
//
// It deliberately mimics the real backend's rough edges: deals are emitted
// with camelCase keys and display-cased stage labels, while tasks use
// snake_case, so the client-side normalization boundary gets exercised.
package stub

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/taskflow/taskflow/internal/domain"
)

// Server is an in-memory REST backend
type Server struct {
	mu       sync.Mutex
	tasks    map[string]domain.Task
	phases   map[string]domain.Phase
	deals    map[string]domain.Deal
	projects map[string]domain.Project
	users    map[string]domain.User
	logger   *slog.Logger
}

// NewServer creates an empty stub backend
func NewServer(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		tasks:    make(map[string]domain.Task),
		phases:   make(map[string]domain.Phase),
		deals:    make(map[string]domain.Deal),
		projects: make(map[string]domain.Project),
		users:    make(map[string]domain.User),
		logger:   logger,
	}
}

// Handler builds the mux router for the stub REST surface
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.health).Methods(http.MethodGet)

	r.HandleFunc("/tasks", s.listTasks).Methods(http.MethodGet)
	r.HandleFunc("/tasks", s.createTask).Methods(http.MethodPost)
	r.HandleFunc("/tasks/{id}", s.updateTask).Methods(http.MethodPatch)
	r.HandleFunc("/tasks/{id}", s.deleteTask).Methods(http.MethodDelete)
	r.HandleFunc("/projects/{id}/tasks", s.listProjectTasks).Methods(http.MethodGet)

	r.HandleFunc("/phases", s.createPhase).Methods(http.MethodPost)
	r.HandleFunc("/phases/{id}", s.deletePhase).Methods(http.MethodDelete)
	r.HandleFunc("/projects/{id}/phases", s.listProjectPhases).Methods(http.MethodGet)

	r.HandleFunc("/deals", s.listDeals).Methods(http.MethodGet)
	r.HandleFunc("/deals", s.createDeal).Methods(http.MethodPost)
	r.HandleFunc("/deals/{id}", s.updateDeal).Methods(http.MethodPatch)
	r.HandleFunc("/deals/{id}", s.deleteDeal).Methods(http.MethodDelete)

	r.HandleFunc("/projects", s.listProjects).Methods(http.MethodGet)
	r.HandleFunc("/projects/{id}", s.getProject).Methods(http.MethodGet)
	r.HandleFunc("/users", s.listUsers).Methods(http.MethodGet)
	return r
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listTasks(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.sortedTasks(""))
}

func (s *Server) listProjectTasks(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.sortedTasks(projectID))
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var t domain.Task
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeError(w, http.StatusBadRequest, "invalid task payload")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Order == 0 {
		t.Order = len(s.sortedTasks(t.ProjectID)) + 1
	}
	now := time.Now().UTC()
	t.CreatedAt, t.UpdatedAt = now, now
	s.tasks[t.ID] = t
	s.logger.Debug("stub task created", "id", t.ID, "project_id", t.ProjectID)
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid patch payload")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		writeError(w, http.StatusNotFound, "task not found: "+id)
		return
	}
	applyTaskFields(&t, fields)
	t.UpdatedAt = time.Now().UTC()
	s.tasks[id] = t
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		writeError(w, http.StatusNotFound, "task not found: "+id)
		return
	}
	delete(s.tasks, id)
	s.logger.Debug("stub task deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listProjectPhases(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Phase{}
	for _, p := range s.phases {
		if p.ProjectID == projectID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createPhase(w http.ResponseWriter, r *http.Request) {
	var p domain.Phase
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid phase payload")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.phases[p.ID] = p
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) deletePhase(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.phases[id]; !ok {
		writeError(w, http.StatusNotFound, "phase not found: "+id)
		return
	}
	// tasks keep their dangling phase reference on purpose
	delete(s.phases, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listDeals(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]any, 0, len(s.deals))
	for _, d := range s.deals {
		out = append(out, dealWire(d))
	}
	sort.Slice(out, func(i, j int) bool { return out[i]["id"].(string) < out[j]["id"].(string) })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createDeal(w http.ResponseWriter, r *http.Request) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid deal payload")
		return
	}
	var d domain.Deal
	data, _ := json.Marshal(raw)
	if err := json.Unmarshal(data, &d); err != nil {
		writeError(w, http.StatusBadRequest, "invalid deal payload")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	d.CreatedAt, d.UpdatedAt = now, now
	s.deals[d.ID] = d
	writeJSON(w, http.StatusCreated, dealWire(d))
}

func (s *Server) updateDeal(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid patch payload")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.deals[id]
	if !ok {
		writeError(w, http.StatusNotFound, "deal not found: "+id)
		return
	}
	applyDealFields(&d, fields)
	d.UpdatedAt = time.Now().UTC()
	s.deals[id] = d
	writeJSON(w, http.StatusOK, dealWire(d))
}

func (s *Server) deleteDeal(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.deals[id]; !ok {
		writeError(w, http.StatusNotFound, "deal not found: "+id)
		return
	}
	delete(s.deals, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listProjects(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		writeError(w, http.StatusNotFound, "project not found: "+id)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) listUsers(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) sortedTasks(projectID string) []domain.Task {
	out := []domain.Task{}
	for _, t := range s.tasks {
		if projectID == "" || t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// dealWire renders a deal the way the real backend does: camelCase keys
// and a display-cased stage label.
func dealWire(d domain.Deal) map[string]any {
	m := map[string]any{
		"id":          d.ID,
		"name":        d.Name,
		"value":       d.Value,
		"currency":    d.Currency,
		"stage":       d.Stage.Label(),
		"probability": d.Probability,
	}
	if d.OrganizationID != "" {
		m["organizationId"] = d.OrganizationID
	}
	if d.Assignee != nil {
		m["assignee"] = d.Assignee
	}
	if d.ExpectedCloseDate != nil {
		m["expectedCloseDate"] = d.ExpectedCloseDate.Format(time.RFC3339)
	}
	return m
}

func applyTaskFields(t *domain.Task, fields map[string]any) {
	for k, v := range fields {
		switch k {
		case "name":
			t.Name, _ = v.(string)
		case "description":
			t.Description, _ = v.(string)
		case "status":
			if s, ok := v.(string); ok {
				t.Status = domain.NormalizeStatus(s)
			}
		case "progress":
			t.Progress = asInt(v)
		case "order":
			t.Order = asInt(v)
		case "budget":
			t.Budget = asFloat(v)
		case "spent":
			t.Spent = asFloat(v)
		case "estimated_hours":
			t.EstimatedHours = asFloat(v)
		case "actual_hours":
			t.ActualHours = asFloat(v)
		case "phase_id":
			if s, ok := v.(string); ok && s != "" {
				t.PhaseID = &s
			} else {
				t.PhaseID = nil
			}
		case "sprint":
			if s, ok := v.(string); ok && s != "" {
				t.Sprint = &s
			} else {
				t.Sprint = nil
			}
		}
	}
}

func applyDealFields(d *domain.Deal, fields map[string]any) {
	for k, v := range fields {
		switch k {
		case "name":
			d.Name, _ = v.(string)
		case "value":
			d.Value = asFloat(v)
		case "stage":
			if s, ok := v.(string); ok {
				d.Stage = domain.NormalizeStage(s)
			}
		case "probability":
			d.Probability = asInt(v)
		}
	}
}

func asFloat(v any) float64 {
	f, _ := v.(float64)
	return f
}

func asInt(v any) int {
	return int(asFloat(v))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
