package api

import (
	"encoding/json"
	"time"

	"github.com/taskflow/taskflow/internal/domain"
)

// The backend is not consistent about field naming: tasks and deals have
// been observed with snake_case and camelCase variants side by side, and
// deal stages arrive in varied casing and synonyms. Everything is folded
// into the canonical domain records here, immediately on receipt, so the
// rest of the code never branches on wire shapes.

type rawObject map[string]json.RawMessage

func (r rawObject) pick(keys ...string) (json.RawMessage, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && string(v) != "null" {
			return v, true
		}
	}
	return nil, false
}

func (r rawObject) str(keys ...string) string {
	if v, ok := r.pick(keys...); ok {
		var s string
		if json.Unmarshal(v, &s) == nil {
			return s
		}
	}
	return ""
}

func (r rawObject) strPtr(keys ...string) *string {
	if s := r.str(keys...); s != "" {
		return &s
	}
	return nil
}

func (r rawObject) num(keys ...string) float64 {
	if v, ok := r.pick(keys...); ok {
		var f float64
		if json.Unmarshal(v, &f) == nil {
			return f
		}
		// some fields arrive as numeric strings
		var s string
		if json.Unmarshal(v, &s) == nil {
			var f2 float64
			if json.Unmarshal([]byte(s), &f2) == nil {
				return f2
			}
		}
	}
	return 0
}

// wireTimeFormats are the timestamp layouts the backend emits
var wireTimeFormats = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"}

func (r rawObject) timePtr(keys ...string) *time.Time {
	s := r.str(keys...)
	if s == "" {
		return nil
	}
	for _, layout := range wireTimeFormats {
		if ts, err := time.Parse(layout, s); err == nil {
			return &ts
		}
	}
	return nil
}

func (r rawObject) timeVal(keys ...string) time.Time {
	if t := r.timePtr(keys...); t != nil {
		return *t
	}
	return time.Time{}
}

func (r rawObject) user(keys ...string) *domain.User {
	v, ok := r.pick(keys...)
	if !ok {
		return nil
	}
	var obj rawObject
	if json.Unmarshal(v, &obj) != nil {
		// a bare string is treated as the user's name
		var name string
		if json.Unmarshal(v, &name) == nil && name != "" {
			return &domain.User{Name: name}
		}
		return nil
	}
	u := domain.User{
		ID:    obj.str("id"),
		Name:  obj.str("name"),
		Color: obj.str("color"),
	}
	if u.ID == "" && u.Name == "" {
		return nil
	}
	return &u
}

// decodeTask converts one external task object into the canonical record
func decodeTask(raw json.RawMessage) (domain.Task, error) {
	var obj rawObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return domain.Task{}, err
	}
	t := domain.Task{
		ID:             obj.str("id"),
		Name:           obj.str("name", "title"),
		Description:    obj.str("description"),
		Status:         domain.NormalizeStatus(obj.str("status")),
		Assignee:       obj.user("assignee", "assigned_to", "assignedTo"),
		DueDate:        obj.timePtr("due_date", "dueDate"),
		StartDate:      obj.timePtr("start_date", "startDate"),
		EndDate:        obj.timePtr("end_date", "endDate"),
		Budget:         obj.num("budget"),
		Spent:          obj.num("spent"),
		EstimatedHours: obj.num("estimated_hours", "estimatedHours"),
		ActualHours:    obj.num("actual_hours", "actualHours"),
		Progress:       int(obj.num("progress")),
		PhaseID:        obj.strPtr("phase_id", "phaseId", "phaseID"),
		ProjectID:      obj.str("project_id", "projectId"),
		Sprint:         obj.strPtr("sprint"),
		Order:          int(obj.num("order", "position")),
		CreatedAt:      obj.timeVal("created_at", "createdAt"),
		UpdatedAt:      obj.timeVal("updated_at", "updatedAt"),
	}
	return t, nil
}

// decodeTasks converts a list payload, skipping nothing: a malformed
// element fails the whole decode so the caller can surface one error.
func decodeTasks(raw []json.RawMessage) ([]domain.Task, error) {
	tasks := make([]domain.Task, 0, len(raw))
	for _, r := range raw {
		t, err := decodeTask(r)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// decodeDeal converts one external deal object into the canonical record
func decodeDeal(raw json.RawMessage) (domain.Deal, error) {
	var obj rawObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return domain.Deal{}, err
	}
	d := domain.Deal{
		ID:                obj.str("id"),
		Name:              obj.str("name", "title"),
		Value:             obj.num("value", "amount"),
		Currency:          obj.str("currency"),
		Stage:             domain.NormalizeStage(obj.str("stage", "status")),
		OrganizationID:    obj.str("organization_id", "organizationId", "customer_id", "customerId"),
		Assignee:          obj.user("assignee", "owner"),
		Probability:       int(obj.num("probability")),
		ExpectedCloseDate: obj.timePtr("expected_close_date", "expectedCloseDate", "close_date", "closeDate"),
		CreatedAt:         obj.timeVal("created_at", "createdAt"),
		UpdatedAt:         obj.timeVal("updated_at", "updatedAt"),
	}
	if d.Currency == "" {
		d.Currency = "USD"
	}
	return d, nil
}

func decodeDeals(raw []json.RawMessage) ([]domain.Deal, error) {
	deals := make([]domain.Deal, 0, len(raw))
	for _, r := range raw {
		d, err := decodeDeal(r)
		if err != nil {
			return nil, err
		}
		deals = append(deals, d)
	}
	return deals, nil
}

// decodePhase converts one external phase object into the canonical record
func decodePhase(raw json.RawMessage) (domain.Phase, error) {
	var obj rawObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return domain.Phase{}, err
	}
	return domain.Phase{
		ID:        obj.str("id"),
		Name:      obj.str("name", "title"),
		Color:     obj.str("color"),
		ProjectID: obj.str("project_id", "projectId"),
	}, nil
}

func decodePhases(raw []json.RawMessage) ([]domain.Phase, error) {
	phases := make([]domain.Phase, 0, len(raw))
	for _, r := range raw {
		p, err := decodePhase(r)
		if err != nil {
			return nil, err
		}
		phases = append(phases, p)
	}
	return phases, nil
}
