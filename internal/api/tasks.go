package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/taskflow/taskflow/internal/domain"
)

// TasksAPI is the typed client for the /tasks resource
type TasksAPI struct {
	c *Client
}

// GetAll fetches every task visible to the session
func (a *TasksAPI) GetAll(ctx context.Context) ([]domain.Task, error) {
	var raw []json.RawMessage
	if err := a.c.do(ctx, http.MethodGet, "/tasks", nil, &raw); err != nil {
		return nil, &domain.APIError{Op: "list", Entity: "task", Err: err}
	}
	tasks, err := decodeTasks(raw)
	if err != nil {
		return nil, &domain.APIError{Op: "list", Entity: "task", Message: "malformed response", Err: err}
	}
	a.c.logger.Debug("fetched tasks", "count", len(tasks))
	return tasks, nil
}

// GetByProject fetches the ordered task list for one project
func (a *TasksAPI) GetByProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	var raw []json.RawMessage
	if err := a.c.do(ctx, http.MethodGet, "/projects/"+projectID+"/tasks", nil, &raw); err != nil {
		return nil, &domain.APIError{Op: "list", Entity: "task", ID: projectID, Err: err}
	}
	tasks, err := decodeTasks(raw)
	if err != nil {
		return nil, &domain.APIError{Op: "list", Entity: "task", ID: projectID, Message: "malformed response", Err: err}
	}
	a.c.logger.Debug("fetched project tasks", "project_id", projectID, "count", len(tasks))
	return tasks, nil
}

// Create persists a new task and returns the stored record
func (a *TasksAPI) Create(ctx context.Context, t domain.Task) (domain.Task, error) {
	var raw json.RawMessage
	if err := a.c.do(ctx, http.MethodPost, "/tasks", t, &raw); err != nil {
		return domain.Task{}, &domain.APIError{Op: "create", Entity: "task", Err: err}
	}
	created, err := decodeTask(raw)
	if err != nil {
		return domain.Task{}, &domain.APIError{Op: "create", Entity: "task", Message: "malformed response", Err: err}
	}
	return created, nil
}

// Update persists a partial field set for one task. Only the provided
// fields are sent; callers pass exactly what changed.
func (a *TasksAPI) Update(ctx context.Context, id string, fields map[string]any) error {
	if err := a.c.do(ctx, http.MethodPatch, "/tasks/"+id, fields, nil); err != nil {
		return &domain.APIError{Op: "update", Entity: "task", ID: id, Err: err}
	}
	return nil
}

// Delete removes one task
func (a *TasksAPI) Delete(ctx context.Context, id string) error {
	if err := a.c.do(ctx, http.MethodDelete, "/tasks/"+id, nil, nil); err != nil {
		return &domain.APIError{Op: "delete", Entity: "task", ID: id, Err: err}
	}
	return nil
}
