package api

import (
	"context"
	"net/http"

	"github.com/taskflow/taskflow/internal/domain"
)

// ProjectsAPI is the typed client for the /projects resource
type ProjectsAPI struct {
	c *Client
}

// GetAll fetches every project
func (a *ProjectsAPI) GetAll(ctx context.Context) ([]domain.Project, error) {
	var projects []domain.Project
	if err := a.c.do(ctx, http.MethodGet, "/projects", nil, &projects); err != nil {
		return nil, &domain.APIError{Op: "list", Entity: "project", Err: err}
	}
	return projects, nil
}

// Get fetches one project by id
func (a *ProjectsAPI) Get(ctx context.Context, id string) (domain.Project, error) {
	var p domain.Project
	if err := a.c.do(ctx, http.MethodGet, "/projects/"+id, nil, &p); err != nil {
		return domain.Project{}, &domain.APIError{Op: "get", Entity: "project", ID: id, Err: err}
	}
	return p, nil
}

// Create persists a new project and returns the stored record
func (a *ProjectsAPI) Create(ctx context.Context, p domain.Project) (domain.Project, error) {
	var created domain.Project
	if err := a.c.do(ctx, http.MethodPost, "/projects", p, &created); err != nil {
		return domain.Project{}, &domain.APIError{Op: "create", Entity: "project", Err: err}
	}
	return created, nil
}

// Update persists a partial field set for one project
func (a *ProjectsAPI) Update(ctx context.Context, id string, fields map[string]any) error {
	if err := a.c.do(ctx, http.MethodPatch, "/projects/"+id, fields, nil); err != nil {
		return &domain.APIError{Op: "update", Entity: "project", ID: id, Err: err}
	}
	return nil
}

// Delete removes one project
func (a *ProjectsAPI) Delete(ctx context.Context, id string) error {
	if err := a.c.do(ctx, http.MethodDelete, "/projects/"+id, nil, nil); err != nil {
		return &domain.APIError{Op: "delete", Entity: "project", ID: id, Err: err}
	}
	return nil
}
