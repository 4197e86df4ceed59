package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/taskflow/taskflow/internal/domain"
)

// PhasesAPI is the typed client for the /phases resource
type PhasesAPI struct {
	c *Client
}

// GetByProject fetches the ordered phase list for one project
func (a *PhasesAPI) GetByProject(ctx context.Context, projectID string) (domain.PhaseList, error) {
	var raw []json.RawMessage
	if err := a.c.do(ctx, http.MethodGet, "/projects/"+projectID+"/phases", nil, &raw); err != nil {
		return nil, &domain.APIError{Op: "list", Entity: "phase", ID: projectID, Err: err}
	}
	phases, err := decodePhases(raw)
	if err != nil {
		return nil, &domain.APIError{Op: "list", Entity: "phase", ID: projectID, Message: "malformed response", Err: err}
	}
	return phases, nil
}

// Create persists a new phase and returns the stored record
func (a *PhasesAPI) Create(ctx context.Context, p domain.Phase) (domain.Phase, error) {
	var raw json.RawMessage
	if err := a.c.do(ctx, http.MethodPost, "/phases", p, &raw); err != nil {
		return domain.Phase{}, &domain.APIError{Op: "create", Entity: "phase", Err: err}
	}
	created, err := decodePhase(raw)
	if err != nil {
		return domain.Phase{}, &domain.APIError{Op: "create", Entity: "phase", Message: "malformed response", Err: err}
	}
	return created, nil
}

// Delete removes one phase. Tasks referencing it keep their dangling
// phase id and group under "No Phase" at render time.
func (a *PhasesAPI) Delete(ctx context.Context, id string) error {
	if err := a.c.do(ctx, http.MethodDelete, "/phases/"+id, nil, nil); err != nil {
		return &domain.APIError{Op: "delete", Entity: "phase", ID: id, Err: err}
	}
	return nil
}
