package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/taskflow/taskflow/internal/domain"
)

// DealsAPI is the typed client for the /deals resource
type DealsAPI struct {
	c *Client
}

// GetAll fetches every deal in the pipeline
func (a *DealsAPI) GetAll(ctx context.Context) ([]domain.Deal, error) {
	var raw []json.RawMessage
	if err := a.c.do(ctx, http.MethodGet, "/deals", nil, &raw); err != nil {
		return nil, &domain.APIError{Op: "list", Entity: "deal", Err: err}
	}
	deals, err := decodeDeals(raw)
	if err != nil {
		return nil, &domain.APIError{Op: "list", Entity: "deal", Message: "malformed response", Err: err}
	}
	a.c.logger.Debug("fetched deals", "count", len(deals))
	return deals, nil
}

// Create persists a new deal and returns the stored record
func (a *DealsAPI) Create(ctx context.Context, d domain.Deal) (domain.Deal, error) {
	var raw json.RawMessage
	if err := a.c.do(ctx, http.MethodPost, "/deals", d, &raw); err != nil {
		return domain.Deal{}, &domain.APIError{Op: "create", Entity: "deal", Err: err}
	}
	created, err := decodeDeal(raw)
	if err != nil {
		return domain.Deal{}, &domain.APIError{Op: "create", Entity: "deal", Message: "malformed response", Err: err}
	}
	return created, nil
}

// Update persists a partial field set for one deal
func (a *DealsAPI) Update(ctx context.Context, id string, fields map[string]any) error {
	if err := a.c.do(ctx, http.MethodPatch, "/deals/"+id, fields, nil); err != nil {
		return &domain.APIError{Op: "update", Entity: "deal", ID: id, Err: err}
	}
	return nil
}

// Delete removes one deal
func (a *DealsAPI) Delete(ctx context.Context, id string) error {
	if err := a.c.do(ctx, http.MethodDelete, "/deals/"+id, nil, nil); err != nil {
		return &domain.APIError{Op: "delete", Entity: "deal", ID: id, Err: err}
	}
	return nil
}
