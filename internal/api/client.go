// Package api provides the typed REST clients the board core persists
// through: tasks, phases, deals, projects, users, customers and contacts.
//
// Responses pass through a normalization boundary (wire.go) that converts
// any accepted external JSON shape into the canonical domain records
// before anything else sees them.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Doer abstracts the HTTP transport for dependency injection in tests
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is the shared HTTP plumbing behind every entity API
type Client struct {
	baseURL string
	http    Doer
	logger  *slog.Logger
}

// API bundles the per-entity clients over one shared transport
type API struct {
	Tasks     *TasksAPI
	Phases    *PhasesAPI
	Deals     *DealsAPI
	Projects  *ProjectsAPI
	Users     *UsersAPI
	Customers *CustomersAPI
	Contacts  *ContactsAPI

	c *Client
}

// New creates the API client set. A nil doer falls back to a default
// http.Client with a request timeout.
func New(baseURL string, doer Doer, logger *slog.Logger) *API {
	if doer == nil {
		doer = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    doer,
		logger:  logger,
	}
	return &API{
		Tasks:     &TasksAPI{c: c},
		Phases:    &PhasesAPI{c: c},
		Deals:     &DealsAPI{c: c},
		Projects:  &ProjectsAPI{c: c},
		Users:     &UsersAPI{c: c},
		Customers: &CustomersAPI{c: c},
		Contacts:  &ContactsAPI{c: c},
		c:         c,
	}
}

// errorBody is the error payload shape the backend returns
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do issues one JSON request. A non-nil out receives the decoded response
// body. Status >= 400 is returned as an error carrying the backend's
// human-readable message when one is present.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("api request", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var eb errorBody
		if json.Unmarshal(data, &eb) == nil {
			if eb.Message != "" {
				return fmt.Errorf("%s (status %d)", eb.Message, resp.StatusCode)
			}
			if eb.Error != "" {
				return fmt.Errorf("%s (status %d)", eb.Error, resp.StatusCode)
			}
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
