package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow/taskflow/internal/domain"
)

// mockDoer implements Doer for testing
type mockDoer struct {
	status  int
	body    string
	err     error
	lastReq *http.Request
	sent    string
}

func (m *mockDoer) Do(req *http.Request) (*http.Response, error) {
	m.lastReq = req
	if req.Body != nil {
		data, _ := io.ReadAll(req.Body)
		m.sent = string(data)
	}
	if m.err != nil {
		return nil, m.err
	}
	status := m.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(m.body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}, nil
}

func newTestAPI(doer Doer) *API {
	return New("http://backend.test", doer, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestTasksAPI_GetByProject(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		status    int
		doErr     error
		wantCount int
		wantErr   bool
	}{
		{
			name: "snake_case fields",
			body: `[
				{"id": "t1", "name": "Design review", "status": "in-progress", "project_id": "p1", "order": 1, "phase_id": "ph1"},
				{"id": "t2", "name": "Ship it", "status": "completed", "project_id": "p1", "order": 2}
			]`,
			wantCount: 2,
		},
		{
			name: "camelCase variants normalize the same way",
			body: `[
				{"id": "t3", "title": "Budget pass", "status": "To Do", "projectId": "p1", "phaseId": "ph2", "dueDate": "2026-03-01", "estimatedHours": 8, "order": 1}
			]`,
			wantCount: 1,
		},
		{
			name:      "empty list",
			body:      `[]`,
			wantCount: 0,
		},
		{
			name:    "backend error payload",
			status:  http.StatusInternalServerError,
			body:    `{"message": "database unavailable"}`,
			wantErr: true,
		},
		{
			name:    "transport error",
			doErr:   errors.New("connection refused"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doer := &mockDoer{status: tt.status, body: tt.body, err: tt.doErr}
			a := newTestAPI(doer)

			tasks, err := a.Tasks.GetByProject(context.Background(), "p1")

			if tt.wantErr {
				require.Error(t, err)
				var apiErr *domain.APIError
				assert.ErrorAs(t, err, &apiErr)
				assert.Equal(t, "list", apiErr.Op)
				assert.Equal(t, "task", apiErr.Entity)
				return
			}

			require.NoError(t, err)
			assert.Len(t, tasks, tt.wantCount)
			assert.Equal(t, "/projects/p1/tasks", doer.lastReq.URL.Path)
		})
	}
}

func TestTasksAPI_GetByProject_NormalizesShapes(t *testing.T) {
	doer := &mockDoer{body: `[
		{"id": "t1", "title": "Camel task", "status": "In Progress", "projectId": "p1", "phaseId": "ph9", "actualHours": 3.5, "order": 4}
	]`}
	a := newTestAPI(doer)

	tasks, err := a.Tasks.GetByProject(context.Background(), "p1")

	require.NoError(t, err)
	require.Len(t, tasks, 1)
	got := tasks[0]
	assert.Equal(t, "Camel task", got.Name)
	assert.Equal(t, domain.StatusInProgress, got.Status)
	assert.Equal(t, "p1", got.ProjectID)
	require.NotNil(t, got.PhaseID)
	assert.Equal(t, "ph9", *got.PhaseID)
	assert.InDelta(t, 3.5, got.ActualHours, 0.001)
	assert.Equal(t, 4, got.Order)
}

func TestTasksAPI_Update_SendsOnlyChangedFields(t *testing.T) {
	doer := &mockDoer{body: `{}`}
	a := newTestAPI(doer)

	err := a.Tasks.Update(context.Background(), "t1", map[string]any{"progress": 75})

	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, doer.lastReq.Method)
	assert.Equal(t, "/tasks/t1", doer.lastReq.URL.Path)

	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte(doer.sent), &sent))
	assert.Len(t, sent, 1)
	assert.EqualValues(t, 75, sent["progress"])
}

func TestTasksAPI_Update_ErrorCarriesMessage(t *testing.T) {
	doer := &mockDoer{status: http.StatusUnprocessableEntity, body: `{"message": "progress out of range"}`}
	a := newTestAPI(doer)

	err := a.Tasks.Update(context.Background(), "t1", map[string]any{"progress": 250})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "progress out of range")
	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "t1", apiErr.ID)
}

func TestTasksAPI_Delete(t *testing.T) {
	doer := &mockDoer{body: ``}
	a := newTestAPI(doer)

	require.NoError(t, a.Tasks.Delete(context.Background(), "t9"))
	assert.Equal(t, http.MethodDelete, doer.lastReq.Method)
	assert.Equal(t, "/tasks/t9", doer.lastReq.URL.Path)
}
