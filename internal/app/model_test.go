package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow/taskflow/internal/config"
	"github.com/taskflow/taskflow/internal/domain"
	"github.com/taskflow/taskflow/internal/store"
	"github.com/taskflow/taskflow/internal/types"
)

type fakeTasks struct {
	tasks     []domain.Task
	updateErr error
	deleted   []string
}

func (f *fakeTasks) GetByProject(context.Context, string) ([]domain.Task, error) {
	return f.tasks, nil
}

func (f *fakeTasks) Create(_ context.Context, t domain.Task) (domain.Task, error) {
	return t, nil
}

func (f *fakeTasks) Update(context.Context, string, map[string]any) error {
	return f.updateErr
}

func (f *fakeTasks) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakePhases struct{}

func (fakePhases) GetByProject(context.Context, string) (domain.PhaseList, error) {
	return domain.PhaseList{{ID: "ph1", Name: "Build", ProjectID: "p1"}}, nil
}

type fakeDeals struct{}

func (fakeDeals) GetAll(context.Context) ([]domain.Deal, error)         { return nil, nil }
func (fakeDeals) Update(context.Context, string, map[string]any) error { return nil }

func newTestModel(t *testing.T, tasksAPI *fakeTasks) Model {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.New(tasksAPI, fakePhases{}, fakeDeals{}, nil, logger)
	require.NoError(t, st.Load(context.Background(), "p1"))

	m := New(config.DefaultConfig(), st, nil, "p1", "Website", logger)
	m.loading = false
	m.width = 120
	m.height = 40
	return m
}

func boardTasks() []domain.Task {
	return []domain.Task{
		{ID: "t1", Name: "Audit", Status: domain.StatusTodo, ProjectID: "p1", Order: 1},
		{ID: "t2", Name: "Sitemap", Status: domain.StatusTodo, ProjectID: "p1", Order: 2},
		{ID: "t3", Name: "Wireframes", Status: domain.StatusInProgress, ProjectID: "p1", Order: 3},
	}
}

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		t := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
		return t
	}
}

func TestModel_ViewShowsGroupedBoard(t *testing.T) {
	m := newTestModel(t, &fakeTasks{tasks: boardTasks()})

	out := m.View()

	assert.Contains(t, out, "To Do")
	assert.Contains(t, out, "In Progress")
	assert.Contains(t, out, "Audit")
	assert.Contains(t, out, "Website")
}

func TestModel_GroupByCycles(t *testing.T) {
	m := newTestModel(t, &fakeTasks{tasks: boardTasks()})
	assert.Equal(t, domain.GroupByStatus, m.groupBy)

	next, _ := m.Update(keyMsg("g"))
	m = next.(Model)

	assert.Equal(t, domain.GroupByAssignee, m.groupBy)
	require.Len(t, m.toasts, 1)
	assert.Contains(t, m.toasts[0].Message, "Assignee")
}

func TestModel_SearchFiltersBoard(t *testing.T) {
	m := newTestModel(t, &fakeTasks{tasks: boardTasks()})

	next, _ := m.Update(keyMsg("/"))
	m = next.(Model)
	assert.Equal(t, types.ModeSearch, m.mode)

	for _, r := range "wire" {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	next, _ = m.Update(keyMsg("enter"))
	m = next.(Model)

	assert.Equal(t, types.ModeNormal, m.mode)
	out := m.View()
	assert.Contains(t, out, "Wireframes")
	assert.NotContains(t, out, "Sitemap")
}

func TestModel_SearchEscClears(t *testing.T) {
	m := newTestModel(t, &fakeTasks{tasks: boardTasks()})

	next, _ := m.Update(keyMsg("/"))
	m = next.(Model)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}})
	m = next.(Model)
	next, _ = m.Update(keyMsg("esc"))
	m = next.(Model)

	assert.Empty(t, m.query)
	assert.Contains(t, m.View(), "Sitemap")
}

func TestModel_MoveModeReorders(t *testing.T) {
	tasksAPI := &fakeTasks{tasks: boardTasks()}
	m := newTestModel(t, tasksAPI)
	m.groupBy = domain.GroupByNone

	// pick up the first task, drop it on the third
	next, _ := m.Update(keyMsg("m"))
	m = next.(Model)
	require.Equal(t, types.ModeMove, m.mode)
	assert.Equal(t, "t1", m.movingID)

	next, _ = m.Update(keyMsg("j"))
	m = next.(Model)
	next, _ = m.Update(keyMsg("j"))
	m = next.(Model)

	next, cmd := m.Update(keyMsg("enter"))
	m = next.(Model)
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, mutationMsg{}, msg)
	require.NoError(t, msg.(mutationMsg).err)

	got := m.store.Tasks("p1")
	assert.Equal(t, []string{"t2", "t3", "t1"}, []string{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, types.ModeNormal, m.mode)
	assert.Empty(t, m.movingID)
}

func TestModel_RejectedMutationShowsToastOverRevertedState(t *testing.T) {
	tasksAPI := &fakeTasks{tasks: boardTasks(), updateErr: errors.New("rejected")}
	m := newTestModel(t, tasksAPI)
	m.groupBy = domain.GroupByNone

	// "+" bumps progress; the persist rejects and the store reverts
	next, cmd := m.Update(keyMsg("+"))
	m = next.(Model)
	require.NotNil(t, cmd)
	msg := cmd()
	require.Error(t, msg.(mutationMsg).err)

	next, _ = m.Update(msg)
	m = next.(Model)

	require.Len(t, m.toasts, 1)
	assert.Equal(t, types.ToastError, m.toasts[0].Level)
	task, _ := m.store.Task("p1", "t1")
	assert.Equal(t, 0, task.Progress)
}

func TestModel_DeleteRunsRemoveCmd(t *testing.T) {
	tasksAPI := &fakeTasks{tasks: boardTasks()}
	m := newTestModel(t, tasksAPI)
	m.groupBy = domain.GroupByNone

	next, cmd := m.Update(keyMsg("x"))
	m = next.(Model)
	require.NotNil(t, cmd)
	require.NoError(t, cmd().(mutationMsg).err)

	assert.Equal(t, []string{"t1"}, tasksAPI.deleted)
	assert.Len(t, m.store.Tasks("p1"), 2)
}

func TestModel_LoadErrorSurfacesWarning(t *testing.T) {
	m := newTestModel(t, &fakeTasks{tasks: boardTasks()})

	next, _ := m.Update(projectLoadedMsg{err: errors.New("offline")})
	m = next.(Model)

	require.Len(t, m.toasts, 1)
	assert.Equal(t, types.ToastWarning, m.toasts[0].Level)
}

func TestModel_HealthTransitionToOffline(t *testing.T) {
	m := newTestModel(t, &fakeTasks{tasks: boardTasks()})
	m.health = func(context.Context) bool { return false }

	next, cmd := m.Update(healthMsg{online: false})
	m = next.(Model)

	require.NotNil(t, cmd)
	assert.False(t, m.online)
	require.Len(t, m.toasts, 1)
	assert.Equal(t, types.ToastWarning, m.toasts[0].Level)
	assert.Contains(t, m.View(), "OFFLINE")

	// staying offline doesn't stack more toasts
	next, _ = m.Update(healthMsg{online: false})
	m = next.(Model)
	assert.Len(t, m.toasts, 1)
}

func TestNextGroupBy_WrapsAround(t *testing.T) {
	assert.Equal(t, domain.GroupByNone, nextGroupBy(domain.GroupBySprint))
	assert.Equal(t, domain.GroupByStatus, nextGroupBy(domain.GroupByNone))
}
