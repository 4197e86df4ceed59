// Package store holds the authoritative in-session copy of tasks, phases
// and deals, and mediates every mutation through the optimistic protocol:
// apply locally, persist remotely, revert on rejection.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/taskflow/taskflow/internal/cache"
	"github.com/taskflow/taskflow/internal/domain"
)

// TasksService is the slice of the tasks API the store persists through
type TasksService interface {
	GetByProject(ctx context.Context, projectID string) ([]domain.Task, error)
	Create(ctx context.Context, t domain.Task) (domain.Task, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
}

// PhasesService is the slice of the phases API the store reads through
type PhasesService interface {
	GetByProject(ctx context.Context, projectID string) (domain.PhaseList, error)
}

// DealsService is the slice of the deals API the store persists through
type DealsService interface {
	GetAll(ctx context.Context) ([]domain.Deal, error)
	Update(ctx context.Context, id string, fields map[string]any) error
}

// Mirror is the durable local cache used for offline snapshots.
// A nil mirror disables snapshotting.
type Mirror interface {
	PutJSON(key string, v any) error
	GetJSON(key string, out any) bool
}

// snapshot is the per-project offline cache payload
type snapshot struct {
	Tasks  []domain.Task    `json:"tasks"`
	Phases domain.PhaseList `json:"phases"`
}

// Store is the in-session aggregate of board state
type Store struct {
	mu     sync.RWMutex
	tasks  map[string][]domain.Task
	phases map[string]domain.PhaseList
	deals  []domain.Deal

	tasksAPI  TasksService
	phasesAPI PhasesService
	dealsAPI  DealsService
	mirror    Mirror
	logger    *slog.Logger
}

// New creates a Store over the given service clients
func New(tasks TasksService, phases PhasesService, deals DealsService, mirror Mirror, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		tasks:     make(map[string][]domain.Task),
		phases:    make(map[string]domain.PhaseList),
		tasksAPI:  tasks,
		phasesAPI: phases,
		dealsAPI:  deals,
		mirror:    mirror,
		logger:    logger,
	}
}

// Load fetches phases and tasks for a project and replaces the in-memory
// lists. On failure it falls back to the offline snapshot when one exists,
// otherwise to an empty task list plus the default phase set, and returns
// the error for toast surfacing: the board always has something to show.
func (s *Store) Load(ctx context.Context, projectID string) error {
	phases, perr := s.phasesAPI.GetByProject(ctx, projectID)
	tasks, terr := s.tasksAPI.GetByProject(ctx, projectID)

	if perr != nil || terr != nil {
		err := errors.Join(perr, terr)
		var snap snapshot
		if s.mirror != nil && s.mirror.GetJSON(cache.SnapshotKey(projectID), &snap) {
			s.logger.Warn("load failed, using offline snapshot", "project_id", projectID, "error", err)
			s.replace(projectID, snap.Tasks, snap.Phases)
			return err
		}
		s.logger.Warn("load failed, using defaults", "project_id", projectID, "error", err)
		s.replace(projectID, []domain.Task{}, domain.DefaultPhases(projectID))
		return err
	}

	sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].Order < tasks[j].Order })
	s.replace(projectID, tasks, phases)
	s.writeSnapshot(projectID)
	return nil
}

func (s *Store) replace(projectID string, tasks []domain.Task, phases domain.PhaseList) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[projectID] = tasks
	s.phases[projectID] = phases
}

// Evict drops a project's lists from memory, e.g. when the user navigates
// away. The offline snapshot is kept.
func (s *Store) Evict(projectID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tasks, projectID)
	delete(s.phases, projectID)
}

// Tasks returns a copy of the project's ordered task list
func (s *Store) Tasks(projectID string) []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Task, len(s.tasks[projectID]))
	copy(out, s.tasks[projectID])
	return out
}

// Phases returns a copy of the project's ordered phase list
func (s *Store) Phases(projectID string) domain.PhaseList {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(domain.PhaseList, len(s.phases[projectID]))
	copy(out, s.phases[projectID])
	return out
}

// Task returns one task by id
func (s *Store) Task(projectID, taskID string) (domain.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks[projectID] {
		if t.ID == taskID {
			return t, true
		}
	}
	return domain.Task{}, false
}

// UpdateField applies a single-field edit optimistically and persists only
// that field. When the remote call rejects, the prior value is restored
// before the error is returned, so visible state never retains a value the
// backend refused.
func (s *Store) UpdateField(ctx context.Context, projectID, taskID, field string, value any) error {
	return apply(
		func() (any, error) { return s.taskField(projectID, taskID, field) },
		func(v any) { s.setTaskField(projectID, taskID, field, v) },
		value,
		func() error {
			return s.tasksAPI.Update(ctx, taskID, map[string]any{field: wireValue(value)})
		},
	)
}

// Reorder moves the dragged task to the target's position within the
// project list and persists the order of exactly the tasks that shifted,
// as one batch. A failed batch restores the previous ordering.
func (s *Store) Reorder(ctx context.Context, projectID, draggedID, targetID string) error {
	s.mu.Lock()
	prev := s.tasks[projectID]
	res := domain.Reorder(prev, draggedID, targetID)
	if !res.Moved {
		s.mu.Unlock()
		return nil
	}
	s.tasks[projectID] = res.Tasks
	s.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	for _, t := range res.Changed {
		t := t
		g.Go(func() error {
			return s.tasksAPI.Update(gctx, t.ID, map[string]any{"order": t.Order})
		})
	}
	if err := g.Wait(); err != nil {
		s.mu.Lock()
		s.tasks[projectID] = prev
		s.mu.Unlock()
		return err
	}
	s.writeSnapshot(projectID)
	return nil
}

// MoveTask handles a cross-group drag: a reorder plus a field update,
// applied in sequence as two independent operations. A partial failure
// reverts only the failed half; the joined error reports both outcomes.
func (s *Store) MoveTask(ctx context.Context, projectID, draggedID, targetID, field string, value any) error {
	reorderErr := s.Reorder(ctx, projectID, draggedID, targetID)
	fieldErr := s.UpdateField(ctx, projectID, draggedID, field, value)
	return errors.Join(reorderErr, fieldErr)
}

// Remove deletes a task remotely first and filters the local list only
// after the backend confirms. A failed delete is a no-op on the visible
// list.
func (s *Store) Remove(ctx context.Context, projectID, taskID string) error {
	if err := s.tasksAPI.Delete(ctx, taskID); err != nil {
		return err
	}
	s.mu.Lock()
	list := s.tasks[projectID]
	kept := make([]domain.Task, 0, len(list))
	for _, t := range list {
		if t.ID != taskID {
			kept = append(kept, t)
		}
	}
	s.tasks[projectID] = kept
	s.mu.Unlock()
	s.writeSnapshot(projectID)
	return nil
}

// CreateTask persists a new task and appends the stored record to the
// project list once the backend has assigned its identity.
func (s *Store) CreateTask(ctx context.Context, t domain.Task) (domain.Task, error) {
	created, err := s.tasksAPI.Create(ctx, t)
	if err != nil {
		return domain.Task{}, err
	}
	s.mu.Lock()
	s.tasks[created.ProjectID] = append(s.tasks[created.ProjectID], created)
	s.mu.Unlock()
	s.writeSnapshot(created.ProjectID)
	return created, nil
}

// LoadDeals fetches the deal pipeline
func (s *Store) LoadDeals(ctx context.Context) error {
	deals, err := s.dealsAPI.GetAll(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.deals = deals
	s.mu.Unlock()
	return nil
}

// Deals returns a copy of the loaded deal list
func (s *Store) Deals() []domain.Deal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Deal, len(s.deals))
	copy(out, s.deals)
	return out
}

// UpdateDealField applies a single-field deal edit with the same
// optimistic revert guarantee as UpdateField.
func (s *Store) UpdateDealField(ctx context.Context, dealID, field string, value any) error {
	return apply(
		func() (any, error) { return s.dealField(dealID, field) },
		func(v any) { s.setDealField(dealID, field, v) },
		value,
		func() error {
			return s.dealsAPI.Update(ctx, dealID, map[string]any{field: wireValue(value)})
		},
	)
}

func (s *Store) writeSnapshot(projectID string) {
	if s.mirror == nil {
		return
	}
	s.mu.RLock()
	snap := snapshot{Tasks: s.tasks[projectID], Phases: s.phases[projectID]}
	s.mu.RUnlock()
	if err := s.mirror.PutJSON(cache.SnapshotKey(projectID), snap); err != nil {
		s.logger.Warn("snapshot write failed", "project_id", projectID, "error", err)
	}
}

// taskField reads the current value of an editable task field
func (s *Store) taskField(projectID, taskID, field string) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.tasks[projectID] {
		t := &s.tasks[projectID][i]
		if t.ID != taskID {
			continue
		}
		switch field {
		case "name":
			return t.Name, nil
		case "description":
			return t.Description, nil
		case "status":
			return t.Status, nil
		case "progress":
			return t.Progress, nil
		case "budget":
			return t.Budget, nil
		case "spent":
			return t.Spent, nil
		case "estimated_hours":
			return t.EstimatedHours, nil
		case "actual_hours":
			return t.ActualHours, nil
		case "phase_id":
			return t.PhaseID, nil
		case "sprint":
			return t.Sprint, nil
		default:
			return nil, fmt.Errorf("unknown task field %q", field)
		}
	}
	return nil, fmt.Errorf("task %s: %w", taskID, domain.ErrNotFound)
}

// setTaskField writes an editable task field in place
func (s *Store) setTaskField(projectID, taskID, field string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks[projectID] {
		t := &s.tasks[projectID][i]
		if t.ID != taskID {
			continue
		}
		switch field {
		case "name":
			t.Name, _ = value.(string)
		case "description":
			t.Description, _ = value.(string)
		case "status":
			t.Status = asStatus(value)
		case "progress":
			t.Progress, _ = value.(int)
		case "budget":
			t.Budget, _ = value.(float64)
		case "spent":
			t.Spent, _ = value.(float64)
		case "estimated_hours":
			t.EstimatedHours, _ = value.(float64)
		case "actual_hours":
			t.ActualHours, _ = value.(float64)
		case "phase_id":
			t.PhaseID, _ = value.(*string)
		case "sprint":
			t.Sprint, _ = value.(*string)
		}
		return
	}
}

// dealField reads the current value of an editable deal field
func (s *Store) dealField(dealID, field string) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.deals {
		d := &s.deals[i]
		if d.ID != dealID {
			continue
		}
		switch field {
		case "name":
			return d.Name, nil
		case "value":
			return d.Value, nil
		case "stage":
			return d.Stage, nil
		case "probability":
			return d.Probability, nil
		default:
			return nil, fmt.Errorf("unknown deal field %q", field)
		}
	}
	return nil, fmt.Errorf("deal %s: %w", dealID, domain.ErrNotFound)
}

// setDealField writes an editable deal field in place
func (s *Store) setDealField(dealID, field string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.deals {
		d := &s.deals[i]
		if d.ID != dealID {
			continue
		}
		switch field {
		case "name":
			d.Name, _ = value.(string)
		case "value":
			d.Value, _ = value.(float64)
		case "stage":
			d.Stage = asStage(value)
		case "probability":
			d.Probability, _ = value.(int)
		}
		return
	}
}

func asStatus(v any) domain.Status {
	switch x := v.(type) {
	case domain.Status:
		return x
	case string:
		return domain.NormalizeStatus(x)
	default:
		return domain.StatusNew
	}
}

func asStage(v any) domain.StageID {
	switch x := v.(type) {
	case domain.StageID:
		return x
	case string:
		return domain.NormalizeStage(x)
	default:
		return domain.StageNew
	}
}

// wireValue converts typed enum values to their wire strings for the
// partial-update payload; everything else passes through.
func wireValue(v any) any {
	switch x := v.(type) {
	case domain.Status:
		return x.String()
	case domain.StageID:
		return x.String()
	case *string:
		if x == nil {
			return nil
		}
		return *x
	default:
		return v
	}
}
