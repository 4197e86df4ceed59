// Package app wires the store, the grouping engine and the board renderer
// into the bubbletea event loop. All mutations run against in-memory state
// inside Update; persistence happens in tea.Cmds, and a rejected persist
// surfaces as an error toast over already-reverted state.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskflow/taskflow/internal/cache"
	"github.com/taskflow/taskflow/internal/config"
	"github.com/taskflow/taskflow/internal/domain"
	"github.com/taskflow/taskflow/internal/store"
	"github.com/taskflow/taskflow/internal/types"
	"github.com/taskflow/taskflow/internal/ui/board"
	"github.com/taskflow/taskflow/internal/ui/statusbar"
	"github.com/taskflow/taskflow/internal/ui/styles"
	"github.com/taskflow/taskflow/internal/ui/toast"
)

// Prefs is the slice of UI state persisted across sessions
type Prefs struct {
	GroupBy string `json:"groupBy"`
}

// Model is the root bubbletea model
type Model struct {
	store       *store.Store
	prefs       *cache.Cache
	projectID   string
	projectName string

	// Interaction state
	mode        types.Mode
	groupBy     domain.GroupBy
	cursor      board.Cursor
	searchInput textinput.Model
	query       string
	movingID    string

	// Backend reachability, refreshed on a slow tick
	health func(context.Context) bool
	online bool

	// Toasts
	toasts   []types.Toast
	toastTTL time.Duration

	// Terminal size
	width  int
	height int

	styles  *styles.Styles
	loading bool
	spinner spinner.Model
	logger  *slog.Logger
}

// New creates the application model. The prefs cache may be nil, in which
// case UI preferences simply don't persist.
func New(cfg *config.Config, st *store.Store, prefs *cache.Cache, projectID, projectName string, logger *slog.Logger) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	input := textinput.New()
	input.Prompt = "/"
	input.Placeholder = "search"
	input.CharLimit = 64

	if logger == nil {
		logger = slog.Default()
	}

	groupBy := domain.GroupBy(cfg.UI.DefaultGroupBy)
	var saved Prefs
	if prefs != nil && prefs.GetJSON(cache.KeyUIPrefs, &saved) && saved.GroupBy != "" {
		groupBy = domain.GroupBy(saved.GroupBy)
	}

	return Model{
		store:       st,
		prefs:       prefs,
		projectID:   projectID,
		projectName: projectName,
		mode:        types.ModeNormal,
		groupBy:     groupBy,
		searchInput: input,
		online:      true,
		toastTTL:    time.Duration(cfg.UI.ToastTimeoutMs) * time.Millisecond,
		styles:      styles.New(),
		loading:     true,
		spinner:     sp,
		logger:      logger,
	}
}

// WithHealthCheck installs a backend reachability probe, polled while the
// board is open and reflected in the status bar.
func (m Model) WithHealthCheck(check func(context.Context) bool) Model {
	m.health = check
	return m
}

// Init returns the initial command for the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.loadCmd()}
	if m.health != nil {
		cmds = append(cmds, m.healthCmd())
	}
	return tea.Batch(cmds...)
}

type projectLoadedMsg struct {
	err error
}

type mutationMsg struct {
	action string
	err    error
}

type toastTickMsg time.Time

type healthMsg struct {
	online bool
}

type healthTickMsg struct{}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case projectLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m.pushToast(types.ToastWarning, "Couldn't reach the backend, showing cached data")
		}
		if m.prefs != nil {
			if err := m.prefs.PutJSON(cache.KeyRecentProject, m.projectID); err != nil {
				m.logger.Warn("recent project not saved", "error", err)
			}
		}
		return m, nil

	case mutationMsg:
		if msg.err != nil {
			m.logger.Warn("mutation rejected", "action", msg.action, "error", msg.err)
			return m.pushToast(types.ToastError, fmt.Sprintf("Couldn't %s, change undone", msg.action))
		}
		return m, nil

	case healthMsg:
		wasOnline := m.online
		m.online = msg.online
		cmd := tea.Tick(30*time.Second, func(time.Time) tea.Msg { return healthTickMsg{} })
		if wasOnline && !msg.online {
			var toastCmd tea.Cmd
			m, toastCmd = m.pushToast(types.ToastWarning, "Backend unreachable, edits will fail until it returns")
			return m, tea.Batch(cmd, toastCmd)
		}
		return m, cmd

	case healthTickMsg:
		if m.health == nil {
			return m, nil
		}
		return m, m.healthCmd()

	case toastTickMsg:
		now := time.Time(msg)
		kept := m.toasts[:0]
		for _, t := range m.toasts {
			if !t.Expired(now) {
				kept = append(kept, t)
			}
		}
		m.toasts = kept
		if len(m.toasts) > 0 {
			return m, toastTick()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey processes keyboard input based on current mode
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case types.ModeSearch:
		return m.handleSearchMode(msg)
	case types.ModeMove:
		return m.handleMoveMode(msg)
	default:
		return m.handleNormalMode(msg)
	}
}

func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	columns := m.columns()

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "j", "down":
		m.cursor.Task++
	case "k", "up":
		m.cursor.Task--
	case "h", "left":
		m.cursor.Column--
		m.cursor.Task = 0
	case "l", "right":
		m.cursor.Column++
		m.cursor.Task = 0

	case "g":
		m.groupBy = nextGroupBy(m.groupBy)
		m.cursor = board.Cursor{}
		m.savePrefs()
		return m.pushToast(types.ToastInfo, "Grouping by "+m.groupBy.Label())

	case "/":
		m.mode = types.ModeSearch
		m.searchInput.SetValue(m.query)
		m.searchInput.Focus()
		return m, textinput.Blink

	case "m":
		task, ok := m.currentTask(columns)
		if !ok {
			return m, nil
		}
		m.mode = types.ModeMove
		m.movingID = task.ID
		return m, nil

	case "x":
		task, ok := m.currentTask(columns)
		if !ok {
			return m, nil
		}
		return m, m.removeCmd(task.ID)

	case "s":
		return m.shiftStatus(columns, true)
	case "S":
		return m.shiftStatus(columns, false)

	case "+", "=":
		return m.shiftProgress(columns, 10)
	case "-":
		return m.shiftProgress(columns, -10)

	case "r":
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadCmd())

	case "esc":
		if m.query != "" {
			m.query = ""
			m.cursor = board.Cursor{}
		}
	}

	m.cursor = m.cursor.Clamp(m.columns())
	return m, nil
}

func (m Model) handleSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = types.ModeNormal
		m.query = m.searchInput.Value()
		m.searchInput.Blur()
		m.cursor = m.cursor.Clamp(m.columns())
		return m, nil
	case "esc":
		m.mode = types.ModeNormal
		m.query = ""
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	// live filtering while typing
	m.query = m.searchInput.Value()
	m.cursor = m.cursor.Clamp(m.columns())
	return m, cmd
}

func (m Model) handleMoveMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = types.ModeNormal
		m.movingID = ""
		return m, nil

	case "j", "down":
		m.cursor.Task++
	case "k", "up":
		m.cursor.Task--

	case "enter":
		columns := m.columns()
		target, ok := m.currentTask(columns)
		draggedID := m.movingID
		m.mode = types.ModeNormal
		m.movingID = ""
		if !ok || target.ID == draggedID {
			return m, nil
		}
		return m, m.reorderCmd(draggedID, target.ID)
	}

	m.cursor = m.cursor.Clamp(m.columns())
	return m, nil
}

// shiftStatus advances or rewinds the current task's workflow status
func (m Model) shiftStatus(columns []board.Column, forward bool) (tea.Model, tea.Cmd) {
	task, ok := m.currentTask(columns)
	if !ok {
		return m, nil
	}
	next := task.Status.Next()
	if !forward {
		next = task.Status.Prev()
	}
	if next == task.Status {
		return m, nil
	}
	return m, m.updateFieldCmd(task.ID, "status", next, "update status")
}

// shiftProgress nudges the current task's progress, clamped to 0..100
func (m Model) shiftProgress(columns []board.Column, delta int) (tea.Model, tea.Cmd) {
	task, ok := m.currentTask(columns)
	if !ok {
		return m, nil
	}
	next := task.Progress + delta
	if next < 0 {
		next = 0
	}
	if next > 100 {
		next = 100
	}
	if next == task.Progress {
		return m, nil
	}
	return m, m.updateFieldCmd(task.ID, "progress", next, "update progress")
}

// View renders the board, status bar and toast stack
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading "+m.projectName+"...")
	}

	boardHeight := m.height - 2
	columns := m.columns()
	cursor := m.cursor.Clamp(columns)
	mainView := board.Render(columns, cursor, m.movingID, m.styles, m.width, boardHeight)
	if mainView == "" {
		mainView = lipgloss.Place(m.width, boardHeight, lipgloss.Center, lipgloss.Center, "No tasks")
	}

	var bottom string
	if m.mode == types.ModeSearch {
		bottom = m.styles.SearchPrompt.Render(m.searchInput.View())
	} else {
		bottom = statusbar.New(m.mode, m.statusInfo(columns), m.width, m.styles).Render()
	}

	view := lipgloss.JoinVertical(lipgloss.Left, mainView, bottom)

	if len(m.toasts) > 0 {
		toastView := toast.New(m.styles).Render(m.toasts, m.width)
		if toastView != "" {
			view = lipgloss.JoinVertical(lipgloss.Left, view, toastView)
		}
	}

	return view
}

// statusInfo builds the context segment of the status bar
func (m Model) statusInfo(columns []board.Column) string {
	total := 0
	for _, c := range columns {
		total += len(c.Tasks)
	}
	info := fmt.Sprintf("%s · by %s · %d tasks", m.projectName, m.groupBy.Label(), total)
	if m.query != "" {
		info += fmt.Sprintf(" · filter %q", m.query)
	}
	if !m.online {
		info += " · OFFLINE"
	}
	return info
}

// columns builds the current board columns from store state
func (m Model) columns() []board.Column {
	groups := domain.GroupTasks(
		m.store.Tasks(m.projectID),
		m.groupBy,
		m.query,
		m.store.Phases(m.projectID),
	)
	return board.FromGroups(groups)
}

// currentTask returns the task under the cursor
func (m Model) currentTask(columns []board.Column) (domain.Task, bool) {
	c := m.cursor.Clamp(columns)
	if len(columns) == 0 || len(columns[c.Column].Tasks) == 0 {
		return domain.Task{}, false
	}
	return columns[c.Column].Tasks[c.Task], true
}

func nextGroupBy(current domain.GroupBy) domain.GroupBy {
	keys := domain.GroupKeys()
	for i, k := range keys {
		if k == current {
			return keys[(i+1)%len(keys)]
		}
	}
	return keys[0]
}

func (m *Model) savePrefs() {
	if m.prefs == nil {
		return
	}
	if err := m.prefs.PutJSON(cache.KeyUIPrefs, Prefs{GroupBy: string(m.groupBy)}); err != nil {
		m.logger.Warn("prefs not saved", "error", err)
	}
}

// pushToast appends a toast and keeps the expiry ticker running
func (m Model) pushToast(level types.ToastLevel, message string) (Model, tea.Cmd) {
	m.toasts = append(m.toasts, types.NewToast(level, message, m.toastTTL))
	return m, toastTick()
}

func toastTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

func (m Model) healthCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return healthMsg{online: m.health(ctx)}
	}
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return projectLoadedMsg{err: m.store.Load(context.Background(), m.projectID)}
	}
}

func (m Model) updateFieldCmd(taskID, field string, value any, action string) tea.Cmd {
	return func() tea.Msg {
		return mutationMsg{
			action: action,
			err:    m.store.UpdateField(context.Background(), m.projectID, taskID, field, value),
		}
	}
}

func (m Model) reorderCmd(draggedID, targetID string) tea.Cmd {
	return func() tea.Msg {
		return mutationMsg{
			action: "move task",
			err:    m.store.Reorder(context.Background(), m.projectID, draggedID, targetID),
		}
	}
}

func (m Model) removeCmd(taskID string) tea.Cmd {
	return func() tea.Msg {
		return mutationMsg{
			action: "delete task",
			err:    m.store.Remove(context.Background(), m.projectID, taskID),
		}
	}
}
