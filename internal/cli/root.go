// Package cli defines the taskflow command tree.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/taskflow/taskflow/internal/api"
	"github.com/taskflow/taskflow/internal/app"
	"github.com/taskflow/taskflow/internal/cache"
	"github.com/taskflow/taskflow/internal/config"
	"github.com/taskflow/taskflow/internal/store"
)

// Dependencies holds the wired services shared by all commands
type Dependencies struct {
	Config *config.Config
	API    *api.API
	Cache  *cache.Cache
	Store  *store.Store
	Logger *slog.Logger
}

// NewDependencies loads config and wires the API clients, cache and store.
// A cache that fails to open is reported and skipped, not fatal: the board
// runs without offline snapshots.
func NewDependencies(cfg *config.Config) *Dependencies {
	logger := slog.Default()

	c, err := cache.Open(cfg.Cache.Path, logger)
	if err != nil {
		logger.Warn("cache unavailable, offline snapshots disabled", "path", cfg.Cache.Path, "error", err)
		c = nil
	}

	apis := api.New(cfg.API.BaseURL, nil, logger)

	var mirror store.Mirror
	if c != nil {
		mirror = c
	}
	st := store.New(apis.Tasks, apis.Phases, apis.Deals, mirror, logger)

	return &Dependencies{
		Config: cfg,
		API:    apis,
		Cache:  c,
		Store:  st,
		Logger: logger,
	}
}

// Close releases held resources
func (d *Dependencies) Close() {
	if d.Cache != nil {
		if err := d.Cache.Close(); err != nil {
			d.Logger.Warn("cache close failed", "error", err)
		}
	}
}

// NewRootCmd builds the taskflow command. The bare command launches the
// board TUI; subcommands cover the scriptable surface and the local stub
// backend.
func NewRootCmd() *cobra.Command {
	var projectFlag string
	var baseURLFlag string

	cmd := &cobra.Command{
		Use:          "taskflow",
		Short:        "TaskFlow project board TUI + CLI",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, deps, err := setup(baseURLFlag)
			if err != nil {
				return err
			}
			defer deps.Close()
			return runTUI(cfg, deps, projectFlag)
		},
	}

	cmd.PersistentFlags().StringVar(&projectFlag, "project", "", "Project id (default: most recent, else first listed)")
	cmd.PersistentFlags().StringVar(&baseURLFlag, "api", "", "Backend base URL (overrides config)")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newTasksCmd(&projectFlag, &baseURLFlag))
	cmd.AddCommand(newDealsCmd(&baseURLFlag))

	return cmd
}

func setup(baseURLOverride string) (*config.Config, *Dependencies, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if baseURLOverride != "" {
		cfg.API.BaseURL = baseURLOverride
	}
	return cfg, NewDependencies(cfg), nil
}

func runTUI(cfg *config.Config, deps *Dependencies, projectFlag string) error {
	projectID, projectName, err := resolveProject(deps, projectFlag)
	if err != nil {
		return err
	}

	model := app.New(cfg, deps.Store, deps.Cache, projectID, projectName, deps.Logger).
		WithHealthCheck(deps.API.Health)
	program := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run program: %w", err)
	}
	return nil
}

// resolveProject picks the project to open: explicit flag, then the most
// recently opened project from the cache, then the backend's first listed
// project.
func resolveProject(deps *Dependencies, flag string) (id, name string, err error) {
	ctx := context.Background()

	if flag != "" {
		p, err := deps.API.Projects.Get(ctx, flag)
		if err != nil {
			// Open the board anyway; Load falls back to the snapshot.
			deps.Logger.Warn("project lookup failed", "project_id", flag, "error", err)
			return flag, flag, nil
		}
		return p.ID, p.Name, nil
	}

	if deps.Cache != nil {
		var recent string
		if deps.Cache.GetJSON(cache.KeyRecentProject, &recent) && recent != "" {
			if p, err := deps.API.Projects.Get(ctx, recent); err == nil {
				return p.ID, p.Name, nil
			}
			return recent, recent, nil
		}
	}

	projects, err := deps.API.Projects.GetAll(ctx)
	if err != nil {
		return "", "", fmt.Errorf("no project selected and listing failed: %w", err)
	}
	if len(projects) == 0 {
		return "", "", fmt.Errorf("no projects on the backend; create one or pass --project")
	}
	return projects[0].ID, projects[0].Name, nil
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
