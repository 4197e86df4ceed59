package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskflow/taskflow/internal/stub"
)

// newServeCmd runs the local in-memory stub backend
func newServeCmd() *cobra.Command {
	var addr string
	var seed bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local stub backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.Default()
			srv := stub.NewServer(logger)
			if seed {
				srv.SeedDemo()
			}

			logger.Info("stub backend listening", "addr", addr, "seeded", seed)
			httpServer := &http.Server{
				Addr:              addr,
				Handler:           srv.Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}
			return httpServer.ListenAndServe()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8823", "Listen address")
	cmd.Flags().BoolVar(&seed, "seed", true, "Seed demo data")
	return cmd
}

// newTasksCmd lists the tasks of a project as a table
func newTasksCmd(projectFlag, baseURLFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "List tasks for a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, deps, err := setup(*baseURLFlag)
			if err != nil {
				return err
			}
			defer deps.Close()

			projectID, _, err := resolveProject(deps, *projectFlag)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := deps.Store.Load(ctx, projectID); err != nil {
				deps.Logger.Warn("showing cached tasks", "project_id", projectID, "error", err)
			}
			tasks := deps.Store.Tasks(projectID)
			phases := deps.Store.Phases(projectID)

			if len(tasks) == 0 {
				fmt.Println("No tasks")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSTATUS\tPHASE\tASSIGNEE\tPROGRESS")
			for _, t := range tasks {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d%%\n",
					t.ID, t.Name, t.Status.Label(), phases.LabelFor(t.PhaseID), t.AssigneeName(), t.Progress)
			}
			return w.Flush()
		},
	}
}

// newDealsCmd lists the deal pipeline with weighted values
func newDealsCmd(baseURLFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "deals",
		Short: "List the deal pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, deps, err := setup(*baseURLFlag)
			if err != nil {
				return err
			}
			defer deps.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := deps.Store.LoadDeals(ctx); err != nil {
				return err
			}
			deals := deps.Store.Deals()
			if len(deals) == 0 {
				fmt.Println("No deals")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSTAGE\tVALUE\tPROB\tWEIGHTED")
			var total float64
			for _, d := range deals {
				total += d.WeightedValue()
				fmt.Fprintf(w, "%s\t%s\t%s\t%.0f %s\t%d%%\t%.0f\n",
					d.ID, d.Name, d.Stage.Label(), d.Value, d.Currency, d.Probability, d.WeightedValue())
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Printf("\nWeighted pipeline: %.0f\n", total)
			return nil
		},
	}
}
