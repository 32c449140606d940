package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskDoneCmd(app),
	)
	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var priority, complexity, energy, deadline string
	var estimate int

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var due *time.Time
			if deadline != "" {
				parsed, err := parseDeadline(deadline)
				if err != nil {
					return err
				}
				due = &parsed
			}

			task, err := app.Engine.AddTask(context.Background(),
				strings.Join(args, " "),
				domain.Quadrant(priority),
				domain.Complexity(complexity),
				domain.EnergyLevel(energy),
				estimate,
				due,
			)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s\n",
				formatter.Bold(task.Name), formatter.TruncID(task.ID))
			return nil
		},
	}

	cmd.Flags().Var(newEnumValue(&priority, string(domain.QuadrantNotUrgentImportant), "quadrant", domain.ValidQuadrants), "priority", "Eisenhower quadrant")
	cmd.Flags().Var(newEnumValue(&complexity, string(domain.ComplexityModerate), "complexity", domain.ValidComplexities), "complexity", "Task complexity")
	cmd.Flags().Var(newEnumValue(&energy, string(domain.EnergyModerate), "energy", domain.ValidEnergyLevels), "energy", "Energy the task demands")
	cmd.Flags().IntVar(&estimate, "estimate", 25, "Estimated minutes")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline (YYYY-MM-DD or RFC3339)")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskList(app.Engine.Tasks(), time.Now()))
			return nil
		},
	}
}

func newTaskDoneCmd(app *App) *cobra.Command {
	var actual, satisfaction int

	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := resolveTaskID(app, args[0])

			var actualPtr, satisfactionPtr *int
			if cmd.Flags().Changed("actual") {
				actualPtr = &actual
			}
			if cmd.Flags().Changed("satisfaction") {
				satisfactionPtr = &satisfaction
			}

			if err := app.Engine.CompleteTask(context.Background(), id, actualPtr, satisfactionPtr); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Done %s\n", formatter.TruncID(id))
			return nil
		},
	}

	cmd.Flags().IntVar(&actual, "actual", 0, "Actual minutes spent")
	cmd.Flags().IntVar(&satisfaction, "satisfaction", 0, "Satisfaction 1..5")

	return cmd
}

// resolveTaskID expands an ID prefix to the full task ID when it matches
// exactly one incomplete task.
func resolveTaskID(app *App, prefix string) string {
	var match string
	for _, t := range app.Engine.Tasks() {
		if t.ID == prefix {
			return prefix
		}
		if !t.Completed && strings.HasPrefix(t.ID, prefix) {
			if match != "" {
				return prefix // ambiguous, let the engine report it
			}
			match = t.ID
		}
	}
	if match != "" {
		return match
	}
	return prefix
}

func parseDeadline(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		// A bare date means end of that day.
		return t.Add(23*time.Hour + 59*time.Minute), nil
	}
	return time.Time{}, fmt.Errorf("cannot parse deadline %q: use YYYY-MM-DD or RFC3339", raw)
}
