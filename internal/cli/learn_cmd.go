package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newLearnCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "learn",
		Short: "The self-tuning loop",
	}
	cmd.AddCommand(
		newLearnRunCmd(app),
		newLearnStatusCmd(app),
	)
	return cmd
}

func newLearnRunCmd(app *App) *cobra.Command {
	var cycles int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run learning cycles now",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cycles < 1 {
				return fmt.Errorf("cycles must be at least 1")
			}

			before := len(app.Engine.Adaptations())
			for i := 0; i < cycles; i++ {
				if err := app.Engine.RunLearningCycle(context.Background()); err != nil {
					return fmt.Errorf("running cycle %d: %w", i+1, err)
				}
			}
			after := len(app.Engine.Adaptations())

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLearnRun(cycles, before, after))
			return nil
		},
	}

	cmd.Flags().IntVar(&cycles, "cycles", 1, "How many cycles to run")

	return cmd
}

func newLearnStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Adaptation history and active cooldowns",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(),
				formatter.FormatLearnStatus(app.Engine.Adaptations(), app.Engine.Cooldowns(), time.Now()))
			return nil
		},
	}
}
