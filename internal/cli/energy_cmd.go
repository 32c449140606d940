package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newEnergyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "energy",
		Short: "Record and review energy readings",
	}
	cmd.AddCommand(
		newEnergyLogCmd(app),
		newEnergyListCmd(app),
	)
	return cmd
}

func newEnergyLogCmd(app *App) *cobra.Command {
	var level int
	var completion float64

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record how you feel right now",
		RunE: func(cmd *cobra.Command, args []string) error {
			flagged := cmd.Flags().Changed("level") && cmd.Flags().Changed("completion")
			if !flagged && app.interactive() {
				var err error
				level, completion, err = energyForm(level, completion)
				if err != nil {
					return err
				}
			}

			reading, err := app.Engine.RecordEnergy(context.Background(), level, completion)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged energy %d/10, completion %.0f%% at %s\n",
				reading.EnergyLevel, reading.CompletionRate*100, formatter.HourLabel(reading.Hour))
			return nil
		},
	}

	cmd.Flags().IntVar(&level, "level", 5, "Energy level 1..10")
	cmd.Flags().Float64Var(&completion, "completion", 0.5, "Share of planned work completed, 0..1")

	return cmd
}

// energyForm collects the two reading fields interactively.
func energyForm(defaultLevel int, defaultCompletion float64) (int, float64, error) {
	levelStr := strconv.Itoa(defaultLevel)
	completionStr := strconv.FormatFloat(defaultCompletion, 'f', -1, 64)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Energy level (1-10)").
				Placeholder("7").
				Value(&levelStr).
				Validate(validateIntRange(1, 10)),
			huh.NewInput().
				Title("How much of what you planned got done? (0-1)").
				Placeholder("0.8").
				Value(&completionStr).
				Validate(validateFloatRange(0, 1)),
		),
	).WithTheme(tempoHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return 0, 0, err
	}

	level, err := strconv.Atoi(levelStr)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing energy level: %w", err)
	}
	completion, err := strconv.ParseFloat(completionStr, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing completion rate: %w", err)
	}
	return level, completion, nil
}

func newEnergyListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Recent readings",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReadings(app.Engine.Readings(), limit))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "How many readings to show")

	return cmd
}
