package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "One-screen overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			data := formatter.StatusData{
				ModelID:     app.Engine.CurrentModelID(),
				Readings:    len(app.Engine.Readings()),
				Adaptations: len(app.Engine.Adaptations()),
				DataSharing: app.Engine.DataSharing(),
				Trend:       0.5,
			}
			if model := app.Engine.CurrentModel(); model != nil {
				data.ModelName = model.Name
			}
			for _, t := range app.Engine.Tasks() {
				if t.Completed {
					data.CompletedTasks++
				} else {
					data.OpenTasks++
				}
			}
			if report, _, err := app.Engine.Report(context.Background()); err == nil {
				data.Trend = report.ProductivityTrend
				data.TrendConfidence = report.TrendConfidence
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStatus(data))
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}
