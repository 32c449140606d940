package cli

import (
	"fmt"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/spf13/cobra"
)

func newNextCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "What should I do right now",
		RunE: func(cmd *cobra.Command, args []string) error {
			action := app.Engine.NextAction()
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRecommendation(recommendationData(app, action)))
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}

func recommendationData(app *App, action domain.RecommendedAction) formatter.RecommendationData {
	data := formatter.RecommendationData{Action: action}
	if action.TaskID != "" {
		for _, t := range app.Engine.Tasks() {
			if t.ID == action.TaskID {
				data.TaskName = t.Name
				break
			}
		}
	}
	if model := app.Engine.CurrentModel(); model != nil {
		data.ModelName = model.Name
	}
	return data
}
