package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newInsightCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "insight",
		Short: "Your circadian profile, derived from recorded readings",
		RunE: func(cmd *cobra.Command, args []string) error {
			intel := app.Engine.Intelligence()
			if intel == nil {
				intel = app.Engine.RebuildIntelligence(context.Background())
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatInsight(intel))
			return nil
		},
	}
}
