package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newModelCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Inspect and switch scheduling models",
	}
	cmd.AddCommand(
		newModelListCmd(app),
		newModelShowCmd(app),
		newModelUseCmd(app),
	)
	return cmd
}

func newModelListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available models",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatModelList(app.Engine.Models(), app.Engine.CurrentModelID()))
			return nil
		},
	}
}

func newModelShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show a model's configuration (default: the active one)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := app.Engine.CurrentModelID()
			if len(args) == 1 {
				id = args[0]
			}
			if id == "" {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No model active. Pick one with 'tempo model use <id>'."))
				return nil
			}
			for _, m := range app.Engine.Models() {
				if m.ID == id {
					fmt.Fprint(cmd.OutOrStdout(), formatter.FormatModelDetail(m))
					return nil
				}
			}
			return fmt.Errorf("no scheduling model %q", id)
		},
	}
}

func newModelUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use <id>",
		Short: "Switch the active model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Engine.UseModel(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Now using %s\n", formatter.Bold(args[0]))
			return nil
		},
	}
}
