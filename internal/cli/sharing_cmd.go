package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSharingCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sharing",
		Short: "Anonymized data sharing preference",
		RunE: func(cmd *cobra.Command, args []string) error {
			state := "off"
			if app.Engine.DataSharing() {
				state = "on"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Data sharing is %s\n", formatter.Bold(state))
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "on",
			Short: "Enable data sharing",
			RunE: func(cmd *cobra.Command, args []string) error {
				app.Engine.SetDataSharing(context.Background(), true)
				fmt.Fprintln(cmd.OutOrStdout(), "Data sharing enabled")
				return nil
			},
		},
		&cobra.Command{
			Use:   "off",
			Short: "Disable data sharing",
			RunE: func(cmd *cobra.Command, args []string) error {
				app.Engine.SetDataSharing(context.Background(), false)
				fmt.Fprintln(cmd.OutOrStdout(), "Data sharing disabled")
				return nil
			},
		},
	)

	return cmd
}
