package cli

import (
	"github.com/alexanderramin/tempo/internal/engine"
	"github.com/spf13/cobra"
)

// App holds what the CLI commands need. IsInteractive gates the interactive
// forms: nil or false means flags-only behavior.
type App struct {
	Engine        *engine.Engine
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "tempo" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "tempo",
		Short: "Adaptive scheduler that learns your rhythm and tunes itself",
	}

	root.AddCommand(
		newNextCmd(app),
		newTaskCmd(app),
		newEnergyCmd(app),
		newModelCmd(app),
		newInsightCmd(app),
		newLearnCmd(app),
		newStatusCmd(app),
		newSharingCmd(app),
		newWatchCmd(app),
	)

	return root
}
