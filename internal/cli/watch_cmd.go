package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// watchInterval is how often the live view re-evaluates the recommendation.
const watchInterval = 30 * time.Second

func newWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Live recommendation view",
		RunE: func(cmd *cobra.Command, args []string) error {
			program := tea.NewProgram(newWatchModel(app), tea.WithAltScreen())
			_, err := program.Run()
			return err
		},
	}
}

type watchKeymap struct {
	Refresh key.Binding
	Learn   key.Binding
	Quit    key.Binding
}

func defaultWatchKeymap() watchKeymap {
	return watchKeymap{
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Learn:   key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "learn")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type watchTickMsg time.Time

type learnDoneMsg struct{ err error }

type watchModel struct {
	app      *App
	keys     watchKeymap
	spinner  spinner.Model
	data     formatter.RecommendationData
	learning bool
	lastErr  error
}

func newWatchModel(app *App) watchModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StyleHeader

	return watchModel{
		app:     app,
		keys:    defaultWatchKeymap(),
		spinner: sp,
		data:    recommendationData(app, app.Engine.NextAction()),
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, watchTick())
}

func watchTick() tea.Cmd {
	return tea.Tick(watchInterval, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			m.data = recommendationData(m.app, m.app.Engine.NextAction())
			return m, nil
		case key.Matches(msg, m.keys.Learn):
			if m.learning {
				return m, nil
			}
			m.learning = true
			return m, runLearnCycle(m.app)
		}
		return m, nil

	case watchTickMsg:
		m.data = recommendationData(m.app, m.app.Engine.NextAction())
		return m, watchTick()

	case learnDoneMsg:
		m.learning = false
		m.lastErr = msg.err
		m.data = recommendationData(m.app, m.app.Engine.NextAction())
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func runLearnCycle(app *App) tea.Cmd {
	return func() tea.Msg {
		return learnDoneMsg{err: app.Engine.RunLearningCycle(context.Background())}
	}
}

func (m watchModel) View() string {
	out := formatter.FormatRecommendation(m.data) + "\n"

	if m.learning {
		out += m.spinner.View() + formatter.Dim(" running a learning cycle…") + "\n"
	}
	if m.lastErr != nil {
		out += formatter.StyleRed.Render(fmt.Sprintf("learning cycle failed: %v", m.lastErr)) + "\n"
	}

	out += formatter.Dim("r refresh · l learn · q quit") + "\n"
	return out
}
