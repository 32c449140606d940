// Package teatest provides a synchronous test driver for bubbletea models.
//
// It replaces tea.Program in tests by calling Update() directly and draining
// returned Cmds inline, so models can be tested without goroutines or
// terminals. Timer-backed Cmds (tea.Tick, spinner ticks) block on their
// timer channel; the driver runs each Cmd with a short timeout and skips
// the ones that do not return promptly, which keeps tests deterministic.
package teatest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxDrainDepth bounds command draining so a self-scheduling model cannot
// loop a test forever.
const maxDrainDepth = 100

// cmdTimeout separates instant Cmds (message factories, engine calls) from
// timer Cmds, which wait at least tens of milliseconds.
const cmdTimeout = 10 * time.Millisecond

// Driver is a synchronous test harness for a tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set when tea.QuitMsg is seen during drain. The bubbletea
	// runtime normally intercepts that message, so the driver detects it
	// explicitly.
	Quitting bool
}

// New creates a Driver for the given model. Call DrainInit() to process the
// model's Init() command.
func New(t *testing.T, model tea.Model) *Driver {
	t.Helper()
	return &Driver{T: t, Model: model}
}

// DrainInit executes the model's Init() command and drains the results.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send dispatches a message through Update and drains all resulting Cmds.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	d.drain(cmd, 0)
}

// Press sends a single character key.
func (d *Driver) Press(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// View returns the model's rendered output.
func (d *Driver) View() string {
	return d.Model.View()
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= maxDrainDepth {
		d.T.Logf("teatest: drain depth limit (%d) reached", maxDrainDepth)
		return
	}

	msg := execWithTimeout(cmd)
	if msg == nil {
		return
	}

	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, sub := range batch {
			if sub != nil {
				d.drain(sub, depth+1)
			}
		}
		return
	}

	if _, isQuit := msg.(tea.QuitMsg); isQuit {
		d.Quitting = true
		updated, _ := d.Model.Update(msg)
		d.Model = updated
		return
	}

	updated, next := d.Model.Update(msg)
	d.Model = updated
	d.drain(next, depth+1)
}

func execWithTimeout(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() {
		ch <- cmd()
	}()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}
