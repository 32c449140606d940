package cli

import (
	"context"
	"testing"

	"github.com/alexanderramin/tempo/internal/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchModel_ShowsRecommendation(t *testing.T) {
	app := testApp(t)
	d := teatest.New(t, newWatchModel(app))
	d.DrainInit()

	view := d.View()
	assert.Contains(t, view, "RIGHT NOW")
	assert.Contains(t, view, "BREAK")
	assert.Contains(t, view, "r refresh")
}

func TestWatchModel_RefreshPicksUpModelSwitch(t *testing.T) {
	app := testApp(t)
	d := teatest.New(t, newWatchModel(app))
	d.DrainInit()

	require.NoError(t, app.Engine.UseModel(context.Background(), "ultradian"))
	d.Press('r')

	assert.Contains(t, d.View(), "Ultradian Rhythm")
}

func TestWatchModel_LearnKeyRunsCycle(t *testing.T) {
	app := testApp(t)
	d := teatest.New(t, newWatchModel(app))
	d.DrainInit()

	// The learn Cmd returns immediately against the in-memory engine, so the
	// driver drains learnDoneMsg inline and the spinner line never sticks.
	d.Press('l')

	view := d.View()
	assert.NotContains(t, view, "learning cycle failed")
	assert.Contains(t, view, "RIGHT NOW")
}

func TestWatchModel_QuitKey(t *testing.T) {
	app := testApp(t)
	d := teatest.New(t, newWatchModel(app))
	d.DrainInit()

	d.Press('q')

	assert.True(t, d.Quitting)
}
