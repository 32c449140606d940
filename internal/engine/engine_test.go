package engine

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/metrics"
	"github.com/alexanderramin/tempo/internal/notify"
	"github.com/alexanderramin/tempo/internal/settings"
	"github.com/alexanderramin/tempo/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type engineFixture struct {
	engine   *Engine
	store    *store.Store
	settings *settings.MemoryStore
	now      time.Time
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()
	f := &engineFixture{
		settings: settings.NewMemoryStore(),
		now:      time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC),
	}
	f.store = store.New(f.settings, nil)
	clock := func() time.Time { return f.now }
	analyzer := metrics.NewAnalyzer(f.store, clock)
	f.engine = New(f.store, f.settings, analyzer, analyzer, notify.Noop{}, nil, WithClock(clock))
	return f
}

func TestEngine_AddTask_InvalidQuadrant(t *testing.T) {
	f := newEngineFixture(t)

	_, err := f.engine.AddTask(context.Background(), "write report", "sideways", domain.ComplexityModerate, domain.EnergyModerate, 30, nil)

	var engErr *Error
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, ErrInvalidTask, engErr.Code)
}

func TestEngine_CompleteTask_UnknownID(t *testing.T) {
	f := newEngineFixture(t)

	err := f.engine.CompleteTask(context.Background(), "missing", nil, nil)

	var engErr *Error
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, ErrInvalidCompletion, engErr.Code)
}

func TestEngine_CompleteTask_Backfills(t *testing.T) {
	f := newEngineFixture(t)
	task, err := f.engine.AddTask(context.Background(), "write report", domain.QuadrantUrgentImportant, domain.ComplexityModerate, domain.EnergyModerate, 30, nil)
	require.NoError(t, err)

	actual, satisfaction := 45, 4
	require.NoError(t, f.engine.CompleteTask(context.Background(), task.ID, &actual, &satisfaction))

	tasks := f.engine.Tasks()
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].Completed)
	assert.Equal(t, 45, *tasks[0].ActualMin)
	assert.Equal(t, 4, *tasks[0].Satisfaction)
	assert.Empty(t, f.engine.Incomplete())
}

func TestEngine_RecordEnergy_OutOfRange(t *testing.T) {
	f := newEngineFixture(t)

	_, err := f.engine.RecordEnergy(context.Background(), 11, 0.5)

	var engErr *Error
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, ErrInvalidReading, engErr.Code)
}

func TestEngine_RecordEnergy_StampsClock(t *testing.T) {
	f := newEngineFixture(t)

	reading, err := f.engine.RecordEnergy(context.Background(), 7, 0.8)
	require.NoError(t, err)

	assert.Equal(t, f.now, reading.Timestamp)
	assert.Equal(t, 9, reading.Hour)
	assert.Len(t, f.engine.Readings(), 1)
}

func TestEngine_UseModel_UnknownID(t *testing.T) {
	f := newEngineFixture(t)

	err := f.engine.UseModel(context.Background(), "pomodoro-deluxe")

	var engErr *Error
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, ErrUnknownModel, engErr.Code)
	assert.Equal(t, "", f.engine.CurrentModelID())
}

func TestEngine_UseModel_SwitchesAtomically(t *testing.T) {
	f := newEngineFixture(t)

	require.NoError(t, f.engine.UseModel(context.Background(), "ultradian"))
	assert.Equal(t, "ultradian", f.engine.CurrentModelID())

	require.NoError(t, f.engine.UseModel(context.Background(), "eisenhower"))
	assert.Equal(t, "eisenhower", f.engine.CurrentModelID())

	current := f.engine.CurrentModel()
	require.NotNil(t, current)
	assert.Equal(t, "eisenhower", current.ID)
}

func TestEngine_NextAction_NoModelLowConfidenceBreak(t *testing.T) {
	f := newEngineFixture(t)

	action := f.engine.NextAction()

	assert.Equal(t, domain.ActionBreak, action.Type)
	assert.Equal(t, 5, action.DurationMin)
	assert.Equal(t, 0.5, action.Confidence)
}

func TestEngine_RebuildIntelligence_RequiresTenReadings(t *testing.T) {
	f := newEngineFixture(t)
	for i := 0; i < 9; i++ {
		_, err := f.engine.RecordEnergy(context.Background(), 8, 0.9)
		require.NoError(t, err)
		f.now = f.now.Add(time.Hour)
	}

	assert.Nil(t, f.engine.RebuildIntelligence(context.Background()))
	assert.Nil(t, f.engine.Intelligence())

	_, err := f.engine.RecordEnergy(context.Background(), 8, 0.9)
	require.NoError(t, err)

	intel := f.engine.RebuildIntelligence(context.Background())
	require.NotNil(t, intel)
	assert.Same(t, intel, f.engine.Intelligence())
}

func TestEngine_Models_IncludesLearnedAfterRebuild(t *testing.T) {
	f := newEngineFixture(t)
	assert.Len(t, f.engine.Models(), 6, "catalog only before any intelligence")

	for i := 0; i < 12; i++ {
		_, err := f.engine.RecordEnergy(context.Background(), 8, 0.9)
		require.NoError(t, err)
		f.now = f.now.Add(time.Hour)
	}
	require.NotNil(t, f.engine.RebuildIntelligence(context.Background()))

	models := f.engine.Models()
	require.Len(t, models, 7)
	assert.Equal(t, "energy-based-learned", models[6].ID)
}

func TestEngine_RemoveRules_ByAdaptationID(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()
	f.engine.AddRule(ctx, domain.AdaptationRule{ID: "r1", AdaptationID: "a1", WorkDurationMultiplier: 0.8})
	f.engine.AddRule(ctx, domain.AdaptationRule{ID: "r2", AdaptationID: "a2", WorkDurationMultiplier: 1.2})
	f.engine.AddRule(ctx, domain.AdaptationRule{ID: "r3", AdaptationID: "a1", WorkDurationMultiplier: 0.9})

	removed := f.engine.RemoveRules(ctx, "a1")

	assert.Equal(t, 2, removed)
	rules := f.engine.Rules()
	require.Len(t, rules, 1)
	assert.Equal(t, "r2", rules[0].ID)
}

func TestEngine_SetDataSharing_Persists(t *testing.T) {
	f := newEngineFixture(t)
	assert.False(t, f.engine.DataSharing())

	f.engine.SetDataSharing(context.Background(), true)
	assert.True(t, f.engine.DataSharing())

	raw, err := f.settings.Load(context.Background(), settings.KeyDataSharing)
	require.NoError(t, err)
	assert.Equal(t, "true", string(raw))
}

func TestEngine_Restore_RoundTripsState(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	_, err := f.engine.AddTask(ctx, "write report", domain.QuadrantUrgentImportant, domain.ComplexityModerate, domain.EnergyModerate, 30, nil)
	require.NoError(t, err)
	require.NoError(t, f.engine.UseModel(ctx, "deadline-driven"))
	f.engine.AddRule(ctx, domain.AdaptationRule{ID: "r1", AdaptationID: "a1", WorkDurationMultiplier: 0.8})
	f.engine.SetDataSharing(ctx, true)

	clock := func() time.Time { return f.now }
	analyzer := metrics.NewAnalyzer(store.New(f.settings, nil), clock)
	reloaded := New(store.New(f.settings, nil), f.settings, analyzer, analyzer, notify.Noop{}, nil, WithClock(clock))
	require.NoError(t, reloaded.Restore(ctx))

	assert.Len(t, reloaded.Tasks(), 1)
	assert.Equal(t, "deadline-driven", reloaded.CurrentModelID())
	require.Len(t, reloaded.Rules(), 1)
	assert.Equal(t, "r1", reloaded.Rules()[0].ID)
	assert.True(t, reloaded.DataSharing())
}

func TestEngine_Restore_EmptyStoreIsFirstRun(t *testing.T) {
	f := newEngineFixture(t)
	require.NoError(t, f.engine.Restore(context.Background()))
	assert.Empty(t, f.engine.Tasks())
	assert.Nil(t, f.engine.CurrentModel())
	assert.Empty(t, f.engine.Rules())
	assert.False(t, f.engine.DataSharing())
}

func TestEngine_RunLearningCycle_RebuildsIntelligence(t *testing.T) {
	f := newEngineFixture(t)
	for i := 0; i < 12; i++ {
		_, err := f.engine.RecordEnergy(context.Background(), 8, 0.9)
		require.NoError(t, err)
		f.now = f.now.Add(time.Hour)
	}

	require.NoError(t, f.engine.RunLearningCycle(context.Background()))
	assert.NotNil(t, f.engine.Intelligence())
}
