package adapt

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/notify"
	"github.com/alexanderramin/tempo/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeModels struct {
	mu       sync.Mutex
	current  string
	switches []string
}

func (f *fakeModels) CurrentModelID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

func (f *fakeModels) SwitchModel(_ context.Context, modelID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = modelID
	f.switches = append(f.switches, modelID)
	return nil
}

type fakeRules struct {
	mu    sync.Mutex
	rules []domain.AdaptationRule
}

func (f *fakeRules) AddRule(_ context.Context, rule domain.AdaptationRule) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules = append(f.rules, rule)
}

func (f *fakeRules) RemoveRules(_ context.Context, adaptationID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.rules[:0]
	removed := 0
	for _, r := range f.rules {
		if r.AdaptationID == adaptationID {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	f.rules = kept
	return removed
}

func (f *fakeRules) all() []domain.AdaptationRule {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.AdaptationRule(nil), f.rules...)
}

type fakeMetrics struct {
	mu       sync.Mutex
	baseline domain.BaselineMetrics
}

func (f *fakeMetrics) Baseline(context.Context) domain.BaselineMetrics {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.baseline
}

func (f *fakeMetrics) set(b domain.BaselineMetrics) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.baseline = b
}

type fakeReports struct {
	mu       sync.Mutex
	report   domain.PerformanceReport
	insights domain.ContextualInsights
	err      error
}

func (f *fakeReports) Report(context.Context) (domain.PerformanceReport, domain.ContextualInsights, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.report, f.insights, f.err
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type loopFixture struct {
	loop    *Loop
	models  *fakeModels
	rules   *fakeRules
	metrics *fakeMetrics
	reports *fakeReports
	store   *settings.MemoryStore
	clock   *testClock
}

func newLoopFixture(t *testing.T) *loopFixture {
	t.Helper()
	f := &loopFixture{
		models:  &fakeModels{current: "ultradian"},
		rules:   &fakeRules{},
		metrics: &fakeMetrics{baseline: domain.BaselineMetrics{Productivity: 50, Satisfaction: 3, CompletionRate: 0.5}},
		reports: &fakeReports{report: domain.PerformanceReport{ProductivityTrend: 0.5}},
		store:   settings.NewMemoryStore(),
		clock:   &testClock{now: time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)},
	}
	f.loop = NewLoop(f.models, f.rules, f.metrics, f.reports, notify.Noop{}, f.store, nil, f.clock.Now)
	return f
}

func modelSwitchReport(confidence float64) domain.PerformanceReport {
	return domain.PerformanceReport{
		GeneratedAt:       time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC),
		BestModelID:       "energy-based",
		ProductivityTrend: 0.5,
		ModelScores: []domain.ModelScore{
			{ModelID: "ultradian", Effectiveness: 60, Sessions: 20, Confidence: 0.9},
			{ModelID: "energy-based", Effectiveness: 80, Sessions: 15, Confidence: confidence},
		},
	}
}

func TestRunCycle_LowConfidenceNeverExecutes(t *testing.T) {
	f := newLoopFixture(t)
	f.reports.report = modelSwitchReport(0.8) // at the cutoff, not above

	require.NoError(t, f.loop.RunCycle(context.Background()))

	assert.Equal(t, "ultradian", f.models.CurrentModelID())
	assert.Empty(t, f.loop.Adaptations())
}

func TestRunCycle_ExecutesModelSwitch(t *testing.T) {
	f := newLoopFixture(t)
	f.reports.report = modelSwitchReport(0.9)

	require.NoError(t, f.loop.RunCycle(context.Background()))

	assert.Equal(t, "energy-based", f.models.CurrentModelID())

	adaptations := f.loop.Adaptations()
	require.Len(t, adaptations, 1)
	assert.Equal(t, domain.OpportunityModelSwitch, adaptations[0].Type)
	assert.Equal(t, domain.AdaptationActive, adaptations[0].Status)
	assert.Equal(t, 50.0, adaptations[0].BaselineMetrics.Productivity)
	assert.Equal(t, 7*24*time.Hour, adaptations[0].MonitoringInterval)
	assert.NotEmpty(t, adaptations[0].ID)
}

func TestRunCycle_CooldownPreventsRepeat(t *testing.T) {
	f := newLoopFixture(t)
	f.reports.report = modelSwitchReport(0.9)

	require.NoError(t, f.loop.RunCycle(context.Background()))
	// The switch succeeded, so make the same opportunity reappear.
	f.models.SwitchModel(context.Background(), "ultradian")

	f.clock.Advance(time.Hour)
	require.NoError(t, f.loop.RunCycle(context.Background()))
	assert.Len(t, f.loop.Adaptations(), 1, "same signature inside cooldown must not execute twice")

	f.clock.Advance(25 * time.Hour)
	require.NoError(t, f.loop.RunCycle(context.Background()))
	assert.Len(t, f.loop.Adaptations(), 2, "cooldown expiry re-enables the opportunity")
}

func TestRunCycle_RollbackRestoresModel(t *testing.T) {
	f := newLoopFixture(t)
	f.reports.report = modelSwitchReport(0.9)
	require.NoError(t, f.loop.RunCycle(context.Background()))
	require.Equal(t, "energy-based", f.models.CurrentModelID())

	// A week later the metrics did not improve.
	f.clock.Advance(7*24*time.Hour + time.Minute)
	f.metrics.set(domain.BaselineMetrics{Productivity: 45, Satisfaction: 3, CompletionRate: 0.4})
	f.reports.report = domain.PerformanceReport{ProductivityTrend: 0.5}

	require.NoError(t, f.loop.RunCycle(context.Background()))

	adaptations := f.loop.Adaptations()
	require.Len(t, adaptations, 1)
	assert.Equal(t, domain.AdaptationRolledBack, adaptations[0].Status)
	require.NotNil(t, adaptations[0].RollbackDate)
	require.NotNil(t, adaptations[0].ImpactMetrics)
	assert.Equal(t, 45.0, adaptations[0].ImpactMetrics.Productivity)
	assert.Equal(t, "ultradian", f.models.CurrentModelID(), "rollback restores the previous model")
	assert.NotEmpty(t, f.loop.Cooldowns(), "rollback installs a fresh cooldown")
}

// flakyModels fails a set number of SwitchModel calls before recovering.
type flakyModels struct {
	fakeModels
	failures int
}

func (f *flakyModels) fail(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures = n
}

func (f *flakyModels) SwitchModel(ctx context.Context, modelID string) error {
	f.mu.Lock()
	if f.failures > 0 {
		f.failures--
		f.mu.Unlock()
		return errors.New("model store unavailable")
	}
	f.mu.Unlock()
	return f.fakeModels.SwitchModel(ctx, modelID)
}

func TestRunCycle_FailedRollbackIsRetriedNextCycle(t *testing.T) {
	f := newLoopFixture(t)
	models := &flakyModels{fakeModels: fakeModels{current: "ultradian"}}
	f.loop = NewLoop(models, f.rules, f.metrics, f.reports, notify.Noop{}, f.store, nil, f.clock.Now)
	f.reports.report = modelSwitchReport(0.9)
	require.NoError(t, f.loop.RunCycle(context.Background()))
	require.Equal(t, "energy-based", models.CurrentModelID())

	// A week later the change did not help, and the reversal fails once.
	f.clock.Advance(7*24*time.Hour + time.Minute)
	f.metrics.set(domain.BaselineMetrics{Productivity: 45, Satisfaction: 3, CompletionRate: 0.4})
	f.reports.report = domain.PerformanceReport{ProductivityTrend: 0.5}
	models.fail(1)

	require.NoError(t, f.loop.RunCycle(context.Background()))
	adaptations := f.loop.Adaptations()
	require.Len(t, adaptations, 1)
	assert.Equal(t, domain.AdaptationNeedsRollback, adaptations[0].Status)
	assert.Equal(t, "energy-based", models.CurrentModelID(), "failed reversal leaves the applied model in place")

	// The next cycle retries the reversal and completes it.
	f.clock.Advance(time.Hour)
	require.NoError(t, f.loop.RunCycle(context.Background()))

	adaptations = f.loop.Adaptations()
	require.Len(t, adaptations, 1)
	assert.Equal(t, domain.AdaptationRolledBack, adaptations[0].Status)
	require.NotNil(t, adaptations[0].RollbackDate)
	assert.Equal(t, "ultradian", models.CurrentModelID(), "retried rollback restores the previous model")
}

func TestRunCycle_MarksSuccessfulOnImprovement(t *testing.T) {
	f := newLoopFixture(t)
	f.reports.report = modelSwitchReport(0.9)
	require.NoError(t, f.loop.RunCycle(context.Background()))

	f.clock.Advance(7*24*time.Hour + time.Minute)
	f.metrics.set(domain.BaselineMetrics{Productivity: 62, Satisfaction: 3.5, CompletionRate: 0.6})
	f.reports.report = domain.PerformanceReport{ProductivityTrend: 0.5}

	require.NoError(t, f.loop.RunCycle(context.Background()))

	adaptations := f.loop.Adaptations()
	require.Len(t, adaptations, 1)
	assert.Equal(t, domain.AdaptationSuccessful, adaptations[0].Status)
	assert.Equal(t, "energy-based", f.models.CurrentModelID(), "a successful adaptation stays in place")
}

func TestRunCycle_ContextRuleInstalledAndRemovedOnRollback(t *testing.T) {
	f := newLoopFixture(t)
	f.reports.insights = domain.ContextualInsights{
		TimePatterns: []domain.TimePattern{
			{Label: "morning", Hours: []int{9, 10, 11}, Effectiveness: 92, Confidence: 0.9},
		},
	}
	f.reports.report = domain.PerformanceReport{ProductivityTrend: 0.5}

	require.NoError(t, f.loop.RunCycle(context.Background()))

	rules := f.rules.all()
	require.Len(t, rules, 1)
	assert.Equal(t, domain.OpportunityContextOptimization, rules[0].Source)
	assert.Equal(t, []int{9, 10, 11}, rules[0].Hours)
	assert.InDelta(t, 1.17, rules[0].WorkDurationMultiplier, 0.001)

	f.clock.Advance(7*24*time.Hour + time.Minute)
	f.metrics.set(domain.BaselineMetrics{Productivity: 40, Satisfaction: 2.5, CompletionRate: 0.3})
	f.reports.insights = domain.ContextualInsights{}

	require.NoError(t, f.loop.RunCycle(context.Background()))
	assert.Empty(t, f.rules.all(), "rollback removes the rules the adaptation installed")
}

func TestRunCycle_EnergyRuleShortensSessions(t *testing.T) {
	f := newLoopFixture(t)
	f.reports.insights = domain.ContextualInsights{
		EnergyPatterns: []domain.EnergyOutcomePattern{
			{Hours: []int{14, 15}, ExpectedOutcome: 55, Confidence: 0.85},
		},
	}
	f.reports.report = domain.PerformanceReport{ProductivityTrend: 0.5}

	require.NoError(t, f.loop.RunCycle(context.Background()))

	rules := f.rules.all()
	require.Len(t, rules, 1)
	assert.Equal(t, domain.OpportunityEnergyAdaptation, rules[0].Source)
	assert.Equal(t, 0.75, rules[0].WorkDurationMultiplier)
}

func TestRunCycle_TrendResponseAppliesRecoveryRule(t *testing.T) {
	f := newLoopFixture(t)
	f.reports.report = domain.PerformanceReport{
		GeneratedAt:       f.clock.Now(),
		ProductivityTrend: 0.3,
		TrendConfidence:   0.9,
	}

	require.NoError(t, f.loop.RunCycle(context.Background()))

	adaptations := f.loop.Adaptations()
	require.Len(t, adaptations, 1)
	assert.Equal(t, domain.OpportunityTrendResponse, adaptations[0].Type)

	rules := f.rules.all()
	require.Len(t, rules, 1)
	assert.Equal(t, domain.OpportunityBehaviorAdaptation, rules[0].Source)
	assert.Equal(t, 0.8, rules[0].WorkDurationMultiplier)
	assert.Equal(t, adaptations[0].ID, rules[0].AdaptationID, "sub-solutions share the parent adaptation ID")
}

func TestRunCycle_HigherPriorityExecutesFirst(t *testing.T) {
	f := newLoopFixture(t)
	report := modelSwitchReport(0.9) // high priority
	f.reports.report = report
	f.reports.insights = domain.ContextualInsights{
		TimePatterns: []domain.TimePattern{ // medium priority
			{Label: "morning", Hours: []int{9}, Effectiveness: 90, Confidence: 0.9},
		},
	}

	require.NoError(t, f.loop.RunCycle(context.Background()))

	adaptations := f.loop.Adaptations()
	require.Len(t, adaptations, 2)
	assert.Equal(t, domain.OpportunityModelSwitch, adaptations[0].Type)
	assert.Equal(t, domain.OpportunityContextOptimization, adaptations[1].Type)
}

func TestRunCycle_ReportErrorIsContained(t *testing.T) {
	f := newLoopFixture(t)
	f.reports.err = assert.AnError

	require.NoError(t, f.loop.RunCycle(context.Background()))
	assert.Empty(t, f.loop.Adaptations())
}

type panickingRules struct{ fakeRules }

func (p *panickingRules) AddRule(context.Context, domain.AdaptationRule) {
	panic("rule store exploded")
}

func TestRunCycle_PanicInOneOpportunityDoesNotStopOthers(t *testing.T) {
	f := newLoopFixture(t)
	f.loop = NewLoop(f.models, &panickingRules{}, f.metrics, f.reports, notify.Noop{}, f.store, nil, f.clock.Now)
	f.reports.report = modelSwitchReport(0.9)
	f.reports.insights = domain.ContextualInsights{
		TimePatterns: []domain.TimePattern{
			{Label: "morning", Hours: []int{9}, Effectiveness: 90, Confidence: 0.9},
		},
	}

	require.NoError(t, f.loop.RunCycle(context.Background()))

	// The context rule panicked before its record was appended; the model
	// switch still went through.
	assert.Equal(t, "energy-based", f.models.CurrentModelID())
	adaptations := f.loop.Adaptations()
	require.Len(t, adaptations, 1)
	assert.Equal(t, domain.OpportunityModelSwitch, adaptations[0].Type)
}

type blockingReports struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingReports) Report(context.Context) (domain.PerformanceReport, domain.ContextualInsights, error) {
	close(b.started)
	<-b.release
	return domain.PerformanceReport{ProductivityTrend: 0.5}, domain.ContextualInsights{}, nil
}

func TestRunCycle_OverlappingCycleIsSkipped(t *testing.T) {
	f := newLoopFixture(t)
	reports := &blockingReports{started: make(chan struct{}), release: make(chan struct{})}
	f.loop = NewLoop(f.models, f.rules, f.metrics, reports, notify.Noop{}, f.store, nil, f.clock.Now)

	done := make(chan error, 1)
	go func() { done <- f.loop.RunCycle(context.Background()) }()
	<-reports.started

	// Second invocation while the first is mid-cycle returns immediately.
	require.NoError(t, f.loop.RunCycle(context.Background()))

	close(reports.release)
	require.NoError(t, <-done)
}

func TestRestore_RoundTripsAdaptationsAndCooldowns(t *testing.T) {
	f := newLoopFixture(t)
	f.reports.report = modelSwitchReport(0.9)
	require.NoError(t, f.loop.RunCycle(context.Background()))
	require.Len(t, f.loop.Adaptations(), 1)

	reloaded := NewLoop(f.models, f.rules, f.metrics, f.reports, notify.Noop{}, f.store, nil, f.clock.Now)
	require.NoError(t, reloaded.Restore(context.Background()))

	adaptations := reloaded.Adaptations()
	require.Len(t, adaptations, 1)
	assert.Equal(t, domain.OpportunityModelSwitch, adaptations[0].Type)
	payload, ok := adaptations[0].Opportunity.Payload.(domain.ModelSwitchPayload)
	require.True(t, ok)
	assert.Equal(t, "ultradian", payload.FromModelID)
	assert.NotEmpty(t, reloaded.Cooldowns())
}

func TestRestore_EmptyStoreIsFirstRun(t *testing.T) {
	f := newLoopFixture(t)
	require.NoError(t, f.loop.Restore(context.Background()))
	assert.Empty(t, f.loop.Adaptations())
	assert.Empty(t, f.loop.Cooldowns())
}
