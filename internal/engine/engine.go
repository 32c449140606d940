// Package engine is the facade over the scheduling core: it owns the task and
// energy store, the current scheduling model, the rebuilt intelligence, the
// learned rules, and the learning loop. All CLI and background entrypoints go
// through one Engine value.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/tempo/internal/adapt"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/notify"
	"github.com/alexanderramin/tempo/internal/rhythm"
	"github.com/alexanderramin/tempo/internal/scheduler"
	"github.com/alexanderramin/tempo/internal/settings"
	"github.com/alexanderramin/tempo/internal/store"
)

// Engine is constructed once per process. The current model is replaced
// atomically under the mutex; strategies only ever see a complete model.
type Engine struct {
	store    *store.Store
	settings settings.Store
	reports  adapt.ReportSource
	loop     *adapt.Loop
	logger   *slog.Logger
	clock    func() time.Time

	mu           sync.RWMutex
	current      *domain.SchedulingModel
	intelligence *domain.SchedulingIntelligence
	rules        []domain.AdaptationRule
	dataSharing  bool
}

// Option tweaks engine construction.
type Option func(*Engine)

// WithClock injects a deterministic clock.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

// New wires an engine and its learning loop. A nil logger discards output.
func New(st *store.Store, set settings.Store, metricsSrc adapt.MetricsSource, reports adapt.ReportSource, notifier notify.Notifier, logger *slog.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	e := &Engine{
		store:    st,
		settings: set,
		reports:  reports,
		logger:   logger,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.loop = adapt.NewLoop(e, e, metricsSrc, reports, notifier, set, logger, e.clock)
	return e
}

// AddTask validates and stores a new task.
func (e *Engine) AddTask(ctx context.Context, name string, priority domain.Quadrant, complexity domain.Complexity, energy domain.EnergyLevel, estimatedMin int, deadline *time.Time) (*domain.TaskSchedule, error) {
	task, err := e.store.AddTask(ctx, name, priority, complexity, energy, estimatedMin, deadline, e.clock())
	if err != nil {
		return nil, &Error{Code: ErrInvalidTask, Message: err.Error()}
	}
	return task, nil
}

// CompleteTask marks a task complete, optionally backfilling the actual
// duration and a satisfaction rating.
func (e *Engine) CompleteTask(ctx context.Context, id string, actualMin, satisfaction *int) error {
	if err := e.store.CompleteTask(ctx, id, e.clock(), actualMin, satisfaction); err != nil {
		return &Error{Code: ErrInvalidCompletion, Message: err.Error()}
	}
	return nil
}

// Tasks returns all tasks, completed history included.
func (e *Engine) Tasks() []domain.TaskSchedule { return e.store.Tasks() }

// Incomplete returns the tasks not yet completed.
func (e *Engine) Incomplete() []domain.TaskSchedule { return e.store.Incomplete() }

// RecordEnergy validates and stores an energy reading stamped "now".
func (e *Engine) RecordEnergy(ctx context.Context, energyLevel int, completionRate float64) (domain.EnergyReading, error) {
	reading, err := domain.NewEnergyReading(e.clock(), energyLevel, completionRate)
	if err != nil {
		return domain.EnergyReading{}, &Error{Code: ErrInvalidReading, Message: err.Error()}
	}
	e.store.RecordEnergy(ctx, reading)
	return reading, nil
}

// Readings returns the retained energy readings.
func (e *Engine) Readings() []domain.EnergyReading { return e.store.Readings() }

// Models lists the built-in catalog plus, when intelligence exists, the
// learned energy-based model derived from it.
func (e *Engine) Models() []domain.SchedulingModel {
	models := scheduler.Catalog()
	e.mu.RLock()
	intel := e.intelligence
	e.mu.RUnlock()
	if learned := scheduler.LearnedEnergyModel(intel); learned != nil {
		models = append(models, *learned)
	}
	return models
}

// CurrentModel returns a copy of the active model, or nil when none is set.
func (e *Engine) CurrentModel() *domain.SchedulingModel {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.current == nil {
		return nil
	}
	m := *e.current
	return &m
}

// CurrentModelID returns the active model's ID, or "" when none is set.
func (e *Engine) CurrentModelID() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.current == nil {
		return ""
	}
	return e.current.ID
}

// UseModel atomically switches the active model to the catalog entry with the
// given ID.
func (e *Engine) UseModel(ctx context.Context, id string) error {
	var found *domain.SchedulingModel
	for _, m := range e.Models() {
		if m.ID == id {
			m := m
			found = &m
			break
		}
	}
	if found == nil {
		return &Error{Code: ErrUnknownModel, Message: fmt.Sprintf("no scheduling model %q", id)}
	}

	e.mu.Lock()
	e.current = found
	e.mu.Unlock()

	e.persist(ctx, settings.KeyCurrentModel, found)
	return nil
}

// SwitchModel is UseModel under the learning loop's ModelControl contract.
func (e *Engine) SwitchModel(ctx context.Context, modelID string) error {
	return e.UseModel(ctx, modelID)
}

// NextAction answers "what should I do now" under the active model.
func (e *Engine) NextAction() domain.RecommendedAction {
	e.mu.RLock()
	model := e.current
	snap := scheduler.Snapshot{
		Tasks:        e.store.Tasks(),
		Intelligence: e.intelligence,
		Rules:        append([]domain.AdaptationRule(nil), e.rules...),
	}
	e.mu.RUnlock()
	return scheduler.NextAction(model, snap, e.clock())
}

// Intelligence returns the cached rebuilt intelligence, or nil before enough
// readings exist.
func (e *Engine) Intelligence() *domain.SchedulingIntelligence {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.intelligence
}

// RebuildIntelligence recomputes the intelligence from the recorded readings.
// Below 10 readings it returns nil and keeps the previous cache.
func (e *Engine) RebuildIntelligence(ctx context.Context) *domain.SchedulingIntelligence {
	intel := rhythm.Rebuild(e.store.Readings(), e.clock())
	if intel == nil {
		return nil
	}

	e.mu.Lock()
	e.intelligence = intel
	e.mu.Unlock()

	e.persist(ctx, settings.KeyIntelligence, intel)
	return intel
}

// Rules returns a snapshot of the learned adaptation rules.
func (e *Engine) Rules() []domain.AdaptationRule {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]domain.AdaptationRule(nil), e.rules...)
}

// AddRule installs a learned rule. Called by the learning loop.
func (e *Engine) AddRule(ctx context.Context, rule domain.AdaptationRule) {
	e.mu.Lock()
	e.rules = append(e.rules, rule)
	snapshot := append([]domain.AdaptationRule(nil), e.rules...)
	e.mu.Unlock()

	e.persist(ctx, settings.KeyAdaptationRules, snapshot)
}

// RemoveRules drops every rule installed by the given adaptation and returns
// how many were removed. Called on rollback.
func (e *Engine) RemoveRules(ctx context.Context, adaptationID string) int {
	e.mu.Lock()
	kept := e.rules[:0]
	removed := 0
	for _, r := range e.rules {
		if r.AdaptationID == adaptationID {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	e.rules = kept
	snapshot := append([]domain.AdaptationRule(nil), e.rules...)
	e.mu.Unlock()

	e.persist(ctx, settings.KeyAdaptationRules, snapshot)
	return removed
}

// Adaptations returns the learning loop's adaptation records.
func (e *Engine) Adaptations() []domain.ModelAdaptation { return e.loop.Adaptations() }

// Cooldowns returns the learning loop's active cooldowns.
func (e *Engine) Cooldowns() map[string]time.Time { return e.loop.Cooldowns() }

// RunLearningCycle refreshes the intelligence and runs one learning cycle.
func (e *Engine) RunLearningCycle(ctx context.Context) error {
	e.RebuildIntelligence(ctx)
	return e.loop.RunCycle(ctx)
}

// Report exposes the analytics collaborator's current report, for status and
// insight views.
func (e *Engine) Report(ctx context.Context) (domain.PerformanceReport, domain.ContextualInsights, error) {
	return e.reports.Report(ctx)
}

// DataSharing returns the anonymized-sharing preference.
func (e *Engine) DataSharing() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.dataSharing
}

// SetDataSharing updates the anonymized-sharing preference.
func (e *Engine) SetDataSharing(ctx context.Context, enabled bool) {
	e.mu.Lock()
	e.dataSharing = enabled
	e.mu.Unlock()

	e.persist(ctx, settings.KeyDataSharing, enabled)
}

// Restore loads every persisted collection. Missing keys keep their defaults;
// a corrupt value is logged at Warn and resolves to its default too, so a bad
// record never blocks startup.
func (e *Engine) Restore(ctx context.Context) error {
	if err := e.store.Restore(ctx); err != nil {
		e.logger.WarnContext(ctx, "restore_failed", "what", "store", "error", err)
	}
	if err := e.loop.Restore(ctx); err != nil {
		e.logger.WarnContext(ctx, "restore_failed", "what", "adaptations", "error", err)
	}

	var rules []domain.AdaptationRule
	e.load(ctx, settings.KeyAdaptationRules, &rules)

	var intel *domain.SchedulingIntelligence
	e.load(ctx, settings.KeyIntelligence, &intel)

	var current *domain.SchedulingModel
	e.load(ctx, settings.KeyCurrentModel, &current)

	var sharing bool
	e.load(ctx, settings.KeyDataSharing, &sharing)

	e.mu.Lock()
	e.rules = rules
	e.intelligence = intel
	e.current = current
	e.dataSharing = sharing
	e.mu.Unlock()
	return nil
}

func (e *Engine) load(ctx context.Context, key string, out any) {
	err := settings.LoadJSON(ctx, e.settings, key, out)
	if err != nil && !errors.Is(err, settings.ErrNotFound) {
		e.logger.WarnContext(ctx, "restore_failed", "key", key, "error", err)
	}
}

func (e *Engine) persist(ctx context.Context, key string, v any) {
	if err := settings.SaveJSON(ctx, e.settings, key, v); err != nil {
		e.logger.DebugContext(ctx, "persist_failed", "key", key, "error", err)
	}
}

var (
	_ adapt.ModelControl = (*Engine)(nil)
	_ adapt.RuleStore    = (*Engine)(nil)
)
