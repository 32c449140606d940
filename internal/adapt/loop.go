package adapt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/notify"
	"github.com/alexanderramin/tempo/internal/settings"
	"github.com/google/uuid"
)

// Execution thresholds. Opportunities at or below the confidence cutoff are
// never executed; executed adaptations are monitored for a full week before
// they are judged. The 0.6/0.4 productivity/satisfaction blend and the ×20
// satisfaction scale-up are tuned values, preserved as behavioral contract.
const (
	confidenceCutoff    = 0.8
	monitoringInterval  = 7 * 24 * time.Hour
	productivityWeight  = 0.6
	satisfactionWeight  = 0.4
	satisfactionUpscale = 20.0
)

// ModelControl is the slice of the engine the loop uses to switch the active
// scheduling model.
type ModelControl interface {
	CurrentModelID() string
	SwitchModel(ctx context.Context, modelID string) error
}

// RuleStore stores the learned adaptation rules installed and removed by the
// loop.
type RuleStore interface {
	AddRule(ctx context.Context, rule domain.AdaptationRule)
	RemoveRules(ctx context.Context, adaptationID string) int
}

// MetricsSource snapshots the headline metrics used as baseline and impact
// measurements.
type MetricsSource interface {
	Baseline(ctx context.Context) domain.BaselineMetrics
}

// ReportSource supplies the per-cycle performance report and contextual
// insights. The loop consumes these; it never computes them.
type ReportSource interface {
	Report(ctx context.Context) (domain.PerformanceReport, domain.ContextualInsights, error)
}

// Loop is the adaptive learning cycle: monitor executed adaptations, detect
// new opportunities, filter them by confidence and cooldown, execute the
// survivors, and persist the outcome. It is the only writer of adaptation
// records and the active model.
type Loop struct {
	models   ModelControl
	rules    RuleStore
	metrics  MetricsSource
	reports  ReportSource
	notifier notify.Notifier
	settings settings.Store
	logger   *slog.Logger
	clock    func() time.Time

	inFlight atomic.Bool

	mu          sync.Mutex
	adaptations []*domain.ModelAdaptation
	cooldowns   map[string]time.Time // signature -> expiry
}

// NewLoop wires a learning loop. A nil notifier, logger or clock falls back
// to no-op, discard and wall-clock respectively.
func NewLoop(models ModelControl, rules RuleStore, metrics MetricsSource, reports ReportSource, notifier notify.Notifier, store settings.Store, logger *slog.Logger, clock func() time.Time) *Loop {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if clock == nil {
		clock = time.Now
	}
	return &Loop{
		models:    models,
		rules:     rules,
		metrics:   metrics,
		reports:   reports,
		notifier:  notifier,
		settings:  store,
		logger:    logger,
		clock:     clock,
		cooldowns: make(map[string]time.Time),
	}
}

// Adaptations returns a snapshot of all adaptation records, newest last.
func (l *Loop) Adaptations() []domain.ModelAdaptation {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.ModelAdaptation, 0, len(l.adaptations))
	for _, a := range l.adaptations {
		out = append(out, *a)
	}
	return out
}

// Cooldowns returns a snapshot of the signatures currently in cooldown.
func (l *Loop) Cooldowns() map[string]time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]time.Time, len(l.cooldowns))
	now := l.clock()
	for sig, expiry := range l.cooldowns {
		if expiry.After(now) {
			out[sig] = expiry
		}
	}
	return out
}

// Restore loads persisted adaptations and cooldowns so monitoring and rate
// limiting survive a restart. Missing keys are the normal first-run case.
func (l *Loop) Restore(ctx context.Context) error {
	var adaptations []*domain.ModelAdaptation
	if err := settings.LoadJSON(ctx, l.settings, settings.KeyAdaptations, &adaptations); err != nil && !errors.Is(err, settings.ErrNotFound) {
		return fmt.Errorf("restoring adaptations: %w", err)
	}

	cooldowns := make(map[string]time.Time)
	if err := settings.LoadJSON(ctx, l.settings, settings.KeyCooldowns, &cooldowns); err != nil && !errors.Is(err, settings.ErrNotFound) {
		return fmt.Errorf("restoring cooldowns: %w", err)
	}

	l.mu.Lock()
	l.adaptations = adaptations
	l.cooldowns = cooldowns
	l.mu.Unlock()
	return nil
}

// RunCycle executes one learning cycle. At most one cycle runs at a time;
// an overlapping invocation is skipped. Errors inside individual phases are
// logged and contained: a cycle never aborts the process or corrupts other
// adaptations.
func (l *Loop) RunCycle(ctx context.Context) error {
	if !l.inFlight.CompareAndSwap(false, true) {
		l.logger.DebugContext(ctx, "cycle_skipped", "reason", "already running")
		return nil
	}
	defer l.inFlight.Store(false)

	now := l.clock()
	l.logger.InfoContext(ctx, "cycle_start", "at", now)

	l.monitor(ctx, now)

	report, insights, err := l.reports.Report(ctx)
	if err != nil {
		l.logger.WarnContext(ctx, "report_unavailable", "error", err)
		l.persist(ctx)
		return nil
	}

	opps := l.detect(report, insights)
	opps = l.filter(ctx, opps, now)
	sort.SliceStable(opps, func(i, j int) bool {
		return opps[i].Priority.Weight() > opps[j].Priority.Weight()
	})

	for _, opp := range opps {
		l.execute(ctx, opp, now)
	}

	l.persist(ctx)
	return nil
}

// filter drops opportunities at or below the confidence cutoff and those
// whose signature is still in cooldown.
func (l *Loop) filter(ctx context.Context, opps []domain.AdaptationOpportunity, now time.Time) []domain.AdaptationOpportunity {
	l.mu.Lock()
	defer l.mu.Unlock()

	var kept []domain.AdaptationOpportunity
	for _, opp := range opps {
		if opp.Confidence <= confidenceCutoff {
			l.logger.DebugContext(ctx, "opportunity_skipped", "type", opp.Type, "reason", "low confidence", "confidence", opp.Confidence)
			continue
		}
		sig := signature(opp)
		if expiry, ok := l.cooldowns[sig]; ok && expiry.After(now) {
			l.logger.DebugContext(ctx, "opportunity_skipped", "type", opp.Type, "reason", "cooldown", "until", expiry)
			continue
		}
		kept = append(kept, opp)
	}
	return kept
}

// execute applies one opportunity: set its cooldown, apply the side effect,
// and record the adaptation with a baseline snapshot. A panic or error is
// contained to this opportunity.
func (l *Loop) execute(ctx context.Context, opp domain.AdaptationOpportunity, now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.ErrorContext(ctx, "execute_panic", "type", opp.Type, "panic", r)
		}
	}()

	sig := signature(opp)
	l.mu.Lock()
	l.cooldowns[sig] = now.Add(cooldownFor(opp.Type))
	l.mu.Unlock()

	adaptationID := uuid.NewString()
	if err := l.apply(ctx, opp, adaptationID, now); err != nil {
		l.logger.WarnContext(ctx, "execute_failed", "type", opp.Type, "error", err)
		return
	}

	adaptation := &domain.ModelAdaptation{
		ID:                 adaptationID,
		Type:               opp.Type,
		Opportunity:        opp,
		ImplementationDate: now,
		Status:             domain.AdaptationActive,
		BaselineMetrics:    l.metrics.Baseline(ctx),
		MonitoringInterval: monitoringInterval,
	}

	l.mu.Lock()
	l.adaptations = append(l.adaptations, adaptation)
	l.mu.Unlock()

	l.logger.InfoContext(ctx, "adaptation_executed", "adaptation_id", adaptationID, "type", opp.Type, "confidence", opp.Confidence)
	l.notifier.AdaptationApplied(ctx, notify.Event{
		Adaptation: *adaptation,
		Message:    notify.AppliedMessage(*adaptation),
	})
}

// apply performs the type-specific side effect of an opportunity.
func (l *Loop) apply(ctx context.Context, opp domain.AdaptationOpportunity, adaptationID string, now time.Time) error {
	switch payload := opp.Payload.(type) {
	case domain.ModelSwitchPayload:
		return l.models.SwitchModel(ctx, payload.ToModelID)

	case domain.ContextOptimizationPayload:
		l.rules.AddRule(ctx, domain.AdaptationRule{
			ID:                     uuid.NewString(),
			AdaptationID:           adaptationID,
			Source:                 domain.OpportunityContextOptimization,
			Hours:                  payload.Hours,
			WorkDurationMultiplier: contextMultiplier(payload.Effectiveness),
			Confidence:             opp.Confidence,
			Note:                   opp.Description,
			CreatedAt:              now,
		})
		return nil

	case domain.EnergyAdaptationPayload:
		l.rules.AddRule(ctx, domain.AdaptationRule{
			ID:                     uuid.NewString(),
			AdaptationID:           adaptationID,
			Source:                 domain.OpportunityEnergyAdaptation,
			Hours:                  payload.Hours,
			WorkDurationMultiplier: 0.75,
			Confidence:             opp.Confidence,
			Note:                   opp.Description,
			CreatedAt:              now,
		})
		return nil

	case domain.BehaviorAdaptationPayload:
		l.rules.AddRule(ctx, domain.AdaptationRule{
			ID:                     uuid.NewString(),
			AdaptationID:           adaptationID,
			Source:                 domain.OpportunityBehaviorAdaptation,
			WorkDurationMultiplier: clampMultiplier(payload.Shift.DurationMultiplier),
			Confidence:             opp.Confidence,
			Note:                   opp.Description,
			CreatedAt:              now,
		})
		return nil

	case domain.TrendResponsePayload:
		// Sub-solutions share the parent adaptation ID so a rollback
		// undoes the whole bundle.
		for _, sub := range payload.Solutions {
			if err := l.apply(ctx, sub, adaptationID, now); err != nil {
				return fmt.Errorf("applying trend sub-solution %s: %w", sub.Type, err)
			}
		}
		return nil

	default:
		return fmt.Errorf("opportunity %s has no payload to apply", opp.Type)
	}
}

// monitor evaluates every active adaptation whose monitoring interval has
// elapsed, marking it successful or rolling it back. Records stuck in
// needs_rollback from an earlier failed reversal are retried first, so a
// transient failure cannot strand an adaptation outside its terminal state.
func (l *Loop) monitor(ctx context.Context, now time.Time) {
	l.mu.Lock()
	due := make([]*domain.ModelAdaptation, 0)
	retry := make([]*domain.ModelAdaptation, 0)
	for _, a := range l.adaptations {
		switch {
		case a.DueForEvaluation(now):
			due = append(due, a)
		case a.Status == domain.AdaptationNeedsRollback:
			retry = append(retry, a)
		}
	}
	l.mu.Unlock()

	for _, adaptation := range retry {
		l.rollback(ctx, adaptation, now)
	}

	for _, adaptation := range due {
		current := l.metrics.Baseline(ctx)
		improvement := overallImprovement(adaptation.BaselineMetrics, current)

		l.mu.Lock()
		adaptation.ImpactMetrics = &current
		if improvement > 0 {
			adaptation.Status = domain.AdaptationSuccessful
		} else {
			adaptation.Status = domain.AdaptationNeedsRollback
		}
		l.mu.Unlock()

		l.logger.InfoContext(ctx, "adaptation_evaluated",
			"adaptation_id", adaptation.ID,
			"type", adaptation.Type,
			"improvement", improvement,
			"status", adaptation.Status,
		)

		if adaptation.Status == domain.AdaptationNeedsRollback {
			l.rollback(ctx, adaptation, now)
		}
	}
}

// rollback undoes exactly the side effect the adaptation applied and moves it
// to its terminal state. A panic or error leaves the record in
// needs_rollback for the next cycle to retry.
func (l *Loop) rollback(ctx context.Context, adaptation *domain.ModelAdaptation, now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.ErrorContext(ctx, "rollback_panic", "adaptation_id", adaptation.ID, "panic", r)
		}
	}()

	if err := l.undo(ctx, adaptation.Opportunity, adaptation.ID); err != nil {
		l.logger.WarnContext(ctx, "rollback_failed", "adaptation_id", adaptation.ID, "error", err)
		return
	}

	l.mu.Lock()
	adaptation.Status = domain.AdaptationRolledBack
	adaptation.RollbackDate = &now
	l.cooldowns[signature(adaptation.Opportunity)] = now.Add(cooldownRollback)
	l.mu.Unlock()

	l.logger.InfoContext(ctx, "adaptation_rolled_back", "adaptation_id", adaptation.ID, "type", adaptation.Type)
	l.notifier.AdaptationRolledBack(ctx, notify.Event{
		Adaptation: *adaptation,
		Message:    notify.RollbackMessage(*adaptation),
	})
}

// undo reverses the side effect of apply for the given opportunity.
func (l *Loop) undo(ctx context.Context, opp domain.AdaptationOpportunity, adaptationID string) error {
	switch payload := opp.Payload.(type) {
	case domain.ModelSwitchPayload:
		return l.models.SwitchModel(ctx, payload.FromModelID)

	case domain.ContextOptimizationPayload, domain.EnergyAdaptationPayload, domain.BehaviorAdaptationPayload:
		l.rules.RemoveRules(ctx, adaptationID)
		return nil

	case domain.TrendResponsePayload:
		for _, sub := range payload.Solutions {
			if err := l.undo(ctx, sub, adaptationID); err != nil {
				return fmt.Errorf("undoing trend sub-solution %s: %w", sub.Type, err)
			}
		}
		return nil

	default:
		return fmt.Errorf("opportunity %s has no payload to undo", opp.Type)
	}
}

// persist snapshots adaptations and cooldowns through the settings bridge.
// Fire-and-forget: a failure keeps the state in memory only.
func (l *Loop) persist(ctx context.Context) {
	l.mu.Lock()
	adaptations, errA := settings.MarshalValue(settings.KeyAdaptations, l.adaptations)
	cooldowns, errC := settings.MarshalValue(settings.KeyCooldowns, l.cooldowns)
	l.mu.Unlock()

	if errA != nil || errC != nil {
		l.logger.DebugContext(ctx, "persist_failed", "encode_adaptations", errA, "encode_cooldowns", errC)
		return
	}
	err := l.settings.SaveMany(ctx, map[string][]byte{
		settings.KeyAdaptations: adaptations,
		settings.KeyCooldowns:   cooldowns,
	})
	if err != nil {
		l.logger.DebugContext(ctx, "persist_failed", "error", err)
	}
}

// overallImprovement blends the productivity delta with the scaled
// satisfaction delta. Positive means the adaptation helped.
func overallImprovement(baseline, current domain.BaselineMetrics) float64 {
	productivityDelta := current.Productivity - baseline.Productivity
	satisfactionDelta := current.Satisfaction - baseline.Satisfaction
	return productivityDelta*productivityWeight + satisfactionDelta*satisfactionUpscale*satisfactionWeight
}

// contextMultiplier stretches the 25-minute baseline proportionally to how
// far the observed effectiveness sits above the mid-scale.
func contextMultiplier(effectiveness float64) float64 {
	return clampMultiplier(1 + (effectiveness-75)/100)
}

func clampMultiplier(m float64) float64 {
	if m < 0.5 {
		return 0.5
	}
	if m > 2 {
		return 2
	}
	return m
}
