package scheduler

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
)

// Snapshot bundles everything a strategy may consult: the task store state,
// the rebuilt intelligence (may be nil), and the learned adaptation rules.
// The dispatcher itself never mutates any of it.
type Snapshot struct {
	Tasks        []domain.TaskSchedule
	Intelligence *domain.SchedulingIntelligence
	Rules        []domain.AdaptationRule
}

// Incomplete returns the tasks not yet completed.
func (s Snapshot) Incomplete() []domain.TaskSchedule {
	var out []domain.TaskSchedule
	for _, t := range s.Tasks {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// NextAction produces the recommendation for "now" under the given model.
// It is a pure function of model, snapshot and clock: safe to call rapidly,
// no side effects, never blocks. A nil model yields the documented
// low-confidence break.
func NextAction(model *domain.SchedulingModel, snap Snapshot, now time.Time) domain.RecommendedAction {
	if model == nil {
		return domain.RecommendedAction{
			Type:        domain.ActionBreak,
			DurationMin: 5,
			Reason:      "No scheduling model selected — take a short break",
			Confidence:  0.5,
		}
	}

	switch cfg := model.Config.(type) {
	case domain.TimeBlockingConfig:
		return nextTimeBlocking(cfg, now)
	case domain.EisenhowerConfig:
		return nextEisenhower(cfg, snap, now)
	case domain.UltradianConfig:
		return nextUltradian(now)
	case domain.EnergyBasedConfig:
		return nextEnergyBased(cfg, snap, now)
	case domain.AdaptiveConfig:
		return nextAdaptive(snap, now)
	case domain.DeadlineDrivenConfig:
		return nextDeadlineDriven(cfg, snap, now)
	default:
		return domain.RecommendedAction{
			Type:        domain.ActionWork,
			DurationMin: 25,
			Reason:      "Falling back to a standard focus session",
			Confidence:  0.5,
		}
	}
}

func nextTimeBlocking(cfg domain.TimeBlockingConfig, now time.Time) domain.RecommendedAction {
	minute := now.Hour()*60 + now.Minute()
	day := now.Weekday()

	for _, block := range cfg.Blocks {
		if !block.AppliesOn(day) || !block.Contains(minute) {
			continue
		}
		remaining := block.StartTime + block.Duration - minute
		if block.Type == domain.BlockBreaks {
			return domain.RecommendedAction{
				Type:        domain.ActionBreak,
				DurationMin: remaining,
				Reason:      "You are inside a scheduled break block",
				Confidence:  0.8,
			}
		}
		return domain.RecommendedAction{
			Type:        domain.ActionWork,
			DurationMin: remaining,
			Reason:      fmt.Sprintf("You are inside a scheduled %s block", block.Type),
			Confidence:  0.8,
		}
	}

	// No active block: rest until the next one starts.
	nextStart := -1
	for _, block := range cfg.Blocks {
		if !block.AppliesOn(day) || block.StartTime <= minute {
			continue
		}
		if nextStart == -1 || block.StartTime < nextStart {
			nextStart = block.StartTime
		}
	}
	if nextStart == -1 {
		return domain.RecommendedAction{
			Type:        domain.ActionBreak,
			DurationMin: 10,
			Reason:      "No more blocks scheduled today — take a break",
			Confidence:  0.6,
		}
	}
	until := nextStart - minute
	if until > 15 {
		until = 15
	}
	return domain.RecommendedAction{
		Type:        domain.ActionBreak,
		DurationMin: until,
		Reason:      "Next block has not started yet — rest until it begins",
		Confidence:  0.6,
	}
}

func nextEisenhower(cfg domain.EisenhowerConfig, snap Snapshot, now time.Time) domain.RecommendedAction {
	open := snap.Incomplete()
	if len(cfg.TaskQueue) > 0 {
		queued := make(map[string]bool, len(cfg.TaskQueue))
		for _, id := range cfg.TaskQueue {
			queued[id] = true
		}
		var filtered []domain.TaskSchedule
		for _, t := range open {
			if queued[t.ID] {
				filtered = append(filtered, t)
			}
		}
		open = filtered
	}

	var urgentImportant, urgentNotImportant []domain.TaskSchedule
	for _, t := range open {
		switch t.Priority {
		case domain.QuadrantUrgentImportant:
			urgentImportant = append(urgentImportant, t)
		case domain.QuadrantUrgentNotImportant:
			urgentNotImportant = append(urgentNotImportant, t)
		}
	}

	if len(urgentImportant) > 0 {
		sortByDeadline(urgentImportant)
		task := urgentImportant[0]
		return domain.RecommendedAction{
			Type:        domain.ActionWork,
			DurationMin: task.EstimatedMin,
			TaskID:      task.ID,
			Reason:      fmt.Sprintf("%q is urgent and important — do it now", task.Name),
			Confidence:  0.9,
		}
	}

	if len(urgentNotImportant) > 0 {
		return domain.RecommendedAction{
			Type:        domain.ActionBreak,
			DurationMin: 5,
			Reason:      "Only urgent-but-unimportant tasks remain — consider delegating or deferring them",
			Confidence:  0.7,
		}
	}

	return domain.RecommendedAction{
		Type:        domain.ActionWork,
		DurationMin: 25,
		Reason:      "No urgent tasks — a standard focus session on important work",
		Confidence:  0.6,
	}
}

// ultradianCycleMin is the length of one ultradian rhythm cycle, anchored to
// midnight. The first 15 minutes of each cycle extend the work phase; the
// last 15 minutes are the rest phase.
const ultradianCycleMin = 90

func nextUltradian(now time.Time) domain.RecommendedAction {
	minute := now.Hour()*60 + now.Minute()
	remaining := ultradianCycleMin - minute%ultradianCycleMin

	switch {
	case remaining > 75:
		return domain.RecommendedAction{
			Type:        domain.ActionWork,
			DurationMin: remaining,
			Reason:      "Fresh ultradian cycle — ride the full focus phase",
			Confidence:  0.85,
		}
	case remaining > 15:
		return domain.RecommendedAction{
			Type:        domain.ActionWork,
			DurationMin: remaining - 15,
			Reason:      "Mid-cycle — work until the rest phase begins",
			Confidence:  0.85,
		}
	default:
		return domain.RecommendedAction{
			Type:        domain.ActionBreak,
			DurationMin: remaining,
			Reason:      "End of the ultradian cycle — rest before the next one",
			Confidence:  0.85,
		}
	}
}

func nextEnergyBased(cfg domain.EnergyBasedConfig, snap Snapshot, now time.Time) domain.RecommendedAction {
	hour := now.Hour()
	energy := cfg.Profile.EnergyAt(hour)
	open := snap.Incomplete()

	if cfg.Profile.IsPeak(hour) && energy >= 7 {
		if task := topTaskByEnergy(open, now, domain.EnergyLevel.Demanding); task != nil {
			return domain.RecommendedAction{
				Type:        domain.ActionWork,
				DurationMin: minInt(task.EstimatedMin, 60),
				TaskID:      task.ID,
				Reason:      fmt.Sprintf("Peak energy hour — tackle the demanding task %q", task.Name),
				Confidence:  0.9,
			}
		}
	}

	if cfg.Profile.IsLowEnergy(hour) || energy <= 3 {
		if task := topTaskByEnergy(open, now, domain.EnergyLevel.Light); task != nil {
			return domain.RecommendedAction{
				Type:        domain.ActionWork,
				DurationMin: minInt(task.EstimatedMin, 30),
				TaskID:      task.ID,
				Reason:      fmt.Sprintf("Low energy hour — keep it light with %q", task.Name),
				Confidence:  0.7,
			}
		}
		duration := 10
		if energy <= 2 {
			duration = 15
		}
		return domain.RecommendedAction{
			Type:        domain.ActionBreak,
			DurationMin: duration,
			Reason:      "Low energy and no light tasks queued — recover instead",
			Confidence:  0.8,
		}
	}

	return domain.RecommendedAction{
		Type:        domain.ActionWork,
		DurationMin: 45,
		Reason:      "Moderate energy — a solid work session",
		Confidence:  0.6,
	}
}

func nextAdaptive(snap Snapshot, now time.Time) domain.RecommendedAction {
	hour := now.Hour()

	if zone := snap.Intelligence.ZoneFor(hour); zone != nil && zone.SupportedByData && zone.PreferenceScore > 0.5 {
		return domain.RecommendedAction{
			Type:        domain.ActionWork,
			DurationMin: 45,
			Reason:      "Your recorded rhythm marks this hour as a productivity zone",
			Confidence:  0.85,
		}
	}

	rules := make([]domain.AdaptationRule, len(snap.Rules))
	copy(rules, snap.Rules)
	sort.SliceStable(rules, func(i, j int) bool { return rules[i].Confidence > rules[j].Confidence })
	for _, rule := range rules {
		if !rule.Matches(hour, now.Weekday()) {
			continue
		}
		duration := int(math.Round(25 * rule.WorkDurationMultiplier))
		if duration < 5 {
			duration = 5
		}
		return domain.RecommendedAction{
			Type:        domain.ActionWork,
			DurationMin: duration,
			Reason:      "A learned adaptation rule covers this hour",
			Confidence:  clamp01(rule.Confidence),
		}
	}

	return domain.RecommendedAction{
		Type:        domain.ActionWork,
		DurationMin: 25,
		Reason:      "Not enough learned data for this hour — standard focus session",
		Confidence:  0.6,
	}
}

func nextDeadlineDriven(cfg domain.DeadlineDrivenConfig, snap Snapshot, now time.Time) domain.RecommendedAction {
	threshold := cfg.TimePressureThreshold
	if threshold <= 0 {
		threshold = 24
	}

	var pressured []domain.TaskSchedule
	for _, t := range snap.Incomplete() {
		if t.DueWithin(now, threshold) {
			pressured = append(pressured, t)
		}
	}

	if len(pressured) > 0 {
		sortByDeadline(pressured)
		task := pressured[0]
		return domain.RecommendedAction{
			Type:        domain.ActionWork,
			DurationMin: minInt(task.EstimatedMin, 60),
			TaskID:      task.ID,
			Reason:      fmt.Sprintf("%q is due soon — deadline pressure wins", task.Name),
			Confidence:  0.95,
		}
	}

	return domain.RecommendedAction{
		Type:        domain.ActionWork,
		DurationMin: 25,
		Reason:      "No looming deadlines — a standard focus session",
		Confidence:  0.6,
	}
}

// sortByDeadline orders tasks by earliest deadline; tasks without one sort
// last.
func sortByDeadline(tasks []domain.TaskSchedule) {
	sort.SliceStable(tasks, func(i, j int) bool {
		di, dj := tasks[i].Deadline, tasks[j].Deadline
		switch {
		case di == nil:
			return false
		case dj == nil:
			return true
		default:
			return di.Before(*dj)
		}
	})
}

// topTaskByEnergy returns the highest-scoring incomplete task whose energy
// requirement satisfies the predicate, or nil.
func topTaskByEnergy(tasks []domain.TaskSchedule, now time.Time, fits func(domain.EnergyLevel) bool) *domain.TaskSchedule {
	var matching []domain.TaskSchedule
	for _, t := range tasks {
		if fits(t.EnergyRequired) {
			matching = append(matching, t)
		}
	}
	if len(matching) == 0 {
		return nil
	}
	sortByScore(matching, now)
	return &matching[0]
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
