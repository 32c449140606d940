package metrics

import (
	"context"
	"sort"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/store"
)

// Window sizes and sample-size floors for the heuristics below. The analyzer
// is deliberately rule-based: aggregated counters, no statistical modeling.
const (
	taskWindow           = 14 * 24 * time.Hour
	trendWindow          = 7 * 24 * time.Hour
	minReadingsPerHour   = 5
	minReadingsPerBucket = 6
	minDurationSamples   = 5
)

// Analyzer computes performance reports and contextual insights from the
// store history. It is the default implementation of the analytics
// collaborator the learning loop consumes; tests substitute their own.
type Analyzer struct {
	store *store.Store
	clock func() time.Time
}

// NewAnalyzer creates an analyzer over the given store. A nil clock uses
// wall-clock time.
func NewAnalyzer(s *store.Store, clock func() time.Time) *Analyzer {
	if clock == nil {
		clock = time.Now
	}
	return &Analyzer{store: s, clock: clock}
}

// Baseline snapshots the headline metrics: productivity (0..100),
// satisfaction (1..5) and completion rate (0..1). With no history it returns
// neutral values rather than zeros, so the first adaptations are not judged
// against an artificial floor.
func (a *Analyzer) Baseline(_ context.Context) domain.BaselineMetrics {
	now := a.clock()
	recent := tasksSince(a.store.Tasks(), now.Add(-taskWindow))

	if len(recent) == 0 {
		return domain.BaselineMetrics{Productivity: 50, Satisfaction: 3, CompletionRate: 0.5}
	}

	completed := 0
	onTime, withDeadline := 0, 0
	satisfactionSum, satisfactionCount := 0, 0
	for _, t := range recent {
		if !t.Completed {
			continue
		}
		completed++
		if t.Satisfaction != nil {
			satisfactionSum += *t.Satisfaction
			satisfactionCount++
		}
		if t.Deadline != nil && t.CompletedAt != nil {
			withDeadline++
			if !t.CompletedAt.After(*t.Deadline) {
				onTime++
			}
		}
	}

	completionRate := float64(completed) / float64(len(recent))
	onTimeRate := 1.0
	if withDeadline > 0 {
		onTimeRate = float64(onTime) / float64(withDeadline)
	}
	satisfaction := 3.0
	if satisfactionCount > 0 {
		satisfaction = float64(satisfactionSum) / float64(satisfactionCount)
	}

	return domain.BaselineMetrics{
		Productivity:   100 * (0.6*completionRate + 0.4*onTimeRate),
		Satisfaction:   satisfaction,
		CompletionRate: completionRate,
	}
}

// Report builds the per-cycle performance report and contextual insights.
// BestModelID stays empty: the default analyzer has no per-model session
// attribution, so model-switch opportunities only arise from richer
// collaborators.
func (a *Analyzer) Report(ctx context.Context) (domain.PerformanceReport, domain.ContextualInsights, error) {
	now := a.clock()
	readings := a.store.Readings()

	trend, trendConfidence := productivityTrend(readings, now)

	report := domain.PerformanceReport{
		GeneratedAt:       now,
		ProductivityTrend: trend,
		TrendConfidence:   trendConfidence,
		Metrics:           a.Baseline(ctx),
	}

	insights := domain.ContextualInsights{
		TimePatterns:     timePatterns(readings),
		EnergyPatterns:   energyOutcomePatterns(readings),
		BehavioralShifts: behavioralShifts(a.store.Tasks(), now),
	}

	return report, insights, nil
}

func tasksSince(tasks []domain.TaskSchedule, cutoff time.Time) []domain.TaskSchedule {
	var out []domain.TaskSchedule
	for _, t := range tasks {
		if !t.CreatedAt.Before(cutoff) {
			out = append(out, t)
		}
	}
	return out
}

// productivityTrend compares the mean reading score of the last week against
// the week before, normalized so 0.5 means flat. Confidence grows with the
// number of readings involved.
func productivityTrend(readings []domain.EnergyReading, now time.Time) (float64, float64) {
	var recentSum, priorSum float64
	var recentCount, priorCount int

	recentCutoff := now.Add(-trendWindow)
	priorCutoff := now.Add(-2 * trendWindow)
	for _, r := range readings {
		score := (float64(r.EnergyLevel) + r.CompletionRate*10) / 2
		switch {
		case !r.Timestamp.Before(recentCutoff):
			recentSum += score
			recentCount++
		case !r.Timestamp.Before(priorCutoff):
			priorSum += score
			priorCount++
		}
	}

	if recentCount == 0 || priorCount == 0 {
		return 0.5, 0
	}

	delta := recentSum/float64(recentCount) - priorSum/float64(priorCount)
	trend := clamp01(0.5 + delta/10)
	confidence := float64(recentCount+priorCount) / 40
	if confidence > 1 {
		confidence = 1
	}
	return trend, confidence
}

func timePatterns(readings []domain.EnergyReading) []domain.TimePattern {
	var counts [24]int
	var scoreSum [24]float64
	for _, r := range readings {
		if r.Hour < 0 || r.Hour > 23 {
			continue
		}
		counts[r.Hour]++
		scoreSum[r.Hour] += (float64(r.EnergyLevel) + r.CompletionRate*10) / 2
	}

	var patterns []domain.TimePattern
	for hour := 0; hour < 24; hour++ {
		if counts[hour] < minReadingsPerHour {
			continue
		}
		confidence := float64(counts[hour]) / 20
		if confidence > 1 {
			confidence = 1
		}
		patterns = append(patterns, domain.TimePattern{
			Label:         hourLabel(hour),
			Hours:         []int{hour},
			Effectiveness: scoreSum[hour] / float64(counts[hour]) * 10,
			Confidence:    confidence,
		})
	}
	return patterns
}

func energyOutcomePatterns(readings []domain.EnergyReading) []domain.EnergyOutcomePattern {
	var counts [12]int
	var scoreSum [12]float64
	for _, r := range readings {
		if r.Hour < 0 || r.Hour > 23 {
			continue
		}
		bucket := r.Hour / 2
		counts[bucket]++
		scoreSum[bucket] += (float64(r.EnergyLevel) + r.CompletionRate*10) / 2
	}

	var patterns []domain.EnergyOutcomePattern
	for bucket := 0; bucket < 12; bucket++ {
		if counts[bucket] < minReadingsPerBucket {
			continue
		}
		confidence := float64(counts[bucket]) / 12
		if confidence > 1 {
			confidence = 1
		}
		patterns = append(patterns, domain.EnergyOutcomePattern{
			Hours:           []int{bucket * 2, bucket*2 + 1},
			ExpectedOutcome: scoreSum[bucket] / float64(counts[bucket]) * 10,
			Confidence:      confidence,
		})
	}
	return patterns
}

// behavioralShifts detects estimate drift: when the median actual duration of
// recently completed tasks deviates from the estimates by more than 25%, the
// learning loop gets a chance to rescale session lengths.
func behavioralShifts(tasks []domain.TaskSchedule, now time.Time) []domain.BehavioralShift {
	var ratios []float64
	for _, t := range tasksSince(tasks, now.Add(-taskWindow)) {
		if !t.Completed || t.ActualMin == nil || t.EstimatedMin <= 0 {
			continue
		}
		ratios = append(ratios, float64(*t.ActualMin)/float64(t.EstimatedMin))
	}
	if len(ratios) < minDurationSamples {
		return nil
	}

	sort.Float64s(ratios)
	median := ratios[len(ratios)/2]
	if median <= 1.25 && median >= 0.8 {
		return nil
	}

	confidence := float64(len(ratios)) / 10
	if confidence > 1 {
		confidence = 1
	}
	description := "Tasks consistently run longer than estimated"
	if median < 1 {
		description = "Tasks consistently finish faster than estimated"
	}
	return []domain.BehavioralShift{{
		Kind:               "duration-drift",
		Description:        description,
		DurationMultiplier: median,
		Confidence:         confidence,
		DetectedAt:         now,
	}}
}

func hourLabel(hour int) string {
	switch {
	case hour < 6:
		return "night"
	case hour < 12:
		return "morning"
	case hour < 18:
		return "afternoon"
	default:
		return "evening"
	}
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
