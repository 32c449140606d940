package adapt

import (
	"fmt"

	"github.com/alexanderramin/tempo/internal/domain"
)

// Detection thresholds. Each rule fires independently; the emitted
// opportunity inherits the confidence of the pattern that triggered it.
const (
	contextEffectivenessFloor = 85.0
	energyOutcomeCeiling      = 70.0
	decliningTrendThreshold   = 0.5
)

// detect turns the report and insights into candidate opportunities. It has
// no side effects: filtering and execution decide what actually happens.
func (l *Loop) detect(report domain.PerformanceReport, insights domain.ContextualInsights) []domain.AdaptationOpportunity {
	var opps []domain.AdaptationOpportunity

	if opp := l.detectModelSwitch(report); opp != nil {
		opps = append(opps, *opp)
	}

	for _, tp := range insights.TimePatterns {
		if tp.Effectiveness <= contextEffectivenessFloor {
			continue
		}
		opps = append(opps, domain.AdaptationOpportunity{
			Type:                domain.OpportunityContextOptimization,
			Priority:            domain.PriorityMedium,
			Confidence:          tp.Confidence,
			ExpectedImprovement: tp.Effectiveness - contextEffectivenessFloor,
			Description:         fmt.Sprintf("extended focus sessions during your highly effective %s hours", tp.Label),
			TriggerCondition:    fmt.Sprintf("%s effectiveness %.0f exceeds %.0f", tp.Label, tp.Effectiveness, contextEffectivenessFloor),
			RollbackPlan:        fmt.Sprintf("The %s focus rule has been removed.", tp.Label),
			Payload: domain.ContextOptimizationPayload{
				Label:         tp.Label,
				Hours:         tp.Hours,
				Effectiveness: tp.Effectiveness,
			},
		})
	}

	for _, ep := range insights.EnergyPatterns {
		if ep.ExpectedOutcome >= energyOutcomeCeiling {
			continue
		}
		opps = append(opps, domain.AdaptationOpportunity{
			Type:                domain.OpportunityEnergyAdaptation,
			Priority:            domain.PriorityMedium,
			Confidence:          ep.Confidence,
			ExpectedImprovement: energyOutcomeCeiling - ep.ExpectedOutcome,
			Description:         "shorter sessions during hours where outcomes run low",
			TriggerCondition:    fmt.Sprintf("expected outcome %.0f below %.0f", ep.ExpectedOutcome, energyOutcomeCeiling),
			RollbackPlan:        "The reduced-session rule for those hours has been removed.",
			Payload: domain.EnergyAdaptationPayload{
				Hours:           ep.Hours,
				ExpectedOutcome: ep.ExpectedOutcome,
			},
		})
	}

	if report.ProductivityTrend < decliningTrendThreshold {
		opps = append(opps, domain.AdaptationOpportunity{
			Type:                domain.OpportunityTrendResponse,
			Priority:            domain.PriorityHigh,
			Confidence:          report.TrendConfidence,
			ExpectedImprovement: (decliningTrendThreshold - report.ProductivityTrend) * 100,
			Description:         "shorter recovery sessions to counter a declining productivity trend",
			TriggerCondition:    fmt.Sprintf("productivity trend %.2f below %.2f", report.ProductivityTrend, decliningTrendThreshold),
			RollbackPlan:        "The recovery-session rule has been removed.",
			Payload: domain.TrendResponsePayload{
				Trend: report.ProductivityTrend,
				Solutions: []domain.AdaptationOpportunity{{
					Type:        domain.OpportunityBehaviorAdaptation,
					Priority:    domain.PriorityHigh,
					Confidence:  report.TrendConfidence,
					Description: "shorter sessions to rebuild momentum",
					Payload: domain.BehaviorAdaptationPayload{
						Shift: domain.BehavioralShift{
							Kind:               "trend-recovery",
							Description:        "declining trend recovery",
							DurationMultiplier: 0.8,
							Confidence:         report.TrendConfidence,
							DetectedAt:         report.GeneratedAt,
						},
					},
				}},
			},
		})
	}

	for _, shift := range insights.BehavioralShifts {
		opps = append(opps, domain.AdaptationOpportunity{
			Type:                domain.OpportunityBehaviorAdaptation,
			Priority:            domain.PriorityLow,
			Confidence:          shift.Confidence,
			ExpectedImprovement: 10,
			Description:         fmt.Sprintf("session lengths rescaled to match reality: %s", shift.Description),
			TriggerCondition:    fmt.Sprintf("behavioral shift detected: %s", shift.Kind),
			RollbackPlan:        "Session lengths are back to their original scale.",
			Payload:             domain.BehaviorAdaptationPayload{Shift: shift},
		})
	}

	return opps
}

func (l *Loop) detectModelSwitch(report domain.PerformanceReport) *domain.AdaptationOpportunity {
	current := l.models.CurrentModelID()
	if report.BestModelID == "" || report.BestModelID == current {
		return nil
	}

	confidence := 0.0
	improvement := 0.0
	if best := report.ScoreFor(report.BestModelID); best != nil {
		confidence = best.Confidence
		improvement = best.Effectiveness
		if cur := report.ScoreFor(current); cur != nil {
			improvement = best.Effectiveness - cur.Effectiveness
		}
	}

	return &domain.AdaptationOpportunity{
		Type:                domain.OpportunityModelSwitch,
		Priority:            domain.PriorityHigh,
		Confidence:          confidence,
		ExpectedImprovement: improvement,
		Description:         fmt.Sprintf("switched your scheduling model from %s to %s", current, report.BestModelID),
		TriggerCondition:    fmt.Sprintf("%s outperforms the active model %s", report.BestModelID, current),
		RollbackPlan:        fmt.Sprintf("Your previous model %s is active again.", current),
		Payload: domain.ModelSwitchPayload{
			FromModelID: current,
			ToModelID:   report.BestModelID,
		},
	}
}
