package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// OpportunityPayload is the type-specific data of an adaptation opportunity.
// Keeping one concrete payload per opportunity type means a model switch can
// never be executed with context-optimization-shaped data.
type OpportunityPayload interface {
	opportunityPayload()
}

type ModelSwitchPayload struct {
	FromModelID string `json:"from_model_id"`
	ToModelID   string `json:"to_model_id"`
}

func (ModelSwitchPayload) opportunityPayload() {}

type ContextOptimizationPayload struct {
	Label         string  `json:"label"`
	Hours         []int   `json:"hours"`
	Effectiveness float64 `json:"effectiveness"`
}

func (ContextOptimizationPayload) opportunityPayload() {}

type EnergyAdaptationPayload struct {
	Hours           []int   `json:"hours"`
	ExpectedOutcome float64 `json:"expected_outcome"`
}

func (EnergyAdaptationPayload) opportunityPayload() {}

// TrendResponsePayload bundles sub-opportunities that are executed together
// as one response to a declining productivity trend.
type TrendResponsePayload struct {
	Trend     float64                 `json:"trend"`
	Solutions []AdaptationOpportunity `json:"solutions"`
}

func (TrendResponsePayload) opportunityPayload() {}

type BehaviorAdaptationPayload struct {
	Shift BehavioralShift `json:"shift"`
}

func (BehaviorAdaptationPayload) opportunityPayload() {}

// AdaptationOpportunity is an ephemeral candidate self-tuning change. It is
// never persisted on its own: surviving opportunities are consumed by the
// execution step, which records a ModelAdaptation embedding them.
type AdaptationOpportunity struct {
	Type                OpportunityType    `json:"type"`
	Priority            Priority           `json:"priority"`
	Confidence          float64            `json:"confidence"`
	ExpectedImprovement float64            `json:"expected_improvement"`
	Description         string             `json:"description"`
	TriggerCondition    string             `json:"trigger_condition"`
	RollbackPlan        string             `json:"rollback_plan"`
	Payload             OpportunityPayload `json:"-"`
}

// opportunityEnvelope carries the payload as raw JSON next to a type tag so
// the sealed payload survives persistence inside ModelAdaptation records.
type opportunityEnvelope struct {
	Type                OpportunityType `json:"type"`
	Priority            Priority        `json:"priority"`
	Confidence          float64         `json:"confidence"`
	ExpectedImprovement float64         `json:"expected_improvement"`
	Description         string          `json:"description"`
	TriggerCondition    string          `json:"trigger_condition"`
	RollbackPlan        string          `json:"rollback_plan"`
	Payload             json.RawMessage `json:"payload,omitempty"`
}

func (o AdaptationOpportunity) MarshalJSON() ([]byte, error) {
	var raw json.RawMessage
	if o.Payload != nil {
		b, err := json.Marshal(o.Payload)
		if err != nil {
			return nil, fmt.Errorf("encoding %s payload: %w", o.Type, err)
		}
		raw = b
	}
	return json.Marshal(opportunityEnvelope{
		Type:                o.Type,
		Priority:            o.Priority,
		Confidence:          o.Confidence,
		ExpectedImprovement: o.ExpectedImprovement,
		Description:         o.Description,
		TriggerCondition:    o.TriggerCondition,
		RollbackPlan:        o.RollbackPlan,
		Payload:             raw,
	})
}

func (o *AdaptationOpportunity) UnmarshalJSON(data []byte) error {
	var env opportunityEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	payload, err := decodeOpportunityPayload(env.Type, env.Payload)
	if err != nil {
		return err
	}
	o.Type = env.Type
	o.Priority = env.Priority
	o.Confidence = env.Confidence
	o.ExpectedImprovement = env.ExpectedImprovement
	o.Description = env.Description
	o.TriggerCondition = env.TriggerCondition
	o.RollbackPlan = env.RollbackPlan
	o.Payload = payload
	return nil
}

func decodeOpportunityPayload(typ OpportunityType, raw json.RawMessage) (OpportunityPayload, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	switch typ {
	case OpportunityModelSwitch:
		var p ModelSwitchPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decoding model_switch payload: %w", err)
		}
		return p, nil
	case OpportunityContextOptimization:
		var p ContextOptimizationPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decoding context_optimization payload: %w", err)
		}
		return p, nil
	case OpportunityEnergyAdaptation:
		var p EnergyAdaptationPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decoding energy_adaptation payload: %w", err)
		}
		return p, nil
	case OpportunityTrendResponse:
		var p TrendResponsePayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decoding trend_response payload: %w", err)
		}
		return p, nil
	case OpportunityBehaviorAdaptation:
		var p BehaviorAdaptationPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decoding behavior_adaptation payload: %w", err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown opportunity type %q", typ)
	}
}

// BaselineMetrics is a point-in-time snapshot of the headline productivity
// numbers used for before/after impact comparison.
type BaselineMetrics struct {
	Productivity   float64 `json:"productivity"`    // 0..100
	Satisfaction   float64 `json:"satisfaction"`    // 1..5
	CompletionRate float64 `json:"completion_rate"` // 0..1
}

// ModelAdaptation is the persisted record of an executed opportunity and its
// monitoring lifecycle: active -> successful | needs_rollback -> rolled_back.
type ModelAdaptation struct {
	ID                 string                `json:"id"`
	Type               OpportunityType       `json:"type"`
	Opportunity        AdaptationOpportunity `json:"opportunity"`
	ImplementationDate time.Time             `json:"implementation_date"`
	Status             AdaptationStatus      `json:"status"`
	BaselineMetrics    BaselineMetrics       `json:"baseline_metrics"`
	MonitoringInterval time.Duration         `json:"monitoring_interval"`
	ImpactMetrics      *BaselineMetrics      `json:"impact_metrics,omitempty"`
	RollbackDate       *time.Time            `json:"rollback_date,omitempty"`
}

// DueForEvaluation reports whether the monitoring interval has elapsed for a
// still-active adaptation.
func (a *ModelAdaptation) DueForEvaluation(now time.Time) bool {
	return a.Status == AdaptationActive && !now.Before(a.ImplementationDate.Add(a.MonitoringInterval))
}

// AdaptationRule is the persisted form of a contextual, energy, or behavioral
// preference installed by the learning loop. The adaptive strategy consults
// rules by descending confidence; rolling back an adaptation removes the
// rules it installed.
type AdaptationRule struct {
	ID                     string          `json:"id"`
	AdaptationID           string          `json:"adaptation_id"`
	Source                 OpportunityType `json:"source"`
	Hours                  []int           `json:"hours,omitempty"`
	Days                   []time.Weekday  `json:"days,omitempty"`
	WorkDurationMultiplier float64         `json:"work_duration_multiplier"`
	Confidence             float64         `json:"confidence"`
	Note                   string          `json:"note,omitempty"`
	CreatedAt              time.Time       `json:"created_at"`
}

// Matches reports whether the rule's condition covers the given hour and day.
// An empty hour or day list matches everything.
func (r AdaptationRule) Matches(hour int, day time.Weekday) bool {
	if len(r.Hours) > 0 && !containsInt(r.Hours, hour) {
		return false
	}
	if len(r.Days) > 0 {
		found := false
		for _, d := range r.Days {
			if d == day {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
