package domain

import "time"

// ModelScore is one model's observed effectiveness within a performance
// report, on a 0..100 scale.
type ModelScore struct {
	ModelID       string  `json:"model_id"`
	Effectiveness float64 `json:"effectiveness"`
	Sessions      int     `json:"sessions"`
	Confidence    float64 `json:"confidence"`
}

// PerformanceReport is the per-cycle summary supplied by the analytics
// collaborator. The learning loop consumes it; it never computes one.
type PerformanceReport struct {
	GeneratedAt       time.Time       `json:"generated_at"`
	BestModelID       string          `json:"best_model_id"`
	ModelScores       []ModelScore    `json:"model_scores,omitempty"`
	ProductivityTrend float64         `json:"productivity_trend"` // 0..1, 0.5 = flat
	TrendConfidence   float64         `json:"trend_confidence"`
	Metrics           BaselineMetrics `json:"metrics"`
}

// ScoreFor returns the report entry for a model ID, or nil.
func (r *PerformanceReport) ScoreFor(modelID string) *ModelScore {
	for i := range r.ModelScores {
		if r.ModelScores[i].ModelID == modelID {
			return &r.ModelScores[i]
		}
	}
	return nil
}

// TimePattern is a time-of-day effectiveness observation (0..100).
type TimePattern struct {
	Label         string  `json:"label"`
	Hours         []int   `json:"hours"`
	Effectiveness float64 `json:"effectiveness"`
	Confidence    float64 `json:"confidence"`
}

// EnergyOutcomePattern is an energy-centric observation with the expected
// outcome (0..100) for work placed in the given hours.
type EnergyOutcomePattern struct {
	Hours           []int   `json:"hours"`
	ExpectedOutcome float64 `json:"expected_outcome"`
	Confidence      float64 `json:"confidence"`
}

// BehavioralShift describes a detected change in working behavior, such as a
// drift between estimated and actual task durations.
type BehavioralShift struct {
	Kind               string    `json:"kind"`
	Description        string    `json:"description"`
	DurationMultiplier float64   `json:"duration_multiplier"`
	Confidence         float64   `json:"confidence"`
	DetectedAt         time.Time `json:"detected_at"`
}

// ContextualInsights is the pattern-level companion of PerformanceReport.
type ContextualInsights struct {
	TimePatterns     []TimePattern          `json:"time_patterns,omitempty"`
	EnergyPatterns   []EnergyOutcomePattern `json:"energy_patterns,omitempty"`
	BehavioralShifts []BehavioralShift      `json:"behavioral_shifts,omitempty"`
}
