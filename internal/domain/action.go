package domain

// RecommendedAction is the dispatcher's answer to "what should I do now".
// Confidence is always within [0,1]; DurationMin is advisory and may be zero
// for energy checks.
type RecommendedAction struct {
	Type        ActionType `json:"type"`
	DurationMin int        `json:"duration_min,omitempty"`
	TaskID      string     `json:"task_id,omitempty"`
	Reason      string     `json:"reason"`
	Confidence  float64    `json:"confidence"`
}
