package domain

type Quadrant string

const (
	QuadrantUrgentImportant       Quadrant = "urgent-important"
	QuadrantUrgentNotImportant    Quadrant = "urgent-not-important"
	QuadrantNotUrgentImportant    Quadrant = "not-urgent-important"
	QuadrantNotUrgentNotImportant Quadrant = "not-urgent-not-important"
)

// ValidQuadrants is the canonical set of accepted quadrant strings.
var ValidQuadrants = map[string]bool{
	"urgent-important": true, "urgent-not-important": true,
	"not-urgent-important": true, "not-urgent-not-important": true,
}

type Complexity string

const (
	ComplexitySimple      Complexity = "simple"
	ComplexityModerate    Complexity = "moderate"
	ComplexityComplex     Complexity = "complex"
	ComplexityVeryComplex Complexity = "very-complex"
)

// ValidComplexities is the canonical set of accepted complexity strings.
var ValidComplexities = map[string]bool{
	"simple": true, "moderate": true, "complex": true, "very-complex": true,
}

type EnergyLevel string

const (
	EnergyVeryLow  EnergyLevel = "very-low"
	EnergyLow      EnergyLevel = "low"
	EnergyModerate EnergyLevel = "moderate"
	EnergyHigh     EnergyLevel = "high"
	EnergyVeryHigh EnergyLevel = "very-high"
)

// ValidEnergyLevels is the canonical set of accepted energy level strings.
var ValidEnergyLevels = map[string]bool{
	"very-low": true, "low": true, "moderate": true, "high": true, "very-high": true,
}

// Demanding reports whether the level sits in the high band of the scale.
func (e EnergyLevel) Demanding() bool {
	return e == EnergyHigh || e == EnergyVeryHigh
}

// Light reports whether the level sits in the low band of the scale.
func (e EnergyLevel) Light() bool {
	return e == EnergyVeryLow || e == EnergyLow
}

type ActionType string

const (
	ActionWork        ActionType = "work"
	ActionBreak       ActionType = "break"
	ActionTaskSwitch  ActionType = "task-switch"
	ActionEnergyCheck ActionType = "energy-check"
)

type BlockType string

const (
	BlockDeepWork    BlockType = "deep-work"
	BlockShallowWork BlockType = "shallow-work"
	BlockBreaks      BlockType = "breaks"
	BlockMeetings    BlockType = "meetings"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Weight returns the numeric ordering weight for a priority (high=3, low=1).
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

type OpportunityType string

const (
	OpportunityModelSwitch         OpportunityType = "model_switch"
	OpportunityContextOptimization OpportunityType = "context_optimization"
	OpportunityEnergyAdaptation    OpportunityType = "energy_adaptation"
	OpportunityTrendResponse       OpportunityType = "trend_response"
	OpportunityBehaviorAdaptation  OpportunityType = "behavior_adaptation"
)

type AdaptationStatus string

const (
	AdaptationActive        AdaptationStatus = "active"
	AdaptationSuccessful    AdaptationStatus = "successful"
	AdaptationNeedsRollback AdaptationStatus = "needs_rollback"
	AdaptationRolledBack    AdaptationStatus = "rolled_back"
)

// Terminal reports whether the status is an end state of the adaptation
// lifecycle.
func (s AdaptationStatus) Terminal() bool {
	return s == AdaptationSuccessful || s == AdaptationRolledBack
}
