package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TaskSchedule is a single schedulable task. Tasks are never deleted, only
// marked complete, so completed history stays available to the learning loop.
type TaskSchedule struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Priority       Quadrant    `json:"priority"`
	Complexity     Complexity  `json:"complexity"`
	EnergyRequired EnergyLevel `json:"energy_required"`
	EstimatedMin   int         `json:"estimated_min"`
	ActualMin      *int        `json:"actual_min,omitempty"`
	Deadline       *time.Time  `json:"deadline,omitempty"`
	Completed      bool        `json:"completed"`
	Satisfaction   *int        `json:"satisfaction,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	CompletedAt    *time.Time  `json:"completed_at,omitempty"`
}

// NewTaskSchedule creates an incomplete task with a generated ID.
func NewTaskSchedule(name string, priority Quadrant, complexity Complexity, energy EnergyLevel, estimatedMin int, deadline *time.Time, now time.Time) (*TaskSchedule, error) {
	if name == "" {
		return nil, fmt.Errorf("task name is required")
	}
	if !ValidQuadrants[string(priority)] {
		return nil, fmt.Errorf("invalid quadrant %q", priority)
	}
	if !ValidComplexities[string(complexity)] {
		return nil, fmt.Errorf("invalid complexity %q", complexity)
	}
	if !ValidEnergyLevels[string(energy)] {
		return nil, fmt.Errorf("invalid energy level %q", energy)
	}
	if estimatedMin <= 0 {
		return nil, fmt.Errorf("estimated duration must be positive, got %d", estimatedMin)
	}
	return &TaskSchedule{
		ID:             uuid.NewString(),
		Name:           name,
		Priority:       priority,
		Complexity:     complexity,
		EnergyRequired: energy,
		EstimatedMin:   estimatedMin,
		Deadline:       deadline,
		CreatedAt:      now,
	}, nil
}

// MarkCompleted transitions the task to completed, optionally backfilling the
// actual duration and a 1..5 satisfaction rating. Completing an already
// completed task keeps the original completion data.
func (t *TaskSchedule) MarkCompleted(now time.Time, actualMin *int, satisfaction *int) error {
	if t.Completed {
		return nil
	}
	if satisfaction != nil && (*satisfaction < 1 || *satisfaction > 5) {
		return fmt.Errorf("satisfaction must be 1..5, got %d", *satisfaction)
	}
	if actualMin != nil && *actualMin <= 0 {
		return fmt.Errorf("actual duration must be positive, got %d", *actualMin)
	}
	t.Completed = true
	t.CompletedAt = &now
	if actualMin != nil {
		t.ActualMin = actualMin
	}
	if satisfaction != nil {
		t.Satisfaction = satisfaction
	}
	return nil
}

// DueWithin reports whether the task has a deadline inside the given number
// of hours from now. Overdue tasks count as due.
func (t *TaskSchedule) DueWithin(now time.Time, hours float64) bool {
	if t.Deadline == nil {
		return false
	}
	return t.Deadline.Sub(now).Hours() <= hours
}
