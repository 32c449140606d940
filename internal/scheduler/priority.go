package scheduler

import (
	"math"
	"sort"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
)

// deadlineWindowHours is the window inside which deadline pressure starts
// adding to the score.
const deadlineWindowHours = 24

// Score computes the urgency score of a task: quadrant weight, plus deadline
// pressure inside the 24-hour window, scaled by complexity. Scores only order
// tasks relative to each other; the absolute value carries no meaning.
func Score(task domain.TaskSchedule, now time.Time) float64 {
	score := quadrantWeight(task.Priority)

	if task.Deadline != nil {
		hoursUntil := task.Deadline.Sub(now).Hours()
		if hoursUntil < deadlineWindowHours {
			// Pressure grows linearly toward the deadline: +50 at zero
			// hours, and overdue tasks keep climbing.
			score += math.Max(0, 50-hoursUntil)
		}
	}

	return score * complexityMultiplier(task.Complexity)
}

func quadrantWeight(q domain.Quadrant) float64 {
	switch q {
	case domain.QuadrantUrgentImportant:
		return 100
	case domain.QuadrantNotUrgentImportant:
		return 75
	case domain.QuadrantUrgentNotImportant:
		return 50
	case domain.QuadrantNotUrgentNotImportant:
		return 25
	default:
		return 0
	}
}

func complexityMultiplier(c domain.Complexity) float64 {
	switch c {
	case domain.ComplexityVeryComplex:
		return 1.5
	case domain.ComplexityComplex:
		return 1.2
	case domain.ComplexitySimple:
		return 0.8
	default:
		return 1.0
	}
}

// sortByScore orders tasks by descending urgency score.
func sortByScore(tasks []domain.TaskSchedule, now time.Time) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return Score(tasks[i], now) > Score(tasks[j], now)
	})
}
