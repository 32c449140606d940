package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
)

// FormatTaskList renders the task table. Completed tasks are dimmed and kept
// at the bottom of the listing.
func FormatTaskList(tasks []domain.TaskSchedule, now time.Time) string {
	if len(tasks) == 0 {
		return Dim("No tasks yet. Add one with 'tempo task add'.") + "\n"
	}

	headers := []string{"ID", "Task", "Quadrant", "Complexity", "Energy", "Est", "Deadline", ""}
	var open, done [][]string
	for _, t := range tasks {
		deadline := Dim("-")
		if t.Deadline != nil {
			deadline = DeadlineStyled(*t.Deadline, now)
		}
		row := []string{
			TruncID(t.ID),
			StyleFg.Render(t.Name),
			QuadrantBadge(t.Priority),
			string(t.Complexity),
			string(t.EnergyRequired),
			FormatMinutes(t.EstimatedMin),
			deadline,
			"",
		}
		if t.Completed {
			row[1] = Dim(t.Name)
			row[7] = StyleGreen.Render("✔")
			done = append(done, row)
			continue
		}
		open = append(open, row)
	}

	return RenderTable(headers, append(open, done...))
}

// FormatReadings renders the recent energy readings, newest first.
func FormatReadings(readings []domain.EnergyReading, limit int) string {
	if len(readings) == 0 {
		return Dim("No energy readings yet. Record one with 'tempo energy log'.") + "\n"
	}

	headers := []string{"When", "Hour", "Energy", "Completion"}
	var rows [][]string
	for i := len(readings) - 1; i >= 0 && len(rows) < limit; i-- {
		r := readings[i]
		rows = append(rows, []string{
			Dim(r.Timestamp.Format("Jan 2 15:04")),
			HourLabel(r.Hour),
			energyCell(r.EnergyLevel),
			fmt.Sprintf("%3.0f%%", r.CompletionRate*100),
		})
	}

	var b strings.Builder
	b.WriteString(RenderTable(headers, rows))
	if len(readings) > limit {
		b.WriteString(Dim(fmt.Sprintf("… and %d older readings", len(readings)-limit)) + "\n")
	}
	return b.String()
}

func energyCell(level int) string {
	text := fmt.Sprintf("%2d/10", level)
	switch {
	case level >= 8:
		return StyleGreen.Render(text)
	case level >= 5:
		return StyleYellow.Render(text)
	default:
		return StyleRed.Render(text)
	}
}
