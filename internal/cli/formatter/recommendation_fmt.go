package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tempo/internal/domain"
)

// RecommendationData bundles the recommendation with the display context the
// action itself does not carry.
type RecommendationData struct {
	Action    domain.RecommendedAction
	TaskName  string // resolved from Action.TaskID, "" when none
	ModelName string // active model, "" when none
}

// FormatRecommendation formats a recommendation into a styled box.
func FormatRecommendation(data RecommendationData) string {
	var b strings.Builder

	b.WriteString(ActionBadge(data.Action.Type))
	if data.Action.DurationMin > 0 {
		b.WriteString("  " + StyleBlue.Render(fmt.Sprintf("(%s)", FormatMinutes(data.Action.DurationMin))))
	}
	b.WriteString("\n\n")

	if data.TaskName != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Task:"), Bold(data.TaskName)))
	}
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Why:"), StyleFg.Render(data.Action.Reason)))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Confidence:"), RenderConfidence(data.Action.Confidence, 10)))

	if data.ModelName != "" {
		b.WriteString("\n" + Dim(fmt.Sprintf("Model: %s", data.ModelName)) + "\n")
	}

	return RenderBox("Right Now", b.String())
}
