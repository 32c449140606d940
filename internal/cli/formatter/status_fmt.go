package formatter

import (
	"fmt"
	"strings"
)

// StatusData is the snapshot the status view renders.
type StatusData struct {
	ModelName       string
	ModelID         string
	OpenTasks       int
	CompletedTasks  int
	Readings        int
	Adaptations     int
	DataSharing     bool
	Trend           float64 // 0..1, 0.5 = flat
	TrendConfidence float64
}

// FormatStatus renders the one-screen status summary.
func FormatStatus(data StatusData) string {
	var b strings.Builder

	model := Dim("none (low-confidence fallback)")
	if data.ModelID != "" {
		model = StyleGreen.Render(fmt.Sprintf("%s (%s)", data.ModelName, data.ModelID))
	}
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Active model:"), model))
	b.WriteString(fmt.Sprintf("%s %s open, %s done\n",
		Dim("Tasks:"),
		Bold(fmt.Sprintf("%d", data.OpenTasks)),
		Dim(fmt.Sprintf("%d", data.CompletedTasks)),
	))
	b.WriteString(fmt.Sprintf("%s %s in the last 30 days\n", Dim("Energy readings:"), Bold(fmt.Sprintf("%d", data.Readings))))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Adaptations:"), Bold(fmt.Sprintf("%d", data.Adaptations))))

	sharing := StyleDim.Render("off")
	if data.DataSharing {
		sharing = StyleGreen.Render("on")
	}
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Data sharing:"), sharing))

	b.WriteString(fmt.Sprintf("%s %s %s\n",
		Dim("Productivity trend:"),
		trendLabel(data.Trend),
		Dim(fmt.Sprintf("(confidence %.0f%%)", data.TrendConfidence*100)),
	))

	return RenderBox("Status", b.String())
}

func trendLabel(trend float64) string {
	switch {
	case trend > 0.55:
		return StyleGreen.Render("▲ improving")
	case trend < 0.45:
		return StyleRed.Render("▼ declining")
	default:
		return StyleYellow.Render("■ flat")
	}
}
