package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tempo/internal/domain"
)

// FormatModelList renders the model catalog, marking the active model.
func FormatModelList(models []domain.SchedulingModel, currentID string) string {
	headers := []string{"", "ID", "Name", "Work", "Rest", "Based on"}
	rows := make([][]string, 0, len(models))
	for _, m := range models {
		marker := " "
		id := StyleFg.Render(m.ID)
		if m.ID == currentID {
			marker = StyleGreen.Render("●")
			id = StyleGreen.Render(m.ID)
		}
		rows = append(rows, []string{
			marker,
			id,
			m.Name,
			FormatMinutes(m.WorkDuration),
			FormatMinutes(m.RestDuration),
			Dim(m.BasedOn),
		})
	}

	out := RenderTable(headers, rows)
	if currentID == "" {
		out += "\n" + Dim("No model active. Pick one with 'tempo model use <id>'.") + "\n"
	}
	return out
}

// FormatModelDetail renders a single model with its variant configuration.
func FormatModelDetail(m domain.SchedulingModel) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s %s\n", Bold(m.Name), Dim(fmt.Sprintf("(%s)", m.ID))))
	if m.Description != "" {
		b.WriteString(Dim(m.Description) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s work / %s rest\n", Dim("Cadence:"), FormatMinutes(m.WorkDuration), FormatMinutes(m.RestDuration)))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Based on:"), m.BasedOn))

	switch cfg := m.Config.(type) {
	case domain.TimeBlockingConfig:
		b.WriteString("\n" + Header("Blocks") + "\n")
		for _, block := range cfg.Blocks {
			b.WriteString(fmt.Sprintf("  %s  %s %s\n",
				StyleBlue.Render(fmt.Sprintf("%02d:%02d", block.StartTime/60, block.StartTime%60)),
				StyleFg.Render(string(block.Type)),
				Dim(fmt.Sprintf("(%s)", FormatMinutes(block.Duration))),
			))
		}
	case domain.EnergyBasedConfig:
		b.WriteString(fmt.Sprintf("\n%s %s\n", Dim("Peak hours:"), HoursLabel(cfg.Profile.PeakHours)))
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Low hours:"), HoursLabel(cfg.Profile.LowEnergyHours)))
		if cfg.Profile.Learned {
			b.WriteString(StylePurple.Render("Learned from your readings") + "\n")
		}
	case domain.DeadlineDrivenConfig:
		b.WriteString(fmt.Sprintf("\n%s %.0fh\n", Dim("Pressure window:"), cfg.TimePressureThreshold))
	}

	return b.String()
}
