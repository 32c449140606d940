package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/tempo/internal/domain"
)

// FormatInsight renders the circadian summary derived from recorded readings.
func FormatInsight(intel *domain.SchedulingIntelligence) string {
	if intel == nil {
		return Dim("Not enough readings yet: the analyzer needs at least 10. Record some with 'tempo energy log'.") + "\n"
	}

	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s %s\n\n", Dim("Confidence:"), RenderConfidence(intel.UserRhythm.Confidence, 10)))

	b.WriteString(Header("Peak hours") + "\n")
	if len(intel.UserRhythm.PeakPerformances) == 0 {
		b.WriteString(Dim("  none above the peak threshold yet") + "\n")
	}
	for _, peak := range intel.UserRhythm.PeakPerformances {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			StyleGreen.Render(HourLabel(peak.Hour)),
			Dim(fmt.Sprintf("score %.1f", peak.Score)),
		))
	}

	b.WriteString("\n" + Header("Energy dips") + "\n")
	if len(intel.UserRhythm.EnergyDips) == 0 {
		b.WriteString(Dim("  none below the dip threshold") + "\n")
	}
	for _, dip := range intel.UserRhythm.EnergyDips {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			StyleRed.Render(HourLabel(dip.Hour)),
			Dim(fmt.Sprintf("score %.1f", dip.Score)),
		))
	}

	if len(intel.ProductivityZones) > 0 {
		b.WriteString("\n" + Header("Productivity zones") + "\n")
		zones := append([]domain.TimePreference(nil), intel.ProductivityZones...)
		sort.Slice(zones, func(i, j int) bool { return zones[i].Hour < zones[j].Hour })

		headers := []string{"Hour", "Score", "Energy", "Completion", "Samples"}
		rows := make([][]string, 0, len(zones))
		for _, zone := range zones {
			samples := fmt.Sprintf("%d", zone.ReadingCount)
			if !zone.SupportedByData {
				samples = Dim(samples + " (thin)")
			}
			rows = append(rows, []string{
				HourLabel(zone.Hour),
				fmt.Sprintf("%.1f", zone.PreferenceScore),
				fmt.Sprintf("%.1f", zone.AvgEnergy),
				fmt.Sprintf("%3.0f%%", zone.AvgCompletion*100),
				samples,
			})
		}
		b.WriteString(RenderTable(headers, rows))
	}

	if len(intel.UserRhythm.WeeklyPatterns) > 0 {
		b.WriteString("\n" + Header("By weekday") + "\n")
		for _, wp := range intel.UserRhythm.WeeklyPatterns {
			b.WriteString(fmt.Sprintf("  %-9s %s %s\n",
				wp.Day.String(),
				StyleBlue.Render(fmt.Sprintf("%.1f avg energy", wp.AvgEnergy)),
				Dim(fmt.Sprintf("(%d readings)", wp.ReadingCount)),
			))
		}
	}

	return b.String()
}
