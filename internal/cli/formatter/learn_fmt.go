package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/dustin/go-humanize"
)

// FormatLearnStatus renders the adaptation history and the active cooldowns.
func FormatLearnStatus(adaptations []domain.ModelAdaptation, cooldowns map[string]time.Time, now time.Time) string {
	var b strings.Builder

	b.WriteString(Header("Adaptations") + "\n")
	if len(adaptations) == 0 {
		b.WriteString(Dim("  none yet — the loop acts only on high-confidence patterns") + "\n")
	}
	for _, a := range adaptations {
		b.WriteString(fmt.Sprintf("  %s  %s %s\n",
			AdaptationStatusPill(a.Status),
			StyleFg.Render(string(a.Type)),
			Dim(humanize.RelTime(a.ImplementationDate, now, "ago", "from now")),
		))
		b.WriteString(fmt.Sprintf("     %s\n", Dim(a.Opportunity.Description)))
		if a.RollbackDate != nil {
			b.WriteString(fmt.Sprintf("     %s\n", Dim(fmt.Sprintf("reverted %s", humanize.RelTime(*a.RollbackDate, now, "ago", "from now")))))
		}
	}

	b.WriteString("\n" + Header("Cooldowns") + "\n")
	if len(cooldowns) == 0 {
		b.WriteString(Dim("  none active") + "\n")
		return b.String()
	}

	sigs := make([]string, 0, len(cooldowns))
	for sig := range cooldowns {
		sigs = append(sigs, sig)
	}
	sort.Strings(sigs)
	for _, sig := range sigs {
		label := sig
		if i := strings.IndexByte(label, ':'); i > 0 {
			label = label[:i]
		}
		b.WriteString(fmt.Sprintf("  %s %s\n",
			StyleYellow.Render(label),
			Dim(fmt.Sprintf("clears %s", humanize.RelTime(cooldowns[sig], now, "ago", "from now"))),
		))
	}

	return b.String()
}

// FormatLearnRun summarizes what one or more manual cycles changed.
func FormatLearnRun(cycles int, before, after int) string {
	executed := after - before
	if executed <= 0 {
		return Dim(fmt.Sprintf("Ran %d cycle(s). No adaptation executed — nothing confident enough, or still cooling down.", cycles)) + "\n"
	}
	return StyleGreen.Render(fmt.Sprintf("Ran %d cycle(s), executed %d adaptation(s).", cycles, executed)) + "\n" +
		Dim("See 'tempo learn status' for details.") + "\n"
}
