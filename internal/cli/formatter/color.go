package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// ActionBadge returns a colored indicator for a recommended action type.
func ActionBadge(typ domain.ActionType) string {
	switch typ {
	case domain.ActionWork:
		return StyleGreen.Render("● WORK")
	case domain.ActionBreak:
		return StyleBlue.Render("● BREAK")
	case domain.ActionTaskSwitch:
		return StyleYellow.Render("● SWITCH TASK")
	case domain.ActionEnergyCheck:
		return StylePurple.Render("● ENERGY CHECK")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// QuadrantBadge returns a colored Eisenhower quadrant label.
func QuadrantBadge(q domain.Quadrant) string {
	switch q {
	case domain.QuadrantUrgentImportant:
		return StyleRed.Render("urgent-important")
	case domain.QuadrantUrgentNotImportant:
		return StyleYellow.Render("urgent-not-important")
	case domain.QuadrantNotUrgentImportant:
		return StyleBlue.Render("not-urgent-important")
	case domain.QuadrantNotUrgentNotImportant:
		return StyleDim.Render("not-urgent-not-important")
	default:
		return StyleDim.Render(string(q))
	}
}

// AdaptationStatusPill returns a colored adaptation lifecycle indicator.
func AdaptationStatusPill(status domain.AdaptationStatus) string {
	switch status {
	case domain.AdaptationActive:
		return StyleBlue.Render("● active")
	case domain.AdaptationSuccessful:
		return StyleGreen.Render("✔ successful")
	case domain.AdaptationNeedsRollback:
		return StyleYellow.Render("▲ needs rollback")
	case domain.AdaptationRolledBack:
		return StyleDim.Render("↩ rolled back")
	default:
		return StyleDim.Render(string(status))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
