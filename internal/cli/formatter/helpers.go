package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		inner := StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content
		return boxStyle.Render(inner)
	}
	return boxStyle.Render(content)
}

// FormatMinutes converts raw minutes into human-friendly format.
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h := min / 60
	m := min % 60
	if h > 0 && m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// RelativeDateFrom returns a human-friendly relative date string from a
// reference time.
func RelativeDateFrom(t time.Time, now time.Time) string {
	days := int(math.Round(t.Sub(now).Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days < 0 && days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days < 0 && days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// DeadlineStyled returns RelativeDateFrom with urgency coloring applied.
func DeadlineStyled(t time.Time, now time.Time) string {
	text := RelativeDateFrom(t, now)
	days := int(math.Round(t.Sub(now).Hours() / 24))

	switch {
	case days < 0:
		return StyleRed.Render(text)
	case days <= 2:
		return StyleRed.Render(text)
	case days <= 7:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// HourLabel renders an hour of day as "9am" / "12pm" / "11pm".
func HourLabel(hour int) string {
	switch {
	case hour == 0:
		return "12am"
	case hour < 12:
		return fmt.Sprintf("%dam", hour)
	case hour == 12:
		return "12pm"
	default:
		return fmt.Sprintf("%dpm", hour-12)
	}
}

// HoursLabel renders a list of hours as a comma-joined label.
func HoursLabel(hours []int) string {
	if len(hours) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(hours))
	for _, h := range hours {
		parts = append(parts, HourLabel(h))
	}
	return strings.Join(parts, ", ")
}
