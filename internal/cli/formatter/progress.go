package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderConfidence renders a confidence bar like [████░░░░] 55%.
// Green above 0.75, yellow 0.5..0.75, red below.
func RenderConfidence(confidence float64, width int) string {
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	if width < 2 {
		width = 2
	}

	filled := int(confidence * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if confidence < 0.5 {
		style = StyleRed
	} else if confidence < 0.75 {
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), confidence*100)
}
