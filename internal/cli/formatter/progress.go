package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderConfidence renders a 0..1 confidence as a bar like [████░░░░] 55%,
// colored by ConfidenceStyle.
func RenderConfidence(c float64, width int) string {
	c = min(max(c, 0), 1)
	if width < 2 {
		width = 2
	}

	filled := min(int(c*float64(width)+0.5), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return fmt.Sprintf("[%s] %3.0f%%", ConfidenceStyle(c).Render(bar), c*100)
}
