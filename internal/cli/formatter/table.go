package formatter

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const colGap = 2

// RenderTable renders an aligned table with a header separator line.
// Columns whose data cells are all numeric are right-aligned.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	cols := len(headers)

	widths := make([]int, cols)
	numeric := make([]bool, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
		numeric[i] = len(rows) > 0
	}
	for _, row := range rows {
		for i := 0; i < cols; i++ {
			cell := cellAt(row, i)
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
			if !isNumeric(cell) {
				numeric[i] = false
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string, style func(string) string) {
		for i := 0; i < cols; i++ {
			cell := cellAt(cells, i)
			pad := max(widths[i]-lipgloss.Width(cell), 0)
			if style != nil {
				cell = style(cell)
			}
			if numeric[i] {
				b.WriteString(strings.Repeat(" ", pad) + cell)
			} else {
				b.WriteString(cell)
				if i < cols-1 {
					b.WriteString(strings.Repeat(" ", pad))
				}
			}
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(s string) string { return StyleHeader.Render(s) })
	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")
	for _, row := range rows {
		writeRow(row, nil)
	}
	return b.String()
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// isNumeric accepts formatted amounts such as "1 250.50" or "-3".
func isNumeric(cell string) bool {
	plain := strings.ReplaceAll(ansi.Strip(cell), " ", "")
	if plain == "" {
		return false
	}
	_, err := strconv.ParseFloat(plain, 64)
	return err == nil
}
