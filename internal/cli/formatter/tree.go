package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeItem is one line of a rendered tree.
type TreeItem struct {
	Title  string
	Level  int
	IsLast bool
	// Open[i] reports whether the ancestor at depth i+1 still has siblings
	// below, which draws a vertical guide in that column.
	Open   []bool
	AI     bool
	Detail string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "
)

// RenderTree renders items as an indented tree with right-aligned detail
// badges. AI-generated items get a purple ◆ marker.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	contents := make([]string, len(items))
	maxWidth := 0
	for idx, item := range items {
		var prefix strings.Builder
		if item.Level > 0 {
			for depth := 1; depth < item.Level; depth++ {
				if depth-1 < len(item.Open) && item.Open[depth-1] {
					prefix.WriteString(treePipe)
				} else {
					prefix.WriteString(treeBlank)
				}
			}
			if item.IsLast {
				prefix.WriteString(treeCorner)
			} else {
				prefix.WriteString(treeBranch)
			}
		}

		title := item.Title
		if item.Level == 0 {
			title = Bold(title)
		}
		if item.AI {
			title = StylePurple.Render("◆ ") + title
		}
		contents[idx] = StyleDim.Render(prefix.String()) + title
		maxWidth = max(maxWidth, lipgloss.Width(contents[idx]))
	}

	var b strings.Builder
	for idx, item := range items {
		b.WriteString(contents[idx])
		if item.Detail != "" {
			pad := maxWidth - lipgloss.Width(contents[idx])
			b.WriteString(strings.Repeat(" ", pad) + "  " + StyleBlue.Render(fmt.Sprintf("[ %s ]", item.Detail)))
		}
		b.WriteString("\n")
	}
	return b.String()
}
