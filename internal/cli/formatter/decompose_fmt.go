package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/estimator/internal/domain"
)

// FormatDecomposition renders the WBS tasks, suggestions and rationale.
func FormatDecomposition(d domain.Decomposition) string {
	var b strings.Builder
	b.WriteString(Header("Work breakdown") + "  " + SourceBadge(string(d.Source)) + "\n")

	if len(d.Tasks) == 0 {
		b.WriteString(Dim("No tasks.") + "\n")
	} else {
		rows := make([][]string, 0, len(d.Tasks))
		for i, t := range d.Tasks {
			rows = append(rows, []string{
				Dim(fmt.Sprintf("%d", i+1)),
				t.Title,
				StyleBlue.Render(t.ModuleCode),
				RenderConfidence(t.Confidence, 8),
			})
		}
		b.WriteString(RenderTable([]string{"#", "Task", "Module", "Confidence"}, rows))
	}

	if len(d.Suggestions) > 0 {
		b.WriteString("\n" + Header("Suggested modules") + "\n")
		for _, s := range d.Suggestions {
			line := fmt.Sprintf("  %s %s", StyleBlue.Render(s.ModuleCode), ConfidenceStyle(s.Confidence).Render(fmt.Sprintf("%.0f%%", s.Confidence*100)))
			if s.Notes != "" {
				line += "  " + Dim(s.Notes)
			}
			b.WriteString(line + "\n")
		}
	}

	if d.Rationale != "" {
		b.WriteString("\n" + Dim(d.Rationale) + "\n")
	}
	return b.String()
}

type treeNode struct {
	key    string
	title  string
	detail string
	ai     bool
}

// buildTree walks edges depth-first from every node without a parent, in
// node order. Nodes only reachable through a cycle are emitted as extra
// roots; each node appears once.
func buildTree(nodes []treeNode, edges [][2]string) []TreeItem {
	byKey := make(map[string]treeNode, len(nodes))
	for _, n := range nodes {
		byKey[n.key] = n
	}
	children := make(map[string][]string)
	hasParent := make(map[string]bool)
	for _, e := range edges {
		if _, ok := byKey[e[0]]; !ok {
			continue
		}
		if _, ok := byKey[e[1]]; !ok {
			continue
		}
		children[e[0]] = append(children[e[0]], e[1])
		hasParent[e[1]] = true
	}

	var items []TreeItem
	visited := make(map[string]bool, len(nodes))
	var walk func(key string, level int, last bool, open []bool)
	walk = func(key string, level int, last bool, open []bool) {
		visited[key] = true
		n := byKey[key]
		items = append(items, TreeItem{
			Title:  n.title,
			Level:  level,
			IsLast: last,
			Open:   open,
			AI:     n.ai,
			Detail: n.detail,
		})

		var next []string
		for _, c := range children[key] {
			if !visited[c] {
				next = append(next, c)
			}
		}
		childOpen := open
		if level > 0 {
			childOpen = append(append([]bool(nil), open...), !last)
		}
		for i, c := range next {
			if !visited[c] {
				walk(c, level+1, i == len(next)-1, childOpen)
			}
		}
	}

	for _, n := range nodes {
		if !hasParent[n.key] && !visited[n.key] {
			walk(n.key, 0, true, nil)
		}
	}
	for _, n := range nodes {
		if !visited[n.key] {
			walk(n.key, 0, true, nil)
		}
	}
	return items
}

func hoursDetail(h domain.ModuleHours) string {
	if h.Total() == 0 {
		return ""
	}
	return fmt.Sprintf("FE %s · BE %s · QA %s", FormatHours(h.Frontend), FormatHours(h.Backend), FormatHours(h.QA))
}

// FormatGraphTree renders a generated mindmap graph.
func FormatGraphTree(g domain.MindmapGraph) string {
	nodes := make([]treeNode, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes = append(nodes, treeNode{key: n.Key, title: n.Title, detail: hoursDetail(n.Hours)})
	}
	edges := make([][2]string, 0, len(g.Connections))
	for _, c := range g.Connections {
		edges = append(edges, [2]string{c.FromKey, c.ToKey})
	}
	return RenderTree(buildTree(nodes, edges))
}

// FormatMindmapTree renders a stored mindmap followed by its notes.
func FormatMindmapTree(nodes []domain.MindmapNode, connections []domain.MindmapConnection, notes []domain.MindmapNote) string {
	if len(nodes) == 0 && len(notes) == 0 {
		return Dim("Mindmap is empty.") + "\n"
	}
	tn := make([]treeNode, 0, len(nodes))
	for _, n := range nodes {
		tn = append(tn, treeNode{key: n.ID, title: n.Title, detail: hoursDetail(n.Hours), ai: n.IsAI})
	}
	edges := make([][2]string, 0, len(connections))
	for _, c := range connections {
		edges = append(edges, [2]string{c.FromNodeID, c.ToNodeID})
	}

	var b strings.Builder
	b.WriteString(RenderTree(buildTree(tn, edges)))
	if len(notes) > 0 {
		b.WriteString("\n" + Header("Notes") + "\n")
		for _, n := range notes {
			b.WriteString("  • " + n.Content + "\n")
		}
	}
	return b.String()
}

func FormatVersionList(versions []domain.MindmapVersion) string {
	rows := make([][]string, 0, len(versions))
	for _, v := range versions {
		nodes := 0
		if v.Snapshot != nil {
			nodes = len(v.Snapshot.Nodes)
		}
		rows = append(rows, []string{TruncID(v.ID), v.Title, v.CreatedAt.Local().Format("2006-01-02 15:04"), fmt.Sprint(nodes)})
	}
	return RenderTable([]string{"ID", "Title", "Created", "Nodes"}, rows)
}
