package wbs

import (
	"fmt"

	"github.com/alexanderramin/estimator/internal/domain"
)

// Graph keys and titles used by BuildMindmap.
const (
	RootKey   = "root"
	RootTitle = "Project"
)

// ModuleNodeKey returns the graph key of a module node.
func ModuleNodeKey(code string) string {
	return "module_" + code
}

// TaskNodeKey returns the graph key of the index-th task of a module group.
func TaskNodeKey(code string, index int) string {
	return fmt.Sprintf("task_%s_%d", code, index)
}

type taskGroup struct {
	code  string
	tasks []domain.WbsTask
}

// BuildMindmap turns resolved tasks into a three-level tree: a root, one
// node per referenced module, one node per task. Each module's catalog
// hours and extra role hours are split evenly across the tasks grouped
// under it. Unknown modules get the raw code as title and zero hours.
func BuildMindmap(tasks []domain.WbsTask, catalog map[string]domain.CatalogEntry, rationale string) domain.MindmapGraph {
	graph := domain.MindmapGraph{
		Nodes:     []domain.GraphNode{{Key: RootKey, Title: RootTitle, Details: rationale}},
		Rationale: rationale,
	}

	for _, group := range groupByModule(tasks) {
		moduleKey := ModuleNodeKey(group.code)
		entry, known := catalog[group.code]

		moduleNode := domain.GraphNode{
			Key:        moduleKey,
			Title:      group.code,
			ModuleCode: group.code,
		}
		var split domain.ModuleHours
		var splitRoles []domain.RoleHours
		if known {
			n := float64(len(group.tasks))
			moduleNode.Title = entry.Name
			moduleNode.Details = entry.Description
			split = domain.ModuleHours{
				Frontend: entry.Hours.Frontend / n,
				Backend:  entry.Hours.Backend / n,
				QA:       entry.Hours.QA / n,
			}
			for _, rh := range entry.RoleHours {
				splitRoles = append(splitRoles, domain.RoleHours{Role: rh.Role, Hours: rh.Hours / n})
			}
		}

		graph.Nodes = append(graph.Nodes, moduleNode)
		graph.Connections = append(graph.Connections, domain.GraphConnection{FromKey: RootKey, ToKey: moduleKey})

		for i, task := range group.tasks {
			taskKey := TaskNodeKey(group.code, i)
			graph.Nodes = append(graph.Nodes, domain.GraphNode{
				Key:        taskKey,
				Title:      task.Title,
				Details:    task.Details,
				ModuleCode: group.code,
				Hours:      split,
				RoleHours:  cloneRoleHours(splitRoles),
			})
			graph.Connections = append(graph.Connections, domain.GraphConnection{FromKey: moduleKey, ToKey: taskKey})
		}
	}

	return graph
}

// groupByModule groups tasks by module code in first-seen order. Tasks
// without a code land in the "core" group.
func groupByModule(tasks []domain.WbsTask) []taskGroup {
	var groups []taskGroup
	pos := make(map[string]int)
	for _, task := range tasks {
		code := task.ModuleCode
		if code == "" {
			code = DefaultModuleCode
		}
		i, ok := pos[code]
		if !ok {
			i = len(groups)
			pos[code] = i
			groups = append(groups, taskGroup{code: code})
		}
		groups[i].tasks = append(groups[i].tasks, task)
	}
	return groups
}

func cloneRoleHours(in []domain.RoleHours) []domain.RoleHours {
	if in == nil {
		return nil
	}
	out := make([]domain.RoleHours, len(in))
	copy(out, in)
	return out
}
