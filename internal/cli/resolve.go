package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveID matches input against ids exactly, then as a unique prefix, so
// the 8-character ids printed by list commands can be typed back.
func resolveID(kind, input string, ids []string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}
	var matches []string
	for _, id := range ids {
		if id == input {
			return id, nil
		}
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

// resolveProjectID accepts an id, an id prefix or an exact project name.
func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	projects, err := app.Projects.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		if strings.EqualFold(p.Name, input) {
			return p.ID, nil
		}
		ids = append(ids, p.ID)
	}
	return resolveID("project", input, ids)
}

// resolveProjectModuleID accepts a project module id prefix or the code of
// a module attached to the project.
func resolveProjectModuleID(ctx context.Context, app *App, projectID, input string) (string, error) {
	pms, err := app.ProjectModules.ListByProject(ctx, projectID)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(pms))
	for _, pm := range pms {
		if pm.Module != nil && strings.EqualFold(pm.Module.Code, input) {
			return pm.ID, nil
		}
		ids = append(ids, pm.ID)
	}
	return resolveID("project module", input, ids)
}

func resolveVersionID(ctx context.Context, app *App, projectID, input string) (string, error) {
	versions, err := app.Mindmap.ListVersions(ctx, projectID)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(versions))
	for _, v := range versions {
		ids = append(ids, v.ID)
	}
	return resolveID("version", input, ids)
}

// resolveInfraItemID accepts an item id prefix or code.
func resolveInfraItemID(ctx context.Context, app *App, input string) (string, error) {
	items, err := app.Infrastructure.ListItems(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if strings.EqualFold(it.Code, input) {
			return it.ID, nil
		}
		ids = append(ids, it.ID)
	}
	return resolveID("infrastructure item", input, ids)
}
