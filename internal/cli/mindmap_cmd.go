package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/estimator/internal/cli/formatter"
	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/service"
)

func newMindmapCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mindmap",
		Short: "Edit a project's mindmap and its saved versions",
	}
	cmd.AddCommand(
		newMindmapShowCmd(app),
		newMindmapNodeCmd(app),
		newMindmapNoteCmd(app),
		newMindmapConnectCmd(app),
		newMindmapGenerateCmd(app),
		newMindmapSaveCmd(app),
		newMindmapVersionsCmd(app),
		newMindmapApplyCmd(app),
	)
	return cmd
}

func printMindmap(cmd *cobra.Command, state *service.MindmapState) {
	if len(state.Nodes) == 0 && len(state.Notes) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Mindmap is empty.")
		return
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMindmapTree(state.Nodes, state.Connections, state.Notes))
}

// confirmReplace asks before overwriting a non-empty mindmap.
func confirmReplace(ctx context.Context, app *App, projectID string, yes bool) (bool, error) {
	state, err := app.Mindmap.State(ctx, projectID)
	if err != nil {
		return false, err
	}
	if len(state.Nodes) == 0 && len(state.Notes) == 0 {
		return true, nil
	}
	return confirmAction(app, yes, "Replace the current mindmap?",
		fmt.Sprintf("%d nodes and %d notes will be replaced. Save a version first to keep them.",
			len(state.Nodes), len(state.Notes)))
}

func newMindmapShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show PROJECT",
		Short: "Print the mindmap as a tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			state, err := app.Mindmap.State(ctx, projectID)
			if err != nil {
				return err
			}
			printMindmap(cmd, state)
			return nil
		},
	}
}

func newMindmapNodeCmd(app *App) *cobra.Command {
	var (
		description           string
		module                string
		frontend, backend, qa float64
		parent                string
	)

	cmd := &cobra.Command{
		Use:   "node PROJECT TITLE",
		Short: "Add a node, optionally linked to a catalog module and a parent node",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			n := &domain.MindmapNode{
				ProjectID:   projectID,
				Title:       args[1],
				Description: description,
				Hours:       domain.ModuleHours{Frontend: frontend, Backend: backend, QA: qa},
			}
			if module != "" {
				m, err := app.Catalog.GetByCode(ctx, module)
				if err != nil {
					return err
				}
				n.ModuleID = &m.ID
			}

			var parentID string
			if parent != "" {
				if parentID, err = resolveNodeID(ctx, app, projectID, parent); err != nil {
					return err
				}
			}
			if err := app.Mindmap.AddNode(ctx, n); err != nil {
				return err
			}
			if parentID != "" {
				if err := app.Mindmap.Connect(ctx, projectID, parentID, n.ID); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added node %s (%s)\n", n.Title, formatter.TruncID(n.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Node description")
	cmd.Flags().StringVar(&module, "module", "", "Catalog module code")
	cmd.Flags().Float64Var(&frontend, "frontend", 0, "Frontend hours")
	cmd.Flags().Float64Var(&backend, "backend", 0, "Backend hours")
	cmd.Flags().Float64Var(&qa, "qa", 0, "QA hours")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent node ID prefix or title")
	return cmd
}

// resolveNodeID accepts a node id prefix or an exact node title.
func resolveNodeID(ctx context.Context, app *App, projectID, input string) (string, error) {
	state, err := app.Mindmap.State(ctx, projectID)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(state.Nodes))
	for _, n := range state.Nodes {
		if strings.EqualFold(n.Title, input) {
			return n.ID, nil
		}
		ids = append(ids, n.ID)
	}
	return resolveID("mindmap node", input, ids)
}

func newMindmapNoteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "note PROJECT TEXT...",
		Short: "Add a free-text note",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			n := &domain.MindmapNote{ProjectID: projectID, Content: strings.Join(args[1:], " ")}
			if err := app.Mindmap.AddNote(ctx, n); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Added note")
			return nil
		},
	}
}

func newMindmapConnectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "connect PROJECT FROM TO",
		Short: "Connect two nodes",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			from, err := resolveNodeID(ctx, app, projectID, args[1])
			if err != nil {
				return err
			}
			to, err := resolveNodeID(ctx, app, projectID, args[2])
			if err != nil {
				return err
			}
			if err := app.Mindmap.Connect(ctx, projectID, from, to); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Connected %s -> %s\n", args[1], args[2])
			return nil
		},
	}
}

func newMindmapGenerateCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "generate PROJECT PROMPT...",
		Short: "Replace the mindmap with one generated from a prompt",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			ok, err := confirmReplace(ctx, app, projectID, yes)
			if err != nil || !ok {
				return err
			}

			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Generating mindmap")
			}
			res, err := app.Decompose.Mindmap(ctx, strings.Join(args[1:], " "))
			stop()
			if err != nil {
				return err
			}
			state, err := app.Mindmap.ApplyGraph(ctx, projectID, res.Graph)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Generated %d nodes %s\n", len(state.Nodes),
				formatter.SourceBadge(string(res.Decomposition.Source)))
			printMindmap(cmd, state)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Replace without asking")
	return cmd
}

func newMindmapSaveCmd(app *App) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "save PROJECT",
		Short: "Save the current mindmap as a version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			v, err := app.Mindmap.SaveVersion(ctx, projectID, title, nil)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved version %q (%s)\n", v.Title, formatter.TruncID(v.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Version title")
	return cmd
}

func newMindmapVersionsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "versions PROJECT",
		Short: "List saved mindmap versions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			versions, err := app.Mindmap.ListVersions(ctx, projectID)
			if err != nil {
				return err
			}
			if len(versions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved versions.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatVersionList(versions))
			return nil
		},
	}
}

func newMindmapApplyCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "apply PROJECT VERSION",
		Short: "Replace the mindmap with a saved version",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			versionID, err := resolveVersionID(ctx, app, projectID, args[1])
			if err != nil {
				return err
			}
			ok, err := confirmReplace(ctx, app, projectID, yes)
			if err != nil || !ok {
				return err
			}
			state, err := app.Mindmap.ApplyVersion(ctx, projectID, versionID)
			if err != nil {
				return err
			}
			printMindmap(cmd, state)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Replace without asking")
	return cmd
}
