package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/estimator/internal/cli/formatter"
	"github.com/alexanderramin/estimator/internal/domain"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"projects"},
		Short:   "Manage projects",
	}
	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectUpdateCmd(app),
		newProjectRemoveCmd(app),
	)
	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var (
		name, description string
		uncertainty, uiux string
		legacy            bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Project{
				Name:             name,
				Description:      description,
				UncertaintyLevel: uncertainty,
				UIUXLevel:        uiux,
				LegacyCode:       legacy,
			}
			if err := app.Projects.Create(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s (%s)\n", p.Name, formatter.TruncID(p.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&description, "description", "", "Project description")
	cmd.Flags().StringVar(&uncertainty, "uncertainty", domain.DefaultUncertaintyLevel, "Uncertainty level")
	cmd.Flags().StringVar(&uiux, "uiux", domain.DefaultUIUXLevel, "UI/UX level")
	cmd.Flags().BoolVar(&legacy, "legacy", false, "Project works on legacy code")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects yet.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProjectList(projects))
			return nil
		},
	}
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show PROJECT",
		Short: "Show a project with its modules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, id)
			if err != nil {
				return err
			}
			pms, err := app.ProjectModules.ListByProject(ctx, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header(p.Name))
			if p.Description != "" {
				fmt.Fprintln(out, formatter.Dim(p.Description))
			}
			fmt.Fprintf(out, "Uncertainty: %s  UI/UX: %s  Legacy: %t\n\n", p.UncertaintyLevel, p.UIUXLevel, p.LegacyCode)
			if len(pms) == 0 {
				fmt.Fprintln(out, "No modules attached.")
				return nil
			}
			fmt.Fprint(out, formatter.FormatProjectModules(pms))
			return nil
		},
	}
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var (
		name, description string
		uncertainty, uiux string
		legacy            bool
	)

	cmd := &cobra.Command{
		Use:   "update PROJECT",
		Short: "Change project fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, id)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("name") {
				p.Name = name
			}
			if flags.Changed("description") {
				p.Description = description
			}
			if flags.Changed("uncertainty") {
				p.UncertaintyLevel = uncertainty
			}
			if flags.Changed("uiux") {
				p.UIUXLevel = uiux
			}
			if flags.Changed("legacy") {
				p.LegacyCode = legacy
			}
			if err := app.Projects.Update(ctx, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s\n", p.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&description, "description", "", "Project description")
	cmd.Flags().StringVar(&uncertainty, "uncertainty", "", "Uncertainty level")
	cmd.Flags().StringVar(&uiux, "uiux", "", "UI/UX level")
	cmd.Flags().BoolVar(&legacy, "legacy", false, "Project works on legacy code")
	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove PROJECT",
		Short: "Delete a project and everything attached to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, id)
			if err != nil {
				return err
			}
			ok, err := confirmAction(app, yes,
				fmt.Sprintf("Delete project %q?", p.Name),
				"Modules, assignments, infrastructure and mindmap versions are deleted too.")
			if err != nil || !ok {
				return err
			}
			if err := app.Projects.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", p.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}
