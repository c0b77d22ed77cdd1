package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/estimator/internal/cli/formatter"
	"github.com/alexanderramin/estimator/internal/domain"
)

func newModuleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "module",
		Short: "Attach catalog modules to projects and tune them",
	}
	cmd.AddCommand(
		newModuleAttachCmd(app),
		newModuleListCmd(app),
		newModuleOverrideCmd(app),
		newModuleDetachCmd(app),
	)
	return cmd
}

// loadProjectModule resolves a PROJECT and PM argument pair.
func loadProjectModule(ctx context.Context, app *App, projectArg, pmArg string) (*domain.ProjectModule, error) {
	projectID, err := resolveProjectID(ctx, app, projectArg)
	if err != nil {
		return nil, err
	}
	pmID, err := resolveProjectModuleID(ctx, app, projectID, pmArg)
	if err != nil {
		return nil, err
	}
	return app.ProjectModules.GetByID(ctx, pmID)
}

func newModuleAttachCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "attach PROJECT CODE...",
		Short: "Attach catalog modules to a project",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			for _, code := range args[1:] {
				pm, err := app.ProjectModules.AttachByCode(ctx, projectID, code)
				if err != nil {
					return fmt.Errorf("attaching %s: %w", code, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Attached %s (%s)\n", pm.DisplayName(), formatter.TruncID(pm.ID))
			}
			return nil
		},
	}
}

func newModuleListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list PROJECT",
		Short: "List modules attached to a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			pms, err := app.ProjectModules.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}
			if len(pms) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No modules attached.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProjectModules(pms))
			return nil
		},
	}
}

func newModuleOverrideCmd(app *App) *cobra.Command {
	var (
		name                  string
		frontend, backend, qa float64
		uncertainty, uiux     string
		legacy                bool
		reset                 bool
	)

	cmd := &cobra.Command{
		Use:   "override PROJECT MODULE",
		Short: "Override hours or coefficient levels of an attached module",
		Long: "Override hours or coefficient levels of an attached module. MODULE is a " +
			"project module ID prefix or the catalog code. --clear resets every " +
			"override before applying the given flags.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pm, err := loadProjectModule(ctx, app, args[0], args[1])
			if err != nil {
				return err
			}

			if reset {
				pm.CustomName = ""
				pm.OverrideFrontend, pm.OverrideBackend, pm.OverrideQA = nil, nil, nil
				pm.UncertaintyLevel, pm.UIUXLevel, pm.LegacyCode = nil, nil, nil
			}
			flags := cmd.Flags()
			if flags.Changed("name") {
				pm.CustomName = name
			}
			if flags.Changed("frontend") {
				pm.OverrideFrontend = &frontend
			}
			if flags.Changed("backend") {
				pm.OverrideBackend = &backend
			}
			if flags.Changed("qa") {
				pm.OverrideQA = &qa
			}
			if flags.Changed("uncertainty") {
				pm.UncertaintyLevel = &uncertainty
			}
			if flags.Changed("uiux") {
				pm.UIUXLevel = &uiux
			}
			if flags.Changed("legacy") {
				pm.LegacyCode = &legacy
			}

			if err := app.ProjectModules.Update(ctx, pm); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", pm.DisplayName())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Custom display name")
	cmd.Flags().Float64Var(&frontend, "frontend", 0, "Frontend hours")
	cmd.Flags().Float64Var(&backend, "backend", 0, "Backend hours")
	cmd.Flags().Float64Var(&qa, "qa", 0, "QA hours")
	cmd.Flags().StringVar(&uncertainty, "uncertainty", "", "Uncertainty level for this module")
	cmd.Flags().StringVar(&uiux, "uiux", "", "UI/UX level for this module")
	cmd.Flags().BoolVar(&legacy, "legacy", false, "Module works on legacy code")
	cmd.Flags().BoolVar(&reset, "clear", false, "Reset all overrides first")
	return cmd
}

func newModuleDetachCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "detach PROJECT MODULE",
		Short: "Detach a module from a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pm, err := loadProjectModule(ctx, app, args[0], args[1])
			if err != nil {
				return err
			}
			if err := app.ProjectModules.Detach(ctx, pm.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Detached %s\n", pm.DisplayName())
			return nil
		},
	}
}
