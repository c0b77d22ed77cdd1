package cli

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/estimator/internal/cli/formatter"
	"github.com/alexanderramin/estimator/internal/domain"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the module catalog",
	}
	cmd.AddCommand(
		newCatalogListCmd(app),
		newCatalogShowCmd(app),
		newCatalogAddCmd(app),
		newCatalogRemoveCmd(app),
	)
	return cmd
}

func newCatalogListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog modules",
		RunE: func(cmd *cobra.Command, args []string) error {
			modules, err := app.Catalog.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(modules) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Catalog is empty. Run `estimator seed` to load the defaults.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatModuleList(modules))
			return nil
		},
	}
}

func newCatalogShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show CODE",
		Short: "Show one catalog module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.Catalog.GetByCode(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := formatter.FormatModuleList([]domain.CatalogEntry{*m})
			if m.Description != "" {
				out += "\n" + formatter.Dim(m.Description) + "\n"
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newCatalogAddCmd(app *App) *cobra.Command {
	var (
		code, name, description string
		frontend, backend, qa   float64
		roleHours               map[string]string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a catalog module",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := &domain.CatalogEntry{
				Code:        code,
				Name:        name,
				Description: description,
				Hours:       domain.ModuleHours{Frontend: frontend, Backend: backend, QA: qa},
			}
			for role, raw := range roleHours {
				h, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return fmt.Errorf("invalid hours %q for role %s: %w", raw, role, err)
				}
				m.RoleHours = append(m.RoleHours, domain.RoleHours{Role: domain.Role(role), Hours: h})
			}
			sortRoleHours(m.RoleHours)

			if err := app.Catalog.Create(cmd.Context(), m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added module %s (%s)\n", m.Code, m.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Unique module code")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&description, "description", "", "Description used for prompt matching")
	cmd.Flags().Float64Var(&frontend, "frontend", 0, "Base frontend hours")
	cmd.Flags().Float64Var(&backend, "backend", 0, "Base backend hours")
	cmd.Flags().Float64Var(&qa, "qa", 0, "Base QA hours")
	cmd.Flags().StringToStringVar(&roleHours, "role-hours", nil, "Extra role hours, e.g. pm=4,ux=2")
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newCatalogRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove CODE",
		Short: "Remove a catalog module that no project uses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.Catalog.GetByCode(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := app.Catalog.Delete(cmd.Context(), m.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed module %s\n", m.Code)
			return nil
		},
	}
}

func sortRoleHours(rh []domain.RoleHours) {
	slices.SortFunc(rh, func(a, b domain.RoleHours) int { return cmp.Compare(a.Role, b.Role) })
}
