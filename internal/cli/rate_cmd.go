package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/estimator/internal/cli/formatter"
	"github.com/alexanderramin/estimator/internal/domain"
)

func newRateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rate",
		Short: "Manage hourly rates per role and level",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "set ROLE LEVEL AMOUNT",
			Short: "Set the hourly rate of a role at a level",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				amount, err := strconv.ParseFloat(args[2], 64)
				if err != nil {
					return fmt.Errorf("invalid amount %q: %w", args[2], err)
				}
				r, err := app.Rates.Set(cmd.Context(), domain.Role(args[0]), domain.Level(args[1]), amount)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s/%s = %s per hour\n", r.Role, r.Level, formatter.FormatMoney(r.HourlyRate))
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List hourly rates",
			RunE: func(cmd *cobra.Command, args []string) error {
				rates, err := app.Rates.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(rates) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No rates defined.")
					return nil
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRateList(rates))
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove ROLE LEVEL",
			Short: "Remove a rate",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.Rates.Delete(cmd.Context(), domain.Role(args[0]), domain.Level(args[1])); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed rate %s/%s\n", args[0], args[1])
				return nil
			},
		},
	)
	return cmd
}

func newAssignCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Choose the level staffing each role of a project module",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "set PROJECT MODULE ROLE LEVEL",
			Short: "Staff a role of a module at a level",
			Args:  cobra.ExactArgs(4),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				pm, err := loadProjectModule(ctx, app, args[0], args[1])
				if err != nil {
					return err
				}
				a, err := app.Assignments.Assign(ctx, pm.ID, domain.Role(args[2]), domain.Level(args[3]))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s at %s\n", pm.DisplayName(), a.Role, a.Level)
				return nil
			},
		},
		&cobra.Command{
			Use:   "list PROJECT",
			Short: "List assignments of a project",
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
				assignments, err := app.Assignments.ListByProject(ctx, projectID)
				if err != nil {
					return err
				}
				if len(assignments) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No assignments. Unassigned roles use the default levels.")
					return nil
				}
				names := make(map[string]string, len(pms))
				for i := range pms {
					names[pms[i].ID] = pms[i].DisplayName()
				}
				rows := make([][]string, 0, len(assignments))
				for _, a := range assignments {
					rows = append(rows, []string{names[a.ProjectModuleID], string(a.Role), string(a.Level)})
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"MODULE", "ROLE", "LEVEL"}, rows))
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove PROJECT MODULE ROLE",
			Short: "Drop a role assignment",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				pm, err := loadProjectModule(ctx, app, args[0], args[1])
				if err != nil {
					return err
				}
				if err := app.Assignments.Unassign(ctx, pm.ID, domain.Role(args[2])); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Unassigned %s from %s\n", args[2], pm.DisplayName())
				return nil
			},
		},
	)
	return cmd
}
