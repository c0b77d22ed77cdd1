package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/estimator/internal/cli/formatter"
	"github.com/alexanderramin/estimator/internal/domain"
)

func newInfraCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "infra",
		Short: "Manage infrastructure items and project infrastructure lines",
	}
	cmd.AddCommand(
		newInfraItemCmd(app),
		newInfraAddCmd(app),
		newInfraListCmd(app),
		newInfraSetQtyCmd(app),
		newInfraRemoveCmd(app),
	)
	return cmd
}

func newInfraItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage the infrastructure catalog",
	}

	var (
		code, name, description string
		unitCost                float64
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Add an infrastructure item",
		RunE: func(cmd *cobra.Command, args []string) error {
			item := &domain.InfrastructureItem{Code: code, Name: name, Description: description, UnitCost: unitCost}
			if err := app.Infrastructure.CreateItem(cmd.Context(), item); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) at %s\n", item.Name, item.Code, formatter.FormatMoney(item.UnitCost))
			return nil
		},
	}
	add.Flags().StringVar(&code, "code", "", "Unique item code")
	add.Flags().StringVar(&name, "name", "", "Display name")
	add.Flags().StringVar(&description, "description", "", "Description")
	add.Flags().Float64Var(&unitCost, "unit-cost", 0, "Cost of one unit")
	_ = add.MarkFlagRequired("code")
	_ = add.MarkFlagRequired("name")

	list := &cobra.Command{
		Use:   "list",
		Short: "List infrastructure items",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := app.Infrastructure.ListItems(cmd.Context())
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No infrastructure items.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatInfraItems(items))
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove ITEM",
		Short: "Remove an infrastructure item from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveInfraItemID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Infrastructure.DeleteItem(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(add, list, remove)
	return cmd
}

func newInfraAddCmd(app *App) *cobra.Command {
	var qty int

	cmd := &cobra.Command{
		Use:   "add PROJECT ITEM",
		Short: "Add an infrastructure line to a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			itemID, err := resolveInfraItemID(ctx, app, args[1])
			if err != nil {
				return err
			}
			line, err := app.Infrastructure.AddLine(ctx, projectID, itemID, qty)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d x %s (%s)\n", line.Quantity, line.Item.Name, formatter.TruncID(line.ID))
			return nil
		},
	}

	cmd.Flags().IntVar(&qty, "qty", 1, "Quantity")
	return cmd
}

func newInfraListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list PROJECT",
		Short: "List a project's infrastructure lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			lines, err := app.Infrastructure.ListLines(ctx, projectID)
			if err != nil {
				return err
			}
			if len(lines) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No infrastructure lines.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatInfraLines(lines))
			return nil
		},
	}
}

// resolveInfraLineID matches a line id prefix or the code of the line's item.
func resolveInfraLineID(ctx context.Context, app *App, projectArg, input string) (string, error) {
	projectID, err := resolveProjectID(ctx, app, projectArg)
	if err != nil {
		return "", err
	}
	lines, err := app.Infrastructure.ListLines(ctx, projectID)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if l.Item != nil && l.Item.Code == input {
			return l.ID, nil
		}
		ids = append(ids, l.ID)
	}
	return resolveID("infrastructure line", input, ids)
}

func newInfraSetQtyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-qty PROJECT LINE QTY",
		Short: "Change the quantity of an infrastructure line",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid quantity %q: %w", args[2], err)
			}
			lineID, err := resolveInfraLineID(cmd.Context(), app, args[0], args[1])
			if err != nil {
				return err
			}
			if err := app.Infrastructure.SetQuantity(cmd.Context(), lineID, qty); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Quantity set to %d\n", qty)
			return nil
		},
	}
}

func newInfraRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove PROJECT LINE",
		Short: "Remove an infrastructure line from a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lineID, err := resolveInfraLineID(cmd.Context(), app, args[0], args[1])
			if err != nil {
				return err
			}
			if err := app.Infrastructure.RemoveLine(cmd.Context(), lineID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Removed infrastructure line")
			return nil
		},
	}
}
