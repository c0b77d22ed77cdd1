package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/estimator/internal/cli/formatter"
)

func newSummaryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "summary PROJECT",
		Short: "Show hours, cost and scenario projections of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			s, err := app.Summary.Summary(ctx, projectID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSummary(s.Project, s.Summary))
			return nil
		},
	}
}

func newExportCmd(app *App) *cobra.Command {
	var (
		out   string
		table bool
	)

	cmd := &cobra.Command{
		Use:   "export PROJECT",
		Short: "Export the cost breakdown of a project as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if table {
				b, err := app.Export.Breakdown(ctx, projectID)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBreakdown(b.Work, b.Infra))
				return nil
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, ferr := os.Create(out)
				if ferr != nil {
					return fmt.Errorf("creating %s: %w", out, ferr)
				}
				defer func() {
					if cerr := f.Close(); err == nil {
						err = cerr
					}
				}()
				w = f
			}
			if err := app.Export.WriteCSV(ctx, projectID, w); err != nil {
				return err
			}
			if w != cmd.OutOrStdout() {
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Write CSV to this file instead of stdout")
	cmd.Flags().BoolVar(&table, "table", false, "Print the breakdown as a table")
	return cmd
}
