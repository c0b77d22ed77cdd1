package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/estimator/internal/cli/formatter"
)

func newDecomposeCmd(app *App) *cobra.Command {
	var tree bool

	cmd := &cobra.Command{
		Use:   "decompose PROMPT...",
		Short: "Break a project description into tasks and module suggestions",
		Long: "Break a project description into tasks and module suggestions. The " +
			"language model is used when configured; otherwise the catalog keyword " +
			"heuristics answer.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := strings.Join(args, " ")
			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Decomposing")
			}

			if tree {
				res, err := app.Decompose.Mindmap(cmd.Context(), prompt)
				stop()
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDecomposition(res.Decomposition))
				fmt.Fprintln(cmd.OutOrStdout())
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGraphTree(res.Graph))
				return nil
			}

			d, err := app.Decompose.Parse(cmd.Context(), prompt)
			stop()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDecomposition(d))
			return nil
		},
	}

	cmd.Flags().BoolVar(&tree, "tree", false, "Also show the generated mindmap graph")
	return cmd
}
