package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/primer/linear"
	"github.com/YuminosukeSato/primer/pkg/errors"
	"github.com/YuminosukeSato/primer/pkg/log"
	"github.com/YuminosukeSato/primer/stats"
	"github.com/YuminosukeSato/primer/tour"
)

// Fit methods.
const (
	MethodML    = "ml"
	MethodStats = "stats"
	MethodBoth  = "both"
)

// NewFitCommand creates the fit command.
func NewFitCommand() *cobra.Command {
	var (
		method string
		export string
	)

	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Fit ordinary least squares to the diabetes data",
		Long: `Fit the target on the ten features with an intercept.

--method ml prints the coefficient table, --method stats prints the
regression summary, --method both prints both. --export writes the
ml-style model as JSON in the scikit-learn export layout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch method {
			case MethodML, MethodStats, MethodBoth:
			default:
				return errors.NewValidationError("method", "must be ml, stats or both", method)
			}
			if export != "" && method == MethodStats {
				return errors.NewValidationError("export", "requires --method ml or both", export)
			}

			env := EnvFrom(cmd.Context())
			s := tour.NewSession(cmd.OutOrStdout(), env.Config, env.Logger)
			out := cmd.OutOrStdout()

			b, err := s.LoadDataset()
			if err != nil {
				return err
			}

			if method == MethodML || method == MethodBoth {
				model := linear.NewLinearRegression(linear.WithFeatureNames(b.FeatureNames))
				if err := model.Fit(b.Data, b.Target); err != nil {
					return err
				}
				ev, err := model.Evaluate(b.Data, b.Target)
				if err != nil {
					return err
				}

				t := table.NewWriter()
				t.SetOutputMirror(out)
				t.SetStyle(table.StyleLight)
				t.AppendHeader(table.Row{"feature", "coefficient"})
				for i, name := range b.FeatureNames {
					t.AppendRow(table.Row{name, fmt.Sprintf("%.4f", model.Coef.AtVec(i))})
				}
				t.AppendFooter(table.Row{"intercept", fmt.Sprintf("%.4f", model.Intercept)})
				t.Render()
				_, _ = fmt.Fprintf(out, "R-squared: %.4f\n", ev.R2)
				_, _ = fmt.Fprintf(out, "MSE: %.4f  RMSE: %.4f  MAE: %.4f\n", ev.MSE, ev.RMSE, ev.MAE)

				if export != "" {
					if err := model.ExportFile(export); err != nil {
						return err
					}
					env.Logger.Info("model exported", log.OutputPathKey, export)
					_, _ = fmt.Fprintf(out, "wrote %s\n", export)
				}
			}

			if method == MethodStats || method == MethodBoth {
				ols, err := stats.NewOLS(b.Target, stats.AddConstant(b.Data),
					stats.WithEndogName("target"),
					stats.WithExogNames(b.FeatureNames),
				)
				if err != nil {
					return err
				}
				res, err := ols.Fit()
				if err != nil {
					return err
				}
				return res.Summary(out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&method, "method", MethodBoth, "Fitting style (ml|stats|both)")
	cmd.Flags().StringVar(&export, "export", "", "Write the fitted ml model as JSON to this file")
	_ = cmd.RegisterFlagCompletionFunc("method", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{MethodML, MethodStats, MethodBoth}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}
