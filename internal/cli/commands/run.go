package commands

import (
	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/primer/tour"
)

// BasicsLessons are the lessons that need no dataset.
var BasicsLessons = []string{
	"variables", "arithmetic", "comments", "conversion",
	"lists", "loop", "conditional", "function",
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run [lesson...]",
		Short: "Run the walkthrough",
		Long: `Run every lesson of the walkthrough in order, or only the named lessons.

Examples:
  primer run
  primer run lists loop
  primer run --plot-format svg --output-dir figures plots`,
		ValidArgs: tour.Names(),
		Args:      cobra.OnlyValidArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLessons(cmd, args...)
		},
	}
}

// NewBasicsCommand creates the basics command.
func NewBasicsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "basics",
		Short: "Run the language warm-up lessons",
		Long:  `Run the lessons on variables, arithmetic, lists and control flow.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLessons(cmd, BasicsLessons...)
		},
	}
}

// NewPlotCommand creates the plot command.
func NewPlotCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "plot",
		Short: "Write the bmi histogram and age/bmi scatter plots",
		Long: `Write hist_bmi, scatter_age_bmi and scatter_age_bmi_fit into the
output directory in the configured plot format.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLessons(cmd, "plots")
		},
	}
}

func runLessons(cmd *cobra.Command, names ...string) error {
	env := EnvFrom(cmd.Context())
	s := tour.NewSession(cmd.OutOrStdout(), env.Config, env.Logger)
	return tour.Run(cmd.Context(), s, names...)
}
