package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/primer/tour"
)

// NewDescribeCommand creates the describe command.
func NewDescribeCommand() *cobra.Command {
	var markdown bool

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print summary statistics of the diabetes features",
		Long: `Print count, mean, std, min, quartiles and max of every feature,
the column overview and the first rows.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env := EnvFrom(cmd.Context())
			s := tour.NewSession(cmd.OutOrStdout(), env.Config, env.Logger)
			out := cmd.OutOrStdout()

			f, err := s.LoadFrame()
			if err != nil {
				return err
			}
			if err := f.Describe().Render(out); err != nil {
				return err
			}
			if err := f.Info(out); err != nil {
				return err
			}

			head := f.Head(env.Config.HeadRows)
			if markdown {
				_, _ = fmt.Fprintln(out)
				return head.Markdown(out)
			}
			return head.Render(out)
		},
	}

	cmd.Flags().BoolVar(&markdown, "markdown", false, "Print the first rows as a markdown table")
	return cmd
}
