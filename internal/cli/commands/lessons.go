package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/primer/tour"
)

// NewLessonsCommand creates the lessons command.
func NewLessonsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lessons",
		Short: "List the walkthrough lessons",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"#", "Name", "Title"})
			for i, l := range tour.Lessons() {
				t.AppendRow(table.Row{i + 1, l.Name, l.Title})
			}
			t.Render()
		},
	}
}
