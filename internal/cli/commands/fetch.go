package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/primer/datasets"
)

// DefaultFetchDest is where fetch-data writes the study file.
var DefaultFetchDest = filepath.Join("data", "diabetes.tab.txt")

// NewFetchDataCommand creates the fetch-data command.
func NewFetchDataCommand() *cobra.Command {
	var (
		url     string
		dest    string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "fetch-data",
		Short: "Download the published diabetes study file",
		Long: `Download the diabetes file of Efron, Hastie, Johnstone and Tibshirani
(2004), check that it parses and save it. Point data_file (or --data-file)
at the saved file to run the walkthrough on the published values.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := datasets.NewFetcher(url).WithTimeout(timeout).Fetch(cmd.Context(), dest)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(out, "wrote %s (%d rows)\n", b.Source, b.Target.Len()); err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "use it with: primer run --data-file %s\n", b.Source)
			return err
		},
	}

	cmd.Flags().StringVar(&url, "url", datasets.DiabetesURL, "Where to download the file from")
	cmd.Flags().StringVar(&dest, "dest", DefaultFetchDest, "Where to save the file")
	cmd.Flags().DurationVar(&timeout, "timeout", datasets.DefaultFetchTimeout, "Download timeout")
	return cmd
}
