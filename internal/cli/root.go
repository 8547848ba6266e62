// Package cli provides the command-line interface for primer.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/primer/charts"
	"github.com/YuminosukeSato/primer/core/parallel"
	"github.com/YuminosukeSato/primer/internal/cli/commands"
	"github.com/YuminosukeSato/primer/internal/config"
	"github.com/YuminosukeSato/primer/pkg/log"
)

// Version information (set at build time).
var Version = "0.1.0"

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "primer",
		Short: "primer - a first walk through data analysis in Go",
		Long: `primer walks through variables, arithmetic, lists and control flow,
then loads the diabetes toy dataset, describes it, fits ordinary least
squares twice and draws a few plots.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			logger, err := log.SetupLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if err := parallel.SetThreshold(cfg.ParallelThreshold); err != nil {
				return err
			}
			if cfg.ConfigFile != "" {
				logger.Debug("using config file", "config.file", cfg.ConfigFile)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(commands.WithEnv(ctx, &commands.Env{Config: cfg, Logger: logger}))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	d := config.Default()
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./primer.yaml)")
	flags.String("log-level", d.LogLevel, "Log level (debug|info|warn|error)")
	flags.String("log-format", d.LogFormat, "Log format (console|json)")
	flags.String("output-dir", d.OutputDir, "Directory charts are written to")
	flags.String("plot-format", d.PlotFormat, "Chart format (png|svg|pdf)")
	flags.String("data-file", d.DataFile, "Diabetes data file in the tab-separated study layout (default: bundled)")
	flags.Bool("scaled", d.Scaled, "Center and scale features to unit sum of squares")
	flags.Int("head-rows", d.HeadRows, "Rows shown by head")
	flags.Int("bins", d.Bins, "Histogram bins")
	flags.Int("parallel-threshold", d.ParallelThreshold, "Element count above which loops run on several goroutines (0: always)")

	_ = rootCmd.RegisterFlagCompletionFunc("plot-format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return charts.Formats, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("log-format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{log.FormatConsole, log.FormatJSON}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewRunCommand())
	rootCmd.AddCommand(commands.NewLessonsCommand())
	rootCmd.AddCommand(commands.NewDescribeCommand())
	rootCmd.AddCommand(commands.NewFitCommand())
	rootCmd.AddCommand(commands.NewPlotCommand())
	rootCmd.AddCommand(commands.NewBasicsCommand())
	rootCmd.AddCommand(commands.NewFetchDataCommand())

	return rootCmd
}

// Execute runs the root command with ctx, printing any error to stderr.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// Main is the entry point used by cmd/primer.
func Main(ctx context.Context) int {
	if err := Execute(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		return 1
	}
	return 0
}
