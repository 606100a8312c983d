package main

import (
	"context"
	"fmt"
	"slices"

	"github.com/plausibility-eval/scorer/internal/evaluation"
	"github.com/plausibility-eval/scorer/internal/projectconfig"
	"github.com/plausibility-eval/scorer/internal/reporting"
	"github.com/plausibility-eval/scorer/internal/utils"
	"github.com/spf13/cobra"
)

var version = "dev"

type rootOptions struct {
	configPath string
	debug      bool
	logFormat  string
	summary    string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "evaluate <input_dir> <output_dir>",
		Short: "Score plausibility submissions against the reference data",
		Long: `evaluate scores a participant's submission for the plausibility
classification and ranking tasks.

<input_dir> must contain res/ with the submission files and ref/ with the
reference file. Scores are written to <output_dir>/scores.txt as

  ranking_score:X.XXX
  accuracy_score:X.XXX

A task that was not submitted scores 0. Any invalid submission aborts the
run without writing scores. Ranking needs at least two rated pairs, and a
ranking file (or the reference ratings it is matched to) where every rating
is the same is rejected, since the rank correlation is undefined.`,
		Args:         cobra.ExactArgs(2),
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(cmd, opts, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to a config file (default: .evaluate.yaml found from <input_dir> upwards)")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&opts.logFormat, "log-format", utils.LogFormatAuto, "Log format: auto, text or json")
	cmd.Flags().StringVar(&opts.summary, "summary", reporting.SummaryNone, "Print a result summary to stdout: none, text or json")

	return cmd
}

var summaryFormats = []string{reporting.SummaryNone, reporting.SummaryText, reporting.SummaryJSON}

func runEvaluate(cmd *cobra.Command, opts *rootOptions, inputDir, outputDir string) error {
	if !slices.Contains(summaryFormats, opts.summary) {
		return fmt.Errorf("invalid --summary %q: must be one of %v", opts.summary, summaryFormats)
	}

	logger, err := utils.NewLogger(cmd.ErrOrStderr(), opts.logFormat, opts.debug)
	if err != nil {
		return err
	}

	var cfg *projectconfig.Config
	if opts.configPath != "" {
		cfg, err = projectconfig.LoadFile(opts.configPath)
	} else {
		cfg, err = projectconfig.Load(inputDir)
	}
	if err != nil {
		return err
	}
	if cfg.Path != "" {
		logger.Debug("Loaded config", "path", cfg.Path)
	}

	outcome, err := evaluation.New(cfg, logger).Run(cmd.Context(), inputDir, outputDir)
	if err != nil {
		return err
	}

	return reporting.WriteSummary(cmd.OutOrStdout(), outcome, opts.summary)
}

func execute(ctx context.Context) error {
	rootCmd := newRootCommand()
	return rootCmd.ExecuteContext(ctx)
}
