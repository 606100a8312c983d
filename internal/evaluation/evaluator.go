// Package evaluation drives one scoring pass: it finds the submission and
// reference files, runs the grader for each submitted task and writes the
// scores file.
package evaluation

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/plausibility-eval/scorer/internal/dataset"
	"github.com/plausibility-eval/scorer/internal/graders"
	"github.com/plausibility-eval/scorer/internal/locator"
	"github.com/plausibility-eval/scorer/internal/models"
	"github.com/plausibility-eval/scorer/internal/projectconfig"
	"github.com/plausibility-eval/scorer/internal/reporting"
	"github.com/plausibility-eval/scorer/internal/utils"
)

// Evaluator scores the submissions found under an input directory.
type Evaluator struct {
	Config  *projectconfig.Config
	Locator locator.Locator
	Logger  *slog.Logger
}

// New returns an Evaluator that locates files with cfg's layout.
// A nil cfg uses the defaults.
func New(cfg *projectconfig.Config, logger *slog.Logger) *Evaluator {
	if cfg == nil {
		cfg = projectconfig.New()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Evaluator{
		Config:  cfg,
		Locator: locator.NewPathLocator(cfg.Layout.Layout),
		Logger:  logger,
	}
}

type submission struct {
	mode models.Mode
	path string
}

// Run scores inputDir and writes the scores file into outputDir. Nothing is
// written unless every submitted task was scored.
func (e *Evaluator) Run(ctx context.Context, inputDir, outputDir string) (*models.EvaluationOutcome, error) {
	start := time.Now()

	cfg := e.Config
	if cfg == nil {
		cfg = projectconfig.New()
	}
	logger := e.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	loc := e.Locator
	if loc == nil {
		loc = locator.NewPathLocator(cfg.Layout.Layout)
	}

	submissionDir := utils.ResolvePath(cfg.Layout.SubmissionDir, inputDir)
	truthDir := utils.ResolvePath(cfg.Layout.TruthDir, inputDir)
	for _, dir := range []string{submissionDir, truthDir} {
		if err := requireDir(dir); err != nil {
			return nil, err
		}
	}

	submissions, err := findSubmissions(loc, submissionDir)
	if err != nil {
		return nil, err
	}

	truthPath, err := loc.Truth(truthDir)
	if err != nil {
		return nil, err
	}
	truth, err := dataset.LoadTable(truthPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded reference", "path", truthPath, "rows", len(truth.Rows))

	outcome := &models.EvaluationOutcome{
		InputDir:   inputDir,
		OutputPath: filepath.Join(outputDir, cfg.Output.ScoresFile),
		Timestamp:  start.UTC(),
	}

	for _, sub := range submissions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := e.grade(ctx, cfg, logger, sub, truth)
		if err != nil {
			return nil, err
		}
		outcome.Tasks = append(outcome.Tasks, *result)

		switch sub.mode {
		case models.ModeClassification:
			outcome.Report.AccuracyScore = result.Score
			outcome.Report.Classified = true
		case models.ModeRanking:
			outcome.Report.RankingScore = result.Score
			outcome.Report.Ranked = true
		}
	}

	if err := reporting.WriteScores(outcome.OutputPath, outcome.Report, cfg.PrecisionOrDefault()); err != nil {
		return nil, err
	}
	outcome.DurationMs = time.Since(start).Milliseconds()

	logger.Info("Scores written",
		"path", outcome.OutputPath,
		"ranking_score", outcome.Report.RankingScore,
		"accuracy_score", outcome.Report.AccuracyScore)

	return outcome, nil
}

func (e *Evaluator) grade(ctx context.Context, cfg *projectconfig.Config, logger *slog.Logger, sub submission, truth *dataset.Table) (*models.GraderResults, error) {
	logger.Debug("Scoring submission", "mode", sub.mode.String(), "path", sub.path)

	table, err := dataset.LoadTable(sub.path)
	if err != nil {
		return nil, err
	}

	grader, err := graders.Create(graders.ForMode(sub.mode), sub.mode.String(), cfg.GraderParams(sub.mode), logger)
	if err != nil {
		return nil, fmt.Errorf("configuring %s grader: %w", sub.mode, err)
	}

	return grader.Grade(ctx, &graders.Context{
		Submission: table,
		Truth:      truth,
		Columns:    cfg.Columns,
	})
}

// findSubmissions returns the submitted tasks in report order. A participant
// may submit either task or both, but not neither.
func findSubmissions(loc locator.Locator, dir string) ([]submission, error) {
	var found []submission
	for _, mode := range models.Modes {
		path, ok, err := loc.Submission(dir, mode)
		if err != nil {
			return nil, err
		}
		if ok {
			found = append(found, submission{mode: mode, path: path})
		}
	}

	if len(found) == 0 {
		var searched []string
		for _, mode := range models.Modes {
			searched = append(searched, loc.Searched(mode)...)
		}
		return nil, &models.SubmissionLayoutError{Dir: dir, Searched: searched}
	}
	return found, nil
}

func requireDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &models.PathNotFoundError{Path: dir}
		}
		return fmt.Errorf("checking %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}
