package graders

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/plausibility-eval/scorer/internal/models"
	"github.com/plausibility-eval/scorer/internal/scoring"
	"github.com/plausibility-eval/scorer/internal/validation"
)

// SpearmanGraderArgs holds the arguments for creating a ranking grader.
type SpearmanGraderArgs struct {
	// Name is the identifier for this grader, used in results and error messages.
	Name string

	// Policy supplies the rating range and whether it is enforced for
	// submissions and for the reference.
	validation.Policy `mapstructure:",squash"`
}

// spearmanGrader scores ranking submissions with Spearman's rank correlation.
type spearmanGrader struct {
	args   SpearmanGraderArgs
	scorer *scoring.RankingScorer
	logger *slog.Logger
}

// NewSpearmanGrader creates a [spearmanGrader].
func NewSpearmanGrader(args SpearmanGraderArgs, logger *slog.Logger) (*spearmanGrader, error) {
	if args.MinRating > args.MaxRating {
		return nil, fmt.Errorf("ranking grader '%s': min_rating %g is above max_rating %g", args.Name, args.MinRating, args.MaxRating)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("grader", args.Name)

	return &spearmanGrader{
		args:   args,
		scorer: &scoring.RankingScorer{Checker: validation.NewChecker(args.Policy, logger)},
		logger: logger,
	}, nil
}

func (sg *spearmanGrader) Name() string            { return sg.args.Name }
func (sg *spearmanGrader) Kind() models.GraderKind { return models.GraderKindSpearman }
func (sg *spearmanGrader) Mode() models.Mode       { return models.ModeRanking }

func (sg *spearmanGrader) Grade(ctx context.Context, gradingContext *Context) (*models.GraderResults, error) {
	return measureTime(func() (*models.GraderResults, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		submission, truth, err := loadTask(gradingContext, models.ModeRanking)
		if err != nil {
			return nil, err
		}

		scorer := *sg.scorer
		scorer.SubmissionSource = gradingContext.Submission.Source
		scorer.TruthSource = gradingContext.Truth.Source

		res, err := scorer.Score(submission, truth)
		if err != nil {
			return nil, err
		}
		sg.logger.Info("Rank correlation computed", "pairs", len(res.Gold), "spearman", res.Score)

		return &models.GraderResults{
			Name:     sg.args.Name,
			Type:     models.GraderKindSpearman,
			Mode:     models.ModeRanking.String(),
			Score:    res.Score,
			Pairs:    len(res.Gold),
			Feedback: fmt.Sprintf("Spearman's rho over %d pairs", len(res.Gold)),
			Details: map[string]any{
				"min_rating":          sg.args.MinRating,
				"max_rating":          sg.args.MaxRating,
				"enforce_range":       sg.args.EnforceRange,
				"enforce_range_truth": sg.args.EnforceTruthRange,
			},
		}, nil
	})
}
