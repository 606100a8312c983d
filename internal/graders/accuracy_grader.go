package graders

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/plausibility-eval/scorer/internal/models"
	"github.com/plausibility-eval/scorer/internal/scoring"
	"github.com/plausibility-eval/scorer/internal/statistics"
	"github.com/plausibility-eval/scorer/internal/validation"
)

// AccuracyGraderArgs holds the arguments for creating an accuracy grader.
type AccuracyGraderArgs struct {
	// Name is the identifier for this grader, used in results and error messages.
	Name string

	// Policy supplies the valid label set and case folding.
	validation.Policy `mapstructure:",squash"`

	// CheckTruth runs the label check on the reference file as well.
	CheckTruth bool `mapstructure:"check_truth"`

	// ConfidenceLevel, BootstrapIterations and Seed configure the bootstrap
	// interval reported next to the score. A negative seed is non-deterministic.
	ConfidenceLevel     float64 `mapstructure:"confidence_level"`
	BootstrapIterations int     `mapstructure:"bootstrap_iterations"`
	Seed                int64   `mapstructure:"seed"`
}

// accuracyGrader scores classification submissions by exact label match.
type accuracyGrader struct {
	args    AccuracyGraderArgs
	checker *validation.Checker
	logger  *slog.Logger
}

// NewAccuracyGrader creates an [accuracyGrader].
func NewAccuracyGrader(args AccuracyGraderArgs, logger *slog.Logger) (*accuracyGrader, error) {
	if len(args.Labels) == 0 {
		return nil, fmt.Errorf("accuracy grader '%s' needs at least one label", args.Name)
	}
	if args.ConfidenceLevel <= 0 || args.ConfidenceLevel >= 1 {
		return nil, fmt.Errorf("accuracy grader '%s': confidence level %g must be in (0, 1)", args.Name, args.ConfidenceLevel)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("grader", args.Name)

	return &accuracyGrader{
		args:    args,
		checker: validation.NewChecker(args.Policy, logger),
		logger:  logger,
	}, nil
}

func (ag *accuracyGrader) Name() string            { return ag.args.Name }
func (ag *accuracyGrader) Kind() models.GraderKind { return models.GraderKindAccuracy }
func (ag *accuracyGrader) Mode() models.Mode       { return models.ModeClassification }

func (ag *accuracyGrader) Grade(ctx context.Context, gradingContext *Context) (*models.GraderResults, error) {
	return measureTime(func() (*models.GraderResults, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		submission, truth, err := loadTask(gradingContext, models.ModeClassification)
		if err != nil {
			return nil, err
		}

		if err := ag.checker.WithSource(gradingContext.Submission.Source).CheckFormat(submission, models.ModeClassification); err != nil {
			return nil, err
		}
		if ag.args.CheckTruth {
			if err := ag.checker.ForTruth().WithSource(gradingContext.Truth.Source).CheckFormat(truth, models.ModeClassification); err != nil {
				return nil, err
			}
		}

		truthLabels, err := scoring.IndexLabels(ag.canonical(truth))
		if err != nil {
			return nil, err
		}
		res, err := scoring.ScoreAccuracy(models.LabelMap(ag.canonical(submission)), truthLabels)
		if err != nil {
			return nil, err
		}
		ag.logger.Info("Accuracy computed", "correct", res.Correct, "total", res.Total, "score", res.Score)

		ci := statistics.ProportionCI(res.Hits, ag.args.ConfidenceLevel, ag.args.BootstrapIterations, ag.args.Seed)

		return &models.GraderResults{
			Name:     ag.args.Name,
			Type:     models.GraderKindAccuracy,
			Mode:     models.ModeClassification.String(),
			Score:    res.Score,
			Pairs:    res.Total,
			Feedback: fmt.Sprintf("%d of %d labels correct", res.Correct, res.Total),
			Details: map[string]any{
				"correct": res.Correct,
				"total":   res.Total,
				"labels":  ag.args.Labels,
			},
			BootstrapCI: &ci,
		}, nil
	})
}

func (ag *accuracyGrader) canonical(records []models.SubmissionRecord) []models.SubmissionRecord {
	if !ag.args.FoldCase {
		return records
	}
	out := make([]models.SubmissionRecord, len(records))
	for i, r := range records {
		r.Value = ag.args.CanonicalLabel(r.Value)
		out[i] = r
	}
	return out
}
