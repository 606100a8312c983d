package graders

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/plausibility-eval/scorer/internal/dataset"
	"github.com/plausibility-eval/scorer/internal/models"
	"github.com/plausibility-eval/scorer/internal/validation"
)

// Grader scores one task's submission against the reference.
type Grader interface {
	// Name returns the grader name used in results.
	Name() string

	// Kind returns the metric this grader computes.
	Kind() models.GraderKind

	// Mode returns the task this grader scores.
	Mode() models.Mode

	// Grade validates the submission and computes the metric. Any error
	// rejects the whole evaluation.
	Grade(ctx context.Context, gradingContext *Context) (*models.GraderResults, error)
}

// Context carries the inputs of one task.
type Context struct {
	Submission *dataset.Table
	Truth      *dataset.Table
	Columns    validation.Columns
}

// Create builds the grader for kind, decoding params (the grader's section
// of the config file) onto its defaults.
func Create(kind models.GraderKind, name string, params map[string]any, logger *slog.Logger) (Grader, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	switch kind {
	case models.GraderKindAccuracy:
		args := AccuracyGraderArgs{
			Name:            name,
			Policy:          validation.DefaultPolicy(),
			CheckTruth:      true,
			ConfidenceLevel: 0.95,
			Seed:            -1,
		}
		if err := decode(params, &args); err != nil {
			return nil, fmt.Errorf("grader '%s': %w", name, err)
		}
		return NewAccuracyGrader(args, logger)
	case models.GraderKindSpearman:
		args := SpearmanGraderArgs{
			Name:   name,
			Policy: validation.DefaultPolicy(),
		}
		if err := decode(params, &args); err != nil {
			return nil, fmt.Errorf("grader '%s': %w", name, err)
		}
		return NewSpearmanGrader(args, logger)
	default:
		return nil, fmt.Errorf("'%s' is not a valid grader type", kind)
	}
}

// ForMode returns the grader kind that scores mode.
func ForMode(mode models.Mode) models.GraderKind {
	if mode == models.ModeRanking {
		return models.GraderKindSpearman
	}
	return models.GraderKindAccuracy
}

func decode(params map[string]any, out any) error {
	if len(params) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(params)
}

// measureTime is a helper to measure grading duration
func measureTime(fn func() (*models.GraderResults, error)) (*models.GraderResults, error) {
	start := time.Now()
	result, err := fn()

	if result != nil {
		result.DurationMs = time.Since(start).Milliseconds()
	}

	return result, err
}

// loadTask projects the submission and truth tables onto mode's columns.
// The submission header must match exactly; truth may carry extra columns.
func loadTask(gradingContext *Context, mode models.Mode) (submission, truth []models.SubmissionRecord, err error) {
	if gradingContext == nil || gradingContext.Submission == nil || gradingContext.Truth == nil {
		return nil, nil, fmt.Errorf("%s grader needs both a submission and a reference table", mode)
	}
	cols := gradingContext.Columns
	valueCol := cols.Value(mode)

	sub := gradingContext.Submission
	if err := validation.CheckColumns(sub.Columns, mode, cols, sub.Source); err != nil {
		return nil, nil, err
	}
	if submission, err = sub.Records(cols.ID, valueCol); err != nil {
		return nil, nil, err
	}
	if err := validation.CheckUnique(submission, sub.Source); err != nil {
		return nil, nil, err
	}
	if truth, err = gradingContext.Truth.Records(cols.ID, valueCol); err != nil {
		return nil, nil, err
	}
	return submission, truth, nil
}
