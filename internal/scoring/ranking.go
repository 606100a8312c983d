package scoring

import (
	"errors"

	"github.com/plausibility-eval/scorer/internal/models"
	"github.com/plausibility-eval/scorer/internal/statistics"
	"github.com/plausibility-eval/scorer/internal/validation"
)

// RankingResult is the outcome of correlating predicted and gold ratings.
type RankingResult struct {
	Score float64
	// Gold and Predicted are index-aligned in prediction order.
	Gold      []float64
	Predicted []float64
}

// RankingScorer checks both inputs and computes Spearman's rank correlation.
type RankingScorer struct {
	Checker *validation.Checker
	// SubmissionSource and TruthSource name the inputs in format errors.
	SubmissionSource string
	TruthSource      string
}

// ScoreRanking returns Spearman's rank correlation between predicted ratings
// and the reference ratings of the same identifiers.
func ScoreRanking(checker *validation.Checker, predictions, truth []models.SubmissionRecord) (float64, error) {
	res, err := (&RankingScorer{Checker: checker}).Score(predictions, truth)
	if err != nil {
		return 0, err
	}
	return res.Score, nil
}

// Score runs the format check on predictions and truth, aligns them by
// identifier and correlates the result.
func (s *RankingScorer) Score(predictions, truth []models.SubmissionRecord) (*RankingResult, error) {
	checker := s.Checker
	if checker == nil {
		checker = validation.NewChecker(validation.DefaultPolicy(), nil)
	}

	submissionSource := orDefault(s.SubmissionSource, "submission")
	if err := checker.WithSource(submissionSource).CheckFormat(predictions, models.ModeRanking); err != nil {
		return nil, err
	}
	// reference duplicates surface later as DuplicateReferenceError
	if err := validation.CheckUnique(predictions, submissionSource); err != nil {
		return nil, err
	}
	if err := checker.ForTruth().WithSource(orDefault(s.TruthSource, "reference")).CheckFormat(truth, models.ModeRanking); err != nil {
		return nil, err
	}

	gold, predicted, err := AlignRatings(predictions, truth)
	if err != nil {
		return nil, err
	}

	rho, err := statistics.Spearman(gold, predicted)
	if err != nil {
		return nil, correlationError(err)
	}
	return &RankingResult{Score: rho, Gold: gold, Predicted: predicted}, nil
}

// AlignRatings pairs every prediction with the single reference record of
// the same identifier. Ratings must already have passed the format check.
func AlignRatings(predictions, truth []models.SubmissionRecord) (gold, predicted []float64, err error) {
	index := make(map[string][]int, len(truth))
	for i, r := range truth {
		index[r.ID] = append(index[r.ID], i)
	}

	gold = make([]float64, 0, len(predictions))
	predicted = make([]float64, 0, len(predictions))
	for _, p := range predictions {
		matches := index[p.ID]
		switch len(matches) {
		case 0:
			return nil, nil, &models.MissingReferenceError{ID: p.ID}
		case 1:
		default:
			return nil, nil, &models.DuplicateReferenceError{ID: p.ID, Count: len(matches)}
		}

		g, err := validation.ParseRating(truth[matches[0]].Value)
		if err != nil {
			return nil, nil, &models.FormatError{Line: truth[matches[0]].Line, Message: err.Error()}
		}
		v, err := validation.ParseRating(p.Value)
		if err != nil {
			return nil, nil, &models.FormatError{Line: p.Line, Message: err.Error()}
		}
		gold = append(gold, g)
		predicted = append(predicted, v)
	}
	return gold, predicted, nil
}

func correlationError(err error) error {
	switch {
	case errors.Is(err, statistics.ErrNoPairs):
		return &models.EmptyInputError{What: "rank correlation"}
	case errors.Is(err, statistics.ErrSinglePair), errors.Is(err, statistics.ErrZeroVariance):
		return &models.InsufficientDataError{Message: err.Error()}
	default:
		return err
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
