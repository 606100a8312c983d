package scoring

import (
	"sort"

	"github.com/plausibility-eval/scorer/internal/models"
)

// AccuracyResult is the outcome of comparing classification labels.
type AccuracyResult struct {
	Score   float64
	Correct int
	Total   int
	// Hits holds one entry per prediction, ordered by identifier.
	Hits []bool
}

// ComputeAccuracy returns the fraction of predicted labels that equal the
// truth label for the same identifier.
func ComputeAccuracy(predictions, truth map[string]string) (float64, error) {
	res, err := ScoreAccuracy(predictions, truth)
	if err != nil {
		return 0, err
	}
	return res.Score, nil
}

// ScoreAccuracy is ComputeAccuracy with per-instance detail.
// Both maps must have the same size even when every predicted key is
// present in truth, and every predicted key must be present.
func ScoreAccuracy(predictions, truth map[string]string) (*AccuracyResult, error) {
	if len(predictions) != len(truth) {
		return nil, &models.CountMismatchError{Predictions: len(predictions), Truth: len(truth)}
	}
	if len(predictions) == 0 {
		return nil, &models.EmptyInputError{What: "accuracy"}
	}

	ids := make([]string, 0, len(predictions))
	for id := range predictions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	res := &AccuracyResult{Total: len(ids), Hits: make([]bool, len(ids))}
	for i, id := range ids {
		want, ok := truth[id]
		if !ok {
			return nil, &models.MissingReferenceError{ID: id}
		}
		if predictions[id] == want {
			res.Hits[i] = true
			res.Correct++
		}
	}
	res.Score = float64(res.Correct) / float64(res.Total)
	return res, nil
}

// IndexLabels builds the identifier to label map of a reference file,
// rejecting identifiers that occur more than once.
func IndexLabels(truth []models.SubmissionRecord) (map[string]string, error) {
	counts := make(map[string]int, len(truth))
	for _, r := range truth {
		counts[r.ID]++
	}
	for _, r := range truth {
		if n := counts[r.ID]; n > 1 {
			return nil, &models.DuplicateReferenceError{ID: r.ID, Count: n}
		}
	}
	return models.LabelMap(truth), nil
}
