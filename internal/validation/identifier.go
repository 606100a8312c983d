package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/plausibility-eval/scorer/internal/models"
)

// Filler ids reference one of five candidate fillers per sentence.
const (
	MinFillerID = 1
	MaxFillerID = 5
)

// ValidateIdentifier parses an identifier of the form "<sentence id>_<filler id>",
// e.g. "42_1" for filler 1 of sentence 42.
func ValidateIdentifier(id string) (models.Identifier, error) {
	sentencePart, fillerPart, found := strings.Cut(id, "_")
	if !found {
		return models.Identifier{}, &models.FormatError{
			Message: fmt.Sprintf("id %q does not contain an underscore", id),
		}
	}

	sentenceID, err := strconv.Atoi(sentencePart)
	if err != nil || sentenceID < 0 {
		return models.Identifier{}, &models.FormatError{
			Message: fmt.Sprintf("the sentence id %q in id %q is not a valid non-negative integer", sentencePart, id),
		}
	}

	fillerID, err := strconv.Atoi(fillerPart)
	if err != nil {
		return models.Identifier{}, &models.FormatError{
			Message: fmt.Sprintf("the filler id %q in id %q is not a valid integer", fillerPart, id),
		}
	}
	if fillerID < MinFillerID || fillerID > MaxFillerID {
		return models.Identifier{}, &models.FormatError{
			Message: fmt.Sprintf("the filler id %q in id %q is not in the range of %d to %d", fillerPart, id, MinFillerID, MaxFillerID),
		}
	}

	return models.Identifier{SentenceID: sentenceID, FillerID: fillerID}, nil
}

// ValidateIdentifiers stops at the first invalid identifier. source is
// attached to the returned error.
func ValidateIdentifiers(records []models.SubmissionRecord, source string) error {
	for _, r := range records {
		if _, err := ValidateIdentifier(r.ID); err != nil {
			var fe *models.FormatError
			if errors.As(err, &fe) {
				fe.Source = source
				fe.Line = r.Line
			}
			return err
		}
	}
	return nil
}

// CheckUnique rejects an input that lists the same identifier twice.
func CheckUnique(records []models.SubmissionRecord, source string) error {
	seen := make(map[string]int, len(records))
	for _, r := range records {
		if first, ok := seen[r.ID]; ok {
			return &models.FormatError{
				Source:  source,
				Line:    r.Line,
				Message: fmt.Sprintf("id %q is listed more than once (first on line %d)", r.ID, first),
			}
		}
		seen[r.ID] = r.Line
	}
	return nil
}
