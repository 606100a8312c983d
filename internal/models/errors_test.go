package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatError_Message(t *testing.T) {
	assert.Equal(t, "bad", (&FormatError{Message: "bad"}).Error())
	assert.Equal(t, "answer.tsv: bad", (&FormatError{Source: "answer.tsv", Message: "bad"}).Error())
	assert.Equal(t, "answer.tsv:3: bad", (&FormatError{Source: "answer.tsv", Line: 3, Message: "bad"}).Error())
}

func TestIsSubmissionError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"format", &FormatError{Message: "x"}, true},
		{"wrapped missing reference", fmt.Errorf("ranking: %w", &MissingReferenceError{ID: "1_1"}), true},
		{"duplicate reference", &DuplicateReferenceError{ID: "1_1", Count: 2}, true},
		{"count mismatch", &CountMismatchError{Predictions: 1, Truth: 2}, true},
		{"empty", &EmptyInputError{What: "accuracy"}, true},
		{"insufficient", &InsufficientDataError{Message: "one pair"}, true},
		{"layout", &SubmissionLayoutError{Dir: "res"}, true},
		{"path not found", &PathNotFoundError{Path: "ref"}, false},
		{"plain", errors.New("disk full"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSubmissionError(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "identifier 3_1 does not appear in reference file", (&MissingReferenceError{ID: "3_1"}).Error())
	assert.Equal(t, "identifier 3_1 appears 2 times in reference file", (&DuplicateReferenceError{ID: "3_1", Count: 2}).Error())
	assert.Equal(t, "number of instances 2 is not the same as truth 3", (&CountMismatchError{Predictions: 2, Truth: 3}).Error())
	assert.Equal(t, "path /in/ref does not exist", (&PathNotFoundError{Path: "/in/ref"}).Error())
	assert.Equal(t, "no reference file found in /in/ref (searched [truth.tsv reference.tsv])",
		(&PathNotFoundError{Path: "/in/ref", Searched: []string{"truth.tsv", "reference.tsv"}}).Error())
}
