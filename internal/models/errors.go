package models

import (
	"errors"
	"fmt"
)

// FormatError reports a structural or schema violation in an input file.
type FormatError struct {
	// Source names the file or input being checked, may be empty.
	Source  string
	Line    int
	Message string
}

func (e *FormatError) Error() string {
	switch {
	case e.Source != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.Source, e.Line, e.Message)
	case e.Source != "":
		return fmt.Sprintf("%s: %s", e.Source, e.Message)
	default:
		return e.Message
	}
}

// MissingReferenceError is returned when a predicted identifier has no
// counterpart in the ground truth.
type MissingReferenceError struct {
	ID string
}

func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf("identifier %s does not appear in reference file", e.ID)
}

// DuplicateReferenceError is returned when the ground truth holds an
// identifier more than once.
type DuplicateReferenceError struct {
	ID    string
	Count int
}

func (e *DuplicateReferenceError) Error() string {
	return fmt.Sprintf("identifier %s appears %d times in reference file", e.ID, e.Count)
}

// CountMismatchError is returned when predictions and truth differ in size.
type CountMismatchError struct {
	Predictions int
	Truth       int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("number of instances %d is not the same as truth %d", e.Predictions, e.Truth)
}

// EmptyInputError is returned when a metric is asked to score nothing.
type EmptyInputError struct {
	What string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("cannot compute %s on empty input", e.What)
}

// InsufficientDataError is returned when the data cannot support the metric,
// e.g. a correlation over a single pair.
type InsufficientDataError struct {
	Message string
}

func (e *InsufficientDataError) Error() string {
	return e.Message
}

// SubmissionLayoutError is returned when neither a classification nor a
// ranking submission could be found.
type SubmissionLayoutError struct {
	Dir      string
	Searched []string
}

func (e *SubmissionLayoutError) Error() string {
	return fmt.Sprintf("no classification or ranking submission found in %s (searched %v)", e.Dir, e.Searched)
}

// PathNotFoundError is returned when a required input directory is missing,
// or when none of the Searched candidates exists inside Path.
type PathNotFoundError struct {
	Path     string
	Searched []string
}

func (e *PathNotFoundError) Error() string {
	if len(e.Searched) > 0 {
		return fmt.Sprintf("no reference file found in %s (searched %v)", e.Path, e.Searched)
	}
	return fmt.Sprintf("path %s does not exist", e.Path)
}

// IsSubmissionError reports whether err rejects the participant's
// submission, as opposed to a problem with the scoring setup.
func IsSubmissionError(err error) bool {
	var (
		formatErr    *FormatError
		missingErr   *MissingReferenceError
		duplicateErr *DuplicateReferenceError
		countErr     *CountMismatchError
		emptyErr     *EmptyInputError
		insuffErr    *InsufficientDataError
		layoutErr    *SubmissionLayoutError
	)
	return errors.As(err, &formatErr) ||
		errors.As(err, &missingErr) ||
		errors.As(err, &duplicateErr) ||
		errors.As(err, &countErr) ||
		errors.As(err, &emptyErr) ||
		errors.As(err, &insuffErr) ||
		errors.As(err, &layoutErr)
}
