package validation

import (
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/plausibility-eval/scorer/internal/models"
)

// Columns names the header fields of submission and reference files.
type Columns struct {
	ID     string `yaml:"id,omitempty"`
	Class  string `yaml:"class,omitempty"`
	Rating string `yaml:"rating,omitempty"`
}

// DefaultColumns returns the header used by the current file format.
func DefaultColumns() Columns {
	return Columns{ID: "Id", Class: "Class", Rating: "Rating"}
}

// Value returns the name of the column carrying predictions for mode.
func (c Columns) Value(mode models.Mode) string {
	if mode == models.ModeRanking {
		return c.Rating
	}
	return c.Class
}

// Required returns the exact header a submission for mode must have.
func (c Columns) Required(mode models.Mode) []string {
	return []string{c.ID, c.Value(mode)}
}

// CheckColumns requires a submission header to be exactly the id column
// followed by the value column for mode.
func CheckColumns(got []string, mode models.Mode, cols Columns, source string) error {
	want := cols.Required(mode)
	if !slices.Equal(got, want) {
		return &models.FormatError{
			Source:  source,
			Message: fmt.Sprintf("file does not have the required columns: %v != %v", got, want),
		}
	}
	return nil
}

// Checker validates identifiers and value domains of one input.
type Checker struct {
	Policy Policy
	// Source names the input in error messages.
	Source string
	Logger *slog.Logger
}

// NewChecker returns a Checker for policy. A nil logger discards output.
func NewChecker(policy Policy, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Checker{Policy: policy, Logger: logger}
}

// WithSource returns a copy of c that reports errors against source.
func (c *Checker) WithSource(source string) *Checker {
	cp := *c
	cp.Source = source
	return &cp
}

// ForTruth returns a copy of c carrying the reference-file policy.
func (c *Checker) ForTruth() *Checker {
	cp := *c
	cp.Policy = c.Policy.ForTruth()
	return &cp
}

// CheckFormat validates every identifier, then every value for mode.
// The first violation aborts the check.
func (c *Checker) CheckFormat(records []models.SubmissionRecord, mode models.Mode) error {
	logger := c.logger().With("mode", mode.String(), "source", c.Source, "rows", len(records))
	logger.Debug("Verifying the format of submission")

	if err := ValidateIdentifiers(records, c.Source); err != nil {
		return err
	}

	switch mode {
	case models.ModeClassification:
		if err := c.checkLabels(records); err != nil {
			return err
		}
	case models.ModeRanking:
		if err := c.checkRatings(records); err != nil {
			return err
		}
	default:
		return fmt.Errorf("evaluation mode %s not available", mode)
	}

	logger.Debug("Format checking for submission successful. No problems detected.")
	return nil
}

func (c *Checker) checkLabels(records []models.SubmissionRecord) error {
	for _, r := range records {
		if !c.Policy.hasLabel(r.Value) {
			return &models.FormatError{
				Source: c.Source,
				Line:   r.Line,
				Message: fmt.Sprintf("label %q does not correspond to one of the %d available class labels: %s",
					r.Value, len(c.Policy.Labels), quoteList(c.Policy.Labels)),
			}
		}
	}
	return nil
}

func (c *Checker) checkRatings(records []models.SubmissionRecord) error {
	for _, r := range records {
		rating, err := ParseRating(r.Value)
		if err != nil {
			return &models.FormatError{Source: c.Source, Line: r.Line, Message: err.Error()}
		}
		if c.Policy.EnforceRange && !c.Policy.inRange(rating) {
			return &models.FormatError{
				Source: c.Source,
				Line:   r.Line,
				Message: fmt.Sprintf("rating %s is not within the range between %g and %g",
					r.Value, c.Policy.MinRating, c.Policy.MaxRating),
			}
		}
	}
	return nil
}

func (c *Checker) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

// ParseRating parses a finite float rating.
func ParseRating(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("rating %q is not a float", s)
	}
	return v, nil
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, it := range items {
		quoted[i] = "'" + it + "'"
	}
	return strings.Join(quoted, ", ")
}
