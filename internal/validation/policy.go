package validation

import (
	"slices"

	"golang.org/x/text/cases"
)

// DefaultLabels is the class label set of the current submission format.
var DefaultLabels = []string{"implausible", "not-sure", "plausible"}

// Default rating bounds, inclusive.
const (
	DefaultMinRating = 1.0
	DefaultMaxRating = 5.0
)

// Policy holds the value-domain rules a format check enforces. Submission
// formats have changed over time, so none of this is hard-coded.
type Policy struct {
	// Labels is the closed set of valid classification labels.
	Labels []string `mapstructure:"labels"`
	// FoldCase compares labels case-insensitively.
	FoldCase bool `mapstructure:"fold_case"`

	MinRating float64 `mapstructure:"min_rating"`
	MaxRating float64 `mapstructure:"max_rating"`
	// EnforceRange rejects submitted ratings outside [MinRating, MaxRating].
	EnforceRange bool `mapstructure:"enforce_range"`
	// EnforceTruthRange applies the same bound to reference ratings.
	EnforceTruthRange bool `mapstructure:"enforce_range_truth"`
}

// DefaultPolicy returns the rules of the latest submission format.
func DefaultPolicy() Policy {
	return Policy{
		Labels:            slices.Clone(DefaultLabels),
		MinRating:         DefaultMinRating,
		MaxRating:         DefaultMaxRating,
		EnforceRange:      true,
		EnforceTruthRange: true,
	}
}

// ForTruth returns the policy applied to reference files.
func (p Policy) ForTruth() Policy {
	p.EnforceRange = p.EnforceTruthRange
	return p
}

// hasLabel reports whether label belongs to the configured set.
func (p Policy) hasLabel(label string) bool {
	_, ok := p.lookupLabel(label)
	return ok
}

// CanonicalLabel returns the configured spelling of label. Without FoldCase,
// or for labels outside the set, label is returned unchanged.
func (p Policy) CanonicalLabel(label string) string {
	if l, ok := p.lookupLabel(label); ok {
		return l
	}
	return label
}

func (p Policy) lookupLabel(label string) (string, bool) {
	if !p.FoldCase {
		return label, slices.Contains(p.Labels, label)
	}
	fold := cases.Fold()
	want := fold.String(label)
	for _, l := range p.Labels {
		if fold.String(l) == want {
			return l, true
		}
	}
	return label, false
}

func (p Policy) inRange(rating float64) bool {
	return rating >= p.MinRating && rating <= p.MaxRating
}
