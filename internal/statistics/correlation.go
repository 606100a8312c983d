package statistics

import (
	"errors"
	"math"
	"sort"
)

var (
	// ErrNoPairs is returned when a correlation is requested over zero pairs.
	ErrNoPairs = errors.New("no rating pairs to correlate")
	// ErrSinglePair is returned for exactly one pair.
	ErrSinglePair = errors.New("cannot compute rank correlation on only one prediction")
	// ErrZeroVariance is returned when one side is constant and the
	// correlation is undefined.
	ErrZeroVariance = errors.New("ratings have zero variance, rank correlation is undefined")
	// ErrLengthMismatch is returned when x and y differ in length.
	ErrLengthMismatch = errors.New("rating sequences differ in length")
)

// Ranks returns the 1-based rank of every value. Tied values share the
// average of the ranks they span.
func Ranks(values []float64) []float64 {
	n := len(values)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return values[order[a]] < values[order[b]] })

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i + 1
		for j < n && values[order[j]] == values[order[i]] {
			j++
		}
		// positions i..j-1 hold ties; ranks are i+1..j
		avg := float64(i+1+j) / 2.0
		for k := i; k < j; k++ {
			ranks[order[k]] = avg
		}
		i = j
	}
	return ranks
}

// Pearson computes the Pearson product-moment correlation of x and y.
func Pearson(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, ErrLengthMismatch
	}
	switch len(x) {
	case 0:
		return 0, ErrNoPairs
	case 1:
		return 0, ErrSinglePair
	}

	mx, my := mean(x), mean(y)
	var num, dx2, dy2 float64
	for i := range x {
		dx := x[i] - mx
		dy := y[i] - my
		num += dx * dy
		dx2 += dx * dx
		dy2 += dy * dy
	}
	if dx2 == 0 || dy2 == 0 {
		return 0, ErrZeroVariance
	}
	r := num / math.Sqrt(dx2*dy2)
	// rounding can push |r| a hair past 1
	return math.Max(-1, math.Min(1, r)), nil
}

// Spearman computes Spearman's rank correlation coefficient: the Pearson
// correlation of the average-tie ranks of x and y.
func Spearman(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, ErrLengthMismatch
	}
	return Pearson(Ranks(x), Ranks(y))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
