package statistics

import (
	"math"
	"math/rand"
	"sort"
)

// ConfidenceInterval is a percentile bootstrap interval around a proportion.
type ConfidenceInterval struct {
	Lower           float64 `json:"lower"`
	Upper           float64 `json:"upper"`
	Mean            float64 `json:"mean"`
	ConfidenceLevel float64 `json:"confidence_level"`
	NumBootstraps   int     `json:"num_bootstraps"`
}

// DefaultBootstrapIterations is the number of bootstrap resamples.
const DefaultBootstrapIterations = 2000

// ProportionCI resamples per-instance hit/miss outcomes with replacement and
// returns the percentile interval of the resampled hit rate.
// A negative seed uses a non-deterministic source.
// Fewer than 2 outcomes yield a degenerate interval at the observed rate.
func ProportionCI(hits []bool, confidenceLevel float64, iterations int, seed int64) ConfidenceInterval {
	n := len(hits)
	observed := hitRate(hits)
	if n < 2 {
		return ConfidenceInterval{
			Lower:           observed,
			Upper:           observed,
			Mean:            observed,
			ConfidenceLevel: confidenceLevel,
		}
	}
	if iterations <= 0 {
		iterations = DefaultBootstrapIterations
	}

	src := rand.NewSource(seed)
	if seed < 0 {
		src = rand.NewSource(rand.Int63())
	}
	rng := rand.New(src)

	rates := make([]float64, iterations)
	for i := range rates {
		correct := 0
		for j := 0; j < n; j++ {
			if hits[rng.Intn(n)] {
				correct++
			}
		}
		rates[i] = float64(correct) / float64(n)
	}
	sort.Float64s(rates)

	alpha := 1.0 - confidenceLevel
	lo := int(math.Floor(alpha / 2.0 * float64(iterations)))
	hi := int(math.Floor((1.0 - alpha/2.0) * float64(iterations)))
	if hi >= iterations {
		hi = iterations - 1
	}

	return ConfidenceInterval{
		Lower:           rates[lo],
		Upper:           rates[hi],
		Mean:            observed,
		ConfidenceLevel: confidenceLevel,
		NumBootstraps:   iterations,
	}
}

func hitRate(hits []bool) float64 {
	if len(hits) == 0 {
		return 0.0
	}
	correct := 0
	for _, h := range hits {
		if h {
			correct++
		}
	}
	return float64(correct) / float64(len(hits))
}
