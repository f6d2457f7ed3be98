package synth

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// sampler wraps one seeded random source shared by every distribution so a
// generation run consumes a single reproducible stream.
type sampler struct {
	src rand.Source
	rng *rand.Rand
}

func newSampler(seed int64) *sampler {
	src := rand.NewSource(uint64(seed))
	return &sampler{src: src, rng: rand.New(src)}
}

func (s *sampler) normal(mu, sigma float64) float64 {
	return distuv.Normal{Mu: mu, Sigma: sigma, Src: s.src}.Rand()
}

func (s *sampler) uniform(lo, hi float64) float64 {
	return distuv.Uniform{Min: lo, Max: hi, Src: s.src}.Rand()
}

// poisson draws a count; a non-positive rate yields zero.
func (s *sampler) poisson(lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	return int(distuv.Poisson{Lambda: lambda, Src: s.src}.Rand())
}

func (s *sampler) float() float64 {
	return s.rng.Float64()
}

// intBetween draws an integer uniformly from [lo, hi] inclusive.
func (s *sampler) intBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Intn(hi-lo+1)
}

func (s *sampler) chance(p float64) bool {
	return s.rng.Float64() < p
}

// weighted draws an index with the given probabilities. Weights are assumed
// to sum to 1; the final index absorbs rounding slack.
func (s *sampler) weighted(weights []float64) int {
	u := s.rng.Float64()
	cum := 0.0
	for i, w := range weights {
		cum += w
		if u < cum {
			return i
		}
	}
	return len(weights) - 1
}

func (s *sampler) pick(options []string) string {
	return options[s.rng.Intn(len(options))]
}

func clip(x, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, x))
}
