package sim

import (
	"math"
	"math/rand"

	"github.com/sproutsim/sprout/pkg/errors"
)

// ContributionSource supplies contribution magnitudes for growth steps.
// The production implementation is [ContributionSampler]; tests substitute
// fixed sequences to pin down tree shapes.
type ContributionSource interface {
	// Draw returns n independent contribution magnitudes for the
	// exponential rate delta. All returned values are non-negative.
	Draw(n int, delta float64) ([]float64, error)
}

// ContributionSampler draws contribution magnitudes from an exponential
// distribution via the inverse CDF: for uniform rho in (0,1),
//
//	alpha = -ln(1-rho) / delta
//
// The sampler reads from an explicit random stream rather than package-level
// randomness so runs are reproducible given a seed.
type ContributionSampler struct {
	rng *rand.Rand
}

// NewContributionSampler creates a sampler reading from rng.
func NewContributionSampler(rng *rand.Rand) *ContributionSampler {
	return &ContributionSampler{rng: rng}
}

// Draw returns n independent Exp(delta) samples.
// Returns an INVALID_CONFIG error if delta <= 0 or the sampler has no
// random stream.
func (s *ContributionSampler) Draw(n int, delta float64) ([]float64, error) {
	if s.rng == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "contribution sampler has no random stream")
	}
	if delta <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "delta must be positive, got %g", delta)
	}
	out := make([]float64, n)
	for i := range out {
		rho := s.rng.Float64()
		for rho == 0 { // rho must lie in the open interval (0,1)
			rho = s.rng.Float64()
		}
		out[i] = -math.Log(1-rho) / delta
	}
	return out, nil
}
