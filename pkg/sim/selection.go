package sim

import (
	"math/rand"

	"github.com/sproutsim/sprout/pkg/errors"
)

// Preference computes the normalized probability distribution over all
// possible targets of a contribution of magnitude alpha.
//
// For a tree with m modules the vector has length 2m: entry i in [0, m) is
// the expected marginal reward of extending existing module i, and entry
// m+i is the expected virtual reward of founding a new child under module i.
// Every entry is divided by the total so the vector sums to one.
//
// Returns a DEGENERATE_SELECTION error when the total reward mass is zero
// or negative, since no category can then be sampled.
func Preference(t *Tree, p Params, alpha float64) ([]float64, error) {
	m := t.Len()
	pref := make([]float64, 2*m)
	total := 0.0

	for i := 0; i < m; i++ {
		w, err := MarginalReward(t, p, i, alpha)
		if err != nil {
			return nil, err
		}
		pref[i] = w
		total += w
	}
	for i := 0; i < m; i++ {
		w, err := VirtualReward(t, p, i, alpha)
		if err != nil {
			return nil, err
		}
		pref[m+i] = w
		total += w
	}

	if total <= 0 {
		return nil, errors.New(errors.ErrCodeDegenerateSelection,
			"total reward mass is %g for alpha=%g over %d modules", total, alpha, m)
	}
	for i := range pref {
		pref[i] /= total
	}
	return pref, nil
}

// SampleIndex draws one index from the categorical distribution defined by
// the preference vector, consuming one value from rng. The vector is assumed
// normalized, as produced by [Preference].
func SampleIndex(rng *rand.Rand, pref []float64) (int, error) {
	if rng == nil {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "random stream is required")
	}
	if len(pref) == 0 {
		return 0, errors.New(errors.ErrCodeDegenerateSelection, "empty preference vector")
	}

	u := rng.Float64()
	cum := 0.0
	last := 0
	for i, w := range pref {
		if w <= 0 {
			continue
		}
		cum += w
		last = i
		if u < cum {
			return i, nil
		}
	}
	// Floating rounding can leave cum marginally below 1; fall back to the
	// last category with positive mass.
	if cum > 0 {
		return last, nil
	}
	return 0, errors.New(errors.ErrCodeDegenerateSelection, "preference vector has no positive mass")
}
