package sim

import (
	"math"

	"github.com/sproutsim/sprout/pkg/errors"
)

// Version computes the effective value of a module with accumulated
// improvement x at the given depth:
//
//	version(x, d, mu) = ln(1 + x·d^mu)
//
// Version is non-decreasing in x and Version(0, d, mu) = 0 for any d >= 1.
// Negative x, depth < 1, and negative mu push the logarithm or power outside
// its domain and are rejected as NUMERIC_DOMAIN errors rather than
// propagated as NaN.
func Version(x float64, depth int, mu float64) (float64, error) {
	if x < 0 {
		return 0, errors.New(errors.ErrCodeNumericDomain, "improvement must be non-negative, got %g", x)
	}
	if depth < 1 {
		return 0, errors.New(errors.ErrCodeNumericDomain, "depth must be at least 1, got %d", depth)
	}
	if mu < 0 {
		return 0, errors.New(errors.ErrCodeNumericDomain, "mu must be non-negative, got %g", mu)
	}
	arg := 1 + x*math.Pow(float64(depth), mu)
	if arg <= 0 || math.IsNaN(arg) {
		return 0, errors.New(errors.ErrCodeNumericDomain, "logarithm argument must be positive, got %g", arg)
	}
	return math.Log(arg), nil
}

// Reward scores the module with the given ID as if its accumulated
// improvement were x (pass the module's own X for the current reward):
//
//	reward = version(x, depth, mu) · depth^(-lambda) · (1+c)^gamma
//
// The result is non-negative for any valid inputs.
func Reward(t *Tree, p Params, id int, x float64) (float64, error) {
	m, err := t.Module(id)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInternal, err, "reward")
	}
	v, err := Version(x, m.Depth, p.Mu)
	if err != nil {
		return 0, err
	}
	d := float64(m.Depth)
	return v * math.Pow(d, -p.Lambda) * math.Pow(1+float64(m.C), p.Gamma), nil
}

// MarginalReward computes the expected value of investing a contribution of
// magnitude alpha into the existing module: the reward with the contribution
// applied minus the reward as it stands.
func MarginalReward(t *Tree, p Params, id int, alpha float64) (float64, error) {
	m, err := t.Module(id)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInternal, err, "marginal reward")
	}
	after, err := Reward(t, p, id, m.X+alpha)
	if err != nil {
		return 0, err
	}
	before, err := Reward(t, p, id, m.X)
	if err != nil {
		return 0, err
	}
	return after - before, nil
}

// VirtualReward computes the expected value of founding a brand-new child of
// the given module, seeded with contribution alpha:
//
//	version(alpha, depth+1, mu) · (depth+1)^(-lambda)
//
// The (1+c)^gamma factor is absent here because a prospective module has no
// prior contributions, even though a module founded from this choice starts
// with c=1. The model carries that asymmetry deliberately; do not reconcile
// the two.
func VirtualReward(t *Tree, p Params, parent int, alpha float64) (float64, error) {
	m, err := t.Module(parent)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInternal, err, "virtual reward")
	}
	childDepth := m.Depth + 1
	v, err := Version(alpha, childDepth, p.Mu)
	if err != nil {
		return 0, err
	}
	return v * math.Pow(float64(childDepth), -p.Lambda), nil
}
