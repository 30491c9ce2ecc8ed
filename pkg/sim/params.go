package sim

import "github.com/sproutsim/sprout/pkg/errors"

// Default parameter values for the growth model.
const (
	// DefaultGamma is the contribution-count amplification exponent.
	DefaultGamma = 1.0

	// DefaultLambda is the depth penalty exponent.
	DefaultLambda = 1.0

	// DefaultDelta is the rate of the exponential contribution distribution.
	DefaultDelta = 3.0

	// DefaultMu is the depth leverage exponent inside the version function.
	DefaultMu = 0.5

	// DefaultTheta is the default for the reserved theta parameter.
	DefaultTheta = 0.5

	// DefaultXi is the default for the reserved xi parameter.
	DefaultXi = 2.0
)

// Params holds the economic parameters of the growth model.
//
// Theta and Xi are reserved: they are stored, carried through presets and
// serialization, and reported back, but no formula consults them. They must
// not be given behavior.
type Params struct {
	Gamma  float64 `toml:"gamma" json:"gamma"`   // contribution-count exponent, >= 0
	Lambda float64 `toml:"lambda" json:"lambda"` // depth penalty exponent, >= 0
	Delta  float64 `toml:"delta" json:"delta"`   // exponential contribution rate, > 0
	Mu     float64 `toml:"mu" json:"mu"`         // depth leverage exponent, >= 0
	Theta  float64 `toml:"theta" json:"theta"`   // reserved, inert
	Xi     float64 `toml:"xi" json:"xi"`         // reserved, inert
}

// DefaultParams returns the model's default parameter set.
func DefaultParams() Params {
	return Params{
		Gamma:  DefaultGamma,
		Lambda: DefaultLambda,
		Delta:  DefaultDelta,
		Mu:     DefaultMu,
		Theta:  DefaultTheta,
		Xi:     DefaultXi,
	}
}

// Validate checks the parameter ranges required by the model.
// Violations are reported as INVALID_CONFIG errors and are never clamped.
func (p Params) Validate() error {
	if p.Gamma < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "gamma must be non-negative, got %g", p.Gamma)
	}
	if p.Lambda < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "lambda must be non-negative, got %g", p.Lambda)
	}
	if p.Delta <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "delta must be positive, got %g", p.Delta)
	}
	if p.Mu < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "mu must be non-negative, got %g", p.Mu)
	}
	return nil
}
