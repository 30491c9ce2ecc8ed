// Package sim implements a stochastic growth model for trees of
// interdependent software modules.
//
// The model follows an incentive-driven contribution process: at each step a
// random contribution magnitude is drawn from an exponential distribution,
// every existing module and every prospective child module is scored by an
// economic reward function, and one target is chosen in proportion to its
// expected marginal reward. The chosen target is either extended (its
// accumulated improvement and contribution count grow) or founded (a new
// leaf module is appended under it).
//
// # Architecture
//
// The package is organized around five components:
//
//   - Tree: append-only arena of module records with cached depths
//   - Params: the model's economic parameters with validation
//   - Reward functions: pure scoring of real and prospective modules
//   - ContributionSampler: exponential contribution magnitudes
//   - Simulation: owns one tree, one parameter set, and one random stream,
//     and advances the model one Grow call at a time
//
// # Concurrency
//
// A Simulation is single-owner: Grow must not be called concurrently on the
// same instance. The reward functions are pure and safe to call from any
// goroutine. Independent simulations (e.g., comparing parameter presets) can
// run in parallel because each owns its tree and random stream outright.
//
// # Reproducibility
//
// All randomness flows through an explicit, seedable stream owned by the
// simulation. Two simulations constructed with the same parameters and seed
// produce identical trees.
package sim
