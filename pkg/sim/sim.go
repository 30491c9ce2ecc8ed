package sim

import (
	"fmt"
	"math/rand"
)

// DefaultRootLabel is the label given to the root module when no option
// overrides it.
const DefaultRootLabel = "module-0"

// Outcome records what a single growth step did, for inspection and testing.
type Outcome struct {
	Alpha    float64 // drawn contribution magnitude
	Founded  bool    // true if a new module was created
	ModuleID int     // extended module, or the newly founded module
	ParentID int     // parent of the founded module; NoParent when extending
}

// String renders the outcome for logs.
func (o Outcome) String() string {
	if o.Founded {
		return fmt.Sprintf("founded module %d under %d (alpha=%.4f)", o.ModuleID, o.ParentID, o.Alpha)
	}
	return fmt.Sprintf("extended module %d (alpha=%.4f)", o.ModuleID, o.Alpha)
}

// Simulation owns one module tree, one parameter set, and one random stream,
// and advances the growth model one step at a time.
//
// A Simulation must not be grown from multiple goroutines. The read
// accessors are pure and never mutate state.
type Simulation struct {
	tree    *Tree
	params  Params
	rng     *rand.Rand
	contrib ContributionSource
}

// Option customizes simulation construction.
type Option func(*Simulation)

// WithSeed seeds the simulation's random stream for reproducible runs.
func WithSeed(seed int64) Option {
	return func(s *Simulation) { s.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand supplies a random stream directly. The stream must not be shared
// with another simulation.
func WithRand(rng *rand.Rand) Option {
	return func(s *Simulation) { s.rng = rng }
}

// WithContributions substitutes the contribution source, typically with a
// fixed sequence in tests.
func WithContributions(src ContributionSource) Option {
	return func(s *Simulation) { s.contrib = src }
}

// WithRootLabel overrides the root module's display label.
func WithRootLabel(label string) Option {
	return func(s *Simulation) { s.tree = NewTree(label) }
}

// New constructs a simulation with a single root module (x=0, c=0).
// Returns an INVALID_CONFIG error when the parameters are out of range; no
// usable instance is produced in that case.
//
// Without WithSeed or WithRand the stream is seeded from the global source,
// which makes runs non-reproducible; pass a seed whenever reproducibility
// matters.
func New(params Params, opts ...Option) (*Simulation, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	s := &Simulation{
		tree:   NewTree(DefaultRootLabel),
		params: params,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(rand.Int63()))
	}
	if s.contrib == nil {
		s.contrib = NewContributionSampler(s.rng)
	}
	return s, nil
}

// Grow executes one growth step: draw a contribution, score every existing
// and prospective module, sample one target, and mutate the tree.
//
// Exactly one of two mutations happens: an existing module's (c, x) pair
// advances together, or one new leaf is appended. On error the tree is left
// exactly as it was; sampling and scoring complete before any mutation.
func (s *Simulation) Grow() (Outcome, error) {
	alphas, err := s.contrib.Draw(1, s.params.Delta)
	if err != nil {
		return Outcome{}, err
	}
	alpha := alphas[0]

	pref, err := Preference(s.tree, s.params, alpha)
	if err != nil {
		return Outcome{}, err
	}
	idx, err := SampleIndex(s.rng, pref)
	if err != nil {
		return Outcome{}, err
	}

	m := s.tree.Len()
	if idx < m {
		if err := s.tree.extend(idx, alpha); err != nil {
			return Outcome{}, err
		}
		return Outcome{Alpha: alpha, ModuleID: idx, ParentID: NoParent}, nil
	}

	parent := idx - m
	label := fmt.Sprintf("module-%d", s.tree.Len())
	id, err := s.tree.addChild(parent, label, alpha)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Alpha: alpha, Founded: true, ModuleID: id, ParentID: parent}, nil
}

// Params returns the simulation's parameter set, including the inert
// theta and xi fields.
func (s *Simulation) Params() Params { return s.params }

// Tree returns the simulation's tree for read-only inspection. Callers must
// not retain it across Grow calls in concurrent contexts.
func (s *Simulation) Tree() *Tree { return s.tree }

// Len returns the current module count.
func (s *Simulation) Len() int { return s.tree.Len() }

// Depth returns the depth of the module with the given ID.
func (s *Simulation) Depth(id int) (int, error) { return s.tree.Depth(id) }

// Version returns the current effective value of the module with the
// given ID.
func (s *Simulation) Version(id int) (float64, error) {
	m, err := s.tree.Module(id)
	if err != nil {
		return 0, err
	}
	return Version(m.X, m.Depth, s.params.Mu)
}

// Reward returns the current reward of the module with the given ID,
// evaluated at its own accumulated improvement.
func (s *Simulation) Reward(id int) (float64, error) {
	m, err := s.tree.Module(id)
	if err != nil {
		return 0, err
	}
	return Reward(s.tree, s.params, id, m.X)
}

// Preference returns the normalized preference vector a contribution of
// magnitude alpha would face against the current tree. Pure; the random
// stream is untouched.
func (s *Simulation) Preference(alpha float64) ([]float64, error) {
	return Preference(s.tree, s.params, alpha)
}
