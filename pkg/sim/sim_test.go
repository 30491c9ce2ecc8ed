package sim

import (
	"testing"

	"github.com/sproutsim/sprout/pkg/errors"
)

// sequenceSource replays a fixed contribution sequence, then fails.
type sequenceSource struct {
	values []float64
	next   int
}

func (s *sequenceSource) Draw(n int, delta float64) ([]float64, error) {
	if delta <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "delta must be positive, got %g", delta)
	}
	if s.next+n > len(s.values) {
		return nil, errors.New(errors.ErrCodeInternal, "contribution sequence exhausted")
	}
	out := s.values[s.next : s.next+n]
	s.next += n
	return out, nil
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{"ZeroDelta", Params{Gamma: 1, Lambda: 1, Delta: 0, Mu: 0.5}},
		{"NegativeDelta", Params{Gamma: 1, Lambda: 1, Delta: -3, Mu: 0.5}},
		{"NegativeLambda", Params{Gamma: 1, Lambda: -1, Delta: 3, Mu: 0.5}},
		{"NegativeGamma", Params{Gamma: -1, Lambda: 1, Delta: 3, Mu: 0.5}},
		{"NegativeMu", Params{Gamma: 1, Lambda: 1, Delta: 3, Mu: -0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.params)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("err = %v, want INVALID_CONFIG", err)
			}
			if s != nil {
				t.Error("invalid configuration must not produce a simulation")
			}
		})
	}
}

func TestNewDefaults(t *testing.T) {
	s, err := New(DefaultParams(), WithSeed(1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := s.Len(); got != 1 {
		t.Errorf("Len = %d, want 1", got)
	}
	root := s.Tree().Root()
	if root.X != 0 || root.C != 0 {
		t.Errorf("root = x=%g c=%d, want 0/0", root.X, root.C)
	}
	if d, _ := s.Depth(0); d != 1 {
		t.Errorf("root depth = %d, want 1", d)
	}

	// Inert parameters survive untouched.
	p := s.Params()
	if p.Theta != DefaultTheta || p.Xi != DefaultXi {
		t.Errorf("theta/xi = %g/%g, want %g/%g", p.Theta, p.Xi, DefaultTheta, DefaultXi)
	}
}

func TestGrowMutatesExactlyOne(t *testing.T) {
	s, err := New(DefaultParams(), WithSeed(11))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for step := 0; step < 200; step++ {
		before := s.Tree().Modules()
		out, err := s.Grow()
		if err != nil {
			t.Fatalf("Grow step %d: %v", step, err)
		}
		after := s.Tree().Modules()

		if out.Founded {
			if len(after) != len(before)+1 {
				t.Fatalf("step %d: founded but count went %d -> %d", step, len(before), len(after))
			}
			fresh := after[len(after)-1]
			if fresh.C != 1 || fresh.X != out.Alpha {
				t.Fatalf("step %d: new module (c,x) = (%d,%g), want (1,%g)", step, fresh.C, fresh.X, out.Alpha)
			}
			if fresh.Parent < 0 || fresh.Parent >= len(before) {
				t.Fatalf("step %d: parent %d is not a pre-existing module", step, fresh.Parent)
			}
			if fresh.Depth != before[fresh.Parent].Depth+1 {
				t.Fatalf("step %d: depth %d, want parent depth+1", step, fresh.Depth)
			}
			before = append(before, fresh)
		} else {
			if len(after) != len(before) {
				t.Fatalf("step %d: extended but count went %d -> %d", step, len(before), len(after))
			}
			m := after[out.ModuleID]
			if m.C != before[out.ModuleID].C+1 {
				t.Fatalf("step %d: c = %d, want %d", step, m.C, before[out.ModuleID].C+1)
			}
			wantX := before[out.ModuleID].X + out.Alpha
			if diff := m.X - wantX; diff < -1e-12 || diff > 1e-12 {
				t.Fatalf("step %d: x = %g, want %g", step, m.X, wantX)
			}
			before[out.ModuleID] = m
		}

		// Nothing else moved.
		for i := range before {
			if after[i] != before[i] {
				t.Fatalf("step %d: untouched module %d changed: %+v -> %+v", step, i, before[i], after[i])
			}
		}
	}
}

func TestGrowInvariants(t *testing.T) {
	s, err := New(Params{Gamma: 0.5, Lambda: 2, Delta: 3, Mu: 1}, WithSeed(3))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for step := 0; step < 300; step++ {
		if _, err := s.Grow(); err != nil {
			t.Fatalf("Grow step %d: %v", step, err)
		}
	}
	for _, m := range s.Tree().Modules() {
		if m.X < 0 || m.C < 0 || m.Depth < 1 {
			t.Errorf("module %d violates invariants: %+v", m.ID, m)
		}
		if m.ID != 0 && (m.Parent < 0 || m.Parent >= m.ID) {
			t.Errorf("module %d has invalid parent %d", m.ID, m.Parent)
		}
	}
	if d, _ := s.Depth(0); d != 1 {
		t.Errorf("root depth drifted to %d", d)
	}
}

func TestGrowDeterminism(t *testing.T) {
	// A fixed seed and a stubbed contribution sequence must reproduce an
	// identical tree across runs.
	build := func() *Simulation {
		s, err := New(DefaultParams(),
			WithSeed(42),
			WithContributions(&sequenceSource{values: []float64{0.5, 0.3}}),
		)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		return s
	}

	run := func(s *Simulation) []Module {
		for i := 0; i < 2; i++ {
			if _, err := s.Grow(); err != nil {
				t.Fatalf("Grow: %v", err)
			}
		}
		return s.Tree().Modules()
	}

	first := run(build())
	second := run(build())

	if len(first) != len(second) {
		t.Fatalf("module counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("module %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
	if len(first) < 1 || len(first) > 3 {
		t.Errorf("two steps can create at most two modules, got %d", len(first))
	}
}

func TestGrowFailureLeavesTreeUntouched(t *testing.T) {
	// The third draw fails; the tree must look exactly as it did after two
	// successful steps.
	s, err := New(DefaultParams(),
		WithSeed(42),
		WithContributions(&sequenceSource{values: []float64{0.5, 0.3}}),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := s.Grow(); err != nil {
			t.Fatalf("Grow: %v", err)
		}
	}

	before := s.Tree().Modules()
	if _, err := s.Grow(); err == nil {
		t.Fatal("expected exhausted contribution source to fail")
	}
	after := s.Tree().Modules()

	if len(before) != len(after) {
		t.Fatalf("failed Grow changed module count: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("failed Grow changed module %d: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestGrowDegenerateSelection(t *testing.T) {
	// A zero contribution cannot be placed anywhere; the error surfaces and
	// the tree stays put.
	s, err := New(DefaultParams(),
		WithContributions(&sequenceSource{values: []float64{0}}),
		WithSeed(1),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = s.Grow()
	if !errors.Is(err, errors.ErrCodeDegenerateSelection) {
		t.Errorf("err = %v, want DEGENERATE_SELECTION", err)
	}
	if s.Len() != 1 {
		t.Errorf("tree grew on a failed step: Len = %d", s.Len())
	}
}

func TestAccessorsArePure(t *testing.T) {
	s, err := New(DefaultParams(), WithSeed(5))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 10; i++ {
		if _, err := s.Grow(); err != nil {
			t.Fatalf("Grow: %v", err)
		}
	}

	before := s.Tree().Modules()
	if _, err := s.Preference(0.5); err != nil {
		t.Fatalf("Preference: %v", err)
	}
	for id := 0; id < s.Len(); id++ {
		if _, err := s.Version(id); err != nil {
			t.Fatalf("Version(%d): %v", id, err)
		}
		if _, err := s.Reward(id); err != nil {
			t.Fatalf("Reward(%d): %v", id, err)
		}
	}
	after := s.Tree().Modules()
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("accessor mutated module %d", i)
		}
	}

	// Identical preference vectors on repeated calls: no hidden state.
	p1, _ := s.Preference(0.5)
	p2, _ := s.Preference(0.5)
	for i := range p1 {
		if p1[i] != p2[i] {
			t.Errorf("Preference is not pure at entry %d", i)
		}
	}
}
