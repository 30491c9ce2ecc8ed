package sim

import (
	"math/rand"
	"testing"

	"github.com/sproutsim/sprout/pkg/errors"
)

func TestContributionSamplerDraw(t *testing.T) {
	s := NewContributionSampler(rand.New(rand.NewSource(1)))

	samples, err := s.Draw(1000, 3.0)
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if len(samples) != 1000 {
		t.Fatalf("len = %d, want 1000", len(samples))
	}

	sum := 0.0
	for _, a := range samples {
		if a < 0 {
			t.Fatalf("sample %g is negative", a)
		}
		sum += a
	}
	// Exp(3) has mean 1/3; with 1000 samples the empirical mean should land
	// well within a loose band.
	mean := sum / float64(len(samples))
	if mean < 0.25 || mean > 0.42 {
		t.Errorf("empirical mean = %g, want near 1/3", mean)
	}
}

func TestContributionSamplerInvalidDelta(t *testing.T) {
	s := NewContributionSampler(rand.New(rand.NewSource(1)))

	for _, delta := range []float64{0, -1} {
		if _, err := s.Draw(1, delta); !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("delta=%g: err = %v, want INVALID_CONFIG", delta, err)
		}
	}
}

func TestContributionSamplerNilStream(t *testing.T) {
	s := NewContributionSampler(nil)
	if _, err := s.Draw(1, 3.0); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("err = %v, want INVALID_CONFIG", err)
	}
}

func TestContributionSamplerDeterminism(t *testing.T) {
	a := NewContributionSampler(rand.New(rand.NewSource(7)))
	b := NewContributionSampler(rand.New(rand.NewSource(7)))

	sa, err := a.Draw(20, 3.0)
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	sb, err := b.Draw(20, 3.0)
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	for i := range sa {
		if sa[i] != sb[i] {
			t.Fatalf("sample %d differs: %g vs %g", i, sa[i], sb[i])
		}
	}
}
