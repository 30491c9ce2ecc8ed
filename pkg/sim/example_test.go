package sim_test

import (
	"fmt"

	"github.com/sproutsim/sprout/pkg/sim"
)

func ExampleNew() {
	// A fixed seed makes the run reproducible.
	s, err := sim.New(sim.DefaultParams(), sim.WithSeed(42))
	if err != nil {
		panic(err)
	}

	for i := 0; i < 25; i++ {
		if _, err := s.Grow(); err != nil {
			panic(err)
		}
	}

	fmt.Println("root depth:", s.Tree().Root().Depth)
	fmt.Println("modules >= 1:", s.Len() >= 1)
	// Output:
	// root depth: 1
	// modules >= 1: true
}

func ExampleVersion() {
	// A module with no accumulated improvement has no value regardless of
	// where it sits in the tree.
	v, _ := sim.Version(0, 5, 0.5)
	fmt.Println(v)
	// Output:
	// 0
}

func ExampleSimulation_Preference() {
	s, err := sim.New(sim.DefaultParams(), sim.WithSeed(1))
	if err != nil {
		panic(err)
	}

	// Against a lone root, a contribution faces two choices: extend the
	// root or found its first child.
	pref, err := s.Preference(0.5)
	if err != nil {
		panic(err)
	}
	fmt.Println("choices:", len(pref))

	sum := 0.0
	for _, w := range pref {
		sum += w
	}
	fmt.Printf("total mass: %.3f\n", sum)
	// Output:
	// choices: 2
	// total mass: 1.000
}
