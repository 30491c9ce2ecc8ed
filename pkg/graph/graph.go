// Package graph provides the canonical serialization format for simulation
// snapshots.
//
// A Snapshot is a read-only view of a module tree at one point in time,
// together with the parameters that produced it and the derived per-module
// scores (version value and reward). It is the surface consumed by plotting,
// reporting, and other exploration tooling; those consumers never touch the
// live tree.
//
// The format is human-readable JSON designed for round-trip fidelity:
// snapshot → export → re-import produces identical results.
package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sproutsim/sprout/pkg/sim"
)

// Node is one module of a snapshot, with its raw attributes and the scores
// derived from them under the snapshot's parameters.
type Node struct {
	ID      int     `json:"id" bson:"id"`
	Label   string  `json:"label,omitempty" bson:"label,omitempty"`
	Parent  int     `json:"parent" bson:"parent"` // sim.NoParent for the root
	Depth   int     `json:"depth" bson:"depth"`
	X       float64 `json:"x" bson:"x"`
	C       int     `json:"c" bson:"c"`
	Version float64 `json:"version" bson:"version"`
	Reward  float64 `json:"reward" bson:"reward"`
}

// Edge is a directed parent→child link.
type Edge struct {
	From int `json:"from" bson:"from"`
	To   int `json:"to" bson:"to"`
}

// Snapshot is the serialization format for one simulation state.
type Snapshot struct {
	Params sim.Params `json:"params" bson:"params"`
	Nodes  []Node     `json:"nodes" bson:"nodes"`
	Edges  []Edge     `json:"edges" bson:"edges"`
}

// FromTree captures the current state of a tree under the given parameters.
// Nodes appear in ID order, so output is deterministic. The tree itself is
// only read, never mutated.
func FromTree(t *sim.Tree, params sim.Params) (Snapshot, error) {
	mods := t.Modules()
	snap := Snapshot{
		Params: params,
		Nodes:  make([]Node, len(mods)),
	}

	for i, m := range mods {
		v, err := sim.Version(m.X, m.Depth, params.Mu)
		if err != nil {
			return Snapshot{}, fmt.Errorf("score module %d: %w", m.ID, err)
		}
		r, err := sim.Reward(t, params, m.ID, m.X)
		if err != nil {
			return Snapshot{}, fmt.Errorf("score module %d: %w", m.ID, err)
		}
		snap.Nodes[i] = Node{
			ID:      m.ID,
			Label:   m.Label,
			Parent:  m.Parent,
			Depth:   m.Depth,
			X:       m.X,
			C:       m.C,
			Version: v,
			Reward:  r,
		}
		if m.Parent != sim.NoParent {
			snap.Edges = append(snap.Edges, Edge{From: m.Parent, To: m.ID})
		}
	}
	return snap, nil
}

// Validate checks the structural invariants of a snapshot: exactly one root,
// every parent link pointing at an earlier node, and depths consistent with
// the parent chain.
func (s Snapshot) Validate() error {
	roots := 0
	for i, n := range s.Nodes {
		if n.ID != i {
			return fmt.Errorf("node %d has ID %d, want arena order", i, n.ID)
		}
		if n.Parent == sim.NoParent {
			roots++
			if n.Depth != 1 {
				return fmt.Errorf("root %d has depth %d, want 1", n.ID, n.Depth)
			}
			continue
		}
		if n.Parent < 0 || n.Parent >= n.ID {
			return fmt.Errorf("node %d has invalid parent %d", n.ID, n.Parent)
		}
		if n.Depth != s.Nodes[n.Parent].Depth+1 {
			return fmt.Errorf("node %d has depth %d, want parent depth+1", n.ID, n.Depth)
		}
		if n.X < 0 || n.C < 0 {
			return fmt.Errorf("node %d has negative attributes (x=%g, c=%d)", n.ID, n.X, n.C)
		}
	}
	if roots != 1 {
		return fmt.Errorf("snapshot has %d roots, want exactly 1", roots)
	}
	return nil
}

// DepthHistogram returns the module count per depth, indexed from depth 1.
func (s Snapshot) DepthHistogram() map[int]int {
	hist := make(map[int]int)
	for _, n := range s.Nodes {
		hist[n.Depth]++
	}
	return hist
}

// Marshal converts a snapshot to indented JSON bytes.
func Marshal(s Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(s, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write writes a snapshot as JSON to an io.Writer.
func Write(s Snapshot, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes a snapshot to a JSON file with 0644 permissions.
func WriteFile(s Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(s, f)
}

// Read decodes and validates a JSON snapshot from an io.Reader.
func Read(r io.Reader) (Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Snapshot{}, fmt.Errorf("decode: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

// ReadFile reads a JSON file and returns the decoded, validated snapshot.
func ReadFile(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
