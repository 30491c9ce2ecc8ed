package sim

import (
	stderrors "errors"
	"fmt"
)

var (
	// ErrUnknownModule is returned when a module ID is out of range.
	ErrUnknownModule = stderrors.New("unknown module")

	// ErrNegativeContribution is returned when a mutation would decrease a
	// module's accumulated improvement.
	ErrNegativeContribution = stderrors.New("contribution must be non-negative")
)

// NoParent marks the root module's parent slot.
const NoParent = -1

// Module is one node of the growth tree: a software component with an
// accumulated improvement value and a contribution count.
//
// X and C are monotonically non-decreasing and only ever change through
// [Simulation.Grow]. Depth is fixed at creation: the root has depth 1 and
// every child is one deeper than its parent, so depth is always >= 1 and
// never needs a path search.
type Module struct {
	ID     int     // stable arena index
	Label  string  // display label
	Parent int     // parent ID, or NoParent for the root
	X      float64 // accumulated improvement, >= 0
	C      int     // contribution count, >= 0
	Depth  int     // edges from root + 1, >= 1
}

// Tree is an append-only arena of module records forming a rooted tree.
// Modules are indexed by their stable integer ID; the root is always ID 0.
// Modules are never removed, so IDs and parent links stay valid for the
// lifetime of the tree.
//
// Tree is not safe for concurrent mutation; see the package documentation
// for the ownership model.
type Tree struct {
	modules []Module
}

// NewTree creates a tree holding a single root module with x=0 and c=0.
func NewTree(rootLabel string) *Tree {
	return &Tree{
		modules: []Module{{
			ID:     0,
			Label:  rootLabel,
			Parent: NoParent,
			Depth:  1,
		}},
	}
}

// Len returns the number of modules in the tree.
func (t *Tree) Len() int { return len(t.modules) }

// Root returns a copy of the root module record.
func (t *Tree) Root() Module { return t.modules[0] }

// Module returns a copy of the module record with the given ID.
func (t *Tree) Module(id int) (Module, error) {
	if id < 0 || id >= len(t.modules) {
		return Module{}, fmt.Errorf("%w: %d", ErrUnknownModule, id)
	}
	return t.modules[id], nil
}

// Modules returns copies of all module records in ID order.
func (t *Tree) Modules() []Module {
	out := make([]Module, len(t.modules))
	copy(out, t.modules)
	return out
}

// Depth returns the cached depth of the module with the given ID.
// The root has depth 1.
func (t *Tree) Depth(id int) (int, error) {
	m, err := t.Module(id)
	if err != nil {
		return 0, err
	}
	return m.Depth, nil
}

// Children returns the IDs of the direct children of the given module,
// in creation order.
func (t *Tree) Children(id int) []int {
	var out []int
	for _, m := range t.modules {
		if m.Parent == id {
			out = append(out, m.ID)
		}
	}
	return out
}

// MaxDepth returns the depth of the deepest module in the tree.
func (t *Tree) MaxDepth() int {
	max := 0
	for _, m := range t.modules {
		if m.Depth > max {
			max = m.Depth
		}
	}
	return max
}

// extend applies a contribution to an existing module: its contribution
// count increments and its accumulated improvement grows by alpha.
func (t *Tree) extend(id int, alpha float64) error {
	if id < 0 || id >= len(t.modules) {
		return fmt.Errorf("%w: %d", ErrUnknownModule, id)
	}
	if alpha < 0 {
		return fmt.Errorf("%w: %g", ErrNegativeContribution, alpha)
	}
	t.modules[id].C++
	t.modules[id].X += alpha
	return nil
}

// addChild appends a new leaf module under the given parent, seeded with the
// founding contribution alpha. Per the model, a founded module starts with
// c=1 (its founding counts as its first contribution). Returns the new ID.
func (t *Tree) addChild(parent int, label string, alpha float64) (int, error) {
	if parent < 0 || parent >= len(t.modules) {
		return 0, fmt.Errorf("%w: %d", ErrUnknownModule, parent)
	}
	if alpha < 0 {
		return 0, fmt.Errorf("%w: %g", ErrNegativeContribution, alpha)
	}
	id := len(t.modules)
	t.modules = append(t.modules, Module{
		ID:     id,
		Label:  label,
		Parent: parent,
		X:      alpha,
		C:      1,
		Depth:  t.modules[parent].Depth + 1,
	})
	return id, nil
}
