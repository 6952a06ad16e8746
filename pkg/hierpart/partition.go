package hierpart

import (
	"slices"

	herrors "github.com/matzehuels/hierpart/pkg/errors"
)

// ModuleID identifies a module within one [Partition]. Identifiers are
// assigned in creation order: the root is 0 and every [Partition.AddChild]
// call takes the next integer. Identifiers are never reassigned or reused.
type ModuleID int

// NoModule is the parent of the root and the module of implicit groups.
const NoModule ModuleID = -1

// module is one arena slot. The parent is stored by identifier so the tree
// holds no pointer cycles.
type module[E comparable] struct {
	parent   ModuleID
	depth    int
	elements []E
	members  map[E]struct{}
	children []ModuleID

	// owner maps every element claimed by a child to that child. Elements
	// of the module missing from owner are not covered by any child.
	owner map[E]ModuleID
}

// Partition is a hierarchical partition of a universe of elements.
//
// The zero value is not usable - use [New] to create a Partition.
// Partition is not safe for concurrent mutation; see the package
// documentation for the read-only concurrency guarantees.
type Partition[E comparable] struct {
	modules []*module[E]
}

// New creates a partition whose root module holds exactly universe.
// Element order is preserved and reported back by [Partition.Elements] and
// [Partition.Show].
//
// Returns an error wrapping [ErrInvalidUniverse] if universe is empty or
// lists an element more than once.
func New[E comparable](universe []E) (*Partition[E], error) {
	if len(universe) == 0 {
		return nil, herrors.Wrap(herrors.ErrCodeInvalidUniverse, ErrInvalidUniverse, "universe is empty")
	}
	members := make(map[E]struct{}, len(universe))
	for _, e := range universe {
		if _, dup := members[e]; dup {
			return nil, herrors.Wrap(herrors.ErrCodeInvalidUniverse, ErrInvalidUniverse,
				"element %v listed more than once", e)
		}
		members[e] = struct{}{}
	}
	root := &module[E]{
		parent:   NoModule,
		elements: slices.Clone(universe),
		members:  members,
	}
	return &Partition[E]{modules: []*module[E]{root}}, nil
}

// Root returns the identifier of the root module, which is always 0.
func (p *Partition[E]) Root() ModuleID { return 0 }

// AddChild attaches a new module holding elements under parent and returns
// its identifier.
//
// The call is atomic: every check runs before the partition is touched, so a
// failed call leaves it unchanged. The returned error wraps:
//   - [ErrUnknownModule] if parent does not exist
//   - [ErrEmptyModule] if elements is empty
//   - [ErrDuplicateElement] if elements repeats an element
//   - [ErrNotASubset] if an element is not in parent
//   - [ErrOverlap] if an element already belongs to a sibling
func (p *Partition[E]) AddChild(parent ModuleID, elements []E) (ModuleID, error) {
	par, err := p.module(parent)
	if err != nil {
		return NoModule, err
	}
	if len(elements) == 0 {
		return NoModule, herrors.Wrap(herrors.ErrCodeInvalidInput, ErrEmptyModule,
			"child of module %d has no elements", parent)
	}

	members := make(map[E]struct{}, len(elements))
	for _, e := range elements {
		if _, dup := members[e]; dup {
			return NoModule, herrors.Wrap(herrors.ErrCodeInvalidInput, ErrDuplicateElement,
				"element %v listed more than once", e)
		}
		members[e] = struct{}{}
		if _, ok := par.members[e]; !ok {
			return NoModule, herrors.Wrap(herrors.ErrCodeNotASubset, ErrNotASubset,
				"element %v is not in module %d", e, parent)
		}
		if sib, taken := par.owner[e]; taken {
			return NoModule, herrors.Wrap(herrors.ErrCodeOverlap, ErrOverlap,
				"element %v already belongs to module %d", e, sib)
		}
	}

	id := ModuleID(len(p.modules))
	p.modules = append(p.modules, &module[E]{
		parent:   parent,
		depth:    par.depth + 1,
		elements: slices.Clone(elements),
		members:  members,
	})
	par.children = append(par.children, id)
	if par.owner == nil {
		par.owner = make(map[E]ModuleID, len(par.elements))
	}
	for _, e := range elements {
		par.owner[e] = id
	}
	return id, nil
}

func (p *Partition[E]) module(id ModuleID) (*module[E], error) {
	if id < 0 || int(id) >= len(p.modules) {
		return nil, herrors.Wrap(herrors.ErrCodeUnknownModule, ErrUnknownModule, "module %d", id)
	}
	return p.modules[id], nil
}

// Has reports whether id names a module of the partition.
func (p *Partition[E]) Has(id ModuleID) bool {
	return id >= 0 && int(id) < len(p.modules)
}

// Len returns the number of modules, root included.
func (p *Partition[E]) Len() int { return len(p.modules) }

// EdgeCount returns the number of parent-child links, always Len()-1.
func (p *Partition[E]) EdgeCount() int { return len(p.modules) - 1 }

// Universe returns a copy of the root's elements in creation order.
func (p *Partition[E]) Universe() []E { return slices.Clone(p.modules[0].elements) }

// UniverseSize returns the number of elements in the universe.
func (p *Partition[E]) UniverseSize() int { return len(p.modules[0].elements) }

// Elements returns a copy of the elements of module id, in the order they
// were given at creation. Returns nil if id does not exist.
func (p *Partition[E]) Elements(id ModuleID) []E {
	if !p.Has(id) {
		return nil
	}
	return slices.Clone(p.modules[id].elements)
}

// Size returns the number of elements of module id, or 0 if it does not exist.
func (p *Partition[E]) Size(id ModuleID) int {
	if !p.Has(id) {
		return 0
	}
	return len(p.modules[id].elements)
}

// Contains reports whether element e belongs to module id.
func (p *Partition[E]) Contains(id ModuleID, e E) bool {
	if !p.Has(id) {
		return false
	}
	_, ok := p.modules[id].members[e]
	return ok
}

// Parent returns the parent of module id, or [NoModule] for the root and for
// unknown identifiers.
func (p *Partition[E]) Parent(id ModuleID) ModuleID {
	if !p.Has(id) {
		return NoModule
	}
	return p.modules[id].parent
}

// Children returns a copy of the children of module id in insertion order.
func (p *Partition[E]) Children(id ModuleID) []ModuleID {
	if !p.Has(id) {
		return nil
	}
	return slices.Clone(p.modules[id].children)
}

// BranchingFactor returns the number of children of module id.
func (p *Partition[E]) BranchingFactor(id ModuleID) int {
	if !p.Has(id) {
		return 0
	}
	return len(p.modules[id].children)
}

// IsLeaf reports whether module id has no children.
func (p *Partition[E]) IsLeaf(id ModuleID) bool { return p.BranchingFactor(id) == 0 }

// Depth returns the depth of module id (0 for the root), or -1 if it does
// not exist.
func (p *Partition[E]) Depth(id ModuleID) int {
	if !p.Has(id) {
		return -1
	}
	return p.modules[id].depth
}

// ChildOf returns the child of module id that holds element e. The second
// result is false when e is in no child (or not in id at all).
func (p *Partition[E]) ChildOf(id ModuleID, e E) (ModuleID, bool) {
	if !p.Has(id) {
		return NoModule, false
	}
	c, ok := p.modules[id].owner[e]
	return c, ok
}

// Complete reports whether every non-leaf module is fully covered by its
// children, i.e. the hierarchy has no implicit singletons at any level.
func (p *Partition[E]) Complete() bool {
	for _, m := range p.modules {
		if len(m.children) > 0 && len(m.owner) != len(m.elements) {
			return false
		}
	}
	return true
}
