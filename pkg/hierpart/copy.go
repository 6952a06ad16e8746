package hierpart

import (
	herrors "github.com/matzehuels/hierpart/pkg/errors"
)

// Copy returns an independent partition with the same universe, modules and
// identifiers.
func (p *Partition[E]) Copy() *Partition[E] {
	q, _ := Relabel(p, func(e E) (E, bool) { return e, true })
	return q
}

// Relabel rebuilds p over a new universe, renaming every element through
// rename. The result keeps the module identifiers and shape of p, which is
// handy for randomizing a hierarchy while keeping its structure.
//
// rename must accept every element of the universe and must be injective.
// A rejected element yields [ErrIncompleteMapping]; two elements renamed to
// the same value yield [ErrInvalidUniverse].
func Relabel[E, F comparable](p *Partition[E], rename func(E) (F, bool)) (*Partition[F], error) {
	mapped := make(map[E]F, p.UniverseSize())
	universe := make([]F, 0, p.UniverseSize())
	for _, e := range p.modules[0].elements {
		f, ok := rename(e)
		if !ok {
			return nil, herrors.Wrap(herrors.ErrCodeInvalidInput, ErrIncompleteMapping, "no mapping for element %v", e)
		}
		mapped[e] = f
		universe = append(universe, f)
	}

	q, err := New(universe)
	if err != nil {
		return nil, err
	}
	// Parents always precede their children in identifier order, so
	// replaying creation order reproduces the same identifiers.
	for _, m := range p.modules[1:] {
		elems := make([]F, len(m.elements))
		for i, e := range m.elements {
			elems[i] = mapped[e]
		}
		if _, err := q.AddChild(m.parent, elems); err != nil {
			return nil, err
		}
	}
	return q, nil
}

// RelabelMap is [Relabel] driven by a lookup table.
func RelabelMap[E, F comparable](p *Partition[E], mapping map[E]F) (*Partition[F], error) {
	return Relabel(p, func(e E) (F, bool) {
		f, ok := mapping[e]
		return f, ok
	})
}

// SameUniverse reports whether a and b partition the same set of elements.
// Element order is irrelevant.
func SameUniverse[E comparable](a, b *Partition[E]) bool {
	ra, rb := a.modules[0], b.modules[0]
	if len(ra.members) != len(rb.members) {
		return false
	}
	for e := range ra.members {
		if _, ok := rb.members[e]; !ok {
			return false
		}
	}
	return true
}

// Equivalent reports whether a and b describe the same hierarchy up to
// module identifiers and sibling order: same universe, and every module of
// one has a module with the same elements, at the same place, in the other.
func Equivalent[E comparable](a, b *Partition[E]) bool {
	if a.Len() != b.Len() || !SameUniverse(a, b) {
		return false
	}
	type pair struct{ a, b ModuleID }
	stack := []pair{{a.Root(), b.Root()}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		ma, mb := a.modules[top.a], b.modules[top.b]
		if len(ma.elements) != len(mb.elements) || len(ma.children) != len(mb.children) {
			return false
		}
		for e := range ma.members {
			if _, ok := mb.members[e]; !ok {
				return false
			}
		}
		// Siblings are disjoint, so any element of a child of ma names the
		// only possible counterpart in mb.
		for _, c := range ma.children {
			d, ok := mb.owner[a.modules[c].elements[0]]
			if !ok {
				return false
			}
			stack = append(stack, pair{c, d})
		}
	}
	return true
}
