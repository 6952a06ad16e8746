package hierpart

import (
	"iter"
	"slices"
)

// Edge links a module to one of its children.
type Edge struct {
	Parent ModuleID
	Child  ModuleID
}

// Show yields every module with its elements in ascending identifier order,
// which is creation order and therefore breadth-first with respect to when
// modules were attached. The sequence is lazy and has no side effects; each
// yielded slice is a copy.
func (p *Partition[E]) Show() iter.Seq2[ModuleID, []E] {
	return func(yield func(ModuleID, []E) bool) {
		for i, m := range p.modules {
			if !yield(ModuleID(i), slices.Clone(m.elements)) {
				return
			}
		}
	}
}

// Modules returns all module identifiers in ascending order.
func (p *Partition[E]) Modules() []ModuleID {
	ids := make([]ModuleID, len(p.modules))
	for i := range p.modules {
		ids[i] = ModuleID(i)
	}
	return ids
}

// Leaves returns the modules without children in ascending identifier order.
func (p *Partition[E]) Leaves() []ModuleID {
	var leaves []ModuleID
	for i, m := range p.modules {
		if len(m.children) == 0 {
			leaves = append(leaves, ModuleID(i))
		}
	}
	return leaves
}

// Edges returns every parent-child link ordered by child identifier.
func (p *Partition[E]) Edges() []Edge {
	edges := make([]Edge, 0, len(p.modules)-1)
	for i, m := range p.modules[1:] {
		edges = append(edges, Edge{Parent: m.parent, Child: ModuleID(i + 1)})
	}
	return edges
}

// ModulesAtDepth returns the modules at the given depth in ascending
// identifier order. The result may be empty, and the modules need not cover
// the universe when the hierarchy is partially refined.
func (p *Partition[E]) ModulesAtDepth(depth int) []ModuleID {
	var ids []ModuleID
	for i, m := range p.modules {
		if m.depth == depth {
			ids = append(ids, ModuleID(i))
		}
	}
	return ids
}

// BFS yields modules level by level starting at the root, children in
// insertion order.
func (p *Partition[E]) BFS() iter.Seq[ModuleID] {
	return func(yield func(ModuleID) bool) {
		wave := []ModuleID{p.Root()}
		if !yield(p.Root()) {
			return
		}
		for len(wave) > 0 {
			var next []ModuleID
			for _, id := range wave {
				for _, c := range p.modules[id].children {
					if !yield(c) {
						return
					}
					next = append(next, c)
				}
			}
			wave = next
		}
	}
}

// DFS yields modules depth-first from the root using an explicit stack.
// Children are pushed in insertion order, so the last child is visited first.
func (p *Partition[E]) DFS() iter.Seq[ModuleID] {
	return func(yield func(ModuleID) bool) {
		stack := []ModuleID{p.Root()}
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(id) {
				return
			}
			stack = append(stack, p.modules[id].children...)
		}
	}
}
