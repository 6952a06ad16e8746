package hierpart

// GroupKind tags the groups of a local partition.
type GroupKind int

const (
	// GroupModule is a group backed by an explicit module. Comparison
	// recurses into it.
	GroupModule GroupKind = iota
	// GroupImplicit is a single element of a module that none of its
	// children claims. It has no structure below it.
	GroupImplicit
)

// String returns "module" or "implicit".
func (k GroupKind) String() string {
	if k == GroupImplicit {
		return "implicit"
	}
	return "module"
}

// Group is one block of the local partition a module induces one level down.
type Group[E comparable] struct {
	Kind GroupKind
	// Module is the module backing the group, or NoModule for implicit
	// groups.
	Module   ModuleID
	Elements []E
}

// IsImplicit reports whether the group is an unrefined singleton.
func (g Group[E]) IsImplicit() bool { return g.Kind == GroupImplicit }

// Level returns the local partition of module id:
//
//   - a module with children yields one group per child in insertion order,
//     followed by one implicit singleton for each element no child covers;
//   - a leaf yields a single group holding the module itself.
//
// Returns nil if id does not exist.
func (p *Partition[E]) Level(id ModuleID) []Group[E] {
	if !p.Has(id) {
		return nil
	}
	groups, _ := p.LevelIndex(id, p.modules[id].elements)
	return groups
}

// LevelWithin returns the local partition of module id restricted to the
// elements of within. Groups left empty by the restriction are dropped and
// elements of within that are not in id are ignored. Element order inside
// each group follows within.
func (p *Partition[E]) LevelWithin(id ModuleID, within []E) []Group[E] {
	groups, _ := p.LevelIndex(id, within)
	return groups
}

// LevelIndex is [Partition.LevelWithin] that also reports, for every
// position i of within, the index in groups of the group holding within[i],
// or -1 when within[i] is not an element of module id.
func (p *Partition[E]) LevelIndex(id ModuleID, within []E) ([]Group[E], []int) {
	if !p.Has(id) {
		return nil, nil
	}
	m := p.modules[id]
	labels := make([]int, len(within))

	if len(m.children) == 0 {
		var g *Group[E]
		for i, e := range within {
			if _, ok := m.members[e]; !ok {
				labels[i] = -1
				continue
			}
			if g == nil {
				g = &Group[E]{Kind: GroupModule, Module: id}
			}
			g.Elements = append(g.Elements, e)
			labels[i] = 0
		}
		if g == nil {
			return nil, labels
		}
		return []Group[E]{*g}, labels
	}

	// One bucket per child in insertion order; empty buckets are dropped
	// afterwards so child groups are numbered before implicit singletons.
	rank := make(map[ModuleID]int, len(m.children))
	for i, c := range m.children {
		rank[c] = i
	}
	buckets := make([][]E, len(m.children))
	var implicit []Group[E]
	for i, e := range within {
		if _, ok := m.members[e]; !ok {
			labels[i] = -1
			continue
		}
		c, claimed := m.owner[e]
		if !claimed {
			labels[i] = -2 - len(implicit)
			implicit = append(implicit, Group[E]{Kind: GroupImplicit, Module: NoModule, Elements: []E{e}})
			continue
		}
		k := rank[c]
		buckets[k] = append(buckets[k], e)
		labels[i] = k
	}

	groups := make([]Group[E], 0, len(m.children)+len(implicit))
	compact := make([]int, len(m.children))
	for k, elems := range buckets {
		compact[k] = len(groups)
		if len(elems) > 0 {
			groups = append(groups, Group[E]{Kind: GroupModule, Module: m.children[k], Elements: elems})
		}
	}
	base := len(groups)
	groups = append(groups, implicit...)
	for i, l := range labels {
		switch {
		case l >= 0:
			labels[i] = compact[l]
		case l <= -2:
			labels[i] = base + (-2 - l)
		}
	}
	return groups, labels
}
