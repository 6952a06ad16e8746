package hmi

import (
	"math"

	herrors "github.com/matzehuels/hierpart/pkg/errors"
	"github.com/matzehuels/hierpart/pkg/hierpart"
)

// LevelTerm is the contribution of one compared pair of modules.
type LevelTerm struct {
	ModuleA hierpart.ModuleID
	ModuleB hierpart.ModuleID
	// Depth is the recursion depth, 0 for the pair of roots.
	Depth int
	// Size is the number of elements the two modules share.
	Size int
	// Weight is the probability mass of the shared elements in the universe.
	Weight float64
	// MI is the mutual information of the two local partitions over the
	// shared elements, in nats.
	MI float64
}

// Contribution returns Weight·MI, the term's share of the total HMI.
func (t LevelTerm) Contribution() float64 { return t.Weight * t.MI }

// Mutual returns the hierarchical mutual information between a and b in
// nats. It is symmetric in its arguments up to floating-point rounding.
//
// Returns an error wrapping [ErrUniverseMismatch] if the universes differ.
func Mutual[E comparable](a, b *hierpart.Partition[E], opts ...Option) (float64, error) {
	terms, err := Levels(a, b, opts...)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, t := range terms {
		total += t.Contribution()
	}
	return total, nil
}

// Levels returns the contribution of every module pair visited while
// computing [Mutual], in visiting order. Pairs where either side is a leaf
// contribute nothing and are omitted.
func Levels[E comparable](a, b *hierpart.Partition[E], opts ...Option) ([]LevelTerm, error) {
	if !hierpart.SameUniverse(a, b) {
		return nil, herrors.Wrap(herrors.ErrCodeUniverseMismatch, ErrUniverseMismatch,
			"%d elements vs %d elements", a.UniverseSize(), b.UniverseSize())
	}
	cfg := newConfig(opts)

	type item struct {
		a, b   hierpart.ModuleID
		elems  []E
		weight float64
		depth  int
	}
	stack := []item{{a: a.Root(), b: b.Root(), elems: a.Universe(), weight: 1}}
	var terms []LevelTerm

	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if a.IsLeaf(it.a) || b.IsLeaf(it.b) {
			continue
		}

		ga, la := a.LevelIndex(it.a, it.elems)
		gb, lb := b.LevelIndex(it.b, it.elems)

		// Contingency table over the shared elements, cells in first-seen
		// order so the traversal is deterministic.
		type cell struct{ i, j int }
		joint := make(map[cell][]E)
		var order []cell
		for k, e := range it.elems {
			if la[k] < 0 || lb[k] < 0 {
				return nil, herrors.New(herrors.ErrCodeInternal,
					"element %v escaped modules %d/%d", e, it.a, it.b)
			}
			c := cell{la[k], lb[k]}
			if _, seen := joint[c]; !seen {
				order = append(order, c)
			}
			joint[c] = append(joint[c], e)
		}

		n := float64(len(it.elems))
		var mi float64
		for _, c := range order {
			shared := joint[c]
			nij := float64(len(shared))
			ni := float64(len(ga[c.i].Elements))
			nj := float64(len(gb[c.j].Elements))
			mi += nij / n * math.Log(nij*n/(ni*nj))

			if ga[c.i].IsImplicit() || gb[c.j].IsImplicit() {
				continue
			}
			stack = append(stack, item{
				a:      ga[c.i].Module,
				b:      gb[c.j].Module,
				elems:  shared,
				weight: it.weight * nij / n,
				depth:  it.depth + 1,
			})
		}
		mi = max(mi, 0)

		t := LevelTerm{
			ModuleA: it.a,
			ModuleB: it.b,
			Depth:   it.depth,
			Size:    len(it.elems),
			Weight:  it.weight,
			MI:      mi,
		}
		terms = append(terms, t)
		if cfg.logger != nil {
			cfg.logger.Debug("level", "depth", t.Depth, "a", t.ModuleA, "b", t.ModuleB,
				"size", t.Size, "weight", t.Weight, "mi", t.MI)
		}
	}
	return terms, nil
}
