package hmi_test

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/hierpart/pkg/hierpart"
)

var abcdef = []string{"a", "b", "c", "d", "e", "f"}

// selfX is HMI(X,X) for the tutorial trees: ln 2 + ½ ln 3.
var selfX = math.Ln2 + 0.5*math.Log(3)

// tree builds a partition over universe from (parent, elements...) steps.
// Parents refer to identifiers returned by earlier steps.
type step struct {
	parent hierpart.ModuleID
	elems  []string
}

func tree(t testing.TB, universe []string, steps ...step) *hierpart.Partition[string] {
	t.Helper()
	p, err := hierpart.New(universe)
	require.NoError(t, err)
	for _, s := range steps {
		_, err := p.AddChild(s.parent, s.elems)
		require.NoError(t, err)
	}
	return p
}

func s(parent hierpart.ModuleID, elems ...string) step { return step{parent, elems} }

// tutorialX: root→{a,b,c},{d,e,f}; {a,b,c}→{a},{b,c}; {b,c}→{b},{c}.
func tutorialX(t testing.TB) *hierpart.Partition[string] {
	return tree(t, abcdef,
		s(0, "a", "b", "c"), s(0, "d", "e", "f"),
		s(1, "a"), s(1, "b", "c"),
		s(4, "b"), s(4, "c"))
}

// tutorialY: root→{a,b,c},{d,e,f}; {d,e,f}→{f},{d,e}; {d,e}→{d},{e}.
func tutorialY(t testing.TB) *hierpart.Partition[string] {
	return tree(t, abcdef,
		s(0, "a", "b", "c"), s(0, "d", "e", "f"),
		s(2, "f"), s(2, "d", "e"),
		s(4, "d"), s(4, "e"))
}

// twoBlocks: root→{a,b,c},{d,e,f}.
func twoBlocks(t testing.TB) *hierpart.Partition[string] {
	return tree(t, abcdef, s(0, "a", "b", "c"), s(0, "d", "e", "f"))
}

// chain peels one element per level: {0..n-1}→{0},{1..n-1}→{1},{2..n-1}...
func chain(t testing.TB, n int) *hierpart.Partition[string] {
	t.Helper()
	universe := make([]string, n)
	for i := range universe {
		universe[i] = strconv.Itoa(i)
	}
	p, err := hierpart.New(universe)
	require.NoError(t, err)
	parent := p.Root()
	for i := 0; i < n-1; i++ {
		_, err := p.AddChild(parent, universe[i:i+1])
		require.NoError(t, err)
		parent, err = p.AddChild(parent, universe[i+1:])
		require.NoError(t, err)
	}
	return p
}
