package hierpart_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matzehuels/hierpart/pkg/hierpart"
)

// tutorialX builds root→{a,b,c},{d,e,f}; {a,b,c}→{a},{b,c}; {b,c}→{b},{c}.
func tutorialX(t testing.TB) *hierpart.Partition[string] {
	t.Helper()
	p, err := hierpart.New([]string{"a", "b", "c", "d", "e", "f"})
	require.NoError(t, err)
	abc := mustAdd(t, p, p.Root(), "a", "b", "c")
	mustAdd(t, p, p.Root(), "d", "e", "f")
	mustAdd(t, p, abc, "a")
	bc := mustAdd(t, p, abc, "b", "c")
	mustAdd(t, p, bc, "b")
	mustAdd(t, p, bc, "c")
	return p
}

func mustAdd(t testing.TB, p *hierpart.Partition[string], parent hierpart.ModuleID, elems ...string) hierpart.ModuleID {
	t.Helper()
	id, err := p.AddChild(parent, elems)
	require.NoError(t, err)
	return id
}

// snapshot captures everything observable about a partition.
func snapshot(p *hierpart.Partition[string]) map[hierpart.ModuleID][]string {
	out := make(map[hierpart.ModuleID][]string)
	for id, elems := range p.Show() {
		out[id] = elems
	}
	return out
}
