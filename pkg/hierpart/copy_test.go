package hierpart_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/hierpart/pkg/hierpart"
)

func TestCopyIsIndependent(t *testing.T) {
	p := tutorialX(t)
	q := p.Copy()

	assert.Equal(t, snapshot(p), snapshot(q))

	_, err := q.AddChild(2, []string{"d"})
	require.NoError(t, err)
	assert.Equal(t, 7, p.Len())
	assert.Equal(t, 8, q.Len())
}

func TestRelabelMap(t *testing.T) {
	p := tutorialX(t)
	mapping := map[string]string{}
	for _, e := range p.Universe() {
		mapping[e] = strings.ToUpper(e)
	}

	q, err := hierpart.RelabelMap(p, mapping)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C", "D", "E", "F"}, q.Universe())
	assert.Equal(t, []string{"B", "C"}, q.Elements(4))
	assert.Equal(t, p.Children(1), q.Children(1))
}

func TestRelabelChangesElementType(t *testing.T) {
	p := tutorialX(t)

	q, err := hierpart.Relabel(p, func(e string) (int, bool) { return int(e[0] - 'a'), true })
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, q.Elements(4))
}

func TestRelabelErrors(t *testing.T) {
	p := tutorialX(t)

	_, err := hierpart.RelabelMap(p, map[string]string{"a": "A"})
	assert.ErrorIs(t, err, hierpart.ErrIncompleteMapping)

	_, err = hierpart.Relabel(p, func(string) (string, bool) { return "same", true })
	assert.ErrorIs(t, err, hierpart.ErrInvalidUniverse)
}

func TestSameUniverse(t *testing.T) {
	a, _ := hierpart.New([]string{"a", "b", "c"})
	b, _ := hierpart.New([]string{"c", "a", "b"})
	c, _ := hierpart.New([]string{"a", "b", "d"})
	d, _ := hierpart.New([]string{"a", "b"})

	assert.True(t, hierpart.SameUniverse(a, b))
	assert.False(t, hierpart.SameUniverse(a, c))
	assert.False(t, hierpart.SameUniverse(a, d))
}

func TestEquivalent(t *testing.T) {
	x := tutorialX(t)

	// Same hierarchy built in a different order: different identifiers.
	y, err := hierpart.New([]string{"f", "e", "d", "c", "b", "a"})
	require.NoError(t, err)
	mustAdd(t, y, y.Root(), "d", "e", "f")
	abc := mustAdd(t, y, y.Root(), "c", "b", "a")
	bc := mustAdd(t, y, abc, "c", "b")
	mustAdd(t, y, bc, "c")
	mustAdd(t, y, abc, "a")
	mustAdd(t, y, bc, "b")

	assert.True(t, hierpart.Equivalent(x, y))
	assert.True(t, hierpart.Equivalent(y, x))
	assert.True(t, hierpart.Equivalent(x, x.Copy()))

	z := x.Copy()
	mustAdd(t, z, 2, "d")
	assert.False(t, hierpart.Equivalent(x, z))

	w, err := hierpart.New(x.Universe())
	require.NoError(t, err)
	mustAdd(t, w, w.Root(), "a", "b")
	mustAdd(t, w, w.Root(), "c", "d", "e", "f")
	assert.False(t, hierpart.Equivalent(x, w))
}
