package hmi_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	herrors "github.com/matzehuels/hierpart/pkg/errors"
	"github.com/matzehuels/hierpart/pkg/hierpart"
	"github.com/matzehuels/hierpart/pkg/hmi"
)

func TestNormalizedTutorial(t *testing.T) {
	score, err := hmi.Normalized(tutorialX(t), tutorialY(t))
	require.NoError(t, err)

	n, cross, sa, sb := score.Values()
	assert.InDelta(t, 0.55788589130, n, eps)
	assert.InDelta(t, 0.69314718056, cross, eps)
	assert.InDelta(t, 1.242453324894, sa, eps)
	assert.InDelta(t, 1.242453324894, sb, eps)
}

func TestNormalizedIdentical(t *testing.T) {
	x := tutorialX(t)
	score, err := hmi.Normalized(x, x)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score.Normalized, eps)

	score, err = hmi.Normalized(x, x.Copy())
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score.Normalized, eps)
}

func TestNormalizedTrivial(t *testing.T) {
	a, b := tree(t, abcdef), tree(t, abcdef)

	score, err := hmi.Normalized(a, b)
	require.NoError(t, err)
	assert.Equal(t, hmi.Score{Normalized: 1}, score)

	score, err = hmi.Normalized(a, tutorialX(t))
	require.NoError(t, err)
	assert.Zero(t, score.Normalized)
	assert.Zero(t, score.Cross)
	assert.Zero(t, score.SelfA)
	assert.InDelta(t, selfX, score.SelfB, eps)
}

func TestNormalizedGeometricMean(t *testing.T) {
	x, z := tutorialX(t), twoBlocks(t)

	byMax, err := hmi.Normalized(x, z)
	require.NoError(t, err)
	assert.InDelta(t, math.Ln2/selfX, byMax.Normalized, eps)

	geo, err := hmi.Normalized(x, z, hmi.WithMean(hmi.MeanGeometric))
	require.NoError(t, err)
	assert.InDelta(t, math.Ln2/math.Sqrt(selfX*math.Ln2), geo.Normalized, eps)
	assert.Greater(t, geo.Normalized, byMax.Normalized)
	assert.Equal(t, byMax.Cross, geo.Cross)
}

func TestNormalizedBounded(t *testing.T) {
	x := tutorialX(t)
	others := []*hierpart.Partition[string]{
		tutorialY(t),
		twoBlocks(t),
		tree(t, abcdef, s(0, "a", "e"), s(1, "a")),
		tree(t, abcdef, s(0, "c")),
	}
	for _, mean := range []hmi.Mean{hmi.MeanMax, hmi.MeanGeometric} {
		for i, other := range others {
			score, err := hmi.Normalized(x, other, hmi.WithMean(mean))
			require.NoError(t, err)
			assert.GreaterOrEqual(t, score.Normalized, 0.0, "%s/%d", mean, i)
			assert.LessOrEqual(t, score.Normalized, 1.0, "%s/%d", mean, i)
		}
	}
}

func TestScoreSwap(t *testing.T) {
	sc := hmi.Score{Normalized: 0.5, Cross: 1, SelfA: 2, SelfB: 3}
	assert.Equal(t, hmi.Score{Normalized: 0.5, Cross: 1, SelfA: 3, SelfB: 2}, sc.Swap())
}

func TestParseMean(t *testing.T) {
	tests := []struct {
		in   string
		want hmi.Mean
		err  bool
	}{
		{"", hmi.MeanMax, false},
		{"max", hmi.MeanMax, false},
		{"Geometric", hmi.MeanGeometric, false},
		{"sqrt", hmi.MeanGeometric, false},
		{"median", hmi.MeanMax, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := hmi.ParseMean(tt.in)
			if tt.err {
				assert.True(t, herrors.Is(err, herrors.ErrCodeInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, must(hmi.ParseMean(got.String())))
		})
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name                string
		cross, selfA, selfB float64
		equivalent          bool
		mean                hmi.Mean
		want                float64
	}{
		{"max", 1, 2, 4, false, hmi.MeanMax, 0.25},
		{"geometric", 1, 2, 8, false, hmi.MeanGeometric, 0.25},
		{"clamped", 2.0000000001, 2, 2, false, hmi.MeanMax, 1},
		{"both trivial equivalent", 0, 0, 0, true, hmi.MeanMax, 1},
		{"both trivial different", 0, 0, 0, false, hmi.MeanMax, 0},
		{"one trivial geometric", 0, 0, 3, false, hmi.MeanGeometric, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hmi.Normalize(tt.cross, tt.selfA, tt.selfB, tt.equivalent, hmi.WithMean(tt.mean))
			assert.InDelta(t, tt.want, got.Normalized, eps)
			assert.Equal(t, tt.selfA, got.SelfA)
			assert.Equal(t, tt.selfB, got.SelfB)
		})
	}
}
