package hmi

import (
	"math"

	"github.com/matzehuels/hierpart/pkg/hierpart"
)

// Score is the result of [Normalized].
type Score struct {
	// Normalized is Cross divided by the configured mean of SelfA and SelfB,
	// in [0, 1].
	Normalized float64 `json:"normalized"`
	// Cross is HMI(A, B).
	Cross float64 `json:"cross"`
	// SelfA is HMI(A, A).
	SelfA float64 `json:"self_a"`
	// SelfB is HMI(B, B).
	SelfB float64 `json:"self_b"`
}

// Values returns (Normalized, Cross, SelfA, SelfB).
func (s Score) Values() (float64, float64, float64, float64) {
	return s.Normalized, s.Cross, s.SelfA, s.SelfB
}

// Swap returns the score of the reversed comparison.
func (s Score) Swap() Score {
	s.SelfA, s.SelfB = s.SelfB, s.SelfA
	return s
}

// Normalized computes HMI(A,A), HMI(B,B) and HMI(A,B) and divides the latter
// by max(HMI(A,A), HMI(B,B)), or by their geometric mean with
// WithMean(MeanGeometric).
//
// When the denominator is zero, both hierarchies carry no information. The
// score is then 1 if they are structurally equivalent and 0 otherwise.
//
// Returns an error wrapping [ErrUniverseMismatch] if the universes differ.
func Normalized[E comparable](a, b *hierpart.Partition[E], opts ...Option) (Score, error) {
	cross, err := Mutual(a, b, opts...)
	if err != nil {
		return Score{}, err
	}
	selfA, err := Mutual(a, a, opts...)
	if err != nil {
		return Score{}, err
	}
	selfB := selfA
	if a != b {
		if selfB, err = Mutual(b, b, opts...); err != nil {
			return Score{}, err
		}
	}
	return Normalize(cross, selfA, selfB, hierpart.Equivalent(a, b), opts...), nil
}

// Normalize builds a [Score] from already computed informations. equivalent
// reports whether the two hierarchies are structurally identical and only
// matters when the denominator is zero.
func Normalize(cross, selfA, selfB float64, equivalent bool, opts ...Option) Score {
	s := Score{Cross: cross, SelfA: selfA, SelfB: selfB}

	var denom float64
	switch newConfig(opts).mean {
	case MeanGeometric:
		denom = math.Sqrt(selfA * selfB)
	default:
		denom = max(selfA, selfB)
	}

	if denom <= 0 {
		if selfA == 0 && selfB == 0 && equivalent {
			s.Normalized = 1
		}
		return s
	}
	s.Normalized = min(max(cross/denom, 0), 1)
	return s
}
