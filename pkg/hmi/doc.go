// Package hmi computes the hierarchical mutual information (HMI) between two
// hierarchical partitions of the same universe, and its normalized variant.
//
// # Definition
//
// For a pair of modules (a, b) sharing the element set S, let L(a) and L(b)
// be their local partitions restricted to S (see
// [github.com/matzehuels/hierpart/pkg/hierpart.Partition.LevelWithin]). Then
//
//	I(a;b) = MI(L(a), L(b)) + Σ_{g∈L(a), h∈L(b)} |g∩h|/|S| · I(g;h | g∩h)
//
// where MI is the ordinary mutual information of two flat partitions in
// nats, and the recursive term is taken over the explicit modules owning g
// and h, restricted to their intersection. Implicit singleton groups and
// leaves have nothing below them and contribute zero. HMI(A,B) is I(rootA;
// rootB) over the whole universe.
//
// HMI rewards agreement at every depth both hierarchies resolve. Refinement
// present in only one of them, below a depth where the other is already a
// leaf, is neither rewarded nor penalized.
//
// # Usage
//
//	i, err := hmi.Mutual(x, y)
//	score, err := hmi.Normalized(x, y)
//	fmt.Println(score.Normalized, score.Cross, score.SelfA, score.SelfB)
//
// # Implementation
//
// The recursion runs on an explicit work stack of (moduleA, moduleB,
// elements, weight) items, so hierarchy depth is bounded by memory rather
// than by the goroutine stack. Inputs are only read: any number of
// comparisons may run concurrently over the same finished partitions.
package hmi
