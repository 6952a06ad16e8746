// Package hierpart provides a hierarchical partition: a tree of modules that
// recursively subdivide a fixed universe of elements.
//
// # Overview
//
// A hierarchical partition (or hierarchical community structure) starts with
// a root module holding the whole universe. Modules are refined by attaching
// children, each a non-empty subset of its parent, with no two siblings
// sharing an element. Children need not cover their parent: elements that no
// child claims stay undifferentiated at the parent's level.
//
// The word "module" always names a node of the tree. The members of the
// universe are called elements, even when they are the nodes of a network
// whose communities the hierarchy describes.
//
// # Basic Usage
//
// Create a partition with [New] and refine it with [Partition.AddChild].
// Module identifiers are assigned in creation order, starting at 0 for the
// root:
//
//	p, _ := hierpart.New([]string{"a", "b", "c", "d", "e", "f"})
//	abc, _ := p.AddChild(p.Root(), []string{"a", "b", "c"})
//	_, _ = p.AddChild(p.Root(), []string{"d", "e", "f"})
//	_, _ = p.AddChild(abc, []string{"a"})
//
//	for id, elems := range p.Show() {
//	    fmt.Println(id, elems)
//	}
//
// # Validation
//
// Every [Partition.AddChild] call validates before it writes anything. A
// rejected call returns an error wrapping one of the package sentinels
// ([ErrNotASubset], [ErrOverlap], ...) inside a coded
// [github.com/matzehuels/hierpart/pkg/errors.Error], and leaves the partition
// exactly as it was.
//
// # Levels
//
// [Partition.Level] and [Partition.LevelWithin] derive the local partition a
// module induces one level down. This is the input of the hierarchical mutual
// information engine in [github.com/matzehuels/hierpart/pkg/hmi].
//
// # Concurrency
//
// A Partition is not safe for concurrent mutation. Once building has
// finished, any number of goroutines may read, traverse, export or compare
// it concurrently.
package hierpart
