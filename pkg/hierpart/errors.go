package hierpart

import "errors"

var (
	// ErrInvalidUniverse is returned by [New] when the universe is empty or
	// lists the same element more than once.
	ErrInvalidUniverse = errors.New("invalid universe")

	// ErrUnknownModule is returned when a module identifier does not exist
	// in the partition.
	ErrUnknownModule = errors.New("unknown module")

	// ErrEmptyModule is returned by [Partition.AddChild] when the child has
	// no elements. Every module holds at least one element.
	ErrEmptyModule = errors.New("module must not be empty")

	// ErrDuplicateElement is returned by [Partition.AddChild] when the same
	// element is listed twice for one child.
	ErrDuplicateElement = errors.New("duplicate element")

	// ErrNotASubset is returned by [Partition.AddChild] when an element of
	// the child is not in its parent.
	ErrNotASubset = errors.New("child elements are not a subset of the parent")

	// ErrOverlap is returned by [Partition.AddChild] when an element of the
	// child already belongs to one of its siblings.
	ErrOverlap = errors.New("child elements overlap a sibling")

	// ErrIncompleteMapping is returned by [Relabel] when the mapping misses
	// an element of the universe.
	ErrIncompleteMapping = errors.New("mapping does not cover the universe")
)
