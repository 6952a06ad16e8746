// Package io reads and writes hierarchical partitions of string elements.
//
// # Formats
//
// Three formats are supported, chosen by [DetectFormat] from the file
// extension or explicitly with [ParseFormat]:
//
//   - json (.json): a [Document] listing every module
//   - yaml (.yaml, .yml): the same [Document] in YAML
//   - paths (.txt, .hp, .paths): one line per module that holds elements no
//     child claims, giving the module's path from the root and those
//     elements
//
// # Document Format
//
//	{
//	  "modules": [
//	    {"id": 0, "elements": ["a", "b", "c", "d"]},
//	    {"id": 1, "parent": 0, "elements": ["a", "b"]},
//	    {"id": 2, "parent": 0, "elements": ["c"]}
//	  ]
//	}
//
// Exactly one module has no parent: the root, whose elements are the
// universe. Identifiers are arbitrary integers local to the document; a
// parent must be listed before its children. Reading rebuilds the hierarchy
// through [hierpart.Partition.AddChild], so every subset and disjointness
// rule is enforced and reported with its error code.
//
// # Paths Format
//
//	# comment
//	0,0 "a"
//	0,1 "b","c"
//	1 "d","e","f"
//
// The first column is the comma-separated child index at each depth
// ("-" for the root), the second the quoted, comma-separated elements.
// Elements listed at a path whose module also has children are implicit
// singletons of that module. Element names must pass
// [errors.ValidateElement]: no whitespace, control characters or double
// quotes.
//
// # Concurrency
//
// Writers only read the partition and may run concurrently with other
// readers. Readers return independent partitions.
//
// [errors.ValidateElement]: github.com/matzehuels/hierpart/pkg/errors.ValidateElement
package io
