package pipeline

import (
	"encoding/json"
	"slices"

	"github.com/matzehuels/hierpart/pkg/cache"
	"github.com/matzehuels/hierpart/pkg/hierpart"
)

// Fingerprint returns a SHA-256 hash of the structure of p. Two partitions
// have the same fingerprint exactly when [hierpart.Equivalent] holds, so the
// hash ignores module identifiers, sibling order and element order.
//
// Each module hashes its unclaimed elements and its children's hashes, both
// sorted, so the work is linear in the size of the tree.
func Fingerprint(p *hierpart.Partition[string]) string {
	hashes := make([]string, p.Len())
	// Children always have larger identifiers than their parent.
	for i := p.Len() - 1; i >= 0; i-- {
		id := hierpart.ModuleID(i)
		node := struct {
			Own      []string `json:"own"`
			Children []string `json:"children"`
		}{Own: []string{}, Children: []string{}}

		for _, e := range p.Elements(id) {
			if _, claimed := p.ChildOf(id, e); !claimed {
				node.Own = append(node.Own, e)
			}
		}
		for _, c := range p.Children(id) {
			node.Children = append(node.Children, hashes[c])
		}
		slices.Sort(node.Own)
		slices.Sort(node.Children)

		data, _ := json.Marshal(node)
		hashes[i] = cache.Digest(data)
	}
	return hashes[0]
}
