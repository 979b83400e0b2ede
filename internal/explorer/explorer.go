// Package explorer is the listing producer: it enumerates a directory,
// builds nodes, applies the visibility predicate and hands the result back
// to the engine as an AddDirectory message. The engine never walks the
// filesystem itself.
package explorer

import (
	"os"
	"sort"

	"ferret/internal/filter"
	"ferret/internal/node"
)

// Explore builds the sorted listing for parent, keeping only nodes visible
// under the filter set. The focus hint is clamped into the new listing so a
// re-explored directory keeps its cursor position when possible.
func Explore(parent string, filters filter.Set, focus int) (node.DirectoryBuffer, error) {
	entries, err := os.ReadDir(parent)
	if err != nil {
		return node.DirectoryBuffer{}, err
	}

	var nodes []node.Node
	for _, entry := range entries {
		n := node.New(parent, entry.Name())
		if filters.Match(n) {
			nodes = append(nodes, n)
		}
	}
	sort.Slice(nodes, func(i, j int) bool {
		return node.Compare(nodes[i], nodes[j]) < 0
	})

	if focus >= len(nodes) {
		focus = len(nodes) - 1
	}
	if focus < 0 {
		focus = 0
	}

	return node.NewDirectoryBuffer(parent, nodes, focus), nil
}
