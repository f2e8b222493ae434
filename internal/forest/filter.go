package forest

import "strings"

// Filter returns a reduced forest containing every node whose name or path
// contains the query (case-insensitive substring), plus the strict
// ancestors of each match. Descendants of a match are kept only when they
// match in their own right or sit on the ancestor chain of another match —
// a matched folder does not reveal its children. This scoping is carried
// over from the picker's observed behavior; do not widen it to full
// subtrees.
//
// An empty or whitespace-only query returns the receiver unchanged. Filter
// never mutates the original forest; kept nodes are copied with their
// child lists re-pruned, preserving sibling order.
func Filter(f *Forest, query string) *Forest {
	query = strings.TrimSpace(query)
	if query == "" {
		return f
	}
	query = strings.ToLower(query)

	keep := make(map[string]bool)
	for id, node := range f.nodes {
		if !strings.Contains(strings.ToLower(node.Name), query) &&
			!strings.Contains(strings.ToLower(node.Path), query) {
			continue
		}
		keep[id] = true
		for _, ancestorID := range f.AncestorIDs(id) {
			keep[ancestorID] = true
		}
	}

	filtered := &Forest{nodes: make(map[string]*Node, len(keep))}
	for _, rootID := range f.roots {
		if keep[rootID] {
			filtered.copyPruned(f, rootID, keep)
			filtered.roots = append(filtered.roots, rootID)
		}
	}
	return filtered
}

// copyPruned copies the node with the given id into the filtered forest,
// keeping only children present in the keep set. Already-copied ids stop
// the recursion, which also bounds it on malformed cyclic input.
func (dst *Forest) copyPruned(src *Forest, id string, keep map[string]bool) {
	if _, done := dst.nodes[id]; done {
		return
	}
	node := src.nodes[id]
	clone := *node
	clone.Children = nil
	dst.nodes[id] = &clone
	for _, childID := range node.Children {
		if keep[childID] {
			clone.Children = append(clone.Children, childID)
			dst.copyPruned(src, childID, keep)
		}
	}
}
