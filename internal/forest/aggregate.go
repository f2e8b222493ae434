package forest

// TotalDocuments sums the document counts of every selected node across the
// full forest. Aggregation deliberately ignores any active search filter:
// it always runs over the unfiltered snapshot, and a selected node
// contributes regardless of its ancestors' selection state. Nodes without
// a count contribute zero.
func TotalDocuments(f *Forest, sel *Selection) int {
	total := 0
	for id, node := range f.nodes {
		if node.DocumentCount == nil {
			continue
		}
		if sel.IsSelected(id) {
			total += *node.DocumentCount
		}
	}
	return total
}

// SelectedCount returns the number of selected node ids (not documents).
func SelectedCount(sel *Selection) int {
	return sel.Len()
}
