package forest

// Indeterminate reports whether the subtree below the given node is
// partially selected: some, but not all, of its descendants are in the
// selection. Leaves and unknown ids are never indeterminate.
//
// The check covers the entire descendant subtree, not just immediate
// children: a selected grandchild makes a grandparent indeterminate even
// when the intermediate child is unselected. The node's own selection
// state does not participate; selected and indeterminate are independent
// flags composed by the caller.
func Indeterminate(f *Forest, sel *Selection, id string) bool {
	node, ok := f.Find(id)
	if !ok || len(node.Children) == 0 {
		return false
	}

	descendants := f.DescendantIDs(id)
	if len(descendants) == 0 {
		return false
	}

	selected := 0
	for _, descID := range descendants {
		if sel.IsSelected(descID) {
			selected++
		}
	}
	return selected > 0 && selected < len(descendants)
}
