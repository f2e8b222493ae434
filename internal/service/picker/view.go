package picker

import (
	"arbor/internal/domain/models"
	"arbor/internal/forest"
)

// buildView derives the full render state for a session: the filtered tree
// with per-node selected/indeterminate flags, plus aggregates.
//
// The indeterminate flags are computed against the UNfiltered forest, so a
// parent whose selected child is hidden by the filter still renders as
// partially selected. The aggregates likewise ignore the filter entirely.
// Callers hold the session mutex.
func buildView(sess *session, query string) *models.SessionView {
	filtered := forest.Filter(sess.forest, query)

	roots := make([]*models.TreeNodeView, 0, len(filtered.Roots()))
	for _, rootID := range filtered.Roots() {
		roots = append(roots, buildNodeView(sess, filtered, rootID))
	}

	return &models.SessionView{
		SessionID:     sess.id,
		Query:         query,
		Roots:         roots,
		SelectedCount: forest.SelectedCount(sess.selection),
		DocumentTotal: forest.TotalDocuments(sess.forest, sess.selection),
	}
}

// buildNodeView renders one node of the filtered tree recursively.
func buildNodeView(sess *session, filtered *forest.Forest, id string) *models.TreeNodeView {
	node, ok := filtered.Find(id)
	if !ok {
		return nil
	}

	view := &models.TreeNodeView{
		ID:            node.ID,
		Name:          node.Name,
		Kind:          string(node.Kind),
		Path:          node.Path,
		DocumentCount: node.DocumentCount,
		Selected:      sess.selection.IsSelected(id),
		Indeterminate: forest.Indeterminate(sess.forest, sess.selection, id),
		Children:      make([]*models.TreeNodeView, 0, len(node.Children)),
	}
	for _, childID := range node.Children {
		if child := buildNodeView(sess, filtered, childID); child != nil {
			view.Children = append(view.Children, child)
		}
	}
	return view
}
