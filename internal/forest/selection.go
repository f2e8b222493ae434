package forest

import "sort"

// Selection is the mutable set of selected node ids for one picker session.
// It is not internally synchronized; the host serializes access per session.
type Selection struct {
	ids map[string]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// Seed marks the given ids as selected, ignoring any id not present in the
// forest (e.g. ids confirmed against an older snapshot).
func (s *Selection) Seed(f *Forest, ids []string) {
	for _, id := range ids {
		if _, ok := f.Find(id); ok {
			s.ids[id] = struct{}{}
		}
	}
}

// IsSelected reports whether the id is currently selected.
func (s *Selection) IsSelected(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Toggle flips the selection state of the node with the given id.
//
// The rule is asymmetric on purpose: deselecting a node also clears every
// descendant, while selecting a node selects only that node and leaves its
// descendants untouched. Do not make this symmetric; the picker's observed
// behavior depends on the cascade running in one direction only.
//
// An id not present in the forest is a no-op: a silently ignored toggle is
// preferable to a selection set referencing nodes that do not exist.
func (s *Selection) Toggle(f *Forest, id string) {
	if _, ok := f.Find(id); !ok {
		return
	}

	if s.IsSelected(id) {
		delete(s.ids, id)
		for _, descID := range f.DescendantIDs(id) {
			delete(s.ids, descID)
		}
		return
	}

	s.ids[id] = struct{}{}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.ids = make(map[string]struct{})
}

// IDs returns the selected ids sorted lexicographically.
func (s *Selection) IDs() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of selected ids.
func (s *Selection) Len() int {
	return len(s.ids)
}
