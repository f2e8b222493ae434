package models

import "time"

// PickerSession is the server-side state of one interactive location-picker
// interaction: one snapshot, one selection set, discarded on confirm or
// expiry. Only metadata is exposed; the forest and selection live in the
// picker service.
type PickerSession struct {
	ID           string    `json:"id"`
	ConnectorID  string    `json:"connector_id"`
	SnapshotID   string    `json:"snapshot_id"`
	Fingerprint  string    `json:"fingerprint"`
	NodeCount    int       `json:"node_count"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
}

// TreeNodeView is one node of the tree as rendered to the wizard UI, with
// the derived selection flags composed in. Selected and Indeterminate are
// independent: a node can carry both.
type TreeNodeView struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Kind          string          `json:"kind"`
	Path          string          `json:"path"`
	DocumentCount *int            `json:"document_count,omitempty"`
	Selected      bool            `json:"selected"`
	Indeterminate bool            `json:"indeterminate"`
	Children      []*TreeNodeView `json:"children"`
}

// SessionView is the full derived state for one render: the (possibly
// filtered) tree plus aggregates. Aggregates are always computed over the
// unfiltered forest, never the filtered view.
type SessionView struct {
	SessionID     string          `json:"session_id"`
	Query         string          `json:"query,omitempty"`
	Roots         []*TreeNodeView `json:"roots"`
	SelectedCount int             `json:"selected_count"`
	DocumentTotal int             `json:"document_total"`
}

// SelectionSummary is the cheap post-mutation response: enough for the UI
// to refresh its counters without re-requesting the whole tree.
type SelectionSummary struct {
	SessionID     string `json:"session_id"`
	SelectedCount int    `json:"selected_count"`
	DocumentTotal int    `json:"document_total"`
}
