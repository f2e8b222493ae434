package handler

import "arbor/internal/forest"

// IngestSnapshotRequest is the wire form of a connector listing upload.
type IngestSnapshotRequest struct {
	ConnectorType string              `json:"connector_type"`
	Roots         []forest.NodeRecord `json:"roots"`
}

// CreateSessionRequest opens a picker session.
type CreateSessionRequest struct {
	ConnectorID          string `json:"connector_id"`
	SnapshotID           string `json:"snapshot_id,omitempty"`
	SeedFromConfirmation bool   `json:"seed_from_confirmation,omitempty"`
}

// ToggleRequest flips one node's selection state.
type ToggleRequest struct {
	NodeID string `json:"node_id"`
}
