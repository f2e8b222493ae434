package services

import (
	"context"

	"arbor/internal/domain/models"
)

// CreateSessionRequest opens a picker session for a connector. When
// SnapshotID is empty, the connector's latest snapshot is used. With
// SeedFromConfirmation set, the session starts from the connector's last
// confirmed selection instead of empty; ids that no longer exist in the
// snapshot are silently dropped.
type CreateSessionRequest struct {
	ConnectorID          string
	SnapshotID           string
	SeedFromConfirmation bool
}

// PickerService hosts the in-memory location-picker sessions. Each session
// pins one forest snapshot and owns one selection set; all mutations on a
// session are serialized internally, and sessions share no state.
type PickerService interface {
	CreateSession(ctx context.Context, req *CreateSessionRequest) (*models.PickerSession, error)
	GetSession(ctx context.Context, sessionID string) (*models.PickerSession, error)
	// View derives the rendered tree for a query: filtered nodes with
	// selected/indeterminate flags plus aggregates over the full forest.
	View(ctx context.Context, sessionID, query string) (*models.SessionView, error)
	// Toggle flips one node's selection and returns the refreshed
	// aggregates. A node id unknown to the snapshot is a no-op.
	Toggle(ctx context.Context, sessionID, nodeID string) (*models.SelectionSummary, error)
	Clear(ctx context.Context, sessionID string) (*models.SelectionSummary, error)
	// Confirm persists the final selection for the connector and closes
	// the session.
	Confirm(ctx context.Context, sessionID string) (*models.Confirmation, error)
	CloseSession(ctx context.Context, sessionID string) error
}
