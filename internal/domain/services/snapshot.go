package services

import (
	"context"

	"arbor/internal/domain/models"
	"arbor/internal/forest"
)

// IngestSnapshotRequest carries one connector listing to be stored as an
// immutable snapshot.
type IngestSnapshotRequest struct {
	ConnectorID   string
	ConnectorType string
	Roots         []forest.NodeRecord
}

// SnapshotService validates, fingerprints and stores connector location
// listings. Structural validation (duplicate ids, unknown kinds, depth)
// happens here at the boundary; the selection engine itself stays tolerant
// of whatever forest it is handed.
type SnapshotService interface {
	Ingest(ctx context.Context, req *IngestSnapshotRequest) (*models.Snapshot, error)
	Get(ctx context.Context, id string) (*models.SnapshotWithNodes, error)
	Latest(ctx context.Context, connectorID string) (*models.SnapshotWithNodes, error)
}
