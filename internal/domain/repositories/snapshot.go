package repositories

import (
	"context"

	"arbor/internal/domain/models"
)

// SnapshotRepository stores connector location snapshots. Snapshots are
// append-only: a refreshed listing is a new row, never an update, so a
// running picker session always reads the exact nodes it was created from.
type SnapshotRepository interface {
	Create(ctx context.Context, snapshot *models.SnapshotWithNodes) error
	GetByID(ctx context.Context, id string) (*models.SnapshotWithNodes, error)
	// LatestByConnector returns the most recent snapshot for a connector,
	// or domain.ErrNotFound if none was ever ingested.
	LatestByConnector(ctx context.Context, connectorID string) (*models.SnapshotWithNodes, error)
}
