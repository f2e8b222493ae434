package models

import (
	"time"

	"arbor/internal/forest"
)

// Snapshot is one immutable capture of a connector's location listing
// (cabinets, vaults, folders). A picker session pins exactly one snapshot
// for its whole lifetime; refreshed listings become new snapshots.
type Snapshot struct {
	ID          string    `json:"id" db:"id"`
	ConnectorID string    `json:"connector_id" db:"connector_id"`
	// Fingerprint is an xxhash over the canonical node listing, used to
	// detect listing drift between a session and a later confirmation.
	Fingerprint string    `json:"fingerprint" db:"fingerprint"`
	NodeCount   int       `json:"node_count" db:"node_count"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// SnapshotWithNodes bundles snapshot metadata with the stored node records.
// The nested records are the engine's input format; extra fields sent by a
// connector are dropped on decode rather than rejected.
type SnapshotWithNodes struct {
	Snapshot
	Roots []forest.NodeRecord `json:"roots"`
}
