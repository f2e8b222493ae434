package models

import "time"

// Confirmation is the durable outcome of a picker session: the set of
// location ids the user confirmed for a connector, plus the document total
// at confirmation time. The in-progress selection is never persisted; only
// this final hand-off is.
type Confirmation struct {
	ID                  string    `json:"id" db:"id"`
	ConnectorID         string    `json:"connector_id" db:"connector_id"`
	SnapshotID          string    `json:"snapshot_id" db:"snapshot_id"`
	SnapshotFingerprint string    `json:"snapshot_fingerprint" db:"snapshot_fingerprint"`
	SelectedIDs         []string  `json:"selected_ids" db:"selected_ids"`
	DocumentTotal       int       `json:"document_total" db:"document_total"`
	ConfirmedAt         time.Time `json:"confirmed_at" db:"confirmed_at"`
}
