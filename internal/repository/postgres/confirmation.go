package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"arbor/internal/domain"
	"arbor/internal/domain/models"
	"arbor/internal/domain/repositories"
)

// PostgresConfirmationRepository implements the ConfirmationRepository interface
type PostgresConfirmationRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewConfirmationRepository creates a new confirmation repository
func NewConfirmationRepository(config *RepositoryConfig) repositories.ConfirmationRepository {
	return &PostgresConfirmationRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create stores a confirmed selection
func (r *PostgresConfirmationRepository) Create(ctx context.Context, confirmation *models.Confirmation) error {
	selectedIDs, err := json.Marshal(confirmation.SelectedIDs)
	if err != nil {
		return fmt.Errorf("encode selected ids: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, connector_id, snapshot_id, snapshot_fingerprint, selected_ids, document_total, confirmed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.tables.Confirmations)

	executor := GetExecutor(ctx, r.pool)
	_, err = executor.Exec(ctx, query,
		confirmation.ID,
		confirmation.ConnectorID,
		confirmation.SnapshotID,
		confirmation.SnapshotFingerprint,
		selectedIDs,
		confirmation.DocumentTotal,
		confirmation.ConfirmedAt,
	)
	if err != nil {
		return fmt.Errorf("create confirmation: %w", err)
	}

	return nil
}

// DeleteByConnector removes the stored confirmation for a connector
func (r *PostgresConfirmationRepository) DeleteByConnector(ctx context.Context, connectorID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE connector_id = $1`, r.tables.Confirmations)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, connectorID); err != nil {
		return fmt.Errorf("delete confirmation: %w", err)
	}
	return nil
}

// LatestByConnector retrieves the current confirmation for a connector
func (r *PostgresConfirmationRepository) LatestByConnector(ctx context.Context, connectorID string) (*models.Confirmation, error) {
	query := fmt.Sprintf(`
		SELECT id, connector_id, snapshot_id, snapshot_fingerprint, selected_ids, document_total, confirmed_at
		FROM %s
		WHERE connector_id = $1
		ORDER BY confirmed_at DESC
		LIMIT 1
	`, r.tables.Confirmations)

	var (
		confirmation models.Confirmation
		selectedIDs  []byte
	)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, connectorID).Scan(
		&confirmation.ID,
		&confirmation.ConnectorID,
		&confirmation.SnapshotID,
		&confirmation.SnapshotFingerprint,
		&selectedIDs,
		&confirmation.DocumentTotal,
		&confirmation.ConfirmedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("confirmation for connector %s: %w", connectorID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get confirmation: %w", err)
	}

	if err := json.Unmarshal(selectedIDs, &confirmation.SelectedIDs); err != nil {
		return nil, fmt.Errorf("decode selected ids: %w", err)
	}

	return &confirmation, nil
}
