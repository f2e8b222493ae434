package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"arbor/internal/domain"
	"arbor/internal/domain/models"
	"arbor/internal/domain/repositories"
	"arbor/internal/forest"
)

// PostgresSnapshotRepository implements the SnapshotRepository interface
type PostgresSnapshotRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(config *RepositoryConfig) repositories.SnapshotRepository {
	return &PostgresSnapshotRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create stores a snapshot with its node listing as JSONB.
func (r *PostgresSnapshotRepository) Create(ctx context.Context, snapshot *models.SnapshotWithNodes) error {
	nodes, err := json.Marshal(snapshot.Roots)
	if err != nil {
		return fmt.Errorf("encode snapshot nodes: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, connector_id, fingerprint, node_count, nodes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.tables.Snapshots)

	executor := GetExecutor(ctx, r.pool)
	_, err = executor.Exec(ctx, query,
		snapshot.ID,
		snapshot.ConnectorID,
		snapshot.Fingerprint,
		snapshot.NodeCount,
		nodes,
		snapshot.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}

	return nil
}

// GetByID retrieves a snapshot by ID
func (r *PostgresSnapshotRepository) GetByID(ctx context.Context, id string) (*models.SnapshotWithNodes, error) {
	query := fmt.Sprintf(`
		SELECT id, connector_id, fingerprint, node_count, nodes, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Snapshots)

	return r.scanOne(ctx, query, id)
}

// LatestByConnector retrieves the most recent snapshot for a connector
func (r *PostgresSnapshotRepository) LatestByConnector(ctx context.Context, connectorID string) (*models.SnapshotWithNodes, error) {
	query := fmt.Sprintf(`
		SELECT id, connector_id, fingerprint, node_count, nodes, created_at
		FROM %s
		WHERE connector_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, r.tables.Snapshots)

	return r.scanOne(ctx, query, connectorID)
}

func (r *PostgresSnapshotRepository) scanOne(ctx context.Context, query string, arg any) (*models.SnapshotWithNodes, error) {
	var (
		snapshot models.SnapshotWithNodes
		nodes    []byte
	)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, arg).Scan(
		&snapshot.ID,
		&snapshot.ConnectorID,
		&snapshot.Fingerprint,
		&snapshot.NodeCount,
		&nodes,
		&snapshot.CreatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("snapshot %v: %w", arg, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}

	var roots []forest.NodeRecord
	if err := json.Unmarshal(nodes, &roots); err != nil {
		return nil, fmt.Errorf("decode snapshot nodes: %w", err)
	}
	snapshot.Roots = roots

	return &snapshot, nil
}
