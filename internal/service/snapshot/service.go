package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"arbor/internal/config"
	"arbor/internal/connectors"
	"arbor/internal/domain"
	"arbor/internal/domain/models"
	"arbor/internal/domain/repositories"
	"arbor/internal/domain/services"
)

// snapshotService implements the SnapshotService interface
type snapshotService struct {
	snapshots repositories.SnapshotRepository
	registry  *connectors.Registry
	logger    *slog.Logger
}

// NewService creates a new snapshot service
func NewService(
	snapshots repositories.SnapshotRepository,
	registry *connectors.Registry,
	logger *slog.Logger,
) services.SnapshotService {
	return &snapshotService{
		snapshots: snapshots,
		registry:  registry,
		logger:    logger,
	}
}

// Ingest validates and stores one connector listing as a new snapshot.
func (s *snapshotService) Ingest(ctx context.Context, req *services.IngestSnapshotRequest) (*models.Snapshot, error) {
	if err := s.validateIngestRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	spec, err := s.registry.Get(req.ConnectorType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if issues := validateStructure(spec, req.Roots); len(issues) > 0 {
		// Report the first few defects; a broken export will usually have
		// many of the same
		limit := len(issues)
		if limit > 5 {
			limit = 5
		}
		msgs := make([]string, 0, limit)
		for _, issue := range issues[:limit] {
			msgs = append(msgs, issue.String())
		}
		return nil, fmt.Errorf("%w: malformed listing: %s", domain.ErrValidation, strings.Join(msgs, "; "))
	}

	snapshot := &models.SnapshotWithNodes{
		Snapshot: models.Snapshot{
			ID:          uuid.NewString(),
			ConnectorID: req.ConnectorID,
			Fingerprint: Fingerprint(req.Roots),
			NodeCount:   countNodes(req.Roots),
			CreatedAt:   time.Now().UTC(),
		},
		Roots: req.Roots,
	}

	if err := s.snapshots.Create(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("store snapshot: %w", err)
	}

	s.logger.Info("snapshot ingested",
		"snapshot_id", snapshot.ID,
		"connector_id", snapshot.ConnectorID,
		"connector_type", req.ConnectorType,
		"node_count", snapshot.NodeCount,
		"fingerprint", snapshot.Fingerprint,
	)

	return &snapshot.Snapshot, nil
}

// Get retrieves a snapshot with its node records.
func (s *snapshotService) Get(ctx context.Context, id string) (*models.SnapshotWithNodes, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: snapshot id is required", domain.ErrValidation)
	}
	return s.snapshots.GetByID(ctx, id)
}

// Latest retrieves the most recent snapshot for a connector.
func (s *snapshotService) Latest(ctx context.Context, connectorID string) (*models.SnapshotWithNodes, error) {
	if connectorID == "" {
		return nil, fmt.Errorf("%w: connector id is required", domain.ErrValidation)
	}
	return s.snapshots.LatestByConnector(ctx, connectorID)
}

// validateIngestRequest validates the request envelope; listing structure
// is checked separately against the connector spec.
func (s *snapshotService) validateIngestRequest(req *services.IngestSnapshotRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.ConnectorID,
			validation.Required,
			validation.Length(1, config.MaxConnectorIDLength),
		),
		validation.Field(&req.ConnectorType, validation.Required),
		validation.Field(&req.Roots, validation.Required),
	)
}
