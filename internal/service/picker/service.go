package picker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"arbor/internal/domain"
	"arbor/internal/domain/models"
	"arbor/internal/domain/repositories"
	"arbor/internal/domain/services"
	"arbor/internal/forest"
)

// Service hosts picker sessions over stored snapshots and persists
// confirmed selections. It implements services.PickerService.
type Service struct {
	snapshots     repositories.SnapshotRepository
	confirmations repositories.ConfirmationRepository
	txManager     repositories.TransactionManager
	sessions      *sessionRegistry
	logger        *slog.Logger
}

// NewService creates a picker service. Close must be called on shutdown to
// stop the session sweeper.
func NewService(
	snapshots repositories.SnapshotRepository,
	confirmations repositories.ConfirmationRepository,
	txManager repositories.TransactionManager,
	sessionTTL time.Duration,
	sweepInterval time.Duration,
	logger *slog.Logger,
) *Service {
	return &Service{
		snapshots:     snapshots,
		confirmations: confirmations,
		txManager:     txManager,
		sessions:      newSessionRegistry(sessionTTL, sweepInterval, logger),
		logger:        logger,
	}
}

// Close stops background work. Live sessions are discarded; they are
// in-memory state the wizard can recreate.
func (s *Service) Close() {
	s.sessions.Close()
}

// CreateSession opens a session against a snapshot. The snapshot and the
// connector's last confirmation load concurrently; the confirmation is
// only consulted when the request asks to seed from it.
func (s *Service) CreateSession(ctx context.Context, req *services.CreateSessionRequest) (*models.PickerSession, error) {
	if err := validateCreateSession(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var (
		snap *models.SnapshotWithNodes
		conf *models.Confirmation
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if req.SnapshotID != "" {
			snap, err = s.snapshots.GetByID(gctx, req.SnapshotID)
		} else {
			snap, err = s.snapshots.LatestByConnector(gctx, req.ConnectorID)
		}
		if err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}
		return nil
	})
	if req.SeedFromConfirmation {
		g.Go(func() error {
			var err error
			conf, err = s.confirmations.LatestByConnector(gctx, req.ConnectorID)
			if err != nil {
				// Never confirmed is a normal state for a new connector
				if isNotFound(err) {
					conf = nil
					return nil
				}
				return fmt.Errorf("load confirmation: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if snap.ConnectorID != req.ConnectorID {
		return nil, fmt.Errorf("%w: snapshot %s belongs to connector %s",
			domain.ErrValidation, snap.ID, snap.ConnectorID)
	}

	now := time.Now().UTC()
	sess := &session{
		id:           uuid.NewString(),
		connectorID:  snap.ConnectorID,
		snapshotID:   snap.ID,
		fingerprint:  snap.Fingerprint,
		forest:       forest.New(snap.Roots),
		selection:    forest.NewSelection(),
		createdAt:    now,
		lastActivity: now,
	}
	if conf != nil {
		// Ids confirmed against an older listing may be gone; Seed drops them
		sess.selection.Seed(sess.forest, conf.SelectedIDs)
	}

	s.sessions.add(sess)

	s.logger.Info("picker session created",
		"session_id", sess.id,
		"connector_id", sess.connectorID,
		"snapshot_id", sess.snapshotID,
		"node_count", sess.forest.Len(),
		"seeded", conf != nil,
	)

	return sessionModel(sess), nil
}

// GetSession returns metadata for a live session.
func (s *Service) GetSession(ctx context.Context, sessionID string) (*models.PickerSession, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sessionModel(sess), nil
}

// View derives the rendered tree for the given query. The filter applies
// to the tree only; the aggregates always cover the full forest.
func (s *Service) View(ctx context.Context, sessionID, query string) (*models.SessionView, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.touch()

	return buildView(sess, query), nil
}

// Toggle flips the selection state of one node and returns refreshed
// aggregates. A node id not present in the snapshot is ignored.
func (s *Service) Toggle(ctx context.Context, sessionID, nodeID string) (*models.SelectionSummary, error) {
	if nodeID == "" {
		return nil, fmt.Errorf("%w: node id is required", domain.ErrValidation)
	}

	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.touch()

	if _, ok := sess.forest.Find(nodeID); !ok {
		// Tolerated: likely a stale id from a previous snapshot render
		s.logger.Debug("toggle ignored for unknown node",
			"session_id", sessionID, "node_id", nodeID)
	}
	sess.selection.Toggle(sess.forest, nodeID)

	return summary(sess), nil
}

// Clear deselects everything in the session.
func (s *Service) Clear(ctx context.Context, sessionID string) (*models.SelectionSummary, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.touch()

	sess.selection.Clear()
	return summary(sess), nil
}

// Confirm persists the session's selection as the connector's confirmed
// location set and closes the session. The previous confirmation is
// replaced in the same transaction.
func (s *Service) Confirm(ctx context.Context, sessionID string) (*models.Confirmation, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	confirmation := &models.Confirmation{
		ID:                  uuid.NewString(),
		ConnectorID:         sess.connectorID,
		SnapshotID:          sess.snapshotID,
		SnapshotFingerprint: sess.fingerprint,
		SelectedIDs:         sess.selection.IDs(),
		DocumentTotal:       forest.TotalDocuments(sess.forest, sess.selection),
		ConfirmedAt:         time.Now().UTC(),
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.confirmations.DeleteByConnector(txCtx, sess.connectorID); err != nil {
			return fmt.Errorf("replace confirmation: %w", err)
		}
		if err := s.confirmations.Create(txCtx, confirmation); err != nil {
			return fmt.Errorf("store confirmation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.sessions.remove(sessionID)

	s.logger.Info("selection confirmed",
		"session_id", sessionID,
		"connector_id", confirmation.ConnectorID,
		"selected_count", len(confirmation.SelectedIDs),
		"document_total", confirmation.DocumentTotal,
	)

	return confirmation, nil
}

// CloseSession discards a session without confirming.
func (s *Service) CloseSession(ctx context.Context, sessionID string) error {
	if !s.sessions.remove(sessionID) {
		return &domain.NotFoundError{Message: fmt.Sprintf("session %s not found", sessionID)}
	}
	s.logger.Info("picker session closed", "session_id", sessionID)
	return nil
}

// lookup resolves a live session or reports it gone.
func (s *Service) lookup(sessionID string) (*session, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session id is required", domain.ErrValidation)
	}
	sess, ok := s.sessions.get(sessionID)
	if !ok {
		return nil, &domain.SessionClosedError{SessionID: sessionID}
	}
	return sess, nil
}

func validateCreateSession(req *services.CreateSessionRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.ConnectorID, validation.Required),
	)
}

// sessionModel converts internal session state to its API model. Callers
// hold the session mutex (or the session is not yet shared).
func sessionModel(sess *session) *models.PickerSession {
	return &models.PickerSession{
		ID:           sess.id,
		ConnectorID:  sess.connectorID,
		SnapshotID:   sess.snapshotID,
		Fingerprint:  sess.fingerprint,
		NodeCount:    sess.forest.Len(),
		CreatedAt:    sess.createdAt,
		LastActivity: sess.lastActivity,
	}
}

// summary computes post-mutation aggregates. Callers hold the session mutex.
func summary(sess *session) *models.SelectionSummary {
	return &models.SelectionSummary{
		SessionID:     sess.id,
		SelectedCount: forest.SelectedCount(sess.selection),
		DocumentTotal: forest.TotalDocuments(sess.forest, sess.selection),
	}
}

func isNotFound(err error) bool {
	var nf *domain.NotFoundError
	return errors.Is(err, domain.ErrNotFound) || errors.As(err, &nf)
}
