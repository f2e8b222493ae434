package repositories

import (
	"context"

	"arbor/internal/domain/models"
)

// ConfirmationRepository stores the confirmed location selection per
// connector. Only the latest confirmation per connector is kept; replacing
// it happens transactionally so a sync job never observes a half-written
// selection.
type ConfirmationRepository interface {
	Create(ctx context.Context, confirmation *models.Confirmation) error
	DeleteByConnector(ctx context.Context, connectorID string) error
	// LatestByConnector returns domain.ErrNotFound when the connector has
	// never been confirmed.
	LatestByConnector(ctx context.Context, connectorID string) (*models.Confirmation, error)
}
