package handler

import (
	"log/slog"
	"net/http"

	"arbor/internal/domain/services"
	"arbor/internal/httputil"
)

// SnapshotHandler handles HTTP requests for connector snapshots
type SnapshotHandler struct {
	snapshots services.SnapshotService
	logger    *slog.Logger
}

// NewSnapshotHandler creates a new snapshot handler
func NewSnapshotHandler(snapshots services.SnapshotService, logger *slog.Logger) *SnapshotHandler {
	return &SnapshotHandler{
		snapshots: snapshots,
		logger:    logger,
	}
}

// Ingest stores a connector listing as a new snapshot
func (h *SnapshotHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	connectorID := r.PathValue("id")
	if connectorID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "connector id is required")
		return
	}

	var req IngestSnapshotRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	snapshot, err := h.snapshots.Ingest(r.Context(), &services.IngestSnapshotRequest{
		ConnectorID:   connectorID,
		ConnectorType: req.ConnectorType,
		Roots:         req.Roots,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, snapshot)
}

// GetSnapshot returns snapshot metadata with its node listing
func (h *SnapshotHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.snapshots.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, snapshot)
}

// GetLatestSnapshot returns the most recent snapshot for a connector
func (h *SnapshotHandler) GetLatestSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.snapshots.Latest(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, snapshot)
}

// HealthCheck reports service liveness
func (h *SnapshotHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
