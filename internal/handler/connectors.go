package handler

import (
	"log/slog"
	"net/http"

	"arbor/internal/connectors"
	"arbor/internal/httputil"
)

// ConnectorsHandler serves the read-only connector type registry
type ConnectorsHandler struct {
	registry *connectors.Registry
	logger   *slog.Logger
}

// NewConnectorsHandler creates a new connectors handler
func NewConnectorsHandler(registry *connectors.Registry, logger *slog.Logger) *ConnectorsHandler {
	return &ConnectorsHandler{
		registry: registry,
		logger:   logger,
	}
}

// ListTypes returns all supported connector types
func (h *ConnectorsHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.registry.List())
}

// GetType returns the spec for one connector type
func (h *ConnectorsHandler) GetType(w http.ResponseWriter, r *http.Request) {
	spec, err := h.registry.Get(r.PathValue("type"))
	if err != nil {
		httputil.RespondError(w, http.StatusNotFound, err.Error())
		return
	}

	httputil.RespondJSON(w, http.StatusOK, spec)
}
