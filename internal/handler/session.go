package handler

import (
	"log/slog"
	"net/http"

	"arbor/internal/config"
	"arbor/internal/domain/services"
	"arbor/internal/httputil"
)

// SessionHandler handles HTTP requests for picker sessions
type SessionHandler struct {
	picker services.PickerService
	logger *slog.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(picker services.PickerService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		picker: picker,
		logger: logger,
	}
}

// CreateSession opens a picker session for a connector
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := h.picker.CreateSession(r.Context(), &services.CreateSessionRequest{
		ConnectorID:          req.ConnectorID,
		SnapshotID:           req.SnapshotID,
		SeedFromConfirmation: req.SeedFromConfirmation,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, sess)
}

// GetSession returns session metadata
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.picker.GetSession(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, sess)
}

// GetTree returns the session's tree view, filtered by the q parameter.
// Selection flags and aggregates ride along with the tree.
func (h *SessionHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if len(query) > config.MaxQueryLength {
		httputil.RespondError(w, http.StatusBadRequest, "query too long")
		return
	}

	view, err := h.picker.View(r.Context(), r.PathValue("id"), query)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, view)
}

// Toggle flips one node's selection state
func (h *SessionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req ToggleRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := h.picker.Toggle(r.Context(), r.PathValue("id"), req.NodeID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, summary)
}

// Clear empties the session's selection
func (h *SessionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	summary, err := h.picker.Clear(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, summary)
}

// Confirm persists the selection and closes the session
func (h *SessionHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	confirmation, err := h.picker.Confirm(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, confirmation)
}

// CloseSession discards a session without confirming
func (h *SessionHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	if err := h.picker.CloseSession(r.Context(), r.PathValue("id")); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
