package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
)

// Pinger reports whether the backing storage is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness endpoint.
type HealthHandler struct {
	storage   Pinger
	responder responder
}

// NewHealthHandler wires the health handler. A nil storage skips the
// reachability probe.
func NewHealthHandler(storage Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{storage: storage, responder: newResponder(logger)}
}

// Check serves GET /api/health.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if h == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if h.storage != nil {
		if err := h.storage.Ping(r.Context()); err != nil {
			h.responder.writeError(r.Context(), w, http.StatusServiceUnavailable, errors.New("storage unavailable"))
			return
		}
	}

	h.responder.writeSuccess(r.Context(), w, http.StatusOK, nil, "Server is running")
}
