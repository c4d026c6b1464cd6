package handler

import (
	"log/slog"
	"net/http"

	"yadisk/internal/domain/repositories"
	"yadisk/internal/httputil"
)

// HealthHandler reports whether the backing store is reachable
type HealthHandler struct {
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(txManager repositories.TransactionManager, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{txManager: txManager, logger: logger}
}

// HealthCheck pings the store
// GET /health
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.txManager.Ping(r.Context()); err != nil {
		h.logger.Error("health check failed", "error", err)
		httputil.RespondError(w, http.StatusServiceUnavailable, "store unavailable")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
