package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"yadisk/internal/domain"
	"yadisk/internal/httputil"
)

// handleError converts domain errors to HTTP responses.
// Client errors are logged at Warn, everything else at Error.
func handleError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		logger.Warn("request rejected", "method", r.Method, "path", r.URL.Path, "error", err)
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		logger.Warn("item not found", "method", r.Method, "path", r.URL.Path, "error", err)
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	default:
		logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// badRequest reports a malformed request before any store access
func badRequest(w http.ResponseWriter, r *http.Request, logger *slog.Logger, detail string) {
	logger.Warn("malformed request", "method", r.Method, "path", r.URL.Path, "detail", detail)
	httputil.RespondError(w, http.StatusBadRequest, detail)
}
