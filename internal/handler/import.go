package handler

import (
	"errors"
	"log/slog"
	"net/http"

	models "yadisk/internal/domain/models/disk"
	diskSvc "yadisk/internal/domain/services/disk"
	"yadisk/internal/httputil"
)

// ImportHandler handles batch imports
type ImportHandler struct {
	importService diskSvc.ImportService
	logger        *slog.Logger
}

// NewImportHandler creates a new import handler
func NewImportHandler(importService diskSvc.ImportService, logger *slog.Logger) *ImportHandler {
	return &ImportHandler{
		importService: importService,
		logger:        logger,
	}
}

type importRequest struct {
	Items      []models.ImportItem `json:"items"`
	UpdateDate string              `json:"updateDate"`
}

// Import applies a batch of items atomically
// POST /imports
func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	var body importRequest
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		if errors.Is(err, httputil.ErrBodyTooLarge) {
			httputil.RespondError(w, http.StatusRequestEntityTooLarge, err.Error())
			return
		}
		badRequest(w, r, h.logger, err.Error())
		return
	}

	if body.UpdateDate == "" {
		badRequest(w, r, h.logger, "updateDate is required")
		return
	}
	date, err := models.ParseTimestamp(body.UpdateDate)
	if err != nil {
		badRequest(w, r, h.logger, "updateDate: "+err.Error())
		return
	}

	req := &diskSvc.ImportRequest{
		UpdateDate: date,
		Items:      body.Items,
	}
	if err := h.importService.Import(r.Context(), req); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondOK(w)
}
