package handler

import (
	"log/slog"
	"net/http"

	models "yadisk/internal/domain/models/disk"
	diskSvc "yadisk/internal/domain/services/disk"
	"yadisk/internal/httputil"
)

// NodeHandler handles reads and deletes of single items
type NodeHandler struct {
	treeService    diskSvc.TreeService
	deleteService  diskSvc.DeleteService
	historyService diskSvc.HistoryService
	logger         *slog.Logger
}

// NewNodeHandler creates a new node handler
func NewNodeHandler(
	treeService diskSvc.TreeService,
	deleteService diskSvc.DeleteService,
	historyService diskSvc.HistoryService,
	logger *slog.Logger,
) *NodeHandler {
	return &NodeHandler{
		treeService:    treeService,
		deleteService:  deleteService,
		historyService: historyService,
		logger:         logger,
	}
}

// GetNode returns the item with all of its descendants
// GET /nodes/{id}
func (h *NodeHandler) GetNode(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		badRequest(w, r, h.logger, "id is required")
		return
	}

	tree, err := h.treeService.GetNode(r.Context(), id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tree)
}

// DeleteNode removes the item and its subtree
// DELETE /delete/{id}?date=2022-02-03T15:00:00Z
func (h *NodeHandler) DeleteNode(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		badRequest(w, r, h.logger, "id is required")
		return
	}

	rawDate := r.URL.Query().Get("date")
	if rawDate == "" {
		badRequest(w, r, h.logger, "date query parameter is required")
		return
	}
	date, err := models.ParseTimestamp(rawDate)
	if err != nil {
		badRequest(w, r, h.logger, "date: "+err.Error())
		return
	}

	if err := h.deleteService.DeleteNode(r.Context(), id, date); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondOK(w)
}

type historyResponse struct {
	Items []*models.HistoryNode `json:"items"`
}

// GetHistory returns every recorded state of a FILE
// GET /node/{id}/history
func (h *NodeHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		badRequest(w, r, h.logger, "id is required")
		return
	}

	entries, err := h.historyService.GetHistory(r.Context(), id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, historyResponse{Items: entries})
}
