package handler

import "net/http"

// Handlers groups every HTTP handler of the server
type Handlers struct {
	Import *ImportHandler
	Node   *NodeHandler
	Health *HealthHandler
}

// RegisterRoutes wires the registry routes onto mux (Go 1.22+ patterns)
func RegisterRoutes(mux *http.ServeMux, h *Handlers) {
	mux.HandleFunc("GET /health", h.Health.HealthCheck)

	mux.HandleFunc("POST /imports", h.Import.Import)
	mux.HandleFunc("GET /nodes/{id}", h.Node.GetNode)
	mux.HandleFunc("DELETE /delete/{id}", h.Node.DeleteNode)
	mux.HandleFunc("GET /node/{id}/history", h.Node.GetHistory)
}
