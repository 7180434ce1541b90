package handlers

import (
	"context"
	"net/http"

	"github.com/jas-4484/edusaas-backend/internal/database"
	"github.com/jas-4484/edusaas-backend/internal/schema"
)

// MetaHandler serves the liveness, introspection and diagnostics surface.
// None of these endpoints require a connected store.
type MetaHandler struct {
	store  database.Store
	uriSet bool
}

func NewMetaHandler(store database.Store, uriSet bool) *MetaHandler {
	return &MetaHandler{store: store, uriSet: uriSet}
}

func (h *MetaHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "EduSaaS backend running"})
}

func (h *MetaHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Server is healthy"))
}

// Schema returns the full registry dump, unchanged.
func (h *MetaHandler) Schema(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"collections": schema.DescribeAll()})
}

// Test reports backend and database connectivity for quick diagnosis.
func (h *MetaHandler) Test(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"backend":           "running",
		"database":          "not available",
		"database_url":      "not set",
		"database_name":     nil,
		"connection_status": "Not Connected",
		"collections":       []string{},
	}
	if h.uriSet {
		resp["database_url"] = "set"
	}

	switch h.store.State() {
	case database.StateConnected:
		resp["connection_status"] = "Connected"
		resp["database_name"] = h.store.DatabaseName()

		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		names, err := h.store.Collections(ctx)
		if err != nil {
			resp["database"] = "connected but error: " + err.Error()
		} else {
			if len(names) > 10 {
				names = names[:10]
			}
			resp["collections"] = names
			resp["database"] = "connected"
		}
	case database.StateConnecting:
		resp["database"] = "connecting"
	case database.StateFailed:
		resp["database"] = "connection failed"
	}

	writeJSON(w, http.StatusOK, resp)
}
