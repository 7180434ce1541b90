package routes

import (
	"github.com/gorilla/mux"

	"github.com/jas-4484/edusaas-backend/internal/database"
	"github.com/jas-4484/edusaas-backend/internal/handlers"
	"github.com/jas-4484/edusaas-backend/internal/logger"
	"github.com/jas-4484/edusaas-backend/internal/middleware"
)

// SetupRouter wires the meta endpoints plus one create/list pair per
// entity kind, all table-driven off the schema registry.
func SetupRouter(store database.Store, uriSet bool, log *logger.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.RequestLogger(log))

	meta := handlers.NewMetaHandler(store, uriSet)
	router.HandleFunc("/", meta.Root).Methods("GET")
	router.HandleFunc("/health", meta.Health).Methods("GET")
	router.HandleFunc("/schema", meta.Schema).Methods("GET")
	router.HandleFunc("/test", meta.Test).Methods("GET")

	docs := handlers.NewDocumentHandler(store, log)
	for _, res := range handlers.Resources() {
		router.HandleFunc(res.CreatePath, docs.Create(res)).Methods("POST")
		router.HandleFunc(res.ListPath, docs.List(res)).Methods("GET")
	}

	return router
}
