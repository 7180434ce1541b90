package main

import (
	"context"
	stdlog "log"
	"net/http"

	"github.com/rs/cors"

	"github.com/jas-4484/edusaas-backend/internal/config"
	"github.com/jas-4484/edusaas-backend/internal/database"
	"github.com/jas-4484/edusaas-backend/internal/logger"
	"github.com/jas-4484/edusaas-backend/internal/routes"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()

	log, err := logger.New(cfg.Env)
	if err != nil {
		stdlog.Fatalf("Failed to build logger: %v", err)
	}
	defer log.Sync()

	// Connect to MongoDB. A missing URI or failed connect is not fatal:
	// the server still answers schema and liveness requests.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	store, err := database.Connect(ctx, cfg.MongoURI, cfg.DatabaseName)
	cancel()
	switch {
	case err != nil:
		log.Warn("running without a document store", "error", err)
	case store.State() != database.StateConnected:
		log.Warn("MONGODB_URI not set, running without a document store")
	default:
		log.Info("connected to MongoDB", "database", cfg.DatabaseName)
	}
	defer func() {
		if err := store.Disconnect(context.Background()); err != nil {
			log.Error("failed to disconnect from MongoDB", "error", err)
		}
	}()

	// Initialize router
	router := routes.SetupRouter(store, cfg.MongoURI != "", log)

	// Setup CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.Origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	handler := c.Handler(router)

	// Start server
	log.Info("server listening", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}
