// cmd/docs/main.go
package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/ordatech/procost/internal/config"
	"github.com/ordatech/procost/internal/docs"
	"github.com/ordatech/procost/internal/extract"
	"github.com/ordatech/procost/internal/repository/postgres"
	"github.com/ordatech/procost/internal/storage"
)

func main() {
	// Load environment variables from .env file if it exists
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Initialize Google Drive service
	driveService, err := docs.NewService(cfg.Docs.CredentialsJSON)
	if err != nil {
		log.Fatalf("Failed to initialize Google Drive service: %v", err)
	}

	// Initialize Database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize document archive
	archive, err := storage.NewArchiveClient(storage.ArchiveConfig{
		Endpoint:  cfg.Archive.Endpoint,
		AccessKey: cfg.Archive.AccessKey,
		SecretKey: cfg.Archive.SecretKey,
		Bucket:    cfg.Archive.Bucket,
		Region:    cfg.Archive.Region,
		UseSSL:    cfg.Archive.UseSSL,
	})
	if err != nil {
		log.Fatalf("Failed to initialize document archive: %v", err)
	}

	// Initialize Repositories and Services
	docRepo := postgres.NewDocumentRepository(db)
	extractClient := extract.NewClient(cfg.Extract)
	ingestService := docs.NewIngestService(driveService, extractClient, archive, docRepo)

	// Create router and register routes
	r := mux.NewRouter()
	docsHandler := docs.NewHandler(driveService, ingestService, docRepo, cfg.Docs.FolderPath)
	docsHandler.RegisterRoutes(r)

	// Health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Document server starting on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
