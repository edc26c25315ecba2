package docs

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/ordatech/procost/internal/repository"
)

type Handler struct {
	service       *Service
	ingestService *IngestService
	repo          repository.DocumentRepository
	folderPath    string
}

func NewHandler(service *Service, ingestService *IngestService, repo repository.DocumentRepository, folderPath string) *Handler {
	return &Handler{
		service:       service,
		ingestService: ingestService,
		repo:          repo,
		folderPath:    folderPath,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/docs/files", h.ListFiles).Methods("GET")
	router.HandleFunc("/api/docs/ingest", h.IngestFolder).Methods("POST")
	router.HandleFunc("/api/docs/documents", h.ListDocuments).Methods("GET")
}

func (h *Handler) ListFiles(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	folderPath := query.Get("path")
	if folderPath == "" {
		folderPath = h.folderPath
	}

	folderID, err := h.service.FindFolderByPath(folderPath)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	files, err := h.service.ListPDFs(folderID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(files)
}

func (h *Handler) IngestFolder(w http.ResponseWriter, r *http.Request) {
	folderPath := r.URL.Query().Get("path")
	if folderPath == "" {
		folderPath = h.folderPath
	}

	result, err := h.ingestService.IngestFolder(r.Context(), folderPath)
	if err != nil {
		http.Error(w, fmt.Sprintf("ingestion failed: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	docs, err := h.repo.ListDocuments(r.Context(), limit, offset)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if docs == nil {
		docs = make([]*repository.IngestedDocument, 0)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(docs)
}
