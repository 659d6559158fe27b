package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"mdkb/internal/service"
	"mdkb/internal/storage"
)

// DocumentHandler handles HTTP requests for documents.
type DocumentHandler struct {
	svc service.KnowledgeBaseService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(svc service.KnowledgeBaseService) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

// ImportRequest represents the HTTP request payload for importing files.
type ImportRequest struct {
	Paths []string `json:"paths"`
}

// ImportResponse reports the documents that were imported.
// Paths that failed are left out; Requested minus Imported is the failure count.
type ImportResponse struct {
	Requested int                `json:"requested"`
	Imported  int                `json:"imported"`
	Documents []storage.Document `json:"documents"`
}

// List handles GET /api/knowledge-bases/{kbID}/documents.
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.svc.GetDocuments(r.Context(), chi.URLParam(r, "kbID"))
	if err != nil {
		handleServiceError(w, r.Context(), err, "Failed to list documents")
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

// Import handles POST /api/knowledge-bases/{kbID}/documents.
func (h *DocumentHandler) Import(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ImportRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(w, ctx, err, "Invalid request body")
		return
	}

	paths := make([]string, 0, len(req.Paths))
	for _, p := range req.Paths {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		handleServiceError(w, ctx, &service.ValidationError{Field: "paths", Message: "at least one path is required"}, "Invalid request body")
		return
	}

	docs := h.svc.ImportDocuments(ctx, chi.URLParam(r, "kbID"), paths)
	if docs == nil {
		docs = []storage.Document{}
	}
	writeJSON(w, http.StatusOK, ImportResponse{
		Requested: len(paths),
		Imported:  len(docs),
		Documents: docs,
	})
}

// Get handles GET /api/documents/{docID}.
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	doc, found, err := h.svc.GetDocument(r.Context(), chi.URLParam(r, "docID"))
	if err != nil {
		handleServiceError(w, r.Context(), err, "Failed to get document")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "Document not found")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// Delete handles DELETE /api/documents/{docID}. Deleting an unknown id succeeds.
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteDocument(r.Context(), chi.URLParam(r, "docID")); err != nil {
		handleServiceError(w, r.Context(), err, "Failed to delete document")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
