package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"mdkb/internal/contextutil"
	"mdkb/internal/service"
)

// KnowledgeBaseHandler handles HTTP requests for knowledge bases.
type KnowledgeBaseHandler struct {
	svc service.KnowledgeBaseService
}

// NewKnowledgeBaseHandler creates a new KnowledgeBaseHandler.
func NewKnowledgeBaseHandler(svc service.KnowledgeBaseService) *KnowledgeBaseHandler {
	return &KnowledgeBaseHandler{svc: svc}
}

// CreateKnowledgeBaseRequest represents the HTTP request payload for creating a knowledge base.
type CreateKnowledgeBaseRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// List handles GET /api/knowledge-bases.
func (h *KnowledgeBaseHandler) List(w http.ResponseWriter, r *http.Request) {
	kbs, err := h.svc.ListKnowledgeBases(r.Context())
	if err != nil {
		handleServiceError(w, r.Context(), err, "Failed to list knowledge bases")
		return
	}
	writeJSON(w, http.StatusOK, kbs)
}

// Create handles POST /api/knowledge-bases.
func (h *KnowledgeBaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateKnowledgeBaseRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(w, ctx, err, "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		handleServiceError(w, ctx, &service.ValidationError{Field: "name", Message: "cannot be empty"}, "Invalid request body")
		return
	}

	kb, err := h.svc.CreateKnowledgeBase(ctx, req.Name, req.Description)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to create knowledge base")
		return
	}
	writeJSON(w, http.StatusCreated, kb)
}

// Get handles GET /api/knowledge-bases/{kbID}.
func (h *KnowledgeBaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	kbID := chi.URLParam(r, "kbID")

	kb, found, err := h.svc.GetKnowledgeBase(ctx, kbID)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to get knowledge base")
		return
	}
	if !found {
		contextutil.LoggerFromContext(ctx).DebugContext(ctx, "knowledge base not found", "kb_id", kbID)
		writeError(w, http.StatusNotFound, "Knowledge base not found")
		return
	}
	writeJSON(w, http.StatusOK, kb)
}

// Delete handles DELETE /api/knowledge-bases/{kbID}. Deleting an unknown id succeeds.
func (h *KnowledgeBaseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteKnowledgeBase(r.Context(), chi.URLParam(r, "kbID")); err != nil {
		handleServiceError(w, r.Context(), err, "Failed to delete knowledge base")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stats handles GET /api/knowledge-bases/{kbID}/stats.
func (h *KnowledgeBaseHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, found, err := h.svc.Stats(ctx, chi.URLParam(r, "kbID"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to compute stats")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "Knowledge base not found")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
