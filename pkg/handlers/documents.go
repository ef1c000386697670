package handlers

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lorrylink/lorrylink/pkg/api"
	"github.com/lorrylink/lorrylink/pkg/mapping"
	"github.com/lorrylink/lorrylink/pkg/models"
)

// CreateDocument handles POST /documents: registers metadata and returns a
// presigned upload request for the bytes.
func (h *ApiHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	var newDoc api.NewDocument
	if !h.decodeAndValidate(w, r, &newDoc) {
		return
	}

	created, err := h.Store.CreateDocument(r.Context(), mapping.ToDomainNewDocument(&newDoc, id.UserID))
	if err != nil {
		writeStoreError(w, err, "create document")
		return
	}

	response := api.DocumentWithUpload{Document: *mapping.ToApiDocument(created)}
	if h.Blobs != nil && created.ObjectKey != "" {
		upload, err := h.Blobs.IssueUpload(r.Context(), created.ObjectKey, newDoc.ContentType, map[string]string{
			"uploaded_by": id.UserID,
			"document_id": created.DocumentID,
		})
		if err != nil {
			// The record exists; the client can re-request a URL later.
			log.Printf("ERROR: document %s created but upload URL not issued: %v", created.DocumentID, err)
		} else {
			response.Upload = mapping.ToApiSignedRequest(upload)
		}
	}

	respondJSON(w, http.StatusCreated, response)
}

// ListDocuments handles GET /documents?entityType=...&entityId=..., returning
// active records each paired with a presigned download.
func (h *ApiHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.identity(w, r); !ok {
		return
	}

	entityType := r.URL.Query().Get("entityType")
	entityID := r.URL.Query().Get("entityId")
	if entityType == "" || entityID == "" {
		http.Error(w, "entityType and entityId are required", http.StatusBadRequest)
		return
	}

	docs, err := h.Store.ListDocumentsForEntity(r.Context(), entityType, entityID)
	if err != nil {
		writeStoreError(w, err, "list documents")
		return
	}

	out := make([]api.DocumentWithDownload, len(docs))
	for i := range docs {
		out[i] = api.DocumentWithDownload{Document: *mapping.ToApiDocument(&docs[i])}
		if h.Blobs != nil && docs[i].ObjectKey != "" {
			download, err := h.Blobs.IssueDownload(r.Context(), docs[i].ObjectKey)
			if err != nil {
				log.Printf("ERROR: download URL not issued for document %s: %v", docs[i].DocumentID, err)
				continue
			}
			out[i].Download = mapping.ToApiSignedRequest(download)
		}
	}
	respondJSON(w, http.StatusOK, out)
}

// DeactivateDocument handles DELETE /documents/{documentId}: soft delete,
// admins and dispatchers only.
func (h *ApiHandler) DeactivateDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	if id.Role != models.RoleAdmin && id.Role != models.RoleDispatcher {
		http.Error(w, "Failed to remove document: forbidden", http.StatusForbidden)
		return
	}

	if err := h.Store.DeactivateDocument(r.Context(), chi.URLParam(r, "documentId")); err != nil {
		writeStoreError(w, err, "remove document")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
