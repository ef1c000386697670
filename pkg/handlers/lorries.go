package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/lorrylink/lorrylink/pkg/api"
	"github.com/lorrylink/lorrylink/pkg/mapping"
	"github.com/lorrylink/lorrylink/pkg/models"
)

// CreateLorry handles POST /lorries. Owners register their own lorries; each
// starts in the pending verification queue.
func (h *ApiHandler) CreateLorry(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	if id.Role != models.RoleLorryOwner {
		http.Error(w, "Only lorry owners may register lorries", http.StatusForbidden)
		return
	}

	var newLorry api.NewLorry
	if !h.decodeAndValidate(w, r, &newLorry) {
		return
	}

	created, err := h.Store.CreateLorry(r.Context(), mapping.ToDomainNewLorry(&newLorry, id.UserID))
	if err != nil {
		writeStoreError(w, err, "create lorry")
		return
	}
	respondJSON(w, http.StatusCreated, mapping.ToApiLorry(created))
}

// ListLorries handles GET /lorries: the caller's own lorries, optionally
// narrowed by verification status.
func (h *ApiHandler) ListLorries(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	if id.Role != models.RoleLorryOwner {
		http.Error(w, "Only lorry owners may list their lorries", http.StatusForbidden)
		return
	}

	status := models.VerificationStatus(r.URL.Query().Get("status"))
	lorries, err := h.Store.ListLorriesByOwner(r.Context(), id.UserID, status)
	if err != nil {
		writeStoreError(w, err, "list lorries")
		return
	}
	respondJSON(w, http.StatusOK, mapping.ToApiLorries(lorries))
}

// SetLorryVerification handles POST /lorries/{lorryId}/verification. Admin
// only; rejections must carry a reason.
func (h *ApiHandler) SetLorryVerification(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	if id.Role != models.RoleAdmin {
		http.Error(w, "Only admins may verify lorries", http.StatusForbidden)
		return
	}

	ownerID := r.URL.Query().Get("ownerId")
	if ownerID == "" {
		http.Error(w, "ownerId is required", http.StatusBadRequest)
		return
	}

	var decision api.VerificationDecision
	if !h.decodeAndValidate(w, r, &decision) {
		return
	}

	lorry, err := h.Store.SetLorryVerification(r.Context(), ownerID, chi.URLParam(r, "lorryId"), models.VerificationStatus(decision.Status), decision.Reason)
	if err != nil {
		writeStoreError(w, err, "update lorry verification")
		return
	}
	respondJSON(w, http.StatusOK, mapping.ToApiLorry(lorry))
}

// ListPendingLorries handles GET /admin/lorries/pending.
func (h *ApiHandler) ListPendingLorries(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	if id.Role != models.RoleAdmin {
		http.Error(w, "Only admins may view the verification queue", http.StatusForbidden)
		return
	}

	var limit int32
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || parsed < 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = int32(parsed)
	}

	lorries, err := h.Store.ListPendingLorries(r.Context(), limit)
	if err != nil {
		writeStoreError(w, err, "list pending lorries")
		return
	}
	respondJSON(w, http.StatusOK, mapping.ToApiLorries(lorries))
}
