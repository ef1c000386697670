package handlers

import (
	"net/http"

	"github.com/lorrylink/lorrylink/pkg/api"
	"github.com/lorrylink/lorrylink/pkg/mapping"
)

// CreateUser handles POST /users. Role is fixed at creation; the store
// enforces email uniqueness.
func (h *ApiHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var newUser api.NewUser
	if !h.decodeAndValidate(w, r, &newUser) {
		return
	}

	created, err := h.Store.CreateUser(r.Context(), mapping.ToDomainNewUser(&newUser))
	if err != nil {
		writeStoreError(w, err, "create user")
		return
	}
	respondJSON(w, http.StatusCreated, mapping.ToApiUser(created))
}

// GetCurrentUser handles GET /users/me.
func (h *ApiHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	user, err := h.Store.GetUser(r.Context(), id.UserID)
	if err != nil {
		writeStoreError(w, err, "retrieve user")
		return
	}
	respondJSON(w, http.StatusOK, mapping.ToApiUser(user))
}
