// Package handlers implements the REST surface over the storage layer. Every
// route runs behind the auth middleware, so handlers can assume an identity
// is present in the request context.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/lorrylink/lorrylink/pkg/auth"
	"github.com/lorrylink/lorrylink/pkg/blobs"
	"github.com/lorrylink/lorrylink/pkg/cursor"
	"github.com/lorrylink/lorrylink/pkg/query"
	"github.com/lorrylink/lorrylink/pkg/storage"
)

// ApiHandler holds the application's dependencies for all routes.
type ApiHandler struct {
	Store    storage.Storage
	Blobs    blobs.Issuer
	validate *validator.Validate
}

// NewApiHandler creates a new ApiHandler. The blob issuer may be nil, in
// which case document routes serve metadata without presigned URLs.
func NewApiHandler(store storage.Storage, issuer blobs.Issuer) *ApiHandler {
	return &ApiHandler{
		Store:    store,
		Blobs:    issuer,
		validate: validator.New(),
	}
}

// identity pulls the authenticated identity, rejecting the request if the
// middleware was somehow bypassed.
func (h *ApiHandler) identity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	}
	return id, ok
}

// decodeAndValidate decodes a JSON body into dst and runs struct validation.
func (h *ApiHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return false
	}
	return true
}

// respondJSON writes v as the JSON response body.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: failed to write response: %v", err)
	}
}

// writeStoreError maps the storage error taxonomy onto HTTP statuses.
func writeStoreError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		http.Error(w, fmt.Sprintf("Failed to %s: not found", action), http.StatusNotFound)
	case errors.Is(err, storage.ErrForbidden):
		http.Error(w, fmt.Sprintf("Failed to %s: forbidden", action), http.StatusForbidden)
	case errors.Is(err, cursor.ErrInvalidCursor):
		http.Error(w, "Invalid cursor", http.StatusBadRequest)
	case errors.Is(err, query.ErrInvalidFilter), errors.Is(err, storage.ErrReasonRequired):
		http.Error(w, fmt.Sprintf("Failed to %s: %v", action, err), http.StatusBadRequest)
	case errors.Is(err, storage.ErrEmailTaken):
		http.Error(w, "Email already registered", http.StatusConflict)
	case errors.Is(err, storage.ErrConflict):
		http.Error(w, fmt.Sprintf("Failed to %s: conflict", action), http.StatusConflict)
	case errors.Is(err, storage.ErrInvalidTransition):
		http.Error(w, fmt.Sprintf("Failed to %s: %v", action, err), http.StatusUnprocessableEntity)
	default:
		log.Printf("ERROR: failed to %s: %v", action, err)
		http.Error(w, fmt.Sprintf("Failed to %s", action), http.StatusInternalServerError)
	}
}
