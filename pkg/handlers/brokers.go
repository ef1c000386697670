package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lorrylink/lorrylink/pkg/api"
	"github.com/lorrylink/lorrylink/pkg/mapping"
	"github.com/lorrylink/lorrylink/pkg/models"
)

// CreateBroker handles POST /brokers. Brokers are shared reference data, so
// only admins may add them.
func (h *ApiHandler) CreateBroker(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	if id.Role != models.RoleAdmin {
		http.Error(w, "Only admins may create brokers", http.StatusForbidden)
		return
	}

	var newBroker api.NewBroker
	if !h.decodeAndValidate(w, r, &newBroker) {
		return
	}

	created, err := h.Store.CreateBroker(r.Context(), mapping.ToDomainNewBroker(&newBroker))
	if err != nil {
		writeStoreError(w, err, "create broker")
		return
	}
	respondJSON(w, http.StatusCreated, mapping.ToApiBroker(created))
}

// ListBrokers handles GET /brokers. All authenticated roles may read the
// active broker list.
func (h *ApiHandler) ListBrokers(w http.ResponseWriter, r *http.Request) {
	brokers, err := h.Store.ListBrokers(r.Context(), 0)
	if err != nil {
		writeStoreError(w, err, "list brokers")
		return
	}

	out := make([]api.Broker, len(brokers))
	for i := range brokers {
		out[i] = *mapping.ToApiBroker(&brokers[i])
	}
	respondJSON(w, http.StatusOK, out)
}

// DeactivateBroker handles DELETE /brokers/{brokerId}: a soft delete so
// historical trips keep a resolvable reference.
func (h *ApiHandler) DeactivateBroker(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	if id.Role != models.RoleAdmin {
		http.Error(w, "Only admins may remove brokers", http.StatusForbidden)
		return
	}

	if err := h.Store.DeactivateBroker(r.Context(), chi.URLParam(r, "brokerId")); err != nil {
		writeStoreError(w, err, "remove broker")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
