package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/lorrylink/lorrylink/pkg/api"
	"github.com/lorrylink/lorrylink/pkg/auth"
	"github.com/lorrylink/lorrylink/pkg/mapping"
	"github.com/lorrylink/lorrylink/pkg/models"
	"github.com/lorrylink/lorrylink/pkg/query"
)

// CreateTrip handles POST /trips. Only dispatchers create trips, and always
// in their own partition.
func (h *ApiHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	if id.Role != models.RoleDispatcher {
		http.Error(w, "Only dispatchers may create trips", http.StatusForbidden)
		return
	}

	var newTrip api.NewTrip
	if !h.decodeAndValidate(w, r, &newTrip) {
		return
	}

	created, err := h.Store.CreateTrip(r.Context(), mapping.ToDomainNewTrip(&newTrip, id.UserID))
	if err != nil {
		writeStoreError(w, err, "create trip")
		return
	}
	respondJSON(w, http.StatusCreated, mapping.ToApiTrip(created))
}

// ListTrips handles GET /trips: the routed, filtered, cursored listing.
func (h *ApiHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	filters, err := query.ParseFilters(r.URL.Query())
	if err != nil {
		writeStoreError(w, err, "list trips")
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

	page, err := h.Store.ListTrips(r.Context(), id, filters, r.URL.Query().Get("cursor"), limit)
	if err != nil {
		writeStoreError(w, err, "list trips")
		return
	}
	respondJSON(w, http.StatusOK, mapping.ToApiTripPage(page))
}

// tripPartitionOwner resolves which dispatcher partition a trip-scoped route
// operates on. Dispatchers always act on their own partition; other roles
// name it with the dispatcherId query parameter.
func tripPartitionOwner(id auth.Identity, r *http.Request) string {
	if id.Role == models.RoleDispatcher {
		return id.UserID
	}
	return r.URL.Query().Get("dispatcherId")
}

// GetTripById handles GET /trips/{tripId}.
func (h *ApiHandler) GetTripById(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	dispatcherID := tripPartitionOwner(id, r)
	if dispatcherID == "" {
		http.Error(w, "dispatcherId is required", http.StatusBadRequest)
		return
	}

	trip, err := h.Store.GetTrip(r.Context(), dispatcherID, chi.URLParam(r, "tripId"))
	if err != nil {
		writeStoreError(w, err, "retrieve trip")
		return
	}

	// Reads are scoped: drivers only see trips assigned to them.
	switch id.Role {
	case models.RoleDispatcher, models.RoleAdmin:
	case models.RoleDriver:
		if trip.DriverID != id.UserID {
			http.Error(w, "Failed to retrieve trip: forbidden", http.StatusForbidden)
			return
		}
	default:
		http.Error(w, "Failed to retrieve trip: forbidden", http.StatusForbidden)
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToApiTrip(trip))
}

// PatchTrip handles PATCH /trips/{tripId}. Dispatcher-only; the status field
// deliberately has no place here, it moves through the status route.
func (h *ApiHandler) PatchTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	if id.Role != models.RoleDispatcher {
		http.Error(w, "Only dispatchers may update trips", http.StatusForbidden)
		return
	}

	var patch api.TripPatch
	if !h.decodeAndValidate(w, r, &patch) {
		return
	}

	updated, err := h.Store.UpdateTrip(r.Context(), id.UserID, chi.URLParam(r, "tripId"), mapping.ToStoragePatch(&patch))
	if err != nil {
		writeStoreError(w, err, "update trip")
		return
	}
	respondJSON(w, http.StatusOK, mapping.ToApiTrip(updated))
}

// UpdateTripStatus handles POST /trips/{tripId}/status.
func (h *ApiHandler) UpdateTripStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	var update api.StatusUpdate
	if !h.decodeAndValidate(w, r, &update) {
		return
	}

	target := models.TripStatus(update.Status)
	if !models.ValidTripStatus(target) {
		http.Error(w, "Unknown status", http.StatusBadRequest)
		return
	}

	dispatcherID := id.UserID
	if id.Role != models.RoleDispatcher {
		dispatcherID = update.DispatcherID
		if dispatcherID == "" {
			http.Error(w, "dispatcher_id is required", http.StatusBadRequest)
			return
		}
	}

	updated, err := h.Store.UpdateTripStatus(r.Context(), id, dispatcherID, chi.URLParam(r, "tripId"), target)
	if err != nil {
		writeStoreError(w, err, "update trip status")
		return
	}
	respondJSON(w, http.StatusOK, mapping.ToApiTrip(updated))
}
