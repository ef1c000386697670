package handlers

import (
	"net/http"

	"github.com/lorrylink/lorrylink/pkg/analytics"
	"github.com/lorrylink/lorrylink/pkg/auth"
	"github.com/lorrylink/lorrylink/pkg/models"
	"github.com/lorrylink/lorrylink/pkg/query"
)

// Aggregations walk the requester's full (filtered) trip listing page by
// page. The walk is bounded so a runaway partition cannot pin a request.
const (
	analyticsPageSize = 100
	analyticsMaxPages = 50
)

// collectTrips gathers every trip visible to the identity under the given
// filters, reusing the routed listing so analytics see exactly what the
// requester is allowed to see.
func (h *ApiHandler) collectTrips(r *http.Request, id auth.Identity) ([]models.Trip, error) {
	filters, err := query.ParseFilters(r.URL.Query())
	if err != nil {
		return nil, err
	}

	var all []models.Trip
	cursor := ""
	for page := 0; page < analyticsMaxPages; page++ {
		p, err := h.Store.ListTrips(r.Context(), id, filters, cursor, analyticsPageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, p.Trips...)
		if p.NextCursor == "" {
			break
		}
		cursor = p.NextCursor
	}
	return all, nil
}

// GetFleetOverview handles GET /analytics/fleet.
func (h *ApiHandler) GetFleetOverview(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	trips, err := h.collectTrips(r, id)
	if err != nil {
		writeStoreError(w, err, "compute fleet overview")
		return
	}
	respondJSON(w, http.StatusOK, analytics.Fleet(trips))
}

// GetTripAnalytics handles GET /analytics/trips.
func (h *ApiHandler) GetTripAnalytics(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	trips, err := h.collectTrips(r, id)
	if err != nil {
		writeStoreError(w, err, "compute trip analytics")
		return
	}
	respondJSON(w, http.StatusOK, analytics.Trips(trips))
}

// GetDriverAnalytics handles GET /analytics/drivers.
func (h *ApiHandler) GetDriverAnalytics(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	trips, err := h.collectTrips(r, id)
	if err != nil {
		writeStoreError(w, err, "compute driver analytics")
		return
	}
	respondJSON(w, http.StatusOK, analytics.ByDriver(trips))
}

// GetVehicleAnalytics handles GET /analytics/vehicles.
func (h *ApiHandler) GetVehicleAnalytics(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	trips, err := h.collectTrips(r, id)
	if err != nil {
		writeStoreError(w, err, "compute vehicle analytics")
		return
	}
	respondJSON(w, http.StatusOK, analytics.ByVehicle(trips))
}

// GetRevenueReport handles GET /analytics/revenue.
func (h *ApiHandler) GetRevenueReport(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	trips, err := h.collectTrips(r, id)
	if err != nil {
		writeStoreError(w, err, "compute revenue report")
		return
	}
	respondJSON(w, http.StatusOK, analytics.Revenue(trips))
}
