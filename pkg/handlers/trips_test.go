package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lorrylink/lorrylink/pkg/api"
	"github.com/lorrylink/lorrylink/pkg/auth"
	"github.com/lorrylink/lorrylink/pkg/cursor"
	"github.com/lorrylink/lorrylink/pkg/models"
	"github.com/lorrylink/lorrylink/pkg/query"
	"github.com/lorrylink/lorrylink/pkg/storage"
	"github.com/lorrylink/lorrylink/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// authedRequest builds a request carrying the given identity, the way the
// auth middleware would have left it.
func authedRequest(method, target string, body []byte, id auth.Identity) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req.WithContext(auth.WithIdentity(req.Context(), id))
}

// withRouteParam attaches a chi URL parameter, since these tests invoke
// handlers directly rather than through the router.
func withRouteParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func dispatcherIdentity() auth.Identity {
	return auth.Identity{UserID: "disp-1", Email: "disp@example.com", Role: models.RoleDispatcher}
}

func driverIdentity() auth.Identity {
	return auth.Identity{UserID: "driver-1", Email: "driver@example.com", Role: models.RoleDriver}
}

func ownerIdentity() auth.Identity {
	return auth.Identity{UserID: "owner-1", Email: "owner@example.com", Role: models.RoleLorryOwner}
}

func adminIdentity() auth.Identity {
	return auth.Identity{UserID: "admin-1", Email: "admin@example.com", Role: models.RoleAdmin}
}

func sampleTrip() *models.Trip {
	return &models.Trip{
		TripID:            "trip-1",
		DispatcherID:      "disp-1",
		DriverID:          "driver-1",
		LorryID:           "lorry-1",
		BrokerID:          "broker-1",
		Origin:            "Mumbai",
		Destination:       "Delhi",
		ScheduledPickupAt: time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC),
		BrokerPayment:     52000,
		DriverPayment:     9000,
		LorryOwnerPayment: 30000,
		DistanceKm:        1420,
		Status:            models.StatusScheduled,
	}
}

func TestCreateTrip(t *testing.T) {
	newTrip := api.NewTrip{
		DriverID:          "driver-1",
		LorryID:           "lorry-1",
		BrokerID:          "broker-1",
		Origin:            "Mumbai",
		Destination:       "Delhi",
		ScheduledPickupAt: time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC),
		BrokerPayment:     52000,
		DriverPayment:     9000,
		LorryOwnerPayment: 30000,
		DistanceKm:        1420,
	}

	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("CreateTrip", mock.Anything, mock.MatchedBy(func(trip *models.Trip) bool {
			return trip.DispatcherID == "disp-1" && trip.DriverID == "driver-1"
		})).Return(sampleTrip(), nil)

		h := NewApiHandler(mockStorage, nil)

		body, _ := json.Marshal(newTrip)
		rr := httptest.NewRecorder()
		h.CreateTrip(rr, authedRequest(http.MethodPost, "/v1/trips", body, dispatcherIdentity()))

		assert.Equal(t, http.StatusCreated, rr.Code)

		var returned api.Trip
		json.Unmarshal(rr.Body.Bytes(), &returned)
		assert.Equal(t, "trip-1", returned.TripID)
		assert.Equal(t, "disp-1", returned.DispatcherID)
		assert.Equal(t, string(models.StatusScheduled), returned.Status)

		mockStorage.AssertExpectations(t)
	})

	t.Run("Drivers May Not Create Trips", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		h := NewApiHandler(mockStorage, nil)

		body, _ := json.Marshal(newTrip)
		rr := httptest.NewRecorder()
		h.CreateTrip(rr, authedRequest(http.MethodPost, "/v1/trips", body, driverIdentity()))

		assert.Equal(t, http.StatusForbidden, rr.Code)
		mockStorage.AssertNotCalled(t, "CreateTrip", mock.Anything, mock.Anything)
	})

	t.Run("Bad Request - Invalid JSON", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		h := NewApiHandler(mockStorage, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/trips", strings.NewReader("not-json"))
		req = req.WithContext(auth.WithIdentity(req.Context(), dispatcherIdentity()))
		rr := httptest.NewRecorder()
		h.CreateTrip(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Bad Request - Missing Required Fields", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		h := NewApiHandler(mockStorage, nil)

		body, _ := json.Marshal(api.NewTrip{Origin: "Mumbai"})
		rr := httptest.NewRecorder()
		h.CreateTrip(rr, authedRequest(http.MethodPost, "/v1/trips", body, dispatcherIdentity()))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStorage.AssertNotCalled(t, "CreateTrip", mock.Anything, mock.Anything)
	})

	t.Run("Generic Storage Failure", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("CreateTrip", mock.Anything, mock.Anything).Return(nil, errors.New("something went wrong"))

		h := NewApiHandler(mockStorage, nil)

		body, _ := json.Marshal(newTrip)
		rr := httptest.NewRecorder()
		h.CreateTrip(rr, authedRequest(http.MethodPost, "/v1/trips", body, dispatcherIdentity()))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		mockStorage.AssertExpectations(t)
	})
}

func TestListTrips(t *testing.T) {
	t.Run("Success - Cursor And Limit Pass Through", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		page := &storage.TripPage{Trips: []models.Trip{*sampleTrip()}, NextCursor: "next-token"}
		mockStorage.On("ListTrips", mock.Anything, dispatcherIdentity(), mock.MatchedBy(func(f query.Filters) bool {
			return f.Status == models.StatusScheduled
		}), "abc", int32(25)).Return(page, nil)

		h := NewApiHandler(mockStorage, nil)

		rr := httptest.NewRecorder()
		h.ListTrips(rr, authedRequest(http.MethodGet, "/v1/trips?status=SCHEDULED&cursor=abc&limit=25", nil, dispatcherIdentity()))

		assert.Equal(t, http.StatusOK, rr.Code)

		var returned api.TripPage
		json.Unmarshal(rr.Body.Bytes(), &returned)
		assert.Len(t, returned.Trips, 1)
		assert.Equal(t, "next-token", returned.NextCursor)

		mockStorage.AssertExpectations(t)
	})

	t.Run("Invalid Filter Is Rejected", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		h := NewApiHandler(mockStorage, nil)

		rr := httptest.NewRecorder()
		h.ListTrips(rr, authedRequest(http.MethodGet, "/v1/trips?startDate=15-03-2026", nil, dispatcherIdentity()))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStorage.AssertNotCalled(t, "ListTrips", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Invalid Limit Is Rejected", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		h := NewApiHandler(mockStorage, nil)

		rr := httptest.NewRecorder()
		h.ListTrips(rr, authedRequest(http.MethodGet, "/v1/trips?limit=lots", nil, dispatcherIdentity()))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Invalid Cursor Maps To Bad Request", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("ListTrips", mock.Anything, mock.Anything, mock.Anything, "broken", int32(0)).Return(nil, cursor.ErrInvalidCursor)

		h := NewApiHandler(mockStorage, nil)

		rr := httptest.NewRecorder()
		h.ListTrips(rr, authedRequest(http.MethodGet, "/v1/trips?cursor=broken", nil, dispatcherIdentity()))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid cursor")
		mockStorage.AssertExpectations(t)
	})

	t.Run("Admins Are Routed Away", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("ListTrips", mock.Anything, adminIdentity(), mock.Anything, "", int32(0)).Return(nil, storage.ErrForbidden)

		h := NewApiHandler(mockStorage, nil)

		rr := httptest.NewRecorder()
		h.ListTrips(rr, authedRequest(http.MethodGet, "/v1/trips", nil, adminIdentity()))

		assert.Equal(t, http.StatusForbidden, rr.Code)
		mockStorage.AssertExpectations(t)
	})
}

func TestGetTripById(t *testing.T) {
	t.Run("Dispatcher Reads Own Partition", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetTrip", mock.Anything, "disp-1", "trip-1").Return(sampleTrip(), nil)

		h := NewApiHandler(mockStorage, nil)

		req := authedRequest(http.MethodGet, "/v1/trips/trip-1", nil, dispatcherIdentity())
		req = withRouteParam(req, "tripId", "trip-1")
		rr := httptest.NewRecorder()
		h.GetTripById(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Driver Sees Assigned Trip", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetTrip", mock.Anything, "disp-1", "trip-1").Return(sampleTrip(), nil)

		h := NewApiHandler(mockStorage, nil)

		req := authedRequest(http.MethodGet, "/v1/trips/trip-1?dispatcherId=disp-1", nil, driverIdentity())
		req = withRouteParam(req, "tripId", "trip-1")
		rr := httptest.NewRecorder()
		h.GetTripById(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Driver Cannot See Someone Else's Trip", func(t *testing.T) {
		other := sampleTrip()
		other.DriverID = "driver-2"

		mockStorage := new(mocks.Storage)
		mockStorage.On("GetTrip", mock.Anything, "disp-1", "trip-1").Return(other, nil)

		h := NewApiHandler(mockStorage, nil)

		req := authedRequest(http.MethodGet, "/v1/trips/trip-1?dispatcherId=disp-1", nil, driverIdentity())
		req = withRouteParam(req, "tripId", "trip-1")
		rr := httptest.NewRecorder()
		h.GetTripById(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Missing dispatcherId Is Rejected", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		h := NewApiHandler(mockStorage, nil)

		req := authedRequest(http.MethodGet, "/v1/trips/trip-1", nil, driverIdentity())
		req = withRouteParam(req, "tripId", "trip-1")
		rr := httptest.NewRecorder()
		h.GetTripById(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStorage.AssertNotCalled(t, "GetTrip", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetTrip", mock.Anything, "disp-1", "trip-404").Return(nil, storage.ErrNotFound)

		h := NewApiHandler(mockStorage, nil)

		req := authedRequest(http.MethodGet, "/v1/trips/trip-404", nil, dispatcherIdentity())
		req = withRouteParam(req, "tripId", "trip-404")
		rr := httptest.NewRecorder()
		h.GetTripById(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockStorage.AssertExpectations(t)
	})
}

func TestPatchTrip(t *testing.T) {
	notes := "ring the consignee before arrival"
	patch := api.TripPatch{Notes: &notes}

	t.Run("Success", func(t *testing.T) {
		updated := sampleTrip()
		updated.Notes = notes

		mockStorage := new(mocks.Storage)
		mockStorage.On("UpdateTrip", mock.Anything, "disp-1", "trip-1", mock.MatchedBy(func(p storage.TripPatch) bool {
			return p.Notes != nil && *p.Notes == notes
		})).Return(updated, nil)

		h := NewApiHandler(mockStorage, nil)

		body, _ := json.Marshal(patch)
		req := authedRequest(http.MethodPatch, "/v1/trips/trip-1", body, dispatcherIdentity())
		req = withRouteParam(req, "tripId", "trip-1")
		rr := httptest.NewRecorder()
		h.PatchTrip(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var returned api.Trip
		json.Unmarshal(rr.Body.Bytes(), &returned)
		assert.Equal(t, notes, returned.Notes)

		mockStorage.AssertExpectations(t)
	})

	t.Run("Only Dispatchers May Update", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		h := NewApiHandler(mockStorage, nil)

		body, _ := json.Marshal(patch)
		req := authedRequest(http.MethodPatch, "/v1/trips/trip-1", body, ownerIdentity())
		req = withRouteParam(req, "tripId", "trip-1")
		rr := httptest.NewRecorder()
		h.PatchTrip(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		mockStorage.AssertNotCalled(t, "UpdateTrip", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Conflict When Trip Vanishes Mid-Update", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("UpdateTrip", mock.Anything, "disp-1", "trip-1", mock.Anything).Return(nil, storage.ErrConflict)

		h := NewApiHandler(mockStorage, nil)

		body, _ := json.Marshal(patch)
		req := authedRequest(http.MethodPatch, "/v1/trips/trip-1", body, dispatcherIdentity())
		req = withRouteParam(req, "tripId", "trip-1")
		rr := httptest.NewRecorder()
		h.PatchTrip(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		mockStorage.AssertExpectations(t)
	})
}

func TestUpdateTripStatus(t *testing.T) {
	t.Run("Dispatcher Advances Own Trip", func(t *testing.T) {
		updated := sampleTrip()
		updated.Status = models.StatusPickedUp

		mockStorage := new(mocks.Storage)
		mockStorage.On("UpdateTripStatus", mock.Anything, dispatcherIdentity(), "disp-1", "trip-1", models.StatusPickedUp).Return(updated, nil)

		h := NewApiHandler(mockStorage, nil)

		body, _ := json.Marshal(api.StatusUpdate{Status: "PICKED_UP"})
		req := authedRequest(http.MethodPost, "/v1/trips/trip-1/status", body, dispatcherIdentity())
		req = withRouteParam(req, "tripId", "trip-1")
		rr := httptest.NewRecorder()
		h.UpdateTripStatus(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var returned api.Trip
		json.Unmarshal(rr.Body.Bytes(), &returned)
		assert.Equal(t, string(models.StatusPickedUp), returned.Status)

		mockStorage.AssertExpectations(t)
	})

	t.Run("Driver Names The Dispatcher Partition", func(t *testing.T) {
		updated := sampleTrip()
		updated.Status = models.StatusInTransit

		mockStorage := new(mocks.Storage)
		mockStorage.On("UpdateTripStatus", mock.Anything, driverIdentity(), "disp-1", "trip-1", models.StatusInTransit).Return(updated, nil)

		h := NewApiHandler(mockStorage, nil)

		body, _ := json.Marshal(api.StatusUpdate{Status: "IN_TRANSIT", DispatcherID: "disp-1"})
		req := authedRequest(http.MethodPost, "/v1/trips/trip-1/status", body, driverIdentity())
		req = withRouteParam(req, "tripId", "trip-1")
		rr := httptest.NewRecorder()
		h.UpdateTripStatus(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Driver Without dispatcher_id Is Rejected", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		h := NewApiHandler(mockStorage, nil)

		body, _ := json.Marshal(api.StatusUpdate{Status: "IN_TRANSIT"})
		req := authedRequest(http.MethodPost, "/v1/trips/trip-1/status", body, driverIdentity())
		req = withRouteParam(req, "tripId", "trip-1")
		rr := httptest.NewRecorder()
		h.UpdateTripStatus(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStorage.AssertNotCalled(t, "UpdateTripStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown Status Is Rejected", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		h := NewApiHandler(mockStorage, nil)

		body, _ := json.Marshal(api.StatusUpdate{Status: "TELEPORTED"})
		req := authedRequest(http.MethodPost, "/v1/trips/trip-1/status", body, dispatcherIdentity())
		req = withRouteParam(req, "tripId", "trip-1")
		rr := httptest.NewRecorder()
		h.UpdateTripStatus(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Unknown status")
	})

	t.Run("Skipped Step Maps To Unprocessable", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("UpdateTripStatus", mock.Anything, dispatcherIdentity(), "disp-1", "trip-1", models.StatusDelivered).Return(nil, storage.ErrInvalidTransition)

		h := NewApiHandler(mockStorage, nil)

		body, _ := json.Marshal(api.StatusUpdate{Status: "DELIVERED"})
		req := authedRequest(http.MethodPost, "/v1/trips/trip-1/status", body, dispatcherIdentity())
		req = withRouteParam(req, "tripId", "trip-1")
		rr := httptest.NewRecorder()
		h.UpdateTripStatus(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		mockStorage.AssertExpectations(t)
	})
}
