// Package mapping converts between the wire types in pkg/api and the domain
// models. Key attributes never cross this boundary.
package mapping

import (
	"github.com/lorrylink/lorrylink/pkg/api"
	"github.com/lorrylink/lorrylink/pkg/blobs"
	"github.com/lorrylink/lorrylink/pkg/models"
	"github.com/lorrylink/lorrylink/pkg/storage"
)

// ToDomainNewTrip converts a creation request into a domain trip. The
// dispatcher comes from the authenticated identity, never from the body.
func ToDomainNewTrip(newTrip *api.NewTrip, dispatcherID string) *models.Trip {
	return &models.Trip{
		DispatcherID:      dispatcherID,
		DriverID:          newTrip.DriverID,
		LorryID:           newTrip.LorryID,
		BrokerID:          newTrip.BrokerID,
		BrokerName:        newTrip.BrokerName,
		Origin:            newTrip.Origin,
		Destination:       newTrip.Destination,
		ScheduledPickupAt: newTrip.ScheduledPickupAt,
		BrokerPayment:     newTrip.BrokerPayment,
		DriverPayment:     newTrip.DriverPayment,
		LorryOwnerPayment: newTrip.LorryOwnerPayment,
		DistanceKm:        newTrip.DistanceKm,
		Notes:             newTrip.Notes,
	}
}

// ToApiTrip converts a domain trip to its response shape.
func ToApiTrip(trip *models.Trip) *api.Trip {
	return &api.Trip{
		TripID:            trip.TripID,
		DispatcherID:      trip.DispatcherID,
		DriverID:          trip.DriverID,
		LorryID:           trip.LorryID,
		BrokerID:          trip.BrokerID,
		BrokerName:        trip.BrokerName,
		Origin:            trip.Origin,
		Destination:       trip.Destination,
		ScheduledPickupAt: trip.ScheduledPickupAt,
		DeliveredAt:       trip.DeliveredAt,
		BrokerPayment:     trip.BrokerPayment,
		DriverPayment:     trip.DriverPayment,
		LorryOwnerPayment: trip.LorryOwnerPayment,
		DistanceKm:        trip.DistanceKm,
		Status:            string(trip.Status),
		Notes:             trip.Notes,
		CreatedAt:         trip.CreatedAt,
		UpdatedAt:         trip.UpdatedAt,
	}
}

// ToApiTripPage converts a storage page to its response shape.
func ToApiTripPage(page *storage.TripPage) *api.TripPage {
	trips := make([]api.Trip, len(page.Trips))
	for i := range page.Trips {
		trips[i] = *ToApiTrip(&page.Trips[i])
	}
	return &api.TripPage{Trips: trips, NextCursor: page.NextCursor}
}

// ToStoragePatch converts an API patch to the typed storage patch.
func ToStoragePatch(patch *api.TripPatch) storage.TripPatch {
	return storage.TripPatch{
		DriverID:          patch.DriverID,
		LorryID:           patch.LorryID,
		BrokerID:          patch.BrokerID,
		BrokerName:        patch.BrokerName,
		Origin:            patch.Origin,
		Destination:       patch.Destination,
		BrokerPayment:     patch.BrokerPayment,
		DriverPayment:     patch.DriverPayment,
		LorryOwnerPayment: patch.LorryOwnerPayment,
		DistanceKm:        patch.DistanceKm,
		Notes:             patch.Notes,
	}
}

// ToDomainNewUser converts an account creation request to a domain user.
func ToDomainNewUser(newUser *api.NewUser) *models.User {
	return &models.User{
		Email:    newUser.Email,
		Username: newUser.Username,
		FullName: newUser.FullName,
		Phone:    newUser.Phone,
		Role:     models.Role(newUser.Role),
	}
}

// ToApiUser converts a domain user to its response shape.
func ToApiUser(user *models.User) *api.User {
	return &api.User{
		UserID:    user.UserID,
		Email:     user.Email,
		Username:  user.Username,
		FullName:  user.FullName,
		Phone:     user.Phone,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// ToDomainNewLorry converts a lorry registration to a domain lorry. The owner
// comes from the authenticated identity.
func ToDomainNewLorry(newLorry *api.NewLorry, ownerID string) *models.Lorry {
	return &models.Lorry{
		OwnerID:            ownerID,
		RegistrationNumber: newLorry.RegistrationNumber,
		Model:              newLorry.Model,
		CapacityTonnes:     newLorry.CapacityTonnes,
	}
}

// ToApiLorry converts a domain lorry to its response shape.
func ToApiLorry(lorry *models.Lorry) *api.Lorry {
	return &api.Lorry{
		LorryID:            lorry.LorryID,
		OwnerID:            lorry.OwnerID,
		RegistrationNumber: lorry.RegistrationNumber,
		Model:              lorry.Model,
		CapacityTonnes:     lorry.CapacityTonnes,
		VerificationStatus: string(lorry.VerificationStatus),
		RejectionReason:    lorry.RejectionReason,
		CreatedAt:          lorry.CreatedAt,
		UpdatedAt:          lorry.UpdatedAt,
	}
}

// ToApiLorries converts a domain lorry slice to its response shape.
func ToApiLorries(lorries []models.Lorry) []api.Lorry {
	out := make([]api.Lorry, len(lorries))
	for i := range lorries {
		out[i] = *ToApiLorry(&lorries[i])
	}
	return out
}

// ToDomainNewBroker converts a broker creation request to a domain broker.
func ToDomainNewBroker(newBroker *api.NewBroker) *models.Broker {
	return &models.Broker{
		Name:        newBroker.Name,
		ContactName: newBroker.ContactName,
		Phone:       newBroker.Phone,
		Email:       newBroker.Email,
	}
}

// ToApiBroker converts a domain broker to its response shape.
func ToApiBroker(broker *models.Broker) *api.Broker {
	return &api.Broker{
		BrokerID:    broker.BrokerID,
		Name:        broker.Name,
		ContactName: broker.ContactName,
		Phone:       broker.Phone,
		Email:       broker.Email,
		IsActive:    broker.IsActive,
		CreatedAt:   broker.CreatedAt,
		UpdatedAt:   broker.UpdatedAt,
	}
}

// ToDomainNewDocument converts a document registration to a domain record.
// The uploader comes from the authenticated identity; the object key is
// assigned by the handler once the document id exists.
func ToDomainNewDocument(newDoc *api.NewDocument, uploadedBy string) *models.Document {
	return &models.Document{
		EntityType: newDoc.EntityType,
		EntityID:   newDoc.EntityID,
		FileName:   newDoc.FileName,
		UploadedBy: uploadedBy,
	}
}

// ToApiDocument converts a domain document to its response shape. The object
// key stays internal; clients only ever see presigned requests.
func ToApiDocument(doc *models.Document) *api.Document {
	return &api.Document{
		DocumentID: doc.DocumentID,
		EntityType: doc.EntityType,
		EntityID:   doc.EntityID,
		FileName:   doc.FileName,
		UploadedBy: doc.UploadedBy,
		IsActive:   doc.IsActive,
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}
}

// ToApiSignedRequest converts a blob-store signed request to its wire shape.
func ToApiSignedRequest(req *blobs.SignedRequest) *api.SignedRequest {
	if req == nil {
		return nil
	}
	return &api.SignedRequest{
		URL:       req.URL,
		Method:    req.Method,
		Headers:   req.Headers,
		ExpiresIn: req.ExpiresIn,
	}
}
