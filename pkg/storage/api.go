package storage

import (
	"context"

	"github.com/lorrylink/lorrylink/pkg/auth"
	"github.com/lorrylink/lorrylink/pkg/models"
	"github.com/lorrylink/lorrylink/pkg/query"
)

// TripPage is one page of a trip listing. NextCursor is empty when no more
// data exists.
type TripPage struct {
	Trips      []models.Trip
	NextCursor string
}

// TripPatch carries the optional fields of a trip update. A nil field means
// "leave unchanged"; a set field is written. Changing the driver or lorry
// recomputes the secondary-index keys from the new values.
type TripPatch struct {
	DriverID          *string
	LorryID           *string
	BrokerID          *string
	BrokerName        *string
	Origin            *string
	Destination       *string
	BrokerPayment     *float64
	DriverPayment     *float64
	LorryOwnerPayment *float64
	DistanceKm        *float64
	Notes             *string
}

// TripStore defines trip persistence and the routed listing operation.
type TripStore interface {
	CreateTrip(ctx context.Context, trip *models.Trip) (*models.Trip, error)
	GetTrip(ctx context.Context, dispatcherID, tripID string) (*models.Trip, error)
	UpdateTrip(ctx context.Context, dispatcherID, tripID string, patch TripPatch) (*models.Trip, error)
	UpdateTripStatus(ctx context.Context, identity auth.Identity, dispatcherID, tripID string, target models.TripStatus) (*models.Trip, error)
	ListTrips(ctx context.Context, identity auth.Identity, filters query.Filters, cursor string, limit int32) (*TripPage, error)
}

// UserStore defines user persistence.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// LorryStore defines lorry persistence and the admin verification queue.
type LorryStore interface {
	CreateLorry(ctx context.Context, lorry *models.Lorry) (*models.Lorry, error)
	GetLorry(ctx context.Context, ownerID, lorryID string) (*models.Lorry, error)
	ListLorriesByOwner(ctx context.Context, ownerID string, status models.VerificationStatus) ([]models.Lorry, error)
	SetLorryVerification(ctx context.Context, ownerID, lorryID string, status models.VerificationStatus, reason string) (*models.Lorry, error)
	ListPendingLorries(ctx context.Context, limit int32) ([]models.Lorry, error)
}

// BrokerStore defines broker reference-data persistence. Brokers are
// soft-deleted, never removed.
type BrokerStore interface {
	CreateBroker(ctx context.Context, broker *models.Broker) (*models.Broker, error)
	GetBroker(ctx context.Context, brokerID string) (*models.Broker, error)
	ListBrokers(ctx context.Context, limit int32) ([]models.Broker, error)
	DeactivateBroker(ctx context.Context, brokerID string) error
}

// DocumentStore defines document metadata persistence. Bytes live in the blob
// store.
type DocumentStore interface {
	CreateDocument(ctx context.Context, doc *models.Document) (*models.Document, error)
	ListDocumentsForEntity(ctx context.Context, entityType, entityID string) ([]models.Document, error)
	DeactivateDocument(ctx context.Context, documentID string) error
}
