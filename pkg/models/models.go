package models

import (
	"time"
)

// Role identifies what kind of account a user holds. Roles are immutable
// after creation.
type Role string

const (
	RoleDispatcher Role = "dispatcher"
	RoleDriver     Role = "driver"
	RoleLorryOwner Role = "lorry_owner"
	RoleAdmin      Role = "admin"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleDispatcher, RoleDriver, RoleLorryOwner, RoleAdmin:
		return true
	}
	return false
}

// TripStatus defines the possible states of a trip.
type TripStatus string

const (
	StatusScheduled TripStatus = "SCHEDULED"
	StatusPickedUp  TripStatus = "PICKED_UP"
	StatusInTransit TripStatus = "IN_TRANSIT"
	StatusDelivered TripStatus = "DELIVERED"
	StatusPaid      TripStatus = "PAID"
)

// VerificationStatus defines the review states of a lorry.
type VerificationStatus string

const (
	VerificationPending           VerificationStatus = "PENDING"
	VerificationApproved          VerificationStatus = "APPROVED"
	VerificationRejected          VerificationStatus = "REJECTED"
	VerificationNeedsMoreEvidence VerificationStatus = "NEEDS_MORE_EVIDENCE"
)

// Trip represents one haul. It is the internal domain model and carries
// dynamodbav tags for marshalling into the single table.
type Trip struct {
	PK     string `dynamodbav:"PK"`
	SK     string `dynamodbav:"SK"`
	GSI1PK string `dynamodbav:"GSI1PK"`
	GSI1SK string `dynamodbav:"GSI1SK"`
	GSI2PK string `dynamodbav:"GSI2PK"`
	GSI2SK string `dynamodbav:"GSI2SK"`

	TripID            string     `dynamodbav:"trip_id"`
	DispatcherID      string     `dynamodbav:"dispatcher_id"`
	DriverID          string     `dynamodbav:"driver_id"`
	LorryID           string     `dynamodbav:"lorry_id"`
	BrokerID          string     `dynamodbav:"broker_id"`
	BrokerName        string     `dynamodbav:"broker_name,omitempty"`
	Origin            string     `dynamodbav:"origin"`
	Destination       string     `dynamodbav:"destination"`
	ScheduledPickupAt time.Time  `dynamodbav:"scheduled_pickup_at"`
	DeliveredAt       *time.Time `dynamodbav:"delivered_at,omitempty"`
	BrokerPayment     float64    `dynamodbav:"broker_payment"`
	DriverPayment     float64    `dynamodbav:"driver_payment"`
	LorryOwnerPayment float64    `dynamodbav:"lorry_owner_payment"`
	DistanceKm        float64    `dynamodbav:"distance_km"`
	Status            TripStatus `dynamodbav:"status"`
	Notes             string     `dynamodbav:"notes,omitempty"`
	CreatedAt         time.Time  `dynamodbav:"created_at"`
	UpdatedAt         time.Time  `dynamodbav:"updated_at"`
}

// User represents any account variant (dispatcher, driver, lorry owner, admin).
type User struct {
	PK     string `dynamodbav:"PK"`
	SK     string `dynamodbav:"SK"`
	GSI3PK string `dynamodbav:"GSI3PK"`
	GSI3SK string `dynamodbav:"GSI3SK"`

	UserID    string    `dynamodbav:"user_id"`
	Email     string    `dynamodbav:"email"`
	Username  string    `dynamodbav:"username"`
	FullName  string    `dynamodbav:"full_name,omitempty"`
	Phone     string    `dynamodbav:"phone,omitempty"`
	Role      Role      `dynamodbav:"role"`
	CreatedAt time.Time `dynamodbav:"created_at"`
	UpdatedAt time.Time `dynamodbav:"updated_at"`
}

// Lorry represents a vehicle owned by a lorry owner. Verification is an
// admin-driven review queue keyed off GSI3.
type Lorry struct {
	PK     string `dynamodbav:"PK"`
	SK     string `dynamodbav:"SK"`
	GSI3PK string `dynamodbav:"GSI3PK"`
	GSI3SK string `dynamodbav:"GSI3SK"`

	LorryID            string             `dynamodbav:"lorry_id"`
	OwnerID            string             `dynamodbav:"owner_id"`
	RegistrationNumber string             `dynamodbav:"registration_number"`
	Model              string             `dynamodbav:"model,omitempty"`
	CapacityTonnes     float64            `dynamodbav:"capacity_tonnes,omitempty"`
	VerificationStatus VerificationStatus `dynamodbav:"verification_status"`
	RejectionReason    string             `dynamodbav:"rejection_reason,omitempty"`
	CreatedAt          time.Time          `dynamodbav:"created_at"`
	UpdatedAt          time.Time          `dynamodbav:"updated_at"`
}

// Broker is a simple reference entity. Brokers are soft-deleted via IsActive,
// never removed.
type Broker struct {
	PK     string `dynamodbav:"PK"`
	SK     string `dynamodbav:"SK"`
	GSI3PK string `dynamodbav:"GSI3PK"`
	GSI3SK string `dynamodbav:"GSI3SK"`

	BrokerID    string    `dynamodbav:"broker_id"`
	Name        string    `dynamodbav:"name"`
	ContactName string    `dynamodbav:"contact_name,omitempty"`
	Phone       string    `dynamodbav:"phone,omitempty"`
	Email       string    `dynamodbav:"email,omitempty"`
	IsActive    bool      `dynamodbav:"is_active"`
	CreatedAt   time.Time `dynamodbav:"created_at"`
	UpdatedAt   time.Time `dynamodbav:"updated_at"`
}

// Document is an attachment record. The bytes live in the blob store; this
// item holds only metadata and the object key.
type Document struct {
	PK     string `dynamodbav:"PK"`
	SK     string `dynamodbav:"SK"`
	GSI3PK string `dynamodbav:"GSI3PK"`
	GSI3SK string `dynamodbav:"GSI3SK"`

	DocumentID string    `dynamodbav:"document_id"`
	EntityType string    `dynamodbav:"entity_type"`
	EntityID   string    `dynamodbav:"entity_id"`
	FileName   string    `dynamodbav:"file_name"`
	ObjectKey  string    `dynamodbav:"object_key"`
	UploadedBy string    `dynamodbav:"uploaded_by"`
	IsActive   bool      `dynamodbav:"is_active"`
	CreatedAt  time.Time `dynamodbav:"created_at"`
	UpdatedAt  time.Time `dynamodbav:"updated_at"`
}
