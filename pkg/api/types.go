// Package api holds the wire types for the REST surface. These are kept
// separate from the domain models so key attributes and index plumbing never
// leak into responses.
package api

import "time"

// NewTrip is the request body for creating a trip.
type NewTrip struct {
	DriverID          string    `json:"driver_id" validate:"required"`
	LorryID           string    `json:"lorry_id" validate:"required"`
	BrokerID          string    `json:"broker_id" validate:"required"`
	BrokerName        string    `json:"broker_name,omitempty"`
	Origin            string    `json:"origin" validate:"required"`
	Destination       string    `json:"destination" validate:"required"`
	ScheduledPickupAt time.Time `json:"scheduled_pickup_at" validate:"required"`
	BrokerPayment     float64   `json:"broker_payment" validate:"gte=0"`
	DriverPayment     float64   `json:"driver_payment" validate:"gte=0"`
	LorryOwnerPayment float64   `json:"lorry_owner_payment" validate:"gte=0"`
	DistanceKm        float64   `json:"distance_km" validate:"gte=0"`
	Notes             string    `json:"notes,omitempty"`
}

// TripPatch is the request body for a partial trip update. Absent fields are
// left unchanged.
type TripPatch struct {
	DriverID          *string  `json:"driver_id,omitempty"`
	LorryID           *string  `json:"lorry_id,omitempty"`
	BrokerID          *string  `json:"broker_id,omitempty"`
	BrokerName        *string  `json:"broker_name,omitempty"`
	Origin            *string  `json:"origin,omitempty"`
	Destination       *string  `json:"destination,omitempty"`
	BrokerPayment     *float64 `json:"broker_payment,omitempty" validate:"omitempty,gte=0"`
	DriverPayment     *float64 `json:"driver_payment,omitempty" validate:"omitempty,gte=0"`
	LorryOwnerPayment *float64 `json:"lorry_owner_payment,omitempty" validate:"omitempty,gte=0"`
	DistanceKm        *float64 `json:"distance_km,omitempty" validate:"omitempty,gte=0"`
	Notes             *string  `json:"notes,omitempty"`
}

// StatusUpdate is the request body for a trip status transition. DispatcherID
// is required for callers other than the owning dispatcher, whose own id is
// implied.
type StatusUpdate struct {
	Status       string `json:"status" validate:"required"`
	DispatcherID string `json:"dispatcher_id,omitempty"`
}

// Trip is the response shape of one trip.
type Trip struct {
	TripID            string     `json:"trip_id"`
	DispatcherID      string     `json:"dispatcher_id"`
	DriverID          string     `json:"driver_id"`
	LorryID           string     `json:"lorry_id"`
	BrokerID          string     `json:"broker_id"`
	BrokerName        string     `json:"broker_name,omitempty"`
	Origin            string     `json:"origin"`
	Destination       string     `json:"destination"`
	ScheduledPickupAt time.Time  `json:"scheduled_pickup_at"`
	DeliveredAt       *time.Time `json:"delivered_at,omitempty"`
	BrokerPayment     float64    `json:"broker_payment"`
	DriverPayment     float64    `json:"driver_payment"`
	LorryOwnerPayment float64    `json:"lorry_owner_payment"`
	DistanceKm        float64    `json:"distance_km"`
	Status            string     `json:"status"`
	Notes             string     `json:"notes,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// TripPage is a page of trips plus the continuation cursor.
type TripPage struct {
	Trips      []Trip `json:"trips"`
	NextCursor string `json:"next_cursor,omitempty"`
}

// NewUser is the request body for account creation.
type NewUser struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required"`
	FullName string `json:"full_name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role" validate:"required,oneof=dispatcher driver lorry_owner admin"`
}

// User is the response shape of one account.
type User struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewLorry is the request body for registering a lorry.
type NewLorry struct {
	RegistrationNumber string  `json:"registration_number" validate:"required"`
	Model              string  `json:"model,omitempty"`
	CapacityTonnes     float64 `json:"capacity_tonnes,omitempty" validate:"omitempty,gt=0"`
}

// Lorry is the response shape of one lorry.
type Lorry struct {
	LorryID            string    `json:"lorry_id"`
	OwnerID            string    `json:"owner_id"`
	RegistrationNumber string    `json:"registration_number"`
	Model              string    `json:"model,omitempty"`
	CapacityTonnes     float64   `json:"capacity_tonnes,omitempty"`
	VerificationStatus string    `json:"verification_status"`
	RejectionReason    string    `json:"rejection_reason,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// VerificationDecision is the admin request body for moving a lorry through
// the review queue.
type VerificationDecision struct {
	Status string `json:"status" validate:"required"`
	Reason string `json:"reason,omitempty"`
}

// NewBroker is the request body for creating a broker.
type NewBroker struct {
	Name        string `json:"name" validate:"required"`
	ContactName string `json:"contact_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
}

// Broker is the response shape of one broker.
type Broker struct {
	BrokerID    string    `json:"broker_id"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewDocument is the request body for registering a document. The response
// includes a presigned upload request for the bytes.
type NewDocument struct {
	EntityType  string `json:"entity_type" validate:"required,oneof=trip lorry user broker"`
	EntityID    string `json:"entity_id" validate:"required"`
	FileName    string `json:"file_name" validate:"required"`
	ContentType string `json:"content_type,omitempty"`
}

// Document is the response shape of one document record.
type Document struct {
	DocumentID string    `json:"document_id"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	FileName   string    `json:"file_name"`
	UploadedBy string    `json:"uploaded_by"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DocumentWithUpload pairs a created document with the presigned request the
// client uses to upload the bytes.
type DocumentWithUpload struct {
	Document Document       `json:"document"`
	Upload   *SignedRequest `json:"upload,omitempty"`
}

// DocumentWithDownload pairs a document with a presigned download request.
type DocumentWithDownload struct {
	Document Document       `json:"document"`
	Download *SignedRequest `json:"download,omitempty"`
}

// SignedRequest mirrors blobs.SignedRequest on the wire.
type SignedRequest struct {
	URL       string            `json:"url"`
	Method    string            `json:"method"`
	Headers   map[string]string `json:"headers,omitempty"`
	ExpiresIn int64             `json:"expires_in_seconds"`
}
