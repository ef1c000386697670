// Package notifier publishes trip lifecycle events for downstream delivery
// (email/SMS fan-out happens outside this system; the queue is the boundary).
package notifier

import (
	"context"
	"time"

	"github.com/lorrylink/lorrylink/pkg/models"
)

// Event kinds published to the queue.
const (
	EventTripCreated       = "trip.created"
	EventTripStatusChanged = "trip.status_changed"
)

// TripEvent is the message body for a trip lifecycle event.
type TripEvent struct {
	Kind         string            `json:"kind"`
	TripID       string            `json:"trip_id"`
	DispatcherID string            `json:"dispatcher_id"`
	DriverID     string            `json:"driver_id"`
	LorryID      string            `json:"lorry_id"`
	Status       models.TripStatus `json:"status"`
	OccurredAt   time.Time         `json:"occurred_at"`
}

// Notifier defines the interface for a component that hands trip events to
// the delivery pipeline.
type Notifier interface {
	// PublishTripEvent enqueues one event. Implementations must not block the
	// request beyond a single send attempt.
	PublishTripEvent(ctx context.Context, event TripEvent) error
}
