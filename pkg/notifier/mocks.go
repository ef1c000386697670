package notifier

import "context"

// NoOpNotifier is a notifier that does nothing, for local runs and tests.
type NoOpNotifier struct{}

// PublishTripEvent does nothing.
func (NoOpNotifier) PublishTripEvent(ctx context.Context, event TripEvent) error {
	return nil
}

// RecordingNotifier captures published events for assertions in tests.
type RecordingNotifier struct {
	Events []TripEvent
}

// PublishTripEvent appends the event to Events.
func (r *RecordingNotifier) PublishTripEvent(ctx context.Context, event TripEvent) error {
	r.Events = append(r.Events, event)
	return nil
}
