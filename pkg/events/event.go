package events

import "time"

// Event is the contract for everything published to the outbound bus.
type Event interface {
	// EventType returns the unique code for this event (e.g. "PASSAGES_INGESTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is a plain implementation for one-off events.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// PassagesIngested signals that a batch of chunks finished embedding and
// is now searchable.
func PassagesIngested(collection string, count int) Event {
	return BaseEvent{
		Type: "PASSAGES_INGESTED",
		Data: map[string]interface{}{
			"collection": collection,
			"count":      count,
		},
		OccurredAt: time.Now(),
	}
}
