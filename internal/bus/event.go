package bus

import (
	"time"

	"github.com/google/uuid"
)

// Event kinds published inside the daemon. Subscribers filter by prefix,
// so "record." receives every record change.
const (
	KindDaemonStatusChanged = "daemon.status_changed"
	KindStoreHealth         = "daemon.store_health"
	KindRecordStatusUpdated = "record.status_updated"
	KindRecordCreated       = "record.created"
)

// Event represents a domain event published on the bus.
type Event struct {
	ID        string
	Kind      string
	Timestamp time.Time
	Payload   any
}

// NewEvent stamps a fresh id and the current time onto an event.
func NewEvent(kind string, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Kind:      kind,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

// RecordChange is the payload of record.* events.
type RecordChange struct {
	Collection string
	DocumentID string
	Status     string
}
