package events

import "time"

// Event type codes published on the bus.
const (
	TypeUserRegistered       = "USER_REGISTERED"
	TypeAppointmentBooked    = "APPOINTMENT_BOOKED"
	TypeAppointmentCancelled = "APPOINTMENT_CANCELLED"
	TypeOrderPlaced          = "ORDER_PLACED"
	TypeOrderPaid            = "ORDER_PAID"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "ORDER_PLACED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

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

// NewEvent builds a BaseEvent stamped with the current time.
func NewEvent(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}
