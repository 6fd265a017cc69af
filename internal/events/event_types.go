package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventRecordCreated  EventType = "record_created"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Nickname string `json:"nickname"`
}

// RecordCreatedPayload payload.
type RecordCreatedPayload struct {
	RecordID    int64   `json:"record_id"`
	Score       float32 `json:"score"`
	DurationSec int     `json:"duration_sec"`
}
