package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates published auth events.
type EventType string

const (
	EventLoginSucceeded         EventType = "LoginSucceeded"
	EventSessionRevoked         EventType = "SessionRevoked"
	EventPasswordResetRequested EventType = "PasswordResetRequested"
	EventPasswordChanged        EventType = "PasswordChanged"
)

// Event carries auth lifecycle notifications to subscribers.
type Event struct {
	ID         string
	Type       EventType
	AccountID  string
	Email      string
	OccurredAt time.Time
	Payload    map[string]any
}

// NewEvent builds an event stamped with a fresh id and the current time.
func NewEvent(eventType EventType, accountID, email string, payload map[string]any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		AccountID:  accountID,
		Email:      email,
		OccurredAt: time.Now(),
		Payload:    payload,
	}
}
