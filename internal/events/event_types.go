package events

import (
	"time"

	"github.com/spec-kit/message-board/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserLoggedIn   EventType = "user_logged_in"
	EventMessageCreated EventType = "message_created"
	EventMessageDeleted EventType = "message_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     string      `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserLoggedInPayload payload.
type UserLoggedInPayload struct {
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// MessageCreatedPayload payload.
type MessageCreatedPayload struct {
	MessageID int64  `json:"message_id"`
	Preview   string `json:"preview"`
}

// MessageDeletedPayload payload.
type MessageDeletedPayload struct {
	MessageID int64 `json:"message_id"`
}
