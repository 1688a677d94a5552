package events

import (
	"time"

	"github.com/spec-kit/identity-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventUserLoggedIn   EventType = "user_logged_in"
)

// Event is an in-process audit record published by the auth flows.
type Event struct {
	ID         string
	Type       EventType
	Email      string
	Role       domain.Role
	OccurredAt time.Time
}
