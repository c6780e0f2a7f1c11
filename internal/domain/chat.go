package domain

import (
	"time"

	"github.com/google/uuid"
)

// Chat message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of the trip-planning conversation. Assistant
// messages that produced a trip carry its id in TripID.
type ChatMessage struct {
	ID        uuid.UUID  `json:"id"`
	Role      string     `json:"role"`
	Content   string     `json:"content"`
	TripID    *uuid.UUID `json:"tripId,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}
