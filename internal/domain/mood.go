package domain

import (
	"time"

	"github.com/google/uuid"
)

// MoodReading is one participant's energy signal for a trip.
// Readings are append-only: never mutated or deleted after creation.
type MoodReading struct {
	ID          uuid.UUID `json:"id"`
	TripID      uuid.UUID `json:"tripId"`
	UserID      string    `json:"userId"`
	EnergyLevel string    `json:"energyLevel"` // low, medium, high
	CreatedAt   time.Time `json:"createdAt"`
}

// MoodSummary tallies a trip's most recent readings for a group pulse view.
// LowFraction is informational only — the pivot trigger is decided per
// reading, not from this summary.
type MoodSummary struct {
	Low         int     `json:"low"`
	Medium      int     `json:"medium"`
	High        int     `json:"high"`
	LowFraction float64 `json:"lowFraction"`
}
