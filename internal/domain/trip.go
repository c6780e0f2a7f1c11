// Package domain contains the core data types for the travel planner.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip statuses. Status is managed by the client; the core only stores it.
const (
	TripStatusPlanning  = "planning"
	TripStatusActive    = "active"
	TripStatusCompleted = "completed"
)

// Coordinates is a WGS84 point. A nil *Coordinates means "unresolved";
// the geocoder may backfill it best-effort after trip creation.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Unresolved reports whether the point should be treated as missing.
// The generator sometimes emits 0/0 placeholders, which are not a real
// location for any itinerary this system produces.
func (c *Coordinates) Unresolved() bool {
	return c == nil || (c.Lat == 0 && c.Lng == 0)
}

// Trip is the top-level aggregate. Activities, budget items, mood readings,
// and pivot logs all belong to exactly one trip and are cascade-scoped by it.
//
// Spent is derived state: it is only ever written by the budget ledger rule,
// which keeps it equal to the sum of the trip's budget item amounts.
// Dates are kept as "2006-01-02" strings, matching the wire format the
// generator produces and the client submits.
type Trip struct {
	ID          uuid.UUID    `json:"id"`
	UserID      string       `json:"userId"`
	Destination string       `json:"destination"`
	StartDate   string       `json:"startDate"`
	EndDate     string       `json:"endDate"`
	Budget      float64      `json:"budget"`
	Spent       float64      `json:"spent"`
	Status      string       `json:"status"`
	ImageURL    string       `json:"imageUrl,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// TripPatch carries the mutable trip fields for a partial update.
// Nil pointers leave the stored value untouched. Spent is deliberately
// absent — it belongs to the ledger rule, not to callers.
type TripPatch struct {
	Destination *string
	StartDate   *string
	EndDate     *string
	Budget      *float64
	Status      *string
	ImageURL    *string
	Coordinates *Coordinates
}

// ValidTripStatus reports whether s is one of the known trip statuses.
func ValidTripStatus(s string) bool {
	return s == TripStatusPlanning || s == TripStatusActive || s == TripStatusCompleted
}
