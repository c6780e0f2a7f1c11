package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity categories.
const (
	CategoryActivity      = "activity"
	CategoryRestaurant    = "restaurant"
	CategoryAccommodation = "accommodation"
	CategoryTransport     = "transport"
)

// Energy levels, used both as an activity requirement and as a mood signal.
const (
	EnergyLow    = "low"
	EnergyMedium = "medium"
	EnergyHigh   = "high"
)

// Activity is a single itinerary entry within a trip.
//
// A shadow option is a pre-generated low-energy alternative: IsShadowOption
// is true and ParentActivityID references the non-shadow activity it can
// replace. The reference is non-owning and intra-trip only — deleting the
// parent nulls it out rather than deleting the shadow.
// Main itinerary queries exclude shadows; ListShadows surfaces only them.
type Activity struct {
	ID                     uuid.UUID    `json:"id"`
	TripID                 uuid.UUID    `json:"tripId"`
	Day                    int          `json:"day"`        // 1-based
	OrderIndex             int          `json:"orderIndex"` // position within the day
	Title                  string       `json:"title"`
	Description            string       `json:"description,omitempty"`
	Category               string       `json:"category"`
	Time                   string       `json:"time"`
	Duration               string       `json:"duration,omitempty"`
	Location               string       `json:"location"`
	Coordinates            *Coordinates `json:"coordinates,omitempty"`
	Cost                   float64      `json:"cost"`
	ImageURL               string       `json:"imageUrl,omitempty"`
	Completed              bool         `json:"completed"`
	EnergyLevelRequirement string       `json:"energyLevelRequirement"`
	IsShadowOption         bool         `json:"isShadowOption"`
	ParentActivityID       *uuid.UUID   `json:"parentActivityId,omitempty"`
	CreatedAt              time.Time    `json:"createdAt"`
}

// ActivityPatch is the allow-list for generic activity updates. Identity
// fields (ID, TripID, ParentActivityID) have no slot here, so an external
// caller cannot corrupt them through a patch. Nil pointers leave the stored
// value untouched.
type ActivityPatch struct {
	Title                  *string
	Description            *string
	Category               *string
	Time                   *string
	Duration               *string
	Location               *string
	Cost                   *float64
	Completed              *bool
	EnergyLevelRequirement *string
	IsShadowOption         *bool
	ImageURL               *string
}

// ValidCategory reports whether c is one of the known activity categories.
func ValidCategory(c string) bool {
	switch c {
	case CategoryActivity, CategoryRestaurant, CategoryAccommodation, CategoryTransport:
		return true
	}
	return false
}

// ValidEnergyLevel reports whether e is low, medium, or high.
func ValidEnergyLevel(e string) bool {
	return e == EnergyLow || e == EnergyMedium || e == EnergyHigh
}
