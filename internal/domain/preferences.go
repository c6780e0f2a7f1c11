package domain

import (
	"time"

	"github.com/google/uuid"
)

// Preferences stores a user's travel profile, fed to the generator to
// personalize itineraries. One row per user.
type Preferences struct {
	ID          uuid.UUID `json:"id"`
	UserID      string    `json:"userId"`
	Budget      string    `json:"budget"` // low, medium, high, luxury
	Pace        string    `json:"pace"`   // relaxed, moderate, fast-paced
	Interests   []string  `json:"interests"`
	Dietary     []string  `json:"dietary"`
	TravelStyle string    `json:"travelStyle"` // solo, couple, family, group
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DefaultPreferences returns the profile used until a user customizes theirs.
func DefaultPreferences(userID string) Preferences {
	return Preferences{
		UserID:      userID,
		Budget:      "medium",
		Pace:        "moderate",
		Interests:   []string{"food", "culture"},
		Dietary:     []string{"none"},
		TravelStyle: "solo",
	}
}

// PreferencesPatch carries partial preference updates.
// Nil fields leave the stored value untouched.
type PreferencesPatch struct {
	Budget      *string
	Pace        *string
	Interests   []string
	Dietary     []string
	TravelStyle *string
}
