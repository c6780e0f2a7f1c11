package domain

import (
	"time"

	"github.com/google/uuid"
)

// Discovery categories.
const (
	DiscoveryHiddenGem       = "hidden-gem"
	DiscoveryLocalExperience = "local-experience"
	DiscoveryPopular         = "popular"
	DiscoveryAdventure       = "adventure"
)

// Discovery is a curated destination idea from the inspiration catalog.
// The catalog is read-only through the API; entries are seeded by
// migration.
type Discovery struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	ImageURL    string    `json:"imageUrl"`
	Rating      float64   `json:"rating"`
	Sentiment   string    `json:"sentiment"`
	Cost        string    `json:"cost"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
}
