package domain

import (
	"time"

	"github.com/google/uuid"
)

// BudgetItem is one line of a trip's spending ledger.
//
// Items are created directly by the client, or appended by the ledger rule
// when an activity with a positive cost is marked completed. Items of the
// second kind carry SourceActivityID so that un-completing the activity
// removes exactly the row it created — matching by description and amount
// would confuse two activities that share a title and a price.
type BudgetItem struct {
	ID               uuid.UUID  `json:"id"`
	TripID           uuid.UUID  `json:"tripId"`
	Category         string     `json:"category"`
	Amount           float64    `json:"amount"`
	Description      string     `json:"description"`
	Date             string     `json:"date"` // "2006-01-02"
	SourceActivityID *uuid.UUID `json:"sourceActivityId,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}
