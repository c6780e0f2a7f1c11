package domain

// Types in this file describe the loosely-typed JSON the external generator
// returns. They are parsed at the adapter boundary and validated by the
// planner before anything is persisted — generator output is never trusted
// as-is.

// ItineraryResult is the generator's answer to a free-form travel request.
// Trip is nil when the user was just chatting.
type ItineraryResult struct {
	Response string         `json:"response"`
	Trip     *GeneratedTrip `json:"trip,omitempty"`
}

// GeneratedTrip is a full multi-day itinerary proposal.
type GeneratedTrip struct {
	Destination string              `json:"destination"`
	Coordinates *Coordinates        `json:"coordinates,omitempty"`
	StartDate   string              `json:"startDate"`
	EndDate     string              `json:"endDate"`
	Budget      float64             `json:"budget"`
	Activities  []GeneratedActivity `json:"activities"`
}

// GeneratedActivity is one itinerary entry in a generated trip, optionally
// carrying a low-energy shadow alternative.
type GeneratedActivity struct {
	Day          int              `json:"day"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Category     string           `json:"category"`
	Time         string           `json:"time"`
	Duration     string           `json:"duration"`
	Location     string           `json:"location"`
	Coordinates  *Coordinates     `json:"coordinates,omitempty"`
	ImageKeyword string           `json:"imageKeyword,omitempty"`
	Cost         float64          `json:"cost"`
	OrderIndex   int              `json:"orderIndex"`
	ShadowOption *GeneratedShadow `json:"shadowOption,omitempty"`
}

// GeneratedShadow is the pre-planned low-energy alternative attached to a
// generated activity.
type GeneratedShadow struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Time        string       `json:"time"`
	Duration    string       `json:"duration"`
	Location    string       `json:"location"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Cost        float64      `json:"cost"`
}

// AdaptContext is the situational input for free-text itinerary adaptation
// suggestions.
type AdaptContext struct {
	Weather         string  `json:"weather,omitempty"`
	Time            string  `json:"time,omitempty"`
	BudgetRemaining float64 `json:"budgetRemaining,omitempty"`
}

// CarePlan is the wellness micro-itinerary produced by care mode for one
// unwell traveller. It is returned to the caller and never persisted.
type CarePlan struct {
	Condition        string                `json:"condition"`
	PersonalPlan     []CarePlanStep        `json:"personalPlan"`
	GroupPlan        []CareGroupAdjustment `json:"groupPlan"`
	RecheckInMinutes int                   `json:"recheckInMinutes"`
}

// CarePlanStep is one calm, low-effort step for the affected traveller.
type CarePlanStep struct {
	Title               string       `json:"title"`
	Description         string       `json:"description"`
	RecommendedDuration string       `json:"recommendedDuration"`
	PlaceType           string       `json:"placeType"`
	ImageKeyword        string       `json:"imageKeyword,omitempty"`
	Coordinates         *Coordinates `json:"coordinates,omitempty"`
}

// CareGroupAdjustment is a minimal change the rest of the group can make.
type CareGroupAdjustment struct {
	Title                 string `json:"title"`
	Description           string `json:"description"`
	RecommendedAdjustment string `json:"recommendedAdjustment"`
	Reasoning             string `json:"reasoning"`
	ImageKeyword          string `json:"imageKeyword,omitempty"`
}
