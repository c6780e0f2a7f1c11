// Package service contains the business rules for the travel planner:
// the budget ledger rule, the mood aggregator, the pivot engine, and the
// itinerary generation adapter. Services validate inputs, enforce the
// invariants, and orchestrate repo calls. No SQL lives here — services
// depend on repo interfaces, not implementations.
package service

import (
	"context"

	"github.com/tmorand/moodtrip/backend/internal/domain"
	"github.com/tmorand/moodtrip/backend/internal/repo"
)

// Tx runs a function against a repo.Store bound to a single transaction.
// Implemented by repo.TxManager; tests supply a fake that hands fn a Store
// of mocks. Operations that must not be partially observable (pivot commit,
// ledger mutation + spent recompute) run through this.
type Tx interface {
	WithinTx(ctx context.Context, fn func(repo.Store) error) error
}

// Generator is the external LLM-backed service that produces itinerary and
// proposal content from natural-language prompts. Implementations must
// return domain.ErrGenerationFailed (wrapped) for transport errors, empty
// output, and unparseable JSON alike — callers cannot tell those apart and
// should not have to.
type Generator interface {
	// Itinerary turns a free-form travel request into a reply and,
	// when the user asked for a plan, a full generated trip.
	Itinerary(ctx context.Context, userMessage string, prefs *domain.Preferences) (domain.ItineraryResult, error)

	// PivotProposal synthesizes a low-energy replacement for the given
	// activity under the supplied conditions.
	PivotProposal(ctx context.Context, activity domain.Activity, pctx domain.PivotContext) (domain.PivotProposal, error)

	// Adaptations produces free-text suggestions for adjusting the listed
	// activities to current conditions.
	Adaptations(ctx context.Context, activitiesText string, actx domain.AdaptContext) (string, error)

	// CarePlan produces a wellness micro-itinerary for one unwell traveller.
	CarePlan(ctx context.Context, condition, destination, currentActivity string) (domain.CarePlan, error)
}

// Geocoder resolves a place name to coordinates, best-effort. A nil result
// with a nil error means the place could not be resolved; callers must treat
// that as "leave unresolved", never as a failure of the enclosing operation.
type Geocoder interface {
	Geocode(ctx context.Context, place string) (*domain.Coordinates, error)
}
