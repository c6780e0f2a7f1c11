// Package handler implements the HTTP handlers for the travel planner API.
// All handlers are methods on Server, split into resource-specific files
// (trip.go, activity.go, etc.) that share the same struct so they can access
// its dependencies. Routing is declared in Routes.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tmorand/moodtrip/backend/internal/domain"
	"github.com/tmorand/moodtrip/backend/internal/service"
)

// Service interfaces are defined here, in the consumer package, following
// the Go convention: "accept interfaces, return concrete types". Handler
// tests inject function-field mocks without touching the database or the
// service layer.

// TripServicer defines the business operations the trip handlers depend on.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Trip, error)
	Patch(ctx context.Context, id uuid.UUID, p domain.TripPatch) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ActivityServicer defines the business operations the activity handlers
// depend on.
type ActivityServicer interface {
	Create(ctx context.Context, a domain.Activity) (domain.Activity, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error)
	ListShadows(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error)
	Patch(ctx context.Context, id uuid.UUID, p domain.ActivityPatch) (domain.Activity, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// BudgetServicer defines the ledger operations, including activity
// completion toggling because toggling mutates the ledger.
type BudgetServicer interface {
	CreateItem(ctx context.Context, item domain.BudgetItem) (domain.BudgetItem, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.BudgetItem, error)
	ToggleCompletion(ctx context.Context, activityID uuid.UUID, completed bool) (domain.Activity, error)
}

// MoodServicer defines the mood aggregator operations.
type MoodServicer interface {
	RecordMood(ctx context.Context, tripID uuid.UUID, userID, energyLevel string) (domain.MoodReading, bool, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.MoodReading, error)
	Summary(ctx context.Context, tripID uuid.UUID) (domain.MoodSummary, error)
}

// PivotServicer defines the pivot engine operations.
type PivotServicer interface {
	Propose(ctx context.Context, tripID, activityID uuid.UUID, pctx domain.PivotContext) (domain.PivotProposal, error)
	Confirm(ctx context.Context, tripID, oldActivityID uuid.UUID, newData domain.ProposedActivity, reason string) (domain.Activity, error)
	Logs(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.PivotLog, error)
}

// PlannerServicer defines the generation adapter operations.
type PlannerServicer interface {
	Generate(ctx context.Context, userID, content string) (service.GenerateResult, error)
	Messages(ctx context.Context) ([]domain.ChatMessage, error)
	Adapt(ctx context.Context, tripID uuid.UUID, actx domain.AdaptContext) (string, error)
	CarePlan(ctx context.Context, condition, destination, currentActivity string) (domain.CarePlan, error)
}

// PreferencesServicer defines the travel profile operations.
type PreferencesServicer interface {
	Get(ctx context.Context, userID string) (domain.Preferences, error)
	Patch(ctx context.Context, userID string, p domain.PreferencesPatch) (domain.Preferences, error)
}

// DiscoveryServicer defines the read operations over the inspiration
// catalog.
type DiscoveryServicer interface {
	List(ctx context.Context) ([]domain.Discovery, error)
	Featured(ctx context.Context) ([]domain.Discovery, error)
}

// Server holds the service dependencies for all API endpoints.
type Server struct {
	trips       TripServicer
	activities  ActivityServicer
	budget      BudgetServicer
	moods       MoodServicer
	pivots      PivotServicer
	planner     PlannerServicer
	preferences PreferencesServicer
	discoveries DiscoveryServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(
	trips TripServicer,
	activities ActivityServicer,
	budget BudgetServicer,
	moods MoodServicer,
	pivots PivotServicer,
	planner PlannerServicer,
	preferences PreferencesServicer,
	discoveries DiscoveryServicer,
) *Server {
	return &Server{
		trips:       trips,
		activities:  activities,
		budget:      budget,
		moods:       moods,
		pivots:      pivots,
		planner:     planner,
		preferences: preferences,
		discoveries: discoveries,
	}
}

// Routes mounts every endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/healthz", s.GetHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/preferences", s.GetPreferences)
		r.Patch("/preferences", s.PatchPreferences)

		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.ListTrips)
			r.Post("/", s.CreateTrip)

			r.Route("/{tripID}", func(r chi.Router) {
				r.Get("/", s.GetTrip)
				r.Patch("/", s.PatchTrip)
				r.Delete("/", s.DeleteTrip)

				r.Get("/activities", s.ListActivities)
				r.Get("/activities/shadows", s.ListShadowActivities)
				r.Get("/budget", s.ListBudgetItems)

				r.Post("/mood", s.RecordMood)
				r.Get("/mood", s.ListMoodReadings)
				r.Get("/mood/summary", s.GetMoodSummary)

				r.Post("/pivot", s.ProposePivot)
				r.Post("/pivot/confirm", s.ConfirmPivot)
				r.Get("/pivots", s.ListPivotLogs)

				r.Post("/adapt", s.AdaptItinerary)
				r.Post("/care-mode", s.GenerateCarePlan)
			})
		})

		r.Route("/activities", func(r chi.Router) {
			r.Post("/", s.CreateActivity)
			r.Patch("/{activityID}", s.PatchActivity)
			r.Delete("/{activityID}", s.DeleteActivity)
			r.Post("/{activityID}/toggle", s.ToggleActivity)
		})

		r.Post("/budget", s.CreateBudgetItem)
		r.Delete("/budget/{itemID}", s.DeleteBudgetItem)

		r.Get("/chat/messages", s.ListChatMessages)
		r.Post("/chat/send", s.SendChatMessage)

		r.Get("/discoveries", s.ListDiscoveries)
		r.Get("/discoveries/featured", s.ListFeaturedDiscoveries)
	})
}

// userID resolves the caller identity from the X-User-ID header. The demo
// client does not authenticate, so an absent header falls back to a shared
// default identity rather than rejecting the request.
func userID(r *http.Request) string {
	if id := r.Header.Get("X-User-ID"); id != "" {
		return id
	}
	return "default-user"
}
