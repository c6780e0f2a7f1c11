package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tmorand/moodtrip/backend/internal/domain"
	"github.com/tmorand/moodtrip/backend/internal/repo"
)

// ActivityService handles manual activity CRUD. Completion toggling lives on
// BudgetService because it mutates the ledger.
type ActivityService struct {
	store repo.Store
}

// NewActivityService constructs an ActivityService.
func NewActivityService(store repo.Store) *ActivityService {
	return &ActivityService{store: store}
}

// Create validates and persists a manually added activity.
// Returns domain.ErrNotFound if the trip does not exist,
// domain.ErrValidation (wrapped) on bad input.
func (s *ActivityService) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	if err := validateActivity(a); err != nil {
		return domain.Activity{}, err
	}
	if _, err := s.store.Trips.GetByID(ctx, a.TripID); err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	created, err := s.store.Activities.Create(ctx, a)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	return created, nil
}

// Get retrieves a single activity.
// Returns domain.ErrNotFound if it does not exist.
func (s *ActivityService) Get(ctx context.Context, id uuid.UUID) (domain.Activity, error) {
	a, err := s.store.Activities.GetByID(ctx, id)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Get: %w", err)
	}
	return a, nil
}

// ListByTrip returns a trip's main itinerary in (day, orderIndex) order,
// shadow options excluded.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ActivityService) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	activities, err := s.store.Activities.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ActivityService.ListByTrip: %w", err)
	}
	if activities == nil {
		return []domain.Activity{}, nil
	}
	return activities, nil
}

// ListShadows returns only the pre-planned low-energy alternatives for a
// trip.
func (s *ActivityService) ListShadows(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	shadows, err := s.store.Activities.ListShadows(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ActivityService.ListShadows: %w", err)
	}
	if shadows == nil {
		return []domain.Activity{}, nil
	}
	return shadows, nil
}

// Patch applies an allow-listed partial update.
// Returns domain.ErrNotFound if the activity does not exist,
// domain.ErrValidation (wrapped) on bad input.
func (s *ActivityService) Patch(ctx context.Context, id uuid.UUID, p domain.ActivityPatch) (domain.Activity, error) {
	if err := validateActivityPatch(p); err != nil {
		return domain.Activity{}, err
	}
	a, err := s.store.Activities.Patch(ctx, id, p)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Patch: %w", err)
	}
	return a, nil
}

// Delete removes an activity. Shadow options pointing at it keep existing
// with their parent reference nulled; mirrored budget items keep existing
// with their source reference nulled, so spent is unaffected.
// Returns domain.ErrNotFound if it does not exist.
func (s *ActivityService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Activities.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ActivityService.Delete: %w", err)
	}
	return nil
}

func validateActivity(a domain.Activity) error {
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if !domain.ValidCategory(a.Category) {
		return fmt.Errorf("%w: unknown category %q", domain.ErrValidation, a.Category)
	}
	if a.Day < 1 {
		return fmt.Errorf("%w: day must be at least 1", domain.ErrValidation)
	}
	if a.Cost < 0 {
		return fmt.Errorf("%w: cost must not be negative", domain.ErrValidation)
	}
	if a.EnergyLevelRequirement != "" && !domain.ValidEnergyLevel(a.EnergyLevelRequirement) {
		return fmt.Errorf("%w: unknown energy level %q", domain.ErrValidation, a.EnergyLevelRequirement)
	}
	return nil
}

func validateActivityPatch(p domain.ActivityPatch) error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return fmt.Errorf("%w: title must not be empty", domain.ErrValidation)
	}
	if p.Category != nil && !domain.ValidCategory(*p.Category) {
		return fmt.Errorf("%w: unknown category %q", domain.ErrValidation, *p.Category)
	}
	if p.Cost != nil && *p.Cost < 0 {
		return fmt.Errorf("%w: cost must not be negative", domain.ErrValidation)
	}
	if p.EnergyLevelRequirement != nil && !domain.ValidEnergyLevel(*p.EnergyLevelRequirement) {
		return fmt.Errorf("%w: unknown energy level %q", domain.ErrValidation, *p.EnergyLevelRequirement)
	}
	return nil
}
