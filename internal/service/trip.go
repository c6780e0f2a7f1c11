package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tmorand/moodtrip/backend/internal/domain"
	"github.com/tmorand/moodtrip/backend/internal/repo"
)

// TripService handles manual trip CRUD. Generated trips go through the
// planner instead, which persists a whole itinerary in one transaction.
type TripService struct {
	store repo.Store
}

// NewTripService constructs a TripService.
func NewTripService(store repo.Store) *TripService {
	return &TripService{store: store}
}

// Create validates and persists a manually entered trip.
// Returns domain.ErrValidation (wrapped) on bad input.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	created, err := s.store.Trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return created, nil
}

// Get retrieves a single trip.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *TripService) Get(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.store.Trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Get: %w", err)
	}
	return trip, nil
}

// ListByUser returns a user's trips, newest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListByUser(ctx context.Context, userID string) ([]domain.Trip, error) {
	trips, err := s.store.Trips.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListByUser: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Patch applies a partial update. Spent has no patch slot; it is derived
// state owned by the budget ledger.
// Returns domain.ErrNotFound if the trip does not exist,
// domain.ErrValidation (wrapped) on bad input.
func (s *TripService) Patch(ctx context.Context, id uuid.UUID, p domain.TripPatch) (domain.Trip, error) {
	if err := validateTripPatch(p); err != nil {
		return domain.Trip{}, err
	}
	trip, err := s.store.Trips.Patch(ctx, id, p)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Patch: %w", err)
	}
	return trip, nil
}

// Delete removes a trip and everything it owns.
// Returns domain.ErrNotFound if it does not exist.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Trips.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Destination) == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if err := validateDate(trip.StartDate); err != nil {
		return fmt.Errorf("%w: startDate %v", domain.ErrValidation, err)
	}
	if err := validateDate(trip.EndDate); err != nil {
		return fmt.Errorf("%w: endDate %v", domain.ErrValidation, err)
	}
	if trip.Budget < 0 {
		return fmt.Errorf("%w: budget must not be negative", domain.ErrValidation)
	}
	return nil
}

func validateTripPatch(p domain.TripPatch) error {
	if p.Destination != nil && strings.TrimSpace(*p.Destination) == "" {
		return fmt.Errorf("%w: destination must not be empty", domain.ErrValidation)
	}
	if p.StartDate != nil {
		if err := validateDate(*p.StartDate); err != nil {
			return fmt.Errorf("%w: startDate %v", domain.ErrValidation, err)
		}
	}
	if p.EndDate != nil {
		if err := validateDate(*p.EndDate); err != nil {
			return fmt.Errorf("%w: endDate %v", domain.ErrValidation, err)
		}
	}
	if p.Budget != nil && *p.Budget < 0 {
		return fmt.Errorf("%w: budget must not be negative", domain.ErrValidation)
	}
	if p.Status != nil && !domain.ValidTripStatus(*p.Status) {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, *p.Status)
	}
	return nil
}

func validateDate(s string) error {
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("must be a YYYY-MM-DD date, got %q", s)
	}
	return nil
}
