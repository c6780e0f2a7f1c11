package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/tmorand/moodtrip/backend/internal/domain"
	"github.com/tmorand/moodtrip/backend/internal/repo"
)

// summaryWindow is how many of the newest readings feed the group pulse.
const summaryWindow = 20

// MoodService ingests energy readings for a trip and decides whether the
// group has crossed the pivot threshold.
//
// Policy: a single low reading triggers shouldPivot. The group-percentage
// policy from the product docs is deliberately not the trigger; Summary
// exposes the low fraction read-only for clients that want to render it.
type MoodService struct {
	store repo.Store
}

// NewMoodService constructs a MoodService backed by the provided store.
func NewMoodService(store repo.Store) *MoodService {
	return &MoodService{store: store}
}

// RecordMood appends a reading and reports whether the caller should offer
// a pivot. Readings are immutable once written.
// Returns domain.ErrValidation for an unknown energy level,
// domain.ErrNotFound if the trip does not exist.
func (s *MoodService) RecordMood(ctx context.Context, tripID uuid.UUID, userID, energyLevel string) (domain.MoodReading, bool, error) {
	if !domain.ValidEnergyLevel(energyLevel) {
		return domain.MoodReading{}, false, fmt.Errorf("%w: energy level must be low, medium, or high", domain.ErrValidation)
	}
	if _, err := s.store.Trips.GetByID(ctx, tripID); err != nil {
		return domain.MoodReading{}, false, fmt.Errorf("service.MoodService.RecordMood: %w", err)
	}

	reading, err := s.store.Moods.Create(ctx, domain.MoodReading{
		TripID:      tripID,
		UserID:      userID,
		EnergyLevel: energyLevel,
	})
	if err != nil {
		return domain.MoodReading{}, false, fmt.Errorf("service.MoodService.RecordMood: %w", err)
	}

	return reading, reading.EnergyLevel == domain.EnergyLow, nil
}

// ListByTrip returns one page of a trip's readings, newest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *MoodService) ListByTrip(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.MoodReading, error) {
	readings, err := s.store.Moods.ListByTrip(ctx, tripID, p)
	if err != nil {
		return nil, fmt.Errorf("service.MoodService.ListByTrip: %w", err)
	}
	if readings == nil {
		return []domain.MoodReading{}, nil
	}
	return readings, nil
}

// Summary tallies the trip's most recent readings into a group pulse.
func (s *MoodService) Summary(ctx context.Context, tripID uuid.UUID) (domain.MoodSummary, error) {
	readings, err := s.store.Moods.Recent(ctx, tripID, summaryWindow)
	if err != nil {
		return domain.MoodSummary{}, fmt.Errorf("service.MoodService.Summary: %w", err)
	}

	counts := lo.CountValuesBy(readings, func(r domain.MoodReading) string { return r.EnergyLevel })
	summary := domain.MoodSummary{
		Low:    counts[domain.EnergyLow],
		Medium: counts[domain.EnergyMedium],
		High:   counts[domain.EnergyHigh],
	}
	if len(readings) > 0 {
		summary.LowFraction = float64(summary.Low) / float64(len(readings))
	}
	return summary, nil
}
