package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/tmorand/moodtrip/backend/internal/domain"
	"github.com/tmorand/moodtrip/backend/internal/repo"
)

// PlannerService is the itinerary generation adapter: it turns a natural-
// language travel request into a persisted trip with activities and shadow
// options in one pass, and fronts the remaining generator-backed features
// (adaptation suggestions, care mode).
type PlannerService struct {
	store repo.Store
	tx    Tx
	gen   Generator
	geo   Geocoder
	log   *slog.Logger
}

// NewPlannerService constructs a PlannerService.
func NewPlannerService(store repo.Store, tx Tx, gen Generator, geo Geocoder, log *slog.Logger) *PlannerService {
	return &PlannerService{store: store, tx: tx, gen: gen, geo: geo, log: log}
}

// GenerateResult is what a chat turn produces: the persisted assistant
// message and, when the generator planned a trip, the created trip.
type GenerateResult struct {
	Message domain.ChatMessage `json:"message"`
	Trip    *domain.Trip       `json:"trip,omitempty"`
}

// Generate runs one chat turn: persist the user message, call the generator
// with the user's preferences, and if the reply contains a trip payload,
// persist the trip with all its activities and shadow options atomically.
// Unresolved coordinates are backfilled best-effort after commit.
//
// A generator failure surfaces as domain.ErrGenerationFailed; the user
// message is already saved by then, which matches the conversation the user
// actually had.
func (s *PlannerService) Generate(ctx context.Context, userID, content string) (GenerateResult, error) {
	if strings.TrimSpace(content) == "" {
		return GenerateResult{}, fmt.Errorf("%w: message content is required", domain.ErrValidation)
	}

	if _, err := s.store.Chat.Create(ctx, domain.ChatMessage{
		Role:    domain.RoleUser,
		Content: content,
	}); err != nil {
		return GenerateResult{}, fmt.Errorf("service.PlannerService.Generate: %w", err)
	}

	var prefs *domain.Preferences
	if p, err := s.store.Preferences.GetByUser(ctx, userID); err == nil {
		prefs = &p
	} else if !errors.Is(err, domain.ErrNotFound) {
		return GenerateResult{}, fmt.Errorf("service.PlannerService.Generate: %w", err)
	}

	result, err := s.gen.Itinerary(ctx, content, prefs)
	if err != nil {
		return GenerateResult{}, fmt.Errorf("service.PlannerService.Generate: %w", err)
	}

	var trip *domain.Trip
	if result.Trip != nil {
		created, err := s.persistGeneratedTrip(ctx, userID, *result.Trip)
		if err != nil {
			return GenerateResult{}, fmt.Errorf("service.PlannerService.Generate: %w", err)
		}
		trip = &created
	}

	assistant := domain.ChatMessage{
		Role:    domain.RoleAssistant,
		Content: result.Response,
	}
	if trip != nil {
		assistant.TripID = &trip.ID
	}
	msg, err := s.store.Chat.Create(ctx, assistant)
	if err != nil {
		return GenerateResult{}, fmt.Errorf("service.PlannerService.Generate: %w", err)
	}

	return GenerateResult{Message: msg, Trip: trip}, nil
}

// persistGeneratedTrip validates the generator payload and writes the trip,
// its main activities, and their shadow options in one transaction. A
// malformed activity entry is dropped with a warning before the transaction
// starts; a storage error rolls the whole trip back — no truncated
// itineraries.
func (s *PlannerService) persistGeneratedTrip(ctx context.Context, userID string, gt domain.GeneratedTrip) (domain.Trip, error) {
	if err := validateGeneratedTrip(gt); err != nil {
		return domain.Trip{}, err
	}

	accepted := make([]domain.GeneratedActivity, 0, len(gt.Activities))
	for _, ga := range gt.Activities {
		if err := validateGeneratedActivity(ga); err != nil {
			s.log.Warn("dropping malformed generated activity",
				"title", ga.Title, "error", err)
			continue
		}
		accepted = append(accepted, ga)
	}

	var (
		trip      domain.Trip
		created   []domain.Activity
		unplotted []uuid.UUID
	)
	err := s.tx.WithinTx(ctx, func(store repo.Store) error {
		var err error
		trip, err = store.Trips.Create(ctx, domain.Trip{
			UserID:      userID,
			Destination: gt.Destination,
			StartDate:   gt.StartDate,
			EndDate:     gt.EndDate,
			Budget:      gt.Budget,
			Coordinates: resolvedOrNil(gt.Coordinates),
		})
		if err != nil {
			return err
		}

		for _, ga := range accepted {
			main, err := store.Activities.Create(ctx, domain.Activity{
				TripID:                 trip.ID,
				Day:                    ga.Day,
				OrderIndex:             ga.OrderIndex,
				Title:                  ga.Title,
				Description:            ga.Description,
				Category:               ga.Category,
				Time:                   ga.Time,
				Duration:               ga.Duration,
				Location:               ga.Location,
				Coordinates:            resolvedOrNil(ga.Coordinates),
				Cost:                   ga.Cost,
				EnergyLevelRequirement: domain.EnergyHigh,
			})
			if err != nil {
				return err
			}
			created = append(created, main)
			if main.Coordinates == nil {
				unplotted = append(unplotted, main.ID)
			}

			if sh := ga.ShadowOption; sh != nil {
				shadow, err := store.Activities.Create(ctx, domain.Activity{
					TripID:                 trip.ID,
					Day:                    ga.Day,
					OrderIndex:             ga.OrderIndex,
					Title:                  sh.Title,
					Description:            sh.Description,
					Category:               sh.Category,
					Time:                   sh.Time,
					Duration:               sh.Duration,
					Location:               sh.Location,
					Coordinates:            resolvedOrNil(sh.Coordinates),
					Cost:                   sh.Cost,
					EnergyLevelRequirement: domain.EnergyLow,
					IsShadowOption:         true,
					ParentActivityID:       &main.ID,
				})
				if err != nil {
					return err
				}
				created = append(created, shadow)
				if shadow.Coordinates == nil {
					unplotted = append(unplotted, shadow.ID)
				}
			}
		}
		return nil
	})
	if err != nil {
		return domain.Trip{}, err
	}

	// Backfill happens after commit: a slow or dead geocoder must never
	// hold the transaction open or fail the trip.
	s.backfillCoordinates(ctx, trip, created, unplotted)

	return trip, nil
}

// backfillCoordinates resolves missing locations best-effort. Every failure
// mode is a skip, never an error.
func (s *PlannerService) backfillCoordinates(ctx context.Context, trip domain.Trip, activities []domain.Activity, unplotted []uuid.UUID) {
	if s.geo == nil {
		return
	}

	if trip.Coordinates.Unresolved() {
		if c, err := s.geo.Geocode(ctx, trip.Destination); err == nil && c != nil {
			if _, err := s.store.Trips.Patch(ctx, trip.ID, domain.TripPatch{Coordinates: c}); err != nil {
				s.log.Warn("coordinate backfill failed", "trip", trip.ID, "error", err)
			}
		}
	}

	missing := make(map[uuid.UUID]bool, len(unplotted))
	for _, id := range unplotted {
		missing[id] = true
	}
	for _, a := range activities {
		if !missing[a.ID] {
			continue
		}
		c, err := s.geo.Geocode(ctx, a.Location)
		if err != nil || c == nil {
			continue
		}
		if err := s.store.Activities.SetCoordinates(ctx, a.ID, *c); err != nil {
			s.log.Warn("coordinate backfill failed", "activity", a.ID, "error", err)
		}
	}
}

// Adapt asks the generator for free-text suggestions to adjust a trip's
// itinerary to current conditions.
// Returns domain.ErrNotFound if the trip does not exist,
// domain.ErrGenerationFailed if the generator errors.
func (s *PlannerService) Adapt(ctx context.Context, tripID uuid.UUID, actx domain.AdaptContext) (string, error) {
	if _, err := s.store.Trips.GetByID(ctx, tripID); err != nil {
		return "", fmt.Errorf("service.PlannerService.Adapt: %w", err)
	}
	activities, err := s.store.Activities.ListByTrip(ctx, tripID)
	if err != nil {
		return "", fmt.Errorf("service.PlannerService.Adapt: %w", err)
	}

	lines := make([]string, 0, len(activities))
	for _, a := range activities {
		lines = append(lines, fmt.Sprintf("%s - %s at %s", a.Time, a.Title, a.Location))
	}

	suggestions, err := s.gen.Adaptations(ctx, strings.Join(lines, "\n"), actx)
	if err != nil {
		return "", fmt.Errorf("service.PlannerService.Adapt: %w", err)
	}
	return suggestions, nil
}

// CarePlan asks the generator for a wellness micro-itinerary for one unwell
// traveller. Nothing is persisted.
func (s *PlannerService) CarePlan(ctx context.Context, condition, destination, currentActivity string) (domain.CarePlan, error) {
	if strings.TrimSpace(condition) == "" {
		return domain.CarePlan{}, fmt.Errorf("%w: condition is required", domain.ErrValidation)
	}
	if strings.TrimSpace(destination) == "" {
		return domain.CarePlan{}, fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}

	plan, err := s.gen.CarePlan(ctx, condition, destination, currentActivity)
	if err != nil {
		return domain.CarePlan{}, fmt.Errorf("service.PlannerService.CarePlan: %w", err)
	}
	return plan, nil
}

// Messages returns the full conversation, oldest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *PlannerService) Messages(ctx context.Context) ([]domain.ChatMessage, error) {
	msgs, err := s.store.Chat.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.PlannerService.Messages: %w", err)
	}
	if msgs == nil {
		return []domain.ChatMessage{}, nil
	}
	return msgs, nil
}

// resolvedOrNil normalizes the generator's 0/0 placeholder coordinates to
// "unresolved".
func resolvedOrNil(c *domain.Coordinates) *domain.Coordinates {
	if c.Unresolved() {
		return nil
	}
	return c
}

// validateGeneratedTrip rejects trip payloads the store cannot represent.
func validateGeneratedTrip(gt domain.GeneratedTrip) error {
	if strings.TrimSpace(gt.Destination) == "" {
		return fmt.Errorf("%w: generated trip has no destination", domain.ErrGenerationFailed)
	}
	if gt.StartDate == "" || gt.EndDate == "" {
		return fmt.Errorf("%w: generated trip has no date range", domain.ErrGenerationFailed)
	}
	if gt.Budget < 0 {
		return fmt.Errorf("%w: generated trip has a negative budget", domain.ErrGenerationFailed)
	}
	return nil
}

// validateGeneratedActivity rejects a single malformed itinerary entry.
// The caller drops the entry rather than failing the whole trip.
func validateGeneratedActivity(ga domain.GeneratedActivity) error {
	if strings.TrimSpace(ga.Title) == "" {
		return errors.New("missing title")
	}
	if strings.TrimSpace(ga.Location) == "" {
		return errors.New("missing location")
	}
	if !domain.ValidCategory(ga.Category) {
		return fmt.Errorf("unknown category %q", ga.Category)
	}
	if ga.Day < 1 {
		return fmt.Errorf("day %d out of range", ga.Day)
	}
	if ga.Cost < 0 {
		return errors.New("negative cost")
	}
	return nil
}
