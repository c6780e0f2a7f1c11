package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/tmorand/moodtrip/backend/internal/domain"
	"github.com/tmorand/moodtrip/backend/internal/repo"
)

// PivotService is the mood pivot state machine. A pivot attempt for a
// (trip, activity) pair moves Idle → Proposed → Committed:
//
//   - Propose resolves a replacement — a pre-planned shadow option when one
//     exists, otherwise one generator call — and returns it without
//     persisting anything. A failed proposal leaves no trace.
//   - Confirm commits the swap: the original activity is rewritten in place
//     with the replacement's fields and an audit log entry is appended, both
//     inside one transaction so a half-applied pivot is never observable.
//
// There is no abort transition. A proposal the group never confirms simply
// expires with the response.
type PivotService struct {
	store repo.Store
	tx    Tx
	gen   Generator
}

// NewPivotService constructs a PivotService backed by the provided store,
// transaction runner, and generator.
func NewPivotService(store repo.Store, tx Tx, gen Generator) *PivotService {
	return &PivotService{store: store, tx: tx, gen: gen}
}

// Propose resolves a replacement for the given activity.
//
// Resolution order: a shadow option whose parent is the activity wins and
// the generator is never invoked (IsPrePlanned=true); otherwise the
// generator is called exactly once with the activity and context
// (IsPrePlanned=false).
// Returns domain.ErrNotFound if the trip or activity does not exist,
// domain.ErrGenerationFailed if the generator errors — in both cases the
// attempt stays Idle.
func (s *PivotService) Propose(ctx context.Context, tripID, activityID uuid.UUID, pctx domain.PivotContext) (domain.PivotProposal, error) {
	if _, err := s.store.Trips.GetByID(ctx, tripID); err != nil {
		return domain.PivotProposal{}, fmt.Errorf("service.PivotService.Propose: %w", err)
	}
	activity, err := s.store.Activities.GetByID(ctx, activityID)
	if err != nil {
		return domain.PivotProposal{}, fmt.Errorf("service.PivotService.Propose: %w", err)
	}

	shadows, err := s.store.Activities.ListShadows(ctx, tripID)
	if err != nil {
		return domain.PivotProposal{}, fmt.Errorf("service.PivotService.Propose: %w", err)
	}

	shadow, found := lo.Find(shadows, func(a domain.Activity) bool {
		return a.ParentActivityID != nil && *a.ParentActivityID == activityID
	})
	if found {
		return domain.PivotProposal{
			Proposal: fmt.Sprintf("The group's energy is low — how about %s instead?", shadow.Title),
			NewActivity: domain.ProposedActivity{
				Title:       shadow.Title,
				Description: shadow.Description,
				Category:    shadow.Category,
				Location:    shadow.Location,
				Cost:        shadow.Cost,
				Duration:    shadow.Duration,
			},
			IsPrePlanned: true,
		}, nil
	}

	proposal, err := s.gen.PivotProposal(ctx, activity, pctx)
	if err != nil {
		return domain.PivotProposal{}, fmt.Errorf("service.PivotService.Propose: %w", err)
	}
	proposal.IsPrePlanned = false
	return proposal, nil
}

// Confirm commits a proposed pivot: the old activity's user-visible fields
// are overwritten with the replacement's, its energy requirement drops to
// low, its shadow flag clears, and a pivot log entry referencing it is
// appended — one transaction, all or nothing. The activity keeps its
// identity; no new row is created.
//
// Confirming twice with the same data re-applies identical field values but
// appends a fresh log entry each time — the audit trail is append-only, not
// deduplicated.
// Returns domain.ErrValidation for an unusable replacement,
// domain.ErrNotFound if the trip or activity no longer exists or the
// activity belongs to a different trip.
func (s *PivotService) Confirm(ctx context.Context, tripID, oldActivityID uuid.UUID, newData domain.ProposedActivity, reason string) (domain.Activity, error) {
	if err := validateProposedActivity(newData); err != nil {
		return domain.Activity{}, err
	}

	if _, err := s.store.Trips.GetByID(ctx, tripID); err != nil {
		return domain.Activity{}, fmt.Errorf("service.PivotService.Confirm: %w", err)
	}
	current, err := s.store.Activities.GetByID(ctx, oldActivityID)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.PivotService.Confirm: %w", err)
	}
	if current.TripID != tripID {
		return domain.Activity{}, fmt.Errorf("service.PivotService.Confirm: %w: activity belongs to another trip", domain.ErrNotFound)
	}

	category := confirmedCategory(newData.Category)
	lowEnergy := domain.EnergyLow
	notShadow := false
	patch := domain.ActivityPatch{
		Title:                  &newData.Title,
		Description:            &newData.Description,
		Category:               &category,
		Location:               &newData.Location,
		Cost:                   &newData.Cost,
		Duration:               &newData.Duration,
		EnergyLevelRequirement: &lowEnergy,
		IsShadowOption:         &notShadow,
	}

	var updated domain.Activity
	err = s.tx.WithinTx(ctx, func(store repo.Store) error {
		var err error
		updated, err = store.Activities.Patch(ctx, oldActivityID, patch)
		if err != nil {
			return err
		}

		_, err = store.PivotLogs.Create(ctx, domain.PivotLog{
			TripID:             tripID,
			PreviousActivityID: &oldActivityID,
			Reason:             reason,
			TriggeredBy:        domain.PivotTriggerConsensus,
		})
		return err
	})
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.PivotService.Confirm: %w", err)
	}
	return updated, nil
}

// Logs returns one page of a trip's pivot history, newest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *PivotService) Logs(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.PivotLog, error) {
	logs, err := s.store.PivotLogs.ListByTrip(ctx, tripID, p)
	if err != nil {
		return nil, fmt.Errorf("service.PivotService.Logs: %w", err)
	}
	if logs == nil {
		return []domain.PivotLog{}, nil
	}
	return logs, nil
}

// The generator's proposal vocabulary includes "relaxation", which the
// itinerary schema does not. confirmedCategory folds it into the generic
// activity category so a confirmed pivot never writes a value the rest of
// the itinerary would reject.
const categoryRelaxation = "relaxation"

// validateProposedActivity rejects replacements that would leave the
// itinerary entry unusable.
func validateProposedActivity(p domain.ProposedActivity) error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if p.Cost < 0 {
		return fmt.Errorf("%w: cost must not be negative", domain.ErrValidation)
	}
	if p.Category != "" && p.Category != categoryRelaxation && !domain.ValidCategory(p.Category) {
		return fmt.Errorf("%w: unknown category %q", domain.ErrValidation, p.Category)
	}
	return nil
}

func confirmedCategory(c string) string {
	if c == "" || c == categoryRelaxation {
		return domain.CategoryActivity
	}
	return c
}
