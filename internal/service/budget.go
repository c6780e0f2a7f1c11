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

// BudgetService implements the budget ledger rule: trip.spent always equals
// the sum of the trip's budget item amounts (clamped at 0), and activity
// completion toggles mirror cost-bearing activities into the ledger.
//
// Every mutation and its spent recompute run inside one transaction, so the
// invariant holds at every commit point even under concurrent writers.
type BudgetService struct {
	store repo.Store
	tx    Tx
	now   func() time.Time
}

// NewBudgetService constructs a BudgetService backed by the provided store
// and transaction runner.
func NewBudgetService(store repo.Store, tx Tx) *BudgetService {
	return &BudgetService{store: store, tx: tx, now: time.Now}
}

// CreateItem validates and persists a budget item, then recomputes the
// trip's spent inside the same transaction.
// Returns domain.ErrValidation for invalid input, domain.ErrNotFound if the
// trip does not exist.
func (s *BudgetService) CreateItem(ctx context.Context, item domain.BudgetItem) (domain.BudgetItem, error) {
	if err := validateBudgetItem(item); err != nil {
		return domain.BudgetItem{}, err
	}
	if _, err := s.store.Trips.GetByID(ctx, item.TripID); err != nil {
		return domain.BudgetItem{}, fmt.Errorf("service.BudgetService.CreateItem: %w", err)
	}

	// Direct items never carry a source activity; that slot belongs to the
	// completion-toggle rule.
	item.SourceActivityID = nil

	var created domain.BudgetItem
	err := s.tx.WithinTx(ctx, func(store repo.Store) error {
		var err error
		created, err = store.BudgetItems.Create(ctx, item)
		if err != nil {
			return err
		}
		return recomputeSpent(ctx, store, item.TripID)
	})
	if err != nil {
		return domain.BudgetItem{}, fmt.Errorf("service.BudgetService.CreateItem: %w", err)
	}
	return created, nil
}

// DeleteItem removes a budget item and recomputes the trip's spent inside
// the same transaction.
// Returns domain.ErrNotFound if the item does not exist.
func (s *BudgetService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.store.BudgetItems.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.BudgetService.DeleteItem: %w", err)
	}

	err = s.tx.WithinTx(ctx, func(store repo.Store) error {
		if err := store.BudgetItems.Delete(ctx, id); err != nil {
			return err
		}
		return recomputeSpent(ctx, store, item.TripID)
	})
	if err != nil {
		return fmt.Errorf("service.BudgetService.DeleteItem: %w", err)
	}
	return nil
}

// ListByTrip returns a trip's budget items, newest date first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *BudgetService) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.BudgetItem, error) {
	items, err := s.store.BudgetItems.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.BudgetService.ListByTrip: %w", err)
	}
	if items == nil {
		return []domain.BudgetItem{}, nil
	}
	return items, nil
}

// ToggleCompletion flips an activity's completed flag and keeps the ledger
// consistent: a false→true flip with cost > 0 appends a mirroring budget
// item tagged with the activity id; a true→false flip removes the rows that
// tag created. The net effect of toggle-flip-toggle is zero.
// Returns domain.ErrNotFound if the activity does not exist.
func (s *BudgetService) ToggleCompletion(ctx context.Context, activityID uuid.UUID, completed bool) (domain.Activity, error) {
	var updated domain.Activity
	err := s.tx.WithinTx(ctx, func(store repo.Store) error {
		activity, err := store.Activities.GetByID(ctx, activityID)
		if err != nil {
			return err
		}

		// Same value twice is a no-op on the ledger; re-applying the flag is
		// harmless and keeps the operation idempotent.
		ledgerChanged := false
		if !activity.Completed && completed && activity.Cost > 0 {
			mirror := domain.BudgetItem{
				TripID:           activity.TripID,
				Category:         activity.Category,
				Amount:           activity.Cost,
				Description:      activity.Title,
				Date:             s.now().Format("2006-01-02"),
				SourceActivityID: &activity.ID,
			}
			if _, err := store.BudgetItems.Create(ctx, mirror); err != nil {
				return err
			}
			ledgerChanged = true
		}
		if activity.Completed && !completed {
			n, err := store.BudgetItems.DeleteBySourceActivity(ctx, activityID)
			if err != nil {
				return err
			}
			ledgerChanged = n > 0
		}

		updated, err = store.Activities.Patch(ctx, activityID, domain.ActivityPatch{Completed: &completed})
		if err != nil {
			return err
		}

		if ledgerChanged {
			return recomputeSpent(ctx, store, activity.TripID)
		}
		return nil
	})
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.BudgetService.ToggleCompletion: %w", err)
	}
	return updated, nil
}

// recomputeSpent rewrites a trip's derived spent from the ledger.
// Spent is clamped at 0 — a ledger of refunds cannot drive it negative.
func recomputeSpent(ctx context.Context, store repo.Store, tripID uuid.UUID) error {
	spent, err := store.BudgetItems.SumByTrip(ctx, tripID)
	if err != nil {
		return err
	}
	if spent < 0 {
		spent = 0
	}
	_, err = store.Trips.UpdateSpent(ctx, tripID, spent)
	return err
}

// validateBudgetItem enforces the input rules for directly created items.
func validateBudgetItem(item domain.BudgetItem) error {
	if strings.TrimSpace(item.Category) == "" {
		return fmt.Errorf("%w: category is required", domain.ErrValidation)
	}
	if strings.TrimSpace(item.Description) == "" {
		return fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	if _, err := time.Parse("2006-01-02", item.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrValidation)
	}
	return nil
}
