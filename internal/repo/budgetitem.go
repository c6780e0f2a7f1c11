package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tmorand/moodtrip/backend/internal/domain"
)

// BudgetItemRepo defines the persistence operations for BudgetItems.
type BudgetItemRepo interface {
	// Create inserts a new budget item and returns the persisted record.
	Create(ctx context.Context, item domain.BudgetItem) (domain.BudgetItem, error)

	// GetByID retrieves a single budget item by its UUID.
	// Returns domain.ErrNotFound if no item with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.BudgetItem, error)

	// ListByTrip returns all budget items for a trip ordered by date
	// descending, then created_at descending for same-day items.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.BudgetItem, error)

	// SumByTrip returns the sum of amounts over a trip's budget items.
	// An empty ledger sums to 0.
	SumByTrip(ctx context.Context, tripID uuid.UUID) (float64, error)

	// Delete removes a budget item by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteBySourceActivity removes the ledger rows generated by a
	// completion toggle for the given activity and returns how many were
	// removed. Zero is not an error — un-completing a free activity has
	// nothing to reverse.
	DeleteBySourceActivity(ctx context.Context, activityID uuid.UUID) (int64, error)
}

// pgBudgetItemRepo is the Postgres implementation of BudgetItemRepo.
type pgBudgetItemRepo struct {
	db db
}

// NewBudgetItemRepo constructs a BudgetItemRepo backed by the provided db
// connection.
func NewBudgetItemRepo(db db) BudgetItemRepo {
	return &pgBudgetItemRepo{db: db}
}

const budgetItemColumns = `id, trip_id, category, amount, description, date, source_activity_id, created_at`

func (r *pgBudgetItemRepo) Create(ctx context.Context, item domain.BudgetItem) (domain.BudgetItem, error) {
	const q = `
		INSERT INTO budget_items (trip_id, category, amount, description, date, source_activity_id)
		VALUES (@trip_id, @category, @amount, @description, @date, @source_activity_id)
		RETURNING ` + budgetItemColumns

	args := pgx.NamedArgs{
		"trip_id":            item.TripID,
		"category":           item.Category,
		"amount":             item.Amount,
		"description":        item.Description,
		"date":               item.Date,
		"source_activity_id": item.SourceActivityID,
	}

	result, err := scanBudgetItem(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.BudgetItem{}, fmt.Errorf("repo.BudgetItemRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgBudgetItemRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.BudgetItem, error) {
	const q = `SELECT ` + budgetItemColumns + ` FROM budget_items WHERE id = @id`

	result, err := scanBudgetItem(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.BudgetItem{}, fmt.Errorf("repo.BudgetItemRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgBudgetItemRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.BudgetItem, error) {
	const q = `
		SELECT ` + budgetItemColumns + `
		FROM budget_items
		WHERE trip_id = @trip_id
		ORDER BY date DESC, created_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.BudgetItemRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	var items []domain.BudgetItem
	for rows.Next() {
		item, err := scanBudgetItem(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.BudgetItemRepo.ListByTrip: scan: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.BudgetItemRepo.ListByTrip: rows: %w", err)
	}

	return items, nil
}

func (r *pgBudgetItemRepo) SumByTrip(ctx context.Context, tripID uuid.UUID) (float64, error) {
	const q = `SELECT COALESCE(SUM(amount), 0) FROM budget_items WHERE trip_id = @trip_id`

	var sum float64
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID}).Scan(&sum); err != nil {
		return 0, fmt.Errorf("repo.BudgetItemRepo.SumByTrip: %w", err)
	}
	return sum, nil
}

func (r *pgBudgetItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM budget_items WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.BudgetItemRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.BudgetItemRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgBudgetItemRepo) DeleteBySourceActivity(ctx context.Context, activityID uuid.UUID) (int64, error) {
	const q = `DELETE FROM budget_items WHERE source_activity_id = @activity_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"activity_id": activityID})
	if err != nil {
		return 0, fmt.Errorf("repo.BudgetItemRepo.DeleteBySourceActivity: %w", err)
	}
	return tag.RowsAffected(), nil
}

// scanBudgetItem maps a single database row into a domain.BudgetItem.
func scanBudgetItem(s scanner) (domain.BudgetItem, error) {
	var (
		item     domain.BudgetItem
		id       pgtype.UUID
		sourceID pgtype.UUID
	)

	err := s.Scan(&id, &item.TripID, &item.Category, &item.Amount,
		&item.Description, &item.Date, &sourceID, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.BudgetItem{}, domain.ErrNotFound
		}
		return domain.BudgetItem{}, err
	}

	item.ID = uuid.UUID(id.Bytes)
	if sourceID.Valid {
		sid := uuid.UUID(sourceID.Bytes)
		item.SourceActivityID = &sid
	}

	return item, nil
}
