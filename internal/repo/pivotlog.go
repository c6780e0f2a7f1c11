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

// PivotLogRepo defines the persistence operations for PivotLogs.
// The audit trail is append-only: entries are never mutated or deleted.
type PivotLogRepo interface {
	// Create appends a pivot log entry and returns the persisted record.
	Create(ctx context.Context, log domain.PivotLog) (domain.PivotLog, error)

	// ListByTrip returns one page of a trip's pivot history, newest first.
	ListByTrip(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.PivotLog, error)
}

// pgPivotLogRepo is the Postgres implementation of PivotLogRepo.
type pgPivotLogRepo struct {
	db db
}

// NewPivotLogRepo constructs a PivotLogRepo backed by the provided db
// connection.
func NewPivotLogRepo(db db) PivotLogRepo {
	return &pgPivotLogRepo{db: db}
}

const pivotLogColumns = `id, trip_id, previous_activity_id, new_activity_id, reason, triggered_by, created_at`

func (r *pgPivotLogRepo) Create(ctx context.Context, log domain.PivotLog) (domain.PivotLog, error) {
	const q = `
		INSERT INTO pivot_logs (trip_id, previous_activity_id, new_activity_id, reason, triggered_by)
		VALUES (@trip_id, @previous_activity_id, @new_activity_id, @reason, @triggered_by)
		RETURNING ` + pivotLogColumns

	args := pgx.NamedArgs{
		"trip_id":              log.TripID,
		"previous_activity_id": log.PreviousActivityID,
		"new_activity_id":      log.NewActivityID,
		"reason":               log.Reason,
		"triggered_by":         log.TriggeredBy,
	}

	result, err := scanPivotLog(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.PivotLog{}, fmt.Errorf("repo.PivotLogRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgPivotLogRepo) ListByTrip(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.PivotLog, error) {
	const q = `
		SELECT ` + pivotLogColumns + `
		FROM pivot_logs
		WHERE trip_id = @trip_id
		ORDER BY created_at DESC
		LIMIT @limit OFFSET @offset`

	args := pgx.NamedArgs{"trip_id": tripID, "limit": p.Limit, "offset": p.Offset()}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.PivotLogRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	var logs []domain.PivotLog
	for rows.Next() {
		log, err := scanPivotLog(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.PivotLogRepo.ListByTrip: scan: %w", err)
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PivotLogRepo.ListByTrip: rows: %w", err)
	}

	return logs, nil
}

// scanPivotLog maps a single database row into a domain.PivotLog.
func scanPivotLog(s scanner) (domain.PivotLog, error) {
	var (
		log        domain.PivotLog
		id         pgtype.UUID
		previousID pgtype.UUID
		newID      pgtype.UUID
	)

	err := s.Scan(&id, &log.TripID, &previousID, &newID, &log.Reason,
		&log.TriggeredBy, &log.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PivotLog{}, domain.ErrNotFound
		}
		return domain.PivotLog{}, err
	}

	log.ID = uuid.UUID(id.Bytes)
	if previousID.Valid {
		pid := uuid.UUID(previousID.Bytes)
		log.PreviousActivityID = &pid
	}
	if newID.Valid {
		nid := uuid.UUID(newID.Bytes)
		log.NewActivityID = &nid
	}

	return log, nil
}
