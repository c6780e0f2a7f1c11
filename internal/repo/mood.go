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

// MoodReadingRepo defines the persistence operations for MoodReadings.
// The log is append-only: there are no update or delete operations.
type MoodReadingRepo interface {
	// Create appends a mood reading and returns the persisted record.
	Create(ctx context.Context, reading domain.MoodReading) (domain.MoodReading, error)

	// ListByTrip returns one page of a trip's readings, newest first.
	ListByTrip(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.MoodReading, error)

	// Recent returns up to limit of the trip's newest readings, for the
	// group pulse summary.
	Recent(ctx context.Context, tripID uuid.UUID, limit int) ([]domain.MoodReading, error)
}

// pgMoodReadingRepo is the Postgres implementation of MoodReadingRepo.
type pgMoodReadingRepo struct {
	db db
}

// NewMoodReadingRepo constructs a MoodReadingRepo backed by the provided db
// connection.
func NewMoodReadingRepo(db db) MoodReadingRepo {
	return &pgMoodReadingRepo{db: db}
}

const moodColumns = `id, trip_id, user_id, energy_level, created_at`

func (r *pgMoodReadingRepo) Create(ctx context.Context, reading domain.MoodReading) (domain.MoodReading, error) {
	const q = `
		INSERT INTO mood_readings (trip_id, user_id, energy_level)
		VALUES (@trip_id, @user_id, @energy_level)
		RETURNING ` + moodColumns

	args := pgx.NamedArgs{
		"trip_id":      reading.TripID,
		"user_id":      reading.UserID,
		"energy_level": reading.EnergyLevel,
	}

	result, err := scanMoodReading(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.MoodReading{}, fmt.Errorf("repo.MoodReadingRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgMoodReadingRepo) ListByTrip(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.MoodReading, error) {
	const q = `
		SELECT ` + moodColumns + `
		FROM mood_readings
		WHERE trip_id = @trip_id
		ORDER BY created_at DESC
		LIMIT @limit OFFSET @offset`

	args := pgx.NamedArgs{"trip_id": tripID, "limit": p.Limit, "offset": p.Offset()}
	return r.list(ctx, q, args, "ListByTrip")
}

func (r *pgMoodReadingRepo) Recent(ctx context.Context, tripID uuid.UUID, limit int) ([]domain.MoodReading, error) {
	const q = `
		SELECT ` + moodColumns + `
		FROM mood_readings
		WHERE trip_id = @trip_id
		ORDER BY created_at DESC
		LIMIT @limit`

	return r.list(ctx, q, pgx.NamedArgs{"trip_id": tripID, "limit": limit}, "Recent")
}

func (r *pgMoodReadingRepo) list(ctx context.Context, q string, args pgx.NamedArgs, op string) ([]domain.MoodReading, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.MoodReadingRepo.%s: %w", op, err)
	}
	defer rows.Close()

	var readings []domain.MoodReading
	for rows.Next() {
		reading, err := scanMoodReading(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.MoodReadingRepo.%s: scan: %w", op, err)
		}
		readings = append(readings, reading)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.MoodReadingRepo.%s: rows: %w", op, err)
	}

	return readings, nil
}

// scanMoodReading maps a single database row into a domain.MoodReading.
func scanMoodReading(s scanner) (domain.MoodReading, error) {
	var (
		reading domain.MoodReading
		id      pgtype.UUID
	)

	err := s.Scan(&id, &reading.TripID, &reading.UserID, &reading.EnergyLevel, &reading.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.MoodReading{}, domain.ErrNotFound
		}
		return domain.MoodReading{}, err
	}

	reading.ID = uuid.UUID(id.Bytes)
	return reading, nil
}
