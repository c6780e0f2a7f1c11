// Package repo contains all database access logic for the travel planner.
// Each entity has its own file with an interface and a Postgres
// implementation. No business rules live here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tmorand/moodtrip/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and
// pgx.Tx. Accepting this interface instead of *pgxpool.Pool directly lets
// the TxManager bind a whole Store to one transaction, and lets integration
// tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows services to be unit-tested with mocks.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with
	// DB-generated id and created_at populated). Spent starts at 0 and
	// status at "planning" regardless of the input.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// ListByUser returns all trips for a user ordered by created_at descending.
	ListByUser(ctx context.Context, userID string) ([]domain.Trip, error)

	// Patch overwrites the fields set in the patch and returns the updated
	// record. Returns domain.ErrNotFound if no trip with that ID exists.
	Patch(ctx context.Context, id uuid.UUID, p domain.TripPatch) (domain.Trip, error)

	// UpdateSpent writes the derived spent value for a trip.
	// Only the budget ledger rule should call this.
	UpdateSpent(ctx context.Context, id uuid.UUID, spent float64) (domain.Trip, error)

	// Delete removes a trip by ID, cascading to all trip-owned entities.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback
// isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, user_id, destination, start_date, end_date, budget, spent, status, image_url, lat, lng, created_at`

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (user_id, destination, start_date, end_date, budget, image_url, lat, lng)
		VALUES (@user_id, @destination, @start_date, @end_date, @budget, @image_url, @lat, @lng)
		RETURNING ` + tripColumns

	lat, lng := coordArgs(trip.Coordinates)
	args := pgx.NamedArgs{
		"user_id":     trip.UserID,
		"destination": trip.Destination,
		"start_date":  trip.StartDate,
		"end_date":    trip.EndDate,
		"budget":      trip.Budget,
		"image_url":   trip.ImageURL,
		"lat":         lat,
		"lng":         lng,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) ListByUser(ctx context.Context, userID string) ([]domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE user_id = @user_id
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.ListByUser: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByUser: rows: %w", err)
	}

	return trips, nil
}

// Patch uses COALESCE so that nil patch fields keep the stored value. The
// coordinate pair is written together or not at all.
func (r *pgTripRepo) Patch(ctx context.Context, id uuid.UUID, p domain.TripPatch) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET destination = COALESCE(@destination, destination),
		    start_date  = COALESCE(@start_date, start_date),
		    end_date    = COALESCE(@end_date, end_date),
		    budget      = COALESCE(@budget, budget),
		    status      = COALESCE(@status, status),
		    image_url   = COALESCE(@image_url, image_url),
		    lat         = COALESCE(@lat, lat),
		    lng         = COALESCE(@lng, lng)
		WHERE id = @id
		RETURNING ` + tripColumns

	lat, lng := coordArgs(p.Coordinates)
	args := pgx.NamedArgs{
		"id":          id,
		"destination": p.Destination,
		"start_date":  p.StartDate,
		"end_date":    p.EndDate,
		"budget":      p.Budget,
		"status":      p.Status,
		"image_url":   p.ImageURL,
		"lat":         lat,
		"lng":         lng,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Patch: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) UpdateSpent(ctx context.Context, id uuid.UUID, spent float64) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET spent = @spent
		WHERE id = @id
		RETURNING ` + tripColumns

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "spent": spent}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.UpdateSpent: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t        domain.Trip
		id       pgtype.UUID
		imageURL pgtype.Text
		lat, lng pgtype.Float8
	)

	err := s.Scan(&id, &t.UserID, &t.Destination, &t.StartDate, &t.EndDate,
		&t.Budget, &t.Spent, &t.Status, &imageURL, &lat, &lng, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.ImageURL = imageURL.String
	t.Coordinates = coordsFromColumns(lat, lng)

	return t, nil
}

// coordArgs splits an optional coordinate pair into nullable lat/lng args.
func coordArgs(c *domain.Coordinates) (lat, lng *float64) {
	if c == nil {
		return nil, nil
	}
	return &c.Lat, &c.Lng
}

// coordsFromColumns rebuilds a *Coordinates from nullable lat/lng columns.
// Both must be present for the point to count as resolved.
func coordsFromColumns(lat, lng pgtype.Float8) *domain.Coordinates {
	if !lat.Valid || !lng.Valid {
		return nil
	}
	return &domain.Coordinates{Lat: lat.Float64, Lng: lng.Float64}
}
