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

// ActivityRepo defines the persistence operations for Activities.
//
// Generic updates go through Patch, which only accepts the
// domain.ActivityPatch allow-list — there is deliberately no way to rewrite
// trip_id, id, or parent_activity_id through this interface once a row
// exists.
type ActivityRepo interface {
	// Create inserts a new activity and returns the persisted record.
	Create(ctx context.Context, a domain.Activity) (domain.Activity, error)

	// GetByID retrieves a single activity by its UUID.
	// Returns domain.ErrNotFound if no activity with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error)

	// ListByTrip returns a trip's main itinerary — shadow options excluded —
	// ordered by (day ascending, order_index ascending).
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error)

	// ListShadows returns only the shadow options for a trip.
	ListShadows(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error)

	// Patch applies the allow-listed fields and returns the updated record.
	// Returns domain.ErrNotFound if no activity with that ID exists.
	Patch(ctx context.Context, id uuid.UUID, p domain.ActivityPatch) (domain.Activity, error)

	// SetCoordinates backfills a resolved location on an activity.
	SetCoordinates(ctx context.Context, id uuid.UUID, c domain.Coordinates) error

	// Delete removes an activity by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgActivityRepo is the Postgres implementation of ActivityRepo.
type pgActivityRepo struct {
	db db
}

// NewActivityRepo constructs an ActivityRepo backed by the provided db
// connection.
func NewActivityRepo(db db) ActivityRepo {
	return &pgActivityRepo{db: db}
}

const activityColumns = `id, trip_id, day, order_index, title, description, category, time, duration,
		location, lat, lng, cost, image_url, completed, energy_level_requirement,
		is_shadow_option, parent_activity_id, created_at`

func (r *pgActivityRepo) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	const q = `
		INSERT INTO activities (trip_id, day, order_index, title, description, category, time,
			duration, location, lat, lng, cost, image_url, energy_level_requirement,
			is_shadow_option, parent_activity_id)
		VALUES (@trip_id, @day, @order_index, @title, @description, @category, @time,
			@duration, @location, @lat, @lng, @cost, @image_url, @energy_level_requirement,
			@is_shadow_option, @parent_activity_id)
		RETURNING ` + activityColumns

	lat, lng := coordArgs(a.Coordinates)
	args := pgx.NamedArgs{
		"trip_id":                  a.TripID,
		"day":                      a.Day,
		"order_index":              a.OrderIndex,
		"title":                    a.Title,
		"description":              a.Description,
		"category":                 a.Category,
		"time":                     a.Time,
		"duration":                 a.Duration,
		"location":                 a.Location,
		"lat":                      lat,
		"lng":                      lng,
		"cost":                     a.Cost,
		"image_url":                a.ImageURL,
		"energy_level_requirement": a.EnergyLevelRequirement,
		"is_shadow_option":         a.IsShadowOption,
		"parent_activity_id":       a.ParentActivityID,
	}

	result, err := scanActivity(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error) {
	const q = `SELECT ` + activityColumns + ` FROM activities WHERE id = @id`

	result, err := scanActivity(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	const q = `
		SELECT ` + activityColumns + `
		FROM activities
		WHERE trip_id = @trip_id AND NOT is_shadow_option
		ORDER BY day, order_index`

	return r.list(ctx, q, pgx.NamedArgs{"trip_id": tripID}, "ListByTrip")
}

func (r *pgActivityRepo) ListShadows(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	const q = `
		SELECT ` + activityColumns + `
		FROM activities
		WHERE trip_id = @trip_id AND is_shadow_option
		ORDER BY day, order_index`

	return r.list(ctx, q, pgx.NamedArgs{"trip_id": tripID}, "ListShadows")
}

func (r *pgActivityRepo) list(ctx context.Context, q string, args pgx.NamedArgs, op string) ([]domain.Activity, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.%s: %w", op, err)
	}
	defer rows.Close()

	var activities []domain.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ActivityRepo.%s: scan: %w", op, err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.%s: rows: %w", op, err)
	}

	return activities, nil
}

// Patch uses COALESCE so that nil patch fields keep the stored value.
// Identity fields are absent from both the SET clause and the patch type.
func (r *pgActivityRepo) Patch(ctx context.Context, id uuid.UUID, p domain.ActivityPatch) (domain.Activity, error) {
	const q = `
		UPDATE activities
		SET title                    = COALESCE(@title, title),
		    description              = COALESCE(@description, description),
		    category                 = COALESCE(@category, category),
		    time                     = COALESCE(@time, time),
		    duration                 = COALESCE(@duration, duration),
		    location                 = COALESCE(@location, location),
		    cost                     = COALESCE(@cost, cost),
		    completed                = COALESCE(@completed, completed),
		    energy_level_requirement = COALESCE(@energy_level_requirement, energy_level_requirement),
		    is_shadow_option         = COALESCE(@is_shadow_option, is_shadow_option),
		    image_url                = COALESCE(@image_url, image_url)
		WHERE id = @id
		RETURNING ` + activityColumns

	args := pgx.NamedArgs{
		"id":                       id,
		"title":                    p.Title,
		"description":              p.Description,
		"category":                 p.Category,
		"time":                     p.Time,
		"duration":                 p.Duration,
		"location":                 p.Location,
		"cost":                     p.Cost,
		"completed":                p.Completed,
		"energy_level_requirement": p.EnergyLevelRequirement,
		"is_shadow_option":         p.IsShadowOption,
		"image_url":                p.ImageURL,
	}

	result, err := scanActivity(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Patch: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) SetCoordinates(ctx context.Context, id uuid.UUID, c domain.Coordinates) error {
	const q = `UPDATE activities SET lat = @lat, lng = @lng WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "lat": c.Lat, "lng": c.Lng})
	if err != nil {
		return fmt.Errorf("repo.ActivityRepo.SetCoordinates: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ActivityRepo.SetCoordinates: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgActivityRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM activities WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ActivityRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ActivityRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanActivity maps a single database row into a domain.Activity.
func scanActivity(s scanner) (domain.Activity, error) {
	var (
		a        domain.Activity
		id       pgtype.UUID
		parentID pgtype.UUID
		lat, lng pgtype.Float8
	)

	err := s.Scan(&id, &a.TripID, &a.Day, &a.OrderIndex, &a.Title, &a.Description,
		&a.Category, &a.Time, &a.Duration, &a.Location, &lat, &lng, &a.Cost,
		&a.ImageURL, &a.Completed, &a.EnergyLevelRequirement, &a.IsShadowOption,
		&parentID, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Activity{}, domain.ErrNotFound
		}
		return domain.Activity{}, err
	}

	a.ID = uuid.UUID(id.Bytes)
	a.Coordinates = coordsFromColumns(lat, lng)
	if parentID.Valid {
		pid := uuid.UUID(parentID.Bytes)
		a.ParentActivityID = &pid
	}

	return a, nil
}
