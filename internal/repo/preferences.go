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

// PreferencesRepo defines the persistence operations for user travel
// preferences. One row per user, keyed by user_id.
type PreferencesRepo interface {
	// GetByUser retrieves a user's preferences.
	// Returns domain.ErrNotFound if the user has none yet.
	GetByUser(ctx context.Context, userID string) (domain.Preferences, error)

	// Create inserts a preferences row and returns the persisted record.
	Create(ctx context.Context, prefs domain.Preferences) (domain.Preferences, error)

	// Patch overwrites the fields set in the patch and returns the updated
	// record. Returns domain.ErrNotFound if no row with that ID exists.
	Patch(ctx context.Context, id uuid.UUID, p domain.PreferencesPatch) (domain.Preferences, error)
}

// pgPreferencesRepo is the Postgres implementation of PreferencesRepo.
type pgPreferencesRepo struct {
	db db
}

// NewPreferencesRepo constructs a PreferencesRepo backed by the provided db
// connection.
func NewPreferencesRepo(db db) PreferencesRepo {
	return &pgPreferencesRepo{db: db}
}

const preferencesColumns = `id, user_id, budget, pace, interests, dietary, travel_style, updated_at`

func (r *pgPreferencesRepo) GetByUser(ctx context.Context, userID string) (domain.Preferences, error) {
	const q = `SELECT ` + preferencesColumns + ` FROM user_preferences WHERE user_id = @user_id`

	result, err := scanPreferences(r.db.QueryRow(ctx, q, pgx.NamedArgs{"user_id": userID}))
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("repo.PreferencesRepo.GetByUser: %w", err)
	}
	return result, nil
}

func (r *pgPreferencesRepo) Create(ctx context.Context, prefs domain.Preferences) (domain.Preferences, error) {
	const q = `
		INSERT INTO user_preferences (user_id, budget, pace, interests, dietary, travel_style)
		VALUES (@user_id, @budget, @pace, @interests, @dietary, @travel_style)
		RETURNING ` + preferencesColumns

	args := pgx.NamedArgs{
		"user_id":      prefs.UserID,
		"budget":       prefs.Budget,
		"pace":         prefs.Pace,
		"interests":    prefs.Interests,
		"dietary":      prefs.Dietary,
		"travel_style": prefs.TravelStyle,
	}

	result, err := scanPreferences(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("repo.PreferencesRepo.Create: %w", err)
	}
	return result, nil
}

// Patch uses COALESCE for the scalar fields; the array fields are replaced
// wholesale when non-nil, since a partial merge of interests makes no sense.
func (r *pgPreferencesRepo) Patch(ctx context.Context, id uuid.UUID, p domain.PreferencesPatch) (domain.Preferences, error) {
	const q = `
		UPDATE user_preferences
		SET budget       = COALESCE(@budget, budget),
		    pace         = COALESCE(@pace, pace),
		    interests    = COALESCE(@interests, interests),
		    dietary      = COALESCE(@dietary, dietary),
		    travel_style = COALESCE(@travel_style, travel_style),
		    updated_at   = now()
		WHERE id = @id
		RETURNING ` + preferencesColumns

	args := pgx.NamedArgs{
		"id":           id,
		"budget":       p.Budget,
		"pace":         p.Pace,
		"interests":    p.Interests,
		"dietary":      p.Dietary,
		"travel_style": p.TravelStyle,
	}

	result, err := scanPreferences(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("repo.PreferencesRepo.Patch: %w", err)
	}
	return result, nil
}

// scanPreferences maps a single database row into a domain.Preferences.
func scanPreferences(s scanner) (domain.Preferences, error) {
	var (
		prefs domain.Preferences
		id    pgtype.UUID
	)

	err := s.Scan(&id, &prefs.UserID, &prefs.Budget, &prefs.Pace,
		&prefs.Interests, &prefs.Dietary, &prefs.TravelStyle, &prefs.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Preferences{}, domain.ErrNotFound
		}
		return domain.Preferences{}, err
	}

	prefs.ID = uuid.UUID(id.Bytes)
	return prefs, nil
}
