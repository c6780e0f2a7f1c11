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

// featuredMinRating and featuredLimit bound the featured shelf: only
// entries rated at least the minimum, at most the limit.
const (
	featuredMinRating = 4.3
	featuredLimit     = 6
)

// DiscoveryRepo defines the persistence operations for the discovery
// catalog. The catalog is read-mostly; Create exists for seeding and
// tests, there is no update or delete.
type DiscoveryRepo interface {
	// Create inserts a catalog entry and returns the persisted record.
	Create(ctx context.Context, d domain.Discovery) (domain.Discovery, error)

	// List returns the whole catalog, newest entries first.
	List(ctx context.Context) ([]domain.Discovery, error)

	// Featured returns the top-rated shelf: up to featuredLimit entries
	// rated featuredMinRating or higher, best first.
	Featured(ctx context.Context) ([]domain.Discovery, error)
}

// pgDiscoveryRepo is the Postgres implementation of DiscoveryRepo.
type pgDiscoveryRepo struct {
	db db
}

// NewDiscoveryRepo constructs a DiscoveryRepo backed by the provided db
// connection.
func NewDiscoveryRepo(db db) DiscoveryRepo {
	return &pgDiscoveryRepo{db: db}
}

const discoveryColumns = `id, title, description, category, location, image_url, rating, sentiment, cost, tags, created_at`

func (r *pgDiscoveryRepo) Create(ctx context.Context, d domain.Discovery) (domain.Discovery, error) {
	const q = `
		INSERT INTO discoveries (title, description, category, location, image_url, rating, sentiment, cost, tags)
		VALUES (@title, @description, @category, @location, @image_url, @rating, @sentiment, @cost, @tags)
		RETURNING ` + discoveryColumns

	args := pgx.NamedArgs{
		"title":       d.Title,
		"description": d.Description,
		"category":    d.Category,
		"location":    d.Location,
		"image_url":   d.ImageURL,
		"rating":      d.Rating,
		"sentiment":   d.Sentiment,
		"cost":        d.Cost,
		"tags":        d.Tags,
	}

	result, err := scanDiscovery(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Discovery{}, fmt.Errorf("repo.DiscoveryRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgDiscoveryRepo) List(ctx context.Context) ([]domain.Discovery, error) {
	const q = `
		SELECT ` + discoveryColumns + `
		FROM discoveries
		ORDER BY created_at DESC`

	return r.list(ctx, q, "List")
}

func (r *pgDiscoveryRepo) Featured(ctx context.Context) ([]domain.Discovery, error) {
	const q = `
		SELECT ` + discoveryColumns + `
		FROM discoveries
		WHERE rating >= @min_rating
		ORDER BY rating DESC
		LIMIT @limit`

	args := pgx.NamedArgs{"min_rating": featuredMinRating, "limit": featuredLimit}
	return r.list(ctx, q, "Featured", args)
}

func (r *pgDiscoveryRepo) list(ctx context.Context, q, op string, args ...any) ([]domain.Discovery, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("repo.DiscoveryRepo.%s: %w", op, err)
	}
	defer rows.Close()

	var discoveries []domain.Discovery
	for rows.Next() {
		d, err := scanDiscovery(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.DiscoveryRepo.%s: scan: %w", op, err)
		}
		discoveries = append(discoveries, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.DiscoveryRepo.%s: rows: %w", op, err)
	}

	return discoveries, nil
}

// scanDiscovery maps a single database row into a domain.Discovery.
func scanDiscovery(s scanner) (domain.Discovery, error) {
	var (
		d  domain.Discovery
		id pgtype.UUID
	)

	err := s.Scan(&id, &d.Title, &d.Description, &d.Category, &d.Location,
		&d.ImageURL, &d.Rating, &d.Sentiment, &d.Cost, &d.Tags, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Discovery{}, domain.ErrNotFound
		}
		return domain.Discovery{}, err
	}

	d.ID = uuid.UUID(id.Bytes)
	return d, nil
}
