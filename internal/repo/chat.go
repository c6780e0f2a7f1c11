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

// ChatMessageRepo defines the persistence operations for ChatMessages.
type ChatMessageRepo interface {
	// Create appends a chat message and returns the persisted record.
	Create(ctx context.Context, msg domain.ChatMessage) (domain.ChatMessage, error)

	// List returns all chat messages in conversation order (oldest first).
	List(ctx context.Context) ([]domain.ChatMessage, error)
}

// pgChatMessageRepo is the Postgres implementation of ChatMessageRepo.
type pgChatMessageRepo struct {
	db db
}

// NewChatMessageRepo constructs a ChatMessageRepo backed by the provided db
// connection.
func NewChatMessageRepo(db db) ChatMessageRepo {
	return &pgChatMessageRepo{db: db}
}

const chatColumns = `id, role, content, trip_id, created_at`

func (r *pgChatMessageRepo) Create(ctx context.Context, msg domain.ChatMessage) (domain.ChatMessage, error) {
	const q = `
		INSERT INTO chat_messages (role, content, trip_id)
		VALUES (@role, @content, @trip_id)
		RETURNING ` + chatColumns

	args := pgx.NamedArgs{
		"role":    msg.Role,
		"content": msg.Content,
		"trip_id": msg.TripID,
	}

	result, err := scanChatMessage(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.ChatMessage{}, fmt.Errorf("repo.ChatMessageRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgChatMessageRepo) List(ctx context.Context) ([]domain.ChatMessage, error) {
	const q = `SELECT ` + chatColumns + ` FROM chat_messages ORDER BY created_at`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.ChatMessageRepo.List: %w", err)
	}
	defer rows.Close()

	var msgs []domain.ChatMessage
	for rows.Next() {
		msg, err := scanChatMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ChatMessageRepo.List: scan: %w", err)
		}
		msgs = append(msgs, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ChatMessageRepo.List: rows: %w", err)
	}

	return msgs, nil
}

// scanChatMessage maps a single database row into a domain.ChatMessage.
func scanChatMessage(s scanner) (domain.ChatMessage, error) {
	var (
		msg    domain.ChatMessage
		id     pgtype.UUID
		tripID pgtype.UUID
	)

	err := s.Scan(&id, &msg.Role, &msg.Content, &tripID, &msg.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ChatMessage{}, domain.ErrNotFound
		}
		return domain.ChatMessage{}, err
	}

	msg.ID = uuid.UUID(id.Bytes)
	if tripID.Valid {
		tid := uuid.UUID(tripID.Bytes)
		msg.TripID = &tid
	}

	return msg, nil
}
