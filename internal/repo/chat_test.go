package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmorand/moodtrip/backend/internal/domain"
)

func TestChatMessageRepo_Create(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	got, err := store.Chat.Create(ctx, domain.ChatMessage{
		Role:    domain.RoleUser,
		Content: "Plan me a week in Lisbon",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, domain.RoleUser, got.Role)
	assert.Nil(t, got.TripID, "plain messages have no trip reference")
	assert.False(t, got.CreatedAt.IsZero())
}

func TestChatMessageRepo_Create_WithTripReference(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	trip, err := store.Trips.Create(ctx, tripFixture())
	require.NoError(t, err)

	got, err := store.Chat.Create(ctx, domain.ChatMessage{
		Role:    domain.RoleAssistant,
		Content: "Here is your Lisbon itinerary.",
		TripID:  &trip.ID,
	})

	require.NoError(t, err)
	require.NotNil(t, got.TripID)
	assert.Equal(t, trip.ID, *got.TripID)
}

func TestChatMessageRepo_List(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, content := range []string{"first", "second", "third"} {
		_, err := store.Chat.Create(ctx, domain.ChatMessage{Role: domain.RoleUser, Content: content})
		require.NoError(t, err)
	}

	msgs, err := store.Chat.List(ctx)

	require.NoError(t, err)
	require.Len(t, msgs, 3)
	for _, msg := range msgs {
		assert.Equal(t, domain.RoleUser, msg.Role)
	}
}

func TestChatMessageRepo_TripDeleteNullsReference(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	trip, err := store.Trips.Create(ctx, tripFixture())
	require.NoError(t, err)
	created, err := store.Chat.Create(ctx, domain.ChatMessage{
		Role:    domain.RoleAssistant,
		Content: "Here is your Lisbon itinerary.",
		TripID:  &trip.ID,
	})
	require.NoError(t, err)

	require.NoError(t, store.Trips.Delete(ctx, trip.ID))

	// Conversation history outlives the trip it produced.
	msgs, err := store.Chat.List(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, created.ID, msgs[0].ID)
	assert.Nil(t, msgs[0].TripID)
}
