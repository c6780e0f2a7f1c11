package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmorand/moodtrip/backend/internal/domain"
)

func discoveryFixture() domain.Discovery {
	return domain.Discovery{
		Title:       "Moonlit Kayak Tour",
		Description: "Paddle through bioluminescent waters after dark",
		Category:    domain.DiscoveryAdventure,
		Location:    "Vieques, Puerto Rico",
		ImageURL:    "https://example.com/kayak.jpg",
		Rating:      5.0,
		Sentiment:   "highly-rated",
		Cost:        "medium",
		Tags:        []string{"adventure", "nature", "nightlife"},
	}
}

// The catalog ships pre-seeded; a fresh database already answers List.
func TestDiscoveryRepo_SeededCatalog(t *testing.T) {
	store := newTestStore(t)

	catalog, err := store.Discoveries.List(context.Background())

	require.NoError(t, err)
	require.GreaterOrEqual(t, len(catalog), 6)

	temple, found := lo.Find(catalog, func(d domain.Discovery) bool {
		return d.Title == "Hidden Temple in Ubud"
	})
	require.True(t, found)
	assert.Equal(t, domain.DiscoveryHiddenGem, temple.Category)
	assert.Equal(t, "Ubud, Bali", temple.Location)
	assert.Equal(t, 4.8, temple.Rating)
	assert.Equal(t, []string{"culture", "nature", "photography"}, temple.Tags)
}

func TestDiscoveryRepo_Create(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Discoveries.Create(ctx, discoveryFixture())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "Moonlit Kayak Tour", created.Title)
	assert.Equal(t, []string{"adventure", "nature", "nightlife"}, created.Tags)
	assert.False(t, created.CreatedAt.IsZero())

	catalog, err := store.Discoveries.List(ctx)
	require.NoError(t, err)
	titles := lo.Map(catalog, func(d domain.Discovery, _ int) string { return d.Title })
	assert.Contains(t, titles, "Moonlit Kayak Tour")
}

func TestDiscoveryRepo_Featured(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	top, err := store.Discoveries.Create(ctx, discoveryFixture())
	require.NoError(t, err)

	lowRated := discoveryFixture()
	lowRated.Title = "Roadside Diner"
	lowRated.Rating = 3.9
	_, err = store.Discoveries.Create(ctx, lowRated)
	require.NoError(t, err)

	featured, err := store.Discoveries.Featured(ctx)

	require.NoError(t, err)
	require.NotEmpty(t, featured)
	assert.LessOrEqual(t, len(featured), 6)
	for _, d := range featured {
		assert.GreaterOrEqual(t, d.Rating, 4.3)
	}
	// Best first, so the 5.0 entry leads the shelf.
	assert.Equal(t, top.ID, featured[0].ID)

	titles := lo.Map(featured, func(d domain.Discovery, _ int) string { return d.Title })
	assert.NotContains(t, titles, "Roadside Diner")
}
