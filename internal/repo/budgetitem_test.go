package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmorand/moodtrip/backend/internal/domain"
)

func budgetItemFixture(tripID uuid.UUID) domain.BudgetItem {
	return domain.BudgetItem{
		TripID:      tripID,
		Category:    "food",
		Amount:      42.5,
		Description: "Seafood dinner",
		Date:        "2026-09-11",
	}
}

func TestBudgetItemRepo_Create(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	trip, err := store.Trips.Create(ctx, tripFixture())
	require.NoError(t, err)
	activity, err := store.Activities.Create(ctx, activityFixture(trip.ID))
	require.NoError(t, err)

	input := budgetItemFixture(trip.ID)
	input.SourceActivityID = &activity.ID

	got, err := store.BudgetItems.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, input.Amount, got.Amount)
	assert.Equal(t, input.Date, got.Date)
	require.NotNil(t, got.SourceActivityID)
	assert.Equal(t, activity.ID, *got.SourceActivityID)
}

func TestBudgetItemRepo_ListByTrip_NewestDateFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	trip, err := store.Trips.Create(ctx, tripFixture())
	require.NoError(t, err)

	early := budgetItemFixture(trip.ID)
	early.Date = "2026-09-10"
	early.Description = "Airport transfer"
	_, err = store.BudgetItems.Create(ctx, early)
	require.NoError(t, err)

	late := budgetItemFixture(trip.ID)
	late.Date = "2026-09-13"
	late.Description = "Farewell dinner"
	_, err = store.BudgetItems.Create(ctx, late)
	require.NoError(t, err)

	items, err := store.BudgetItems.ListByTrip(ctx, trip.ID)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Farewell dinner", items[0].Description)
	assert.Equal(t, "Airport transfer", items[1].Description)
}

func TestBudgetItemRepo_SumByTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	trip, err := store.Trips.Create(ctx, tripFixture())
	require.NoError(t, err)

	sum, err := store.BudgetItems.SumByTrip(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, sum, "empty ledger sums to zero, not NULL")

	for _, amount := range []float64{100, 42.5, -20} {
		item := budgetItemFixture(trip.ID)
		item.Amount = amount
		_, err = store.BudgetItems.Create(ctx, item)
		require.NoError(t, err)
	}

	sum, err = store.BudgetItems.SumByTrip(ctx, trip.ID)
	require.NoError(t, err)
	assert.InDelta(t, 122.5, sum, 1e-9)
}

func TestBudgetItemRepo_Delete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	trip, err := store.Trips.Create(ctx, tripFixture())
	require.NoError(t, err)
	item, err := store.BudgetItems.Create(ctx, budgetItemFixture(trip.ID))
	require.NoError(t, err)

	require.NoError(t, store.BudgetItems.Delete(ctx, item.ID))

	_, err = store.BudgetItems.GetByID(ctx, item.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBudgetItemRepo_Delete_NotFound(t *testing.T) {
	store := newTestStore(t)

	err := store.BudgetItems.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBudgetItemRepo_DeleteBySourceActivity(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	trip, err := store.Trips.Create(ctx, tripFixture())
	require.NoError(t, err)
	activity, err := store.Activities.Create(ctx, activityFixture(trip.ID))
	require.NoError(t, err)

	mirrored := budgetItemFixture(trip.ID)
	mirrored.SourceActivityID = &activity.ID
	_, err = store.BudgetItems.Create(ctx, mirrored)
	require.NoError(t, err)

	manual := budgetItemFixture(trip.ID)
	manual.Description = "Museum tickets"
	_, err = store.BudgetItems.Create(ctx, manual)
	require.NoError(t, err)

	deleted, err := store.BudgetItems.DeleteBySourceActivity(ctx, activity.ID)

	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted, "only the mirrored row is removed")

	items, err := store.BudgetItems.ListByTrip(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Museum tickets", items[0].Description)
}

func TestBudgetItemRepo_ActivityDeleteNullsSource(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	trip, err := store.Trips.Create(ctx, tripFixture())
	require.NoError(t, err)
	activity, err := store.Activities.Create(ctx, activityFixture(trip.ID))
	require.NoError(t, err)

	item := budgetItemFixture(trip.ID)
	item.SourceActivityID = &activity.ID
	created, err := store.BudgetItems.Create(ctx, item)
	require.NoError(t, err)

	require.NoError(t, store.Activities.Delete(ctx, activity.ID))

	// Spending already happened; deleting the activity keeps the ledger row.
	got, err := store.BudgetItems.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.SourceActivityID)
}
