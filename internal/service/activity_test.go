package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmorand/moodtrip/backend/internal/domain"
	"github.com/tmorand/moodtrip/backend/internal/repo"
	"github.com/tmorand/moodtrip/backend/internal/service"
)

func validManualActivity(tripID uuid.UUID) domain.Activity {
	return domain.Activity{
		TripID:   tripID,
		Day:      1,
		Title:    "Nishiki market walk",
		Category: domain.CategoryActivity,
		Time:     "11:00",
		Location: "Nishiki Market",
		Cost:     0,
	}
}

func activityStore(tripID uuid.UUID) repo.Store {
	return repo.Store{
		Trips: &mockTripRepo{
			getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
				if id != tripID {
					return domain.Trip{}, domain.ErrNotFound
				}
				return domain.Trip{ID: tripID}, nil
			},
		},
		Activities: &mockActivityRepo{
			create: func(_ context.Context, a domain.Activity) (domain.Activity, error) {
				a.ID = uuid.New()
				return a, nil
			},
			patch: func(_ context.Context, id uuid.UUID, _ domain.ActivityPatch) (domain.Activity, error) {
				return domain.Activity{ID: id}, nil
			},
		},
	}
}

func TestActivityService_Create_Valid(t *testing.T) {
	tripID := uuid.New()
	svc := service.NewActivityService(activityStore(tripID))

	got, err := svc.Create(context.Background(), validManualActivity(tripID))

	require.NoError(t, err)
	assert.Equal(t, "Nishiki market walk", got.Title)
}

func TestActivityService_Create_TripNotFound(t *testing.T) {
	svc := service.NewActivityService(activityStore(uuid.New()))

	_, err := svc.Create(context.Background(), validManualActivity(uuid.New()))

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestActivityService_Create_Validation(t *testing.T) {
	tripID := uuid.New()
	svc := service.NewActivityService(activityStore(tripID))

	cases := map[string]func(*domain.Activity){
		"missing title":    func(a *domain.Activity) { a.Title = "" },
		"unknown category": func(a *domain.Activity) { a.Category = "shopping" },
		"day zero":         func(a *domain.Activity) { a.Day = 0 },
		"negative cost":    func(a *domain.Activity) { a.Cost = -5 },
		"bad energy level": func(a *domain.Activity) { a.EnergyLevelRequirement = "sleepy" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			a := validManualActivity(tripID)
			mutate(&a)

			_, err := svc.Create(context.Background(), a)

			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestActivityService_Patch_Validation(t *testing.T) {
	svc := service.NewActivityService(activityStore(uuid.New()))

	bad := "shopping"
	_, err := svc.Patch(context.Background(), uuid.New(), domain.ActivityPatch{Category: &bad})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestActivityService_ListByTrip_EmptyIsNotNil(t *testing.T) {
	store := repo.Store{
		Activities: &mockActivityRepo{
			listByTrip: func(_ context.Context, _ uuid.UUID) ([]domain.Activity, error) {
				return nil, nil
			},
		},
	}
	svc := service.NewActivityService(store)

	activities, err := svc.ListByTrip(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.NotNil(t, activities)
	assert.Empty(t, activities)
}
