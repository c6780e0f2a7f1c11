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

func TestPreferencesService_Get_CreatesDefaultOnFirstAccess(t *testing.T) {
	var created *domain.Preferences
	store := repo.Store{
		Preferences: &mockPreferencesRepo{
			getByUser: func(_ context.Context, _ string) (domain.Preferences, error) {
				if created != nil {
					return *created, nil
				}
				return domain.Preferences{}, domain.ErrNotFound
			},
			create: func(_ context.Context, prefs domain.Preferences) (domain.Preferences, error) {
				prefs.ID = uuid.New()
				created = &prefs
				return prefs, nil
			},
		},
	}
	svc := service.NewPreferencesService(store)

	prefs, err := svc.Get(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, "user-1", prefs.UserID)
	assert.Equal(t, "medium", prefs.Budget)
	assert.Equal(t, "moderate", prefs.Pace)
	assert.Equal(t, []string{"food", "culture"}, prefs.Interests)

	// Second access returns the stored row without another create.
	again, err := svc.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, prefs.ID, again.ID)
}

func TestPreferencesService_Patch_CreatesDefaultFirst(t *testing.T) {
	var created *domain.Preferences
	store := repo.Store{
		Preferences: &mockPreferencesRepo{
			getByUser: func(_ context.Context, _ string) (domain.Preferences, error) {
				return domain.Preferences{}, domain.ErrNotFound
			},
			create: func(_ context.Context, prefs domain.Preferences) (domain.Preferences, error) {
				prefs.ID = uuid.New()
				created = &prefs
				return prefs, nil
			},
			patch: func(_ context.Context, id uuid.UUID, p domain.PreferencesPatch) (domain.Preferences, error) {
				require.NotNil(t, created)
				assert.Equal(t, created.ID, id)
				updated := *created
				if p.Pace != nil {
					updated.Pace = *p.Pace
				}
				return updated, nil
			},
		},
	}
	svc := service.NewPreferencesService(store)

	relaxed := "relaxed"
	prefs, err := svc.Patch(context.Background(), "user-1", domain.PreferencesPatch{Pace: &relaxed})

	require.NoError(t, err)
	assert.Equal(t, "relaxed", prefs.Pace)
}
