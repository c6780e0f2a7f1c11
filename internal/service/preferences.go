package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmorand/moodtrip/backend/internal/domain"
	"github.com/tmorand/moodtrip/backend/internal/repo"
)

// PreferencesService manages a user's travel profile.
type PreferencesService struct {
	store repo.Store
}

// NewPreferencesService constructs a PreferencesService.
func NewPreferencesService(store repo.Store) *PreferencesService {
	return &PreferencesService{store: store}
}

// Get returns a user's preferences, creating the default profile on first
// access so the caller always gets a persisted row back.
func (s *PreferencesService) Get(ctx context.Context, userID string) (domain.Preferences, error) {
	prefs, err := s.store.Preferences.GetByUser(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		prefs, err = s.store.Preferences.Create(ctx, domain.DefaultPreferences(userID))
	}
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("service.PreferencesService.Get: %w", err)
	}
	return prefs, nil
}

// Patch applies a partial update to a user's preferences, creating the
// default profile first if the user has none yet.
func (s *PreferencesService) Patch(ctx context.Context, userID string, p domain.PreferencesPatch) (domain.Preferences, error) {
	prefs, err := s.Get(ctx, userID)
	if err != nil {
		return domain.Preferences{}, err
	}
	updated, err := s.store.Preferences.Patch(ctx, prefs.ID, p)
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("service.PreferencesService.Patch: %w", err)
	}
	return updated, nil
}
