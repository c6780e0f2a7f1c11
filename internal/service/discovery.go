package service

import (
	"context"
	"fmt"

	"github.com/tmorand/moodtrip/backend/internal/domain"
	"github.com/tmorand/moodtrip/backend/internal/repo"
)

// DiscoveryService serves the curated inspiration catalog. The catalog is
// read-only: entries arrive through migrations, not the API.
type DiscoveryService struct {
	store repo.Store
}

// NewDiscoveryService constructs a DiscoveryService backed by the provided
// store.
func NewDiscoveryService(store repo.Store) *DiscoveryService {
	return &DiscoveryService{store: store}
}

// List returns the whole catalog, newest entries first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *DiscoveryService) List(ctx context.Context) ([]domain.Discovery, error) {
	discoveries, err := s.store.Discoveries.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.DiscoveryService.List: %w", err)
	}
	if discoveries == nil {
		return []domain.Discovery{}, nil
	}
	return discoveries, nil
}

// Featured returns the top-rated shelf of the catalog.
// Always returns a non-nil slice so callers can safely range over it.
func (s *DiscoveryService) Featured(ctx context.Context) ([]domain.Discovery, error) {
	discoveries, err := s.store.Discoveries.Featured(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.DiscoveryService.Featured: %w", err)
	}
	if discoveries == nil {
		return []domain.Discovery{}, nil
	}
	return discoveries, nil
}
