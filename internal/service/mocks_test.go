package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/tmorand/moodtrip/backend/internal/domain"
	"github.com/tmorand/moodtrip/backend/internal/repo"
	"github.com/tmorand/moodtrip/backend/internal/service"
)

// Hand-written test doubles for the repo interfaces. Each method is a
// function field — set only the ones your test needs; an unset method that
// gets called panics, which points straight at the missing stub.

type mockTripRepo struct {
	create      func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID     func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listByUser  func(ctx context.Context, userID string) ([]domain.Trip, error)
	patch       func(ctx context.Context, id uuid.UUID, p domain.TripPatch) (domain.Trip, error)
	updateSpent func(ctx context.Context, id uuid.UUID, spent float64) (domain.Trip, error)
	delete      func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) ListByUser(ctx context.Context, userID string) ([]domain.Trip, error) {
	return m.listByUser(ctx, userID)
}
func (m *mockTripRepo) Patch(ctx context.Context, id uuid.UUID, p domain.TripPatch) (domain.Trip, error) {
	return m.patch(ctx, id, p)
}
func (m *mockTripRepo) UpdateSpent(ctx context.Context, id uuid.UUID, spent float64) (domain.Trip, error) {
	return m.updateSpent(ctx, id, spent)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockActivityRepo struct {
	create         func(ctx context.Context, a domain.Activity) (domain.Activity, error)
	getByID        func(ctx context.Context, id uuid.UUID) (domain.Activity, error)
	listByTrip     func(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error)
	listShadows    func(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error)
	patch          func(ctx context.Context, id uuid.UUID, p domain.ActivityPatch) (domain.Activity, error)
	setCoordinates func(ctx context.Context, id uuid.UUID, c domain.Coordinates) error
	delete         func(ctx context.Context, id uuid.UUID) error
}

func (m *mockActivityRepo) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	return m.create(ctx, a)
}
func (m *mockActivityRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error) {
	return m.getByID(ctx, id)
}
func (m *mockActivityRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockActivityRepo) ListShadows(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	return m.listShadows(ctx, tripID)
}
func (m *mockActivityRepo) Patch(ctx context.Context, id uuid.UUID, p domain.ActivityPatch) (domain.Activity, error) {
	return m.patch(ctx, id, p)
}
func (m *mockActivityRepo) SetCoordinates(ctx context.Context, id uuid.UUID, c domain.Coordinates) error {
	return m.setCoordinates(ctx, id, c)
}
func (m *mockActivityRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.ActivityRepo = (*mockActivityRepo)(nil)

type mockBudgetItemRepo struct {
	create                 func(ctx context.Context, item domain.BudgetItem) (domain.BudgetItem, error)
	getByID                func(ctx context.Context, id uuid.UUID) (domain.BudgetItem, error)
	listByTrip             func(ctx context.Context, tripID uuid.UUID) ([]domain.BudgetItem, error)
	sumByTrip              func(ctx context.Context, tripID uuid.UUID) (float64, error)
	delete                 func(ctx context.Context, id uuid.UUID) error
	deleteBySourceActivity func(ctx context.Context, activityID uuid.UUID) (int64, error)
}

func (m *mockBudgetItemRepo) Create(ctx context.Context, item domain.BudgetItem) (domain.BudgetItem, error) {
	return m.create(ctx, item)
}
func (m *mockBudgetItemRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.BudgetItem, error) {
	return m.getByID(ctx, id)
}
func (m *mockBudgetItemRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.BudgetItem, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockBudgetItemRepo) SumByTrip(ctx context.Context, tripID uuid.UUID) (float64, error) {
	return m.sumByTrip(ctx, tripID)
}
func (m *mockBudgetItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockBudgetItemRepo) DeleteBySourceActivity(ctx context.Context, activityID uuid.UUID) (int64, error) {
	return m.deleteBySourceActivity(ctx, activityID)
}

var _ repo.BudgetItemRepo = (*mockBudgetItemRepo)(nil)

type mockMoodRepo struct {
	create     func(ctx context.Context, r domain.MoodReading) (domain.MoodReading, error)
	listByTrip func(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.MoodReading, error)
	recent     func(ctx context.Context, tripID uuid.UUID, limit int) ([]domain.MoodReading, error)
}

func (m *mockMoodRepo) Create(ctx context.Context, r domain.MoodReading) (domain.MoodReading, error) {
	return m.create(ctx, r)
}
func (m *mockMoodRepo) ListByTrip(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.MoodReading, error) {
	return m.listByTrip(ctx, tripID, p)
}
func (m *mockMoodRepo) Recent(ctx context.Context, tripID uuid.UUID, limit int) ([]domain.MoodReading, error) {
	return m.recent(ctx, tripID, limit)
}

var _ repo.MoodReadingRepo = (*mockMoodRepo)(nil)

type mockPivotLogRepo struct {
	create     func(ctx context.Context, l domain.PivotLog) (domain.PivotLog, error)
	listByTrip func(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.PivotLog, error)
}

func (m *mockPivotLogRepo) Create(ctx context.Context, l domain.PivotLog) (domain.PivotLog, error) {
	return m.create(ctx, l)
}
func (m *mockPivotLogRepo) ListByTrip(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.PivotLog, error) {
	return m.listByTrip(ctx, tripID, p)
}

var _ repo.PivotLogRepo = (*mockPivotLogRepo)(nil)

type mockPreferencesRepo struct {
	getByUser func(ctx context.Context, userID string) (domain.Preferences, error)
	create    func(ctx context.Context, prefs domain.Preferences) (domain.Preferences, error)
	patch     func(ctx context.Context, id uuid.UUID, p domain.PreferencesPatch) (domain.Preferences, error)
}

func (m *mockPreferencesRepo) GetByUser(ctx context.Context, userID string) (domain.Preferences, error) {
	return m.getByUser(ctx, userID)
}
func (m *mockPreferencesRepo) Create(ctx context.Context, prefs domain.Preferences) (domain.Preferences, error) {
	return m.create(ctx, prefs)
}
func (m *mockPreferencesRepo) Patch(ctx context.Context, id uuid.UUID, p domain.PreferencesPatch) (domain.Preferences, error) {
	return m.patch(ctx, id, p)
}

var _ repo.PreferencesRepo = (*mockPreferencesRepo)(nil)

type mockChatRepo struct {
	create func(ctx context.Context, msg domain.ChatMessage) (domain.ChatMessage, error)
	list   func(ctx context.Context) ([]domain.ChatMessage, error)
}

func (m *mockChatRepo) Create(ctx context.Context, msg domain.ChatMessage) (domain.ChatMessage, error) {
	return m.create(ctx, msg)
}
func (m *mockChatRepo) List(ctx context.Context) ([]domain.ChatMessage, error) {
	return m.list(ctx)
}

var _ repo.ChatMessageRepo = (*mockChatRepo)(nil)

type mockDiscoveryRepo struct {
	create   func(ctx context.Context, d domain.Discovery) (domain.Discovery, error)
	list     func(ctx context.Context) ([]domain.Discovery, error)
	featured func(ctx context.Context) ([]domain.Discovery, error)
}

func (m *mockDiscoveryRepo) Create(ctx context.Context, d domain.Discovery) (domain.Discovery, error) {
	return m.create(ctx, d)
}
func (m *mockDiscoveryRepo) List(ctx context.Context) ([]domain.Discovery, error) {
	return m.list(ctx)
}
func (m *mockDiscoveryRepo) Featured(ctx context.Context) ([]domain.Discovery, error) {
	return m.featured(ctx)
}

var _ repo.DiscoveryRepo = (*mockDiscoveryRepo)(nil)

type mockGenerator struct {
	itinerary     func(ctx context.Context, userMessage string, prefs *domain.Preferences) (domain.ItineraryResult, error)
	pivotProposal func(ctx context.Context, activity domain.Activity, pctx domain.PivotContext) (domain.PivotProposal, error)
	adaptations   func(ctx context.Context, activitiesText string, actx domain.AdaptContext) (string, error)
	carePlan      func(ctx context.Context, condition, destination, currentActivity string) (domain.CarePlan, error)
}

func (m *mockGenerator) Itinerary(ctx context.Context, userMessage string, prefs *domain.Preferences) (domain.ItineraryResult, error) {
	return m.itinerary(ctx, userMessage, prefs)
}
func (m *mockGenerator) PivotProposal(ctx context.Context, activity domain.Activity, pctx domain.PivotContext) (domain.PivotProposal, error) {
	return m.pivotProposal(ctx, activity, pctx)
}
func (m *mockGenerator) Adaptations(ctx context.Context, activitiesText string, actx domain.AdaptContext) (string, error) {
	return m.adaptations(ctx, activitiesText, actx)
}
func (m *mockGenerator) CarePlan(ctx context.Context, condition, destination, currentActivity string) (domain.CarePlan, error) {
	return m.carePlan(ctx, condition, destination, currentActivity)
}

var _ service.Generator = (*mockGenerator)(nil)

type mockGeocoder struct {
	geocode func(ctx context.Context, place string) (*domain.Coordinates, error)
}

func (m *mockGeocoder) Geocode(ctx context.Context, place string) (*domain.Coordinates, error) {
	return m.geocode(ctx, place)
}

var _ service.Geocoder = (*mockGeocoder)(nil)

// passthroughTx satisfies service.Tx by handing fn the given Store directly.
// No real transaction is involved; unit tests assert on the repo calls fn
// makes, and integration tests cover real commit/rollback behavior.
type passthroughTx struct {
	store repo.Store
	calls int
}

func (t *passthroughTx) WithinTx(_ context.Context, fn func(repo.Store) error) error {
	t.calls++
	return fn(t.store)
}

var _ service.Tx = (*passthroughTx)(nil)

// failCalled fails the test when a mock method that should stay unused gets
// hit anyway.
func failCalled(t *testing.T, name string) {
	t.Helper()
	t.Fatalf("unexpected call to %s", name)
}
