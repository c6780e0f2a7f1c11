package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/tmorand/moodtrip/backend/internal/domain"
	"github.com/tmorand/moodtrip/backend/internal/handler"
	"github.com/tmorand/moodtrip/backend/internal/service"
)

// Function-field mocks for every servicer interface. Tests assign only the
// fields they exercise; an unassigned field panics, which surfaces handlers
// calling into services a test did not expect.

// ---- mock TripServicer -----------------------------------------------------

type mockTripServicer struct {
	create     func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	get        func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listByUser func(ctx context.Context, userID string) ([]domain.Trip, error)
	patch      func(ctx context.Context, id uuid.UUID, p domain.TripPatch) (domain.Trip, error)
	delete     func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripServicer) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}

func (m *mockTripServicer) Get(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.get(ctx, id)
}

func (m *mockTripServicer) ListByUser(ctx context.Context, userID string) ([]domain.Trip, error) {
	return m.listByUser(ctx, userID)
}

func (m *mockTripServicer) Patch(ctx context.Context, id uuid.UUID, p domain.TripPatch) (domain.Trip, error) {
	return m.patch(ctx, id, p)
}

func (m *mockTripServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

// ---- mock ActivityServicer -------------------------------------------------

type mockActivityServicer struct {
	create      func(ctx context.Context, a domain.Activity) (domain.Activity, error)
	listByTrip  func(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error)
	listShadows func(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error)
	patch       func(ctx context.Context, id uuid.UUID, p domain.ActivityPatch) (domain.Activity, error)
	delete      func(ctx context.Context, id uuid.UUID) error
}

func (m *mockActivityServicer) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	return m.create(ctx, a)
}

func (m *mockActivityServicer) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	return m.listByTrip(ctx, tripID)
}

func (m *mockActivityServicer) ListShadows(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	return m.listShadows(ctx, tripID)
}

func (m *mockActivityServicer) Patch(ctx context.Context, id uuid.UUID, p domain.ActivityPatch) (domain.Activity, error) {
	return m.patch(ctx, id, p)
}

func (m *mockActivityServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.ActivityServicer = (*mockActivityServicer)(nil)

// ---- mock BudgetServicer ---------------------------------------------------

type mockBudgetServicer struct {
	createItem       func(ctx context.Context, item domain.BudgetItem) (domain.BudgetItem, error)
	deleteItem       func(ctx context.Context, id uuid.UUID) error
	listByTrip       func(ctx context.Context, tripID uuid.UUID) ([]domain.BudgetItem, error)
	toggleCompletion func(ctx context.Context, activityID uuid.UUID, completed bool) (domain.Activity, error)
}

func (m *mockBudgetServicer) CreateItem(ctx context.Context, item domain.BudgetItem) (domain.BudgetItem, error) {
	return m.createItem(ctx, item)
}

func (m *mockBudgetServicer) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return m.deleteItem(ctx, id)
}

func (m *mockBudgetServicer) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.BudgetItem, error) {
	return m.listByTrip(ctx, tripID)
}

func (m *mockBudgetServicer) ToggleCompletion(ctx context.Context, activityID uuid.UUID, completed bool) (domain.Activity, error) {
	return m.toggleCompletion(ctx, activityID, completed)
}

var _ handler.BudgetServicer = (*mockBudgetServicer)(nil)

// ---- mock MoodServicer -----------------------------------------------------

type mockMoodServicer struct {
	recordMood func(ctx context.Context, tripID uuid.UUID, userID, energyLevel string) (domain.MoodReading, bool, error)
	listByTrip func(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.MoodReading, error)
	summary    func(ctx context.Context, tripID uuid.UUID) (domain.MoodSummary, error)
}

func (m *mockMoodServicer) RecordMood(ctx context.Context, tripID uuid.UUID, userID, energyLevel string) (domain.MoodReading, bool, error) {
	return m.recordMood(ctx, tripID, userID, energyLevel)
}

func (m *mockMoodServicer) ListByTrip(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.MoodReading, error) {
	return m.listByTrip(ctx, tripID, p)
}

func (m *mockMoodServicer) Summary(ctx context.Context, tripID uuid.UUID) (domain.MoodSummary, error) {
	return m.summary(ctx, tripID)
}

var _ handler.MoodServicer = (*mockMoodServicer)(nil)

// ---- mock PivotServicer ----------------------------------------------------

type mockPivotServicer struct {
	propose func(ctx context.Context, tripID, activityID uuid.UUID, pctx domain.PivotContext) (domain.PivotProposal, error)
	confirm func(ctx context.Context, tripID, oldActivityID uuid.UUID, newData domain.ProposedActivity, reason string) (domain.Activity, error)
	logs    func(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.PivotLog, error)
}

func (m *mockPivotServicer) Propose(ctx context.Context, tripID, activityID uuid.UUID, pctx domain.PivotContext) (domain.PivotProposal, error) {
	return m.propose(ctx, tripID, activityID, pctx)
}

func (m *mockPivotServicer) Confirm(ctx context.Context, tripID, oldActivityID uuid.UUID, newData domain.ProposedActivity, reason string) (domain.Activity, error) {
	return m.confirm(ctx, tripID, oldActivityID, newData, reason)
}

func (m *mockPivotServicer) Logs(ctx context.Context, tripID uuid.UUID, p domain.PaginationParams) ([]domain.PivotLog, error) {
	return m.logs(ctx, tripID, p)
}

var _ handler.PivotServicer = (*mockPivotServicer)(nil)

// ---- mock PlannerServicer --------------------------------------------------

type mockPlannerServicer struct {
	generate func(ctx context.Context, userID, content string) (service.GenerateResult, error)
	messages func(ctx context.Context) ([]domain.ChatMessage, error)
	adapt    func(ctx context.Context, tripID uuid.UUID, actx domain.AdaptContext) (string, error)
	carePlan func(ctx context.Context, condition, destination, currentActivity string) (domain.CarePlan, error)
}

func (m *mockPlannerServicer) Generate(ctx context.Context, userID, content string) (service.GenerateResult, error) {
	return m.generate(ctx, userID, content)
}

func (m *mockPlannerServicer) Messages(ctx context.Context) ([]domain.ChatMessage, error) {
	return m.messages(ctx)
}

func (m *mockPlannerServicer) Adapt(ctx context.Context, tripID uuid.UUID, actx domain.AdaptContext) (string, error) {
	return m.adapt(ctx, tripID, actx)
}

func (m *mockPlannerServicer) CarePlan(ctx context.Context, condition, destination, currentActivity string) (domain.CarePlan, error) {
	return m.carePlan(ctx, condition, destination, currentActivity)
}

var _ handler.PlannerServicer = (*mockPlannerServicer)(nil)

// ---- mock PreferencesServicer ----------------------------------------------

type mockPreferencesServicer struct {
	get   func(ctx context.Context, userID string) (domain.Preferences, error)
	patch func(ctx context.Context, userID string, p domain.PreferencesPatch) (domain.Preferences, error)
}

func (m *mockPreferencesServicer) Get(ctx context.Context, userID string) (domain.Preferences, error) {
	return m.get(ctx, userID)
}

func (m *mockPreferencesServicer) Patch(ctx context.Context, userID string, p domain.PreferencesPatch) (domain.Preferences, error) {
	return m.patch(ctx, userID, p)
}

var _ handler.PreferencesServicer = (*mockPreferencesServicer)(nil)

// ---- mock DiscoveryServicer ------------------------------------------------

type mockDiscoveryServicer struct {
	list     func(ctx context.Context) ([]domain.Discovery, error)
	featured func(ctx context.Context) ([]domain.Discovery, error)
}

func (m *mockDiscoveryServicer) List(ctx context.Context) ([]domain.Discovery, error) {
	return m.list(ctx)
}

func (m *mockDiscoveryServicer) Featured(ctx context.Context) ([]domain.Discovery, error) {
	return m.featured(ctx)
}

var _ handler.DiscoveryServicer = (*mockDiscoveryServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// deps bundles the servicer mocks so tests only fill in what they use;
// router leaves the rest nil.
type deps struct {
	trips       handler.TripServicer
	activities  handler.ActivityServicer
	budget      handler.BudgetServicer
	moods       handler.MoodServicer
	pivots      handler.PivotServicer
	planner     handler.PlannerServicer
	preferences handler.PreferencesServicer
	discoveries handler.DiscoveryServicer
}

// router mounts a Server built from d on a fresh chi router, mirroring the
// production wiring in cmd/api.
func router(d deps) http.Handler {
	srv := handler.NewServer(d.trips, d.activities, d.budget, d.moods, d.pivots, d.planner, d.preferences, d.discoveries)
	r := chi.NewRouter()
	srv.Routes(r)
	return r
}

// errorCode decodes the error envelope from a non-2xx response and returns
// its code field.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error.Code
}
