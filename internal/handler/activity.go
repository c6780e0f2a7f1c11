package handler

import (
	"net/http"

	"github.com/tmorand/moodtrip/backend/internal/domain"
)

// createActivityRequest is the body for POST /api/activities.
type createActivityRequest struct {
	TripID                 string              `json:"tripId"`
	Day                    int                 `json:"day"`
	OrderIndex             int                 `json:"orderIndex"`
	Title                  string              `json:"title"`
	Description            string              `json:"description"`
	Category               string              `json:"category"`
	Time                   string              `json:"time"`
	Duration               string              `json:"duration"`
	Location               string              `json:"location"`
	Coordinates            *domain.Coordinates `json:"coordinates"`
	Cost                   float64             `json:"cost"`
	ImageURL               string              `json:"imageUrl"`
	EnergyLevelRequirement string              `json:"energyLevelRequirement"`
}

// patchActivityRequest is the body for PATCH /api/activities/{activityID}.
// Only allow-listed fields appear here; identity fields cannot be patched.
type patchActivityRequest struct {
	Title                  *string  `json:"title"`
	Description            *string  `json:"description"`
	Category               *string  `json:"category"`
	Time                   *string  `json:"time"`
	Duration               *string  `json:"duration"`
	Location               *string  `json:"location"`
	Cost                   *float64 `json:"cost"`
	Completed              *bool    `json:"completed"`
	EnergyLevelRequirement *string  `json:"energyLevelRequirement"`
	IsShadowOption         *bool    `json:"isShadowOption"`
	ImageURL               *string  `json:"imageUrl"`
}

// toggleActivityRequest is the body for POST /api/activities/{activityID}/toggle.
type toggleActivityRequest struct {
	Completed bool `json:"completed"`
}

// CreateActivity handles POST /api/activities.
func (s *Server) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var req createActivityRequest
	if !decodeBody(w, r, &req) {
		return
	}
	tripID, ok := parseUUIDField(w, req.TripID, "tripId")
	if !ok {
		return
	}

	created, err := s.activities.Create(r.Context(), domain.Activity{
		TripID:                 tripID,
		Day:                    req.Day,
		OrderIndex:             req.OrderIndex,
		Title:                  req.Title,
		Description:            req.Description,
		Category:               req.Category,
		Time:                   req.Time,
		Duration:               req.Duration,
		Location:               req.Location,
		Coordinates:            req.Coordinates,
		Cost:                   req.Cost,
		ImageURL:               req.ImageURL,
		EnergyLevelRequirement: req.EnergyLevelRequirement,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListActivities handles GET /api/trips/{tripID}/activities.
// Returns the main itinerary in (day, orderIndex) order; shadow options are
// excluded.
func (s *Server) ListActivities(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	activities, err := s.activities.ListByTrip(r.Context(), tripID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activities)
}

// ListShadowActivities handles GET /api/trips/{tripID}/activities/shadows.
func (s *Server) ListShadowActivities(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	shadows, err := s.activities.ListShadows(r.Context(), tripID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, shadows)
}

// PatchActivity handles PATCH /api/activities/{activityID}.
func (s *Server) PatchActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "activityID")
	if !ok {
		return
	}
	var req patchActivityRequest
	if !decodeBody(w, r, &req) {
		return
	}

	updated, err := s.activities.Patch(r.Context(), id, domain.ActivityPatch{
		Title:                  req.Title,
		Description:            req.Description,
		Category:               req.Category,
		Time:                   req.Time,
		Duration:               req.Duration,
		Location:               req.Location,
		Cost:                   req.Cost,
		Completed:              req.Completed,
		EnergyLevelRequirement: req.EnergyLevelRequirement,
		IsShadowOption:         req.IsShadowOption,
		ImageURL:               req.ImageURL,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// ToggleActivity handles POST /api/activities/{activityID}/toggle.
// Goes through the budget service because completion drives the ledger.
func (s *Server) ToggleActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "activityID")
	if !ok {
		return
	}
	var req toggleActivityRequest
	if !decodeBody(w, r, &req) {
		return
	}

	updated, err := s.budget.ToggleCompletion(r.Context(), id, req.Completed)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteActivity handles DELETE /api/activities/{activityID}.
func (s *Server) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "activityID")
	if !ok {
		return
	}
	if err := s.activities.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
