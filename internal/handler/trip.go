package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tmorand/moodtrip/backend/internal/domain"
)

// createTripRequest is the body for POST /api/trips.
type createTripRequest struct {
	Destination string              `json:"destination"`
	StartDate   string              `json:"startDate"`
	EndDate     string              `json:"endDate"`
	Budget      float64             `json:"budget"`
	ImageURL    string              `json:"imageUrl"`
	Coordinates *domain.Coordinates `json:"coordinates"`
}

// patchTripRequest is the body for PATCH /api/trips/{tripID}. Absent fields
// leave the stored value untouched. Spent is not patchable.
type patchTripRequest struct {
	Destination *string             `json:"destination"`
	StartDate   *string             `json:"startDate"`
	EndDate     *string             `json:"endDate"`
	Budget      *float64            `json:"budget"`
	Status      *string             `json:"status"`
	ImageURL    *string             `json:"imageUrl"`
	Coordinates *domain.Coordinates `json:"coordinates"`
}

// CreateTrip handles POST /api/trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := s.trips.Create(r.Context(), domain.Trip{
		UserID:      userID(r),
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Budget:      req.Budget,
		ImageURL:    req.ImageURL,
		Coordinates: req.Coordinates,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListTrips handles GET /api/trips. Trips belong to the calling user.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.ListByUser(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trips)
}

// GetTrip handles GET /api/trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	trip, err := s.trips.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// PatchTrip handles PATCH /api/trips/{tripID}.
func (s *Server) PatchTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	var req patchTripRequest
	if !decodeBody(w, r, &req) {
		return
	}

	updated, err := s.trips.Patch(r.Context(), id, domain.TripPatch{
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Budget:      req.Budget,
		Status:      req.Status,
		ImageURL:    req.ImageURL,
		Coordinates: req.Coordinates,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteTrip handles DELETE /api/trips/{tripID}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	if err := s.trips.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathUUID parses the named chi URL parameter as a UUID, writing a 400 and
// returning ok=false when it is malformed.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeBadRequest(w, name+" must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}
