package handler

import (
	"net/http"
	"strconv"

	"github.com/tmorand/moodtrip/backend/internal/domain"
)

// recordMoodRequest is the body for POST /api/trips/{tripID}/mood.
type recordMoodRequest struct {
	EnergyLevel string `json:"energyLevel"`
}

// recordMoodResponse echoes the stored reading along with the pivot hint the
// client uses to offer a pivot.
type recordMoodResponse struct {
	domain.MoodReading
	ShouldPivot bool `json:"shouldPivot"`
}

// RecordMood handles POST /api/trips/{tripID}/mood.
func (s *Server) RecordMood(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	var req recordMoodRequest
	if !decodeBody(w, r, &req) {
		return
	}

	reading, shouldPivot, err := s.moods.RecordMood(r.Context(), tripID, userID(r), req.EnergyLevel)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, recordMoodResponse{
		MoodReading: reading,
		ShouldPivot: shouldPivot,
	})
}

// ListMoodReadings handles GET /api/trips/{tripID}/mood.
// Supports ?page= and ?limit= query parameters; readings come back newest
// first.
func (s *Server) ListMoodReadings(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	readings, err := s.moods.ListByTrip(r.Context(), tripID, queryPagination(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, readings)
}

// GetMoodSummary handles GET /api/trips/{tripID}/mood/summary.
func (s *Server) GetMoodSummary(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	summary, err := s.moods.Summary(r.Context(), tripID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// queryPagination reads ?page= and ?limit= into PaginationParams, leaving
// defaults in place for absent or malformed values.
func queryPagination(r *http.Request) domain.PaginationParams {
	var page, limit *int
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		page = &v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		limit = &v
	}
	return domain.NewPaginationParams(page, limit)
}
