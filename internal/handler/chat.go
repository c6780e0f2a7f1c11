package handler

import (
	"net/http"

	"github.com/tmorand/moodtrip/backend/internal/domain"
)

// sendChatRequest is the body for POST /api/chat/send.
type sendChatRequest struct {
	Content string `json:"content"`
}

// adaptRequest is the body for POST /api/trips/{tripID}/adapt.
type adaptRequest struct {
	Context domain.AdaptContext `json:"context"`
}

// carePlanRequest is the body for POST /api/trips/{tripID}/care-mode.
type carePlanRequest struct {
	Condition       string `json:"condition"`
	CurrentActivity string `json:"currentActivity"`
}

// SendChatMessage handles POST /api/chat/send. The reply carries the
// assistant message and, when the generator planned one, the created trip.
func (s *Server) SendChatMessage(w http.ResponseWriter, r *http.Request) {
	var req sendChatRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := s.planner.Generate(r.Context(), userID(r), req.Content)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ListChatMessages handles GET /api/chat/messages, oldest first.
func (s *Server) ListChatMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.planner.Messages(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

// AdaptItinerary handles POST /api/trips/{tripID}/adapt.
func (s *Server) AdaptItinerary(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	var req adaptRequest
	if !decodeBody(w, r, &req) {
		return
	}

	suggestions, err := s.planner.Adapt(r.Context(), tripID, req.Context)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"suggestions": suggestions})
}

// GenerateCarePlan handles POST /api/trips/{tripID}/care-mode. The plan is
// generated against the trip's destination and returned without being
// persisted.
func (s *Server) GenerateCarePlan(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	var req carePlanRequest
	if !decodeBody(w, r, &req) {
		return
	}

	trip, err := s.trips.Get(r.Context(), tripID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	plan, err := s.planner.CarePlan(r.Context(), req.Condition, trip.Destination, req.CurrentActivity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}
