package handler

import (
	"net/http"

	"github.com/tmorand/moodtrip/backend/internal/domain"
)

// proposePivotRequest is the body for POST /api/trips/{tripID}/pivot.
type proposePivotRequest struct {
	CurrentActivityID string  `json:"currentActivityId"`
	Location          string  `json:"location"`
	Time              string  `json:"time"`
	BudgetRemaining   float64 `json:"budgetRemaining"`
	GroupMood         string  `json:"groupMood"`
}

// confirmPivotRequest is the body for POST /api/trips/{tripID}/pivot/confirm.
type confirmPivotRequest struct {
	OldActivityID   string                  `json:"oldActivityId"`
	NewActivityData domain.ProposedActivity `json:"newActivityData"`
	Reason          string                  `json:"reason"`
}

// ProposePivot handles POST /api/trips/{tripID}/pivot.
// A pre-planned shadow option wins over the generator; nothing is persisted
// either way.
func (s *Server) ProposePivot(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	var req proposePivotRequest
	if !decodeBody(w, r, &req) {
		return
	}
	activityID, ok := parseUUIDField(w, req.CurrentActivityID, "currentActivityId")
	if !ok {
		return
	}

	proposal, err := s.pivots.Propose(r.Context(), tripID, activityID, domain.PivotContext{
		Location:        req.Location,
		Time:            req.Time,
		BudgetRemaining: req.BudgetRemaining,
		GroupMood:       req.GroupMood,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proposal)
}

// ConfirmPivot handles POST /api/trips/{tripID}/pivot/confirm.
// The activity rewrite and the pivot log append commit together; the
// response is the updated activity.
func (s *Server) ConfirmPivot(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	var req confirmPivotRequest
	if !decodeBody(w, r, &req) {
		return
	}
	oldActivityID, ok := parseUUIDField(w, req.OldActivityID, "oldActivityId")
	if !ok {
		return
	}

	updated, err := s.pivots.Confirm(r.Context(), tripID, oldActivityID, req.NewActivityData, req.Reason)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// ListPivotLogs handles GET /api/trips/{tripID}/pivots.
// Supports ?page= and ?limit= query parameters; entries come back newest
// first.
func (s *Server) ListPivotLogs(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	logs, err := s.pivots.Logs(r.Context(), tripID, queryPagination(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}
