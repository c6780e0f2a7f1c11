package handler

import (
	"net/http"

	"github.com/tmorand/moodtrip/backend/internal/domain"
)

// createBudgetItemRequest is the body for POST /api/budget.
type createBudgetItemRequest struct {
	TripID      string  `json:"tripId"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

// CreateBudgetItem handles POST /api/budget. The trip's spent total is
// recomputed in the same transaction as the insert.
func (s *Server) CreateBudgetItem(w http.ResponseWriter, r *http.Request) {
	var req createBudgetItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	tripID, ok := parseUUIDField(w, req.TripID, "tripId")
	if !ok {
		return
	}

	created, err := s.budget.CreateItem(r.Context(), domain.BudgetItem{
		TripID:      tripID,
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListBudgetItems handles GET /api/trips/{tripID}/budget.
// Items come back newest date first.
func (s *Server) ListBudgetItems(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	items, err := s.budget.ListByTrip(r.Context(), tripID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// DeleteBudgetItem handles DELETE /api/budget/{itemID}. The trip's spent
// total is recomputed in the same transaction as the delete.
func (s *Server) DeleteBudgetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "itemID")
	if !ok {
		return
	}
	if err := s.budget.DeleteItem(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
