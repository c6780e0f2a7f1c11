package handler

import (
	"net/http"

	"github.com/tmorand/moodtrip/backend/internal/domain"
)

// patchPreferencesRequest is the body for PATCH /api/preferences. Absent
// fields leave the stored value untouched; interests and dietary replace
// the stored list wholesale when present.
type patchPreferencesRequest struct {
	Budget      *string  `json:"budget"`
	Pace        *string  `json:"pace"`
	Interests   []string `json:"interests"`
	Dietary     []string `json:"dietary"`
	TravelStyle *string  `json:"travelStyle"`
}

// GetPreferences handles GET /api/preferences. First access creates the
// default profile, so this always returns a persisted row.
func (s *Server) GetPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.preferences.Get(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

// PatchPreferences handles PATCH /api/preferences.
func (s *Server) PatchPreferences(w http.ResponseWriter, r *http.Request) {
	var req patchPreferencesRequest
	if !decodeBody(w, r, &req) {
		return
	}

	updated, err := s.preferences.Patch(r.Context(), userID(r), domain.PreferencesPatch{
		Budget:      req.Budget,
		Pace:        req.Pace,
		Interests:   req.Interests,
		Dietary:     req.Dietary,
		TravelStyle: req.TravelStyle,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
