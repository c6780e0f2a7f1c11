package handler

import (
	"net/http"
)

// ListDiscoveries handles GET /api/discoveries.
func (s *Server) ListDiscoveries(w http.ResponseWriter, r *http.Request) {
	discoveries, err := s.discoveries.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, discoveries)
}

// ListFeaturedDiscoveries handles GET /api/discoveries/featured.
func (s *Server) ListFeaturedDiscoveries(w http.ResponseWriter, r *http.Request) {
	discoveries, err := s.discoveries.Featured(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, discoveries)
}
