package handler

import (
	"net/http"
	"strings"

	"github.com/pkordes/trip-planner/internal/domain"
)

// ListDestinations handles GET /destinations.
// Supports ?name= (case-insensitive substring).
func (s *Server) ListDestinations(w http.ResponseWriter, r *http.Request) {
	filter := domain.DestinationFilter{Name: strings.TrimSpace(r.URL.Query().Get("name"))}

	dests, err := s.destinations.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	out := make([]destinationResponse, len(dests))
	for i, d := range dests {
		out[i] = toDestinationResponse(d)
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateDestination handles POST /destinations.
// At least one trip ref must name an existing trip.
func (s *Server) CreateDestination(w http.ResponseWriter, r *http.Request) {
	var body destinationRequest
	if err := decodeBody(r, &body, false); err != nil {
		writeError(w, r, err, "")
		return
	}

	dest, refs := body.toDomain()
	created, err := s.destinations.Create(r.Context(), dest, refs)
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, toDestinationResponse(created))
}

// GetDestination handles GET /destinations/{id}.
// The response carries weather and country data when the providers answer.
func (s *Server) GetDestination(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "destination not found")
		return
	}

	enriched, err := s.destinations.GetEnriched(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "destination not found")
		return
	}
	writeJSON(w, http.StatusOK, toEnrichedResponse(enriched))
}

// UpdateDestination handles PUT /destinations/{id}.
func (s *Server) UpdateDestination(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "destination not found")
		return
	}
	var body destinationRequest
	if err := decodeBody(r, &body, false); err != nil {
		writeError(w, r, err, "")
		return
	}

	updated, err := s.destinations.Update(r.Context(), id, body.toPatch())
	if err != nil {
		writeError(w, r, err, "destination not found")
		return
	}
	writeJSON(w, http.StatusOK, toDestinationResponse(updated))
}

// DeleteDestination handles DELETE /destinations/{id}.
func (s *Server) DeleteDestination(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "destination not found")
		return
	}

	if err := s.destinations.Delete(r.Context(), id); err != nil {
		writeError(w, r, err, "destination not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListDestinationTrips handles GET /destinations/{id}/trips.
func (s *Server) ListDestinationTrips(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "destination not found")
		return
	}

	trips, err := s.destinations.ListTrips(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "destination not found")
		return
	}
	writeJSON(w, http.StatusOK, toTripSummaries(trips))
}
