package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/trip-planner/internal/calendar"
	"github.com/pkordes/trip-planner/internal/domain"
)

// ListTrips handles GET /trips.
// Supports ?name= (case-insensitive substring) and ?date=YYYY-MM-DD (start day).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	day, err := queryDate(r, "date")
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	filter := domain.TripFilter{Name: strings.TrimSpace(r.URL.Query().Get("name")), Day: day}

	trips, err := s.trips.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	out := make([]tripResponse, len(trips))
	for i, t := range trips {
		out[i] = toTripResponse(t)
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body createTripRequest
	if err := decodeBody(r, &body, false); err != nil {
		writeError(w, r, err, "")
		return
	}

	trip, refs := body.toDomain()
	created, err := s.trips.Create(r.Context(), trip, refs)
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, toTripResponse(created))
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "trip not found")
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, toTripResponse(trip))
}

// UpdateTrip handles PUT /trips/{id}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "trip not found")
		return
	}
	var body updateTripRequest
	if err := decodeBody(r, &body, false); err != nil {
		writeError(w, r, err, "")
		return
	}

	updated, err := s.trips.Update(r.Context(), id, body.toPatch())
	if err != nil {
		writeError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, toTripResponse(updated))
}

// DeleteTrip handles DELETE /trips/{id}.
// Answers 403 with the blocking destination IDs when the trip is the last
// trip of any of its destinations.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "trip not found")
		return
	}

	if err := s.trips.Delete(r.Context(), id); err != nil {
		writeError(w, r, err, "trip not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListTripDestinations handles GET /trips/{id}/destinations.
func (s *Server) ListTripDestinations(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "trip not found")
		return
	}

	dests, err := s.trips.ListDestinations(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, toDestinationSummaries(dests))
}

// LinkTripDestinations handles POST /trips/{id}/destinations.
// Body: {"destinations":["<uuid>", ...]}. Existing links are kept.
func (s *Server) LinkTripDestinations(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "trip not found")
		return
	}
	var body linkDestinationsRequest
	if err := decodeBody(r, &body, false); err != nil {
		writeError(w, r, err, "")
		return
	}

	trip, err := s.trips.LinkDestinations(r.Context(), id, parseIDs(body.Destinations))
	if err != nil {
		writeError(w, r, err, "trip or destinations not found")
		return
	}
	writeJSON(w, http.StatusCreated, toTripResponse(trip))
}

// UnlinkTripDestinations handles DELETE /trips/{id}/destinations and
// DELETE /trips/{id}/destinations/{ids}. IDs come from the comma-separated
// path segment or the optional {"destinationIds":[...]} body; with neither,
// every destination is detached. An explicit empty destinationIds list
// selects nothing and answers 204 once the trip is known to exist.
func (s *Server) UnlinkTripDestinations(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "trip not found")
		return
	}

	ids := pathIDList(r, "ids")
	if chi.URLParam(r, "ids") == "" {
		var body unlinkDestinationsRequest
		if err := decodeBody(r, &body, true); err != nil {
			writeError(w, r, err, "")
			return
		}
		if body.DestinationIDs != nil && len(body.DestinationIDs) == 0 {
			if _, err := s.trips.GetByID(r.Context(), id); err != nil {
				writeError(w, r, err, "trip not found")
				return
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}
		ids = parseIDs(body.DestinationIDs)
		if len(body.DestinationIDs) > 0 && len(ids) == 0 {
			writeJSON(w, http.StatusNotFound, notFoundBody("destinations not linked to trip"))
			return
		}
	} else if len(ids) == 0 {
		writeJSON(w, http.StatusNotFound, notFoundBody("destinations not linked to trip"))
		return
	}

	if err := s.trips.UnlinkDestinations(r.Context(), id, ids); err != nil {
		writeError(w, r, err, "trip or linked destinations not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetTripCalendar handles GET /trips/{id}/calendar and returns the trip as
// a downloadable iCalendar file.
func (s *Server) GetTripCalendar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "trip not found")
		return
	}
	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "trip not found")
		return
	}

	var buf bytes.Buffer
	if err := calendar.Render(&buf, trip, s.now()); err != nil {
		writeError(w, r, err, "")
		return
	}
	w.Header().Set("Content-Type", calendar.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", calendar.Filename(trip)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
