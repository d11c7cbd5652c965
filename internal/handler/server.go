// Package handler implements the HTTP handlers for the trip planner API.
// All handlers are methods on Server. Methods are split into resource files
// (health.go, trip.go, destination.go, export.go) but share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the store or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip, destinations []domain.Ref) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context, filter domain.TripFilter) ([]domain.Trip, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListDestinations(ctx context.Context, id uuid.UUID) ([]domain.Destination, error)
	LinkDestinations(ctx context.Context, id uuid.UUID, destinationIDs []uuid.UUID) (domain.Trip, error)
	UnlinkDestinations(ctx context.Context, id uuid.UUID, destinationIDs []uuid.UUID) error
}

// DestinationServicer defines the business operations the destination
// handlers depend on.
type DestinationServicer interface {
	Create(ctx context.Context, dest domain.Destination, trips []domain.Ref) (domain.Destination, error)
	GetEnriched(ctx context.Context, id uuid.UUID) (domain.Enriched, error)
	List(ctx context.Context, filter domain.DestinationFilter) ([]domain.Destination, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.DestinationPatch) (domain.Destination, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListTrips(ctx context.Context, id uuid.UUID) ([]domain.Trip, error)
}

// ExportServicer defines the operations the export handler depends on.
type ExportServicer interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	trips        TripServicer
	destinations DestinationServicer
	export       ExportServicer
	now          func() time.Time
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, destinations DestinationServicer, export ExportServicer) *Server {
	return &Server{
		trips:        trips,
		destinations: destinations,
		export:       export,
		now:          time.Now,
	}
}

// Handler returns the API routes. Cross-cutting middleware (request IDs,
// logging, CORS, body limits) is applied by the caller.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Get("/export", s.GetExport)

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Post("/", s.CreateTrip)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)
			r.Get("/calendar", s.GetTripCalendar)
			r.Get("/destinations", s.ListTripDestinations)
			r.Post("/destinations", s.LinkTripDestinations)
			r.Delete("/destinations", s.UnlinkTripDestinations)
			r.Delete("/destinations/{ids}", s.UnlinkTripDestinations)
		})
	})

	r.Route("/destinations", func(r chi.Router) {
		r.Get("/", s.ListDestinations)
		r.Post("/", s.CreateDestination)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetDestination)
			r.Put("/", s.UpdateDestination)
			r.Delete("/", s.DeleteDestination)
			r.Get("/trips", s.ListDestinationTrips)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, notFoundBody("route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed,
			ErrorResponse{Error: ErrorDetail{Code: "method_not_allowed", Message: "method not allowed"}})
	})
	return r
}
