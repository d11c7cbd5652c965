// Package service contains the business logic for the trip planner.
// Services validate inputs, enforce the relationship rules, and orchestrate
// repo calls inside a unit of work. No SQL lives here: services depend on
// repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

// TripService implements business logic for Trip operations, including
// attaching and detaching destinations.
type TripService struct {
	uow repo.UnitOfWork
}

// NewTripService constructs a TripService backed by the provided UnitOfWork.
func NewTripService(uow repo.UnitOfWork) *TripService {
	return &TripService{uow: uow}
}

// Create validates and persists a new trip together with the destinations
// its refs resolve to. Unknown destination IDs are ignored.
func (s *TripService) Create(ctx context.Context, trip domain.Trip, refs []domain.Ref) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	var created domain.Trip
	err := s.uow.Do(ctx, func(ctx context.Context, r repo.Repos) error {
		dests, err := resolve(ctx, refs, r.Destinations.ListByIDs)
		if err != nil {
			return err
		}
		created, err = r.Trips.Create(ctx, trip)
		if err != nil {
			return err
		}
		if err := r.Links.Add(ctx, created.ID, destinationIDs(dests)); err != nil {
			return err
		}
		created.Destinations = dests
		return nil
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single trip with its destinations.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	var trip domain.Trip
	err := s.uow.Do(ctx, func(ctx context.Context, r repo.Repos) error {
		var err error
		trip, err = loadTrip(ctx, r, id)
		return err
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// List returns the trips matching filter, each with its destinations.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context, filter domain.TripFilter) ([]domain.Trip, error) {
	var trips []domain.Trip
	err := s.uow.Do(ctx, func(ctx context.Context, r repo.Repos) error {
		var err error
		trips, err = r.Trips.List(ctx, filter)
		if err != nil {
			return err
		}
		byTrip, err := r.Destinations.ListByTrips(ctx, tripIDs(trips))
		if err != nil {
			return err
		}
		for i := range trips {
			trips[i].Destinations = orEmpty(byTrip[trips[i].ID])
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	return orEmpty(trips), nil
}

// Update applies a partial patch. When the patch carries destinations the
// association set is replaced, but only after the relationship guard clears
// every destination that would be dropped.
// Returns domain.ErrNotFound, domain.ErrValidation, or domain.ErrGuardDenied.
func (s *TripService) Update(ctx context.Context, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error) {
	var updated domain.Trip
	err := s.uow.Do(ctx, func(ctx context.Context, r repo.Repos) error {
		trip, err := r.Trips.GetByID(ctx, id)
		if err != nil {
			return err
		}
		patch.Apply(&trip)
		if err := validateTrip(trip); err != nil {
			return err
		}

		byTrip, err := r.Destinations.ListByTrips(ctx, []uuid.UUID{id})
		if err != nil {
			return err
		}
		next := byTrip[id]

		if patch.Destinations != nil {
			next, err = resolve(ctx, *patch.Destinations, r.Destinations.ListByIDs)
			if err != nil {
				return err
			}
			if err := guardDetach(ctx, r, missingFrom(byTrip[id], next), id); err != nil {
				return err
			}
		}

		updated, err = r.Trips.Update(ctx, trip)
		if err != nil {
			return err
		}
		if patch.Destinations != nil {
			if err := r.Links.ClearTrip(ctx, id); err != nil {
				return err
			}
			if err := r.Links.Add(ctx, id, destinationIDs(next)); err != nil {
				return err
			}
		}
		updated.Destinations = orEmpty(next)
		return nil
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a trip unless it is the only trip of some destination.
// Returns domain.ErrNotFound if the trip does not exist and a
// *domain.GuardDeniedError naming the blocking destinations otherwise.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.uow.Do(ctx, func(ctx context.Context, r repo.Repos) error {
		if _, err := r.Trips.GetByID(ctx, id); err != nil {
			return err
		}
		byTrip, err := r.Destinations.ListByTrips(ctx, []uuid.UUID{id})
		if err != nil {
			return err
		}
		if err := guardDetach(ctx, r, byTrip[id], id); err != nil {
			return err
		}
		return r.Trips.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// ListDestinations returns the destinations of a trip.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *TripService) ListDestinations(ctx context.Context, id uuid.UUID) ([]domain.Destination, error) {
	trip, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListDestinations: %w", err)
	}
	return trip.Destinations, nil
}

// LinkDestinations adds existing destinations to a trip, keeping the ones it
// already has. IDs that do not exist are skipped; if none exist the call
// fails with domain.ErrNotFound.
func (s *TripService) LinkDestinations(ctx context.Context, id uuid.UUID, destIDs []uuid.UUID) (domain.Trip, error) {
	var trip domain.Trip
	err := s.uow.Do(ctx, func(ctx context.Context, r repo.Repos) error {
		if _, err := r.Trips.GetByID(ctx, id); err != nil {
			return err
		}
		found, err := resolve(ctx, refsOf(destIDs), r.Destinations.ListByIDs)
		if err != nil {
			return err
		}
		if len(found) == 0 {
			return fmt.Errorf("destinations: %w", domain.ErrNotFound)
		}
		if err := r.Links.Add(ctx, id, destinationIDs(found)); err != nil {
			return err
		}
		trip, err = loadTrip(ctx, r, id)
		return err
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.LinkDestinations: %w", err)
	}
	return trip, nil
}

// UnlinkDestinations detaches destinations from a trip. With no IDs every
// destination is detached. Either way the relationship guard must clear the
// destinations that lose the trip. Specific IDs of which none are linked
// yield domain.ErrNotFound.
//
// Clearing all is not unconditional: a destination whose only trip is this
// one keeps the link and the call fails with *domain.GuardDeniedError, so no
// destination is ever left without a trip.
func (s *TripService) UnlinkDestinations(ctx context.Context, id uuid.UUID, destIDs []uuid.UUID) error {
	err := s.uow.Do(ctx, func(ctx context.Context, r repo.Repos) error {
		if _, err := r.Trips.GetByID(ctx, id); err != nil {
			return err
		}
		byTrip, err := r.Destinations.ListByTrips(ctx, []uuid.UUID{id})
		if err != nil {
			return err
		}

		clearAll := len(destIDs) == 0
		candidates := byTrip[id]
		if !clearAll {
			candidates = selectByID(candidates, destIDs)
			if len(candidates) == 0 {
				return fmt.Errorf("linked destinations: %w", domain.ErrNotFound)
			}
		}
		if len(candidates) == 0 {
			return nil
		}
		if err := guardDetach(ctx, r, candidates, id); err != nil {
			return err
		}
		if clearAll {
			return r.Links.ClearTrip(ctx, id)
		}
		return r.Links.Remove(ctx, id, destinationIDs(candidates))
	})
	if err != nil {
		return fmt.Errorf("service.TripService.UnlinkDestinations: %w", err)
	}
	return nil
}

// loadTrip reads a trip and its destinations inside an open unit of work.
func loadTrip(ctx context.Context, r repo.Repos, id uuid.UUID) (domain.Trip, error) {
	trip, err := r.Trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, err
	}
	byTrip, err := r.Destinations.ListByTrips(ctx, []uuid.UUID{id})
	if err != nil {
		return domain.Trip{}, err
	}
	trip.Destinations = orEmpty(byTrip[id])
	return trip, nil
}

// validateTrip enforces business rules common to both Create and Update.
//   - Name must be non-empty (whitespace-only names are rejected).
//   - Start and end dates are required; the end may not precede the start.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	return validateDates(trip.StartDate, trip.EndDate)
}
