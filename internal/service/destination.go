package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

// DestinationService implements business logic for Destination operations.
// Every destination must belong to at least one trip, so creation and trip
// replacement both require a non-empty resolved trip set.
type DestinationService struct {
	uow      repo.UnitOfWork
	enricher *Enricher
}

// NewDestinationService constructs a DestinationService. enricher may be nil,
// in which case GetEnriched returns the bare destination.
func NewDestinationService(uow repo.UnitOfWork, enricher *Enricher) *DestinationService {
	return &DestinationService{uow: uow, enricher: enricher}
}

// Create validates and persists a destination linked to the trips its refs
// resolve to. Returns domain.ErrValidation when no ref names an existing trip.
func (s *DestinationService) Create(ctx context.Context, dest domain.Destination, refs []domain.Ref) (domain.Destination, error) {
	if err := validateDestination(dest); err != nil {
		return domain.Destination{}, err
	}

	var created domain.Destination
	err := s.uow.Do(ctx, func(ctx context.Context, r repo.Repos) error {
		trips, err := resolveTrips(ctx, r, refs)
		if err != nil {
			return err
		}
		created, err = r.Destinations.Create(ctx, dest)
		if err != nil {
			return err
		}
		if err := r.Links.AddTrips(ctx, created.ID, tripIDs(trips)); err != nil {
			return err
		}
		created.Trips = trips
		return nil
	})
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single destination with its trips.
// Returns domain.ErrNotFound if the destination does not exist.
func (s *DestinationService) GetByID(ctx context.Context, id uuid.UUID) (domain.Destination, error) {
	var dest domain.Destination
	err := s.uow.Do(ctx, func(ctx context.Context, r repo.Repos) error {
		var err error
		dest, err = loadDestination(ctx, r, id)
		return err
	})
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.GetByID: %w", err)
	}
	return dest, nil
}

// GetEnriched returns the destination decorated with weather and country
// data. Provider calls happen after the read has committed; their failures
// only drop the affected part.
func (s *DestinationService) GetEnriched(ctx context.Context, id uuid.UUID) (domain.Enriched, error) {
	dest, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.Enriched{}, err
	}
	if s.enricher == nil {
		return domain.Enriched{Destination: dest}, nil
	}
	return s.enricher.Enrich(ctx, dest), nil
}

// List returns the destinations matching filter, each with its trips.
func (s *DestinationService) List(ctx context.Context, filter domain.DestinationFilter) ([]domain.Destination, error) {
	var dests []domain.Destination
	err := s.uow.Do(ctx, func(ctx context.Context, r repo.Repos) error {
		var err error
		dests, err = r.Destinations.List(ctx, filter)
		if err != nil {
			return err
		}
		byDest, err := r.Trips.ListByDestinations(ctx, destinationIDs(dests))
		if err != nil {
			return err
		}
		for i := range dests {
			dests[i].Trips = orEmpty(byDest[dests[i].ID])
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("service.DestinationService.List: %w", err)
	}
	return orEmpty(dests), nil
}

// Update applies a partial patch. A patch carrying trips replaces the trip
// set, which must resolve to at least one existing trip.
func (s *DestinationService) Update(ctx context.Context, id uuid.UUID, patch domain.DestinationPatch) (domain.Destination, error) {
	var updated domain.Destination
	err := s.uow.Do(ctx, func(ctx context.Context, r repo.Repos) error {
		dest, err := r.Destinations.GetByID(ctx, id)
		if err != nil {
			return err
		}
		patch.Apply(&dest)
		if err := validateDestination(dest); err != nil {
			return err
		}

		var trips []domain.Trip
		if patch.Trips != nil {
			if trips, err = resolveTrips(ctx, r, *patch.Trips); err != nil {
				return err
			}
		}

		updated, err = r.Destinations.Update(ctx, dest)
		if err != nil {
			return err
		}

		if patch.Trips != nil {
			if err := r.Links.ClearDestination(ctx, id); err != nil {
				return err
			}
			if err := r.Links.AddTrips(ctx, id, tripIDs(trips)); err != nil {
				return err
			}
		} else {
			byDest, err := r.Trips.ListByDestinations(ctx, []uuid.UUID{id})
			if err != nil {
				return err
			}
			trips = byDest[id]
		}
		updated.Trips = orEmpty(trips)
		return nil
	})
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a destination and its links. Trips are never affected.
// Returns domain.ErrNotFound if the destination does not exist.
func (s *DestinationService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.uow.Do(ctx, func(ctx context.Context, r repo.Repos) error {
		return r.Destinations.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("service.DestinationService.Delete: %w", err)
	}
	return nil
}

// ListTrips returns the trips a destination belongs to.
// Returns domain.ErrNotFound if the destination does not exist.
func (s *DestinationService) ListTrips(ctx context.Context, id uuid.UUID) ([]domain.Trip, error) {
	dest, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.DestinationService.ListTrips: %w", err)
	}
	return dest.Trips, nil
}

func loadDestination(ctx context.Context, r repo.Repos, id uuid.UUID) (domain.Destination, error) {
	dest, err := r.Destinations.GetByID(ctx, id)
	if err != nil {
		return domain.Destination{}, err
	}
	byDest, err := r.Trips.ListByDestinations(ctx, []uuid.UUID{id})
	if err != nil {
		return domain.Destination{}, err
	}
	dest.Trips = orEmpty(byDest[id])
	return dest, nil
}

// resolveTrips resolves refs to existing trips and rejects an empty result.
func resolveTrips(ctx context.Context, r repo.Repos, refs []domain.Ref) ([]domain.Trip, error) {
	trips, err := resolve(ctx, refs, r.Trips.ListByIDs)
	if err != nil {
		return nil, err
	}
	if len(trips) == 0 {
		return nil, fmt.Errorf("%w: at least one existing trip is required", domain.ErrValidation)
	}
	return trips, nil
}

func validateDestination(dest domain.Destination) error {
	if strings.TrimSpace(dest.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	return validateDates(dest.StartDate, dest.EndDate)
}

func validateDates(start, end time.Time) error {
	switch {
	case start.IsZero():
		return fmt.Errorf("%w: start date is required", domain.ErrValidation)
	case end.IsZero():
		return fmt.Errorf("%w: end date is required", domain.ErrValidation)
	case end.Before(start):
		return fmt.Errorf("%w: end date must not be before start date", domain.ErrValidation)
	}
	return nil
}
