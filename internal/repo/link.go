package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pkordes/trip-planner/internal/domain"
)

// LinkRepo defines the persistence operations for the trip_destinations join table.
// It never checks business rules; callers consult the relationship guard first.
type LinkRepo interface {
	// Add links destinations to a trip. Idempotent: existing links are kept.
	Add(ctx context.Context, tripID uuid.UUID, destinationIDs []uuid.UUID) error

	// AddTrips links trips to a destination. Idempotent.
	AddTrips(ctx context.Context, destinationID uuid.UUID, tripIDs []uuid.UUID) error

	// Remove unlinks the given destinations from a trip.
	// Returns domain.ErrNotFound if none of them were linked.
	Remove(ctx context.Context, tripID uuid.UUID, destinationIDs []uuid.UUID) error

	// ClearTrip removes every link of a trip.
	ClearTrip(ctx context.Context, tripID uuid.UUID) error

	// ClearDestination removes every link of a destination.
	ClearDestination(ctx context.Context, destinationID uuid.UUID) error
}

// pgLinkRepo is the Postgres implementation of LinkRepo.
type pgLinkRepo struct {
	db db
}

// NewLinkRepo constructs a LinkRepo backed by the provided db connection.
func NewLinkRepo(db db) LinkRepo {
	return &pgLinkRepo{db: db}
}

// Add links destinations to a trip. Idempotent via ON CONFLICT DO NOTHING.
func (r *pgLinkRepo) Add(ctx context.Context, tripID uuid.UUID, destinationIDs []uuid.UUID) error {
	if len(destinationIDs) == 0 {
		return nil
	}
	const q = `
		INSERT INTO trip_destinations (trip_id, destination_id)
		SELECT @trip_id, unnest(@ids::uuid[])
		ON CONFLICT (trip_id, destination_id) DO NOTHING`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID, "ids": pgUUIDs(destinationIDs)})
	if err != nil {
		return fmt.Errorf("repo.LinkRepo.Add: %w", err)
	}
	return nil
}

// AddTrips links trips to a destination. Idempotent via ON CONFLICT DO NOTHING.
func (r *pgLinkRepo) AddTrips(ctx context.Context, destinationID uuid.UUID, tripIDs []uuid.UUID) error {
	if len(tripIDs) == 0 {
		return nil
	}
	const q = `
		INSERT INTO trip_destinations (trip_id, destination_id)
		SELECT unnest(@ids::uuid[]), @destination_id
		ON CONFLICT (trip_id, destination_id) DO NOTHING`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{"destination_id": destinationID, "ids": pgUUIDs(tripIDs)})
	if err != nil {
		return fmt.Errorf("repo.LinkRepo.AddTrips: %w", err)
	}
	return nil
}

// Remove unlinks destinations from a trip.
func (r *pgLinkRepo) Remove(ctx context.Context, tripID uuid.UUID, destinationIDs []uuid.UUID) error {
	const q = `
		DELETE FROM trip_destinations
		WHERE trip_id = @trip_id
		  AND destination_id = ANY(@ids)`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID, "ids": pgUUIDs(destinationIDs)})
	if err != nil {
		return fmt.Errorf("repo.LinkRepo.Remove: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.LinkRepo.Remove: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgLinkRepo) ClearTrip(ctx context.Context, tripID uuid.UUID) error {
	const q = `DELETE FROM trip_destinations WHERE trip_id = @trip_id`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID}); err != nil {
		return fmt.Errorf("repo.LinkRepo.ClearTrip: %w", err)
	}
	return nil
}

func (r *pgLinkRepo) ClearDestination(ctx context.Context, destinationID uuid.UUID) error {
	const q = `DELETE FROM trip_destinations WHERE destination_id = @destination_id`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"destination_id": destinationID}); err != nil {
		return fmt.Errorf("repo.LinkRepo.ClearDestination: %w", err)
	}
	return nil
}
