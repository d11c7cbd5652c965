package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/trip-planner/internal/domain"
)

// DestinationRepo defines the persistence operations for Destinations.
// Reads return scalar fields only; use TripRepo.ListByDestinations for the
// trip side of the association.
type DestinationRepo interface {
	// Create inserts a new destination and returns the persisted record.
	// Links to trips are written separately through LinkRepo.
	Create(ctx context.Context, dest domain.Destination) (domain.Destination, error)

	// GetByID retrieves a single destination by its UUID.
	// Returns domain.ErrNotFound if no destination with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Destination, error)

	// List returns the destinations matching filter ordered by start_date descending.
	List(ctx context.Context, filter domain.DestinationFilter) ([]domain.Destination, error)

	// ListByIDs returns the destinations whose IDs are in ids, skipping unknown IDs.
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Destination, error)

	// ListByTrips returns, for every trip ID, the destinations currently linked
	// to it ordered by start_date ascending.
	ListByTrips(ctx context.Context, tripIDs []uuid.UUID) (map[uuid.UUID][]domain.Destination, error)

	// Update overwrites the mutable fields of a destination.
	// Returns domain.ErrNotFound if no destination with that ID exists.
	Update(ctx context.Context, dest domain.Destination) (domain.Destination, error)

	// Delete removes a destination by ID.
	// Returns domain.ErrNotFound if no destination with that ID exists.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgDestinationRepo is the Postgres implementation of DestinationRepo.
type pgDestinationRepo struct {
	db db
}

// NewDestinationRepo constructs a DestinationRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewDestinationRepo(db db) DestinationRepo {
	return &pgDestinationRepo{db: db}
}

const destinationColumns = `d.id, d.name, d.description, d.activities, d.photos, d.start_date, d.end_date, d.created_at, d.updated_at`

func (r *pgDestinationRepo) Create(ctx context.Context, dest domain.Destination) (domain.Destination, error) {
	const q = `
		INSERT INTO destinations AS d (name, description, activities, photos, start_date, end_date)
		VALUES (@name, @description, @activities, @photos, @start_date, @end_date)
		RETURNING ` + destinationColumns

	row := r.db.QueryRow(ctx, q, destinationArgs(dest))
	result, err := scanDestination(row)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgDestinationRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Destination, error) {
	const q = `SELECT ` + destinationColumns + ` FROM destinations d WHERE d.id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanDestination(row)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgDestinationRepo) List(ctx context.Context, filter domain.DestinationFilter) ([]domain.Destination, error) {
	const q = `
		SELECT ` + destinationColumns + `
		FROM destinations d
		WHERE (@name::text = '' OR d.name ILIKE '%' || @name::text || '%')
		ORDER BY d.start_date DESC, d.name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"name": escapeLike(filter.Name)})
	if err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.List: %w", err)
	}
	dests, err := collectDestinations(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.List: %w", err)
	}
	return dests, nil
}

func (r *pgDestinationRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Destination, error) {
	if len(ids) == 0 {
		return []domain.Destination{}, nil
	}
	const q = `
		SELECT ` + destinationColumns + `
		FROM destinations d
		WHERE d.id = ANY(@ids)
		ORDER BY d.start_date, d.name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"ids": pgUUIDs(ids)})
	if err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.ListByIDs: %w", err)
	}
	dests, err := collectDestinations(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.ListByIDs: %w", err)
	}
	return dests, nil
}

func (r *pgDestinationRepo) ListByTrips(ctx context.Context, tripIDs []uuid.UUID) (map[uuid.UUID][]domain.Destination, error) {
	out := make(map[uuid.UUID][]domain.Destination, len(tripIDs))
	if len(tripIDs) == 0 {
		return out, nil
	}
	const q = `
		SELECT td.trip_id, ` + destinationColumns + `
		FROM destinations d
		JOIN trip_destinations td ON td.destination_id = d.id
		WHERE td.trip_id = ANY(@ids)
		ORDER BY d.start_date, d.name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"ids": pgUUIDs(tripIDs)})
	if err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.ListByTrips: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var owner pgtype.UUID
		d, err := scanDestination(rows, &owner)
		if err != nil {
			return nil, fmt.Errorf("repo.DestinationRepo.ListByTrips: scan: %w", err)
		}
		key := uuid.UUID(owner.Bytes)
		out[key] = append(out[key], d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.ListByTrips: rows: %w", err)
	}
	return out, nil
}

func (r *pgDestinationRepo) Update(ctx context.Context, dest domain.Destination) (domain.Destination, error) {
	const q = `
		UPDATE destinations AS d
		SET name        = @name,
		    description = @description,
		    activities  = @activities,
		    photos      = @photos,
		    start_date  = @start_date,
		    end_date    = @end_date,
		    updated_at  = now()
		WHERE d.id = @id
		RETURNING ` + destinationColumns

	args := destinationArgs(dest)
	args["id"] = dest.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanDestination(row)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgDestinationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM destinations WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.DestinationRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.DestinationRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func destinationArgs(dest domain.Destination) pgx.NamedArgs {
	return pgx.NamedArgs{
		"name":        dest.Name,
		"description": dest.Description,
		"activities":  dest.Activities,
		"photos":      dest.Photos,
		"start_date":  dest.StartDate,
		"end_date":    dest.EndDate,
	}
}

// scanDestination maps a single database row into a domain.Destination.
func scanDestination(s scanner, prefix ...any) (domain.Destination, error) {
	var (
		d  domain.Destination
		id pgtype.UUID
	)
	dest := append(prefix, &id, &d.Name, &d.Description, &d.Activities, &d.Photos,
		&d.StartDate, &d.EndDate, &d.CreatedAt, &d.UpdatedAt)

	if err := s.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Destination{}, domain.ErrNotFound
		}
		return domain.Destination{}, err
	}
	d.ID = uuid.UUID(id.Bytes)
	d.StartDate = d.StartDate.UTC()
	d.EndDate = d.EndDate.UTC()
	return d, nil
}

func collectDestinations(rows pgx.Rows) ([]domain.Destination, error) {
	defer rows.Close()

	dests := []domain.Destination{}
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		dests = append(dests, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return dests, nil
}
