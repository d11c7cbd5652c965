// Package repo contains all persistence logic for the trip planner.
// Each resource has its own file with an interface and a Postgres implementation;
// memory.go holds an in-memory implementation of the same interfaces.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/trip-planner/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, and lets the
// unit of work hand every repo the same transaction.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for Trips.
// Reads return scalar fields only; associations are loaded explicitly through
// DestinationRepo.ListByTrips.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with generated
	// id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// List returns the trips matching filter ordered by start_date descending.
	List(ctx context.Context, filter domain.TripFilter) ([]domain.Trip, error)

	// ListByIDs returns the trips whose IDs are in ids. Unknown IDs are skipped,
	// so the result may be shorter than ids.
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Trip, error)

	// ListByDestinations returns, for every destination ID, the trips currently
	// linked to it ordered by start_date ascending.
	ListByDestinations(ctx context.Context, destinationIDs []uuid.UUID) (map[uuid.UUID][]domain.Trip, error)

	// Update overwrites the mutable fields of an existing trip and returns the
	// updated record. Returns domain.ErrNotFound if no trip with that ID exists.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `t.id, t.name, t.description, t.participants, t.image, t.start_date, t.end_date, t.created_at, t.updated_at`

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips AS t (name, description, participants, image, start_date, end_date)
		VALUES (@name, @description, @participants, @image, @start_date, @end_date)
		RETURNING ` + tripColumns

	row := r.db.QueryRow(ctx, q, tripArgs(trip))
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips t WHERE t.id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns trips matching the filter, most recent first.
// A NULL day bound disables the date filter; an empty name disables the name filter.
func (r *pgTripRepo) List(ctx context.Context, filter domain.TripFilter) ([]domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips t
		WHERE (@name::text = '' OR t.name ILIKE '%' || @name::text || '%')
		  AND (@day_from::timestamptz IS NULL OR t.start_date BETWEEN @day_from::timestamptz AND @day_to::timestamptz)
		ORDER BY t.start_date DESC, t.name`

	args := pgx.NamedArgs{"name": escapeLike(filter.Name), "day_from": nil, "day_to": nil}
	if filter.Day != nil {
		from, to := domain.DayRange(*filter.Day)
		args["day_from"] = from
		args["day_to"] = to
	}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	trips, err := collectTrips(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	return trips, nil
}

// ListByIDs resolves many trip IDs in a single query.
func (r *pgTripRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Trip, error) {
	if len(ids) == 0 {
		return []domain.Trip{}, nil
	}
	const q = `
		SELECT ` + tripColumns + `
		FROM trips t
		WHERE t.id = ANY(@ids)
		ORDER BY t.start_date, t.name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"ids": pgUUIDs(ids)})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByIDs: %w", err)
	}
	trips, err := collectTrips(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByIDs: %w", err)
	}
	return trips, nil
}

// ListByDestinations loads the trip side of the association for many
// destinations at once.
func (r *pgTripRepo) ListByDestinations(ctx context.Context, destinationIDs []uuid.UUID) (map[uuid.UUID][]domain.Trip, error) {
	out := make(map[uuid.UUID][]domain.Trip, len(destinationIDs))
	if len(destinationIDs) == 0 {
		return out, nil
	}
	const q = `
		SELECT td.destination_id, ` + tripColumns + `
		FROM trips t
		JOIN trip_destinations td ON td.trip_id = t.id
		WHERE td.destination_id = ANY(@ids)
		ORDER BY t.start_date, t.name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"ids": pgUUIDs(destinationIDs)})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByDestinations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var owner pgtype.UUID
		t, err := scanTrip(rows, &owner)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.ListByDestinations: scan: %w", err)
		}
		key := uuid.UUID(owner.Bytes)
		out[key] = append(out[key], t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByDestinations: rows: %w", err)
	}
	return out, nil
}

// Update overwrites the mutable fields of a trip and returns the updated record.
func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips AS t
		SET name         = @name,
		    description  = @description,
		    participants = @participants,
		    image        = @image,
		    start_date   = @start_date,
		    end_date     = @end_date,
		    updated_at   = now()
		WHERE t.id = @id
		RETURNING ` + tripColumns

	args := tripArgs(trip)
	args["id"] = trip.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip by primary key. Its links go with it (ON DELETE CASCADE).
func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func tripArgs(trip domain.Trip) pgx.NamedArgs {
	return pgx.NamedArgs{
		"name":         trip.Name,
		"description":  trip.Description,
		"participants": trip.Participants,
		"image":        trip.Image,
		"start_date":   trip.StartDate,
		"end_date":     trip.EndDate,
	}
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan helpers
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
// prefix receives any columns selected before the trip columns.
func scanTrip(s scanner, prefix ...any) (domain.Trip, error) {
	var (
		t  domain.Trip
		id pgtype.UUID
	)
	dest := append(prefix, &id, &t.Name, &t.Description, &t.Participants, &t.Image,
		&t.StartDate, &t.EndDate, &t.CreatedAt, &t.UpdatedAt)

	if err := s.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}
	t.ID = uuid.UUID(id.Bytes)
	t.StartDate = t.StartDate.UTC()
	t.EndDate = t.EndDate.UTC()
	return t, nil
}

func collectTrips(rows pgx.Rows) ([]domain.Trip, error) {
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return trips, nil
}

// pgUUIDs converts IDs into a type pgx always encodes as uuid[].
func pgUUIDs(ids []uuid.UUID) []pgtype.UUID {
	out := make([]pgtype.UUID, len(ids))
	for i, id := range ids {
		out[i] = pgtype.UUID{Bytes: id, Valid: true}
	}
	return out
}

// escapeLike neutralises LIKE wildcards so user input matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
