package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

// Hand-written test doubles. Each method is a function field; set only the
// ones your test needs. Calling an unset method panics, which flags an
// unexpected repo call in the test output.

type mockUoW struct {
	repos repo.Repos
}

func (m mockUoW) Do(ctx context.Context, fn func(ctx context.Context, r repo.Repos) error) error {
	return fn(ctx, m.repos)
}

type mockTripRepo struct {
	create             func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID            func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list               func(ctx context.Context, filter domain.TripFilter) ([]domain.Trip, error)
	listByIDs          func(ctx context.Context, ids []uuid.UUID) ([]domain.Trip, error)
	listByDestinations func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]domain.Trip, error)
	update             func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete             func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) List(ctx context.Context, filter domain.TripFilter) ([]domain.Trip, error) {
	return m.list(ctx, filter)
}
func (m *mockTripRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Trip, error) {
	return m.listByIDs(ctx, ids)
}
func (m *mockTripRepo) ListByDestinations(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]domain.Trip, error) {
	return m.listByDestinations(ctx, ids)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

type mockDestinationRepo struct {
	create      func(ctx context.Context, dest domain.Destination) (domain.Destination, error)
	getByID     func(ctx context.Context, id uuid.UUID) (domain.Destination, error)
	list        func(ctx context.Context, filter domain.DestinationFilter) ([]domain.Destination, error)
	listByIDs   func(ctx context.Context, ids []uuid.UUID) ([]domain.Destination, error)
	listByTrips func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]domain.Destination, error)
	update      func(ctx context.Context, dest domain.Destination) (domain.Destination, error)
	delete      func(ctx context.Context, id uuid.UUID) error
}

func (m *mockDestinationRepo) Create(ctx context.Context, dest domain.Destination) (domain.Destination, error) {
	return m.create(ctx, dest)
}
func (m *mockDestinationRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Destination, error) {
	return m.getByID(ctx, id)
}
func (m *mockDestinationRepo) List(ctx context.Context, filter domain.DestinationFilter) ([]domain.Destination, error) {
	return m.list(ctx, filter)
}
func (m *mockDestinationRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Destination, error) {
	return m.listByIDs(ctx, ids)
}
func (m *mockDestinationRepo) ListByTrips(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]domain.Destination, error) {
	return m.listByTrips(ctx, ids)
}
func (m *mockDestinationRepo) Update(ctx context.Context, dest domain.Destination) (domain.Destination, error) {
	return m.update(ctx, dest)
}
func (m *mockDestinationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

type mockLinkRepo struct {
	add              func(ctx context.Context, tripID uuid.UUID, destIDs []uuid.UUID) error
	addTrips         func(ctx context.Context, destID uuid.UUID, tripIDs []uuid.UUID) error
	remove           func(ctx context.Context, tripID uuid.UUID, destIDs []uuid.UUID) error
	clearTrip        func(ctx context.Context, tripID uuid.UUID) error
	clearDestination func(ctx context.Context, destID uuid.UUID) error
}

func (m *mockLinkRepo) Add(ctx context.Context, tripID uuid.UUID, destIDs []uuid.UUID) error {
	return m.add(ctx, tripID, destIDs)
}
func (m *mockLinkRepo) AddTrips(ctx context.Context, destID uuid.UUID, tripIDs []uuid.UUID) error {
	return m.addTrips(ctx, destID, tripIDs)
}
func (m *mockLinkRepo) Remove(ctx context.Context, tripID uuid.UUID, destIDs []uuid.UUID) error {
	return m.remove(ctx, tripID, destIDs)
}
func (m *mockLinkRepo) ClearTrip(ctx context.Context, tripID uuid.UUID) error {
	return m.clearTrip(ctx, tripID)
}
func (m *mockLinkRepo) ClearDestination(ctx context.Context, destID uuid.UUID) error {
	return m.clearDestination(ctx, destID)
}

// compile-time checks: the mocks must satisfy the repo interfaces.
var (
	_ repo.UnitOfWork      = mockUoW{}
	_ repo.TripRepo        = (*mockTripRepo)(nil)
	_ repo.DestinationRepo = (*mockDestinationRepo)(nil)
	_ repo.LinkRepo        = (*mockLinkRepo)(nil)
)
