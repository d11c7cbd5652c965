package handler_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/handler"
)

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs.
type mockTripServicer struct {
	create           func(ctx context.Context, trip domain.Trip, refs []domain.Ref) (domain.Trip, error)
	getByID          func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list             func(ctx context.Context, filter domain.TripFilter) ([]domain.Trip, error)
	update           func(ctx context.Context, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error)
	delete           func(ctx context.Context, id uuid.UUID) error
	listDestinations func(ctx context.Context, id uuid.UUID) ([]domain.Destination, error)
	link             func(ctx context.Context, id uuid.UUID, ids []uuid.UUID) (domain.Trip, error)
	unlink           func(ctx context.Context, id uuid.UUID, ids []uuid.UUID) error
}

func (m *mockTripServicer) Create(ctx context.Context, t domain.Trip, refs []domain.Ref) (domain.Trip, error) {
	return m.create(ctx, t, refs)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) List(ctx context.Context, f domain.TripFilter) ([]domain.Trip, error) {
	return m.list(ctx, f)
}
func (m *mockTripServicer) Update(ctx context.Context, id uuid.UUID, p domain.TripPatch) (domain.Trip, error) {
	return m.update(ctx, id, p)
}
func (m *mockTripServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockTripServicer) ListDestinations(ctx context.Context, id uuid.UUID) ([]domain.Destination, error) {
	return m.listDestinations(ctx, id)
}
func (m *mockTripServicer) LinkDestinations(ctx context.Context, id uuid.UUID, ids []uuid.UUID) (domain.Trip, error) {
	return m.link(ctx, id, ids)
}
func (m *mockTripServicer) UnlinkDestinations(ctx context.Context, id uuid.UUID, ids []uuid.UUID) error {
	return m.unlink(ctx, id, ids)
}

// mockDestinationServicer is a test double for handler.DestinationServicer.
type mockDestinationServicer struct {
	create      func(ctx context.Context, d domain.Destination, refs []domain.Ref) (domain.Destination, error)
	getEnriched func(ctx context.Context, id uuid.UUID) (domain.Enriched, error)
	list        func(ctx context.Context, f domain.DestinationFilter) ([]domain.Destination, error)
	update      func(ctx context.Context, id uuid.UUID, p domain.DestinationPatch) (domain.Destination, error)
	delete      func(ctx context.Context, id uuid.UUID) error
	listTrips   func(ctx context.Context, id uuid.UUID) ([]domain.Trip, error)
}

func (m *mockDestinationServicer) Create(ctx context.Context, d domain.Destination, refs []domain.Ref) (domain.Destination, error) {
	return m.create(ctx, d, refs)
}
func (m *mockDestinationServicer) GetEnriched(ctx context.Context, id uuid.UUID) (domain.Enriched, error) {
	return m.getEnriched(ctx, id)
}
func (m *mockDestinationServicer) List(ctx context.Context, f domain.DestinationFilter) ([]domain.Destination, error) {
	return m.list(ctx, f)
}
func (m *mockDestinationServicer) Update(ctx context.Context, id uuid.UUID, p domain.DestinationPatch) (domain.Destination, error) {
	return m.update(ctx, id, p)
}
func (m *mockDestinationServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockDestinationServicer) ListTrips(ctx context.Context, id uuid.UUID) ([]domain.Trip, error) {
	return m.listTrips(ctx, id)
}

// mockExportServicer is a test double for handler.ExportServicer.
type mockExportServicer struct {
	export func(ctx context.Context) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context) ([]domain.ExportRow, error) {
	return m.export(ctx)
}

// compile-time checks: the mocks must satisfy the handler interfaces.
var (
	_ handler.TripServicer        = (*mockTripServicer)(nil)
	_ handler.DestinationServicer = (*mockDestinationServicer)(nil)
	_ handler.ExportServicer      = (*mockExportServicer)(nil)
)
