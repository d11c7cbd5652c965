package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
	"github.com/pkordes/trip-planner/internal/service"
)

func TestDestinationService_Create_RequiresExistingTrip(t *testing.T) {
	cases := map[string][]domain.Ref{
		"no refs":     nil,
		"unknown id":  refs(uuid.New()),
		"inline only": {{Name: "New Trip"}},
		"empty refs":  {},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture()

			_, err := f.dests.Create(context.Background(), validDestination(), in)

			assert.ErrorIs(t, err, domain.ErrValidation)
			all, err := f.dests.List(context.Background(), domain.DestinationFilter{})
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestDestinationService_Create_Validation(t *testing.T) {
	f := newFixture()
	trip := f.trip(t, "Iberia", day(2025, 5, 1))
	dest := validDestination()
	dest.EndDate = dest.StartDate.AddDate(0, 0, -1)

	_, err := f.dests.Create(context.Background(), dest, refs(trip.ID))

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDestinationService_Create_LinksBothSides(t *testing.T) {
	f := newFixture()
	a := f.trip(t, "A", day(2025, 5, 1))
	b := f.trip(t, "B", day(2025, 6, 1))

	got, err := f.dests.Create(context.Background(), validDestination(), refs(b.ID, a.ID, uuid.New()))

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a.ID, b.ID}, tripIDList(got.Trips))

	for _, id := range []uuid.UUID{a.ID, b.ID} {
		dests, err := f.trips.ListDestinations(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{got.ID}, destIDs(dests))
	}
}

func TestDestinationService_GetByID_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.dests.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDestinationService_List_FilterByName(t *testing.T) {
	f := newFixture()
	trip := f.trip(t, "Iberia", day(2025, 5, 1))
	lisbon := f.destination(t, "Lisbon", trip.ID)
	f.destination(t, "Porto", trip.ID)

	got, err := f.dests.List(context.Background(), domain.DestinationFilter{Name: "lis"})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, lisbon.ID, got[0].ID)
	assert.Equal(t, []uuid.UUID{trip.ID}, tripIDList(got[0].Trips))
}

func TestDestinationService_Update_ReplacesTrips(t *testing.T) {
	f := newFixture()
	a := f.trip(t, "A", day(2025, 5, 1))
	b := f.trip(t, "B", day(2025, 6, 1))
	dest := f.destination(t, "Lisbon", a.ID)
	next := refs(b.ID)

	got, err := f.dests.Update(context.Background(), dest.ID, domain.DestinationPatch{Trips: &next})

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{b.ID}, tripIDList(got.Trips))

	aDests, err := f.trips.ListDestinations(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Empty(t, aDests)
}

func TestDestinationService_Update_EmptyTripsRejected(t *testing.T) {
	f := newFixture()
	a := f.trip(t, "A", day(2025, 5, 1))
	dest := f.destination(t, "Lisbon", a.ID)
	next := refs(uuid.New())

	_, err := f.dests.Update(context.Background(), dest.ID, domain.DestinationPatch{Trips: &next})

	assert.ErrorIs(t, err, domain.ErrValidation)
	trips, err := f.dests.ListTrips(context.Background(), dest.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a.ID}, tripIDList(trips))
}

func TestDestinationService_Update_ScalarsOnly(t *testing.T) {
	f := newFixture()
	a := f.trip(t, "A", day(2025, 5, 1))
	dest := f.destination(t, "Lisbon", a.ID)
	activities := "Tram 28"

	got, err := f.dests.Update(context.Background(), dest.ID, domain.DestinationPatch{Activities: &activities})

	require.NoError(t, err)
	assert.Equal(t, "Lisbon", got.Name)
	assert.Equal(t, "Tram 28", got.Activities)
	assert.Equal(t, []uuid.UUID{a.ID}, tripIDList(got.Trips))
}

func TestDestinationService_Delete_LeavesTrips(t *testing.T) {
	f := newFixture()
	a := f.trip(t, "A", day(2025, 5, 1))
	dest := f.destination(t, "Lisbon", a.ID)

	require.NoError(t, f.dests.Delete(context.Background(), dest.ID))

	trip, err := f.trips.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Empty(t, trip.Destinations)
	assert.ErrorIs(t, f.dests.Delete(context.Background(), dest.ID), domain.ErrNotFound)
}

func TestDestinationService_Delete_RepoError(t *testing.T) {
	dbErr := errors.New("boom")
	svc := service.NewDestinationService(mockUoW{repos: repo.Repos{
		Destinations: &mockDestinationRepo{
			delete: func(context.Context, uuid.UUID) error { return dbErr },
		},
	}}, nil)

	err := svc.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, dbErr)
}

func TestDestinationService_GetEnriched_WithoutEnricher(t *testing.T) {
	f := newFixture()
	a := f.trip(t, "A", day(2025, 5, 1))
	dest := f.destination(t, "Lisbon", a.ID)

	got, err := f.dests.GetEnriched(context.Background(), dest.ID)

	require.NoError(t, err)
	assert.Equal(t, dest.ID, got.ID)
	assert.Nil(t, got.Weather)
	assert.Nil(t, got.Country)
}

func TestDestinationService_GetEnriched_NotFound(t *testing.T) {
	store := repo.NewMemoryStore()
	svc := service.NewDestinationService(store, service.NewEnricher(nil, nil, nil))

	_, err := svc.GetEnriched(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
