package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
	"github.com/pkordes/trip-planner/internal/service"
)

func TestExportService_Export_NoTrips(t *testing.T) {
	svc := service.NewExportService(repo.NewMemoryStore())

	rows, err := svc.Export(context.Background())

	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestExportService_Export_TripWithNoDestinations(t *testing.T) {
	f := newFixture()
	trip := f.trip(t, "Solo", day(2025, 5, 1))
	svc := service.NewExportService(f.store)

	rows, err := svc.Export(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, trip.ID.String(), rows[0].TripID)
	assert.Equal(t, day(2025, 5, 8), rows[0].TripEndDate)
	assert.Empty(t, rows[0].DestinationID)
	assert.Nil(t, rows[0].DestinationStartDate)
}

func TestExportService_Export_OneRowPerPair(t *testing.T) {
	f := newFixture()
	a := f.trip(t, "A", day(2025, 5, 1))
	b := f.trip(t, "B", day(2025, 6, 1))
	f.destination(t, "Shared", a.ID, b.ID)
	f.destination(t, "Solo", b.ID)
	svc := service.NewExportService(f.store)

	rows, err := svc.Export(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 3)
	// Trips are listed newest first.
	assert.Equal(t, "B", rows[0].TripName)
	assert.Equal(t, "B", rows[1].TripName)
	assert.Equal(t, "A", rows[2].TripName)
	assert.Equal(t, "Shared", rows[2].DestinationName)
	require.NotNil(t, rows[2].DestinationStartDate)
	assert.Equal(t, validDestination().StartDate, *rows[2].DestinationStartDate)
}

func TestExportService_Export_TripRepoError(t *testing.T) {
	dbErr := errors.New("db down")
	svc := service.NewExportService(mockUoW{repos: repo.Repos{
		Trips: &mockTripRepo{
			list: func(context.Context, domain.TripFilter) ([]domain.Trip, error) { return nil, dbErr },
		},
	}})

	_, err := svc.Export(context.Background())

	assert.ErrorIs(t, err, dbErr)
}
