package domain_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
)

func destWithTrips(tripIDs ...uuid.UUID) domain.Destination {
	d := domain.Destination{ID: uuid.New(), Name: "Lisbon"}
	for _, id := range tripIDs {
		d.Trips = append(d.Trips, domain.Trip{ID: id})
	}
	return d
}

func TestCanRemoveAssociations_NoCandidates(t *testing.T) {
	got := domain.CanRemoveAssociations(nil, uuid.New())

	assert.True(t, got.Allowed)
	assert.Empty(t, got.Blocking)
	assert.NoError(t, got.Err())
}

func TestCanRemoveAssociations_AllHaveOtherTrips(t *testing.T) {
	trip := uuid.New()
	candidates := []domain.Destination{
		destWithTrips(trip, uuid.New()),
		destWithTrips(uuid.New(), trip, uuid.New()),
	}

	got := domain.CanRemoveAssociations(candidates, trip)

	assert.True(t, got.Allowed)
}

func TestCanRemoveAssociations_LastTripBlocks(t *testing.T) {
	trip := uuid.New()
	safe := destWithTrips(trip, uuid.New())
	orphan := destWithTrips(trip)

	got := domain.CanRemoveAssociations([]domain.Destination{safe, orphan}, trip)

	assert.False(t, got.Allowed)
	assert.Equal(t, []uuid.UUID{orphan.ID}, got.Blocking)
}

func TestCanRemoveAssociations_ReportsEveryBlocker(t *testing.T) {
	trip := uuid.New()
	a := destWithTrips(trip)
	b := destWithTrips(trip)

	got := domain.CanRemoveAssociations([]domain.Destination{a, b, a}, trip)

	require.False(t, got.Allowed)
	assert.ElementsMatch(t, []uuid.UUID{a.ID, b.ID}, got.Blocking)
	assert.Len(t, got.Blocking, 2, "duplicates collapse")
}

func TestCanRemoveAssociations_NoTripsAtAllBlocks(t *testing.T) {
	got := domain.CanRemoveAssociations([]domain.Destination{destWithTrips()}, uuid.New())

	assert.False(t, got.Allowed)
}

func TestDecision_ErrIsGuardDenied(t *testing.T) {
	trip := uuid.New()
	orphan := destWithTrips(trip)

	err := domain.CanRemoveAssociations([]domain.Destination{orphan}, trip).Err()

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGuardDenied)

	var denied *domain.GuardDeniedError
	require.True(t, errors.As(err, &denied))
	assert.Equal(t, []uuid.UUID{orphan.ID}, denied.DestinationIDs)
	assert.Contains(t, err.Error(), orphan.ID.String())
}
