package repo

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
)

// MemoryStore is an in-memory UnitOfWork used by tests and by
// STORE_DRIVER=memory. Units of work are serialized: each Do works on a
// private copy of the state that replaces the shared state only on success.
// Do must not be called from inside another Do on the same store.
type MemoryStore struct {
	mu    sync.Mutex
	state *memState
	now   func() time.Time
}

type link struct {
	trip uuid.UUID
	dest uuid.UUID
}

type memState struct {
	trips map[uuid.UUID]domain.Trip
	dests map[uuid.UUID]domain.Destination
	links map[link]struct{}
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		state: &memState{
			trips: map[uuid.UUID]domain.Trip{},
			dests: map[uuid.UUID]domain.Destination{},
			links: map[link]struct{}{},
		},
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Do runs fn against a snapshot and commits it when fn succeeds.
func (m *MemoryStore) Do(ctx context.Context, fn func(ctx context.Context, r Repos) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	work := m.state.clone()
	r := Repos{
		Trips:        &memTripRepo{s: work, now: m.now},
		Destinations: &memDestinationRepo{s: work, now: m.now},
		Links:        &memLinkRepo{s: work},
	}
	if err := fn(ctx, r); err != nil {
		return err
	}
	m.state = work
	return nil
}

func (s *memState) clone() *memState {
	c := &memState{
		trips: make(map[uuid.UUID]domain.Trip, len(s.trips)),
		dests: make(map[uuid.UUID]domain.Destination, len(s.dests)),
		links: make(map[link]struct{}, len(s.links)),
	}
	for k, v := range s.trips {
		c.trips[k] = v
	}
	for k, v := range s.dests {
		c.dests[k] = v
	}
	for k := range s.links {
		c.links[k] = struct{}{}
	}
	return c
}

// --- trips -------------------------------------------------------------------

type memTripRepo struct {
	s   *memState
	now func() time.Time
}

func (r *memTripRepo) Create(_ context.Context, trip domain.Trip) (domain.Trip, error) {
	trip.ID = uuid.New()
	trip.CreatedAt = r.now()
	trip.UpdatedAt = trip.CreatedAt
	trip.Destinations = nil
	r.s.trips[trip.ID] = trip
	return trip, nil
}

func (r *memTripRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Trip, error) {
	t, ok := r.s.trips[id]
	if !ok {
		return domain.Trip{}, domain.ErrNotFound
	}
	return t, nil
}

func (r *memTripRepo) List(_ context.Context, filter domain.TripFilter) ([]domain.Trip, error) {
	var from, to time.Time
	if filter.Day != nil {
		from, to = domain.DayRange(*filter.Day)
	}
	out := []domain.Trip{}
	for _, t := range r.s.trips {
		if !containsFold(t.Name, filter.Name) {
			continue
		}
		if filter.Day != nil && (t.StartDate.Before(from) || t.StartDate.After(to)) {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.After(out[j].StartDate)
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *memTripRepo) ListByIDs(_ context.Context, ids []uuid.UUID) ([]domain.Trip, error) {
	out := []domain.Trip{}
	seen := map[uuid.UUID]struct{}{}
	for _, id := range ids {
		t, ok := r.s.trips[id]
		if _, dup := seen[id]; !ok || dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, t)
	}
	sortTripsAsc(out)
	return out, nil
}

func (r *memTripRepo) ListByDestinations(_ context.Context, destinationIDs []uuid.UUID) (map[uuid.UUID][]domain.Trip, error) {
	out := make(map[uuid.UUID][]domain.Trip, len(destinationIDs))
	for _, did := range destinationIDs {
		if _, done := out[did]; done {
			continue
		}
		var trips []domain.Trip
		for l := range r.s.links {
			if l.dest == did {
				trips = append(trips, r.s.trips[l.trip])
			}
		}
		if len(trips) > 0 {
			sortTripsAsc(trips)
			out[did] = trips
		}
	}
	return out, nil
}

func (r *memTripRepo) Update(_ context.Context, trip domain.Trip) (domain.Trip, error) {
	old, ok := r.s.trips[trip.ID]
	if !ok {
		return domain.Trip{}, domain.ErrNotFound
	}
	trip.CreatedAt = old.CreatedAt
	trip.UpdatedAt = r.now()
	trip.Destinations = nil
	r.s.trips[trip.ID] = trip
	return trip, nil
}

func (r *memTripRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.s.trips[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.trips, id)
	for l := range r.s.links {
		if l.trip == id {
			delete(r.s.links, l)
		}
	}
	return nil
}

// --- destinations ------------------------------------------------------------

type memDestinationRepo struct {
	s   *memState
	now func() time.Time
}

func (r *memDestinationRepo) Create(_ context.Context, dest domain.Destination) (domain.Destination, error) {
	dest.ID = uuid.New()
	dest.CreatedAt = r.now()
	dest.UpdatedAt = dest.CreatedAt
	dest.Trips = nil
	r.s.dests[dest.ID] = dest
	return dest, nil
}

func (r *memDestinationRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Destination, error) {
	d, ok := r.s.dests[id]
	if !ok {
		return domain.Destination{}, domain.ErrNotFound
	}
	return d, nil
}

func (r *memDestinationRepo) List(_ context.Context, filter domain.DestinationFilter) ([]domain.Destination, error) {
	out := []domain.Destination{}
	for _, d := range r.s.dests {
		if containsFold(d.Name, filter.Name) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.After(out[j].StartDate)
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *memDestinationRepo) ListByIDs(_ context.Context, ids []uuid.UUID) ([]domain.Destination, error) {
	out := []domain.Destination{}
	seen := map[uuid.UUID]struct{}{}
	for _, id := range ids {
		d, ok := r.s.dests[id]
		if _, dup := seen[id]; !ok || dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, d)
	}
	sortDestinationsAsc(out)
	return out, nil
}

func (r *memDestinationRepo) ListByTrips(_ context.Context, tripIDs []uuid.UUID) (map[uuid.UUID][]domain.Destination, error) {
	out := make(map[uuid.UUID][]domain.Destination, len(tripIDs))
	for _, tid := range tripIDs {
		if _, done := out[tid]; done {
			continue
		}
		var dests []domain.Destination
		for l := range r.s.links {
			if l.trip == tid {
				dests = append(dests, r.s.dests[l.dest])
			}
		}
		if len(dests) > 0 {
			sortDestinationsAsc(dests)
			out[tid] = dests
		}
	}
	return out, nil
}

func (r *memDestinationRepo) Update(_ context.Context, dest domain.Destination) (domain.Destination, error) {
	old, ok := r.s.dests[dest.ID]
	if !ok {
		return domain.Destination{}, domain.ErrNotFound
	}
	dest.CreatedAt = old.CreatedAt
	dest.UpdatedAt = r.now()
	dest.Trips = nil
	r.s.dests[dest.ID] = dest
	return dest, nil
}

func (r *memDestinationRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.s.dests[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.dests, id)
	for l := range r.s.links {
		if l.dest == id {
			delete(r.s.links, l)
		}
	}
	return nil
}

// --- links -------------------------------------------------------------------

type memLinkRepo struct {
	s *memState
}

func (r *memLinkRepo) Add(_ context.Context, tripID uuid.UUID, destinationIDs []uuid.UUID) error {
	for _, did := range destinationIDs {
		r.s.links[link{trip: tripID, dest: did}] = struct{}{}
	}
	return nil
}

func (r *memLinkRepo) AddTrips(_ context.Context, destinationID uuid.UUID, tripIDs []uuid.UUID) error {
	for _, tid := range tripIDs {
		r.s.links[link{trip: tid, dest: destinationID}] = struct{}{}
	}
	return nil
}

func (r *memLinkRepo) Remove(_ context.Context, tripID uuid.UUID, destinationIDs []uuid.UUID) error {
	removed := 0
	for _, did := range destinationIDs {
		l := link{trip: tripID, dest: did}
		if _, ok := r.s.links[l]; ok {
			delete(r.s.links, l)
			removed++
		}
	}
	if removed == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *memLinkRepo) ClearTrip(_ context.Context, tripID uuid.UUID) error {
	for l := range r.s.links {
		if l.trip == tripID {
			delete(r.s.links, l)
		}
	}
	return nil
}

func (r *memLinkRepo) ClearDestination(_ context.Context, destinationID uuid.UUID) error {
	for l := range r.s.links {
		if l.dest == destinationID {
			delete(r.s.links, l)
		}
	}
	return nil
}

// --- helpers -----------------------------------------------------------------

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func sortTripsAsc(trips []domain.Trip) {
	sort.Slice(trips, func(i, j int) bool {
		if !trips[i].StartDate.Equal(trips[j].StartDate) {
			return trips[i].StartDate.Before(trips[j].StartDate)
		}
		return trips[i].Name < trips[j].Name
	})
}

func sortDestinationsAsc(dests []domain.Destination) {
	sort.Slice(dests, func(i, j int) bool {
		if !dests[i].StartDate.Equal(dests[j].StartDate) {
			return dests[i].StartDate.Before(dests[j].StartDate)
		}
		return dests[i].Name < dests[j].Name
	})
}

var (
	_ UnitOfWork      = (*MemoryStore)(nil)
	_ TripRepo        = (*memTripRepo)(nil)
	_ DestinationRepo = (*memDestinationRepo)(nil)
	_ LinkRepo        = (*memLinkRepo)(nil)
)
