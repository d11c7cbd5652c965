package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

// resolve turns request refs into the persisted entities they name.
// Refs without an ID are dropped (inline creation is not supported), duplicate
// IDs collapse, and IDs that do not exist are ignored. The lookup is a single
// batched query. The result replaces, never extends, whatever the caller had.
func resolve[T any](ctx context.Context, refs []domain.Ref, lookup func(context.Context, []uuid.UUID) ([]T, error)) ([]T, error) {
	ids := domain.RefIDs(refs)
	if len(ids) == 0 {
		return []T{}, nil
	}
	found, err := lookup(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}
	return found, nil
}

// refsOf wraps plain IDs as refs so link operations share the merge path.
func refsOf(ids []uuid.UUID) []domain.Ref {
	refs := make([]domain.Ref, len(ids))
	for i, id := range ids {
		refs[i] = domain.IDRef(id)
	}
	return refs
}

// missingFrom returns the destinations in have whose IDs are not in keep.
func missingFrom(have, keep []domain.Destination) []domain.Destination {
	kept := make(map[uuid.UUID]struct{}, len(keep))
	for _, d := range keep {
		kept[d.ID] = struct{}{}
	}
	var out []domain.Destination
	for _, d := range have {
		if _, ok := kept[d.ID]; !ok {
			out = append(out, d)
		}
	}
	return out
}

// selectByID returns the destinations in have whose IDs are listed in ids.
func selectByID(have []domain.Destination, ids []uuid.UUID) []domain.Destination {
	want := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var out []domain.Destination
	for _, d := range have {
		if _, ok := want[d.ID]; ok {
			out = append(out, d)
		}
	}
	return out
}

// guardDetach loads the current trips of every candidate and asks the
// relationship guard whether tripID may be detached from all of them.
// It must run before any write of the same unit of work.
func guardDetach(ctx context.Context, r repo.Repos, candidates []domain.Destination, tripID uuid.UUID) error {
	if len(candidates) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(candidates))
	for i, d := range candidates {
		ids[i] = d.ID
	}
	tripsByDest, err := r.Trips.ListByDestinations(ctx, ids)
	if err != nil {
		return err
	}
	snapshot := make([]domain.Destination, len(candidates))
	for i, d := range candidates {
		d.Trips = tripsByDest[d.ID]
		snapshot[i] = d
	}
	return domain.CanRemoveAssociations(snapshot, tripID).Err()
}

func destinationIDs(dests []domain.Destination) []uuid.UUID {
	ids := make([]uuid.UUID, len(dests))
	for i, d := range dests {
		ids[i] = d.ID
	}
	return ids
}

func tripIDs(trips []domain.Trip) []uuid.UUID {
	ids := make([]uuid.UUID, len(trips))
	for i, t := range trips {
		ids[i] = t.ID
	}
	return ids
}

// orEmpty keeps JSON encoders from emitting null for empty associations.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
