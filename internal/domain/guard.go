package domain

import (
	"bytes"
	"sort"

	"github.com/google/uuid"
)

// Decision is the outcome of a relationship guard check.
type Decision struct {
	Allowed bool
	// Blocking lists the destinations that would be left without a trip,
	// sorted by ID. Empty when Allowed.
	Blocking []uuid.UUID
}

// Err converts a denial into a *GuardDeniedError. It returns nil when allowed.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return &GuardDeniedError{DestinationIDs: d.Blocking}
}

// CanRemoveAssociations decides whether excludingTrip may be detached from
// every candidate destination. Each candidate must carry its current Trips.
//
// A candidate blocks when it has no trip other than excludingTrip. For a
// destination actually linked to excludingTrip that is exactly a trip count
// of one.
//
// Only the destination side is guarded: a trip may end up with no destinations.
func CanRemoveAssociations(candidates []Destination, excludingTrip uuid.UUID) Decision {
	var blocking []uuid.UUID
	seen := make(map[uuid.UUID]struct{}, len(candidates))
	for _, d := range candidates {
		if _, dup := seen[d.ID]; dup {
			continue
		}
		seen[d.ID] = struct{}{}
		if !hasOtherTrip(d, excludingTrip) {
			blocking = append(blocking, d.ID)
		}
	}
	if len(blocking) == 0 {
		return Decision{Allowed: true}
	}
	sort.Slice(blocking, func(i, j int) bool {
		return bytes.Compare(blocking[i][:], blocking[j][:]) < 0
	})
	return Decision{Allowed: false, Blocking: blocking}
}

func hasOtherTrip(d Destination, tripID uuid.UUID) bool {
	for _, t := range d.Trips {
		if t.ID != tripID {
			return true
		}
	}
	return false
}
