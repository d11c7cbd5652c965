package domain

import (
	"time"

	"github.com/google/uuid"
)

// Ref points at a related entity in a request payload.
// Only refs carrying an ID are resolved; a bare Name (inline creation of the
// related entity) is accepted on the wire but never acted upon.
type Ref struct {
	ID   *uuid.UUID
	Name string
}

// IDRef builds a Ref for an existing entity.
func IDRef(id uuid.UUID) Ref {
	return Ref{ID: &id}
}

// RefIDs collects the identified refs in first-seen order, collapsing
// duplicates. Unidentified refs are dropped.
func RefIDs(refs []Ref) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(refs))
	ids := make([]uuid.UUID, 0, len(refs))
	for _, r := range refs {
		if r.ID == nil {
			continue
		}
		if _, dup := seen[*r.ID]; dup {
			continue
		}
		seen[*r.ID] = struct{}{}
		ids = append(ids, *r.ID)
	}
	return ids
}

// DayRange returns the inclusive bounds of the UTC calendar day containing t:
// 00:00:00.000 through 23:59:59.999.
func DayRange(t time.Time) (from, to time.Time) {
	y, m, d := t.UTC().Date()
	from = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	to = from.Add(24*time.Hour - time.Millisecond)
	return from, to
}
