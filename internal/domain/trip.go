// Package domain contains the core data types for the trip planner.
// This package has no infrastructure dependencies and is imported by every
// other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is a planned journey. Its destinations are a many-to-many association;
// a trip may legitimately have none.
type Trip struct {
	ID           uuid.UUID
	Name         string
	Description  string
	Participants string
	Image        string
	StartDate    time.Time
	EndDate      time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Destinations is populated only by reads that ask for it.
	Destinations []Destination
}

// TripPatch carries a partial update. Nil fields are left untouched.
// A non-nil Destinations replaces the whole association set; an empty slice
// means "no destinations".
type TripPatch struct {
	Name         *string
	Description  *string
	Participants *string
	Image        *string
	StartDate    *time.Time
	EndDate      *time.Time
	Destinations *[]Ref
}

// Apply overwrites the scalar fields of t that are set in p.
// The identity and the association set are never touched here.
func (p TripPatch) Apply(t *Trip) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Participants != nil {
		t.Participants = *p.Participants
	}
	if p.Image != nil {
		t.Image = *p.Image
	}
	if p.StartDate != nil {
		t.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		t.EndDate = *p.EndDate
	}
}

// TripFilter narrows a trip listing. Zero values mean "no filter".
type TripFilter struct {
	// Name matches as a case-insensitive substring.
	Name string
	// Day, when set, keeps trips whose start date falls on that calendar day (UTC).
	Day *time.Time
}

// DestinationIDs returns the IDs of the loaded destinations in order.
func (t Trip) DestinationIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(t.Destinations))
	for i, d := range t.Destinations {
		ids[i] = d.ID
	}
	return ids
}
