package domain

import (
	"time"

	"github.com/google/uuid"
)

// Destination is a place visited on one or more trips.
// A destination is never persisted without at least one trip.
type Destination struct {
	ID          uuid.UUID
	Name        string
	Description string
	Activities  string
	Photos      string
	StartDate   time.Time
	EndDate     time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Trips is populated only by reads that ask for it.
	Trips []Trip
}

// DestinationPatch carries a partial update. Nil fields are left untouched.
// A non-nil Trips replaces the whole association set.
type DestinationPatch struct {
	Name        *string
	Description *string
	Activities  *string
	Photos      *string
	StartDate   *time.Time
	EndDate     *time.Time
	Trips       *[]Ref
}

// Apply overwrites the scalar fields of d that are set in p.
func (p DestinationPatch) Apply(d *Destination) {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.Activities != nil {
		d.Activities = *p.Activities
	}
	if p.Photos != nil {
		d.Photos = *p.Photos
	}
	if p.StartDate != nil {
		d.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		d.EndDate = *p.EndDate
	}
}

// DestinationFilter narrows a destination listing.
type DestinationFilter struct {
	// Name matches as a case-insensitive substring.
	Name string
}

// TripIDs returns the IDs of the loaded trips in order.
func (d Destination) TripIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(d.Trips))
	for i, t := range d.Trips {
		ids[i] = t.ID
	}
	return ids
}

// Enriched is a destination decorated with optional third-party data.
// Weather and Country are nil when the provider was unavailable.
type Enriched struct {
	Destination
	Weather *Weather
	Country *Country
}

// Weather is the current conditions at a destination.
type Weather struct {
	City        string
	CountryCode string
	Summary     string
	Description string
	TempC       float64
	FeelsLikeC  float64
	Humidity    int
	WindSpeed   float64
}

// Country describes the country a destination lies in.
type Country struct {
	Name      string
	ISO2      string
	ISO3      string
	Capital   string
	Currency  string
	Native    string
	Region    string
	Subregion string
	Emoji     string
	PhoneCode string
}
