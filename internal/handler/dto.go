package handler

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/internal/domain"
)

// flexTime accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
// Dates are read as UTC midnight.
type flexTime struct {
	time.Time
}

func (f *flexTime) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		f.Time = t.UTC()
		return nil
	}
	var d openapi_types.Date
	if err := d.UnmarshalText([]byte(s)); err != nil {
		return fmt.Errorf("invalid date %q: want RFC 3339 or YYYY-MM-DD", s)
	}
	f.Time = d.Time
	return nil
}

func (f *flexTime) ptr() *time.Time {
	if f == nil {
		return nil
	}
	t := f.Time
	return &t
}

// refRequest points at a related entity. Only refs whose id parses as a
// UUID are resolved; name-only refs are accepted and ignored.
type refRequest struct {
	ID   *string `json:"id"`
	Name string  `json:"name,omitempty"`
}

func toRefs(in []refRequest) []domain.Ref {
	refs := make([]domain.Ref, 0, len(in))
	for _, r := range in {
		ref := domain.Ref{Name: r.Name}
		if r.ID != nil {
			if id, err := uuid.Parse(*r.ID); err == nil {
				ref.ID = &id
			}
		}
		refs = append(refs, ref)
	}
	return refs
}

// --- trips -------------------------------------------------------------------

type createTripRequest struct {
	Name         string       `json:"name" validate:"required"`
	Description  string       `json:"description"`
	Participants string       `json:"participants"`
	Image        string       `json:"image"`
	StartDate    flexTime     `json:"startDate" validate:"required"`
	EndDate      flexTime     `json:"endDate" validate:"required"`
	Destinations []refRequest `json:"destinations"`
}

func (b createTripRequest) toDomain() (domain.Trip, []domain.Ref) {
	return domain.Trip{
		Name:         b.Name,
		Description:  b.Description,
		Participants: b.Participants,
		Image:        b.Image,
		StartDate:    b.StartDate.Time,
		EndDate:      b.EndDate.Time,
	}, toRefs(b.Destinations)
}

// updateTripRequest is a partial update: absent fields keep their value and
// an absent destinations list leaves the associations alone.
type updateTripRequest struct {
	Name         *string       `json:"name"`
	Description  *string       `json:"description"`
	Participants *string       `json:"participants"`
	Image        *string       `json:"image"`
	StartDate    *flexTime     `json:"startDate"`
	EndDate      *flexTime     `json:"endDate"`
	Destinations *[]refRequest `json:"destinations"`
}

func (b updateTripRequest) toPatch() domain.TripPatch {
	p := domain.TripPatch{
		Name:         b.Name,
		Description:  b.Description,
		Participants: b.Participants,
		Image:        b.Image,
		StartDate:    b.StartDate.ptr(),
		EndDate:      b.EndDate.ptr(),
	}
	if b.Destinations != nil {
		refs := toRefs(*b.Destinations)
		p.Destinations = &refs
	}
	return p
}

type linkDestinationsRequest struct {
	Destinations []string `json:"destinations" validate:"required"`
}

type unlinkDestinationsRequest struct {
	DestinationIDs []string `json:"destinationIds"`
}

type tripSummary struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Participants string    `json:"participants"`
	Image        string    `json:"image"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type tripResponse struct {
	tripSummary
	Destinations []destinationSummary `json:"destinations"`
}

func toTripSummary(t domain.Trip) tripSummary {
	return tripSummary{
		ID:           t.ID,
		Name:         t.Name,
		Description:  t.Description,
		Participants: t.Participants,
		Image:        t.Image,
		StartDate:    t.StartDate,
		EndDate:      t.EndDate,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func toTripSummaries(trips []domain.Trip) []tripSummary {
	out := make([]tripSummary, len(trips))
	for i, t := range trips {
		out[i] = toTripSummary(t)
	}
	return out
}

func toTripResponse(t domain.Trip) tripResponse {
	return tripResponse{
		tripSummary:  toTripSummary(t),
		Destinations: toDestinationSummaries(t.Destinations),
	}
}

// --- destinations ------------------------------------------------------------

// destinationRequest serves both POST and PUT. On PUT, absent optional text
// fields keep their stored value; name, dates and trips are always required.
type destinationRequest struct {
	Name        string       `json:"name" validate:"required"`
	Description *string      `json:"description"`
	Activities  *string      `json:"activities"`
	Photos      *string      `json:"photos"`
	StartDate   flexTime     `json:"startDate" validate:"required"`
	EndDate     flexTime     `json:"endDate" validate:"required"`
	Trips       []refRequest `json:"trips" validate:"required,min=1"`
}

func (b destinationRequest) toDomain() (domain.Destination, []domain.Ref) {
	d := domain.Destination{
		Name:      b.Name,
		StartDate: b.StartDate.Time,
		EndDate:   b.EndDate.Time,
	}
	if b.Description != nil {
		d.Description = *b.Description
	}
	if b.Activities != nil {
		d.Activities = *b.Activities
	}
	if b.Photos != nil {
		d.Photos = *b.Photos
	}
	return d, toRefs(b.Trips)
}

func (b destinationRequest) toPatch() domain.DestinationPatch {
	refs := toRefs(b.Trips)
	return domain.DestinationPatch{
		Name:        &b.Name,
		Description: b.Description,
		Activities:  b.Activities,
		Photos:      b.Photos,
		StartDate:   &b.StartDate.Time,
		EndDate:     &b.EndDate.Time,
		Trips:       &refs,
	}
}

type destinationSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Activities  string    `json:"activities"`
	Photos      string    `json:"photos"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type destinationResponse struct {
	destinationSummary
	Trips   []tripSummary    `json:"trips"`
	Weather *weatherResponse `json:"weather,omitempty"`
	Country *countryResponse `json:"country,omitempty"`
}

type weatherResponse struct {
	City        string  `json:"city"`
	CountryCode string  `json:"countryCode"`
	Summary     string  `json:"summary"`
	Description string  `json:"description"`
	TempC       float64 `json:"tempC"`
	FeelsLikeC  float64 `json:"feelsLikeC"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
}

type countryResponse struct {
	Name      string `json:"name"`
	ISO2      string `json:"iso2"`
	ISO3      string `json:"iso3"`
	Capital   string `json:"capital"`
	Currency  string `json:"currency"`
	Native    string `json:"native"`
	Region    string `json:"region"`
	Subregion string `json:"subregion"`
	Emoji     string `json:"emoji"`
	PhoneCode string `json:"phoneCode"`
}

func toDestinationSummary(d domain.Destination) destinationSummary {
	return destinationSummary{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Activities:  d.Activities,
		Photos:      d.Photos,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func toDestinationSummaries(dests []domain.Destination) []destinationSummary {
	out := make([]destinationSummary, len(dests))
	for i, d := range dests {
		out[i] = toDestinationSummary(d)
	}
	return out
}

func toDestinationResponse(d domain.Destination) destinationResponse {
	return destinationResponse{
		destinationSummary: toDestinationSummary(d),
		Trips:              toTripSummaries(d.Trips),
	}
}

func toEnrichedResponse(e domain.Enriched) destinationResponse {
	resp := toDestinationResponse(e.Destination)
	if e.Weather != nil {
		w := weatherResponse(*e.Weather)
		resp.Weather = &w
	}
	if e.Country != nil {
		c := countryResponse(*e.Country)
		resp.Country = &c
	}
	return resp
}
