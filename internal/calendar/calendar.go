// Package calendar renders trips as iCalendar (RFC 5545) documents.
package calendar

import (
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/pkordes/trip-planner/internal/domain"
)

// ContentType is the media type of a rendered calendar.
const ContentType = "text/calendar; charset=utf-8"

const productID = "-//trip-planner//trip calendar//EN"

// Render writes a calendar holding a single event that spans the trip.
// The event UID is derived from the trip ID so re-imports update in place.
func Render(w io.Writer, trip domain.Trip, now time.Time) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)

	event := cal.AddEvent(trip.ID.String() + "@trip-planner")
	event.SetDtStampTime(now)
	if !trip.CreatedAt.IsZero() {
		event.SetCreatedTime(trip.CreatedAt)
		event.SetModifiedAt(trip.UpdatedAt)
	}
	event.SetStartAt(trip.StartDate)
	event.SetEndAt(trip.EndDate)
	event.SetSummary(trip.Name)
	event.SetLocation(trip.Name)
	if trip.Description != "" {
		event.SetDescription(trip.Description)
	}

	if err := cal.SerializeTo(w); err != nil {
		return fmt.Errorf("calendar.Render: %w", err)
	}
	return nil
}

// Filename returns the attachment name for a trip's calendar.
// Characters that would break a Content-Disposition header are replaced.
func Filename(trip domain.Trip) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r == '"', r == '\\', r == '/', r == ';', r < 0x20, r == 0x7f:
			return '_'
		}
		return r
	}, trip.Name)
	return "trip_" + name + ".ics"
}
