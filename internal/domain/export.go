package domain

import "time"

// ExportRow is a single row in the full itinerary export.
// It is a flat, denormalized view: one row per trip/destination pair, with
// trip fields repeated for every destination on that trip. Trips with no
// destinations yield one row with zero values for all destination fields.
type ExportRow struct {
	// Trip fields, repeated for every destination on the trip.
	TripID           string
	TripName         string
	TripParticipants string
	TripStartDate    time.Time
	TripEndDate      time.Time

	// Destination fields, zero values when the trip has no destinations.
	DestinationID         string
	DestinationName       string
	DestinationActivities string
	DestinationStartDate  *time.Time
	DestinationEndDate    *time.Time
}
