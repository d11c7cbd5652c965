package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/pkordes/trip-planner/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_name", "trip_participants", "trip_start_date", "trip_end_date",
	"destination_id", "destination_name", "destination_activities",
	"destination_start_date", "destination_end_date",
}

// exportRow is the JSON shape of one export line. Destination fields are
// omitted for trips without destinations.
type exportRow struct {
	TripID                string     `json:"tripId"`
	TripName              string     `json:"tripName"`
	TripParticipants      string     `json:"tripParticipants"`
	TripStartDate         time.Time  `json:"tripStartDate"`
	TripEndDate           time.Time  `json:"tripEndDate"`
	DestinationID         string     `json:"destinationId,omitempty"`
	DestinationName       string     `json:"destinationName,omitempty"`
	DestinationActivities string     `json:"destinationActivities,omitempty"`
	DestinationStartDate  *time.Time `json:"destinationStartDate,omitempty"`
	DestinationEndDate    *time.Time `json:"destinationEndDate,omitempty"`
}

// GetExport handles GET /export.
// It returns a flat table with one line per trip/destination pair.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "csv" {
		writeError(w, r, fmt.Errorf("%w: format must be csv or json", domain.ErrValidation), "")
		return
	}

	rows, err := s.export.Export(r.Context())
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	if format == "csv" {
		writeCSV(w, rows)
		return
	}
	out := make([]exportRow, len(rows))
	for i, row := range rows {
		out[i] = exportRow(row)
	}
	writeJSON(w, http.StatusOK, out)
}

// writeCSV encodes rows as CSV with a header line.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write(rowToCSVRecord(r))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="export.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// rowToCSVRecord encodes a domain.ExportRow as a flat string slice.
// Nil time pointers are encoded as empty strings.
func rowToCSVRecord(r domain.ExportRow) []string {
	return []string{
		r.TripID,
		r.TripName,
		r.TripParticipants,
		formatTime(r.TripStartDate),
		formatTime(r.TripEndDate),
		r.DestinationID,
		r.DestinationName,
		r.DestinationActivities,
		formatOptionalTime(r.DestinationStartDate),
		formatOptionalTime(r.DestinationEndDate),
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// formatOptionalTime returns the RFC3339 representation of t, or "" if t is nil.
func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}
