package service

import (
	"context"
	"fmt"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

// ExportService assembles a full flat export of all trips and destinations.
type ExportService struct {
	uow repo.UnitOfWork
}

// NewExportService constructs an ExportService backed by the provided UnitOfWork.
func NewExportService(uow repo.UnitOfWork) *ExportService {
	return &ExportService{uow: uow}
}

// Export returns one ExportRow per trip/destination pair.
// Trips with no destinations contribute one row with empty destination fields.
// Rows follow the trip listing order, then each trip's destination order.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	var rows []domain.ExportRow
	err := s.uow.Do(ctx, func(ctx context.Context, r repo.Repos) error {
		trips, err := r.Trips.List(ctx, domain.TripFilter{})
		if err != nil {
			return err
		}
		byTrip, err := r.Destinations.ListByTrips(ctx, tripIDs(trips))
		if err != nil {
			return err
		}

		rows = make([]domain.ExportRow, 0, len(trips))
		for _, t := range trips {
			base := domain.ExportRow{
				TripID:           t.ID.String(),
				TripName:         t.Name,
				TripParticipants: t.Participants,
				TripStartDate:    t.StartDate,
				TripEndDate:      t.EndDate,
			}
			dests := byTrip[t.ID]
			if len(dests) == 0 {
				rows = append(rows, base)
				continue
			}
			for _, d := range dests {
				row := base
				row.DestinationID = d.ID.String()
				row.DestinationName = d.Name
				row.DestinationActivities = d.Activities
				row.DestinationStartDate = &d.StartDate
				row.DestinationEndDate = &d.EndDate
				rows = append(rows, row)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	return rows, nil
}
