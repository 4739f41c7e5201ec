package app

import (
	"context"
	"fmt"

	"github.com/SourajeetOfficial/eventX-Event-Management-System/internal/domain"
)

type AvailabilityRepository interface {
	GetByID(ctx context.Context, id string) (domain.Event, error)
	CountByStatus(ctx context.Context, eventID string, status domain.RegistrationStatus) (int, error)
}

// AvailabilityService is the capacity ledger: seat availability is always
// recomputed from the live confirmed count, never read from a stored counter,
// so it cannot drift from the registration rows it is derived from.
type AvailabilityService struct {
	repo AvailabilityRepository
}

func NewAvailabilityService(repo AvailabilityRepository) *AvailabilityService {
	return &AvailabilityService{repo: repo}
}

type Availability struct {
	TotalSeats     int
	AvailableSeats int
	OccupancyRate  float64
}

// Availability returns the seat totals for an event. OccupancyRate is a
// percentage; TotalSeats >= 1 is guaranteed by the event invariant, so the
// division is safe.
func (s *AvailabilityService) Availability(ctx context.Context, eventID string) (Availability, error) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return Availability{}, err
	}
	confirmed, err := s.repo.CountByStatus(ctx, eventID, domain.RegistrationStatusConfirmed)
	if err != nil {
		return Availability{}, err
	}
	return Availability{
		TotalSeats:     event.TotalSeats,
		AvailableSeats: event.TotalSeats - confirmed,
		OccupancyRate:  float64(confirmed) / float64(event.TotalSeats) * 100,
	}, nil
}

type SeatCheck struct {
	OK             bool
	AvailableSeats int
	Message        string
}

// HasAvailableSeats reports whether the event can take `requested` more
// confirmed registrations. Side-effect free; a passing check is advisory only,
// the registration transaction re-checks under lock.
func (s *AvailabilityService) HasAvailableSeats(ctx context.Context, eventID string, requested int) (SeatCheck, error) {
	if requested < 1 {
		requested = 1
	}
	avail, err := s.Availability(ctx, eventID)
	if err != nil {
		return SeatCheck{}, err
	}
	if avail.AvailableSeats < requested {
		return SeatCheck{
			OK:             false,
			AvailableSeats: avail.AvailableSeats,
			Message:        fmt.Sprintf("only %d of %d requested seats available", avail.AvailableSeats, requested),
		}, nil
	}
	return SeatCheck{
		OK:             true,
		AvailableSeats: avail.AvailableSeats,
		Message:        "seats available",
	}, nil
}
