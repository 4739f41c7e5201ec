package app

import (
	"context"
	"strings"
	"time"

	"github.com/SourajeetOfficial/eventX-Event-Management-System/internal/clock"
	"github.com/SourajeetOfficial/eventX-Event-Management-System/internal/domain"
	"github.com/google/uuid"
)

type EventRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	Create(ctx context.Context, event domain.Event) error
	GetByID(ctx context.Context, id string) (domain.Event, error)
	GetForUpdate(ctx context.Context, id string) (domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	Update(ctx context.Context, event domain.Event) error
	Delete(ctx context.Context, id string) error
	CountRegistrations(ctx context.Context, eventID string) (int, error)
	CountByStatus(ctx context.Context, eventID string, status domain.RegistrationStatus) (int, error)
}

type EventService struct {
	repo  EventRepository
	clock clock.Clock
}

func NewEventService(repo EventRepository, clk clock.Clock) *EventService {
	return &EventService{
		repo:  repo,
		clock: clk,
	}
}

type CreateEventInput struct {
	Title       string
	Description string
	Date        time.Time
	Location    string
	TotalSeats  int
	OrganizerID string
}

func (s *EventService) Create(ctx context.Context, in CreateEventInput) (domain.Event, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return domain.Event{}, domain.ErrTitleRequired
	}
	if in.TotalSeats < 1 {
		return domain.Event{}, domain.ErrInvalidCapacity
	}

	now := s.clock.Now()
	event := domain.Event{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
		Location:    in.Location,
		TotalSeats:  in.TotalSeats,
		Status:      domain.EventStatusScheduled,
		OrganizerID: in.OrganizerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

func (s *EventService) Get(ctx context.Context, id string) (domain.Event, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *EventService) List(ctx context.Context) ([]domain.Event, error) {
	return s.repo.List(ctx)
}

// UpdateEventInput carries optional field updates; nil means "leave as is".
type UpdateEventInput struct {
	EventID     string
	CallerID    string
	CallerRole  domain.Role
	Title       *string
	Description *string
	Date        *time.Time
	Location    *string
	TotalSeats  *int
	Status      *string
}

// Update applies a partial update. Shrinking TotalSeats below the current
// confirmed-registration count fails with ErrCapacityConflict; shrinking to
// exactly that count is allowed. The check runs under the event row lock so a
// concurrent registration cannot slip past it.
func (s *EventService) Update(ctx context.Context, in UpdateEventInput) (domain.Event, error) {
	if in.Status != nil && !domain.ValidEventStatus(*in.Status) {
		return domain.Event{}, domain.ErrInvalidStatus
	}
	if in.TotalSeats != nil && *in.TotalSeats < 1 {
		return domain.Event{}, domain.ErrInvalidCapacity
	}
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return domain.Event{}, domain.ErrTitleRequired
	}

	var result domain.Event
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		event, err := s.repo.GetForUpdate(txCtx, in.EventID)
		if err != nil {
			return err
		}
		if event.OrganizerID != in.CallerID && in.CallerRole != domain.RoleAdmin {
			return domain.ErrForbidden
		}

		if in.TotalSeats != nil && *in.TotalSeats != event.TotalSeats {
			confirmed, err := s.repo.CountByStatus(txCtx, in.EventID, domain.RegistrationStatusConfirmed)
			if err != nil {
				return err
			}
			if *in.TotalSeats < confirmed {
				return domain.ErrCapacityConflict
			}
			event.TotalSeats = *in.TotalSeats
		}
		if in.Title != nil {
			event.Title = strings.TrimSpace(*in.Title)
		}
		if in.Description != nil {
			event.Description = *in.Description
		}
		if in.Date != nil {
			event.Date = *in.Date
		}
		if in.Location != nil {
			event.Location = *in.Location
		}
		if in.Status != nil {
			event.Status = domain.EventStatus(*in.Status)
		}
		event.UpdatedAt = s.clock.Now()

		if err := s.repo.Update(txCtx, event); err != nil {
			return err
		}
		result = event
		return nil
	})
	if err != nil {
		return domain.Event{}, err
	}
	return result, nil
}

// Delete removes an event only when no registration row references it, in any
// status. Cancelled history blocks deletion too; the record of who registered
// is kept until it is empty.
func (s *EventService) Delete(ctx context.Context, eventID, callerID string, callerRole domain.Role) error {
	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		event, err := s.repo.GetForUpdate(txCtx, eventID)
		if err != nil {
			return err
		}
		if event.OrganizerID != callerID && callerRole != domain.RoleAdmin {
			return domain.ErrForbidden
		}

		count, err := s.repo.CountRegistrations(txCtx, eventID)
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrHasRegistrations
		}
		return s.repo.Delete(txCtx, eventID)
	})
}

type EventOccupancy struct {
	EventID        string
	Title          string
	Status         domain.EventStatus
	TotalSeats     int
	ConfirmedCount int
	AvailableSeats int
	OccupancyRate  float64
}

// OccupancyReport returns per-event seat usage across all events, for the
// admin dashboard.
func (s *EventService) OccupancyReport(ctx context.Context) ([]EventOccupancy, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	report := make([]EventOccupancy, 0, len(events))
	for _, event := range events {
		confirmed, err := s.repo.CountByStatus(ctx, event.ID, domain.RegistrationStatusConfirmed)
		if err != nil {
			return nil, err
		}
		report = append(report, EventOccupancy{
			EventID:        event.ID,
			Title:          event.Title,
			Status:         event.Status,
			TotalSeats:     event.TotalSeats,
			ConfirmedCount: confirmed,
			AvailableSeats: event.TotalSeats - confirmed,
			OccupancyRate:  float64(confirmed) / float64(event.TotalSeats) * 100,
		})
	}
	return report, nil
}
