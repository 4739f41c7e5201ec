package app

import (
	"context"
	"time"

	"github.com/SourajeetOfficial/eventX-Event-Management-System/internal/clock"
	"github.com/SourajeetOfficial/eventX-Event-Management-System/internal/domain"
	"github.com/google/uuid"
)

type RegistrationRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetEvent(ctx context.Context, eventID string) (domain.Event, error)
	GetEventForUpdate(ctx context.Context, eventID string) (domain.Event, error)
	FindByUserAndEvent(ctx context.Context, userID, eventID string) (*domain.Registration, error)
	FindByID(ctx context.Context, id string) (*domain.Registration, error)
	CountByEventAndStatus(ctx context.Context, eventID string, status domain.RegistrationStatus) (int, error)
	Create(ctx context.Context, reg domain.Registration) error
	Update(ctx context.Context, reg domain.Registration) error
	ListByUser(ctx context.Context, userID string) ([]domain.Registration, error)
	ListByEvent(ctx context.Context, eventID string) ([]domain.Registration, error)
}

// RegistrationService governs the registration state machine. Seat-affecting
// transitions run inside a transaction that locks the event row first, so the
// "count confirmed + create/activate" sequence is serialized per event and two
// racing requests cannot both take the last seat.
type RegistrationService struct {
	repo  RegistrationRepository
	clock clock.Clock
}

func NewRegistrationService(repo RegistrationRepository, clk clock.Clock) *RegistrationService {
	return &RegistrationService{
		repo:  repo,
		clock: clk,
	}
}

// Register confirms a seat for userID on eventID. A cancelled registration for
// the same pair is re-activated in place with a fresh RegistrationDate; a
// confirmed or waitlisted one fails with ErrAlreadyRegistered.
func (s *RegistrationService) Register(ctx context.Context, userID, eventID string) (domain.Registration, error) {
	now := s.clock.Now()
	var result domain.Registration

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		event, err := s.repo.GetEventForUpdate(txCtx, eventID)
		if err != nil {
			return err
		}
		if !event.AcceptsRegistrations() {
			return domain.ErrEventNotOpen
		}

		existing, err := s.repo.FindByUserAndEvent(txCtx, userID, eventID)
		if err != nil {
			return err
		}
		if existing != nil && existing.Status != domain.RegistrationStatusCancelled {
			return domain.ErrAlreadyRegistered
		}

		confirmed, err := s.repo.CountByEventAndStatus(txCtx, eventID, domain.RegistrationStatusConfirmed)
		if err != nil {
			return err
		}
		if event.TotalSeats-confirmed < 1 {
			return domain.ErrEventFull
		}

		if existing != nil {
			existing.Status = domain.RegistrationStatusConfirmed
			existing.RegistrationDate = now
			if err := s.repo.Update(txCtx, *existing); err != nil {
				return err
			}
			result = *existing
			return nil
		}

		reg := domain.Registration{
			ID:               uuid.NewString(),
			UserID:           userID,
			EventID:          eventID,
			Status:           domain.RegistrationStatusConfirmed,
			RegistrationDate: now,
			CreatedAt:        now,
		}
		if err := s.repo.Create(txCtx, reg); err != nil {
			return err
		}
		result = reg
		return nil
	})
	if err != nil {
		return domain.Registration{}, err
	}
	return result, nil
}

// Cancel releases the caller's seat. Only the owning user or an admin may
// cancel. The freed seat shows up on the next availability read; confirmed
// count is derived, so nothing is handed back explicitly.
func (s *RegistrationService) Cancel(ctx context.Context, registrationID, callerID string, callerRole domain.Role) (domain.Registration, error) {
	reg, err := s.repo.FindByID(ctx, registrationID)
	if err != nil {
		return domain.Registration{}, err
	}
	if reg == nil {
		return domain.Registration{}, domain.ErrRegistrationNotFound
	}
	if reg.UserID != callerID && callerRole != domain.RoleAdmin {
		return domain.Registration{}, domain.ErrForbidden
	}
	if reg.Status == domain.RegistrationStatusCancelled {
		return domain.Registration{}, domain.ErrAlreadyCancelled
	}

	reg.Status = domain.RegistrationStatusCancelled
	if err := s.repo.Update(ctx, *reg); err != nil {
		return domain.Registration{}, err
	}
	return *reg, nil
}

// SetStatus is the administrative override: any registration may be forced to
// any valid status, including waitlisted, which is reachable no other way.
// RegistrationDate is left untouched.
func (s *RegistrationService) SetStatus(ctx context.Context, registrationID, status string) (domain.Registration, error) {
	if !domain.ValidRegistrationStatus(status) {
		return domain.Registration{}, domain.ErrInvalidStatus
	}

	reg, err := s.repo.FindByID(ctx, registrationID)
	if err != nil {
		return domain.Registration{}, err
	}
	if reg == nil {
		return domain.Registration{}, domain.ErrRegistrationNotFound
	}

	reg.Status = domain.RegistrationStatus(status)
	if err := s.repo.Update(ctx, *reg); err != nil {
		return domain.Registration{}, err
	}
	return *reg, nil
}

type RegistrationStatusResult struct {
	Registered       bool
	Status           domain.RegistrationStatus
	RegistrationID   string
	RegistrationDate time.Time
}

// CheckStatus reports the caller's standing for an event. Registered is true
// only for a confirmed registration; a cancelled or waitlisted record still
// reports its status and identity.
func (s *RegistrationService) CheckStatus(ctx context.Context, userID, eventID string) (RegistrationStatusResult, error) {
	reg, err := s.repo.FindByUserAndEvent(ctx, userID, eventID)
	if err != nil {
		return RegistrationStatusResult{}, err
	}
	if reg == nil {
		return RegistrationStatusResult{}, nil
	}
	return RegistrationStatusResult{
		Registered:       reg.Status == domain.RegistrationStatusConfirmed,
		Status:           reg.Status,
		RegistrationID:   reg.ID,
		RegistrationDate: reg.RegistrationDate,
	}, nil
}

// ListByUser returns the user's registrations, most recent first.
func (s *RegistrationService) ListByUser(ctx context.Context, userID string) ([]domain.Registration, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListByEvent returns an event's registrations, most recent first. The
// transport layer gates this behind the admin role.
func (s *RegistrationService) ListByEvent(ctx context.Context, eventID string) ([]domain.Registration, error) {
	if _, err := s.repo.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return s.repo.ListByEvent(ctx, eventID)
}
