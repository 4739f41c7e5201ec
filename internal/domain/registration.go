package domain

import "time"

type RegistrationStatus string

const (
	RegistrationStatusConfirmed  RegistrationStatus = "confirmed"
	RegistrationStatusCancelled  RegistrationStatus = "cancelled"
	RegistrationStatusWaitlisted RegistrationStatus = "waitlisted"
)

// ValidRegistrationStatus reports whether s is a recognised registration status.
func ValidRegistrationStatus(s string) bool {
	switch RegistrationStatus(s) {
	case RegistrationStatusConfirmed, RegistrationStatusCancelled, RegistrationStatusWaitlisted:
		return true
	}
	return false
}

// Registration is the single mutable record tying one user to one event.
// A user cycling register/cancel/register keeps the same record; cancellation
// flips the status and re-registration flips it back with a fresh
// RegistrationDate.
type Registration struct {
	ID               string
	UserID           string
	EventID          string
	Status           RegistrationStatus
	RegistrationDate time.Time
	CreatedAt        time.Time
}

// HoldsSeat reports whether the registration occupies a seat.
func (r Registration) HoldsSeat() bool {
	return r.Status == RegistrationStatusConfirmed
}
