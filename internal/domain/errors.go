package domain

import "errors"

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrAlreadyRegistered    = errors.New("already registered for this event")
	ErrAlreadyCancelled     = errors.New("registration already cancelled")
	ErrEventFull            = errors.New("event is full")
	ErrEventNotOpen         = errors.New("event is not open for registration")
	ErrCapacityConflict     = errors.New("total seats cannot be below confirmed registrations")
	ErrHasRegistrations     = errors.New("event has existing registrations")
	ErrEmailTaken           = errors.New("email already in use")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrInvalidCapacity      = errors.New("invalid capacity")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrTitleRequired        = errors.New("event title required")
	ErrInvalidID            = errors.New("invalid id")
)
