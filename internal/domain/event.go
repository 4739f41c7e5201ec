package domain

import "time"

type EventStatus string

const (
	EventStatusScheduled EventStatus = "scheduled"
	EventStatusOngoing   EventStatus = "ongoing"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

// ValidEventStatus reports whether s is a recognised event status.
func ValidEventStatus(s string) bool {
	switch EventStatus(s) {
	case EventStatusScheduled, EventStatusOngoing, EventStatusCompleted, EventStatusCancelled:
		return true
	}
	return false
}

// Event represents a seat-limited event owned by an organizer.
type Event struct {
	ID          string
	Title       string
	Description string
	Date        time.Time
	Location    string
	TotalSeats  int
	Status      EventStatus
	OrganizerID string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AcceptsRegistrations reports whether new registrations may be taken.
// Completed and cancelled events are closed.
func (e Event) AcceptsRegistrations() bool {
	return e.Status == EventStatusScheduled || e.Status == EventStatusOngoing
}
