package http

import (
	"context"
	"net/http"
	"time"

	"github.com/SourajeetOfficial/eventX-Event-Management-System/internal/app"
	"github.com/SourajeetOfficial/eventX-Event-Management-System/internal/domain"
	"github.com/go-chi/chi/v5"
)

// EventManager is the slice of the event service the event endpoints need.
type EventManager interface {
	Create(ctx context.Context, in app.CreateEventInput) (domain.Event, error)
	Get(ctx context.Context, id string) (domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	Update(ctx context.Context, in app.UpdateEventInput) (domain.Event, error)
	Delete(ctx context.Context, eventID, callerID string, callerRole domain.Role) error
	OccupancyReport(ctx context.Context) ([]app.EventOccupancy, error)
}

type eventResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	TotalSeats  int       `json:"total_seats"`
	Status      string    `json:"status"`
	OrganizerID string    `json:"organizer_id"`
}

func toEventResponse(event domain.Event) eventResponse {
	return eventResponse{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		Date:        event.Date,
		Location:    event.Location,
		TotalSeats:  event.TotalSeats,
		Status:      string(event.Status),
		OrganizerID: event.OrganizerID,
	}
}

type createEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	TotalSeats  int    `json:"total_seats"`
}

// HandleCreateEvent returns an HTTP handler creating an event owned by the
// caller.
func HandleCreateEvent(svc EventManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identityFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing bearer token")
			return
		}

		var req createEventRequest
		if !decodeBody(w, r, &req) {
			return
		}
		date, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidDate, "invalid date format, expected RFC 3339")
			return
		}

		event, err := svc.Create(r.Context(), app.CreateEventInput{
			Title:       req.Title,
			Description: req.Description,
			Date:        date,
			Location:    req.Location,
			TotalSeats:  req.TotalSeats,
			OrganizerID: id.UserID,
		})
		if err != nil {
			switch err {
			case domain.ErrTitleRequired:
				writeError(w, http.StatusBadRequest, codeTitleRequired, err.Error())
			case domain.ErrInvalidCapacity:
				writeError(w, http.StatusBadRequest, codeInvalidCapacity, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, toEventResponse(event))
	}
}

// HandleListEvents lists all events.
func HandleListEvents(svc EventManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := svc.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}
		resp := make([]eventResponse, 0, len(events))
		for _, event := range events {
			resp = append(resp, toEventResponse(event))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleGetEvent returns a single event.
func HandleGetEvent(svc EventManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		event, err := svc.Get(r.Context(), chi.URLParam(r, "eventID"))
		if err != nil {
			switch err {
			case domain.ErrEventNotFound:
				writeError(w, http.StatusNotFound, codeEventNotFound, err.Error())
			case domain.ErrInvalidID:
				writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}
		writeJSON(w, http.StatusOK, toEventResponse(event))
	}
}

type updateEventRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Location    *string `json:"location"`
	TotalSeats  *int    `json:"total_seats"`
	Status      *string `json:"status"`
}

// HandleUpdateEvent applies a partial update. Capacity reductions below the
// confirmed-registration count are rejected with a conflict.
func HandleUpdateEvent(svc EventManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identityFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing bearer token")
			return
		}

		var req updateEventRequest
		if !decodeBody(w, r, &req) {
			return
		}

		in := app.UpdateEventInput{
			EventID:     chi.URLParam(r, "eventID"),
			CallerID:    id.UserID,
			CallerRole:  id.Role,
			Title:       req.Title,
			Description: req.Description,
			Location:    req.Location,
			TotalSeats:  req.TotalSeats,
			Status:      req.Status,
		}
		if req.Date != nil {
			date, err := time.Parse(time.RFC3339, *req.Date)
			if err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidDate, "invalid date format, expected RFC 3339")
				return
			}
			in.Date = &date
		}

		event, err := svc.Update(r.Context(), in)
		if err != nil {
			switch err {
			case domain.ErrEventNotFound:
				writeError(w, http.StatusNotFound, codeEventNotFound, err.Error())
			case domain.ErrInvalidID:
				writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
			case domain.ErrForbidden:
				writeError(w, http.StatusForbidden, codeForbidden, err.Error())
			case domain.ErrCapacityConflict:
				writeError(w, http.StatusConflict, codeCapacityConflict, err.Error())
			case domain.ErrInvalidCapacity:
				writeError(w, http.StatusBadRequest, codeInvalidCapacity, err.Error())
			case domain.ErrInvalidStatus:
				writeError(w, http.StatusBadRequest, codeInvalidStatus, err.Error())
			case domain.ErrTitleRequired:
				writeError(w, http.StatusBadRequest, codeTitleRequired, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusOK, toEventResponse(event))
	}
}

// HandleDeleteEvent deletes an event with no registration history.
func HandleDeleteEvent(svc EventManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identityFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing bearer token")
			return
		}

		err := svc.Delete(r.Context(), chi.URLParam(r, "eventID"), id.UserID, id.Role)
		if err != nil {
			switch err {
			case domain.ErrEventNotFound:
				writeError(w, http.StatusNotFound, codeEventNotFound, err.Error())
			case domain.ErrInvalidID:
				writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
			case domain.ErrForbidden:
				writeError(w, http.StatusForbidden, codeForbidden, err.Error())
			case domain.ErrHasRegistrations:
				writeError(w, http.StatusConflict, codeHasRegistrations, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

type occupancyResponse struct {
	EventID        string  `json:"event_id"`
	Title          string  `json:"title"`
	Status         string  `json:"status"`
	TotalSeats     int     `json:"total_seats"`
	ConfirmedCount int     `json:"confirmed_count"`
	AvailableSeats int     `json:"available_seats"`
	OccupancyRate  float64 `json:"occupancy_rate"`
}

// HandleOccupancyReport returns the admin seat-usage report.
func HandleOccupancyReport(svc EventManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := svc.OccupancyReport(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}
		resp := make([]occupancyResponse, 0, len(report))
		for _, row := range report {
			resp = append(resp, occupancyResponse{
				EventID:        row.EventID,
				Title:          row.Title,
				Status:         string(row.Status),
				TotalSeats:     row.TotalSeats,
				ConfirmedCount: row.ConfirmedCount,
				AvailableSeats: row.AvailableSeats,
				OccupancyRate:  row.OccupancyRate,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
