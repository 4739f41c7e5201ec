package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/SourajeetOfficial/eventX-Event-Management-System/internal/app"
	"github.com/SourajeetOfficial/eventX-Event-Management-System/internal/domain"
	"github.com/go-chi/chi/v5"
)

// SeatLedger is the capacity-ledger slice the availability endpoint needs.
type SeatLedger interface {
	Availability(ctx context.Context, eventID string) (app.Availability, error)
	HasAvailableSeats(ctx context.Context, eventID string, requested int) (app.SeatCheck, error)
}

type availabilityResponse struct {
	TotalSeats     int     `json:"total_seats"`
	AvailableSeats int     `json:"available_seats"`
	OccupancyRate  float64 `json:"occupancy_rate"`
}

type seatCheckResponse struct {
	OK             bool   `json:"ok"`
	AvailableSeats int    `json:"available_seats"`
	Message        string `json:"message"`
}

// HandleAvailability reports seat totals for an event. With a `requested`
// query parameter it instead answers whether that many seats are free.
func HandleAvailability(svc SeatLedger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID := chi.URLParam(r, "eventID")

		if raw := r.URL.Query().Get("requested"); raw != "" {
			requested, err := strconv.Atoi(raw)
			if err != nil || requested < 1 {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "requested must be a positive integer")
				return
			}
			check, err := svc.HasAvailableSeats(r.Context(), eventID, requested)
			if err != nil {
				writeAvailabilityError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, seatCheckResponse{
				OK:             check.OK,
				AvailableSeats: check.AvailableSeats,
				Message:        check.Message,
			})
			return
		}

		avail, err := svc.Availability(r.Context(), eventID)
		if err != nil {
			writeAvailabilityError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, availabilityResponse{
			TotalSeats:     avail.TotalSeats,
			AvailableSeats: avail.AvailableSeats,
			OccupancyRate:  avail.OccupancyRate,
		})
	}
}

func writeAvailabilityError(w http.ResponseWriter, err error) {
	switch err {
	case domain.ErrEventNotFound:
		writeError(w, http.StatusNotFound, codeEventNotFound, err.Error())
	case domain.ErrInvalidID:
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
