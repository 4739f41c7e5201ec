package http

import (
	"context"
	"net/http"
	"time"

	"github.com/SourajeetOfficial/eventX-Event-Management-System/internal/app"
	"github.com/SourajeetOfficial/eventX-Event-Management-System/internal/domain"
	"github.com/go-chi/chi/v5"
)

// RegistrationLifecycle is the slice of the registration service the
// registration endpoints need.
type RegistrationLifecycle interface {
	Register(ctx context.Context, userID, eventID string) (domain.Registration, error)
	Cancel(ctx context.Context, registrationID, callerID string, callerRole domain.Role) (domain.Registration, error)
	SetStatus(ctx context.Context, registrationID, status string) (domain.Registration, error)
	CheckStatus(ctx context.Context, userID, eventID string) (app.RegistrationStatusResult, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Registration, error)
	ListByEvent(ctx context.Context, eventID string) ([]domain.Registration, error)
}

type registrationResponse struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	EventID          string    `json:"event_id"`
	Status           string    `json:"status"`
	RegistrationDate time.Time `json:"registration_date"`
}

func toRegistrationResponse(reg domain.Registration) registrationResponse {
	return registrationResponse{
		ID:               reg.ID,
		UserID:           reg.UserID,
		EventID:          reg.EventID,
		Status:           string(reg.Status),
		RegistrationDate: reg.RegistrationDate,
	}
}

func toRegistrationList(regs []domain.Registration) []registrationResponse {
	out := make([]registrationResponse, 0, len(regs))
	for _, reg := range regs {
		out = append(out, toRegistrationResponse(reg))
	}
	return out
}

// HandleRegister returns an HTTP handler registering the caller for an event.
func HandleRegister(svc RegistrationLifecycle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identityFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing bearer token")
			return
		}
		eventID := chi.URLParam(r, "eventID")

		reg, err := svc.Register(r.Context(), id.UserID, eventID)
		if err != nil {
			switch err {
			case domain.ErrEventNotFound:
				writeError(w, http.StatusNotFound, codeEventNotFound, err.Error())
			case domain.ErrInvalidID:
				writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
			case domain.ErrAlreadyRegistered:
				writeError(w, http.StatusConflict, codeAlreadyRegistered, err.Error())
			case domain.ErrEventFull:
				writeError(w, http.StatusConflict, codeEventFull, err.Error())
			case domain.ErrEventNotOpen:
				writeError(w, http.StatusConflict, codeEventNotOpen, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, toRegistrationResponse(reg))
	}
}

// HandleCancelRegistration returns an HTTP handler cancelling a registration.
// Owners cancel their own; admins cancel any.
func HandleCancelRegistration(svc RegistrationLifecycle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identityFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing bearer token")
			return
		}
		registrationID := chi.URLParam(r, "registrationID")

		reg, err := svc.Cancel(r.Context(), registrationID, id.UserID, id.Role)
		if err != nil {
			switch err {
			case domain.ErrRegistrationNotFound:
				writeError(w, http.StatusNotFound, codeRegistrationNotFound, err.Error())
			case domain.ErrInvalidID:
				writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
			case domain.ErrForbidden:
				writeError(w, http.StatusForbidden, codeForbidden, err.Error())
			case domain.ErrAlreadyCancelled:
				writeError(w, http.StatusConflict, codeAlreadyCancelled, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusOK, toRegistrationResponse(reg))
	}
}

type setStatusRequest struct {
	Status string `json:"status"`
}

// HandleSetRegistrationStatus returns the admin-only status override handler.
func HandleSetRegistrationStatus(svc RegistrationLifecycle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		registrationID := chi.URLParam(r, "registrationID")

		var req setStatusRequest
		if !decodeBody(w, r, &req) {
			return
		}

		reg, err := svc.SetStatus(r.Context(), registrationID, req.Status)
		if err != nil {
			switch err {
			case domain.ErrInvalidStatus:
				writeError(w, http.StatusBadRequest, codeInvalidStatus, err.Error())
			case domain.ErrInvalidID:
				writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
			case domain.ErrRegistrationNotFound:
				writeError(w, http.StatusNotFound, codeRegistrationNotFound, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusOK, toRegistrationResponse(reg))
	}
}

type registrationStatusResponse struct {
	Registered       bool       `json:"registered"`
	Status           string     `json:"status,omitempty"`
	RegistrationID   string     `json:"registration_id,omitempty"`
	RegistrationDate *time.Time `json:"registration_date,omitempty"`
}

// HandleRegistrationStatus reports the caller's standing for an event.
func HandleRegistrationStatus(svc RegistrationLifecycle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identityFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing bearer token")
			return
		}
		eventID := chi.URLParam(r, "eventID")

		res, err := svc.CheckStatus(r.Context(), id.UserID, eventID)
		if err != nil {
			switch err {
			case domain.ErrInvalidID:
				writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		resp := registrationStatusResponse{
			Registered:     res.Registered,
			Status:         string(res.Status),
			RegistrationID: res.RegistrationID,
		}
		if res.RegistrationID != "" {
			date := res.RegistrationDate
			resp.RegistrationDate = &date
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleMyRegistrations lists the caller's registrations, most recent first.
func HandleMyRegistrations(svc RegistrationLifecycle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identityFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing bearer token")
			return
		}

		regs, err := svc.ListByUser(r.Context(), id.UserID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, toRegistrationList(regs))
	}
}

// HandleEventRegistrations lists an event's registrations. Admin-only; the
// router applies RequireAdmin.
func HandleEventRegistrations(svc RegistrationLifecycle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID := chi.URLParam(r, "eventID")

		regs, err := svc.ListByEvent(r.Context(), eventID)
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
		writeJSON(w, http.StatusOK, toRegistrationList(regs))
	}
}
