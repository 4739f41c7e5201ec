package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/SourajeetOfficial/eventX-Event-Management-System/internal/app"
	"github.com/SourajeetOfficial/eventX-Event-Management-System/internal/domain"
)

// AccountService is the slice of the user service the auth endpoints need.
type AccountService interface {
	Signup(ctx context.Context, in app.SignupInput) (domain.User, error)
	Login(ctx context.Context, email, password string) (string, domain.User, error)
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(user domain.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}

// HandleSignup creates a new account.
func HandleSignup(svc AccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupRequest
		if !decodeBody(w, r, &req) {
			return
		}

		user, err := svc.Signup(r.Context(), app.SignupInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrEmailTaken):
				writeError(w, http.StatusConflict, codeEmailTaken, err.Error())
			case errors.Is(err, app.ErrNameRequired),
				errors.Is(err, app.ErrEmailRequired),
				errors.Is(err, app.ErrPasswordTooShort):
				writeError(w, http.StatusBadRequest, codeInvalidSignup, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, toUserResponse(user))
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// HandleLogin checks credentials and returns a bearer token.
func HandleLogin(svc AccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if !decodeBody(w, r, &req) {
			return
		}

		token, user, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidCredentials) {
				writeError(w, http.StatusUnauthorized, codeInvalidCredentials, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, loginResponse{
			Token: token,
			User:  toUserResponse(user),
		})
	}
}
