package http

import (
	"log/slog"
	"net/http"

	"github.com/SourajeetOfficial/eventX-Event-Management-System/internal/app"
	"github.com/SourajeetOfficial/eventX-Event-Management-System/internal/auth"
	"github.com/go-chi/chi/v5"
)

// RouterConfig carries the services and middleware inputs the router wires up.
type RouterConfig struct {
	Users         *app.UserService
	Events        *app.EventService
	Registrations *app.RegistrationService
	Availability  *app.AvailabilityService
	Tokens        *auth.TokenIssuer
	Logger        *slog.Logger
	CORSOrigins   []string
}

// NewRouter builds the full route tree: public reads, authenticated writes,
// and admin-gated reporting.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(func(next http.Handler) http.Handler {
		return RequestLogger(next, cfg.Logger)
	})
	r.Use(func(next http.Handler) http.Handler {
		return CORS(cfg.CORSOrigins, next)
	})
	r.NotFound(NotFoundHandler().ServeHTTP)

	r.Get("/health", HealthHandler)
	r.Post("/auth/signup", HandleSignup(cfg.Users))
	r.Post("/auth/login", HandleLogin(cfg.Users))

	r.Get("/events", HandleListEvents(cfg.Events))
	r.Get("/events/{eventID}", HandleGetEvent(cfg.Events))
	r.Get("/events/{eventID}/availability", HandleAvailability(cfg.Availability))

	r.Group(func(pr chi.Router) {
		pr.Use(Authenticate(cfg.Tokens))

		pr.Post("/events", HandleCreateEvent(cfg.Events))
		pr.Patch("/events/{eventID}", HandleUpdateEvent(cfg.Events))
		pr.Delete("/events/{eventID}", HandleDeleteEvent(cfg.Events))

		pr.Post("/events/{eventID}/register", HandleRegister(cfg.Registrations))
		pr.Get("/events/{eventID}/registration-status", HandleRegistrationStatus(cfg.Registrations))
		pr.Get("/me/registrations", HandleMyRegistrations(cfg.Registrations))
		pr.Post("/registrations/{registrationID}/cancel", HandleCancelRegistration(cfg.Registrations))

		pr.Group(func(ar chi.Router) {
			ar.Use(RequireAdmin)
			ar.Get("/events/{eventID}/registrations", HandleEventRegistrations(cfg.Registrations))
			ar.Patch("/registrations/{registrationID}/status", HandleSetRegistrationStatus(cfg.Registrations))
			ar.Get("/admin/occupancy", HandleOccupancyReport(cfg.Events))
		})
	})

	return r
}
