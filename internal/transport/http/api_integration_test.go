package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SourajeetOfficial/eventX-Event-Management-System/internal/app"
	"github.com/SourajeetOfficial/eventX-Event-Management-System/internal/auth"
	"github.com/SourajeetOfficial/eventX-Event-Management-System/internal/clock"
	"github.com/SourajeetOfficial/eventX-Event-Management-System/internal/domain"
	"github.com/SourajeetOfficial/eventX-Event-Management-System/internal/storage/postgres"
	"github.com/SourajeetOfficial/eventX-Event-Management-System/internal/testutil"
	"github.com/jackc/pgx/v5/pgxpool"
)

func newTestAPI(t *testing.T) (http.Handler, *pgxpool.Pool, *auth.TokenIssuer) {
	t.Helper()
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	clk := clock.NewSystem()
	tokens := auth.NewTokenIssuer([]byte("integration-secret"), time.Hour, clk)

	eventRepo := postgres.NewEventRepository(pool)
	regRepo := postgres.NewRegistrationRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	router := NewRouter(RouterConfig{
		Users:         app.NewUserService(userRepo, tokens, clk),
		Events:        app.NewEventService(eventRepo, clk),
		Registrations: app.NewRegistrationService(regRepo, clk),
		Availability:  app.NewAvailabilityService(eventRepo),
		Tokens:        tokens,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		CORSOrigins:   []string{"*"},
	})
	return router, pool, tokens
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestRegistrationFlow_HTTPIntegration(t *testing.T) {
	router, _, _ := newTestAPI(t)

	// Sign up an organizer and an attendee, then log the attendee in.
	rec := doJSON(t, router, http.MethodPost, "/auth/signup", "", map[string]any{
		"name": "Olga", "email": "olga@example.com", "password": "organizer-pass",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("organizer signup: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/auth/signup", "", map[string]any{
		"name": "Alice", "email": "alice@example.com", "password": "attendee-pass",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("attendee signup: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	var organizerLogin, attendeeLogin loginResponse
	rec = doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]any{
		"email": "olga@example.com", "password": "organizer-pass",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("organizer login: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	decodeInto(t, rec, &organizerLogin)

	rec = doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]any{
		"email": "alice@example.com", "password": "attendee-pass",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("attendee login: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	decodeInto(t, rec, &attendeeLogin)

	// Organizer opens a two-seat event.
	rec = doJSON(t, router, http.MethodPost, "/events", organizerLogin.Token, map[string]any{
		"title":       "Go Meetup",
		"date":        time.Now().Add(7 * 24 * time.Hour).UTC().Format(time.RFC3339),
		"total_seats": 2,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create event: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var event eventResponse
	decodeInto(t, rec, &event)

	// Attendee registers and takes a seat.
	rec = doJSON(t, router, http.MethodPost, "/events/"+event.ID+"/register", attendeeLogin.Token, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var reg registrationResponse
	decodeInto(t, rec, &reg)
	if reg.Status != string(domain.RegistrationStatusConfirmed) {
		t.Fatalf("expected confirmed registration, got %s", reg.Status)
	}

	rec = doJSON(t, router, http.MethodGet, "/events/"+event.ID+"/availability", "", nil)
	var avail availabilityResponse
	decodeInto(t, rec, &avail)
	if avail.AvailableSeats != 1 {
		t.Fatalf("expected 1 seat left, got %d", avail.AvailableSeats)
	}

	// A second attempt by the same user conflicts.
	rec = doJSON(t, router, http.MethodPost, "/events/"+event.ID+"/register", attendeeLogin.Token, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/events/"+event.ID+"/registration-status", attendeeLogin.Token, nil)
	var status registrationStatusResponse
	decodeInto(t, rec, &status)
	if !status.Registered || status.RegistrationID != reg.ID {
		t.Fatalf("unexpected status response: %+v", status)
	}

	// Cancelling frees the seat.
	rec = doJSON(t, router, http.MethodPost, "/registrations/"+reg.ID+"/cancel", attendeeLogin.Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("cancel: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/events/"+event.ID+"/availability", "", nil)
	decodeInto(t, rec, &avail)
	if avail.AvailableSeats != 2 {
		t.Fatalf("expected 2 seats after cancel, got %d", avail.AvailableSeats)
	}

	// Re-registering reuses the same registration row.
	rec = doJSON(t, router, http.MethodPost, "/events/"+event.ID+"/register", attendeeLogin.Token, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("re-register: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var reactivated registrationResponse
	decodeInto(t, rec, &reactivated)
	if reactivated.ID != reg.ID {
		t.Fatalf("expected reused registration %s, got %s", reg.ID, reactivated.ID)
	}
}

func TestAdminEndpoints_HTTPIntegration(t *testing.T) {
	router, pool, tokens := newTestAPI(t)
	ctx := context.Background()

	adminID := testutil.InsertUser(t, ctx, pool, "admin@example.com", domain.RoleAdmin)
	userID := testutil.InsertUser(t, ctx, pool, "bob@example.com", domain.RoleUser)
	eventID := testutil.InsertEvent(t, ctx, pool, adminID, "Conference", 10)
	regID := testutil.InsertRegistration(t, ctx, pool, userID, eventID, domain.RegistrationStatusConfirmed)

	adminToken, err := tokens.Issue(domain.User{ID: adminID, Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("issue admin token: %v", err)
	}
	userToken, err := tokens.Issue(domain.User{ID: userID, Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("issue user token: %v", err)
	}

	// Regular users cannot reach admin routes.
	rec := doJSON(t, router, http.MethodGet, "/admin/occupancy", userToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/admin/occupancy", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("occupancy: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var report []occupancyResponse
	decodeInto(t, rec, &report)
	if len(report) != 1 || report[0].ConfirmedCount != 1 || report[0].AvailableSeats != 9 {
		t.Fatalf("unexpected report: %+v", report)
	}

	// Admin moves the registration to the waitlist.
	rec = doJSON(t, router, http.MethodPatch, "/registrations/"+regID+"/status", adminToken, map[string]any{
		"status": "waitlisted",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("set status: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/events/"+eventID+"/registrations", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list registrations: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var regs []registrationResponse
	decodeInto(t, rec, &regs)
	if len(regs) != 1 || regs[0].Status != string(domain.RegistrationStatusWaitlisted) {
		t.Fatalf("unexpected registrations: %+v", regs)
	}

	// The waitlisted seat is no longer counted as occupied.
	rec = doJSON(t, router, http.MethodGet, "/events/"+eventID+"/availability", "", nil)
	var avail availabilityResponse
	decodeInto(t, rec, &avail)
	if avail.AvailableSeats != 10 {
		t.Fatalf("expected 10 available seats, got %d", avail.AvailableSeats)
	}
}
