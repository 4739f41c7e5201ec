package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SourajeetOfficial/eventX-Event-Management-System/internal/app"
	"github.com/SourajeetOfficial/eventX-Event-Management-System/internal/auth"
	"github.com/SourajeetOfficial/eventX-Event-Management-System/internal/clock"
	"github.com/SourajeetOfficial/eventX-Event-Management-System/internal/config"
	"github.com/SourajeetOfficial/eventX-Event-Management-System/internal/storage/postgres"
	transporthttp "github.com/SourajeetOfficial/eventX-Event-Management-System/internal/transport/http"
	"github.com/SourajeetOfficial/eventX-Event-Management-System/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "err", err)
		os.Exit(1)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("connect to db", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		logger.Error("db ping", "err", err)
		os.Exit(1)
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		logger.Error("apply migrations", "err", err)
		os.Exit(1)
	}

	clk := clock.NewSystem()
	tokens := auth.NewTokenIssuer([]byte(cfg.JWTSecret), cfg.TokenTTL, clk)

	userRepo := postgres.NewUserRepository(pool)
	eventRepo := postgres.NewEventRepository(pool)
	regRepo := postgres.NewRegistrationRepository(pool)

	handler := transporthttp.NewRouter(transporthttp.RouterConfig{
		Users:         app.NewUserService(userRepo, tokens, clk),
		Events:        app.NewEventService(eventRepo, clk),
		Registrations: app.NewRegistrationService(regRepo, clk),
		Availability:  app.NewAvailabilityService(eventRepo),
		Tokens:        tokens,
		Logger:        logger,
		CORSOrigins:   cfg.CORSOrigins,
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	logger.Info("api listening", "port", cfg.Port)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server shutdown error", "err", err)
	}
	logger.Info("server stopped")
}
