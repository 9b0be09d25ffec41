package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"eventregistration/config"
	_ "eventregistration/docs"
	authadapter "eventregistration/internal/adapters/auth"
	"eventregistration/internal/adapters/token"
	deliveryhttp "eventregistration/internal/delivery/http"
	"eventregistration/internal/delivery/http/controllers"
	"eventregistration/internal/delivery/http/middleware"
	"eventregistration/internal/repository/postgres"
	"eventregistration/internal/services"
	"eventregistration/migrations"
)

const (
	serviceTimeout  = 5 * time.Second
	tokenExpiry     = 24 * time.Hour
	shutdownTimeout = 10 * time.Second
)

// @title Event Registration API
// @version 1.0
// @description Backend API for creating events and collecting participant registrations through shareable links.

// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT from /auth/login. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.NewLogger()

	startupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(startupCtx); err != nil {
		log.Fatalf("db ping: %v", err)
	}
	if err := migrations.Apply(startupCtx, db); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	credentials, err := authadapter.NewAdminCredentials(cfg.AdminUsername, cfg.AdminPassword, bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("set up organizer credentials: %v", err)
	}
	issuer := authadapter.NewJWTIssuer(cfg.JWTSecret, tokenExpiry)
	verifier := authadapter.NewJWTVerifier(cfg.JWTSecret)
	tokenGen := token.NewNanoidGenerator()

	eventRepo := postgres.NewEventRepository(db)
	participantRepo := postgres.NewParticipantRepository(db)

	eventService := services.NewEventService(eventRepo, participantRepo, tokenGen, serviceTimeout)
	registrationService := services.NewRegistrationService(eventRepo, participantRepo, serviceTimeout)
	authService := services.NewAuthService(credentials, issuer)

	eventController := controllers.NewEventController(logger, eventService, cfg.BaseURL)
	registrationController := controllers.NewRegistrationController(logger, registrationService)
	authController := controllers.NewAuthController(logger, authService)

	mux := deliveryhttp.NewRouter(eventController, registrationController, authController, verifier, logger)
	handler := middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	logger.Info("api listening", "port", cfg.Port, "env", cfg.Environment)

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
